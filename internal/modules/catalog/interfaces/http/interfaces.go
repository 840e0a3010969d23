package http

import (
	"context"

	"github.com/saransh1220/soundwave/internal/modules/catalog/application"
	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
)

// AlbumService is the album use-case surface the handler needs.
type AlbumService interface {
	Create(ctx context.Context, in application.CreateAlbumInput) (*domain.Album, error)
	Get(ctx context.Context, albumID string) (*domain.AlbumDetails, error)
	List(ctx context.Context) ([]domain.Album, error)
	Update(ctx context.Context, albumID string, in application.UpdateAlbumInput) (*domain.Album, error)
	Delete(ctx context.Context, albumID string) error
}

// SongService is the song use-case surface the handler needs.
type SongService interface {
	Create(ctx context.Context, in application.CreateSongInput) (*domain.Song, error)
	List(ctx context.Context) ([]domain.SongListing, error)
	Featured(ctx context.Context) ([]domain.SongPreview, error)
	MadeForYou(ctx context.Context) ([]domain.SongPreview, error)
	Trending(ctx context.Context) ([]domain.SongPreview, error)
	Update(ctx context.Context, songID string, in application.UpdateSongInput) (*domain.Song, error)
	Delete(ctx context.Context, songID string) error
}
