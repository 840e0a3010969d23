package domain

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlbumRepository defines the contract for album data access.
// Lookups of a missing album return ErrAlbumNotFound.
type AlbumRepository interface {
	Create(ctx context.Context, album *Album) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Album, error)
	List(ctx context.Context) ([]Album, error)
	Update(ctx context.Context, album *Album) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushSong(ctx context.Context, albumID, songID primitive.ObjectID) error
	PullSong(ctx context.Context, albumID, songID primitive.ObjectID) error
}

// SongRepository defines the contract for song data access.
// Lookups of a missing song return ErrSongNotFound.
type SongRepository interface {
	Create(ctx context.Context, song *Song) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Song, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Song, error)
	ListWithAlbums(ctx context.Context) ([]SongListing, error)
	Sample(ctx context.Context, size int) ([]SongPreview, error)
	Update(ctx context.Context, song *Song) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByAlbum(ctx context.Context, albumID primitive.ObjectID) (int64, error)
}

// ParseID parses a hex object id, returning ErrInvalidID on malformed input.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
