package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateAlbumInput carries the raw multipart values of an album creation.
type CreateAlbumInput struct {
	Title       string
	Artist      string
	ReleaseYear string
	ImagePath   string
}

// UpdateAlbumInput carries a partial update; nil or blank fields are left
// untouched.
type UpdateAlbumInput struct {
	Title       *string
	Artist      *string
	ReleaseYear *string
	ImagePath   string
}

func (in UpdateAlbumInput) empty() bool {
	_, title := provided(in.Title)
	_, artist := provided(in.Artist)
	_, year := provided(in.ReleaseYear)
	return !title && !artist && !year && in.ImagePath == ""
}

// provided returns the trimmed value of an optional field and whether it
// carries anything. Blank values never clear a stored field.
func provided(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*v)
	return trimmed, trimmed != ""
}

type AlbumService struct {
	albums domain.AlbumRepository
	songs  domain.SongRepository
	assets AssetStore
	cache  AlbumCache
}

// NewAlbumService wires the album service. cache may be nil.
func NewAlbumService(albums domain.AlbumRepository, songs domain.SongRepository, assets AssetStore, cache AlbumCache) *AlbumService {
	if cache == nil {
		cache = noopCache{}
	}
	return &AlbumService{albums: albums, songs: songs, assets: assets, cache: cache}
}

func (s *AlbumService) Create(ctx context.Context, in CreateAlbumInput) (*domain.Album, error) {
	title, artist := strings.TrimSpace(in.Title), strings.TrimSpace(in.Artist)
	if title == "" || artist == "" || strings.TrimSpace(in.ReleaseYear) == "" || in.ImagePath == "" {
		return nil, fmt.Errorf("%w: title, artist, releaseYear and imageFile are required", apperr.ErrValidation)
	}
	year, err := parseReleaseYear(in.ReleaseYear)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.assets.Upload(ctx, in.ImagePath)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	album := &domain.Album{
		Title:       title,
		Artist:      artist,
		ReleaseYear: year,
		ImageURL:    imageURL,
		Songs:       []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.albums.Create(ctx, album); err != nil {
		return nil, err
	}

	log.Info().Str("album_id", album.ID.Hex()).Str("title", album.Title).Msg("album created")
	return album, nil
}

// Get returns the album with its songs resolved in album order.
func (s *AlbumService) Get(ctx context.Context, albumID string) (*domain.AlbumDetails, error) {
	id, err := domain.ParseID(albumID)
	if err != nil {
		return nil, err
	}
	if cached, ok := s.cache.Get(ctx, id); ok {
		return cached, nil
	}

	album, err := s.albums.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var songs []domain.Song
	if len(album.Songs) > 0 {
		if songs, err = s.songs.FindByIDs(ctx, album.Songs); err != nil {
			return nil, err
		}
	}

	details := domain.NewAlbumDetails(*album, songs)
	s.cache.Set(ctx, &details)
	return &details, nil
}

// List returns every album with unresolved song references. An empty
// catalog is reported as ErrNoAlbums.
func (s *AlbumService) List(ctx context.Context) ([]domain.Album, error) {
	albums, err := s.albums.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(albums) == 0 {
		return nil, domain.ErrNoAlbums
	}
	return albums, nil
}

// Update applies a partial update. A replacement image deletes the old cover
// before uploading; the record is written once, after every step succeeded.
func (s *AlbumService) Update(ctx context.Context, albumID string, in UpdateAlbumInput) (*domain.Album, error) {
	id, err := domain.ParseID(albumID)
	if err != nil {
		return nil, err
	}
	album, err := s.albums.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.empty() {
		return nil, domain.ErrNothingToSave
	}

	if title, ok := provided(in.Title); ok {
		album.Title = title
	}
	if artist, ok := provided(in.Artist); ok {
		album.Artist = artist
	}
	if year, ok := provided(in.ReleaseYear); ok {
		if album.ReleaseYear, err = parseReleaseYear(year); err != nil {
			return nil, err
		}
	}

	if in.ImagePath != "" {
		s.assets.Delete(ctx, album.ImageURL)
		imageURL, err := s.assets.Upload(ctx, in.ImagePath)
		if err != nil {
			return nil, err
		}
		album.ImageURL = imageURL
	}

	album.UpdatedAt = time.Now().UTC()
	if err := s.albums.Update(ctx, album); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, album.ID)
	return album, nil
}

// Delete removes the album, its cover and every song that references it.
// Cascaded songs keep their assets on the media host.
func (s *AlbumService) Delete(ctx context.Context, albumID string) error {
	id, err := domain.ParseID(albumID)
	if err != nil {
		return err
	}
	album, err := s.albums.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.assets.Delete(ctx, album.ImageURL)

	removed, err := s.songs.DeleteByAlbum(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade songs: %w", err)
	}
	if err := s.albums.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("album_id", id.Hex()).Int64("songs_removed", removed).
			Msg("album delete failed after song cascade")
		return err
	}

	s.cache.Invalidate(ctx, id)
	log.Info().Str("album_id", id.Hex()).Int64("songs_removed", removed).Msg("album deleted")
	return nil
}

func parseReleaseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%w: releaseYear must be a positive integer", apperr.ErrValidation)
	}
	return year, nil
}
