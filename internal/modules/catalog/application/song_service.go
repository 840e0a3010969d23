package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateSongInput carries the raw multipart values of a song creation.
// AlbumID is optional.
type CreateSongInput struct {
	Title     string
	Artist    string
	Duration  string
	AlbumID   string
	AudioPath string
	ImagePath string
}

// UpdateSongInput carries a partial update; nil or blank fields keep their
// values.
type UpdateSongInput struct {
	Title     *string
	Artist    *string
	Duration  *string
	AlbumID   *string
	AudioPath string
	ImagePath string
}

type SongService struct {
	songs  domain.SongRepository
	albums domain.AlbumRepository
	assets AssetStore
	cache  AlbumCache
}

// NewSongService wires the song service. cache may be nil.
func NewSongService(songs domain.SongRepository, albums domain.AlbumRepository, assets AssetStore, cache AlbumCache) *SongService {
	if cache == nil {
		cache = noopCache{}
	}
	return &SongService{songs: songs, albums: albums, assets: assets, cache: cache}
}

// Create uploads both assets, then persists the song and appends it to its
// album. When the album does not exist the uploads are removed again and
// nothing is persisted.
func (s *SongService) Create(ctx context.Context, in CreateSongInput) (*domain.Song, error) {
	title, artist := strings.TrimSpace(in.Title), strings.TrimSpace(in.Artist)
	if title == "" || artist == "" || strings.TrimSpace(in.Duration) == "" {
		return nil, fmt.Errorf("%w: title, artist and duration are required", apperr.ErrValidation)
	}
	if in.AudioPath == "" || in.ImagePath == "" {
		return nil, fmt.Errorf("%w: audioFile and imageFile are required", apperr.ErrValidation)
	}
	duration, err := parseDuration(in.Duration)
	if err != nil {
		return nil, err
	}
	var albumID *primitive.ObjectID
	if strings.TrimSpace(in.AlbumID) != "" {
		id, err := domain.ParseID(in.AlbumID)
		if err != nil {
			return nil, err
		}
		albumID = &id
	}

	audioURL, err := s.assets.Upload(ctx, in.AudioPath)
	if err != nil {
		return nil, err
	}
	imageURL, err := s.assets.Upload(ctx, in.ImagePath)
	if err != nil {
		s.assets.Delete(ctx, audioURL)
		return nil, err
	}
	discard := func() {
		s.assets.Delete(ctx, audioURL)
		s.assets.Delete(ctx, imageURL)
	}

	if albumID != nil {
		if _, err := s.albums.FindByID(ctx, *albumID); err != nil {
			discard()
			return nil, err
		}
	}

	now := time.Now().UTC()
	song := &domain.Song{
		Title:     title,
		Artist:    artist,
		Duration:  duration,
		AudioURL:  audioURL,
		ImageURL:  imageURL,
		AlbumID:   albumID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.songs.Create(ctx, song); err != nil {
		discard()
		return nil, err
	}

	if albumID != nil {
		if err := s.albums.PushSong(ctx, *albumID, song.ID); err != nil {
			log.Error().Err(err).Str("song_id", song.ID.Hex()).Str("album_id", albumID.Hex()).
				Msg("song saved without album back-reference")
			return nil, err
		}
		s.cache.Invalidate(ctx, *albumID)
	}

	log.Info().Str("song_id", song.ID.Hex()).Str("title", song.Title).Msg("song created")
	return song, nil
}

// List returns every song, newest first, with its album resolved.
func (s *SongService) List(ctx context.Context) ([]domain.SongListing, error) {
	return s.songs.ListWithAlbums(ctx)
}

func (s *SongService) Featured(ctx context.Context) ([]domain.SongPreview, error) {
	return s.sample(ctx, domain.FeaturedSize)
}

func (s *SongService) MadeForYou(ctx context.Context) ([]domain.SongPreview, error) {
	return s.sample(ctx, domain.MadeForYouSize)
}

func (s *SongService) Trending(ctx context.Context) ([]domain.SongPreview, error) {
	return s.sample(ctx, domain.TrendingSize)
}

// sample draws up to size distinct songs.
func (s *SongService) sample(ctx context.Context, size int) ([]domain.SongPreview, error) {
	drawn, err := s.songs.Sample(ctx, size)
	if err != nil {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]struct{}, len(drawn))
	out := make([]domain.SongPreview, 0, len(drawn))
	for _, p := range drawn {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
		if len(out) == size {
			break
		}
	}
	return out, nil
}

// Update applies a partial update. Audio and image are replaced
// independently: a failed upload leaves that field on its current URL, the
// rest of the update is still saved and the upload error is returned.
// Moving a song to another album updates both albums' song lists after the
// save.
func (s *SongService) Update(ctx context.Context, songID string, in UpdateSongInput) (*domain.Song, error) {
	id, err := domain.ParseID(songID)
	if err != nil {
		return nil, err
	}
	song, err := s.songs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title, ok := provided(in.Title); ok {
		song.Title = title
	}
	if artist, ok := provided(in.Artist); ok {
		song.Artist = artist
	}
	if duration, ok := provided(in.Duration); ok {
		if song.Duration, err = parseDuration(duration); err != nil {
			return nil, err
		}
	}

	previousAlbum := song.AlbumID
	moved := false
	if albumID, ok := provided(in.AlbumID); ok {
		target, err := domain.ParseID(albumID)
		if err != nil {
			return nil, err
		}
		if previousAlbum == nil || *previousAlbum != target {
			if _, err := s.albums.FindByID(ctx, target); err != nil {
				return nil, err
			}
			song.AlbumID = &target
			moved = true
		}
	}

	var uploadErr error
	replace := func(current *string, path string) {
		if path == "" {
			return
		}
		s.assets.Delete(ctx, *current)
		url, err := s.assets.Upload(ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("song_id", song.ID.Hex()).Msg("song asset substitution failed")
			if uploadErr == nil {
				uploadErr = err
			}
			return
		}
		*current = url
	}
	replace(&song.AudioURL, in.AudioPath)
	replace(&song.ImageURL, in.ImagePath)

	song.UpdatedAt = time.Now().UTC()
	if err := s.songs.Update(ctx, song); err != nil {
		return nil, err
	}

	if moved {
		if previousAlbum != nil {
			if err := s.albums.PullSong(ctx, *previousAlbum, song.ID); err != nil && !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
			s.cache.Invalidate(ctx, *previousAlbum)
		}
		if err := s.albums.PushSong(ctx, *song.AlbumID, song.ID); err != nil {
			return nil, err
		}
	}
	if song.AlbumID != nil {
		s.cache.Invalidate(ctx, *song.AlbumID)
	}
	if uploadErr != nil {
		return nil, uploadErr
	}
	return song, nil
}

// Delete removes both assets, the album back-reference and the song.
func (s *SongService) Delete(ctx context.Context, songID string) error {
	id, err := domain.ParseID(songID)
	if err != nil {
		return err
	}
	song, err := s.songs.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.assets.Delete(ctx, song.AudioURL)
	s.assets.Delete(ctx, song.ImageURL)

	if song.AlbumID != nil {
		if err := s.albums.PullSong(ctx, *song.AlbumID, id); err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		s.cache.Invalidate(ctx, *song.AlbumID)
	}

	if err := s.songs.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("song_id", id.Hex()).Msg("song deleted")
	return nil
}

func parseDuration(raw string) (float64, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%w: duration must be a non-negative number", apperr.ErrValidation)
	}
	return d, nil
}
