package application_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore backs both repositories so cascades can be observed.
type memStore struct {
	mu     sync.Mutex
	albums map[primitive.ObjectID]domain.Album
	songs  map[primitive.ObjectID]domain.Song
	order  []primitive.ObjectID

	failAlbumDelete error
	sampleFn        func(size int) []domain.SongPreview
}

func newMemStore() *memStore {
	return &memStore{
		albums: map[primitive.ObjectID]domain.Album{},
		songs:  map[primitive.ObjectID]domain.Song{},
	}
}

type albumRepo struct{ *memStore }
type songRepo struct{ *memStore }

func (r albumRepo) Create(_ context.Context, a *domain.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = primitive.NewObjectID()
	r.albums[a.ID] = cloneAlbum(*a)
	return nil
}

func (r albumRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.albums[id]
	if !ok {
		return nil, domain.ErrAlbumNotFound
	}
	a = cloneAlbum(a)
	return &a, nil
}

func (r albumRepo) List(context.Context) ([]domain.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Album, 0, len(r.albums))
	for _, a := range r.albums {
		out = append(out, cloneAlbum(a))
	}
	return out, nil
}

func (r albumRepo) Update(_ context.Context, a *domain.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.albums[a.ID]; !ok {
		return domain.ErrAlbumNotFound
	}
	r.albums[a.ID] = cloneAlbum(*a)
	return nil
}

func (r albumRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAlbumDelete != nil {
		return r.failAlbumDelete
	}
	delete(r.albums, id)
	return nil
}

func (r albumRepo) PushSong(_ context.Context, albumID, songID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.albums[albumID]
	if !ok {
		return domain.ErrAlbumNotFound
	}
	a.Songs = append(a.Songs, songID)
	r.albums[albumID] = a
	return nil
}

func (r albumRepo) PullSong(_ context.Context, albumID, songID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.albums[albumID]
	if !ok {
		return domain.ErrAlbumNotFound
	}
	kept := a.Songs[:0:0]
	for _, id := range a.Songs {
		if id != songID {
			kept = append(kept, id)
		}
	}
	a.Songs = kept
	r.albums[albumID] = a
	return nil
}

func (r songRepo) Create(_ context.Context, s *domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = primitive.NewObjectID()
	r.songs[s.ID] = *s
	r.order = append(r.order, s.ID)
	return nil
}

func (r songRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.songs[id]
	if !ok {
		return nil, domain.ErrSongNotFound
	}
	return &s, nil
}

func (r songRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Song
	for _, id := range ids {
		if s, ok := r.songs[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r songRepo) ListWithAlbums(context.Context) ([]domain.SongListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SongListing
	for i := len(r.order) - 1; i >= 0; i-- {
		s, ok := r.songs[r.order[i]]
		if !ok {
			continue
		}
		l := domain.SongListing{ID: s.ID, Title: s.Title, Artist: s.Artist}
		if s.AlbumID != nil {
			if a, ok := r.albums[*s.AlbumID]; ok {
				l.Album = &domain.AlbumRef{ID: a.ID, Title: a.Title}
			}
		}
		out = append(out, l)
	}
	return out, nil
}

func (r songRepo) Sample(_ context.Context, size int) ([]domain.SongPreview, error) {
	if r.sampleFn != nil {
		return r.sampleFn(size), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SongPreview
	for _, s := range r.songs {
		if len(out) == size {
			break
		}
		out = append(out, domain.SongPreview{ID: s.ID, Title: s.Title, Artist: s.Artist, ImageURL: s.ImageURL, AudioURL: s.AudioURL})
	}
	return out, nil
}

func (r songRepo) Update(_ context.Context, s *domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.songs[s.ID] = *s
	return nil
}

func (r songRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.songs, id)
	return nil
}

func (r songRepo) DeleteByAlbum(_ context.Context, albumID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.songs {
		if s.AlbumID != nil && *s.AlbumID == albumID {
			delete(r.songs, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) songsOfAlbum(albumID primitive.ObjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.songs {
		if s.AlbumID != nil && *s.AlbumID == albumID {
			n++
		}
	}
	return n
}

func cloneAlbum(a domain.Album) domain.Album {
	a.Songs = append([]primitive.ObjectID{}, a.Songs...)
	return a
}

// fakeAssets records what is currently stored on the media host.
type fakeAssets struct {
	mu      sync.Mutex
	stored  map[string]bool
	deleted []string
	n       int
	failOn  map[string]bool // local paths whose upload fails
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{stored: map[string]bool{}, failOn: map[string]bool{}}
}

func (f *fakeAssets) Upload(_ context.Context, localPath string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[localPath] {
		return "", fmt.Errorf("%w: provider rejected %s", apperr.ErrUpload, localPath)
	}
	f.n++
	ext := localPath[strings.LastIndex(localPath, "."):]
	url := fmt.Sprintf("https://media.test/media/asset%d%s", f.n, ext)
	f.stored[url] = true
	return url, nil
}

func (f *fakeAssets) Delete(_ context.Context, url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	if !f.stored[url] {
		return false
	}
	delete(f.stored, url)
	return true
}

func (f *fakeAssets) storedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stored)
}

type spyCache struct {
	mu          sync.Mutex
	entries     map[primitive.ObjectID]*domain.AlbumDetails
	invalidated []primitive.ObjectID
}

func newSpyCache() *spyCache {
	return &spyCache{entries: map[primitive.ObjectID]*domain.AlbumDetails{}}
}

func (c *spyCache) Get(_ context.Context, id primitive.ObjectID) (*domain.AlbumDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[id]
	return d, ok
}

func (c *spyCache) Set(_ context.Context, d *domain.AlbumDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[d.ID] = d
}

func (c *spyCache) Invalidate(_ context.Context, ids ...primitive.ObjectID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.entries, id)
		c.invalidated = append(c.invalidated, id)
	}
}
