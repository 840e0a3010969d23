package http_test

import (
	"context"

	"github.com/saransh1220/soundwave/internal/modules/catalog/application"
	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"github.com/stretchr/testify/mock"
)

type mockAlbumService struct{ mock.Mock }

func (m *mockAlbumService) Create(ctx context.Context, in application.CreateAlbumInput) (*domain.Album, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Album), args.Error(1)
}

func (m *mockAlbumService) Get(ctx context.Context, id string) (*domain.AlbumDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AlbumDetails), args.Error(1)
}

func (m *mockAlbumService) List(ctx context.Context) ([]domain.Album, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Album), args.Error(1)
}

func (m *mockAlbumService) Update(ctx context.Context, id string, in application.UpdateAlbumInput) (*domain.Album, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Album), args.Error(1)
}

func (m *mockAlbumService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSongService struct{ mock.Mock }

func (m *mockSongService) Create(ctx context.Context, in application.CreateSongInput) (*domain.Song, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Song), args.Error(1)
}

func (m *mockSongService) List(ctx context.Context) ([]domain.SongListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SongListing), args.Error(1)
}

func (m *mockSongService) sample(ctx context.Context, name string) ([]domain.SongPreview, error) {
	args := m.MethodCalled(name, ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SongPreview), args.Error(1)
}

func (m *mockSongService) Featured(ctx context.Context) ([]domain.SongPreview, error) {
	return m.sample(ctx, "Featured")
}

func (m *mockSongService) MadeForYou(ctx context.Context) ([]domain.SongPreview, error) {
	return m.sample(ctx, "MadeForYou")
}

func (m *mockSongService) Trending(ctx context.Context) ([]domain.SongPreview, error) {
	return m.sample(ctx, "Trending")
}

func (m *mockSongService) Update(ctx context.Context, id string, in application.UpdateSongInput) (*domain.Song, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Song), args.Error(1)
}

func (m *mockSongService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
