package application

import (
	"context"

	"github.com/saransh1220/soundwave/internal/modules/stats/domain"
	"golang.org/x/sync/errgroup"
)

type StatsService interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}

type statsService struct {
	repo domain.StatsRepository
}

func NewStatsService(repo domain.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

// GetStats runs the four counts concurrently; the first failure cancels
// the rest.
func (s *statsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalSongs, err = s.repo.CountSongs(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalAlbums, err = s.repo.CountAlbums(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalArtists, err = s.repo.CountArtists(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
