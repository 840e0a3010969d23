package domain

import "context"

// Stats is the admin dashboard summary.
type Stats struct {
	TotalSongs   int64 `json:"totalSongs"`
	TotalAlbums  int64 `json:"totalAlbums"`
	TotalUsers   int64 `json:"totalUsers"`
	TotalArtists int64 `json:"totalArtists"`
}

type StatsRepository interface {
	CountSongs(ctx context.Context) (int64, error)
	CountAlbums(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	// CountArtists counts distinct artist names across songs and albums.
	CountArtists(ctx context.Context) (int64, error)
}
