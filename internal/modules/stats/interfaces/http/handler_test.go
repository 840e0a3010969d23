package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saransh1220/soundwave/internal/modules/stats/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStatsService struct{ mock.Mock }

func (m *mockStatsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func TestStatsHandler_GetStats(t *testing.T) {
	svc := new(mockStatsService)
	svc.On("GetStats", mock.Anything).Return(&domain.Stats{TotalSongs: 2, TotalAlbums: 1, TotalUsers: 9, TotalArtists: 2}, nil)

	rec := httptest.NewRecorder()
	NewStatsHandler(svc).GetStats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"code": 200,
		"status": "success",
		"message": "Stats retrieved successfully",
		"data": {"totalSongs": 2, "totalAlbums": 1, "totalUsers": 9, "totalArtists": 2}
	}`, rec.Body.String())
}

func TestStatsHandler_GetStatsError(t *testing.T) {
	svc := new(mockStatsService)
	svc.On("GetStats", mock.Anything).Return(nil, errors.New("db down"))

	rec := httptest.NewRecorder()
	NewStatsHandler(svc).GetStats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "db down")
}
