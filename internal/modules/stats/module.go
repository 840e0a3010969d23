package stats

import (
	"github.com/saransh1220/soundwave/internal/modules/stats/application"
	"github.com/saransh1220/soundwave/internal/modules/stats/infrastructure/persistence/mongodb"
	"github.com/saransh1220/soundwave/internal/modules/stats/interfaces/http"
	"go.mongodb.org/mongo-driver/mongo"
)

type Module struct {
	StatsService application.StatsService
	StatsHandler *http.StatsHandler
}

func NewModule(db *mongo.Database) *Module {
	repo := mongodb.NewStatsRepository(db)
	service := application.NewStatsService(repo)

	return &Module{
		StatsService: service,
		StatsHandler: http.NewStatsHandler(service),
	}
}
