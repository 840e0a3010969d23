package http

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/modules/stats/application"
	"github.com/saransh1220/soundwave/internal/shared/utils"
)

type StatsHandler struct {
	service application.StatsService
}

func NewStatsHandler(service application.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("get stats failed")
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Stats retrieved successfully", stats)
}
