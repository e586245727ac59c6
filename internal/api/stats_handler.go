package api

import (
	"net/http"

	"github.com/phrazzld/forget/internal/api/shared"
	"github.com/phrazzld/forget/internal/task"
)

// StatsSource is implemented by *task.Dispatcher.
type StatsSource interface {
	Stats() task.Stats
}

// StatsHandler serves dispatcher statistics.
type StatsHandler struct {
	source StatsSource
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(source StatsSource) *StatsHandler {
	return &StatsHandler{source: source}
}

// GetStats handles GET /api/stats.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.source.Stats())
}
