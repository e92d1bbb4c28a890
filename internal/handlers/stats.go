package handlers

import (
	"net/http"

	"github.com/venturegrill/api/internal/database"
)

// StatsHandler serves the public roast counters
type StatsHandler struct {
	store database.Gateway
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(store database.Gateway) *StatsHandler {
	return &StatsHandler{store: store}
}

// GetStats handles GET /api/v1/stats. The snapshot is all-or-nothing: if any
// underlying count fails the endpoint reports unavailable rather than serving
// partial numbers.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, ok := h.store.GetStats(r.Context())
	if !ok {
		respondJSONError(w, http.StatusServiceUnavailable, "Stats unavailable", "Could not compute roast statistics")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
