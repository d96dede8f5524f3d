package api

import (
	"database/sql"
	"net/http"

	"assetdesk/internal/store"
)

// StatsHandler serves the aggregate dashboard snapshot. The dashboard polls
// this endpoint, so responses are marked uncacheable.
type StatsHandler struct {
	DB *sql.DB
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	jsonResponse(w, http.StatusOK, stats)
}
