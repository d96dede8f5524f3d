package web

import (
	"log/slog"
	"net/http"

	"assetdesk/internal/store"
)

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	stats, err := store.GetStats(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to get stats for dashboard", "error", err)
		stats = &store.Stats{}
	}

	tasks, err := store.ListTasks(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list tasks for dashboard", "error", err)
	}
	if len(tasks) > 10 {
		tasks = tasks[:10]
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Stats any
		Tasks any
	}{
		PageData: PageData{Title: "Dashboard", Admin: claims},
		Stats:    stats,
		Tasks:    tasks,
	})
}
