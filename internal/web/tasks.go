package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// TasksPage handles GET /tasks.
func (s *Server) TasksPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	tasks, err := store.ListTasks(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list tasks", "error", err)
	}

	s.Templates.Render(w, "tasks.html", &struct {
		PageData
		Tasks []model.Task
	}{
		PageData: PageData{Title: "Tasks", Admin: claims},
		Tasks:    tasks,
	})
}

// TaskCreateSubmit handles POST /tasks.
func (s *Server) TaskCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	task := &model.Task{Title: r.FormValue("title")}
	if err := task.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := store.CreateTask(r.Context(), s.DB, task.Title, claims.AdminID, claims.Name); err != nil {
		slog.Error("failed to create task", "error", err)
		http.Error(w, "failed to create task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// TaskToggleSubmit handles POST /tasks/{id}/toggle.
func (s *Server) TaskToggleSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	task, err := store.GetTask(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get task", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if task == nil {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	if err := store.SetTaskCompleted(r.Context(), s.DB, id, !task.Completed); err != nil {
		slog.Error("failed to update task", "error", err)
		http.Error(w, "failed to update task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// TaskDeleteSubmit handles POST /tasks/{id}/delete.
func (s *Server) TaskDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := store.DeleteTask(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete task", "error", err)
		http.Error(w, "failed to delete task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}
