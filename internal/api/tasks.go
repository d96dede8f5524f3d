package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// TasksHandler handles admin task list endpoints.
type TasksHandler struct {
	DB *sql.DB
}

type createTaskRequest struct {
	Title string `json:"title"`
}

type updateTaskRequest struct {
	Completed bool `json:"completed"`
}

// List handles GET /api/tasks.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := store.ListTasks(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	jsonResponse(w, http.StatusOK, tasks)
}

// Create handles POST /api/tasks. Tasks are stamped with the acting
// admin's identity from the token.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task := &model.Task{Title: req.Title}
	if err := task.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := GetClaims(r.Context())
	created, err := store.CreateTask(r.Context(), h.DB, req.Title, claims.AdminID, claims.Name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	slog.Info("task created", "task", created.ID, "admin", claims.Email)
	jsonResponse(w, http.StatusCreated, created)
}

// Update handles PUT /api/tasks/{id}, toggling the completed flag.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := store.GetTask(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if task == nil {
		jsonError(w, http.StatusNotFound, "task not found")
		return
	}

	if err := store.SetTaskCompleted(r.Context(), h.DB, id, req.Completed); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	updated, _ := store.GetTask(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := store.DeleteTask(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "task deleted"})
}
