package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// ServersHandler handles server record endpoints.
type ServersHandler struct {
	DB *sql.DB
}

// List handles GET /api/servers.
func (h *ServersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ServerFilter{
		Search:      q.Get("search"),
		Environment: q.Get("environment"),
		Status:      q.Get("status"),
		Location:    q.Get("location"),
	}

	servers, err := store.ListServers(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list servers")
		return
	}
	if servers == nil {
		servers = []model.Server{}
	}
	jsonResponse(w, http.StatusOK, servers)
}

// Create handles POST /api/servers.
func (h *ServersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var server model.Server
	if err := decodeJSON(r, &server); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := server.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := store.CreateServer(r.Context(), h.DB, &server)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create server")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("server created", "server", created.Name, "id", created.ID, "admin", claims.Email)
	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/servers/{id}.
func (h *ServersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid server id")
		return
	}

	server, err := store.GetServer(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get server")
		return
	}
	if server == nil {
		jsonError(w, http.StatusNotFound, "server not found")
		return
	}

	programs, err := store.ListPrograms(r.Context(), h.DB, model.ProgramOwnerServer, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list programs")
		return
	}
	if programs == nil {
		programs = []model.Program{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"server":   server,
		"programs": programs,
	})
}

// Update handles PUT /api/servers/{id}.
func (h *ServersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid server id")
		return
	}

	var server model.Server
	if err := decodeJSON(r, &server); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := server.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.UpdateServer(r.Context(), h.DB, id, &server); err == store.ErrServerNotFound {
		jsonError(w, http.StatusNotFound, "server not found")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update server")
		return
	}

	updated, _ := store.GetServer(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/servers/{id}.
func (h *ServersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid server id")
		return
	}

	if err := store.DeleteServer(r.Context(), h.DB, id); err == store.ErrServerNotFound {
		jsonError(w, http.StatusNotFound, "server not found")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete server")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("server deleted", "id", id, "admin", claims.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "server deleted"})
}
