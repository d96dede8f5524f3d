package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// ServersPage handles GET /servers.
func (s *Server) ServersPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	q := r.URL.Query()

	filter := store.ServerFilter{
		Search:      q.Get("search"),
		Environment: q.Get("environment"),
		Status:      q.Get("status"),
		Location:    q.Get("location"),
	}
	servers, err := store.ListServers(r.Context(), s.DB, filter)
	if err != nil {
		slog.Error("failed to list servers", "error", err)
	}

	s.Templates.Render(w, "servers.html", &struct {
		PageData
		Servers      []model.Server
		Environments []string
		Statuses     []string
		Filter       store.ServerFilter
	}{
		PageData:     PageData{Title: "Servers", Admin: claims},
		Servers:      servers,
		Environments: model.ServerEnvironments,
		Statuses:     model.ServerStatuses,
		Filter:       filter,
	})
}

func serverFromForm(r *http.Request) *model.Server {
	return &model.Server{
		Name:         r.FormValue("name"),
		IPAddress:    r.FormValue("ip_address"),
		Role:         r.FormValue("role"),
		Environment:  r.FormValue("environment"),
		Status:       r.FormValue("status"),
		OS:           r.FormValue("os"),
		Location:     r.FormValue("location"),
		Owner:        r.FormValue("owner"),
		Notes:        r.FormValue("notes"),
		SerialNumber: r.FormValue("serial_number"),
	}
}

// ServerCreateSubmit handles POST /servers.
func (s *Server) ServerCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	server := serverFromForm(r)

	if err := server.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := store.CreateServer(r.Context(), s.DB, server)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		http.Error(w, "failed to create server", http.StatusInternalServerError)
		return
	}

	slog.Info("server created", "server", created.Name, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf("/servers/%d", created.ID), http.StatusSeeOther)
}

// ServerDetailPage handles GET /servers/{id}.
func (s *Server) ServerDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	server, err := store.GetServer(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get server", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if server == nil {
		http.Error(w, "server not found", http.StatusNotFound)
		return
	}

	programs, err := store.ListPrograms(r.Context(), s.DB, model.ProgramOwnerServer, id)
	if err != nil {
		slog.Error("failed to list programs", "error", err)
	}

	s.Templates.Render(w, "server_detail.html", &struct {
		PageData
		Server       *model.Server
		Programs     []model.Program
		Environments []string
		Statuses     []string
	}{
		PageData:     PageData{Title: server.Name, Admin: claims},
		Server:       server,
		Programs:     programs,
		Environments: model.ServerEnvironments,
		Statuses:     model.ServerStatuses,
	})
}

// ServerUpdateSubmit handles POST /servers/{id}.
func (s *Server) ServerUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	server := serverFromForm(r)
	if err := server.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.UpdateServer(r.Context(), s.DB, id, server); err != nil {
		slog.Error("failed to update server", "error", err)
		http.Error(w, "failed to update server", http.StatusInternalServerError)
		return
	}

	slog.Info("server updated", "server", server.Name, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf("/servers/%d", id), http.StatusSeeOther)
}

// ServerDeleteSubmit handles POST /servers/{id}/delete.
func (s *Server) ServerDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := store.DeleteServer(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete server", "error", err)
		http.Error(w, "failed to delete server", http.StatusInternalServerError)
		return
	}

	slog.Info("server deleted", "id", id, "admin", claims.Email)
	http.Redirect(w, r, "/servers", http.StatusSeeOther)
}

// ServerProgramAddSubmit handles POST /servers/{id}/programs.
func (s *Server) ServerProgramAddSubmit(w http.ResponseWriter, r *http.Request) {
	s.programAddSubmit(w, r, model.ProgramOwnerServer, "/servers/%d")
}

// ServerProgramRemoveSubmit handles POST /servers/{id}/programs/{programID}/delete.
func (s *Server) ServerProgramRemoveSubmit(w http.ResponseWriter, r *http.Request) {
	s.programRemoveSubmit(w, r, model.ProgramOwnerServer, "/servers/%d")
}
