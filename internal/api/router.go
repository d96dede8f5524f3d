package api

import (
	"database/sql"
	"net/http"

	"assetdesk/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	assetsHandler := &AssetsHandler{DB: db}
	usersHandler := &UsersHandler{DB: db}
	serversHandler := &ServersHandler{DB: db}
	tasksHandler := &TasksHandler{DB: db}
	statsHandler := &StatsHandler{DB: db}
	importHandler := &ImportHandler{DB: db}
	assetPrograms := &ProgramsHandler{DB: db, OwnerKind: model.ProgramOwnerAsset}
	serverPrograms := &ProgramsHandler{DB: db, OwnerKind: model.ProgramOwnerServer}

	authMW := AuthMiddleware(jwtSecret, db)
	protected := func(h http.HandlerFunc) http.Handler {
		return authMW(h)
	}

	// Login is the only public endpoint. Registration requires an existing
	// admin session; the first account is created on startup.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.Handle("POST /api/auth/register", protected(authHandler.Register))
	mux.Handle("POST /api/auth/logout", protected(authHandler.Logout))
	mux.Handle("GET /api/auth/me", protected(authHandler.Me))

	// Assets.
	mux.Handle("GET /api/assets", protected(assetsHandler.List))
	mux.Handle("POST /api/assets", protected(assetsHandler.Create))
	mux.Handle("GET /api/assets/departments", protected(assetsHandler.Departments))
	mux.Handle("GET /api/assets/{id}", protected(assetsHandler.Get))
	mux.Handle("PUT /api/assets/{id}", protected(assetsHandler.Update))
	mux.Handle("DELETE /api/assets/{id}", protected(assetsHandler.Delete))
	mux.Handle("POST /api/assets/{id}/assign", protected(assetsHandler.Assign))
	mux.Handle("POST /api/assets/{id}/unassign", protected(assetsHandler.Unassign))
	mux.Handle("POST /api/assets/{id}/available", protected(assetsHandler.MarkAvailable))
	mux.Handle("PUT /api/assets/{id}/photo", protected(assetsHandler.UploadPhoto))
	mux.Handle("GET /api/assets/{id}/photo", protected(assetsHandler.GetPhoto))
	mux.Handle("GET /api/assets/{id}/programs", protected(assetPrograms.List))
	mux.Handle("POST /api/assets/{id}/programs", protected(assetPrograms.Add))
	mux.Handle("DELETE /api/assets/{id}/programs/{programID}", protected(assetPrograms.Remove))

	// Users (employee records).
	mux.Handle("GET /api/users", protected(usersHandler.List))
	mux.Handle("POST /api/users", protected(usersHandler.Create))
	mux.Handle("GET /api/users/departments", protected(usersHandler.Departments))
	mux.Handle("GET /api/users/locations", protected(usersHandler.Locations))
	mux.Handle("GET /api/users/{id}", protected(usersHandler.Get))
	mux.Handle("PUT /api/users/{id}", protected(usersHandler.Update))
	mux.Handle("DELETE /api/users/{id}", protected(usersHandler.Delete))

	// Servers.
	mux.Handle("GET /api/servers", protected(serversHandler.List))
	mux.Handle("POST /api/servers", protected(serversHandler.Create))
	mux.Handle("GET /api/servers/{id}", protected(serversHandler.Get))
	mux.Handle("PUT /api/servers/{id}", protected(serversHandler.Update))
	mux.Handle("DELETE /api/servers/{id}", protected(serversHandler.Delete))
	mux.Handle("GET /api/servers/{id}/programs", protected(serverPrograms.List))
	mux.Handle("POST /api/servers/{id}/programs", protected(serverPrograms.Add))
	mux.Handle("DELETE /api/servers/{id}/programs/{programID}", protected(serverPrograms.Remove))

	// Tasks.
	mux.Handle("GET /api/tasks", protected(tasksHandler.List))
	mux.Handle("POST /api/tasks", protected(tasksHandler.Create))
	mux.Handle("PUT /api/tasks/{id}", protected(tasksHandler.Update))
	mux.Handle("DELETE /api/tasks/{id}", protected(tasksHandler.Delete))

	// Dashboard.
	mux.Handle("GET /api/stats", protected(statsHandler.Get))

	// Bulk import.
	mux.Handle("POST /api/import/users", protected(importHandler.Users))

	return mux
}
