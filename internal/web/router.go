package web

import (
	"database/sql"
	"net/http"

	webembed "assetdesk/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes. Creating further admin accounts requires a
	// signed-in admin; the first account is created on startup.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.Dashboard)))

	mux.Handle("GET /register", cookieAuth(http.HandlerFunc(s.RegisterPage)))
	mux.Handle("POST /register", cookieAuth(http.HandlerFunc(s.RegisterSubmit)))

	mux.Handle("GET /assets", cookieAuth(http.HandlerFunc(s.AssetsPage)))
	mux.Handle("POST /assets", cookieAuth(http.HandlerFunc(s.AssetCreateSubmit)))
	mux.Handle("GET /assets/{id}", cookieAuth(http.HandlerFunc(s.AssetDetailPage)))
	mux.Handle("POST /assets/{id}", cookieAuth(http.HandlerFunc(s.AssetUpdateSubmit)))
	mux.Handle("POST /assets/{id}/delete", cookieAuth(http.HandlerFunc(s.AssetDeleteSubmit)))
	mux.Handle("POST /assets/{id}/assign", cookieAuth(http.HandlerFunc(s.AssetAssignSubmit)))
	mux.Handle("POST /assets/{id}/unassign", cookieAuth(http.HandlerFunc(s.AssetUnassignSubmit)))
	mux.Handle("POST /assets/{id}/photo", cookieAuth(http.HandlerFunc(s.AssetPhotoSubmit)))
	mux.Handle("GET /assets/{id}/photo", cookieAuth(http.HandlerFunc(s.AssetPhotoGet)))
	mux.Handle("POST /assets/{id}/programs", cookieAuth(http.HandlerFunc(s.AssetProgramAddSubmit)))
	mux.Handle("POST /assets/{id}/programs/{programID}/delete", cookieAuth(http.HandlerFunc(s.AssetProgramRemoveSubmit)))

	mux.Handle("GET /users", cookieAuth(http.HandlerFunc(s.UsersPage)))
	mux.Handle("POST /users", cookieAuth(http.HandlerFunc(s.UserCreateSubmit)))
	mux.Handle("GET /users/{id}", cookieAuth(http.HandlerFunc(s.UserDetailPage)))
	mux.Handle("POST /users/{id}", cookieAuth(http.HandlerFunc(s.UserUpdateSubmit)))
	mux.Handle("POST /users/{id}/delete", cookieAuth(http.HandlerFunc(s.UserDeleteSubmit)))

	mux.Handle("GET /servers", cookieAuth(http.HandlerFunc(s.ServersPage)))
	mux.Handle("POST /servers", cookieAuth(http.HandlerFunc(s.ServerCreateSubmit)))
	mux.Handle("GET /servers/{id}", cookieAuth(http.HandlerFunc(s.ServerDetailPage)))
	mux.Handle("POST /servers/{id}", cookieAuth(http.HandlerFunc(s.ServerUpdateSubmit)))
	mux.Handle("POST /servers/{id}/delete", cookieAuth(http.HandlerFunc(s.ServerDeleteSubmit)))
	mux.Handle("POST /servers/{id}/programs", cookieAuth(http.HandlerFunc(s.ServerProgramAddSubmit)))
	mux.Handle("POST /servers/{id}/programs/{programID}/delete", cookieAuth(http.HandlerFunc(s.ServerProgramRemoveSubmit)))

	mux.Handle("GET /tasks", cookieAuth(http.HandlerFunc(s.TasksPage)))
	mux.Handle("POST /tasks", cookieAuth(http.HandlerFunc(s.TaskCreateSubmit)))
	mux.Handle("POST /tasks/{id}/toggle", cookieAuth(http.HandlerFunc(s.TaskToggleSubmit)))
	mux.Handle("POST /tasks/{id}/delete", cookieAuth(http.HandlerFunc(s.TaskDeleteSubmit)))

	mux.Handle("GET /import", cookieAuth(http.HandlerFunc(s.ImportPage)))
	mux.Handle("POST /import", cookieAuth(http.HandlerFunc(s.ImportSubmit)))

	return mux, nil
}
