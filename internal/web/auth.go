package web

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"assetdesk/internal/auth"
	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// cookieMaxAge matches the token lifetime.
const cookieMaxAge = int(auth.TokenExpiry / time.Second)

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   cookieMaxAge,
	})
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Sign in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Enter your email and password.",
		})
		return
	}

	admin, err := store.GetAdminByEmail(r.Context(), s.DB, email)
	if err != nil || admin == nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Invalid email or password.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Invalid email or password.",
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, admin.ID, admin.Email, admin.Name)
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Something went wrong, try again.",
		})
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage handles GET /register. Requires a signed-in admin.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "register.html", &PageData{Title: "New admin", Admin: claims})
}

// RegisterSubmit handles POST /register. Creates a further admin account on
// behalf of the signed-in admin; the caller's own session is untouched.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	renderError := func(msg string) {
		s.Templates.Render(w, "register.html", &PageData{Title: "New admin", Admin: claims, Error: msg})
	}

	candidate := &model.Admin{Name: name, Email: email}
	if err := candidate.Validate(); err != nil {
		renderError(err.Error())
		return
	}
	if err := model.ValidatePassword(password); err != nil {
		renderError(err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		renderError("Something went wrong, try again.")
		return
	}

	admin, err := store.CreateAdmin(r.Context(), s.DB, name, email, string(hash))
	if err == store.ErrDuplicateAdminEmail {
		renderError(err.Error())
		return
	}
	if err != nil {
		renderError("Something went wrong, try again.")
		return
	}

	slog.Info("admin registered", "admin", admin.Email, "by", claims.Email)
	s.Templates.Render(w, "register.html", &PageData{
		Title:   "New admin",
		Admin:   claims,
		Success: "Account created for " + admin.Email + ".",
	})
}

// Logout handles POST /logout. The session token is revoked so the cookie
// cannot be replayed.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil && claims.ID != "" {
			store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time)
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
