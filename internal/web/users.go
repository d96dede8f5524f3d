package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// UsersPage handles GET /users.
func (s *Server) UsersPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	q := r.URL.Query()

	filter := store.UserFilter{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Department: q.Get("department"),
		Location:   q.Get("location"),
	}
	users, err := store.ListUsers(r.Context(), s.DB, filter)
	if err != nil {
		slog.Error("failed to list users", "error", err)
	}
	departments, err := store.UserDepartments(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list user departments", "error", err)
	}
	locations, err := store.UserLocations(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list user locations", "error", err)
	}

	s.Templates.Render(w, "users.html", &struct {
		PageData
		Users       []model.User
		Departments []string
		Locations   []string
		Filter      store.UserFilter
	}{
		PageData:    PageData{Title: "Employees", Admin: claims},
		Users:       users,
		Departments: departments,
		Locations:   locations,
		Filter:      filter,
	})
}

func userFromForm(r *http.Request) *model.User {
	return &model.User{
		FirstName:  r.FormValue("first_name"),
		LastName:   r.FormValue("last_name"),
		Email:      r.FormValue("email"),
		Department: r.FormValue("department"),
		Position:   r.FormValue("position"),
		Phone:      r.FormValue("phone"),
		Status:     r.FormValue("status"),
		Location:   r.FormValue("location"),
		EmployeeID: r.FormValue("employee_id"),
	}
}

// UserCreateSubmit handles POST /users.
func (s *Server) UserCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	user := userFromForm(r)

	if err := user.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := store.CreateUser(r.Context(), s.DB, user)
	if err == store.ErrDuplicateEmail {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	slog.Info("user created", "user", created.Email, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf("/users/%d", created.ID), http.StatusSeeOther)
}

// UserDetailPage handles GET /users/{id}.
func (s *Server) UserDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	user, err := store.GetUser(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "user_detail.html", &struct {
		PageData
		User *model.User
	}{
		PageData: PageData{Title: user.FullName(), Admin: claims},
		User:     user,
	})
}

// UserUpdateSubmit handles POST /users/{id}.
func (s *Server) UserUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	user := userFromForm(r)
	if err := user.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = store.UpdateUser(r.Context(), s.DB, id, user)
	if err == store.ErrDuplicateEmail {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		slog.Error("failed to update user", "error", err)
		http.Error(w, "failed to update user", http.StatusInternalServerError)
		return
	}

	slog.Info("user updated", "user", user.Email, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf("/users/%d", id), http.StatusSeeOther)
}

// UserDeleteSubmit handles POST /users/{id}/delete. Any assets assigned to
// the user go back to the available pool.
func (s *Server) UserDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := store.DeleteUser(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete user", "error", err)
		http.Error(w, "failed to delete user", http.StatusInternalServerError)
		return
	}

	slog.Info("user deleted", "id", id, "admin", claims.Email)
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
