package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// UsersHandler handles employee record endpoints.
type UsersHandler struct {
	DB *sql.DB
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.UserFilter{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Department: q.Get("department"),
		Location:   q.Get("location"),
	}

	users, err := store.ListUsers(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if err := decodeJSON(r, &user); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := user.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := store.CreateUser(r.Context(), h.DB, &user)
	if err == store.ErrDuplicateEmail {
		jsonError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("user created", "user", created.Email, "admin", claims.Email)
	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Update handles PUT /api/users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var user model.User
	if err := decodeJSON(r, &user); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := user.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = store.UpdateUser(r.Context(), h.DB, id, &user)
	switch err {
	case nil:
	case store.ErrDuplicateEmail:
		jsonError(w, http.StatusConflict, err.Error())
		return
	case store.ErrUserNotFound:
		jsonError(w, http.StatusNotFound, "user not found")
		return
	default:
		jsonError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	updated, _ := store.GetUser(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/users/{id}. Assets assigned to the user are
// released back to the available pool in the same transaction.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := store.DeleteUser(r.Context(), h.DB, id); err == store.ErrUserNotFound {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("user deleted", "id", id, "admin", claims.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// Departments handles GET /api/users/departments.
func (h *UsersHandler) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := store.UserDepartments(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list departments")
		return
	}
	if departments == nil {
		departments = []string{}
	}
	jsonResponse(w, http.StatusOK, departments)
}

// Locations handles GET /api/users/locations.
func (h *UsersHandler) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := store.UserLocations(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}
	if locations == nil {
		locations = []string{}
	}
	jsonResponse(w, http.StatusOK, locations)
}
