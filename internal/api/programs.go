package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// ProgramsHandler handles program inventory endpoints. The same handler
// serves asset and server inventories; OwnerKind selects which.
type ProgramsHandler struct {
	DB        *sql.DB
	OwnerKind string
}

// ownerExists reports whether the owning asset or server record exists.
func (h *ProgramsHandler) ownerExists(r *http.Request, id int64) (bool, error) {
	if h.OwnerKind == model.ProgramOwnerServer {
		server, err := store.GetServer(r.Context(), h.DB, id)
		return server != nil, err
	}
	asset, err := store.GetAsset(r.Context(), h.DB, id)
	return asset != nil, err
}

// List handles GET /api/{assets|servers}/{id}/programs.
func (h *ProgramsHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	programs, err := store.ListPrograms(r.Context(), h.DB, h.OwnerKind, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list programs")
		return
	}
	if programs == nil {
		programs = []model.Program{}
	}
	jsonResponse(w, http.StatusOK, programs)
}

// Add handles POST /api/{assets|servers}/{id}/programs.
func (h *ProgramsHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	exists, err := h.ownerExists(r, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !exists {
		jsonError(w, http.StatusNotFound, "not found")
		return
	}

	var program model.Program
	if err := decodeJSON(r, &program); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	program.OwnerKind = h.OwnerKind
	program.AssetID = id

	if err := program.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := store.AddProgram(r.Context(), h.DB, &program)
	if err == store.ErrDuplicateProgram {
		jsonError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to add program")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("program added", "program", created.Name, "owner", h.OwnerKind,
		"owner_id", id, "admin", claims.Email)
	jsonResponse(w, http.StatusCreated, created)
}

// Remove handles DELETE /api/{assets|servers}/{id}/programs/{programID}.
func (h *ProgramsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}
	programID, err := strconv.ParseInt(r.PathValue("programID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	if err := store.RemoveProgram(r.Context(), h.DB, h.OwnerKind, id, programID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to remove program")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("program removed", "program", programID, "owner", h.OwnerKind,
		"owner_id", id, "admin", claims.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "program removed"})
}
