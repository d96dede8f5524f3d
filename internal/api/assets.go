package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/imaging"
	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// AssetsHandler handles asset CRUD and assignment endpoints.
type AssetsHandler struct {
	DB *sql.DB
}

type assignRequest struct {
	UserID int64 `json:"user_id"`
}

// List handles GET /api/assets.
func (h *AssetsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.AssetFilter{
		Search:     q.Get("search"),
		Type:       q.Get("type"),
		Status:     q.Get("status"),
		Location:   q.Get("location"),
		Department: q.Get("department"),
	}

	assets, err := store.ListAssets(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}
	if assets == nil {
		assets = []model.Asset{}
	}
	jsonResponse(w, http.StatusOK, assets)
}

// Create handles POST /api/assets.
func (h *AssetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var asset model.Asset
	if err := decodeJSON(r, &asset); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := asset.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := store.CreateAsset(r.Context(), h.DB, &asset)
	if err == store.ErrUserNotFound {
		jsonError(w, http.StatusBadRequest, "assigned user not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create asset")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("asset created", "asset", created.Name, "id", created.ID, "admin", claims.Email)
	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/assets/{id}.
func (h *AssetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	asset, err := store.GetAsset(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get asset")
		return
	}
	if asset == nil {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}

	programs, err := store.ListPrograms(r.Context(), h.DB, model.ProgramOwnerAsset, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list programs")
		return
	}
	if programs == nil {
		programs = []model.Program{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"asset":    asset,
		"programs": programs,
	})
}

// Update handles PUT /api/assets/{id}. Assignment state is managed through
// the assign and unassign endpoints, not here.
func (h *AssetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	var asset model.Asset
	if err := decodeJSON(r, &asset); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := asset.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.UpdateAsset(r.Context(), h.DB, id, &asset); err == store.ErrAssetNotFound {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update asset")
		return
	}

	updated, _ := store.GetAsset(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/assets/{id}.
func (h *AssetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	if err := store.DeleteAsset(r.Context(), h.DB, id); err == store.ErrAssetNotFound {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete asset")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("asset deleted", "id", id, "admin", claims.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "asset deleted"})
}

// Assign handles POST /api/assets/{id}/assign.
func (h *AssetsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == 0 {
		jsonError(w, http.StatusBadRequest, "user_id required")
		return
	}

	err = store.AssignAsset(r.Context(), h.DB, id, req.UserID)
	switch err {
	case nil:
	case store.ErrUserNotFound:
		jsonError(w, http.StatusBadRequest, "user not found")
		return
	case store.ErrAssetNotFound:
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	default:
		jsonError(w, http.StatusInternalServerError, "failed to assign asset")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("asset assigned", "asset", id, "user", req.UserID, "admin", claims.Email)

	asset, _ := store.GetAsset(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, asset)
}

// Unassign handles POST /api/assets/{id}/unassign.
func (h *AssetsHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	h.release(w, r, "asset unassigned")
}

// MarkAvailable handles POST /api/assets/{id}/available. Clearing the
// assignee and marking available are the same transition.
func (h *AssetsHandler) MarkAvailable(w http.ResponseWriter, r *http.Request) {
	h.release(w, r, "asset marked available")
}

func (h *AssetsHandler) release(w http.ResponseWriter, r *http.Request, logMsg string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	if err := store.UnassignAsset(r.Context(), h.DB, id); err == store.ErrAssetNotFound {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	} else if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update asset")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info(logMsg, "asset", id, "admin", claims.Email)

	asset, _ := store.GetAsset(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, asset)
}

// Departments handles GET /api/assets/departments.
func (h *AssetsHandler) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := store.AssetDepartments(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list departments")
		return
	}
	if departments == nil {
		departments = []string{}
	}
	jsonResponse(w, http.StatusOK, departments)
}

// UploadPhoto handles PUT /api/assets/{id}/photo.
func (h *AssetsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	asset, err := store.GetAsset(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get asset")
		return
	}
	if asset == nil {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetAssetPhoto(r.Context(), h.DB, id, processed.Data, processed.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/assets/{id}/photo.
func (h *AssetsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	data, mime, err := store.GetAssetPhoto(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
