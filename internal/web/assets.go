package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"assetdesk/internal/imaging"
	"assetdesk/internal/model"
	"assetdesk/internal/store"
)

// AssetsPage handles GET /assets.
func (s *Server) AssetsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	q := r.URL.Query()

	filter := store.AssetFilter{
		Search:     q.Get("search"),
		Type:       q.Get("type"),
		Status:     q.Get("status"),
		Location:   q.Get("location"),
		Department: q.Get("department"),
	}
	assets, err := store.ListAssets(r.Context(), s.DB, filter)
	if err != nil {
		slog.Error("failed to list assets", "error", err)
	}
	departments, err := store.AssetDepartments(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list asset departments", "error", err)
	}
	users, err := store.ListUsers(r.Context(), s.DB, store.UserFilter{})
	if err != nil {
		slog.Error("failed to list users", "error", err)
	}

	s.Templates.Render(w, "assets.html", &struct {
		PageData
		Assets      []model.Asset
		Users       []model.User
		Types       []string
		Locations   []string
		Statuses    []string
		Departments []string
		Filter      store.AssetFilter
	}{
		PageData:    PageData{Title: "Assets", Admin: claims},
		Assets:      assets,
		Users:       users,
		Types:       model.AssetTypes,
		Locations:   model.AssetLocations,
		Statuses:    model.AssetStatuses,
		Departments: departments,
		Filter:      filter,
	})
}

// assetFromForm builds an asset from submitted form values.
func assetFromForm(r *http.Request) *model.Asset {
	asset := &model.Asset{
		Name:         r.FormValue("name"),
		Type:         r.FormValue("type"),
		Location:     r.FormValue("location"),
		Brand:        r.FormValue("brand"),
		Model:        r.FormValue("model"),
		SerialNumber: r.FormValue("serial_number"),
		Status:       r.FormValue("status"),
		PurchaseDate: r.FormValue("purchase_date"),
		Notes:        r.FormValue("notes"),
		Department:   r.FormValue("department"),
	}

	keys := r.Form["property_key"]
	values := r.Form["property_value"]
	for i, key := range keys {
		if key == "" {
			continue
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		asset.CustomProperties = append(asset.CustomProperties, model.CustomProperty{
			Key: key, Value: value,
		})
	}
	return asset
}

// AssetCreateSubmit handles POST /assets.
func (s *Server) AssetCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	asset := assetFromForm(r)

	if assignee := r.FormValue("assigned_to"); assignee != "" {
		if id, err := strconv.ParseInt(assignee, 10, 64); err == nil {
			asset.AssignedTo = &id
		}
	}

	if err := asset.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := store.CreateAsset(r.Context(), s.DB, asset)
	if err != nil {
		slog.Error("failed to create asset", "error", err)
		http.Error(w, "failed to create asset", http.StatusInternalServerError)
		return
	}

	slog.Info("asset created", "asset", created.Name, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf("/assets/%d", created.ID), http.StatusSeeOther)
}

// AssetDetailPage handles GET /assets/{id}.
func (s *Server) AssetDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	asset, err := store.GetAsset(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get asset", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if asset == nil {
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	}

	programs, err := store.ListPrograms(r.Context(), s.DB, model.ProgramOwnerAsset, id)
	if err != nil {
		slog.Error("failed to list programs", "error", err)
	}
	users, err := store.ListUsers(r.Context(), s.DB, store.UserFilter{})
	if err != nil {
		slog.Error("failed to list users", "error", err)
	}

	s.Templates.Render(w, "asset_detail.html", &struct {
		PageData
		Asset     *model.Asset
		Programs  []model.Program
		Users     []model.User
		Types     []string
		Locations []string
		Statuses  []string
	}{
		PageData:  PageData{Title: asset.Name, Admin: claims},
		Asset:     asset,
		Programs:  programs,
		Users:     users,
		Types:     model.AssetTypes,
		Locations: model.AssetLocations,
		Statuses:  model.AssetStatuses,
	})
}

// AssetUpdateSubmit handles POST /assets/{id}.
func (s *Server) AssetUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	asset := assetFromForm(r)
	if err := asset.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.UpdateAsset(r.Context(), s.DB, id, asset); err != nil {
		slog.Error("failed to update asset", "error", err)
		http.Error(w, "failed to update asset", http.StatusInternalServerError)
		return
	}

	slog.Info("asset updated", "asset", asset.Name, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf("/assets/%d", id), http.StatusSeeOther)
}

// AssetDeleteSubmit handles POST /assets/{id}/delete.
func (s *Server) AssetDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := store.DeleteAsset(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete asset", "error", err)
		http.Error(w, "failed to delete asset", http.StatusInternalServerError)
		return
	}

	slog.Info("asset deleted", "id", id, "admin", claims.Email)
	http.Redirect(w, r, "/assets", http.StatusSeeOther)
}

// AssetAssignSubmit handles POST /assets/{id}/assign.
func (s *Server) AssetAssignSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	userID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user", http.StatusBadRequest)
		return
	}

	if err := store.AssignAsset(r.Context(), s.DB, id, userID); err != nil {
		slog.Warn("failed to assign asset", "asset", id, "user", userID, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Info("asset assigned", "asset", id, "user", userID, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf("/assets/%d", id), http.StatusSeeOther)
}

// AssetUnassignSubmit handles POST /assets/{id}/unassign.
func (s *Server) AssetUnassignSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := store.UnassignAsset(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to unassign asset", "asset", id, "error", err)
		http.Error(w, "failed to unassign asset", http.StatusInternalServerError)
		return
	}

	slog.Info("asset unassigned", "asset", id, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf("/assets/%d", id), http.StatusSeeOther)
}

// AssetPhotoSubmit handles POST /assets/{id}/photo.
func (s *Server) AssetPhotoSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "photo required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SetAssetPhoto(r.Context(), s.DB, id, result.Data, result.MIME); err != nil {
		slog.Error("failed to save photo", "error", err)
		http.Error(w, "failed to save photo", http.StatusInternalServerError)
		return
	}

	slog.Info("asset photo uploaded", "asset", id, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf("/assets/%d", id), http.StatusSeeOther)
}

// AssetPhotoGet handles GET /assets/{id}/photo.
func (s *Server) AssetPhotoGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetAssetPhoto(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get photo", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write photo response", "error", err)
	}
}

// AssetProgramAddSubmit handles POST /assets/{id}/programs.
func (s *Server) AssetProgramAddSubmit(w http.ResponseWriter, r *http.Request) {
	s.programAddSubmit(w, r, model.ProgramOwnerAsset, "/assets/%d")
}

// AssetProgramRemoveSubmit handles POST /assets/{id}/programs/{programID}/delete.
func (s *Server) AssetProgramRemoveSubmit(w http.ResponseWriter, r *http.Request) {
	s.programRemoveSubmit(w, r, model.ProgramOwnerAsset, "/assets/%d")
}

func (s *Server) programAddSubmit(w http.ResponseWriter, r *http.Request, ownerKind, redirect string) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	program := &model.Program{
		OwnerKind: ownerKind,
		AssetID:   id,
		Name:      r.FormValue("name"),
		Version:   r.FormValue("version"),
		Vendor:    r.FormValue("vendor"),
		LogoURL:   r.FormValue("logo_url"),
	}
	if err := program.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := store.AddProgram(r.Context(), s.DB, program); err != nil {
		if err == store.ErrDuplicateProgram {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		slog.Error("failed to add program", "error", err)
		http.Error(w, "failed to add program", http.StatusInternalServerError)
		return
	}

	slog.Info("program added", "program", program.Name, "owner", ownerKind,
		"owner_id", id, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf(redirect, id), http.StatusSeeOther)
}

func (s *Server) programRemoveSubmit(w http.ResponseWriter, r *http.Request, ownerKind, redirect string) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	programID, err := strconv.ParseInt(r.PathValue("programID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid program id", http.StatusBadRequest)
		return
	}

	if err := store.RemoveProgram(r.Context(), s.DB, ownerKind, id, programID); err != nil {
		slog.Error("failed to remove program", "error", err)
		http.Error(w, "failed to remove program", http.StatusInternalServerError)
		return
	}

	slog.Info("program removed", "program", programID, "owner", ownerKind,
		"owner_id", id, "admin", claims.Email)
	http.Redirect(w, r, fmt.Sprintf(redirect, id), http.StatusSeeOther)
}
