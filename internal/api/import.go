package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"assetdesk/internal/csvimport"
	"assetdesk/internal/store"
)

// ImportHandler handles bulk user import from CSV files.
type ImportHandler struct {
	DB *sql.DB
}

type importResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Users handles POST /api/import/users. Rows are matched to existing users
// by email: known emails are updated in place, new ones inserted. Rows
// without an email are skipped; a row that fails to persist is counted but
// does not abort the rest of the file.
func (h *ImportHandler) Users(w http.ResponseWriter, r *http.Request) {
	// Limit to 10 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "CSV file required")
		return
	}
	defer file.Close()

	result, err := csvimport.Parse(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := importResponse{Skipped: result.Skipped}
	for i := range result.Users {
		u := &result.Users[i]
		if err := store.UpsertUserByEmail(r.Context(), h.DB, u); err != nil {
			slog.Warn("import row failed", "email", u.Email, "error", err)
			resp.Failed++
			continue
		}
		resp.Imported++
	}

	claims := GetClaims(r.Context())
	slog.Info("users imported", "imported", resp.Imported, "skipped", resp.Skipped,
		"failed", resp.Failed, "admin", claims.Email)
	jsonResponse(w, http.StatusOK, resp)
}
