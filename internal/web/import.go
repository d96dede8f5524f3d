package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"assetdesk/internal/csvimport"
	"assetdesk/internal/store"
)

// ImportPage handles GET /import.
func (s *Server) ImportPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "import.html", &PageData{Title: "Import employees", Admin: claims})
}

// ImportSubmit handles POST /import. Rows are matched to existing employees
// by email; rows without one are skipped.
func (s *Server) ImportSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	renderError := func(msg string) {
		s.Templates.Render(w, "import.html", &PageData{
			Title: "Import employees", Admin: claims, Error: msg,
		})
	}

	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		renderError("File too large or invalid upload.")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		renderError("Choose a CSV file to import.")
		return
	}
	defer file.Close()

	result, err := csvimport.Parse(file)
	if err != nil {
		renderError(err.Error())
		return
	}

	imported, failed := 0, 0
	for i := range result.Users {
		u := &result.Users[i]
		if err := store.UpsertUserByEmail(r.Context(), s.DB, u); err != nil {
			slog.Warn("import row failed", "email", u.Email, "error", err)
			failed++
			continue
		}
		imported++
	}

	slog.Info("users imported", "imported", imported, "skipped", result.Skipped,
		"failed", failed, "admin", claims.Email)

	msg := fmt.Sprintf("Imported %d employees.", imported)
	if result.Skipped > 0 {
		msg += fmt.Sprintf(" Skipped %d rows without an email.", result.Skipped)
	}
	if failed > 0 {
		msg += fmt.Sprintf(" %d rows failed.", failed)
	}

	s.Templates.Render(w, "import.html", &PageData{
		Title: "Import employees", Admin: claims, Success: msg,
	})
}
