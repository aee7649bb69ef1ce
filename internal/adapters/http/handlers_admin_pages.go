package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"mmmweb/internal/application/orchestrators"
	"mmmweb/internal/domain/page"
)

// editableSlugs are the site pages exposed in the editor's page picker.
var editableSlugs = []string{"home", "conference", "calls", "authors", "attending"}

// handleAdminPages serves the section editor. GET renders the editor with the
// selected page's document; POST accepts the edited document as JSON from the
// editor script and saves it through the gateway.
func handleAdminPages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		slug := r.URL.Query().Get("slug")
		if slug == "" {
			slug = "home"
		}

		p, err := clients.API.PageBySlug(apiContext(r), slug)
		if err != nil {
			renderTemplate(w, r, "admin_pages.html", map[string]any{
				"Title":  "Edit pages",
				"Slugs":  editableSlugs,
				"Slug":   slug,
				"Errors": fieldErrors(err),
			})
			return
		}
		p.EnsureSeeded()

		// The editor script consumes the raw document
		docJSON, err := json.Marshal(p)
		if err != nil {
			internalError(w, err)
			return
		}

		renderTemplate(w, r, "admin_pages.html", map[string]any{
			"Title":    "Edit pages",
			"Slugs":    editableSlugs,
			"Slug":     slug,
			"Page":     p,
			"PageJSON": string(docJSON),
		})

	case "POST":
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			http.Error(w, "expected application/json", http.StatusUnsupportedMediaType)
			return
		}
		var p page.Page
		if err := strictDecode(r, &p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"errors": map[string][]string{"document": {"malformed page document"}},
			})
			return
		}

		saved, err := orchestrators.ExecuteSavePage(apiContext(r), orchestrators.SavePageInput{Page: p},
			orchestrators.SavePageDeps{Pages: clients.API})
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrors(err)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": saved})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
