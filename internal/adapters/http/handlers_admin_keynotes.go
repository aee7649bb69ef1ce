package web

import (
	"net/http"
	"strconv"

	"mmmweb/internal/application/orchestrators"
	"mmmweb/internal/application/projections"
	"mmmweb/internal/domain/keynote"
)

// handleAdminKeynotes serves the keynote manager.
func handleAdminKeynotes(w http.ResponseWriter, r *http.Request) {
	ctx := apiContext(r)

	render := func(data map[string]any) {
		if _, ok := data["ConfirmDelete"]; !ok {
			data["ConfirmDelete"] = int64(0)
		}
		items, err := projections.QueryGetKeynotes(ctx, clients.API)
		if err != nil {
			data["Errors"] = fieldErrors(err)
		}
		data["Title"] = "Manage keynotes"
		data["Items"] = items
		renderTemplate(w, r, "admin_keynotes.html", data)
	}

	switch r.Method {
	case "GET":
		render(map[string]any{})

	case "POST":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		id, _ := strconv.ParseInt(r.FormValue("ID"), 10, 64)
		deps := orchestrators.SaveKeynoteDeps{Keynotes: clients.API}

		switch r.FormValue("action") {
		case "save":
			pageID, _ := strconv.ParseInt(r.FormValue("PageID"), 10, 64)
			k := keynote.Keynote{
				ID:          id,
				PageID:      pageID,
				Name:        r.FormValue("Name"),
				PhotoURL:    r.FormValue("PhotoURL"),
				Affiliation: r.FormValue("Affiliation"),
				Title:       r.FormValue("TalkTitle"),
				Bio:         r.FormValue("Bio"),
				Content:     r.FormValue("Content"),
				Date:        r.FormValue("Date"),
				Time:        r.FormValue("Time"),
			}
			if _, err := orchestrators.ExecuteSaveKeynote(ctx, orchestrators.SaveKeynoteInput{Keynote: k}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err), "Editing": k})
				return
			}
			http.Redirect(w, r, "/admin/keynotes", http.StatusSeeOther)

		case "delete":
			render(map[string]any{"ConfirmDelete": id})

		case "confirm-delete":
			if err := orchestrators.ExecuteDeleteKeynote(ctx, orchestrators.DeleteKeynoteInput{ID: id}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err)})
				return
			}
			http.Redirect(w, r, "/admin/keynotes", http.StatusSeeOther)

		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
