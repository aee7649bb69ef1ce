package web

import (
	"net/http"
	"strconv"
	"time"

	"mmmweb/internal/application/orchestrators"
	"mmmweb/internal/application/projections"
	"mmmweb/internal/domain/importantdate"
)

// handleAdminDates serves the important-dates manager. The future-date rule
// is enforced before the gateway is touched, so the inline error appears
// without a round trip to the backend.
func handleAdminDates(w http.ResponseWriter, r *http.Request) {
	ctx := apiContext(r)

	render := func(data map[string]any) {
		if _, ok := data["ConfirmDelete"]; !ok {
			data["ConfirmDelete"] = int64(0)
		}
		items, err := projections.QueryGetImportantDates(ctx, clients.API)
		if err != nil {
			data["Errors"] = fieldErrors(err)
		}
		data["Title"] = "Manage important dates"
		data["Items"] = items
		renderTemplate(w, r, "admin_dates.html", data)
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
		deps := orchestrators.SaveImportantDateDeps{Dates: clients.API, Now: time.Now}

		switch r.FormValue("action") {
		case "save":
			d := importantdate.Date{
				ID:      id,
				DueDate: r.FormValue("DueDate"),
				Title:   r.FormValue("Title"),
			}
			if _, err := orchestrators.ExecuteSaveImportantDate(ctx, orchestrators.SaveImportantDateInput{Date: d}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err), "Editing": d})
				return
			}
			http.Redirect(w, r, "/admin/dates", http.StatusSeeOther)

		case "delete":
			render(map[string]any{"ConfirmDelete": id})

		case "confirm-delete":
			if err := orchestrators.ExecuteDeleteImportantDate(ctx, orchestrators.DeleteImportantDateInput{ID: id}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err)})
				return
			}
			http.Redirect(w, r, "/admin/dates", http.StatusSeeOther)

		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
