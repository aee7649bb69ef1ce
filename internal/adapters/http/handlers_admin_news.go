package web

import (
	"net/http"
	"strconv"

	"mmmweb/internal/application/orchestrators"
	"mmmweb/internal/application/projections"
	"mmmweb/internal/domain/news"
)

// handleAdminNews serves the news manager. GET lists all items; POST handles
// save and the two-step delete (a first delete click re-renders the list with
// an inline confirm form instead of a browser dialog).
func handleAdminNews(w http.ResponseWriter, r *http.Request) {
	ctx := apiContext(r)

	render := func(data map[string]any) {
		if _, ok := data["ConfirmDelete"]; !ok {
			data["ConfirmDelete"] = int64(0)
		}
		items, err := projections.QueryGetNewsList(ctx, clients.API, 0)
		if err != nil {
			data["Errors"] = fieldErrors(err)
		}
		data["Title"] = "Manage news"
		data["Items"] = items
		renderTemplate(w, r, "admin_news.html", data)
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
		deps := orchestrators.SaveNewsDeps{News: clients.API}

		switch r.FormValue("action") {
		case "save":
			pageID, _ := strconv.ParseInt(r.FormValue("PageID"), 10, 64)
			item := news.Item{
				ID:          id,
				PageID:      pageID,
				Title:       r.FormValue("Title"),
				Content:     r.FormValue("Content"),
				PublishedAt: r.FormValue("PublishedAt"),
				LinkText:    r.FormValue("LinkText"),
				LinkURL:     r.FormValue("LinkURL"),
			}
			if _, err := orchestrators.ExecuteSaveNews(ctx, orchestrators.SaveNewsInput{Item: item}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err), "Editing": item})
				return
			}
			http.Redirect(w, r, "/admin/news", http.StatusSeeOther)

		case "delete":
			// First click: ask for confirmation inline
			render(map[string]any{"ConfirmDelete": id})

		case "confirm-delete":
			if err := orchestrators.ExecuteDeleteNews(ctx, orchestrators.DeleteNewsInput{ID: id}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err)})
				return
			}
			http.Redirect(w, r, "/admin/news", http.StatusSeeOther)

		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
