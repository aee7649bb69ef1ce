package web

import (
	"net/http"
	"strconv"

	"mmmweb/internal/application/orchestrators"
	"mmmweb/internal/application/projections"
	"mmmweb/internal/domain/faq"
)

// handleAdminFaqs serves the FAQ manager. Answers are markdown; the public
// registration page renders them through the markdown pipeline.
func handleAdminFaqs(w http.ResponseWriter, r *http.Request) {
	ctx := apiContext(r)

	render := func(data map[string]any) {
		if _, ok := data["ConfirmDelete"]; !ok {
			data["ConfirmDelete"] = int64(0)
		}
		items, err := projections.QueryGetFaqs(ctx, clients.API)
		if err != nil {
			data["Errors"] = fieldErrors(err)
		}
		data["Title"] = "Manage FAQs"
		data["Items"] = items
		renderTemplate(w, r, "admin_faqs.html", data)
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
		deps := orchestrators.SaveFaqDeps{Faqs: clients.API}

		switch r.FormValue("action") {
		case "save":
			order, _ := strconv.Atoi(r.FormValue("Order"))
			item := faq.Item{
				ID:       id,
				Question: r.FormValue("Question"),
				Answer:   r.FormValue("Answer"),
				Order:    order,
			}
			if _, err := orchestrators.ExecuteSaveFaq(ctx, orchestrators.SaveFaqInput{Item: item}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err), "Editing": item})
				return
			}
			http.Redirect(w, r, "/admin/faqs", http.StatusSeeOther)

		case "delete":
			render(map[string]any{"ConfirmDelete": id})

		case "confirm-delete":
			if err := orchestrators.ExecuteDeleteFaq(ctx, orchestrators.DeleteFaqInput{ID: id}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err)})
				return
			}
			http.Redirect(w, r, "/admin/faqs", http.StatusSeeOther)

		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
