package web

import (
	"net/http"
	"strconv"

	"mmmweb/internal/application/orchestrators"
	"mmmweb/internal/application/projections"
	"mmmweb/internal/domain/organization"
)

// handleAdminOrganization serves the committee manager: member CRUD plus
// category-level rename and delete, which the backend applies across all
// members of the category.
func handleAdminOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := apiContext(r)

	render := func(data map[string]any) {
		if _, ok := data["ConfirmDelete"]; !ok {
			data["ConfirmDelete"] = int64(0)
		}
		if _, ok := data["ConfirmDeleteCategory"]; !ok {
			data["ConfirmDeleteCategory"] = ""
		}
		groups, err := projections.QueryGetOrganization(ctx, clients.API)
		if err != nil {
			data["Errors"] = fieldErrors(err)
		}
		data["Title"] = "Manage organization"
		data["Groups"] = groups
		renderTemplate(w, r, "admin_organization.html", data)
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
		deps := orchestrators.SaveMemberDeps{Members: clients.API}

		switch r.FormValue("action") {
		case "save":
			m := organization.Member{
				ID:          id,
				Name:        r.FormValue("Name"),
				Affiliation: r.FormValue("Affiliation"),
				Category:    r.FormValue("Category"),
				PhotoURL:    r.FormValue("PhotoURL"),
			}
			if _, err := orchestrators.ExecuteSaveMember(ctx, orchestrators.SaveMemberInput{Member: m}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err), "Editing": m})
				return
			}
			http.Redirect(w, r, "/admin/organization", http.StatusSeeOther)

		case "delete":
			render(map[string]any{"ConfirmDelete": id})

		case "confirm-delete":
			if err := orchestrators.ExecuteDeleteMember(ctx, orchestrators.DeleteMemberInput{ID: id}, deps); err != nil {
				render(map[string]any{"Errors": fieldErrors(err)})
				return
			}
			http.Redirect(w, r, "/admin/organization", http.StatusSeeOther)

		case "rename-category":
			err := orchestrators.ExecuteRenameCategory(ctx, orchestrators.RenameCategoryInput{
				OldName: r.FormValue("OldCategory"),
				NewName: r.FormValue("NewCategory"),
			}, deps)
			if err != nil {
				render(map[string]any{"Errors": fieldErrors(err)})
				return
			}
			http.Redirect(w, r, "/admin/organization", http.StatusSeeOther)

		case "delete-category":
			render(map[string]any{"ConfirmDeleteCategory": r.FormValue("Category")})

		case "confirm-delete-category":
			err := orchestrators.ExecuteDeleteCategory(ctx, orchestrators.DeleteCategoryInput{
				Category: r.FormValue("Category"),
			}, deps)
			if err != nil {
				render(map[string]any{"Errors": fieldErrors(err)})
				return
			}
			http.Redirect(w, r, "/admin/organization", http.StatusSeeOther)

		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
