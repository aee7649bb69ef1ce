package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"mmmweb/internal/adapters/api"
	"mmmweb/internal/adapters/http/middleware"
	"mmmweb/internal/application/orchestrators"
	"mmmweb/internal/application/projections"
	"mmmweb/internal/domain/richtext"
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// apiContext returns a request context carrying the session's bearer token,
// so gateway calls authenticate as the signed-in user. Anonymous requests
// pass through unchanged.
func apiContext(r *http.Request) context.Context {
	ctx := r.Context()
	if sess, ok := middleware.GetSessionFromContext(ctx); ok {
		return api.ContextWithToken(ctx, sess.Token)
	}
	return ctx
}

// fieldErrors extracts the per-field error map from a gateway failure, or
// wraps any other error under a general key so templates render it the same way.
func fieldErrors(err error) map[string][]string {
	var re *api.RequestError
	if errors.As(err, &re) {
		return re.Fields
	}
	return map[string][]string{"general": {err.Error()}}
}

const templatesDir = "internal/adapters/http/templates"

// TemplatesDir allows tests run from other directories to point at the
// template tree.
var TemplatesDir = templatesDir

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":   func() bool { return loggedIn },
		"isAdmin":      func() bool { return loggedIn && sess.User.IsAdmin },
		"currentEmail": func() string { return sess.User.Email },
		"currentName":  func() string { return sess.User.Name },
		"csrfToken":    func() string { return csrf.Token(r) },
		"safeHTML":     func(s string) template.HTML { return template.HTML(s) },
		"assetURL":     func(u string) string { return clients.API.PublicURL(u) },
		"isActive": func(path string) bool {
			if path == "/" {
				return r.URL.Path == "/"
			}
			return strings.HasPrefix(r.URL.Path, path)
		},
		"renderMarkdown": func(md string) template.HTML {
			out, err := richtext.ConvertMarkdown(md)
			if err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(out)
		},
		"joinErrors": func(errs map[string][]string) string {
			return api.FieldErrors(errs).Join()
		},
	}

	layoutPath := filepath.Join(TemplatesDir, "layout.html")
	pagePath := filepath.Join(TemplatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
	}
}

// handleHome serves the home page and 404s everything else that fell through
// to the root pattern.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	servePage(w, r, "home")
}

// pageHandler returns a handler serving the page stored under slug.
func pageHandler(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		servePage(w, r, slug)
	}
}

func servePage(w http.ResponseWriter, r *http.Request, slug string) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view, err := projections.QueryGetPageView(apiContext(r), projections.GetPageViewDeps{
		Pages:    clients.API,
		News:     clients.API,
		Keynotes: clients.API,
		Dates:    clients.API,
	}, slug)
	if err != nil {
		renderTemplate(w, r, "page.html", map[string]any{
			"Title":  "Unavailable",
			"Slug":   slug,
			"Errors": fieldErrors(err),
		})
		return
	}

	renderTemplate(w, r, "page.html", map[string]any{
		"Title":    view.Page.Title,
		"Slug":     slug,
		"View":     view,
		"Sections": view.Sections,
	})
}

// handleOrganization renders committee members grouped by category.
func handleOrganization(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	groups, err := projections.QueryGetOrganization(apiContext(r), clients.API)
	if err != nil {
		renderTemplate(w, r, "organization.html", map[string]any{
			"Title":  "Organization",
			"Errors": fieldErrors(err),
		})
		return
	}
	renderTemplate(w, r, "organization.html", map[string]any{
		"Title":  "Organization",
		"Groups": groups,
	})
}

// handleRegister shows registration info (FAQs, deadlines) and accepts
// interest submissions.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := apiContext(r)

	render := func(submitted bool, submitErr error) {
		faqs, err := projections.QueryGetFaqs(ctx, clients.API)
		if err != nil {
			faqs = nil
		}
		dates, err := projections.QueryGetImportantDates(ctx, clients.API)
		if err != nil {
			dates = nil
		}
		data := map[string]any{
			"Title":     "Registration",
			"Faqs":      faqs,
			"Dates":     dates,
			"Submitted": submitted,
		}
		if submitErr != nil {
			data["Errors"] = fieldErrors(submitErr)
		}
		renderTemplate(w, r, "register.html", data)
	}

	switch r.Method {
	case "GET":
		render(false, nil)
	case "POST":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		err := orchestrators.ExecuteSubmitInterest(ctx, orchestrators.SubmitInterestInput{
			Name:        r.FormValue("Name"),
			Email:       r.FormValue("Email"),
			Affiliation: r.FormValue("Affiliation"),
			Message:     r.FormValue("Message"),
		}, orchestrators.SubmitInterestDeps{
			EmailSender: clients.EmailSender,
			ToAddress:   clients.InterestToAddress,
			FromAddress: clients.InterestFromAddress,
		})
		render(err == nil, err)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{"Title": "Sign in"})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}, orchestrators.LoginDeps{
			Auth:     authGateway{api: clients.API},
			Sessions: sessions,
		})
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"Title":  "Sign in",
				"Email":  r.FormValue("Email"),
				"Errors": fieldErrors(err),
			})
			return
		}

		middleware.SetSessionCookie(w, result.SessionID)
		if result.User.IsAdmin {
			http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		id, _ := middleware.SessionIDFromRequest(r)
		orchestrators.ExecuteLogout(r.Context(), orchestrators.LogoutInput{
			SessionID: id,
			Token:     sess.Token,
		}, orchestrators.LogoutDeps{
			Auth:     authGateway{api: clients.API},
			Sessions: sessions,
		})
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAdminPerf exposes the in-memory performance snapshot as JSON.
// Aggregation window and list size are fixed; this is an operator peek, not
// a metrics pipeline.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(time.Now().Add(-time.Hour), 20))
}
