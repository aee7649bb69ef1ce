package web

import (
	"net/http"

	"mmmweb/internal/adapters/http/middleware"
)

// registerRoutes attaches all application routes to the mux. Admin screens
// are wrapped with RequireAdmin; everything else is public.
func registerRoutes(mux *http.ServeMux) {
	// Public site pages, each backed by a stored page document
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/conference", pageHandler("conference"))
	mux.HandleFunc("/calls", pageHandler("calls"))
	mux.HandleFunc("/authors", pageHandler("authors"))
	mux.HandleFunc("/attending", pageHandler("attending"))
	mux.HandleFunc("/organization", handleOrganization)
	mux.HandleFunc("/register", handleRegister)

	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	// Admin content management
	mux.Handle("/admin/pages", middleware.RequireAdmin(http.HandlerFunc(handleAdminPages)))
	mux.Handle("/admin/news", middleware.RequireAdmin(http.HandlerFunc(handleAdminNews)))
	mux.Handle("/admin/keynotes", middleware.RequireAdmin(http.HandlerFunc(handleAdminKeynotes)))
	mux.Handle("/admin/faqs", middleware.RequireAdmin(http.HandlerFunc(handleAdminFaqs)))
	mux.Handle("/admin/dates", middleware.RequireAdmin(http.HandlerFunc(handleAdminDates)))
	mux.Handle("/admin/organization", middleware.RequireAdmin(http.HandlerFunc(handleAdminOrganization)))
	mux.Handle("/admin/perf", middleware.RequireAdmin(http.HandlerFunc(handleAdminPerf)))
}
