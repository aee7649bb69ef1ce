package stubapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"mmmweb/internal/domain/account"
	"mmmweb/internal/domain/faq"
	"mmmweb/internal/domain/importantdate"
	"mmmweb/internal/domain/keynote"
	"mmmweb/internal/domain/news"
	"mmmweb/internal/domain/organization"
	"mmmweb/internal/domain/page"
)

// tokenTTL is the lifetime of issued bearer tokens.
const tokenTTL = 24 * time.Hour

// Server exposes the Store over the REST contract the site consumes.
// Responses are wrapped in the {success, data} envelope; errors use the
// per-field map shape.
type Server struct {
	store     *Store
	jwtSecret []byte
}

// NewServer creates a Server signing tokens with jwtSecret.
func NewServer(store *Store, jwtSecret []byte) *Server {
	return &Server{store: store, jwtSecret: jwtSecret}
}

// NewMux returns the backend route table.
func (s *Server) NewMux() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/me", s.handleMe)
	mux.HandleFunc("POST /auth/logout", s.handleLogoutToken)

	mux.HandleFunc("GET /pages/slug/{slug}", s.handlePageBySlug)
	mux.HandleFunc("POST /pages", s.requireAdmin(s.handleCreatePage))
	mux.HandleFunc("PATCH /pages/{id}", s.requireAdmin(s.handleUpdatePage))

	mux.HandleFunc("GET /news", s.handleListNews)
	mux.HandleFunc("POST /news", s.requireAdmin(s.handleSaveNews))
	mux.HandleFunc("PATCH /news/{id}", s.requireAdmin(s.handleSaveNews))
	mux.HandleFunc("DELETE /news/{id}", s.requireAdmin(s.handleDeleteNews))

	mux.HandleFunc("GET /keynotes", s.handleListKeynotes)
	mux.HandleFunc("POST /keynotes", s.requireAdmin(s.handleSaveKeynote))
	mux.HandleFunc("PUT /keynotes/{id}", s.requireAdmin(s.handleSaveKeynote))
	mux.HandleFunc("DELETE /keynotes/{id}", s.requireAdmin(s.handleDeleteKeynote))

	mux.HandleFunc("GET /important-dates", s.handleListDates)
	mux.HandleFunc("POST /important-dates", s.requireAdmin(s.handleSaveDate))
	mux.HandleFunc("PATCH /important-dates/{id}", s.requireAdmin(s.handleSaveDate))
	mux.HandleFunc("DELETE /important-dates/{id}", s.requireAdmin(s.handleDeleteDate))

	mux.HandleFunc("GET /faqs", s.handleListFaqs)
	mux.HandleFunc("POST /faqs", s.requireAdmin(s.handleSaveFaq))
	mux.HandleFunc("PUT /faqs/{id}", s.requireAdmin(s.handleSaveFaq))
	mux.HandleFunc("DELETE /faqs/{id}", s.requireAdmin(s.handleDeleteFaq))

	mux.HandleFunc("GET /organizations", s.handleListMembers)
	mux.HandleFunc("POST /organizations", s.requireAdmin(s.handleSaveMember))
	mux.HandleFunc("PUT /organizations/{id}", s.requireAdmin(s.handleSaveMember))
	mux.HandleFunc("DELETE /organizations/{id}", s.requireAdmin(s.handleDeleteMember))
	mux.HandleFunc("PATCH /organizations/category", s.requireAdmin(s.handleRenameCategory))
	mux.HandleFunc("POST /organizations/category", s.requireAdmin(s.handleDeleteCategory))

	return mux
}

// --- response helpers ---

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": status < 400, "data": data})
}

func respondErrors(w http.ResponseWriter, status int, errs map[string][]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": errs})
}

func respondError(w http.ResponseWriter, status int, field, msg string) {
	respondErrors(w, status, map[string][]string{field: {msg}})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// --- auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) issueToken(u User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(u.ID, 10),
		"email": u.Email,
		"admin": u.IsAdmin,
		"exp":   time.Now().Add(tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// authenticate resolves the bearer token to a user.
func (s *Server) authenticate(r *http.Request) (User, bool) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return User{}, false
	}
	token, err := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})).
		Parse(raw, func(t *jwt.Token) (any, error) { return s.jwtSecret, nil })
	if err != nil || !token.Valid {
		return User{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, false
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return User{}, false
	}
	u, err := s.store.UserByID(r.Context(), id)
	if err != nil {
		return User{}, false
	}
	return u, true
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.authenticate(r)
		if !ok || !u.IsAdmin {
			respondError(w, http.StatusUnauthorized, "auth", "admin authorization required")
			return
		}
		next(w, r)
	}
}

func currentUserPayload(u User) account.CurrentUser {
	return account.CurrentUser{ID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "body", "malformed login request")
		return
	}
	u, err := s.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "credentials", "invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "credentials", "invalid email or password")
		return
	}
	token, err := s.issueToken(u)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "auth", "could not issue token")
		return
	}
	slog.Info("stubapi_event", "event", "login", "email", u.Email)
	respond(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  currentUserPayload(u),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "auth", "invalid or expired token")
		return
	}
	respond(w, http.StatusOK, currentUserPayload(u))
}

func (s *Server) handleLogoutToken(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout succeeds unconditionally
	respond(w, http.StatusOK, map[string]any{"logged_out": true})
}

// --- pages ---

func (s *Server) handlePageBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.PageBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		respondError(w, http.StatusNotFound, "page", "page not found")
		return
	}
	respond(w, http.StatusOK, p)
}

func (s *Server) decodePage(w http.ResponseWriter, r *http.Request) (page.Page, bool) {
	var p page.Page
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "body", "malformed page document")
		return page.Page{}, false
	}
	if err := p.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "page", err.Error())
		return page.Page{}, false
	}
	return p, true
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodePage(w, r)
	if !ok {
		return
	}
	p.ID = 0
	saved, err := s.store.SavePage(r.Context(), p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "page", err.Error())
		return
	}
	respond(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "id", "invalid page id")
		return
	}
	p, ok := s.decodePage(w, r)
	if !ok {
		return
	}
	p.ID = id
	saved, err := s.store.SavePage(r.Context(), p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "page", err.Error())
		return
	}
	respond(w, http.StatusOK, saved)
}

// --- news ---

func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListNews(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "news", err.Error())
		return
	}
	if items == nil {
		items = []news.Item{}
	}
	respond(w, http.StatusOK, items)
}

func (s *Server) handleSaveNews(w http.ResponseWriter, r *http.Request) {
	var n news.Item
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		respondError(w, http.StatusBadRequest, "body", "malformed news item")
		return
	}
	if id, ok := pathID(r); ok {
		n.ID = id
	} else {
		n.ID = 0
	}
	if err := n.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "news", err.Error())
		return
	}
	saved, err := s.store.SaveNews(r.Context(), n)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "news", err.Error())
		return
	}
	respond(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteNews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "id", "invalid news id")
		return
	}
	if err := s.store.DeleteNews(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "news", err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"deleted": id})
}

// --- keynotes ---

func (s *Server) handleListKeynotes(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListKeynotes(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "keynotes", err.Error())
		return
	}
	if items == nil {
		items = []keynote.Keynote{}
	}
	respond(w, http.StatusOK, items)
}

func (s *Server) handleSaveKeynote(w http.ResponseWriter, r *http.Request) {
	var k keynote.Keynote
	if err := json.NewDecoder(r.Body).Decode(&k); err != nil {
		respondError(w, http.StatusBadRequest, "body", "malformed keynote")
		return
	}
	if id, ok := pathID(r); ok {
		k.ID = id
	} else {
		k.ID = 0
	}
	if err := k.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "keynote", err.Error())
		return
	}
	saved, err := s.store.SaveKeynote(r.Context(), k)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "keynote", err.Error())
		return
	}
	respond(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteKeynote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "id", "invalid keynote id")
		return
	}
	if err := s.store.DeleteKeynote(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "keynote", err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"deleted": id})
}

// --- important dates ---

func (s *Server) handleListDates(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListImportantDates(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "dates", err.Error())
		return
	}
	if items == nil {
		items = []importantdate.Date{}
	}
	respond(w, http.StatusOK, items)
}

func (s *Server) handleSaveDate(w http.ResponseWriter, r *http.Request) {
	var d importantdate.Date
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respondError(w, http.StatusBadRequest, "body", "malformed date")
		return
	}
	if id, ok := pathID(r); ok {
		d.ID = id
	} else {
		d.ID = 0
	}
	if err := d.Validate(time.Now()); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "due_date", err.Error())
		return
	}
	saved, err := s.store.SaveImportantDate(r.Context(), d)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "date", err.Error())
		return
	}
	respond(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteDate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "id", "invalid date id")
		return
	}
	if err := s.store.DeleteImportantDate(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "date", err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"deleted": id})
}

// --- faqs ---

func (s *Server) handleListFaqs(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListFaqs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "faqs", err.Error())
		return
	}
	if items == nil {
		items = []faq.Item{}
	}
	respond(w, http.StatusOK, items)
}

func (s *Server) handleSaveFaq(w http.ResponseWriter, r *http.Request) {
	var f faq.Item
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respondError(w, http.StatusBadRequest, "body", "malformed faq")
		return
	}
	if id, ok := pathID(r); ok {
		f.ID = id
	} else {
		f.ID = 0
	}
	if err := f.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "faq", err.Error())
		return
	}
	saved, err := s.store.SaveFaq(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "faq", err.Error())
		return
	}
	respond(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteFaq(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "id", "invalid faq id")
		return
	}
	if err := s.store.DeleteFaq(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "faq", err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"deleted": id})
}

// --- members ---

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListMembers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "members", err.Error())
		return
	}
	if items == nil {
		items = []organization.Member{}
	}
	respond(w, http.StatusOK, items)
}

func (s *Server) handleSaveMember(w http.ResponseWriter, r *http.Request) {
	var m organization.Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		respondError(w, http.StatusBadRequest, "body", "malformed member")
		return
	}
	if id, ok := pathID(r); ok {
		m.ID = id
	} else {
		m.ID = 0
	}
	if err := m.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "member", err.Error())
		return
	}
	saved, err := s.store.SaveMember(r.Context(), m)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "member", err.Error())
		return
	}
	respond(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "id", "invalid member id")
		return
	}
	if err := s.store.DeleteMember(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "member", err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OldCategory string `json:"old_category"`
		NewCategory string `json:"new_category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OldCategory == "" || body.NewCategory == "" {
		respondError(w, http.StatusBadRequest, "category", "old_category and new_category are required")
		return
	}
	if err := s.store.RenameCategory(r.Context(), body.OldCategory, body.NewCategory); err != nil {
		respondError(w, http.StatusInternalServerError, "category", err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"renamed": body.NewCategory})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Category == "" {
		respondError(w, http.StatusBadRequest, "category", "category is required")
		return
	}
	if err := s.store.DeleteCategory(r.Context(), body.Category); err != nil {
		respondError(w, http.StatusInternalServerError, "category", err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{"deleted": body.Category})
}
