package web_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	_ "modernc.org/sqlite"

	"mmmweb/internal/adapters/api"
	"mmmweb/internal/adapters/email"
	web "mmmweb/internal/adapters/http"
	"mmmweb/internal/adapters/http/middleware"
	"mmmweb/internal/adapters/http/perf"
	"mmmweb/internal/stubapi"
)

const (
	adminEmail    = "admin@mmm.org"
	adminPassword = "secret123"
)

// captureSender records the last interest email instead of delivering it.
type captureSender struct {
	mu   sync.Mutex
	last email.SendRequest
	sent int
}

func (c *captureSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = req
	c.sent++
	return email.SendResult{MessageID: "captured"}, nil
}

type testApp struct {
	server *httptest.Server
	client *http.Client
	emails *captureSender
}

// newTestApp stands up the full stack: SQLite-backed stub backend, gateway
// client, and the web mux with all middleware applied.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	// modernc sqlite in-memory databases are per-connection
	db.SetMaxOpenConns(1)

	store := stubapi.NewStore(db)
	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.Seed(ctx, adminEmail, adminPassword); err != nil {
		t.Fatal(err)
	}
	backend := httptest.NewServer(stubapi.NewServer(store, []byte("test-secret")).NewMux())
	t.Cleanup(backend.Close)

	web.TemplatesDir = "templates"
	web.RateLimitPerSecond = 1000

	// Reserve the server address up front so it can be registered as a CSRF
	// trusted origin before the mux (and its csrf.Protect options) is built.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins, ln.Addr().String())

	emails := &captureSender{}
	handler := web.NewMux(t.TempDir(), &web.Clients{
		API:                 api.New(backend.URL),
		EmailSender:         emails,
		InterestToAddress:   "board@mmm.org",
		InterestFromAddress: "site@mmm.org",
	}, perf.NewCollector(perf.DefaultRingSize))

	srv := httptest.NewUnstartedServer(handler)
	srv.Listener.Close()
	srv.Listener = ln
	srv.Start()
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testApp{
		server: srv,
		client: &http.Client{Jar: jar},
		emails: emails,
	}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Browsers send an Origin header on form POSTs; gorilla/csrf requires it.
	req.Header.Set("Origin", a.server.URL)
	resp, err := a.client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

var csrfTokenPattern = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

// csrfToken fetches path and extracts the form token from the rendered page.
func (a *testApp) csrfToken(t *testing.T, path string) string {
	t.Helper()
	resp, body := a.get(t, path)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d", path, resp.StatusCode)
	}
	m := csrfTokenPattern.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no CSRF token in %s response", path)
	}
	return m[1]
}

func (a *testApp) loginAsAdmin(t *testing.T) {
	t.Helper()
	token := a.csrfToken(t, "/login")
	resp, body := a.postForm(t, "/login", url.Values{
		"gorilla.csrf.Token": {token},
		"Email":              {adminEmail},
		"Password":           {adminPassword},
	})
	if resp.Request.URL.Path != "/admin/pages" {
		t.Fatalf("login landed on %s, status %d, body:\n%s", resp.Request.URL.Path, resp.StatusCode, body)
	}
}

func TestHomePageRenders(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "MMM 2026 content coming soon.") {
		t.Errorf("seeded section missing from body:\n%s", body)
	}
	if !strings.Contains(body, `href="/organization"`) {
		t.Error("navigation missing")
	}
	if strings.Contains(body, "admin-nav") {
		t.Error("admin navigation shown to anonymous visitor")
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	app := newTestApp(t)
	resp, _ := app.get(t, "/no-such-page")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestRegisterPageShowsSeededDatesAndFaqs(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/register")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Paper submission deadline") {
		t.Error("important dates missing")
	}
	if !strings.Contains(body, "When does registration open?") {
		t.Error("FAQ missing")
	}
	// Markdown answers render as HTML
	if !strings.Contains(body, "<strong>notification of acceptance</strong>") {
		t.Errorf("FAQ answer not rendered as markdown:\n%s", body)
	}
}

func TestOrganizationPageGroupsMembers(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/organization")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "General Chairs") || !strings.Contains(body, "To Be Announced") {
		t.Errorf("seeded committee missing:\n%s", body)
	}
}

func TestAdminRedirectsAnonymous(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/admin/pages", "/admin/news", "/admin/perf"} {
		resp, _ := app.get(t, path)
		if resp.Request.URL.Path != "/" {
			t.Errorf("GET %s landed on %s", path, resp.Request.URL.Path)
		}
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app := newTestApp(t)

	token := app.csrfToken(t, "/login")
	resp, body := app.postForm(t, "/login", url.Values{
		"gorilla.csrf.Token": {token},
		"Email":              {adminEmail},
		"Password":           {"wrong"},
	})
	if resp.StatusCode != http.StatusOK || resp.Request.URL.Path != "/login" {
		t.Fatalf("status = %d, path = %s", resp.StatusCode, resp.Request.URL.Path)
	}
	if !strings.Contains(body, `class="errors"`) {
		t.Errorf("error block missing:\n%s", body)
	}
	// The entered email is kept so the admin only retypes the password
	if !strings.Contains(body, adminEmail) {
		t.Error("email not preserved in the form")
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	app := newTestApp(t)
	app.loginAsAdmin(t)

	resp, body := app.get(t, "/admin/news")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin page after login: status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Manage news") {
		t.Errorf("admin news page not rendered:\n%s", body)
	}

	token := csrfTokenPattern.FindStringSubmatch(body)
	if token == nil {
		t.Fatal("no CSRF token on admin page")
	}
	resp, _ = app.postForm(t, "/logout", url.Values{"gorilla.csrf.Token": {token[1]}})
	if resp.Request.URL.Path != "/" {
		t.Fatalf("logout landed on %s", resp.Request.URL.Path)
	}

	resp, _ = app.get(t, "/admin/news")
	if resp.Request.URL.Path != "/" {
		t.Error("admin page reachable after logout")
	}
}

func TestEditorSaveSanitizesAndPublishes(t *testing.T) {
	app := newTestApp(t)
	app.loginAsAdmin(t)

	doc := map[string]any{
		"id":        1,
		"slug":      "home",
		"title":     "MMM 2026",
		"component": "",
		"json": map[string]any{
			"sections": []map[string]any{
				{
					"id":   "s1",
					"type": "text",
					"data": map[string]any{"html": `<p>Welcome to Taipei<script>alert(1)</script></p>`},
				},
			},
		},
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	// JSON saves are authenticated by the session cookie and exempt from the
	// form CSRF token
	resp, err := app.client.Post(app.server.URL+"/admin/pages", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d, body: %s", resp.StatusCode, raw)
	}
	var saved struct {
		Data struct {
			JSON struct {
				Sections []struct {
					Data struct {
						HTML string `json:"html"`
					} `json:"data"`
				} `json:"sections"`
			} `json:"json"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &saved); err != nil {
		t.Fatalf("decode save response: %v", err)
	}
	if got := saved.Data.JSON.Sections[0].Data.HTML; strings.Contains(got, "script") {
		t.Errorf("script survived sanitization: %q", got)
	}

	_, body := app.get(t, "/")
	if !strings.Contains(body, "Welcome to Taipei") {
		t.Error("saved content not published")
	}
	if strings.Contains(body, "alert(1)") {
		t.Error("unsafe markup published")
	}
}

func TestEditorSaveRejectsInvalidDocument(t *testing.T) {
	app := newTestApp(t)
	app.loginAsAdmin(t)

	resp, err := app.client.Post(app.server.URL+"/admin/pages", "application/json",
		strings.NewReader(`{"id":1,"slug":"home","title":"","json":{"sections":[]}}`))
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body: %s", resp.StatusCode, raw)
	}
	if !strings.Contains(string(raw), "errors") {
		t.Errorf("no errors in response: %s", raw)
	}
}

func TestAdminNewsLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.loginAsAdmin(t)

	token := app.csrfToken(t, "/admin/news")
	resp, body := app.postForm(t, "/admin/news", url.Values{
		"gorilla.csrf.Token": {token},
		"action":             {"save"},
		"PageID":             {"1"},
		"Title":              {"Call for papers online"},
		"Content":            {"Submissions open today."},
		"PublishedAt":        {"2026-01-10"},
	})
	if resp.Request.URL.Path != "/admin/news" || resp.StatusCode != http.StatusOK {
		t.Fatalf("save landed on %s with status %d:\n%s", resp.Request.URL.Path, resp.StatusCode, body)
	}
	if !strings.Contains(body, "Call for papers online") {
		t.Fatalf("saved item not listed:\n%s", body)
	}

	// The home page now carries the auto-injected news section
	_, home := app.get(t, "/")
	if !strings.Contains(home, "Call for papers online") {
		t.Error("news not injected on home page")
	}

	// First delete click asks for confirmation instead of deleting
	idMatch := regexp.MustCompile(`name="ID" value="(\d+)"`).FindStringSubmatch(body)
	if idMatch == nil {
		t.Fatalf("no item ID in list:\n%s", body)
	}
	token = app.csrfToken(t, "/admin/news")
	_, body = app.postForm(t, "/admin/news", url.Values{
		"gorilla.csrf.Token": {token},
		"action":             {"delete"},
		"ID":                 {idMatch[1]},
	})
	if !strings.Contains(body, "confirm-text") {
		t.Fatalf("no confirmation prompt:\n%s", body)
	}
	if !strings.Contains(body, "Call for papers online") {
		t.Fatal("item deleted before confirmation")
	}

	token = csrfTokenPattern.FindStringSubmatch(body)[1]
	_, body = app.postForm(t, "/admin/news", url.Values{
		"gorilla.csrf.Token": {token},
		"action":             {"confirm-delete"},
		"ID":                 {idMatch[1]},
	})
	if strings.Contains(body, "Call for papers online") {
		t.Errorf("item survived confirmed delete:\n%s", body)
	}
}

func TestInterestSubmissionSendsEmail(t *testing.T) {
	app := newTestApp(t)

	token := app.csrfToken(t, "/register")
	resp, body := app.postForm(t, "/register", url.Values{
		"gorilla.csrf.Token": {token},
		"Name":               {"Dr. <Lee>"},
		"Email":              {"lee@example.edu"},
		"Affiliation":        {"NTU"},
		"Message":            {"Interested in a workshop slot."},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "we have received your details") {
		t.Errorf("no success message:\n%s", body)
	}

	if app.emails.sent != 1 {
		t.Fatalf("emails sent = %d", app.emails.sent)
	}
	got := app.emails.last
	if got.To[0] != "board@mmm.org" || got.ReplyTo != "lee@example.edu" {
		t.Errorf("email routing = %+v", got)
	}
	if !strings.Contains(got.HTML, "&lt;Lee&gt;") || strings.Contains(got.HTML, "<Lee>") {
		t.Errorf("submitter input not escaped: %s", got.HTML)
	}
}

func TestInterestSubmissionValidation(t *testing.T) {
	app := newTestApp(t)

	token := app.csrfToken(t, "/register")
	_, body := app.postForm(t, "/register", url.Values{
		"gorilla.csrf.Token": {token},
		"Name":               {""},
		"Email":              {"not-an-email"},
	})
	if !strings.Contains(body, `class="errors"`) {
		t.Errorf("no error block:\n%s", body)
	}
	if app.emails.sent != 0 {
		t.Errorf("email sent for invalid submission")
	}
}

func TestAdminPerfSnapshot(t *testing.T) {
	app := newTestApp(t)
	app.loginAsAdmin(t)

	resp, body := app.get(t, "/admin/perf")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}
	var snapshot map[string]any
	if err := json.Unmarshal([]byte(body), &snapshot); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
}
