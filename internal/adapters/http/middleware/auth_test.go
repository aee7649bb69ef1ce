package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mmmweb/internal/adapters/http/middleware"
	"mmmweb/internal/domain/account"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSessionStore_CreateGetDelete(t *testing.T) {
	ss := middleware.NewSessionStore()
	user := account.CurrentUser{ID: 1, Email: "a@b.com", IsAdmin: true}

	id, err := ss.Create("opaque-token", user)
	if err != nil {
		t.Fatal(err)
	}
	sess, ok := ss.Get(id)
	if !ok {
		t.Fatal("session not found after create")
	}
	if sess.Token != "opaque-token" || !sess.User.IsAdmin {
		t.Errorf("session = %+v", sess)
	}

	ss.Delete(id)
	if _, ok := ss.Get(id); ok {
		t.Error("session survived delete")
	}
}

func TestSessionStore_ExpiredJWTIsSignedOut(t *testing.T) {
	ss := middleware.NewSessionStore()
	expired := signedToken(t, time.Now().Add(-time.Hour))

	id, err := ss.Create(expired, account.CurrentUser{ID: 1, Email: "a@b.com"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ss.Get(id); ok {
		t.Error("session with expired bearer token still resolves")
	}
}

func TestSessionStore_FutureJWTSurvives(t *testing.T) {
	ss := middleware.NewSessionStore()
	token := signedToken(t, time.Now().Add(time.Hour))

	id, err := ss.Create(token, account.CurrentUser{ID: 1, Email: "a@b.com"})
	if err != nil {
		t.Fatal(err)
	}
	sess, ok := ss.Get(id)
	if !ok {
		t.Fatal("valid session not found")
	}
	// Expiry tracks the token's exp claim, not the 24h default
	if time.Until(sess.ExpiresAt) > 2*time.Hour {
		t.Errorf("ExpiresAt = %v, expected to track the token claim", sess.ExpiresAt)
	}
}

func TestSessionStore_UpdateUser(t *testing.T) {
	ss := middleware.NewSessionStore()
	id, _ := ss.Create("tok", account.CurrentUser{ID: 1, Email: "a@b.com"})

	ok := ss.UpdateUser(id, account.CurrentUser{ID: 1, Email: "a@b.com", IsAdmin: true})
	if !ok {
		t.Fatal("UpdateUser reported missing session")
	}
	sess, _ := ss.Get(id)
	if !sess.User.IsAdmin {
		t.Error("user update not applied")
	}
	if ss.UpdateUser("missing", account.CurrentUser{}) {
		t.Error("UpdateUser succeeded for unknown session")
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAdmin(next)

	t.Run("anonymous redirects home", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/news", nil))
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
			t.Errorf("code=%d location=%q", rec.Code, rec.Header().Get("Location"))
		}
	})

	t.Run("non-admin redirects home", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/news", nil)
		sess := middleware.Session{Token: "t", User: account.CurrentUser{ID: 2, Email: "u@b.com"}}
		req = req.WithContext(middleware.ContextWithSession(req.Context(), sess))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("code = %d, want redirect", rec.Code)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/news", nil)
		sess := middleware.Session{Token: "t", User: account.CurrentUser{ID: 1, Email: "a@b.com", IsAdmin: true}}
		req = req.WithContext(middleware.ContextWithSession(req.Context(), sess))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("code = %d, want 200", rec.Code)
		}
	})
}

func TestAuthMiddleware_ResolvesCookie(t *testing.T) {
	ss := middleware.NewSessionStore()
	id, _ := ss.Create("tok", account.CurrentUser{ID: 1, Email: "a@b.com", IsAdmin: true})

	var sawAdmin bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAdmin = middleware.IsAdmin(r.Context())
	})
	handler := middleware.Auth(ss)(inner)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "mmm_session", Value: id})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !sawAdmin {
		t.Error("session cookie did not resolve to an admin session")
	}

	sawAdmin = false
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if sawAdmin {
		t.Error("request without cookie resolved a session")
	}
}
