package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mmmweb/internal/domain/account"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// Session represents an authenticated admin session. It pairs the backend's
// bearer token with the user it authenticates; the token never reaches the
// browser.
type Session struct {
	Token     string // backend bearer token, attached to gateway calls
	User      account.CurrentUser
	CreatedAt time.Time
	ExpiresAt time.Time // earlier of the local TTL and the token's exp claim
}

// sessionTTL is the local session lifetime when the bearer token carries no
// usable expiry of its own.
const sessionTTL = 24 * time.Hour

// SessionStore is an in-memory session store keyed by opaque session IDs.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
	}
}

// Create stores a new session and returns its ID.
// PRE: token is non-empty
// POST: Session is stored; expiry follows the token's exp claim when present
func (ss *SessionStore) Create(token string, user account.CurrentUser) (string, error) {
	id, err := generateSessionID()
	if err != nil {
		return "", err
	}
	now := time.Now()
	expires := now.Add(sessionTTL)
	if exp, ok := tokenExpiry(token); ok && exp.Before(expires) {
		expires = exp
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[id] = Session{
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	return id, nil
}

// Get retrieves a session by ID, treating expired sessions as signed out.
func (ss *SessionStore) Get(id string) (Session, bool) {
	ss.mu.RLock()
	session, ok := ss.sessions[id]
	ss.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if time.Now().After(session.ExpiresAt) {
		ss.Delete(id)
		return Session{}, false
	}
	return session, true
}

// Delete removes a session by ID.
func (ss *SessionStore) Delete(id string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, id)
}

// UpdateUser replaces the user on an existing session (after a /auth/me
// refresh).
func (ss *SessionStore) UpdateUser(id string, user account.CurrentUser) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.sessions[id]
	if !ok {
		return false
	}
	s.User = user
	ss.sessions[id] = s
	return true
}

// tokenExpiry inspects a bearer token's exp claim without verifying the
// signature; the backend is the authority on token validity. This is only a
// fast path for expiring local sessions. Opaque tokens report no expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

const sessionCookieName = "mmm_session"

// SecureCookies controls the Secure flag on session cookies. Set true in
// production behind TLS.
var SecureCookies = false

// Auth returns middleware that resolves the session cookie and sets the
// session in context. It does NOT block unauthenticated requests; use
// RequireAdmin for that.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				if session, ok := sessions.Get(cookie.Value); ok {
					ctx := context.WithValue(r.Context(), sessionContextKey, session)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns middleware that redirects non-admin (or anonymous)
// sessions to the public home page. Admin gating hides UI; the backend still
// authorizes every mutation against the bearer token.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSessionFromContext(r.Context())
		if !ok || !session.User.IsAdmin {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// IsAdmin reports whether the current session belongs to an admin. Derived
// from the session user only, never from a local constant.
func IsAdmin(ctx context.Context) bool {
	session, ok := GetSessionFromContext(ctx)
	return ok && session.User.IsAdmin
}

// SessionIDFromRequest returns the raw session cookie value, if any.
func SessionIDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   86400,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func generateSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
