package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"mmmweb/internal/adapters/api"
	"mmmweb/internal/adapters/email"
	"mmmweb/internal/adapters/http/middleware"
	"mmmweb/internal/adapters/http/perf"
	"mmmweb/internal/domain/account"
)

// Clients holds the outbound dependencies of the web layer.
type Clients struct {
	API         *api.Client
	EmailSender email.Sender

	// Registration interest notifications
	InterestToAddress   string
	InterestFromAddress string
}

// loadCSRFKey reads the CSRF secret from MMM_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("MMM_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("MMM_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("MMM_ENV") == "production" {
		log.Fatal("MMM_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set MMM_CSRF_KEY for production.")
	return key
}

// Global clients instance (set by NewMux)
var clients *Clients

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// authGateway adapts the API client to the orchestrator auth interfaces.
// The bearer token travels on the request context; orchestrators hand it
// over explicitly so they stay free of transport concerns.
type authGateway struct {
	api *api.Client
}

func (g authGateway) Login(ctx context.Context, email, password string) (string, account.CurrentUser, error) {
	res, err := g.api.Login(ctx, email, password)
	if err != nil {
		return "", account.CurrentUser{}, err
	}
	return res.Token, res.User, nil
}

func (g authGateway) Me(ctx context.Context, token string) (account.CurrentUser, error) {
	return g.api.Me(api.ContextWithToken(ctx, token))
}

func (g authGateway) Logout(ctx context.Context, token string) error {
	return g.api.Logout(api.ContextWithToken(ctx, token))
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, c *Clients, collector *perf.Collector) http.Handler {
	clients = c
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("MMM_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	var trustedOrigins []string
	if origin := os.Getenv("MMM_TRUSTED_ORIGIN"); origin != "" {
		trustedOrigins = append(trustedOrigins, origin)
	}

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Applied outer to inner: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, trustedOrigins),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
