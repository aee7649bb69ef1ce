package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"mmmweb/internal/adapters/api"
	emailPkg "mmmweb/internal/adapters/email"
	web "mmmweb/internal/adapters/http"
	"mmmweb/internal/adapters/http/perf"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// upstreamObserver feeds gateway request timings into the perf collector.
type upstreamObserver struct {
	collector *perf.Collector
}

func (o upstreamObserver) ObserveUpstream(method, endpoint string, status int, durationMs float64) {
	o.collector.Record(perf.Entry{
		Kind:       perf.KindUpstream,
		Path:       method + " " + endpoint,
		StatusCode: status,
		DurationMs: durationMs,
		Timestamp:  time.Now(),
	})
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	baseURL := os.Getenv("MMM_API_BASE_URL")
	if baseURL == "" {
		log.Fatal("MMM_API_BASE_URL is required (e.g. http://localhost:8000/api/v1)")
	}

	addr := envOrDefault("MMM_ADDR", ":8080")
	staticDir := envOrDefault("MMM_STATIC_DIR", "static")

	collector := perf.NewCollector(perf.DefaultRingSize)

	client := api.New(baseURL)
	client.SetObserver(upstreamObserver{collector: collector})
	// When the backend is reached over an internal hostname, browser-facing
	// asset URLs are rewritten onto the public address.
	if publicURL := os.Getenv("MMM_API_PUBLIC_URL"); publicURL != "" {
		client.SetPublicBaseURL(publicURL)
	}

	var sender emailPkg.Sender
	if key := os.Getenv("MMM_RESEND_API_KEY"); key != "" {
		sender = emailPkg.NewResendSender(key, os.Getenv("MMM_EMAIL_FROM"))
	} else {
		slog.Warn("startup", "msg", "MMM_RESEND_API_KEY not set, interest emails are logged only")
		sender = emailPkg.NewNoopSender()
	}

	clients := &web.Clients{
		API:                 client,
		EmailSender:         sender,
		InterestToAddress:   os.Getenv("MMM_INTEREST_TO"),
		InterestFromAddress: os.Getenv("MMM_EMAIL_FROM"),
	}

	handler := web.NewMux(staticDir, clients, collector)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("startup", "addr", addr, "api_base_url", baseURL, "version", version)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
