// Command stubapi runs the SQLite-backed content backend on its own port.
// Point MMM_API_BASE_URL at it for local development.
package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"mmmweb/internal/stubapi"
)

func main() {
	_ = godotenv.Load()

	addr := envOrDefault("MMM_STUBAPI_ADDR", ":8000")
	dbPath := envOrDefault("MMM_STUBAPI_DB", "mmmweb.db")

	secret := os.Getenv("MMM_STUBAPI_JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		slog.Warn("startup", "msg", "MMM_STUBAPI_JWT_SECRET not set, using dev default")
	}
	adminEmail := envOrDefault("MMM_STUBAPI_ADMIN_EMAIL", "admin@example.org")
	adminPassword := os.Getenv("MMM_STUBAPI_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
		slog.Warn("startup", "msg", "MMM_STUBAPI_ADMIN_PASSWORD not set, using dev default")
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	store := stubapi.NewStore(db)
	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	if err := store.Seed(ctx, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           stubapi.NewServer(store, []byte(secret)).NewMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("startup", "addr", addr, "db", dbPath, "admin", adminEmail)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("stub backend stopped: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
