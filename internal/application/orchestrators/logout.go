package orchestrators

import (
	"context"
	"log/slog"
)

// AuthGatewayForLogout defines the backend surface needed by Logout.
type AuthGatewayForLogout interface {
	Logout(ctx context.Context, token string) error
}

// SessionDeleter removes a server-side session.
type SessionDeleter interface {
	Delete(id string)
}

// LogoutInput carries input for the logout orchestrator.
type LogoutInput struct {
	SessionID string
	Token     string
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Auth     AuthGatewayForLogout
	Sessions SessionDeleter
}

// ExecuteLogout invalidates the bearer token remotely and drops the local
// session. The remote call is best effort: the local session is removed even
// when the backend is unreachable, so logout never fails.
// POST: The session no longer resolves
func ExecuteLogout(ctx context.Context, input LogoutInput, deps LogoutDeps) {
	if input.Token != "" {
		if err := deps.Auth.Logout(ctx, input.Token); err != nil {
			slog.Warn("auth_event", "event", "remote_logout_failed", "error", err)
		}
	}
	deps.Sessions.Delete(input.SessionID)
	slog.Info("auth_event", "event", "logout")
}
