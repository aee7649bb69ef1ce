package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"mmmweb/internal/domain/account"
)

// AuthGatewayForLogin defines the backend surface needed by Login. Login
// returns the bearer token plus whatever user fields the backend chose to
// include alongside it; Me resolves the full profile for a token.
type AuthGatewayForLogin interface {
	Login(ctx context.Context, email, password string) (token string, hint account.CurrentUser, err error)
	Me(ctx context.Context, token string) (account.CurrentUser, error)
}

// SessionCreator creates a server-side session pairing a bearer token with
// its resolved user.
type SessionCreator interface {
	Create(token string, user account.CurrentUser) (string, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	SessionID string
	User      account.CurrentUser
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Auth     AuthGatewayForLogin
	Sessions SessionCreator
}

var ErrMissingCredentials = errors.New("email and password are required")

// ExecuteLogin exchanges credentials for a bearer token and opens a session.
// The login response may carry a user object; it is trusted only when both
// ID and email are present, otherwise the profile is refreshed from the
// backend before the session is created.
// PRE: Email and Password are non-empty
// POST: A session exists pairing the token with a complete user profile
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrMissingCredentials
	}

	token, user, err := deps.Auth.Login(ctx, input.Email, input.Password)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email)
		return LoginResult{}, err
	}

	if !user.IsComplete() {
		user, err = deps.Auth.Me(ctx, token)
		if err != nil {
			slog.Info("auth_event", "event", "login_profile_refresh_failed", "email", input.Email)
			return LoginResult{}, err
		}
	}

	id, err := deps.Sessions.Create(token, user)
	if err != nil {
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login_success", "email", user.Email, "is_admin", user.IsAdmin)
	return LoginResult{SessionID: id, User: user}, nil
}
