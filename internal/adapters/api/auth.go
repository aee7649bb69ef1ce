package api

import (
	"context"
	"fmt"

	"mmmweb/internal/domain/account"
)

// LoginResponse is the payload returned by a successful login: the bearer
// token plus a (possibly partial) user hint.
type LoginResponse struct {
	Token string              `json:"token"`
	User  account.CurrentUser `json:"user"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	res := c.Post(ctx, "/auth/login", body)
	if err := res.AsError(); err != nil {
		return LoginResponse{}, err
	}
	var lr LoginResponse
	if err := res.Decode(&lr); err != nil {
		return LoginResponse{}, fmt.Errorf("malformed login response: %w", err)
	}
	return lr, nil
}

// Me fetches the current user for the bearer token on the context.
func (c *Client) Me(ctx context.Context) (account.CurrentUser, error) {
	res := c.Get(ctx, "/auth/me")
	if err := res.AsError(); err != nil {
		return account.CurrentUser{}, err
	}
	var u account.CurrentUser
	if err := res.Decode(&u); err != nil {
		return account.CurrentUser{}, fmt.Errorf("malformed auth/me response: %w", err)
	}
	return u, nil
}

// Logout invalidates the bearer token remotely. Best effort: callers clear
// local session state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/auth/logout", nil).AsError()
}
