package account

// CurrentUser is the session-scoped view of the signed-in user, as reported
// by the backend's /auth/me endpoint. It is never persisted locally beyond
// the session.
type CurrentUser struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

// IsComplete reports whether a user hint returned alongside a login token
// carries enough identity to be trusted without a /auth/me round-trip.
// INVARIANT: a hint with no ID or no email always forces a refresh
func (u CurrentUser) IsComplete() bool {
	return u.ID != 0 && u.Email != ""
}
