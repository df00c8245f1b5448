package primary

import "context"

// SessionService defines the primary port for signing in and out of the remote service.
type SessionService interface {
	// Login stores token as the session for the active profile.
	Login(ctx context.Context, token string) error

	// Logout ends the session on the server (best effort) and forgets it locally.
	Logout(ctx context.Context) error

	// Status reports whether the active profile has a token and where it comes from.
	Status(ctx context.Context) (*SessionStatus, error)
}

// SessionStatus describes the credential the next request would use.
type SessionStatus struct {
	Profile  string
	LoggedIn bool
	Source   string // "session", "environment" or ""
}
