package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/shipdesk/internal/ports/secondary"
)

// SessionStore implements secondary.CredentialStore with SQLite.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a new SQLite session store.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Token returns the token saved for profile, or empty string.
func (s *SessionStore) Token(ctx context.Context, profile string) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, "SELECT token FROM sessions WHERE profile = ?", profile).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return token, nil
}

// Save stores token for profile, replacing any existing one.
func (s *SessionStore) Save(ctx context.Context, profile, token string) error {
	if token == "" {
		return fmt.Errorf("refusing to save empty token for profile %s", profile)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (profile, token, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET token = excluded.token, saved_at = CURRENT_TIMESTAMP`,
		profile, token,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the token for profile.
func (s *SessionStore) Clear(ctx context.Context, profile string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Ensure SessionStore implements the interface
var _ secondary.CredentialStore = (*SessionStore)(nil)
