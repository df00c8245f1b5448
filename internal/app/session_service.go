package app

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/example/shipdesk/internal/ctxutil"
	"github.com/example/shipdesk/internal/ports/primary"
	"github.com/example/shipdesk/internal/ports/secondary"
)

// Token sources reported by Status.
const (
	SourceSession     = "session"
	SourceEnvironment = "environment"
)

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	store    secondary.CredentialStore
	remote   secondary.SessionEndpoint
	profile  string
	fallback string
	logger   *zap.Logger
}

// NewSessionService creates a new SessionService for profile. fallback is the
// token supplied by the environment, if any.
func NewSessionService(store secondary.CredentialStore, remote secondary.SessionEndpoint, profile, fallback string, logger *zap.Logger) *SessionServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionServiceImpl{
		store:    store,
		remote:   remote,
		profile:  profile,
		fallback: fallback,
		logger:   logger,
	}
}

// Login stores token as the session for the active profile.
func (s *SessionServiceImpl) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is required")
	}
	if err := s.store.Save(ctx, s.profile, token); err != nil {
		return err
	}
	s.logger.Info("session saved", zap.String("profile", s.profile))
	return nil
}

// Logout ends the session on the server and clears the stored token. A failed
// server call is logged and does not keep the local session alive.
func (s *SessionServiceImpl) Logout(ctx context.Context) error {
	token, err := s.store.Token(ctx, s.profile)
	if err != nil {
		return err
	}
	if token != "" && s.remote != nil {
		rctx := ctxutil.WithProfile(ctxutil.WithToken(ctx, token), s.profile)
		if err := s.remote.Logout(rctx); err != nil {
			s.logger.Warn("server logout failed", zap.String("profile", s.profile), zap.Error(err))
		}
	}
	if err := s.store.Clear(ctx, s.profile); err != nil {
		return err
	}
	s.logger.Info("session cleared", zap.String("profile", s.profile))
	return nil
}

// Status reports the credential the next request would use.
func (s *SessionServiceImpl) Status(ctx context.Context) (*primary.SessionStatus, error) {
	token, err := s.store.Token(ctx, s.profile)
	if err != nil {
		return nil, err
	}
	status := &primary.SessionStatus{Profile: s.profile}
	switch {
	case token != "":
		status.LoggedIn, status.Source = true, SourceSession
	case s.fallback != "":
		status.LoggedIn, status.Source = true, SourceEnvironment
	}
	return status, nil
}

// Ensure SessionServiceImpl implements the interface
var _ primary.SessionService = (*SessionServiceImpl)(nil)
