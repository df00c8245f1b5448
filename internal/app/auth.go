package app

import (
	"context"
	"fmt"

	"github.com/example/shipdesk/internal/ports/secondary"
)

// TokenSource yields the current bearer token. An empty token means no session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

// Token calls f.
func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken returns a TokenSource that always yields token.
func StaticToken(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

// AuthContext is the explicit authentication dependency of the controller:
// where tokens come from and what happens when the server rejects one.
type AuthContext struct {
	Profile string
	Tokens  TokenSource

	// OnUnauthorized runs after the server rejects the credential. It must not retry.
	OnUnauthorized func(ctx context.Context)
}

func (a AuthContext) token(ctx context.Context) (string, error) {
	if a.Tokens == nil {
		return "", nil
	}
	return a.Tokens.Token(ctx)
}

func (a AuthContext) unauthorized(ctx context.Context) {
	if a.OnUnauthorized != nil {
		a.OnUnauthorized(ctx)
	}
}

// NewSessionAuth builds an AuthContext backed by the local session store.
// The stored token for profile wins; fallback (usually $SHIPDESK_TOKEN) is used
// when none is stored. A rejected credential is cleared from the store.
func NewSessionAuth(store secondary.CredentialStore, profile, fallback string, onCleared func(profile string)) AuthContext {
	return AuthContext{
		Profile: profile,
		Tokens: TokenSourceFunc(func(ctx context.Context) (string, error) {
			token, err := store.Token(ctx, profile)
			if err != nil {
				return "", fmt.Errorf("failed to read session: %w", err)
			}
			if token == "" {
				token = fallback
			}
			return token, nil
		}),
		OnUnauthorized: func(ctx context.Context) {
			// Clearing is best effort; the caller reports the rejection.
			_ = store.Clear(ctx, profile)
			if onCleared != nil {
				onCleared(profile)
			}
		},
	}
}
