// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

type (
	tokenKey     struct{}
	profileKey   struct{}
	requestIDKey struct{}
)

// WithToken returns a context carrying the bearer token for remote calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token, or empty string if not set.
func TokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}

// WithProfile returns a context with the session profile name embedded.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, profileKey{}, profile)
}

// ProfileFromContext returns the session profile, or empty string if not set.
func ProfileFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(profileKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID returns a context tagged with the id of the remote request it drives.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id, or empty string if not set.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}
