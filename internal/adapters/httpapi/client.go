// Package httpapi implements the remote record service over the freight REST API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerr "github.com/example/shipdesk/internal/core/errors"
	"github.com/example/shipdesk/internal/ctxutil"
	"github.com/example/shipdesk/internal/version"
)

// maxErrorBody caps how much of an error response is kept for the error message.
const maxErrorBody = 512

// Client sends authenticated requests to the API. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the API rooted at baseURL, e.g. https://host/api.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Logout tells the server to invalidate the session token carried by ctx.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "logout", struct{}{}, nil)
}

// do sends one request. body is JSON-encoded when non-nil; out receives the decoded
// response when non-nil. Failures wrap the error sentinels:
// no token -> ErrUnauthenticated, 401 -> ErrUnauthorized, 404 -> ErrNotFound,
// anything else -> ErrNetworkOrServer.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token := ctxutil.TokenFromContext(ctx)
	if token == "" {
		return domainerr.ErrUnauthenticated
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("%w: %w", domainerr.ErrNetworkOrServer, err)
	}

	requestID := ctxutil.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method), zap.String("path", path),
			zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", domainerr.ErrNetworkOrServer, method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)))

	if err := statusError(method, path, resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := decodeBody(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %s %s: invalid response: %w", domainerr.ErrNetworkOrServer, method, path, err)
	}
	return nil
}

func statusError(method, path string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(snippet))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s %s", domainerr.ErrUnauthorized, method, path)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", domainerr.ErrNotFound, method, path)
	default:
		return fmt.Errorf("%w: %s %s: status %d: %s", domainerr.ErrNetworkOrServer, method, path, resp.StatusCode, msg)
	}
}

// decodeBody decodes JSON into out, unwrapping a {"data": ...} envelope when present.
func decodeBody(r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty body")
	}

	if data[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(data, &envelope); err == nil {
			_, isRecord := envelope["id"]
			if inner, ok := envelope["data"]; ok && !isRecord {
				trimmed := bytes.TrimSpace(inner)
				if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
					data = trimmed
				}
			}
		}
	}
	return json.Unmarshal(data, out)
}
