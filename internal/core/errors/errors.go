// Package errors defines the error taxonomy shared by the list controller and its adapters.
// Adapters map transport failures onto these sentinels so callers can branch with errors.Is.
package errors

import (
	stdErrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Standard Sentinel Errors
var (
	// ErrUnauthenticated means no session credential is available. The remote call is never attempted.
	ErrUnauthenticated = stdErrors.New("not logged in")

	// ErrUnauthorized means the server rejected the credential (HTTP 401).
	ErrUnauthorized = stdErrors.New("session rejected by server")

	// ErrNetworkOrServer covers transport failures, timeouts and non-2xx responses.
	ErrNetworkOrServer = stdErrors.New("network or server error")

	// ErrNoSelection is returned by bulk actions invoked with an empty selection.
	ErrNoSelection = stdErrors.New("no record selected")

	// ErrNotFound is returned for ids unknown to the collection or the server.
	ErrNotFound = stdErrors.New("record not found")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError blocks a submission before it reaches the remote service.
type ValidationError struct {
	Fields []FieldError
}

// Error lists every failing field.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the message recorded for field, or empty string.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// BulkDeleteError reports the per-id outcome of a bulk delete in which at least
// one request failed. Deleted ids were confirmed by the server and removed locally.
type BulkDeleteError struct {
	Deleted []int64
	Failed  map[int64]error
}

// Error names every failed id.
func (e *BulkDeleteError) Error() string {
	ids := e.FailedIDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d (%v)", id, e.Failed[id])
	}
	return fmt.Sprintf("failed to delete %d of %d records: %s",
		len(ids), len(ids)+len(e.Deleted), strings.Join(parts, ", "))
}

// FailedIDs returns the failed ids in ascending order.
func (e *BulkDeleteError) FailedIDs() []int64 {
	ids := make([]int64, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Unwrap exposes the individual failures so errors.Is(err, ErrUnauthorized) works.
func (e *BulkDeleteError) Unwrap() []error {
	out := make([]error, 0, len(e.Failed))
	for _, id := range e.FailedIDs() {
		out = append(out, e.Failed[id])
	}
	return out
}

// NeedsLogin reports whether err should send the user back to login.
func NeedsLogin(err error) bool {
	return stdErrors.Is(err, ErrUnauthenticated) || stdErrors.Is(err, ErrUnauthorized)
}
