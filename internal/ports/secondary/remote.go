package secondary

import (
	"context"

	"github.com/example/shipdesk/internal/models"
)

// RecordService defines the secondary port for the remote CRUD service of one resource.
// Implementations read the bearer token from the context (ctxutil.WithToken) and map
// failures onto the core error sentinels.
type RecordService interface {
	// List fetches the full collection.
	List(ctx context.Context) ([]models.Record, error)

	// Create persists a new record and returns it with server-assigned id and timestamps.
	Create(ctx context.Context, record models.Record) (models.Record, error)

	// Update persists changes to an existing record and returns the stored record.
	Update(ctx context.Context, record models.Record) (models.Record, error)

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id int64) error

	// SendEmail sends one message about the given records.
	SendEmail(ctx context.Context, req EmailRequest) error
}

// EmailRequest is the body of a bulk email request.
type EmailRequest struct {
	IDs     []int64 `json:"ids"`
	Subject string  `json:"subject"`
	Content string  `json:"content"`
	Module  string  `json:"module"`
}

// SessionEndpoint defines the secondary port for server-side session management.
type SessionEndpoint interface {
	// Logout invalidates the bearer token carried by ctx.
	Logout(ctx context.Context) error
}
