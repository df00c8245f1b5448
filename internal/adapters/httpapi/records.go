package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/example/shipdesk/internal/core/schema"
	"github.com/example/shipdesk/internal/models"
	"github.com/example/shipdesk/internal/ports/secondary"
)

// RecordService implements secondary.RecordService for one resource:
//
//	GET    /{resource}       list
//	POST   /{resource}       create
//	PUT    /{resource}/{id}  update
//	DELETE /{resource}/{id}  delete
//	POST   /email            bulk email
type RecordService struct {
	client *Client
	schema *schema.Schema
}

// Records returns the record service for the resource described by s.
func (c *Client) Records(s *schema.Schema) *RecordService {
	return &RecordService{client: c, schema: s}
}

// List fetches the full collection.
func (s *RecordService) List(ctx context.Context) ([]models.Record, error) {
	var records []models.Record
	if err := s.client.do(ctx, http.MethodGet, s.schema.Resource, nil, &records); err != nil {
		return nil, err
	}
	for i := range records {
		records[i] = s.schema.Normalize(records[i])
	}
	return records, nil
}

// Create posts a new record and returns the persisted copy.
func (s *RecordService) Create(ctx context.Context, record models.Record) (models.Record, error) {
	var created models.Record
	if err := s.client.do(ctx, http.MethodPost, s.schema.Resource, record, &created); err != nil {
		return models.Record{}, err
	}
	return s.schema.Normalize(created), nil
}

// Update puts the record and returns the stored copy.
func (s *RecordService) Update(ctx context.Context, record models.Record) (models.Record, error) {
	var updated models.Record
	if err := s.client.do(ctx, http.MethodPut, s.itemPath(record.ID), record, &updated); err != nil {
		return models.Record{}, err
	}
	return s.schema.Normalize(updated), nil
}

// Delete removes the record with the given id.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, s.itemPath(id), nil, nil)
}

// SendEmail posts one bulk email request.
func (s *RecordService) SendEmail(ctx context.Context, req secondary.EmailRequest) error {
	if req.Module == "" {
		req.Module = s.schema.Module
	}
	return s.client.do(ctx, http.MethodPost, "email", req, nil)
}

func (s *RecordService) itemPath(id int64) string {
	return s.schema.Resource + "/" + strconv.FormatInt(id, 10)
}

// Ensure RecordService implements the interface
var _ secondary.RecordService = (*RecordService)(nil)
