// Package remote is the gateway's boundary to the inference service. The
// service owns chunking, retrieval and generation; this package only moves
// payloads across and reports what came back.
package remote

import (
	"context"
	"io"

	"github.com/studyquery/backend/internal/models"
)

// UploadResult is what the service reports after indexing a document.
type UploadResult struct {
	Message      string `json:"message"`
	IndexedUnits int    `json:"chunks_count"`
}

// QueryResult is the raw, mode-tagged answer payload. Everything except
// Answer is optional; the interpreter handles absent fields.
type QueryResult struct {
	Mode      string `json:"mode"`
	Answer    string `json:"answer"`
	Sources   string `json:"sources"`
	ImageData string `json:"image_data"`
}

// ServiceError is an application-level failure: the call completed but the
// service reported an error payload. Its message is shown to the user
// verbatim. Transport failures are returned as plain errors instead.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Client is the inference service contract consumed by the handlers.
type Client interface {
	// UploadDocument sends a document for indexing under the given role.
	UploadDocument(ctx context.Context, role models.SlotRole, name string, r io.Reader) (*UploadResult, error)

	// Query submits a question against the indexed notes document.
	Query(ctx context.Context, question string) (*QueryResult, error)
}
