package storage

import (
	"context"
	"encoding/json"

	"github.com/iudanet/edukeeper/internal/models"
)

//go:generate moq -out documents_mock.go . DocumentStorage

// DocumentStorage defines interface for document persistence on the server.
// It is the server-side half of the remote document store: collections of
// JSON documents plus an atomic multi-document batch commit.
type DocumentStorage interface {
	// Get retrieves a document by collection and ID
	// Returns ErrDocumentNotFound if document doesn't exist
	Get(ctx context.Context, collection, id string) (*models.Document, error)

	// Query returns all documents of a collection matching every filter
	// Returns empty slice if nothing matches
	Query(ctx context.Context, collection string, filters ...models.Filter) ([]*models.Document, error)

	// Set inserts or replaces a document, bumping its version
	Set(ctx context.Context, collection, id string, data json.RawMessage) (*models.Document, error)

	// Delete removes a document. Deleting an absent document is not an error
	Delete(ctx context.Context, collection, id string) error

	// BatchCommit applies all writes atomically: either every write persists or none does.
	// Returns ErrVersionConflict if any ExpectedVersion precondition fails
	BatchCommit(ctx context.Context, ops []models.WriteOp) error
}
