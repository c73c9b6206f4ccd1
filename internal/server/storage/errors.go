package storage

import (
	"errors"
	"fmt"

	"github.com/iudanet/edukeeper/internal/models"
)

// Common storage errors
var (
	// ErrDocumentNotFound indicates that document was not found in storage
	ErrDocumentNotFound = fmt.Errorf("document %w", models.ErrNotFound)

	// ErrVersionConflict indicates that a write precondition failed
	ErrVersionConflict = models.ErrVersionConflict

	// ErrInvalidFilter indicates that filter field is not a plain identifier
	ErrInvalidFilter = errors.New("invalid filter field")

	// ErrInvalidWrite indicates malformed write operation in a batch
	ErrInvalidWrite = errors.New("invalid write operation")
)
