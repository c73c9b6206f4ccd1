package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that the referenced record is absent
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict indicates that a write precondition failed:
	// the document was modified after it was read
	ErrVersionConflict = errors.New("version conflict: document was modified concurrently")
)

// StoreCommitError is returned when the remote store rejects a single write
// or a batch commit. A rejected batch leaves no partial effect.
type StoreCommitError struct {
	Err        error
	Op         string
	Collection string
}

func (e *StoreCommitError) Error() string {
	return fmt.Sprintf("%s commit to %s failed: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreCommitError) Unwrap() error {
	return e.Err
}

// PartialSyncWarning describes a non-fatal fetch failure during aggregate
// fan-out. It is logged and counted, never returned as an error.
type PartialSyncWarning struct {
	Err      error
	Entity   EntityType
	ParentID string
}

func (w *PartialSyncWarning) Error() string {
	return fmt.Sprintf("partial sync: fetch %s of %s failed: %v", w.Entity, w.ParentID, w.Err)
}

func (w *PartialSyncWarning) Unwrap() error {
	return w.Err
}

// ValidationError records an out-of-range order that was clamped.
// Orders are never rejected, so this value only ends up in logs.
type ValidationError struct {
	Field     string
	Requested int
	Applied   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d out of range, clamped to %d", e.Field, e.Requested, e.Applied)
}

// SyncError is the fatal outcome of an aggregate sync (root fetch failed).
type SyncError struct {
	Err    error
	RootID string
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync of %s failed: %v", e.RootID, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
