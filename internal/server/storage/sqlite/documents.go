package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/edukeeper/internal/models"
	"github.com/iudanet/edukeeper/internal/server/storage"
	"github.com/iudanet/edukeeper/internal/validation"
)

// execer общий интерфейс *sql.DB и *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const upsertQuery = `
	INSERT INTO documents (collection, id, data, version, created_at, updated_at)
	VALUES (?, ?, ?, 1, ?, ?)
	ON CONFLICT (collection, id) DO UPDATE
	SET data = excluded.data,
	    version = documents.version + 1,
	    updated_at = excluded.updated_at
	RETURNING version, created_at, updated_at
`

// Get retrieves a document by collection and ID
// Returns ErrDocumentNotFound if document doesn't exist
func (s *Storage) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	query := `
		SELECT collection, id, data, version, created_at, updated_at
		FROM documents
		WHERE collection = ? AND id = ?
	`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, collection, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// Query returns all documents of a collection matching every filter
// Filters compare the top-level JSON field as text
func (s *Storage) Query(ctx context.Context, collection string, filters ...models.Filter) ([]*models.Document, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT collection, id, data, version, created_at, updated_at
		FROM documents
		WHERE collection = ?`)

	args := []any{collection}
	for _, f := range filters {
		// Имя поля подставляется в JSON path, поэтому допускаем только идентификаторы
		if err := validation.ValidateFieldName(f.Field); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrInvalidFilter, err)
		}
		sb.WriteString(" AND json_extract(data, '$." + f.Field + "') = ?")
		args = append(args, f.Value)
	}
	sb.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := make([]*models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return docs, nil
}

// Set inserts or replaces a document, bumping its version
func (s *Storage) Set(ctx context.Context, collection, id string, data json.RawMessage) (*models.Document, error) {
	doc, err := upsert(ctx, s.db, collection, id, data, time.Now())
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes a document. Deleting an absent document is not an error
func (s *Storage) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = ? AND id = ?`

	if _, err := s.db.ExecContext(ctx, query, collection, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

// BatchCommit applies all writes in one transaction
// Any failed precondition or write rolls back the whole batch
func (s *Storage) BatchCommit(ctx context.Context, ops []models.WriteOp) (err error) {
	if len(ops) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now()
	for i, op := range ops {
		if op.ExpectedVersion > 0 {
			if err = checkVersion(ctx, tx, op); err != nil {
				return fmt.Errorf("write %d (%s/%s): %w", i, op.Collection, op.ID, err)
			}
		}

		switch op.Type {
		case models.WriteSet:
			if _, err = upsert(ctx, tx, op.Collection, op.ID, op.Data, now); err != nil {
				return fmt.Errorf("write %d: %w", i, err)
			}
		case models.WriteDelete:
			if _, err = tx.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, op.Collection, op.ID); err != nil {
				return fmt.Errorf("write %d: failed to delete document: %w", i, err)
			}
		default:
			err = fmt.Errorf("%w: unknown type %q", storage.ErrInvalidWrite, op.Type)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	return nil
}

// checkVersion проверяет precondition ExpectedVersion внутри транзакции
func checkVersion(ctx context.Context, tx execer, op models.WriteOp) error {
	var current int64
	err := tx.QueryRowContext(ctx,
		`SELECT version FROM documents WHERE collection = ? AND id = ?`,
		op.Collection, op.ID,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	if current != op.ExpectedVersion {
		return storage.ErrVersionConflict
	}
	return nil
}

func upsert(ctx context.Context, db execer, collection, id string, data json.RawMessage, now time.Time) (*models.Document, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: document body is not valid JSON", storage.ErrInvalidWrite)
	}

	doc := &models.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
	}

	var createdAt, updatedAt int64
	err := db.QueryRowContext(ctx, upsertQuery,
		collection,
		id,
		string(data),
		now.UnixMilli(),
		now.UnixMilli(),
	).Scan(&doc.Version, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert document: %w", err)
	}

	doc.CreatedAt = time.UnixMilli(createdAt)
	doc.UpdatedAt = time.UnixMilli(updatedAt)

	return doc, nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*models.Document, error) {
	doc := &models.Document{}
	var data string
	var createdAt, updatedAt int64

	if err := row.Scan(
		&doc.Collection,
		&doc.ID,
		&data,
		&doc.Version,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	doc.Data = json.RawMessage(data)
	doc.CreatedAt = time.UnixMilli(createdAt)
	doc.UpdatedAt = time.UnixMilli(updatedAt)

	return doc, nil
}
