package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/edukeeper/internal/models"
	"github.com/iudanet/edukeeper/internal/server/storage"
	"github.com/iudanet/edukeeper/internal/validation"
)

// querier общий интерфейс пула и транзакции pgx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const upsertQuery = `
	INSERT INTO documents (collection, id, data, version, created_at, updated_at)
	VALUES ($1, $2, $3, 1, NOW(), NOW())
	ON CONFLICT (collection, id) DO UPDATE
	SET data = EXCLUDED.data,
	    version = documents.version + 1,
	    updated_at = NOW()
	RETURNING version, created_at, updated_at
`

// Get retrieves a document by collection and ID
func (s *Storage) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	query := `SELECT collection, id, data, version, created_at, updated_at
	          FROM documents
	          WHERE collection = $1 AND id = $2`

	doc, err := scanDocument(s.pool.QueryRow(ctx, query, collection, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// Query returns all documents of a collection matching every filter
func (s *Storage) Query(ctx context.Context, collection string, filters ...models.Filter) ([]*models.Document, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT collection, id, data, version, created_at, updated_at
	          FROM documents
	          WHERE collection = $1`)

	args := []any{collection}
	for _, f := range filters {
		if err := validation.ValidateFieldName(f.Field); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrInvalidFilter, err)
		}
		args = append(args, f.Field, f.Value)
		n := len(args)
		sb.WriteString(" AND data->>$" + strconv.Itoa(n-1) + "::text = $" + strconv.Itoa(n))
	}
	sb.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// Set inserts or replaces a document, bumping its version
func (s *Storage) Set(ctx context.Context, collection, id string, data json.RawMessage) (*models.Document, error) {
	return upsert(ctx, s.pool, collection, id, data)
}

// Delete removes a document. Deleting an absent document is not an error
func (s *Storage) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// BatchCommit applies all writes in one transaction.
// Preconditions lock the row (SELECT ... FOR UPDATE) until commit.
func (s *Storage) BatchCommit(ctx context.Context, ops []models.WriteOp) error {
	if len(ops) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback после Commit ничего не делает
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for i, op := range ops {
		if op.ExpectedVersion > 0 {
			var current int64
			err := tx.QueryRow(ctx,
				`SELECT version FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`,
				op.Collection, op.ID,
			).Scan(&current)
			if errors.Is(err, pgx.ErrNoRows) || (err == nil && current != op.ExpectedVersion) {
				return fmt.Errorf("write %d (%s/%s): %w", i, op.Collection, op.ID, storage.ErrVersionConflict)
			}
			if err != nil {
				return fmt.Errorf("write %d: failed to read version: %w", i, err)
			}
		}

		switch op.Type {
		case models.WriteSet:
			if _, err := upsert(ctx, tx, op.Collection, op.ID, op.Data); err != nil {
				return fmt.Errorf("write %d: %w", i, err)
			}
		case models.WriteDelete:
			if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, op.Collection, op.ID); err != nil {
				return fmt.Errorf("write %d: failed to delete document: %w", i, err)
			}
		default:
			return fmt.Errorf("%w: unknown type %q", storage.ErrInvalidWrite, op.Type)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	return nil
}

func upsert(ctx context.Context, q querier, collection, id string, data json.RawMessage) (*models.Document, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: document body is not valid JSON", storage.ErrInvalidWrite)
	}

	doc := &models.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
	}

	err := q.QueryRow(ctx, upsertQuery, collection, id, []byte(data)).
		Scan(&doc.Version, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert document: %w", err)
	}

	return doc, nil
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	doc := &models.Document{}
	var data []byte

	if err := row.Scan(
		&doc.Collection,
		&doc.ID,
		&data,
		&doc.Version,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	doc.Data = json.RawMessage(data)
	return doc, nil
}
