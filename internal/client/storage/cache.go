package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iudanet/edukeeper/internal/models"
)

//go:generate moq -out cache_mock.go . LocalCache

// Row одна строка локального кэша.
// Refs хранит значения ссылочных колонок (например, parent_key), по ним
// работают QueryByForeignKey и каскадное удаление.
type Row struct {
	CachedAt time.Time         `json:"cached_at"`
	Refs     map[string]string `json:"refs,omitempty"`
	ID       string            `json:"id"`
	Data     json.RawMessage   `json:"data"`
}

// Ref возвращает значение ссылочной колонки или пустую строку
func (r *Row) Ref(column string) string {
	if r.Refs == nil {
		return ""
	}
	return r.Refs[column]
}

// LocalCache durable local cache of aggregate rows, one table per entity type.
// Tables and their foreign keys are described by Schema; deleting a row
// cascades to every row referencing it.
type LocalCache interface {
	// GetByID returns the row or ErrRowNotFound
	GetByID(ctx context.Context, table models.EntityType, id string) (*Row, error)

	// QueryByForeignKey returns all rows of table whose column equals value
	// Returns empty slice if nothing matches
	QueryByForeignKey(ctx context.Context, table models.EntityType, column, value string) ([]*Row, error)

	// InsertOrReplace upserts one row by id
	InsertOrReplace(ctx context.Context, table models.EntityType, row *Row) error

	// InsertOrReplaceAll upserts rows by id in one local transaction
	InsertOrReplaceAll(ctx context.Context, table models.EntityType, rows []*Row) error

	// DeleteByID removes the row and, through foreign keys, all rows below it.
	// Deleting an absent row is not an error
	DeleteByID(ctx context.Context, table models.EntityType, id string) error
}
