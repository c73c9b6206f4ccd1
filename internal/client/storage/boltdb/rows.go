package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/edukeeper/internal/client/storage"
	"github.com/iudanet/edukeeper/internal/models"
)

// GetByID returns the row or storage.ErrRowNotFound
func (s *Storage) GetByID(ctx context.Context, table models.EntityType, id string) (*storage.Row, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}
	if err := s.schema.Check(table); err != nil {
		return nil, err
	}

	var row *storage.Row

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := rowsBucket(tx, table).Get([]byte(id))
		if data == nil {
			return storage.ErrRowNotFound
		}

		var err error
		row, err = decodeRow(data)
		return err
	})

	if err != nil {
		return nil, err
	}

	return row, nil
}

// QueryByForeignKey returns all rows of table whose column equals value
func (s *Storage) QueryByForeignKey(ctx context.Context, table models.EntityType, column, value string) ([]*storage.Row, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}
	if err := s.schema.Check(table); err != nil {
		return nil, err
	}

	rows := make([]*storage.Row, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		rb := rowsBucket(tx, table)
		for _, id := range indexLookup(tx, table, column, value) {
			data := rb.Get([]byte(id))
			if data == nil {
				// индекс и строки меняются в одной транзакции, сюда не попадаем
				continue
			}

			row, err := decodeRow(data)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to query %s by %s: %w", table, column, err)
	}

	return rows, nil
}

// InsertOrReplace upserts one row by id
func (s *Storage) InsertOrReplace(ctx context.Context, table models.EntityType, row *storage.Row) error {
	return s.InsertOrReplaceAll(ctx, table, []*storage.Row{row})
}

// InsertOrReplaceAll upserts rows by id in one bbolt transaction
// A foreign key violation on any row rolls back the whole call
func (s *Storage) InsertOrReplaceAll(ctx context.Context, table models.EntityType, rows []*storage.Row) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if err := s.schema.Check(table); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	now := s.now()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, row := range rows {
			stored := *row
			if stored.CachedAt.IsZero() {
				stored.CachedAt = now
			}
			if err := s.putRow(tx, table, &stored); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to store rows in %s: %w", table, err)
	}

	return nil
}

// DeleteByID removes the row and cascades to dependent tables
func (s *Storage) DeleteByID(ctx context.Context, table models.EntityType, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if err := s.schema.Check(table); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return s.deleteRow(tx, table, id)
	})

	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", table, id, err)
	}

	return nil
}

func (s *Storage) putRow(tx *bbolt.Tx, table models.EntityType, row *storage.Row) error {
	if row.ID == "" {
		return fmt.Errorf("row id cannot be empty")
	}

	// Проверяем внешние ключи: родитель должен быть уже в кэше
	for _, fk := range s.schema.ForeignKeys(table) {
		ref := row.Ref(fk.Column)
		if ref == "" {
			continue
		}
		if rowsBucket(tx, fk.References).Get([]byte(ref)) == nil {
			return fmt.Errorf("%w: %s.%s=%s has no row in %s",
				storage.ErrForeignKeyViolation, table, fk.Column, ref, fk.References)
		}
	}

	rb := rowsBucket(tx, table)

	// При замене убираем старые записи индекса
	if old := rb.Get([]byte(row.ID)); old != nil {
		oldRow, err := decodeRow(old)
		if err != nil {
			return err
		}
		if err := indexRemove(tx, table, oldRow); err != nil {
			return err
		}
	}

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}

	if err := rb.Put([]byte(row.ID), data); err != nil {
		return fmt.Errorf("failed to save row: %w", err)
	}

	return indexAdd(tx, table, row)
}

func (s *Storage) deleteRow(tx *bbolt.Tx, table models.EntityType, id string) error {
	rb := rowsBucket(tx, table)

	data := rb.Get([]byte(id))
	if data == nil {
		return nil
	}

	row, err := decodeRow(data)
	if err != nil {
		return err
	}

	// ON DELETE CASCADE: сначала все строки, ссылающиеся на эту
	for _, dep := range s.schema.Dependents(table) {
		for _, childID := range indexLookup(tx, dep.Table, dep.Column, id) {
			if err := s.deleteRow(tx, dep.Table, childID); err != nil {
				return err
			}
		}
	}

	if err := indexRemove(tx, table, row); err != nil {
		return err
	}

	return rb.Delete([]byte(id))
}

func rowsBucket(tx *bbolt.Tx, table models.EntityType) *bbolt.Bucket {
	return tx.Bucket(bucketRows).Bucket([]byte(table))
}

func indexBucketName(table models.EntityType, column string) []byte {
	return []byte(string(table) + "|" + column)
}

func indexKey(value, id string) []byte {
	key := make([]byte, 0, len(value)+1+len(id))
	key = append(key, value...)
	key = append(key, 0)
	return append(key, id...)
}

// indexLookup возвращает id строк table, у которых column == value
// Результат копируется, поэтому его можно использовать после изменения bucket
func indexLookup(tx *bbolt.Tx, table models.EntityType, column, value string) []string {
	ib := tx.Bucket(bucketRefs).Bucket(indexBucketName(table, column))
	if ib == nil {
		return nil
	}

	prefix := indexKey(value, "")
	var ids []string

	c := ib.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		ids = append(ids, string(k[len(prefix):]))
	}

	return ids
}

func indexAdd(tx *bbolt.Tx, table models.EntityType, row *storage.Row) error {
	for column, value := range row.Refs {
		ib, err := tx.Bucket(bucketRefs).CreateBucketIfNotExists(indexBucketName(table, column))
		if err != nil {
			return fmt.Errorf("failed to create index bucket: %w", err)
		}
		if err := ib.Put(indexKey(value, row.ID), []byte{}); err != nil {
			return fmt.Errorf("failed to update index: %w", err)
		}
	}
	return nil
}

func indexRemove(tx *bbolt.Tx, table models.EntityType, row *storage.Row) error {
	for column, value := range row.Refs {
		ib := tx.Bucket(bucketRefs).Bucket(indexBucketName(table, column))
		if ib == nil {
			continue
		}
		if err := ib.Delete(indexKey(value, row.ID)); err != nil {
			return fmt.Errorf("failed to update index: %w", err)
		}
	}
	return nil
}

func decodeRow(data []byte) (*storage.Row, error) {
	row := &storage.Row{}
	if err := json.Unmarshal(data, row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal row: %w", err)
	}
	return row, nil
}
