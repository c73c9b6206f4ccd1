package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/edukeeper/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketRows = []byte("rows") // rows/<table>/<id> -> JSON Row
	bucketRefs = []byte("refs") // refs/<table>|<column>/<value>\x00<id> -> empty
)

// Ensure, that Storage does implement storage.LocalCache.
var _ storage.LocalCache = (*Storage)(nil)

// Storage represents BoltDB local cache implementation for client
type Storage struct {
	db     *bbolt.DB
	schema storage.Schema
	now    func() time.Time
}

// Option настраивает Storage
type Option func(*Storage)

// WithSchema задаёт схему таблиц вместо storage.DefaultSchema
func WithSchema(schema storage.Schema) Option {
	return func(s *Storage) {
		s.schema = schema
	}
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	// bbolt держит эксклюзивную блокировку файла, второй процесс ждёт не дольше секунды
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{
		db:     db,
		schema: storage.DefaultSchema(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
// Repeated Close is a no-op, other methods return storage.ErrStorageClosed
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает buckets всех таблиц схемы если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		rows, err := tx.CreateBucketIfNotExists(bucketRows)
		if err != nil {
			return fmt.Errorf("failed to create rows bucket: %w", err)
		}

		if _, err := tx.CreateBucketIfNotExists(bucketRefs); err != nil {
			return fmt.Errorf("failed to create refs bucket: %w", err)
		}

		for _, table := range s.schema.Tables() {
			if _, err := rows.CreateBucketIfNotExists([]byte(table)); err != nil {
				return fmt.Errorf("failed to create bucket for %s: %w", table, err)
			}
		}

		return nil
	})
}
