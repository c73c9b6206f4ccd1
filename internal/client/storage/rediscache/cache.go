// Package rediscache implements storage.LocalCache on top of Redis.
//
// Layout (every key is namespaced by Config.Prefix):
//
//	<prefix>:rows:<table>                     HASH  id -> JSON row
//	<prefix>:idx:<table>:<column>:<value>     SET   ids of rows whose column == value
//
// Writes of one call go through a MULTI/EXEC pipeline. Foreign keys are
// checked before the pipeline, so concurrent writers from several processes
// can race; the cache has a single writer per device.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iudanet/edukeeper/internal/client/storage"
	"github.com/iudanet/edukeeper/internal/models"
)

// DefaultPrefix namespace ключей по умолчанию
const DefaultPrefix = "edukeeper"

// Config holds Redis cache configuration.
type Config struct {
	// URL в формате redis://[:password@]host:port/db
	URL string

	// Prefix namespace всех ключей кэша
	Prefix string
}

// Ensure, that Cache does implement storage.LocalCache.
var _ storage.LocalCache = (*Cache)(nil)

// Cache is a Redis-backed local cache.
type Cache struct {
	client *redis.Client
	schema storage.Schema
	now    func() time.Time
	prefix string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, cfg Config) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error pinging redis: %w", err)
	}

	return NewWithClient(client, cfg.Prefix), nil
}

// NewWithClient wraps an existing client. Close closes the client.
func NewWithClient(client *redis.Client, prefix string) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{
		client: client,
		schema: storage.DefaultSchema(),
		now:    time.Now,
		prefix: prefix,
	}
}

// Close closes the Redis connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) rowsKey(table models.EntityType) string {
	return c.prefix + ":rows:" + string(table)
}

func (c *Cache) indexKey(table models.EntityType, column, value string) string {
	return c.prefix + ":idx:" + string(table) + ":" + column + ":" + value
}

// GetByID returns the row or storage.ErrRowNotFound.
func (c *Cache) GetByID(ctx context.Context, table models.EntityType, id string) (*storage.Row, error) {
	if err := c.schema.Check(table); err != nil {
		return nil, err
	}

	data, err := c.client.HGet(ctx, c.rowsKey(table), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrRowNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", table, id, err)
	}

	return decodeRow(data)
}

// QueryByForeignKey returns all rows of table whose column equals value.
func (c *Cache) QueryByForeignKey(ctx context.Context, table models.EntityType, column, value string) ([]*storage.Row, error) {
	if err := c.schema.Check(table); err != nil {
		return nil, err
	}

	ids, err := c.client.SMembers(ctx, c.indexKey(table, column, value)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index %s.%s: %w", table, column, err)
	}

	rows := make([]*storage.Row, 0, len(ids))
	if len(ids) == 0 {
		return rows, nil
	}

	values, err := c.client.HMGet(ctx, c.rowsKey(table), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", table, err)
	}

	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// строка удалена между чтением индекса и HMGET
			continue
		}
		row, err := decodeRow([]byte(s))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// InsertOrReplace upserts one row by id.
func (c *Cache) InsertOrReplace(ctx context.Context, table models.EntityType, row *storage.Row) error {
	return c.InsertOrReplaceAll(ctx, table, []*storage.Row{row})
}

// InsertOrReplaceAll upserts rows by id in one MULTI/EXEC.
func (c *Cache) InsertOrReplaceAll(ctx context.Context, table models.EntityType, rows []*storage.Row) error {
	if err := c.schema.Check(table); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	if err := c.checkForeignKeys(ctx, table, rows); err != nil {
		return err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			return fmt.Errorf("row id cannot be empty")
		}
		ids = append(ids, row.ID)
	}

	// Старые версии строк нужны, чтобы убрать их из индексов
	old, err := c.client.HMGet(ctx, c.rowsKey(table), ids...).Result()
	if err != nil {
		return fmt.Errorf("failed to read rows of %s: %w", table, err)
	}

	now := c.now()
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, row := range rows {
			if s, ok := old[i].(string); ok {
				prev, err := decodeRow([]byte(s))
				if err != nil {
					return err
				}
				for column, value := range prev.Refs {
					pipe.SRem(ctx, c.indexKey(table, column, value), prev.ID)
				}
			}

			stored := *row
			if stored.CachedAt.IsZero() {
				stored.CachedAt = now
			}
			data, err := json.Marshal(&stored)
			if err != nil {
				return fmt.Errorf("failed to marshal row: %w", err)
			}

			pipe.HSet(ctx, c.rowsKey(table), stored.ID, data)
			for column, value := range stored.Refs {
				pipe.SAdd(ctx, c.indexKey(table, column, value), stored.ID)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store rows in %s: %w", table, err)
	}

	return nil
}

func (c *Cache) checkForeignKeys(ctx context.Context, table models.EntityType, rows []*storage.Row) error {
	for _, fk := range c.schema.ForeignKeys(table) {
		for _, row := range rows {
			ref := row.Ref(fk.Column)
			if ref == "" {
				continue
			}
			exists, err := c.client.HExists(ctx, c.rowsKey(fk.References), ref).Result()
			if err != nil {
				return fmt.Errorf("failed to check foreign key: %w", err)
			}
			if !exists {
				return fmt.Errorf("%w: %s.%s=%s has no row in %s",
					storage.ErrForeignKeyViolation, table, fk.Column, ref, fk.References)
			}
		}
	}
	return nil
}

// cachedRow строка вместе с таблицей, используется при каскадном удалении
type cachedRow struct {
	row   *storage.Row
	table models.EntityType
}

// DeleteByID removes the row and cascades to dependent tables.
func (c *Cache) DeleteByID(ctx context.Context, table models.EntityType, id string) error {
	if err := c.schema.Check(table); err != nil {
		return err
	}

	doomed, err := c.collectCascade(ctx, table, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", table, id, err)
	}
	if len(doomed) == 0 {
		return nil
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, d := range doomed {
			pipe.HDel(ctx, c.rowsKey(d.table), d.row.ID)
			for column, value := range d.row.Refs {
				pipe.SRem(ctx, c.indexKey(d.table, column, value), d.row.ID)
			}
			// индексы, которые указывали на удаляемую строку, больше не нужны
			for _, dep := range c.schema.Dependents(d.table) {
				pipe.Del(ctx, c.indexKey(dep.Table, dep.Column, d.row.ID))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", table, id, err)
	}

	return nil
}

// collectCascade собирает строку и всё, что на неё ссылается
func (c *Cache) collectCascade(ctx context.Context, table models.EntityType, id string) ([]cachedRow, error) {
	row, err := c.GetByID(ctx, table, id)
	if errors.Is(err, storage.ErrRowNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	doomed := []cachedRow{{table: table, row: row}}
	for _, dep := range c.schema.Dependents(table) {
		children, err := c.QueryByForeignKey(ctx, dep.Table, dep.Column, id)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			sub, err := c.collectCascade(ctx, dep.Table, child.ID)
			if err != nil {
				return nil, err
			}
			doomed = append(doomed, sub...)
		}
	}

	return doomed, nil
}

func decodeRow(data []byte) (*storage.Row, error) {
	row := &storage.Row{}
	if err := json.Unmarshal(data, row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal row: %w", err)
	}
	return row, nil
}
