// Package storagetest содержит общий набор проверок для реализаций storage.LocalCache.
package storagetest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/edukeeper/internal/client/storage"
	"github.com/iudanet/edukeeper/internal/models"
)

// Factory создаёт пустой кэш со схемой storage.DefaultSchema
type Factory func(t *testing.T) storage.LocalCache

// Root возвращает строку корня агрегата
func Root(id string) *storage.Row {
	return &storage.Row{ID: id, Data: json.RawMessage(`{"title":"` + id + `"}`)}
}

// Child возвращает строку, ссылающуюся на parent через parent_key
func Child(id, parent string) *storage.Row {
	return &storage.Row{
		ID:   id,
		Refs: map[string]string{models.FieldParentKey: parent},
		Data: json.RawMessage(`{"parent_key":"` + parent + `"}`),
	}
}

// IDs возвращает id строк
func IDs(rows []*storage.Row) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

// Run прогоняет набор проверок LocalCache
func Run(t *testing.T, newCache Factory) {
	kind := models.KindTest

	t.Run("GetByID not found", func(t *testing.T) {
		c := newCache(t)
		_, err := c.GetByID(context.Background(), kind.Root, "missing")
		assert.ErrorIs(t, err, storage.ErrRowNotFound)
	})

	t.Run("unknown table", func(t *testing.T) {
		c := newCache(t)
		ctx := context.Background()

		_, err := c.GetByID(ctx, "lessons", "x")
		assert.ErrorIs(t, err, storage.ErrUnknownTable)
		assert.ErrorIs(t, c.InsertOrReplace(ctx, "lessons", Root("x")), storage.ErrUnknownTable)
	})

	t.Run("insert or replace", func(t *testing.T) {
		c := newCache(t)
		ctx := context.Background()

		require.NoError(t, c.InsertOrReplace(ctx, kind.Root, Root("T1")))

		got, err := c.GetByID(ctx, kind.Root, "T1")
		require.NoError(t, err)
		assert.Equal(t, "T1", got.ID)
		assert.JSONEq(t, `{"title":"T1"}`, string(got.Data))
		assert.False(t, got.CachedAt.IsZero(), "CachedAt is stamped on write")

		replaced := Root("T1")
		replaced.Data = json.RawMessage(`{"title":"renamed"}`)
		require.NoError(t, c.InsertOrReplace(ctx, kind.Root, replaced))

		got, err = c.GetByID(ctx, kind.Root, "T1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"renamed"}`, string(got.Data))
	})

	t.Run("query by foreign key", func(t *testing.T) {
		c := newCache(t)
		ctx := context.Background()

		require.NoError(t, c.InsertOrReplaceAll(ctx, kind.Root, []*storage.Row{Root("T1"), Root("T2")}))
		require.NoError(t, c.InsertOrReplaceAll(ctx, kind.Child, []*storage.Row{
			Child("q1", "T1"),
			Child("q2", "T1"),
			Child("q3", "T2"),
		}))

		rows, err := c.QueryByForeignKey(ctx, kind.Child, models.FieldParentKey, "T1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"q1", "q2"}, IDs(rows))

		rows, err = c.QueryByForeignKey(ctx, kind.Child, models.FieldParentKey, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("replace moves row between parents", func(t *testing.T) {
		c := newCache(t)
		ctx := context.Background()

		require.NoError(t, c.InsertOrReplaceAll(ctx, kind.Root, []*storage.Row{Root("T1"), Root("T2")}))
		require.NoError(t, c.InsertOrReplace(ctx, kind.Child, Child("q1", "T1")))
		require.NoError(t, c.InsertOrReplace(ctx, kind.Child, Child("q1", "T2")))

		rows, err := c.QueryByForeignKey(ctx, kind.Child, models.FieldParentKey, "T1")
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = c.QueryByForeignKey(ctx, kind.Child, models.FieldParentKey, "T2")
		require.NoError(t, err)
		assert.Equal(t, []string{"q1"}, IDs(rows))
	})

	t.Run("foreign key violation", func(t *testing.T) {
		c := newCache(t)
		ctx := context.Background()

		err := c.InsertOrReplace(ctx, kind.Child, Child("q1", "ghost"))
		assert.ErrorIs(t, err, storage.ErrForeignKeyViolation)

		_, err = c.GetByID(ctx, kind.Child, "q1")
		assert.ErrorIs(t, err, storage.ErrRowNotFound)
	})

	t.Run("delete cascades", func(t *testing.T) {
		c := newCache(t)
		ctx := context.Background()

		require.NoError(t, c.InsertOrReplaceAll(ctx, kind.Root, []*storage.Row{Root("T1"), Root("T2")}))
		require.NoError(t, c.InsertOrReplaceAll(ctx, kind.Child, []*storage.Row{Child("q1", "T1"), Child("q2", "T1"), Child("q3", "T2")}))
		require.NoError(t, c.InsertOrReplaceAll(ctx, kind.Grandchild, []*storage.Row{
			Child("o1", "q1"),
			Child("o2", "q1"),
			Child("o3", "q2"),
			Child("o4", "q3"),
		}))

		require.NoError(t, c.DeleteByID(ctx, kind.Root, "T1"))

		_, err := c.GetByID(ctx, kind.Root, "T1")
		assert.ErrorIs(t, err, storage.ErrRowNotFound)
		for _, id := range []string{"q1", "q2"} {
			_, err := c.GetByID(ctx, kind.Child, id)
			assert.ErrorIs(t, err, storage.ErrRowNotFound, id)
		}
		for _, id := range []string{"o1", "o2", "o3"} {
			_, err := c.GetByID(ctx, kind.Grandchild, id)
			assert.ErrorIs(t, err, storage.ErrRowNotFound, id)
		}

		rows, err := c.QueryByForeignKey(ctx, kind.Child, models.FieldParentKey, "T1")
		require.NoError(t, err)
		assert.Empty(t, rows, "index entries are removed with rows")

		// Другой агрегат не тронут
		_, err = c.GetByID(ctx, kind.Child, "q3")
		assert.NoError(t, err)
		_, err = c.GetByID(ctx, kind.Grandchild, "o4")
		assert.NoError(t, err)
	})

	t.Run("delete absent row", func(t *testing.T) {
		c := newCache(t)
		assert.NoError(t, c.DeleteByID(context.Background(), kind.Root, "missing"))
	})

	t.Run("kinds are isolated", func(t *testing.T) {
		c := newCache(t)
		ctx := context.Background()
		game := models.KindMiniGame

		require.NoError(t, c.InsertOrReplace(ctx, game.Root, Root("G1")))
		require.NoError(t, c.InsertOrReplace(ctx, game.Child, Child("mq1", "G1")))

		// test_questions не может ссылаться на minigames
		err := c.InsertOrReplace(ctx, kind.Child, Child("q1", "G1"))
		assert.ErrorIs(t, err, storage.ErrForeignKeyViolation)

		rows, err := c.QueryByForeignKey(ctx, game.Child, models.FieldParentKey, "G1")
		require.NoError(t, err)
		assert.Equal(t, []string{"mq1"}, IDs(rows))
	})
}
