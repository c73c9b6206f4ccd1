package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/edukeeper/internal/models"
	"github.com/iudanet/edukeeper/internal/server/storage"
)

// setupTestStorage создает storage во временной директории
func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	ctx := context.Background()
	s, err := New(ctx, filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)

	cleanup := func() {
		require.NoError(t, s.Close())
	}

	return s, cleanup
}

func sibling(t *testing.T, parent string, order int) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"parent_key": parent,
		"order":      order,
		"payload":    map[string]string{"text": "q"},
	})
	require.NoError(t, err)
	return data
}

func TestDocumentStorage_SetAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	doc, err := s.Set(ctx, "test_questions", "q1", sibling(t, "T1", 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Version)
	assert.False(t, doc.CreatedAt.IsZero())

	got, err := s.Get(ctx, "test_questions", "q1")
	require.NoError(t, err)
	assert.Equal(t, "q1", got.ID)
	assert.Equal(t, "test_questions", got.Collection)
	assert.JSONEq(t, string(sibling(t, "T1", 1)), string(got.Data))

	// Повторная запись увеличивает версию и сохраняет created_at
	updated, err := s.Set(ctx, "test_questions", "q1", sibling(t, "T1", 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, got.CreatedAt.UnixMilli(), updated.CreatedAt.UnixMilli())
}

func TestDocumentStorage_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.Get(ctx, "tests", "missing")
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDocumentStorage_Set_InvalidJSON(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.Set(ctx, "tests", "t1", json.RawMessage(`{broken`))
	assert.ErrorIs(t, err, storage.ErrInvalidWrite)
}

func TestDocumentStorage_Query(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.Set(ctx, "test_questions", "q1", sibling(t, "T1", 1))
	require.NoError(t, err)
	_, err = s.Set(ctx, "test_questions", "q2", sibling(t, "T1", 2))
	require.NoError(t, err)
	_, err = s.Set(ctx, "test_questions", "q3", sibling(t, "T2", 1))
	require.NoError(t, err)
	_, err = s.Set(ctx, "test_options", "o1", sibling(t, "T1", 1))
	require.NoError(t, err)

	tests := []struct {
		name    string
		coll    string
		filters []models.Filter
		wantIDs []string
	}{
		{
			name:    "by parent",
			coll:    "test_questions",
			filters: []models.Filter{models.ParentFilter("T1")},
			wantIDs: []string{"q1", "q2"},
		},
		{
			name:    "other parent",
			coll:    "test_questions",
			filters: []models.Filter{models.ParentFilter("T2")},
			wantIDs: []string{"q3"},
		},
		{
			name:    "no filters returns whole collection",
			coll:    "test_questions",
			wantIDs: []string{"q1", "q2", "q3"},
		},
		{
			name:    "no match",
			coll:    "test_questions",
			filters: []models.Filter{models.ParentFilter("nope")},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := s.Query(ctx, tt.coll, tt.filters...)
			require.NoError(t, err)

			ids := make([]string, 0, len(docs))
			for _, d := range docs {
				ids = append(ids, d.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestDocumentStorage_Query_InvalidField(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.Query(ctx, "tests", models.Filter{Field: "x') OR 1=1 --", Value: "1"})
	assert.ErrorIs(t, err, storage.ErrInvalidFilter)
}

func TestDocumentStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.Set(ctx, "tests", "t1", json.RawMessage(`{"title":"x"}`))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "tests", "t1"))
	_, err = s.Get(ctx, "tests", "t1")
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)

	// Удаление отсутствующего документа не ошибка
	assert.NoError(t, s.Delete(ctx, "tests", "t1"))
}

func TestDocumentStorage_BatchCommit(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.Set(ctx, "test_questions", "q1", sibling(t, "T1", 1))
	require.NoError(t, err)
	_, err = s.Set(ctx, "test_questions", "gone", sibling(t, "T1", 9))
	require.NoError(t, err)

	err = s.BatchCommit(ctx, []models.WriteOp{
		models.SetOp("test_questions", "q1", sibling(t, "T1", 2)),
		models.SetOp("test_questions", "q2", sibling(t, "T1", 1)),
		models.DeleteOp("test_questions", "gone"),
	})
	require.NoError(t, err)

	q1, err := s.Get(ctx, "test_questions", "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), q1.Version)
	assert.JSONEq(t, string(sibling(t, "T1", 2)), string(q1.Data))

	_, err = s.Get(ctx, "test_questions", "q2")
	assert.NoError(t, err)

	_, err = s.Get(ctx, "test_questions", "gone")
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
}

func TestDocumentStorage_BatchCommit_Empty(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	assert.NoError(t, s.BatchCommit(context.Background(), nil))
}

func TestDocumentStorage_BatchCommit_VersionConflictRollsBack(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.Set(ctx, "test_questions", "q1", sibling(t, "T1", 1))
	require.NoError(t, err)
	// Версия q1 становится 2
	_, err = s.Set(ctx, "test_questions", "q1", sibling(t, "T1", 1))
	require.NoError(t, err)

	stale := models.SetOp("test_questions", "q1", sibling(t, "T1", 2))
	stale.ExpectedVersion = 1

	err = s.BatchCommit(ctx, []models.WriteOp{
		models.SetOp("test_questions", "q2", sibling(t, "T1", 1)),
		stale,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrVersionConflict)

	// Первая запись батча не должна была сохраниться
	_, err = s.Get(ctx, "test_questions", "q2")
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)

	q1, err := s.Get(ctx, "test_questions", "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), q1.Version)
	assert.JSONEq(t, string(sibling(t, "T1", 1)), string(q1.Data))
}

func TestDocumentStorage_BatchCommit_ExpectedVersionOnMissingDocument(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	op := models.SetOp("tests", "t1", json.RawMessage(`{}`))
	op.ExpectedVersion = 3

	err := s.BatchCommit(ctx, []models.WriteOp{op})
	assert.ErrorIs(t, err, storage.ErrVersionConflict)
}

func TestDocumentStorage_BatchCommit_UnknownType(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.BatchCommit(ctx, []models.WriteOp{
		models.SetOp("tests", "t1", json.RawMessage(`{}`)),
		{Type: "merge", Collection: "tests", ID: "t2"},
	})
	assert.ErrorIs(t, err, storage.ErrInvalidWrite)

	_, err = s.Get(ctx, "tests", "t1")
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
}
