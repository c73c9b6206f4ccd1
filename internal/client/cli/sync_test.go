package cli

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/edukeeper/internal/client/storage"
	"github.com/iudanet/edukeeper/internal/client/storage/boltdb"
	"github.com/iudanet/edukeeper/internal/client/sync"
	"github.com/iudanet/edukeeper/internal/models"
)

func syncCli(svc *sync.ServiceMock, cache storage.LocalCache, input string) (*Cli, func() string) {
	mockIO, output := captureIO(input)
	return &Cli{
		io:     mockIO,
		logger: setupTestLogger(),
		cache:  cache,
		syncer: func(kind models.AggregateKind) sync.Service {
			return svc
		},
	}, output
}

func setupCache(t *testing.T) *boltdb.Storage {
	t.Helper()
	c, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

func siblingRow(t *testing.T, id, parent string, order int, payload string) *storage.Row {
	t.Helper()
	data, err := json.Marshal(models.SiblingRecord{ID: id, ParentKey: parent, Order: order, Payload: json.RawMessage(payload)})
	require.NoError(t, err)
	return &storage.Row{ID: id, Data: data, Refs: map[string]string{models.FieldParentKey: parent}}
}

func TestCli_runSync_Success(t *testing.T) {
	synced := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	svc := &sync.ServiceMock{
		SyncAggregateFunc: func(ctx context.Context, rootID string, forceSync bool) (*sync.SyncResult, error) {
			return &sync.SyncResult{
				Children:      2,
				Grandchildren: 5,
				Skipped:       1,
				Warnings: []*models.PartialSyncWarning{
					{Entity: models.EntityTestOption, ParentID: "q2", Err: errors.New("timeout")},
				},
			}, nil
		},
		StatusFunc: func(entityType models.EntityType) models.SyncStatus {
			return models.SyncStatus{EntityType: entityType, LastSyncTime: synced}
		},
	}
	c, output := syncCli(svc, nil, "")

	require.NoError(t, c.runSync(context.Background(), models.KindTest, "T1", true))

	calls := svc.SyncAggregateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "T1", calls[0].RootID)
	assert.True(t, calls[0].ForceSync)

	out := output()
	assert.Contains(t, out, "✓ test T1 synchronized")
	assert.Contains(t, out, "Children cached:      2")
	assert.Contains(t, out, "Grandchildren cached: 5")
	assert.Contains(t, out, "Skipped (errors):     1")
	assert.Contains(t, out, "fetch test_options of q2 failed: timeout")
	assert.Contains(t, out, "Last sync:            2024-03-05 12:00:00")
}

func TestCli_runSync_FromCache(t *testing.T) {
	svc := &sync.ServiceMock{
		SyncAggregateFunc: func(ctx context.Context, rootID string, forceSync bool) (*sync.SyncResult, error) {
			return &sync.SyncResult{FromCache: true}, nil
		},
	}
	c, output := syncCli(svc, nil, "")

	require.NoError(t, c.runSync(context.Background(), models.KindMiniGame, "G1", false))
	assert.Contains(t, output(), "minigame G1 is cached, no server request made")
	assert.Empty(t, svc.StatusCalls())
}

func TestCli_runSync_Error(t *testing.T) {
	svc := &sync.ServiceMock{
		SyncAggregateFunc: func(ctx context.Context, rootID string, forceSync bool) (*sync.SyncResult, error) {
			return nil, &models.SyncError{RootID: rootID, Err: models.ErrNotFound}
		},
	}
	c, _ := syncCli(svc, nil, "")

	err := c.runSync(context.Background(), models.KindTest, "T1", false)
	var syncErr *models.SyncError
	assert.ErrorAs(t, err, &syncErr)
}

func TestCli_runStatus(t *testing.T) {
	ctx := context.Background()
	cache := setupCache(t)
	require.NoError(t, cache.InsertOrReplace(ctx, models.EntityTest, &storage.Row{ID: "T1", Data: json.RawMessage(`{}`)}))
	require.NoError(t, cache.InsertOrReplace(ctx, models.EntityTestQuestion, siblingRow(t, "q1", "T1", 1, `{"text":"a"}`)))
	require.NoError(t, cache.InsertOrReplace(ctx, models.EntityTestOption, siblingRow(t, "o1", "q1", 1, `{"text":"b"}`)))

	svc := &sync.ServiceMock{
		IsCacheStaleFunc: func(ctx context.Context, entityType models.EntityType, id string) (bool, error) {
			return false, nil
		},
	}
	c, output := syncCli(svc, cache, "")

	require.NoError(t, c.runStatus(ctx, models.KindTest, "T1"))

	out := output()
	assert.Contains(t, out, "Root cached:     yes")
	assert.Contains(t, out, "Children cached: 1")
	assert.Contains(t, out, "q1: 1 grandchildren")
	assert.Len(t, svc.IsCacheStaleCalls(), 2)
}

func TestCli_runStatus_Empty(t *testing.T) {
	svc := &sync.ServiceMock{
		IsCacheStaleFunc: func(ctx context.Context, entityType models.EntityType, id string) (bool, error) {
			return true, nil
		},
	}
	c, output := syncCli(svc, &storage.LocalCacheMock{}, "")

	require.NoError(t, c.runStatus(context.Background(), models.KindTest, "T9"))

	out := output()
	assert.Contains(t, out, "Root cached:     no")
	assert.Contains(t, out, "Run 'edukeeper sync T9' to fetch it.")
}

func TestCli_runClear(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		yes         bool
		wantCleared bool
	}{
		{name: "confirmed", input: "y", wantCleared: true},
		{name: "declined", input: "n", wantCleared: false},
		{name: "skip prompt", yes: true, wantCleared: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &sync.ServiceMock{
				ClearCacheFunc: func(ctx context.Context, rootID string) error {
					return nil
				},
			}
			c, output := syncCli(svc, nil, tt.input)

			require.NoError(t, c.runClear(context.Background(), models.KindTest, "T1", tt.yes))

			if tt.wantCleared {
				require.Len(t, svc.ClearCacheCalls(), 1)
				assert.Equal(t, "T1", svc.ClearCacheCalls()[0].RootID)
				assert.Contains(t, output(), "Cleared cached test T1")
				return
			}
			assert.Empty(t, svc.ClearCacheCalls())
			assert.Contains(t, output(), "Cancelled.")
		})
	}
}

func TestCli_runShow(t *testing.T) {
	ctx := context.Background()
	cache := setupCache(t)
	require.NoError(t, cache.InsertOrReplace(ctx, models.EntityMiniGame, &storage.Row{ID: "G1", Data: json.RawMessage(`{"title":"Animals"}`)}))
	require.NoError(t, cache.InsertOrReplaceAll(ctx, models.EntityMiniGameQuestion, []*storage.Row{
		siblingRow(t, "q2", "G1", 2, `{"text":"Second"}`),
		siblingRow(t, "q1", "G1", 1, `{"text":"First"}`),
	}))
	require.NoError(t, cache.InsertOrReplaceAll(ctx, models.EntityMiniGameOption, []*storage.Row{
		siblingRow(t, "o2", "q1", 2, `{"text":"cat","is_correct":true}`),
		siblingRow(t, "o1", "q1", 1, `{"text":"dog","is_correct":false}`),
	}))

	svc := &sync.ServiceMock{
		SyncAggregateFunc: func(ctx context.Context, rootID string, forceSync bool) (*sync.SyncResult, error) {
			return &sync.SyncResult{FromCache: true}, nil
		},
	}
	c, output := syncCli(svc, cache, "")

	require.NoError(t, c.runShow(ctx, models.KindMiniGame, "G1", FormatYAML, false))
	require.Len(t, svc.SyncAggregateCalls(), 1)

	var view aggregateView
	require.NoError(t, yaml.Unmarshal([]byte(output()), &view))

	assert.Equal(t, "G1", view.ID)
	assert.Equal(t, "minigame", view.Kind)
	assert.Equal(t, "Animals", view.Root["title"])
	require.Len(t, view.Children, 2)
	assert.Equal(t, "q1", view.Children[0].ID)
	assert.Equal(t, "q2", view.Children[1].ID)
	require.Len(t, view.Children[0].Grandchildren, 2)
	assert.Equal(t, "o1", view.Children[0].Grandchildren[0].ID)
	assert.Equal(t, true, view.Children[0].Grandchildren[1].Payload["is_correct"])
	assert.Empty(t, view.Children[1].Grandchildren)
}

func TestCli_runShow_SyncError(t *testing.T) {
	svc := &sync.ServiceMock{
		SyncAggregateFunc: func(ctx context.Context, rootID string, forceSync bool) (*sync.SyncResult, error) {
			return nil, &models.SyncError{RootID: rootID, Err: errors.New("offline")}
		},
	}
	c, output := syncCli(svc, &storage.LocalCacheMock{}, "")

	err := c.runShow(context.Background(), models.KindTest, "T1", FormatJSON, true)
	assert.Error(t, err)
	assert.Empty(t, output())
}
