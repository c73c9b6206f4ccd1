package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/edukeeper/internal/client/api"
	"github.com/iudanet/edukeeper/internal/client/storage"
	"github.com/iudanet/edukeeper/internal/models"
)

//go:generate moq -out service_mock.go . Service

// DefaultFanOut число одновременных запросов внуков
const DefaultFanOut = 4

// ErrUnknownEntity тип сущности не принадлежит агрегату сервиса
var ErrUnknownEntity = errors.New("entity type does not belong to aggregate")

// Service определяет интерфейс синхронизации одного вида агрегата
type Service interface {
	// SyncAggregate refreshes the cached aggregate rooted at rootID from the remote store
	// unless the cache already looks complete. Only a root fetch failure is fatal.
	SyncAggregate(ctx context.Context, rootID string, forceSync bool) (*SyncResult, error)

	// IsCacheStale reports whether the cache holds nothing for id:
	// no root row, or no rows whose parent_key is id for child levels
	IsCacheStale(ctx context.Context, entityType models.EntityType, id string) (bool, error)

	// ClearCache deletes the cached root row; the cache cascades the rest
	ClearCache(ctx context.Context, rootID string) error

	// Status returns the in-memory sync bookkeeping of an entity type
	Status(entityType models.EntityType) models.SyncStatus
}

// SyncResult contains sync operation results
type SyncResult struct {
	Warnings      []*models.PartialSyncWarning // пропущенные ветки
	FromCache     bool                         // кэш признан полным, удалённых запросов не было
	Children      int                          // количество закэшированных детей
	Grandchildren int                          // количество закэшированных внуков
	Skipped       int                          // количество веток, которые не удалось получить или записать
}

type service struct {
	remote   api.DocumentStore
	cache    storage.LocalCache
	logger   *slog.Logger
	now      func() time.Time
	statuses map[models.EntityType]*models.SyncStatus
	kind     models.AggregateKind
	fanOut   int
	mu       sync.Mutex
}

// Option настраивает сервис синхронизации
type Option func(*service)

// WithFanOut ограничивает число параллельных запросов внуков
func WithFanOut(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.fanOut = n
		}
	}
}

// WithClock подменяет источник времени для SyncStatus
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService creates a sync service for one aggregate kind
func NewService(kind models.AggregateKind, remote api.DocumentStore, cache storage.LocalCache, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		remote:   remote,
		cache:    cache,
		logger:   logger.With("aggregate", kind.Name),
		now:      time.Now,
		statuses: make(map[models.EntityType]*models.SyncStatus, 3),
		kind:     kind,
		fanOut:   DefaultFanOut,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncAggregate performs cache check and remote refresh of one aggregate
// 1. Trusts the cache if root, children and at least one child's grandchildren are cached
// 2. Fetches the root; failure aborts the call
// 3. Fetches children and grandchildren; every failure there is logged and skipped
// 4. Writes root, then children, then grandchildren into the cache
func (s *service) SyncAggregate(ctx context.Context, rootID string, forceSync bool) (*SyncResult, error) {
	if !forceSync && s.cachedEnough(ctx, rootID) {
		s.logger.Debug("Aggregate served from cache", "root_id", rootID)
		return &SyncResult{FromCache: true}, nil
	}

	s.logger.Info("Starting aggregate sync", "root_id", rootID, "force", forceSync)
	s.beginSync()

	result := &SyncResult{}
	err := s.refresh(ctx, rootID, result)
	s.finishSync(result, err)
	if err != nil {
		s.logger.Error("Aggregate sync failed", "root_id", rootID, "error", err)
		return nil, err
	}

	s.logger.Info("Aggregate sync completed",
		"root_id", rootID,
		"children", result.Children,
		"grandchildren", result.Grandchildren,
		"skipped", result.Skipped)

	return result, nil
}

// cachedEnough проверяет эвристику "корень, дети и хотя бы у одного ребёнка есть внуки".
// Ошибки чтения кэша считаются промахом
func (s *service) cachedEnough(ctx context.Context, rootID string) bool {
	if _, err := s.cache.GetByID(ctx, s.kind.Root, rootID); err != nil {
		if !errors.Is(err, storage.ErrRowNotFound) {
			s.logger.Warn("Failed to read cached root, treating as miss", "root_id", rootID, "error", err)
		}
		return false
	}

	children, err := s.cache.QueryByForeignKey(ctx, s.kind.Child, models.FieldParentKey, rootID)
	if err != nil {
		s.logger.Warn("Failed to read cached children, treating as miss", "root_id", rootID, "error", err)
		return false
	}

	for _, child := range children {
		grandchildren, err := s.cache.QueryByForeignKey(ctx, s.kind.Grandchild, models.FieldParentKey, child.ID)
		if err != nil {
			s.logger.Warn("Failed to read cached grandchildren, treating as miss", "child_id", child.ID, "error", err)
			return false
		}
		// Достаточно одного ребёнка с внуками
		if len(grandchildren) > 0 {
			return true
		}
	}

	return false
}

func (s *service) refresh(ctx context.Context, rootID string, result *SyncResult) error {
	root, err := s.remote.Get(ctx, string(s.kind.Root), rootID)
	if err != nil {
		return &models.SyncError{RootID: rootID, Err: err}
	}

	if err := s.cache.InsertOrReplace(ctx, s.kind.Root, rowFromDocument(root, "")); err != nil {
		return &models.SyncError{RootID: rootID, Err: fmt.Errorf("failed to cache root: %w", err)}
	}

	children, err := s.remote.Query(ctx, string(s.kind.Child), models.ParentFilter(rootID))
	if err != nil {
		s.warn(result, &models.PartialSyncWarning{Entity: s.kind.Child, ParentID: rootID, Err: err})
		return nil
	}
	if len(children) == 0 {
		return nil
	}

	// Без строк детей кэш отклонит внуков по внешнему ключу, поэтому ветка внуков пропускается
	if err := s.cache.InsertOrReplaceAll(ctx, s.kind.Child, rowsFromDocuments(children, rootID)); err != nil {
		s.warn(result, &models.PartialSyncWarning{
			Entity:   s.kind.Child,
			ParentID: rootID,
			Err:      fmt.Errorf("failed to cache children: %w", err),
		})
		return nil
	}
	result.Children = len(children)

	fetched := s.fetchGrandchildren(ctx, children)

	// Запись внуков идёт в порядке детей, после того как все дети записаны
	for i, child := range children {
		branch := fetched[i]
		if branch.err != nil {
			s.warn(result, &models.PartialSyncWarning{Entity: s.kind.Grandchild, ParentID: child.ID, Err: branch.err})
			continue
		}
		if len(branch.docs) == 0 {
			continue
		}

		if err := s.cache.InsertOrReplaceAll(ctx, s.kind.Grandchild, rowsFromDocuments(branch.docs, child.ID)); err != nil {
			s.warn(result, &models.PartialSyncWarning{
				Entity:   s.kind.Grandchild,
				ParentID: child.ID,
				Err:      fmt.Errorf("failed to cache grandchildren: %w", err),
			})
			continue
		}
		result.Grandchildren += len(branch.docs)
	}

	return nil
}

type branch struct {
	err  error
	docs []*models.Document
}

// fetchGrandchildren запрашивает внуков всех детей, не более fanOut запросов одновременно.
// Ошибка одной ветки не отменяет остальные
func (s *service) fetchGrandchildren(ctx context.Context, children []*models.Document) []branch {
	branches := make([]branch, len(children))

	var g errgroup.Group
	g.SetLimit(s.fanOut)
	for i, child := range children {
		g.Go(func() error {
			docs, err := s.remote.Query(ctx, string(s.kind.Grandchild), models.ParentFilter(child.ID))
			branches[i] = branch{docs: docs, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return branches
}

func (s *service) warn(result *SyncResult, w *models.PartialSyncWarning) {
	s.logger.Warn("Partial sync", "entity", string(w.Entity), "parent_id", w.ParentID, "error", w.Err)
	result.Warnings = append(result.Warnings, w)
	result.Skipped++
}

// IsCacheStale checks emptiness only, no TTL
func (s *service) IsCacheStale(ctx context.Context, entityType models.EntityType, id string) (bool, error) {
	level, ok := s.kind.Level(entityType)
	if !ok {
		return false, fmt.Errorf("%w: %s not in %s", ErrUnknownEntity, entityType, s.kind.Name)
	}

	if level == 0 {
		_, err := s.cache.GetByID(ctx, entityType, id)
		if errors.Is(err, storage.ErrRowNotFound) {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to read cached %s: %w", entityType, err)
		}
		return false, nil
	}

	rows, err := s.cache.QueryByForeignKey(ctx, entityType, models.FieldParentKey, id)
	if err != nil {
		return false, fmt.Errorf("failed to read cached %s: %w", entityType, err)
	}
	return len(rows) == 0, nil
}

// ClearCache deletes the cached root row only
func (s *service) ClearCache(ctx context.Context, rootID string) error {
	if err := s.cache.DeleteByID(ctx, s.kind.Root, rootID); err != nil {
		return fmt.Errorf("failed to clear cached aggregate %s: %w", rootID, err)
	}

	s.logger.Info("Cached aggregate cleared", "root_id", rootID)
	return nil
}

// Status returns a copy of the sync status of entityType
func (s *service) Status(entityType models.EntityType) models.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.statuses[entityType]; ok {
		return *st
	}
	return models.SyncStatus{EntityType: entityType}
}

func (s *service) levels() []models.EntityType {
	return []models.EntityType{s.kind.Root, s.kind.Child, s.kind.Grandchild}
}

func (s *service) beginSync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, et := range s.levels() {
		st, ok := s.statuses[et]
		if !ok {
			st = &models.SyncStatus{EntityType: et}
			s.statuses[et] = st
		}
		st.IsSyncing = true
	}
}

// finishSync фиксирует время и последнюю ошибку каждого уровня
func (s *service) finishSync(result *SyncResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, et := range s.levels() {
		st := s.statuses[et]
		st.IsSyncing = false
		st.LastError = ""
		if err == nil {
			st.LastSyncTime = now
		}
	}

	if err != nil {
		s.statuses[s.kind.Root].LastError = err.Error()
		return
	}
	for _, w := range result.Warnings {
		s.statuses[w.Entity].LastError = w.Error()
	}
}

func rowFromDocument(doc *models.Document, parentID string) *storage.Row {
	row := &storage.Row{
		ID:   doc.ID,
		Data: doc.Data,
	}
	if parentID != "" {
		row.Refs = map[string]string{models.FieldParentKey: parentID}
	}
	return row
}

func rowsFromDocuments(docs []*models.Document, parentID string) []*storage.Row {
	rows := make([]*storage.Row, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, rowFromDocument(doc, parentID))
	}
	return rows
}
