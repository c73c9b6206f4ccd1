// Package ordering keeps parent-scoped sibling lists (questions of a test,
// options of a question) densely ordered 1..N on top of a document store
// that only offers single writes and atomic batch commits.
package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/edukeeper/internal/client/api"
	"github.com/iudanet/edukeeper/internal/models"
)

//go:generate moq -out manager_mock.go . SiblingManager

// SiblingManager управляет упорядоченным списком записей одного родителя
type SiblingManager interface {
	// Insert creates a record at requestedOrder, shifting every sibling at or after it.
	// Out-of-range orders are clamped to an append.
	Insert(ctx context.Context, parentKey string, payload json.RawMessage, requestedOrder int) (*models.SiblingRecord, error)

	// Update replaces the payload and moves the record by swapping with the
	// sibling occupying the clamped order.
	Update(ctx context.Context, id, parentKey string, payload json.RawMessage, requestedOrder int) (*models.SiblingRecord, error)

	// Delete removes one record without renumbering the rest.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns the siblings of parentKey sorted by order.
	List(ctx context.Context, parentKey string) ([]*models.SiblingRecord, error)
}

// Ensure, that Manager does implement SiblingManager.
var _ SiblingManager = (*Manager)(nil)

// Manager реализует SiblingManager для одной коллекции удалённого хранилища.
// Состояние между вызовами не хранится: максимальный order каждый раз
// вычисляется по свежему чтению списка.
type Manager struct {
	store         api.DocumentStore
	logger        *slog.Logger
	now           func() time.Time
	newID         func() string
	collection    models.EntityType
	preconditions bool
}

// Option настраивает Manager
type Option func(*Manager)

// WithVersionPreconditions прикладывает к каждой перезаписи прочитанную версию
// документа. Хранилище отклонит весь batch, если кто-то изменил документ после чтения.
// Добавление в конец списка (пустой shiftSet) этим не защищается.
func WithVersionPreconditions(enabled bool) Option {
	return func(m *Manager) {
		m.preconditions = enabled
	}
}

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDGenerator подменяет генератор id новых записей
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

// NewManager создает менеджер для коллекции collection
func NewManager(store api.DocumentStore, collection models.EntityType, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		logger:     logger.With("collection", string(collection)),
		collection: collection,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// List returns the siblings of parentKey sorted by order
func (m *Manager) List(ctx context.Context, parentKey string) ([]*models.SiblingRecord, error) {
	docs, err := m.store.Query(ctx, string(m.collection), models.ParentFilter(parentKey))
	if err != nil {
		return nil, fmt.Errorf("failed to read siblings of %s: %w", parentKey, err)
	}

	records := make([]*models.SiblingRecord, 0, len(docs))
	for _, doc := range docs {
		rec, err := models.SiblingFromDocument(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	models.SortByOrder(records)
	return records, nil
}

// Insert creates a new sibling at requestedOrder
//
// Every sibling with order >= the target is shifted by one and the new
// record is created in the same atomic batch. A rejected batch leaves no trace.
func (m *Manager) Insert(ctx context.Context, parentKey string, payload json.RawMessage, requestedOrder int) (*models.SiblingRecord, error) {
	siblings, err := m.List(ctx, parentKey)
	if err != nil {
		return nil, err
	}

	currentMax := models.MaxOrder(siblings)
	desired := requestedOrder
	if desired < 1 || desired > currentMax+1 {
		desired = currentMax + 1
		m.logClamp(parentKey, requestedOrder, desired)
	}

	now := m.now()
	ops := make([]models.WriteOp, 0, len(siblings)+1)

	// shiftSet: всё, что стоит на месте новой записи и после неё
	for _, s := range siblings {
		if s.Order < desired {
			continue
		}
		shifted := s.Clone()
		shifted.Order++
		shifted.UpdatedAt = now

		op, err := m.setOp(shifted, s.Version)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	rec := &models.SiblingRecord{
		CreatedAt: now,
		UpdatedAt: now,
		ID:        m.newID(),
		ParentKey: parentKey,
		Payload:   payload,
		Order:     desired,
	}
	op, err := m.setOp(rec, 0)
	if err != nil {
		return nil, err
	}
	ops = append(ops, op)

	if err := m.store.BatchCommit(ctx, ops); err != nil {
		return nil, m.commitError("insert", err)
	}

	m.logger.Debug("sibling inserted",
		"parent_key", parentKey,
		"id", rec.ID,
		"order", desired,
		"shifted", len(ops)-1,
	)

	return rec, nil
}

// Update replaces the payload of a sibling and moves it to requestedOrder
//
// A move is a swap with the sibling currently holding the target order:
// exactly two documents change, never more.
func (m *Manager) Update(ctx context.Context, id, parentKey string, payload json.RawMessage, requestedOrder int) (*models.SiblingRecord, error) {
	doc, err := m.store.Get(ctx, string(m.collection), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("sibling %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read sibling %s: %w", id, err)
	}

	existing, err := models.SiblingFromDocument(doc)
	if err != nil {
		return nil, err
	}
	if existing.ParentKey != parentKey {
		return nil, fmt.Errorf("sibling %s under %s: %w", id, parentKey, models.ErrNotFound)
	}

	siblings, err := m.List(ctx, parentKey)
	if err != nil {
		return nil, err
	}

	others := make([]*models.SiblingRecord, 0, len(siblings))
	for _, s := range siblings {
		if s.ID != id {
			others = append(others, s)
		}
	}

	oldOrder := existing.Order
	maxAllowed := max(models.MaxOrder(others), 1)
	clamped := clampUpdateOrder(requestedOrder, oldOrder, maxAllowed)
	if clamped != requestedOrder {
		m.logClamp(parentKey, requestedOrder, clamped)
	}

	now := m.now()
	updated := existing.Clone()
	updated.Payload = payload
	updated.UpdatedAt = now

	if clamped == oldOrder {
		if err := m.writeOne(ctx, updated, existing.Version); err != nil {
			return nil, err
		}
		m.logger.Debug("sibling updated in place", "parent_key", parentKey, "id", id, "order", oldOrder)
		return updated, nil
	}

	updated.Order = clamped
	ops := make([]models.WriteOp, 0, 2)

	// Занимающий целевую позицию получает старый order обновляемой записи.
	// После Delete позиция может пустовать, тогда batch из одной записи
	if conflict := findByOrder(others, clamped); conflict != nil {
		swapped := conflict.Clone()
		swapped.Order = oldOrder
		swapped.UpdatedAt = now

		op, err := m.setOp(swapped, conflict.Version)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	op, err := m.setOp(updated, existing.Version)
	if err != nil {
		return nil, err
	}
	ops = append(ops, op)

	if err := m.store.BatchCommit(ctx, ops); err != nil {
		return nil, m.commitError("update", err)
	}

	m.logger.Debug("sibling moved",
		"parent_key", parentKey,
		"id", id,
		"from", oldOrder,
		"to", clamped,
		"swapped", len(ops) == 2,
	)

	return updated, nil
}

// Delete removes one sibling. Remaining orders are not renumbered, so a gap
// may stay in the list. Deleting an absent document succeeds.
func (m *Manager) Delete(ctx context.Context, id string) (bool, error) {
	if err := m.store.Delete(ctx, string(m.collection), id); err != nil {
		return false, m.commitError("delete", err)
	}

	m.logger.Debug("sibling deleted", "id", id)
	return true, nil
}

// writeOne пишет один документ без batch. С включёнными preconditions
// используется batch из одной операции, потому что только он умеет ExpectedVersion
func (m *Manager) writeOne(ctx context.Context, rec *models.SiblingRecord, version int64) error {
	if m.preconditions && version > 0 {
		op, err := m.setOp(rec, version)
		if err != nil {
			return err
		}
		if err := m.store.BatchCommit(ctx, []models.WriteOp{op}); err != nil {
			return m.commitError("update", err)
		}
		return nil
	}

	data, err := rec.ToDocumentData()
	if err != nil {
		return err
	}
	if _, err := m.store.Set(ctx, string(m.collection), rec.ID, data); err != nil {
		return m.commitError("update", err)
	}
	return nil
}

func (m *Manager) setOp(rec *models.SiblingRecord, readVersion int64) (models.WriteOp, error) {
	data, err := rec.ToDocumentData()
	if err != nil {
		return models.WriteOp{}, err
	}

	op := models.SetOp(string(m.collection), rec.ID, data)
	if m.preconditions {
		op.ExpectedVersion = readVersion
	}
	return op, nil
}

func (m *Manager) commitError(op string, err error) error {
	m.logger.Warn("sibling write rejected", "op", op, "error", err)
	return &models.StoreCommitError{
		Err:        err,
		Op:         op,
		Collection: string(m.collection),
	}
}

func (m *Manager) logClamp(parentKey string, requested, applied int) {
	m.logger.Debug("order clamped",
		"parent_key", parentKey,
		"reason", &models.ValidationError{Field: "order", Requested: requested, Applied: applied},
	)
}

// clampUpdateOrder приводит запрошенный order к [1, maxAllowed];
// order < 1 означает "не двигать"
func clampUpdateOrder(requested, oldOrder, maxAllowed int) int {
	switch {
	case requested < 1:
		return oldOrder
	case requested > maxAllowed:
		return maxAllowed
	default:
		return requested
	}
}

func findByOrder(records []*models.SiblingRecord, order int) *models.SiblingRecord {
	for _, r := range records {
		if r.Order == order {
			return r
		}
	}
	return nil
}
