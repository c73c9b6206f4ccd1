package api

import (
	"context"
	"encoding/json"

	"github.com/iudanet/edukeeper/internal/models"
	"github.com/iudanet/edukeeper/pkg/api"
)

//go:generate moq -out store_mock.go . DocumentStore

// DocumentStore удалённое хранилище документов с точки зрения клиента.
// Методы совпадают с серверным storage.DocumentStorage, поэтому серверную
// реализацию можно подставить напрямую (например, в тестах).
type DocumentStore interface {
	// Get возвращает документ или ошибку, оборачивающую models.ErrNotFound
	Get(ctx context.Context, collection, id string) (*models.Document, error)

	// Query возвращает документы коллекции, удовлетворяющие всем фильтрам
	Query(ctx context.Context, collection string, filters ...models.Filter) ([]*models.Document, error)

	// Set записывает один документ
	Set(ctx context.Context, collection, id string, data json.RawMessage) (*models.Document, error)

	// Delete удаляет документ, отсутствие документа не ошибка
	Delete(ctx context.Context, collection, id string) error

	// BatchCommit атомарно применяет набор записей
	BatchCommit(ctx context.Context, ops []models.WriteOp) error
}

// HealthChecker удалённое хранилище, которое отвечает на health check.
// Реализует HTTP Client; локальные реализации DocumentStore его не имеют
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}
