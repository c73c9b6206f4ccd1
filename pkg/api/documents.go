package api

import (
	"encoding/json"
	"time"
)

// Document представляет документ удалённого хранилища в wire формате
type Document struct {
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
	Version    int64           `json:"version"`
}

// SetDocumentRequest тело PUT запроса на запись документа
type SetDocumentRequest struct {
	Data json.RawMessage `json:"data"`
}

// QueryResponse представляет ответ на запрос документов коллекции
type QueryResponse struct {
	Documents []Document `json:"documents"`
}

// WriteOp одна операция в batch commit
type WriteOp struct {
	Type            string          `json:"type"` // "set" или "delete"
	Collection      string          `json:"collection"`
	ID              string          `json:"id"`
	Data            json.RawMessage `json:"data,omitempty"`
	ExpectedVersion int64           `json:"expected_version,omitempty"` // 0 = без precondition
}

// BatchRequest представляет атомарный набор записей
type BatchRequest struct {
	Writes []WriteOp `json:"writes"`
}

// BatchResponse представляет ответ на успешный batch commit
type BatchResponse struct {
	Committed int `json:"committed"` // количество применённых операций
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Storage string `json:"storage,omitempty"`
}

// Коды ошибок в поле ErrorResponse.Error
const (
	ErrCodeNotFound        = "not_found"
	ErrCodeVersionConflict = "version_conflict"
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeInternal        = "internal"
)
