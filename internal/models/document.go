package models

import (
	"encoding/json"
	"time"
)

// Document представляет единицу хранения удалённого document store.
// Data содержит JSON тело документа; Version поддерживается сервером
// и увеличивается при каждой записи.
type Document struct {
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
	Version    int64           `json:"version"`
}

// WriteType тип операции в batch commit
type WriteType string

const (
	WriteSet    WriteType = "set"
	WriteDelete WriteType = "delete"
)

// WriteOp is a single write inside an atomic batch commit.
// ExpectedVersion == 0 means the write is unconditional.
type WriteOp struct {
	Type            WriteType       `json:"type"`
	Collection      string          `json:"collection"`
	ID              string          `json:"id"`
	Data            json.RawMessage `json:"data,omitempty"`
	ExpectedVersion int64           `json:"expected_version,omitempty"`
}

// SetOp builds an insert-or-replace write.
func SetOp(collection, id string, data json.RawMessage) WriteOp {
	return WriteOp{Type: WriteSet, Collection: collection, ID: id, Data: data}
}

// DeleteOp builds a delete write.
func DeleteOp(collection, id string) WriteOp {
	return WriteOp{Type: WriteDelete, Collection: collection, ID: id}
}

// Filter is an equality filter on a top-level JSON field of a document.
type Filter struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// FieldParentKey общее имя поля внешнего ключа для всех sibling записей
const FieldParentKey = "parent_key"

// ParentFilter returns the filter selecting all siblings of parentKey.
func ParentFilter(parentKey string) Filter {
	return Filter{Field: FieldParentKey, Value: parentKey}
}
