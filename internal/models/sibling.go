package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// SiblingRecord представляет один элемент упорядоченного списка,
// принадлежащего родителю (вопрос в тесте, вариант ответа в вопросе).
// Для фиксированного ParentKey живые значения Order образуют {1..N}.
type SiblingRecord struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ID        string          `json:"id"`
	ParentKey string          `json:"parent_key"`
	Payload   json.RawMessage `json:"payload"`
	Order     int             `json:"order"`
	Version   int64           `json:"-"` // Version версия удалённого документа, в тело не сериализуется
}

// ToDocumentData serializes the record into a document body.
func (r *SiblingRecord) ToDocumentData() (json.RawMessage, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sibling record: %w", err)
	}
	return data, nil
}

// SiblingFromDocument decodes a remote document into a SiblingRecord.
func SiblingFromDocument(doc *Document) (*SiblingRecord, error) {
	var rec SiblingRecord
	if err := json.Unmarshal(doc.Data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode sibling %s/%s: %w", doc.Collection, doc.ID, err)
	}
	// ID документа главнее ID внутри тела
	rec.ID = doc.ID
	rec.Version = doc.Version
	return &rec, nil
}

// Clone создает копию записи
func (r *SiblingRecord) Clone() *SiblingRecord {
	payload := make(json.RawMessage, len(r.Payload))
	copy(payload, r.Payload)

	c := *r
	c.Payload = payload
	return &c
}

// SortByOrder sorts siblings ascending by Order, ties broken by ID.
func SortByOrder(records []*SiblingRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Order != records[j].Order {
			return records[i].Order < records[j].Order
		}
		return records[i].ID < records[j].ID
	})
}

// MaxOrder returns the largest Order in records, or 0 for an empty list.
func MaxOrder(records []*SiblingRecord) int {
	maxOrder := 0
	for _, r := range records {
		if r.Order > maxOrder {
			maxOrder = r.Order
		}
	}
	return maxOrder
}
