package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string, order int) *SiblingRecord {
	return &SiblingRecord{ID: id, ParentKey: "T1", Order: order}
}

func TestSiblingFromDocument(t *testing.T) {
	doc := &Document{
		Collection: string(EntityTestQuestion),
		ID:         "q1",
		Version:    3,
		Data:       json.RawMessage(`{"id":"stale","parent_key":"T1","order":2,"payload":{"text":"2+2?"}}`),
	}

	got, err := SiblingFromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "q1", got.ID)
	assert.Equal(t, "T1", got.ParentKey)
	assert.Equal(t, 2, got.Order)
	assert.Equal(t, int64(3), got.Version)
	assert.JSONEq(t, `{"text":"2+2?"}`, string(got.Payload))
}

func TestSiblingFromDocument_InvalidBody(t *testing.T) {
	_, err := SiblingFromDocument(&Document{Collection: "tests", ID: "x", Data: json.RawMessage(`[1,2]`)})
	assert.Error(t, err)
}

func TestSiblingRecord_ToDocumentData_OmitsVersion(t *testing.T) {
	r := &SiblingRecord{
		CreatedAt: time.Unix(100, 0).UTC(),
		ID:        "q1",
		ParentKey: "T1",
		Order:     1,
		Payload:   json.RawMessage(`{"text":"a"}`),
		Version:   7,
	}

	data, err := r.ToDocumentData()
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.NotContains(t, body, "version")
	assert.Equal(t, "T1", body[FieldParentKey])
	assert.EqualValues(t, 1, body["order"])
}

func TestSiblingRecord_Clone(t *testing.T) {
	orig := &SiblingRecord{ID: "q1", Order: 1, Payload: json.RawMessage(`{"text":"a"}`)}

	c := orig.Clone()
	c.Payload[2] = 'X'
	c.Order = 5

	assert.Equal(t, `{"text":"a"}`, string(orig.Payload))
	assert.Equal(t, 1, orig.Order)
}

func TestSortByOrder(t *testing.T) {
	records := []*SiblingRecord{rec("c", 3), rec("b", 1), rec("a", 1), rec("d", 2)}
	SortByOrder(records)

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids)
}

func TestMaxOrder(t *testing.T) {
	assert.Equal(t, 0, MaxOrder(nil))
	assert.Equal(t, 4, MaxOrder([]*SiblingRecord{rec("a", 2), rec("b", 4), rec("c", 1)}))
}
