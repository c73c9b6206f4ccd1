package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/edukeeper/internal/models"
	"github.com/iudanet/edukeeper/internal/server/storage"
	"github.com/iudanet/edukeeper/pkg/api"
)

func newTestRouter(store storage.DocumentStorage) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", NewDocumentHandler(setupTestLogger(), store).Routes)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Error
}

func testDoc(collection, id string, version int64) *models.Document {
	now := time.UnixMilli(1700000000000)
	return &models.Document{
		CreatedAt:  now,
		UpdatedAt:  now,
		Collection: collection,
		ID:         id,
		Data:       json.RawMessage(`{"parent_key":"T1","order":1}`),
		Version:    version,
	}
}

func TestDocumentHandler_Get(t *testing.T) {
	tests := []struct {
		getErr     error
		name       string
		path       string
		wantCode   string
		wantStatus int
	}{
		{
			name:       "found",
			path:       "/api/v1/collections/test_questions/documents/q1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "not found",
			path:       "/api/v1/collections/test_questions/documents/q1",
			getErr:     storage.ErrDocumentNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   api.ErrCodeNotFound,
		},
		{
			name:       "storage failure",
			path:       "/api/v1/collections/test_questions/documents/q1",
			getErr:     errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.ErrCodeInternal,
		},
		{
			name:       "invalid collection",
			path:       "/api/v1/collections/Bad-Name/documents/q1",
			wantStatus: http.StatusBadRequest,
			wantCode:   api.ErrCodeInvalidRequest,
		},
		{
			name:       "invalid id",
			path:       "/api/v1/collections/tests/documents/bad%20id",
			wantStatus: http.StatusBadRequest,
			wantCode:   api.ErrCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &storage.DocumentStorageMock{
				GetFunc: func(ctx context.Context, collection, id string) (*models.Document, error) {
					if tt.getErr != nil {
						return nil, tt.getErr
					}
					return testDoc(collection, id, 3), nil
				},
			}

			w := doRequest(t, newTestRouter(mock), http.MethodGet, tt.path, nil)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeErrorCode(t, w))
				if tt.wantStatus == http.StatusInternalServerError {
					assert.NotContains(t, w.Body.String(), "disk on fire")
				}
				return
			}

			var doc api.Document
			require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
			assert.Equal(t, "q1", doc.ID)
			assert.Equal(t, "test_questions", doc.Collection)
			assert.Equal(t, int64(3), doc.Version)

			calls := mock.GetCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, "test_questions", calls[0].Collection)
			assert.Equal(t, "q1", calls[0].ID)
		})
	}
}

func TestDocumentHandler_Query(t *testing.T) {
	t.Run("filters from query string", func(t *testing.T) {
		mock := &storage.DocumentStorageMock{
			QueryFunc: func(ctx context.Context, collection string, filters ...models.Filter) ([]*models.Document, error) {
				return []*models.Document{testDoc(collection, "q1", 1), testDoc(collection, "q2", 1)}, nil
			},
		}

		w := doRequest(t, newTestRouter(mock), http.MethodGet,
			"/api/v1/collections/test_questions/documents?parent_key=T1&kind=mcq", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.QueryResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Len(t, resp.Documents, 2)

		calls := mock.QueryCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, "test_questions", calls[0].Collection)
		// фильтры отсортированы по имени поля
		assert.Equal(t, []models.Filter{
			{Field: "kind", Value: "mcq"},
			{Field: "parent_key", Value: "T1"},
		}, calls[0].Filters)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		mock := &storage.DocumentStorageMock{
			QueryFunc: func(ctx context.Context, collection string, filters ...models.Filter) ([]*models.Document, error) {
				return nil, nil
			},
		}

		w := doRequest(t, newTestRouter(mock), http.MethodGet, "/api/v1/collections/tests/documents", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"documents":[]}`, w.Body.String())
		require.Len(t, mock.QueryCalls(), 1)
		assert.Empty(t, mock.QueryCalls()[0].Filters)
	})

	t.Run("rejects bad filters", func(t *testing.T) {
		mock := &storage.DocumentStorageMock{}
		router := newTestRouter(mock)

		for _, path := range []string{
			"/api/v1/collections/tests/documents?a=1&a=2",
			"/api/v1/collections/tests/documents?bad-field=1",
		} {
			w := doRequest(t, router, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, path)
		}
		assert.Empty(t, mock.QueryCalls())
	})
}

func TestDocumentHandler_Set(t *testing.T) {
	t.Run("stores document", func(t *testing.T) {
		mock := &storage.DocumentStorageMock{
			SetFunc: func(ctx context.Context, collection, id string, data json.RawMessage) (*models.Document, error) {
				doc := testDoc(collection, id, 2)
				doc.Data = data
				return doc, nil
			},
		}

		w := doRequest(t, newTestRouter(mock), http.MethodPut,
			"/api/v1/collections/tests/documents/t1", `{"data":{"title":"Algebra"}}`)
		require.Equal(t, http.StatusOK, w.Code)

		var doc api.Document
		require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
		assert.Equal(t, int64(2), doc.Version)
		assert.JSONEq(t, `{"title":"Algebra"}`, string(doc.Data))

		calls := mock.SetCalls()
		require.Len(t, calls, 1)
		assert.JSONEq(t, `{"title":"Algebra"}`, string(calls[0].Data))
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"data":`},
		{name: "missing data", body: `{}`},
		{name: "unknown field", body: `{"data":{},"extra":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &storage.DocumentStorageMock{}
			w := doRequest(t, newTestRouter(mock), http.MethodPut, "/api/v1/collections/tests/documents/t1", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, mock.SetCalls())
		})
	}
}

func TestDocumentHandler_Delete(t *testing.T) {
	mock := &storage.DocumentStorageMock{
		DeleteFunc: func(ctx context.Context, collection, id string) error {
			return nil
		},
	}

	w := doRequest(t, newTestRouter(mock), http.MethodDelete, "/api/v1/collections/test_options/documents/o1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	calls := mock.DeleteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "test_options", calls[0].Collection)
	assert.Equal(t, "o1", calls[0].ID)
}

func TestDocumentHandler_Batch(t *testing.T) {
	validBody := api.BatchRequest{Writes: []api.WriteOp{
		{Type: "set", Collection: "test_questions", ID: "q1", Data: json.RawMessage(`{"order":2}`), ExpectedVersion: 4},
		{Type: "delete", Collection: "test_questions", ID: "q9"},
	}}

	t.Run("commits all writes", func(t *testing.T) {
		mock := &storage.DocumentStorageMock{
			BatchCommitFunc: func(ctx context.Context, ops []models.WriteOp) error {
				return nil
			},
		}

		w := doRequest(t, newTestRouter(mock), http.MethodPost, "/api/v1/batch", validBody)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.BatchResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 2, resp.Committed)

		calls := mock.BatchCommitCalls()
		require.Len(t, calls, 1)
		require.Len(t, calls[0].Ops, 2)
		assert.Equal(t, models.WriteSet, calls[0].Ops[0].Type)
		assert.Equal(t, int64(4), calls[0].Ops[0].ExpectedVersion)
		assert.Equal(t, models.WriteDelete, calls[0].Ops[1].Type)
	})

	t.Run("version conflict maps to 409", func(t *testing.T) {
		mock := &storage.DocumentStorageMock{
			BatchCommitFunc: func(ctx context.Context, ops []models.WriteOp) error {
				return fmt.Errorf("write 0 (test_questions/q1): %w", storage.ErrVersionConflict)
			},
		}

		w := doRequest(t, newTestRouter(mock), http.MethodPost, "/api/v1/batch", validBody)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, api.ErrCodeVersionConflict, decodeErrorCode(t, w))
	})

	invalid := []struct {
		name string
		op   api.WriteOp
	}{
		{name: "unknown type", op: api.WriteOp{Type: "merge", Collection: "tests", ID: "t1"}},
		{name: "set without data", op: api.WriteOp{Type: "set", Collection: "tests", ID: "t1"}},
		{name: "bad collection", op: api.WriteOp{Type: "delete", Collection: "../etc", ID: "t1"}},
		{name: "empty id", op: api.WriteOp{Type: "delete", Collection: "tests"}},
		{name: "negative version", op: api.WriteOp{Type: "delete", Collection: "tests", ID: "t1", ExpectedVersion: -1}},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			mock := &storage.DocumentStorageMock{}
			w := doRequest(t, newTestRouter(mock), http.MethodPost, "/api/v1/batch",
				api.BatchRequest{Writes: []api.WriteOp{tt.op}})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, mock.BatchCommitCalls(), "nothing may reach storage")
		})
	}
}
