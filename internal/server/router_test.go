package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/edukeeper/internal/server/handlers"
	"github.com/iudanet/edukeeper/internal/server/storage/sqlite"
	"github.com/iudanet/edukeeper/pkg/api"
)

func setupServer(t *testing.T, rl RateLimitConfig) (*httptest.Server, string) {
	t.Helper()

	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	jwtCfg := handlers.JWTConfig{Secret: []byte("router-test"), AccessTokenTTL: time.Hour}
	router, stop := NewRouter(RouterConfig{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Storage:   store,
		Version:   "test",
		JWT:       jwtCfg,
		RateLimit: rl,
	})
	t.Cleanup(stop)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	token, _, err := handlers.GenerateAccessToken(jwtCfg, "u1", "author")
	require.NoError(t, err)

	return srv, token
}

func call(t *testing.T, srv *httptest.Server, token, method, path string, body any) *http.Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func defaultLimits() RateLimitConfig {
	return RateLimitConfig{Window: time.Minute, Rate: 1000, BatchRate: 1000}
}

func TestRouter_HealthIsPublic(t *testing.T) {
	srv, _ := setupServer(t, defaultLimits())

	resp := call(t, srv, "", http.MethodGet, HealthPath, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health api.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "test", health.Version)
}

func TestRouter_DocumentsRequireToken(t *testing.T) {
	srv, _ := setupServer(t, defaultLimits())

	resp := call(t, srv, "", http.MethodGet, "/api/v1/collections/tests/documents/t1", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_DocumentRoundTrip(t *testing.T) {
	srv, token := setupServer(t, defaultLimits())

	resp := call(t, srv, token, http.MethodPut, "/api/v1/collections/test_questions/documents/q1",
		api.SetDocumentRequest{Data: json.RawMessage(`{"parent_key":"T1","order":1}`)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, srv, token, http.MethodPost, "/api/v1/batch", api.BatchRequest{Writes: []api.WriteOp{
		{Type: "set", Collection: "test_questions", ID: "q2", Data: json.RawMessage(`{"parent_key":"T1","order":2}`)},
		{Type: "set", Collection: "test_questions", ID: "q3", Data: json.RawMessage(`{"parent_key":"T2","order":1}`)},
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, srv, token, http.MethodGet, "/api/v1/collections/test_questions/documents?parent_key=T1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var q api.QueryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	ids := make([]string, 0, len(q.Documents))
	for _, d := range q.Documents {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []string{"q1", "q2"}, ids)

	// Устаревший precondition отклоняет весь batch
	resp = call(t, srv, token, http.MethodPost, "/api/v1/batch", api.BatchRequest{Writes: []api.WriteOp{
		{Type: "delete", Collection: "test_questions", ID: "q2"},
		{Type: "set", Collection: "test_questions", ID: "q1", Data: json.RawMessage(`{}`), ExpectedVersion: 7},
	}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, srv, token, http.MethodGet, "/api/v1/collections/test_questions/documents/q2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, srv, token, http.MethodDelete, "/api/v1/collections/test_questions/documents/q2", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, srv, token, http.MethodGet, "/api/v1/collections/test_questions/documents/q2", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_BatchRateLimit(t *testing.T) {
	srv, token := setupServer(t, RateLimitConfig{Window: time.Minute, Rate: 100, BatchRate: 1})

	body := api.BatchRequest{}
	assert.Equal(t, http.StatusOK, call(t, srv, token, http.MethodPost, "/api/v1/batch", body).StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, call(t, srv, token, http.MethodPost, "/api/v1/batch", body).StatusCode)

	// обычные запросы идут по своему лимиту
	assert.Equal(t, http.StatusNotFound,
		call(t, srv, token, http.MethodGet, "/api/v1/collections/tests/documents/t1", nil).StatusCode)
}
