package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/edukeeper/internal/client/api"
)

func TestRunPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","version":"1.2.0","storage":"ok"}`))
	}))
	defer srv.Close()

	mockIO, output := captureIO("")
	c := &Cli{io: mockIO, logger: setupTestLogger(), remote: api.NewClient(srv.URL, api.WithHTTPClient(srv.Client()))}

	require.NoError(t, c.runPing(context.Background()))
	assert.Contains(t, output(), "Server: ok")
	assert.Contains(t, output(), "Version: 1.2.0")
}

func TestRunPing_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"unavailable","message":"storage is down"}`))
	}))
	defer srv.Close()

	mockIO, _ := captureIO("")
	c := &Cli{io: mockIO, logger: setupTestLogger(), remote: api.NewClient(srv.URL, api.WithHTTPClient(srv.Client()))}

	err := c.runPing(context.Background())
	assert.ErrorContains(t, err, "server is unreachable")
}

func TestRunPing_Unsupported(t *testing.T) {
	mockIO, _ := captureIO("")
	c := &Cli{io: mockIO, logger: setupTestLogger(), remote: &api.DocumentStoreMock{}}

	assert.ErrorIs(t, c.runPing(context.Background()), ErrPingUnsupported)
}
