package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/iudanet/edukeeper/internal/server/handlers"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		handler        http.HandlerFunc
		name           string
		method         string
		path           string
		wantLevel      string
		expectedStatus int
	}{
		{
			name:   "GET 200",
			method: http.MethodGet,
			path:   "/api/v1/collections/tests/documents/t1",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
			expectedStatus: http.StatusOK,
			wantLevel:      "INFO",
		},
		{
			name:   "PUT 404",
			method: http.MethodPut,
			path:   "/api/v1/nope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			expectedStatus: http.StatusNotFound,
			wantLevel:      "WARN",
		},
		{
			name:   "POST 500",
			method: http.MethodPost,
			path:   "/api/v1/batch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedStatus: http.StatusInternalServerError,
			wantLevel:      "ERROR",
		},
		{
			name:           "nothing written counts as 200",
			method:         http.MethodDelete,
			path:           "/api/v1/collections/tests/documents/t1",
			handler:        func(w http.ResponseWriter, r *http.Request) {},
			expectedStatus: http.StatusOK,
			wantLevel:      "INFO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf strings.Builder
			logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			handler := LoggingMiddleware(logger)(tt.handler)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "192.168.1.1:12345"
			req.Header.Set("User-Agent", "TestAgent/1.0")
			req.Header.Set("Authorization", "Bearer secret-token")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			logOutput := logBuf.String()
			assert.Contains(t, logOutput, "HTTP request")
			assert.Contains(t, logOutput, tt.method)
			assert.Contains(t, logOutput, tt.path)
			assert.Contains(t, logOutput, "192.168.1.1:12345")
			assert.Contains(t, logOutput, "TestAgent/1.0")
			assert.Contains(t, logOutput, "level="+tt.wantLevel)
			assert.NotContains(t, logOutput, "secret-token")
		})
	}
}

func TestLoggingMiddleware_RouteAndUser(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	r := chi.NewRouter()
	r.Use(LoggingMiddleware(logger))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := handlers.WithAuthor(r.Context(), handlers.Author{ID: "user-42", Name: "author1"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Get("/api/v1/collections/{collection}/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/tests/documents/t1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "route=/api/v1/collections/{collection}/documents/{id}")
	assert.Contains(t, logOutput, "bytes_written=5")
	// автор кладётся во внутренний контекст, до логгера он не доходит
	assert.NotContains(t, logOutput, "user-42")
}

func TestLoggingWithSkip(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	handler := LoggingWithSkip(logger, []string{"/api/v1/health"})(okHandler())

	t.Run("skipped path is not logged", func(t *testing.T) {
		logBuf.Reset()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, logBuf.String())
	})

	t.Run("other paths are logged", func(t *testing.T) {
		logBuf.Reset()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/batch", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, logBuf.String(), "/api/v1/batch")
	})
}
