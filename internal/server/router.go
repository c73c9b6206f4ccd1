package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/edukeeper/internal/server/handlers"
	"github.com/iudanet/edukeeper/internal/server/middleware"
	"github.com/iudanet/edukeeper/internal/server/storage"
)

// HealthPath путь health check, не логируется и не требует токена
const HealthPath = "/api/v1/health"

// Backend хранилище документов, которое умеет отвечать на ping
type Backend interface {
	storage.DocumentStorage
	handlers.Pinger
}

// RateLimitConfig лимиты запросов на клиента
type RateLimitConfig struct {
	Window    time.Duration
	Rate      int // лимит для обычных запросов
	BatchRate int // отдельный лимит для POST /api/v1/batch
}

// RouterConfig зависимости HTTP роутера
type RouterConfig struct {
	Logger    *slog.Logger
	Storage   Backend
	Version   string
	JWT       handlers.JWTConfig
	RateLimit RateLimitConfig
}

// NewRouter собирает chi роутер API
// Возвращает функцию остановки фоновых goroutine rate limiter-ов
func NewRouter(cfg RouterConfig) (http.Handler, func()) {
	docHandler := handlers.NewDocumentHandler(cfg.Logger, cfg.Storage)
	healthHandler := handlers.NewHealthHandler(cfg.Logger, cfg.Storage, cfg.Version)

	rateLimit, stop := middleware.RateLimitByPathMiddleware(
		[]middleware.PathRateLimit{
			{Method: http.MethodPost, Prefix: "/api/v1/batch", Rate: cfg.RateLimit.BatchRate, Window: cfg.RateLimit.Window},
		},
		middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Window, cfg.Logger),
		cfg.Logger,
	)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(middleware.LoggingWithSkip(cfg.Logger, []string{HealthPath}))
	r.Use(middleware.RecoveryMiddleware(cfg.Logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.Logger, cfg.JWT))
			r.Use(rateLimit)
			docHandler.Routes(r)
		})
	})

	return r, stop
}
