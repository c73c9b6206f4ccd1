package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/edukeeper/internal/config"
	"github.com/iudanet/edukeeper/internal/server/handlers"
	"github.com/iudanet/edukeeper/internal/server/storage/postgres"
	"github.com/iudanet/edukeeper/internal/server/storage/sqlite"
)

const readHeaderTimeout = 5 * time.Second

// Server HTTP сервер документов вместе с хранилищем
type Server struct {
	logger          *slog.Logger
	http            *http.Server
	closeStorage    func() error
	stopLimiters    func()
	addr            string
	shutdownTimeout time.Duration
}

// OpenStorage открывает хранилище документов выбранного драйвера
func OpenStorage(ctx context.Context, cfg config.StorageConfig) (Backend, func() error, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		s, err := postgres.New(ctx, postgres.Config{URL: cfg.DSN})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverSQLite:
		s, err := sqlite.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// New открывает хранилище и собирает HTTP сервер
func New(ctx context.Context, cfg *config.ServerConfig, logger *slog.Logger, version string) (*Server, error) {
	backend, closeStorage, err := OpenStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	router, stop := NewRouter(RouterConfig{
		Logger:  logger,
		Storage: backend,
		Version: version,
		JWT: handlers.JWTConfig{
			Issuer:         cfg.JWT.Issuer,
			Secret:         []byte(cfg.JWT.Secret),
			AccessTokenTTL: cfg.JWT.TokenTTL,
		},
		RateLimit: RateLimitConfig{
			Window:    cfg.RateLimit.Window,
			Rate:      cfg.RateLimit.Rate,
			BatchRate: cfg.RateLimit.BatchRate,
		},
	})

	return &Server{
		logger: logger,
		http: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		closeStorage:    closeStorage,
		stopLimiters:    stop,
		addr:            cfg.Addr,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// ListenAndServe слушает адрес из конфигурации до отмены ctx
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.release()
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает ln до отмены ctx, затем корректно останавливается
// и закрывает хранилище
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.release()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server started", "addr", ln.Addr().String())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server stopped gracefully")
	return nil
}

func (s *Server) release() {
	s.stopLimiters()
	if err := s.closeStorage(); err != nil {
		s.logger.Error("Failed to close storage", "error", err)
	}
}
