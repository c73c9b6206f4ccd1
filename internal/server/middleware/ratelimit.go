package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/edukeeper/internal/server/handlers"
	"github.com/iudanet/edukeeper/pkg/api"
)

// RateLimiter ограничивает число запросов на ключ в пределах окна
// Бакет пополняется целиком по истечении window
type RateLimiter struct {
	buckets  map[string]*bucket
	logger   *slog.Logger
	cleanupC chan struct{}
	now      func() time.Time
	rate     int
	window   time.Duration
	mu       sync.RWMutex
	stopOnce sync.Once
}

type bucket struct {
	lastRefill time.Time
	tokens     int
	mu         sync.Mutex
}

// NewRateLimiter создает новый rate limiter
// rate - максимальное количество запросов за window
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		window:   window,
		logger:   logger,
		now:      time.Now,
		cleanupC: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// cleanup периодически удаляет неактивные buckets
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

func (rl *RateLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		b.mu.Lock()
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, key)
		}
		b.mu.Unlock()
	}
}

// Stop останавливает cleanup goroutine. Повторный вызов безопасен
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.cleanupC)
	})
}

// Allow проверяет, разрешен ли очередной запрос для ключа
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{
			tokens:     rl.rate,
			lastRefill: rl.now(),
		}
		rl.buckets[key] = b
	}
	rl.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	now := rl.now()
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}

	return false
}

// handler оборачивает next проверкой лимита
func (rl *RateLimiter) handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ClientKey(r)
		if !rl.Allow(key) {
			rl.logger.Warn("rate limit exceeded",
				"key", key,
				"method", r.Method,
				"path", r.URL.Path,
			)
			w.Header().Set("Retry-After", retryAfter(rl.window))
			writeError(w, http.StatusTooManyRequests, api.ErrCodeRateLimited, "rate limit exceeded, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware создает middleware с единым лимитом на клиента
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return limiter.handler
}

// PathRateLimit задаёт отдельный лимит для запросов с данным методом и префиксом пути
// Пустой Method совпадает с любым методом
type PathRateLimit struct {
	Method string
	Prefix string
	Rate   int
	Window time.Duration
}

func (p PathRateLimit) matches(r *http.Request) bool {
	if p.Method != "" && p.Method != r.Method {
		return false
	}
	return strings.HasPrefix(r.URL.Path, p.Prefix)
}

// RateLimitByPathMiddleware создает middleware с кастомными лимитами для путей
// Применяется первый совпавший лимит, иначе defaultLimiter
// Возвращает также функцию остановки всех созданных limiters
func RateLimitByPathMiddleware(limits []PathRateLimit, defaultLimiter *RateLimiter, logger *slog.Logger) (func(http.Handler) http.Handler, func()) {
	limiters := make([]*RateLimiter, len(limits))
	for i, limit := range limits {
		limiters[i] = NewRateLimiter(limit.Rate, limit.Window, logger)
	}

	stop := func() {
		for _, l := range limiters {
			l.Stop()
		}
		defaultLimiter.Stop()
	}

	mw := func(next http.Handler) http.Handler {
		byPath := make([]http.Handler, len(limiters))
		for i, l := range limiters {
			byPath[i] = l.handler(next)
		}
		fallback := defaultLimiter.handler(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for i, limit := range limits {
				if limit.matches(r) {
					byPath[i].ServeHTTP(w, r)
					return
				}
			}
			fallback.ServeHTTP(w, r)
		})
	}

	return mw, stop
}

// ClientKey возвращает ключ для rate limiting: id аутентифицированного
// автора или IP адрес клиента
// RemoteAddr к этому моменту уже нормализован chi middleware.RealIP
func ClientKey(r *http.Request) string {
	if author, ok := handlers.AuthorFromContext(r.Context()); ok {
		return "author:" + author.ID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}

func retryAfter(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
