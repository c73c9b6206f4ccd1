package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/edukeeper/internal/server/handlers"
	"github.com/iudanet/edukeeper/pkg/api"
)

// AuthMiddleware создает middleware для проверки JWT токена
// Автор из claims кладётся в контекст запроса (handlers.AuthorFromContext)
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				logger.Warn("missing or malformed Authorization header",
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusUnauthorized, api.ErrCodeUnauthorized, "missing bearer token")
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, tokenString)
			if err != nil {
				logger.Warn("invalid access token", "error", err)
				writeError(w, http.StatusUnauthorized, api.ErrCodeUnauthorized, "invalid token")
				return
			}

			ctx := handlers.WithAuthor(r.Context(), handlers.Author{ID: claims.UserID, Name: claims.Username})

			logger.Debug("author authenticated", "author_id", claims.UserID, "username", claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken извлекает токен из заголовка "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
