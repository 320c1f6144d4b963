package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	"github.com/barbearia-jao/agenda-service/internal/service/auth"
)

const msgMissingToken = "token de autenticação ausente ou inválido"

type claimsKey struct{}

// TokenVerifier проверяет JWT токен
type TokenVerifier interface {
	VerifyToken(tokenString string) (*auth.Claims, error)
}

// Auth проверяет Bearer-токен и кладет claims в контекст запроса.
// Websocket-клиенты передают токен query-параметром, так как браузерный
// WebSocket API не умеет ставить заголовки.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext достает claims аутентифицированного пользователя
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
