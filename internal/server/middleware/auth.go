package middleware

import (
	"net/http"
	"strings"

	"github.com/sivajik34/aifastcommerce/internal/auth"
)

// Auth validates the operator bearer token and stores the claims in the
// request context.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractBearer(r)
			if tok == "" {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
				return
			}

			claims, err := auth.ValidateToken(jwtSecret, tok)
			if err != nil {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
				return
			}

			ctx := WithOperator(r.Context(), claims.Username, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	// WebSocket clients in browsers cannot set headers; allow a query token.
	if tok := r.URL.Query().Get("token"); tok != "" {
		return tok
	}
	return ""
}
