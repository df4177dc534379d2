package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kliang/packmate/backend/internal/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// NewAuthenticator returns a middleware that requires a valid bearer token on
// every request. The token's user id is placed in the request context, where
// handlers retrieve it with UserID. Requests with a missing, malformed, or
// invalid token get 401.
func NewAuthenticator(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			claims, err := auth.Validate(secret, token)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's id from the request context.
// The second return is false when the request did not pass NewAuthenticator.
func UserID(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(userIDKey).(int64)
	return uid, ok
}
