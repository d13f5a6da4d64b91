package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/homewardhq/homeward/pkg/constants"
)

// Provide sets a static context value on every request.
func Provide(key constants.ContextKey, value interface{}) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), key, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
