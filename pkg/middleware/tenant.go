package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/homewardhq/homeward/pkg/composables"
	"github.com/homewardhq/homeward/pkg/configuration"
)

// ProvideTenant resolves the tenant and acting user identifiers from trusted
// edge headers into the request context. The service never infers tenant
// scope any other way; requests without a tenant are rejected before reaching
// any handler.
func ProvideTenant() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID, err := uuid.Parse(r.Header.Get(conf.TenantIDHeader))
			if err != nil || tenantID == uuid.Nil {
				http.Error(w, "missing or invalid tenant", http.StatusUnauthorized)
				return
			}
			ctx := composables.WithTenantID(r.Context(), tenantID)

			if userID, err := uuid.Parse(r.Header.Get(conf.UserIDHeader)); err == nil && userID != uuid.Nil {
				ctx = composables.WithUserID(ctx, userID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
