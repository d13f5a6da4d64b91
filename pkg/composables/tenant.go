package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/homewardhq/homeward/pkg/constants"
)

var (
	ErrNoTenantID = errors.New("no tenant id found in context")
	ErrNoUserID   = errors.New("no user id found in context")
)

func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, tenantID)
}

// UseTenantID returns the tenant identifier threaded by the tenant-context
// middleware. Every tenant-scoped query must resolve its scope through this
// and nothing else.
func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := ctx.Value(constants.TenantIDKey).(uuid.UUID)
	if !ok || tenantID == uuid.Nil {
		return uuid.Nil, ErrNoTenantID
	}
	return tenantID, nil
}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.UserIDKey, userID)
}

func UseUserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(constants.UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrNoUserID
	}
	return userID, nil
}
