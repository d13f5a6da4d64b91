package tag

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("tag not found")

// Tag is a tenant-scoped label attached to contacts, carried into group
// listings as a rollup over member tags.
type Tag struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	name      string
	color     string
	createdAt time.Time
}

func New(tenantID uuid.UUID, name, color string) Tag {
	return Tag{
		tenantID: tenantID,
		name:     name,
		color:    color,
	}
}

func Hydrate(id, tenantID uuid.UUID, name, color string, createdAt time.Time) Tag {
	return Tag{
		id:        id,
		tenantID:  tenantID,
		name:      name,
		color:     color,
		createdAt: createdAt,
	}
}

func (t Tag) ID() uuid.UUID        { return t.id }
func (t Tag) TenantID() uuid.UUID  { return t.tenantID }
func (t Tag) Name() string         { return t.name }
func (t Tag) Color() string        { return t.color }
func (t Tag) CreatedAt() time.Time { return t.createdAt }

type Repository interface {
	GetAll(ctx context.Context) ([]Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (Tag, error)
	Create(ctx context.Context, data Tag) (Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
