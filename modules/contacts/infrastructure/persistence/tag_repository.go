package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/homewardhq/homeward/modules/contacts/domain/entities/tag"
	"github.com/homewardhq/homeward/modules/contacts/infrastructure/persistence/models"
	"github.com/homewardhq/homeward/pkg/composables"
	"github.com/homewardhq/homeward/pkg/repo"
)

const (
	tagFindQuery = `
        SELECT
            t.id,
            t.tenant_id,
            t.name,
            t.color,
            t.created_at
        FROM tags t`

	tagDeleteQuery        = `DELETE FROM tags WHERE id = $1 AND tenant_id = $2`
	tagContactDeleteQuery = `DELETE FROM contact_tags WHERE tag_id = $1`
)

type PgTagRepository struct{}

func NewTagRepository() tag.Repository {
	return &PgTagRepository{}
}

func (g *PgTagRepository) GetAll(ctx context.Context) ([]tag.Tag, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}

	return g.queryTags(ctx, tagFindQuery+" WHERE t.tenant_id = $1 ORDER BY t.name ASC", tenantID)
}

func (g *PgTagRepository) GetByID(ctx context.Context, id uuid.UUID) (tag.Tag, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return tag.Tag{}, errors.Wrap(err, "failed to get tenant from context")
	}

	tags, err := g.queryTags(ctx, tagFindQuery+" WHERE t.id = $1 AND t.tenant_id = $2", id, tenantID)
	if err != nil {
		return tag.Tag{}, err
	}
	if len(tags) == 0 {
		return tag.Tag{}, fmt.Errorf("id: %s: %w", id, tag.ErrNotFound)
	}
	return tags[0], nil
}

func (g *PgTagRepository) Create(ctx context.Context, data tag.Tag) (tag.Tag, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tag.Tag{}, errors.Wrap(err, "failed to get transaction")
	}

	dbRow := ToDBTag(data)

	fields := []string{"tenant_id", "name", "color"}
	values := []interface{}{dbRow.TenantID, dbRow.Name, dbRow.Color}

	q := repo.Insert("tags", fields, "id")
	if err := tx.QueryRow(ctx, q, values...).Scan(&dbRow.ID); err != nil {
		return tag.Tag{}, errors.Wrap(err, "failed to insert tag")
	}

	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return tag.Tag{}, errors.Wrap(err, "invalid tag id")
	}
	return g.GetByID(ctx, id)
}

func (g *PgTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant from context")
	}

	if _, err := tx.Exec(ctx, tagContactDeleteQuery, id); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to detach tag with ID: %s", id))
	}
	if _, err := tx.Exec(ctx, tagDeleteQuery, id, tenantID); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to delete tag with ID: %s", id))
	}
	return nil
}

func (g *PgTagRepository) queryTags(ctx context.Context, query string, args ...interface{}) ([]tag.Tag, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tags")
	}
	defer rows.Close()

	tags := make([]tag.Tag, 0)
	for rows.Next() {
		var dbRow models.Tag
		if err := rows.Scan(&dbRow.ID, &dbRow.TenantID, &dbRow.Name, &dbRow.Color, &dbRow.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan tag")
		}
		entity, err := ToDomainTag(&dbRow)
		if err != nil {
			return nil, err
		}
		tags = append(tags, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate tags")
	}
	return tags, nil
}
