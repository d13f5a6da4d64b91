package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/homewardhq/homeward/modules/contacts/domain/aggregates/contact"
	"github.com/homewardhq/homeward/modules/contacts/infrastructure/persistence/models"
	"github.com/homewardhq/homeward/pkg/composables"
	"github.com/homewardhq/homeward/pkg/repo"
)

const (
	contactFindQuery = `
        SELECT
            c.id,
            c.tenant_id,
            c.first_name,
            c.middle_name,
            c.last_name,
            c.preferred_name,
            c.title,
            c.gender,
            c.birth_date,
            c.birth_date_precision,
            c.death_date,
            c.death_date_precision,
            c.notes,
            c.company_name,
            c.contact_type,
            c.is_tenant_household,
            c.uses_group_address,
            c.uses_tenant_address,
            c.website,
            c.business_category,
            c.parent_contact_id,
            c.visibility,
            c.is_active,
            c.linked_user_id,
            c.created_by_user_id,
            c.created_at,
            c.updated_at
        FROM contacts c`

	contactCountQuery = `SELECT COUNT(c.id) FROM contacts c`

	contactExistsQuery = `SELECT 1 FROM contacts c`

	contactTagsQuery = `SELECT tag_id FROM contact_tags WHERE contact_id = $1`

	contactTagDeleteQuery = `DELETE FROM contact_tags WHERE contact_id = $1`
	contactTagInsertQuery = `INSERT INTO contact_tags (contact_id, tag_id) VALUES`

	relationshipInsertQuery = `
        INSERT INTO contact_relationships (contact_id, related_contact_id, relationship_type)
        VALUES ($1, $2, $3)
        ON CONFLICT DO NOTHING`
	relationshipDeleteQuery = `
        DELETE FROM contact_relationships
        WHERE contact_id = $1 AND related_contact_id = $2 AND relationship_type = $3`

	contactDeleteQuery = `DELETE FROM contacts WHERE id = $1 AND tenant_id = $2`

	// Rename used by the household ensure path; deliberately leaves
	// updated_at alone so an idempotent ensure does not look like an edit.
	contactRenameGroupQuery = `UPDATE contacts SET company_name = $1 WHERE id = $2 AND tenant_id = $3`

	contactReassignMembersQuery = `
        UPDATE contacts
        SET parent_contact_id = $1, updated_at = NOW()
        WHERE parent_contact_id = $2 AND tenant_id = $3`

	groupSummaryQuery = `
        SELECT
            c.id,
            c.tenant_id,
            c.first_name,
            c.middle_name,
            c.last_name,
            c.preferred_name,
            c.title,
            c.gender,
            c.birth_date,
            c.birth_date_precision,
            c.death_date,
            c.death_date_precision,
            c.notes,
            c.company_name,
            c.contact_type,
            c.is_tenant_household,
            c.uses_group_address,
            c.uses_tenant_address,
            c.website,
            c.business_category,
            c.parent_contact_id,
            c.visibility,
            c.is_active,
            c.linked_user_id,
            c.created_by_user_id,
            c.created_at,
            c.updated_at,
            COALESCE(mc.member_count, 0),
            COALESCE(tr.tag_names, '{}'),
            COALESCE(tr.tag_colors, '{}')
        FROM contacts c
        LEFT JOIN LATERAL (
            SELECT COUNT(*) AS member_count
            FROM contacts m
            WHERE m.parent_contact_id = c.id
        ) mc ON TRUE
        LEFT JOIN LATERAL (
            SELECT
                array_agg(DISTINCT t.name) AS tag_names,
                array_agg(DISTINCT COALESCE(t.color, '')) AS tag_colors
            FROM contacts m
            JOIN contact_tags ct ON ct.contact_id = m.id
            JOIN tags t ON t.id = ct.tag_id
            WHERE m.parent_contact_id = c.id
        ) tr ON TRUE`

	groupCountQuery = `SELECT COUNT(c.id) FROM contacts c`
)

type PgContactRepository struct {
	fieldMap map[contact.Field]string
}

func NewContactRepository() contact.Repository {
	return &PgContactRepository{
		fieldMap: map[contact.Field]string{
			contact.FieldID:              "c.id",
			contact.FieldFirstName:       "c.first_name",
			contact.FieldLastName:        "c.last_name",
			contact.FieldCompanyName:     "c.company_name",
			contact.FieldContactType:     "c.contact_type",
			contact.FieldParentContactID: "c.parent_contact_id",
			contact.FieldTagID:           "ct.tag_id",
			contact.FieldCreatedAt:       "c.created_at",
			contact.FieldUpdatedAt:       "c.updated_at",
		},
	}
}

func (g *PgContactRepository) buildFilters(ctx context.Context, params *contact.FindParams) ([]string, []interface{}, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get tenant from context")
	}

	where := []string{"c.tenant_id = $1"}
	args := []interface{}{tenantID}

	for _, filter := range params.Filters {
		column, ok := g.fieldMap[filter.Column]
		if !ok {
			return nil, nil, errors.Wrap(fmt.Errorf("unknown filter field: %v", filter.Column), "invalid filter")
		}

		where = append(where, filter.Filter.String(column, len(args)+1))
		args = append(args, filter.Filter.Value()...)
	}

	if params.IsGroup != nil {
		if *params.IsGroup {
			where = append(where, "c.contact_type IS NOT NULL")
		} else {
			where = append(where, "c.contact_type IS NULL")
		}
	}

	if params.RelatedToContactID != uuid.Nil {
		clause := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM contact_relationships cr WHERE cr.contact_id = c.id AND cr.related_contact_id = $%d",
			len(args)+1,
		)
		args = append(args, params.RelatedToContactID)
		if params.RelationshipType != "" {
			clause += fmt.Sprintf(" AND cr.relationship_type = $%d", len(args)+1)
			args = append(args, params.RelationshipType)
		}
		where = append(where, clause+")")
	}

	if params.Search != "" {
		index := len(args) + 1
		where = append(
			where,
			fmt.Sprintf(
				"(c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR c.preferred_name ILIKE $%d OR c.company_name ILIKE $%d)",
				index,
				index,
				index,
				index,
			),
		)
		args = append(args, "%"+params.Search+"%")
	}

	return where, args, nil
}

func (g *PgContactRepository) buildGroupFilters(ctx context.Context, params *contact.GroupFindParams) ([]string, []interface{}, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get tenant from context")
	}

	where := []string{"c.tenant_id = $1", "c.contact_type IS NOT NULL"}
	args := []interface{}{tenantID}

	if params.ContactType != "" {
		where = append(where, fmt.Sprintf("c.contact_type = $%d", len(args)+1))
		args = append(args, string(params.ContactType))
	}

	if params.IsActive != nil {
		where = append(where, fmt.Sprintf("c.is_active = $%d", len(args)+1))
		args = append(args, *params.IsActive)
	}

	// Any-match over member tags, the same population the summary rollup
	// aggregates.
	if len(params.TagIDs) > 0 {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM contacts m JOIN contact_tags ct ON ct.contact_id = m.id WHERE m.parent_contact_id = c.id AND ct.tag_id = ANY($%d))",
			len(args)+1,
		))
		args = append(args, params.TagIDs)
	}

	if params.Search != "" {
		where = append(where, fmt.Sprintf("c.company_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+params.Search+"%")
	}

	return where, args, nil
}

func (g *PgContactRepository) GetPaginated(ctx context.Context, params *contact.FindParams) ([]contact.Contact, error) {
	where, args, err := g.buildFilters(ctx, params)
	if err != nil {
		return nil, err
	}

	baseQuery := contactFindQuery
	for _, f := range params.Filters {
		if f.Column == contact.FieldTagID {
			baseQuery += " JOIN contact_tags ct ON c.id = ct.contact_id"
		}
	}

	sortBy := params.SortBy
	if len(sortBy.Fields) == 0 {
		sortBy = contact.SortBy{
			Fields: []repo.SortByField[contact.Field]{
				{Field: contact.FieldLastName, Ascending: true},
				{Field: contact.FieldFirstName, Ascending: true},
			},
		}
	}

	query := repo.Join(
		baseQuery,
		repo.JoinWhere(where...),
		sortBy.ToSQL(g.fieldMap),
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	contacts, err := g.queryContacts(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paginated contacts")
	}
	return contacts, nil
}

func (g *PgContactRepository) Count(ctx context.Context, params *contact.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}

	where, args, err := g.buildFilters(ctx, params)
	if err != nil {
		return 0, err
	}

	baseQuery := contactCountQuery
	for _, f := range params.Filters {
		if f.Column == contact.FieldTagID {
			baseQuery += " JOIN contact_tags ct ON c.id = ct.contact_id"
		}
	}

	query := repo.Join(
		baseQuery,
		repo.JoinWhere(where...),
	)

	var count int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count contacts")
	}
	return count, nil
}

func (g *PgContactRepository) GetByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "failed to get tenant from context")
	}

	contacts, err := g.queryContacts(ctx, contactFindQuery+" WHERE c.id = $1 AND c.tenant_id = $2", id, tenantID)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, fmt.Sprintf("failed to query contact with id: %s", id))
	}
	if len(contacts) == 0 {
		return contact.Contact{}, fmt.Errorf("id: %s: %w", id, contact.ErrNotFound)
	}
	return contacts[0], nil
}

func (g *PgContactRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	entity, err := g.GetByID(ctx, id)
	if err != nil {
		return contact.Contact{}, err
	}
	if !entity.IsGroup() {
		return contact.Contact{}, fmt.Errorf("id: %s: %w", id, contact.ErrNotGroup)
	}
	return entity, nil
}

func (g *PgContactRepository) GetTenantHousehold(ctx context.Context) (contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "failed to get tenant from context")
	}

	contacts, err := g.queryContacts(ctx, contactFindQuery+" WHERE c.tenant_id = $1 AND c.is_tenant_household = TRUE", tenantID)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "failed to query tenant household")
	}
	if len(contacts) == 0 {
		return contact.Contact{}, contact.ErrNoTenantHousehold
	}
	return contacts[0], nil
}

func (g *PgContactRepository) GetGroupSummaries(ctx context.Context, params *contact.GroupFindParams) ([]contact.GroupSummary, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	where, args, err := g.buildGroupFilters(ctx, params)
	if err != nil {
		return nil, err
	}

	sortBy := params.SortBy
	if len(sortBy.Fields) == 0 {
		sortBy = contact.SortBy{
			Fields: []repo.SortByField[contact.Field]{
				{Field: contact.FieldCompanyName, Ascending: true},
			},
		}
	}

	query := repo.Join(
		groupSummaryQuery,
		repo.JoinWhere(where...),
		sortBy.ToSQL(g.fieldMap),
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query group summaries")
	}
	defer rows.Close()

	summaries := make([]contact.GroupSummary, 0)
	for rows.Next() {
		var dbRow models.Contact
		var memberCount int64
		var tagNames, tagColors []string
		if err := rows.Scan(
			&dbRow.ID,
			&dbRow.TenantID,
			&dbRow.FirstName,
			&dbRow.MiddleName,
			&dbRow.LastName,
			&dbRow.PreferredName,
			&dbRow.Title,
			&dbRow.Gender,
			&dbRow.BirthDate,
			&dbRow.BirthDatePrec,
			&dbRow.DeathDate,
			&dbRow.DeathDatePrec,
			&dbRow.Notes,
			&dbRow.CompanyName,
			&dbRow.ContactType,
			&dbRow.IsTenantHousehold,
			&dbRow.UsesGroupAddress,
			&dbRow.UsesTenantAddress,
			&dbRow.Website,
			&dbRow.BusinessCategory,
			&dbRow.ParentContactID,
			&dbRow.Visibility,
			&dbRow.IsActive,
			&dbRow.LinkedUserID,
			&dbRow.CreatedByUserID,
			&dbRow.CreatedAt,
			&dbRow.UpdatedAt,
			&memberCount,
			&tagNames,
			&tagColors,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan group summary")
		}

		entity, err := ToDomainContact(&dbRow, nil)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, contact.GroupSummary{
			Contact:     entity,
			MemberCount: int(memberCount),
			TagNames:    tagNames,
			TagColors:   tagColors,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate group summaries")
	}
	return summaries, nil
}

func (g *PgContactRepository) CountGroups(ctx context.Context, params *contact.GroupFindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}

	where, args, err := g.buildGroupFilters(ctx, params)
	if err != nil {
		return 0, err
	}

	query := repo.Join(
		groupCountQuery,
		repo.JoinWhere(where...),
	)

	var count int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count groups")
	}
	return count, nil
}

func (g *PgContactRepository) Create(ctx context.Context, data contact.Contact) (contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "failed to get transaction")
	}

	dbRow := ToDBContact(data)

	fields := []string{
		"tenant_id",
		"first_name",
		"middle_name",
		"last_name",
		"preferred_name",
		"title",
		"gender",
		"birth_date",
		"birth_date_precision",
		"death_date",
		"death_date_precision",
		"notes",
		"company_name",
		"contact_type",
		"is_tenant_household",
		"uses_group_address",
		"uses_tenant_address",
		"website",
		"business_category",
		"parent_contact_id",
		"visibility",
		"is_active",
		"linked_user_id",
		"created_by_user_id",
	}

	values := []interface{}{
		dbRow.TenantID,
		dbRow.FirstName,
		dbRow.MiddleName,
		dbRow.LastName,
		dbRow.PreferredName,
		dbRow.Title,
		dbRow.Gender,
		dbRow.BirthDate,
		dbRow.BirthDatePrec,
		dbRow.DeathDate,
		dbRow.DeathDatePrec,
		dbRow.Notes,
		dbRow.CompanyName,
		dbRow.ContactType,
		dbRow.IsTenantHousehold,
		dbRow.UsesGroupAddress,
		dbRow.UsesTenantAddress,
		dbRow.Website,
		dbRow.BusinessCategory,
		dbRow.ParentContactID,
		dbRow.Visibility,
		dbRow.IsActive,
		dbRow.LinkedUserID,
		dbRow.CreatedByUserID,
	}

	q := repo.Insert("contacts", fields, "id")
	if err := tx.QueryRow(ctx, q, values...).Scan(&dbRow.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return contact.Contact{}, contact.ErrHouseholdExists
		}
		return contact.Contact{}, errors.Wrap(err, "failed to insert contact")
	}

	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "invalid contact id")
	}

	if err := g.updateContactTags(ctx, id, data.TagIDs()); err != nil {
		return contact.Contact{}, errors.Wrap(err, fmt.Sprintf("failed to update tags for contact ID: %s", id))
	}

	return g.GetByID(ctx, id)
}

func (g *PgContactRepository) Update(ctx context.Context, data contact.Contact) (contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "failed to get transaction")
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "failed to get tenant from context")
	}

	dbRow := ToDBContact(data)

	fields := []string{
		"first_name",
		"middle_name",
		"last_name",
		"preferred_name",
		"title",
		"gender",
		"birth_date",
		"birth_date_precision",
		"death_date",
		"death_date_precision",
		"notes",
		"company_name",
		"contact_type",
		"uses_group_address",
		"uses_tenant_address",
		"website",
		"business_category",
		"parent_contact_id",
		"visibility",
		"is_active",
		"linked_user_id",
		"updated_at",
	}

	values := []interface{}{
		dbRow.FirstName,
		dbRow.MiddleName,
		dbRow.LastName,
		dbRow.PreferredName,
		dbRow.Title,
		dbRow.Gender,
		dbRow.BirthDate,
		dbRow.BirthDatePrec,
		dbRow.DeathDate,
		dbRow.DeathDatePrec,
		dbRow.Notes,
		dbRow.CompanyName,
		dbRow.ContactType,
		dbRow.UsesGroupAddress,
		dbRow.UsesTenantAddress,
		dbRow.Website,
		dbRow.BusinessCategory,
		dbRow.ParentContactID,
		dbRow.Visibility,
		dbRow.IsActive,
		dbRow.LinkedUserID,
		time.Now(),
	}

	values = append(values, dbRow.ID, tenantID)
	conditions := []string{
		fmt.Sprintf("id = $%d", len(values)-1),
		fmt.Sprintf("tenant_id = $%d", len(values)),
	}

	tag, err := tx.Exec(ctx, repo.Update("contacts", fields, conditions...), values...)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, fmt.Sprintf("failed to update contact with ID: %s", dbRow.ID))
	}
	if tag.RowsAffected() == 0 {
		return contact.Contact{}, fmt.Errorf("id: %s: %w", dbRow.ID, contact.ErrNotFound)
	}

	if err := g.updateContactTags(ctx, data.ID(), data.TagIDs()); err != nil {
		return contact.Contact{}, errors.Wrap(err, fmt.Sprintf("failed to update tags for contact ID: %s", data.ID()))
	}

	return g.GetByID(ctx, data.ID())
}

func (g *PgContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant from context")
	}

	if err := g.execQuery(ctx, contactTagDeleteQuery, id); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to delete tags for contact ID: %s", id))
	}
	if err := g.execQuery(ctx, contactDeleteQuery, id, tenantID); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to delete contact with ID: %s", id))
	}
	return nil
}

func (g *PgContactRepository) RenameGroup(ctx context.Context, id uuid.UUID, name string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant from context")
	}

	tag, err := tx.Exec(ctx, contactRenameGroupQuery, name, id, tenantID)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to rename group with ID: %s", id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("id: %s: %w", id, contact.ErrNotFound)
	}
	return nil
}

func (g *PgContactRepository) ReassignMembers(ctx context.Context, fromGroupID, toGroupID uuid.UUID) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get tenant from context")
	}

	tag, err := tx.Exec(ctx, contactReassignMembersQuery, toGroupID, fromGroupID, tenantID)
	if err != nil {
		return 0, errors.Wrap(err, fmt.Sprintf("failed to reassign members from group ID: %s", fromGroupID))
	}
	return tag.RowsAffected(), nil
}

func (g *PgContactRepository) AddRelationship(ctx context.Context, contactID, relatedContactID uuid.UUID, relationshipType string) error {
	if err := g.execQuery(ctx, relationshipInsertQuery, contactID, relatedContactID, relationshipType); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to add relationship for contact ID: %s", contactID))
	}
	return nil
}

func (g *PgContactRepository) RemoveRelationship(ctx context.Context, contactID, relatedContactID uuid.UUID, relationshipType string) error {
	if err := g.execQuery(ctx, relationshipDeleteQuery, contactID, relatedContactID, relationshipType); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to remove relationship for contact ID: %s", contactID))
	}
	return nil
}

func (g *PgContactRepository) HasContacts(ctx context.Context) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get tenant from context")
	}

	base := repo.Join(contactExistsQuery, "WHERE c.tenant_id = $1")
	query := repo.Exists(base)

	exists := false
	if err := tx.QueryRow(ctx, query, tenantID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "checking contact existence failed")
	}
	return exists, nil
}

func (g *PgContactRepository) queryContacts(ctx context.Context, query string, args ...interface{}) ([]contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query contacts")
	}
	defer rows.Close()

	dbRows := make([]*models.Contact, 0)
	for rows.Next() {
		var dbRow models.Contact
		if err := rows.Scan(
			&dbRow.ID,
			&dbRow.TenantID,
			&dbRow.FirstName,
			&dbRow.MiddleName,
			&dbRow.LastName,
			&dbRow.PreferredName,
			&dbRow.Title,
			&dbRow.Gender,
			&dbRow.BirthDate,
			&dbRow.BirthDatePrec,
			&dbRow.DeathDate,
			&dbRow.DeathDatePrec,
			&dbRow.Notes,
			&dbRow.CompanyName,
			&dbRow.ContactType,
			&dbRow.IsTenantHousehold,
			&dbRow.UsesGroupAddress,
			&dbRow.UsesTenantAddress,
			&dbRow.Website,
			&dbRow.BusinessCategory,
			&dbRow.ParentContactID,
			&dbRow.Visibility,
			&dbRow.IsActive,
			&dbRow.LinkedUserID,
			&dbRow.CreatedByUserID,
			&dbRow.CreatedAt,
			&dbRow.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan contact")
		}
		dbRows = append(dbRows, &dbRow)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate contacts")
	}

	entities := make([]contact.Contact, 0, len(dbRows))
	for _, dbRow := range dbRows {
		id, err := uuid.Parse(dbRow.ID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid contact id")
		}
		tagIDs, err := g.queryContactTags(ctx, id)
		if err != nil {
			return nil, err
		}
		entity, err := ToDomainContact(dbRow, tagIDs)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (g *PgContactRepository) queryContactTags(ctx context.Context, contactID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, contactTagsQuery, contactID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query contact tags")
	}
	defer rows.Close()

	tagIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var tagID uuid.UUID
		if err := rows.Scan(&tagID); err != nil {
			return nil, errors.Wrap(err, "failed to scan contact tag")
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate contact tags")
	}
	return tagIDs, nil
}

func (g *PgContactRepository) updateContactTags(ctx context.Context, contactID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := g.execQuery(ctx, contactTagDeleteQuery, contactID); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, []interface{}{contactID, tagID})
	}
	q, args := repo.BatchInsertQueryN(contactTagInsertQuery, rows)
	return g.execQuery(ctx, q, args...)
}

func (g *PgContactRepository) execQuery(ctx context.Context, query string, args ...interface{}) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	_, err = tx.Exec(ctx, query, args...)
	return err
}
