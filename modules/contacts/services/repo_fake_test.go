package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/homewardhq/homeward/modules/contacts/domain/aggregates/contact"
	"github.com/homewardhq/homeward/pkg/composables"
)

// noopTx satisfies the transaction presence check without a live database.
// Begin hands back the same value so savepoint handling is a no-op; the fake
// repository never touches the transaction itself.
type noopTx struct{ pgx.Tx }

func (t noopTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }
func (t noopTx) Commit(context.Context) error          { return nil }
func (t noopTx) Rollback(context.Context) error        { return nil }

func testContext(tenantID uuid.UUID) context.Context {
	ctx := composables.WithTenantID(context.Background(), tenantID)
	return composables.WithTx(ctx, noopTx{})
}

type fakeTag struct {
	name  string
	color string
}

// fakeContactRepository is an in-memory contact.Repository that mirrors the
// storage constraints the schema enforces: tenant scoping on every read, the
// one-household-per-tenant unique index, and member reassignment counts.
type fakeRelationship struct {
	contactID uuid.UUID
	relatedID uuid.UUID
	relType   string
}

type fakeContactRepository struct {
	mu            sync.Mutex
	contacts      map[uuid.UUID]contact.Contact
	tags          map[uuid.UUID]fakeTag
	relationships map[fakeRelationship]bool

	// beforeCreate runs inside Create before the unique check, letting
	// tests interleave a competing writer.
	beforeCreate func()
}

func newFakeContactRepository() *fakeContactRepository {
	return &fakeContactRepository{
		contacts:      make(map[uuid.UUID]contact.Contact),
		tags:          make(map[uuid.UUID]fakeTag),
		relationships: make(map[fakeRelationship]bool),
	}
}

func (f *fakeContactRepository) addTag(name, color string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.tags[id] = fakeTag{name: name, color: color}
	return id
}

func (f *fakeContactRepository) tenantContacts(ctx context.Context) ([]contact.Contact, uuid.UUID, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}
	out := make([]contact.Contact, 0)
	for _, c := range f.contacts {
		if c.TenantID() == tenantID {
			out = append(out, c)
		}
	}
	return out, tenantID, nil
}

func (f *fakeContactRepository) Count(ctx context.Context, params *contact.FindParams) (int64, error) {
	items, err := f.GetPaginated(ctx, &contact.FindParams{
		Search:             params.Search,
		IsGroup:            params.IsGroup,
		RelatedToContactID: params.RelatedToContactID,
		RelationshipType:   params.RelationshipType,
		Filters:            params.Filters,
	})
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (f *fakeContactRepository) relatedLocked(contactID, relatedID uuid.UUID, relType string) bool {
	for rel := range f.relationships {
		if rel.contactID != contactID || rel.relatedID != relatedID {
			continue
		}
		if relType == "" || rel.relType == relType {
			return true
		}
	}
	return false
}

func (f *fakeContactRepository) GetPaginated(ctx context.Context, params *contact.FindParams) ([]contact.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, _, err := f.tenantContacts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]contact.Contact, 0, len(items))
	for _, c := range items {
		if params.IsGroup != nil && c.IsGroup() != *params.IsGroup {
			continue
		}
		if params.RelatedToContactID != uuid.Nil && !f.relatedLocked(c.ID(), params.RelatedToContactID, params.RelationshipType) {
			continue
		}
		if params.Search != "" && !matchesSearch(c, params.Search) {
			continue
		}
		if !matchesFilters(c, params.Filters) {
			continue
		}
		filtered = append(filtered, c)
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].LastName() != filtered[j].LastName() {
			return filtered[i].LastName() < filtered[j].LastName()
		}
		return filtered[i].FirstName() < filtered[j].FirstName()
	})
	return paginate(filtered, params.Limit, params.Offset), nil
}

func matchesSearch(c contact.Contact, search string) bool {
	s := strings.ToLower(search)
	for _, field := range []string{c.FirstName(), c.LastName(), c.PreferredName(), c.CompanyName()} {
		if strings.Contains(strings.ToLower(field), s) {
			return true
		}
	}
	return false
}

func matchesFilters(c contact.Contact, filters []contact.Filter) bool {
	for _, flt := range filters {
		values := flt.Filter.Value()
		if len(values) == 0 {
			continue
		}
		switch flt.Column {
		case contact.FieldParentContactID:
			if c.ParentContactID() != values[0] {
				return false
			}
		case contact.FieldTagID:
			found := false
			for _, tagID := range c.TagIDs() {
				if tagID == values[0] {
					found = true
				}
			}
			if !found {
				return false
			}
		case contact.FieldContactType:
			if string(c.ContactType()) != fmt.Sprint(values[0]) {
				return false
			}
		}
	}
	return true
}

func paginate(items []contact.Contact, limit, offset int) []contact.Contact {
	if offset >= len(items) {
		return []contact.Contact{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (f *fakeContactRepository) GetByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getByIDLocked(ctx, id)
}

func (f *fakeContactRepository) getByIDLocked(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	c, ok := f.contacts[id]
	if !ok || c.TenantID() != tenantID {
		return contact.Contact{}, fmt.Errorf("id: %s: %w", id, contact.ErrNotFound)
	}
	return c, nil
}

func (f *fakeContactRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return contact.Contact{}, err
	}
	if !c.IsGroup() {
		return contact.Contact{}, fmt.Errorf("id: %s: %w", id, contact.ErrNotGroup)
	}
	return c, nil
}

func (f *fakeContactRepository) GetTenantHousehold(ctx context.Context) (contact.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, _, err := f.tenantContacts(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	for _, c := range items {
		if c.IsTenantHousehold() {
			return c, nil
		}
	}
	return contact.Contact{}, contact.ErrNoTenantHousehold
}

func (f *fakeContactRepository) GetGroupSummaries(ctx context.Context, params *contact.GroupFindParams) ([]contact.GroupSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, _, err := f.tenantContacts(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]contact.Contact, 0)
	for _, c := range items {
		if !c.IsGroup() {
			continue
		}
		if params.ContactType != "" && c.ContactType() != params.ContactType {
			continue
		}
		if params.IsActive != nil && c.IsActive() != *params.IsActive {
			continue
		}
		if len(params.TagIDs) > 0 && !anyMemberHasTag(items, c.ID(), params.TagIDs) {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(c.CompanyName()), strings.ToLower(params.Search)) {
			continue
		}
		groups = append(groups, c)
	}
	sortGroups(groups, params.SortBy)

	summaries := make([]contact.GroupSummary, 0, len(groups))
	for _, g := range groups {
		memberCount := 0
		tagNames := make([]string, 0)
		tagColors := make([]string, 0)
		seen := map[uuid.UUID]bool{}
		for _, c := range items {
			if c.ParentContactID() != g.ID() {
				continue
			}
			memberCount++
			for _, tagID := range c.TagIDs() {
				if seen[tagID] {
					continue
				}
				seen[tagID] = true
				if t, ok := f.tags[tagID]; ok {
					tagNames = append(tagNames, t.name)
					tagColors = append(tagColors, t.color)
				}
			}
		}
		sort.Strings(tagNames)
		sort.Strings(tagColors)
		summaries = append(summaries, contact.GroupSummary{
			Contact:     g,
			MemberCount: memberCount,
			TagNames:    tagNames,
			TagColors:   tagColors,
		})
	}
	return summaries, nil
}

func (f *fakeContactRepository) CountGroups(ctx context.Context, params *contact.GroupFindParams) (int64, error) {
	summaries, err := f.GetGroupSummaries(ctx, &contact.GroupFindParams{
		ContactType: params.ContactType,
		IsActive:    params.IsActive,
		TagIDs:      params.TagIDs,
		Search:      params.Search,
	})
	if err != nil {
		return 0, err
	}
	return int64(len(summaries)), nil
}

func anyMemberHasTag(items []contact.Contact, groupID uuid.UUID, tagIDs []uuid.UUID) bool {
	for _, c := range items {
		if c.ParentContactID() != groupID {
			continue
		}
		for _, have := range c.TagIDs() {
			for _, want := range tagIDs {
				if have == want {
					return true
				}
			}
		}
	}
	return false
}

func sortGroups(groups []contact.Contact, sortBy contact.SortBy) {
	field := contact.FieldCompanyName
	asc := true
	if len(sortBy.Fields) > 0 {
		field = sortBy.Fields[0].Field
		asc = sortBy.Fields[0].Ascending
	}
	sort.Slice(groups, func(i, j int) bool {
		var less bool
		switch field {
		case contact.FieldCreatedAt:
			less = groups[i].CreatedAt().Before(groups[j].CreatedAt())
		case contact.FieldUpdatedAt:
			less = groups[i].UpdatedAt().Before(groups[j].UpdatedAt())
		default:
			less = groups[i].CompanyName() < groups[j].CompanyName()
		}
		if asc {
			return less
		}
		return !less
	})
}

func (f *fakeContactRepository) Create(ctx context.Context, data contact.Contact) (contact.Contact, error) {
	if f.beforeCreate != nil {
		hook := f.beforeCreate
		f.beforeCreate = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if data.IsTenantHousehold() {
		for _, c := range f.contacts {
			if c.TenantID() == data.TenantID() && c.IsTenantHousehold() {
				return contact.Contact{}, contact.ErrHouseholdExists
			}
		}
	}

	now := time.Now()
	stored := rebuild(data, uuid.New(), now, now)
	f.contacts[stored.ID()] = stored
	return stored, nil
}

func (f *fakeContactRepository) Update(ctx context.Context, data contact.Contact) (contact.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.getByIDLocked(ctx, data.ID())
	if err != nil {
		return contact.Contact{}, err
	}

	stored := rebuild(data, existing.ID(), existing.CreatedAt(), time.Now())
	f.contacts[stored.ID()] = stored
	return stored, nil
}

func (f *fakeContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.getByIDLocked(ctx, id); err != nil {
		return err
	}
	delete(f.contacts, id)
	return nil
}

func (f *fakeContactRepository) RenameGroup(ctx context.Context, id uuid.UUID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.getByIDLocked(ctx, id)
	if err != nil {
		return err
	}
	f.contacts[id] = existing.WithGroupName(name)
	return nil
}

func (f *fakeContactRepository) ReassignMembers(ctx context.Context, fromGroupID, toGroupID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, err
	}

	var moved int64
	for id, c := range f.contacts {
		if c.TenantID() == tenantID && c.ParentContactID() == fromGroupID {
			f.contacts[id] = c.WithParent(toGroupID)
			moved++
		}
	}
	return moved, nil
}

func (f *fakeContactRepository) AddRelationship(ctx context.Context, contactID, relatedContactID uuid.UUID, relationshipType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.relationships[fakeRelationship{contactID: contactID, relatedID: relatedContactID, relType: relationshipType}] = true
	return nil
}

func (f *fakeContactRepository) RemoveRelationship(ctx context.Context, contactID, relatedContactID uuid.UUID, relationshipType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.relationships, fakeRelationship{contactID: contactID, relatedID: relatedContactID, relType: relationshipType})
	return nil
}

func (f *fakeContactRepository) HasContacts(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, _, err := f.tenantContacts(ctx)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

func rebuild(data contact.Contact, fallbackID uuid.UUID, createdAt, updatedAt time.Time) contact.Contact {
	id := data.ID()
	if id == uuid.Nil {
		id = fallbackID
	}
	if !data.CreatedAt().IsZero() {
		createdAt = data.CreatedAt()
	}
	return contact.Hydrate(
		id, data.TenantID(),
		data.FirstName(), data.MiddleName(), data.LastName(), data.PreferredName(), data.Title(),
		data.Gender(),
		data.BirthDate(), data.BirthPrec(),
		data.DeathDate(), data.DeathPrec(),
		data.Notes(),
		data.CompanyName(), data.ContactType(), data.IsTenantHousehold(),
		data.UsesGroupAddress(), data.UsesTenantAddress(),
		data.Website(), data.BusinessCategory(),
		data.ParentContactID(),
		data.Visibility(), data.IsActive(),
		data.LinkedUserID(), data.CreatedByUserID(),
		createdAt, updatedAt,
		data.TagIDs(),
	)
}
