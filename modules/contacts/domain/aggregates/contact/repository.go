package contact

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/homewardhq/homeward/pkg/repo"
)

var (
	ErrNotFound = errors.New("contact not found")

	// ErrNotGroup is returned when a group operation targets a plain
	// member contact.
	ErrNotGroup = errors.New("contact is not a group")

	// ErrTenantHouseholdProtected guards the tenant's root household
	// against deletion and reparenting.
	ErrTenantHouseholdProtected = errors.New("cannot delete the tenant household group")

	// ErrGroupMove is returned when a move targets a group row; groups
	// are top-level and never members of other groups.
	ErrGroupMove = errors.New("cannot move a group contact")

	// ErrGroupDelete steers group deletion to the group endpoint so the
	// member cascade runs.
	ErrGroupDelete = errors.New("cannot delete a group contact through the contact endpoint")

	// ErrNoTenantHousehold signals a broken tenant: every tenant is
	// expected to own exactly one household group.
	ErrNoTenantHousehold = errors.New("tenant household group does not exist")

	// ErrHouseholdInvariant reports a tenant whose household was missing
	// while a cascade depended on it. Unlike ErrNoTenantHousehold on a
	// lookup, this is an internal failure, never a client error.
	ErrHouseholdInvariant = errors.New("tenant household missing during member reassignment")

	// ErrHouseholdExists maps the partial unique index violation raised
	// when two households race to be first for a tenant.
	ErrHouseholdExists = errors.New("tenant household group already exists")
)

type Field int

const (
	FieldID Field = iota
	FieldFirstName
	FieldLastName
	FieldCompanyName
	FieldContactType
	FieldParentContactID
	FieldTagID
	FieldCreatedAt
	FieldUpdatedAt
)

type SortBy = repo.SortBy[Field]

type Filter struct {
	Column Field
	Filter repo.Filter
}

// FindParams scopes a listing query. Search matches name columns with a
// case-insensitive substring. IsGroup switches between group rows and member
// rows; nil returns both. RelatedToContactID narrows to contacts holding a
// relationship to the given contact, optionally of one RelationshipType.
type FindParams struct {
	Limit              int
	Offset             int
	Search             string
	IsGroup            *bool
	RelatedToContactID uuid.UUID
	RelationshipType   string
	SortBy             SortBy
	Filters            []Filter
}

// GroupFindParams scopes the group listing. TagIDs matches groups with at
// least one member carrying any of the tags, mirroring the summary rollup.
type GroupFindParams struct {
	Limit       int
	Offset      int
	Search      string
	ContactType Type
	IsActive    *bool
	TagIDs      []uuid.UUID
	SortBy      SortBy
}

// GroupSummary is the read model for group listings: the group row plus
// aggregates computed over its members.
type GroupSummary struct {
	Contact     Contact
	MemberCount int
	TagNames    []string
	TagColors   []string
}

type Repository interface {
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Contact, error)
	GetByID(ctx context.Context, id uuid.UUID) (Contact, error)
	Create(ctx context.Context, data Contact) (Contact, error)
	Update(ctx context.Context, data Contact) (Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// GetGroupByID returns the row only when it is a group, otherwise
	// ErrNotGroup.
	GetGroupByID(ctx context.Context, id uuid.UUID) (Contact, error)
	// GetTenantHousehold returns the tenant's root household group, or
	// ErrNoTenantHousehold when absent.
	GetTenantHousehold(ctx context.Context) (Contact, error)
	// GetGroupSummaries lists groups with member counts and member tag
	// rollups.
	GetGroupSummaries(ctx context.Context, params *GroupFindParams) ([]GroupSummary, error)
	CountGroups(ctx context.Context, params *GroupFindParams) (int64, error)
	// RenameGroup changes only the group name, leaving updated_at
	// untouched.
	RenameGroup(ctx context.Context, id uuid.UUID, name string) error
	// ReassignMembers moves every member of fromGroupID under toGroupID
	// and returns how many rows changed.
	ReassignMembers(ctx context.Context, fromGroupID, toGroupID uuid.UUID) (int64, error)
	// HasContacts reports whether the tenant owns any contact rows at all.
	HasContacts(ctx context.Context) (bool, error)

	// AddRelationship records a typed association from one contact to
	// another. Recording the same association twice is a no-op.
	AddRelationship(ctx context.Context, contactID, relatedContactID uuid.UUID, relationshipType string) error
	// RemoveRelationship deletes the association if present.
	RemoveRelationship(ctx context.Context, contactID, relatedContactID uuid.UUID, relationshipType string) error
}
