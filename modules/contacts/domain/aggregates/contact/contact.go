package contact

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is a single row in the tenant's contact set. A row is either a
// group (Household/Business, contactType set, no parent) or a member (person
// fields, attached to exactly one group via parentContactID). The two roles
// are mutually exclusive.
type Contact struct {
	id       uuid.UUID
	tenantID uuid.UUID

	firstName     string
	middleName    string
	lastName      string
	preferredName string
	title         string
	gender        Gender
	birthDate     *time.Time
	birthPrec     DatePrecision
	deathDate     *time.Time
	deathPrec     DatePrecision
	notes         string

	companyName       string
	contactType       Type
	isTenantHousehold bool
	usesGroupAddress  bool
	usesTenantAddress bool
	website           string
	businessCategory  string

	parentContactID uuid.UUID

	visibility      Visibility
	isActive        bool
	linkedUserID    uuid.UUID
	createdByUserID uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time

	tagIDs []uuid.UUID
}

// NewGroup builds a top-level group contact. Household groups never carry
// business fields; they are cleared here regardless of input so the invariant
// holds even when request validation is bypassed.
func NewGroup(tenantID uuid.UUID, contactType Type, groupName string, createdBy uuid.UUID) Contact {
	c := Contact{
		tenantID:        tenantID,
		contactType:     contactType,
		companyName:     strings.TrimSpace(groupName),
		gender:          GenderUnknown,
		birthPrec:       PrecisionUnknown,
		deathPrec:       PrecisionUnknown,
		visibility:      VisibilityTenantShared,
		isActive:        true,
		createdByUserID: createdBy,
	}
	return c.normalized()
}

// NewMember builds a person contact attached to the given group.
func NewMember(tenantID uuid.UUID, firstName, lastName string, parentContactID uuid.UUID, createdBy uuid.UUID) Contact {
	return Contact{
		tenantID:        tenantID,
		firstName:       strings.TrimSpace(firstName),
		lastName:        strings.TrimSpace(lastName),
		gender:          GenderUnknown,
		birthPrec:       PrecisionUnknown,
		deathPrec:       PrecisionUnknown,
		parentContactID: parentContactID,
		visibility:      VisibilityTenantShared,
		isActive:        true,
		createdByUserID: createdBy,
	}
}

// Hydrate reconstructs a Contact from storage without normalization.
func Hydrate(
	id, tenantID uuid.UUID,
	firstName, middleName, lastName, preferredName, title string,
	gender Gender,
	birthDate *time.Time, birthPrec DatePrecision,
	deathDate *time.Time, deathPrec DatePrecision,
	notes string,
	companyName string, contactType Type, isTenantHousehold bool,
	usesGroupAddress, usesTenantAddress bool,
	website, businessCategory string,
	parentContactID uuid.UUID,
	visibility Visibility, isActive bool,
	linkedUserID, createdByUserID uuid.UUID,
	createdAt, updatedAt time.Time,
	tagIDs []uuid.UUID,
) Contact {
	return Contact{
		id:                id,
		tenantID:          tenantID,
		firstName:         firstName,
		middleName:        middleName,
		lastName:          lastName,
		preferredName:     preferredName,
		title:             title,
		gender:            gender,
		birthDate:         birthDate,
		birthPrec:         birthPrec,
		deathDate:         deathDate,
		deathPrec:         deathPrec,
		notes:             notes,
		companyName:       companyName,
		contactType:       contactType,
		isTenantHousehold: isTenantHousehold,
		usesGroupAddress:  usesGroupAddress,
		usesTenantAddress: usesTenantAddress,
		website:           website,
		businessCategory:  businessCategory,
		parentContactID:   parentContactID,
		visibility:        visibility,
		isActive:          isActive,
		linkedUserID:      linkedUserID,
		createdByUserID:   createdByUserID,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		tagIDs:            tagIDs,
	}
}

func (c Contact) ID() uuid.UUID              { return c.id }
func (c Contact) TenantID() uuid.UUID        { return c.tenantID }
func (c Contact) FirstName() string          { return c.firstName }
func (c Contact) MiddleName() string         { return c.middleName }
func (c Contact) LastName() string           { return c.lastName }
func (c Contact) PreferredName() string      { return c.preferredName }
func (c Contact) Title() string              { return c.title }
func (c Contact) Gender() Gender             { return c.gender }
func (c Contact) BirthDate() *time.Time      { return c.birthDate }
func (c Contact) BirthPrec() DatePrecision   { return c.birthPrec }
func (c Contact) DeathDate() *time.Time      { return c.deathDate }
func (c Contact) DeathPrec() DatePrecision   { return c.deathPrec }
func (c Contact) Notes() string              { return c.notes }
func (c Contact) CompanyName() string        { return c.companyName }
func (c Contact) ContactType() Type          { return c.contactType }
func (c Contact) IsTenantHousehold() bool    { return c.isTenantHousehold }
func (c Contact) UsesGroupAddress() bool     { return c.usesGroupAddress }
func (c Contact) UsesTenantAddress() bool    { return c.usesTenantAddress }
func (c Contact) Website() string            { return c.website }
func (c Contact) BusinessCategory() string   { return c.businessCategory }
func (c Contact) ParentContactID() uuid.UUID { return c.parentContactID }
func (c Contact) Visibility() Visibility     { return c.visibility }
func (c Contact) IsActive() bool             { return c.isActive }
func (c Contact) LinkedUserID() uuid.UUID    { return c.linkedUserID }
func (c Contact) CreatedByUserID() uuid.UUID { return c.createdByUserID }
func (c Contact) CreatedAt() time.Time       { return c.createdAt }
func (c Contact) UpdatedAt() time.Time       { return c.updatedAt }
func (c Contact) TagIDs() []uuid.UUID        { return c.tagIDs }

// IsGroup reports whether this row carries group semantics.
func (c Contact) IsGroup() bool { return c.contactType != "" }

// GroupName is the display name of a group row, stored in the company column.
func (c Contact) GroupName() string { return c.companyName }

func (c Contact) IsZero() bool { return c.id == uuid.Nil && c.tenantID == uuid.Nil }

// DisplayName composes a human-readable name: group name for groups,
// preferred or first+last for persons, falling back to the company column.
func (c Contact) DisplayName() string {
	if c.IsGroup() {
		return c.companyName
	}
	if c.preferredName != "" {
		return c.preferredName
	}
	full := c.FullName()
	if full != "" {
		return full
	}
	return c.companyName
}

func (c Contact) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.firstName, c.middleName, c.lastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// WithGroupDetails applies a group update: type, name, notes, business
// fields, active flag. The tenant-household flag and parent link are not
// touched through this path.
func (c Contact) WithGroupDetails(contactType Type, groupName, notes, website, businessCategory string, isActive bool) Contact {
	c.contactType = contactType
	c.companyName = strings.TrimSpace(groupName)
	c.notes = notes
	c.website = strings.TrimSpace(website)
	c.businessCategory = strings.TrimSpace(businessCategory)
	c.isActive = isActive
	return c.normalized()
}

// WithGroupName renames a group without touching any other field.
func (c Contact) WithGroupName(groupName string) Contact {
	c.companyName = strings.TrimSpace(groupName)
	return c
}

// WithPersonNames sets the person name columns of a member contact.
func (c Contact) WithPersonNames(firstName, middleName, lastName, preferredName string) Contact {
	c.firstName = strings.TrimSpace(firstName)
	c.middleName = strings.TrimSpace(middleName)
	c.lastName = strings.TrimSpace(lastName)
	c.preferredName = strings.TrimSpace(preferredName)
	return c
}

// WithNotes sets free-text notes.
func (c Contact) WithNotes(notes string) Contact {
	c.notes = notes
	return c
}

// WithBusinessFields sets the business-only columns.
func (c Contact) WithBusinessFields(website, businessCategory string) Contact {
	c.website = strings.TrimSpace(website)
	c.businessCategory = strings.TrimSpace(businessCategory)
	return c.normalized()
}

// WithTenantHousehold flags this group as the tenant's root household.
func (c Contact) WithTenantHousehold() Contact {
	c.isTenantHousehold = true
	return c
}

// WithParent reattaches a member to another group.
func (c Contact) WithParent(parentContactID uuid.UUID) Contact {
	c.parentContactID = parentContactID
	return c
}

// WithTags replaces the tag associations.
func (c Contact) WithTags(tagIDs []uuid.UUID) Contact {
	c.tagIDs = tagIDs
	return c
}

// WithUsesGroupAddress toggles address inheritance from the group.
func (c Contact) WithUsesGroupAddress(v bool) Contact {
	c.usesGroupAddress = v
	return c
}

// normalized enforces the household/business field exclusivity: household
// groups never carry website or business category values.
func (c Contact) normalized() Contact {
	if c.contactType == TypeHousehold {
		c.website = ""
		c.businessCategory = ""
	}
	return c
}
