package contact

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/homewardhq/homeward/pkg/constants"
	"github.com/homewardhq/homeward/pkg/serrors"
)

type CreateGroupDTO struct {
	GroupName        string `json:"groupName" validate:"required,max=200"`
	ContactType      string `json:"contactType" validate:"required,oneof=Household Business"`
	Notes            string `json:"notes" validate:"max=5000"`
	Website          string `json:"website" validate:"omitempty,max=500,http_url,excluded_unless=ContactType Business"`
	BusinessCategory string `json:"businessCategory" validate:"max=100,excluded_unless=ContactType Business"`
}

func (d *CreateGroupDTO) Normalize() {
	d.GroupName = strings.TrimSpace(d.GroupName)
	d.Website = strings.TrimSpace(d.Website)
	d.BusinessCategory = strings.TrimSpace(d.BusinessCategory)
}

func (d *CreateGroupDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	validationErrors := serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors))
	return serrors.Messages(validationErrors), false
}

// ToEntity builds the group aggregate. Household business fields are
// cleared inside NewGroup.
func (d *CreateGroupDTO) ToEntity(tenantID, createdBy uuid.UUID) Contact {
	c := NewGroup(tenantID, Type(d.ContactType), d.GroupName, createdBy)
	return c.
		WithNotes(d.Notes).
		WithBusinessFields(d.Website, d.BusinessCategory)
}

type UpdateGroupDTO struct {
	GroupName        string `json:"groupName" validate:"required,max=200"`
	ContactType      string `json:"contactType" validate:"required,oneof=Household Business"`
	Notes            string `json:"notes" validate:"max=5000"`
	Website          string `json:"website" validate:"omitempty,max=500,http_url,excluded_unless=ContactType Business"`
	BusinessCategory string `json:"businessCategory" validate:"max=100,excluded_unless=ContactType Business"`
	IsActive         *bool  `json:"isActive"`
}

func (d *UpdateGroupDTO) Normalize() {
	d.GroupName = strings.TrimSpace(d.GroupName)
	d.Website = strings.TrimSpace(d.Website)
	d.BusinessCategory = strings.TrimSpace(d.BusinessCategory)
}

func (d *UpdateGroupDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	validationErrors := serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors))
	return serrors.Messages(validationErrors), false
}

// Apply lays the update over an existing group row.
func (d *UpdateGroupDTO) Apply(existing Contact) Contact {
	active := existing.IsActive()
	if d.IsActive != nil {
		active = *d.IsActive
	}
	return existing.WithGroupDetails(Type(d.ContactType), d.GroupName, d.Notes, d.Website, d.BusinessCategory, active)
}

type CreateMemberDTO struct {
	FirstName     string `json:"firstName" validate:"required,max=100"`
	MiddleName    string `json:"middleName" validate:"max=100"`
	LastName      string `json:"lastName" validate:"max=100"`
	PreferredName string `json:"preferredName" validate:"max=100"`
	Notes         string `json:"notes" validate:"max=5000"`
	// GroupID is the target group; when empty the member lands in the
	// tenant household.
	GroupID string `json:"groupId" validate:"omitempty,uuid"`
}

func (d *CreateMemberDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.MiddleName = strings.TrimSpace(d.MiddleName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.PreferredName = strings.TrimSpace(d.PreferredName)
}

func (d *CreateMemberDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	validationErrors := serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors))
	return serrors.Messages(validationErrors), false
}

type EnsureTenantHouseholdDTO struct {
	Name string `json:"name" validate:"omitempty,max=200"`
}

func (d *EnsureTenantHouseholdDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
}

func (d *EnsureTenantHouseholdDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	validationErrors := serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors))
	return serrors.Messages(validationErrors), false
}

type LinkContactDTO struct {
	RelatedContactID string `json:"relatedContactId" validate:"required,uuid"`
	RelationshipType string `json:"relationshipType" validate:"required,max=50"`
}

func (d *LinkContactDTO) Normalize() {
	d.RelationshipType = strings.TrimSpace(d.RelationshipType)
}

func (d *LinkContactDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	validationErrors := serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors))
	return serrors.Messages(validationErrors), false
}

type MoveContactDTO struct {
	GroupID string `json:"groupId" validate:"required,uuid"`
}

func (d *MoveContactDTO) Ok() (map[string]string, bool) {
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	validationErrors := serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors))
	return serrors.Messages(validationErrors), false
}
