package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/homewardhq/homeward/modules/contacts/domain/aggregates/contact"
	"github.com/homewardhq/homeward/modules/contacts/presentation/viewmodels"
)

func ContactToViewModel(entity contact.Contact) viewmodels.Contact {
	groupID := ""
	if entity.ParentContactID() != uuid.Nil {
		groupID = entity.ParentContactID().String()
	}
	return viewmodels.Contact{
		ID:                entity.ID().String(),
		FirstName:         entity.FirstName(),
		MiddleName:        entity.MiddleName(),
		LastName:          entity.LastName(),
		PreferredName:     entity.PreferredName(),
		DisplayName:       entity.DisplayName(),
		Notes:             entity.Notes(),
		CompanyName:       entity.CompanyName(),
		ContactType:       string(entity.ContactType()),
		IsGroup:           entity.IsGroup(),
		IsTenantHousehold: entity.IsTenantHousehold(),
		UsesGroupAddress:  entity.UsesGroupAddress(),
		Website:           entity.Website(),
		BusinessCategory:  entity.BusinessCategory(),
		GroupID:           groupID,
		IsActive:          entity.IsActive(),
		CreatedAt:         entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:         entity.UpdatedAt().Format(time.RFC3339),
	}
}

func ContactToDetailViewModel(entity contact.Contact, address *contact.Address) viewmodels.ContactDetail {
	detail := viewmodels.ContactDetail{Contact: ContactToViewModel(entity)}
	if address != nil {
		detail.PrimaryAddress = &viewmodels.Address{
			Line1:      address.Line1,
			Line2:      address.Line2,
			City:       address.City,
			Region:     address.Region,
			PostalCode: address.PostalCode,
			Country:    address.Country,
		}
	}
	return detail
}

func GroupSummaryToViewModel(summary contact.GroupSummary) viewmodels.GroupSummary {
	tagNames := summary.TagNames
	if tagNames == nil {
		tagNames = []string{}
	}
	tagColors := summary.TagColors
	if tagColors == nil {
		tagColors = []string{}
	}
	return viewmodels.GroupSummary{
		Contact:     ContactToViewModel(summary.Contact),
		MemberCount: summary.MemberCount,
		TagNames:    tagNames,
		TagColors:   tagColors,
	}
}
