package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/homewardhq/homeward/modules/contacts/domain/aggregates/contact"
	"github.com/homewardhq/homeward/pkg/composables"
	"github.com/homewardhq/homeward/pkg/eventbus"
)

// ContactService handles member contacts: listing, creation, moves between
// groups, and removal.
type ContactService struct {
	repo      contact.Repository
	publisher eventbus.EventBus
	addresses contact.PrimaryAddressResolver
}

func NewContactService(repo contact.Repository, publisher eventbus.EventBus) *ContactService {
	return &ContactService{
		repo:      repo,
		publisher: publisher,
	}
}

// SetAddressResolver attaches an address backend. Without one, address
// lookups report no address.
func (s *ContactService) SetAddressResolver(resolver contact.PrimaryAddressResolver) {
	s.addresses = resolver
}

// PrimaryAddress resolves the effective mailing address of a contact.
func (s *ContactService) PrimaryAddress(ctx context.Context, id uuid.UUID) (contact.Address, bool, error) {
	if s.addresses == nil {
		return contact.Address{}, false, nil
	}
	return s.addresses.PrimaryAddress(ctx, id)
}

func (s *ContactService) Count(ctx context.Context, params *contact.FindParams) (int64, error) {
	return s.repo.Count(ctx, params)
}

func (s *ContactService) GetPaginated(ctx context.Context, params *contact.FindParams) ([]contact.Contact, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *ContactService) GetPaginatedWithTotal(ctx context.Context, params *contact.FindParams) ([]contact.Contact, int64, error) {
	contacts, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

// HasContacts reports whether the tenant has any contact rows, used by
// onboarding to decide whether to seed the household.
func (s *ContactService) HasContacts(ctx context.Context) (bool, error) {
	return s.repo.HasContacts(ctx)
}

// CreateMember creates a person contact inside a group. When the DTO names no
// group the member lands in the tenant household.
func (s *ContactService) CreateMember(ctx context.Context, dto *contact.CreateMemberDTO) (contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	actorID, _ := composables.UseUserID(ctx)

	created, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (contact.Contact, error) {
		var group contact.Contact
		if dto.GroupID != "" {
			groupID, err := uuid.Parse(dto.GroupID)
			if err != nil {
				return contact.Contact{}, contact.ErrNotFound
			}
			group, err = s.repo.GetGroupByID(txCtx, groupID)
			if err != nil {
				return contact.Contact{}, err
			}
		} else {
			var err error
			group, err = s.repo.GetTenantHousehold(txCtx)
			if err != nil {
				return contact.Contact{}, err
			}
		}

		entity := contact.NewMember(tenantID, dto.FirstName, dto.LastName, group.ID(), actorID).
			WithPersonNames(dto.FirstName, dto.MiddleName, dto.LastName, dto.PreferredName).
			WithNotes(dto.Notes)
		return s.repo.Create(txCtx, entity)
	})
	if err != nil {
		return contact.Contact{}, err
	}

	s.publisher.Publish(contact.NewCreatedEvent(created, actorID))

	return created, nil
}

// MoveContactToGroup reattaches a member to another group. Groups themselves
// are top-level and cannot be moved.
func (s *ContactService) MoveContactToGroup(ctx context.Context, contactID, groupID uuid.UUID) (contact.Contact, error) {
	actorID, _ := composables.UseUserID(ctx)

	var fromGroupID uuid.UUID
	moved, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (contact.Contact, error) {
		entity, err := s.repo.GetByID(txCtx, contactID)
		if err != nil {
			return contact.Contact{}, err
		}
		if entity.IsGroup() {
			return contact.Contact{}, contact.ErrGroupMove
		}

		if _, err := s.repo.GetGroupByID(txCtx, groupID); err != nil {
			return contact.Contact{}, err
		}

		fromGroupID = entity.ParentContactID()
		return s.repo.Update(txCtx, entity.WithParent(groupID))
	})
	if err != nil {
		return contact.Contact{}, err
	}

	s.publisher.Publish(contact.NewMovedEvent(moved, fromGroupID, groupID, actorID))

	return moved, nil
}

// LinkContacts records a typed relationship between two contacts of the
// tenant. Both sides must exist; linking twice is a no-op.
func (s *ContactService) LinkContacts(ctx context.Context, contactID uuid.UUID, dto *contact.LinkContactDTO) error {
	relatedID, err := uuid.Parse(dto.RelatedContactID)
	if err != nil {
		return contact.ErrNotFound
	}

	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, contactID); err != nil {
			return err
		}
		if _, err := s.repo.GetByID(txCtx, relatedID); err != nil {
			return err
		}
		return s.repo.AddRelationship(txCtx, contactID, relatedID, dto.RelationshipType)
	})
}

// UnlinkContacts removes a previously recorded relationship.
func (s *ContactService) UnlinkContacts(ctx context.Context, contactID uuid.UUID, dto *contact.LinkContactDTO) error {
	relatedID, err := uuid.Parse(dto.RelatedContactID)
	if err != nil {
		return contact.ErrNotFound
	}

	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, contactID); err != nil {
			return err
		}
		return s.repo.RemoveRelationship(txCtx, contactID, relatedID, dto.RelationshipType)
	})
}

// Delete removes a member contact. Group rows must go through
// ContactGroupService.DeleteGroup so the member cascade runs.
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	actorID, _ := composables.UseUserID(ctx)

	var deleted contact.Contact
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if deleted.IsGroup() {
			return contact.ErrGroupDelete
		}
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(contact.NewDeletedEvent(deleted, actorID))

	return nil
}
