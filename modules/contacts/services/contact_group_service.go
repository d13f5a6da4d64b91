package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/homewardhq/homeward/modules/contacts/domain/aggregates/contact"
	"github.com/homewardhq/homeward/pkg/composables"
	"github.com/homewardhq/homeward/pkg/eventbus"
)

const defaultHouseholdName = "Household"

// ContactGroupService owns the group side of the contact tree: group CRUD,
// the tenant household lifecycle, and the cascade that keeps members attached
// when a group goes away.
type ContactGroupService struct {
	repo      contact.Repository
	publisher eventbus.EventBus
}

func NewContactGroupService(repo contact.Repository, publisher eventbus.EventBus) *ContactGroupService {
	return &ContactGroupService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListGroups returns group summaries with the total group count for the
// tenant.
func (s *ContactGroupService) ListGroups(ctx context.Context, params *contact.GroupFindParams) ([]contact.GroupSummary, int64, error) {
	summaries, err := s.repo.GetGroupSummaries(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountGroups(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

// GetGroupByID returns the group with the given id. A plain member contact
// under that id yields contact.ErrNotGroup.
func (s *ContactGroupService) GetGroupByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	return s.repo.GetGroupByID(ctx, id)
}

// GetTenantHousehold returns the tenant's root household group.
func (s *ContactGroupService) GetTenantHousehold(ctx context.Context) (contact.Contact, error) {
	return s.repo.GetTenantHousehold(ctx)
}

// CreateGroup creates a new top-level group.
func (s *ContactGroupService) CreateGroup(ctx context.Context, dto *contact.CreateGroupDTO) (contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	actorID, _ := composables.UseUserID(ctx)

	entity := dto.ToEntity(tenantID, actorID)

	created, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (contact.Contact, error) {
		return s.repo.Create(txCtx, entity)
	})
	if err != nil {
		return contact.Contact{}, err
	}

	s.publisher.Publish(contact.NewCreatedEvent(created, actorID))

	return created, nil
}

// UpdateGroup applies the update to an existing group. The tenant-household
// flag and the parent link are never writable through this path.
func (s *ContactGroupService) UpdateGroup(ctx context.Context, id uuid.UUID, dto *contact.UpdateGroupDTO) (contact.Contact, error) {
	actorID, _ := composables.UseUserID(ctx)

	var old contact.Contact
	updated, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (contact.Contact, error) {
		var err error
		old, err = s.repo.GetGroupByID(txCtx, id)
		if err != nil {
			return contact.Contact{}, err
		}
		return s.repo.Update(txCtx, dto.Apply(old))
	})
	if err != nil {
		return contact.Contact{}, err
	}

	s.publisher.Publish(contact.NewUpdatedEvent(old, updated, actorID))

	return updated, nil
}

// DeleteGroup removes a group and reattaches its members to the tenant
// household in the same transaction. The household itself cannot be deleted.
func (s *ContactGroupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	actorID, _ := composables.UseUserID(ctx)

	var deleted contact.Contact
	var householdID uuid.UUID
	var reassigned int64

	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.repo.GetGroupByID(txCtx, id)
		if err != nil {
			return err
		}
		if deleted.IsTenantHousehold() {
			return contact.ErrTenantHouseholdProtected
		}

		household, err := s.repo.GetTenantHousehold(txCtx)
		if errors.Is(err, contact.ErrNoTenantHousehold) {
			return errors.Wrap(contact.ErrHouseholdInvariant, "cannot reassign members")
		}
		if err != nil {
			return errors.Wrap(err, "failed to resolve tenant household for member reassignment")
		}
		householdID = household.ID()

		reassigned, err = s.repo.ReassignMembers(txCtx, id, householdID)
		if err != nil {
			return err
		}

		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(contact.NewGroupDeletedEvent(deleted, householdID, reassigned, actorID))

	return nil
}

// EnsureTenantHousehold returns the tenant household, creating it on first
// use. When a name is supplied and differs from the stored one, the group is
// renamed without counting as an edit. Concurrent first calls converge: the
// loser of the unique-index race re-reads the winner's row.
func (s *ContactGroupService) EnsureTenantHousehold(ctx context.Context, name string) (contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	actorID, _ := composables.UseUserID(ctx)

	if name == "" {
		name = defaultHouseholdName
	}

	existing, err := s.repo.GetTenantHousehold(ctx)
	if err == nil {
		return s.renameHouseholdIfNeeded(ctx, existing, name)
	}
	if !errors.Is(err, contact.ErrNoTenantHousehold) {
		return contact.Contact{}, err
	}

	entity := contact.NewGroup(tenantID, contact.TypeHousehold, name, actorID).WithTenantHousehold()

	created, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (contact.Contact, error) {
		return s.repo.Create(txCtx, entity)
	})
	if err == nil {
		s.publisher.Publish(contact.NewCreatedEvent(created, actorID))
		return created, nil
	}
	if !errors.Is(err, contact.ErrHouseholdExists) {
		return contact.Contact{}, err
	}

	// Lost the race: another request created the household first.
	winner, err := s.repo.GetTenantHousehold(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	return s.renameHouseholdIfNeeded(ctx, winner, name)
}

func (s *ContactGroupService) renameHouseholdIfNeeded(ctx context.Context, household contact.Contact, name string) (contact.Contact, error) {
	if household.GroupName() == name {
		return household, nil
	}
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		return s.repo.RenameGroup(txCtx, household.ID(), name)
	})
	if err != nil {
		return contact.Contact{}, err
	}
	return household.WithGroupName(name), nil
}
