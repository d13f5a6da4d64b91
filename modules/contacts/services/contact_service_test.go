package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/homewardhq/homeward/modules/contacts/domain/aggregates/contact"
	"github.com/homewardhq/homeward/modules/contacts/services"
	"github.com/homewardhq/homeward/pkg/eventbus"
	"github.com/homewardhq/homeward/pkg/repo"
)

func newContactService(r contact.Repository) (*services.ContactService, eventbus.EventBus) {
	bus := eventbus.NewEventPublisher(nil)
	return services.NewContactService(r, bus), bus
}

func TestCreateMember_InExplicitGroup(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	seedHousehold(t, groups, tenantID)

	group, err := groups.CreateGroup(testContext(tenantID), &contact.CreateGroupDTO{
		GroupName:   "Acme",
		ContactType: "Business",
	})
	require.NoError(t, err)

	created, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{
		FirstName: "Jane",
		LastName:  "Doe",
		GroupID:   group.ID().String(),
	})
	require.NoError(t, err)
	require.False(t, created.IsGroup())
	require.Equal(t, group.ID(), created.ParentContactID())
	require.Equal(t, "Jane Doe", created.DisplayName())
}

func TestCreateMember_DefaultsToTenantHousehold(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	household := seedHousehold(t, groups, tenantID)

	created, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{
		FirstName: "John",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.Equal(t, household.ID(), created.ParentContactID())
}

func TestCreateMember_MissingGroup(t *testing.T) {
	fake := newFakeContactRepository()
	svc, _ := newContactService(fake)

	_, err := svc.CreateMember(testContext(uuid.New()), &contact.CreateMemberDTO{
		FirstName: "Jane",
		GroupID:   uuid.NewString(),
	})
	require.ErrorIs(t, err, contact.ErrNotFound)
}

func TestCreateMember_TargetIsNotAGroup(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	household := seedHousehold(t, groups, tenantID)

	member, err := fake.Create(
		testContext(tenantID),
		contact.NewMember(tenantID, "Jane", "Doe", household.ID(), uuid.Nil),
	)
	require.NoError(t, err)

	_, err = svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{
		FirstName: "John",
		GroupID:   member.ID().String(),
	})
	require.ErrorIs(t, err, contact.ErrNotGroup)
}

func TestMoveContactToGroup(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, bus := newContactService(fake)
	tenantID := uuid.New()
	household := seedHousehold(t, groups, tenantID)

	group, err := groups.CreateGroup(testContext(tenantID), &contact.CreateGroupDTO{
		GroupName:   "Acme",
		ContactType: "Business",
	})
	require.NoError(t, err)

	member, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	var moves []*contact.MovedEvent
	bus.Subscribe(func(evt *contact.MovedEvent) {
		moves = append(moves, evt)
	})

	moved, err := svc.MoveContactToGroup(testContext(tenantID), member.ID(), group.ID())
	require.NoError(t, err)
	require.Equal(t, group.ID(), moved.ParentContactID())

	require.Len(t, moves, 1)
	require.Equal(t, household.ID(), moves[0].FromGroupID)
	require.Equal(t, group.ID(), moves[0].ToGroupID)
}

func TestMoveContactToGroup_GroupContact(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	seedHousehold(t, groups, tenantID)

	a, err := groups.CreateGroup(testContext(tenantID), &contact.CreateGroupDTO{
		GroupName:   "A",
		ContactType: "Business",
	})
	require.NoError(t, err)
	b, err := groups.CreateGroup(testContext(tenantID), &contact.CreateGroupDTO{
		GroupName:   "B",
		ContactType: "Business",
	})
	require.NoError(t, err)

	_, err = svc.MoveContactToGroup(testContext(tenantID), a.ID(), b.ID())
	require.ErrorIs(t, err, contact.ErrGroupMove)
}

func TestMoveContactToGroup_TargetIsMember(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	seedHousehold(t, groups, tenantID)

	first, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "Jane"})
	require.NoError(t, err)
	second, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "John"})
	require.NoError(t, err)

	_, err = svc.MoveContactToGroup(testContext(tenantID), first.ID(), second.ID())
	require.ErrorIs(t, err, contact.ErrNotGroup)
}

func TestMoveContactToGroup_TargetMissing(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	seedHousehold(t, groups, tenantID)

	member, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "Jane"})
	require.NoError(t, err)

	_, err = svc.MoveContactToGroup(testContext(tenantID), member.ID(), uuid.New())
	require.ErrorIs(t, err, contact.ErrNotFound)
}

func TestDelete_Member(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	seedHousehold(t, groups, tenantID)

	member, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "Jane"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(testContext(tenantID), member.ID()))

	_, err = svc.GetByID(testContext(tenantID), member.ID())
	require.ErrorIs(t, err, contact.ErrNotFound)
}

func TestDelete_GroupGoesThroughGroupEndpoint(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	household := seedHousehold(t, groups, tenantID)

	err := svc.Delete(testContext(tenantID), household.ID())
	require.ErrorIs(t, err, contact.ErrGroupDelete)
}

func TestGetPaginated_FiltersByGroup(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	seedHousehold(t, groups, tenantID)

	group, err := groups.CreateGroup(testContext(tenantID), &contact.CreateGroupDTO{
		GroupName:   "Acme",
		ContactType: "Business",
	})
	require.NoError(t, err)

	_, err = svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "Jane", GroupID: group.ID().String()})
	require.NoError(t, err)
	_, err = svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "John"})
	require.NoError(t, err)

	items, total, err := svc.GetPaginatedWithTotal(testContext(tenantID), &contact.FindParams{
		Filters: []contact.Filter{{
			Column: contact.FieldParentContactID,
			Filter: repo.Eq(group.ID()),
		}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "Jane", items[0].FirstName())
}

func TestGetPaginated_MemberGroupSwitch(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	household := seedHousehold(t, groups, tenantID)

	member, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "Jane"})
	require.NoError(t, err)

	membersOnly := false
	items, total, err := svc.GetPaginatedWithTotal(testContext(tenantID), &contact.FindParams{IsGroup: &membersOnly})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, member.ID(), items[0].ID())
	require.False(t, items[0].IsGroup(), "member search must not surface group rows")

	groupsOnly := true
	items, total, err = svc.GetPaginatedWithTotal(testContext(tenantID), &contact.FindParams{IsGroup: &groupsOnly})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, household.ID(), items[0].ID())

	items, total, err = svc.GetPaginatedWithTotal(testContext(tenantID), &contact.FindParams{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
}

func TestLinkContacts_FilterByRelationship(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	seedHousehold(t, groups, tenantID)

	jane, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "Jane"})
	require.NoError(t, err)
	john, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "John"})
	require.NoError(t, err)
	_, err = svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "Bystander"})
	require.NoError(t, err)

	err = svc.LinkContacts(testContext(tenantID), jane.ID(), &contact.LinkContactDTO{
		RelatedContactID: john.ID().String(),
		RelationshipType: "EmergencyContact",
	})
	require.NoError(t, err)

	items, err := svc.GetPaginated(testContext(tenantID), &contact.FindParams{
		RelatedToContactID: john.ID(),
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, jane.ID(), items[0].ID())

	items, err = svc.GetPaginated(testContext(tenantID), &contact.FindParams{
		RelatedToContactID: john.ID(),
		RelationshipType:   "EmergencyContact",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = svc.GetPaginated(testContext(tenantID), &contact.FindParams{
		RelatedToContactID: john.ID(),
		RelationshipType:   "Friend",
	})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestLinkContacts_MissingRelatedContact(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	seedHousehold(t, groups, tenantID)

	jane, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "Jane"})
	require.NoError(t, err)

	err = svc.LinkContacts(testContext(tenantID), jane.ID(), &contact.LinkContactDTO{
		RelatedContactID: uuid.NewString(),
		RelationshipType: "Friend",
	})
	require.ErrorIs(t, err, contact.ErrNotFound)
}

func TestUnlinkContacts(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()
	seedHousehold(t, groups, tenantID)

	jane, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "Jane"})
	require.NoError(t, err)
	john, err := svc.CreateMember(testContext(tenantID), &contact.CreateMemberDTO{FirstName: "John"})
	require.NoError(t, err)

	dto := &contact.LinkContactDTO{
		RelatedContactID: john.ID().String(),
		RelationshipType: "Friend",
	}
	require.NoError(t, svc.LinkContacts(testContext(tenantID), jane.ID(), dto))
	require.NoError(t, svc.UnlinkContacts(testContext(tenantID), jane.ID(), dto))

	items, err := svc.GetPaginated(testContext(tenantID), &contact.FindParams{
		RelatedToContactID: john.ID(),
	})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestGetByID_TenantScoping(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantA := uuid.New()
	tenantB := uuid.New()
	household := seedHousehold(t, groups, tenantA)

	_, err := svc.GetByID(testContext(tenantB), household.ID())
	require.ErrorIs(t, err, contact.ErrNotFound)
}

func TestHasContacts(t *testing.T) {
	fake := newFakeContactRepository()
	groups, _ := newGroupService(fake)
	svc, _ := newContactService(fake)
	tenantID := uuid.New()

	has, err := svc.HasContacts(testContext(tenantID))
	require.NoError(t, err)
	require.False(t, has)

	seedHousehold(t, groups, tenantID)

	has, err = svc.HasContacts(testContext(tenantID))
	require.NoError(t, err)
	require.True(t, has)
}

func TestPrimaryAddress_NoResolver(t *testing.T) {
	fake := newFakeContactRepository()
	svc, _ := newContactService(fake)

	_, ok, err := svc.PrimaryAddress(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, ok)
}

type staticResolver struct {
	addr contact.Address
}

func (r staticResolver) PrimaryAddress(_ context.Context, _ uuid.UUID) (contact.Address, bool, error) {
	return r.addr, true, nil
}

func TestPrimaryAddress_WithResolver(t *testing.T) {
	fake := newFakeContactRepository()
	svc, _ := newContactService(fake)
	svc.SetAddressResolver(staticResolver{addr: contact.Address{City: "Oslo"}})

	addr, ok, err := svc.PrimaryAddress(context.Background(), uuid.New())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Oslo", addr.City)
}
