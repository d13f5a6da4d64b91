package contact_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/homewardhq/homeward/modules/contacts/domain/aggregates/contact"
)

func TestNewGroup_HouseholdClearsBusinessFields(t *testing.T) {
	c := contact.NewGroup(uuid.New(), contact.TypeHousehold, "The Smiths", uuid.Nil).
		WithBusinessFields("https://smiths.example.com", "Plumber")

	require.Empty(t, c.Website())
	require.Empty(t, c.BusinessCategory())
	require.True(t, c.IsGroup())
	require.Equal(t, "The Smiths", c.GroupName())
}

func TestNewGroup_BusinessKeepsBusinessFields(t *testing.T) {
	c := contact.NewGroup(uuid.New(), contact.TypeBusiness, "Acme", uuid.Nil).
		WithBusinessFields("https://acme.example.com", "Plumber")

	require.Equal(t, "https://acme.example.com", c.Website())
	require.Equal(t, "Plumber", c.BusinessCategory())
}

func TestWithGroupDetails_SwitchToHouseholdDropsBusinessFields(t *testing.T) {
	c := contact.NewGroup(uuid.New(), contact.TypeBusiness, "Acme", uuid.Nil).
		WithBusinessFields("https://acme.example.com", "Plumber")

	c = c.WithGroupDetails(contact.TypeHousehold, "Acme Family", "", "https://acme.example.com", "Plumber", true)
	require.Equal(t, contact.TypeHousehold, c.ContactType())
	require.Empty(t, c.Website())
	require.Empty(t, c.BusinessCategory())
}

func TestNewMember_IsNotAGroup(t *testing.T) {
	parent := uuid.New()
	c := contact.NewMember(uuid.New(), "Jane", "Doe", parent, uuid.Nil)

	require.False(t, c.IsGroup())
	require.Equal(t, parent, c.ParentContactID())
	require.True(t, c.IsActive())
}

func TestDisplayName(t *testing.T) {
	tenantID := uuid.New()

	group := contact.NewGroup(tenantID, contact.TypeBusiness, "Acme", uuid.Nil)
	require.Equal(t, "Acme", group.DisplayName())

	member := contact.NewMember(tenantID, "Jane", "Doe", uuid.New(), uuid.Nil)
	require.Equal(t, "Jane Doe", member.DisplayName())

	preferred := member.WithPersonNames("Jane", "", "Doe", "JD")
	require.Equal(t, "JD", preferred.DisplayName())
}

func TestFullName_SkipsEmptyParts(t *testing.T) {
	member := contact.NewMember(uuid.New(), "Jane", "", uuid.New(), uuid.Nil).
		WithPersonNames("Jane", "Q", "Doe", "")
	require.Equal(t, "Jane Q Doe", member.FullName())

	solo := contact.NewMember(uuid.New(), "Cher", "", uuid.New(), uuid.Nil)
	require.Equal(t, "Cher", solo.FullName())
}

func TestTypeValid(t *testing.T) {
	require.True(t, contact.TypeHousehold.Valid())
	require.True(t, contact.TypeBusiness.Valid())
	require.False(t, contact.Type("Charity").Valid())
	require.False(t, contact.Type("").Valid())
}

func TestWithTenantHousehold(t *testing.T) {
	c := contact.NewGroup(uuid.New(), contact.TypeHousehold, "Household", uuid.Nil)
	require.False(t, c.IsTenantHousehold())
	require.True(t, c.WithTenantHousehold().IsTenantHousehold())
}

func TestWithParent(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	c := contact.NewMember(uuid.New(), "Jane", "Doe", first, uuid.Nil)
	require.Equal(t, second, c.WithParent(second).ParentContactID())
	// The original value is untouched.
	require.Equal(t, first, c.ParentContactID())
}
