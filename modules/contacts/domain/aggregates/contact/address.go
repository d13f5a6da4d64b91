package contact

import (
	"context"

	"github.com/google/uuid"
)

type Address struct {
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

// PrimaryAddressResolver supplies the effective mailing address for a
// contact, following the group address when uses_group_address is set.
// Resolution lives outside this module; callers work without one.
type PrimaryAddressResolver interface {
	PrimaryAddress(ctx context.Context, contactID uuid.UUID) (Address, bool, error)
}
