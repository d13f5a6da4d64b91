package contact

import (
	"time"

	"github.com/google/uuid"
)

func NewCreatedEvent(result Contact, actorID uuid.UUID) *CreatedEvent {
	return &CreatedEvent{
		TenantID:  result.TenantID(),
		ActorID:   actorID,
		Result:    result,
		Timestamp: time.Now(),
	}
}

func NewUpdatedEvent(old, result Contact, actorID uuid.UUID) *UpdatedEvent {
	return &UpdatedEvent{
		TenantID:  result.TenantID(),
		ActorID:   actorID,
		Old:       old,
		Result:    result,
		Timestamp: time.Now(),
	}
}

func NewDeletedEvent(deleted Contact, actorID uuid.UUID) *DeletedEvent {
	return &DeletedEvent{
		TenantID:  deleted.TenantID(),
		ActorID:   actorID,
		Result:    deleted,
		Timestamp: time.Now(),
	}
}

func NewGroupDeletedEvent(deleted Contact, reassignedTo uuid.UUID, reassignedMembers int64, actorID uuid.UUID) *GroupDeletedEvent {
	return &GroupDeletedEvent{
		TenantID:          deleted.TenantID(),
		ActorID:           actorID,
		Result:            deleted,
		ReassignedTo:      reassignedTo,
		ReassignedMembers: reassignedMembers,
		Timestamp:         time.Now(),
	}
}

func NewMovedEvent(moved Contact, fromGroupID, toGroupID uuid.UUID, actorID uuid.UUID) *MovedEvent {
	return &MovedEvent{
		TenantID:    moved.TenantID(),
		ActorID:     actorID,
		Result:      moved,
		FromGroupID: fromGroupID,
		ToGroupID:   toGroupID,
		Timestamp:   time.Now(),
	}
}

type CreatedEvent struct {
	TenantID  uuid.UUID
	ActorID   uuid.UUID
	Result    Contact
	Timestamp time.Time
}

type UpdatedEvent struct {
	TenantID  uuid.UUID
	ActorID   uuid.UUID
	Old       Contact
	Result    Contact
	Timestamp time.Time
}

type DeletedEvent struct {
	TenantID  uuid.UUID
	ActorID   uuid.UUID
	Result    Contact
	Timestamp time.Time
}

// GroupDeletedEvent records a group removal together with the cascade
// outcome: where the orphaned members went and how many there were.
type GroupDeletedEvent struct {
	TenantID          uuid.UUID
	ActorID           uuid.UUID
	Result            Contact
	ReassignedTo      uuid.UUID
	ReassignedMembers int64
	Timestamp         time.Time
}

type MovedEvent struct {
	TenantID    uuid.UUID
	ActorID     uuid.UUID
	Result      Contact
	FromGroupID uuid.UUID
	ToGroupID   uuid.UUID
	Timestamp   time.Time
}
