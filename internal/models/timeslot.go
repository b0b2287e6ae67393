package models

import "time"

// Time slot status
const (
	SlotStatusActive  = "active"
	SlotStatusDeleted = "deleted"
)

// Slot modification actions
const (
	SlotActionCreated     = "created"
	SlotActionModified    = "modified"
	SlotActionDeleted     = "deleted"
	SlotActionInvalidated = "invalidated"
	SlotActionApproved    = "approved"
	SlotActionRejected    = "rejected"
	SlotActionRestored    = "restored"
)

// TimeSlot is one concrete start/end interval of an event. A persisted slot is
// never physically removed: supersession flips status to deleted and keeps the
// row, so history is reconstructable at any point.
type TimeSlot struct {
	ID         string             `json:"id"`
	EventID    int                `json:"eventId,omitempty"`
	StartDate  time.Time          `json:"startDate"`
	EndDate    time.Time          `json:"endDate"`
	Status     string             `json:"status"`
	CreatedBy  int                `json:"createdBy"`
	ModifiedBy []SlotModification `json:"modifiedBy"`
	CreatedAt  time.Time          `json:"createdAt,omitempty"`
}

// SlotModification is one append-only audit entry on a slot.
type SlotModification struct {
	UserID int       `json:"userId"`
	Date   time.Time `json:"date"`
	Action string    `json:"action"`
}

// TimeSlotInput is the wire form of a slot inside create/update/move requests.
// An empty ID marks a net-new slot.
type TimeSlotInput struct {
	ID        string    `json:"id,omitempty"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// SlotProposal holds replacement slots proposed by a non-creator, awaiting
// approve/reject by someone with validation rights. At most one pending
// proposal exists per event.
type SlotProposal struct {
	ID         int        `json:"id"`
	EventID    int        `json:"eventId"`
	ProposedBy int        `json:"proposedBy"`
	Slots      []TimeSlot `json:"slots"`
	Reason     string     `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
