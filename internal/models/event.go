package models

import "time"

// Event types
const (
	EventTypeTP          = "TP"
	EventTypeMaintenance = "MAINTENANCE"
	EventTypeInventory   = "INVENTORY"
	EventTypeOther       = "OTHER"
)

// Event states
const (
	StatePending    = "PENDING"
	StateValidated  = "VALIDATED"
	StateCancelled  = "CANCELLED"
	StateMoved      = "MOVED"
	StateInProgress = "IN_PROGRESS"
)

// Disciplines
const (
	DisciplineChimie   = "chimie"
	DisciplinePhysique = "physique"
)

func ValidEventType(t string) bool {
	switch t {
	case EventTypeTP, EventTypeMaintenance, EventTypeInventory, EventTypeOther:
		return true
	}
	return false
}

func ValidEventState(s string) bool {
	switch s {
	case StatePending, StateValidated, StateCancelled, StateMoved, StateInProgress:
		return true
	}
	return false
}

func ValidDiscipline(d string) bool {
	return d == DisciplineChimie || d == DisciplinePhysique
}

type Event struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Type        string           `json:"type"`
	State       string           `json:"state"`
	Discipline  string           `json:"discipline"`
	CreatedBy    int             `json:"createdBy"`
	CreatorName  string          `json:"creatorName,omitempty"`  // Denormalized for display
	CreatorEmail string          `json:"creatorEmail,omitempty"` // Denormalized for ownership checks
	Remarks     string           `json:"remarks,omitempty"`     // Rich text (HTML)
	ClassID     *int             `json:"classId,omitempty"`
	RoomID      *int             `json:"roomId,omitempty"`
	Version     int              `json:"version"` // Optimistic locking counter
	TimeSlots   []TimeSlot       `json:"timeSlots"`
	Materials   []ResourceRef    `json:"materials,omitempty"`
	Chemicals   []ResourceRef    `json:"chemicals,omitempty"`    // chimie only
	Consumables []ResourceRef    `json:"consommables,omitempty"` // physique only
	Documents   []Document       `json:"files,omitempty"`
	ModifiedBy  []Modification   `json:"modifiedBy"`
	StateLog    []StateChange    `json:"stateChanger"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Modification is one touch of an event: who and when.
// The per-event trail is append-only.
type Modification struct {
	UserID int       `json:"userId"`
	Date   time.Time `json:"date"`
}

// StateChange is one append-only entry of the state transition trail.
type StateChange struct {
	ID        int       `json:"id,omitempty"`
	EventID   int       `json:"eventId,omitempty"`
	UserID    int       `json:"userId"`
	FromState string    `json:"fromState"`
	ToState   string    `json:"toState"`
	Reason    string    `json:"reason,omitempty"`
	Date      time.Time `json:"date"`
}

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Discipline  string            `json:"discipline"`
	Remarks     string            `json:"remarks"`
	ClassID     *int              `json:"classId"`
	RoomID      *int              `json:"roomId"`
	TimeSlots   []TimeSlotInput   `json:"timeSlots"`
	Materials   []ResourceInput   `json:"materials"`
	Chemicals   []ResourceInput   `json:"chemicals"`
	Consumables []ResourceInput   `json:"consommables"`
	PresetID    *int              `json:"presetId"`
}

// UpdateEventRequest represents the request body for updating an event
type UpdateEventRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Remarks     string          `json:"remarks"`
	ClassID     *int            `json:"classId"`
	RoomID      *int            `json:"roomId"`
	TimeSlots   []TimeSlotInput `json:"timeSlots"`
	Materials   []ResourceInput `json:"materials"`
	Chemicals   []ResourceInput `json:"chemicals"`
	Consumables []ResourceInput `json:"consommables"`
	Version     int             `json:"version"`
}

// MoveEventRequest is the body of PUT /api/calendrier/move-event
type MoveEventRequest struct {
	State               string          `json:"state"`
	EventID             int             `json:"eventId"`
	TimeSlots           []TimeSlotInput `json:"timeSlots"`
	Reason              string          `json:"reason"`
	IsOwnerModification bool            `json:"isOwnerModification"`
}

// StateChangeRequest is the body of PUT /api/calendrier/state-change
type StateChangeRequest struct {
	State  string `json:"state"`
	Reason string `json:"reason"`
}

// ConfirmModificationRequest is the body of PUT /api/calendrier/confirm-modification
type ConfirmModificationRequest struct {
	ModificationID int    `json:"modificationId"`
	Action         string `json:"action"` // confirm or reject
}

// EventMutationResponse wraps an updated event plus its pending-proposal flag
type EventMutationResponse struct {
	UpdatedEvent *Event `json:"updatedEvent"`
	IsPending    bool   `json:"isPending"`
}
