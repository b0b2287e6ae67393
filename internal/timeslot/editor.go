package timeslot

import (
	"errors"
	"fmt"
	"time"

	"labo-backend/internal/models"
	"labo-backend/internal/timeutil"
)

// Business hours advisory bounds (school day, Paris time).
const (
	BusinessDayStartHour = 8
	BusinessDayEndHour   = 19
)

var (
	// ErrLastSlot is returned when removing the only remaining slot of a
	// working set: a session must always keep at least one slot while editing.
	ErrLastSlot = errors.New("an event must keep at least one time slot")

	// ErrIndexOutOfRange is returned for slot indexes outside the working set.
	ErrIndexOutOfRange = errors.New("slot index out of range")
)

// Notice is a non-blocking advisory raised while editing slots. It is
// surfaced to the user but never fails the operation.
type Notice struct {
	SlotIndex int    `json:"slotIndex"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Notice codes
const (
	NoticeSwapped       = "times_swapped"
	NoticeBeforeOpening = "starts_before_opening"
	NoticeAfterClosing  = "ends_after_closing"
)

// SlotPatch is a partial slot update; nil fields keep the current value.
type SlotPatch struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Editor maintains the editable working set of an event's time slots during a
// form session. It mutates in memory only; persistence happens when the
// caller computes the diff against the original slots and applies it.
type Editor struct {
	slots []models.TimeSlot
}

// NewEditor seeds a working set from the event's currently active slots.
// Slots are deep-copied so the original collection stays untouched.
func NewEditor(active []models.TimeSlot) *Editor {
	slots := make([]models.TimeSlot, len(active))
	for i, s := range active {
		slots[i] = cloneSlot(s)
	}
	return &Editor{slots: slots}
}

// Slots returns the current working set.
func (e *Editor) Slots() []models.TimeSlot {
	return e.slots
}

// Len returns the number of slots in the working set.
func (e *Editor) Len() int {
	return len(e.slots)
}

// AddSlot appends a new slot seeded with the previous slot's dates as
// defaults, or a one-hour slot from now when the set is empty. The slot
// carries a `created` audit entry and no id: ids are assigned at persistence.
func (e *Editor) AddSlot(userID int, now time.Time) models.TimeSlot {
	start := now
	end := now.Add(time.Hour)
	if n := len(e.slots); n > 0 {
		start = e.slots[n-1].StartDate
		end = e.slots[n-1].EndDate
	}

	slot := models.TimeSlot{
		StartDate: start,
		EndDate:   end,
		Status:    models.SlotStatusActive,
		CreatedBy: userID,
		ModifiedBy: []models.SlotModification{
			{UserID: userID, Date: now, Action: models.SlotActionCreated},
		},
	}
	e.slots = append(e.slots, slot)
	return slot
}

// UpdateSlot merges the patch into the slot at index and appends a `modified`
// audit entry. If the merge leaves the start after the end, the two are
// auto-swapped (policy choice, not an error) with a second `modified` entry,
// and a swap notice is returned.
func (e *Editor) UpdateSlot(index int, patch SlotPatch, userID int, now time.Time) (*Notice, error) {
	if index < 0 || index >= len(e.slots) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	slot := &e.slots[index]
	if patch.StartDate != nil {
		slot.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		slot.EndDate = *patch.EndDate
	}
	appendModification(slot, userID, now, models.SlotActionModified)

	if SwapIfInverted(slot, userID, now) {
		return &Notice{
			SlotIndex: index,
			Code:      NoticeSwapped,
			Message:   "start and end times were inverted and have been swapped",
		}, nil
	}
	return nil, nil
}

// RemoveSlot drops the slot at index from the working set. Refused while only
// one slot remains. For persisted slots this is only the in-memory removal:
// the status flip to deleted happens at save time through ComputeDiff.
func (e *Editor) RemoveSlot(index int) error {
	if index < 0 || index >= len(e.slots) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if len(e.slots) <= 1 {
		return ErrLastSlot
	}
	e.slots = append(e.slots[:index], e.slots[index+1:]...)
	return nil
}

// SwapIfInverted swaps start/end when the start is strictly after the end,
// appending exactly one `modified` entry recording the swap. Returns whether
// a swap happened.
func SwapIfInverted(slot *models.TimeSlot, userID int, now time.Time) bool {
	if !slot.StartDate.After(slot.EndDate) {
		return false
	}
	slot.StartDate, slot.EndDate = slot.EndDate, slot.StartDate
	appendModification(slot, userID, now, models.SlotActionModified)
	return true
}

// BusinessHoursAdvisories returns one advisory per offending bound: a slot
// starting before 08:00 or ending after 19:00 Paris time. Advisories never
// block a save.
func BusinessHoursAdvisories(slots []models.TimeSlot) []Notice {
	var notices []Notice
	for i, s := range slots {
		start := timeutil.ToLocal(s.StartDate)
		end := timeutil.ToLocal(s.EndDate)
		if start.Hour() < BusinessDayStartHour {
			notices = append(notices, Notice{
				SlotIndex: i,
				Code:      NoticeBeforeOpening,
				Message:   fmt.Sprintf("slot %d starts before %02d:00", i, BusinessDayStartHour),
			})
		}
		if end.Hour() > BusinessDayEndHour || (end.Hour() == BusinessDayEndHour && (end.Minute() > 0 || end.Second() > 0)) {
			notices = append(notices, Notice{
				SlotIndex: i,
				Code:      NoticeAfterClosing,
				Message:   fmt.Sprintf("slot %d ends after %02d:00", i, BusinessDayEndHour),
			})
		}
	}
	return notices
}

func appendModification(slot *models.TimeSlot, userID int, now time.Time, action string) {
	// The list is created on first touch and only ever appended to.
	slot.ModifiedBy = append(slot.ModifiedBy, models.SlotModification{
		UserID: userID,
		Date:   now,
		Action: action,
	})
}

func cloneSlot(s models.TimeSlot) models.TimeSlot {
	c := s
	c.ModifiedBy = make([]models.SlotModification, len(s.ModifiedBy))
	copy(c.ModifiedBy, s.ModifiedBy)
	return c
}
