package timeslot

import (
	"time"

	"labo-backend/internal/models"
)

// Diff is the persisted delta between an event's original active slots and
// the working set at save time.
type Diff struct {
	ToCreate []models.TimeSlot // no id yet, inserted as active
	ToUpdate []models.TimeSlot // same id, changed bounds
	ToDelete []models.TimeSlot // superseded originals, status flipped to deleted
}

// Empty reports whether the diff carries no changes.
func (d Diff) Empty() bool {
	return len(d.ToCreate) == 0 && len(d.ToUpdate) == 0 && len(d.ToDelete) == 0
}

// ComputeDiff compares the original active slots with the edited working set:
//   - originals absent from current by id are marked deleted, keeping the row
//     and appending a `deleted` audit entry;
//   - slots present in both with changed start/end go to ToUpdate;
//   - id-less slots in current are net-new.
//
// Nothing is ever removed from memory or storage; supersession is a status
// flip so full history stays reconstructable.
func ComputeDiff(original, current []models.TimeSlot, userID int, now time.Time) Diff {
	var diff Diff

	byID := make(map[string]models.TimeSlot, len(current))
	for _, s := range current {
		if s.ID != "" {
			byID[s.ID] = s
		} else {
			diff.ToCreate = append(diff.ToCreate, s)
		}
	}

	for _, orig := range original {
		if orig.Status != models.SlotStatusActive {
			continue
		}
		cur, ok := byID[orig.ID]
		if !ok {
			del := cloneSlot(orig)
			del.Status = models.SlotStatusDeleted
			appendModification(&del, userID, now, models.SlotActionDeleted)
			diff.ToDelete = append(diff.ToDelete, del)
			continue
		}
		if !cur.StartDate.Equal(orig.StartDate) || !cur.EndDate.Equal(orig.EndDate) {
			diff.ToUpdate = append(diff.ToUpdate, cur)
		}
	}

	return diff
}

// ReplaceAll builds the diff that swaps the whole active set for the given
// replacement slots: every original active slot is superseded and every
// replacement inserted as new. Used when applying an approved move proposal.
func ReplaceAll(original []models.TimeSlot, replacement []models.TimeSlotInput, userID int, now time.Time) Diff {
	var diff Diff
	for _, orig := range original {
		if orig.Status != models.SlotStatusActive {
			continue
		}
		del := cloneSlot(orig)
		del.Status = models.SlotStatusDeleted
		appendModification(&del, userID, now, models.SlotActionDeleted)
		diff.ToDelete = append(diff.ToDelete, del)
	}
	for _, in := range replacement {
		diff.ToCreate = append(diff.ToCreate, models.TimeSlot{
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			Status:    models.SlotStatusActive,
			CreatedBy: userID,
			ModifiedBy: []models.SlotModification{
				{UserID: userID, Date: now, Action: models.SlotActionCreated},
			},
		})
	}
	return diff
}
