package timeslot

import (
	"testing"
	"time"

	"labo-backend/internal/models"
)

func TestComputeDiff(t *testing.T) {
	now := parisTime(t, "2026-03-02 10:00")
	s1 := activeSlot("s1", parisTime(t, "2026-03-02 09:00"), parisTime(t, "2026-03-02 11:00"))
	s2 := activeSlot("s2", parisTime(t, "2026-03-03 09:00"), parisTime(t, "2026-03-03 11:00"))

	t.Run("no changes yields an empty diff", func(t *testing.T) {
		diff := ComputeDiff([]models.TimeSlot{s1, s2}, []models.TimeSlot{s1, s2}, 7, now)
		if !diff.Empty() {
			t.Errorf("diff = %+v, want empty", diff)
		}
	})

	t.Run("editing the only slot yields one delete and one create", func(t *testing.T) {
		// The working set replaced the original with an id-less slot, the way a
		// reschedule of a persisted slot is expressed.
		replacement := models.TimeSlot{
			StartDate: parisTime(t, "2026-03-05 14:00"),
			EndDate:   parisTime(t, "2026-03-05 16:00"),
			Status:    models.SlotStatusActive,
			CreatedBy: 7,
			ModifiedBy: []models.SlotModification{
				{UserID: 7, Date: now, Action: models.SlotActionCreated},
			},
		}
		diff := ComputeDiff([]models.TimeSlot{s1}, []models.TimeSlot{replacement}, 7, now)

		if len(diff.ToCreate) != 1 || len(diff.ToDelete) != 1 || len(diff.ToUpdate) != 0 {
			t.Fatalf("diff = create %d / update %d / delete %d, want 1/0/1",
				len(diff.ToCreate), len(diff.ToUpdate), len(diff.ToDelete))
		}

		del := diff.ToDelete[0]
		if del.ID != "s1" {
			t.Errorf("deleted id = %q, want s1", del.ID)
		}
		if del.Status != models.SlotStatusDeleted {
			t.Errorf("deleted status = %q, want %q", del.Status, models.SlotStatusDeleted)
		}
		last := del.ModifiedBy[len(del.ModifiedBy)-1]
		if last.Action != models.SlotActionDeleted || last.UserID != 7 {
			t.Errorf("last audit entry = %+v, want deleted by 7", last)
		}
	})

	t.Run("changed bounds on a kept id go to updates", func(t *testing.T) {
		moved := cloneSlot(s1)
		moved.EndDate = moved.EndDate.Add(time.Hour)

		diff := ComputeDiff([]models.TimeSlot{s1, s2}, []models.TimeSlot{moved, s2}, 7, now)
		if len(diff.ToUpdate) != 1 || diff.ToUpdate[0].ID != "s1" {
			t.Fatalf("ToUpdate = %+v, want just s1", diff.ToUpdate)
		}
		if len(diff.ToCreate) != 0 || len(diff.ToDelete) != 0 {
			t.Errorf("unexpected creates/deletes: %+v", diff)
		}
	})

	t.Run("deleted originals are never considered", func(t *testing.T) {
		gone := cloneSlot(s2)
		gone.Status = models.SlotStatusDeleted

		diff := ComputeDiff([]models.TimeSlot{s1, gone}, []models.TimeSlot{s1}, 7, now)
		if !diff.Empty() {
			t.Errorf("diff = %+v, want empty: superseded slots must stay untouched", diff)
		}
	})

	t.Run("original slots are not mutated", func(t *testing.T) {
		original := []models.TimeSlot{cloneSlot(s1)}
		auditBefore := len(original[0].ModifiedBy)

		ComputeDiff(original, nil, 7, now)

		if original[0].Status != models.SlotStatusActive {
			t.Errorf("original status mutated to %q", original[0].Status)
		}
		if len(original[0].ModifiedBy) != auditBefore {
			t.Errorf("original audit trail mutated")
		}
	})
}

func TestReplaceAll(t *testing.T) {
	now := parisTime(t, "2026-03-02 10:00")
	s1 := activeSlot("s1", parisTime(t, "2026-03-02 09:00"), parisTime(t, "2026-03-02 11:00"))
	gone := activeSlot("s2", parisTime(t, "2026-03-03 09:00"), parisTime(t, "2026-03-03 11:00"))
	gone.Status = models.SlotStatusDeleted

	inputs := []models.TimeSlotInput{
		{StartDate: parisTime(t, "2026-03-09 09:00"), EndDate: parisTime(t, "2026-03-09 11:00")},
		{StartDate: parisTime(t, "2026-03-10 09:00"), EndDate: parisTime(t, "2026-03-10 11:00")},
	}

	diff := ReplaceAll([]models.TimeSlot{s1, gone}, inputs, 9, now)

	if len(diff.ToDelete) != 1 || diff.ToDelete[0].ID != "s1" {
		t.Errorf("ToDelete = %+v, want only the active original", diff.ToDelete)
	}
	if len(diff.ToCreate) != 2 {
		t.Fatalf("ToCreate = %d slots, want 2", len(diff.ToCreate))
	}
	for i, c := range diff.ToCreate {
		if c.ID != "" {
			t.Errorf("create[%d] carries id %q", i, c.ID)
		}
		if c.Status != models.SlotStatusActive || c.CreatedBy != 9 {
			t.Errorf("create[%d] = %+v, want active created by 9", i, c)
		}
		if len(c.ModifiedBy) != 1 || c.ModifiedBy[0].Action != models.SlotActionCreated {
			t.Errorf("create[%d] audit = %+v, want single created entry", i, c.ModifiedBy)
		}
	}
}
