package timeslot

import (
	"errors"
	"testing"
	"time"

	"labo-backend/internal/models"
	"labo-backend/internal/timeutil"
)

func parisTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, timeutil.Paris)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func activeSlot(id string, start, end time.Time) models.TimeSlot {
	return models.TimeSlot{
		ID:        id,
		StartDate: start,
		EndDate:   end,
		Status:    models.SlotStatusActive,
		CreatedBy: 1,
		ModifiedBy: []models.SlotModification{
			{UserID: 1, Date: start.Add(-24 * time.Hour), Action: models.SlotActionCreated},
		},
	}
}

func TestAddSlot(t *testing.T) {
	now := parisTime(t, "2026-03-02 10:00")

	t.Run("empty set seeds a one-hour slot from now", func(t *testing.T) {
		e := NewEditor(nil)
		slot := e.AddSlot(7, now)

		if !slot.StartDate.Equal(now) {
			t.Errorf("StartDate = %v, want %v", slot.StartDate, now)
		}
		if !slot.EndDate.Equal(now.Add(time.Hour)) {
			t.Errorf("EndDate = %v, want %v", slot.EndDate, now.Add(time.Hour))
		}
		if slot.ID != "" {
			t.Errorf("new slot must not carry an id, got %q", slot.ID)
		}
		if len(slot.ModifiedBy) != 1 || slot.ModifiedBy[0].Action != models.SlotActionCreated {
			t.Errorf("expected single created entry, got %+v", slot.ModifiedBy)
		}
		if slot.ModifiedBy[0].UserID != 7 {
			t.Errorf("created entry user = %d, want 7", slot.ModifiedBy[0].UserID)
		}
	})

	t.Run("defaults come from the previous slot", func(t *testing.T) {
		start := parisTime(t, "2026-03-02 14:00")
		end := parisTime(t, "2026-03-02 16:00")
		e := NewEditor([]models.TimeSlot{activeSlot("s1", start, end)})

		slot := e.AddSlot(7, now)
		if !slot.StartDate.Equal(start) || !slot.EndDate.Equal(end) {
			t.Errorf("slot = [%v, %v], want previous slot's [%v, %v]",
				slot.StartDate, slot.EndDate, start, end)
		}
		if e.Len() != 2 {
			t.Fatalf("Len = %d, want 2", e.Len())
		}
	})
}

func TestUpdateSlot(t *testing.T) {
	now := parisTime(t, "2026-03-02 10:00")
	start := parisTime(t, "2026-03-02 09:00")
	end := parisTime(t, "2026-03-02 11:00")

	t.Run("merges partial fields and appends modified", func(t *testing.T) {
		e := NewEditor([]models.TimeSlot{activeSlot("s1", start, end)})
		newEnd := parisTime(t, "2026-03-02 12:00")

		notice, err := e.UpdateSlot(0, SlotPatch{EndDate: &newEnd}, 7, now)
		if err != nil {
			t.Fatalf("UpdateSlot: %v", err)
		}
		if notice != nil {
			t.Errorf("unexpected notice %+v", notice)
		}

		got := e.Slots()[0]
		if !got.StartDate.Equal(start) {
			t.Errorf("start changed unexpectedly to %v", got.StartDate)
		}
		if !got.EndDate.Equal(newEnd) {
			t.Errorf("end = %v, want %v", got.EndDate, newEnd)
		}
		last := got.ModifiedBy[len(got.ModifiedBy)-1]
		if last.Action != models.SlotActionModified || last.UserID != 7 {
			t.Errorf("last entry = %+v, want modified by 7", last)
		}
	})

	t.Run("inverted times are swapped with a notice and a second entry", func(t *testing.T) {
		e := NewEditor([]models.TimeSlot{activeSlot("s1", start, end)})
		newStart := parisTime(t, "2026-03-02 10:00")
		newEnd := parisTime(t, "2026-03-02 08:00")
		before := len(e.Slots()[0].ModifiedBy)

		notice, err := e.UpdateSlot(0, SlotPatch{StartDate: &newStart, EndDate: &newEnd}, 7, now)
		if err != nil {
			t.Fatalf("UpdateSlot: %v", err)
		}
		if notice == nil || notice.Code != NoticeSwapped {
			t.Fatalf("expected swap notice, got %+v", notice)
		}

		got := e.Slots()[0]
		if !got.StartDate.Equal(newEnd) || !got.EndDate.Equal(newStart) {
			t.Errorf("slot = [%v, %v], want swapped [%v, %v]",
				got.StartDate, got.EndDate, newEnd, newStart)
		}
		// One entry for the merge plus one recording the swap.
		if len(got.ModifiedBy) != before+2 {
			t.Errorf("ModifiedBy grew by %d, want 2", len(got.ModifiedBy)-before)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		e := NewEditor(nil)
		if _, err := e.UpdateSlot(3, SlotPatch{}, 7, now); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("err = %v, want ErrIndexOutOfRange", err)
		}
	})
}

func TestSwapIfInverted(t *testing.T) {
	now := parisTime(t, "2026-03-02 10:30")

	t.Run("swap appends exactly one modified entry", func(t *testing.T) {
		slot := activeSlot("s1", parisTime(t, "2026-03-02 10:00"), parisTime(t, "2026-03-02 08:00"))
		before := len(slot.ModifiedBy)

		if !SwapIfInverted(&slot, 7, now) {
			t.Fatal("expected a swap")
		}
		if got, want := timeutil.ToLocal(slot.StartDate).Format("15:04"), "08:00"; got != want {
			t.Errorf("start = %s, want %s", got, want)
		}
		if got, want := timeutil.ToLocal(slot.EndDate).Format("15:04"), "10:00"; got != want {
			t.Errorf("end = %s, want %s", got, want)
		}
		if len(slot.ModifiedBy) != before+1 {
			t.Fatalf("ModifiedBy grew by %d, want exactly 1", len(slot.ModifiedBy)-before)
		}
		last := slot.ModifiedBy[len(slot.ModifiedBy)-1]
		if last.Action != models.SlotActionModified {
			t.Errorf("appended action = %q, want modified", last.Action)
		}
	})

	t.Run("ordered times are untouched", func(t *testing.T) {
		slot := activeSlot("s1", parisTime(t, "2026-03-02 08:00"), parisTime(t, "2026-03-02 10:00"))
		before := len(slot.ModifiedBy)
		if SwapIfInverted(&slot, 7, now) {
			t.Fatal("unexpected swap")
		}
		if len(slot.ModifiedBy) != before {
			t.Errorf("audit trail changed without a swap")
		}
	})
}

func TestRemoveSlot(t *testing.T) {
	start := parisTime(t, "2026-03-02 09:00")
	end := parisTime(t, "2026-03-02 11:00")

	t.Run("refuses to drop the last slot", func(t *testing.T) {
		e := NewEditor([]models.TimeSlot{activeSlot("s1", start, end)})
		if err := e.RemoveSlot(0); !errors.Is(err, ErrLastSlot) {
			t.Errorf("err = %v, want ErrLastSlot", err)
		}
		if e.Len() != 1 {
			t.Errorf("Len = %d, want 1", e.Len())
		}
	})

	t.Run("removes from the working set when more than one remains", func(t *testing.T) {
		e := NewEditor([]models.TimeSlot{
			activeSlot("s1", start, end),
			activeSlot("s2", start.Add(24*time.Hour), end.Add(24*time.Hour)),
		})
		if err := e.RemoveSlot(0); err != nil {
			t.Fatalf("RemoveSlot: %v", err)
		}
		if e.Len() != 1 || e.Slots()[0].ID != "s2" {
			t.Errorf("working set = %+v, want only s2", e.Slots())
		}
	})
}

func TestAuditTrailAppendOnly(t *testing.T) {
	now := parisTime(t, "2026-03-02 10:00")
	e := NewEditor(nil)
	e.AddSlot(1, now)

	prev := len(e.Slots()[0].ModifiedBy)
	for i := 0; i < 5; i++ {
		st := now.Add(time.Duration(i) * time.Minute)
		if _, err := e.UpdateSlot(0, SlotPatch{StartDate: &st}, 1, now); err != nil {
			t.Fatalf("UpdateSlot #%d: %v", i, err)
		}
		cur := len(e.Slots()[0].ModifiedBy)
		if cur < prev {
			t.Fatalf("ModifiedBy shrank from %d to %d", prev, cur)
		}
		prev = cur
	}
}

func TestBusinessHoursAdvisories(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"both bounds offend", "2026-03-02 07:30", "2026-03-02 19:30", 2},
		{"inside opening hours", "2026-03-02 09:00", "2026-03-02 17:00", 0},
		{"early start only", "2026-03-02 07:00", "2026-03-02 12:00", 1},
		{"late end only", "2026-03-02 10:00", "2026-03-02 20:00", 1},
		{"closing time exactly is fine", "2026-03-02 08:00", "2026-03-02 19:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := []models.TimeSlot{activeSlot("s1", parisTime(t, tt.start), parisTime(t, tt.end))}
			got := BusinessHoursAdvisories(slots)
			if len(got) != tt.want {
				t.Errorf("advisories = %d (%+v), want %d", len(got), got, tt.want)
			}
			for _, n := range got {
				if n.SlotIndex != 0 {
					t.Errorf("advisory index = %d, want 0", n.SlotIndex)
				}
			}
		})
	}
}
