package services

import (
	"strings"
	"testing"
	"time"

	"labo-backend/internal/models"
	"labo-backend/internal/timeslot"
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

func TestIngestResources(t *testing.T) {
	t.Run("catalog id yields a catalog ref", func(t *testing.T) {
		refs := IngestResources([]models.ResourceInput{
			{CatalogID: 42, Name: "Bécher 250mL", RequestedQuantity: 8, Unit: "pcs"},
		})
		if len(refs) != 1 {
			t.Fatalf("expected 1 ref, got %d", len(refs))
		}
		ref := refs[0]
		if ref.Kind != models.ResourceKindCatalog {
			t.Errorf("kind = %q, want %q", ref.Kind, models.ResourceKindCatalog)
		}
		if ref.CatalogID == nil || *ref.CatalogID != 42 {
			t.Errorf("catalog id not preserved: %v", ref.CatalogID)
		}
		if ref.IsCustom {
			t.Error("catalog ref must not be custom")
		}
		if ref.ID != "42" {
			t.Errorf("ref id = %q, want %q", ref.ID, "42")
		}
	})

	t.Run("free-text entry becomes a custom ref with synthetic id", func(t *testing.T) {
		refs := IngestResources([]models.ResourceInput{
			{Name: "Glace carbonique", RequestedQuantity: 2, Unit: "kg"},
		})
		if len(refs) != 1 {
			t.Fatalf("expected 1 ref, got %d", len(refs))
		}
		ref := refs[0]
		if ref.Kind != models.ResourceKindCustom {
			t.Errorf("kind = %q, want %q", ref.Kind, models.ResourceKindCustom)
		}
		if !ref.IsCustom {
			t.Error("custom ref must carry IsCustom")
		}
		if !strings.HasSuffix(ref.ID, models.CustomIDSuffix) {
			t.Errorf("custom id %q missing %q suffix", ref.ID, models.CustomIDSuffix)
		}
		if ref.CatalogID != nil {
			t.Error("custom ref must not reference the catalog")
		}
	})

	t.Run("explicit custom flag wins over a stale catalog id", func(t *testing.T) {
		refs := IngestResources([]models.ResourceInput{
			{CatalogID: 7, Name: "Montage maison", IsCustom: true},
		})
		if len(refs) != 1 {
			t.Fatalf("expected 1 ref, got %d", len(refs))
		}
		if refs[0].Kind != models.ResourceKindCustom {
			t.Errorf("kind = %q, want custom", refs[0].Kind)
		}
	})

	t.Run("nameless free-text entries are dropped", func(t *testing.T) {
		refs := IngestResources([]models.ResourceInput{
			{RequestedQuantity: 3},
			{CatalogID: 5, Name: "Pipette"},
		})
		if len(refs) != 1 {
			t.Fatalf("expected only the catalog ref, got %d refs", len(refs))
		}
	})

	t.Run("two custom entries get distinct ids", func(t *testing.T) {
		refs := IngestResources([]models.ResourceInput{
			{Name: "A"}, {Name: "B"},
		})
		if refs[0].ID == refs[1].ID {
			t.Errorf("custom ids must be unique, both %q", refs[0].ID)
		}
	})
}

func TestBuildSlots(t *testing.T) {
	now := parisTime(t, "2026-03-02 10:00")

	t.Run("each slot starts active with one created entry", func(t *testing.T) {
		slots, notices := buildSlots([]models.TimeSlotInput{
			{StartDate: parisTime(t, "2026-03-09 09:00"), EndDate: parisTime(t, "2026-03-09 11:00")},
			{StartDate: parisTime(t, "2026-03-10 14:00"), EndDate: parisTime(t, "2026-03-10 16:00")},
		}, 5, now)

		if len(slots) != 2 {
			t.Fatalf("expected 2 slots, got %d", len(slots))
		}
		for i, s := range slots {
			if s.Status != models.SlotStatusActive {
				t.Errorf("slot %d status = %q", i, s.Status)
			}
			if s.ID != "" {
				t.Errorf("slot %d has premature id %q", i, s.ID)
			}
			if len(s.ModifiedBy) != 1 || s.ModifiedBy[0].Action != models.SlotActionCreated {
				t.Errorf("slot %d audit trail = %+v", i, s.ModifiedBy)
			}
		}
		if len(notices) != 0 {
			t.Errorf("in-hours slots raised notices: %+v", notices)
		}
	})

	t.Run("inverted bounds are swapped with a notice", func(t *testing.T) {
		start := parisTime(t, "2026-03-09 16:00")
		end := parisTime(t, "2026-03-09 14:00")
		slots, notices := buildSlots([]models.TimeSlotInput{
			{StartDate: start, EndDate: end},
		}, 5, now)

		if !slots[0].StartDate.Equal(end) || !slots[0].EndDate.Equal(start) {
			t.Errorf("bounds not swapped: %v..%v", slots[0].StartDate, slots[0].EndDate)
		}
		// created + swap modification
		if len(slots[0].ModifiedBy) != 2 {
			t.Errorf("expected 2 audit entries after swap, got %d", len(slots[0].ModifiedBy))
		}
		found := false
		for _, n := range notices {
			if n.Code == timeslot.NoticeSwapped {
				found = true
			}
		}
		if !found {
			t.Errorf("no swap notice in %+v", notices)
		}
	})

	t.Run("out-of-hours slots raise advisories", func(t *testing.T) {
		_, notices := buildSlots([]models.TimeSlotInput{
			{StartDate: parisTime(t, "2026-03-09 07:00"), EndDate: parisTime(t, "2026-03-09 20:00")},
		}, 5, now)
		if len(notices) != 2 {
			t.Errorf("expected before-opening and after-closing advisories, got %+v", notices)
		}
	})
}

func TestMergeSlotInputs(t *testing.T) {
	now := parisTime(t, "2026-03-02 10:00")
	existing := models.TimeSlot{
		ID:        "slot-1",
		StartDate: parisTime(t, "2026-03-09 09:00"),
		EndDate:   parisTime(t, "2026-03-09 11:00"),
		Status:    models.SlotStatusActive,
		CreatedBy: 5,
		ModifiedBy: []models.SlotModification{
			{UserID: 5, Date: now.Add(-time.Hour), Action: models.SlotActionCreated},
		},
	}

	t.Run("unchanged bounds keep the audit trail as is", func(t *testing.T) {
		current, _ := mergeSlotInputs([]models.TimeSlot{existing},
			[]models.TimeSlotInput{{ID: "slot-1", StartDate: existing.StartDate, EndDate: existing.EndDate}}, 5, now)
		if len(current) != 1 {
			t.Fatalf("expected 1 slot, got %d", len(current))
		}
		if len(current[0].ModifiedBy) != 1 {
			t.Errorf("no-op edit appended an audit entry: %+v", current[0].ModifiedBy)
		}
	})

	t.Run("changed bounds append a modified entry", func(t *testing.T) {
		current, _ := mergeSlotInputs([]models.TimeSlot{existing},
			[]models.TimeSlotInput{{
				ID:        "slot-1",
				StartDate: parisTime(t, "2026-03-09 10:00"),
				EndDate:   parisTime(t, "2026-03-09 12:00"),
			}}, 9, now)
		trail := current[0].ModifiedBy
		if len(trail) != 2 {
			t.Fatalf("expected 2 audit entries, got %d", len(trail))
		}
		last := trail[len(trail)-1]
		if last.Action != models.SlotActionModified || last.UserID != 9 {
			t.Errorf("last entry = %+v", last)
		}
	})

	t.Run("id-less inputs become new slots", func(t *testing.T) {
		current, _ := mergeSlotInputs([]models.TimeSlot{existing},
			[]models.TimeSlotInput{
				{ID: "slot-1", StartDate: existing.StartDate, EndDate: existing.EndDate},
				{StartDate: parisTime(t, "2026-03-11 09:00"), EndDate: parisTime(t, "2026-03-11 11:00")},
			}, 5, now)
		if len(current) != 2 {
			t.Fatalf("expected 2 slots, got %d", len(current))
		}
		if current[1].ID != "" {
			t.Errorf("new slot must not carry an id, got %q", current[1].ID)
		}
		if len(current[1].ModifiedBy) != 1 || current[1].ModifiedBy[0].Action != models.SlotActionCreated {
			t.Errorf("new slot audit trail = %+v", current[1].ModifiedBy)
		}
	})

	t.Run("unknown ids are treated as new slots", func(t *testing.T) {
		current, _ := mergeSlotInputs([]models.TimeSlot{existing},
			[]models.TimeSlotInput{{
				ID:        "gone-elsewhere",
				StartDate: parisTime(t, "2026-03-12 09:00"),
				EndDate:   parisTime(t, "2026-03-12 11:00"),
			}}, 5, now)
		if len(current) != 1 {
			t.Fatalf("expected 1 slot, got %d", len(current))
		}
		if current[0].ID != "" {
			t.Errorf("slot with unknown id must be re-created id-less, got %q", current[0].ID)
		}
	})

	t.Run("the original slot is not mutated", func(t *testing.T) {
		before := len(existing.ModifiedBy)
		mergeSlotInputs([]models.TimeSlot{existing},
			[]models.TimeSlotInput{{
				ID:        "slot-1",
				StartDate: parisTime(t, "2026-03-09 10:30"),
				EndDate:   parisTime(t, "2026-03-09 12:30"),
			}}, 5, now)
		if len(existing.ModifiedBy) != before {
			t.Error("merge mutated the caller's slot")
		}
	})
}
