package timeslot

import (
	"testing"

	"labo-backend/internal/models"
)

func TestActiveSlots(t *testing.T) {
	s1 := activeSlot("s1", parisTime(t, "2026-03-02 09:00"), parisTime(t, "2026-03-02 11:00"))
	s2 := activeSlot("s2", parisTime(t, "2026-03-03 09:00"), parisTime(t, "2026-03-03 11:00"))
	s2.Status = models.SlotStatusDeleted

	got := ActiveSlots([]models.TimeSlot{s1, s2})
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("ActiveSlots = %+v, want only s1", got)
	}

	// Filtering is idempotent.
	again := ActiveSlots(got)
	if len(again) != len(got) {
		t.Errorf("second filter changed the result: %d vs %d", len(again), len(got))
	}
}

func TestIsCreator(t *testing.T) {
	ev := &models.Event{ID: 1, CreatedBy: 7, CreatorEmail: "alice@lycee.fr"}

	tests := []struct {
		name   string
		userID int
		email  string
		want   bool
	}{
		{"matching id", 7, "", true},
		{"matching email, different id", 99, "alice@lycee.fr", true},
		{"email match is case-insensitive", 99, "Alice@Lycee.FR", true},
		{"neither matches", 99, "bob@lycee.fr", false},
		{"empty email never matches", 99, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCreator(ev, tt.userID, tt.email); got != tt.want {
				t.Errorf("IsCreator(%d, %q) = %v, want %v", tt.userID, tt.email, got, tt.want)
			}
		})
	}

	if IsCreator(nil, 7, "alice@lycee.fr") {
		t.Error("nil event must not have a creator")
	}
}

func TestTodayEvents(t *testing.T) {
	now := parisTime(t, "2026-03-02 12:00")

	today := &models.Event{ID: 1, TimeSlots: []models.TimeSlot{
		activeSlot("s1", parisTime(t, "2026-03-02 09:00"), parisTime(t, "2026-03-02 11:00")),
	}}
	tomorrow := &models.Event{ID: 2, TimeSlots: []models.TimeSlot{
		activeSlot("s2", parisTime(t, "2026-03-03 09:00"), parisTime(t, "2026-03-03 11:00")),
	}}
	// Only a superseded slot falls on today: must not count.
	superseded := &models.Event{ID: 3, TimeSlots: []models.TimeSlot{
		func() models.TimeSlot {
			s := activeSlot("s3", parisTime(t, "2026-03-02 14:00"), parisTime(t, "2026-03-02 16:00"))
			s.Status = models.SlotStatusDeleted
			return s
		}(),
	}}

	got := TodayEvents([]*models.Event{today, tomorrow, superseded}, now)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("TodayEvents returned %d events, want only event 1", len(got))
	}
}

func TestForecast(t *testing.T) {
	prevision := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		item      models.CatalogItem
		requested int
		wantAfter float64
		wantInsuf bool
		wantLow   bool
	}{
		{
			name:      "low but not insufficient",
			item:      models.CatalogItem{ID: 1, Name: "Acide chlorhydrique", Quantity: 100, MinQuantity: 90},
			requested: 20,
			wantAfter: 80,
			wantInsuf: false,
			wantLow:   true,
		},
		{
			name:      "prevision takes precedence over quantity",
			item:      models.CatalogItem{ID: 2, Name: "Ethanol", Quantity: 100, QuantityPrevision: prevision(10), MinQuantity: 5},
			requested: 20,
			wantAfter: -10,
			wantInsuf: true,
			wantLow:   true,
		},
		{
			name:      "comfortable stock",
			item:      models.CatalogItem{ID: 3, Name: "Bechers 250mL", Quantity: 40, MinQuantity: 10},
			requested: 12,
			wantAfter: 28,
			wantInsuf: false,
			wantLow:   false,
		},
		{
			name:      "exactly zero left is not insufficient",
			item:      models.CatalogItem{ID: 4, Name: "Pipettes", Quantity: 12, MinQuantity: 0},
			requested: 12,
			wantAfter: 0,
			wantInsuf: false,
			wantLow:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Forecast(tt.item, tt.requested)
			if got.StockAfterRequest != tt.wantAfter {
				t.Errorf("StockAfterRequest = %v, want %v", got.StockAfterRequest, tt.wantAfter)
			}
			if got.Insufficient != tt.wantInsuf {
				t.Errorf("Insufficient = %v, want %v", got.Insufficient, tt.wantInsuf)
			}
			if got.BelowMinimum != tt.wantLow {
				t.Errorf("BelowMinimum = %v, want %v", got.BelowMinimum, tt.wantLow)
			}
		})
	}
}
