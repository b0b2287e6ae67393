package timeslot

import (
	"strings"
	"time"

	"labo-backend/internal/models"
	"labo-backend/internal/timeutil"
)

// ActiveSlots filters an event's slots down to the currently active set, the
// canonical "current schedule" everywhere the event's time is displayed or
// edited. Pure filter: applying it twice equals applying it once.
func ActiveSlots(slots []models.TimeSlot) []models.TimeSlot {
	var active []models.TimeSlot
	for _, s := range slots {
		if s.Status == models.SlotStatusActive {
			active = append(active, s)
		}
	}
	return active
}

// IsCreator reports whether the user owns the event: true iff the user id or
// email matches the event's creator. Ownership gates edit/delete rights and
// decides PENDING vs MOVED semantics on slot edits.
func IsCreator(ev *models.Event, userID int, email string) bool {
	if ev == nil {
		return false
	}
	if ev.CreatedBy == userID {
		return true
	}
	return email != "" && ev.CreatorEmail != "" && strings.EqualFold(ev.CreatorEmail, email)
}

// TodayEvents returns the events having at least one active slot starting on
// the same calendar day as now (Paris time).
func TodayEvents(events []*models.Event, now time.Time) []*models.Event {
	var today []*models.Event
	for _, ev := range events {
		for _, s := range ActiveSlots(ev.TimeSlots) {
			if timeutil.SameDay(s.StartDate, now) {
				today = append(today, ev)
				break
			}
		}
	}
	return today
}

// Forecast derives the advisory stock projection for one catalog item:
// stockAfterRequest = (quantityPrevision ?? quantity) - requested. Negative
// means insufficient; below minQuantity means low. Never blocks a save.
func Forecast(item models.CatalogItem, requested int) models.StockForecast {
	base := item.Quantity
	if item.QuantityPrevision != nil {
		base = *item.QuantityPrevision
	}
	after := base - float64(requested)
	return models.StockForecast{
		ItemID:            item.ID,
		Name:              item.Name,
		Requested:         requested,
		StockAfterRequest: after,
		Insufficient:      after < 0,
		BelowMinimum:      after < item.MinQuantity,
	}
}
