package services

import (
	"context"
	"fmt"
	"time"

	"labo-backend/internal/models"
	"labo-backend/internal/repositories"
	"labo-backend/internal/timeslot"
	"labo-backend/internal/timeutil"

	ical "github.com/arran4/golang-ical"
)

// ExportService renders the calendar as an iCalendar feed teachers subscribe
// to from their own calendar apps.
type ExportService struct {
	EventRepo *repositories.EventRepository
	SlotRepo  *repositories.TimeSlotRepository
	RoomRepo  *repositories.RoomRepository
}

func NewExportService(eventRepo *repositories.EventRepository, slotRepo *repositories.TimeSlotRepository, roomRepo *repositories.RoomRepository) *ExportService {
	return &ExportService{EventRepo: eventRepo, SlotRepo: slotRepo, RoomRepo: roomRepo}
}

// ICS renders every non-cancelled event's active slots inside [from, to) as
// VEVENTs. One VEVENT per slot; the slot id doubles as the UID so clients can
// reconcile reschedules.
func (s *ExportService) ICS(ctx context.Context, from, to time.Time) (string, error) {
	slots, err := s.SlotRepo.ListActiveBetween(ctx, from, to)
	if err != nil {
		return "", err
	}

	rooms := map[int]string{}
	if list, err := s.RoomRepo.List(ctx); err == nil {
		for _, r := range list {
			rooms[r.ID] = r.Name
		}
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//labo-backend//calendrier//FR")
	cal.SetName("Planning laboratoire")
	cal.SetTimezoneId("Europe/Paris")

	events := map[int]*models.Event{}
	for _, slot := range slots {
		ev, ok := events[slot.EventID]
		if !ok {
			ev, err = s.EventRepo.Get(ctx, slot.EventID)
			if err != nil {
				continue
			}
			events[slot.EventID] = ev
		}
		if ev.State == models.StateCancelled {
			continue
		}

		ve := cal.AddEvent(slot.ID + "@labo-backend")
		ve.SetDtStampTime(timeutil.Now())
		ve.SetStartAt(slot.StartDate)
		ve.SetEndAt(slot.EndDate)
		ve.SetSummary(fmt.Sprintf("[%s] %s", ev.Type, ev.Title))
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.RoomID != nil {
			if name, ok := rooms[*ev.RoomID]; ok {
				ve.SetLocation(name)
			}
		}
		ve.SetOrganizer(ev.CreatorEmail, ical.WithCN(ev.CreatorName))
		ve.SetStatus(icsStatus(ev.State))
	}

	return cal.Serialize(), nil
}

// ICSForEvent renders one event's active slots, used for per-event download.
func (s *ExportService) ICSForEvent(ctx context.Context, eventID int) (string, error) {
	ev, err := s.EventRepo.Get(ctx, eventID)
	if err != nil {
		return "", ErrEventNotFound
	}
	slots, err := s.SlotRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//labo-backend//calendrier//FR")

	for _, slot := range timeslot.ActiveSlots(slots) {
		ve := cal.AddEvent(slot.ID + "@labo-backend")
		ve.SetDtStampTime(timeutil.Now())
		ve.SetStartAt(slot.StartDate)
		ve.SetEndAt(slot.EndDate)
		ve.SetSummary(fmt.Sprintf("[%s] %s", ev.Type, ev.Title))
		ve.SetStatus(icsStatus(ev.State))
	}
	return cal.Serialize(), nil
}

func icsStatus(state string) ical.ObjectStatus {
	switch state {
	case models.StateValidated, models.StateInProgress:
		return ical.ObjectStatusConfirmed
	case models.StateCancelled:
		return ical.ObjectStatusCancelled
	default:
		return ical.ObjectStatusTentative
	}
}
