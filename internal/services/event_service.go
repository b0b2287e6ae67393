package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"labo-backend/internal/cache"
	"labo-backend/internal/db"
	"labo-backend/internal/hub"
	"labo-backend/internal/metrics"
	"labo-backend/internal/models"
	"labo-backend/internal/repositories"
	"labo-backend/internal/timeslot"
	"labo-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrNotCreator      = errors.New("only the creator may modify this event")
	ErrForbidden       = errors.New("insufficient rights for this operation")
	ErrInvalidState    = errors.New("invalid event state")
	ErrNoTimeSlots     = errors.New("an event needs at least one time slot")
	ErrNoPendingChange = errors.New("no pending reschedule on this event")
)

// EventService implements the scheduling workflow: create/update with slot
// versioning, the ownership-gated move flow, state transitions and the
// approve/reject cycle on reschedule proposals.
type EventService struct {
	DB           *pgxpool.Pool
	EventRepo    *repositories.EventRepository
	SlotRepo     *repositories.TimeSlotRepository
	StateRepo    *repositories.StateChangeRepository
	ProposalRepo *repositories.ProposalRepository
	DocumentRepo *repositories.DocumentRepository
	Hub          *hub.Hub
}

func NewEventService(
	pool *pgxpool.Pool,
	eventRepo *repositories.EventRepository,
	slotRepo *repositories.TimeSlotRepository,
	stateRepo *repositories.StateChangeRepository,
	proposalRepo *repositories.ProposalRepository,
	documentRepo *repositories.DocumentRepository,
	h *hub.Hub,
) *EventService {
	return &EventService{
		DB:           pool,
		EventRepo:    eventRepo,
		SlotRepo:     slotRepo,
		StateRepo:    stateRepo,
		ProposalRepo: proposalRepo,
		DocumentRepo: documentRepo,
		Hub:          h,
	}
}

// Create builds a new event in PENDING state with its initial slots and
// resources. Business-hours advisories are returned alongside, never blocking.
func (s *EventService) Create(ctx context.Context, userID int, req *models.CreateEventRequest) (*models.Event, []timeslot.Notice, error) {
	if len(req.TimeSlots) == 0 {
		return nil, nil, ErrNoTimeSlots
	}
	if !models.ValidEventType(req.Type) {
		return nil, nil, fmt.Errorf("%w: unknown type %q", ErrInvalidState, req.Type)
	}
	if !models.ValidDiscipline(req.Discipline) {
		return nil, nil, fmt.Errorf("%w: unknown discipline %q", ErrInvalidState, req.Discipline)
	}

	now := timeutil.Now()
	ev := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		State:       models.StatePending,
		Discipline:  req.Discipline,
		CreatedBy:   userID,
		Remarks:     req.Remarks,
		ClassID:     req.ClassID,
		RoomID:      req.RoomID,
	}

	slots, notices := buildSlots(req.TimeSlots, userID, now)

	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		if err := s.EventRepo.Create(ctx, tx, ev); err != nil {
			return err
		}
		for i := range slots {
			if err := s.SlotRepo.Insert(ctx, tx, ev.ID, &slots[i]); err != nil {
				return err
			}
		}
		if err := s.writeResources(ctx, tx, ev.ID, req.Discipline, req.Materials, req.Chemicals, req.Consumables); err != nil {
			return err
		}
		return s.EventRepo.AppendModification(ctx, tx, ev.ID, models.Modification{UserID: userID, Date: now})
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.EventsCreated.WithLabelValues(ev.Discipline).Inc()
	cache.InvalidateEventCaches(ctx)
	s.broadcast(hub.TopicEventCreated, ev.ID)
	log.Printf("[Event] created #%d %q by user %d", ev.ID, ev.Title, userID)

	full, err := s.Get(ctx, ev.ID)
	if err != nil {
		return nil, nil, err
	}
	return full, notices, nil
}

// Get returns the fully assembled event: slots (all versions), resources,
// documents, modification trail and state history.
func (s *EventService) Get(ctx context.Context, id int) (*models.Event, error) {
	ev, err := s.EventRepo.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.assemble(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// List returns all events, fully assembled.
func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	events, err := s.EventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if err := s.assemble(ctx, ev); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// Update saves a creator's edit: metadata fields plus the slot working set,
// persisted as a diff against the stored active slots. A successful edit of a
// VALIDATED event drops it back to PENDING for re-validation. Stale versions
// are rejected with ErrVersionConflict.
func (s *EventService) Update(ctx context.Context, userID int, userEmail string, id int, req *models.UpdateEventRequest) (*models.Event, []timeslot.Notice, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !timeslot.IsCreator(ev, userID, userEmail) {
		return nil, nil, ErrNotCreator
	}

	now := timeutil.Now()
	active := timeslot.ActiveSlots(ev.TimeSlots)
	current, notices := mergeSlotInputs(active, req.TimeSlots, userID, now)
	if len(current) == 0 {
		return nil, nil, ErrNoTimeSlots
	}
	diff := timeslot.ComputeDiff(active, current, userID, now)

	prevState := ev.State
	ev.Title = req.Title
	ev.Description = req.Description
	ev.Remarks = req.Remarks
	ev.ClassID = req.ClassID
	ev.RoomID = req.RoomID
	if ev.State == models.StateValidated {
		// Edits invalidate a previous validation.
		ev.State = models.StatePending
	}

	err = db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		if err := s.EventRepo.Update(ctx, tx, ev, req.Version); err != nil {
			return err
		}
		if err := s.applyDiff(ctx, tx, ev.ID, diff); err != nil {
			return err
		}
		if err := s.writeResources(ctx, tx, ev.ID, ev.Discipline, req.Materials, req.Chemicals, req.Consumables); err != nil {
			return err
		}
		if prevState != ev.State {
			sc := &models.StateChange{
				EventID: ev.ID, UserID: userID,
				FromState: prevState, ToState: ev.State,
				Reason: "event edited", Date: now,
			}
			if err := s.StateRepo.Insert(ctx, tx, sc); err != nil {
				return err
			}
		}
		return s.EventRepo.AppendModification(ctx, tx, ev.ID, models.Modification{UserID: userID, Date: now})
	})
	if err != nil {
		return nil, nil, err
	}

	cache.InvalidateEventCaches(ctx)
	s.broadcast(hub.TopicEventUpdated, ev.ID)

	full, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return full, notices, nil
}

// Delete removes an event. Allowed for the creator or lab staff.
func (s *EventService) Delete(ctx context.Context, userID int, userEmail, role string, id int) error {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !timeslot.IsCreator(ev, userID, userEmail) && !models.HasValidationRights(role) {
		return ErrForbidden
	}
	if err := s.EventRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateEventCaches(ctx)
	s.broadcast(hub.TopicEventDeleted, id)
	log.Printf("[Event] deleted #%d by user %d", id, userID)
	return nil
}

// Move reschedules an event. The creator's move replaces the active slots
// directly and the event returns to PENDING. A non-creator with validation
// rights instead files a proposal: the event goes to MOVED and waits for the
// creator-side approve/reject.
func (s *EventService) Move(ctx context.Context, userID int, userEmail, role string, req *models.MoveEventRequest) (*models.EventMutationResponse, error) {
	ev, err := s.Get(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if len(req.TimeSlots) == 0 {
		return nil, ErrNoTimeSlots
	}

	now := timeutil.Now()
	isCreator := timeslot.IsCreator(ev, userID, userEmail)

	if isCreator {
		diff := timeslot.ReplaceAll(ev.TimeSlots, req.TimeSlots, userID, now)
		err = db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
			if err := s.applyDiff(ctx, tx, ev.ID, diff); err != nil {
				return err
			}
			if ev.State != models.StatePending {
				sc := &models.StateChange{
					EventID: ev.ID, UserID: userID,
					FromState: ev.State, ToState: models.StatePending,
					Reason: req.Reason, Date: now,
				}
				if err := s.StateRepo.Insert(ctx, tx, sc); err != nil {
					return err
				}
				if err := s.EventRepo.UpdateState(ctx, tx, ev.ID, models.StatePending); err != nil {
					return err
				}
				metrics.StateTransitions.WithLabelValues(models.StatePending).Inc()
			}
			return s.EventRepo.AppendModification(ctx, tx, ev.ID, models.Modification{UserID: userID, Date: now})
		})
		if err != nil {
			return nil, err
		}

		cache.InvalidateEventCaches(ctx)
		s.broadcast(hub.TopicEventMoved, ev.ID)
		full, err := s.Get(ctx, ev.ID)
		if err != nil {
			return nil, err
		}
		return &models.EventMutationResponse{UpdatedEvent: full, IsPending: false}, nil
	}

	if !models.HasValidationRights(role) {
		return nil, ErrForbidden
	}

	// Non-creator: snapshot the proposed slots, flip the event to MOVED and
	// wait for the decision. The active slots stay untouched until approval.
	proposal := &models.SlotProposal{
		EventID:    ev.ID,
		ProposedBy: userID,
		Slots:      proposedSlots(req.TimeSlots, userID, now),
		Reason:     req.Reason,
	}
	err = db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		if err := s.ProposalRepo.Create(ctx, tx, proposal); err != nil {
			return err
		}
		sc := &models.StateChange{
			EventID: ev.ID, UserID: userID,
			FromState: ev.State, ToState: models.StateMoved,
			Reason: req.Reason, Date: now,
		}
		if err := s.StateRepo.Insert(ctx, tx, sc); err != nil {
			return err
		}
		if err := s.EventRepo.UpdateState(ctx, tx, ev.ID, models.StateMoved); err != nil {
			return err
		}
		return s.EventRepo.AppendModification(ctx, tx, ev.ID, models.Modification{UserID: userID, Date: now})
	})
	if err != nil {
		return nil, err
	}

	metrics.StateTransitions.WithLabelValues(models.StateMoved).Inc()
	s.refreshPendingGauge(ctx)
	cache.InvalidateEventCaches(ctx)
	s.broadcast(hub.TopicProposalPending, ev.ID)
	log.Printf("[Event] reschedule proposed on #%d by user %d", ev.ID, userID)

	full, err := s.Get(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	return &models.EventMutationResponse{UpdatedEvent: full, IsPending: true}, nil
}

// ChangeState applies a validation-rights state transition (validate, cancel,
// mark in progress) with an appended audit entry.
func (s *EventService) ChangeState(ctx context.Context, userID int, role string, eventID int, req *models.StateChangeRequest) (*models.Event, error) {
	if !models.HasValidationRights(role) {
		return nil, ErrForbidden
	}
	if !models.ValidEventState(req.State) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, req.State)
	}

	ev, err := s.EventRepo.Get(ctx, eventID)
	if err == pgx.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	err = db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		sc := &models.StateChange{
			EventID: eventID, UserID: userID,
			FromState: ev.State, ToState: req.State,
			Reason: req.Reason, Date: now,
		}
		if err := s.StateRepo.Insert(ctx, tx, sc); err != nil {
			return err
		}
		if err := s.EventRepo.UpdateState(ctx, tx, eventID, req.State); err != nil {
			return err
		}
		return s.EventRepo.AppendModification(ctx, tx, eventID, models.Modification{UserID: userID, Date: now})
	})
	if err != nil {
		return nil, err
	}

	metrics.StateTransitions.WithLabelValues(req.State).Inc()
	cache.InvalidateEventCaches(ctx)
	s.broadcast(hub.TopicEventStateChange, eventID)
	log.Printf("[Event] #%d %s -> %s by user %d", eventID, ev.State, req.State, userID)

	return s.Get(ctx, eventID)
}

// ResolveProposal decides a pending reschedule. Approval supersedes the whole
// active slot set with the proposed one and returns the event to PENDING;
// rejection discards the proposal and also returns to PENDING with the
// original slots intact. Either way the proposal is consumed.
func (s *EventService) ResolveProposal(ctx context.Context, userID int, userEmail, role string, eventID int, approve bool) (*models.Event, error) {
	ev, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// The decision belongs to the event's creator, or to lab staff acting on
	// their behalf.
	if !timeslot.IsCreator(ev, userID, userEmail) && !models.HasValidationRights(role) {
		return nil, ErrForbidden
	}

	proposal, err := s.ProposalRepo.GetPendingByEvent(ctx, eventID)
	if err == pgx.ErrNoRows {
		return nil, ErrNoPendingChange
	}
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	action := models.SlotActionRejected
	if approve {
		action = models.SlotActionApproved
	}

	err = db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		if approve {
			inputs := make([]models.TimeSlotInput, len(proposal.Slots))
			for i, ps := range proposal.Slots {
				inputs[i] = models.TimeSlotInput{StartDate: ps.StartDate, EndDate: ps.EndDate}
			}
			diff := timeslot.ReplaceAll(ev.TimeSlots, inputs, proposal.ProposedBy, now)
			for i := range diff.ToCreate {
				diff.ToCreate[i].ModifiedBy = append(diff.ToCreate[i].ModifiedBy,
					models.SlotModification{UserID: userID, Date: now, Action: action})
			}
			if err := s.applyDiff(ctx, tx, eventID, diff); err != nil {
				return err
			}
		}
		if err := s.ProposalRepo.Delete(ctx, tx, proposal.ID); err != nil {
			return err
		}
		sc := &models.StateChange{
			EventID: eventID, UserID: userID,
			FromState: ev.State, ToState: models.StatePending,
			Reason: "reschedule " + action, Date: now,
		}
		if err := s.StateRepo.Insert(ctx, tx, sc); err != nil {
			return err
		}
		if err := s.EventRepo.UpdateState(ctx, tx, eventID, models.StatePending); err != nil {
			return err
		}
		return s.EventRepo.AppendModification(ctx, tx, eventID, models.Modification{UserID: userID, Date: now})
	})
	if err != nil {
		return nil, err
	}

	metrics.StateTransitions.WithLabelValues(models.StatePending).Inc()
	s.refreshPendingGauge(ctx)
	cache.InvalidateEventCaches(ctx)
	s.broadcast(hub.TopicProposalResolved, eventID)
	log.Printf("[Event] proposal on #%d %s by user %d", eventID, action, userID)

	return s.Get(ctx, eventID)
}

// RollPendingToInProgress flips PENDING events whose first active slot has
// started. Runs from the scheduler.
func (s *EventService) RollPendingToInProgress(ctx context.Context) error {
	now := timeutil.Now()
	ids, err := s.EventRepo.ListPendingStartingBefore(ctx, now)
	if err != nil {
		return err
	}
	for _, id := range ids {
		err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
			sc := &models.StateChange{
				EventID: id, UserID: 0,
				FromState: models.StatePending, ToState: models.StateInProgress,
				Reason: "session started", Date: now,
			}
			if err := s.StateRepo.Insert(ctx, tx, sc); err != nil {
				return err
			}
			return s.EventRepo.UpdateState(ctx, tx, id, models.StateInProgress)
		})
		if err != nil {
			log.Printf("[Event] roll #%d to IN_PROGRESS failed: %v", id, err)
			continue
		}
		metrics.StateTransitions.WithLabelValues(models.StateInProgress).Inc()
		s.broadcast(hub.TopicEventStateChange, id)
	}
	if len(ids) > 0 {
		cache.InvalidateEventCaches(ctx)
	}
	return nil
}

// assemble loads the event's satellite collections.
func (s *EventService) assemble(ctx context.Context, ev *models.Event) error {
	slots, err := s.SlotRepo.ListByEvent(ctx, ev.ID)
	if err != nil {
		return err
	}
	ev.TimeSlots = slots

	resources, err := s.EventRepo.ListResources(ctx, ev.ID)
	if err != nil {
		return err
	}
	ev.Materials = resources[repositories.ResourceCategoryMaterials]
	ev.Chemicals = resources[repositories.ResourceCategoryChemicals]
	ev.Consumables = resources[repositories.ResourceCategoryConsumables]

	docs, err := s.DocumentRepo.ListByEvent(ctx, ev.ID)
	if err != nil {
		return err
	}
	ev.Documents = docs

	mods, err := s.EventRepo.ListModifications(ctx, ev.ID)
	if err != nil {
		return err
	}
	ev.ModifiedBy = mods

	states, err := s.StateRepo.ListByEvent(ctx, ev.ID)
	if err != nil {
		return err
	}
	ev.StateLog = states
	return nil
}

func (s *EventService) applyDiff(ctx context.Context, tx pgx.Tx, eventID int, diff timeslot.Diff) error {
	for i := range diff.ToCreate {
		if err := s.SlotRepo.Insert(ctx, tx, eventID, &diff.ToCreate[i]); err != nil {
			return err
		}
	}
	for i := range diff.ToUpdate {
		if err := s.SlotRepo.Update(ctx, tx, &diff.ToUpdate[i]); err != nil {
			return err
		}
	}
	for i := range diff.ToDelete {
		if err := s.SlotRepo.Update(ctx, tx, &diff.ToDelete[i]); err != nil {
			return err
		}
	}
	return nil
}

// writeResources ingests resource inputs into the tagged union and replaces
// the event's rows. Chemicals belong to chimie, consumables to physique; the
// off-discipline category is ignored rather than stored.
func (s *EventService) writeResources(ctx context.Context, tx pgx.Tx, eventID int, discipline string, materials, chemicals, consumables []models.ResourceInput) error {
	if err := s.EventRepo.ReplaceResources(ctx, tx, eventID, repositories.ResourceCategoryMaterials, IngestResources(materials)); err != nil {
		return err
	}
	if discipline == models.DisciplineChimie {
		if err := s.EventRepo.ReplaceResources(ctx, tx, eventID, repositories.ResourceCategoryChemicals, IngestResources(chemicals)); err != nil {
			return err
		}
	}
	if discipline == models.DisciplinePhysique {
		if err := s.EventRepo.ReplaceResources(ctx, tx, eventID, repositories.ResourceCategoryConsumables, IngestResources(consumables)); err != nil {
			return err
		}
	}
	return nil
}

func (s *EventService) refreshPendingGauge(ctx context.Context) {
	if count, err := s.ProposalRepo.CountPending(ctx); err == nil {
		metrics.PendingProposals.Set(float64(count))
	}
}

func (s *EventService) broadcast(topic string, eventID int) {
	if s.Hub != nil {
		s.Hub.Broadcast(hub.Message{Topic: topic, EventID: eventID})
	}
}

// IngestResources converts wire inputs to tagged ResourceRefs. A catalog id
// yields a catalog ref; anything else becomes a custom ref with a synthetic
// id, so downstream code never has to guess the shape again.
func IngestResources(inputs []models.ResourceInput) []models.ResourceRef {
	refs := make([]models.ResourceRef, 0, len(inputs))
	for _, in := range inputs {
		if in.CatalogID > 0 && !in.IsCustom {
			id := in.CatalogID
			refs = append(refs, models.ResourceRef{
				Kind:              models.ResourceKindCatalog,
				ID:                fmt.Sprintf("%d", id),
				CatalogID:         &id,
				Name:              in.Name,
				RequestedQuantity: in.RequestedQuantity,
				Unit:              in.Unit,
			})
			continue
		}
		if in.Name == "" {
			continue
		}
		refs = append(refs, models.ResourceRef{
			Kind:              models.ResourceKindCustom,
			ID:                uuid.NewString() + models.CustomIDSuffix,
			Name:              in.Name,
			RequestedQuantity: in.RequestedQuantity,
			Unit:              in.Unit,
			IsCustom:          true,
		})
	}
	return refs
}

// buildSlots turns create-request inputs into active slots with created audit
// entries, auto-swapping inverted bounds, and collects advisories.
func buildSlots(inputs []models.TimeSlotInput, userID int, now time.Time) ([]models.TimeSlot, []timeslot.Notice) {
	slots := make([]models.TimeSlot, 0, len(inputs))
	var notices []timeslot.Notice
	for i, in := range inputs {
		slot := models.TimeSlot{
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			Status:    models.SlotStatusActive,
			CreatedBy: userID,
			ModifiedBy: []models.SlotModification{
				{UserID: userID, Date: now, Action: models.SlotActionCreated},
			},
		}
		if timeslot.SwapIfInverted(&slot, userID, now) {
			notices = append(notices, timeslot.Notice{
				SlotIndex: i, Code: timeslot.NoticeSwapped,
				Message: "start and end times were inverted and have been swapped",
			})
		}
		slots = append(slots, slot)
	}
	notices = append(notices, timeslot.BusinessHoursAdvisories(slots)...)
	return slots, notices
}

// mergeSlotInputs reconciles the update request's slot list with the stored
/// active slots: known ids keep their audit trail (bounds merged, modified
// entry appended when they changed), id-less inputs become new slots.
func mergeSlotInputs(active []models.TimeSlot, inputs []models.TimeSlotInput, userID int, now time.Time) ([]models.TimeSlot, []timeslot.Notice) {
	byID := make(map[string]models.TimeSlot, len(active))
	for _, s := range active {
		byID[s.ID] = s
	}

	current := make([]models.TimeSlot, 0, len(inputs))
	var notices []timeslot.Notice
	for i, in := range inputs {
		if in.ID != "" {
			if existing, ok := byID[in.ID]; ok {
				changed := !existing.StartDate.Equal(in.StartDate) || !existing.EndDate.Equal(in.EndDate)
				existing.StartDate = in.StartDate
				existing.EndDate = in.EndDate
				if changed {
					existing.ModifiedBy = append(existing.ModifiedBy,
						models.SlotModification{UserID: userID, Date: now, Action: models.SlotActionModified})
				}
				if timeslot.SwapIfInverted(&existing, userID, now) {
					notices = append(notices, timeslot.Notice{
						SlotIndex: i, Code: timeslot.NoticeSwapped,
						Message: "start and end times were inverted and have been swapped",
					})
				}
				current = append(current, existing)
				continue
			}
		}
		slot := models.TimeSlot{
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			Status:    models.SlotStatusActive,
			CreatedBy: userID,
			ModifiedBy: []models.SlotModification{
				{UserID: userID, Date: now, Action: models.SlotActionCreated},
			},
		}
		if timeslot.SwapIfInverted(&slot, userID, now) {
			notices = append(notices, timeslot.Notice{
				SlotIndex: i, Code: timeslot.NoticeSwapped,
				Message: "start and end times were inverted and have been swapped",
			})
		}
		current = append(current, slot)
	}
	notices = append(notices, timeslot.BusinessHoursAdvisories(current)...)
	return current, notices
}

// proposedSlots snapshots move-request inputs for storage inside a proposal.
func proposedSlots(inputs []models.TimeSlotInput, userID int, now time.Time) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(inputs))
	for _, in := range inputs {
		slot := models.TimeSlot{
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			Status:    models.SlotStatusActive,
			CreatedBy: userID,
			ModifiedBy: []models.SlotModification{
				{UserID: userID, Date: now, Action: models.SlotActionCreated},
			},
		}
		timeslot.SwapIfInverted(&slot, userID, now)
		slots = append(slots, slot)
	}
	return slots
}
