package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"labo-backend/internal/middleware"
	"labo-backend/internal/models"
	"labo-backend/internal/repositories"
	"labo-backend/internal/services"
	"labo-backend/internal/timeslot"
	"labo-backend/pkg/utils"
)

// EventHandler handles the calendar endpoints under /api/calendrier.
type EventHandler struct {
	service *services.EventService
}

func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// eventResponse wraps an event with the non-blocking advisories raised while
// processing its slots.
type eventResponse struct {
	Event   *models.Event     `json:"event"`
	Notices []timeslot.Notice `json:"notices,omitempty"`
}

// Create handles POST /api/calendrier
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		utils.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	ev, notices, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeEventError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, eventResponse{Event: ev, Notices: notices})
}

// Get handles GET /api/calendrier?id=N, or the full list without id.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		events, err := h.service.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if events == nil {
			events = []*models.Event{}
		}
		utils.JSON(w, http.StatusOK, events)
		return
	}

	id, err := strconv.Atoi(idParam)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	ev, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeEventError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, ev)
}

// Update handles PUT /api/calendrier?id=N
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	email, _ := middleware.GetEmailFromContext(r.Context())

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ev, notices, err := h.service.Update(r.Context(), userID, email, id, &req)
	if err != nil {
		writeEventError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, eventResponse{Event: ev, Notices: notices})
}

// Delete handles DELETE /api/calendrier?id=N
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	email, _ := middleware.GetEmailFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, email, role, id); err != nil {
		writeEventError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Move handles PUT /api/calendrier/move-event
func (h *EventHandler) Move(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	email, _ := middleware.GetEmailFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	var req models.MoveEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EventID == 0 {
		utils.Error(w, http.StatusBadRequest, "eventId is required")
		return
	}

	resp, err := h.service.Move(r.Context(), userID, email, role, &req)
	if err != nil {
		writeEventError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// ChangeState handles PUT /api/calendrier/state-change?id=N
func (h *EventHandler) ChangeState(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req models.StateChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ev, err := h.service.ChangeState(r.Context(), userID, role, id, &req)
	if err != nil {
		writeEventError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, ev)
}

// ApproveTimeslots handles POST /api/calendrier/approve-timeslots, body {eventId}
func (h *EventHandler) ApproveTimeslots(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromBody(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	h.resolveProposal(w, r, id, true)
}

// RejectTimeslots handles POST /api/calendrier/reject-timeslots, body {eventId}
func (h *EventHandler) RejectTimeslots(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromBody(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	h.resolveProposal(w, r, id, false)
}

// ConfirmModification handles PUT /api/calendrier/confirm-modification?eventId=N,
// the creator-side confirm/reject of a pending reschedule.
func (h *EventHandler) ConfirmModification(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmModificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	raw := r.URL.Query().Get("eventId")
	if raw == "" {
		raw = r.URL.Query().Get("id")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	switch req.Action {
	case "confirm":
		h.resolveProposal(w, r, id, true)
	case "reject":
		h.resolveProposal(w, r, id, false)
	default:
		utils.Error(w, http.StatusBadRequest, "action must be confirm or reject")
	}
}

// eventIDFromBody reads {eventId} from the body, falling back to the id query
// param for older clients.
func eventIDFromBody(r *http.Request) (int, bool) {
	var body struct {
		EventID int `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.EventID > 0 {
		return body.EventID, true
	}
	if id, err := strconv.Atoi(r.URL.Query().Get("id")); err == nil {
		return id, true
	}
	return 0, false
}

func (h *EventHandler) resolveProposal(w http.ResponseWriter, r *http.Request, id int, approve bool) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	email, _ := middleware.GetEmailFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	ev, err := h.service.ResolveProposal(r.Context(), userID, email, role, id, approve)
	if err != nil {
		writeEventError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, ev)
}

func writeEventError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotCreator), errors.Is(err, services.ErrForbidden):
		utils.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, repositories.ErrVersionConflict):
		utils.Error(w, http.StatusConflict, "event was modified by someone else, reload and retry")
	case errors.Is(err, repositories.ErrProposalExists):
		utils.Error(w, http.StatusConflict, "a reschedule is already pending on this event")
	case errors.Is(err, services.ErrNoTimeSlots),
		errors.Is(err, services.ErrNoPendingChange),
		errors.Is(err, services.ErrInvalidState):
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
