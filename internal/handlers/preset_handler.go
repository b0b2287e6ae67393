package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"labo-backend/internal/middleware"
	"labo-backend/internal/models"
	"labo-backend/internal/services"
	"labo-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// PresetHandler handles the event template endpoints.
type PresetHandler struct {
	service *services.PresetService
}

func NewPresetHandler(service *services.PresetService) *PresetHandler {
	return &PresetHandler{service: service}
}

// Create handles POST /api/event-presets
func (h *PresetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreatePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		utils.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	p, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

// List handles GET /api/event-presets
func (h *PresetHandler) List(w http.ResponseWriter, r *http.Request) {
	presets, err := h.service.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if presets == nil {
		presets = []*models.Preset{}
	}
	utils.JSON(w, http.StatusOK, presets)
}

// Get handles GET /api/event-presets/{id}
func (h *PresetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid preset id")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPresetNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/event-presets/{id}
func (h *PresetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid preset id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
