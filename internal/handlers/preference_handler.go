package handlers

import (
	"encoding/json"
	"net/http"

	"labo-backend/internal/middleware"
	"labo-backend/internal/models"
	"labo-backend/internal/repositories"
	"labo-backend/pkg/utils"
)

// PreferenceHandler persists per-user UI state (last active calendar tab).
// Thin enough that it talks to the repository directly.
type PreferenceHandler struct {
	repo *repositories.PreferenceRepository
}

func NewPreferenceHandler(repo *repositories.PreferenceRepository) *PreferenceHandler {
	return &PreferenceHandler{repo: repo}
}

// Get handles GET /api/preferences/tab
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pref, err := h.repo.Get(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	pref.TabIndex = models.NormalizeTabIndex(pref.TabIndex)
	utils.JSON(w, http.StatusOK, pref)
}

// Set handles PUT /api/preferences/tab. Out-of-range indexes are normalized
// to the daily view rather than rejected.
func (h *PreferenceHandler) Set(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.UpdatePreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tab := models.NormalizeTabIndex(req.TabIndex)
	if err := h.repo.Set(r.Context(), userID, tab); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"calendarTabValue": tab})
}
