package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"labo-backend/internal/cache"
	"labo-backend/internal/middleware"
	"labo-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxDraftSize caps a wizard draft payload at 256 KB.
const maxDraftSize = 256 << 10

// DraftHandler stores in-progress event wizard forms in Redis so they survive
// reloads. Payloads are opaque to the backend.
type DraftHandler struct {
	store *cache.DraftStore
}

func NewDraftHandler(store *cache.DraftStore) *DraftHandler {
	return &DraftHandler{store: store}
}

// Save handles PUT /api/drafts/{id}. POST /api/drafts (no id) creates one.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	draftID := mux.Vars(r)["id"]
	if draftID == "" {
		draftID = uuid.NewString()
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxDraftSize+1))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if len(payload) > maxDraftSize {
		utils.Error(w, http.StatusRequestEntityTooLarge, "draft too large")
		return
	}
	if !json.Valid(payload) {
		utils.Error(w, http.StatusBadRequest, "draft must be valid JSON")
		return
	}

	if err := h.store.Save(r.Context(), userID, draftID, payload); err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "draft storage unavailable")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"id": draftID})
}

// Get handles GET /api/drafts/{id}
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := h.store.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, cache.ErrDraftNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// List handles GET /api/drafts
func (h *DraftHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ids, err := h.store.List(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ids == nil {
		ids = []string{}
	}
	utils.JSON(w, http.StatusOK, map[string][]string{"drafts": ids})
}

// Delete handles DELETE /api/drafts/{id}
func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.store.Delete(r.Context(), userID, mux.Vars(r)["id"])
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
