package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"labo-backend/internal/middleware"
	"labo-backend/internal/services"
	"labo-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing; larger
// files spill to temp files.
const maxMultipartMemory = 10 << 20

// DocumentHandler handles attachment upload/download metadata endpoints.
type DocumentHandler struct {
	service *services.DocumentService
}

func NewDocumentHandler(service *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// UploadForEvent handles POST /api/events/{id}/documents (multipart, field
// "files"). Per-file results: one bad file never fails the batch.
func (h *DocumentHandler) UploadForEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		utils.Error(w, http.StatusBadRequest, "no files provided")
		return
	}

	results := h.service.UploadForEvent(r.Context(), userID, eventID, files)
	utils.JSON(w, http.StatusOK, results)
}

// UploadForPreset handles POST /api/event-presets/{id}/documents (multipart).
func (h *DocumentHandler) UploadForPreset(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	presetID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid preset id")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		utils.Error(w, http.StatusBadRequest, "no files provided")
		return
	}

	results := h.service.UploadForPreset(r.Context(), userID, presetID, files)
	utils.JSON(w, http.StatusOK, results)
}

// Delete handles DELETE /api/documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
