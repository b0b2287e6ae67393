package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"labo-backend/internal/middleware"
	"labo-backend/internal/models"
	"labo-backend/internal/services"
	"labo-backend/pkg/utils"
)

// TOTPHandler handles the 2FA endpoints.
type TOTPHandler struct {
	service *services.TOTPService
}

func NewTOTPHandler(service *services.TOTPService) *TOTPHandler {
	return &TOTPHandler{service: service}
}

// Setup handles POST /api/auth/2fa/setup
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp, err := h.service.Setup(r.Context(), userID)
	if err != nil {
		writeTOTPError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Enable handles POST /api/auth/2fa/enable
func (h *TOTPHandler) Enable(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.TOTPEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Enable(r.Context(), userID, req.Code, clientAddr(r)); err != nil {
		writeTOTPError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// Disable handles POST /api/auth/2fa/disable
func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.TOTPEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Disable(r.Context(), userID, req.Code, clientAddr(r)); err != nil {
		writeTOTPError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": false})
}

// Verify handles POST /api/auth/2fa/verify: login step 2.
func (h *TOTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.VerifyLogin(r.Context(), &req, clientAddr(r))
	if err != nil {
		writeTOTPError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Status handles GET /api/auth/2fa/status
func (h *TOTPHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	enabled, err := h.service.Status(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": enabled})
}

func writeTOTPError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrTOTPInvalidCode), errors.Is(err, services.ErrTempTokenInvalid):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrTOTPRateLimited):
		utils.Error(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, services.ErrTOTPNotSetup), errors.Is(err, services.ErrTOTPAlreadyOn):
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}

// clientAddr extracts the caller's IP for 2FA rate limiting.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host
}
