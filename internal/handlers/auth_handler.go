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

// AuthHandler handles signup, login and user lookups.
type AuthHandler struct {
	service *services.UserService
}

func NewAuthHandler(service *services.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			utils.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.Error(w, http.StatusBadRequest, "name, email and password are required")
		default:
			utils.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login. Accounts with 2FA get a step-1 response
// with a temp token instead of a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, step1, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.Error(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, services.ErrAccountDisabled):
			utils.Error(w, http.StatusForbidden, err.Error())
		default:
			utils.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	if step1 != nil {
		utils.JSON(w, http.StatusOK, step1)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// GetUser handles GET /api/user/{id}: the public projection shown next to
// audit trails.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	info, err := h.service.GetUserInfo(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, info)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	info, err := h.service.GetUserInfo(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, info)
}

// ListUsers handles GET /api/admin/users
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	utils.JSON(w, http.StatusOK, users)
}

// UpdateUser handles PUT /api/admin/users/{id}
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// SetUserActive handles PUT /api/admin/users/{id}/active
func (h *AuthHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetActive(r.Context(), id, req.Active); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}
