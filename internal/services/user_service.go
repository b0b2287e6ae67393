package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"labo-backend/internal/auth"
	"labo-backend/internal/models"
	"labo-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService handles signup, the two-step login and user lookups.
type UserService struct {
	UserRepo *repositories.UserRepository
	JWT      *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, jwt *auth.JWTManager) *UserService {
	return &UserService{UserRepo: userRepo, JWT: jwt}
}

// Signup registers a new account. Unknown roles fall back to ENSEIGNANT;
// admin accounts are only created by an existing admin through UpdateUser.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.Name == "" {
		return nil, ErrInvalidCredentials
	}

	if existing, err := s.UserRepo.GetByEmail(ctx, email); err == nil && existing.ID != 0 {
		return nil, ErrEmailTaken
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role != models.RoleEnseignant && role != models.RoleLaborantin {
		role = models.RoleEnseignant
	}

	user := &models.User{Name: req.Name, Email: email, PasswordHash: hash, Role: role}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	log.Printf("[Auth] signup %s (#%d, %s)", user.Email, user.ID, user.Role)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies the password. Accounts with 2FA enabled get a short-lived
// temp token and must complete VerifyTOTP before receiving a session token;
// the rest get their session token directly.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, *models.LoginStep1Response, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	if user.TOTPEnabled {
		temp, err := s.JWT.GenerateTempToken(user)
		if err != nil {
			return nil, nil, err
		}
		return nil, &models.LoginStep1Response{Requires2FA: true, TempToken: temp}, nil
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[Auth] login %s (#%d)", user.Email, user.ID)
	return &models.AuthResponse{Token: token, User: user}, nil, nil
}

// GetUserInfo returns the public projection of a user for display next to
// audit trails and creator fields.
func (s *UserService) GetUserInfo(ctx context.Context, id int) (*models.UserInfo, error) {
	user, err := s.UserRepo.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &models.UserInfo{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// ListUsers returns all accounts. Admin only.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.UserRepo.List(ctx)
}

// UpdateUser rewrites name/email/role and optionally the password. Admin only.
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.SignupRequest) (*models.User, error) {
	user, err := s.UserRepo.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		user.Email = email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	user.PasswordHash = ""
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.UserRepo.Get(ctx, id)
}

// SetActive enables or disables an account. Admin only.
func (s *UserService) SetActive(ctx context.Context, id int, active bool) error {
	if err := s.UserRepo.ToggleActiveStatus(ctx, id, active); err != nil {
		return err
	}
	log.Printf("[Auth] user #%d active=%v", id, active)
	return nil
}
