package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"labo-backend/internal/auth"
	"labo-backend/internal/config"
	"labo-backend/internal/models"
	"labo-backend/internal/repositories"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	maxFailedAttempts = 5
	rateLimitWindow   = 15 * time.Minute
)

var (
	ErrTOTPNotSetup     = errors.New("2FA is not set up for this account")
	ErrTOTPAlreadyOn    = errors.New("2FA is already enabled")
	ErrTOTPInvalidCode  = errors.New("invalid verification code")
	ErrTOTPRateLimited  = errors.New("too many failed attempts, try again later")
	ErrTempTokenInvalid = errors.New("invalid or expired temporary token")
)

// TOTPService implements optional two-factor login with authenticator apps.
// Failed verifications are rate limited per user and per source IP.
type TOTPService struct {
	cfg      *config.Config
	UserRepo *repositories.UserRepository
	TOTPRepo *repositories.TOTPRepository
	JWT      *auth.JWTManager
}

func NewTOTPService(cfg *config.Config, userRepo *repositories.UserRepository, totpRepo *repositories.TOTPRepository, jwt *auth.JWTManager) *TOTPService {
	return &TOTPService{cfg: cfg, UserRepo: userRepo, TOTPRepo: totpRepo, JWT: jwt}
}

// Setup generates a fresh secret and provisioning URI for the user's
// authenticator app. The secret is stored immediately but 2FA stays off until
// Enable verifies a first code against it.
func (s *TOTPService) Setup(ctx context.Context, userID int) (*models.TOTPSetupResponse, error) {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabled {
		return nil, ErrTOTPAlreadyOn
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.cfg.TOTP.Issuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, fmt.Errorf("generate TOTP key: %w", err)
	}

	if err := s.UserRepo.SetTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		OTPAuthURL:  key.URL(),
		Issuer:      s.cfg.TOTP.Issuer,
		AccountName: user.Email,
	}, nil
}

// Enable verifies the first code against the pending secret and switches 2FA
// on for the account.
func (s *TOTPService) Enable(ctx context.Context, userID int, code, ip string) error {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPEnabled {
		return ErrTOTPAlreadyOn
	}
	if user.TOTPSecret == "" {
		return ErrTOTPNotSetup
	}

	if err := s.checkRateLimit(ctx, userID, ip); err != nil {
		return err
	}

	valid := totp.Validate(code, user.TOTPSecret)
	s.logAttempt(ctx, userID, ip, valid)
	if !valid {
		return ErrTOTPInvalidCode
	}

	if err := s.UserRepo.EnableTOTP(ctx, userID); err != nil {
		return err
	}
	log.Printf("[TOTP] enabled for user #%d", userID)
	return nil
}

// Disable switches 2FA off after verifying a current code.
func (s *TOTPService) Disable(ctx context.Context, userID int, code, ip string) error {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled {
		return ErrTOTPNotSetup
	}

	if err := s.checkRateLimit(ctx, userID, ip); err != nil {
		return err
	}

	valid := totp.Validate(code, user.TOTPSecret)
	s.logAttempt(ctx, user.ID, ip, valid)
	if !valid {
		return ErrTOTPInvalidCode
	}

	if err := s.UserRepo.DisableTOTP(ctx, userID); err != nil {
		return err
	}
	log.Printf("[TOTP] disabled for user #%d", userID)
	return nil
}

// VerifyLogin completes login step 2: exchanges the temp token plus a valid
// code for a real session token.
func (s *TOTPService) VerifyLogin(ctx context.Context, req *models.TOTPVerifyRequest, ip string) (*models.AuthResponse, error) {
	claims, err := s.JWT.ValidateTempToken(req.TempToken)
	if err != nil {
		return nil, ErrTempTokenInvalid
	}

	user, err := s.UserRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return nil, ErrTOTPNotSetup
	}

	if err := s.checkRateLimit(ctx, user.ID, ip); err != nil {
		return nil, err
	}

	valid := totp.Validate(req.Code, user.TOTPSecret)
	s.logAttempt(ctx, user.ID, ip, valid)
	if !valid {
		return nil, ErrTOTPInvalidCode
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	log.Printf("[TOTP] login verified for user #%d", user.ID)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Status reports whether the user has 2FA enabled.
func (s *TOTPService) Status(ctx context.Context, userID int) (bool, error) {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.TOTPEnabled, nil
}

// CleanupOldAttempts drops verification attempts past the retention window.
// Called from the scheduler.
func (s *TOTPService) CleanupOldAttempts(ctx context.Context) error {
	return s.TOTPRepo.CleanupOldAttempts(ctx)
}

func (s *TOTPService) checkRateLimit(ctx context.Context, userID int, ip string) error {
	byUser, err := s.TOTPRepo.GetRecentFailedAttempts(ctx, userID, rateLimitWindow)
	if err != nil {
		return err
	}
	if byUser >= maxFailedAttempts {
		return ErrTOTPRateLimited
	}
	if ip != "" {
		byIP, err := s.TOTPRepo.GetRecentFailedAttemptsByIP(ctx, ip, rateLimitWindow)
		if err != nil {
			return err
		}
		if byIP >= maxFailedAttempts {
			return ErrTOTPRateLimited
		}
	}
	return nil
}

func (s *TOTPService) logAttempt(ctx context.Context, userID int, ip string, success bool) {
	if err := s.TOTPRepo.LogVerificationAttempt(ctx, userID, ip, success); err != nil {
		log.Printf("[TOTP] log attempt for user #%d: %v", userID, err)
	}
}
