package models

import "time"

// Roles
const (
	RoleEnseignant = "ENSEIGNANT"
	RoleLaborantin = "LABORANTIN"
	RoleAdminLabo  = "ADMINLABO"
)

// HasValidationRights reports whether a role may validate/cancel/move events
// and approve or reject slot proposals.
func HasValidationRights(role string) bool {
	return role == RoleLaborantin || role == RoleAdminLabo
}

type User struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"` // Never expose in JSON
	Role           string     `json:"role"`
	IsActive       bool       `json:"isActive"`
	TOTPSecret     string     `json:"-"`
	TOTPEnabled    bool       `json:"totpEnabled"`
	TOTPVerifiedAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UserInfo is the projection returned by GET /api/user/{id}
type UserInfo struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TOTPSetupResponse returned when initiating 2FA setup
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`     // Base32 secret for manual entry
	OTPAuthURL  string `json:"otpauthUrl"` // otpauth:// provisioning URI
	Issuer      string `json:"issuer"`
	AccountName string `json:"accountName"` // User's email
}

// TOTPEnableRequest to verify and enable 2FA
type TOTPEnableRequest struct {
	Code string `json:"code"` // 6-digit TOTP code
}

// TOTPVerifyRequest for login 2FA verification
type TOTPVerifyRequest struct {
	TempToken string `json:"tempToken"` // Temporary token from step 1
	Code      string `json:"code"`
}

// LoginStep1Response when 2FA is required after password verification
type LoginStep1Response struct {
	Requires2FA bool   `json:"requires2fa"`
	TempToken   string `json:"tempToken,omitempty"`
}
