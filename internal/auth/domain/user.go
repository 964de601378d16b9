package domain

import "time"

type User struct {
	ID               string
	FirstName        string
	LastName         string
	Email            string
	Address          string
	PasswordHash     string
	Type             string
	EmailVerified    bool
	TwoFactorEnabled bool
	TwoFactorSecret  string
	RefreshTokenHash string
	Avatar           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TokenPurpose scopes a single-use token to exactly one flow. Redemption
// with the wrong purpose fails even for a structurally valid token.
type TokenPurpose string

const (
	PurposeVerifyEmail   TokenPurpose = "verify_email"
	PurposeResetPassword TokenPurpose = "reset_password"
	PurposeChangeEmail   TokenPurpose = "change_email"
)

// AuthToken is a single-use credential for email verification, password
// reset, or email change. Only the sha256 fingerprint of the raw value is
// ever persisted.
type AuthToken struct {
	ID        string
	UserID    string
	Purpose   TokenPurpose
	TokenHash string
	Payload   string
	ExpiresAt time.Time
	Consumed  bool
	CreatedAt time.Time
}
