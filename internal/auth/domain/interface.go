package domain

import "context"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateProfile(ctx context.Context, id, firstName, lastName, address string) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateEmail(ctx context.Context, id, email string) error
	MarkEmailVerified(ctx context.Context, id string) error
	SetTwoFactorSecret(ctx context.Context, id, secret string) error
	EnableTwoFactor(ctx context.Context, id string) error
	DisableTwoFactor(ctx context.Context, id string) error

	// SetRefreshTokenHash unconditionally replaces the active session hash
	// (login). SwapRefreshTokenHash is a compare-and-swap used for rotation
	// and logout; it reports false when the previous hash no longer matches,
	// which is how a raced second rotation with a stale token is rejected.
	SetRefreshTokenHash(ctx context.Context, id, hash string) error
	SwapRefreshTokenHash(ctx context.Context, id, oldHash, newHash string) (bool, error)
	ClearRefreshTokenHash(ctx context.Context, id string) error

	// CreateAuthToken inserts a fresh single-use token after deleting any
	// unconsumed tokens of the same purpose for the subject.
	CreateAuthToken(ctx context.Context, token *AuthToken) error
	// ConsumeAuthToken atomically marks the matching live token consumed and
	// returns it. Validity check and consumption are a single conditional
	// update; two concurrent redemptions cannot both succeed.
	ConsumeAuthToken(ctx context.Context, tokenHash string, purpose TokenPurpose) (*AuthToken, error)
	// PeekAuthToken reports whether a live token matches, without consuming
	// it. Used by the pre-flight verify-token endpoint.
	PeekAuthToken(ctx context.Context, tokenHash string, purpose TokenPurpose) (*AuthToken, error)
}
