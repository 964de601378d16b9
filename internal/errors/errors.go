package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrEmailAlreadyInUse       = errors.New("email already in use")
	ErrUserNotFound            = errors.New("user not found")
	ErrMissingField            = errors.New("required field not provided")
	ErrPasswordTooShort        = errors.New("password should be minimum 8 characters")
	ErrInvalidUserType         = errors.New("invalid user type")
	ErrWrongOldPassword        = errors.New("old password is incorrect")
	ErrRefreshTokenInvalid     = errors.New("invalid refresh token")
	ErrRefreshTokenExpired     = errors.New("refresh token expired")
	ErrRefreshTokenMismatch    = errors.New("refresh token does not match active session")
	ErrTokenInvalid            = errors.New("invalid or expired token")
	ErrTwoFactorRequired       = errors.New("two-factor code required")
	ErrTwoFactorInvalidCode    = errors.New("invalid two-factor code")
	ErrTwoFactorNoSecret       = errors.New("no two-factor secret generated")
	ErrTwoFactorAlreadyEnabled = errors.New("two-factor authentication already enabled")
	ErrTaskNotFound            = errors.New("task not found")
	ErrMessageNotFound         = errors.New("message not found")
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrFaqNotFound             = errors.New("faq not found")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrUnauthorized            = errors.New("unauthorized")
)

// Kind classifies an error into the small taxonomy the handlers translate
// to HTTP status codes. Anything unrecognized is an internal fault.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindTokenInvalid
)

func Classify(err error) Kind {
	switch {
	case errors.Is(err, ErrMissingField),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrInvalidUserType):
		return KindValidation
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrWrongOldPassword),
		errors.Is(err, ErrRefreshTokenInvalid),
		errors.Is(err, ErrRefreshTokenExpired),
		errors.Is(err, ErrRefreshTokenMismatch),
		errors.Is(err, ErrTwoFactorRequired),
		errors.Is(err, ErrTwoFactorInvalidCode),
		errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrMessageNotFound),
		errors.Is(err, ErrNotificationNotFound),
		errors.Is(err, ErrFaqNotFound):
		return KindNotFound
	case errors.Is(err, ErrEmailAlreadyInUse),
		errors.Is(err, ErrTwoFactorAlreadyEnabled):
		return KindConflict
	case errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTwoFactorNoSecret):
		return KindTokenInvalid
	}
	return KindInternal
}
