package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/mdtajulislammt/Flutter-task-backend/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service Mailer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/domain"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/dto"
	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
	"github.com/mdtajulislammt/Flutter-task-backend/pkg/constant"
)

// Mailer enqueues a templated email for out-of-band delivery. Dispatch is
// fire-and-forget: the orchestrator logs enqueue failures and moves on.
type Mailer interface {
	Enqueue(ctx context.Context, template, to string, vars map[string]string) error
}

type UserService struct {
	repo     domain.UserRepository
	tokens   TokenGenerator
	totp     *TOTPManager
	mailer   Mailer
	log      *slog.Logger
	tokenTTL time.Duration
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, totp *TOTPManager,
	mailer Mailer, log *slog.Logger, tokenTTLMin int) *UserService {
	return &UserService{
		repo:     repo,
		tokens:   tokens,
		totp:     totp,
		mailer:   mailer,
		log:      log,
		tokenTTL: time.Duration(tokenTTLMin) * time.Minute,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userOutput(user *domain.User) *dto.UserOutput {
	return &dto.UserOutput{
		ID:               user.ID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Email:            user.Email,
		Address:          user.Address,
		Type:             user.Type,
		EmailVerified:    user.EmailVerified,
		TwoFactorEnabled: user.TwoFactorEnabled,
		Avatar:           user.Avatar,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.UserOutput, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" ||
		input.Address == "" || input.Password == "" {
		return nil, apperr.ErrMissingField
	}

	userType := input.Type
	if userType == "" {
		userType = constant.DefaultUserType
	}
	if !constant.ValidUserType(userType) {
		return nil, apperr.ErrInvalidUserType
	}

	email := normalizeEmail(input.Email)

	existingUser, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperr.ErrEmailAlreadyInUse
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		Address:      input.Address,
		PasswordHash: hashedPassword,
		Type:         userType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.issueAndMail(ctx, user, domain.PurposeVerifyEmail, "", "verification")

	return userOutput(user), nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}

	if user == nil || !VerifyPassword(input.Password, user.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		if input.TwoFactorCode == "" {
			return nil, apperr.ErrTwoFactorRequired
		}
		if !s.totp.VerifyCode(user.TwoFactorSecret, input.TwoFactorCode, time.Now()) {
			return nil, apperr.ErrTwoFactorInvalidCode
		}
	}

	return s.startSession(ctx, user)
}

// OAuthProfile is the identity resolved by an external provider after its
// own verification. Provider-verified emails skip local verification.
type OAuthProfile struct {
	Email     string
	FirstName string
	LastName  string
}

func (s *UserService) OAuthLogin(ctx context.Context, profile OAuthProfile) (*dto.TokenResponse, error) {
	if profile.Email == "" {
		return nil, apperr.ErrMissingField
	}

	email := normalizeEmail(profile.Email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// First login via provider: provision an account with an unguessable
		// password so the password flow stays closed until a reset.
		randomPw := make([]byte, 32)
		if _, err := rand.Read(randomPw); err != nil {
			return nil, err
		}
		hash, err := HashPassword(hex.EncodeToString(randomPw))
		if err != nil {
			return nil, err
		}

		now := time.Now()
		user = &domain.User{
			ID:            uuid.New().String(),
			FirstName:     profile.FirstName,
			LastName:      profile.LastName,
			Email:         email,
			PasswordHash:  hash,
			Type:          constant.DefaultUserType,
			EmailVerified: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}

		if mailErr := s.mailer.Enqueue(ctx, "welcome", user.Email, map[string]string{
			"name": user.FirstName + " " + user.LastName,
		}); mailErr != nil {
			s.log.Warn("failed to enqueue welcome email", "user_id", user.ID, "error", mailErr)
		}
	}

	return s.startSession(ctx, user)
}

func (s *UserService) startSession(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, _, err := s.tokens.Generate(user.ID, user.Email, user.Type)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetRefreshTokenHash(ctx, user.ID, s.tokens.HashToken(refreshToken)); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// Refresh rotates the session: the supplied refresh token must validate and
// match the stored hash, and the hash swap is conditional so a raced second
// refresh with the same token loses.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	user, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrRefreshTokenInvalid
	}

	if err := s.tokens.VerifyRefreshToken(input.RefreshToken, user.ID, user.RefreshTokenHash); err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, _, err := s.tokens.Generate(user.ID, user.Email, user.Type)
	if err != nil {
		return nil, err
	}

	swapped, err := s.repo.SwapRefreshTokenHash(ctx, user.ID,
		s.tokens.HashToken(input.RefreshToken), s.tokens.HashToken(newRefreshToken))
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, apperr.ErrRefreshTokenMismatch
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(s.tokens.GetAccessTokenExpiry().Seconds()),
	}, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.repo.ClearRefreshTokenHash(ctx, userID)
}

func (s *UserService) Me(ctx context.Context, userID string) (*dto.UserOutput, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}
	return userOutput(user), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput) (*dto.UserOutput, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}

	if input.FirstName == "" {
		input.FirstName = user.FirstName
	}
	if input.LastName == "" {
		input.LastName = user.LastName
	}
	if input.Address == "" {
		input.Address = user.Address
	}

	if err := s.repo.UpdateProfile(ctx, userID, input.FirstName, input.LastName, input.Address); err != nil {
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Address = input.Address
	return userOutput(user), nil
}

// issueAndMail creates a single-use token and enqueues the matching email.
// Mail failures are logged, never returned: delivery is out-of-band.
func (s *UserService) issueAndMail(ctx context.Context, user *domain.User,
	purpose domain.TokenPurpose, payload, template string) {
	raw, hash, err := s.tokens.NewSingleUseToken()
	if err != nil {
		s.log.Warn("failed to generate single-use token", "user_id", user.ID, "purpose", string(purpose), "error", err)
		return
	}

	token := &domain.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Purpose:   purpose,
		TokenHash: hash,
		Payload:   payload,
		ExpiresAt: time.Now().Add(s.tokenTTL),
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateAuthToken(ctx, token); err != nil {
		s.log.Warn("failed to store single-use token", "user_id", user.ID, "purpose", string(purpose), "error", err)
		return
	}

	to := user.Email
	if purpose == domain.PurposeChangeEmail {
		to = payload
	}

	if err := s.mailer.Enqueue(ctx, template, to, map[string]string{
		"name":  user.FirstName + " " + user.LastName,
		"token": raw,
	}); err != nil {
		s.log.Warn("failed to enqueue email", "template", template, "user_id", user.ID, "error", err)
	}
}

// ForgotPassword always reports success to the caller; whether the address
// exists must not be observable (account-enumeration protection).
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperr.ErrMissingField
	}

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.log.Warn("forgot-password lookup failed", "error", err)
		return nil
	}
	if user == nil {
		return nil
	}

	s.issueAndMail(ctx, user, domain.PurposeResetPassword, "", "password-reset")
	return nil
}

// ResendResetToken re-issues the reset token, invalidating the previous one.
func (s *UserService) ResendResetToken(ctx context.Context, email string) error {
	return s.ForgotPassword(ctx, email)
}

// VerifyResetToken checks validity without consuming; the reset form calls
// it before prompting for the new password.
func (s *UserService) VerifyResetToken(ctx context.Context, email, token string) error {
	if email == "" || token == "" {
		return apperr.ErrMissingField
	}

	record, err := s.repo.PeekAuthToken(ctx, s.tokens.HashToken(token), domain.PurposeResetPassword)
	if err != nil {
		return err
	}
	if record == nil {
		return apperr.ErrTokenInvalid
	}

	user, err := s.repo.GetByID(ctx, record.UserID)
	if err != nil {
		return err
	}
	if user == nil || user.Email != normalizeEmail(email) {
		return apperr.ErrTokenInvalid
	}

	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error {
	if input.Email == "" || input.Token == "" || input.Password == "" {
		return apperr.ErrMissingField
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return err
	}

	record, err := s.repo.ConsumeAuthToken(ctx, s.tokens.HashToken(input.Token), domain.PurposeResetPassword)
	if err != nil {
		return err
	}
	if record == nil {
		return apperr.ErrTokenInvalid
	}

	user, err := s.repo.GetByID(ctx, record.UserID)
	if err != nil {
		return err
	}
	if user == nil || user.Email != normalizeEmail(input.Email) {
		return apperr.ErrTokenInvalid
	}

	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	// A password reset ends the active session.
	if err := s.repo.ClearRefreshTokenHash(ctx, user.ID); err != nil {
		s.log.Warn("failed to clear session after password reset", "user_id", user.ID, "error", err)
	}

	return nil
}

func (s *UserService) VerifyEmail(ctx context.Context, email, token string) error {
	if email == "" || token == "" {
		return apperr.ErrMissingField
	}

	record, err := s.repo.ConsumeAuthToken(ctx, s.tokens.HashToken(token), domain.PurposeVerifyEmail)
	if err != nil {
		return err
	}
	if record == nil {
		return apperr.ErrTokenInvalid
	}

	user, err := s.repo.GetByID(ctx, record.UserID)
	if err != nil {
		return err
	}
	if user == nil || user.Email != normalizeEmail(email) {
		return apperr.ErrTokenInvalid
	}

	return s.repo.MarkEmailVerified(ctx, user.ID)
}

// ResendVerificationEmail mirrors ForgotPassword's uniform response: the
// caller cannot tell whether the address exists or is already verified.
func (s *UserService) ResendVerificationEmail(ctx context.Context, email string) error {
	if email == "" {
		return apperr.ErrMissingField
	}

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.log.Warn("resend-verification lookup failed", "error", err)
		return nil
	}
	if user == nil || user.EmailVerified {
		return nil
	}

	s.issueAndMail(ctx, user, domain.PurposeVerifyEmail, "", "verification")
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, input dto.ChangePasswordInput) error {
	if input.OldPassword == "" || input.NewPassword == "" {
		return apperr.ErrMissingField
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.ErrUserNotFound
	}

	if !VerifyPassword(input.OldPassword, user.PasswordHash) {
		return apperr.ErrWrongOldPassword
	}

	hash, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePasswordHash(ctx, userID, hash)
}

func (s *UserService) RequestEmailChange(ctx context.Context, userID, newEmail string) error {
	if newEmail == "" {
		return apperr.ErrMissingField
	}

	email := normalizeEmail(newEmail)

	taken, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken != nil {
		return apperr.ErrEmailAlreadyInUse
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.ErrUserNotFound
	}

	// The token is delivered to the new address, proving the caller controls it.
	s.issueAndMail(ctx, user, domain.PurposeChangeEmail, email, "email-change")
	return nil
}

func (s *UserService) ChangeEmail(ctx context.Context, userID, newEmail, token string) error {
	if newEmail == "" || token == "" {
		return apperr.ErrMissingField
	}

	email := normalizeEmail(newEmail)

	record, err := s.repo.ConsumeAuthToken(ctx, s.tokens.HashToken(token), domain.PurposeChangeEmail)
	if err != nil {
		return err
	}
	if record == nil || record.UserID != userID || record.Payload != email {
		return apperr.ErrTokenInvalid
	}

	taken, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken != nil {
		return apperr.ErrEmailAlreadyInUse
	}

	if err := s.repo.UpdateEmail(ctx, userID, email); err != nil {
		return err
	}

	// Receiving the token at the new address is the verification.
	return s.repo.MarkEmailVerified(ctx, userID)
}

func (s *UserService) Generate2FASecret(ctx context.Context, userID string) (*dto.TwoFactorSecretOutput, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}

	// Regeneration while enabled is rejected; disable first.
	if user.TwoFactorEnabled {
		return nil, apperr.ErrTwoFactorAlreadyEnabled
	}

	secret, err := s.totp.GenerateSecret()
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetTwoFactorSecret(ctx, userID, secret); err != nil {
		return nil, err
	}

	return &dto.TwoFactorSecretOutput{
		Secret:     secret,
		OtpauthURL: s.totp.ProvisionURI(secret, user.Email),
	}, nil
}

func (s *UserService) Verify2FA(ctx context.Context, userID, code string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.ErrUserNotFound
	}

	if user.TwoFactorSecret == "" {
		return apperr.ErrTwoFactorNoSecret
	}

	if !s.totp.VerifyCode(user.TwoFactorSecret, code, time.Now()) {
		return apperr.ErrTwoFactorInvalidCode
	}

	return nil
}

func (s *UserService) Enable2FA(ctx context.Context, userID string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.ErrUserNotFound
	}

	if user.TwoFactorSecret == "" {
		return apperr.ErrTwoFactorNoSecret
	}

	return s.repo.EnableTwoFactor(ctx, userID)
}

func (s *UserService) Disable2FA(ctx context.Context, userID string) error {
	return s.repo.DisableTwoFactor(ctx, userID)
}
