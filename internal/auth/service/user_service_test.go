package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/domain"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/dto"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service"
	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/mocks"
	"github.com/mdtajulislammt/Flutter-task-backend/pkg/constant"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestService(t *testing.T) (*service.UserService, *mocks.MockUserRepository, *mocks.MockTokenGenerator, *mocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockUserRepository(ctrl)
	tokens := mocks.NewMockTokenGenerator(ctrl)
	mailer := mocks.NewMockMailer(ctrl)
	svc := service.NewUserService(repo, tokens, service.NewTOTPManager("Test"), mailer, testLogger, 30)

	return svc, repo, tokens, mailer
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := service.HashPassword(password)
	require.NoError(t, err)

	return &domain.User{
		ID:           "user-123",
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		Address:      "1 Main St",
		PasswordHash: hash,
		Type:         constant.UserTypeClient,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestRegister_Success(t *testing.T) {
	svc, repo, tokens, mailer := newTestService(t)
	ctx := context.Background()

	repo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) error {
			assert.NotEmpty(t, u.ID)
			assert.Equal(t, "jane@example.com", u.Email)
			assert.Equal(t, constant.UserTypeClient, u.Type)
			assert.NotEqual(t, "password123", u.PasswordHash)
			return nil
		})
	tokens.EXPECT().NewSingleUseToken().Return("raw-token", "token-hash", nil)
	repo.EXPECT().CreateAuthToken(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tk *domain.AuthToken) error {
			assert.Equal(t, domain.PurposeVerifyEmail, tk.Purpose)
			assert.Equal(t, "token-hash", tk.TokenHash)
			assert.True(t, tk.ExpiresAt.After(time.Now()))
			return nil
		})
	mailer.EXPECT().Enqueue(gomock.Any(), "verification", "jane@example.com", gomock.Any()).Return(nil)

	out, err := svc.Register(ctx, dto.RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "  Jane@Example.com ",
		Address:   "1 Main St",
		Password:  "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", out.Email)
	assert.Equal(t, constant.UserTypeClient, out.Type)
	assert.False(t, out.EmailVerified)
}

func TestRegister_MissingField(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), dto.RegisterInput{
		FirstName: "Jane",
		Email:     "jane@example.com",
	})

	assert.ErrorIs(t, err, apperr.ErrMissingField)
}

func TestRegister_InvalidUserType(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), dto.RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Address:   "1 Main St",
		Password:  "password123",
		Type:      "WIZARD",
	})

	assert.ErrorIs(t, err, apperr.ErrInvalidUserType)
}

func TestRegister_EmailAlreadyInUse(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(testUser(t, "password123"), nil)

	_, err := svc.Register(context.Background(), dto.RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Address:   "1 Main St",
		Password:  "password123",
	})

	assert.ErrorIs(t, err, apperr.ErrEmailAlreadyInUse)
}

func TestRegister_PasswordTooShort(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, nil)

	_, err := svc.Register(context.Background(), dto.RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Address:   "1 Main St",
		Password:  "short",
	})

	assert.ErrorIs(t, err, apperr.ErrPasswordTooShort)
}

func TestLogin_Success(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	tokens.EXPECT().Generate(user.ID, user.Email, user.Type).
		Return("access-token", "refresh-token", time.Now().Add(15*time.Minute), nil)
	tokens.EXPECT().HashToken("refresh-token").Return("refresh-hash")
	repo.EXPECT().SetRefreshTokenHash(gomock.Any(), user.ID, "refresh-hash").Return(nil)
	tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

	resp, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	_, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestLogin_TwoFactorRequired(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")
	user.TwoFactorEnabled = true
	user.TwoFactorSecret = "JBSWY3DPEHPK3PXP"

	repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "password123",
	})

	assert.ErrorIs(t, err, apperr.ErrTwoFactorRequired)
}

func TestLogin_TwoFactorInvalidCode(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")
	user.TwoFactorEnabled = true
	user.TwoFactorSecret = "JBSWY3DPEHPK3PXP"

	repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), dto.LoginInput{
		Email:         user.Email,
		Password:      "password123",
		TwoFactorCode: "000000",
	})

	assert.ErrorIs(t, err, apperr.ErrTwoFactorInvalidCode)
}

func TestOAuthLogin_ProvisionsNewAccount(t *testing.T) {
	svc, repo, tokens, mailer := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) error {
			assert.Equal(t, "new@example.com", u.Email)
			assert.True(t, u.EmailVerified)
			assert.Equal(t, constant.DefaultUserType, u.Type)
			assert.NotEmpty(t, u.PasswordHash)
			return nil
		})
	mailer.EXPECT().Enqueue(gomock.Any(), "welcome", "new@example.com", gomock.Any()).Return(nil)
	tokens.EXPECT().Generate(gomock.Any(), "new@example.com", constant.DefaultUserType).
		Return("access-token", "refresh-token", time.Now().Add(15*time.Minute), nil)
	tokens.EXPECT().HashToken("refresh-token").Return("refresh-hash")
	repo.EXPECT().SetRefreshTokenHash(gomock.Any(), gomock.Any(), "refresh-hash").Return(nil)
	tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

	resp, err := svc.OAuthLogin(context.Background(), service.OAuthProfile{
		Email:     "New@Example.com",
		FirstName: "New",
		LastName:  "User",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", resp.AccessToken)
}

func TestOAuthLogin_ExistingAccount(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	tokens.EXPECT().Generate(user.ID, user.Email, user.Type).
		Return("access-token", "refresh-token", time.Now().Add(15*time.Minute), nil)
	tokens.EXPECT().HashToken("refresh-token").Return("refresh-hash")
	repo.EXPECT().SetRefreshTokenHash(gomock.Any(), user.ID, "refresh-hash").Return(nil)
	tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

	resp, err := svc.OAuthLogin(context.Background(), service.OAuthProfile{Email: user.Email})

	require.NoError(t, err)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
}

func TestRefresh_Success(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)
	user := testUser(t, "password123")
	user.RefreshTokenHash = "old-hash"

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	tokens.EXPECT().VerifyRefreshToken("old-refresh", user.ID, "old-hash").Return(nil)
	tokens.EXPECT().Generate(user.ID, user.Email, user.Type).
		Return("new-access", "new-refresh", time.Now().Add(15*time.Minute), nil)
	tokens.EXPECT().HashToken("old-refresh").Return("old-hash")
	tokens.EXPECT().HashToken("new-refresh").Return("new-hash")
	repo.EXPECT().SwapRefreshTokenHash(gomock.Any(), user.ID, "old-hash", "new-hash").Return(true, nil)
	tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

	resp, err := svc.Refresh(context.Background(), dto.RefreshInput{
		RefreshToken: "old-refresh",
		UserID:       user.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "new-access", resp.AccessToken)
	assert.Equal(t, "new-refresh", resp.RefreshToken)
}

func TestRefresh_StaleTokenRejected(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)
	user := testUser(t, "password123")
	user.RefreshTokenHash = "current-hash"

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	tokens.EXPECT().VerifyRefreshToken("stale-refresh", user.ID, "current-hash").
		Return(apperr.ErrRefreshTokenMismatch)

	_, err := svc.Refresh(context.Background(), dto.RefreshInput{
		RefreshToken: "stale-refresh",
		UserID:       user.ID,
	})

	assert.ErrorIs(t, err, apperr.ErrRefreshTokenMismatch)
}

func TestRefresh_RacedRotationLoses(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)
	user := testUser(t, "password123")
	user.RefreshTokenHash = "old-hash"

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	tokens.EXPECT().VerifyRefreshToken("old-refresh", user.ID, "old-hash").Return(nil)
	tokens.EXPECT().Generate(user.ID, user.Email, user.Type).
		Return("new-access", "new-refresh", time.Now().Add(15*time.Minute), nil)
	tokens.EXPECT().HashToken("old-refresh").Return("old-hash")
	tokens.EXPECT().HashToken("new-refresh").Return("new-hash")
	// Another rotation won between verify and swap.
	repo.EXPECT().SwapRefreshTokenHash(gomock.Any(), user.ID, "old-hash", "new-hash").Return(false, nil)

	_, err := svc.Refresh(context.Background(), dto.RefreshInput{
		RefreshToken: "old-refresh",
		UserID:       user.ID,
	})

	assert.ErrorIs(t, err, apperr.ErrRefreshTokenMismatch)
}

func TestRefresh_UnknownUser(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, nil)

	_, err := svc.Refresh(context.Background(), dto.RefreshInput{
		RefreshToken: "whatever",
		UserID:       "ghost",
	})

	assert.ErrorIs(t, err, apperr.ErrRefreshTokenInvalid)
}

func TestLogout(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.EXPECT().ClearRefreshTokenHash(gomock.Any(), "user-123").Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), "user-123"))
}

func TestMe(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	out, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, out.Email)

	repo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, nil)
	_, err = svc.Me(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	repo.EXPECT().UpdateProfile(gomock.Any(), user.ID, "Janet", "Doe", "1 Main St").Return(nil)

	out, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileInput{
		FirstName: "Janet",
	})

	require.NoError(t, err)
	assert.Equal(t, "Janet", out.FirstName)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Doe", out.LastName)
	assert.Equal(t, "1 Main St", out.Address)
}

func TestForgotPassword_KnownEmail(t *testing.T) {
	svc, repo, tokens, mailer := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	tokens.EXPECT().NewSingleUseToken().Return("raw-token", "token-hash", nil)
	repo.EXPECT().CreateAuthToken(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tk *domain.AuthToken) error {
			assert.Equal(t, domain.PurposeResetPassword, tk.Purpose)
			return nil
		})
	mailer.EXPECT().Enqueue(gomock.Any(), "password-reset", user.Email, gomock.Any()).Return(nil)

	assert.NoError(t, svc.ForgotPassword(context.Background(), user.Email))
}

func TestForgotPassword_UnknownEmailSameResponse(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	// No token is issued and no mail goes out, but the caller sees success.
	repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	assert.NoError(t, svc.ForgotPassword(context.Background(), "nobody@example.com"))
}

func TestForgotPassword_LookupFailureSwallowed(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, errors.New("db down"))

	assert.NoError(t, svc.ForgotPassword(context.Background(), "jane@example.com"))
}

func TestVerifyResetToken(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)
	user := testUser(t, "password123")

	tokens.EXPECT().HashToken("raw-token").Return("token-hash")
	repo.EXPECT().PeekAuthToken(gomock.Any(), "token-hash", domain.PurposeResetPassword).
		Return(&domain.AuthToken{UserID: user.ID}, nil)
	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	assert.NoError(t, svc.VerifyResetToken(context.Background(), user.Email, "raw-token"))
}

func TestVerifyResetToken_NoMatch(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)

	tokens.EXPECT().HashToken("bad-token").Return("bad-hash")
	repo.EXPECT().PeekAuthToken(gomock.Any(), "bad-hash", domain.PurposeResetPassword).Return(nil, nil)

	err := svc.VerifyResetToken(context.Background(), "jane@example.com", "bad-token")
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestResetPassword_Success(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)
	user := testUser(t, "password123")

	tokens.EXPECT().HashToken("raw-token").Return("token-hash")
	repo.EXPECT().ConsumeAuthToken(gomock.Any(), "token-hash", domain.PurposeResetPassword).
		Return(&domain.AuthToken{UserID: user.ID}, nil)
	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	repo.EXPECT().UpdatePasswordHash(gomock.Any(), user.ID, gomock.Any()).Return(nil)
	repo.EXPECT().ClearRefreshTokenHash(gomock.Any(), user.ID).Return(nil)

	err := svc.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Email:    user.Email,
		Token:    "raw-token",
		Password: "new-password-456",
	})

	assert.NoError(t, err)
}

func TestResetPassword_ConsumedTokenRejected(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)

	// A second redemption finds no live token.
	tokens.EXPECT().HashToken("raw-token").Return("token-hash")
	repo.EXPECT().ConsumeAuthToken(gomock.Any(), "token-hash", domain.PurposeResetPassword).Return(nil, nil)

	err := svc.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Email:    "jane@example.com",
		Token:    "raw-token",
		Password: "new-password-456",
	})

	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestResetPassword_EmailMismatch(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)
	user := testUser(t, "password123")

	tokens.EXPECT().HashToken("raw-token").Return("token-hash")
	repo.EXPECT().ConsumeAuthToken(gomock.Any(), "token-hash", domain.PurposeResetPassword).
		Return(&domain.AuthToken{UserID: user.ID}, nil)
	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	err := svc.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Email:    "someone-else@example.com",
		Token:    "raw-token",
		Password: "new-password-456",
	})

	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestVerifyEmail_Success(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)
	user := testUser(t, "password123")

	tokens.EXPECT().HashToken("raw-token").Return("token-hash")
	repo.EXPECT().ConsumeAuthToken(gomock.Any(), "token-hash", domain.PurposeVerifyEmail).
		Return(&domain.AuthToken{UserID: user.ID}, nil)
	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	repo.EXPECT().MarkEmailVerified(gomock.Any(), user.ID).Return(nil)

	assert.NoError(t, svc.VerifyEmail(context.Background(), user.Email, "raw-token"))
}

func TestVerifyEmail_WrongPurposeTokenRejected(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)

	// A reset-password token must not verify an email; the purpose-scoped
	// consume finds nothing.
	tokens.EXPECT().HashToken("reset-token").Return("reset-hash")
	repo.EXPECT().ConsumeAuthToken(gomock.Any(), "reset-hash", domain.PurposeVerifyEmail).Return(nil, nil)

	err := svc.VerifyEmail(context.Background(), "jane@example.com", "reset-token")
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestResendVerificationEmail_AlreadyVerified(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")
	user.EmailVerified = true

	// No token, no mail.
	repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	assert.NoError(t, svc.ResendVerificationEmail(context.Background(), user.Email))
}

func TestChangePassword(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	repo.EXPECT().UpdatePasswordHash(gomock.Any(), user.ID, gomock.Any()).Return(nil)

	err := svc.ChangePassword(context.Background(), user.ID, dto.ChangePasswordInput{
		OldPassword: "password123",
		NewPassword: "new-password-456",
	})
	assert.NoError(t, err)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID, dto.ChangePasswordInput{
		OldPassword: "not-the-password",
		NewPassword: "new-password-456",
	})
	assert.ErrorIs(t, err, apperr.ErrWrongOldPassword)
}

func TestRequestEmailChange_TokenGoesToNewAddress(t *testing.T) {
	svc, repo, tokens, mailer := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByEmail(gomock.Any(), "next@example.com").Return(nil, nil)
	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	tokens.EXPECT().NewSingleUseToken().Return("raw-token", "token-hash", nil)
	repo.EXPECT().CreateAuthToken(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tk *domain.AuthToken) error {
			assert.Equal(t, domain.PurposeChangeEmail, tk.Purpose)
			assert.Equal(t, "next@example.com", tk.Payload)
			return nil
		})
	mailer.EXPECT().Enqueue(gomock.Any(), "email-change", "next@example.com", gomock.Any()).Return(nil)

	assert.NoError(t, svc.RequestEmailChange(context.Background(), user.ID, "Next@Example.com"))
}

func TestRequestEmailChange_AddressTaken(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	other := testUser(t, "password123")

	repo.EXPECT().GetByEmail(gomock.Any(), "taken@example.com").Return(other, nil)

	err := svc.RequestEmailChange(context.Background(), "user-123", "taken@example.com")
	assert.ErrorIs(t, err, apperr.ErrEmailAlreadyInUse)
}

func TestChangeEmail_Success(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)

	tokens.EXPECT().HashToken("raw-token").Return("token-hash")
	repo.EXPECT().ConsumeAuthToken(gomock.Any(), "token-hash", domain.PurposeChangeEmail).
		Return(&domain.AuthToken{UserID: "user-123", Payload: "next@example.com"}, nil)
	repo.EXPECT().GetByEmail(gomock.Any(), "next@example.com").Return(nil, nil)
	repo.EXPECT().UpdateEmail(gomock.Any(), "user-123", "next@example.com").Return(nil)
	repo.EXPECT().MarkEmailVerified(gomock.Any(), "user-123").Return(nil)

	assert.NoError(t, svc.ChangeEmail(context.Background(), "user-123", "next@example.com", "raw-token"))
}

func TestChangeEmail_PayloadMismatch(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)

	tokens.EXPECT().HashToken("raw-token").Return("token-hash")
	repo.EXPECT().ConsumeAuthToken(gomock.Any(), "token-hash", domain.PurposeChangeEmail).
		Return(&domain.AuthToken{UserID: "user-123", Payload: "next@example.com"}, nil)

	err := svc.ChangeEmail(context.Background(), "user-123", "different@example.com", "raw-token")
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestChangeEmail_WrongSubject(t *testing.T) {
	svc, repo, tokens, _ := newTestService(t)

	tokens.EXPECT().HashToken("raw-token").Return("token-hash")
	repo.EXPECT().ConsumeAuthToken(gomock.Any(), "token-hash", domain.PurposeChangeEmail).
		Return(&domain.AuthToken{UserID: "someone-else", Payload: "next@example.com"}, nil)

	err := svc.ChangeEmail(context.Background(), "user-123", "next@example.com", "raw-token")
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestGenerate2FASecret(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	repo.EXPECT().SetTwoFactorSecret(gomock.Any(), user.ID, gomock.Any()).Return(nil)

	out, err := svc.Generate2FASecret(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Secret)
	assert.Contains(t, out.OtpauthURL, "otpauth://totp/")
	assert.Contains(t, out.OtpauthURL, out.Secret)
}

func TestGenerate2FASecret_AlreadyEnabled(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")
	user.TwoFactorEnabled = true

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	_, err := svc.Generate2FASecret(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperr.ErrTwoFactorAlreadyEnabled)
}

func TestEnable2FA_NoSecret(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	err := svc.Enable2FA(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperr.ErrTwoFactorNoSecret)
}

func TestEnable2FA_Success(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	user := testUser(t, "password123")
	user.TwoFactorSecret = "JBSWY3DPEHPK3PXP"

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	repo.EXPECT().EnableTwoFactor(gomock.Any(), user.ID).Return(nil)

	assert.NoError(t, svc.Enable2FA(context.Background(), user.ID))
}

func TestDisable2FA(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.EXPECT().DisableTwoFactor(gomock.Any(), "user-123").Return(nil)

	assert.NoError(t, svc.Disable2FA(context.Background(), "user-123"))
}
