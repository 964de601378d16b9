package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/domain"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/dto"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/handler"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service"
	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/mocks"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupAuthApp(t *testing.T) (*fiber.App, *mocks.MockUserRepository, *mocks.MockTokenGenerator, *mocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockUserRepository(ctrl)
	tokens := mocks.NewMockTokenGenerator(ctrl)
	mailer := mocks.NewMockMailer(ctrl)
	userService := service.NewUserService(repo, tokens, service.NewTOTPManager("Test"), mailer, testLogger, 30)
	authHandler := handler.NewAuthHandler(userService, tokens)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, nil)

	return app, repo, tokens, mailer
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterEndpoint(t *testing.T) {
	app, repo, tokens, mailer := setupAuthApp(t)

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		tokens.EXPECT().NewSingleUseToken().Return("raw-token", "token-hash", nil)
		repo.EXPECT().CreateAuthToken(gomock.Any(), gomock.Any()).Return(nil)
		mailer.EXPECT().Enqueue(gomock.Any(), "verification", "jane@example.com", gomock.Any()).Return(nil)

		req := jsonRequest(t, "POST", "/api/v1/auth/register", dto.RegisterInput{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Address:   "1 Main St",
			Password:  "password123",
		})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo.EXPECT().GetByEmail(gomock.Any(), "taken@example.com").
			Return(&domain.User{ID: "other"}, nil)

		req := jsonRequest(t, "POST", "/api/v1/auth/register", dto.RegisterInput{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "taken@example.com",
			Address:   "1 Main St",
			Password:  "password123",
		})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})
}

func TestLoginEndpoint(t *testing.T) {
	app, repo, tokens, _ := setupAuthApp(t)

	hash, err := service.HashPassword("password123")
	require.NoError(t, err)
	user := &domain.User{
		ID:           "user-123",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Type:         "CLIENT",
	}

	t.Run("success sets refresh cookie", func(t *testing.T) {
		repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		tokens.EXPECT().Generate(user.ID, user.Email, user.Type).
			Return("access-token", "refresh-token", time.Now().Add(15*time.Minute), nil)
		tokens.EXPECT().HashToken("refresh-token").Return("refresh-hash")
		repo.EXPECT().SetRefreshTokenHash(gomock.Any(), user.ID, "refresh-hash").Return(nil)
		tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

		req := jsonRequest(t, "POST", "/api/v1/auth/login", dto.LoginInput{
			Email:    user.Email,
			Password: "password123",
		})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var cookie string
		for _, c := range resp.Cookies() {
			if c.Name == "refresh_token" {
				cookie = c.Value
			}
		}
		assert.Equal(t, "refresh-token", cookie)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		req := jsonRequest(t, "POST", "/api/v1/auth/login", dto.LoginInput{
			Email:    user.Email,
			Password: "wrong-password",
		})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("two-factor required", func(t *testing.T) {
		twoFactorUser := *user
		twoFactorUser.TwoFactorEnabled = true
		twoFactorUser.TwoFactorSecret = "JBSWY3DPEHPK3PXP"
		repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(&twoFactorUser, nil)

		req := jsonRequest(t, "POST", "/api/v1/auth/login", dto.LoginInput{
			Email:    user.Email,
			Password: "password123",
		})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestForgotPasswordEndpoint_UniformResponse(t *testing.T) {
	app, repo, _, _ := setupAuthApp(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	req := jsonRequest(t, "POST", "/api/v1/auth/forgot-password", dto.ForgotPasswordInput{
		Email: "nobody@example.com",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestResetPasswordEndpoint_InvalidToken(t *testing.T) {
	app, repo, tokens, _ := setupAuthApp(t)

	tokens.EXPECT().HashToken("bad-token").Return("bad-hash")
	repo.EXPECT().ConsumeAuthToken(gomock.Any(), "bad-hash", domain.PurposeResetPassword).Return(nil, nil)

	req := jsonRequest(t, "POST", "/api/v1/auth/reset-password", dto.ResetPasswordInput{
		Email:    "jane@example.com",
		Token:    "bad-token",
		Password: "new-password-456",
	})

	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRefreshEndpoint(t *testing.T) {
	app, repo, tokens, _ := setupAuthApp(t)

	user := &domain.User{
		ID:               "user-123",
		Email:            "jane@example.com",
		Type:             "CLIENT",
		RefreshTokenHash: "old-hash",
	}
	claims := &service.JWTCustomClaims{UserID: user.ID, Email: user.Email, Type: user.Type}

	t.Run("rotates via body token", func(t *testing.T) {
		tokens.EXPECT().VerifyAccessToken("access-token").Return(claims, nil)
		repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		tokens.EXPECT().VerifyRefreshToken("old-refresh", user.ID, "old-hash").Return(nil)
		tokens.EXPECT().Generate(user.ID, user.Email, user.Type).
			Return("new-access", "new-refresh", time.Now().Add(15*time.Minute), nil)
		tokens.EXPECT().HashToken("old-refresh").Return("old-hash")
		tokens.EXPECT().HashToken("new-refresh").Return("new-hash")
		repo.EXPECT().SwapRefreshTokenHash(gomock.Any(), user.ID, "old-hash", "new-hash").Return(true, nil)
		tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

		req := jsonRequest(t, "POST", "/api/v1/auth/refresh-token", dto.RefreshInput{
			RefreshToken: "old-refresh",
		})
		req.Header.Set("Authorization", "Bearer access-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("falls back to cookie", func(t *testing.T) {
		tokens.EXPECT().VerifyAccessToken("access-token").Return(claims, nil)
		repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		tokens.EXPECT().VerifyRefreshToken("cookie-refresh", user.ID, "old-hash").Return(nil)
		tokens.EXPECT().Generate(user.ID, user.Email, user.Type).
			Return("new-access", "new-refresh", time.Now().Add(15*time.Minute), nil)
		tokens.EXPECT().HashToken("cookie-refresh").Return("old-hash")
		tokens.EXPECT().HashToken("new-refresh").Return("new-hash")
		repo.EXPECT().SwapRefreshTokenHash(gomock.Any(), user.ID, "old-hash", "new-hash").Return(true, nil)
		tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

		req := jsonRequest(t, "POST", "/api/v1/auth/refresh-token", dto.RefreshInput{})
		req.Header.Set("Authorization", "Bearer access-token")
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("stale token rejected", func(t *testing.T) {
		tokens.EXPECT().VerifyAccessToken("access-token").Return(claims, nil)
		repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		tokens.EXPECT().VerifyRefreshToken("stale-refresh", user.ID, "old-hash").
			Return(apperr.ErrRefreshTokenMismatch)

		req := jsonRequest(t, "POST", "/api/v1/auth/refresh-token", dto.RefreshInput{
			RefreshToken: "stale-refresh",
		})
		req.Header.Set("Authorization", "Bearer access-token")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	app, _, tokens, _ := setupAuthApp(t)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens.EXPECT().VerifyAccessToken("garbage").Return(nil, errors.New("invalid token"))

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
