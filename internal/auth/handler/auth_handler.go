package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/dto"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/middleware"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/response"
)

type AuthHandler struct {
	userService *service.UserService
	tokens      service.TokenGenerator
}

func NewAuthHandler(userService *service.UserService, tokens service.TokenGenerator) *AuthHandler {
	return &AuthHandler{userService: userService, tokens: tokens}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "User registered successfully", user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	tokenPair, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	// The refresh token also travels in a secure cookie for browser clients.
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    tokenPair.RefreshToken,
		HTTPOnly: true,
		Secure:   true,
		MaxAge:   7 * 24 * 60 * 60,
	})

	return response.OK(c, "Login successful", tokenPair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}
	input.UserID = user.ID
	if input.RefreshToken == "" {
		input.RefreshToken = c.Cookies("refresh_token")
	}

	tokens, err := h.userService.Refresh(c.Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Token refreshed successfully", tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	if err := h.userService.Logout(c.Context(), user.ID); err != nil {
		return response.Error(c, err)
	}

	c.ClearCookie("refresh_token")

	return response.OK(c, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	me, err := h.userService.Me(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "User details fetched successfully", me)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	var input dto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	updated, err := h.userService.UpdateProfile(c.Context(), user.ID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Profile updated successfully", updated)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.ForgotPassword(c.Context(), input.Email); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "If the email exists, a reset token has been sent", nil)
}

func (h *AuthHandler) ResendToken(c *fiber.Ctx) error {
	var input dto.ResendTokenInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.ResendResetToken(c.Context(), input.Email); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "If the email exists, a reset token has been sent", nil)
}

func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var input dto.VerifyTokenInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.VerifyResetToken(c.Context(), input.Email, input.Token); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Token is valid", nil)
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.ResetPassword(c.Context(), input); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Password reset successfully", nil)
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input dto.VerifyEmailInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.VerifyEmail(c.Context(), input.Email, input.Token); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Email verified successfully", nil)
}

func (h *AuthHandler) ResendVerificationEmail(c *fiber.Ctx) error {
	var input dto.ResendTokenInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.ResendVerificationEmail(c.Context(), input.Email); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "If the email exists, a verification token has been sent", nil)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.ChangePassword(c.Context(), user.ID, input); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Password changed successfully", nil)
}

func (h *AuthHandler) RequestEmailChange(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	var input dto.RequestEmailChangeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.RequestEmailChange(c.Context(), user.ID, input.Email); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "A confirmation token has been sent to the new address", nil)
}

func (h *AuthHandler) ChangeEmail(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	var input dto.ChangeEmailInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.ChangeEmail(c.Context(), user.ID, input.Email, input.Token); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Email changed successfully", nil)
}

func (h *AuthHandler) Generate2FASecret(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	secret, err := h.userService.Generate2FASecret(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Two-factor secret generated", secret)
}

func (h *AuthHandler) Verify2FA(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	var input dto.Verify2FAInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	if err := h.userService.Verify2FA(c.Context(), user.ID, input.Token); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Two-factor code verified", nil)
}

func (h *AuthHandler) Enable2FA(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	if err := h.userService.Enable2FA(c.Context(), user.ID); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Two-factor authentication enabled", nil)
}

func (h *AuthHandler) Disable2FA(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	if err := h.userService.Disable2FA(c.Context(), user.ID); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Two-factor authentication disabled", nil)
}
