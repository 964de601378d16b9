package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/middleware"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, g *GoogleHandler) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)
	auth.Post("/resend-token", h.ResendToken)
	auth.Post("/verify-token", h.VerifyToken)
	auth.Post("/verify-email", h.VerifyEmail)
	auth.Post("/resend-verification-email", h.ResendVerificationEmail)

	if g != nil {
		auth.Get("/google", g.Login)
		auth.Get("/google/redirect", g.Redirect)
	}

	authed := auth.Group("", middleware.RequireAuth(h.tokens))
	authed.Get("/me", h.Me)
	authed.Patch("/update", h.UpdateProfile)
	authed.Post("/refresh-token", h.Refresh)
	authed.Post("/logout", h.Logout)
	authed.Post("/change-password", h.ChangePassword)
	authed.Post("/request-email-change", h.RequestEmailChange)
	authed.Post("/change-email", h.ChangeEmail)
	authed.Post("/generate-2fa-secret", h.Generate2FASecret)
	authed.Post("/verify-2fa", h.Verify2FA)
	authed.Post("/enable-2fa", h.Enable2FA)
	authed.Post("/disable-2fa", h.Disable2FA)
}
