package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Faq routes are public.
func RegisterRoutes(app *fiber.App, h *FaqHandler) {
	faq := app.Group("/api/v1/faq")

	faq.Get("/", h.FindAll)
	faq.Get("/:id", h.FindOne)
}
