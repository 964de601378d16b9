package handler

import (
	"github.com/gofiber/fiber/v2"

	authservice "github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/middleware"
)

func RegisterRoutes(app *fiber.App, h *TaskHandler, tokens authservice.TokenGenerator) {
	tasks := app.Group("/api/v1/tasks", middleware.RequireAuth(tokens))

	tasks.Post("/", h.Create)
	tasks.Get("/all_tasks", h.FindAll)
	tasks.Get("/:id", h.FindOne)
	tasks.Patch("/:id", h.Update)
	tasks.Delete("/:id", h.Remove)
}
