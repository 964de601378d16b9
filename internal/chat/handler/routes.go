package handler

import (
	"github.com/gofiber/fiber/v2"

	authservice "github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/middleware"
	"github.com/mdtajulislammt/Flutter-task-backend/pkg/constant"
)

func RegisterRoutes(app *fiber.App, h *ChatHandler, tokens authservice.TokenGenerator) {
	requireAuth := middleware.RequireAuth(tokens)

	messages := app.Group("/api/v1/chat/message", requireAuth)
	messages.Post("/send-message", h.SendMessage)
	messages.Get("/all-message/:conversationId", h.FindAllMessages)
	messages.Get("/unread-message/:conversationId", h.UnreadMessages)
	messages.Patch("/read-message/:conversationId", h.ReadMessages)
	messages.Delete("/delete-message/:messageId", h.DeleteMessage)

	app.Get("/api/v1/chat/user", requireAuth, h.FindAllUsers)

	notifications := app.Group("/api/v1/notification", requireAuth)
	notifications.Get("/user-notification", h.FindNotifications)
	notifications.Delete("/delete-notification/:id", h.DeleteNotification)
	notifications.Delete("/delete-notification", h.DeleteAllNotifications)

	admin := app.Group("/api/v1/admin/notification", requireAuth, middleware.RequireRole(constant.UserTypeAdmin))
	admin.Get("/", h.AdminFindAllNotifications)
	admin.Delete("/:id", h.AdminDeleteNotification)
	admin.Delete("/", h.AdminDeleteAllNotifications)
}
