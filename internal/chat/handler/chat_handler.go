package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/chat/dto"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/chat/service"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/middleware"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/response"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	var input dto.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid input")
	}

	msg, err := h.chatService.SendMessage(c.Context(), user.ID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Message sent successfully", msg)
}

func (h *ChatHandler) FindAllMessages(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	messages, meta, err := h.chatService.FindAllMessages(c.Context(), c.Params("conversationId"), page, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OKWithMeta(c, "Messages fetched successfully", messages, meta)
}

func (h *ChatHandler) UnreadMessages(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	count, err := h.chatService.UnreadCount(c.Context(), user.ID, c.Params("conversationId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Unread count fetched successfully", fiber.Map{"unread": count})
}

func (h *ChatHandler) ReadMessages(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	if err := h.chatService.ReadMessages(c.Context(), user.ID, c.Params("conversationId")); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Messages marked as read", nil)
}

func (h *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	id := c.Params("messageId")
	if err := h.chatService.DeleteMessage(c.Context(), user.ID, id); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Message deleted successfully", fiber.Map{"id": id})
}

func (h *ChatHandler) FindAllUsers(c *fiber.Ctx) error {
	users, err := h.chatService.FindAllUsers(c.Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Users fetched successfully", users)
}

func (h *ChatHandler) FindNotifications(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	notifications, err := h.chatService.FindNotifications(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Notifications fetched successfully", notifications)
}

func (h *ChatHandler) DeleteNotification(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	id := c.Params("id")
	if err := h.chatService.DeleteNotification(c.Context(), user.ID, id); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Notification deleted successfully", fiber.Map{"id": id})
}

func (h *ChatHandler) DeleteAllNotifications(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.BadRequest(c, "missing auth context")
	}

	if err := h.chatService.DeleteAllNotifications(c.Context(), user.ID); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Notifications deleted successfully", nil)
}

func (h *ChatHandler) AdminFindAllNotifications(c *fiber.Ctx) error {
	notifications, err := h.chatService.FindAllNotifications(c.Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Notifications fetched successfully", notifications)
}

func (h *ChatHandler) AdminDeleteNotification(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.chatService.AdminDeleteNotification(c.Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Notification deleted successfully", fiber.Map{"id": id})
}

func (h *ChatHandler) AdminDeleteAllNotifications(c *fiber.Ctx) error {
	if err := h.chatService.AdminDeleteAllNotifications(c.Context()); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Notifications deleted successfully", nil)
}
