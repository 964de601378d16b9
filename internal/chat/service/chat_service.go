package service

//go:generate mockgen -destination=../../mocks/mock_chat_repository.go -package=mocks github.com/mdtajulislammt/Flutter-task-backend/internal/chat/domain ChatRepository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/chat/domain"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/chat/dto"
	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

type ChatService struct {
	repo domain.ChatRepository
	log  *slog.Logger
}

func NewChatService(repo domain.ChatRepository, log *slog.Logger) *ChatService {
	return &ChatService{repo: repo, log: log}
}

func messageOutput(msg *domain.Message) *dto.MessageOutput {
	return &dto.MessageOutput{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		ReceiverID:     msg.ReceiverID,
		Content:        msg.Content,
		Read:           msg.Read,
		CreatedAt:      msg.CreatedAt,
	}
}

// SendMessage persists the message and fans out a notification to the
// receiver. The notification is best-effort: a failure there never fails
// the send.
func (s *ChatService) SendMessage(ctx context.Context, senderID string, input dto.SendMessageInput) (*dto.MessageOutput, error) {
	if input.ConversationID == "" || input.ReceiverID == "" || input.Content == "" {
		return nil, apperr.ErrMissingField
	}

	msg := &domain.Message{
		ID:             uuid.New().String(),
		ConversationID: input.ConversationID,
		SenderID:       senderID,
		ReceiverID:     input.ReceiverID,
		Content:        input.Content,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	notification := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    input.ReceiverID,
		Title:     "New message",
		Body:      input.Content,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		s.log.Warn("failed to create message notification", "receiver_id", input.ReceiverID, "error", err)
	}

	return messageOutput(msg), nil
}

func (s *ChatService) FindAllMessages(ctx context.Context, conversationID string, page, limit int) ([]*dto.MessageOutput, *dto.PageMeta, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	messages, err := s.repo.ListMessages(ctx, conversationID, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	total, err := s.repo.CountMessages(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}

	outputs := make([]*dto.MessageOutput, 0, len(messages))
	for _, msg := range messages {
		outputs = append(outputs, messageOutput(msg))
	}

	meta := &dto.PageMeta{
		TotalItems:  total,
		CurrentPage: page,
		PerPage:     limit,
		TotalPages:  (total + limit - 1) / limit,
	}

	return outputs, meta, nil
}

func (s *ChatService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	deleted, err := s.repo.DeleteMessage(ctx, messageID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrMessageNotFound
	}
	return nil
}

func (s *ChatService) UnreadCount(ctx context.Context, userID, conversationID string) (int, error) {
	return s.repo.UnreadCount(ctx, userID, conversationID)
}

func (s *ChatService) ReadMessages(ctx context.Context, userID, conversationID string) error {
	return s.repo.MarkRead(ctx, userID, conversationID)
}

func notificationOutput(n *domain.Notification) *dto.NotificationOutput {
	return &dto.NotificationOutput{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (s *ChatService) FindNotifications(ctx context.Context, userID string) ([]*dto.NotificationOutput, error) {
	notifications, err := s.repo.ListNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}

	outputs := make([]*dto.NotificationOutput, 0, len(notifications))
	for _, n := range notifications {
		outputs = append(outputs, notificationOutput(n))
	}
	return outputs, nil
}

func (s *ChatService) FindAllNotifications(ctx context.Context) ([]*dto.NotificationOutput, error) {
	notifications, err := s.repo.ListAllNotifications(ctx)
	if err != nil {
		return nil, err
	}

	outputs := make([]*dto.NotificationOutput, 0, len(notifications))
	for _, n := range notifications {
		outputs = append(outputs, notificationOutput(n))
	}
	return outputs, nil
}

func (s *ChatService) DeleteNotification(ctx context.Context, userID, notificationID string) error {
	deleted, err := s.repo.DeleteNotification(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrNotificationNotFound
	}
	return nil
}

func (s *ChatService) DeleteAllNotifications(ctx context.Context, userID string) error {
	return s.repo.DeleteAllNotifications(ctx, userID)
}

func (s *ChatService) AdminDeleteNotification(ctx context.Context, notificationID string) error {
	deleted, err := s.repo.AdminDeleteNotification(ctx, notificationID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrNotificationNotFound
	}
	return nil
}

func (s *ChatService) AdminDeleteAllNotifications(ctx context.Context) error {
	return s.repo.AdminDeleteAllNotifications(ctx)
}

func (s *ChatService) FindAllUsers(ctx context.Context) ([]*dto.ChatUserOutput, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	outputs := make([]*dto.ChatUserOutput, 0, len(users))
	for _, u := range users {
		outputs = append(outputs, &dto.ChatUserOutput{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Avatar:    u.Avatar,
		})
	}
	return outputs, nil
}
