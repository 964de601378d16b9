package domain

import (
	"context"
	"time"
)

type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	ReceiverID     string
	Content        string
	Read           bool
	CreatedAt      time.Time
}

type Notification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// ChatUser is the minimal identity shown in the chat user directory.
type ChatUser struct {
	ID        string
	FirstName string
	LastName  string
	Avatar    string
}

type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, conversationID string, offset, limit int) ([]*Message, error)
	CountMessages(ctx context.Context, conversationID string) (int, error)
	// DeleteMessage removes the message only when userID is its sender.
	DeleteMessage(ctx context.Context, id, userID string) (bool, error)
	UnreadCount(ctx context.Context, userID, conversationID string) (int, error)
	MarkRead(ctx context.Context, userID, conversationID string) error

	CreateNotification(ctx context.Context, n *Notification) error
	ListNotifications(ctx context.Context, userID string) ([]*Notification, error)
	ListAllNotifications(ctx context.Context) ([]*Notification, error)
	// DeleteNotification soft-deletes; ownership is part of the predicate.
	DeleteNotification(ctx context.Context, id, userID string) (bool, error)
	DeleteAllNotifications(ctx context.Context, userID string) error
	// Admin variants are not ownership-scoped.
	AdminDeleteNotification(ctx context.Context, id string) (bool, error)
	AdminDeleteAllNotifications(ctx context.Context) error

	ListUsers(ctx context.Context) ([]*ChatUser, error)
}
