package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/chat/domain"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresChatRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, receiver_id, content, read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	`, msg.ID, msg.ConversationID, msg.SenderID, msg.ReceiverID, msg.Content, msg.CreatedAt)
	return err
}

func (r *PostgresRepository) ListMessages(ctx context.Context, conversationID string, offset, limit int) ([]*domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, receiver_id, content, read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3;
	`
	rows, err := r.db.Query(ctx, query, conversationID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.ReceiverID,
			&msg.Content, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

func (r *PostgresRepository) CountMessages(ctx context.Context, conversationID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`, conversationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) DeleteMessage(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1 AND sender_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) UnreadCount(ctx context.Context, userID, conversationID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages
		WHERE conversation_id = $1 AND receiver_id = $2 AND NOT read
	`, conversationID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, userID, conversationID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE messages SET read = TRUE
		WHERE conversation_id = $1 AND receiver_id = $2 AND NOT read
	`, conversationID, userID)
	return err
}

func (r *PostgresRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (id, user_id, title, body, read, deleted, created_at)
		VALUES ($1, $2, $3, $4, FALSE, FALSE, $5)
	`, n.ID, n.UserID, n.Title, n.Body, n.CreatedAt)
	return err
}

func scanNotifications(rows pgx.Rows) ([]*domain.Notification, error) {
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

func (r *PostgresRepository) ListNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, body, read, created_at
		FROM notifications
		WHERE user_id = $1 AND NOT deleted
		ORDER BY created_at DESC;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return scanNotifications(rows)
}

func (r *PostgresRepository) ListAllNotifications(ctx context.Context) ([]*domain.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, body, read, created_at
		FROM notifications
		WHERE NOT deleted
		ORDER BY created_at DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return scanNotifications(rows)
}

func (r *PostgresRepository) DeleteNotification(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET deleted = TRUE
		WHERE id = $1 AND user_id = $2 AND NOT deleted
	`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) DeleteAllNotifications(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications SET deleted = TRUE WHERE user_id = $1 AND NOT deleted
	`, userID)
	return err
}

func (r *PostgresRepository) AdminDeleteNotification(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET deleted = TRUE WHERE id = $1 AND NOT deleted
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) AdminDeleteAllNotifications(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications SET deleted = TRUE WHERE NOT deleted
	`)
	return err
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]*domain.ChatUser, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, first_name, last_name, COALESCE(avatar, '')
		FROM users
		ORDER BY first_name, last_name;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.ChatUser
	for rows.Next() {
		var u domain.ChatUser
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
