package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/task/domain"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresTaskRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tasks (id, user_id, title, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, task.ID, task.UserID, task.Title, task.Description, task.Status, task.DueDate,
		task.CreatedAt, task.UpdatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, due_date, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
		LIMIT 1;
	`
	var task domain.Task
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&task.ID, &task.UserID, &task.Title,
		&task.Description, &task.Status, &task.DueDate, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, due_date, created_at, updated_at
		FROM tasks
		WHERE user_id = $1 AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4;
	`
	rows, err := r.db.Query(ctx, query, filter.UserID, filter.Search, filter.Offset, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description,
			&task.Status, &task.DueDate, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}
	return tasks, rows.Err()
}

func (r *PostgresRepository) Count(ctx context.Context, filter domain.Filter) (int, error) {
	query := `
		SELECT COUNT(*) FROM tasks
		WHERE user_id = $1 AND ($2 = '' OR title ILIKE '%' || $2 || '%');
	`
	var count int
	if err := r.db.QueryRow(ctx, query, filter.UserID, filter.Search).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *domain.Task) error {
	_, err := r.db.Exec(ctx, `
		UPDATE tasks SET title = $3, description = $4, status = $5, due_date = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, task.ID, task.UserID, task.Title, task.Description, task.Status, task.DueDate)
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
