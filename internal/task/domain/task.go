package domain

import (
	"context"
	"time"
)

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter narrows List to one owner's tasks, optionally matching the title.
type Filter struct {
	UserID string
	Search string
	Offset int
	Limit  int
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	// GetByID returns nil when no task with that id belongs to userID; the
	// ownership check is part of the query, not a separate step.
	GetByID(ctx context.Context, id, userID string) (*Task, error)
	List(ctx context.Context, filter Filter) ([]*Task, error)
	Count(ctx context.Context, filter Filter) (int, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id, userID string) (bool, error)
}
