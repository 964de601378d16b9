package service

//go:generate mockgen -destination=../../mocks/mock_task_repository.go -package=mocks github.com/mdtajulislammt/Flutter-task-backend/internal/task/domain TaskRepository

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/task/domain"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/task/dto"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	defaultStatus = "PENDING"
)

type TaskService struct {
	repo domain.TaskRepository
}

func NewTaskService(repo domain.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func taskOutput(task *domain.Task) *dto.TaskOutput {
	return &dto.TaskOutput{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperr.ErrMissingField
	}
	return &parsed, nil
}

func (s *TaskService) Create(ctx context.Context, userID string, input dto.CreateTaskInput) (*dto.TaskOutput, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if input.Title == "" {
		return nil, apperr.ErrMissingField
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = defaultStatus
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return taskOutput(task), nil
}

func (s *TaskService) FindAll(ctx context.Context, userID, search string, page, limit int) ([]*dto.TaskOutput, *dto.PageMeta, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := domain.Filter{
		UserID: userID,
		Search: search,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	outputs := make([]*dto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		outputs = append(outputs, taskOutput(task))
	}

	meta := &dto.PageMeta{
		TotalItems:  total,
		CurrentPage: page,
		PerPage:     limit,
		TotalPages:  (total + limit - 1) / limit,
	}

	return outputs, meta, nil
}

func (s *TaskService) FindOne(ctx context.Context, id, userID string) (*dto.TaskOutput, error) {
	task, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.ErrTaskNotFound
	}
	return taskOutput(task), nil
}

func (s *TaskService) Update(ctx context.Context, id, userID string, input dto.UpdateTaskInput) (*dto.TaskOutput, error) {
	task, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.ErrTaskNotFound
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperr.ErrMissingField
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.DueDate != nil {
		dueDate, err := parseDueDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	task.UpdatedAt = time.Now()
	return taskOutput(task), nil
}

func (s *TaskService) Remove(ctx context.Context, id, userID string) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrTaskNotFound
	}
	return nil
}
