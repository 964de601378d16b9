package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/faq/domain"
)

type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresFaqRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Faq, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, question, answer, created_at
		FROM faqs
		ORDER BY created_at;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	defer rows.Close()

	var faqs []*domain.Faq
	for rows.Next() {
		var f domain.Faq
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		faqs = append(faqs, &f)
	}
	return faqs, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Faq, error) {
	var f domain.Faq
	err := r.db.QueryRow(ctx, `
		SELECT id, question, answer, created_at FROM faqs WHERE id = $1
	`, id).Scan(&f.ID, &f.Question, &f.Answer, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get faq: %w", err)
	}
	return &f, nil
}
