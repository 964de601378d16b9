package domain

import (
	"context"
	"time"
)

type Faq struct {
	ID        string
	Question  string
	Answer    string
	CreatedAt time.Time
}

type FaqRepository interface {
	List(ctx context.Context) ([]*Faq, error)
	// GetByID returns (nil, nil) when no faq matches.
	GetByID(ctx context.Context, id string) (*Faq, error)
}
