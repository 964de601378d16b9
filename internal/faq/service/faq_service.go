package service

//go:generate mockgen -destination=../../mocks/mock_faq_repository.go -package=mocks github.com/mdtajulislammt/Flutter-task-backend/internal/faq/domain FaqRepository

import (
	"context"

	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/faq/domain"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/faq/dto"
)

type FaqService struct {
	repo domain.FaqRepository
}

func NewFaqService(repo domain.FaqRepository) *FaqService {
	return &FaqService{repo: repo}
}

func faqOutput(f *domain.Faq) *dto.FaqOutput {
	return &dto.FaqOutput{
		ID:        f.ID,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
	}
}

func (s *FaqService) FindAll(ctx context.Context) ([]*dto.FaqOutput, error) {
	faqs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	outputs := make([]*dto.FaqOutput, 0, len(faqs))
	for _, f := range faqs {
		outputs = append(outputs, faqOutput(f))
	}
	return outputs, nil
}

func (s *FaqService) FindOne(ctx context.Context, id string) (*dto.FaqOutput, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, apperr.ErrFaqNotFound
	}
	return faqOutput(f), nil
}
