package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/mdtajulislammt/Flutter-task-backend/internal/errors"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/faq/domain"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/faq/service"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/mocks"
)

func newTestService(t *testing.T) (*service.FaqService, *mocks.MockFaqRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockFaqRepository(ctrl)
	return service.NewFaqService(repo), repo
}

func TestFaqService_FindAll(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().
		List(gomock.Any()).
		Return([]*domain.Faq{
			{ID: "f1", Question: "How do I reset my password?", Answer: "Use the forgot password form."},
			{ID: "f2", Question: "Is there a mobile app?", Answer: "Yes."},
		}, nil)

	out, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "How do I reset my password?", out[0].Question)
}

func TestFaqService_FindAll_Empty(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().List(gomock.Any()).Return(nil, nil)

	out, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFaqService_FindOne(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().
		GetByID(gomock.Any(), "f1").
		Return(&domain.Faq{ID: "f1", Question: "Q", Answer: "A"}, nil)

	out, err := svc.FindOne(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "A", out.Answer)
}

func TestFaqService_FindOne_NotFound(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

	_, err := svc.FindOne(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrFaqNotFound)
}

func TestFaqService_FindOne_RepoError(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().GetByID(gomock.Any(), "f1").Return(nil, errors.New("db down"))

	_, err := svc.FindOne(context.Background(), "f1")
	assert.Error(t, err)
}
