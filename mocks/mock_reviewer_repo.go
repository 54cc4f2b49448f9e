package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// MockReviewerRepo is a mock implementation of port.ReviewerRepository.
type MockReviewerRepo struct {
	mock.Mock
}

func (m *MockReviewerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reviewer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reviewer), args.Error(1)
}

func (m *MockReviewerRepo) GetByEmail(ctx context.Context, email string) (*domain.Reviewer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reviewer), args.Error(1)
}
