package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/history"
	"github.com/Theijiii/plms-sys-sub004/internal/service"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ApplyAction(ctx context.Context, input *service.ApplyActionInput) (*domain.PermitApplication, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermitApplication), args.Error(1)
}

func (m *MockReviewService) ListEvents(ctx context.Context, applicationID uuid.UUID, offset, limit int) ([]domain.ReviewEvent, int, error) {
	args := m.Called(ctx, applicationID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReviewEvent), args.Int(1), args.Error(2)
}

func (m *MockReviewService) SessionActions(applicationID uuid.UUID) []history.ActionRecord {
	args := m.Called(applicationID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]history.ActionRecord)
}

func (m *MockReviewService) Transitions(d domain.PermitDomain, current domain.Status) []domain.Status {
	args := m.Called(d, current)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Status)
}
