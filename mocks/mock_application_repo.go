package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/port"
)

// MockApplicationRepo is a mock implementation of port.ApplicationRepository.
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PermitApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermitApplication), args.Error(1)
}

func (m *MockApplicationRepo) List(ctx context.Context, filter port.ApplicationFilter) ([]domain.PermitApplication, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PermitApplication), args.Int(1), args.Error(2)
}

func (m *MockApplicationRepo) CountsByStatus(ctx context.Context, d domain.PermitDomain) (domain.StatusCounts, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.StatusCounts), args.Error(1)
}

func (m *MockApplicationRepo) UpdateReview(ctx context.Context, id uuid.UUID, expectedVersion int64, status domain.Status, commentLog string) (*domain.PermitApplication, error) {
	args := m.Called(ctx, id, expectedVersion, status, commentLog)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PermitApplication), args.Error(1)
}
