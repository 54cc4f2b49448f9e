package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/service"
)

// MockApplicationService is a mock implementation of service.ApplicationService.
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) List(ctx context.Context, input service.ListApplicationsInput) ([]service.ApplicationView, int, domain.StatusCounts, error) {
	args := m.Called(ctx, input)
	var views []service.ApplicationView
	if args.Get(0) != nil {
		views = args.Get(0).([]service.ApplicationView)
	}
	var counts domain.StatusCounts
	if args.Get(2) != nil {
		counts = args.Get(2).(domain.StatusCounts)
	}
	return views, args.Int(1), counts, args.Error(3)
}

func (m *MockApplicationService) GetByID(ctx context.Context, id uuid.UUID) (*service.ApplicationView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationView), args.Error(1)
}

func (m *MockApplicationService) DownloadDocument(ctx context.Context, id uuid.UUID, docID string) (*service.DownloadedDocument, error) {
	args := m.Called(ctx, id, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadedDocument), args.Error(1)
}

func (m *MockApplicationService) ListDocuments(ctx context.Context, id uuid.UUID) ([]domain.FileDescriptor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileDescriptor), args.Error(1)
}
