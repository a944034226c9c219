package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forwardicons/internal/domain"
	"forwardicons/internal/service"
)

// MockUploadService is a mock implementation of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, input service.UploadInput) ([]domain.FileOutcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileOutcome), args.Error(1)
}

func (m *MockUploadService) FinalizeBatch(ctx context.Context) (*domain.FinalizeResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalizeResult), args.Error(1)
}

func (m *MockUploadService) PendingEntries(ctx context.Context) ([]domain.PendingEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingEntry), args.Error(1)
}

func (m *MockUploadService) ServiceName() string {
	args := m.Called()
	return args.String(0)
}
