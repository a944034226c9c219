package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forwardicons/internal/domain"
)

// MockPendingStore is a mock implementation of port.PendingStore.
type MockPendingStore struct {
	mock.Mock
}

func (m *MockPendingStore) Append(ctx context.Context, name, url string) (*domain.PendingEntry, error) {
	args := m.Called(ctx, name, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingEntry), args.Error(1)
}

func (m *MockPendingStore) List(ctx context.Context) ([]domain.PendingEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingEntry), args.Error(1)
}

func (m *MockPendingStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPendingStore) Remove(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
