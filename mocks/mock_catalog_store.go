package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forwardicons/internal/domain"
)

// MockCatalogStore is a mock implementation of port.CatalogStore.
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) Fetch(ctx context.Context) (*domain.CatalogDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogDocument), args.Error(1)
}

func (m *MockCatalogStore) Replace(ctx context.Context, doc *domain.CatalogDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
