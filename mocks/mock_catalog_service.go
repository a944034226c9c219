package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"forwardicons/internal/domain"
	"forwardicons/internal/service"
)

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Snapshot(ctx context.Context) (*domain.CatalogDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogDocument), args.Error(1)
}

func (m *MockCatalogService) Export(ctx context.Context, format string, w io.Writer) error {
	args := m.Called(ctx, format, w)
	return args.Error(0)
}

func (m *MockCatalogService) Info() service.CatalogInfo {
	args := m.Called()
	return args.Get(0).(service.CatalogInfo)
}
