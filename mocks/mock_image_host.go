package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forwardicons/internal/domain"
)

// MockImageHost is a mock implementation of port.ImageHost.
type MockImageHost struct {
	mock.Mock
}

func (m *MockImageHost) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockImageHost) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockImageHost) Upload(ctx context.Context, img domain.UploadFile) (string, error) {
	args := m.Called(ctx, img)
	return args.String(0), args.Error(1)
}
