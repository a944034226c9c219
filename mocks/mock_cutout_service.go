package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forwardicons/internal/port"
)

// MockCutoutService is a mock implementation of service.CutoutService.
type MockCutoutService struct {
	mock.Mock
}

func (m *MockCutoutService) Cutout(ctx context.Context, input port.CutoutInput) (*port.CutoutOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CutoutOutput), args.Error(1)
}

func (m *MockCutoutService) Authenticate(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockCutoutService) CustomCutout(ctx context.Context, token string, input port.CutoutInput) (*port.CutoutOutput, error) {
	args := m.Called(ctx, token, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CutoutOutput), args.Error(1)
}
