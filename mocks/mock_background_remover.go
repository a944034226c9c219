package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forwardicons/internal/port"
)

// MockBackgroundRemover is a mock implementation of port.BackgroundRemover.
type MockBackgroundRemover struct {
	mock.Mock
}

func (m *MockBackgroundRemover) RemoveBackground(ctx context.Context, input port.CutoutInput) (*port.CutoutOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CutoutOutput), args.Error(1)
}
