package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forwardicons/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage used by
// the S3 image host and S3 catalog store tests.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*port.UploadOutput)
	return out, args.Error(1)
}

func (m *MockObjectStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
