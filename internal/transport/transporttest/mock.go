// File: internal/transport/transporttest/mock.go
package transporttest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"scpsync/pkg/transport"
)

// MockTransport records every call for assertions in tests
type MockTransport struct {
	mock.Mock
}

var _ transport.Transport = (*MockTransport)(nil)

func (m *MockTransport) Copy(ctx context.Context, localPath, destination string) error {
	args := m.Called(ctx, localPath, destination)
	return args.Error(0)
}

func (m *MockTransport) Run(ctx context.Context, credentials, command string) error {
	args := m.Called(ctx, credentials, command)
	return args.Error(0)
}

func (m *MockTransport) Close() error {
	args := m.Called()
	return args.Error(0)
}
