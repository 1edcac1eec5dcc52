package runner

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, cmd Command) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}

// Expect registers a single expected invocation of name with exactly args.
func (m *MockRunner) Expect(output string, err error, name string, args ...string) *mock.Call {
	return m.On("Run", mock.Anything, New(name, args...)).Return(output, err).Once()
}
