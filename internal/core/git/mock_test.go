package git

import "context"

// mockExecutor implements executil.Executor with function hooks for tests.
type mockExecutor struct {
	runFunc      func(ctx context.Context, cmd string, args ...string) ([]byte, error)
	runDirFunc   func(ctx context.Context, dir, cmd string, args ...string) ([]byte, error)
	runInputFunc func(ctx context.Context, input []byte, cmd string, args ...string) ([]byte, error)
}

func (m *mockExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, cmd, args...)
	}
	return nil, nil
}

func (m *mockExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	if m.runDirFunc != nil {
		return m.runDirFunc(ctx, dir, cmd, args...)
	}
	return nil, nil
}

func (m *mockExecutor) RunInput(ctx context.Context, input []byte, cmd string, args ...string) ([]byte, error) {
	if m.runInputFunc != nil {
		return m.runInputFunc(ctx, input, cmd, args...)
	}
	return nil, nil
}
