package executil

import (
	"context"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Dir   string
	Cmd   string
	Args  []string
	Input []byte
}

// RecordingExecutor captures commands for testing.
// Configure Outputs and Errors maps to control return values.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Outputs maps command keys to their output. The key is the command
	// name plus its first argument when present (e.g. "git branch"),
	// falling back to the bare command name (e.g. "git"). The two-part
	// key lets a single test script different subcommands independently.
	Outputs map[string][]byte

	// Errors maps command keys to their error, using the same key scheme
	// as Outputs.
	Errors map[string]error
}

// Run records the command and returns configured output/error.
func (e *RecordingExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record("", nil, cmd, args...)
}

// RunDir records the command with directory and returns configured output/error.
func (e *RecordingExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	return e.record(dir, nil, cmd, args...)
}

// RunInput records the command with its stdin and returns configured output/error.
func (e *RecordingExecutor) RunInput(ctx context.Context, input []byte, cmd string, args ...string) ([]byte, error) {
	return e.record("", input, cmd, args...)
}

func (e *RecordingExecutor) record(dir string, input []byte, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{
		Dir:   dir,
		Cmd:   cmd,
		Args:  args,
		Input: input,
	})

	keys := []string{cmd}
	if len(args) > 0 {
		keys = []string{cmd + " " + args[0], cmd}
	}

	var out []byte
	var err error

	for _, key := range keys {
		if e.Outputs != nil {
			if v, ok := e.Outputs[key]; ok {
				out = v
				break
			}
		}
	}
	for _, key := range keys {
		if e.Errors != nil {
			if v, ok := e.Errors[key]; ok {
				err = v
				break
			}
		}
	}

	return out, err
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
