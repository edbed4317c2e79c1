package git

import (
	"context"
	"errors"
	"testing"

	"github.com/colonyops/skim/pkg/executil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Branch(t *testing.T) {
	t.Run("on a branch", func(t *testing.T) {
		rec := &executil.RecordingExecutor{
			Outputs: map[string][]byte{
				"git branch": []byte("feature/auth\n"),
			},
		}

		e := NewExecutor("git", rec)
		branch, err := e.Branch(context.Background(), "/repo")
		require.NoError(t, err)
		assert.Equal(t, "feature/auth", branch)
		assert.Len(t, rec.Commands, 1)
	})

	t.Run("detached HEAD falls back to short SHA", func(t *testing.T) {
		rec := &executil.RecordingExecutor{
			Outputs: map[string][]byte{
				"git branch":    []byte("\n"),
				"git rev-parse": []byte("abc1234\n"),
			},
		}

		e := NewExecutor("git", rec)
		branch, err := e.Branch(context.Background(), "/repo")
		require.NoError(t, err)
		assert.Equal(t, "abc1234", branch)
		assert.Len(t, rec.Commands, 2)
	})

	t.Run("command failure", func(t *testing.T) {
		rec := &executil.RecordingExecutor{
			Errors: map[string]error{
				"git branch": errors.New("exit status 128"),
			},
		}

		e := NewExecutor("git", rec)
		_, err := e.Branch(context.Background(), "/repo")
		require.Error(t, err)
	})
}

func TestExecutor_IsRepo(t *testing.T) {
	t.Run("inside work tree", func(t *testing.T) {
		rec := &executil.RecordingExecutor{
			Outputs: map[string][]byte{
				"git rev-parse": []byte("true\n"),
			},
		}

		e := NewExecutor("git", rec)
		assert.True(t, e.IsRepo(context.Background(), "/repo"))
	})

	t.Run("outside work tree", func(t *testing.T) {
		rec := &executil.RecordingExecutor{
			Errors: map[string]error{
				"git rev-parse": errors.New("exit status 128"),
			},
		}

		e := NewExecutor("git", rec)
		assert.False(t, e.IsRepo(context.Background(), "/tmp"))
	})
}

func TestExecutor_RemoteURL(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git remote": []byte("git@github.com:colonyops/skim.git\n"),
		},
	}

	e := NewExecutor("git", rec)
	url, err := e.RemoteURL(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:colonyops/skim.git", url)

	require.Len(t, rec.Commands, 1)
	assert.Equal(t, []string{"remote", "get-url", "origin"}, rec.Commands[0].Args)
}

func TestExecutor_TopLevel(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git rev-parse": []byte("/home/dev/code/skim\n"),
		},
	}

	e := NewExecutor("git", rec)
	top, err := e.TopLevel(context.Background(), "/home/dev/code/skim/internal")
	require.NoError(t, err)
	assert.Equal(t, "/home/dev/code/skim", top)
}
