package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig(t)
	cfg.Diff.Ignore = []string{"vendor/**", "**/*.pb.go"}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_RequiredFields(t *testing.T) {
	t.Run("git_path", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.GitPath = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git_path")
	})

	t.Run("data_dir", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.DataDir = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data_dir")
	})
}

func TestValidate_DiffMode(t *testing.T) {
	cfg := validConfig(t)

	for _, mode := range []string{"uncommitted", "staged", "branch"} {
		cfg.Diff.Mode = mode
		assert.NoError(t, cfg.Validate(), "mode %q", mode)
	}

	cfg.Diff.Mode = "committed"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diff.mode")
}

func TestValidate_IgnoreGlobs(t *testing.T) {
	cfg := validConfig(t)
	cfg.Diff.Ignore = []string{"ok/**", "[unclosed", "{a,b"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diff.ignore[1]")
	assert.Contains(t, err.Error(), "diff.ignore[2]")
	assert.NotContains(t, err.Error(), "diff.ignore[0]")
}

func TestValidate_Highlighter(t *testing.T) {
	cfg := validConfig(t)

	for _, h := range []string{HighlighterAuto, HighlighterDelta, HighlighterBuiltin} {
		cfg.TUI.Highlighter = h
		assert.NoError(t, cfg.Validate(), "highlighter %q", h)
	}

	cfg.TUI.Highlighter = "chroma"
	assert.Error(t, cfg.Validate())
}
