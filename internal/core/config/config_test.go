package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skim.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("", dataDir)
		require.NoError(t, err)

		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "git", cfg.GitPath)
		assert.Equal(t, "uncommitted", cfg.Diff.Mode)
		assert.Equal(t, "main", cfg.Diff.BaseBranch)
		assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
		assert.Equal(t, HighlighterAuto, cfg.TUI.Highlighter)
		assert.False(t, cfg.Fingerprint.NormalizeWhitespace)
		assert.Equal(t, dataDir, cfg.DataDir)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"), dataDir)
		require.NoError(t, err)
		assert.Equal(t, "git", cfg.GitPath)
	})
}

func TestLoad_File(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfig(t, `
log_level: debug
ledger_path: /tmp/custom-ledger.json
git_path: /usr/local/bin/git
fingerprint:
  normalize_whitespace: true
diff:
  mode: branch
  base_branch: develop
  ignore:
    - "vendor/**"
    - "**/*_gen.go"
tui:
  theme: gruvbox
  highlighter: builtin
`)

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/custom-ledger.json", cfg.LedgerPath)
	assert.Equal(t, "/usr/local/bin/git", cfg.GitPath)
	assert.True(t, cfg.Fingerprint.NormalizeWhitespace)
	assert.Equal(t, "branch", cfg.Diff.Mode)
	assert.Equal(t, "develop", cfg.Diff.BaseBranch)
	assert.Equal(t, []string{"vendor/**", "**/*_gen.go"}, cfg.Diff.Ignore)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, HighlighterBuiltin, cfg.TUI.Highlighter)
	assert.Equal(t, dataDir, cfg.DataDir, "data dir comes from the caller, not the file")
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "diff:\n  base_branch: trunk\n")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "trunk", cfg.Diff.BaseBranch)
	assert.Equal(t, "uncommitted", cfg.Diff.Mode)
	assert.Equal(t, "git", cfg.GitPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "diff: [not\n")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown diff mode",
			content: "diff:\n  mode: everything\n",
			wantErr: "diff.mode",
		},
		{
			name:    "unknown theme",
			content: "tui:\n  theme: solarized-disco\n",
			wantErr: "tui.theme",
		},
		{
			name:    "unknown highlighter",
			content: "tui:\n  highlighter: pygments\n",
			wantErr: "tui.highlighter",
		},
		{
			name:    "unknown log level",
			content: "log_level: loud\n",
			wantErr: "log_level",
		},
		{
			name:    "bad ignore glob",
			content: "diff:\n  ignore:\n    - \"[unclosed\"\n",
			wantErr: "diff.ignore[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path, t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLedgerFile(t *testing.T) {
	t.Run("default under data dir", func(t *testing.T) {
		cfg := Config{DataDir: "/data/skim"}
		assert.Equal(t, filepath.Join("/data/skim", "ledger.json"), cfg.LedgerFile())
	})

	t.Run("explicit path wins", func(t *testing.T) {
		cfg := Config{DataDir: "/data/skim", LedgerPath: "/elsewhere/ledger.json"}
		assert.Equal(t, "/elsewhere/ledger.json", cfg.LedgerFile())
	})
}
