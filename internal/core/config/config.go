// Package config handles configuration loading and validation for skim.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/skim/internal/core/styles"
)

// Supported syntax highlighter backends for the hunk pane.
const (
	// HighlighterAuto uses delta when it is on PATH, the builtin otherwise.
	HighlighterAuto = "auto"
	// HighlighterDelta pipes hunks through delta(1).
	HighlighterDelta = "delta"
	// HighlighterBuiltin renders hunks with skim's own diff styling.
	HighlighterBuiltin = "builtin"
)

// Config holds the application configuration.
type Config struct {
	LogLevel    string            `yaml:"log_level"`
	LedgerPath  string            `yaml:"ledger_path"`
	GitPath     string            `yaml:"git_path"`
	Fingerprint FingerprintConfig `yaml:"fingerprint"`
	Diff        DiffConfig        `yaml:"diff"`
	TUI         TUIConfig         `yaml:"tui"`
	DataDir     string            `yaml:"-"` // set by caller, not from config file
}

// FingerprintConfig controls how hunks are hashed for the ledger.
type FingerprintConfig struct {
	// NormalizeWhitespace collapses whitespace runs before hashing so
	// formatting-only edits keep their review state. Changing it orphans
	// existing ledger entries, so it defaults to off.
	NormalizeWhitespace bool `yaml:"normalize_whitespace"`
}

// DiffConfig holds defaults for diff acquisition.
type DiffConfig struct {
	Mode       string   `yaml:"mode"`        // uncommitted, staged, branch
	BaseBranch string   `yaml:"base_branch"` // comparison base for branch mode
	Ignore     []string `yaml:"ignore"`      // glob patterns for paths to skip
}

// TUIConfig holds review screen settings.
type TUIConfig struct {
	Theme       string `yaml:"theme"`
	Highlighter string `yaml:"highlighter"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
		GitPath:  "git",
		Diff: DiffConfig{
			Mode:       "uncommitted",
			BaseBranch: "main",
		},
		TUI: TUIConfig{
			Theme:       styles.DefaultTheme,
			Highlighter: HighlighterAuto,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.GitPath == "" {
		c.GitPath = defaults.GitPath
	}
	if c.Diff.Mode == "" {
		c.Diff.Mode = defaults.Diff.Mode
	}
	if c.Diff.BaseBranch == "" {
		c.Diff.BaseBranch = defaults.Diff.BaseBranch
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.Highlighter == "" {
		c.TUI.Highlighter = defaults.TUI.Highlighter
	}
}

// LedgerFile returns the path to the review ledger JSON file.
func (c *Config) LedgerFile() string {
	if c.LedgerPath != "" {
		return c.LedgerPath
	}
	return filepath.Join(c.DataDir, "ledger.json")
}
