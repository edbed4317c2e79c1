package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/colonyops/skim/internal/core/git"
	"github.com/colonyops/skim/internal/core/styles"
)

// Validate checks that the configuration is valid. It is purely structural;
// I/O concerns like whether the git binary exists surface at point of use.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("git_path", c.GitPath, notEmpty),
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("log_level", c.LogLevel, logLevelKnown),
		criterio.Run("diff.mode", c.Diff.Mode, diffModeKnown),
		criterio.Run("tui.theme", c.TUI.Theme, themeKnown),
		criterio.Run("tui.highlighter", c.TUI.Highlighter, highlighterKnown),
		c.validateIgnoreGlobs(),
	)
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func logLevelKnown(level string) error {
	if level == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

func diffModeKnown(mode string) error {
	_, err := git.ParseDiffMode(mode)
	return err
}

func themeKnown(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (have: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func highlighterKnown(name string) error {
	switch name {
	case "", HighlighterAuto, HighlighterDelta, HighlighterBuiltin:
		return nil
	default:
		return fmt.Errorf("unknown highlighter %q (have: %s, %s, %s)",
			name, HighlighterAuto, HighlighterDelta, HighlighterBuiltin)
	}
}

func (c *Config) validateIgnoreGlobs() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Diff.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("diff.ignore[%d]", i), fmt.Errorf("invalid glob pattern %q", pattern))
		}
	}
	return errs.ToError()
}
