package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/skim/internal/core/config"
	"github.com/colonyops/skim/internal/core/diff"
	"github.com/colonyops/skim/internal/core/styles"
	"github.com/colonyops/skim/pkg/executil"
)

// highlighter renders the body lines of a hunk for the hunk panel.
type highlighter interface {
	Lines(f diff.File, h diff.Hunk) []string
}

// newHighlighter picks the highlighter for the configured mode. The delta
// and auto modes probe for delta(1) and fall back to the builtin styles
// when it is not installed.
func newHighlighter(mode string, exec executil.Executor, log zerolog.Logger) highlighter {
	switch mode {
	case config.HighlighterDelta, config.HighlighterAuto:
		if _, err := exec.Run(context.Background(), "delta", "--version"); err != nil {
			if mode == config.HighlighterDelta {
				log.Warn().Err(err).Msg("delta not available, using builtin highlighter")
			}
			return builtinHighlighter{}
		}
		return deltaHighlighter{exec: exec, log: log}
	default:
		return builtinHighlighter{}
	}
}

// builtinHighlighter colors diff lines with lipgloss, one style per kind.
type builtinHighlighter struct{}

func (builtinHighlighter) Lines(_ diff.File, h diff.Hunk) []string {
	lines := make([]string, 0, len(h.Lines))
	for _, l := range h.Lines {
		switch l.Kind {
		case diff.LineAdded:
			lines = append(lines, styles.DiffAddStyle.Render("+"+l.Text))
		case diff.LineRemoved:
			lines = append(lines, styles.DiffDeleteStyle.Render("-"+l.Text))
		default:
			lines = append(lines, styles.DiffContextStyle.Render(" "+l.Text))
		}
	}
	return lines
}

// patchHeaderLines is the number of lines hunkPatch emits before the body.
const patchHeaderLines = 4

// deltaHighlighter shells out to delta(1) in color-only mode, which colors
// input lines without restructuring them, so hunk body lines map 1:1 to
// output lines.
type deltaHighlighter struct {
	exec executil.Executor
	log  zerolog.Logger
}

func (d deltaHighlighter) Lines(f diff.File, h diff.Hunk) []string {
	out, err := d.exec.RunInput(context.Background(), hunkPatch(f, h), "delta", "--color-only", "--paging=never")
	if err != nil {
		d.log.Debug().Err(err).Str("file", f.Path()).Msg("delta failed, using builtin highlighter")
		return builtinHighlighter{}.Lines(f, h)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != patchHeaderLines+len(h.Lines) {
		return builtinHighlighter{}.Lines(f, h)
	}
	return lines[patchHeaderLines:]
}

// hunkPatch rebuilds a minimal unified diff for a single hunk, the input
// delta expects on stdin.
func hunkPatch(f diff.File, h diff.Hunk) []byte {
	oldPath, newPath := f.OldPath, f.NewPath
	if oldPath == "" {
		oldPath = newPath
	}
	if newPath == "" {
		newPath = oldPath
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", oldPath, newPath)
	if f.IsNew {
		b.WriteString("--- /dev/null\n")
	} else {
		fmt.Fprintf(&b, "--- a/%s\n", oldPath)
	}
	if f.IsDelete {
		b.WriteString("+++ /dev/null\n")
	} else {
		fmt.Fprintf(&b, "+++ b/%s\n", newPath)
	}
	fmt.Fprintln(&b, h.Header())
	for _, l := range h.Lines {
		b.WriteString(l.Kind.Marker())
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.Bytes()
}
