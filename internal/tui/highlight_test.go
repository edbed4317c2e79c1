package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/skim/internal/core/config"
	"github.com/colonyops/skim/internal/core/diff"
	"github.com/colonyops/skim/pkg/executil"
	"github.com/colonyops/skim/pkg/tuitest"
)

func highlightFixture() (diff.File, diff.Hunk) {
	h := diff.Hunk{
		OldStart: 3,
		OldLines: 2,
		NewStart: 3,
		NewLines: 2,
		Section:  "func main() {",
		Lines: []diff.Line{
			{Kind: diff.LineContext, Text: "\tx := 1"},
			{Kind: diff.LineRemoved, Text: "\tprintln(x)"},
			{Kind: diff.LineAdded, Text: "\tfmt.Println(x)"},
		},
	}
	f := diff.File{OldPath: "main.go", NewPath: "main.go", Hunks: []diff.Hunk{h}}
	return f, h
}

func TestBuiltinHighlighter(t *testing.T) {
	f, h := highlightFixture()

	lines := builtinHighlighter{}.Lines(f, h)
	require.Len(t, lines, 3)
	assert.Equal(t, " \tx := 1", tuitest.StripANSI(lines[0]))
	assert.Equal(t, "-\tprintln(x)", tuitest.StripANSI(lines[1]))
	assert.Equal(t, "+\tfmt.Println(x)", tuitest.StripANSI(lines[2]))
}

func TestDeltaHighlighter(t *testing.T) {
	f, h := highlightFixture()

	t.Run("maps output lines onto the hunk body", func(t *testing.T) {
		colored := strings.Join([]string{
			"\x1b[34mmain.go\x1b[0m",
			"\x1b[34m───────\x1b[0m",
			"",
			"\x1b[36m@@ -3,2 +3,2 @@ func main() {\x1b[0m",
			"\x1b[38;5;238m \tx := 1\x1b[0m",
			"\x1b[31m-\tprintln(x)\x1b[0m",
			"\x1b[32m+\tfmt.Println(x)\x1b[0m",
		}, "\n") + "\n"
		exec := &executil.RecordingExecutor{
			Outputs: map[string][]byte{"delta --color-only": []byte(colored)},
		}

		lines := deltaHighlighter{exec: exec, log: zerolog.Nop()}.Lines(f, h)
		require.Len(t, lines, 3)
		assert.Equal(t, "\x1b[31m-\tprintln(x)\x1b[0m", lines[1])

		require.Len(t, exec.Commands, 1)
		cmd := exec.Commands[0]
		assert.Equal(t, "delta", cmd.Cmd)
		assert.Equal(t, []string{"--color-only", "--paging=never"}, cmd.Args)
		assert.Equal(t, string(hunkPatch(f, h)), string(cmd.Input))
	})

	t.Run("falls back when the line count drifts", func(t *testing.T) {
		exec := &executil.RecordingExecutor{
			Outputs: map[string][]byte{"delta --color-only": []byte("mangled\noutput\n")},
		}

		lines := deltaHighlighter{exec: exec, log: zerolog.Nop()}.Lines(f, h)
		require.Len(t, lines, 3)
		assert.Equal(t, "+\tfmt.Println(x)", tuitest.StripANSI(lines[2]))
	})

	t.Run("falls back when delta fails", func(t *testing.T) {
		exec := &executil.RecordingExecutor{
			Errors: map[string]error{"delta --color-only": errors.New("broken pipe")},
		}

		lines := deltaHighlighter{exec: exec, log: zerolog.Nop()}.Lines(f, h)
		require.Len(t, lines, 3)
		assert.Equal(t, "-\tprintln(x)", tuitest.StripANSI(lines[1]))
	})
}

func TestNewHighlighter(t *testing.T) {
	t.Run("builtin skips the probe", func(t *testing.T) {
		exec := &executil.RecordingExecutor{}

		h := newHighlighter(config.HighlighterBuiltin, exec, zerolog.Nop())

		_, ok := h.(builtinHighlighter)
		assert.True(t, ok)
		assert.Empty(t, exec.Commands, "builtin must not shell out")
	})

	t.Run("delta when the probe succeeds", func(t *testing.T) {
		exec := &executil.RecordingExecutor{
			Outputs: map[string][]byte{"delta --version": []byte("delta 0.18.2\n")},
		}

		h := newHighlighter(config.HighlighterDelta, exec, zerolog.Nop())

		_, ok := h.(deltaHighlighter)
		assert.True(t, ok)
		require.Len(t, exec.Commands, 1)
		assert.Equal(t, []string{"--version"}, exec.Commands[0].Args)
	})

	t.Run("delta falls back when not installed", func(t *testing.T) {
		exec := &executil.RecordingExecutor{
			Errors: map[string]error{"delta --version": errors.New("executable file not found")},
		}

		h := newHighlighter(config.HighlighterDelta, exec, zerolog.Nop())

		_, ok := h.(builtinHighlighter)
		assert.True(t, ok)
	})

	t.Run("auto falls back when not installed", func(t *testing.T) {
		exec := &executil.RecordingExecutor{
			Errors: map[string]error{"delta --version": errors.New("executable file not found")},
		}

		h := newHighlighter(config.HighlighterAuto, exec, zerolog.Nop())

		_, ok := h.(builtinHighlighter)
		assert.True(t, ok)
	})
}

func TestHunkPatch(t *testing.T) {
	t.Run("modified file", func(t *testing.T) {
		f, h := highlightFixture()

		want := strings.Join([]string{
			"diff --git a/main.go b/main.go",
			"--- a/main.go",
			"+++ b/main.go",
			"@@ -3,2 +3,2 @@ func main() {",
			" \tx := 1",
			"-\tprintln(x)",
			"+\tfmt.Println(x)",
		}, "\n") + "\n"
		assert.Equal(t, want, string(hunkPatch(f, h)))
	})

	t.Run("new file diffs against /dev/null", func(t *testing.T) {
		h := diff.Hunk{NewStart: 1, NewLines: 1, Lines: []diff.Line{{Kind: diff.LineAdded, Text: "hello"}}}
		f := diff.File{NewPath: "notes.md", IsNew: true, Hunks: []diff.Hunk{h}}

		got := string(hunkPatch(f, h))
		assert.Contains(t, got, "diff --git a/notes.md b/notes.md\n")
		assert.Contains(t, got, "--- /dev/null\n")
		assert.Contains(t, got, "+++ b/notes.md\n")
		assert.Contains(t, got, "@@ -0,0 +1 @@\n+hello\n")
	})

	t.Run("deleted file diffs against /dev/null", func(t *testing.T) {
		h := diff.Hunk{OldStart: 1, OldLines: 1, Lines: []diff.Line{{Kind: diff.LineRemoved, Text: "gone"}}}
		f := diff.File{OldPath: "legacy.txt", IsDelete: true, Hunks: []diff.Hunk{h}}

		got := string(hunkPatch(f, h))
		assert.Contains(t, got, "diff --git a/legacy.txt b/legacy.txt\n")
		assert.Contains(t, got, "--- a/legacy.txt\n")
		assert.Contains(t, got, "+++ /dev/null\n")
		assert.Contains(t, got, "@@ -1 +0,0 @@\n-gone\n")
	})
}
