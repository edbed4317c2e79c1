package diff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/x/ansi"
)

// Parse parses unified diff output into files. ANSI escape sequences are
// stripped first so colorized diffs (git with color.ui=always, delta output)
// parse the same as plain ones.
func Parse(data []byte) ([]File, error) {
	clean := ansi.Strip(string(data))
	if strings.TrimSpace(clean) == "" {
		return nil, nil
	}

	parsed, _, err := gitdiff.Parse(strings.NewReader(clean))
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	files := make([]File, 0, len(parsed))
	for _, pf := range parsed {
		files = append(files, convertFile(pf))
	}
	return files, nil
}

func convertFile(pf *gitdiff.File) File {
	f := File{
		OldPath:  pf.OldName,
		NewPath:  pf.NewName,
		IsNew:    pf.IsNew,
		IsDelete: pf.IsDelete,
		IsRename: pf.IsRename,
		IsBinary: pf.IsBinary,
	}
	for _, frag := range pf.TextFragments {
		f.Hunks = append(f.Hunks, convertFragment(frag))
	}
	return f
}

func convertFragment(frag *gitdiff.TextFragment) Hunk {
	h := Hunk{
		OldStart: frag.OldPosition,
		OldLines: frag.OldLines,
		NewStart: frag.NewPosition,
		NewLines: frag.NewLines,
		Section:  frag.Comment,
		Lines:    make([]Line, 0, len(frag.Lines)),
	}
	for _, line := range frag.Lines {
		h.Lines = append(h.Lines, Line{
			Kind: kindOf(line.Op),
			Text: strings.TrimSuffix(line.Line, "\n"),
		})
	}
	return h
}

func kindOf(op gitdiff.LineOp) LineKind {
	switch op {
	case gitdiff.OpAdd:
		return LineAdded
	case gitdiff.OpDelete:
		return LineRemoved
	default:
		return LineContext
	}
}

// Exclude drops files whose path matches any of the given glob patterns.
// Patterns use doublestar syntax ("vendor/**", "**/*.pb.go").
func Exclude(files []File, patterns []string) []File {
	if len(patterns) == 0 {
		return files
	}

	kept := make([]File, 0, len(files))
	for _, f := range files {
		if !matchAny(patterns, f.Path()) {
			kept = append(kept, f)
		}
	}
	return kept
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			// Invalid patterns are rejected at config validation; never match here.
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
