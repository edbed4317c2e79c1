// Package diff provides skim's diff domain model: changed files, hunks, and
// typed lines parsed from unified diff output.
package diff

import (
	"strconv"
)

// LineKind represents the role of a line in a unified diff hunk.
type LineKind int

const (
	LineContext LineKind = iota // unchanged line present in both sides
	LineAdded                   // line present only in the new side
	LineRemoved                 // line present only in the old side
)

// Marker returns the one-character unified diff prefix for the kind.
func (k LineKind) Marker() string {
	switch k {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line is a single diff line. Text holds the content without the leading
// diff marker and without the trailing newline.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a contiguous block of changes with its surrounding context lines.
type Hunk struct {
	OldStart int64
	OldLines int64
	NewStart int64
	NewLines int64
	Section  string // text after the closing @@, usually the enclosing declaration
	Lines    []Line
}

// Header renders the unified diff hunk header, e.g. "@@ -10,7 +10,8 @@ func main()".
func (h Hunk) Header() string {
	header := h.ShortHeader()
	if h.Section != "" {
		header += " " + h.Section
	}
	return header
}

// ShortHeader renders the hunk header without the trailing section text.
func (h Hunk) ShortHeader() string {
	return "@@ -" + formatRange(h.OldStart, h.OldLines) +
		" +" + formatRange(h.NewStart, h.NewLines) + " @@"
}

// Changed returns only the added and removed lines, preserving hunk order.
func (h Hunk) Changed() []Line {
	var changed []Line
	for _, line := range h.Lines {
		if line.Kind != LineContext {
			changed = append(changed, line)
		}
	}
	return changed
}

// Stats counts additions and deletions in the hunk.
func (h Hunk) Stats() (additions, deletions int) {
	for _, line := range h.Lines {
		switch line.Kind {
		case LineAdded:
			additions++
		case LineRemoved:
			deletions++
		}
	}
	return additions, deletions
}

// formatRange formats a hunk range (position, length) for unified diff format.
func formatRange(pos, length int64) string {
	if length == 1 {
		return strconv.FormatInt(pos, 10)
	}
	return strconv.FormatInt(pos, 10) + "," + strconv.FormatInt(length, 10)
}

// File is a single changed file with its hunks.
type File struct {
	OldPath  string
	NewPath  string
	IsNew    bool
	IsDelete bool
	IsRename bool
	IsBinary bool
	Hunks    []Hunk
}

// Path returns the display path for the file: the new path unless the file
// was deleted.
func (f File) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// Stats counts additions and deletions across all hunks.
func (f File) Stats() (additions, deletions int) {
	for _, h := range f.Hunks {
		a, d := h.Stats()
		additions += a
		deletions += d
	}
	return additions, deletions
}

// DisplayName returns the path annotated for renames, e.g. "old -> new".
func (f File) DisplayName() string {
	if f.IsRename && f.OldPath != "" && f.NewPath != "" && f.OldPath != f.NewPath {
		return f.OldPath + " -> " + f.NewPath
	}
	return f.Path()
}
