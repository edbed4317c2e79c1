package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineKindMarker(t *testing.T) {
	assert.Equal(t, "+", LineAdded.Marker())
	assert.Equal(t, "-", LineRemoved.Marker())
	assert.Equal(t, " ", LineContext.Marker())
}

func TestHunkHeader(t *testing.T) {
	tests := []struct {
		name string
		hunk Hunk
		want string
	}{
		{
			name: "full ranges with section",
			hunk: Hunk{OldStart: 10, OldLines: 7, NewStart: 10, NewLines: 8, Section: "func (s *Server) Start() error {"},
			want: "@@ -10,7 +10,8 @@ func (s *Server) Start() error {",
		},
		{
			name: "single line ranges omit count",
			hunk: Hunk{OldStart: 5, OldLines: 1, NewStart: 5, NewLines: 1},
			want: "@@ -5 +5 @@",
		},
		{
			name: "new file range",
			hunk: Hunk{OldStart: 0, OldLines: 0, NewStart: 1, NewLines: 2},
			want: "@@ -0,0 +1,2 @@",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hunk.Header())
		})
	}
}

func TestHunkChanged(t *testing.T) {
	hunk := Hunk{
		Lines: []Line{
			{Kind: LineContext, Text: "unchanged"},
			{Kind: LineRemoved, Text: "first removed"},
			{Kind: LineAdded, Text: "first added"},
			{Kind: LineContext, Text: "also unchanged"},
			{Kind: LineRemoved, Text: "second removed"},
			{Kind: LineAdded, Text: "second added"},
		},
	}

	changed := hunk.Changed()

	// Interleaved order is preserved, not grouped by kind.
	assert.Equal(t, []Line{
		{Kind: LineRemoved, Text: "first removed"},
		{Kind: LineAdded, Text: "first added"},
		{Kind: LineRemoved, Text: "second removed"},
		{Kind: LineAdded, Text: "second added"},
	}, changed)
}

func TestHunkChanged_ContextOnly(t *testing.T) {
	hunk := Hunk{
		Lines: []Line{
			{Kind: LineContext, Text: "a"},
			{Kind: LineContext, Text: "b"},
		},
	}

	assert.Empty(t, hunk.Changed())
}

func TestHunkStats(t *testing.T) {
	hunk := Hunk{
		Lines: []Line{
			{Kind: LineContext, Text: "ctx"},
			{Kind: LineAdded, Text: "add1"},
			{Kind: LineAdded, Text: "add2"},
			{Kind: LineRemoved, Text: "del1"},
		},
	}

	additions, deletions := hunk.Stats()
	assert.Equal(t, 2, additions)
	assert.Equal(t, 1, deletions)
}

func TestFileStats(t *testing.T) {
	file := File{
		Hunks: []Hunk{
			{Lines: []Line{{Kind: LineAdded, Text: "a"}, {Kind: LineRemoved, Text: "b"}}},
			{Lines: []Line{{Kind: LineAdded, Text: "c"}}},
		},
	}

	additions, deletions := file.Stats()
	assert.Equal(t, 2, additions)
	assert.Equal(t, 1, deletions)
}

func TestFilePath(t *testing.T) {
	tests := []struct {
		name string
		file File
		want string
	}{
		{
			name: "modified file uses new path",
			file: File{OldPath: "main.go", NewPath: "main.go"},
			want: "main.go",
		},
		{
			name: "deleted file falls back to old path",
			file: File{OldPath: "legacy.go", IsDelete: true},
			want: "legacy.go",
		},
		{
			name: "renamed file uses new path",
			file: File{OldPath: "old.go", NewPath: "new.go", IsRename: true},
			want: "new.go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.file.Path())
		})
	}
}

func TestFileDisplayName(t *testing.T) {
	renamed := File{OldPath: "old.go", NewPath: "new.go", IsRename: true}
	assert.Equal(t, "old.go -> new.go", renamed.DisplayName())

	modified := File{OldPath: "main.go", NewPath: "main.go"}
	assert.Equal(t, "main.go", modified.DisplayName())
}
