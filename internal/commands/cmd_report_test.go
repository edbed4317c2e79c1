package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/skim/internal/skim"
	"github.com/colonyops/skim/pkg/executil"
)

func TestReportCmd_Raw(t *testing.T) {
	app := testApp(t, &executil.RecordingExecutor{})

	out, err := runSkim(t, app, "report", "--raw", "--file", writePatch(t))
	require.NoError(t, err)

	assert.Contains(t, out, "# Review report")
	assert.Contains(t, out, "**Source:**")
	assert.Contains(t, out, "**Session:** none")
	assert.Contains(t, out, "0 of 2 hunks reviewed (0%)")
	assert.Contains(t, out, "## internal/server.go (0/1)")
	assert.Contains(t, out, "- [ ] `@@ -10,7 +10,8 @@` +2 -1 (func (s *Server) Start() error {)")
	assert.Contains(t, out, "## docs/notes.md (0/1)")
}

func TestReportCmd_MarksReviewed(t *testing.T) {
	app := testApp(t, inRepoExecutor())
	patch := writePatch(t)

	files, err := app.Review.LoadDiff(context.Background(), skim.DiffRequest{FilePath: patch})
	require.NoError(t, err)
	app.Review.AttachSession(context.Background(), ".")
	view := app.Review.Project(files)
	require.NoError(t, app.Review.Mark(view.Files[0].Hunks[0]))

	out, err := runSkim(t, app, "report", "--raw", "--file", patch)
	require.NoError(t, err)

	assert.Contains(t, out, "**Session:** skim:main")
	assert.Contains(t, out, "1 of 2 hunks reviewed (50%)")
	assert.Contains(t, out, "## internal/server.go (1/1)")
	assert.Contains(t, out, "- [x] `@@ -10,7 +10,8 @@`")
	assert.Contains(t, out, "- [ ] `@@ -0,0 +1,2 @@`")
}
