package skim

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/skim/internal/core/config"
	"github.com/colonyops/skim/internal/core/git"
	"github.com/colonyops/skim/internal/core/review"
)

const sampleDiff = `diff --git a/internal/server.go b/internal/server.go
index 1234567..89abcde 100644
--- a/internal/server.go
+++ b/internal/server.go
@@ -10,7 +10,8 @@ func (s *Server) Start() error {
     ln, err := net.Listen("tcp", s.addr)
     if err != nil {
-        return err
+        return fmt.Errorf("listen: %w", err)
     }
+    s.ln = ln
     go s.serve(ln)
     return nil
 }
diff --git a/vendor/dep/dep.go b/vendor/dep/dep.go
index 1111111..2222222 100644
--- a/vendor/dep/dep.go
+++ b/vendor/dep/dep.go
@@ -1,2 +1,2 @@
-old
+new
 package dep
`

// gitStub implements git.Git with canned responses.
type gitStub struct {
	isRepo  bool
	remote  string
	branch  string
	top     string
	diff    string
	diffErr error

	gotDir  string
	gotOpts git.DiffOptions
}

func (s *gitStub) IsRepo(ctx context.Context, dir string) bool { return s.isRepo }

func (s *gitStub) RemoteURL(ctx context.Context, dir string) (string, error) {
	if s.remote == "" {
		return "", errors.New("no remote")
	}
	return s.remote, nil
}

func (s *gitStub) Branch(ctx context.Context, dir string) (string, error) {
	return s.branch, nil
}

func (s *gitStub) TopLevel(ctx context.Context, dir string) (string, error) {
	return s.top, nil
}

func (s *gitStub) GetDiff(ctx context.Context, dir string, opts git.DiffOptions) (string, error) {
	s.gotDir = dir
	s.gotOpts = opts
	return s.diff, s.diffErr
}

func testService(t *testing.T, stub *gitStub, mutate func(*config.Config)) *ReviewService {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())

	ledger := review.Open(cfg.LedgerFile(), zerolog.Nop())
	return NewReviewService(&cfg, ledger, stub, zerolog.Nop())
}

func TestReviewService_AttachSession(t *testing.T) {
	t.Run("inside a repository", func(t *testing.T) {
		stub := &gitStub{isRepo: true, remote: "git@github.com:colonyops/skim.git", branch: "main"}
		svc := testService(t, stub, nil)

		id, ok := svc.AttachSession(context.Background(), ".")
		require.True(t, ok)
		assert.Equal(t, "skim:main", id.SessionID)

		info, active := svc.ledger.ActiveSession()
		require.True(t, active)
		assert.Equal(t, "skim", info.RepoName)
		assert.Equal(t, "main", info.BranchName)
	})

	t.Run("outside a repository", func(t *testing.T) {
		svc := testService(t, &gitStub{isRepo: false}, nil)

		_, ok := svc.AttachSession(context.Background(), ".")
		assert.False(t, ok)

		_, active := svc.ledger.ActiveSession()
		assert.False(t, active, "must stay sessionless")
	})
}

func TestReviewService_LoadDiff(t *testing.T) {
	t.Run("from git with configured defaults", func(t *testing.T) {
		stub := &gitStub{diff: sampleDiff}
		svc := testService(t, stub, nil)

		files, err := svc.LoadDiff(context.Background(), DiffRequest{Dir: "/work/repo"})
		require.NoError(t, err)
		require.Len(t, files, 2)

		assert.Equal(t, "/work/repo", stub.gotDir)
		assert.Equal(t, git.DiffUncommitted, stub.gotOpts.Mode)
	})

	t.Run("mode and base override", func(t *testing.T) {
		stub := &gitStub{diff: sampleDiff}
		svc := testService(t, stub, nil)

		_, err := svc.LoadDiff(context.Background(), DiffRequest{Mode: "branch", BaseBranch: "develop"})
		require.NoError(t, err)
		assert.Equal(t, git.DiffBranch, stub.gotOpts.Mode)
		assert.Equal(t, "develop", stub.gotOpts.BaseBranch)
	})

	t.Run("branch mode falls back to configured base", func(t *testing.T) {
		stub := &gitStub{diff: sampleDiff}
		svc := testService(t, stub, func(cfg *config.Config) {
			cfg.Diff.BaseBranch = "trunk"
		})

		_, err := svc.LoadDiff(context.Background(), DiffRequest{Mode: "branch"})
		require.NoError(t, err)
		assert.Equal(t, "trunk", stub.gotOpts.BaseBranch)
	})

	t.Run("unknown mode", func(t *testing.T) {
		svc := testService(t, &gitStub{}, nil)

		_, err := svc.LoadDiff(context.Background(), DiffRequest{Mode: "rebase"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown diff mode")
	})

	t.Run("git failure propagates", func(t *testing.T) {
		stub := &gitStub{diffErr: errors.New("not a git repository")}
		svc := testService(t, stub, nil)

		_, err := svc.LoadDiff(context.Background(), DiffRequest{})
		assert.Error(t, err)
	})

	t.Run("from reader", func(t *testing.T) {
		stub := &gitStub{}
		svc := testService(t, stub, nil)

		files, err := svc.LoadDiff(context.Background(), DiffRequest{Reader: strings.NewReader(sampleDiff)})
		require.NoError(t, err)
		assert.Len(t, files, 2)
		assert.Empty(t, stub.gotDir, "git must not be invoked")
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "changes.patch")
		require.NoError(t, os.WriteFile(path, []byte(sampleDiff), 0o644))
		svc := testService(t, &gitStub{}, nil)

		files, err := svc.LoadDiff(context.Background(), DiffRequest{FilePath: path})
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		svc := testService(t, &gitStub{}, nil)

		_, err := svc.LoadDiff(context.Background(), DiffRequest{FilePath: filepath.Join(t.TempDir(), "nope.patch")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read diff file")
	})

	t.Run("ignore globs applied", func(t *testing.T) {
		svc := testService(t, &gitStub{diff: sampleDiff}, func(cfg *config.Config) {
			cfg.Diff.Ignore = []string{"vendor/**"}
		})

		files, err := svc.LoadDiff(context.Background(), DiffRequest{})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "internal/server.go", files[0].Path())
	})

	t.Run("empty diff", func(t *testing.T) {
		svc := testService(t, &gitStub{diff: ""}, nil)

		files, err := svc.LoadDiff(context.Background(), DiffRequest{})
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestReviewService_Describe(t *testing.T) {
	svc := testService(t, &gitStub{}, nil)

	assert.Equal(t, "stdin", svc.Describe(DiffRequest{Reader: strings.NewReader("")}))
	assert.Equal(t, "a.patch", svc.Describe(DiffRequest{FilePath: "a.patch"}))
	assert.Equal(t, "uncommitted changes", svc.Describe(DiffRequest{}))
	assert.Equal(t, "staged changes", svc.Describe(DiffRequest{Mode: "staged"}))
	assert.Equal(t, "changes vs main", svc.Describe(DiffRequest{Mode: "branch"}))
}

func TestReviewService_MarkAndProject(t *testing.T) {
	stub := &gitStub{isRepo: true, remote: "git@github.com:colonyops/skim.git", branch: "main", diff: sampleDiff}
	svc := testService(t, stub, nil)

	_, ok := svc.AttachSession(context.Background(), ".")
	require.True(t, ok)

	files, err := svc.LoadDiff(context.Background(), DiffRequest{})
	require.NoError(t, err)

	view := svc.Project(files)
	require.Equal(t, 2, view.TotalHunks)
	assert.Zero(t, view.ReviewedHunks)

	require.NoError(t, svc.Mark(view.Files[0].Hunks[0]))

	view = svc.Project(files)
	assert.Equal(t, 1, view.ReviewedHunks)
	assert.True(t, view.Files[0].Hunks[0].Reviewed)

	rec, found := svc.ledger.Record(view.Files[0].Hunks[0].Fingerprint)
	require.True(t, found)
	assert.NotEmpty(t, rec.Context, "mark stores a context snippet")

	require.NoError(t, svc.Unmark(view.Files[0].Hunks[0]))
	view = svc.Project(files)
	assert.Zero(t, view.ReviewedHunks)
}
