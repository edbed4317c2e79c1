package skim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/colonyops/skim/internal/core/config"
	"github.com/colonyops/skim/internal/core/diff"
	"github.com/colonyops/skim/internal/core/git"
	"github.com/colonyops/skim/internal/core/review"
)

// DiffRequest describes where the changes under review come from. Reader wins
// over FilePath, FilePath wins over git. Unset git fields fall back to the
// configured defaults.
type DiffRequest struct {
	Mode       string    // uncommitted, staged, branch
	BaseBranch string    // comparison base for branch mode
	FilePath   string    // read a patch file instead of invoking git
	Reader     io.Reader // read a patch stream, e.g. piped stdin
	Dir        string    // working directory for git invocations
}

// ReviewService orchestrates skim review operations: session detection, diff
// acquisition, and joining diffs against the ledger.
type ReviewService struct {
	config        *config.Config
	ledger        *review.Ledger
	git           git.Git
	log           zerolog.Logger
	fingerprinter review.Fingerprinter
	projector     review.Projector
}

// NewReviewService creates a new ReviewService.
func NewReviewService(cfg *config.Config, ledger *review.Ledger, gitClient git.Git, log zerolog.Logger) *ReviewService {
	f := review.NewFingerprinter(cfg.Fingerprint.NormalizeWhitespace)
	return &ReviewService{
		config:        cfg,
		ledger:        ledger,
		git:           gitClient,
		log:           log,
		fingerprinter: f,
		projector:     review.NewProjector(f, ledger),
	}
}

// AttachSession detects the repo/branch identity for dir and selects it on
// the ledger so marks land in the right session. Outside a git work tree skim
// degrades to sessionless mode: review state is global and nothing
// session-scoped is written.
func (s *ReviewService) AttachSession(ctx context.Context, dir string) (git.Identity, bool) {
	id, err := git.DetectIdentity(ctx, s.git, dir)
	if err != nil {
		if errors.Is(err, git.ErrNoRepository) {
			s.log.Debug().Str("dir", dir).Msg("not in a git repository, running sessionless")
		} else {
			s.log.Warn().Err(err).Msg("session detection failed, running sessionless")
		}
		return git.Identity{}, false
	}

	s.ledger.SelectSession(id.SessionID, id.RepoName, id.BranchName)
	s.log.Debug().Str("session", id.SessionID).Msg("session attached")
	return id, true
}

// LoadDiff acquires and parses the diff described by req, with the configured
// ignore globs already applied.
func (s *ReviewService) LoadDiff(ctx context.Context, req DiffRequest) ([]diff.File, error) {
	raw, err := s.readDiff(ctx, req)
	if err != nil {
		return nil, err
	}

	files, err := diff.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	files = diff.Exclude(files, s.config.Diff.Ignore)

	s.log.Debug().
		Ctx(ctx).
		Int("files", len(files)).
		Str("source", s.Describe(req)).
		Msg("diff loaded")
	return files, nil
}

func (s *ReviewService) readDiff(ctx context.Context, req DiffRequest) ([]byte, error) {
	switch {
	case req.Reader != nil:
		data, err := io.ReadAll(req.Reader)
		if err != nil {
			return nil, fmt.Errorf("read diff stream: %w", err)
		}
		return data, nil

	case req.FilePath != "":
		data, err := os.ReadFile(req.FilePath)
		if err != nil {
			return nil, fmt.Errorf("read diff file: %w", err)
		}
		return data, nil

	default:
		opts, err := s.diffOptions(req)
		if err != nil {
			return nil, err
		}
		out, err := s.git.GetDiff(ctx, req.Dir, opts)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	}
}

// diffOptions resolves req's git fields against the configured defaults.
func (s *ReviewService) diffOptions(req DiffRequest) (git.DiffOptions, error) {
	name := req.Mode
	if name == "" {
		name = s.config.Diff.Mode
	}
	mode, err := git.ParseDiffMode(name)
	if err != nil {
		return git.DiffOptions{}, err
	}

	base := req.BaseBranch
	if base == "" {
		base = s.config.Diff.BaseBranch
	}

	return git.DiffOptions{Mode: mode, BaseBranch: base}, nil
}

// Describe returns a short human description of a diff source, e.g. for the
// review screen header.
func (s *ReviewService) Describe(req DiffRequest) string {
	switch {
	case req.Reader != nil:
		return "stdin"
	case req.FilePath != "":
		return req.FilePath
	default:
		opts, err := s.diffOptions(req)
		if err != nil {
			return "unknown"
		}
		return git.DescribeDiffMode(opts)
	}
}

// Project joins files against the ledger, annotating every hunk with its
// fingerprint and review status.
func (s *ReviewService) Project(files []diff.File) review.View {
	return s.projector.Project(files)
}

// Mark records a hunk as reviewed in the active session and persists.
func (s *ReviewService) Mark(hv review.HunkView) error {
	return s.ledger.Mark(hv.Fingerprint, review.ContextSnippet(hv.Hunk))
}

// Unmark withdraws the active session's review of a hunk and persists.
func (s *ReviewService) Unmark(hv review.HunkView) error {
	return s.ledger.Unmark(hv.Fingerprint)
}
