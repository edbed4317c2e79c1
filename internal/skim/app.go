// Package skim wires skim's core pieces into the services consumed by
// commands and the TUI.
package skim

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/skim/internal/core/config"
	"github.com/colonyops/skim/internal/core/git"
	"github.com/colonyops/skim/internal/core/review"
	"github.com/colonyops/skim/pkg/executil"
)

// App is the central entry point for all skim operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Review *ReviewService

	Config *config.Config
	Ledger *review.Ledger
	Git    git.Git
	Exec   executil.Executor
}

// NewApp constructs an App from explicit dependencies. The executor is the
// one the git client wraps, shared so the TUI can shell out to delta.
func NewApp(cfg *config.Config, ledger *review.Ledger, gitClient git.Git, exec executil.Executor, log zerolog.Logger) *App {
	return &App{
		Review: NewReviewService(cfg, ledger, gitClient, log),
		Config: cfg,
		Ledger: ledger,
		Git:    gitClient,
		Exec:   exec,
	}
}
