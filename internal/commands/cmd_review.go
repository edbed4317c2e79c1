package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/skim/internal/core/logging"
	"github.com/colonyops/skim/internal/skim"
	"github.com/colonyops/skim/internal/tui"
)

type ReviewCmd struct {
	flags *Flags
	app   *skim.App

	// flags
	mode           string
	base           string
	file           string
	unreviewedOnly bool
}

// NewReviewCmd creates a new review command
func NewReviewCmd(flags *Flags, app *skim.App) *ReviewCmd {
	return &ReviewCmd{flags: flags, app: app}
}

// Flags returns the review flags for registration on the root command, which
// runs the review screen as its default action.
func (cmd *ReviewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mode",
			Aliases:     []string{"m"},
			Usage:       "diff mode (uncommitted, staged, branch)",
			Sources:     cli.EnvVars("SKIM_DIFF_MODE"),
			Destination: &cmd.mode,
		},
		&cli.StringFlag{
			Name:        "base",
			Aliases:     []string{"b"},
			Usage:       "base branch for branch mode",
			Sources:     cli.EnvVars("SKIM_BASE_BRANCH"),
			Destination: &cmd.base,
		},
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "read the diff from a patch file instead of git",
			Destination: &cmd.file,
		},
		&cli.BoolFlag{
			Name:        "unreviewed-only",
			Aliases:     []string{"u"},
			Usage:       "start with already-reviewed hunks hidden",
			Destination: &cmd.unreviewedOnly,
		},
	}
}

// Register adds the review command to the application
func (cmd *ReviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "review",
		Usage:     "Review the current diff interactively",
		UsageText: "skim review [--mode mode] [--base branch] [--file patch] [--unreviewed-only]",
		Description: `Opens the interactive review screen for the current diff. Running skim
with no subcommand does the same thing.

Hunks marked as reviewed are remembered per repository and branch, so hunks
you have already seen stay marked across runs until their content changes.

The diff can also be piped in: git diff | skim`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the review screen. Exported for use as default command.
func (cmd *ReviewCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ReviewCmd) run(ctx context.Context, _ *cli.Command) error {
	req := diffRequest(cmd.mode, cmd.base, cmd.file)

	if id, ok := cmd.app.Review.AttachSession(ctx, "."); ok {
		ctx = logging.WithSessionID(ctx, id.SessionID)
	}

	files, err := cmd.app.Review.LoadDiff(ctx, req)
	if err != nil {
		return fmt.Errorf("load diff: %w", err)
	}

	view := cmd.app.Review.Project(files)
	if view.TotalHunks == 0 {
		fmt.Fprintf(os.Stderr, "No changes to review (%s)\n", cmd.app.Review.Describe(req))
		return nil
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if req.Reader != nil {
		// The diff came over stdin, so keyboard input must come from the
		// terminal directly.
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("interactive review needs a terminal when the diff is piped (try 'skim ls' or --file): %w", err)
		}
		defer func() { _ = tty.Close() }()
		opts = append(opts, tea.WithInput(tty))
	}

	m := tui.New(cmd.app, view, tui.Options{
		Source:         cmd.app.Review.Describe(req),
		UnreviewedOnly: cmd.unreviewedOnly,
	})

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("run review screen: %w", err)
	}

	return nil
}

// diffRequest assembles the diff source shared by diff-consuming commands.
// A piped stdin wins over git acquisition unless a patch file is named.
func diffRequest(mode, base, file string) skim.DiffRequest {
	req := skim.DiffRequest{
		Mode:       mode,
		BaseBranch: base,
		FilePath:   file,
		Dir:        ".",
	}
	if file == "" && !term.IsTerminal(int(os.Stdin.Fd())) {
		req.Reader = os.Stdin
	}
	return req
}
