package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/skim/internal/core/review"
	"github.com/colonyops/skim/internal/skim"
)

type ResetCmd struct {
	flags *Flags
	app   *skim.App

	// flags
	session bool
	force   bool
}

// NewResetCmd creates a new reset command
func NewResetCmd(flags *Flags, app *skim.App) *ResetCmd {
	return &ResetCmd{flags: flags, app: app}
}

// Register adds the reset command to the application
func (cmd *ResetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "reset",
		Usage:     "Forget review state",
		UsageText: "skim reset [--session] [--force]",
		Description: `Clears the review ledger so every hunk shows as unreviewed again.

By default the whole ledger is wiped. With --session only the current
repo:branch session is forgotten; hunks also reviewed in other sessions
stay remembered there.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "session",
				Aliases:     []string{"s"},
				Usage:       "reset only the current repo:branch session",
				Destination: &cmd.session,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ResetCmd) run(ctx context.Context, c *cli.Command) error {
	id, attached := cmd.app.Review.AttachSession(ctx, ".")

	if cmd.session && !attached {
		return fmt.Errorf("no session detected: --session needs a git repository")
	}

	title, scope := "Reset the entire review ledger?", "all sessions"
	if cmd.session {
		title, scope = fmt.Sprintf("Reset review session %s?", id.SessionID), id.SessionID
	}

	if !cmd.force {
		var confirmed bool
		err := huh.NewConfirm().
			Title(title).
			Description("Hunks will show as unreviewed again. This cannot be undone.").
			Value(&confirmed).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !confirmed {
			fmt.Fprintln(c.Root().Writer, "Reset cancelled")
			return nil
		}
	}

	before := cmd.app.Ledger.Stats().TotalReviewedHunks

	if cmd.session {
		if err := cmd.app.Ledger.ResetSession(); err != nil {
			if errors.Is(err, review.ErrNoSession) {
				return fmt.Errorf("no session detected: --session needs a git repository")
			}
			return fmt.Errorf("reset session: %w", err)
		}
	} else {
		if err := cmd.app.Ledger.Reset(); err != nil {
			return fmt.Errorf("reset ledger: %w", err)
		}
	}

	after := cmd.app.Ledger.Stats().TotalReviewedHunks
	fmt.Fprintf(c.Root().Writer, "Reset %s: forgot %d hunk(s)\n", scope, before-after)

	return nil
}
