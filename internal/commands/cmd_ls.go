package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/skim/internal/core/logging"
	"github.com/colonyops/skim/internal/core/review"
	"github.com/colonyops/skim/internal/skim"
	"github.com/colonyops/skim/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *skim.App

	// flags
	mode       string
	base       string
	file       string
	unreviewed bool
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *skim.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List the hunks of the current diff with review status",
		UsageText: "skim ls [--unreviewed] [--json]",
		Description: `Displays a table of the current diff's hunks, their location, and whether
the active session has reviewed them.

Use --json for line-oriented output with fingerprints for scripting.`,
		Flags: []cli.Flag{
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
				Name:        "unreviewed",
				Aliases:     []string{"u"},
				Usage:       "show only hunks not yet reviewed",
				Destination: &cmd.unreviewed,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines with fingerprints",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if id, ok := cmd.app.Review.AttachSession(ctx, "."); ok {
		ctx = logging.WithSessionID(ctx, id.SessionID)
	}

	files, err := cmd.app.Review.LoadDiff(ctx, diffRequest(cmd.mode, cmd.base, cmd.file))
	if err != nil {
		return fmt.Errorf("load diff: %w", err)
	}

	view := cmd.app.Review.Project(files)
	shown := view
	if cmd.unreviewed {
		shown = review.FilterUnreviewed(view)
	}

	if view.TotalHunks == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No changes\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, fv := range shown.Files {
			for _, hv := range fv.Hunks {
				if err := iojson.WriteLine(out, buildHunkInfo(fv, hv)); err != nil {
					return fmt.Errorf("encode hunk: %w", err)
				}
			}
		}
		return nil
	}

	if shown.TotalHunks > 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "FILE\tHUNK\tCHANGES\tSTATUS")

		for _, fv := range shown.Files {
			for _, hv := range fv.Hunks {
				additions, deletions := hv.Stats()
				status := "unreviewed"
				if hv.Reviewed {
					status = "reviewed"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t+%d -%d\t%s\n", fv.Path(), hv.ShortHeader(), additions, deletions, status)
			}
		}

		_ = w.Flush()
	}

	_, _ = fmt.Fprintf(out, "\n%d of %d hunks reviewed\n", view.ReviewedHunks, view.TotalHunks)

	return nil
}

// hunkInfo is the JSON output format for skim ls --json.
type hunkInfo struct {
	File        string `json:"file"`
	Hunk        string `json:"hunk"`
	Section     string `json:"section,omitempty"`
	Additions   int    `json:"additions"`
	Deletions   int    `json:"deletions"`
	Reviewed    bool   `json:"reviewed"`
	Fingerprint string `json:"fingerprint"`
}

func buildHunkInfo(fv review.FileView, hv review.HunkView) hunkInfo {
	additions, deletions := hv.Stats()
	return hunkInfo{
		File:        fv.Path(),
		Hunk:        hv.ShortHeader(),
		Section:     hv.Section,
		Additions:   additions,
		Deletions:   deletions,
		Reviewed:    hv.Reviewed,
		Fingerprint: hv.Fingerprint,
	}
}
