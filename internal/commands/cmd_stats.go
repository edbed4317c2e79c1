package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/skim/internal/core/review"
	"github.com/colonyops/skim/internal/skim"
	"github.com/colonyops/skim/pkg/iojson"
)

type StatsCmd struct {
	flags *Flags
	app   *skim.App

	// flags
	jsonOutput bool
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *skim.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show ledger statistics",
		UsageText: "skim stats [--json]",
		Description: `Prints how many hunks the ledger remembers, across how many sessions,
and which session is active for the current directory.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// statsOutput is the JSON output format for skim stats --json.
type statsOutput struct {
	review.Stats
	ActiveSession *review.SessionInfo `json:"activeSession,omitempty"`
	LedgerPath    string              `json:"ledgerPath"`
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	cmd.app.Review.AttachSession(ctx, ".")

	stats := cmd.app.Ledger.Stats()
	out := statsOutput{
		Stats:      stats,
		LedgerPath: cmd.app.Ledger.Path(),
	}
	if info, ok := cmd.app.Ledger.ActiveSession(); ok {
		out.ActiveSession = &info
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Reviewed hunks:\t%d\n", stats.TotalReviewedHunks)
	_, _ = fmt.Fprintf(w, "Sessions:\t%d\n", stats.TotalSessions)
	if !stats.LastUpdated.IsZero() {
		_, _ = fmt.Fprintf(w, "Last updated:\t%s\n", stats.LastUpdated.Format("2006-01-02 15:04:05"))
	}
	if out.ActiveSession != nil {
		_, _ = fmt.Fprintf(w, "Active session:\t%s (%d reviewed)\n", out.ActiveSession.ID, out.ActiveSession.ReviewedCount)
	} else {
		_, _ = fmt.Fprintf(w, "Active session:\tnone\n")
	}
	_, _ = fmt.Fprintf(w, "Ledger:\t%s\n", cmd.app.Ledger.Path())

	return w.Flush()
}
