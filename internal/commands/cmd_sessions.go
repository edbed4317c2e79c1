package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/skim/internal/skim"
	"github.com/colonyops/skim/pkg/iojson"
)

type SessionsCmd struct {
	flags *Flags
	app   *skim.App

	// flags
	jsonOutput bool
}

// NewSessionsCmd creates a new sessions command
func NewSessionsCmd(flags *Flags, app *skim.App) *SessionsCmd {
	return &SessionsCmd{flags: flags, app: app}
}

// Register adds the sessions command to the application
func (cmd *SessionsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "sessions",
		Usage:     "List review sessions known to the ledger",
		UsageText: "skim sessions [--json]",
		Description: `Displays a table of every repo:branch session in the ledger with its
reviewed hunk count and last activity. The session for the current
directory, if any, is marked with *.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SessionsCmd) run(ctx context.Context, c *cli.Command) error {
	active, _ := cmd.app.Review.AttachSession(ctx, ".")

	sessions := cmd.app.Ledger.Sessions()
	if len(sessions) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No sessions recorded\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, s := range sessions {
			if err := iojson.WriteLine(out, s); err != nil {
				return fmt.Errorf("encode session: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SESSION\tREPO\tBRANCH\tREVIEWED\tUPDATED")

	for _, s := range sessions {
		marker := ""
		if s.ID == active.SessionID {
			marker = " *"
		}
		_, _ = fmt.Fprintf(w, "%s%s\t%s\t%s\t%d\t%s\n",
			s.ID, marker, s.RepoName, s.BranchName, s.ReviewedCount, s.LastUpdated.Format("2006-01-02 15:04"))
	}

	return w.Flush()
}
