// Command docgen generates CLI reference documentation from the skim command
// definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/skim/internal/commands"
	"github.com/colonyops/skim/internal/skim"
)

func main() {
	flags := &commands.Flags{}
	app := &skim.App{}

	root := &cli.Command{
		Name:      "skim",
		Usage:     "Mark diff hunks reviewed and keep them marked across runs",
		UsageText: "skim [global options] command [command options]",
		Description: `Skim keeps a ledger of reviewed diff hunks, keyed by a fingerprint of
their changed lines. Hunks you mark stay marked across runs until their
content changes, so repeated passes over a large diff only surface what
is new.

Run 'skim' with no arguments to review the current diff interactively.
Pipe a diff in (git diff | skim) or use --file to review a patch.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("SKIM_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (empty logs to stderr)",
				Sources: cli.EnvVars("SKIM_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("SKIM_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("SKIM_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	reviewCmd := commands.NewReviewCmd(flags, app)
	root.Flags = append(root.Flags, reviewCmd.Flags()...)

	root = reviewCmd.Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewStatsCmd(flags, app).Register(root)
	root = commands.NewSessionsCmd(flags, app).Register(root)
	root = commands.NewResetCmd(flags, app).Register(root)
	root = commands.NewReportCmd(flags, app).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
