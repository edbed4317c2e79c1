package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/skim/internal/commands"
	"github.com/colonyops/skim/internal/core/config"
	"github.com/colonyops/skim/internal/core/git"
	"github.com/colonyops/skim/internal/core/logging"
	"github.com/colonyops/skim/internal/core/review"
	"github.com/colonyops/skim/internal/core/styles"
	"github.com/colonyops/skim/internal/skim"
	"github.com/colonyops/skim/pkg/executil"
	"github.com/colonyops/skim/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		skimApp   = &skim.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "skim",
		Usage:     "Mark diff hunks reviewed and keep them marked across runs",
		UsageText: "skim [global options] command [command options]",
		Description: `Skim keeps a ledger of reviewed diff hunks, keyed by a fingerprint of
their changed lines. Hunks you mark stay marked across runs until their
content changes, so repeated passes over a large diff only surface what
is new.

Run 'skim' with no arguments to review the current diff interactively.
Pipe a diff in (git diff | skim) or use --file to review a patch.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SKIM_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (empty logs to stderr)",
				Sources:     cli.EnvVars("SKIM_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SKIM_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("SKIM_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// An explicit --log-level (or env var) wins over the configured one.
			if !c.IsSet("log-level") {
				if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
					log.Logger = log.Logger.Level(lvl)
				}
			}

			// Apply configured theme (validation ensures the name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			ledger := review.Open(cfg.LedgerFile(), log.Logger)

			exec := &executil.RealExecutor{}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*skimApp = *skim.NewApp(cfg, ledger, git.NewExecutor(cfg.GitPath, exec), exec, log.Logger)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	reviewCmd := commands.NewReviewCmd(flags, skimApp)

	app = reviewCmd.Register(app)
	app = commands.NewLsCmd(flags, skimApp).Register(app)
	app = commands.NewStatsCmd(flags, skimApp).Register(app)
	app = commands.NewSessionsCmd(flags, skimApp).Register(app)
	app = commands.NewResetCmd(flags, skimApp).Register(app)
	app = commands.NewReportCmd(flags, skimApp).Register(app)

	// Register review flags on root command
	app.Flags = append(app.Flags, reviewCmd.Flags()...)

	// Set the review screen as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'skim --help' for usage", c.Args().First())
		}
		return reviewCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
