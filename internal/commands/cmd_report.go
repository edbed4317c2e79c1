package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/skim/internal/core/logging"
	"github.com/colonyops/skim/internal/core/review"
	"github.com/colonyops/skim/internal/core/styles"
	"github.com/colonyops/skim/internal/skim"
	"github.com/colonyops/skim/pkg/tmpl"
)

// reportTemplate is the markdown skeleton for skim report.
const reportTemplate = `# Review report

- **Source:** {{ .Source }}
- **Session:** {{ .Session }}
- **Progress:** {{ .Reviewed }} of {{ .Total }} {{ plural .Total "hunk" "hunks" }} reviewed ({{ pct .Reviewed .Total }})
- **Generated:** {{ .Generated }}
{{ range .Files }}
## {{ .Name }} ({{ .Reviewed }}/{{ .Total }})
{{ range .Hunks }}
- [{{ .Mark }}] ` + "`{{ .Header }}`" + ` +{{ .Additions }} -{{ .Deletions }}{{ if .Section }} ({{ .Section }}){{ end }}
{{- end }}
{{ end }}`

type ReportCmd struct {
	flags *Flags
	app   *skim.App

	// flags
	mode string
	base string
	file string
	raw  bool
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags, app *skim.App) *ReportCmd {
	return &ReportCmd{flags: flags, app: app}
}

// Register adds the report command to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Write a markdown review report for the current diff",
		UsageText: "skim report [--mode mode] [--base branch] [--file patch] [--raw]",
		Description: `Builds a markdown summary of the current diff's review progress, per file
and hunk. Rendered for the terminal when stdout is a TTY, plain markdown
otherwise (or with --raw), so it can be piped into PR descriptions.`,
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
				Name:        "raw",
				Usage:       "print plain markdown even on a TTY",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

type reportData struct {
	Source    string
	Session   string
	Generated string
	Total     int
	Reviewed  int
	Files     []reportFile
}

type reportFile struct {
	Name     string
	Reviewed int
	Total    int
	Hunks    []reportHunk
}

type reportHunk struct {
	Mark      string
	Header    string
	Section   string
	Additions int
	Deletions int
}

func (cmd *ReportCmd) run(ctx context.Context, c *cli.Command) error {
	req := diffRequest(cmd.mode, cmd.base, cmd.file)

	id, attached := cmd.app.Review.AttachSession(ctx, ".")
	if attached {
		ctx = logging.WithSessionID(ctx, id.SessionID)
	}

	files, err := cmd.app.Review.LoadDiff(ctx, req)
	if err != nil {
		return fmt.Errorf("load diff: %w", err)
	}

	view := cmd.app.Review.Project(files)

	markdown, err := tmpl.Render(reportTemplate, buildReportData(cmd.app.Review.Describe(req), id.SessionID, attached, view))
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	out := c.Root().Writer

	if cmd.raw || !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err = fmt.Fprint(out, markdown)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	pretty, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = fmt.Fprint(out, pretty)
	return err
}

func buildReportData(source, sessionID string, attached bool, view review.View) reportData {
	data := reportData{
		Source:    source,
		Session:   "none",
		Generated: time.Now().Format(time.RFC3339),
		Total:     view.TotalHunks,
		Reviewed:  view.ReviewedHunks,
		Files:     make([]reportFile, 0, len(view.Files)),
	}
	if attached {
		data.Session = sessionID
	}

	for _, fv := range view.Files {
		rf := reportFile{
			Name:     fv.DisplayName(),
			Reviewed: fv.ReviewedCount(),
			Total:    len(fv.Hunks),
			Hunks:    make([]reportHunk, 0, len(fv.Hunks)),
		}
		for _, hv := range fv.Hunks {
			additions, deletions := hv.Stats()
			mark := " "
			if hv.Reviewed {
				mark = "x"
			}
			rf.Hunks = append(rf.Hunks, reportHunk{
				Mark:      mark,
				Header:    hv.ShortHeader(),
				Section:   hv.Section,
				Additions: additions,
				Deletions: deletions,
			})
		}
		data.Files = append(data.Files, rf)
	}

	return data
}
