package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/skim/internal/core/review"
	"github.com/colonyops/skim/internal/core/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	helpView := m.help.View(m.keys)
	contentH := m.height - 1 - lipgloss.Height(helpView)
	if contentH < 1 {
		contentH = 1
	}

	fileW := m.filePanelWidth()
	hunkW := m.width - fileW - 1
	if hunkW < 1 {
		hunkW = 1
	}

	left := m.renderFilePanel(fileW, contentH)
	right := m.renderHunkPanel(hunkW, contentH)
	main := joinPanels(left, right, fileW, contentH)

	return main + "\n" + m.renderStatusBar() + "\n" + helpView
}

func (m Model) filePanelWidth() int {
	w := m.width * 30 / 100
	if w < 20 {
		w = 20
	}
	if w > m.width-10 {
		w = m.width / 2
	}
	return w
}

// joinPanels stitches the two panels row by row with a vertical divider.
func joinPanels(left, right string, leftWidth, height int) string {
	divider := styles.DividerStyle.Render("│")
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	rows := make([]string, 0, height)
	for i := 0; i < height; i++ {
		l := strings.Repeat(" ", leftWidth)
		if i < len(leftLines) {
			l = leftLines[i]
		}
		r := ""
		if i < len(rightLines) {
			r = rightLines[i]
		}
		rows = append(rows, l+divider+r)
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderFilePanel(width, height int) string {
	title := fmt.Sprintf("FILES (%d)", len(m.shown.Files))
	titleStyle := styles.TextMutedStyle
	if m.focus == focusFiles {
		titleStyle = styles.TextPrimaryBoldStyle
	}

	lines := []string{padRight(titleStyle.Render(title), width)}

	if len(m.shown.Files) == 0 {
		lines = append(lines, padRight(styles.TextMutedStyle.Render("  nothing to show"), width))
	}

	rows := height - 1
	end := m.fileScroll + rows
	if end > len(m.shown.Files) {
		end = len(m.shown.Files)
	}

	for i := m.fileScroll; i < end; i++ {
		lines = append(lines, padRight(m.renderFileRow(i, width), width))
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines[:height], "\n")
}

func (m Model) renderFileRow(i, width int) string {
	fv := m.shown.Files[i]
	reviewed := fv.ReviewedCount()
	total := len(fv.Hunks)

	var marker string
	switch {
	case total > 0 && reviewed == total:
		marker = styles.ReviewedMarkStyle.Render(styles.IconReviewed)
	case reviewed > 0:
		marker = styles.TextSecondaryStyle.Render(styles.IconPartial)
	default:
		marker = styles.UnreviewedMarkStyle.Render(styles.IconUnreviewed)
	}

	nameStyle := styles.TextForegroundStyle
	prefix := "  "
	if i == m.fileIdx {
		prefix = styles.SelectedBorderStyle.Render("┃") + " "
		nameStyle = styles.TextForegroundBoldStyle
		if m.focus == focusFiles {
			nameStyle = styles.TextPrimaryBoldStyle
		}
	}

	row := fmt.Sprintf("%s%s %s %s",
		prefix,
		marker,
		nameStyle.Render(fv.DisplayName()),
		styles.TextMutedStyle.Render(fmt.Sprintf("%d/%d", reviewed, total)),
	)
	return ansi.Truncate(row, width, "…")
}

func (m Model) renderHunkPanel(width, height int) string {
	titleStyle := styles.TextMutedStyle
	if m.focus == focusHunks {
		titleStyle = styles.TextPrimaryBoldStyle
	}

	f := m.currentFile()
	if f == nil {
		message := "No changes to review."
		if m.filtered && m.full.TotalHunks > 0 {
			message = "All hunks reviewed. Press f to show everything."
		}
		lines := []string{
			padRight(titleStyle.Render("HUNKS"), width),
			padRight(styles.TextMutedStyle.Render("  "+message), width),
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
		return strings.Join(lines[:height], "\n")
	}

	title := fmt.Sprintf("%s  hunk %d/%d", f.DisplayName(), m.hunkIdx+1, len(f.Hunks))
	lines := []string{padRight(titleStyle.Render(ansi.Truncate(title, width, "…")), width)}

	body := make([]string, 0, m.lineCount)
	for bi, block := range m.blocks {
		prefix := "  "
		if bi == m.hunkIdx {
			prefix = styles.SelectedBorderStyle.Render("┃") + " "
		}
		for _, line := range block {
			body = append(body, prefix+line)
		}
	}

	end := m.scroll + height - 1
	if end > len(body) {
		end = len(body)
	}
	start := m.scroll
	if start > len(body) {
		start = len(body)
	}

	for _, line := range body[start:end] {
		lines = append(lines, padRight(ansi.Truncate(line, width, "…"), width))
	}

	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines[:height], "\n")
}

// hunkHeaderLine renders a hunk's one-line summary: review marker, header,
// and +/- counts.
func hunkHeaderLine(hv review.HunkView) string {
	marker := styles.UnreviewedMarkStyle.Render(styles.IconUnreviewed)
	if hv.Reviewed {
		marker = styles.ReviewedMarkStyle.Render(styles.IconReviewed)
	}

	header := styles.HunkHeaderStyle.Render(hv.ShortHeader())
	if hv.Section != "" {
		header += " " + styles.TextMutedStyle.Render(hv.Section)
	}

	additions, deletions := hv.Stats()
	counts := styles.TextMutedStyle.Render(fmt.Sprintf("+%d -%d", additions, deletions))

	return fmt.Sprintf("%s %s %s", marker, header, counts)
}

func (m Model) renderStatusBar() string {
	parts := []string{
		fmt.Sprintf("%d of %d reviewed", m.full.ReviewedHunks, m.full.TotalHunks),
	}
	if m.source != "" {
		parts = append(parts, m.source)
	}
	if m.sessionID != "" {
		parts = append(parts, styles.TextSecondaryStyle.Render(styles.IconGitBranch+" ")+m.sessionID)
	} else {
		parts = append(parts, "no session")
	}
	if m.filtered {
		parts = append(parts, "unreviewed only")
	}

	bar := " " + strings.Join(parts, "  ")

	if m.notice != "" {
		style := styles.TextSuccessStyle
		if m.noticeErr {
			style = styles.TextErrorStyle
		}
		bar += "  " + style.Render(m.notice)
	}

	return styles.StatusBarStyle.Render(padRight(ansi.Truncate(bar, m.width, "…"), m.width))
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
