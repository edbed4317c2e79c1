// Package tui implements the interactive review screen: a file list on the
// left, a hunk viewer on the right, and a ledger-backed mark/unmark loop.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/skim/internal/core/logging"
	"github.com/colonyops/skim/internal/core/review"
	"github.com/colonyops/skim/internal/skim"
)

// focusArea tracks which panel has keyboard focus.
type focusArea int

const (
	focusFiles focusArea = iota
	focusHunks
)

// Options configures the review screen.
type Options struct {
	// Source describes where the diff came from, shown in the status bar.
	Source string
	// UnreviewedOnly starts the screen with the unreviewed filter on.
	UnreviewedOnly bool
}

// clearNoticeMsg clears the transient status bar notice.
type clearNoticeMsg struct{}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

// Model is the root bubbletea model for the review screen.
type Model struct {
	app  *skim.App
	keys keyMap
	help help.Model
	log  zerolog.Logger

	source    string
	sessionID string

	full     review.View // every hunk, source of truth for progress
	shown    review.View // full, or unreviewed-only when filtering
	filtered bool

	focus   focusArea
	fileIdx int
	hunkIdx int

	// Render cache for the selected file's hunk panel. Each block is one
	// hunk: header line, highlighted body, blank separator.
	blocks     [][]string
	blockStart []int
	lineCount  int
	scroll     int
	fileScroll int

	highlight highlighter

	confirm *confirmDialog

	notice    string
	noticeErr bool

	width  int
	height int
	ready  bool
}

// New builds the review screen over an already-projected view.
func New(app *skim.App, view review.View, opts Options) Model {
	log := logging.Component("tui")

	m := Model{
		app:       app,
		keys:      defaultKeyMap(),
		help:      help.New(),
		log:       log,
		source:    opts.Source,
		full:      view,
		filtered:  opts.UnreviewedOnly,
		focus:     focusHunks,
		highlight: newHighlighter(app.Config.TUI.Highlighter, app.Exec, log),
	}
	if info, ok := app.Ledger.ActiveSession(); ok {
		m.sessionID = info.ID
	}
	m.refreshShown()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.ensureHunkVisible()
		m.ensureFileVisible()
		return m, nil

	case clearNoticeMsg:
		m.notice = ""
		m.noticeErr = false
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusFiles {
			m.focus = focusHunks
		} else {
			m.focus = focusFiles
		}

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.First):
		m.moveEnd(false)

	case key.Matches(msg, m.keys.Last):
		m.moveEnd(true)

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleCurrent()

	case key.Matches(msg, m.keys.NextUnreviewed):
		m.jumpUnreviewed(1)

	case key.Matches(msg, m.keys.PrevUnreviewed):
		m.jumpUnreviewed(-1)

	case key.Matches(msg, m.keys.Filter):
		m.filtered = !m.filtered
		m.refreshShown()

	case key.Matches(msg, m.keys.Reset):
		d := newConfirmDialog(m.resetTitle(), "Reviewed hunks will show as unreviewed again.")
		m.confirm = &d
	}

	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d, cmd := m.confirm.Update(msg)

	switch {
	case d.Confirmed():
		m.confirm = nil
		return m.applyReset()
	case d.Cancelled():
		m.confirm = nil
		return m, cmd
	}

	m.confirm = &d
	return m, cmd
}

// move shifts the cursor in the focused panel.
func (m *Model) move(dir int) {
	if m.focus == focusFiles {
		m.setFile(m.fileIdx + dir)
		return
	}

	f := m.currentFile()
	if f == nil {
		return
	}
	next := clamp(m.hunkIdx+dir, 0, len(f.Hunks)-1)
	if next != m.hunkIdx {
		m.hunkIdx = next
		m.ensureHunkVisible()
	}
}

// moveEnd jumps to the first or last item of the focused panel.
func (m *Model) moveEnd(last bool) {
	if m.focus == focusFiles {
		if last {
			m.setFile(len(m.shown.Files) - 1)
		} else {
			m.setFile(0)
		}
		return
	}

	f := m.currentFile()
	if f == nil {
		return
	}
	if last {
		m.hunkIdx = len(f.Hunks) - 1
	} else {
		m.hunkIdx = 0
	}
	m.ensureHunkVisible()
}

// setFile moves the file cursor, resetting the hunk cursor on change.
func (m *Model) setFile(i int) {
	if len(m.shown.Files) == 0 {
		return
	}
	i = clamp(i, 0, len(m.shown.Files)-1)
	if i == m.fileIdx {
		m.ensureFileVisible()
		return
	}

	m.fileIdx = i
	m.hunkIdx = 0
	m.scroll = 0
	m.buildBlocks()
	m.ensureFileVisible()
}

// jumpUnreviewed moves to the next (dir > 0) or previous unreviewed hunk,
// wrapping across files.
func (m *Model) jumpUnreviewed(dir int) {
	type pos struct {
		file, hunk int
		reviewed   bool
	}

	var flat []pos
	cur := -1
	for fi, fv := range m.shown.Files {
		for hi, hv := range fv.Hunks {
			if fi == m.fileIdx && hi == m.hunkIdx {
				cur = len(flat)
			}
			flat = append(flat, pos{file: fi, hunk: hi, reviewed: hv.Reviewed})
		}
	}
	if len(flat) == 0 || cur == -1 {
		return
	}

	for step := 1; step <= len(flat); step++ {
		i := ((cur+dir*step)%len(flat) + len(flat)) % len(flat)
		if flat[i].reviewed {
			continue
		}
		if flat[i].file != m.fileIdx {
			m.setFile(flat[i].file)
		}
		m.hunkIdx = flat[i].hunk
		m.ensureHunkVisible()
		return
	}
}

// toggleCurrent marks or unmarks the hunk under the cursor. The ledger is
// the source of truth: a save failure surfaces in the status bar and the
// view re-reads the resulting state either way.
func (m Model) toggleCurrent() (tea.Model, tea.Cmd) {
	hv, ok := m.currentHunk()
	if !ok {
		return m, nil
	}

	var err error
	if hv.Reviewed {
		err = m.app.Review.Unmark(hv)
	} else {
		err = m.app.Review.Mark(hv)
	}

	var cmd tea.Cmd
	if err != nil {
		m.log.Error().Err(err).Str("fingerprint", hv.Fingerprint).Msg("ledger update failed")
		m.notice = "save failed: " + err.Error()
		m.noticeErr = true
		cmd = clearNoticeCmd()
	}

	m.applyReviewed(hv.Fingerprint, m.app.Ledger.IsReviewed(hv.Fingerprint))
	m.refreshShown()

	return m, cmd
}

func (m Model) resetTitle() string {
	if m.sessionID != "" {
		return fmt.Sprintf("Reset review session %s?", m.sessionID)
	}
	return "Reset the entire review ledger?"
}

// applyReset forgets the active session, or the whole ledger when no
// session is attached, then re-reads every hunk's state.
func (m Model) applyReset() (tea.Model, tea.Cmd) {
	var err error
	if m.sessionID != "" {
		err = m.app.Ledger.ResetSession()
	} else {
		err = m.app.Ledger.Reset()
	}

	if err != nil {
		m.log.Error().Err(err).Msg("reset failed")
		m.notice = "reset failed: " + err.Error()
		m.noticeErr = true
		return m, clearNoticeCmd()
	}

	for fi := range m.full.Files {
		for hi := range m.full.Files[fi].Hunks {
			hv := &m.full.Files[fi].Hunks[hi]
			hv.Reviewed = m.app.Ledger.IsReviewed(hv.Fingerprint)
		}
	}
	m.recountFull()
	m.refreshShown()

	if m.sessionID != "" {
		m.notice = "reset session " + m.sessionID
	} else {
		m.notice = "reset review ledger"
	}
	m.noticeErr = false

	return m, clearNoticeCmd()
}

// applyReviewed flips every hunk sharing the fingerprint; identical hunks
// are the same change and review together.
func (m *Model) applyReviewed(fp string, reviewed bool) {
	for fi := range m.full.Files {
		for hi := range m.full.Files[fi].Hunks {
			if m.full.Files[fi].Hunks[hi].Fingerprint == fp {
				m.full.Files[fi].Hunks[hi].Reviewed = reviewed
			}
		}
	}
	m.recountFull()
}

func (m *Model) recountFull() {
	reviewed := 0
	for _, fv := range m.full.Files {
		reviewed += fv.ReviewedCount()
	}
	m.full.ReviewedHunks = reviewed
	m.full.UnreviewedHunks = m.full.TotalHunks - reviewed
}

// refreshShown recomputes the displayed view from the full one, clamps the
// cursor, and rebuilds the hunk panel cache.
func (m *Model) refreshShown() {
	if m.filtered {
		m.shown = review.FilterUnreviewed(m.full)
	} else {
		m.shown = m.full
	}

	if len(m.shown.Files) == 0 {
		m.fileIdx = 0
		m.hunkIdx = 0
		m.scroll = 0
		m.fileScroll = 0
		m.blocks = nil
		m.blockStart = nil
		m.lineCount = 0
		return
	}

	m.fileIdx = clamp(m.fileIdx, 0, len(m.shown.Files)-1)
	m.hunkIdx = clamp(m.hunkIdx, 0, len(m.shown.Files[m.fileIdx].Hunks)-1)
	m.buildBlocks()
	m.ensureHunkVisible()
	m.ensureFileVisible()
}

// buildBlocks renders the selected file's hunks into the panel cache.
func (m *Model) buildBlocks() {
	f := m.currentFile()
	if f == nil {
		m.blocks = nil
		m.blockStart = nil
		m.lineCount = 0
		return
	}

	blocks := make([][]string, 0, len(f.Hunks))
	starts := make([]int, 0, len(f.Hunks))
	line := 0

	for _, hv := range f.Hunks {
		block := make([]string, 0, len(hv.Lines)+2)
		block = append(block, hunkHeaderLine(hv))
		block = append(block, m.highlight.Lines(f.File, hv.Hunk)...)
		block = append(block, "")

		starts = append(starts, line)
		line += len(block)
		blocks = append(blocks, block)
	}

	m.blocks = blocks
	m.blockStart = starts
	m.lineCount = line
}

func (m Model) currentFile() *review.FileView {
	if m.fileIdx < 0 || m.fileIdx >= len(m.shown.Files) {
		return nil
	}
	return &m.shown.Files[m.fileIdx]
}

func (m Model) currentHunk() (review.HunkView, bool) {
	f := m.currentFile()
	if f == nil || m.hunkIdx < 0 || m.hunkIdx >= len(f.Hunks) {
		return review.HunkView{}, false
	}
	return f.Hunks[m.hunkIdx], true
}

// contentHeight is the main area height: window minus status bar and the
// collapsed help line.
func (m Model) contentHeight() int {
	if !m.ready {
		return 20
	}
	h := m.height - 2
	if h < 1 {
		return 1
	}
	return h
}

// panel body heights exclude the one-line panel title.
func (m Model) hunkPanelLines() int {
	h := m.contentHeight() - 1
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) filePanelLines() int {
	return m.hunkPanelLines()
}

// ensureHunkVisible scrolls the hunk panel so the selected block is on
// screen. Blocks taller than the panel pin to their first line.
func (m *Model) ensureHunkVisible() {
	if m.hunkIdx >= len(m.blockStart) {
		m.scroll = 0
		return
	}

	h := m.hunkPanelLines()
	start := m.blockStart[m.hunkIdx]
	end := start + len(m.blocks[m.hunkIdx])

	if end > m.scroll+h {
		m.scroll = end - h
	}
	if m.scroll > start {
		m.scroll = start
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *Model) ensureFileVisible() {
	h := m.filePanelLines()

	if m.fileIdx < m.fileScroll {
		m.fileScroll = m.fileIdx
	}
	if m.fileIdx >= m.fileScroll+h {
		m.fileScroll = m.fileIdx - h + 1
	}
	if m.fileScroll < 0 {
		m.fileScroll = 0
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
