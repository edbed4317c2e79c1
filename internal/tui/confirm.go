package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/skim/internal/core/styles"
)

// confirmDialog is a simple yes/no confirmation.
type confirmDialog struct {
	title     string
	message   string
	confirmed bool
	cancelled bool
}

func newConfirmDialog(title, message string) confirmDialog {
	return confirmDialog{title: title, message: message}
}

// Update handles input for the dialog.
func (d confirmDialog) Update(msg tea.Msg) (confirmDialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		d.confirmed = true
	case "n", "N", "esc", "q":
		d.cancelled = true
	}

	return d, nil
}

// View renders the dialog.
func (d confirmDialog) View() string {
	title := styles.ModalTitleStyle.Render(d.title)
	message := styles.TextForegroundStyle.Render(d.message)
	prompt := styles.ModalHelpStyle.Render("y confirm / n cancel")

	return styles.ModalStyle.Render(title + "\n\n" + message + "\n" + prompt)
}

// Confirmed reports whether the user accepted.
func (d confirmDialog) Confirmed() bool {
	return d.confirmed
}

// Cancelled reports whether the user dismissed.
func (d confirmDialog) Cancelled() bool {
	return d.cancelled
}
