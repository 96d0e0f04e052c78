package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewMarkers
	viewTasks
	viewReport
	viewSettings
)

var viewNames = []string{"Today", "Markers", "Tasks", "Report", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// changedMsg tells the app that markers, anchors, tasks or settings were
// written and every derived view must be recomputed.
type changedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func errStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

func changed() tea.Msg { return changedMsg{} }

func formatUnits(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// cursorRow renders a list row with the selection marker the lists share.
func cursorRow(selected bool, s string) string {
	if selected {
		return selectedItemStyle.Render("> " + s)
	}
	return normalItemStyle.Render("  " + s)
}
