package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tideline/internal/energy"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Energy level colors, warm to cool.
var levelColors = map[energy.Level]lipgloss.Color{
	energy.Sparky:  lipgloss.Color("#FFD166"),
	energy.Steady:  lipgloss.Color("#2ECC71"),
	energy.Flowing: lipgloss.Color("#2EC4B6"),
	energy.Foggy:   lipgloss.Color("#9B59B6"),
	energy.Resting: lipgloss.Color("#414868"),
}

func levelColor(l energy.Level) lipgloss.Color {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return colorSubtle
}

func levelStyle(l energy.Level) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(levelColor(l))
}

// levelLabel is the level's glyph and name in its color.
func levelLabel(l energy.Level) string {
	return levelStyle(l).Render(l.Emoji() + " " + string(l))
}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Big clock on the today view
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)
