package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/export"
	"github.com/sadopc/tideline/internal/planner"
	"github.com/sadopc/tideline/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	planner *planner.Planner
	now     func() time.Time
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	live     liveModel
	today    todayModel
	markers  markersModel
	tasks    tasksModel
	reports  reportsModel
	settings settingsModel

	help     help.Model
	status   string
	statusOK bool
}

func NewApp(s *store.Store, p *planner.Planner) App {
	return newApp(s, p, time.Now)
}

func newApp(s *store.Store, p *planner.Planner, now func() time.Time) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		planner:    p,
		now:        now,
		activeView: viewToday,
		live:       newLiveModel(p, now),
		markers:    newMarkersModel(s),
		tasks:      newTasksModel(s),
		reports:    newReportsModel(p, now),
		settings:   newSettingsModel(s, p),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(changed, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// reevaluate pushes a fresh evaluation into the views that read it.
func (a *App) reevaluate(force bool) tea.Cmd {
	var err error
	if force {
		err = a.live.refresh()
	} else {
		var ticked bool
		if ticked, err = a.live.tick(); !ticked {
			return nil
		}
	}
	if err != nil {
		return errStatus(err)
	}
	a.today.set(a.live.now, a.live.warn)
	a.tasks.set(a.live.now)
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.markers.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child view capturing input (a form) gets every key.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewToday)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewMarkers)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewTasks)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewReport)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		cmd := a.reevaluate(false)
		return a, tea.Batch(tickCmd(), cmd)

	case changedMsg:
		cmds := []tea.Cmd{a.reevaluate(true)}
		if a.activeView == viewReport {
			cmds = append(cmds, a.reports.refresh())
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		a.statusOK = !msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusOK = true
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewMarkers:
		a.markers, cmd = a.markers.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewReport:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewMarkers:
		return a.markers.formActive
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewToday, viewTasks:
		return changed
	case viewMarkers:
		return a.markers.refresh()
	case viewReport:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
		if !a.live.ready() {
			content = mutedStyle.Render("  Loading...")
		}
	case viewMarkers:
		content = a.markers.view()
	case viewTasks:
		content = a.tasks.view()
	case viewReport:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("tideline")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := errorStyle
		if a.statusOK {
			style = mutedStyle
		}
		status = style.Render(" " + a.status)
	}

	// Current level and time left, visible from every view.
	levelInfo := ""
	if n := a.live.now; a.live.ready() && n.InSpan {
		levelInfo = levelLabel(n.Level) + mutedStyle.Render(" "+clock.FormatSpan(n.Position.RemainingInSegment))
		if a.live.warn {
			levelInfo += warningStyle.Render(" ⚠ " + clock.FormatSpan(n.UntilHardStop))
		}
	}

	left := footerStyle.Render(helpView)
	right := levelInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export Today"), ""}
	for i, f := range exportFormats {
		rows = append(rows, cursorRow(i == a.exportCursor, f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// exportPath is ~/tideline-export-DATE.ext, or the working directory when
// there is no home.
func exportPath(date time.Time, ext string) string {
	name := fmt.Sprintf("tideline-export-%s.%s", date.Format("2006-01-02"), ext)
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		n, err := a.planner.At(a.now())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		var path string
		if format == 0 {
			path = exportPath(n.Date, "csv")
			if err := export.ToCSV(n.Plan, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = exportPath(n.Date, "json")
			if err := export.ToJSON(n.Plan, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}
		return exportDoneMsg{path: path}
	}
}
