package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
	"github.com/sadopc/tideline/internal/store"
)

type markersModel struct {
	store  *store.Store
	width  int
	height int

	scope   int // index into energy.Scopes
	markers []store.MarkerRecord
	cursor  int

	formActive bool
	form       *huh.Form
	editingID  int64 // 0 for a new marker

	// Form field pointers (survive value copies)
	formTime   *string
	formLevel  *energy.Level
	formLabel  *string
	formNotify *bool
}

func newMarkersModel(s *store.Store) markersModel {
	t, l, label, notify := "", energy.Steady, "", false
	return markersModel{
		store:      s,
		formTime:   &t,
		formLevel:  &l,
		formLabel:  &label,
		formNotify: &notify,
	}
}

func (m *markersModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m markersModel) currentScope() energy.DayScope {
	return energy.Scopes[m.scope]
}

type markersDataMsg struct {
	scope   energy.DayScope
	markers []store.MarkerRecord
}

func (m markersModel) refresh() tea.Cmd {
	scope := m.currentScope()
	return func() tea.Msg {
		markers, err := m.store.ListMarkers(scope)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return markersDataMsg{scope: scope, markers: markers}
	}
}

// sortByTime orders records by minute of day, keeping creation order for ties.
func sortByTime(rs []store.MarkerRecord) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Marker.Minutes < rs[j].Marker.Minutes })
}

func (m markersModel) update(msg tea.Msg) (markersModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case markersDataMsg:
		if msg.scope != m.currentScope() {
			return m, nil
		}
		m.markers = msg.markers
		sortByTime(m.markers)
		if m.cursor >= len(m.markers) {
			m.cursor = max(0, len(m.markers)-1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateList(msg)
	}
	return m, nil
}

func (m markersModel) updateList(msg tea.KeyMsg) (markersModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.markers)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Scope), key.Matches(msg, keys.Right):
		m.scope = (m.scope + 1) % len(energy.Scopes)
		m.cursor = 0
		m.markers = nil
		return m, m.refresh()
	case key.Matches(msg, keys.Left):
		m.scope = (m.scope + len(energy.Scopes) - 1) % len(energy.Scopes)
		m.cursor = 0
		m.markers = nil
		return m, m.refresh()
	case key.Matches(msg, keys.New):
		if len(m.markers) >= energy.MaxMarkersPerScope {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("%s already has %d markers", m.currentScope(), energy.MaxMarkersPerScope), isError: true}
			}
		}
		return m.showForm(nil)
	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		if len(m.markers) > 0 {
			r := m.markers[m.cursor]
			return m.showForm(&r)
		}
	case key.Matches(msg, keys.Delete):
		if len(m.markers) > 0 {
			r := m.markers[m.cursor]
			if err := m.store.DeleteMarker(r.ID); err != nil {
				return m, errStatus(err)
			}
			return m, tea.Batch(m.refresh(), changed)
		}
	}
	return m, nil
}

func validTime(s string) error {
	_, err := clock.Parse(s)
	return err
}

func levelOptions() []huh.Option[energy.Level] {
	opts := make([]huh.Option[energy.Level], len(energy.Levels))
	for i, l := range energy.Levels {
		opts[i] = huh.NewOption(l.Emoji()+" "+string(l), l)
	}
	return opts
}

func (m markersModel) showForm(r *store.MarkerRecord) (markersModel, tea.Cmd) {
	if r == nil {
		*m.formTime = ""
		*m.formLevel = energy.Steady
		*m.formLabel = ""
		*m.formNotify = false
		m.editingID = 0
	} else {
		*m.formTime = clock.Format(r.Marker.Minutes)
		*m.formLevel = r.Marker.Level
		*m.formLabel = r.Marker.Label
		*m.formNotify = r.Marker.Notify
		m.editingID = r.ID
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Time (HH:MM)").Value(m.formTime).Validate(validTime),
			huh.NewSelect[energy.Level]().Title("Level").Options(levelOptions()...).Value(m.formLevel),
			huh.NewInput().Title("Label").Value(m.formLabel),
			huh.NewConfirm().Title("Notify").Value(m.formNotify),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

// formMarker builds the marker the form describes, snapped when enabled.
func (m markersModel) formMarker() (energy.Marker, error) {
	mins, err := clock.Parse(*m.formTime)
	if err != nil {
		return energy.Marker{}, err
	}
	if m.store.SnapQuarterHour() {
		mins = clock.Wrap(clock.RoundToQuarterHour(mins))
	}
	return energy.Marker{
		Minutes: mins,
		Level:   *m.formLevel,
		Label:   strings.TrimSpace(*m.formLabel),
		Notify:  *m.formNotify,
	}, nil
}

func (m markersModel) save() tea.Cmd {
	mk, err := m.formMarker()
	if err != nil {
		return errStatus(err)
	}
	if m.editingID != 0 {
		err = m.store.UpdateMarker(m.editingID, mk)
	} else {
		_, err = m.store.CreateMarker(m.currentScope(), mk)
	}
	if errors.Is(err, store.ErrMarkerLimit) {
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("%s already has %d markers", m.currentScope(), energy.MaxMarkersPerScope), isError: true}
		}
	}
	if err != nil {
		return errStatus(err)
	}
	return tea.Batch(m.refresh(), changed, func() tea.Msg {
		return statusMsg{text: "Saved " + mk.String()}
	})
}

func (m markersModel) updateForm(msg tea.Msg) (markersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.save()
	}
	return m, cmd
}

func (m markersModel) view() string {
	w := m.width - 4
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Marker · " + string(m.currentScope()))
		if m.editingID != 0 {
			title = titleStyle.Render("Edit Marker")
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))
	}

	rows := []string{m.renderScopes(), ""}
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Markers %d/%d", len(m.markers), energy.MaxMarkersPerScope)), "")

	if len(m.markers) == 0 {
		rows = append(rows, mutedStyle.Render("No markers for this scope. Press n to add one."))
	} else {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-6s %-12s %-24s %s", "Time", "Level", "Label", "Notify")))
		for i, r := range m.markers {
			notify := ""
			if r.Marker.Notify {
				notify = "🔔"
			}
			line := fmt.Sprintf("%-6s %s %-24s %s",
				clock.Format(r.Marker.Minutes),
				levelStyle(r.Marker.Level).Render(fmt.Sprintf("%-12s", r.Marker.Level.Emoji()+" "+string(r.Marker.Level))),
				r.Marker.Label, notify)
			rows = append(rows, cursorRow(i == m.cursor, line))
		}
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  e: edit  d: delete  s/←/→: scope"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m markersModel) renderScopes() string {
	tabs := make([]string, len(energy.Scopes))
	for i, s := range energy.Scopes {
		if i == m.scope {
			tabs[i] = selectedItemStyle.Render("[" + string(s) + "]")
		} else {
			tabs[i] = mutedStyle.Render(" " + string(s) + " ")
		}
	}
	return strings.Join(tabs, " ")
}
