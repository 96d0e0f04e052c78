package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
	"github.com/sadopc/tideline/internal/planner"
	"github.com/sadopc/tideline/internal/store"
)

type settingsModel struct {
	store   *store.Store
	planner *planner.Planner
	width   int
	height  int

	scope    int // index into energy.Scopes
	anchors  map[energy.DayScope]energy.RawAnchors
	settings []store.Setting

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	wake        *string
	workStart   *string
	hardStop    *string
	bedtime     *string
	dayFallback *energy.Level
	snap        *bool
	weekStart   *string
}

func newSettingsModel(s *store.Store, p *planner.Planner) settingsModel {
	wake, work, stop, bed, ws := "", "", "", "", ""
	fb, snap := energy.Steady, true
	return settingsModel{
		store:       s,
		planner:     p,
		wake:        &wake,
		workStart:   &work,
		hardStop:    &stop,
		bedtime:     &bed,
		dayFallback: &fb,
		snap:        &snap,
		weekStart:   &ws,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) currentScope() energy.DayScope {
	return energy.Scopes[s.scope]
}

type settingsDataMsg struct {
	anchors  map[energy.DayScope]energy.RawAnchors
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		anchors, err := s.store.AnchorsByScope()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		settings, err := s.store.GetAllSettings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return settingsDataMsg{anchors: anchors, settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.anchors = msg.anchors
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		case key.Matches(msg, keys.Scope), key.Matches(msg, keys.Right):
			s.scope = (s.scope + 1) % len(energy.Scopes)
		case key.Matches(msg, keys.Left):
			s.scope = (s.scope + len(energy.Scopes) - 1) % len(energy.Scopes)
		case key.Matches(msg, keys.Delete):
			// "all" is the baseline every day falls back to; only overrides go.
			if sc := s.currentScope(); sc != energy.AllDays {
				if err := s.store.DeleteAnchors(sc); err != nil {
					return s, errStatus(err)
				}
				return s, tea.Batch(s.refresh(), changed)
			}
		}
	}
	return s, nil
}

// effective is what the current scope resolves to: its own record, or the
// "all" record it would inherit.
func (s settingsModel) effective() (energy.RawAnchors, bool) {
	if r, ok := s.anchors[s.currentScope()]; ok {
		return r, true
	}
	if r, ok := s.anchors[energy.AllDays]; ok {
		return r, false
	}
	return energy.DefaultAnchors().Raw(), false
}

func requiredTime(v string) error {
	_, err := clock.Parse(v)
	return err
}

func optionalTime(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return requiredTime(v)
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	r, _ := s.effective()
	*s.wake = r.Wake
	*s.workStart = r.WorkStart
	*s.hardStop = r.HardStop
	*s.bedtime = r.Bedtime
	*s.dayFallback = s.planner.Fallbacks().Day
	*s.snap = s.store.SnapQuarterHour()
	*s.weekStart = s.getVal("week_start", "monday")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Wake (HH:MM)").Value(s.wake).Validate(requiredTime),
			huh.NewInput().Title("Work start (HH:MM)").Value(s.workStart).Validate(requiredTime),
			huh.NewInput().Title("Hard stop (HH:MM, empty for none)").Value(s.hardStop).Validate(optionalTime),
			huh.NewInput().Title("Bedtime (HH:MM)").Value(s.bedtime).Validate(requiredTime),
		).Title("Anchors · "+string(s.currentScope())),
		huh.NewGroup(
			huh.NewSelect[energy.Level]().Title("Work hours without a marker").
				Options(levelOptions()...).Value(s.dayFallback),
			huh.NewConfirm().Title("Snap new markers to 15 minutes").Value(s.snap),
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStart),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		s.formActive = false
		s.form = nil
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.save(); err != nil {
			return s, errStatus(err)
		}
		return s, tea.Batch(s.refresh(), changed)
	}
	return s, cmd
}

func (s settingsModel) save() error {
	err := s.store.SetAnchors(s.currentScope(), energy.RawAnchors{
		Wake:      strings.TrimSpace(*s.wake),
		WorkStart: strings.TrimSpace(*s.workStart),
		HardStop:  strings.TrimSpace(*s.hardStop),
		Bedtime:   strings.TrimSpace(*s.bedtime),
	})
	if err != nil {
		return err
	}
	if err := s.store.SetSetting("day_fallback", string(*s.dayFallback)); err != nil {
		return err
	}
	if err := s.store.SetSetting("snap_quarter_hour", strconv.FormatBool(*s.snap)); err != nil {
		return err
	}
	return s.store.SetSetting("week_start", *s.weekStart)
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", s.form.View()),
		)
	}

	rows := []string{titleStyle.Render("Settings"), "", s.renderScopes(), ""}

	r, own := s.effective()
	source := "inherited from all"
	if own {
		source = "own"
	}
	if s.currentScope() == energy.AllDays && !own {
		source = "defaults"
	}
	rows = append(rows, mutedStyle.Render("  Anchors ("+source+")"))
	hs := r.HardStop
	if hs == "" {
		hs = "none"
	}
	for _, kv := range [][2]string{{"wake", r.Wake}, {"work start", r.WorkStart}, {"hard stop", hs}, {"bedtime", r.Bedtime}} {
		rows = append(rows, settingRow(kv[0], kv[1]))
	}

	rows = append(rows, "", mutedStyle.Render("  General"))
	for _, setting := range s.settings {
		rows = append(rows, settingRow(setting.Key, setting.Value))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: edit  s/←/→: scope  d: drop day override"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(k, v string) string {
	label := lipgloss.NewStyle().Width(24).Render(k)
	return fmt.Sprintf("  %s %s", label, highlightStyle.Render(v))
}

func (s settingsModel) renderScopes() string {
	tabs := make([]string, len(energy.Scopes))
	for i, sc := range energy.Scopes {
		name := string(sc)
		if _, ok := s.anchors[sc]; ok && sc != energy.AllDays {
			name += "*"
		}
		if i == s.scope {
			tabs[i] = selectedItemStyle.Render("[" + name + "]")
		} else {
			tabs[i] = mutedStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(tabs, " ")
}
