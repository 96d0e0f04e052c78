package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tideline/internal/capacity"
	"github.com/sadopc/tideline/internal/planner"
	"github.com/sadopc/tideline/internal/store"
)

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	now    planner.Now
	cursor int

	formActive bool
	form       *huh.Form

	formTitle      *string
	formComplexity *capacity.Complexity
	formKind       *capacity.Kind
}

func newTasksModel(s *store.Store) tasksModel {
	title, c, k := "", capacity.Quick, capacity.Focus
	return tasksModel{
		store:          s,
		formTitle:      &title,
		formComplexity: &c,
		formKind:       &k,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

// set takes a fresh evaluation; the task list comes with it.
func (t *tasksModel) set(n planner.Now) {
	t.now = n
	if t.cursor >= len(n.Tasks) {
		t.cursor = max(0, len(n.Tasks)-1)
	}
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	tasks := t.now.Tasks
	switch {
	case key.Matches(msgKey, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(msgKey, keys.Down):
		if t.cursor < len(tasks)-1 {
			t.cursor++
		}
	case key.Matches(msgKey, keys.New):
		return t.showForm()
	case key.Matches(msgKey, keys.Toggle):
		if len(tasks) > 0 {
			task := tasks[t.cursor]
			if err := t.store.SetTaskCompleted(task.ID, !task.Completed); err != nil {
				return t, errStatus(err)
			}
			return t, changed
		}
	case key.Matches(msgKey, keys.Delete):
		if len(tasks) > 0 {
			if err := t.store.DeleteTask(tasks[t.cursor].ID); err != nil {
				return t, errStatus(err)
			}
			return t, changed
		}
	}
	return t, nil
}

func (t tasksModel) showForm() (tasksModel, tea.Cmd) {
	*t.formTitle = ""
	*t.formComplexity = capacity.Quick
	if r := t.now.Capacity.Recommended; r != capacity.None {
		*t.formComplexity = r
	}
	*t.formKind = capacity.Focus

	complexities := make([]huh.Option[capacity.Complexity], len(capacity.Complexities))
	for i, c := range capacity.Complexities {
		complexities[i] = huh.NewOption(fmt.Sprintf("%s (%.1f)", c, c.Cost()), c)
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(t.formTitle).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
			huh.NewSelect[capacity.Complexity]().Title("Complexity").Options(complexities...).Value(t.formComplexity),
			huh.NewSelect[capacity.Kind]().Title("Kind").Options(
				huh.NewOption("focus", capacity.Focus),
				huh.NewOption("life", capacity.Life),
			).Value(t.formKind),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

// add stores the form's task. Focus work that does not fit the current
// window's capacity is refused.
func (t tasksModel) add() tea.Cmd {
	c, k := *t.formComplexity, *t.formKind
	if k == capacity.Focus && !t.now.Capacity.Fits(c) {
		st := t.now.Capacity
		return func() tea.Msg {
			return statusMsg{
				text:    fmt.Sprintf("No room for a %s task: %s of %s left, %d/%d open", c, formatUnits(st.Remaining), formatUnits(st.Total), st.OpenFocus, capacity.MaxOpenFocus),
				isError: true,
			}
		}
	}
	if _, err := t.store.CreateTask(store.DayKey(t.now.Date), *t.formTitle, c, k); err != nil {
		return errStatus(err)
	}
	return changed
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		t.formActive = false
		t.form = nil
		return t, nil
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}
	if t.form.State == huh.StateCompleted {
		t.formActive = false
		return t, t.add()
	}
	return t, cmd
}

func (t tasksModel) view() string {
	w := t.width - 4
	if t.formActive && t.form != nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Task"), "", t.form.View()))
	}

	c := t.now.Capacity
	title := titleStyle.Render("Tasks · " + t.now.Date.Format("Mon Jan 02"))
	summary := mutedStyle.Render(fmt.Sprintf("%s window · %s of %s left · %d/%d open focus",
		t.now.Level.Window(), formatUnits(c.Remaining), formatUnits(c.Total), c.OpenFocus, capacity.MaxOpenFocus))

	rows := []string{title, summary, ""}
	if len(t.now.Tasks) == 0 {
		rows = append(rows, mutedStyle.Render("No tasks today. Press n to add one."))
	}
	for i, task := range t.now.Tasks {
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %-32s %-7s %s", check, task.Title, task.Complexity, task.Kind)
		if task.Completed {
			line = mutedStyle.Render(line)
		}
		rows = append(rows, cursorRow(i == t.cursor, line))
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  space: done/undo  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
