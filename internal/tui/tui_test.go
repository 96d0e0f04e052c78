package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/tideline/internal/capacity"
	"github.com/sadopc/tideline/internal/config"
	"github.com/sadopc/tideline/internal/energy"
	"github.com/sadopc/tideline/internal/planner"
	"github.com/sadopc/tideline/internal/store"
	"github.com/sadopc/tideline/internal/timeline"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestPlanner: 08:00 wake, 09:00 work, 17:00 hard stop, 22:00 bed;
// sparky from 09:00, foggy from 13:00.
func newTestPlanner(t *testing.T) (*planner.Planner, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	if err := s.SetAnchors(energy.AllDays, energy.RawAnchors{Wake: "08:00", WorkStart: "09:00", HardStop: "17:00", Bedtime: "22:00"}); err != nil {
		t.Fatal(err)
	}
	for _, m := range []energy.Marker{
		{Minutes: 9 * 60, Level: energy.Sparky, Label: "coffee"},
		{Minutes: 13 * 60, Level: energy.Foggy},
	} {
		if _, err := s.CreateMarker(energy.AllDays, m); err != nil {
			t.Fatal(err)
		}
	}
	return planner.New(s, config.Config{}), s
}

// monday returns a fixed clock on Monday 2026-03-02 at h:m.
func monday(h, m int) func() time.Time {
	return func() time.Time { return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC) }
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ============================================================
// Live model
// ============================================================

func TestLiveModelRefresh(t *testing.T) {
	p, _ := newTestPlanner(t)
	l := newLiveModel(p, monday(10, 30))
	if l.ready() {
		t.Fatal("should not be ready before the first evaluation")
	}
	if err := l.refresh(); err != nil {
		t.Fatal(err)
	}
	if !l.ready() {
		t.Fatal("should be ready after refresh")
	}
	if l.now.Level != energy.Sparky {
		t.Fatalf("level = %s, want sparky", l.now.Level)
	}
	if l.warn {
		t.Fatal("6h30m before the hard stop should not warn")
	}
}

func TestLiveModelTickOnlyOnNewMinute(t *testing.T) {
	p, _ := newTestPlanner(t)
	now := time.Date(2026, 3, 2, 10, 30, 5, 0, time.UTC)
	l := newLiveModel(p, func() time.Time { return now })

	if ok, err := l.tick(); err != nil || !ok {
		t.Fatalf("first tick should evaluate (ok=%v err=%v)", ok, err)
	}
	now = now.Add(30 * time.Second)
	if ok, _ := l.tick(); ok {
		t.Fatal("same minute should not re-evaluate")
	}
	now = now.Add(30 * time.Second)
	if ok, _ := l.tick(); !ok {
		t.Fatal("new minute should re-evaluate")
	}
	if l.now.Minutes != 10*60+31 {
		t.Fatalf("minutes = %d", l.now.Minutes)
	}
}

func TestLiveModelWarnNearHardStop(t *testing.T) {
	p, _ := newTestPlanner(t)
	l := newLiveModel(p, monday(16, 30))
	if err := l.refresh(); err != nil {
		t.Fatal(err)
	}
	if !l.warn {
		t.Fatal("30 minutes before the hard stop should warn")
	}
	if l.now.Level != energy.Foggy {
		t.Fatalf("level = %s, want foggy", l.now.Level)
	}
}

// ============================================================
// Today view helpers
// ============================================================

func TestStripCells(t *testing.T) {
	segs := []timeline.Segment{
		{Start: 0, End: 60, Level: energy.Sparky},
		{Start: 60, End: 180, Level: energy.Foggy},
	}
	cells := stripCells(segs, 180, 18)
	if len(cells) != 18 {
		t.Fatalf("len = %d, want 18", len(cells))
	}
	for i, c := range cells {
		want := energy.Foggy
		if i < 6 {
			want = energy.Sparky
		}
		if c != want {
			t.Fatalf("cell %d = %s, want %s", i, c, want)
		}
	}
}

func TestStripCellsUnevenWidth(t *testing.T) {
	segs := []timeline.Segment{
		{Start: 0, End: 10, Level: energy.Steady},
		{Start: 10, End: 20, Level: energy.Flowing},
		{Start: 20, End: 30, Level: energy.Foggy},
	}
	if got := len(stripCells(segs, 30, 7)); got != 7 {
		t.Fatalf("cells should fill the width exactly, got %d", got)
	}
}

func TestStripCellsEmpty(t *testing.T) {
	if got := stripCells(nil, 0, 10); len(got) != 0 {
		t.Fatalf("zero total should render nothing, got %d cells", len(got))
	}
	if got := stripCells([]timeline.Segment{{Start: 0, End: 10}}, 10, 0); len(got) != 0 {
		t.Fatalf("zero width should render nothing, got %d cells", len(got))
	}
}

func TestIndicatorLine(t *testing.T) {
	tests := []struct {
		percent float64
		width   int
		want    string
	}{
		{50, 11, "     ▲"},
		{2, 11, "▲"},
		{98, 11, "          ▲"},
	}
	for _, tt := range tests {
		if got := indicatorLine(tt.percent, tt.width); got != tt.want {
			t.Errorf("indicatorLine(%v, %d) = %q, want %q", tt.percent, tt.width, got, tt.want)
		}
	}
}

func TestTodayViewTooSmall(t *testing.T) {
	var d todayModel
	d.setSize(10, 10)
	if d.view() != "Terminal too small" {
		t.Fatalf("got %q", d.view())
	}
}

// ============================================================
// Markers model
// ============================================================

func loadMarkers(t *testing.T, m markersModel) markersModel {
	t.Helper()
	msg := m.refresh()()
	m, _ = m.update(msg)
	return m
}

func TestMarkersSortedByTime(t *testing.T) {
	_, s := newTestPlanner(t)
	s.CreateMarker(energy.AllDays, energy.Marker{Minutes: 7 * 60, Level: energy.Resting})

	m := loadMarkers(t, newMarkersModel(s))
	if len(m.markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(m.markers))
	}
	for i, want := range []int{7 * 60, 9 * 60, 13 * 60} {
		if m.markers[i].Marker.Minutes != want {
			t.Fatalf("marker %d at %d, want %d", i, m.markers[i].Marker.Minutes, want)
		}
	}
}

func TestSortByTimeKeepsCreationOrderForTies(t *testing.T) {
	rs := []store.MarkerRecord{
		{ID: 1, Marker: energy.Marker{Minutes: 600}},
		{ID: 2, Marker: energy.Marker{Minutes: 540}},
		{ID: 3, Marker: energy.Marker{Minutes: 600}},
	}
	sortByTime(rs)
	if rs[0].ID != 2 || rs[1].ID != 1 || rs[2].ID != 3 {
		t.Fatalf("order = %d %d %d", rs[0].ID, rs[1].ID, rs[2].ID)
	}
}

func TestMarkersScopeCycling(t *testing.T) {
	_, s := newTestPlanner(t)
	m := loadMarkers(t, newMarkersModel(s))

	m, cmd := m.update(runes("s"))
	if m.currentScope() != energy.Mon {
		t.Fatalf("scope = %s, want mon", m.currentScope())
	}
	m, _ = m.update(cmd())
	if len(m.markers) != 0 {
		t.Fatalf("mon has no markers, got %d", len(m.markers))
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.currentScope() != energy.Sun {
		t.Fatalf("scope = %s, want sun after wrapping", m.currentScope())
	}
}

func TestMarkersStaleDataIgnored(t *testing.T) {
	_, s := newTestPlanner(t)
	m := newMarkersModel(s)
	stale := m.refresh()()
	m, _ = m.update(runes("s"))
	m, _ = m.update(stale)
	if len(m.markers) != 0 {
		t.Fatal("data for another scope should be dropped")
	}
}

func TestMarkersNewRefusedAtLimit(t *testing.T) {
	_, s := newTestPlanner(t)
	for i := 0; i < energy.MaxMarkersPerScope-2; i++ {
		if _, err := s.CreateMarker(energy.AllDays, energy.Marker{Minutes: 14*60 + i*30, Level: energy.Steady}); err != nil {
			t.Fatal(err)
		}
	}
	m := loadMarkers(t, newMarkersModel(s))

	m, cmd := m.update(runes("n"))
	if m.formActive {
		t.Fatal("form should not open at the marker limit")
	}
	st, ok := cmd().(statusMsg)
	if !ok || !st.isError {
		t.Fatalf("expected an error status, got %#v", cmd())
	}
}

func TestMarkersNewOpensForm(t *testing.T) {
	_, s := newTestPlanner(t)
	m := loadMarkers(t, newMarkersModel(s))
	m, _ = m.update(runes("n"))
	if !m.formActive || m.form == nil {
		t.Fatal("n should open the form")
	}
	if m.editingID != 0 {
		t.Fatal("new marker form should not carry an id")
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should close the form")
	}
}

func TestMarkersEditPrefillsForm(t *testing.T) {
	_, s := newTestPlanner(t)
	m := loadMarkers(t, newMarkersModel(s))
	m, _ = m.update(runes("e"))
	if !m.formActive {
		t.Fatal("e should open the form")
	}
	if *m.formTime != "09:00" || *m.formLevel != energy.Sparky || *m.formLabel != "coffee" {
		t.Fatalf("form = %s %s %s", *m.formTime, *m.formLevel, *m.formLabel)
	}
	if m.editingID != m.markers[0].ID {
		t.Fatal("editing id not set")
	}
}

func TestMarkersFormSnaps(t *testing.T) {
	_, s := newTestPlanner(t)
	m := newMarkersModel(s)
	*m.formTime = "09:07"
	*m.formLevel = energy.Flowing

	mk, err := m.formMarker()
	if err != nil {
		t.Fatal(err)
	}
	if mk.Minutes != 9*60 {
		t.Fatalf("snapped to %d, want 540", mk.Minutes)
	}

	s.SetSetting("snap_quarter_hour", "false")
	mk, _ = m.formMarker()
	if mk.Minutes != 9*60+7 {
		t.Fatalf("unsnapped = %d, want 547", mk.Minutes)
	}
}

func TestMarkersFormRejectsBadTime(t *testing.T) {
	_, s := newTestPlanner(t)
	m := newMarkersModel(s)
	*m.formTime = "25:00"
	if _, err := m.formMarker(); err == nil {
		t.Fatal("expected an error for 25:00")
	}
}

func TestMarkersSaveCreatesInScope(t *testing.T) {
	_, s := newTestPlanner(t)
	m := newMarkersModel(s)
	m.scope = 1 // mon
	*m.formTime = "10:00"
	*m.formLevel = energy.Steady
	*m.formLabel = "  standup "

	if cmd := m.save(); cmd == nil {
		t.Fatal("save should return a command")
	}
	rs, _ := s.ListMarkers(energy.Mon)
	if len(rs) != 1 || rs[0].Marker.Label != "standup" || rs[0].Marker.Minutes != 600 {
		t.Fatalf("mon markers = %+v", rs)
	}
}

func TestMarkersSaveUpdates(t *testing.T) {
	_, s := newTestPlanner(t)
	m := loadMarkers(t, newMarkersModel(s))
	m, _ = m.showForm(&m.markers[0])
	*m.formLevel = energy.Steady
	m.save()

	r, err := s.GetMarker(m.markers[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if r.Marker.Level != energy.Steady {
		t.Fatalf("level = %s, want steady", r.Marker.Level)
	}
}

func TestMarkersDelete(t *testing.T) {
	_, s := newTestPlanner(t)
	m := loadMarkers(t, newMarkersModel(s))
	m, _ = m.update(runes("d"))
	rs, _ := s.ListMarkers(energy.AllDays)
	if len(rs) != 1 || rs[0].Marker.Level != energy.Foggy {
		t.Fatalf("remaining = %+v", rs)
	}
}

// ============================================================
// Tasks model
// ============================================================

func tasksAt(t *testing.T, p *planner.Planner, s *store.Store, clk func() time.Time) tasksModel {
	t.Helper()
	n, err := p.At(clk())
	if err != nil {
		t.Fatal(err)
	}
	tm := newTasksModel(s)
	tm.set(n)
	return tm
}

func TestTasksAddFits(t *testing.T) {
	p, s := newTestPlanner(t)
	tm := tasksAt(t, p, s, monday(10, 30))
	*tm.formTitle = "write report"
	*tm.formComplexity = capacity.Deep
	*tm.formKind = capacity.Focus

	if _, ok := tm.add()().(changedMsg); !ok {
		t.Fatal("adding a fitting task should report a change")
	}
	tasks, _ := s.ListTasks("2026-03-02")
	if len(tasks) != 1 || tasks[0].Title != "write report" {
		t.Fatalf("tasks = %+v", tasks)
	}
}

func TestTasksAddRefusedWhenFull(t *testing.T) {
	p, s := newTestPlanner(t)
	s.CreateTask("2026-03-02", "a", capacity.Deep, capacity.Focus)
	s.CreateTask("2026-03-02", "b", capacity.Deep, capacity.Focus)

	tm := tasksAt(t, p, s, monday(10, 30))
	*tm.formTitle = "c"
	*tm.formComplexity = capacity.Quick
	*tm.formKind = capacity.Focus

	st, ok := tm.add()().(statusMsg)
	if !ok || !st.isError {
		t.Fatal("a focus task past capacity should be refused")
	}
	if !strings.Contains(st.text, "0.0 of 3.0 left") {
		t.Fatalf("status = %q", st.text)
	}
	tasks, _ := s.ListTasks("2026-03-02")
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestTasksLifeTaskAlwaysAdded(t *testing.T) {
	p, s := newTestPlanner(t)
	tm := tasksAt(t, p, s, monday(23, 0)) // night, rest window
	if tm.now.Capacity.Total != 0 {
		t.Fatalf("rest window capacity = %v", tm.now.Capacity.Total)
	}
	*tm.formTitle = "laundry"
	*tm.formComplexity = capacity.Quick
	*tm.formKind = capacity.Life

	if _, ok := tm.add()().(changedMsg); !ok {
		t.Fatal("life tasks are not capacity limited")
	}
}

func TestTasksToggleAndDelete(t *testing.T) {
	p, s := newTestPlanner(t)
	task, _ := s.CreateTask("2026-03-02", "a", capacity.Quick, capacity.Focus)
	tm := tasksAt(t, p, s, monday(10, 30))

	tm, cmd := tm.update(runes("x"))
	if cmd == nil {
		t.Fatal("toggle should report a change")
	}
	got, _ := s.GetTask(task.ID)
	if !got.Completed {
		t.Fatal("task should be completed")
	}

	tm.update(runes("d"))
	if _, err := s.GetTask(task.ID); err == nil {
		t.Fatal("task should be deleted")
	}
}

func TestTasksFormDefaultsToRecommended(t *testing.T) {
	p, s := newTestPlanner(t)
	tm := tasksAt(t, p, s, monday(10, 30))
	tm, _ = tm.update(runes("n"))
	if !tm.formActive {
		t.Fatal("n should open the form")
	}
	if *tm.formComplexity != capacity.Deep {
		t.Fatalf("default complexity = %s, want deep", *tm.formComplexity)
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsSave(t *testing.T) {
	p, s := newTestPlanner(t)
	sm := newSettingsModel(s, p)
	sm.scope = 5 // fri
	*sm.wake = "07:00"
	*sm.workStart = "08:30"
	*sm.hardStop = ""
	*sm.bedtime = "23:00"
	*sm.dayFallback = energy.Flowing
	*sm.snap = false
	*sm.weekStart = "sunday"

	if err := sm.save(); err != nil {
		t.Fatal(err)
	}
	r, ok, _ := s.GetAnchors(energy.Fri)
	if !ok || r.Wake != "07:00" || r.HardStop != "" || r.Bedtime != "23:00" {
		t.Fatalf("fri anchors = %+v (ok=%v)", r, ok)
	}
	if s.DayFallback(energy.Steady) != energy.Flowing {
		t.Fatal("day fallback not saved")
	}
	if s.SnapQuarterHour() {
		t.Fatal("snap not saved")
	}
	if v, _ := s.GetSetting("week_start"); v != "sunday" {
		t.Fatalf("week_start = %q", v)
	}
}

func TestSettingsFormDayFallbackFromConfig(t *testing.T) {
	s := newTestStore(t)
	p := planner.New(s, config.Config{Timeline: config.TimelineConfig{DayFallback: "foggy"}})
	sm := newSettingsModel(s, p)

	sm, _ = sm.showForm()
	if *sm.dayFallback != energy.Foggy {
		t.Fatalf("form day fallback = %s, want foggy", *sm.dayFallback)
	}
}

func TestSettingsEffectiveAnchors(t *testing.T) {
	p, s := newTestPlanner(t)
	sm := newSettingsModel(s, p)
	sm, _ = sm.update(sm.refresh()())

	sm.scope = 3 // wed
	r, own := sm.effective()
	if own || r.HardStop != "17:00" {
		t.Fatalf("wed should inherit all: %+v own=%v", r, own)
	}

	s.SetAnchors(energy.Wed, energy.RawAnchors{Wake: "06:00", WorkStart: "07:00", Bedtime: "21:00"})
	sm, _ = sm.update(sm.refresh()())
	r, own = sm.effective()
	if !own || r.Wake != "06:00" {
		t.Fatalf("wed override = %+v own=%v", r, own)
	}
}

func TestSettingsDeleteOverride(t *testing.T) {
	p, s := newTestPlanner(t)
	s.SetAnchors(energy.Tue, energy.RawAnchors{Wake: "06:00"})
	sm := newSettingsModel(s, p)

	sm, _ = sm.update(runes("d")) // on "all": no-op
	if _, ok, _ := s.GetAnchors(energy.AllDays); !ok {
		t.Fatal("all anchors must not be deleted")
	}

	sm.scope = 2 // tue
	sm.update(runes("d"))
	if _, ok, _ := s.GetAnchors(energy.Tue); ok {
		t.Fatal("tue override should be gone")
	}
}

func TestTimeValidators(t *testing.T) {
	if requiredTime("") == nil {
		t.Fatal("empty required time should fail")
	}
	if optionalTime("") != nil {
		t.Fatal("empty optional time should pass")
	}
	if optionalTime("7pm") == nil {
		t.Fatal("malformed optional time should fail")
	}
	if requiredTime("07:45") != nil {
		t.Fatal("07:45 should pass")
	}
}

// ============================================================
// Reports model
// ============================================================

func TestReportsWeek(t *testing.T) {
	p, _ := newTestPlanner(t)
	r := newReportsModel(p, monday(10, 30))
	r.setSize(120, 40)
	r, _ = r.update(r.refresh()())

	if len(r.days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(r.days))
	}
	if r.days[0].Date.Weekday() != time.Monday {
		t.Fatalf("week should start on monday, got %s", r.days[0].Date.Weekday())
	}
	// 09:00-13:00 sparky every day.
	if got := r.days[0].Totals[energy.Sparky]; got != 240 {
		t.Fatalf("sparky minutes = %d, want 240", got)
	}
}

func TestReportsNavigation(t *testing.T) {
	p, _ := newTestPlanner(t)
	r := newReportsModel(p, monday(10, 30))

	r, _ = r.update(tea.KeyMsg{Type: tea.KeyLeft})
	if r.offset != 1 || !r.weekStart().Equal(time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("offset=%d start=%s", r.offset, r.weekStart())
	}
	r, _ = r.update(tea.KeyMsg{Type: tea.KeyRight})
	r, _ = r.update(tea.KeyMsg{Type: tea.KeyRight})
	if r.offset != 0 {
		t.Fatalf("offset should not go below 0, got %d", r.offset)
	}
}

func TestReportsToggleMode(t *testing.T) {
	p, _ := newTestPlanner(t)
	r := newReportsModel(p, monday(10, 30))
	r, _ = r.update(runes("x"))
	if r.mode != reportWindows {
		t.Fatal("toggle should switch to windows")
	}
}

func TestWindowTotals(t *testing.T) {
	got := windowTotals(map[energy.Level]int{
		energy.Sparky:  60,
		energy.Flowing: 30,
		energy.Steady:  45,
		energy.Foggy:   15,
		energy.Resting: 600,
	})
	if got[energy.Deep] != 90 || got[energy.Light] != 60 || got[energy.Rest] != 600 {
		t.Fatalf("got %v", got)
	}
}

// ============================================================
// App model
// ============================================================

func newTestApp(t *testing.T, clk func() time.Time) (App, *store.Store) {
	t.Helper()
	p, s := newTestPlanner(t)
	app := newApp(s, p, clk)
	app.width = 120
	app.height = 40
	app.today.setSize(120, 36)
	return app, s
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	return m.(App)
}

func TestNewApp(t *testing.T) {
	p, s := newTestPlanner(t)
	app := NewApp(s, p)

	if app.activeView != viewToday {
		t.Fatal("default view should be today")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	p, s := newTestPlanner(t)
	app := NewApp(s, p)
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppChangedReevaluates(t *testing.T) {
	app, _ := newTestApp(t, monday(10, 30))
	app = update(t, app, changedMsg{})

	if !app.live.ready() {
		t.Fatal("changedMsg should evaluate")
	}
	out := app.today.view()
	for _, want := range []string{"10:30", "sparky", "coffee", "2h30m left in segment", "next change 13:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("today view missing %q:\n%s", want, out)
		}
	}
}

func TestAppHardStopWarning(t *testing.T) {
	app, _ := newTestApp(t, monday(16, 30))
	app = update(t, app, changedMsg{})
	if !strings.Contains(app.today.view(), "hard stop in 30m") {
		t.Fatal("expected the hard stop warning")
	}
	if !strings.Contains(app.renderFooter(), "⚠") {
		t.Fatal("footer should carry the warning")
	}
}

func TestAppTaskWriteRefreshesCapacity(t *testing.T) {
	app, s := newTestApp(t, monday(10, 30))
	app = update(t, app, changedMsg{})
	if app.live.now.Capacity.Used != 0 {
		t.Fatal("no tasks yet")
	}
	s.CreateTask("2026-03-02", "a", capacity.Medium, capacity.Focus)
	app = update(t, app, changedMsg{})
	if app.live.now.Capacity.Used != 1 || app.tasks.now.Capacity.Used != 1 {
		t.Fatalf("used = %v/%v", app.live.now.Capacity.Used, app.tasks.now.Capacity.Used)
	}
}

func TestAppSwitchViews(t *testing.T) {
	app, _ := newTestApp(t, monday(10, 30))
	app = update(t, app, runes("3"))
	if app.activeView != viewTasks {
		t.Fatalf("view = %d, want tasks", app.activeView)
	}
	app = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewReport {
		t.Fatalf("view = %d, want report", app.activeView)
	}
	app = update(t, app, runes("5"))
	app = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewToday {
		t.Fatal("tab should wrap to today")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t, monday(10, 30))
	app = update(t, app, changedMsg{})

	for _, v := range []viewState{viewToday, viewMarkers, viewTasks, viewReport, viewSettings} {
		app.activeView = v
		if output := app.View(); output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t, monday(10, 30))
	header := app.renderHeader()
	if !strings.Contains(header, "tideline") {
		t.Fatal("header missing title")
	}
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t, monday(10, 30))
	app = update(t, app, statusMsg{text: "test status"})
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	app, _ := newTestApp(t, monday(10, 30))
	app = update(t, app, runes("E"))
	if !app.exportPicking {
		t.Fatal("E should open the export picker")
	}
	app = update(t, app, tea.KeyMsg{Type: tea.KeyDown})

	msg := app.doExport(app.exportCursor)()
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %#v", msg)
	}
	if !strings.HasSuffix(done.path, "tideline-export-2026-03-02.json") {
		t.Fatalf("path = %q", done.path)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Fatal(err)
	}
}

func TestExportPath(t *testing.T) {
	t.Setenv("HOME", "/home/x")
	got := exportPath(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "csv")
	if got != "/home/x/tideline-export-2026-03-01.csv" {
		t.Fatalf("got %q", got)
	}
}

// ============================================================
// Key bindings and styles
// ============================================================

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, g := range keys.FullHelp() {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

func TestLevelStylesCoverEveryLevel(t *testing.T) {
	for _, l := range energy.Levels {
		if _, ok := levelColors[l]; !ok {
			t.Fatalf("no color for %s", l)
		}
		if !strings.Contains(levelLabel(l), string(l)) {
			t.Fatalf("label for %s missing its name", l)
		}
	}
}
