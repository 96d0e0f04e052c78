package planner

import (
	"testing"
	"time"

	"github.com/sadopc/tideline/internal/capacity"
	"github.com/sadopc/tideline/internal/config"
	"github.com/sadopc/tideline/internal/energy"
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
func newTestPlanner(t *testing.T) (*Planner, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	if err := s.SetAnchors(energy.AllDays, energy.RawAnchors{Wake: "08:00", WorkStart: "09:00", HardStop: "17:00", Bedtime: "22:00"}); err != nil {
		t.Fatal(err)
	}
	for _, m := range []energy.Marker{
		{Minutes: 9 * 60, Level: energy.Sparky},
		{Minutes: 13 * 60, Level: energy.Foggy},
	} {
		if _, err := s.CreateMarker(energy.AllDays, m); err != nil {
			t.Fatal(err)
		}
	}
	return New(s, config.Config{}), s
}

func at(day, h, m int) time.Time {
	return time.Date(2026, 3, day, h, m, 0, 0, time.UTC)
}

// ============================================================
// Seeding and fallbacks
// ============================================================

func TestSeedAnchors(t *testing.T) {
	s := newTestStore(t)
	cfg := config.Config{Anchors: config.AnchorsConfig{Wake: "06:00"}}
	if err := New(s, cfg).SeedAnchors(); err != nil {
		t.Fatal(err)
	}
	got, ok, _ := s.GetAnchors(energy.AllDays)
	if !ok || got.Wake != "06:00" || got.WorkStart != "09:00" {
		t.Fatalf("seeded anchors = %+v (ok=%v)", got, ok)
	}

	other := config.Config{Anchors: config.AnchorsConfig{Wake: "05:00"}}
	New(s, other).SeedAnchors()
	got, _, _ = s.GetAnchors(energy.AllDays)
	if got.Wake != "06:00" {
		t.Fatal("seeding should not overwrite stored anchors")
	}
}

func TestFallbacksConfigOnFreshStore(t *testing.T) {
	s := newTestStore(t)
	cfg := config.Config{Timeline: config.TimelineConfig{DayFallback: "foggy", MorningFallback: "flowing"}}
	p := New(s, cfg)

	fb := p.Fallbacks()
	if fb.Day != energy.Foggy {
		t.Fatalf("fresh store should use the configured day fallback, got %s", fb.Day)
	}
	if fb.Morning != energy.Flowing {
		t.Fatalf("morning = %s", fb.Morning)
	}
}

func TestFallbacksSavedSettingWins(t *testing.T) {
	s := newTestStore(t)
	cfg := config.Config{Timeline: config.TimelineConfig{DayFallback: "foggy"}}
	p := New(s, cfg)

	s.SetSetting("day_fallback", "steady")
	if fb := p.Fallbacks(); fb.Day != energy.Steady {
		t.Fatalf("saved setting should win, got %s", fb.Day)
	}

	s.SetSetting("day_fallback", "bogus")
	if fb := p.Fallbacks(); fb.Day != energy.Foggy {
		t.Fatalf("malformed setting should defer to config, got %s", fb.Day)
	}
}

// ============================================================
// Waking day
// ============================================================

func TestWakingDay(t *testing.T) {
	p, _ := newTestPlanner(t)
	tests := []struct {
		in   time.Time
		want int
	}{
		{at(3, 2, 0), 2},
		{at(3, 7, 59), 2},
		{at(3, 8, 0), 3},
		{at(3, 23, 30), 3},
	}
	for _, tt := range tests {
		got, err := p.WakingDay(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got.Day() != tt.want {
			t.Errorf("WakingDay(%s) = %s, want day %d", tt.in.Format("15:04"), got.Format("2006-01-02"), tt.want)
		}
	}
}

// ============================================================
// At
// ============================================================

func TestAtDeepWindow(t *testing.T) {
	p, s := newTestPlanner(t)
	s.CreateTask("2026-03-02", "email", capacity.Quick, capacity.Focus)
	s.CreateTask("2026-03-02", "groceries", capacity.Medium, capacity.Life)

	n, err := p.At(at(2, 10, 30))
	if err != nil {
		t.Fatal(err)
	}
	if !n.InSpan || n.Span.Window.Period != timeline.Day {
		t.Fatalf("expected day span, got %+v", n.Span.Window)
	}
	if n.Level != energy.Sparky {
		t.Fatalf("level = %s", n.Level)
	}
	if !n.HasNext || n.Next != 13*60 {
		t.Fatalf("next = %d (%v)", n.Next, n.HasNext)
	}
	if len(n.Tasks) != 2 {
		t.Fatalf("tasks = %d", len(n.Tasks))
	}
	c := n.Capacity
	if c.Total != 3 || c.Used != 0.5 || c.Remaining != 2.5 || c.Recommended != capacity.Deep || !c.CanAdd {
		t.Fatalf("capacity = %+v", c)
	}
	if n.Outlook == nil || n.UntilHardStop != 390 || n.Outlook.Factor != 1 || !n.Outlook.ShouldAddTasks {
		t.Fatalf("outlook = %+v, until = %d", n.Outlook, n.UntilHardStop)
	}
	if p.Warn(n) {
		t.Fatal("should not warn six hours out")
	}
}

func TestAtNearHardStop(t *testing.T) {
	p, s := newTestPlanner(t)
	s.CreateTask("2026-03-02", "email", capacity.Quick, capacity.Focus)

	n, err := p.At(at(2, 16, 30))
	if err != nil {
		t.Fatal(err)
	}
	if n.Level != energy.Foggy || n.Capacity.Total != 4 {
		t.Fatalf("level %s, total %v", n.Level, n.Capacity.Total)
	}
	if n.UntilHardStop != 30 || n.Outlook.Factor != 0.3 {
		t.Fatalf("until = %d, outlook = %+v", n.UntilHardStop, n.Outlook)
	}
	if !n.Outlook.ShouldAddTasks {
		t.Fatal("1.2 adjusted against 0.5 used still leaves room")
	}
	if !p.Warn(n) {
		t.Fatal("should warn within the hour")
	}
}

func TestAtOvernightBelongsToPreviousDay(t *testing.T) {
	p, s := newTestPlanner(t)
	s.CreateTask("2026-03-02", "late", capacity.Deep, capacity.Focus)

	n, err := p.At(at(3, 2, 0))
	if err != nil {
		t.Fatal(err)
	}
	if n.Date.Day() != 2 {
		t.Fatalf("date = %s", n.Date.Format("2006-01-02"))
	}
	if n.Span.Window.Period != timeline.Night || n.Level != energy.Resting {
		t.Fatalf("expected resting night, got %s/%s", n.Span.Window.Period, n.Level)
	}
	if len(n.Tasks) != 1 {
		t.Fatal("tasks should come from the waking day")
	}
	if n.Capacity.Total != 0 || n.Capacity.CanAdd {
		t.Fatalf("night has no capacity: %+v", n.Capacity)
	}
	if n.UntilHardStop >= 0 || !n.Outlook.Blocked {
		t.Fatalf("hard stop should be past: %d %+v", n.UntilHardStop, n.Outlook)
	}
}

func TestAtWithoutHardStop(t *testing.T) {
	s := newTestStore(t)
	p := New(s, config.Config{})
	n, err := p.At(at(2, 12, 0))
	if err != nil {
		t.Fatal(err)
	}
	if n.Outlook != nil {
		t.Fatal("no hard stop means no outlook")
	}
	// Steady day fallback maps to the deep window.
	if n.Level != energy.Steady || n.Capacity.Total != 3 {
		t.Fatalf("level %s, total %v", n.Level, n.Capacity.Total)
	}
}

func TestAtDaySpecificMarkers(t *testing.T) {
	p, s := newTestPlanner(t)
	s.CreateMarker(energy.Tue, energy.Marker{Minutes: 9 * 60, Level: energy.Flowing})

	n, _ := p.At(at(3, 10, 0))
	if n.Level != energy.Flowing {
		t.Fatalf("Tuesday should use its own markers, got %s", n.Level)
	}
	n, _ = p.At(at(4, 10, 0))
	if n.Level != energy.Sparky {
		t.Fatalf("Wednesday should use the all-days markers, got %s", n.Level)
	}
}

// ============================================================
// Week
// ============================================================

func TestWeek(t *testing.T) {
	p, _ := newTestPlanner(t)
	week, err := p.Week(p.WeekStart(at(4, 12, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[0].Date.Weekday() != time.Monday {
		t.Fatalf("week should start monday, got %s", week[0].Date.Weekday())
	}
	for _, d := range week {
		sum := 0
		for _, m := range d.Totals {
			sum += m
		}
		if sum != 1440 {
			t.Fatalf("%s totals %d minutes", d.Date.Format("Mon"), sum)
		}
		if d.Totals[energy.Sparky] != 240 {
			t.Fatalf("sparky = %d", d.Totals[energy.Sparky])
		}
	}
}

func TestWeekStartSunday(t *testing.T) {
	p, s := newTestPlanner(t)
	s.SetSetting("week_start", "sunday")
	got := p.WeekStart(at(4, 12, 0))
	if got.Weekday() != time.Sunday || got.Day() != 1 || got.Hour() != 0 {
		t.Fatalf("WeekStart = %s", got)
	}
}
