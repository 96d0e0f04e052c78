// Package planner reads a snapshot from the store and runs it through the
// timeline and capacity engines. It holds no state between calls.
package planner

import (
	"fmt"
	"log"
	"time"

	"github.com/sadopc/tideline/internal/capacity"
	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/config"
	"github.com/sadopc/tideline/internal/energy"
	"github.com/sadopc/tideline/internal/store"
	"github.com/sadopc/tideline/internal/timeline"
)

type Planner struct {
	store *store.Store
	cfg   config.Config
}

func New(s *store.Store, cfg config.Config) *Planner {
	return &Planner{store: s, cfg: cfg}
}

// SeedAnchors stores the configured anchors under "all" when no "all" record
// exists yet. Existing records are never overwritten.
func (p *Planner) SeedAnchors() error {
	_, ok, err := p.store.GetAnchors(energy.AllDays)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	raw := p.cfg.ResolvedAnchors()
	log.Printf("seeding anchors from config: %+v", raw)
	return p.store.SetAnchors(energy.AllDays, raw)
}

// Fallbacks are the configured fallbacks. A valid day_fallback saved in the
// store replaces the configured day level; until one is saved, config decides.
func (p *Planner) Fallbacks() timeline.Fallbacks {
	fb := p.cfg.ResolvedFallbacks()
	fb.Day = p.store.DayFallback(fb.Day)
	return fb
}

// Plan builds the timeline of a weekday from the current snapshot.
func (p *Planner) Plan(wd time.Weekday) (timeline.Plan, error) {
	snap, err := p.store.Snapshot(wd)
	if err != nil {
		return timeline.Plan{}, err
	}
	return timeline.BuildPlan(snap.Anchors, snap.Markers, p.Fallbacks()), nil
}

// WakingDay returns the date whose waking day contains t. A moment before that
// date's wake time still belongs to the previous day's night.
func (p *Planner) WakingDay(t time.Time) (time.Time, error) {
	snap, err := p.store.Snapshot(t.Weekday())
	if err != nil {
		return t, err
	}
	if clock.FromTime(t) < snap.Anchors.Wake {
		return t.AddDate(0, 0, -1), nil
	}
	return t, nil
}

// Now is everything the today views show for one moment.
type Now struct {
	Time    time.Time
	Date    time.Time // the waking day Time falls in
	Minutes int

	Plan     timeline.Plan
	Span     timeline.Span
	InSpan   bool
	Position timeline.Position
	Next     int // minute-of-day the active segment ends
	HasNext  bool

	Level    energy.Level
	Tasks    []store.Task
	Capacity capacity.State

	// Outlook is set only when the day has a hard stop.
	Outlook       *capacity.Outlook
	UntilHardStop int
}

// At evaluates the timeline and capacity at t.
func (p *Planner) At(t time.Time) (Now, error) {
	date, err := p.WakingDay(t)
	if err != nil {
		return Now{}, err
	}
	day, err := p.Plan(date.Weekday())
	if err != nil {
		return Now{}, fmt.Errorf("build day: %w", err)
	}
	n := Now{Time: t, Date: date, Minutes: clock.FromTime(t), Plan: day, Level: energy.Resting}

	if span, ok := day.Active(n.Minutes); ok {
		n.Span, n.InSpan = span, true
		if pos, ok := timeline.Locate(n.Minutes, span.Window, span.Segments); ok {
			n.Position = pos
			n.Level = pos.Active.Level
		}
		n.Next, n.HasNext = span.Next(n.Minutes)
	}

	n.Tasks, err = p.store.ListTasks(store.DayKey(date))
	if err != nil {
		return Now{}, err
	}
	n.Capacity = capacity.Compute(capacity.ForLevel(n.Level), store.CapacityTasks(n.Tasks))

	if hs := day.Anchors.HardStop; hs != nil {
		n.UntilHardStop = capacity.MinutesUntil(n.Minutes, *hs, day.Anchors.Wake)
		o := capacity.Forecast(n.Capacity.Total, n.Capacity.Used, n.UntilHardStop)
		n.Outlook = &o
	}
	return n, nil
}

// Warn reports whether the hard stop is close enough to flag, per capacity.warn_minutes.
func (p *Planner) Warn(n Now) bool {
	return n.Outlook != nil && n.UntilHardStop >= 0 && n.UntilHardStop < p.cfg.ResolvedWarnMinutes()
}

// DayTotals is one day's minutes per level.
type DayTotals struct {
	Date   time.Time
	Totals map[energy.Level]int
}

// Week returns seven days of totals starting at start.
func (p *Planner) Week(start time.Time) ([]DayTotals, error) {
	out := make([]DayTotals, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		day, err := p.Plan(d.Weekday())
		if err != nil {
			return nil, err
		}
		out = append(out, DayTotals{Date: d, Totals: day.Totals()})
	}
	return out, nil
}

// WeekStart returns the first day of the week containing t, honouring the
// week_start setting ("monday" or "sunday").
func (p *Planner) WeekStart(t time.Time) time.Time {
	first := p.store.WeekStart()
	back := (int(t.Weekday()) - int(first) + 7) % 7
	y, m, d := t.AddDate(0, 0, -back).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
