package tui

import (
	"time"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/planner"
)

// liveModel keeps the planner's evaluation of the current moment. It is
// recomputed when the wall clock enters a new minute, or on demand after an
// edit; it is never patched in place.
type liveModel struct {
	planner *planner.Planner
	clock   func() time.Time

	now     planner.Now
	warn    bool
	minute  int // minute-of-day of the last evaluation, -1 before the first
	day     int // day of year of the last evaluation
	lastErr error
}

func newLiveModel(p *planner.Planner, clk func() time.Time) liveModel {
	return liveModel{planner: p, clock: clk, minute: -1}
}

// refresh re-evaluates unconditionally.
func (l *liveModel) refresh() error {
	t := l.clock()
	n, err := l.planner.At(t)
	if err != nil {
		l.lastErr = err
		return err
	}
	l.now = n
	l.warn = l.planner.Warn(n)
	l.minute = clock.FromTime(t)
	l.day = t.YearDay()
	l.lastErr = nil
	return nil
}

// tick re-evaluates when the minute has changed since the last evaluation and
// reports whether it did.
func (l *liveModel) tick() (bool, error) {
	t := l.clock()
	if l.minute == clock.FromTime(t) && l.day == t.YearDay() {
		return false, nil
	}
	return true, l.refresh()
}

func (l liveModel) ready() bool { return l.minute >= 0 }
