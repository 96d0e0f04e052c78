// Package timeline partitions a day into energy segments and locates the
// current moment on them. Everything here is a pure function of its inputs.
package timeline

import (
	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
)

// Period names one of the four windows a day is divided into.
type Period string

const (
	Morning Period = "morning"
	Day     Period = "day"
	Evening Period = "evening"
	Night   Period = "night"
)

// Periods lists the periods in the order they occur after waking.
var Periods = []Period{Morning, Day, Evening, Night}

// Window is a period laid onto the clock. Start and End are minutes-of-day and
// End may be earlier than Start when the window crosses midnight.
type Window struct {
	Period Period
	Start  int
	End    int
}

// Duration is the window's length in minutes, walking forward past midnight.
func (w Window) Duration() int {
	return clock.WrapDiff(w.Start, w.End)
}

// Contains reports whether the minute-of-day m falls in [Start, End).
func (w Window) Contains(m int) bool {
	return clock.WrapDiff(w.Start, clock.Wrap(m)) < w.Duration()
}

// Windows derives the four period windows of a day from its anchors.
//
//	morning = [wake, workStart)
//	day     = [workStart, hardStop or bedtime)
//	evening = [hardStop or bedtime, bedtime)
//	night   = [bedtime, wake)
func Windows(a energy.Anchors) []Window {
	evening := a.EveningStart()
	return []Window{
		{Period: Morning, Start: a.Wake, End: a.WorkStart},
		{Period: Day, Start: a.WorkStart, End: evening},
		{Period: Evening, Start: evening, End: a.Bedtime},
		{Period: Night, Start: a.Bedtime, End: a.Wake},
	}
}

// Fallbacks are the levels used for stretches of a period no marker covers.
// The day fallback is a user preference, not a constant.
type Fallbacks struct {
	Morning energy.Level
	Day     energy.Level
	Evening energy.Level
}

// DefaultFallbacks rests outside work hours and assumes steady within them.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{Morning: energy.Resting, Day: energy.Steady, Evening: energy.Resting}
}

// For returns the fallback of a period. Night is always resting.
func (f Fallbacks) For(p Period) energy.Level {
	var l energy.Level
	switch p {
	case Morning:
		l = f.Morning
	case Day:
		l = f.Day
	case Evening:
		l = f.Evening
	}
	if !l.Valid() {
		return energy.Resting
	}
	return l
}
