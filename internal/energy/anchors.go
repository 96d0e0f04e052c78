package energy

import (
	"time"

	"github.com/sadopc/tideline/internal/clock"
)

// Defaults used when an anchor is missing or unparseable.
const (
	DefaultWake      = 8 * 60
	DefaultWorkStart = 9 * 60
	DefaultBedtime   = 22 * 60
)

// Anchors are the four fixed points a day is divided around, in minutes-of-day.
// HardStop is optional.
type Anchors struct {
	Wake      int
	WorkStart int
	HardStop  *int
	Bedtime   int
}

// DefaultAnchors returns 08:00 wake, 09:00 work, 22:00 bed and no hard stop.
func DefaultAnchors() Anchors {
	return Anchors{Wake: DefaultWake, WorkStart: DefaultWorkStart, Bedtime: DefaultBedtime}
}

// EveningStart is the hard stop when set. Without one the evening collapses
// onto bedtime.
func (a Anchors) EveningStart() int {
	if a.HardStop != nil {
		return *a.HardStop
	}
	return a.Bedtime
}

// RawAnchors are anchors as stored: "HH:MM" strings, HardStop possibly empty.
type RawAnchors struct {
	Wake      string
	WorkStart string
	HardStop  string
	Bedtime   string
}

// Resolve parses the strings, substituting defaults for anything malformed.
// A malformed hard stop is treated as absent.
func (r RawAnchors) Resolve() Anchors {
	a := Anchors{
		Wake:      clock.ParseOr(r.Wake, DefaultWake),
		WorkStart: clock.ParseOr(r.WorkStart, DefaultWorkStart),
		Bedtime:   clock.ParseOr(r.Bedtime, DefaultBedtime),
	}
	if hs, err := clock.Parse(r.HardStop); err == nil {
		a.HardStop = &hs
	}
	return a
}

// Raw formats anchors back into their stored form.
func (a Anchors) Raw() RawAnchors {
	r := RawAnchors{
		Wake:      clock.Format(a.Wake),
		WorkStart: clock.Format(a.WorkStart),
		Bedtime:   clock.Format(a.Bedtime),
	}
	if a.HardStop != nil {
		r.HardStop = clock.Format(*a.HardStop)
	}
	return r
}

// ResolveAnchors applies the same day-then-all policy as ResolveMarkers,
// falling back to DefaultAnchors when neither scope has a record.
func ResolveAnchors(byScope map[DayScope]RawAnchors, wd time.Weekday) Anchors {
	if r, ok := byScope[ScopeFor(wd)]; ok {
		return r.Resolve()
	}
	if r, ok := byScope[AllDays]; ok {
		return r.Resolve()
	}
	return DefaultAnchors()
}
