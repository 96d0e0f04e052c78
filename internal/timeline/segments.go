package timeline

import (
	"sort"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
)

// Segment is a run of one energy level inside a window. Start and End are
// minute offsets from the window start, Start < End.
type Segment struct {
	Start int
	End   int
	Level energy.Level
	Label string
}

// Len is the segment's length in minutes.
func (s Segment) Len() int { return s.End - s.Start }

// Percents returns the segment's left edge and width as shares of total.
func (s Segment) Percents(total int) (left, width float64) {
	left = clock.ToPercent(s.Start, total)
	width = clock.ToPercent(s.End, total) - left
	return left, width
}

// positioned is a marker placed relative to a window start. Markers outside
// the window sit at negative positions, in the order they occurred before it.
// A stop ends the run before it without starting one.
type positioned struct {
	pos  int
	stop bool
	energy.Marker
}

// Build partitions a window into segments from a set of markers.
//
// Each marker starts a run that lasts until the next marker in wrapped time
// order, or until the window ends. A marker outside the window carries into it
// when it is the latest one before the window start. Runs are clipped to the
// window; whatever no run covers is filled with fallback. The result is sorted,
// contiguous, starts at 0 and ends at the window's duration. A zero-length
// window yields nil. Night is always a single resting segment.
//
// When several markers share a time, the one that comes first in markers wins.
// Markers may arrive in any order and are not modified.
func Build(w Window, markers []energy.Marker, fallback energy.Level) []Segment {
	return build(w, markers, nil, fallback)
}

// build is Build with stops: minutes-of-day where any earlier run ends. A
// marker at the same minute as a stop still starts its run.
func build(w Window, markers []energy.Marker, stops []int, fallback energy.Level) []Segment {
	total := w.Duration()
	if total <= 0 {
		return nil
	}
	if w.Period == Night {
		return []Segment{{Start: 0, End: total, Level: energy.Resting}}
	}

	runs := clipRuns(total, place(w.Start, total, markers, stops))
	if len(runs) == 0 {
		return []Segment{{Start: 0, End: total, Level: fallback}}
	}
	return fillGaps(runs, total, fallback)
}

// place positions markers and stops relative to start, sorts them and keeps
// only the first entry at any position. Markers precede stops on ties.
func place(start, total int, markers []energy.Marker, stops []int) []positioned {
	at := func(m int) int {
		p := clock.WrapDiff(start, clock.Wrap(m))
		if p >= total {
			p -= clock.MinutesPerDay
		}
		return p
	}

	ps := make([]positioned, 0, len(markers)+len(stops))
	for _, m := range markers {
		ps = append(ps, positioned{pos: at(m.Minutes), Marker: m})
	}
	for _, s := range stops {
		ps = append(ps, positioned{pos: at(s), stop: true})
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].pos < ps[j].pos })

	out := make([]positioned, 0, len(ps))
	for _, p := range ps {
		if len(out) > 0 && out[len(out)-1].pos == p.pos {
			continue
		}
		out = append(out, p)
	}
	return out
}

func clipRuns(total int, ps []positioned) []Segment {
	var runs []Segment
	for i, p := range ps {
		if p.stop {
			continue
		}
		runEnd := total
		if i+1 < len(ps) {
			runEnd = ps[i+1].pos
		}
		s, e := max(p.pos, 0), min(runEnd, total)
		if e <= s {
			continue
		}
		runs = append(runs, Segment{Start: s, End: e, Level: p.Level, Label: p.Label})
	}
	return runs
}

func fillGaps(runs []Segment, total int, fallback energy.Level) []Segment {
	out := make([]Segment, 0, len(runs)*2+1)
	cursor := 0
	for _, r := range runs {
		if r.Start > cursor {
			out = append(out, Segment{Start: cursor, End: r.Start, Level: fallback})
		}
		out = append(out, r)
		cursor = r.End
	}
	if cursor < total {
		out = append(out, Segment{Start: cursor, End: total, Level: fallback})
	}
	return out
}
