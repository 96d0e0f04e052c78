package timeline

import (
	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
)

// Span is a window together with its segments.
type Span struct {
	Window   Window
	Segments []Segment
}

// At converts an offset inside the span back to a minute-of-day.
func (s Span) At(offset int) int {
	return clock.Wrap(s.Window.Start + offset)
}

// Plan is a whole day's timeline, one span per period in waking order.
type Plan struct {
	Anchors energy.Anchors
	Spans   []Span
}

// BuildPlan lays markers over all four windows derived from anchors. Runs stop
// at wake, so yesterday's last marker never leaks into this morning.
func BuildPlan(a energy.Anchors, markers []energy.Marker, fb Fallbacks) Plan {
	ws := Windows(a)
	wake := []int{a.Wake}
	d := Plan{Anchors: a, Spans: make([]Span, 0, len(ws))}
	for _, w := range ws {
		d.Spans = append(d.Spans, Span{Window: w, Segments: build(w, markers, wake, fb.For(w.Period))})
	}
	return d
}

// Span returns the span of period p.
func (d Plan) Span(p Period) (Span, bool) {
	for _, s := range d.Spans {
		if s.Window.Period == p {
			return s, true
		}
	}
	return Span{}, false
}

// Active returns the non-empty span whose window contains now. Because windows
// are half-open, a moment on a boundary belongs to the window starting there.
func (d Plan) Active(now int) (Span, bool) {
	for _, s := range d.Spans {
		if len(s.Segments) > 0 && s.Window.Contains(now) {
			return s, true
		}
	}
	return Span{}, false
}

// Totals sums minutes per level across the whole day.
func (d Plan) Totals() map[energy.Level]int {
	out := make(map[energy.Level]int, len(energy.Levels))
	for _, s := range d.Spans {
		for _, seg := range s.Segments {
			out[seg.Level] += seg.Len()
		}
	}
	return out
}
