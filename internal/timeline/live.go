package timeline

import "github.com/sadopc/tideline/internal/clock"

// Bounds for a rendered "now" indicator so a fixed-width glyph is never cut
// off at the edge of its container.
const (
	MinIndicatorPercent = 2.0
	MaxIndicatorPercent = 98.0
)

// Position is where a moment sits within a window's segments.
type Position struct {
	Active             Segment
	Index              int
	Offset             int
	RemainingInSegment int
	RemainingInPeriod  int
	// Inside is false when now lies outside the window; Offset is then clamped.
	Inside bool
	// Percent is the indicator position, already clamped to [2, 98].
	Percent float64
}

// IndicatorPercent is ToPercent narrowed to [MinIndicatorPercent, MaxIndicatorPercent].
func IndicatorPercent(offset, total int) float64 {
	p := clock.ToPercent(offset, total)
	if p < MinIndicatorPercent {
		return MinIndicatorPercent
	}
	if p > MaxIndicatorPercent {
		return MaxIndicatorPercent
	}
	return p
}

// Locate finds the segment active at minute-of-day now. On a boundary the
// segment that starts there is active. It reports false when there is nothing
// to locate against.
func Locate(now int, w Window, segs []Segment) (Position, bool) {
	total := w.Duration()
	if len(segs) == 0 || total <= 0 {
		return Position{}, false
	}

	raw := clock.WrapDiff(w.Start, clock.Wrap(now))
	offset := min(raw, total)

	idx := len(segs) - 1
	for i, s := range segs {
		if offset >= s.Start && offset < s.End {
			idx = i
			break
		}
	}
	active := segs[idx]

	return Position{
		Active:             active,
		Index:              idx,
		Offset:             offset,
		RemainingInSegment: max(0, active.End-offset),
		RemainingInPeriod:  total - offset,
		Inside:             raw < total,
		Percent:            IndicatorPercent(offset, total),
	}, true
}

// Next returns the minute-of-day at which the active segment ends, which may be
// the window end. It reports false when now is outside the span.
func (s Span) Next(now int) (int, bool) {
	pos, ok := Locate(now, s.Window, s.Segments)
	if !ok || !pos.Inside {
		return 0, false
	}
	return s.At(pos.Active.End), true
}
