package export

import (
	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/timeline"
)

// Row is one segment placed back on the clock.
type Row struct {
	Period  timeline.Period
	Start   int // minute-of-day
	End     int // minute-of-day, may be before Start across midnight
	Minutes int
	Level   string
	Label   string
}

// Rows flattens a day into segments in waking order. Empty spans contribute nothing.
func Rows(day timeline.Plan) []Row {
	var rows []Row
	for _, span := range day.Spans {
		for _, seg := range span.Segments {
			rows = append(rows, Row{
				Period:  span.Window.Period,
				Start:   span.At(seg.Start),
				End:     span.At(seg.End),
				Minutes: seg.Len(),
				Level:   string(seg.Level),
				Label:   seg.Label,
			})
		}
	}
	return rows
}

func (r Row) startString() string { return clock.Format(r.Start) }
func (r Row) endString() string   { return clock.Format(r.End) }
