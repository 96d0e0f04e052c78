package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tideline/internal/capacity"
	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
	"github.com/sadopc/tideline/internal/planner"
	"github.com/sadopc/tideline/internal/timeline"
)

type todayModel struct {
	width  int
	height int

	now  planner.Now
	warn bool
}

func (d *todayModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d *todayModel) set(n planner.Now, warn bool) {
	d.now = n
	d.warn = warn
}

func (d todayModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderNowPanel(w),
		d.renderTimelinePanel(w),
		d.renderCapacityPanel(w),
	)
}

func (d todayModel) renderNowPanel(w int) string {
	n := d.now
	timeStr := clockStyle.Render(clock.Format(n.Minutes))
	date := mutedStyle.Render(n.Date.Format("Monday, Jan 02"))

	if !n.InSpan {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			timeStr+"  "+date,
			mutedStyle.Render("Outside every period"),
		))
	}

	where := fmt.Sprintf("%s  %s", titleStyle.Render(string(n.Span.Window.Period)), levelLabel(n.Level))
	if seg := n.Position.Active; seg.Label != "" {
		where += mutedStyle.Render("  " + seg.Label)
	}

	left := fmt.Sprintf("%s left in segment · %s left in %s",
		clock.FormatSpan(n.Position.RemainingInSegment),
		clock.FormatSpan(n.Position.RemainingInPeriod),
		n.Span.Window.Period,
	)
	if n.HasNext && n.Span.Window.Period != timeline.Night {
		left += " · next change " + highlightStyle.Render(clock.Format(n.Next))
	}

	rows := []string{timeStr + "  " + date, where, mutedStyle.Render(left)}
	if d.warn {
		rows = append(rows, warningStyle.Render(fmt.Sprintf("⚠ hard stop in %s", clock.FormatSpan(n.UntilHardStop))))
	}
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (d todayModel) renderTimelinePanel(w int) string {
	n := d.now
	barWidth := w - 6
	if barWidth < 10 {
		barWidth = 10
	}

	rows := []string{titleStyle.Render("Timeline"), ""}
	for _, span := range n.Plan.Spans {
		if len(span.Segments) == 0 {
			continue
		}
		win := span.Window
		label := fmt.Sprintf("%-8s %s–%s  %s", win.Period, clock.Format(win.Start), clock.Format(win.End), clock.FormatSpan(win.Duration()))
		rows = append(rows, mutedStyle.Render(label))
		rows = append(rows, renderStrip(span.Segments, win.Duration(), barWidth))
		if n.InSpan && win.Period == n.Span.Window.Period {
			rows = append(rows, highlightStyle.Render(indicatorLine(n.Position.Percent, barWidth)))
		}
	}
	rows = append(rows, "", renderLegend())
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d todayModel) renderCapacityPanel(w int) string {
	n := d.now
	c := n.Capacity

	title := fmt.Sprintf("%s  %s window", titleStyle.Render("Capacity"), n.Level.Window())
	usage := fmt.Sprintf("%s used of %s · %s remaining · %d/%d open focus",
		formatUnits(c.Used), formatUnits(c.Total), highlightStyle.Render(formatUnits(c.Remaining)),
		c.OpenFocus, capacity.MaxOpenFocus)

	var advice string
	switch {
	case c.CanAdd:
		advice = successStyle.Render(fmt.Sprintf("Room for a %s task", c.Recommended))
	case c.OpenFocus >= capacity.MaxOpenFocus:
		advice = errorStyle.Render("Five open focus tasks: finish one first")
	default:
		advice = mutedStyle.Render("No room for focus work in this window")
	}

	rows := []string{title, "", usage, advice}
	if o := n.Outlook; o != nil {
		line := fmt.Sprintf("Hard stop %s · decay ×%.1f → %s", clock.Format(*n.Plan.Anchors.HardStop), o.Factor, formatUnits(o.Adjusted))
		switch {
		case o.Blocked:
			rows = append(rows, errorStyle.Render(line+" · past hard stop"))
		case !o.ShouldAddTasks:
			rows = append(rows, warningStyle.Render(line+" · wind down"))
		default:
			rows = append(rows, mutedStyle.Render(line))
		}
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// stripCells maps segments onto width cells. Cell boundaries are rounded from
// segment boundaries so adjacent segments never overlap or leave a hole.
func stripCells(segs []timeline.Segment, total, width int) []energy.Level {
	cells := make([]energy.Level, 0, width)
	if total <= 0 || width <= 0 {
		return cells
	}
	for _, s := range segs {
		from := int(math.Round(float64(s.Start) * float64(width) / float64(total)))
		to := int(math.Round(float64(s.End) * float64(width) / float64(total)))
		for i := from; i < to; i++ {
			cells = append(cells, s.Level)
		}
	}
	return cells
}

func renderStrip(segs []timeline.Segment, total, width int) string {
	cells := stripCells(segs, total, width)
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		for j < len(cells) && cells[j] == cells[i] {
			j++
		}
		b.WriteString(levelStyle(cells[i]).Render(strings.Repeat("█", j-i)))
		i = j
	}
	return b.String()
}

// indicatorLine places a caret at percent of width. percent is already kept
// away from the edges by timeline.IndicatorPercent.
func indicatorLine(percent float64, width int) string {
	pos := int(math.Round(percent / 100 * float64(width-1)))
	if pos < 0 {
		pos = 0
	}
	return strings.Repeat(" ", pos) + "▲"
}

func renderLegend() string {
	items := make([]string, 0, len(energy.Levels))
	for _, l := range energy.Levels {
		items = append(items, levelLabel(l))
	}
	return strings.Join(items, "  ")
}
