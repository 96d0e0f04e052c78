package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
	"github.com/sadopc/tideline/internal/planner"
)

type reportMode int

const (
	reportLevels reportMode = iota
	reportWindows
)

var windows = []energy.WorkWindow{energy.Deep, energy.Light, energy.Rest}

var windowColors = map[energy.WorkWindow]lipgloss.Color{
	energy.Deep:  levelColors[energy.Sparky],
	energy.Light: levelColors[energy.Steady],
	energy.Rest:  colorSubtle,
}

type reportsModel struct {
	planner *planner.Planner
	clock   func() time.Time
	width   int
	height  int

	mode   reportMode
	days   []planner.DayTotals
	offset int // weeks back from the current one

	chart barchart.Model
}

func newReportsModel(p *planner.Planner, clk func() time.Time) reportsModel {
	return reportsModel{
		planner: p,
		clock:   clk,
		chart:   barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	days []planner.DayTotals
}

func (r reportsModel) weekStart() time.Time {
	return r.planner.WeekStart(r.clock()).AddDate(0, 0, -7*r.offset)
}

func (r reportsModel) refresh() tea.Cmd {
	start := r.weekStart()
	return func() tea.Msg {
		days, err := r.planner.Week(start)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Report error: %v", err), isError: true}
		}
		return reportsDataMsg{days: days}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.days = msg.days
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		case key.Matches(msg, keys.Toggle):
			if r.mode == reportLevels {
				r.mode = reportWindows
			} else {
				r.mode = reportLevels
			}
			r.buildChart()
			return r, nil
		}
	}
	return r, nil
}

// windowTotals folds per-level minutes into per-window minutes.
func windowTotals(totals map[energy.Level]int) map[energy.WorkWindow]int {
	out := make(map[energy.WorkWindow]int, len(windows))
	for l, m := range totals {
		out[l.Window()] += m
	}
	return out
}

func hours(mins int) float64 { return float64(mins) / 60 }

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	bars := make([]barchart.BarData, 0, len(r.days))
	for _, d := range r.days {
		var values []barchart.BarValue
		if r.mode == reportWindows {
			wt := windowTotals(d.Totals)
			for _, w := range windows {
				if wt[w] == 0 {
					continue
				}
				values = append(values, barchart.BarValue{
					Name:  string(w),
					Value: hours(wt[w]),
					Style: lipgloss.NewStyle().Foreground(windowColors[w]),
				})
			}
		} else {
			for _, l := range energy.Levels {
				if d.Totals[l] == 0 {
					continue
				}
				values = append(values, barchart.BarValue{
					Name:  string(l),
					Value: hours(d.Totals[l]),
					Style: levelStyle(l),
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{Label: d.Date.Format("Mon 02"), Values: values})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	levelsTab := inactiveTabStyle.Render("Levels")
	windowsTab := inactiveTabStyle.Render("Windows")
	if r.mode == reportLevels {
		levelsTab = activeTabStyle.Render("Levels")
	} else {
		windowsTab = activeTabStyle.Render("Windows")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, levelsTab, windowsTab)

	start := r.weekStart()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s – %s", start.Format("Jan 02"), start.AddDate(0, 0, 6).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Week"), "  ", modeTabs, "  ", dateLabel,
	)

	nav := mutedStyle.Render("  ←/→: week  space: levels/windows")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderLegend(), "", r.renderSummaryTable(w), "", nav,
		),
	)
}

func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.days) == 0 {
		return mutedStyle.Render("  No data for this week")
	}

	sum := make(map[energy.Level]int)
	for _, d := range r.days {
		for l, m := range d.Totals {
			sum[l] += m
		}
	}

	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-14s %10s %8s", "Level", "Week", "Per day")),
		mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 34))),
	}
	for _, l := range energy.Levels {
		label := levelStyle(l).Render(fmt.Sprintf("%-14s", l.Emoji()+" "+string(l)))
		rows = append(rows, fmt.Sprintf("  %s %10s %8s", label,
			clock.FormatSpan(sum[l]), clock.FormatSpan(sum[l]/len(r.days))))
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderLegend() string {
	var items []string
	if r.mode == reportWindows {
		for _, w := range windows {
			dot := lipgloss.NewStyle().Foreground(windowColors[w]).Render("●")
			items = append(items, fmt.Sprintf("%s %s", dot, w))
		}
	} else {
		for _, l := range energy.Levels {
			items = append(items, levelStyle(l).Render("●")+" "+string(l))
		}
	}
	return "  " + strings.Join(items, "  ")
}
