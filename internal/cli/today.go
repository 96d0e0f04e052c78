package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/planner"
	"github.com/sadopc/tideline/internal/timeline"
)

func addToday(topLevel *cobra.Command, e *env) {
	mo := &momentOptions{}

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print the day's energy segments and where now falls on them",
		Example: `
tideline today
tideline today --at 14:30
tideline today --weekday sat --at 10:00
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := mo.resolve(e.now())
			if err != nil {
				return err
			}
			n, err := e.planner.At(t)
			if err != nil {
				return err
			}
			printToday(cmd.OutOrStdout(), n)
			return nil
		},
	}

	addMomentArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}

func printToday(w io.Writer, n planner.Now) {
	a := n.Plan.Anchors
	stop := "none"
	if a.HardStop != nil {
		stop = clock.Format(*a.HardStop)
	}
	printTitle(w, n.Date.Format("Monday 2006-01-02"))
	_, _ = fmt.Fprintf(w, "%s wake %s  work %s  stop %s  bed %s\n\n",
		faint("anchors"), clock.Format(a.Wake), clock.Format(a.WorkStart), stop, clock.Format(a.Bedtime))

	tbl := newTable()
	tbl.AddRow(bold("PERIOD"), bold("START"), bold("END"), bold("LENGTH"), bold("LEVEL"), bold("LABEL"), "")
	for _, span := range n.Plan.Spans {
		for i, seg := range span.Segments {
			here := ""
			if n.InSpan && span.Window.Period == n.Span.Window.Period && i == n.Position.Index {
				here = bold("◀ now")
			}
			tbl.AddRow(
				string(span.Window.Period),
				clock.Format(span.At(seg.Start)),
				clock.Format(span.At(seg.End)),
				clock.FormatSpan(seg.Len()),
				levelString(seg.Level),
				seg.Label,
				here,
			)
		}
	}
	printTable(w, tbl)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, nowLine(n))
}

func nowLine(n planner.Now) string {
	if !n.InSpan {
		return fmt.Sprintf("now %s · outside every period", clock.Format(n.Minutes))
	}
	line := fmt.Sprintf("now %s · %s · %s · %s left in segment, %s left in %s",
		clock.Format(n.Minutes),
		n.Span.Window.Period,
		levelString(n.Level),
		clock.FormatSpan(n.Position.RemainingInSegment),
		clock.FormatSpan(n.Position.RemainingInPeriod),
		n.Span.Window.Period,
	)
	if n.HasNext && n.Span.Window.Period != timeline.Night {
		line += " · next change " + clock.Format(n.Next)
	}
	return line
}
