package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sadopc/tideline/internal/capacity"
	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/planner"
)

func addCapacity(topLevel *cobra.Command, e *env) {
	mo := &momentOptions{}

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Print the task budget of the current energy window",
		Example: `
tideline capacity
tideline capacity --at 16:15
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
			printCapacity(cmd.OutOrStdout(), n, e.planner.Warn(n))
			return nil
		},
	}

	addMomentArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}

func printCapacity(w io.Writer, n planner.Now, warnHardStop bool) {
	c := n.Capacity
	printTitle(w, fmt.Sprintf("Capacity at %s", clock.Format(n.Minutes)))

	tbl := newTable()
	tbl.AddRow(faint("window"), fmt.Sprintf("%s (%s)", n.Level.Window(), levelString(n.Level)))
	tbl.AddRow(faint("total"), formatUnits(c.Total))
	tbl.AddRow(faint("used"), formatUnits(c.Used))
	tbl.AddRow(faint("remaining"), formatUnits(c.Remaining))
	tbl.AddRow(faint("open focus"), fmt.Sprintf("%d/%d", c.OpenFocus, capacity.MaxOpenFocus))
	tbl.AddRow(faint("can add"), yesNo(c.CanAdd))
	tbl.AddRow(faint("recommended"), c.Recommended.String())

	if o := n.Outlook; o != nil {
		until := clock.FormatSpan(n.UntilHardStop)
		if n.UntilHardStop < 0 {
			until = "passed " + clock.FormatSpan(-n.UntilHardStop) + " ago"
		} else {
			until = "in " + until
		}
		if warnHardStop {
			until = warn(until)
		}
		tbl.AddRow(faint("hard stop"), fmt.Sprintf("%s %s", clock.Format(*n.Plan.Anchors.HardStop), until))
		tbl.AddRow(faint("decay"), fmt.Sprintf("×%.1f → %s", o.Factor, formatUnits(o.Adjusted)))
		tbl.AddRow(faint("more tasks"), yesNo(o.ShouldAddTasks))
	}
	printTable(w, tbl)
}

func formatUnits(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
