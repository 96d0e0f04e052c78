package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/tideline/internal/capacity"
	"github.com/sadopc/tideline/internal/store"
)

func addTasks(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "List and plan today's tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := e.planner.WakingDay(e.now())
			if err != nil {
				return err
			}
			tasks, err := e.store.ListTasks(store.DayKey(date))
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), store.DayKey(date), tasks)
			return nil
		},
	}

	addTasksAdd(cmd, e)
	addTasksDone(cmd, e)
	addTasksRemove(cmd, e)
	topLevel.AddCommand(cmd)
}

func printTasks(w io.Writer, day string, tasks []store.Task) {
	printTitle(w, "Tasks "+day)
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, faint(" none"))
		return
	}
	tbl := newTable()
	tbl.AddRow(bold("ID"), "", bold("TITLE"), bold("KIND"), bold("COMPLEXITY"), bold("COST"))
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		cost := "-"
		if t.Kind == capacity.Focus {
			cost = formatUnits(t.Complexity.Cost())
		}
		tbl.AddRow(t.ID, box, t.Title, string(t.Kind), t.Complexity.String(), cost)
	}
	printTable(w, tbl)
}

func addTasksAdd(topLevel *cobra.Command, e *env) {
	var complexity, kind string
	var force bool
	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a task to today, if the current window has room",
		Example: `
tideline tasks add write the report --complexity deep
tideline tasks add pick up laundry --kind life
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := capacity.ParseComplexity(complexity)
			if err != nil {
				return err
			}
			k, err := capacity.ParseKind(kind)
			if err != nil {
				return err
			}
			n, err := e.planner.At(e.now())
			if err != nil {
				return err
			}
			if k == capacity.Focus && !force && !n.Capacity.Fits(c) {
				return fmt.Errorf("no room for a %s task: %s of %s remaining, %d/%d open (use --force to add anyway)",
					c, formatUnits(n.Capacity.Remaining), formatUnits(n.Capacity.Total), n.Capacity.OpenFocus, capacity.MaxOpenFocus)
			}
			t, err := e.store.CreateTask(store.DayKey(n.Date), strings.Join(args, " "), c, k)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", t.ID, t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&complexity, "complexity", "c", string(capacity.Medium), "quick, medium or deep")
	cmd.Flags().StringVarP(&kind, "kind", "k", string(capacity.Focus), "focus or life")
	cmd.Flags().BoolVar(&force, "force", false, "add even when capacity says no")
	topLevel.AddCommand(cmd)
}

func taskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", errUsage, s)
	}
	return id, nil
}

func addTasksDone(topLevel *cobra.Command, e *env) {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := taskID(args[0])
			if err != nil {
				return err
			}
			if err := e.store.SetTaskCompleted(id, !undo); err != nil {
				return err
			}
			state := "completed"
			if undo {
				state = "reopened"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %d %s\n", id, state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "reopen instead")
	topLevel.AddCommand(cmd)
}

func addTasksRemove(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := taskID(args[0])
			if err != nil {
				return err
			}
			if err := e.store.DeleteTask(id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
