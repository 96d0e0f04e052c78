package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
	"github.com/sadopc/tideline/internal/store"
)

func addMarkers(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "markers",
		Aliases: []string{"marker", "m"},
		Short:   "List and edit energy markers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addMarkersList(cmd, e)
	addMarkersAdd(cmd, e)
	addMarkersRemove(cmd, e)
	addMarkersImport(cmd, e)
	topLevel.AddCommand(cmd)
}

func scopeFlag(cmd *cobra.Command, scope *string) {
	cmd.Flags().StringVarP(scope, "scope", "s", "all", "all, or a day mon..sun")
}

func addMarkersList(topLevel *cobra.Command, e *env) {
	var scope string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a scope's markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := energy.ParseScope(scope)
			if err != nil {
				return err
			}
			ms, err := e.store.ListMarkers(sc)
			if err != nil {
				return err
			}
			printMarkers(cmd.OutOrStdout(), sc, ms)
			return nil
		},
	}
	scopeFlag(cmd, &scope)
	topLevel.AddCommand(cmd)
}

func printMarkers(w io.Writer, scope energy.DayScope, ms []store.MarkerRecord) {
	printTitle(w, fmt.Sprintf("Markers (%s) %d/%d", scope, len(ms), energy.MaxMarkersPerScope))
	if len(ms) == 0 {
		_, _ = fmt.Fprintln(w, faint(" none"))
		return
	}
	tbl := newTable()
	tbl.AddRow(bold("ID"), bold("TIME"), bold("LEVEL"), bold("LABEL"), bold("NOTIFY"))
	for _, r := range ms {
		notify := ""
		if r.Marker.Notify {
			notify = "✓"
		}
		tbl.AddRow(r.ID, clock.Format(r.Marker.Minutes), levelString(r.Marker.Level), r.Marker.Label, notify)
	}
	printTable(w, tbl)
}

func addMarkersAdd(topLevel *cobra.Command, e *env) {
	var scope, label string
	var notify bool
	cmd := &cobra.Command{
		Use:   "add HH:MM LEVEL",
		Short: "Add a marker",
		Example: `
tideline markers add 09:00 sparky --label coffee
tideline markers add 14:00 foggy --scope fri
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := energy.ParseScope(scope)
			if err != nil {
				return err
			}
			m, err := clock.Parse(args[0])
			if err != nil {
				return err
			}
			if e.store.SnapQuarterHour() {
				m = clock.RoundToQuarterHour(m)
			}
			l, err := energy.ParseLevel(args[1])
			if err != nil {
				return err
			}
			r, err := e.store.CreateMarker(sc, energy.Marker{Minutes: m, Level: l, Label: label, Notify: notify})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added marker %d: %s\n", r.ID, r.Marker)
			return nil
		},
	}
	scopeFlag(cmd, &scope)
	cmd.Flags().StringVarP(&label, "label", "l", "", "optional label")
	cmd.Flags().BoolVar(&notify, "notify", false, "flag the marker for notification")
	topLevel.AddCommand(cmd)
}

func addMarkersRemove(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a marker",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: id %q", errUsage, args[0])
			}
			if err := e.store.DeleteMarker(id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted marker %d\n", id)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addMarkersImport(topLevel *cobra.Command, e *env) {
	var scope, gap string
	cmd := &cobra.Command{
		Use:   "import START-END=LEVEL[:LABEL]...",
		Short: "Replace a scope's markers with explicit blocks",
		Long: `Replace a scope's markers with blocks that have explicit start and end
times. Each block becomes a marker at its start; where a block ends without
another beginning, a marker of the --gap level is added.`,
		Example: `
tideline markers import 09:00-12:00=sparky 13:00-17:00=foggy:slump
tideline markers import --scope sat 10:00-14:00=flowing
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := energy.ParseScope(scope)
			if err != nil {
				return err
			}
			gl, err := energy.ParseLevel(gap)
			if err != nil {
				return err
			}
			blocks := make([]store.Block, 0, len(args))
			for _, a := range args {
				b, err := parseBlock(a)
				if err != nil {
					return err
				}
				blocks = append(blocks, b)
			}
			recs, err := e.store.ImportBlocks(sc, blocks, gl)
			if err != nil {
				return err
			}
			printMarkers(cmd.OutOrStdout(), sc, recs)
			return nil
		},
	}
	scopeFlag(cmd, &scope)
	cmd.Flags().StringVar(&gap, "gap", string(energy.Resting), "level between blocks")
	topLevel.AddCommand(cmd)
}

// parseBlock reads "09:00-12:00=sparky" with an optional ":label" suffix.
// An end of 24:00 is accepted for blocks that run to midnight.
func parseBlock(s string) (store.Block, error) {
	span, rest, ok := strings.Cut(s, "=")
	if !ok {
		return store.Block{}, fmt.Errorf("%w: block %q, want START-END=LEVEL", errUsage, s)
	}
	from, to, ok := strings.Cut(span, "-")
	if !ok {
		return store.Block{}, fmt.Errorf("%w: block %q, want START-END=LEVEL", errUsage, s)
	}
	level, label, _ := strings.Cut(rest, ":")

	start, err := clock.Parse(from)
	if err != nil {
		return store.Block{}, err
	}
	end := clock.MinutesPerDay
	if strings.TrimSpace(to) != "24:00" {
		if end, err = clock.Parse(to); err != nil {
			return store.Block{}, err
		}
	}
	l, err := energy.ParseLevel(level)
	if err != nil {
		return store.Block{}, err
	}
	return store.Block{Start: start, End: end, Level: l, Label: label}, nil
}
