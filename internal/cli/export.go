package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/tideline/internal/export"
)

func addExport(topLevel *cobra.Command, e *env) {
	mo := &momentOptions{}
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the day's timeline to CSV or JSON",
		Example: `
tideline export --format csv
tideline export --format json --weekday sun --out sunday.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return fmt.Errorf("%w: format %q, want csv or json", errUsage, format)
			}
			t, err := mo.resolve(e.now())
			if err != nil {
				return err
			}
			date, err := e.planner.WakingDay(t)
			if err != nil {
				return err
			}
			day, err := e.planner.Plan(date.Weekday())
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				home, _ := os.UserHomeDir()
				path = filepath.Join(home, fmt.Sprintf("tideline-export-%s.%s", date.Format("2006-01-02"), format))
			}
			if format == "csv" {
				err = export.ToCSV(day, path)
			} else {
				err = export.ToJSON(day, path)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Exported to "+path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: ~/tideline-export-DATE.FORMAT)")
	addMomentArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
