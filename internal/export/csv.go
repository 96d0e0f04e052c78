package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/timeline"
)

func ToCSV(day timeline.Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Period", "Start", "End", "Minutes", "Duration", "Level", "Label"}); err != nil {
		return err
	}

	for _, r := range Rows(day) {
		row := []string{
			string(r.Period),
			r.startString(),
			r.endString(),
			fmt.Sprintf("%d", r.Minutes),
			clock.FormatSpan(r.Minutes),
			r.Level,
			r.Label,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
