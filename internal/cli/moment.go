package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
)

// momentOptions pick the moment a command evaluates.
type momentOptions struct {
	At      string
	Weekday string
}

func addMomentArgs(cmd *cobra.Command, o *momentOptions) {
	cmd.Flags().StringVar(&o.At, "at", "", "evaluate at HH:MM instead of now")
	cmd.Flags().StringVar(&o.Weekday, "weekday", "", "evaluate on the next mon..sun instead of today")
}

// resolve applies the flags to now. --weekday moves forward to the next day
// with that name, today included; --at replaces the time of day.
func (o momentOptions) resolve(now time.Time) (time.Time, error) {
	t := now
	if o.Weekday != "" {
		scope, err := energy.ParseScope(o.Weekday)
		if err != nil || scope == energy.AllDays {
			return t, fmt.Errorf("%w: weekday %q", errUsage, o.Weekday)
		}
		for i := 0; i < 7; i++ {
			d := now.AddDate(0, 0, i)
			if energy.ScopeFor(d.Weekday()) == scope {
				t = d
				break
			}
		}
	}
	if o.At != "" {
		m, err := clock.Parse(o.At)
		if err != nil {
			return t, fmt.Errorf("%w: %v", errUsage, err)
		}
		y, mo, d := t.Date()
		t = time.Date(y, mo, d, m/60, m%60, 0, 0, t.Location())
	}
	return t, nil
}
