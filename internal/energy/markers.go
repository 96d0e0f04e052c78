package energy

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/tideline/internal/clock"
)

// MaxMarkersPerScope caps how many markers one day scope may hold. The store
// enforces it on create; the timeline accepts any count.
const MaxMarkersPerScope = 8

// Marker starts a run of Level at Minutes that lasts until the next marker.
type Marker struct {
	Minutes int
	Level   Level
	Label   string
	Notify  bool
}

func (m Marker) String() string {
	if m.Label == "" {
		return fmt.Sprintf("%s %s", clock.Format(m.Minutes), m.Level)
	}
	return fmt.Sprintf("%s %s (%s)", clock.Format(m.Minutes), m.Level, m.Label)
}

// DayScope restricts markers or anchors to one weekday, or to every day.
type DayScope string

const (
	AllDays DayScope = "all"
	Mon     DayScope = "mon"
	Tue     DayScope = "tue"
	Wed     DayScope = "wed"
	Thu     DayScope = "thu"
	Fri     DayScope = "fri"
	Sat     DayScope = "sat"
	Sun     DayScope = "sun"
)

// Scopes lists every scope, "all" first.
var Scopes = []DayScope{AllDays, Mon, Tue, Wed, Thu, Fri, Sat, Sun}

var weekdayScopes = [...]DayScope{Sun, Mon, Tue, Wed, Thu, Fri, Sat}

// ScopeFor returns the day-specific scope of a weekday.
func ScopeFor(wd time.Weekday) DayScope {
	return weekdayScopes[wd]
}

// ParseScope accepts "all", a three-letter day, or a full weekday name.
func ParseScope(s string) (DayScope, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	sc := DayScope(v)
	for _, known := range Scopes {
		if sc == known {
			return sc, nil
		}
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if v == strings.ToLower(wd.String()) {
			return ScopeFor(wd), nil
		}
	}
	return "", fmt.Errorf("unknown day scope %q", s)
}

// ResolveMarkers picks the effective markers for a weekday: the day's own
// markers when it has any, otherwise the "all" markers. Scopes never merge.
func ResolveMarkers(byScope map[DayScope][]Marker, wd time.Weekday) []Marker {
	if ms := byScope[ScopeFor(wd)]; len(ms) > 0 {
		return ms
	}
	return byScope[AllDays]
}
