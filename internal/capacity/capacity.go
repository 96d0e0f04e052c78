// Package capacity turns the active energy window into a task budget.
package capacity

import (
	"fmt"
	"strings"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
)

// Complexity is how demanding a task is.
type Complexity string

const (
	None   Complexity = ""
	Quick  Complexity = "quick"
	Medium Complexity = "medium"
	Deep   Complexity = "deep"
)

// Complexities lists the complexities from richest to lightest.
var Complexities = []Complexity{Deep, Medium, Quick}

// Cost is the capacity a task of complexity c consumes.
func (c Complexity) Cost() float64 {
	switch c {
	case Quick:
		return 0.5
	case Medium:
		return 1.0
	case Deep:
		return 1.5
	}
	return 0
}

func (c Complexity) String() string {
	if c == None {
		return "none"
	}
	return string(c)
}

// ParseComplexity accepts quick, medium or deep.
func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Quick, Medium, Deep:
		return c, nil
	}
	return None, fmt.Errorf("unknown complexity %q", s)
}

// Kind separates capacity-limited focus work from life tasks, which are free.
type Kind string

const (
	Focus Kind = "focus"
	Life  Kind = "life"
)

// ParseKind accepts focus or life.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case Focus, Life:
		return k, nil
	}
	return "", fmt.Errorf("unknown task kind %q", s)
}

// Task is the slice of a planned task that capacity cares about.
type Task struct {
	Completed  bool
	Complexity Complexity
	Kind       Kind
}

// MaxOpenFocus caps uncompleted focus tasks regardless of numeric headroom.
const MaxOpenFocus = 5

// For is the capacity of a work window.
func For(w energy.WorkWindow) float64 {
	switch w {
	case energy.Deep:
		return 3
	case energy.Light:
		return 4
	}
	return 0
}

// ForLevel is the capacity of the window a level maps to. The per-level display
// numbers are never consulted.
func ForLevel(l energy.Level) float64 {
	return For(l.Window())
}

func open(t Task) bool { return !t.Completed && t.Kind == Focus }

// Used sums the cost of uncompleted focus tasks.
func Used(tasks []Task) float64 {
	var used float64
	for _, t := range tasks {
		if open(t) {
			used += t.Complexity.Cost()
		}
	}
	return used
}

// OpenFocus counts uncompleted focus tasks.
func OpenFocus(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if open(t) {
			n++
		}
	}
	return n
}

// State is a capacity budget and how much of it is spoken for.
type State struct {
	Total       float64
	Used        float64
	Remaining   float64
	OpenFocus   int
	CanAdd      bool
	Recommended Complexity
}

// Compute evaluates tasks against a total budget.
func Compute(total float64, tasks []Task) State {
	used := Used(tasks)
	remaining := max(0, total-used)
	n := OpenFocus(tasks)
	return State{
		Total:       total,
		Used:        used,
		Remaining:   remaining,
		OpenFocus:   n,
		CanAdd:      n < MaxOpenFocus && remaining >= Quick.Cost(),
		Recommended: Recommend(remaining),
	}
}

// Recommend returns the richest complexity that fits in remaining, or None.
func Recommend(remaining float64) Complexity {
	for _, c := range Complexities {
		if c.Cost() <= remaining {
			return c
		}
	}
	return None
}

// Fits reports whether a task of complexity c could be added now.
func (s State) Fits(c Complexity) bool {
	return s.CanAdd && c.Cost() <= s.Remaining
}

// DecayFactor scales capacity down as the hard stop approaches. Negative
// minutes mean the hard stop has passed.
func DecayFactor(minutesUntilHardStop int) float64 {
	switch {
	case minutesUntilHardStop < 0:
		return 0
	case minutesUntilHardStop < 60:
		return 0.3
	case minutesUntilHardStop < 120:
		return 0.6
	case minutesUntilHardStop < 180:
		return 0.8
	}
	return 1
}

// Outlook is advice on whether to take on more work given the time left. It
// never invalidates tasks already scheduled.
type Outlook struct {
	Factor         float64
	Adjusted       float64
	Blocked        bool
	ShouldAddTasks bool
}

// Forecast applies DecayFactor to total and compares the result with used.
func Forecast(total, used float64, minutesUntilHardStop int) Outlook {
	f := DecayFactor(minutesUntilHardStop)
	adjusted := total * f
	return Outlook{
		Factor:         f,
		Adjusted:       adjusted,
		Blocked:        f == 0,
		ShouldAddTasks: f > 0 && adjusted-used >= Quick.Cost(),
	}
}

// MinutesUntil is the signed distance from now to hardStop within the waking
// day that begins at wake. It is negative once the hard stop has passed.
func MinutesUntil(now, hardStop, wake int) int {
	return clock.WrapDiff(wake, hardStop) - clock.WrapDiff(wake, now)
}
