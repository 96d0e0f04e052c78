// Package energy holds the user-declared inputs of the timeline: energy levels,
// markers, day scopes and anchor times.
package energy

import (
	"fmt"
	"strings"
)

// Level is a self-reported energy label.
type Level string

const (
	Sparky  Level = "sparky"
	Steady  Level = "steady"
	Flowing Level = "flowing"
	Foggy   Level = "foggy"
	Resting Level = "resting"
)

// Levels lists every level from most to least energetic.
var Levels = []Level{Sparky, Steady, Flowing, Foggy, Resting}

// ParseLevel accepts a known level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown energy level %q", s)
	}
	return l, nil
}

func (l Level) Valid() bool {
	switch l {
	case Sparky, Steady, Flowing, Foggy, Resting:
		return true
	}
	return false
}

// WorkWindow is the kind of work a level supports. It is the canonical input to
// capacity; levels only map onto it.
type WorkWindow string

const (
	Deep  WorkWindow = "deep"
	Light WorkWindow = "light"
	Rest  WorkWindow = "rest"
)

// Window maps a level onto its work window.
func (l Level) Window() WorkWindow {
	switch l {
	case Sparky, Steady:
		return Deep
	case Flowing, Foggy:
		return Light
	}
	return Rest
}

// DisplayCapacity is the legacy per-level number some displays still show.
// It is a label only; capacity.For on the work window is the real budget.
func (l Level) DisplayCapacity() float64 {
	switch l {
	case Sparky:
		return 3
	case Steady:
		return 2.5
	case Flowing:
		return 1.5
	case Foggy:
		return 0.5
	}
	return 0
}

// Emoji is a compact glyph for tables and the TUI legend.
func (l Level) Emoji() string {
	switch l {
	case Sparky:
		return "⚡"
	case Steady:
		return "▲"
	case Flowing:
		return "≈"
	case Foggy:
		return "░"
	}
	return "☾"
}
