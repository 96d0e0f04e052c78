package store

import (
	"errors"
	"time"

	"github.com/sadopc/tideline/internal/capacity"
	"github.com/sadopc/tideline/internal/energy"
)

var (
	ErrMarkerLimit    = errors.New("marker limit reached for scope")
	ErrInvalidLevel   = errors.New("invalid energy level")
	ErrInvalidMinutes = errors.New("minutes out of range")
	ErrInvalidScope   = errors.New("invalid day scope")
	ErrInvalidTask    = errors.New("invalid task")
)

// MarkerRecord is a stored energy marker.
type MarkerRecord struct {
	ID        int64
	Scope     energy.DayScope
	Marker    energy.Marker
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Task struct {
	ID         int64
	Day        string // YYYY-MM-DD
	Title      string
	Complexity capacity.Complexity
	Kind       capacity.Kind
	Completed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Capacity projects the stored task onto what the capacity engine reads.
func (t Task) Capacity() capacity.Task {
	return capacity.Task{Completed: t.Completed, Complexity: t.Complexity, Kind: t.Kind}
}

// CapacityTasks converts a task list for capacity.Compute.
func CapacityTasks(tasks []Task) []capacity.Task {
	out := make([]capacity.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Capacity()
	}
	return out
}

type Setting struct {
	Key   string
	Value string
}

// DayKey formats a date the way the tasks table keys it.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
