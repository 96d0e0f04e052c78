package store

import (
	"fmt"
	"time"

	"github.com/sadopc/tideline/internal/energy"
)

// Snapshot is everything the timeline needs for one calendar day, read in one go.
type Snapshot struct {
	Weekday time.Weekday
	Markers []energy.Marker
	Anchors energy.Anchors
}

// Snapshot resolves the effective markers and anchors for a weekday. Callers
// recompute from a fresh snapshot after any edit rather than patching one.
func (s *Store) Snapshot(wd time.Weekday) (Snapshot, error) {
	markers, err := s.MarkersByScope()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot markers: %w", err)
	}
	anchors, err := s.AnchorsByScope()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot anchors: %w", err)
	}
	return Snapshot{
		Weekday: wd,
		Markers: energy.ResolveMarkers(markers, wd),
		Anchors: energy.ResolveAnchors(anchors, wd),
	}, nil
}
