package store

import (
	"fmt"
	"sort"

	"github.com/sadopc/tideline/internal/clock"
	"github.com/sadopc/tideline/internal/energy"
)

// Block is a schedule entry with an explicit start and end, the shape some
// imported schedules use. End may be before Start when a block crosses midnight.
type Block struct {
	Start int
	End   int
	Level energy.Level
	Label string
}

// MarkersFromBlocks converts blocks into point markers: one at each block's
// start, plus a gapLevel marker where a block ends without another beginning.
// A later block cuts off an earlier one it overlaps. Zero-length blocks are dropped.
func MarkersFromBlocks(blocks []Block, gapLevel energy.Level) ([]energy.Marker, error) {
	if !gapLevel.Valid() {
		return nil, fmt.Errorf("%w: gap %q", ErrInvalidLevel, gapLevel)
	}
	bs := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if !b.Level.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, b.Level)
		}
		if b.Start < 0 || b.Start > 1439 || b.End < 0 || b.End > clock.MinutesPerDay {
			return nil, fmt.Errorf("%w: block %d-%d", ErrInvalidMinutes, b.Start, b.End)
		}
		b.End = clock.Wrap(b.End)
		if b.Start == b.End {
			continue
		}
		bs = append(bs, b)
	}
	sort.SliceStable(bs, func(i, j int) bool { return bs[i].Start < bs[j].Start })

	var out []energy.Marker
	for i, b := range bs {
		out = append(out, energy.Marker{Minutes: b.Start, Level: b.Level, Label: b.Label})

		next := -1
		if i+1 < len(bs) {
			next = bs[i+1].Start
		}
		if b.End == next || overlapsNext(b, next) {
			continue
		}
		out = append(out, energy.Marker{Minutes: b.End, Level: gapLevel})
	}
	return out, nil
}

// overlapsNext reports whether the next block starts inside b.
func overlapsNext(b Block, next int) bool {
	if next < 0 {
		return false
	}
	return clock.WrapDiff(b.Start, next) < clock.WrapDiff(b.Start, b.End)
}

// ImportBlocks replaces a scope's markers with the conversion of blocks. The
// scope is left untouched if the result would exceed the marker cap.
func (s *Store) ImportBlocks(scope energy.DayScope, blocks []Block, gapLevel energy.Level) ([]MarkerRecord, error) {
	markers, err := MarkersFromBlocks(blocks, gapLevel)
	if err != nil {
		return nil, err
	}
	if len(markers) > energy.MaxMarkersPerScope {
		return nil, fmt.Errorf("%w: import needs %d markers", ErrMarkerLimit, len(markers))
	}
	for _, m := range markers {
		if err := validateMarker(scope, m); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM energy_markers WHERE scope = ?`, scope); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("clear scope %s: %w", scope, err)
	}
	for _, m := range markers {
		if _, err := insertMarker(tx, scope, m); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return s.ListMarkers(scope)
}
