package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/tideline/internal/energy"
)

// SetAnchors stores a scope's anchor strings, replacing any existing record.
// Strings are kept verbatim; malformed values resolve to defaults on read.
func (s *Store) SetAnchors(scope energy.DayScope, r energy.RawAnchors) error {
	if _, err := energy.ParseScope(string(scope)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO anchors (scope, wake, work_start, hard_stop, bedtime, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(scope) DO UPDATE SET
			wake = excluded.wake, work_start = excluded.work_start,
			hard_stop = excluded.hard_stop, bedtime = excluded.bedtime,
			updated_at = excluded.updated_at`,
		scope, r.Wake, r.WorkStart, r.HardStop, r.Bedtime, now,
	)
	if err != nil {
		return fmt.Errorf("set anchors %s: %w", scope, err)
	}
	return nil
}

// GetAnchors returns a scope's stored anchors. ok is false when the scope has none.
func (s *Store) GetAnchors(scope energy.DayScope) (r energy.RawAnchors, ok bool, err error) {
	err = s.db.QueryRow(
		`SELECT wake, work_start, hard_stop, bedtime FROM anchors WHERE scope = ?`, scope,
	).Scan(&r.Wake, &r.WorkStart, &r.HardStop, &r.Bedtime)
	if errors.Is(err, sql.ErrNoRows) {
		return r, false, nil
	}
	if err != nil {
		return r, false, fmt.Errorf("get anchors %s: %w", scope, err)
	}
	return r, true, nil
}

func (s *Store) DeleteAnchors(scope energy.DayScope) error {
	_, err := s.db.Exec(`DELETE FROM anchors WHERE scope = ?`, scope)
	return err
}

func (s *Store) AnchorsByScope() (map[energy.DayScope]energy.RawAnchors, error) {
	rows, err := s.db.Query(`SELECT scope, wake, work_start, hard_stop, bedtime FROM anchors`)
	if err != nil {
		return nil, fmt.Errorf("list anchors: %w", err)
	}
	defer rows.Close()

	out := make(map[energy.DayScope]energy.RawAnchors)
	for rows.Next() {
		var scope string
		var r energy.RawAnchors
		if err := rows.Scan(&scope, &r.Wake, &r.WorkStart, &r.HardStop, &r.Bedtime); err != nil {
			return nil, err
		}
		out[energy.DayScope(scope)] = r
	}
	return out, rows.Err()
}
