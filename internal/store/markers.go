package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sadopc/tideline/internal/energy"
)

func validateMarker(scope energy.DayScope, m energy.Marker) error {
	if _, err := energy.ParseScope(string(scope)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	if !m.Level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, m.Level)
	}
	if m.Minutes < 0 || m.Minutes > 1439 {
		return fmt.Errorf("%w: %d", ErrInvalidMinutes, m.Minutes)
	}
	return nil
}

// execer is the subset of *sql.DB and *sql.Tx the marker writes need.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func insertMarker(q execer, scope energy.DayScope, m energy.Marker) (int64, error) {
	var count int
	if err := q.QueryRow(`SELECT COUNT(*) FROM energy_markers WHERE scope = ?`, scope).Scan(&count); err != nil {
		return 0, fmt.Errorf("count markers: %w", err)
	}
	if count >= energy.MaxMarkersPerScope {
		return 0, fmt.Errorf("%w: %s has %d", ErrMarkerLimit, scope, count)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := q.Exec(
		`INSERT INTO energy_markers (scope, minutes, level, label, notify, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		scope, m.Minutes, m.Level, m.Label, boolInt(m.Notify), now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert marker: %w", err)
	}
	return res.LastInsertId()
}

// CreateMarker stores a marker, refusing unknown levels and a scope's ninth marker.
func (s *Store) CreateMarker(scope energy.DayScope, m energy.Marker) (*MarkerRecord, error) {
	if err := validateMarker(scope, m); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	id, err := insertMarker(tx, scope, m)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit marker: %w", err)
	}
	return s.GetMarker(id)
}

const markerColumns = `id, scope, minutes, level, label, notify, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMarker(row scanner) (MarkerRecord, error) {
	var r MarkerRecord
	var scope, level, createdAt, updatedAt string
	var notify int
	if err := row.Scan(&r.ID, &scope, &r.Marker.Minutes, &level, &r.Marker.Label, &notify, &createdAt, &updatedAt); err != nil {
		return r, err
	}
	r.Scope = energy.DayScope(scope)
	r.Marker.Level = energy.Level(level)
	r.Marker.Notify = notify == 1
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return r, nil
}

func (s *Store) GetMarker(id int64) (*MarkerRecord, error) {
	r, err := scanMarker(s.db.QueryRow(`SELECT `+markerColumns+` FROM energy_markers WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get marker %d: %w", id, err)
	}
	return &r, nil
}

// ListMarkers returns a scope's markers in the order they were created, which
// is the order ties between equal times are broken in.
func (s *Store) ListMarkers(scope energy.DayScope) ([]MarkerRecord, error) {
	rows, err := s.db.Query(`SELECT `+markerColumns+` FROM energy_markers WHERE scope = ? ORDER BY id`, scope)
	if err != nil {
		return nil, fmt.Errorf("list markers: %w", err)
	}
	defer rows.Close()

	var markers []MarkerRecord
	for rows.Next() {
		r, err := scanMarker(rows)
		if err != nil {
			return nil, err
		}
		markers = append(markers, r)
	}
	return markers, rows.Err()
}

// MarkersByScope loads every marker grouped by scope, each group in creation order.
func (s *Store) MarkersByScope() (map[energy.DayScope][]energy.Marker, error) {
	rows, err := s.db.Query(`SELECT ` + markerColumns + ` FROM energy_markers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list all markers: %w", err)
	}
	defer rows.Close()

	out := make(map[energy.DayScope][]energy.Marker)
	for rows.Next() {
		r, err := scanMarker(rows)
		if err != nil {
			return nil, err
		}
		out[r.Scope] = append(out[r.Scope], r.Marker)
	}
	return out, rows.Err()
}

// UpdateMarker rewrites a marker in place; its scope does not change.
func (s *Store) UpdateMarker(id int64, m energy.Marker) error {
	if err := validateMarker(energy.AllDays, m); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE energy_markers SET minutes = ?, level = ?, label = ?, notify = ?, updated_at = ? WHERE id = ?`,
		m.Minutes, m.Level, m.Label, boolInt(m.Notify), now, id,
	)
	if err != nil {
		return fmt.Errorf("update marker %d: %w", id, err)
	}
	return expectOne(res, "marker", id)
}

func (s *Store) DeleteMarker(id int64) error {
	res, err := s.db.Exec(`DELETE FROM energy_markers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete marker %d: %w", id, err)
	}
	return expectOne(res, "marker", id)
}

func expectOne(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, sql.ErrNoRows)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
