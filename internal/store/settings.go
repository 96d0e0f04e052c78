package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/tideline/internal/energy"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// DayFallback is the level assumed for work hours no marker covers.
func (s *Store) DayFallback(fallback energy.Level) energy.Level {
	v, err := s.GetSetting("day_fallback")
	if err != nil {
		return fallback
	}
	l, err := energy.ParseLevel(v)
	if err != nil {
		return fallback
	}
	return l
}

// SnapQuarterHour reports whether new markers are rounded to 15 minutes.
func (s *Store) SnapQuarterHour() bool {
	v, err := s.GetSetting("snap_quarter_hour")
	if err != nil {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return b
}

// WeekStart is the first day of the report week: Sunday when week_start says
// so, Monday otherwise.
func (s *Store) WeekStart() time.Weekday {
	if v, err := s.GetSetting("week_start"); err == nil && strings.EqualFold(v, "sunday") {
		return time.Sunday
	}
	return time.Monday
}
