package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sadopc/tideline/internal/energy"
	"github.com/sadopc/tideline/internal/timeline"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Anchors  AnchorsConfig  `toml:"anchors"`
	Timeline TimelineConfig `toml:"timeline"`
	Capacity CapacityConfig `toml:"capacity"`
}

type DatabaseConfig struct {
	Path string `toml:"path,omitempty"`
}

// AnchorsConfig seeds the anchors used when the store has none for a day.
type AnchorsConfig struct {
	Wake      string `toml:"wake,omitempty"`
	WorkStart string `toml:"work_start,omitempty"`
	HardStop  string `toml:"hard_stop,omitempty"`
	Bedtime   string `toml:"bedtime,omitempty"`
}

type TimelineConfig struct {
	MorningFallback string `toml:"morning_fallback,omitempty"`
	DayFallback     string `toml:"day_fallback,omitempty"`
	EveningFallback string `toml:"evening_fallback,omitempty"`
}

type CapacityConfig struct {
	WarnMinutes int `toml:"warn_minutes,omitempty"` // warn when the hard stop is this close
}

// DefaultConfigPath returns ~/.config/tideline/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "tideline", "config.toml")
}

// Load reads the config at path. A missing file is not an error and yields
// an empty Config, whose Resolved helpers all return defaults.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ResolvedDBPath returns database.path with ~ expanded, or def when unset.
func (c Config) ResolvedDBPath(def string) string {
	p := c.Database.Path
	if p == "" {
		return def
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// ResolvedAnchors returns the configured anchors in stored form. Unset or
// malformed fields resolve to the built-in defaults later, in energy.RawAnchors.Resolve.
func (c Config) ResolvedAnchors() energy.RawAnchors {
	d := energy.DefaultAnchors().Raw()
	return energy.RawAnchors{
		Wake:      pick(c.Anchors.Wake, d.Wake),
		WorkStart: pick(c.Anchors.WorkStart, d.WorkStart),
		HardStop:  c.Anchors.HardStop,
		Bedtime:   pick(c.Anchors.Bedtime, d.Bedtime),
	}
}

// ResolvedFallbacks merges configured fallback levels over the defaults.
// Unknown level names are ignored.
func (c Config) ResolvedFallbacks() timeline.Fallbacks {
	fb := timeline.DefaultFallbacks()
	fb.Morning = level(c.Timeline.MorningFallback, fb.Morning)
	fb.Day = level(c.Timeline.DayFallback, fb.Day)
	fb.Evening = level(c.Timeline.EveningFallback, fb.Evening)
	return fb
}

// ResolvedWarnMinutes returns capacity.warn_minutes or 60 as default.
func (c Config) ResolvedWarnMinutes() int {
	if c.Capacity.WarnMinutes > 0 {
		return c.Capacity.WarnMinutes
	}
	return 60
}

func level(s string, def energy.Level) energy.Level {
	if s == "" {
		return def
	}
	l, err := energy.ParseLevel(s)
	if err != nil {
		return def
	}
	return l
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
