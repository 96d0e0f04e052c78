package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sadopc/tideline/internal/energy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.ResolvedFallbacks().Day != energy.Steady {
		t.Fatal("expected default day fallback")
	}
	if cfg.ResolvedWarnMinutes() != 60 {
		t.Fatalf("warn minutes = %d", cfg.ResolvedWarnMinutes())
	}
	if got := cfg.ResolvedDBPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Fatalf("db path = %q", got)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[database]
path = "/var/lib/tideline.db"

[anchors]
wake = "06:30"
hard_stop = "17:00"

[timeline]
day_fallback = "Flowing"
evening_fallback = "sleepy"

[capacity]
warn_minutes = 90
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.ResolvedDBPath(""); got != "/var/lib/tideline.db" {
		t.Fatalf("db path = %q", got)
	}

	a := cfg.ResolvedAnchors()
	if a.Wake != "06:30" || a.WorkStart != "09:00" || a.HardStop != "17:00" || a.Bedtime != "22:00" {
		t.Fatalf("anchors = %+v", a)
	}

	fb := cfg.ResolvedFallbacks()
	if fb.Day != energy.Flowing {
		t.Fatalf("day fallback = %s", fb.Day)
	}
	if fb.Evening != energy.Resting {
		t.Fatalf("unknown evening fallback should keep default, got %s", fb.Evening)
	}
	if cfg.ResolvedWarnMinutes() != 90 {
		t.Fatalf("warn minutes = %d", cfg.ResolvedWarnMinutes())
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[anchors\nwake = ")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolvedDBPathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := Config{Database: DatabaseConfig{Path: "~/data/t.db"}}
	if got := cfg.ResolvedDBPath(""); got != filepath.Join(home, "data", "t.db") {
		t.Fatalf("got %q", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	in := Config{
		Anchors:  AnchorsConfig{Wake: "07:15", Bedtime: "23:00"},
		Timeline: TimelineConfig{DayFallback: "foggy"},
	}
	if err := Save(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	if filepath.Base(DefaultConfigPath()) != "config.toml" {
		t.Fatalf("unexpected path %q", DefaultConfigPath())
	}
}
