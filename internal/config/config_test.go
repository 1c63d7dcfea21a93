package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventform/internal/datetime"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventform", "config.json")
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate error: %v", err)
	}
	if cfg.Timezone != "UTC" || cfg.WeekStart != "monday" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	if s.DefaultDuration != 30*time.Minute || s.DefaultStartTime != datetime.NewClock(9, 0) {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if len(s.FullDayNotifications) != 1 || s.FullDayNotifications[0].At != datetime.NewClock(9, 0) {
		t.Fatalf("unexpected full-day notifications: %+v", s.FullDayNotifications)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("timezone: Europe/Paris\nweek_start: Sunday\ncalendars:\n  - id: work\n    name: Work\n  - id: work\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	if s.Timezone != "Europe/Paris" || s.WeekStart != time.Sunday {
		t.Fatalf("unexpected settings: %+v", s)
	}
	cals := cfg.EventCalendars()
	if len(cals) != 2 || cals[0].ID != "primary" || cals[1].ID != "work" {
		t.Fatalf("unexpected calendars: %+v", cals)
	}
}

func TestSaveRoundTripYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.Timezone = "America/New_York"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if back.Timezone != "America/New_York" || back.DefaultDuration != "30m" {
		t.Fatalf("unexpected config: %+v", back)
	}
}

func TestSettingsRejectsUnknownTimezone(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Europe/Atlantis"
	if _, err := cfg.Settings(); !errors.Is(err, datetime.ErrInvalidTimezone) {
		t.Fatalf("expected ErrInvalidTimezone, got %v", err)
	}
	cfg.Timezone = "local"
	if _, err := cfg.Settings(); !errors.Is(err, datetime.ErrInvalidTimezone) {
		t.Fatalf("expected ErrInvalidTimezone for local, got %v", err)
	}
}

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"week start", func(c *Config) { c.WeekStart = "friday" }},
		{"date order", func(c *Config) { c.MinDate, c.MaxDate = "2030-01-01", "2020-01-01" }},
		{"duration", func(c *Config) { c.DefaultDuration = "-5m" }},
		{"start time", func(c *Config) { c.DefaultStartTime = "25:00" }},
		{"notification", func(c *Config) { c.FullDayNotifications = []string{"soon"} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if _, err := cfg.Settings(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
