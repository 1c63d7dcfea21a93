package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"eventform/internal/datetime"
	"eventform/internal/event"
)

type Calendar struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Config struct {
	CalendarID           string     `json:"calendar_id" yaml:"calendar_id"`
	Calendars            []Calendar `json:"calendars" yaml:"calendars"`
	Timezone             string     `json:"timezone" yaml:"timezone"`
	WeekStart            string     `json:"week_start" yaml:"week_start"`
	MinDate              string     `json:"min_date" yaml:"min_date"`
	MaxDate              string     `json:"max_date" yaml:"max_date"`
	DefaultStartTime     string     `json:"default_start_time" yaml:"default_start_time"`
	DefaultDuration      string     `json:"default_duration" yaml:"default_duration"`
	DisplayWeekNumbers   bool       `json:"display_week_numbers" yaml:"display_week_numbers"`
	PartDayNotifications []string   `json:"part_day_notifications" yaml:"part_day_notifications"`
	FullDayNotifications []string   `json:"full_day_notifications" yaml:"full_day_notifications"`
}

var weekStarts = map[string]time.Weekday{
	"sunday":   time.Sunday,
	"monday":   time.Monday,
	"saturday": time.Saturday,
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func Load(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := decode(path, data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	normalize(&cfg)
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func Default() *Config {
	return &Config{
		CalendarID:           "primary",
		Calendars:            []Calendar{{ID: "primary", Name: "Personal"}},
		Timezone:             "UTC",
		WeekStart:            "monday",
		MinDate:              "1970-01-01",
		MaxDate:              "2037-12-31",
		DefaultStartTime:     "09:00",
		DefaultDuration:      "30m",
		PartDayNotifications: []string{"15m"},
		FullDayNotifications: []string{"0d@09:00"},
	}
}

func LoadOrCreate(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := decode(path, data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	normalize(&cfg)
	if err := Save(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize fills missing fields. It never replaces a timezone that is set
// but unknown; Settings reports that instead.
func normalize(cfg *Config) {
	def := Default()
	if cfg.CalendarID == "" {
		cfg.CalendarID = def.CalendarID
	}
	if cfg.Timezone == "" {
		cfg.Timezone = def.Timezone
	}
	cfg.WeekStart = strings.ToLower(strings.TrimSpace(cfg.WeekStart))
	if cfg.WeekStart == "" {
		cfg.WeekStart = def.WeekStart
	}
	if cfg.MinDate == "" {
		cfg.MinDate = def.MinDate
	}
	if cfg.MaxDate == "" {
		cfg.MaxDate = def.MaxDate
	}
	if cfg.DefaultStartTime == "" {
		cfg.DefaultStartTime = def.DefaultStartTime
	}
	if cfg.DefaultDuration == "" {
		cfg.DefaultDuration = def.DefaultDuration
	}
	if cfg.PartDayNotifications == nil {
		cfg.PartDayNotifications = def.PartDayNotifications
	}
	if cfg.FullDayNotifications == nil {
		cfg.FullDayNotifications = def.FullDayNotifications
	}
	seen := make(map[string]bool, len(cfg.Calendars))
	filtered := make([]Calendar, 0, len(cfg.Calendars))
	for _, c := range cfg.Calendars {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" || seen[c.ID] {
			continue
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		seen[c.ID] = true
		filtered = append(filtered, c)
	}
	if !seen[cfg.CalendarID] {
		filtered = append([]Calendar{{ID: cfg.CalendarID, Name: cfg.CalendarID}}, filtered...)
	}
	cfg.Calendars = filtered
}

// Settings validates the config and converts it for the editor.
func (c *Config) Settings() (event.Settings, error) {
	var s event.Settings
	if _, err := datetime.LoadLocation(c.Timezone); err != nil {
		return s, fmt.Errorf("timezone: %w", err)
	}
	s.Timezone = c.Timezone
	ws, ok := weekStarts[c.WeekStart]
	if !ok {
		return s, fmt.Errorf("week_start must be sunday, monday or saturday, got %q", c.WeekStart)
	}
	s.WeekStart = ws
	var err error
	if s.MinDate, err = datetime.ParseDate(c.MinDate); err != nil {
		return s, fmt.Errorf("min_date: %w", err)
	}
	if s.MaxDate, err = datetime.ParseDate(c.MaxDate); err != nil {
		return s, fmt.Errorf("max_date: %w", err)
	}
	if s.MaxDate.Before(s.MinDate) {
		return s, fmt.Errorf("max_date %s is before min_date %s", s.MaxDate, s.MinDate)
	}
	if s.DefaultStartTime, err = datetime.ParseClock(c.DefaultStartTime); err != nil {
		return s, fmt.Errorf("default_start_time: %w", err)
	}
	if s.DefaultDuration, err = time.ParseDuration(c.DefaultDuration); err != nil || s.DefaultDuration <= 0 {
		return s, fmt.Errorf("default_duration must be a positive duration, got %q", c.DefaultDuration)
	}
	s.DisplayWeekNumbers = c.DisplayWeekNumbers
	for _, raw := range c.PartDayNotifications {
		n, err := event.ParseNotification(raw, false)
		if err != nil {
			return s, err
		}
		s.PartDayNotifications = append(s.PartDayNotifications, n)
	}
	for _, raw := range c.FullDayNotifications {
		n, err := event.ParseNotification(raw, true)
		if err != nil {
			return s, err
		}
		s.FullDayNotifications = append(s.FullDayNotifications, n)
	}
	return s, nil
}

// EventCalendars is the calendar list offered by the editor.
func (c *Config) EventCalendars() []event.Calendar {
	out := make([]event.Calendar, 0, len(c.Calendars))
	for _, cal := range c.Calendars {
		out = append(out, event.Calendar{ID: cal.ID, Name: cal.Name})
	}
	return out
}
