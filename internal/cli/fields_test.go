package cli

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"eventform/internal/config"
	"eventform/internal/datetime"
	"eventform/internal/event"
	"eventform/internal/recurrence"
	"eventform/internal/timeparse"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Timezone = "Europe/Paris"
	cfg.Calendars = append(cfg.Calendars, config.Calendar{ID: "work", Name: "Work"})
	settings, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	loc, err := datetime.LoadLocation(settings.Timezone)
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	return &App{
		Config:     cfg,
		ConfigPath: filepath.Join(dir, "config.json"),
		DraftPath:  filepath.Join(dir, "draft.json"),
		Settings:   settings,
		Editor:     event.NewEditor(settings, logger),
		Location:   loc,
		Log:        logger,
	}
}

func newTestModel(t *testing.T, app *App, in newModelInput) event.Model {
	t.Helper()
	m, err := buildNewModel(app, in)
	if err != nil {
		t.Fatalf("buildNewModel error: %v", err)
	}
	return m
}

func TestParseField(t *testing.T) {
	tests := []struct {
		raw  string
		want field
	}{
		{"title", fieldTitle},
		{"Start_Date", fieldStartDate},
		{"end-time", fieldEndTime},
		{"tz", fieldStartTZ},
		{"repeat", fieldEvery},
		{"allday", fieldAllDay},
	}
	for _, tc := range tests {
		got, err := parseField(tc.raw)
		if err != nil {
			t.Fatalf("parseField(%q) error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parseField(%q): expected %s, got %s", tc.raw, tc.want, got)
		}
	}
	if _, err := parseField("colour"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestBuildNewModelDefaults(t *testing.T) {
	app := newTestApp(t)
	m := newTestModel(t, app, newModelInput{Title: "  Standup ", Date: "2023-06-05"})

	if m.Title != "Standup" {
		t.Fatalf("expected trimmed title, got %q", m.Title)
	}
	wantStart := datetime.NewState(datetime.NewDate(2023, time.June, 5), datetime.NewClock(9, 0), "Europe/Paris")
	if m.Start != wantStart {
		t.Fatalf("expected start %s, got %s", wantStart, m.Start)
	}
	if want := wantStart.WithTime(datetime.NewClock(9, 30)); m.End != want {
		t.Fatalf("expected end %s, got %s", want, m.End)
	}
	if m.CalendarID != "primary" || len(m.Calendars) != 2 {
		t.Fatalf("unexpected calendars: %s %+v", m.CalendarID, m.Calendars)
	}
}

func TestBuildNewModelWithFrequencyAndCalendar(t *testing.T) {
	app := newTestApp(t)
	m := newTestModel(t, app, newModelInput{Date: "2023-06-05", Time: "14:00", Every: "weekly", Calendar: "work"})

	if m.Frequency == nil || m.Frequency.Freq != recurrence.Weekly {
		t.Fatalf("expected weekly frequency, got %+v", m.Frequency)
	}
	if !slices.Contains(m.Frequency.Weekdays, time.Monday) {
		t.Fatalf("expected Monday in %v", m.Frequency.Weekdays)
	}
	if m.CalendarID != "work" {
		t.Fatalf("expected calendar work, got %s", m.CalendarID)
	}
	if m.Start.Time != datetime.NewClock(14, 0) {
		t.Fatalf("expected 14:00 start, got %s", m.Start.Time)
	}
}

func TestBuildNewModelRejectsUnknownCalendar(t *testing.T) {
	app := newTestApp(t)
	if _, err := buildNewModel(app, newModelInput{Date: "2023-06-05", Calendar: "nope"}); !errors.Is(err, event.ErrUnknownCalendar) {
		t.Fatalf("expected ErrUnknownCalendar, got %v", err)
	}
}

func TestBuildNewModelFromInstants(t *testing.T) {
	app := newTestApp(t)
	m := newTestModel(t, app, newModelInput{
		Title: "Call",
		From:  "2023-06-05T07:00:00Z",
		To:    "2023-06-05T08:30:00Z",
		EndTZ: "America/New_York",
	})
	if want := datetime.NewState(datetime.NewDate(2023, time.June, 5), datetime.NewClock(9, 0), "Europe/Paris"); m.Start != want {
		t.Fatalf("expected start %s, got %s", want, m.Start)
	}
	if want := datetime.NewState(datetime.NewDate(2023, time.June, 5), datetime.NewClock(4, 30), "America/New_York"); m.End != want {
		t.Fatalf("expected end %s, got %s", want, m.End)
	}
	if d, err := m.Duration(); err != nil || d != 90*time.Minute {
		t.Fatalf("expected 1h30m, got %s (%v)", d, err)
	}
	if m.Title != "Call" || m.CalendarID != "primary" {
		t.Fatalf("unexpected model: %+v", m)
	}

	allDay := newTestModel(t, app, newModelInput{From: "2023-06-05T07:00:00Z", To: "2023-06-06T08:30:00Z", AllDay: true})
	if !allDay.IsAllDay || allDay.End.Date != datetime.NewDate(2023, time.June, 6) {
		t.Fatalf("expected all-day event through 2023-06-06, got %s - %s", allDay.Start, allDay.End)
	}
}

func TestBuildNewModelFromInstantsRejectsBadInput(t *testing.T) {
	app := newTestApp(t)
	_, err := buildNewModel(app, newModelInput{From: "2023-06-05T09:00:00Z", To: "2023-06-05T08:00:00Z"})
	if !errors.Is(err, event.ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	if _, err := buildNewModel(app, newModelInput{From: "2023-06-05T09:00:00Z"}); err == nil {
		t.Fatalf("expected error when --to is missing")
	}
	if _, err := buildNewModel(app, newModelInput{From: "monday", To: "2023-06-05T10:00:00Z"}); !errors.Is(err, timeparse.ErrInvalidDateInput) {
		t.Fatalf("expected ErrInvalidDateInput, got %v", err)
	}
}

func TestModelFromDateReadsTodayInEventZone(t *testing.T) {
	app := newTestApp(t)
	// 20:00 UTC is still June 5 in Paris but already June 6 on Kiritimati (UTC+14).
	now := time.Date(2023, time.June, 5, 20, 0, 0, 0, time.UTC)
	m, err := modelFromDate(app.Settings, newModelInput{Date: "today"}, "Pacific/Kiritimati", now)
	if err != nil {
		t.Fatalf("modelFromDate error: %v", err)
	}
	if want := datetime.NewDate(2023, time.June, 6); m.Start.Date != want {
		t.Fatalf("expected %s, got %s", want, m.Start.Date)
	}
	paris, err := modelFromDate(app.Settings, newModelInput{}, app.Settings.Timezone, now)
	if err != nil {
		t.Fatalf("modelFromDate error: %v", err)
	}
	if want := datetime.NewDate(2023, time.June, 5); paris.Start.Date != want {
		t.Fatalf("expected %s, got %s", want, paris.Start.Date)
	}
}

func TestApplyFieldRelativeEndTime(t *testing.T) {
	app := newTestApp(t)
	m := newTestModel(t, app, newModelInput{Date: "2023-06-05"})

	got, err := applyField(app, m, fieldEndTime, "+1h30m")
	if err != nil {
		t.Fatalf("applyField error: %v", err)
	}
	if got.End.Time != datetime.NewClock(10, 30) || got.End.Date != m.Start.Date {
		t.Fatalf("expected end 2023-06-05 10:30, got %s", got.End)
	}
}

func TestApplyFieldRejectionKeepsModel(t *testing.T) {
	app := newTestApp(t)
	m := newTestModel(t, app, newModelInput{Date: "2023-06-05"})

	got, err := applyField(app, m, fieldEndDate, "2023-06-04")
	if !errors.Is(err, event.ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	if !got.Equal(m) {
		t.Fatalf("expected unchanged model")
	}

	if _, err := applyField(app, m, fieldStartTZ, "Mars/Olympus"); !errors.Is(err, datetime.ErrInvalidTimezone) {
		t.Fatalf("expected ErrInvalidTimezone, got %v", err)
	}
}

func TestApplyFieldHidesTimesWhileAllDay(t *testing.T) {
	app := newTestApp(t)
	m := newTestModel(t, app, newModelInput{Date: "2023-06-05"})

	allDay, err := applyField(app, m, fieldAllDay, "yes")
	if err != nil {
		t.Fatalf("applyField error: %v", err)
	}
	if !allDay.IsAllDay {
		t.Fatalf("expected all-day event")
	}
	if !fieldHidden(fieldStartTime, allDay) || fieldHidden(fieldStartDate, allDay) {
		t.Fatalf("unexpected hidden rows for all-day event")
	}
	if _, err := applyField(app, allDay, fieldStartTime, "10:00"); err == nil {
		t.Fatalf("expected start-time edit to be refused")
	}

	back, err := applyField(app, allDay, fieldAllDay, "no")
	if err != nil {
		t.Fatalf("applyField error: %v", err)
	}
	if back.Start != m.Start || back.End != m.End {
		t.Fatalf("expected times restored, got %s - %s", back.Start, back.End)
	}
}

func TestFieldValueFeedsBackIntoFieldIntent(t *testing.T) {
	app := newTestApp(t)
	m := newTestModel(t, app, newModelInput{Date: "2023-06-30", Every: "monthly last"})

	for _, f := range []field{fieldStartDate, fieldStartTime, fieldStartTZ, fieldEndDate, fieldEndTime, fieldEndTZ} {
		raw := fieldValue(f, m, app.Settings.WeekStart)
		got, err := applyField(app, m, f, raw)
		if err != nil {
			t.Fatalf("%s: applyField(%q) error: %v", f, raw, err)
		}
		if !got.Equal(m) {
			t.Fatalf("%s: expected %q to leave the model unchanged", f, raw)
		}
	}
}

func TestParseNotifications(t *testing.T) {
	list, err := parseNotifications("15m, 1h", false)
	if err != nil {
		t.Fatalf("parseNotifications error: %v", err)
	}
	if len(list) != 2 || list[1].Before != time.Hour {
		t.Fatalf("unexpected list: %+v", list)
	}
	if text := notificationsText(list, false); text != "15m, 1h" {
		t.Fatalf("expected '15m, 1h', got %q", text)
	}

	none, err := parseNotifications("none", true)
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("expected empty list, got %+v (%v)", none, err)
	}
	if _, err := parseNotifications("soon", false); err == nil {
		t.Fatalf("expected error")
	}
}
