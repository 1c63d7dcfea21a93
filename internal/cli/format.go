package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"eventform/internal/event"
)

const (
	colorReset = "\033[0m"
	colorGray  = "\033[90m"
)

func gray(text string) string {
	if !useColor() {
		return text
	}
	return colorGray + text + colorReset
}

func useColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// durationLabel renders an event length the way the end picker shows it:
// "45m", "1h30m", "2d 3h".
func durationLabel(d time.Duration) string {
	if d < 0 {
		return "-" + durationLabel(-d)
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	switch {
	case hours > 0 && minutes > 0:
		parts = append(parts, fmt.Sprintf("%dh%02dm", hours, minutes))
	case hours > 0:
		parts = append(parts, fmt.Sprintf("%dh", hours))
	case minutes > 0 || days == 0:
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}

// whenText is the one-line summary of the event's span.
func whenText(m event.Model) string {
	start := m.Start
	if m.IsAllDay {
		if m.Start.Date == m.End.Date {
			return fmt.Sprintf("%s %s, all day", start.Date.Weekday().String()[:3], start.Date)
		}
		return fmt.Sprintf("%s → %s, all day (%dd)", start.Date, m.End.Date, m.Days())
	}
	end := m.End.Time.String()
	if m.End.Date != m.Start.Date {
		end = m.End.Date.String() + " " + end
	}
	if m.End.TZID != m.Start.TZID {
		end += " " + m.End.TZID
	}
	badge := ""
	if d, err := m.Duration(); err == nil {
		badge = " (" + durationLabel(d) + ")"
	}
	return fmt.Sprintf("%s %s %s → %s %s%s", start.Date.Weekday().String()[:3], start.Date, start.Time, end, start.TZID, badge)
}

func formatModel(m event.Model, weekStart time.Weekday) string {
	title := m.Title
	if title == "" {
		title = "(untitled)"
	}
	lines := []string{
		recurringTitle(title, m.Frequency),
		fmt.Sprintf("  When:      %s", whenText(m)),
	}
	if !m.IsAllDay {
		lines = append(lines,
			fmt.Sprintf("  Start:     %s", m.Start),
			fmt.Sprintf("  End:       %s", m.End),
		)
		if minDate, err := m.MinEndDate(); err == nil {
			minTime, _ := m.MinEndTime()
			mode := "multi-day"
			if m.IsDuration() {
				mode = "duration"
			}
			lines = append(lines, gray(fmt.Sprintf("  End from:  %s %s (%s)", minDate, minTime, mode)))
		}
	}
	if m.HasFrequencyRow {
		repeat := "does not repeat"
		if m.Frequency != nil {
			repeat = recurrenceText(m.Frequency, weekStart)
		}
		lines = append(lines, fmt.Sprintf("  Repeats:   %s", repeat))
		if m.Frequency != nil {
			lines = append(lines, gray("             "+m.Frequency.String(weekStart)))
		}
	}
	if m.CalendarID != "" {
		cal := m.CalendarName()
		if !m.HasCalendarRow {
			cal += " (locked)"
		}
		lines = append(lines, fmt.Sprintf("  Calendar:  %s", cal))
	}
	if m.Location != "" {
		lines = append(lines, fmt.Sprintf("  Location:  %s", m.Location))
	}
	lines = append(lines, fmt.Sprintf("  Reminders: %s", notificationsText(m.ActiveNotifications(), m.IsAllDay)))
	if m.Description != "" {
		lines = append(lines, "", indent(wrapText(m.Description, 72), "  "))
	}
	return strings.Join(lines, "\n")
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
