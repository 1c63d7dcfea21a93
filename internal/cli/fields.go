package cli

import (
	"fmt"
	"strings"
	"time"

	"eventform/internal/event"
	"eventform/internal/recurrence"
	"eventform/internal/timeparse"
)

type field string

const (
	fieldTitle         field = "title"
	fieldAllDay        field = "all-day"
	fieldStartDate     field = "start-date"
	fieldStartTime     field = "start-time"
	fieldStartTZ       field = "start-tz"
	fieldEndDate       field = "end-date"
	fieldEndTime       field = "end-time"
	fieldEndTZ         field = "end-tz"
	fieldEvery         field = "every"
	fieldCalendar      field = "calendar"
	fieldLocation      field = "location"
	fieldDescription   field = "description"
	fieldNotifications field = "notifications"
)

var fieldAliases = map[string]field{
	"date":      fieldStartDate,
	"start":     fieldStartTime,
	"time":      fieldStartTime,
	"end":       fieldEndTime,
	"tz":        fieldStartTZ,
	"timezone":  fieldStartTZ,
	"allday":    fieldAllDay,
	"repeat":    fieldEvery,
	"frequency": fieldEvery,
	"reminders": fieldNotifications,
	"notes":     fieldDescription,
}

var allFields = []field{
	fieldTitle, fieldAllDay,
	fieldStartDate, fieldStartTime, fieldStartTZ,
	fieldEndDate, fieldEndTime, fieldEndTZ,
	fieldEvery, fieldCalendar, fieldLocation, fieldDescription, fieldNotifications,
}

func parseField(raw string) (field, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", "-")
	for _, f := range allFields {
		if string(f) == key {
			return f, nil
		}
	}
	if f, ok := fieldAliases[key]; ok {
		return f, nil
	}
	names := make([]string, 0, len(allFields))
	for _, f := range allFields {
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unknown field %q (one of: %s)", raw, strings.Join(names, ", "))
}

// fieldIntent turns raw text typed for f into the edit intent it raises.
// Input errors surface here; the editor only sees well-formed values.
func fieldIntent(f field, raw string, m event.Model, s event.Settings, now time.Time) (event.Intent, error) {
	bounds := timeparse.Bounds{Min: s.MinDate, Max: s.MaxDate}
	switch f {
	case fieldStartDate:
		d, err := timeparse.ParseDate(raw, now, bounds)
		if err != nil {
			return nil, err
		}
		return event.SetStartDate{Date: d}, nil
	case fieldStartTime:
		c, err := timeparse.ParseClock(raw)
		if err != nil {
			return nil, err
		}
		return event.SetStartTime{Time: c}, nil
	case fieldStartTZ:
		tz, err := timeparse.ParseTimezone(raw)
		if err != nil {
			return nil, err
		}
		return event.SetStartTimezone{TZID: tz}, nil
	case fieldEndDate:
		d, err := timeparse.ParseDate(raw, now, bounds)
		if err != nil {
			return nil, err
		}
		return event.SetEndDate{Date: d}, nil
	case fieldEndTime:
		minEnd, err := m.MinEndTime()
		if err != nil {
			return nil, err
		}
		c, err := timeparse.ParseEndClock(raw, minEnd)
		if err != nil {
			return nil, err
		}
		return event.SetEndTime{Time: c}, nil
	case fieldEndTZ:
		tz, err := timeparse.ParseTimezone(raw)
		if err != nil {
			return nil, err
		}
		return event.SetEndTimezone{TZID: tz}, nil
	case fieldAllDay:
		on, err := parseSwitch(raw)
		if err != nil {
			return nil, err
		}
		return event.SetAllDay{AllDay: on}, nil
	case fieldEvery:
		p, err := recurrence.ParseEvery(raw, m.Start.Date)
		if err != nil {
			return nil, err
		}
		return event.SetFrequency{Pattern: p}, nil
	case fieldTitle:
		return event.SetTitle{Title: raw}, nil
	case fieldLocation:
		return event.SetLocation{Location: raw}, nil
	case fieldDescription:
		return event.SetDescription{Description: raw}, nil
	case fieldCalendar:
		return event.SetCalendar{ID: strings.TrimSpace(raw)}, nil
	case fieldNotifications:
		list, err := parseNotifications(raw, m.IsAllDay)
		if err != nil {
			return nil, err
		}
		return event.SetNotifications{FullDay: m.IsAllDay, List: list}, nil
	default:
		return nil, fmt.Errorf("unknown field %q", f)
	}
}

// fieldValue renders the current value of f the way fieldIntent reads it.
func fieldValue(f field, m event.Model, weekStart time.Weekday) string {
	switch f {
	case fieldTitle:
		return m.Title
	case fieldAllDay:
		if m.IsAllDay {
			return "yes"
		}
		return "no"
	case fieldStartDate:
		return m.Start.Date.String()
	case fieldStartTime:
		return m.Start.Time.String()
	case fieldStartTZ:
		return m.Start.TZID
	case fieldEndDate:
		return m.End.Date.String()
	case fieldEndTime:
		return m.End.Time.String()
	case fieldEndTZ:
		return m.End.TZID
	case fieldEvery:
		if m.Frequency == nil {
			return "none"
		}
		return m.Frequency.String(weekStart)
	case fieldCalendar:
		return m.CalendarID
	case fieldLocation:
		return m.Location
	case fieldDescription:
		return m.Description
	case fieldNotifications:
		return notificationsText(m.ActiveNotifications(), m.IsAllDay)
	default:
		return ""
	}
}

// fieldHidden reports whether the editor hides f for m, as the form hides
// time and zone rows for all-day events.
func fieldHidden(f field, m event.Model) bool {
	switch f {
	case fieldStartTime, fieldEndTime, fieldStartTZ, fieldEndTZ:
		return m.IsAllDay
	case fieldEvery:
		return !m.HasFrequencyRow
	}
	return false
}

func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "on", "1":
		return true, nil
	case "no", "n", "false", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes or no, got %q", raw)
	}
}

func parseNotifications(raw string, fullDay bool) ([]event.Notification, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "none") {
		return []event.Notification{}, nil
	}
	var list []event.Notification
	for _, item := range strings.Split(raw, ",") {
		n, err := event.ParseNotification(item, fullDay)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, nil
}

func notificationsText(list []event.Notification, fullDay bool) string {
	if len(list) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(list))
	for _, n := range list {
		labels = append(labels, n.Label(fullDay))
	}
	return strings.Join(labels, ", ")
}
