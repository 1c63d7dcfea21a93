package event

import (
	"time"

	"eventform/internal/datetime"
)

// DurationThreshold separates same-day "duration" events from multi-day
// ones. An event lasting exactly this long is multi-day.
const DurationThreshold = 24 * time.Hour

// Resolve returns the absolute start and end instants.
func (m Model) Resolve() (start, end time.Time, err error) {
	start, err = m.Start.Resolve()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = m.End.Resolve()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Duration is the absolute time between the start and end instants.
func (m Model) Duration() (time.Duration, error) {
	start, end, err := m.Resolve()
	if err != nil {
		return 0, err
	}
	return end.Sub(start), nil
}

// Days is the number of calendar days an all-day event covers.
func (m Model) Days() int {
	return m.Start.Date.DaysUntil(m.End.Date) + 1
}

// IsDuration reports whether the end is edited as an elapsed time from the
// start rather than as a clock time on its own day.
func (m Model) IsDuration() bool {
	if m.IsAllDay {
		return false
	}
	d, err := m.Duration()
	if err != nil {
		return false
	}
	return d < DurationThreshold
}

// MinEndTime is the earliest end time the picker offers: the start rendered
// in the end's zone for duration events, midnight otherwise.
func (m Model) MinEndTime() (datetime.Clock, error) {
	if !m.IsDuration() {
		return datetime.Midnight, nil
	}
	start, err := m.Start.Resolve()
	if err != nil {
		return datetime.Clock{}, err
	}
	inEnd, err := datetime.ToWallClock(start, m.End.TZID)
	if err != nil {
		return datetime.Clock{}, err
	}
	return inEnd.Time, nil
}

// MinEndDate is the earliest end date the picker offers. It is the start
// date in the end's zone, or the day after when the current end time on
// that date would fall before the start.
func (m Model) MinEndDate() (datetime.Date, error) {
	if m.IsAllDay {
		return m.Start.Date, nil
	}
	start, err := m.Start.Resolve()
	if err != nil {
		return datetime.Date{}, err
	}
	inEnd, err := datetime.ToWallClock(start, m.End.TZID)
	if err != nil {
		return datetime.Date{}, err
	}
	candidate, err := m.End.WithDate(inEnd.Date).Resolve()
	if err != nil {
		return datetime.Date{}, err
	}
	if start.After(candidate) {
		return inEnd.Date.AddDays(1), nil
	}
	return inEnd.Date, nil
}

func (m Model) ActiveNotifications() []Notification {
	return m.Notifications.Active(m.IsAllDay)
}

// Valid reports whether the end does not precede the start. All-day events
// compare calendar dates since their zones carry no meaning.
func (m Model) Valid() bool {
	if m.IsAllDay {
		return !m.End.Date.Before(m.Start.Date)
	}
	start, end, err := m.Resolve()
	if err != nil {
		return false
	}
	return !end.Before(start)
}
