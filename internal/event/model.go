// Package event keeps an event's start, end, all-day flag and frequency
// consistent while the user edits them one field at a time.
//
// A Model is a value. Every edit goes through one Editor method that takes
// the current model and returns the next one; a rejected edit returns the
// input model and an error naming the reason.
package event

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"eventform/internal/datetime"
	"eventform/internal/recurrence"
)

type Calendar struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// PartDayTimes are the times of day an event had before it became all-day.
type PartDayTimes struct {
	Start datetime.Clock `json:"start" yaml:"start"`
	End   datetime.Clock `json:"end" yaml:"end"`
}

type Model struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Location    string     `json:"location,omitempty" yaml:"location,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	CalendarID  string     `json:"calendar_id,omitempty" yaml:"calendar_id,omitempty"`
	Calendars   []Calendar `json:"calendars,omitempty" yaml:"calendars,omitempty"`

	IsAllDay bool           `json:"is_all_day" yaml:"is_all_day"`
	Start    datetime.State `json:"start" yaml:"start"`
	End      datetime.State `json:"end" yaml:"end"`

	Frequency       *recurrence.Pattern `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	HasFrequencyRow bool                `json:"has_frequency_row" yaml:"has_frequency_row"`
	HasCalendarRow  bool                `json:"has_calendar_row" yaml:"has_calendar_row"`

	Notifications Notifications `json:"notifications" yaml:"notifications"`

	// Set while IsAllDay is true and the event had times before.
	PartDayTimes *PartDayTimes `json:"part_day_times,omitempty" yaml:"part_day_times,omitempty"`
}

// NewModel builds the model for a new event starting at start. Timed events
// last settings.DefaultDuration; all-day events cover the start date.
func NewModel(settings Settings, start datetime.State, allDay bool) (Model, error) {
	if start.TZID == "" {
		start.TZID = settings.Timezone
	}
	m := Model{
		ID:              uuid.NewString(),
		IsAllDay:        allDay,
		HasFrequencyRow: true,
		HasCalendarRow:  true,
		Notifications:   settings.DefaultNotifications(),
	}
	if allDay {
		m.Start = start.StartOfDay()
		m.End = m.Start
		if _, err := m.Start.Resolve(); err != nil {
			return Model{}, err
		}
		return m, nil
	}
	begin, err := start.Resolve()
	if err != nil {
		return Model{}, err
	}
	end, err := datetime.ToWallClock(begin.Add(settings.DefaultDuration), start.TZID)
	if err != nil {
		return Model{}, err
	}
	if m.Start, err = datetime.ToWallClock(begin, start.TZID); err != nil {
		return Model{}, err
	}
	m.End = end
	return m, nil
}

// FromInstants builds the model for an existing timed event. The start and
// end are rendered in their own zones.
func FromInstants(settings Settings, start time.Time, startTZ string, end time.Time, endTZ string) (Model, error) {
	if end.Before(start) {
		return Model{}, fmt.Errorf("%w: %s before %s", ErrEndBeforeStart, end, start)
	}
	s, err := datetime.ToWallClock(start, startTZ)
	if err != nil {
		return Model{}, err
	}
	e, err := datetime.ToWallClock(end, endTZ)
	if err != nil {
		return Model{}, err
	}
	return Model{
		ID:              uuid.NewString(),
		Start:           s,
		End:             e,
		HasFrequencyRow: true,
		HasCalendarRow:  true,
		Notifications:   settings.DefaultNotifications(),
	}, nil
}

// Equal reports whether two models hold the same values.
func (m Model) Equal(other Model) bool {
	if m.ID != other.ID || m.Title != other.Title || m.Location != other.Location ||
		m.Description != other.Description || m.CalendarID != other.CalendarID {
		return false
	}
	if m.IsAllDay != other.IsAllDay || m.Start != other.Start || m.End != other.End {
		return false
	}
	if m.HasFrequencyRow != other.HasFrequencyRow || m.HasCalendarRow != other.HasCalendarRow {
		return false
	}
	if !slices.Equal(m.Calendars, other.Calendars) || !m.Notifications.Equal(other.Notifications) {
		return false
	}
	if (m.PartDayTimes == nil) != (other.PartDayTimes == nil) {
		return false
	}
	if m.PartDayTimes != nil && *m.PartDayTimes != *other.PartDayTimes {
		return false
	}
	return patternsEqual(m.Frequency, other.Frequency)
}

func patternsEqual(a, b *recurrence.Pattern) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Freq == b.Freq && a.Interval == b.Interval && slices.Equal(a.Weekdays, b.Weekdays) &&
		a.MonthlyMode == b.MonthlyMode && a.MonthDay == b.MonthDay && a.Nth == b.Nth &&
		a.Weekday == b.Weekday && a.Month == b.Month && a.Ends == b.Ends
}

// CalendarName is the display name of the selected calendar.
func (m Model) CalendarName() string {
	for _, c := range m.Calendars {
		if c.ID == m.CalendarID {
			return c.Name
		}
	}
	return m.CalendarID
}
