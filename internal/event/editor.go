package event

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"eventform/internal/datetime"
	"eventform/internal/recurrence"
)

var (
	ErrEndBeforeStart   = errors.New("end before start")
	ErrInvalidDateInput = errors.New("invalid date input")
	ErrAllDayTime       = errors.New("all-day events have no time of day or timezone")
	ErrCalendarLocked   = errors.New("calendar cannot be changed for recurring events")
	ErrUnknownCalendar  = errors.New("unknown calendar")
)

// Editor applies edits to models. It holds no model state of its own.
type Editor struct {
	settings Settings
	log      *slog.Logger
}

func NewEditor(settings Settings, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.Default()
	}
	return &Editor{settings: settings, log: log}
}

func (e *Editor) Settings() Settings {
	return e.settings
}

// reject returns the unchanged model. Rejections are expected while the user
// types, so only timezone failures are logged above debug.
func (e *Editor) reject(m Model, op string, err error) (Model, error) {
	if errors.Is(err, datetime.ErrInvalidTimezone) {
		e.log.Warn("edit rejected", "op", op, "err", err)
	} else {
		e.log.Debug("edit rejected", "op", op, "err", err)
	}
	return m, err
}

func (e *Editor) ChangeStartDate(m Model, date datetime.Date) (Model, error) {
	if !date.IsValid() {
		return e.reject(m, "start_date", fmt.Errorf("%w: %s", ErrInvalidDateInput, date))
	}
	next, err := e.moveStart(m, m.Start.WithDate(date))
	if err != nil {
		return e.reject(m, "start_date", err)
	}
	return next, nil
}

func (e *Editor) ChangeStartTime(m Model, clock datetime.Clock) (Model, error) {
	if m.IsAllDay {
		return e.reject(m, "start_time", ErrAllDayTime)
	}
	if !clock.IsValid() {
		return e.reject(m, "start_time", fmt.Errorf("%w: %s", ErrInvalidDateInput, clock))
	}
	next, err := e.moveStart(m, m.Start.WithTime(clock))
	if err != nil {
		return e.reject(m, "start_time", err)
	}
	return next, nil
}

// ChangeStartTimezone keeps the start's wall-clock date and time and reads
// them in tzid, which moves the start instant like any other start edit.
func (e *Editor) ChangeStartTimezone(m Model, tzid string) (Model, error) {
	if m.IsAllDay {
		return e.reject(m, "start_timezone", ErrAllDayTime)
	}
	if _, err := datetime.LoadLocation(tzid); err != nil {
		return e.reject(m, "start_timezone", err)
	}
	next, err := e.moveStart(m, m.Start.WithTZID(tzid))
	if err != nil {
		return e.reject(m, "start_timezone", err)
	}
	return next, nil
}

// moveStart sets the start and moves the end so the event keeps its length:
// absolute duration for timed events, whole calendar days for all-day ones.
// The end keeps its own zone.
func (e *Editor) moveStart(m Model, start datetime.State) (Model, error) {
	next := m
	if m.IsAllDay {
		next.Start = start.StartOfDay()
		next.End = m.End.WithDate(m.End.Date.AddDays(m.Start.Date.DaysUntil(start.Date)))
	} else {
		oldStart, oldEnd, err := m.Resolve()
		if err != nil {
			return m, err
		}
		begin, err := start.Resolve()
		if err != nil {
			return m, err
		}
		if next.Start, err = datetime.ToWallClock(begin, start.TZID); err != nil {
			return m, err
		}
		if next.End, err = datetime.ToWallClock(begin.Add(oldEnd.Sub(oldStart)), m.End.TZID); err != nil {
			return m, err
		}
	}
	next.Frequency = recurrence.AdjustAnchor(m.Frequency, m.Start.Date, next.Start.Date)
	return next, nil
}

func (e *Editor) ChangeEndDate(m Model, date datetime.Date) (Model, error) {
	if !date.IsValid() {
		return e.reject(m, "end_date", fmt.Errorf("%w: %s", ErrInvalidDateInput, date))
	}
	if m.IsAllDay {
		if date.Before(m.Start.Date) {
			return e.reject(m, "end_date", fmt.Errorf("%w: %s before %s", ErrEndBeforeStart, date, m.Start.Date))
		}
		next := m
		next.End = m.End.WithDate(date)
		return next, nil
	}
	return e.acceptEnd(m, "end_date", m.End.WithDate(date))
}

// ChangeEndTime sets the end time of day. Duration events read clock as the
// next occurrence of that time at or after the start, so an earlier clock
// rolls over to the following day. Multi-day events keep the end date.
func (e *Editor) ChangeEndTime(m Model, clock datetime.Clock) (Model, error) {
	if m.IsAllDay {
		return e.reject(m, "end_time", ErrAllDayTime)
	}
	if !clock.IsValid() {
		return e.reject(m, "end_time", fmt.Errorf("%w: %s", ErrInvalidDateInput, clock))
	}
	candidate := m.End.WithTime(clock)
	if m.IsDuration() {
		start, err := m.Start.Resolve()
		if err != nil {
			return e.reject(m, "end_time", err)
		}
		minEnd, err := datetime.ToWallClock(start, m.End.TZID)
		if err != nil {
			return e.reject(m, "end_time", err)
		}
		candidate = minEnd.WithTime(clock)
		if clock.Offset() < minEnd.Time.Offset() {
			candidate = candidate.WithDate(minEnd.Date.AddDays(1))
		} else {
			// Past a start in the repeated hour, the same clock reads on the second pass.
			candidate.Fold = minEnd.Fold
		}
	}
	return e.acceptEnd(m, "end_time", candidate)
}

// ChangeEndTimezone reads the end's wall-clock date and time in tzid.
func (e *Editor) ChangeEndTimezone(m Model, tzid string) (Model, error) {
	if m.IsAllDay {
		return e.reject(m, "end_timezone", ErrAllDayTime)
	}
	if _, err := datetime.LoadLocation(tzid); err != nil {
		return e.reject(m, "end_timezone", err)
	}
	return e.acceptEnd(m, "end_timezone", m.End.WithTZID(tzid))
}

// acceptEnd is the single gate every timed end edit passes through.
func (e *Editor) acceptEnd(m Model, op string, candidate datetime.State) (Model, error) {
	start, err := m.Start.Resolve()
	if err != nil {
		return e.reject(m, op, err)
	}
	end, err := candidate.Resolve()
	if err != nil {
		return e.reject(m, op, err)
	}
	if end.Before(start) {
		return e.reject(m, op, fmt.Errorf("%w: %s before %s", ErrEndBeforeStart, candidate, m.Start))
	}
	next := m
	if next.End, err = datetime.ToWallClock(end, candidate.TZID); err != nil {
		return e.reject(m, op, err)
	}
	return next, nil
}

// ToggleAllDay switches between timed and all-day. Turning all-day on keeps
// both dates and remembers the times; turning it off restores them, or falls
// back to the default start time and duration.
func (e *Editor) ToggleAllDay(m Model, allDay bool) (Model, error) {
	if m.IsAllDay == allDay {
		return m, nil
	}
	next := m
	next.IsAllDay = allDay
	if allDay {
		next.PartDayTimes = &PartDayTimes{Start: m.Start.Time, End: m.End.Time}
		next.Start = m.Start.StartOfDay()
		next.End = m.End.StartOfDay()
		if next.End.Date.Before(next.Start.Date) {
			next.End = next.End.WithDate(next.Start.Date)
		}
		return next, nil
	}
	next.PartDayTimes = nil
	if t := m.PartDayTimes; t != nil {
		next.Start = m.Start.WithTime(t.Start)
		next.End = m.End.WithTime(t.End)
		if next.Valid() {
			return next, nil
		}
	}
	restored, err := e.defaultTimes(m)
	if err != nil {
		return e.reject(m, "all_day", err)
	}
	next.Start, next.End = restored.Start, restored.End
	return next, nil
}

// defaultTimes places a timed event at the default start time for the
// default duration, keeping the number of days the all-day event spanned.
func (e *Editor) defaultTimes(m Model) (Model, error) {
	begin, err := m.Start.WithTime(e.settings.DefaultStartTime).Resolve()
	if err != nil {
		return m, err
	}
	next := m
	if next.Start, err = datetime.ToWallClock(begin, m.Start.TZID); err != nil {
		return m, err
	}
	end, err := datetime.ToWallClock(begin.Add(e.settings.DefaultDuration), m.End.TZID)
	if err != nil {
		return m, err
	}
	if extra := m.Start.Date.DaysUntil(m.End.Date); extra > 0 {
		end = end.WithDate(end.Date.AddDays(extra))
	}
	next.End = end
	return next, nil
}

// ChangeFrequency replaces the pattern. The new pattern is anchored on the
// current start date.
func (e *Editor) ChangeFrequency(m Model, p *recurrence.Pattern) (Model, error) {
	if err := p.Validate(); err != nil {
		return e.reject(m, "frequency", err)
	}
	next := m
	next.Frequency = p.Clone().Anchored(m.Start.Date)
	return next, nil
}

// ChangeNotifications replaces one of the two reminder lists.
func (e *Editor) ChangeNotifications(m Model, fullDay bool, list []Notification) (Model, error) {
	next := m
	next.Notifications = m.Notifications.withList(fullDay, list)
	return next, nil
}

func (e *Editor) ChangeTitle(m Model, title string) (Model, error) {
	next := m
	next.Title = strings.TrimSpace(title)
	return next, nil
}

func (e *Editor) ChangeLocation(m Model, location string) (Model, error) {
	next := m
	next.Location = strings.TrimSpace(location)
	return next, nil
}

func (e *Editor) ChangeDescription(m Model, description string) (Model, error) {
	next := m
	next.Description = description
	return next, nil
}

// ChangeCalendar selects a calendar. The row is locked for recurring events
// that already exist.
func (e *Editor) ChangeCalendar(m Model, id string) (Model, error) {
	if !m.HasCalendarRow {
		return e.reject(m, "calendar", ErrCalendarLocked)
	}
	if len(m.Calendars) > 0 && !slices.ContainsFunc(m.Calendars, func(c Calendar) bool { return c.ID == id }) {
		return e.reject(m, "calendar", fmt.Errorf("%w: %s", ErrUnknownCalendar, id))
	}
	next := m
	next.CalendarID = id
	return next, nil
}
