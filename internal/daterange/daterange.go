// Package daterange computes the calendar window shown around a date for a
// view, and how the window moves with previous/next.
package daterange

import (
	"fmt"
	"strings"
	"time"

	"eventform/internal/datetime"
)

type View string

const (
	Day    View = "day"
	Week   View = "week"
	Month  View = "month"
	Year   View = "year"
	Agenda View = "agenda"
)

// AgendaDays is how far the agenda view looks ahead.
const AgendaDays = 30

func ParseView(raw string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(raw))); v {
	case Day, Week, Month, Year, Agenda:
		return v, nil
	default:
		return "", fmt.Errorf("unknown view: %s", raw)
	}
}

// Window is an inclusive span of calendar dates.
type Window struct {
	From datetime.Date
	To   datetime.Date
}

func (w Window) Days() int {
	return w.From.DaysUntil(w.To) + 1
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.From, w.To)
}

// Range returns the window for view around date. A positive rng is a custom
// selection: extra days for the week view, extra weeks for the month view.
func Range(date datetime.Date, rng int, view View, weekStart time.Weekday) Window {
	switch view {
	case Day:
		return Window{From: date, To: date}
	case Week:
		if rng > 0 {
			return Window{From: date, To: date.AddDays(rng)}
		}
		return Window{From: startOfWeek(date, weekStart), To: endOfWeek(date, weekStart)}
	case Month:
		if rng > 0 {
			return Window{From: startOfWeek(date, weekStart), To: endOfWeek(date.AddDays(7*rng), weekStart)}
		}
		first := datetime.NewDate(date.Year, date.Month, 1)
		last := datetime.NewDate(date.Year, date.Month, date.DaysInMonth())
		return Window{From: startOfWeek(first, weekStart), To: endOfWeek(last, weekStart)}
	case Year:
		first := datetime.NewDate(date.Year, time.January, 1)
		last := datetime.NewDate(date.Year, time.December, 31)
		return Window{From: startOfWeek(first, weekStart), To: endOfWeek(last, weekStart)}
	default:
		return Window{From: date, To: date.AddDays(AgendaDays)}
	}
}

// Step moves date one window forwards (dir 1) or backwards (dir -1).
func Step(date datetime.Date, rng int, view View, dir int) datetime.Date {
	if rng > 0 {
		switch view {
		case Week:
			return date.AddDays(dir * (rng + 1))
		case Month:
			return date.AddDays(7 * dir * (rng + 1))
		}
	}
	switch view {
	case Day:
		return date.AddDays(dir)
	case Week:
		return date.AddDays(7 * dir)
	case Month:
		return date.AddMonths(dir)
	case Year:
		return date.AddMonths(12 * dir)
	default:
		return date.AddDays(AgendaDays * dir)
	}
}

// Selection is the view a dragged mini-calendar selection switches to.
type Selection struct {
	Date  datetime.Date
	View  View
	Range int
}

// FromSelection maps a selected span of days to a view: a week view with
// extra days under seven days, a month view with extra weeks otherwise.
func FromSelection(start, end datetime.Date) Selection {
	if end.Before(start) {
		start, end = end, start
	}
	days := start.DaysUntil(end)
	if days >= 7 {
		return Selection{Date: start, View: Month, Range: days / 7}
	}
	return Selection{Date: start, View: Week, Range: days}
}

func startOfWeek(d datetime.Date, weekStart time.Weekday) datetime.Date {
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDays(-offset)
}

func endOfWeek(d datetime.Date, weekStart time.Weekday) datetime.Date {
	return startOfWeek(d, weekStart).AddDays(6)
}
