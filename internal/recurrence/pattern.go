// Package recurrence models an event's frequency and keeps it anchored to the
// event's start date.
package recurrence

import (
	"fmt"
	"slices"
	"time"

	"eventform/internal/datetime"
)

type Freq string

const (
	Daily   Freq = "daily"
	Weekly  Freq = "weekly"
	Monthly Freq = "monthly"
	Yearly  Freq = "yearly"
)

type MonthlyMode string

const (
	OnMonthDay    MonthlyMode = "month_day"
	OnNthWeekday  MonthlyMode = "nth_weekday"
	OnLastWeekday MonthlyMode = "last_weekday"
)

type EndsType string

const (
	EndsNever   EndsType = "never"
	EndsAfter   EndsType = "after"
	EndsOnUntil EndsType = "until"
)

type Ends struct {
	Type  EndsType      `json:"type" yaml:"type"`
	Count int           `json:"count,omitempty" yaml:"count,omitempty"`
	Until datetime.Date `json:"until,omitzero" yaml:"until,omitempty"`
}

// Pattern is a recurrence rule. Only the anchor fields (Weekdays, MonthDay,
// Nth, Weekday, Month, MonthlyMode) follow the start date; Freq, Interval and
// Ends belong to the user.
type Pattern struct {
	Freq        Freq           `json:"freq" yaml:"freq"`
	Interval    int            `json:"interval" yaml:"interval"`
	Weekdays    []time.Weekday `json:"weekdays,omitempty" yaml:"weekdays,omitempty"`
	MonthlyMode MonthlyMode    `json:"monthly_mode,omitempty" yaml:"monthly_mode,omitempty"`
	MonthDay    int            `json:"month_day,omitempty" yaml:"month_day,omitempty"`
	Nth         int            `json:"nth,omitempty" yaml:"nth,omitempty"`
	Weekday     time.Weekday   `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	Month       time.Month     `json:"month,omitempty" yaml:"month,omitempty"`
	Ends        Ends           `json:"ends" yaml:"ends"`
}

// NewPattern returns a pattern of the given frequency anchored on start.
func NewPattern(freq Freq, start datetime.Date) *Pattern {
	p := &Pattern{
		Freq:     freq,
		Interval: 1,
		Ends:     Ends{Type: EndsNever},
	}
	if freq == Monthly {
		p.MonthlyMode = OnMonthDay
	}
	p.anchor(start)
	return p
}

func (p *Pattern) Clone() *Pattern {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Weekdays = slices.Clone(p.Weekdays)
	return &clone
}

func (p *Pattern) Validate() error {
	if p == nil {
		return nil
	}
	switch p.Freq {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return fmt.Errorf("unsupported frequency: %q", p.Freq)
	}
	if p.Interval < 1 {
		return fmt.Errorf("interval must be positive, got %d", p.Interval)
	}
	switch p.Ends.Type {
	case EndsNever, "":
	case EndsAfter:
		if p.Ends.Count < 1 {
			return fmt.Errorf("count must be positive, got %d", p.Ends.Count)
		}
	case EndsOnUntil:
		if !p.Ends.Until.IsValid() {
			return fmt.Errorf("invalid until date: %s", p.Ends.Until)
		}
	default:
		return fmt.Errorf("unsupported ends type: %q", p.Ends.Type)
	}
	return nil
}

// MatchesStart reports whether the anchor fields agree with date.
func (p *Pattern) MatchesStart(date datetime.Date) bool {
	if p == nil {
		return true
	}
	switch p.Freq {
	case Weekly:
		return slices.Contains(p.Weekdays, date.Weekday())
	case Monthly:
		switch p.MonthlyMode {
		case OnNthWeekday:
			return p.Nth == nthOfMonth(date) && p.Weekday == date.Weekday()
		case OnLastWeekday:
			return isLastWeekOfMonth(date) && p.Weekday == date.Weekday()
		default:
			return p.MonthDay == date.Day
		}
	case Yearly:
		return p.Month == date.Month && p.MonthDay == date.Day
	default:
		return true
	}
}

// AdjustAnchor returns the pattern to use once the start moves from oldStart
// to newStart. The input is never modified; a nil pattern stays nil.
func AdjustAnchor(p *Pattern, oldStart, newStart datetime.Date) *Pattern {
	if p == nil || oldStart == newStart || p.MatchesStart(newStart) {
		return p
	}
	next := p.Clone()
	switch next.Freq {
	case Weekly:
		days := slices.DeleteFunc(next.Weekdays, func(d time.Weekday) bool { return d == oldStart.Weekday() })
		next.Weekdays = sortWeekdays(append(days, newStart.Weekday()))
	case Monthly:
		switch next.MonthlyMode {
		case OnNthWeekday:
			next.Nth = nthOfMonth(newStart)
			next.Weekday = newStart.Weekday()
		case OnLastWeekday:
			next.Weekday = newStart.Weekday()
			if !isLastWeekOfMonth(newStart) {
				next.MonthlyMode = OnNthWeekday
				next.Nth = nthOfMonth(newStart)
			}
		default:
			next.MonthDay = newStart.Day
		}
	case Yearly:
		next.Month = newStart.Month
		next.MonthDay = newStart.Day
	}
	return next
}

// Anchored returns a copy whose anchor fields are set from start, keeping
// the weekly day set when it already contains start's weekday.
func (p *Pattern) Anchored(start datetime.Date) *Pattern {
	if p == nil {
		return nil
	}
	if p.MatchesStart(start) {
		return p
	}
	next := p.Clone()
	next.anchor(start)
	return next
}

func (p *Pattern) anchor(start datetime.Date) {
	switch p.Freq {
	case Weekly:
		p.Weekdays = sortWeekdays(append(p.Weekdays, start.Weekday()))
	case Monthly:
		switch p.MonthlyMode {
		case OnNthWeekday:
			p.Nth = nthOfMonth(start)
			p.Weekday = start.Weekday()
		case OnLastWeekday:
			p.Weekday = start.Weekday()
			if !isLastWeekOfMonth(start) {
				p.MonthlyMode = OnNthWeekday
				p.Nth = nthOfMonth(start)
			}
		default:
			p.MonthlyMode = OnMonthDay
			p.MonthDay = start.Day
		}
	case Yearly:
		p.Month = start.Month
		p.MonthDay = start.Day
	}
}

// nthOfMonth is 1 for the first seven days of a month, 2 for the next seven...
func nthOfMonth(d datetime.Date) int {
	return (d.Day-1)/7 + 1
}

func isLastWeekOfMonth(d datetime.Date) bool {
	return d.Day+7 > d.DaysInMonth()
}

func sortWeekdays(days []time.Weekday) []time.Weekday {
	slices.Sort(days)
	return slices.Compact(days)
}
