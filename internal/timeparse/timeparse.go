// Package timeparse turns raw user input into dates, clocks and zones. It is
// the only place where bounds are enforced; the editor trusts its output.
package timeparse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"

	"eventform/internal/datetime"
)

var ErrInvalidDateInput = errors.New("invalid date input")

// Bounds are the selectable calendar dates. A zero side is open.
type Bounds struct {
	Min datetime.Date
	Max datetime.Date
}

func (b Bounds) Contains(d datetime.Date) bool {
	if !b.Min.IsZero() && d.Before(b.Min) {
		return false
	}
	if !b.Max.IsZero() && d.After(b.Max) {
		return false
	}
	return true
}

// ParseDate accepts "2006-01-02" or natural language ("tomorrow",
// "next friday") read relative to now.
func ParseDate(raw string, now time.Time, bounds Bounds) (datetime.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return datetime.Date{}, fmt.Errorf("%w: date is required", ErrInvalidDateInput)
	}
	d, err := datetime.ParseDate(raw)
	if err != nil {
		parsed, perr := naturaldate.Parse(raw, now, naturaldate.WithDirection(naturaldate.Future))
		if perr != nil || parsed.Equal(now) && !isToday(raw) {
			return datetime.Date{}, fmt.Errorf("%w: %s", ErrInvalidDateInput, raw)
		}
		d = datetime.DateOf(parsed)
	}
	if !bounds.Contains(d) {
		return datetime.Date{}, fmt.Errorf("%w: %s outside %s..%s", ErrInvalidDateInput, d, bounds.Min, bounds.Max)
	}
	return d, nil
}

func isToday(raw string) bool {
	switch strings.ToLower(raw) {
	case "today", "now":
		return true
	}
	return false
}

// ParseClock accepts "15:04", "9:30" and "9".
func ParseClock(raw string) (datetime.Clock, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) > 2 || parts[0] == "" {
		return datetime.Clock{}, fmt.Errorf("%w: clock %q", ErrInvalidDateInput, raw)
	}
	hour, err := parseInt(parts[0])
	if err != nil {
		return datetime.Clock{}, fmt.Errorf("%w: clock %q", ErrInvalidDateInput, raw)
	}
	minute := 0
	if len(parts) == 2 {
		if minute, err = parseInt(parts[1]); err != nil {
			return datetime.Clock{}, fmt.Errorf("%w: clock %q", ErrInvalidDateInput, raw)
		}
	}
	c := datetime.NewClock(hour, minute)
	if !c.IsValid() {
		return datetime.Clock{}, fmt.Errorf("%w: clock %q", ErrInvalidDateInput, raw)
	}
	return c, nil
}

// ParseEndClock reads an end time. Besides a clock it accepts a duration
// after minEnd, such as "+1h30m", the way the duration picker lists choices.
// The result wraps past midnight.
func ParseEndClock(raw string, minEnd datetime.Clock) (datetime.Clock, error) {
	raw = strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(raw, "+"); ok {
		d, err := time.ParseDuration(rest)
		if err != nil || d < 0 || d >= 24*time.Hour {
			return datetime.Clock{}, fmt.Errorf("%w: duration %q", ErrInvalidDateInput, raw)
		}
		return minEnd.Add(d), nil
	}
	return ParseClock(raw)
}

// ParseTimezone validates an IANA zone identifier.
func ParseTimezone(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if _, err := datetime.LoadLocation(name); err != nil {
		return "", err
	}
	return name, nil
}

func parseInt(value string) (int, error) {
	var i int
	var rest string
	n, _ := fmt.Sscanf(value, "%d%s", &i, &rest)
	if n != 1 {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	return i, nil
}
