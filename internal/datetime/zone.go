package datetime

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

// LoadLocation resolves an IANA zone identifier. Unlike time.LoadLocation it
// never maps the empty string or "Local" to a zone.
func LoadLocation(tzid string) (*time.Location, error) {
	name := strings.TrimSpace(tzid)
	if name == "" || strings.EqualFold(name, "local") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tzid)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tzid)
	}
	return loc, nil
}

// ToAbsolute resolves a wall-clock state to the instant it names in its zone.
// A time repeated by a backward transition resolves to its first pass unless
// s.Fold is set. Times skipped by a forward transition normalize the way
// time.Date does.
func ToAbsolute(s State) (time.Time, error) {
	loc, err := LoadLocation(s.TZID)
	if err != nil {
		return time.Time{}, err
	}
	if !s.Date.IsValid() || !s.Time.IsValid() {
		return time.Time{}, fmt.Errorf("%w: %s %s", ErrInvalidDate, s.Date, s.Time)
	}
	passes := wallInstants(s, loc)
	switch {
	case len(passes) == 0:
		return time.Date(s.Date.Year, s.Date.Month, s.Date.Day, s.Time.Hour, s.Time.Minute, 0, 0, loc), nil
	case s.Fold:
		return passes[len(passes)-1], nil
	default:
		return passes[0], nil
	}
}

// ToWallClock is the inverse of ToAbsolute: it renders t in tzid and marks
// the second pass of a repeated time with Fold.
func ToWallClock(t time.Time, tzid string) (State, error) {
	loc, err := LoadLocation(tzid)
	if err != nil {
		return State{}, err
	}
	local := t.In(loc).Truncate(time.Minute)
	s := State{
		Date: DateOf(local),
		Time: ClockOf(local),
		TZID: tzid,
	}
	if passes := wallInstants(s, loc); len(passes) > 1 && local.Equal(passes[len(passes)-1]) {
		s.Fold = true
	}
	return s, nil
}

// wallInstants lists, earliest first, every instant at which clocks in loc
// read s's date and time. It is empty inside a forward gap and holds two
// instants inside a repeated hour.
func wallInstants(s State, loc *time.Location) []time.Time {
	naive := time.Date(s.Date.Year, s.Date.Month, s.Date.Day, s.Time.Hour, s.Time.Minute, 0, 0, time.UTC)
	guess := time.Date(s.Date.Year, s.Date.Month, s.Date.Day, s.Time.Hour, s.Time.Minute, 0, 0, loc)
	seen := make(map[int]bool, 3)
	var out []time.Time
	for _, near := range []time.Time{guess.Add(-24 * time.Hour), guess, guess.Add(24 * time.Hour)} {
		_, offset := near.Zone()
		if seen[offset] {
			continue
		}
		seen[offset] = true
		t := naive.Add(-time.Duration(offset) * time.Second).In(loc)
		if DateOf(t) == s.Date && ClockOf(t) == s.Time {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}
