package datetime

import (
	"fmt"
	"time"
)

// State is one edge of an event: a date and a time-of-day read together in
// TZID. Two states are only ever ordered through their resolved instants.
//
// When clocks go back the same wall-clock time happens twice. Fold is set
// for the second pass; the zero value names the first, as RFC 5545 reads an
// ambiguous local time.
type State struct {
	Date Date   `json:"date" yaml:"date"`
	Time Clock  `json:"time" yaml:"time"`
	TZID string `json:"tzid" yaml:"tzid"`
	Fold bool   `json:"fold,omitempty" yaml:"fold,omitempty"`
}

func NewState(date Date, clock Clock, tzid string) State {
	return State{Date: date, Time: clock, TZID: tzid}
}

// The With methods name a new wall-clock time, so they drop Fold.

func (s State) WithDate(d Date) State {
	s.Date = d
	s.Fold = false
	return s
}

func (s State) WithTime(c Clock) State {
	s.Time = c
	s.Fold = false
	return s
}

func (s State) WithTZID(tzid string) State {
	s.TZID = tzid
	s.Fold = false
	return s
}

// StartOfDay returns the same date at 00:00 in the same zone.
func (s State) StartOfDay() State {
	return s.WithTime(Midnight)
}

func (s State) Resolve() (time.Time, error) {
	return ToAbsolute(s)
}

// Compare orders two states by their resolved instants.
func (s State) Compare(other State) (int, error) {
	a, err := s.Resolve()
	if err != nil {
		return 0, err
	}
	b, err := other.Resolve()
	if err != nil {
		return 0, err
	}
	return a.Compare(b), nil
}

func (s State) String() string {
	if s.Fold {
		return fmt.Sprintf("%s %s %s (second pass)", s.Date, s.Time, s.TZID)
	}
	return fmt.Sprintf("%s %s %s", s.Date, s.Time, s.TZID)
}
