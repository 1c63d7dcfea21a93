package datetime

import (
	"errors"
	"testing"
	"time"
)

func TestToAbsoluteAppliesOffsetAtInstant(t *testing.T) {
	winter := NewState(NewDate(2023, time.January, 10), NewClock(9, 0), "Europe/Paris")
	summer := NewState(NewDate(2023, time.July, 10), NewClock(9, 0), "Europe/Paris")

	w, err := ToAbsolute(winter)
	if err != nil {
		t.Fatalf("ToAbsolute error: %v", err)
	}
	s, err := ToAbsolute(summer)
	if err != nil {
		t.Fatalf("ToAbsolute error: %v", err)
	}
	if got := w.UTC().Hour(); got != 8 {
		t.Fatalf("expected 08:00 UTC in winter, got %02d", got)
	}
	if got := s.UTC().Hour(); got != 7 {
		t.Fatalf("expected 07:00 UTC in summer, got %02d", got)
	}
}

func TestToWallClockRendersInZone(t *testing.T) {
	instant := time.Date(2023, time.June, 5, 7, 0, 0, 0, time.UTC)
	got, err := ToWallClock(instant, "America/New_York")
	if err != nil {
		t.Fatalf("ToWallClock error: %v", err)
	}
	want := NewState(NewDate(2023, time.June, 5), NewClock(3, 0), "America/New_York")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestTimezoneRoundTrip(t *testing.T) {
	zones := []string{"UTC", "Europe/Paris", "America/New_York", "Asia/Kolkata", "Australia/Lord_Howe", "Pacific/Chatham"}
	moments := []struct {
		date  Date
		clock Clock
	}{
		{NewDate(1970, time.January, 1), NewClock(0, 0)},
		{NewDate(2023, time.March, 26), NewClock(1, 59)},
		{NewDate(2023, time.March, 26), NewClock(3, 0)},
		{NewDate(2023, time.October, 29), NewClock(4, 15)},
		{NewDate(2023, time.November, 5), NewClock(0, 30)},
		{NewDate(2024, time.February, 29), NewClock(23, 59)},
		{NewDate(2037, time.December, 31), NewClock(12, 0)},
	}
	for _, zone := range zones {
		for _, m := range moments {
			state := NewState(m.date, m.clock, zone)
			instant, err := ToAbsolute(state)
			if err != nil {
				t.Fatalf("ToAbsolute(%s) error: %v", state, err)
			}
			back, err := ToWallClock(instant, zone)
			if err != nil {
				t.Fatalf("ToWallClock error: %v", err)
			}
			if back != state {
				t.Fatalf("round trip mismatch: %s -> %s", state, back)
			}
		}
	}
}

func TestInvalidTimezoneIsNeverDefaulted(t *testing.T) {
	for _, tzid := range []string{"", "Local", "Mars/Olympus", "Europe/Pariss"} {
		_, err := ToAbsolute(NewState(NewDate(2023, time.June, 5), NewClock(9, 0), tzid))
		if !errors.Is(err, ErrInvalidTimezone) {
			t.Fatalf("expected ErrInvalidTimezone for %q, got %v", tzid, err)
		}
		_, err = ToWallClock(time.Now(), tzid)
		if !errors.Is(err, ErrInvalidTimezone) {
			t.Fatalf("expected ErrInvalidTimezone for %q, got %v", tzid, err)
		}
	}
}

func TestToAbsoluteRejectsImpossibleDate(t *testing.T) {
	_, err := ToAbsolute(NewState(NewDate(2023, time.February, 30), NewClock(9, 0), "UTC"))
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestStateCompareUsesInstants(t *testing.T) {
	// 09:00 in Paris is earlier than 04:00 in New York on the same day.
	paris := NewState(NewDate(2023, time.June, 5), NewClock(9, 0), "Europe/Paris")
	newYork := NewState(NewDate(2023, time.June, 5), NewClock(4, 0), "America/New_York")
	cmp, err := paris.Compare(newYork)
	if err != nil {
		t.Fatalf("Compare error: %v", err)
	}
	if cmp >= 0 {
		t.Fatalf("expected Paris 09:00 before New York 04:00, got %d", cmp)
	}
}

func TestRepeatedHourResolvesByFold(t *testing.T) {
	// Paris falls back from 03:00 to 02:00 on 2023-10-29, so 02:30 happens twice.
	first := NewState(NewDate(2023, time.October, 29), NewClock(2, 30), "Europe/Paris")
	second := first
	second.Fold = true

	a, err := ToAbsolute(first)
	if err != nil {
		t.Fatalf("ToAbsolute error: %v", err)
	}
	b, err := ToAbsolute(second)
	if err != nil {
		t.Fatalf("ToAbsolute error: %v", err)
	}
	if want := time.Date(2023, time.October, 29, 0, 30, 0, 0, time.UTC); !a.Equal(want) {
		t.Fatalf("expected first pass at %s, got %s", want, a.UTC())
	}
	if b.Sub(a) != time.Hour {
		t.Fatalf("expected second pass one hour later, got %s", b.Sub(a))
	}

	for _, want := range []State{first, second} {
		instant, _ := ToAbsolute(want)
		got, err := ToWallClock(instant, "Europe/Paris")
		if err != nil {
			t.Fatalf("ToWallClock error: %v", err)
		}
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}

	if moved := second.WithTime(NewClock(2, 45)); moved.Fold {
		t.Fatalf("expected a new wall-clock time to drop the fold")
	}
}

func TestFoldIgnoredOutsideRepeatedHour(t *testing.T) {
	plain := NewState(NewDate(2023, time.June, 5), NewClock(9, 0), "Europe/Paris")
	folded := plain
	folded.Fold = true
	a, _ := ToAbsolute(plain)
	b, _ := ToAbsolute(folded)
	if !a.Equal(b) {
		t.Fatalf("expected the same instant, got %s and %s", a, b)
	}
}
