package event

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"eventform/internal/datetime"
)

// Notification is a reminder. Part-day reminders fire Before the start;
// full-day reminders fire at At on the day Days before the event date.
type Notification struct {
	Before time.Duration  `json:"before,omitempty" yaml:"before,omitempty"`
	Days   int            `json:"days,omitempty" yaml:"days,omitempty"`
	At     datetime.Clock `json:"at" yaml:"at"`
}

// ParseNotification reads "15m" or "1h" for part-day reminders and "1d@09:00"
// or "@08:30" for full-day ones.
func ParseNotification(raw string, fullDay bool) (Notification, error) {
	raw = strings.TrimSpace(raw)
	if !fullDay {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return Notification{}, fmt.Errorf("invalid notification %q", raw)
		}
		return Notification{Before: d}, nil
	}
	daysPart, atPart, ok := strings.Cut(raw, "@")
	if !ok {
		return Notification{}, fmt.Errorf("invalid full-day notification %q: expected <days>d@HH:MM", raw)
	}
	n := Notification{}
	if daysPart = strings.TrimSuffix(strings.TrimSpace(daysPart), "d"); daysPart != "" {
		days, err := strconv.Atoi(daysPart)
		if err != nil || days < 0 {
			return Notification{}, fmt.Errorf("invalid full-day notification %q", raw)
		}
		n.Days = days
	}
	at, err := datetime.ParseClock(strings.TrimSpace(atPart))
	if err != nil {
		return Notification{}, fmt.Errorf("invalid full-day notification %q", raw)
	}
	n.At = at
	return n, nil
}

// Label renders the reminder the way ParseNotification reads it.
func (n Notification) Label(fullDay bool) string {
	if fullDay {
		return fmt.Sprintf("%dd@%s", n.Days, n.At)
	}
	if n.Before == 0 {
		return "0m"
	}
	label := n.Before.String()
	if strings.HasSuffix(label, "m0s") {
		label = strings.TrimSuffix(label, "0s")
	}
	if strings.HasSuffix(label, "h0m") {
		label = strings.TrimSuffix(label, "0m")
	}
	return label
}

// Notifications holds both reminder lists. Only one is active at a time,
// depending on the all-day flag, but neither is ever dropped.
type Notifications struct {
	FullDay         []Notification `json:"full_day" yaml:"full_day"`
	PartDay         []Notification `json:"part_day" yaml:"part_day"`
	FullDayModified bool           `json:"full_day_modified" yaml:"full_day_modified"`
	PartDayModified bool           `json:"part_day_modified" yaml:"part_day_modified"`
}

func (n Notifications) Equal(other Notifications) bool {
	return slices.Equal(n.FullDay, other.FullDay) && slices.Equal(n.PartDay, other.PartDay) &&
		n.FullDayModified == other.FullDayModified && n.PartDayModified == other.PartDayModified
}

// Active is the list shown for the given all-day state.
func (n Notifications) Active(allDay bool) []Notification {
	if allDay {
		return n.FullDay
	}
	return n.PartDay
}

// withList replaces one list and marks only that list as modified.
func (n Notifications) withList(fullDay bool, list []Notification) Notifications {
	list = slices.Clone(list)
	if fullDay {
		n.FullDay = list
		n.FullDayModified = true
	} else {
		n.PartDay = list
		n.PartDayModified = true
	}
	return n
}
