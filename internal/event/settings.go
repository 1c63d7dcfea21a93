package event

import (
	"slices"
	"time"

	"eventform/internal/datetime"
)

// Settings are the user preferences the editor reads.
type Settings struct {
	Timezone           string
	WeekStart          time.Weekday
	MinDate            datetime.Date
	MaxDate            datetime.Date
	DefaultStartTime   datetime.Clock
	DefaultDuration    time.Duration
	DisplayWeekNumbers bool

	PartDayNotifications []Notification
	FullDayNotifications []Notification
}

func DefaultSettings() Settings {
	return Settings{
		Timezone:         "UTC",
		WeekStart:        time.Monday,
		MinDate:          datetime.NewDate(1970, time.January, 1),
		MaxDate:          datetime.NewDate(2037, time.December, 31),
		DefaultStartTime: datetime.NewClock(9, 0),
		DefaultDuration:  30 * time.Minute,
		PartDayNotifications: []Notification{
			{Before: 15 * time.Minute},
		},
		FullDayNotifications: []Notification{
			{Days: 0, At: datetime.NewClock(9, 0)},
		},
	}
}

func (s Settings) DefaultNotifications() Notifications {
	return Notifications{
		FullDay: slices.Clone(s.FullDayNotifications),
		PartDay: slices.Clone(s.PartDayNotifications),
	}
}
