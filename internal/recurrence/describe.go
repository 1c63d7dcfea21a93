package recurrence

import (
	"fmt"
	"strings"
	"time"

	"eventform/internal/datetime"
)

// Describe renders the pattern as short English text, listing weekdays from
// weekStart onwards.
func (p *Pattern) Describe(weekStart time.Weekday) string {
	if p == nil {
		return "does not repeat"
	}
	interval := p.Interval
	if interval <= 0 {
		interval = 1
	}
	var base string
	switch p.Freq {
	case Daily:
		base = plural(interval, "every day", "every %d days")
	case Weekly:
		base = plural(interval, "every week", "every %d weeks")
		if days := describeWeekdays(p.Weekdays, weekStart); days != "" {
			base = fmt.Sprintf("%s (%s)", base, days)
		}
	case Monthly:
		base = plural(interval, "every month", "every %d months")
		switch p.MonthlyMode {
		case OnNthWeekday:
			base = fmt.Sprintf("%s on the %s %s", base, ordinal(p.Nth), weekdayLabel(p.Weekday))
		case OnLastWeekday:
			base = fmt.Sprintf("%s on the last %s", base, weekdayLabel(p.Weekday))
		default:
			base = fmt.Sprintf("%s on day %d", base, p.MonthDay)
		}
	case Yearly:
		base = plural(interval, "every year", "every %d years")
		base = fmt.Sprintf("%s on %s %d", base, p.Month.String()[:3], p.MonthDay)
	default:
		return string(p.Freq)
	}
	switch p.Ends.Type {
	case EndsAfter:
		base = fmt.Sprintf("%s, %d times", base, p.Ends.Count)
	case EndsOnUntil:
		base = fmt.Sprintf("%s, until %s", base, p.Ends.Until)
	}
	return base
}

// DescribeRule is Describe for a raw RRULE string.
func DescribeRule(rule string, start datetime.Date, weekStart time.Weekday) (string, bool) {
	p, err := FromRRule(rule, start)
	if err != nil || p == nil {
		return "", false
	}
	return p.Describe(weekStart), true
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return fmt.Sprintf(many, n)
}

func describeWeekdays(days []time.Weekday, weekStart time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	labels := make([]string, 0, len(days))
	for _, day := range OrderWeekdays(days, weekStart) {
		labels = append(labels, weekdayLabel(day))
	}
	return strings.Join(labels, ", ")
}

// OrderWeekdays sorts days as they appear in a week beginning on weekStart.
func OrderWeekdays(days []time.Weekday, weekStart time.Weekday) []time.Weekday {
	ordered := make([]time.Weekday, 0, len(days))
	for i := 0; i < 7; i++ {
		day := (weekStart + time.Weekday(i)) % 7
		for _, d := range days {
			if d == day {
				ordered = append(ordered, d)
				break
			}
		}
	}
	return ordered
}

func weekdayLabel(day time.Weekday) string {
	return day.String()[:3]
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	case 4:
		return "fourth"
	case 5:
		return "fifth"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
