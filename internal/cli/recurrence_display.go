package cli

import (
	"strings"
	"time"

	"eventform/internal/recurrence"
)

func recurringTitle(title string, p *recurrence.Pattern) string {
	if p == nil {
		return title
	}
	trimmed := strings.TrimSpace(title)
	if strings.HasPrefix(trimmed, "🔁") {
		return title
	}
	return "🔁 " + title
}

func recurrenceText(p *recurrence.Pattern, weekStart time.Weekday) string {
	if p == nil {
		return ""
	}
	return p.Describe(weekStart)
}
