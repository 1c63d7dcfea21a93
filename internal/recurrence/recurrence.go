package recurrence

import (
	"fmt"
	"strings"
	"time"

	"eventform/internal/datetime"
)

var dayMap = map[string]time.Weekday{
	"monday":    time.Monday,
	"mon":       time.Monday,
	"lunes":     time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"martes":    time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"miercoles": time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"jueves":    time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"viernes":   time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
	"sabado":    time.Saturday,
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"domingo":   time.Sunday,
}

// ParseEvery turns frequency-row text ("weekly", "every mon and fri",
// "monthly last", "RRULE:...") into a pattern anchored on start. Empty input
// and "none" mean the event does not repeat.
func ParseEvery(input string, start datetime.Date) (*Pattern, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	if strings.HasPrefix(strings.ToUpper(input), "RRULE:") {
		p, err := FromRRule(input, start)
		if err != nil {
			return nil, err
		}
		return p.Anchored(start), nil
	}
	clean := normalize(input)
	if containsAny(clean, []string{"none", "never", "once", "nunca"}) {
		return nil, nil
	}
	interval := parseInterval(clean)
	var p *Pattern
	switch {
	case containsAny(clean, []string{"weekdays", "laborables"}):
		p = NewPattern(Weekly, start)
		p.Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
		p = p.Anchored(start)
	case len(parseDays(clean)) > 0:
		p = NewPattern(Weekly, start)
		p.Weekdays = parseDays(clean)
		p = p.Anchored(start)
	case containsAny(clean, []string{"daily", "day", "days", "diario", "diaria", "cada dia"}):
		p = NewPattern(Daily, start)
	case containsAny(clean, []string{"weekly", "week", "weeks", "semanal", "cada semana"}):
		p = NewPattern(Weekly, start)
	case containsAny(clean, []string{"monthly", "month", "months", "mensual", "cada mes"}):
		p = NewPattern(Monthly, start)
		switch {
		case containsAny(clean, []string{"last", "ultimo"}):
			p.MonthlyMode = OnLastWeekday
			p.anchor(start)
		case containsAny(clean, []string{"nth"}):
			p.MonthlyMode = OnNthWeekday
			p.anchor(start)
		}
	case containsAny(clean, []string{"yearly", "year", "years", "anual", "cada ano"}):
		p = NewPattern(Yearly, start)
	default:
		return nil, fmt.Errorf("unsupported recurrence: %s", input)
	}
	p.Interval = interval
	return p, nil
}

func parseDays(clean string) []time.Weekday {
	found := map[time.Weekday]bool{}
	for _, token := range strings.Fields(clean) {
		key := strings.Trim(token, " ,.;:")
		if day, ok := dayMap[key]; ok {
			found[day] = true
		}
	}
	var result []time.Weekday
	for day := time.Sunday; day <= time.Saturday; day++ {
		if found[day] {
			result = append(result, day)
		}
	}
	return result
}

// parseInterval reads "every 2 weeks" style prefixes.
func parseInterval(clean string) int {
	for _, token := range strings.Fields(clean) {
		var n int
		if _, err := fmt.Sscanf(token, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

func containsAny(text string, needles []string) bool {
	words := strings.Fields(text)
	for _, n := range needles {
		if strings.Contains(n, " ") {
			if strings.Contains(text, n) {
				return true
			}
			continue
		}
		for _, w := range words {
			if strings.Trim(w, " ,.;:") == n {
				return true
			}
		}
	}
	return false
}

func normalize(input string) string {
	value := strings.ToLower(strings.TrimSpace(input))
	replacer := strings.NewReplacer(
		"á", "a",
		"é", "e",
		"í", "i",
		"ó", "o",
		"ú", "u",
		"ü", "u",
		"ñ", "n",
	)
	return replacer.Replace(value)
}
