package recurrence

import (
	"fmt"
	"strings"
	"time"

	rrule "github.com/teambition/rrule-go"

	"eventform/internal/datetime"
)

var freqToRRule = map[Freq]rrule.Frequency{
	Daily:   rrule.DAILY,
	Weekly:  rrule.WEEKLY,
	Monthly: rrule.MONTHLY,
	Yearly:  rrule.YEARLY,
}

var rruleWeekdays = []rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

func toRRuleWeekday(d time.Weekday) rrule.Weekday {
	return rruleWeekdays[d]
}

// rrule-go numbers weekdays from Monday.
func fromRRuleWeekday(d rrule.Weekday) time.Weekday {
	return time.Weekday((d.Day() + 1) % 7)
}

// Option builds the rrule-go option for the pattern starting at start.
func (p *Pattern) Option(start time.Time, weekStart time.Weekday) (rrule.ROption, error) {
	if err := p.Validate(); err != nil {
		return rrule.ROption{}, err
	}
	opt := rrule.ROption{
		Freq:     freqToRRule[p.Freq],
		Interval: p.Interval,
		Dtstart:  start,
		Wkst:     toRRuleWeekday(weekStart),
	}
	switch p.Freq {
	case Weekly:
		for _, d := range p.Weekdays {
			opt.Byweekday = append(opt.Byweekday, toRRuleWeekday(d))
		}
	case Monthly:
		day := toRRuleWeekday(p.Weekday)
		switch p.MonthlyMode {
		case OnNthWeekday:
			opt.Byweekday = []rrule.Weekday{day.Nth(p.Nth)}
		case OnLastWeekday:
			opt.Byweekday = []rrule.Weekday{day.Nth(-1)}
		default:
			opt.Bymonthday = []int{p.MonthDay}
		}
	case Yearly:
		opt.Bymonth = []int{int(p.Month)}
		opt.Bymonthday = []int{p.MonthDay}
	}
	switch p.Ends.Type {
	case EndsAfter:
		opt.Count = p.Ends.Count
	case EndsOnUntil:
		u := p.Ends.Until
		opt.Until = time.Date(u.Year, u.Month, u.Day, 23, 59, 59, 0, start.Location())
	}
	return opt, nil
}

// RRule returns the validated rrule-go rule for the pattern.
func (p *Pattern) RRule(start time.Time, weekStart time.Weekday) (*rrule.RRule, error) {
	opt, err := p.Option(start, weekStart)
	if err != nil {
		return nil, err
	}
	return rrule.NewRRule(opt)
}

// String renders the pattern as an RRULE property value.
func (p *Pattern) String(weekStart time.Weekday) string {
	if p == nil {
		return ""
	}
	opt, err := p.Option(time.Time{}, weekStart)
	if err != nil {
		return ""
	}
	return "RRULE:" + opt.RRuleString()
}

// FromRRule parses an RRULE string into a pattern. Anchor fields the rule
// leaves out default to start, the way DTSTART fills them in RFC 5545.
func FromRRule(rule string, start datetime.Date) (*Pattern, error) {
	clean := strings.TrimSpace(rule)
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "RRULE:"), "rrule:")
	if clean == "" {
		return nil, nil
	}
	opt, err := rrule.StrToROption(clean)
	if err != nil {
		return nil, fmt.Errorf("parse rrule: %w", err)
	}
	p := &Pattern{Interval: opt.Interval, Ends: Ends{Type: EndsNever}}
	if p.Interval <= 0 {
		p.Interval = 1
	}
	switch opt.Freq {
	case rrule.DAILY:
		p.Freq = Daily
	case rrule.WEEKLY:
		p.Freq = Weekly
		for _, d := range opt.Byweekday {
			p.Weekdays = append(p.Weekdays, fromRRuleWeekday(d))
		}
		p.Weekdays = sortWeekdays(p.Weekdays)
	case rrule.MONTHLY:
		p.Freq = Monthly
		switch {
		case len(opt.Bymonthday) > 0:
			p.MonthlyMode = OnMonthDay
			p.MonthDay = opt.Bymonthday[0]
		case len(opt.Byweekday) > 0 && opt.Byweekday[0].N() < 0:
			p.MonthlyMode = OnLastWeekday
			p.Weekday = fromRRuleWeekday(opt.Byweekday[0])
		case len(opt.Byweekday) > 0 && opt.Byweekday[0].N() > 0:
			p.MonthlyMode = OnNthWeekday
			p.Nth = opt.Byweekday[0].N()
			p.Weekday = fromRRuleWeekday(opt.Byweekday[0])
		default:
			p.MonthlyMode = OnMonthDay
		}
	case rrule.YEARLY:
		p.Freq = Yearly
		if len(opt.Bymonth) > 0 {
			p.Month = time.Month(opt.Bymonth[0])
		}
		if len(opt.Bymonthday) > 0 {
			p.MonthDay = opt.Bymonthday[0]
		}
	default:
		return nil, fmt.Errorf("unsupported recurrence: %s", rule)
	}
	switch {
	case opt.Count > 0:
		p.Ends = Ends{Type: EndsAfter, Count: opt.Count}
	case !opt.Until.IsZero():
		p.Ends = Ends{Type: EndsOnUntil, Until: datetime.DateOf(opt.Until)}
	}
	if p.Freq == Weekly && len(p.Weekdays) == 0 {
		p.anchor(start)
	}
	if p.Freq == Monthly && p.MonthDay == 0 && p.Nth == 0 && p.MonthlyMode == OnMonthDay {
		p.anchor(start)
	}
	if p.Freq == Yearly && (p.Month == 0 || p.MonthDay == 0) {
		p.anchor(start)
	}
	return p, nil
}
