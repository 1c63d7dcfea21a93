package event

import (
	"eventform/internal/datetime"
	"eventform/internal/recurrence"
)

// Intent is one edit raised by the UI. Each intent is handled by exactly one
// Editor method.
type Intent interface {
	apply(e *Editor, m Model) (Model, error)
}

type (
	SetStartDate     struct{ Date datetime.Date }
	SetStartTime     struct{ Time datetime.Clock }
	SetStartTimezone struct{ TZID string }
	SetEndDate       struct{ Date datetime.Date }
	SetEndTime       struct{ Time datetime.Clock }
	SetEndTimezone   struct{ TZID string }
	SetAllDay        struct{ AllDay bool }
	SetFrequency     struct{ Pattern *recurrence.Pattern }
	SetNotifications struct {
		FullDay bool
		List    []Notification
	}
	SetTitle       struct{ Title string }
	SetLocation    struct{ Location string }
	SetDescription struct{ Description string }
	SetCalendar    struct{ ID string }
)

func (i SetStartDate) apply(e *Editor, m Model) (Model, error) { return e.ChangeStartDate(m, i.Date) }
func (i SetStartTime) apply(e *Editor, m Model) (Model, error) { return e.ChangeStartTime(m, i.Time) }
func (i SetStartTimezone) apply(e *Editor, m Model) (Model, error) {
	return e.ChangeStartTimezone(m, i.TZID)
}
func (i SetEndDate) apply(e *Editor, m Model) (Model, error) { return e.ChangeEndDate(m, i.Date) }
func (i SetEndTime) apply(e *Editor, m Model) (Model, error) { return e.ChangeEndTime(m, i.Time) }
func (i SetEndTimezone) apply(e *Editor, m Model) (Model, error) {
	return e.ChangeEndTimezone(m, i.TZID)
}
func (i SetAllDay) apply(e *Editor, m Model) (Model, error) { return e.ToggleAllDay(m, i.AllDay) }
func (i SetFrequency) apply(e *Editor, m Model) (Model, error) {
	return e.ChangeFrequency(m, i.Pattern)
}
func (i SetNotifications) apply(e *Editor, m Model) (Model, error) {
	return e.ChangeNotifications(m, i.FullDay, i.List)
}
func (i SetTitle) apply(e *Editor, m Model) (Model, error)    { return e.ChangeTitle(m, i.Title) }
func (i SetLocation) apply(e *Editor, m Model) (Model, error) { return e.ChangeLocation(m, i.Location) }
func (i SetDescription) apply(e *Editor, m Model) (Model, error) {
	return e.ChangeDescription(m, i.Description)
}
func (i SetCalendar) apply(e *Editor, m Model) (Model, error) { return e.ChangeCalendar(m, i.ID) }

// Apply hands the intent to its reducer. Intents are applied in the order
// they arrive; the returned model replaces m.
func (e *Editor) Apply(m Model, intent Intent) (Model, error) {
	return intent.apply(e, m)
}

// ApplyAll applies intents in order and stops at the first rejection,
// returning the last accepted model.
func (e *Editor) ApplyAll(m Model, intents ...Intent) (Model, error) {
	for _, intent := range intents {
		next, err := e.Apply(m, intent)
		if err != nil {
			return m, err
		}
		m = next
	}
	return m, nil
}
