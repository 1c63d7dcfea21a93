package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventform/internal/draft"
	"eventform/internal/event"
)

type tuiState int

const (
	stateForm tuiState = iota
	stateEdit
	stateCalendar
	stateConfirmDiscard
)

var (
	colorAccent = lipgloss.Color("69")
	colorMuted  = lipgloss.Color("241")
	colorError  = lipgloss.Color("203")
)

type calendarItem event.Calendar

func (c calendarItem) Title() string       { return c.Name }
func (c calendarItem) Description() string { return gray(c.ID) }
func (c calendarItem) FilterValue() string { return c.Name }

type tuiModel struct {
	app   *App
	draft *draft.Draft
	event event.Model
	saved event.Model

	state     tuiState
	cursor    int
	editing   field
	input     textinput.Model
	calendars list.Model
	preview   viewport.Model

	status    string
	statusErr bool

	winW int
	winH int
}

type okMsg struct{ msg string }

type errMsg struct{ err error }

type discardedMsg struct{}

func startTUI(app *App) error {
	d, err := app.LoadDraft()
	if errors.Is(err, draft.ErrNoDraft) {
		m, err := buildNewModel(app, newModelInput{})
		if err != nil {
			return err
		}
		d = draft.New(m)
	} else if err != nil {
		return err
	}
	model := newTUIModel(app, d)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newTUIModel(app *App, d *draft.Draft) tuiModel {
	input := textinput.New()
	input.CharLimit = 500
	return tuiModel{
		app:       app,
		draft:     d,
		event:     d.Model,
		saved:     d.Model,
		state:     stateForm,
		input:     input,
		calendars: styleList(list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)),
		preview:   viewport.New(0, 0),
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) setSizes() {
	if m.winW == 0 || m.winH == 0 {
		return
	}
	m.calendars.SetSize(m.winW-4, m.winH-6)
	m.input.Width = m.winW/2 - 20
	m.preview.Width = m.winW/2 - 4
	m.preview.Height = m.winH - 8
	m.refreshPreview()
}

func (m *tuiModel) refreshPreview() {
	m.preview.SetContent(formatModel(m.event, m.app.Settings.WeekStart))
}

// rows are the fields the form shows for the current event.
func (m tuiModel) rows() []field {
	out := make([]field, 0, len(allFields))
	for _, f := range allFields {
		if !fieldHidden(f, m.event) {
			out = append(out, f)
		}
	}
	return out
}

func (m tuiModel) dirty() bool {
	return !m.event.Equal(m.saved)
}

func (m *tuiModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *tuiModel) clampCursor() {
	rows := m.rows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// commit applies raw to f and keeps the editor's answer, which is the
// unchanged event when the edit is rejected.
func (m *tuiModel) commit(f field, raw string) {
	next, err := applyField(m.app, m.event, f, raw)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.event = next
	m.setStatus(fmt.Sprintf("%s updated", f), false)
	m.clampCursor()
	m.refreshPreview()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winW = msg.Width
		m.winH = msg.Height
		m.setSizes()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case okMsg, errMsg, discardedMsg:
		return m.handleMessage(msg)
	}

	switch m.state {
	case stateEdit:
		return m.updateEdit(msg)
	case stateCalendar:
		return m.updateCalendar(msg)
	case stateConfirmDiscard:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "y":
				return m, m.discardCmd()
			case "n", "esc":
				m.state = stateForm
			}
		}
		return m, nil
	default:
		return m.updateForm(msg)
	}
}

func (m tuiModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	rows := m.rows()
	switch key.String() {
	case "q", "esc":
		if m.dirty() && m.status != "unsaved changes, press again to quit" {
			m.setStatus("unsaved changes, press again to quit", true)
			return m, nil
		}
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(rows)) % len(rows)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(rows)
	case "ctrl+s":
		return m, m.saveCmd()
	case "d":
		m.state = stateConfirmDiscard
	case " ":
		if rows[m.cursor] == fieldAllDay {
			m.commit(fieldAllDay, fmt.Sprint(!m.event.IsAllDay))
		}
	case "enter":
		f := rows[m.cursor]
		switch f {
		case fieldAllDay:
			m.commit(fieldAllDay, fmt.Sprint(!m.event.IsAllDay))
		case fieldCalendar:
			if !m.event.HasCalendarRow {
				m.setStatus(event.ErrCalendarLocked.Error(), true)
				return m, nil
			}
			m.calendars = newCalendarSelect(m.event)
			m.state = stateCalendar
			m.setSizes()
		default:
			m.editing = f
			m.input.SetValue(fieldValue(f, m.event, m.app.Settings.WeekStart))
			m.input.Placeholder = fieldPlaceholder(f)
			m.input.CursorEnd()
			m.input.Focus()
			m.state = stateEdit
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m tuiModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.input.Blur()
			m.state = stateForm
			return m, nil
		case "ctrl+u":
			m.input.SetValue("")
			return m, nil
		case "enter":
			m.input.Blur()
			m.state = stateForm
			m.commit(m.editing, m.input.Value())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.state = stateForm
			return m, nil
		case "enter":
			m.state = stateForm
			if item, ok := m.calendars.SelectedItem().(calendarItem); ok {
				m.commit(fieldCalendar, item.ID)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.calendars, cmd = m.calendars.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	padding := lipgloss.NewStyle().Padding(1, 2)
	status := ""
	if m.status != "" {
		style := lipgloss.NewStyle().Foreground(colorMuted)
		if m.statusErr {
			style = lipgloss.NewStyle().Foreground(colorError)
		}
		status = "\n\n" + style.Render(m.status)
	}
	switch m.state {
	case stateCalendar:
		return padding.Render(renderHeader("Calendar") + "\n\n" + m.calendars.View() + "\n\n" + gray("enter: select • esc: back") + status)
	case stateConfirmDiscard:
		return padding.Render(renderHeader("Discard draft") + "\n\n" + "Throw away this event?" + "\n\n" + gray("y: discard • n: cancel"))
	}
	title := m.event.Title
	if title == "" {
		title = "New event"
	}
	if m.dirty() {
		title += " *"
	}
	help := "↑/↓: move • enter: edit • space: all-day • ctrl+s: save • d: discard • esc: quit"
	if m.state == stateEdit {
		help = "enter: apply • esc: cancel • ctrl+u: clear"
	}
	return padding.Render(renderHeader(title) + "\n\n" + m.splitPane(m.formView(), m.preview.View()) + "\n\n" + gray(help) + status)
}

func renderHeader(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("eventform") + " · " + lipgloss.NewStyle().Bold(true).Render(title)
}

func (m tuiModel) formView() string {
	var b strings.Builder
	label := lipgloss.NewStyle().Width(14)
	selected := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	for i, f := range m.rows() {
		cursor := " "
		name := label.Render(string(f))
		if i == m.cursor {
			cursor = "▶"
			name = selected.Render(label.Render(string(f)))
		}
		value := fieldValue(f, m.event, m.app.Settings.WeekStart)
		switch {
		case m.state == stateEdit && f == m.editing:
			value = m.input.View()
		case f == fieldEvery && m.event.Frequency != nil:
			value = recurrenceText(m.event.Frequency, m.app.Settings.WeekStart)
		case f == fieldCalendar:
			value = m.event.CalendarName()
		}
		if value == "" {
			value = gray("-")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, name, value))
	}
	return b.String()
}

func (m tuiModel) splitPane(left, right string) string {
	if m.winW == 0 {
		return left + "\n" + right
	}
	leftW := m.winW/2 - 2
	leftStyle := lipgloss.NewStyle().Width(leftW).PaddingRight(2)
	rightStyle := lipgloss.NewStyle().
		Width(m.winW-leftW-6).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(colorMuted).
		PaddingLeft(2)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftStyle.Render(left), rightStyle.Render(right))
}

func fieldPlaceholder(f field) string {
	switch f {
	case fieldStartDate, fieldEndDate:
		return "2023-06-05, tomorrow, next friday"
	case fieldStartTime:
		return "HH:MM"
	case fieldEndTime:
		return "HH:MM or +1h30m"
	case fieldStartTZ, fieldEndTZ:
		return "Europe/Paris"
	case fieldEvery:
		return "none, daily, weekly mon wed, monthly last, yearly"
	case fieldNotifications:
		return "15m, 1h or 1d@09:00"
	default:
		return string(f)
	}
}

func newCalendarSelect(ev event.Model) list.Model {
	items := make([]list.Item, 0, len(ev.Calendars))
	selected := 0
	for i, cal := range ev.Calendars {
		items = append(items, calendarItem(cal))
		if cal.ID == ev.CalendarID {
			selected = i
		}
	}
	model := list.New(items, list.NewDefaultDelegate(), 0, 0)
	model.Title = "Calendar"
	model.SetShowStatusBar(false)
	model.SetFilteringEnabled(len(items) > 8)
	model.Select(selected)
	return styleList(model)
}

func styleList(model list.Model) list.Model {
	styles := model.Styles
	styles.Title = styles.Title.Foreground(colorAccent).Bold(true)
	styles.FilterPrompt = styles.FilterPrompt.Foreground(colorMuted)
	styles.FilterCursor = styles.FilterCursor.Foreground(colorAccent)
	styles.StatusBar = styles.StatusBar.Foreground(colorMuted)
	styles.PaginationStyle = styles.PaginationStyle.Foreground(colorMuted)
	styles.HelpStyle = styles.HelpStyle.Foreground(colorMuted)
	model.Styles = styles

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(colorAccent).Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(colorMuted)
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.Foreground(colorMuted)
	model.SetDelegate(delegate)

	return model
}

func (m tuiModel) saveCmd() tea.Cmd {
	d := *m.draft
	d.Model = m.event
	return func() tea.Msg {
		if err := m.app.SaveDraft(&d); err != nil {
			return errMsg{err: err}
		}
		return okMsg{msg: "draft saved"}
	}
}

func (m tuiModel) discardCmd() tea.Cmd {
	return func() tea.Msg {
		if err := draft.Remove(m.app.DraftPath); err != nil {
			return errMsg{err: err}
		}
		return discardedMsg{}
	}
}

func (m tuiModel) handleMessage(msg tea.Msg) (tuiModel, tea.Cmd) {
	switch msg := msg.(type) {
	case okMsg:
		m.saved = m.event
		m.draft.Model = m.event
		m.setStatus(msg.msg, false)
	case errMsg:
		m.setStatus(msg.err.Error(), true)
	case discardedMsg:
		return m, tea.Quit
	}
	return m, nil
}
