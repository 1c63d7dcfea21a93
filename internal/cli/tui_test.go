package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"eventform/internal/draft"
)

func TestTUIToggleAllDayHidesTimeRows(t *testing.T) {
	app := newTestApp(t)
	m := newTUIModel(app, draft.New(newTestModel(t, app, newModelInput{Date: "2023-06-05"})))
	m.cursor = 1 // all-day

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	got := next.(tuiModel)
	if !got.event.IsAllDay {
		t.Fatalf("expected all-day after space")
	}
	for _, f := range got.rows() {
		if f == fieldStartTime || f == fieldEndTZ {
			t.Fatalf("expected %s hidden", f)
		}
	}
	if !got.dirty() {
		t.Fatalf("expected unsaved changes")
	}
}

func TestTUIEditRejectionKeepsEvent(t *testing.T) {
	app := newTestApp(t)
	m := newTUIModel(app, draft.New(newTestModel(t, app, newModelInput{Date: "2023-06-05"})))
	before := m.event

	m.commit(fieldEndDate, "2023-06-01")
	if !m.event.Equal(before) {
		t.Fatalf("expected event unchanged after rejected edit")
	}
	if !m.statusErr || m.status == "" {
		t.Fatalf("expected error status, got %q", m.status)
	}
}

func TestTUISaveWritesDraft(t *testing.T) {
	app := newTestApp(t)
	m := newTUIModel(app, draft.New(newTestModel(t, app, newModelInput{Date: "2023-06-05"})))
	m.commit(fieldTitle, "Planning")

	msg := m.saveCmd()()
	if _, ok := msg.(okMsg); !ok {
		t.Fatalf("expected okMsg, got %#v", msg)
	}
	saved, err := draft.Load(app.DraftPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if saved.Model.Title != "Planning" {
		t.Fatalf("expected saved title Planning, got %q", saved.Model.Title)
	}
}
