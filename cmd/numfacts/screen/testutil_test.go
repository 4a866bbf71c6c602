package screen

import (
	"context"
	"testing"

	"numfacts/cmd/numfacts/ui"
	"numfacts/internal/facts"
	"numfacts/internal/factservice"

	tea "github.com/charmbracelet/bubbletea"
)

// NewTestModel builds a screen over stub with plain fact rendering and a
// fixed theme, so views are deterministic.
func NewTestModel(t *testing.T, stub *factservice.Stub) Model {
	t.Helper()
	r := facts.NewReducer(stub)
	m := New(context.Background(), r, facts.NewState(facts.DefaultLabel),
		WithPlainFacts(),
		WithStyles(ui.NewStyles(ui.LightTheme())),
	)
	t.Cleanup(m.shutdown)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// actions runs cmd (flattening batches) and returns the actions it produced.
// Only use it on commands that return immediately.
func actions(cmd tea.Cmd) []facts.Action {
	if cmd == nil {
		return nil
	}
	var out []facts.Action
	switch msg := cmd().(type) {
	case actionMsg:
		out = append(out, msg.action)
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, actions(c)...)
		}
	}
	return out
}

// settle feeds every action produced by cmd back into the model.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, a := range actions(cmd) {
		var next tea.Cmd
		m, next = update(t, m, actionMsg{action: a})
		m = settle(t, m, next)
	}
	return m
}
