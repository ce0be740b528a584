package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	// Registers the board variants shown in the menu
	_ "github.com/vovakirdan/bioblitz/internal/games/bioblitz"
)

func sendSession(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(nil, nil, testConfig())
	if m.screen != screenMenu {
		t.Fatal("Session should start at the menu")
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMatch {
		t.Fatal("Enter should start a match")
	}
	m = sendSession(t, m, TickMsg{}, TickMsg{})

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Fatal("Esc should return to the menu")
	}

	// A tick left over from the match is ignored
	m = sendSession(t, m, TickMsg{})
	if m.screen != screenMenu {
		t.Fatal("Stale tick should not leave the menu")
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenHistory {
		t.Fatal("Tab should open the match history")
	}
	if m.View() == "" {
		t.Error("History view should not be empty")
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatal("Esc should leave the match history")
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.quitting {
		t.Error("q should end the session")
	}
}
