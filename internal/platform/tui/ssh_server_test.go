package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/registry"
)

func init() {
	registry.Register("scripted", func() registry.Game { return &scriptedGame{} })
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 60, ScreenH: 20}
	m := NewSessionModel(nil, cfg, log.New(io.Discard))

	if m.current != screenMenu {
		t.Fatalf("session starts at %v, want menu", m.current)
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame {
		t.Fatalf("enter should start a game, at %v", m.current)
	}
	if m.game.game.ID() != "scripted" {
		t.Errorf("started %q", m.game.game.ID())
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.current != screenMenu || m.quitting {
		t.Fatalf("esc should return to the menu, at %v quitting=%v", m.current, m.quitting)
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScores {
		t.Fatalf("tab should open scores, at %v", m.current)
	}
	if m.View() == "" {
		t.Error("empty scoreboard view")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.current != screenMenu {
		t.Fatalf("esc should leave scores, at %v", m.current)
	}

	m = sessionUpdate(t, m, runeKey("q"))
	if !m.quitting {
		t.Error("q in the menu should quit")
	}
}
