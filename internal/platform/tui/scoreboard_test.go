package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/match"
	"github.com/vovakirdan/tui-territory/internal/storage"
)

func scoreboardStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	err = store.SaveMatchResult(match.Result{
		MatchID:   "board-1",
		GameID:    "scripted",
		Reason:    match.EndReasonCompleted,
		Winner:    1,
		Ticks:     42,
		Duration:  6 * time.Second,
		StartedAt: time.Now(),
		Players: []match.PlayerResult{
			{ID: 1, Name: "Red", Color: core.ColorRed, Score: 30, Best: 30, Kills: 1, Rank: 1},
			{ID: 2, Name: "Green", Color: core.ColorGreen, Score: 5, Best: 9, Deaths: 1, Rank: 2},
		},
	})
	if err != nil {
		t.Fatalf("SaveMatchResult failed: %v", err)
	}
	return store
}

func boardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb
}

func TestScoreboardViews(t *testing.T) {
	m := NewScoreboardModel(scoreboardStore(t), 100, 30)

	if m.view != viewTopScores || len(m.rows) != 2 {
		t.Fatalf("initial view %v with %d rows, want high scores with 2", m.view, len(m.rows))
	}
	if m.rows[0][1] != "Red" || m.rows[0][2] != "30" {
		t.Errorf("top row = %v", m.rows[0])
	}

	view := m.View()
	for _, want := range []string{"SCOREBOARD - Scripted", "Scripted (1)", "best 30 cells"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.view != viewPlayers || len(m.rows) != 2 {
		t.Fatalf("after right: view %v with %d rows", m.view, len(m.rows))
	}

	m = boardUpdate(t, m, runeKey("v"))
	if m.view != viewRecent || len(m.rows) != 1 {
		t.Fatalf("after v: view %v with %d rows", m.view, len(m.rows))
	}
	if m.rows[0][1] != "Red" || m.rows[0][3] != "completed" {
		t.Errorf("recent row = %v", m.rows[0])
	}

	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.view != viewTopScores {
		t.Errorf("views should wrap, got %v", m.view)
	}
	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.view != viewRecent {
		t.Errorf("left should go back a view, got %v", m.view)
	}

	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back without quitting")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)

	if len(m.rows) != 0 {
		t.Errorf("rows = %d, want 0", len(m.rows))
	}
	if !strings.Contains(m.View(), "No matches recorded yet.") {
		t.Error("empty scoreboard should say so")
	}
}
