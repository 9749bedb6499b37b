package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/storage"
)

// scriptedGame records the input it receives and ends after a set number of
// steps. Restart brings it back.
type scriptedGame struct {
	steps  int
	limit  int
	inputs []core.MultiInputFrame
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) error {
	g.steps = 0
	return nil
}

func (g *scriptedGame) Players() []core.PlayerInfo { return testPlayers() }

func (g *scriptedGame) Step(in core.MultiInputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	if g.over() && in.Has(core.ActionRestart) {
		g.steps = 0
		return core.StepResult{State: g.State()}
	}
	if !g.over() {
		g.steps++
	}
	return core.StepResult{State: g.State(), Tick: uint64(g.steps)}
}

func (g *scriptedGame) over() bool { return g.limit > 0 && g.steps >= g.limit }

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{
		Scores:   map[core.PlayerID]int{1: g.steps, 2: 1},
		Leader:   1,
		GameOver: g.over(),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelRoutesKeysToPlayers(t *testing.T) {
	game := &scriptedGame{}
	m, err := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1}, Options{})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, runeKey("a"))
	m = update(t, m, runeKey("p"))
	m = update(t, m, TickMsg{Loop: m.loop})

	if len(game.inputs) != 1 {
		t.Fatalf("game stepped %d times, want 1", len(game.inputs))
	}
	in := game.inputs[0]
	if !in.Player(1).Has(core.ActionUp) || !in.Player(2).Has(core.ActionLeft) {
		t.Errorf("player input = %+v", in.ByPlayer)
	}
	if !in.Player(core.NoPlayer).Has(core.ActionPause) {
		t.Error("pause not routed to the platform slot")
	}

	m = update(t, m, TickMsg{Loop: m.loop})
	if got := game.inputs[1].Players(); len(got) != 0 {
		t.Errorf("input not cleared between ticks: %v", got)
	}
	if m.View() == "" {
		t.Error("empty view while playing")
	}
}

func TestModelSavesFinishedMatch(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	game := &scriptedGame{limit: 3}
	m, err := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1}, Options{})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	first := m.matchID

	for range 5 {
		m = update(t, m, TickMsg{Loop: m.loop})
	}

	saved, err := store.MatchByID(first)
	if err != nil || saved == nil {
		t.Fatalf("finished match not stored: %v", err)
	}
	if saved.Ticks != 3 || saved.Winner != 1 || len(saved.Players) != 2 {
		t.Errorf("stored result = %+v", saved)
	}

	m = update(t, m, runeKey("r"))
	m = update(t, m, TickMsg{Loop: m.loop})
	if m.matchID == first {
		t.Error("restart should begin a new match")
	}

	m = update(t, m, TickMsg{Loop: m.loop})
	m = update(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	recent, _ := store.RecentMatches("scripted", 10)
	if len(recent) != 2 {
		t.Errorf("got %d stored matches, want the cancelled one too", len(recent))
	}
}

func TestModelBack(t *testing.T) {
	m, err := NewModel(&scriptedGame{}, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}, Options{})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.WentBack() || m.IsQuitting() {
		t.Errorf("back = %v, quitting = %v", m.WentBack(), m.IsQuitting())
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	game := &scriptedGame{}
	m, err := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}, Options{})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	m = update(t, m, TickMsg{Loop: m.loop + 1000})
	if len(game.inputs) != 0 {
		t.Error("tick from another loop stepped the game")
	}
}
