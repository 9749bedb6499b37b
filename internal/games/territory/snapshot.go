package territory

import (
	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/games/territory/engine"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Engine   engine.Snapshot
	Stats    map[core.PlayerID]core.PlayerStats
	Feed     []string
	Paused   bool
	GameOver bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Stats:    make(map[core.PlayerID]core.PlayerStats, len(g.stats)),
		Feed:     g.Feed(),
		Paused:   g.paused,
		GameOver: g.gameOver,
	}
	for id, st := range g.stats {
		snap.Stats[id] = st
	}
	if g.sim != nil {
		snap.Engine = g.sim.Snapshot()
	}
	return snap
}
