package match

import (
	"math/rand"

	"github.com/vovakirdan/tui-territory/internal/core"
)

// Bot produces one action per tick for a player.
type Bot interface {
	Next(tick uint64) core.Action
}

// Wanderer is a bot that keeps its heading and turns at random.
// Turns are always perpendicular, so it never tries to reverse onto its trail.
type Wanderer struct {
	rng     *rand.Rand
	heading core.Action
	turnPct int
}

// NewWanderer creates a wanderer that turns on roughly turnPct percent of ticks.
func NewWanderer(seed int64, turnPct int) *Wanderer {
	return &Wanderer{
		rng:     rand.New(rand.NewSource(seed)),
		turnPct: core.Clamp(turnPct, 0, 100),
	}
}

// Next returns the bot's action for the tick.
func (w *Wanderer) Next(uint64) core.Action {
	if w.heading == core.ActionNone {
		w.heading = core.ActionLeft + core.Action(w.rng.Intn(4))
		return w.heading
	}
	if w.rng.Intn(100) >= w.turnPct {
		return core.ActionNone
	}

	var options [2]core.Action
	if w.heading == core.ActionLeft || w.heading == core.ActionRight {
		options = [2]core.Action{core.ActionUp, core.ActionDown}
	} else {
		options = [2]core.Action{core.ActionLeft, core.ActionRight}
	}
	w.heading = options[w.rng.Intn(2)]
	return w.heading
}
