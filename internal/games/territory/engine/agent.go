package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidControlSet is returned when an agent is configured with fewer
// than four directional controls.
var ErrInvalidControlSet = errors.New("engine: invalid control set")

// AgentState is the phase of the per-agent state machine.
type AgentState int

const (
	StateIdle       AgentState = iota // no heading, not drawing
	StateRoaming                      // heading set, inside own territory
	StateDrawing                      // outside own territory, trail active
	StateEliminated                   // terminal
)

// String returns a human-readable name for the state.
func (s AgentState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRoaming:
		return "roaming"
	case StateDrawing:
		return "drawing"
	case StateEliminated:
		return "eliminated"
	default:
		return "unknown"
	}
}

// Controls names the four input bindings of an agent, in left, right, up,
// down order. The engine never interprets them; they are carried so the
// input layer can map key events to (PlayerID, Direction).
type Controls [4]string

// Direction returns the direction bound to key, or DirNone.
func (c Controls) Direction(key string) Direction {
	for i, k := range c {
		if k == key {
			return neighbourOrder[i]
		}
	}
	return DirNone
}

// AgentSpec describes a player at construction time.
type AgentSpec struct {
	ID       PlayerID
	Name     string
	Colour   string
	Controls []string
	Spawn    *Cell // nil picks a random spawn cell
}

// Agent is one player's marker on the field.
type Agent struct {
	id       PlayerID
	name     string
	colour   string
	controls Controls

	head    Cell
	heading Direction
	pending Direction
	last    Direction // direction of the last completed move
	trail   []Cell    // most recent first
	drawing bool
	alive   bool
}

// NewAgent creates a live, idle agent at spawn.
func NewAgent(spec AgentSpec, spawn Cell) (*Agent, error) {
	if len(spec.Controls) < len(Controls{}) {
		return nil, fmt.Errorf("%w: player %q has %d controls, need 4",
			ErrInvalidControlSet, spec.Name, len(spec.Controls))
	}
	var controls Controls
	for i := range controls {
		if spec.Controls[i] == "" {
			return nil, fmt.Errorf("%w: player %q has an empty %s control",
				ErrInvalidControlSet, spec.Name, neighbourOrder[i])
		}
		controls[i] = spec.Controls[i]
	}

	return &Agent{
		id:       spec.ID,
		name:     spec.Name,
		colour:   spec.Colour,
		controls: controls,
		head:     spawn,
		alive:    true,
	}, nil
}

// ID returns the player identifier.
func (a *Agent) ID() PlayerID { return a.id }

// Name returns the display name.
func (a *Agent) Name() string { return a.name }

// Colour returns the colour label.
func (a *Agent) Colour() string { return a.colour }

// Controls returns the input bindings.
func (a *Agent) Controls() Controls { return a.controls }

// Head returns the current cell.
func (a *Agent) Head() Cell { return a.head }

// Heading returns the direction used for the next move.
func (a *Agent) Heading() Direction { return a.heading }

// Pending returns the latched direction that becomes the heading after the next move.
func (a *Agent) Pending() Direction { return a.pending }

// IsDrawing reports whether the agent is outside its territory laying a trail.
func (a *Agent) IsDrawing() bool { return a.drawing }

// Alive reports whether the agent is still in play.
func (a *Agent) Alive() bool { return a.alive }

// Trail returns a copy of the trail, most recent cell first.
func (a *Agent) Trail() []Cell {
	trail := make([]Cell, len(a.trail))
	copy(trail, a.trail)
	return trail
}

// OnTrail reports whether c is part of the trail.
func (a *Agent) OnTrail(c Cell) bool {
	for _, t := range a.trail {
		if t == c {
			return true
		}
	}
	return false
}

// State derives the state machine phase from the agent's fields.
func (a *Agent) State() AgentState {
	switch {
	case !a.alive:
		return StateEliminated
	case a.drawing:
		return StateDrawing
	case a.heading == DirNone && a.pending == DirNone:
		return StateIdle
	default:
		return StateRoaming
	}
}

// Latch records a directional intent for the next tick.
// Reversing onto the trail while drawing is ignored. When a wall hit has
// cleared the heading, the last completed move is the one that cannot be reversed.
func (a *Agent) Latch(d Direction) {
	if !a.alive || d == DirNone {
		return
	}
	ref := a.heading
	if ref == DirNone {
		ref = a.last
	}
	if a.drawing && d == ref.Opposite() {
		return
	}
	a.pending = d
}

// active reports whether the agent has anything to do this tick.
func (a *Agent) active() bool {
	return a.alive && (a.heading != DirNone || a.pending != DirNone)
}

// advance moves the head one cell along the heading, recording the vacated
// cell at the front of the trail. A move that would leave the w x h field
// is undone and cancels both the heading and the latched intent.
// Returns true when the move was blocked by the field edge.
func (a *Agent) advance(w, h int) bool {
	if a.heading == DirNone {
		return false
	}

	a.trail = append([]Cell{a.head}, a.trail...)
	next := a.head.Step(a.heading)

	if next.X < 0 || next.X >= w || next.Y < 0 || next.Y >= h {
		a.trail = a.trail[1:]
		a.heading = DirNone
		a.pending = DirNone
		return true
	}

	a.head = next
	a.last = a.heading
	return false
}

// trim keeps at most one trailing cell while the agent is not drawing.
func (a *Agent) trim() {
	if !a.drawing && len(a.trail) > 1 {
		a.trail = a.trail[:1]
	}
}

// commit makes the latched intent the heading for the next move.
func (a *Agent) commit() {
	a.heading = a.pending
}

// eliminate marks the agent out of play.
func (a *Agent) eliminate() {
	a.alive = false
	a.drawing = false
	a.heading = DirNone
	a.pending = DirNone
	a.last = DirNone
	a.trail = nil
}
