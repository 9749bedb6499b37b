package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrInvalidField is returned for field dimensions the simulation cannot host.
var ErrInvalidField = errors.New("engine: invalid field")

// Config describes a simulation at construction time.
type Config struct {
	Width       int // field width in cells
	Height      int // field height in cells
	CellSize    int // world units per cell, used by the geometry kernel
	Players     []AgentSpec
	Respawn     bool  // eliminated players come back with a fresh block
	MaxTicks    int   // 0 means unlimited
	SpawnMargin int   // minimum distance of a spawn cell from the field edge
	Seed        int64 // RNG seed for spawn positions
}

// ClosureEvent records a trail that reconnected with owned ground.
type ClosureEvent struct {
	Player    PlayerID
	TrailLen  int
	Gained    int  // owned cells added by the closure
	PathFound bool // false when the outline was built from the trail alone
}

// EliminationEvent records a player removed from play.
type EliminationEvent struct {
	Player   PlayerID
	By       PlayerID // equal to Player for self-collision
	Released int      // territory cells that became neutral
}

// RespawnEvent records an eliminated player put back into play.
type RespawnEvent struct {
	Player PlayerID
	Spawn  Cell
}

// StepResult contains what happened during one tick.
type StepResult struct {
	Tick         uint64
	Blocked      []PlayerID // moves stopped by the field edge
	Closures     []ClosureEvent
	Eliminations []EliminationEvent
	Respawns     []RespawnEvent
	GameOver     bool
}

// Simulation owns the territory map and every agent.
// It is not safe for concurrent use; drive it from one goroutine.
type Simulation struct {
	cfg       Config
	rng       *rand.Rand
	tick      uint64
	territory *TerritoryMap
	agents    []*Agent // iteration order is player order
	specs     map[PlayerID]AgentSpec
	started   int
}

// NewSimulation validates cfg, spawns every player and seeds their 3x3 blocks.
func NewSimulation(cfg Config) (*Simulation, error) {
	if cfg.Width < 3 || cfg.Height < 3 {
		return nil, fmt.Errorf("%w: %dx%d, need at least 3x3", ErrInvalidField, cfg.Width, cfg.Height)
	}
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidField, cfg.CellSize)
	}
	if cfg.SpawnMargin < 1 {
		cfg.SpawnMargin = 1
	}
	if 2*cfg.SpawnMargin >= cfg.Width || 2*cfg.SpawnMargin >= cfg.Height {
		return nil, fmt.Errorf("%w: spawn margin %d leaves no room in %dx%d",
			ErrInvalidField, cfg.SpawnMargin, cfg.Width, cfg.Height)
	}

	s := &Simulation{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		territory: NewTerritoryMap(),
		specs:     make(map[PlayerID]AgentSpec, len(cfg.Players)),
	}

	for _, spec := range cfg.Players {
		if spec.ID == NoPlayer {
			return nil, fmt.Errorf("engine: player %q has reserved id 0", spec.Name)
		}
		if _, dup := s.specs[spec.ID]; dup {
			return nil, fmt.Errorf("engine: duplicate player id %d", spec.ID)
		}
		spawn := s.pickSpawn(spec)
		agent, err := NewAgent(spec, spawn)
		if err != nil {
			return nil, err
		}
		s.specs[spec.ID] = spec
		s.agents = append(s.agents, agent)
		s.territory.Claim(spawnBlock(spawn), spec.ID)
	}
	s.started = len(s.agents)

	return s, nil
}

// pickSpawn returns the configured spawn or a random cell whose 3x3 block
// fits inside the field, preferring neutral ground.
func (s *Simulation) pickSpawn(spec AgentSpec) Cell {
	if spec.Spawn != nil {
		return *spec.Spawn
	}

	m := s.cfg.SpawnMargin
	spanX := s.cfg.Width - 2*m
	spanY := s.cfg.Height - 2*m

	var c Cell
	for range 32 {
		c = C(m+s.rng.Intn(spanX), m+s.rng.Intn(spanY))
		free := true
		for _, b := range spawnBlock(c) {
			if _, owned := s.territory.Owner(b); owned {
				free = false
				break
			}
		}
		if free {
			break
		}
	}
	return c
}

// Input latches a directional intent for a live player.
// Returns false when the player is unknown or eliminated.
func (s *Simulation) Input(id PlayerID, d Direction) bool {
	a := s.Agent(id)
	if a == nil {
		return false
	}
	a.Latch(d)
	return true
}

// Step advances the simulation by one tick.
//
// Agents move in player order; each agent's territory test runs right after
// its own move, so a closure by one agent is visible to the next. Collisions
// are then evaluated against the post-move state of all agents and applied
// together, so the outcome does not depend on iteration order.
func (s *Simulation) Step() StepResult {
	result := StepResult{Tick: s.tick}
	if s.GameOver() {
		result.GameOver = true
		return result
	}

	for _, a := range s.agents {
		if !a.active() {
			continue
		}
		if a.advance(s.cfg.Width, s.cfg.Height) {
			result.Blocked = append(result.Blocked, a.id)
		}
		a.trim()
		a.commit()
		if ev, closed := s.resolveTerritory(a); closed {
			result.Closures = append(result.Closures, ev)
		}
	}

	result.Eliminations = s.resolveCollisions()
	if s.cfg.Respawn {
		for _, ev := range result.Eliminations {
			result.Respawns = append(result.Respawns, s.respawn(ev.Player))
		}
	}

	s.tick++
	result.Tick = s.tick
	result.GameOver = s.GameOver()
	return result
}

// resolveTerritory runs the territory test for a after it has moved.
func (s *Simulation) resolveTerritory(a *Agent) (ClosureEvent, bool) {
	owned := s.territory.OwnedCellsOf(a.id)
	if !owned.Has(a.head) {
		a.drawing = true
		return ClosureEvent{}, false
	}
	if !a.drawing {
		return ClosureEvent{}, false
	}

	before := owned.Len()
	ev := ClosureEvent{Player: a.id, TrailLen: len(a.trail)}

	if len(a.trail) > 0 {
		s.territory.Claim(a.trail, a.id)

		// Closure searches the territory as it was before the trail was absorbed.
		path, err := ShortestPath(owned, a.head, a.trail[len(a.trail)-1])
		ev.PathFound = err == nil

		outline := make([]Cell, 0, len(path)+len(a.trail))
		outline = append(outline, path...)
		for i := len(a.trail) - 1; i >= 0; i-- {
			outline = append(outline, a.trail[i])
		}

		interior := CellsInPolygon(Outline(outline, s.cfg.CellSize), s.cfg.CellSize)
		s.territory.Claim(interior, a.id)
	}

	a.trail = nil
	a.drawing = false
	ev.Gained = s.territory.Score(a.id) - before
	return ev, true
}

// resolveCollisions finds every elimination against the current snapshot of
// heads and trails, then applies them all at once.
func (s *Simulation) resolveCollisions() []EliminationEvent {
	killers := make(map[PlayerID]PlayerID)

	for _, a := range s.agents {
		for _, b := range s.agents {
			if a == b || !b.drawing {
				continue
			}
			if _, marked := killers[b.id]; !marked && b.OnTrail(a.head) {
				killers[b.id] = a.id
			}
		}
		if a.OnTrail(a.head) {
			killers[a.id] = a.id
		}
	}

	if len(killers) == 0 {
		return nil
	}

	ids := make([]PlayerID, 0, len(killers))
	for id := range killers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	events := make([]EliminationEvent, 0, len(ids))
	for _, id := range ids {
		a := s.Agent(id)
		a.eliminate()
		events = append(events, EliminationEvent{
			Player:   id,
			By:       killers[id],
			Released: s.territory.Release(id),
		})
	}

	remaining := s.agents[:0]
	for _, a := range s.agents {
		if a.alive {
			remaining = append(remaining, a)
		}
	}
	s.agents = remaining

	return events
}

// respawn puts an eliminated player back with a fresh block.
func (s *Simulation) respawn(id PlayerID) RespawnEvent {
	spec := s.specs[id]
	spec.Spawn = nil
	spawn := s.pickSpawn(spec)

	// Controls were validated when the player first joined.
	agent, _ := NewAgent(spec, spawn)
	s.territory.Claim(spawnBlock(spawn), id)

	idx := sort.Search(len(s.agents), func(i int) bool { return s.agents[i].id > id })
	s.agents = append(s.agents, nil)
	copy(s.agents[idx+1:], s.agents[idx:])
	s.agents[idx] = agent

	return RespawnEvent{Player: id, Spawn: spawn}
}

// Agent returns the live agent for id, or nil.
func (s *Simulation) Agent(id PlayerID) *Agent {
	for _, a := range s.agents {
		if a.id == id {
			return a
		}
	}
	return nil
}

// Agents returns the live agents in player order.
func (s *Simulation) Agents() []*Agent {
	agents := make([]*Agent, len(s.agents))
	copy(agents, s.agents)
	return agents
}

// Players returns every configured player in configuration order,
// including eliminated ones.
func (s *Simulation) Players() []AgentSpec {
	players := make([]AgentSpec, len(s.cfg.Players))
	copy(players, s.cfg.Players)
	return players
}

// Territory exposes the ownership map for reading.
func (s *Simulation) Territory() *TerritoryMap {
	return s.territory
}

// Score returns the number of cells owned by id.
func (s *Simulation) Score(id PlayerID) int {
	return s.territory.Score(id)
}

// Scores returns the score of every configured player, eliminated ones included.
func (s *Simulation) Scores() map[PlayerID]int {
	owned := s.territory.Scores()
	scores := make(map[PlayerID]int, len(s.cfg.Players))
	for _, p := range s.cfg.Players {
		scores[p.ID] = owned[p.ID]
	}
	return scores
}

// Leader returns the player with the most cells, or NoPlayer on a tie.
func (s *Simulation) Leader() PlayerID {
	best, bestScore, tied := NoPlayer, -1, false
	for _, p := range s.cfg.Players {
		score := s.territory.Score(p.ID)
		switch {
		case score > bestScore:
			best, bestScore, tied = p.ID, score, false
		case score == bestScore:
			tied = true
		}
	}
	if tied {
		return NoPlayer
	}
	return best
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Size returns the field dimensions in cells.
func (s *Simulation) Size() (w, h int) {
	return s.cfg.Width, s.cfg.Height
}

// GameOver reports whether the match has ended: everyone is out, the last
// player standing remains without respawn, or the tick limit was reached.
func (s *Simulation) GameOver() bool {
	if s.cfg.MaxTicks > 0 && s.tick >= uint64(s.cfg.MaxTicks) { //nolint:gosec // MaxTicks checked positive
		return true
	}
	if len(s.agents) == 0 {
		return s.started > 0
	}
	return !s.cfg.Respawn && s.started >= 2 && len(s.agents) <= 1
}
