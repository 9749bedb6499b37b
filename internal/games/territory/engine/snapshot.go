package engine

// AgentSnapshot is a read-only copy of one agent's state.
type AgentSnapshot struct {
	ID      PlayerID
	Name    string
	Colour  string
	Head    Cell
	Heading Direction
	Pending Direction
	Trail   []Cell
	State   AgentState
}

// Snapshot is a deep copy of the whole simulation, safe to keep across ticks.
// Two simulations with equal snapshots will evolve identically given the same inputs.
type Snapshot struct {
	Tick     uint64
	Agents   []AgentSnapshot
	Owned    []Ownership // row-major
	Scores   map[PlayerID]int
	GameOver bool
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	agents := make([]AgentSnapshot, 0, len(s.agents))
	for _, a := range s.agents {
		agents = append(agents, AgentSnapshot{
			ID:      a.id,
			Name:    a.name,
			Colour:  a.colour,
			Head:    a.head,
			Heading: a.heading,
			Pending: a.pending,
			Trail:   a.Trail(),
			State:   a.State(),
		})
	}

	return Snapshot{
		Tick:     s.tick,
		Agents:   agents,
		Owned:    s.territory.Entries(),
		Scores:   s.Scores(),
		GameOver: s.GameOver(),
	}
}
