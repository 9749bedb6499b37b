package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Wall-clock time between simulation ticks
	Seed         int64         // RNG seed for deterministic gameplay
}

// DefaultTickInterval is the simulation period used when none is configured.
const DefaultTickInterval = 140 * time.Millisecond

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: DefaultTickInterval,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// GameState represents the current game state.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Scores   map[PlayerID]int // Owned cells per player
	Stats    map[PlayerID]PlayerStats
	Leader   PlayerID // NoPlayer while tied
	GameOver bool
	Paused   bool
}

// PlayerStats counts notable events for one player over a match.
type PlayerStats struct {
	Kills    int // other players eliminated
	Deaths   int // times eliminated, self-collisions included
	Closures int // loops closed back into own territory
	Best     int // largest territory held at any tick
}

// Score returns the score of the given player.
func (s GameState) Score(id PlayerID) int {
	return s.Scores[id]
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Tick  uint64
}

// PlayerInfo describes a player slot to the platform: how to draw it and
// which keys drive it.
type PlayerInfo struct {
	ID    PlayerID
	Name  string
	Color Color
	Keys  [4]string // left, right, up, down
}
