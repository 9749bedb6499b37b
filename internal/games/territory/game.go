// Package territory adapts the territory engine to the arcade platform:
// key actions become engine inputs, engine events become stats and log
// lines, and the field is drawn into the shared screen buffer.
package territory

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-territory/internal/config"
	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/games/territory/engine"
	"github.com/vovakirdan/tui-territory/internal/registry"
)

// Game implements registry.Game for one rule preset.
type Game struct {
	mode config.Mode
	cfg  config.TerritoryConfig
	sim  *engine.Simulation

	players []core.PlayerInfo
	stats   map[core.PlayerID]core.PlayerStats
	feed    []string // newest last

	screenW int
	screenH int
	seed    int64

	gameOver bool
	paused   bool

	logger *log.Logger
}

// Package-level configuration shared by every instance, set once by the CLI
// before games are created.
var (
	settingsMu   sync.RWMutex
	customConfig *config.TerritoryConfig
	gameLogger   = log.New(io.Discard)
)

// SetConfig replaces the configuration used by subsequent Resets.
func SetConfig(cfg config.TerritoryConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	customConfig = &cfg
}

// SetLogger sets the logger for game events. Nil discards them.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	gameLogger = l
}

func currentSettings() (config.TerritoryConfig, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if customConfig != nil {
		return *customConfig, gameLogger
	}
	return config.DefaultTerritoryConfig(), gameLogger
}

// New creates a game that plays with the configured rules as they are.
func New() *Game {
	return &Game{}
}

// NewWithMode creates a game that applies a rule preset on every Reset.
func NewWithMode(m config.Mode) *Game {
	return &Game{mode: m}
}

func init() {
	registry.Register("territory", func() registry.Game {
		return New()
	})
	registry.Register("territory_survival", func() registry.Game {
		return NewWithMode(config.ModeSurvival)
	})
	registry.Register("territory_timed", func() registry.Game {
		return NewWithMode(config.ModeTimed)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case config.ModeSurvival:
		return "territory_survival"
	case config.ModeTimed:
		return "territory_timed"
	default:
		return "territory"
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case config.ModeSurvival:
		return "Territory (Survival)"
	case config.ModeTimed:
		return "Territory (Timed)"
	default:
		return "Territory"
	}
}

// Summary describes the mode's rules in one line.
func (g *Game) Summary() string {
	switch g.mode {
	case config.ModeSurvival:
		return "No respawn. Last player standing wins."
	case config.ModeTimed:
		return "Respawn on. Largest territory when time runs out."
	default:
		return "Rules from your config. Respawn on by default."
	}
}

// Reset builds a fresh simulation from the current configuration.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	tc, logger := currentSettings()
	if g.mode != "" {
		config.ApplyMode(&tc, g.mode)
	}
	if err := tc.Validate(); err != nil {
		return err
	}

	sim, err := engine.NewSimulation(tc.EngineConfig(cfg.Seed))
	if err != nil {
		return fmt.Errorf("territory: %w", err)
	}

	g.cfg = tc
	g.sim = sim
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.paused = false
	g.feed = g.feed[:0]
	g.logger = logger.With("game", g.ID())

	g.players = make([]core.PlayerInfo, len(tc.Players))
	g.stats = make(map[core.PlayerID]core.PlayerStats, len(tc.Players))
	for i, p := range tc.Players {
		id := core.PlayerID(i + 1)
		info := core.PlayerInfo{ID: id, Name: p.Name, Color: tc.PlayerColor(i)}
		copy(info.Keys[:], p.Controls)
		g.players[i] = info
		g.stats[id] = core.PlayerStats{Best: sim.Score(engine.PlayerID(id))}
	}

	g.logger.Debug("match reset",
		"field", fmt.Sprintf("%dx%d", tc.Field.Width, tc.Field.Height),
		"players", len(tc.Players),
		"respawn", tc.Rules.Respawn,
		"max_ticks", tc.Rules.MaxTicks,
		"seed", cfg.Seed,
	)
	return nil
}

// Players lists the player slots in configuration order.
func (g *Game) Players() []core.PlayerInfo {
	players := make([]core.PlayerInfo, len(g.players))
	copy(players, g.players)
	return players
}

// Step applies one tick of input and advances the simulation.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) && g.gameOver {
		if err := g.Reset(core.RuntimeConfig{
			ScreenW: g.screenW,
			ScreenH: g.screenH,
			Seed:    g.seed + 1,
		}); err != nil {
			g.logger.Error("restart failed", "error", err)
		}
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return g.result()
	}

	for _, info := range g.players {
		for _, a := range in.Player(info.ID).Directions() {
			g.sim.Input(engine.PlayerID(info.ID), toDirection(a))
		}
	}

	res := g.sim.Step()
	g.record(res)
	g.gameOver = res.GameOver

	if g.gameOver {
		g.logger.Info("match over",
			"tick", res.Tick,
			"leader", g.playerName(g.sim.Leader()),
		)
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	var tick uint64
	if g.sim != nil {
		tick = g.sim.Tick()
	}
	return core.StepResult{State: g.State(), Tick: tick}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	state := core.GameState{
		Scores:   make(map[core.PlayerID]int, len(g.players)),
		Stats:    make(map[core.PlayerID]core.PlayerStats, len(g.players)),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
	if g.sim == nil {
		return state
	}

	for id, score := range g.sim.Scores() {
		state.Scores[core.PlayerID(id)] = score
	}
	for id, st := range g.stats {
		state.Stats[id] = st
	}
	state.Leader = core.PlayerID(g.sim.Leader())
	return state
}

// Config returns the configuration of the running match.
func (g *Game) Config() config.TerritoryConfig {
	return g.cfg
}

// Feed returns the most recent event messages, oldest first.
func (g *Game) Feed() []string {
	return append([]string(nil), g.feed...)
}

func (g *Game) playerName(id engine.PlayerID) string {
	for _, p := range g.players {
		if p.ID == core.PlayerID(id) {
			return p.Name
		}
	}
	return "nobody"
}

func (g *Game) playerInfo(id engine.PlayerID) (core.PlayerInfo, bool) {
	for _, p := range g.players {
		if p.ID == core.PlayerID(id) {
			return p, true
		}
	}
	return core.PlayerInfo{}, false
}

func toDirection(a core.Action) engine.Direction {
	switch a {
	case core.ActionLeft:
		return engine.DirLeft
	case core.ActionRight:
		return engine.DirRight
	case core.ActionUp:
		return engine.DirUp
	case core.ActionDown:
		return engine.DirDown
	default:
		return engine.DirNone
	}
}
