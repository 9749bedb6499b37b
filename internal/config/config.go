// Package config provides YAML-based configuration loading and validation
// for the territory game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/games/territory/engine"
)

// ErrInvalidConfig is returned by Validate for any rejected value.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MaxPlayers is the largest number of player slots a field accepts.
const MaxPlayers = 8

// reservedKeys are bound by the platform and cannot drive a player.
var reservedKeys = map[string]bool{
	"p": true, "r": true, "q": true, "esc": true,
	"ctrl+c": true, "ctrl+s": true, "ctrl+y": true, "?": true,
}

// TerritoryConfig contains all configuration for the territory game.
type TerritoryConfig struct {
	Field   FieldConfig    `yaml:"field"`
	TickMS  int            `yaml:"tick_ms"`
	Rules   RulesConfig    `yaml:"rules"`
	Players []PlayerConfig `yaml:"players"`
}

// FieldConfig defines the playing field.
type FieldConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// RulesConfig defines match rules.
type RulesConfig struct {
	Respawn     bool `yaml:"respawn"`
	MaxTicks    int  `yaml:"max_ticks"`
	SpawnMargin int  `yaml:"spawn_margin"`
}

// PlayerConfig defines one player slot.
type PlayerConfig struct {
	Name     string   `yaml:"name"`
	Colour   string   `yaml:"colour"`
	Controls []string `yaml:"controls"`        // left, right, up, down
	Spawn    []int    `yaml:"spawn,omitempty"` // optional [x, y]; random when empty
}

// TickInterval returns the configured tick period.
func (c TerritoryConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Validate checks the configuration and returns the first problem found.
// Control problems also match engine.ErrInvalidControlSet.
func (c TerritoryConfig) Validate() error {
	if c.Field.Width < 3 || c.Field.Height < 3 {
		return fmt.Errorf("%w: field %dx%d is smaller than 3x3", ErrInvalidConfig, c.Field.Width, c.Field.Height)
	}
	if c.Field.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size must be positive, got %d", ErrInvalidConfig, c.Field.CellSize)
	}
	if c.TickMS <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalidConfig, c.TickMS)
	}
	if c.Rules.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks cannot be negative", ErrInvalidConfig)
	}
	if m := max(c.Rules.SpawnMargin, 1); 2*m >= c.Field.Width || 2*m >= c.Field.Height {
		return fmt.Errorf("%w: spawn_margin %d leaves no room on a %dx%d field",
			ErrInvalidConfig, c.Rules.SpawnMargin, c.Field.Width, c.Field.Height)
	}
	if len(c.Players) == 0 || len(c.Players) > MaxPlayers {
		return fmt.Errorf("%w: need 1 to %d players, got %d", ErrInvalidConfig, MaxPlayers, len(c.Players))
	}

	names := make(map[string]bool, len(c.Players))
	keys := make(map[string]string)
	type placed struct {
		name string
		x, y int
	}
	var spawns []placed
	for i, p := range c.Players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: player %d has no name", ErrInvalidConfig, i+1)
		}
		if names[p.Name] {
			return fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfig, p.Name)
		}
		names[p.Name] = true

		if p.Colour != "" {
			if _, ok := core.ParseColor(p.Colour); !ok {
				return fmt.Errorf("%w: player %q has unknown colour %q", ErrInvalidConfig, p.Name, p.Colour)
			}
		}

		if len(p.Spawn) > 0 {
			if len(p.Spawn) != 2 {
				return fmt.Errorf("%w: player %q spawn must be [x, y]", ErrInvalidConfig, p.Name)
			}
			x, y := p.Spawn[0], p.Spawn[1]
			if x < 1 || y < 1 || x > c.Field.Width-2 || y > c.Field.Height-2 {
				return fmt.Errorf("%w: player %q spawn (%d,%d) leaves no room for a 3x3 block",
					ErrInvalidConfig, p.Name, x, y)
			}
			for _, o := range spawns {
				if abs(x-o.x) < 3 && abs(y-o.y) < 3 {
					return fmt.Errorf("%w: spawn blocks of %q and %q overlap",
						ErrInvalidConfig, o.name, p.Name)
				}
			}
			spawns = append(spawns, placed{p.Name, x, y})
		}

		if len(p.Controls) != 4 {
			return fmt.Errorf("%w: player %q has %d controls, need exactly 4",
				engine.ErrInvalidControlSet, p.Name, len(p.Controls))
		}
		for _, k := range p.Controls {
			switch {
			case k == "":
				return fmt.Errorf("%w: player %q has an empty control", engine.ErrInvalidControlSet, p.Name)
			case reservedKeys[k]:
				return fmt.Errorf("%w: key %q is reserved", engine.ErrInvalidControlSet, k)
			case keys[k] != "":
				return fmt.Errorf("%w: key %q bound to both %q and %q",
					engine.ErrInvalidControlSet, k, keys[k], p.Name)
			}
			keys[k] = p.Name
		}
	}

	return nil
}

// PlayerColor resolves the display colour of player i, cycling a palette
// when none is configured.
func (c TerritoryConfig) PlayerColor(i int) core.Color {
	if i >= 0 && i < len(c.Players) {
		if col, ok := core.ParseColor(c.Players[i].Colour); ok && col != core.ColorDefault {
			return col
		}
	}
	palette := []core.Color{
		core.ColorRed, core.ColorGreen, core.ColorBlue, core.ColorYellow,
		core.ColorMagenta, core.ColorCyan, core.ColorOrange, core.ColorWhite,
	}
	return palette[((i%len(palette))+len(palette))%len(palette)]
}

// EngineConfig converts the configuration into simulation parameters.
// Players get IDs 1..n in configuration order.
func (c TerritoryConfig) EngineConfig(seed int64) engine.Config {
	players := make([]engine.AgentSpec, len(c.Players))
	for i, p := range c.Players {
		players[i] = engine.AgentSpec{
			ID:       engine.PlayerID(i + 1),
			Name:     p.Name,
			Colour:   p.Colour,
			Controls: append([]string(nil), p.Controls...),
		}
		if len(p.Spawn) == 2 {
			spawn := engine.C(p.Spawn[0], p.Spawn[1])
			players[i].Spawn = &spawn
		}
	}

	return engine.Config{
		Width:       c.Field.Width,
		Height:      c.Field.Height,
		CellSize:    c.Field.CellSize,
		Players:     players,
		Respawn:     c.Rules.Respawn,
		MaxTicks:    c.Rules.MaxTicks,
		SpawnMargin: c.Rules.SpawnMargin,
		Seed:        seed,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
