package config

import (
	_ "embed"
)

//go:embed defaults/territory.yaml
var defaultTerritoryYAML []byte

// DefaultTerritoryConfig returns the built-in configuration: a 40x40 field,
// 140 ms ticks, endless respawn and three players on one keyboard.
func DefaultTerritoryConfig() TerritoryConfig {
	return TerritoryConfig{
		Field: FieldConfig{
			Width:    40,
			Height:   40,
			CellSize: 20,
		},
		TickMS: 140,
		Rules: RulesConfig{
			Respawn:     true,
			MaxTicks:    0,
			SpawnMargin: 1,
		},
		Players: []PlayerConfig{
			{Name: "Red", Colour: "red", Controls: []string{"left", "right", "up", "down"}},
			{Name: "Green", Colour: "green", Controls: []string{"a", "d", "w", "s"}},
			{Name: "Blue", Colour: "blue", Controls: []string{"j", "l", "i", "k"}},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "territory", "territory_survival", "territory_timed":
		return defaultTerritoryYAML
	default:
		return nil
	}
}
