package config

import "fmt"

// Mode is a named rule preset.
type Mode string

const (
	ModeEndless  Mode = "endless"  // respawn forever, no tick limit
	ModeSurvival Mode = "survival" // no respawn, last player standing wins
	ModeTimed    Mode = "timed"    // respawn, largest territory when time runs out
)

// TimedMatchTicks is the length of a timed match when the file sets no limit.
// At the default 140 ms tick this is three and a half minutes.
const TimedMatchTicks = 1500

// ParseMode validates a mode name. An empty name is accepted and means
// "keep the file's rules".
func ParseMode(name string) (Mode, error) {
	switch m := Mode(name); m {
	case "", ModeEndless, ModeSurvival, ModeTimed:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q (want endless, survival or timed)", ErrInvalidConfig, name)
	}
}

// ApplyMode modifies the rules for a preset.
func ApplyMode(cfg *TerritoryConfig, m Mode) {
	switch m {
	case ModeEndless:
		cfg.Rules.Respawn = true
		cfg.Rules.MaxTicks = 0
	case ModeSurvival:
		cfg.Rules.Respawn = false
	case ModeTimed:
		cfg.Rules.Respawn = true
		if cfg.Rules.MaxTicks == 0 {
			cfg.Rules.MaxTicks = TimedMatchTicks
		}
	}
}
