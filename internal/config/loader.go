package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded names the built-in configuration in load results.
const SourceEmbedded = "embedded default"

// LoadTerritory loads and validates the territory configuration.
// Search order: customPath -> ~/.arcade/configs/territory.yaml -> ./configs/territory.yaml -> embedded default.
// Files only need to set the values they change; everything else keeps its
// default. The returned source names the file that was used.
func LoadTerritory(customPath string) (TerritoryConfig, string, error) {
	cfg, source, err := load(customPath)
	if err != nil {
		return cfg, source, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, source, nil
}

func load(customPath string) (TerritoryConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultTerritoryConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, customPath, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{
		userConfigPath("territory.yaml"),
		filepath.Join("configs", "territory.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := DefaultTerritoryConfig()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultTerritoryConfig()
	if err := yaml.Unmarshal(defaultTerritoryYAML, &cfg); err != nil {
		return DefaultTerritoryConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Marshal renders a configuration as YAML.
func Marshal(cfg TerritoryConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// Overrides holds command-line values that take precedence over the file.
// Zero values leave the loaded configuration untouched.
type Overrides struct {
	Width     int
	Height    int
	TickMS    int
	MaxTicks  int
	NoRespawn bool
	Mode      Mode
}

// Apply writes the overrides into cfg. The mode preset is applied first so
// explicit flags win over it.
func (o Overrides) Apply(cfg *TerritoryConfig) {
	if o.Mode != "" {
		ApplyMode(cfg, o.Mode)
	}
	if o.Width > 0 {
		cfg.Field.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Field.Height = o.Height
	}
	if o.TickMS > 0 {
		cfg.TickMS = o.TickMS
	}
	if o.MaxTicks > 0 {
		cfg.Rules.MaxTicks = o.MaxTicks
	}
	if o.NoRespawn {
		cfg.Rules.Respawn = false
	}
}
