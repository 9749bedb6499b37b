package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-territory/internal/games/territory/engine"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var fromYAML TerritoryConfig
	if err := yaml.Unmarshal(defaultTerritoryYAML, &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	want := DefaultTerritoryConfig()
	if fromYAML.Field != want.Field || fromYAML.TickMS != want.TickMS || fromYAML.Rules != want.Rules {
		t.Errorf("embedded = %+v, hardcoded = %+v", fromYAML, want)
	}
	if len(fromYAML.Players) != len(want.Players) {
		t.Fatalf("embedded has %d players, hardcoded %d", len(fromYAML.Players), len(want.Players))
	}
	for i := range want.Players {
		if fromYAML.Players[i].Name != want.Players[i].Name ||
			strings.Join(fromYAML.Players[i].Controls, ",") != strings.Join(want.Players[i].Controls, ",") {
			t.Errorf("player %d: embedded %+v, hardcoded %+v", i, fromYAML.Players[i], want.Players[i])
		}
	}
	if err := want.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadTerritoryFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, source, err := LoadTerritory("")
	if err != nil {
		t.Fatalf("LoadTerritory failed: %v", err)
	}
	if source != SourceEmbedded {
		t.Errorf("source = %q, expected embedded default", source)
	}
	if cfg.TickMS != 140 || cfg.Field.Width != 40 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadTerritoryUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "territory.yaml")
	if err := os.WriteFile(path, []byte("tick_ms: 90\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadTerritory("")
	if err != nil {
		t.Fatalf("LoadTerritory failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.TickMS != 90 {
		t.Errorf("TickMS = %d, expected 90", cfg.TickMS)
	}
}

func TestLoadTerritoryCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
field:
  width: 24
rules:
  respawn: false
players:
  - name: Solo
    colour: yellow
    controls: [h, l, k, j]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadTerritory(path)
	if err != nil {
		t.Fatalf("LoadTerritory failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q", source)
	}
	if cfg.Field.Width != 24 || cfg.Field.Height != 40 || cfg.Field.CellSize != 20 {
		t.Errorf("field = %+v, expected width override only", cfg.Field)
	}
	if cfg.Rules.Respawn {
		t.Error("respawn should be disabled")
	}
	if len(cfg.Players) != 1 || cfg.Players[0].Name != "Solo" {
		t.Errorf("players = %+v, expected the single custom player", cfg.Players)
	}
}

func TestLoadTerritoryCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := LoadTerritory(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("field: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadTerritory(broken); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("tick_ms: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadTerritory(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TerritoryConfig)
		wantErr error
	}{
		{"defaults", func(*TerritoryConfig) {}, nil},
		{"tiny field", func(c *TerritoryConfig) { c.Field.Width = 2 }, ErrInvalidConfig},
		{"zero cell size", func(c *TerritoryConfig) { c.Field.CellSize = 0 }, ErrInvalidConfig},
		{"zero tick", func(c *TerritoryConfig) { c.TickMS = 0 }, ErrInvalidConfig},
		{"huge margin", func(c *TerritoryConfig) { c.Rules.SpawnMargin = 20 }, ErrInvalidConfig},
		{"no players", func(c *TerritoryConfig) { c.Players = nil }, ErrInvalidConfig},
		{"duplicate name", func(c *TerritoryConfig) { c.Players[1].Name = "Red" }, ErrInvalidConfig},
		{"bad colour", func(c *TerritoryConfig) { c.Players[0].Colour = "plaid" }, ErrInvalidConfig},
		{"three controls", func(c *TerritoryConfig) {
			c.Players[0].Controls = []string{"left", "right", "up"}
		}, engine.ErrInvalidControlSet},
		{"shared key", func(c *TerritoryConfig) { c.Players[1].Controls[0] = "left" }, engine.ErrInvalidControlSet},
		{"reserved key", func(c *TerritoryConfig) { c.Players[2].Controls[3] = "q" }, engine.ErrInvalidControlSet},
		{"fixed spawn", func(c *TerritoryConfig) { c.Players[0].Spawn = []int{5, 5} }, nil},
		{"spawn on edge", func(c *TerritoryConfig) { c.Players[0].Spawn = []int{0, 5} }, ErrInvalidConfig},
		{"spawn one coord", func(c *TerritoryConfig) { c.Players[0].Spawn = []int{5} }, ErrInvalidConfig},
		{"overlapping spawns", func(c *TerritoryConfig) {
			c.Players[0].Spawn = []int{5, 5}
			c.Players[1].Spawn = []int{7, 6}
		}, ErrInvalidConfig},
		{"adjacent spawns", func(c *TerritoryConfig) {
			c.Players[0].Spawn = []int{5, 5}
			c.Players[1].Spawn = []int{8, 6}
		}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTerritoryConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			switch {
			case tc.wantErr == nil && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tc.wantErr != nil && !errors.Is(err, tc.wantErr):
				t.Errorf("error = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestOverridesAndModes(t *testing.T) {
	cfg := DefaultTerritoryConfig()
	Overrides{Width: 30, TickMS: 100, Mode: ModeSurvival}.Apply(&cfg)

	if cfg.Field.Width != 30 || cfg.Field.Height != 40 || cfg.TickMS != 100 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Rules.Respawn {
		t.Error("survival mode should disable respawn")
	}

	cfg = DefaultTerritoryConfig()
	Overrides{Mode: ModeTimed}.Apply(&cfg)
	if !cfg.Rules.Respawn || cfg.Rules.MaxTicks != TimedMatchTicks {
		t.Errorf("timed mode rules = %+v", cfg.Rules)
	}

	cfg = DefaultTerritoryConfig()
	Overrides{Mode: ModeEndless, NoRespawn: true}.Apply(&cfg)
	if cfg.Rules.Respawn {
		t.Error("explicit --no-respawn should win over the mode preset")
	}

	if _, err := ParseMode("chaos"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseMode(chaos) error = %v", err)
	}
	if m, err := ParseMode("timed"); err != nil || m != ModeTimed {
		t.Errorf("ParseMode(timed) = %v, %v", m, err)
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultTerritoryConfig()
	ec := cfg.EngineConfig(42)

	if ec.Width != 40 || ec.CellSize != 20 || ec.Seed != 42 || !ec.Respawn {
		t.Errorf("engine config = %+v", ec)
	}
	if len(ec.Players) != 3 {
		t.Fatalf("got %d players", len(ec.Players))
	}
	for i, p := range ec.Players {
		if p.ID != engine.PlayerID(i+1) {
			t.Errorf("player %d has ID %d", i, p.ID)
		}
		if p.Spawn != nil {
			t.Errorf("player %d should spawn randomly", i)
		}
	}

	if _, err := engine.NewSimulation(ec); err != nil {
		t.Errorf("default config does not build a simulation: %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultTerritoryConfig())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "tick_ms: 140") {
		t.Errorf("marshalled YAML missing tick_ms:\n%s", data)
	}
}

func TestEngineConfigFixedSpawn(t *testing.T) {
	cfg := DefaultTerritoryConfig()
	cfg.Players[1].Spawn = []int{10, 12}

	ec := cfg.EngineConfig(1)
	if ec.Players[1].Spawn == nil || *ec.Players[1].Spawn != engine.C(10, 12) {
		t.Errorf("spawn = %v, want (10,12)", ec.Players[1].Spawn)
	}
	if ec.Players[0].Spawn != nil {
		t.Error("unset spawn should stay random")
	}
}
