package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-territory/internal/platform/tui"
	"github.com/vovakirdan/tui-territory/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start a hot-seat match on this terminal. Every configured player
shares the keyboard; the default layout gives player one the arrow keys and
player two WASD.

Controls:
  Per-player keys  - Steer
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Ctrl+Y           - Copy the field to the clipboard
  ?                - Show all key bindings
  Esc/Q/Ctrl+C     - Quit

Modes:
  territory           - Endless play with respawn
  territory_survival  - No respawn, last player standing wins
  territory_timed     - Largest territory when time runs out

Examples:
  territory play
  territory play territory_survival
  territory play --width 60 --height 30 --tick-ms 100
  territory play --config ./four-players.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addMatchFlags(playCmd)
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	opts := tui.Options{Logger: logger, Clipboard: true}
	if _, err := tui.Run(game, store, runtimeConfig(cfg, width, height), opts); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}
