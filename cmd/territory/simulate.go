package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/games/territory"
	"github.com/vovakirdan/tui-territory/internal/match"
	"github.com/vovakirdan/tui-territory/internal/registry"
)

// defaultSimTicks bounds a simulated match whose rules set no tick limit.
const defaultSimTicks = 2000

var (
	flagTurnPct  int
	flagRealtime bool
	flagNoSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [mode]",
	Short: "Run a headless match between bots",
	Long: `Play a whole match without a terminal UI. Every configured player is
driven by a bot that keeps its heading and turns at random.

The match runs as fast as possible unless --realtime is set. Matches whose
rules have no tick limit stop after 2000 ticks. Press Ctrl+C to stop early;
the partial result is printed and stored as cancelled.

Examples:
  territory simulate
  territory simulate territory_survival --seed 42
  territory simulate --max-ticks 500 --turn-pct 20
  territory simulate --log-level debug --no-save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTurnPct, "turn-pct", 10, "Percent of ticks on which a bot turns")
	simulateCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Step at the configured tick period")
	simulateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the result")
	addMatchFlags(simulateCmd)
}

func runSimulate(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, "territory")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if cfg.Rules.MaxTicks == 0 {
		cfg.Rules.MaxTicks = defaultSimTicks
		territory.SetConfig(cfg)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bots := make(map[core.PlayerID]match.Bot, len(cfg.Players))
	for i := range cfg.Players {
		id := core.PlayerID(i + 1)
		bots[id] = match.NewWanderer(seed+int64(id), flagTurnPct)
	}

	opts := match.Options{
		Runtime: core.RuntimeConfig{Seed: seed},
		Bots:    bots,
		Logger:  logger,
	}
	if flagRealtime {
		opts.Runtime.TickInterval = cfg.TickInterval()
	}
	if !flagNoSave {
		if store := openStore(logger); store != nil {
			defer store.Close()
			opts.Saver = store
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := match.NewRunner(game, opts).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	printResult(game.Title(), seed, result)
	return nil
}

func printResult(title string, seed int64, r match.Result) {
	fmt.Printf("%s - %s after %d ticks (seed %d)\n", title, r.Reason, r.Ticks, seed)
	fmt.Println()

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-5s  %s\n", "Rank", "Player", "Score", "Best", "Kills", "Deaths")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-5s  %s\n", "----", "------", "-----", "----", "-----", "------")
	for _, p := range r.Players {
		fmt.Printf("  %-4d  %-10s  %-6d  %-6d  %-5d  %d\n", p.Rank, p.Name, p.Score, p.Best, p.Kills, p.Deaths)
	}

	fmt.Println()
	if name := r.WinnerName(); name != "" {
		fmt.Printf("Winner: %s\n", name)
	} else {
		fmt.Println("Draw")
	}
}
