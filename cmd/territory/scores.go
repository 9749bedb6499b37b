package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-territory/internal/registry"
	"github.com/vovakirdan/tui-territory/internal/storage"
)

var (
	flagScoresLimit int
	flagPlayers     bool
	flagRecent      bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the best final territories for the specified mode.
Only completed matches count; quit or interrupted matches appear in --recent.

Examples:
  territory scores
  territory scores territory_timed
  territory scores --players
  territory scores --recent --limit 20
  territory scores --clear territory_timed`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagPlayers, "players", false, "Show per-player records instead")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent matches instead")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded match for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all matches for %s.\n", game.Title())
		return nil
	case flagPlayers:
		return printLeaderboard(store, gameID, game.Title())
	case flagRecent:
		return printRecent(store, gameID, game.Title())
	default:
		return printTopScores(store, gameID, game.Title())
	}
}

func printTopScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'territory play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-5s  %s\n", "Rank", "Player", "Score", "Kills", "Place", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-5s  %s\n", "----", "------", "-----", "-----", "-----", "----")
	for i, e := range scores {
		dateStr := e.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %-6d  %-5d  %-5d  %s\n", i+1, e.Name, e.Score, e.Kills, e.Rank, dateStr)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	return nil
}

func printLeaderboard(store *storage.Store, gameID, title string) error {
	records, err := store.Leaderboard(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve players: %w", err)
	}

	fmt.Printf("Players - %s\n", title)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No completed matches yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-7s  %-4s  %-6s  %-8s  %-5s  %s\n", "Player", "Matches", "Wins", "Best", "Total", "Kills", "Deaths")
	fmt.Printf("  %-10s  %-7s  %-4s  %-6s  %-8s  %-5s  %s\n", "------", "-------", "----", "----", "-----", "-----", "------")
	for _, r := range records {
		fmt.Printf("  %-10s  %-7d  %-4d  %-6d  %-8d  %-5d  %d\n", r.Name, r.Matches, r.Wins, r.Best, r.Total, r.Kills, r.Deaths)
	}
	return nil
}

func printRecent(store *storage.Store, gameID, title string) error {
	matches, err := store.RecentMatches(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve matches: %w", err)
	}

	fmt.Printf("Recent Matches - %s\n", title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-9s  %-10s  %-6s  %s\n", "Date", "End", "Winner", "Ticks", "ID")
	fmt.Printf("  %-16s  %-9s  %-10s  %-6s  %s\n", "----", "---", "------", "-----", "--")
	for _, m := range matches {
		winner := m.WinnerName()
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("  %-16s  %-9s  %-10s  %-6d  %s\n",
			m.StartedAt.Local().Format("2006-01-02 15:04"), m.Reason, winner, m.Ticks, shortID(m.MatchID))
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
