package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/match"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testResult(id, gameID string, started time.Time, scores ...int) match.Result {
	names := []string{"Red", "Green", "Blue", "Yellow"}
	players := make([]match.PlayerResult, len(scores))
	winner, best := core.NoPlayer, -1
	for i, s := range scores {
		players[i] = match.PlayerResult{
			ID:    core.PlayerID(i + 1),
			Name:  names[i],
			Color: core.Color(i + 1),
			Score: s,
			Best:  s + 5,
			Kills: i,
			Rank:  i + 1,
		}
		switch {
		case s > best:
			winner, best = core.PlayerID(i+1), s
		case s == best:
			winner = core.NoPlayer
		}
	}
	return match.Result{
		MatchID:   id,
		GameID:    gameID,
		Reason:    match.EndReasonCompleted,
		Winner:    winner,
		Ticks:     300,
		Duration:  42 * time.Second,
		StartedAt: started,
		Players:   players,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadMatch(t *testing.T) {
	store := openTestStore(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	in := testResult("m-1", "territory", started, 120, 80)
	in.Reason = match.EndReasonCancelled
	if err := store.SaveMatchResult(in); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	out, err := store.MatchByID("m-1")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if out == nil {
		t.Fatal("MatchByID() returned nil for a saved match")
	}

	if out.GameID != "territory" || out.Reason != match.EndReasonCancelled {
		t.Errorf("header = %q/%v", out.GameID, out.Reason)
	}
	if out.Winner != 1 || out.Ticks != 300 || out.Duration != 42*time.Second {
		t.Errorf("winner/ticks/duration = %d/%d/%v", out.Winner, out.Ticks, out.Duration)
	}
	if !out.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", out.StartedAt, started)
	}
	if len(out.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(out.Players))
	}
	if p := out.Players[1]; p.Name != "Green" || p.Color != core.ColorGreen || p.Score != 80 || p.Best != 85 || p.Kills != 1 || p.Rank != 2 {
		t.Errorf("second player = %+v", p)
	}
}

func TestStoreMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.MatchByID("nope")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown match, got %+v", got)
	}
}

func TestStoreDuplicateMatchRollsBack(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	if err := store.SaveMatchResult(testResult("dup", "territory", now, 10)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.SaveMatchResult(testResult("dup", "territory", now, 99)); err == nil {
		t.Fatal("expected error saving a duplicate match id")
	}

	high, err := store.HighScore("territory")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 10 {
		t.Errorf("HighScore = %d, duplicate rows leaked", high)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store.SaveMatchResult(testResult("a", "territory", base, 100, 50))
	store.SaveMatchResult(testResult("b", "territory", base.Add(time.Minute), 200, 10))
	store.SaveMatchResult(testResult("c", "territory_timed", base, 500))

	scores, err := store.TopScores("territory", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}
	if scores[0].MatchID != "b" || scores[0].Name != "Red" {
		t.Errorf("top entry = %+v", scores[0])
	}

	timed, _ := store.TopScores("territory_timed", 10)
	if len(timed) != 1 {
		t.Errorf("Expected 1 timed score, got %d", len(timed))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("territory")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveMatchResult(testResult("a", "territory", time.Now(), 100, 300))
	store.SaveMatchResult(testResult("b", "territory", time.Now(), 200))

	high, _ = store.HighScore("territory")
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreRecentMatches(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		game := "territory"
		if i == 1 {
			game = "territory_survival"
		}
		if err := store.SaveMatchResult(testResult(id, game, base.Add(time.Duration(i)*time.Hour), 10, 20)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	all, err := store.RecentMatches("", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(all) != 3 || all[0].MatchID != "third" || all[2].MatchID != "first" {
		t.Errorf("RecentMatches order wrong: %d results", len(all))
	}
	if len(all[0].Players) != 2 {
		t.Errorf("players not loaded: %+v", all[0].Players)
	}

	filtered, _ := store.RecentMatches("territory", 1)
	if len(filtered) != 1 || filtered[0].MatchID != "third" {
		t.Errorf("filtered = %+v", filtered)
	}
}

func TestStoreLeaderboard(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	store.SaveMatchResult(testResult("a", "territory", now, 100, 50)) // Red wins
	store.SaveMatchResult(testResult("b", "territory", now, 30, 60))  // Green wins
	store.SaveMatchResult(testResult("c", "territory", now, 90, 10))  // Red wins
	store.SaveMatchResult(testResult("d", "territory", now, 40, 40))  // tie

	board, err := store.Leaderboard("territory", 10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("got %d records, want 2", len(board))
	}

	red := board[0]
	if red.Name != "Red" || red.Matches != 4 || red.Wins != 2 || red.Best != 105 || red.Total != 260 {
		t.Errorf("Red record = %+v", red)
	}
	if green := board[1]; green.Name != "Green" || green.Wins != 1 || green.Kills != 4 {
		t.Errorf("Green record = %+v", green)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatchResult(testResult("a", "territory", time.Now(), 100))
	store.SaveMatchResult(testResult("b", "territory_timed", time.Now(), 300))

	if err := store.ClearScores("territory"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("territory", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if m, _ := store.MatchByID("a"); m != nil {
		t.Error("cleared match still present")
	}
	if scores, _ := store.TopScores("territory_timed", 10); len(scores) != 1 {
		t.Errorf("other game should not be affected by clearing")
	}
}

func TestStoreGamesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatchResult(testResult("a", "territory", time.Now(), 100, 20))
	store.SaveMatchResult(testResult("b", "territory", time.Now(), 70))
	store.SaveMatchResult(testResult("c", "territory_timed", time.Now(), 5))

	stats, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d games, want 2", len(stats))
	}
	if gs := stats["territory"]; gs.Matches != 2 || gs.HighScore != 100 || gs.AvgTicks != 300 {
		t.Errorf("territory stats = %+v", gs)
	}
}

func TestStoreExpandNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreCancelledMatchesSkipLeaderboards(t *testing.T) {
	store := openTestStore(t)

	done := testResult("done", "territory", time.Now(), 40)
	quit := testResult("quit", "territory", time.Now(), 400)
	quit.Reason = match.EndReasonCancelled
	store.SaveMatchResult(done)
	store.SaveMatchResult(quit)

	if high, _ := store.HighScore("territory"); high != 40 {
		t.Errorf("HighScore = %d, cancelled match counted", high)
	}
	if scores, _ := store.TopScores("territory", 10); len(scores) != 1 {
		t.Errorf("TopScores returned %d entries, want 1", len(scores))
	}
	if recent, _ := store.RecentMatches("territory", 10); len(recent) != 2 {
		t.Errorf("RecentMatches should list cancelled matches too, got %d", len(recent))
	}
}
