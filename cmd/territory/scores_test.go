package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/match"
	"github.com/vovakirdan/tui-territory/internal/storage"
)

func TestScoresClear(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	for _, gameID := range []string{"territory", "territory_timed"} {
		err := store.SaveMatchResult(match.Result{
			MatchID:   gameID + "-1",
			GameID:    gameID,
			Reason:    match.EndReasonCompleted,
			Winner:    1,
			Ticks:     120,
			StartedAt: time.Now(),
			Players:   []match.PlayerResult{{ID: 1, Name: "Red", Color: core.ColorRed, Score: 40, Rank: 1}},
		})
		if err != nil {
			t.Fatalf("SaveMatchResult(%s) failed: %v", gameID, err)
		}
	}
	store.Close()

	prevDB := flagDBPath
	flagDBPath, flagClear = dbPath, true
	t.Cleanup(func() { flagDBPath, flagClear = prevDB, false })

	if err := runScores(nil, []string{"territory_timed"}); err != nil {
		t.Fatalf("runScores() error = %v", err)
	}

	store, err = storage.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if scores, _ := store.TopScores("territory_timed", 10); len(scores) != 0 {
		t.Errorf("territory_timed still has %d scores", len(scores))
	}
	if scores, _ := store.TopScores("territory", 10); len(scores) != 1 {
		t.Errorf("territory has %d scores, want 1", len(scores))
	}
}
