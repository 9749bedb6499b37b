package engine_test

import (
	"testing"

	"github.com/vovakirdan/tui-territory/internal/games/territory/engine"
)

func TestTerritoryClaimAndOwner(t *testing.T) {
	tm := engine.NewTerritoryMap()
	cells := []engine.Cell{engine.C(1, 1), engine.C(2, 1), engine.C(1, 2)}
	tm.Claim(cells, 1)

	for _, c := range cells {
		if !tm.IsOwnedBy(c, 1) {
			t.Errorf("%v should belong to player 1", c)
		}
	}
	if _, ok := tm.Owner(engine.C(5, 5)); ok {
		t.Error("unclaimed cell should be neutral")
	}

	owned := tm.OwnedCellsOf(1)
	if owned.Len() != len(cells) {
		t.Errorf("OwnedCellsOf returned %d cells, expected %d", owned.Len(), len(cells))
	}
}

func TestTerritoryClaimIsIdempotent(t *testing.T) {
	tm := engine.NewTerritoryMap()
	cells := []engine.Cell{engine.C(0, 0), engine.C(1, 0)}
	tm.Claim(cells, 2)
	snapshot := tm.Clone()
	tm.Claim(cells, 2)

	if !tm.Equal(snapshot) {
		t.Error("claiming the same cells twice changed the map")
	}
}

func TestTerritoryClaimOverwrites(t *testing.T) {
	tm := engine.NewTerritoryMap()
	tm.Claim([]engine.Cell{engine.C(3, 3)}, 1)
	tm.Claim([]engine.Cell{engine.C(3, 3)}, 2)

	if owner, _ := tm.Owner(engine.C(3, 3)); owner != 2 {
		t.Errorf("owner = %d, expected 2", owner)
	}
	if tm.Score(1) != 0 {
		t.Errorf("player 1 score = %d, expected 0", tm.Score(1))
	}
}

func TestTerritoryReleaseLeavesOthers(t *testing.T) {
	tm := engine.NewTerritoryMap()
	tm.Claim([]engine.Cell{engine.C(0, 0), engine.C(1, 0)}, 1)
	tm.Claim([]engine.Cell{engine.C(5, 5)}, 2)

	if n := tm.Release(1); n != 2 {
		t.Errorf("Release returned %d, expected 2", n)
	}
	if tm.Score(1) != 0 {
		t.Error("player 1 should own nothing after release")
	}
	if !tm.IsOwnedBy(engine.C(5, 5), 2) {
		t.Error("player 2 territory should be untouched")
	}
	if tm.Len() != 1 {
		t.Errorf("Len = %d, expected 1", tm.Len())
	}
}

func TestTerritoryEntriesRowMajor(t *testing.T) {
	tm := engine.NewTerritoryMap()
	tm.Claim([]engine.Cell{engine.C(2, 1), engine.C(0, 1)}, 1)
	tm.Claim([]engine.Cell{engine.C(3, 0)}, 2)

	entries := tm.Entries()
	expected := []engine.Ownership{
		{Cell: engine.C(3, 0), Owner: 2},
		{Cell: engine.C(0, 1), Owner: 1},
		{Cell: engine.C(2, 1), Owner: 1},
	}
	if len(entries) != len(expected) {
		t.Fatalf("got %d entries, expected %d", len(entries), len(expected))
	}
	for i := range expected {
		if entries[i] != expected[i] {
			t.Errorf("entry %d = %v, expected %v", i, entries[i], expected[i])
		}
	}

	scores := tm.Scores()
	if scores[1] != 2 || scores[2] != 1 {
		t.Errorf("Scores = %v", scores)
	}
}
