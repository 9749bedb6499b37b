package engine_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-territory/internal/games/territory/engine"
)

func block(w, h int) engine.CellSet {
	s := engine.NewCellSet()
	for y := range h {
		for x := range w {
			s.Add(engine.C(x, y))
		}
	}
	return s
}

func TestShortestPathCornerToCorner(t *testing.T) {
	path, err := engine.ShortestPath(block(3, 3), engine.C(0, 0), engine.C(2, 2))
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}

	// Neighbours expand left, right, up, down, so the path hugs the top row.
	expected := []engine.Cell{
		engine.C(0, 0), engine.C(1, 0), engine.C(2, 0), engine.C(2, 1), engine.C(2, 2),
	}
	if !reflect.DeepEqual(path, expected) {
		t.Errorf("path = %v, expected %v", path, expected)
	}
}

func TestShortestPathStepsAreAdjacent(t *testing.T) {
	allowed := block(6, 4)
	path, err := engine.ShortestPath(allowed, engine.C(5, 0), engine.C(0, 3))
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if len(path) != 9 {
		t.Errorf("expected 9 cells, got %d", len(path))
	}
	for i := 1; i < len(path); i++ {
		if path[i-1].Manhattan(path[i]) != 1 {
			t.Errorf("step %d: %v -> %v is not adjacent", i, path[i-1], path[i])
		}
		if !allowed.Has(path[i]) {
			t.Errorf("step %d: %v is not allowed", i, path[i])
		}
	}
}

func TestShortestPathFollowsCorridor(t *testing.T) {
	allowed := engine.NewCellSet(
		engine.C(0, 0), engine.C(1, 0), engine.C(2, 0),
		engine.C(2, 1), engine.C(2, 2),
		engine.C(0, 2), // isolated
	)
	path, err := engine.ShortestPath(allowed, engine.C(0, 0), engine.C(2, 2))
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if len(path) != 5 {
		t.Errorf("expected 5 cells, got %v", path)
	}
}

func TestShortestPathNoPath(t *testing.T) {
	allowed := engine.NewCellSet(engine.C(0, 0), engine.C(2, 2))
	path, err := engine.ShortestPath(allowed, engine.C(0, 0), engine.C(2, 2))
	if !errors.Is(err, engine.ErrNoPathFound) {
		t.Errorf("expected ErrNoPathFound, got %v", err)
	}
	if path != nil {
		t.Errorf("expected nil path, got %v", path)
	}
}

func TestShortestPathSameCell(t *testing.T) {
	path, err := engine.ShortestPath(engine.NewCellSet(), engine.C(4, 4), engine.C(4, 4))
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if !reflect.DeepEqual(path, []engine.Cell{engine.C(4, 4)}) {
		t.Errorf("path = %v", path)
	}
}
