package engine

// Ownership pairs a cell with its owner, for enumeration by renderers.
type Ownership struct {
	Cell  Cell
	Owner PlayerID
}

// TerritoryMap is the authoritative cell -> owner mapping.
// A cell has at most one owner; absent cells are neutral.
type TerritoryMap struct {
	owners map[Cell]PlayerID
}

// NewTerritoryMap creates an empty map.
func NewTerritoryMap() *TerritoryMap {
	return &TerritoryMap{owners: make(map[Cell]PlayerID)}
}

// Owner returns the owner of c, or NoPlayer and false when c is neutral.
func (t *TerritoryMap) Owner(c Cell) (PlayerID, bool) {
	id, ok := t.owners[c]
	return id, ok
}

// IsOwnedBy reports whether c belongs to id.
func (t *TerritoryMap) IsOwnedBy(c Cell, id PlayerID) bool {
	owner, ok := t.owners[c]
	return ok && owner == id
}

// OwnedCellsOf returns a freshly built set of every cell owned by id.
func (t *TerritoryMap) OwnedCellsOf(id PlayerID) CellSet {
	owned := CellSet{}
	for c, owner := range t.owners {
		if owner == id {
			owned.Add(c)
		}
	}
	return owned
}

// Claim assigns every cell in cells to id, overwriting any previous owner.
func (t *TerritoryMap) Claim(cells []Cell, id PlayerID) {
	for _, c := range cells {
		t.owners[c] = id
	}
}

// Release removes every cell owned by id. Other owners are untouched.
// Returns the number of cells released.
func (t *TerritoryMap) Release(id PlayerID) int {
	released := 0
	for c, owner := range t.owners {
		if owner == id {
			delete(t.owners, c)
			released++
		}
	}
	return released
}

// Score returns the number of cells owned by id.
func (t *TerritoryMap) Score(id PlayerID) int {
	score := 0
	for _, owner := range t.owners {
		if owner == id {
			score++
		}
	}
	return score
}

// Scores returns the cell count of every player that owns at least one cell.
func (t *TerritoryMap) Scores() map[PlayerID]int {
	scores := make(map[PlayerID]int)
	for _, owner := range t.owners {
		scores[owner]++
	}
	return scores
}

// Len returns the number of owned cells.
func (t *TerritoryMap) Len() int {
	return len(t.owners)
}

// Entries returns every owned cell with its owner in row-major order.
func (t *TerritoryMap) Entries() []Ownership {
	cells := make([]Cell, 0, len(t.owners))
	for c := range t.owners {
		cells = append(cells, c)
	}
	sortCells(cells)

	entries := make([]Ownership, len(cells))
	for i, c := range cells {
		entries[i] = Ownership{Cell: c, Owner: t.owners[c]}
	}
	return entries
}

// Clone returns a deep copy of the map.
func (t *TerritoryMap) Clone() *TerritoryMap {
	owners := make(map[Cell]PlayerID, len(t.owners))
	for c, id := range t.owners {
		owners[c] = id
	}
	return &TerritoryMap{owners: owners}
}

// Equal returns true if both maps hold the same ownership.
func (t *TerritoryMap) Equal(other *TerritoryMap) bool {
	if len(t.owners) != len(other.owners) {
		return false
	}
	for c, id := range t.owners {
		if oid, ok := other.owners[c]; !ok || oid != id {
			return false
		}
	}
	return true
}

// spawnBlock returns the 3x3 block centred on c, row-major.
func spawnBlock(c Cell) []Cell {
	block := make([]Cell, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			block = append(block, c.Add(dx, dy))
		}
	}
	return block
}
