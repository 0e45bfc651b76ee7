package engine

// Snapshot is an immutable copy of the controller's observable state,
// read by renderers once per frame and by determinism tests.
type Snapshot struct {
	Ticks    uint64
	Score    int
	Lines    int
	Resets   int
	State    State
	Grid     [][]Cell
	Piece    Piece
	GhostRow int
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Ticks:    c.ticks,
		Score:    c.score,
		Lines:    c.lines,
		Resets:   c.resets,
		State:    c.state,
		Grid:     c.grid.Cells(),
		Piece:    c.piece.Clone(),
		GhostRow: c.Ghost(),
	}
}

// Composite returns the grid with the live piece drawn into it.
// Piece cells above row 0 are omitted.
func (s Snapshot) Composite() [][]Cell {
	out := make([][]Cell, len(s.Grid))
	for r, row := range s.Grid {
		out[r] = append([]Cell(nil), row...)
	}
	s.Piece.Cells(func(row, col int, v Cell) bool {
		if row >= 0 && row < len(out) && col >= 0 && col < len(out[row]) {
			out[row][col] = v
		}
		return true
	})
	return out
}
