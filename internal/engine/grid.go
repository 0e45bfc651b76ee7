// Package engine implements the falling-block grid simulation: a persistent
// grid of colored cells, a single live piece, collision testing, rotation
// with horizontal kicks and the merge-and-sweep line clear.
//
// The package has no dependency on the terminal platform. A host drives it
// by calling Controller.Tick at its fall cadence and Controller.HandleCommand
// for player input, both from the same goroutine.
package engine

// Cell is the content of a single grid or shape cell.
// Zero means empty; 1..255 identify a piece variant (and its color).
type Cell uint8

// Empty is the zero cell value.
const Empty Cell = 0

// Grid is a fixed-size matrix of cells indexed [row][col], row 0 at the top.
type Grid struct {
	rows  int
	cols  int
	cells [][]Cell
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols}
	g.cells = make([][]Cell, rows)
	for r := range g.cells {
		g.cells[r] = make([]Cell, cols)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (row, col) addresses a grid cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell at (row, col). Out-of-bounds reads return Empty.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Empty
	}
	return g.cells[row][col]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, v Cell) {
	if !g.InBounds(row, col) {
		return
	}
	g.cells[row][col] = v
}

// Clear resets every cell to Empty.
func (g *Grid) Clear() {
	for r := range g.cells {
		clear(g.cells[r])
	}
}

// RowFull reports whether every cell in the row is occupied.
func (g *Grid) RowFull(row int) bool {
	for _, c := range g.cells[row] {
		if c == Empty {
			return false
		}
	}
	return true
}

// RowCount returns the number of occupied cells in the row.
func (g *Grid) RowCount(row int) int {
	n := 0
	for _, c := range g.cells[row] {
		if c != Empty {
			n++
		}
	}
	return n
}

// Filled returns the total number of occupied cells.
func (g *Grid) Filled() int {
	n := 0
	for r := range g.cells {
		n += g.RowCount(r)
	}
	return n
}

// removeRow deletes the row and inserts a fresh empty row at the top.
// The removed row's backing slice is reused for the new top row.
func (g *Grid) removeRow(row int) {
	removed := g.cells[row]
	copy(g.cells[1:row+1], g.cells[:row])
	clear(removed)
	g.cells[0] = removed
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.rows, g.cols)
	for r := range g.cells {
		copy(c.cells[r], g.cells[r])
	}
	return c
}

// Cells returns a deep copy of the cell matrix.
func (g *Grid) Cells() [][]Cell {
	return g.Clone().cells
}
