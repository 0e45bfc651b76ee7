package engine

// LinePoints is the award for the first row removed in a sweep pass.
// Each further row in the same pass is worth twice the previous one.
const LinePoints = 10

// Merge writes the piece's occupied cells into the grid.
// The piece must not collide with the grid; cells that fall above row 0
// are dropped.
func Merge(g *Grid, p Piece) {
	p.Cells(func(row, col int, v Cell) bool {
		g.Set(row, col, v)
		return true
	})
}

// Sweep removes every full row, bottom to top, shifting the rows above it
// down and inserting an empty row at the top. It returns the points earned
// and the number of rows removed.
//
// The first removed row is worth LinePoints and the multiplier doubles
// after every removal in the same pass: 10, 20, 40, ...
func Sweep(g *Grid) (points, lines int) {
	multiplier := 1
	for row := g.Rows() - 1; row >= 0; {
		if !g.RowFull(row) {
			row--
			continue
		}
		// Re-examine the same index: the row above has shifted into it.
		g.removeRow(row)
		points += LinePoints * multiplier
		multiplier *= 2
		lines++
	}
	return points, lines
}
