package engine

// Piece is the live falling piece: a shape anchored at (Row, Col), the
// grid coordinates of the shape's top-left corner.
//
// Piece is a value type. Moves produce a modified copy which is only
// committed after Collides has approved it.
type Piece struct {
	Variant int   // Index into the controller's variant table
	ID      Cell  // Cell value written on merge
	Shape   Shape // Current orientation
	Row     int
	Col     int
}

// Moved returns a copy of the piece shifted by (dRow, dCol).
func (p Piece) Moved(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// Clone returns a copy that shares no cell storage with p.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Cells calls fn with the absolute grid coordinates of every occupied
// cell of the piece. Iteration stops early if fn returns false.
func (p Piece) Cells(fn func(row, col int, v Cell) bool) {
	for dy, line := range p.Shape {
		for dx, v := range line {
			if v == Empty {
				continue
			}
			if !fn(p.Row+dy, p.Col+dx, v) {
				return
			}
		}
	}
}

// spawnPiece places a variant at the top row, horizontally centered.
func spawnPiece(idx int, v Variant, cols int) Piece {
	return Piece{
		Variant: idx,
		ID:      v.ID,
		Shape:   v.Shape.Clone(),
		Row:     0,
		Col:     cols/2 - v.Shape.Width()/2,
	}
}

// Collides reports whether the piece overlaps the grid's side walls, floor
// or an occupied cell. Cells above row 0 are not checked, so a piece may
// poke out of the top of the well.
func Collides(g *Grid, p Piece) bool {
	hit := false
	p.Cells(func(row, col int, _ Cell) bool {
		switch {
		case col < 0 || col >= g.Cols():
			hit = true
		case row >= g.Rows():
			hit = true
		case row >= 0 && g.cells[row][col] != Empty:
			hit = true
		}
		return !hit
	})
	return hit
}

// Ghost returns the row the piece would land on if dropped straight down.
// A piece that already collides is returned at its current row.
func Ghost(g *Grid, p Piece) int {
	if Collides(g, p) {
		return p.Row
	}
	for !Collides(g, p.Moved(1, 0)) {
		p.Row++
	}
	return p.Row
}
