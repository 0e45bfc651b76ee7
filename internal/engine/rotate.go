package engine

// Rotate turns the piece 90° clockwise and, if the new orientation
// collides, searches for a horizontal kick.
//
// Kicks are applied cumulatively to the column in the order +1, -2, +3,
// -4, ... so the candidate columns are x+1, x-1, x+2, x-2, ... The search
// stops once the step magnitude exceeds the rotated shape's width.
//
// On success the rotated piece and true are returned. Otherwise the
// original piece is returned unchanged together with false.
func Rotate(g *Grid, p Piece) (Piece, bool) {
	next := p
	next.Shape = p.Shape.Rotate()

	if !Collides(g, next) {
		return next, true
	}

	width := next.Shape.Width()
	for step := 1; abs(step) <= width; step = nextKick(step) {
		next.Col += step
		if !Collides(g, next) {
			return next, true
		}
	}
	return p, false
}

// nextKick returns the kick step following s: 1 -> -2 -> 3 -> -4 ...
func nextKick(s int) int {
	if s > 0 {
		return -(s + 1)
	}
	return -s + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
