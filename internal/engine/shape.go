package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Shape is a small rectangular cell matrix describing a piece's geometry.
// Shapes are treated as immutable; Rotate returns a new value.
type Shape [][]Cell

// Width returns the number of columns in the shape.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the shape.
func (s Shape) Height() int {
	return len(s)
}

// Empty reports whether the shape has no occupied cell.
func (s Shape) Empty() bool {
	for _, row := range s {
		for _, c := range row {
			if c != Empty {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90° clockwise: the matrix is transposed
// and each resulting row is reversed.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for c := 0; c < w; c++ {
		row := make([]Cell, h)
		for r := 0; r < h; r++ {
			row[h-1-r] = s[r][c]
		}
		out[c] = row
	}
	return out
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r, row := range s {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the shape as rows of '#' and '.'.
func (s Shape) String() string {
	var sb strings.Builder
	for r, row := range s {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if c == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}

// ParseShape builds a shape from text rows. 'X' and '#' mark occupied cells
// which receive the given id; '.' and ' ' are empty. Rows shorter than the
// widest row are padded with empty cells.
func ParseShape(rows []string, id Cell) (Shape, error) {
	if id == Empty {
		return nil, errors.New("engine: shape id must be non-zero")
	}
	if len(rows) == 0 {
		return nil, errors.New("engine: shape has no rows")
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return nil, errors.New("engine: shape has no columns")
	}

	out := make(Shape, len(rows))
	for r, row := range rows {
		out[r] = make([]Cell, width)
		for c, ch := range []byte(row) {
			switch ch {
			case 'X', 'x', '#':
				out[r][c] = id
			case '.', ' ':
			default:
				return nil, fmt.Errorf("engine: invalid shape character %q in row %d", ch, r)
			}
		}
	}

	if out.Empty() {
		return nil, errors.New("engine: shape is empty")
	}
	return out, nil
}

// Variant is one entry of the fixed piece table.
type Variant struct {
	ID    Cell   // Color/shape class written into the grid
	Name  string // Display name (e.g. "T")
	Shape Shape  // Spawn orientation
}

// StandardVariants returns the seven classic tetrominoes in spawn
// orientation with ids 1..7.
func StandardVariants() []Variant {
	return []Variant{
		{ID: 1, Name: "I", Shape: Shape{{1, 1, 1, 1}}},
		{ID: 2, Name: "O", Shape: Shape{{2, 2}, {2, 2}}},
		{ID: 3, Name: "T", Shape: Shape{{0, 3, 0}, {3, 3, 3}}},
		{ID: 4, Name: "S", Shape: Shape{{4, 4, 0}, {0, 4, 4}}},
		{ID: 5, Name: "Z", Shape: Shape{{0, 5, 5}, {5, 5, 0}}},
		{ID: 6, Name: "J", Shape: Shape{{6, 0, 0}, {6, 6, 6}}},
		{ID: 7, Name: "L", Shape: Shape{{0, 0, 7}, {7, 7, 7}}},
	}
}

// ValidateVariants checks that a variant table is usable on a grid with the
// given number of columns.
func ValidateVariants(variants []Variant, cols int) error {
	if len(variants) == 0 {
		return errors.New("engine: variant table is empty")
	}
	for i, v := range variants {
		if v.ID == Empty {
			return fmt.Errorf("engine: variant %d (%s) has zero id", i, v.Name)
		}
		if v.Shape.Height() == 0 || v.Shape.Width() == 0 || v.Shape.Empty() {
			return fmt.Errorf("engine: variant %d (%s) has an empty shape", i, v.Name)
		}
		for r, row := range v.Shape {
			if len(row) != v.Shape.Width() {
				return fmt.Errorf("engine: variant %d (%s) row %d is ragged", i, v.Name, r)
			}
			for _, c := range row {
				if c != Empty && c != v.ID {
					return fmt.Errorf("engine: variant %d (%s) mixes cell ids %d and %d", i, v.Name, v.ID, c)
				}
			}
		}
		if v.Shape.Width() > cols {
			return fmt.Errorf("engine: variant %d (%s) is wider than the grid (%d > %d)", i, v.Name, v.Shape.Width(), cols)
		}
	}
	return nil
}
