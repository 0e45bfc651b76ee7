package blocks

import (
	"strings"

	"github.com/vovakirdan/blockfall/internal/engine"
)

// Snapshot captures the game state for determinism testing and the
// headless simulator.
type Snapshot struct {
	Tick      uint64 // Platform ticks
	FallSteps uint64 // Engine ticks, soft drops included
	Score     int
	Lines     int
	Resets    int
	Paused    bool
	Piece     string // Variant name of the live piece
	PieceRow  int
	PieceCol  int
	Board     string // Grid with the live piece, one text row per line
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{Tick: g.tick, Paused: g.paused}
	if g.ctrl == nil {
		return s
	}

	es := g.ctrl.Snapshot()
	s.FallSteps = es.Ticks
	s.Score = es.Score
	s.Lines = es.Lines
	s.Resets = es.Resets
	s.Piece = g.variantName(es.Piece.Variant)
	s.PieceRow = es.Piece.Row
	s.PieceCol = es.Piece.Col
	s.Board = BoardString(es.Composite(), g.ctrl.Variants())
	return s
}

// BoardString renders cells as text: '.' for empty cells and the first
// letter of the variant name for occupied ones.
func BoardString(cells [][]engine.Cell, variants []engine.Variant) string {
	glyphs := make(map[engine.Cell]byte, len(variants))
	for _, v := range variants {
		ch := byte('#')
		if v.Name != "" {
			ch = v.Name[0]
		}
		glyphs[v.ID] = ch
	}

	var sb strings.Builder
	for r, row := range cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			switch ch, ok := glyphs[c]; {
			case c == engine.Empty:
				sb.WriteByte('.')
			case ok:
				sb.WriteByte(ch)
			default:
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}
