package engine

import (
	"errors"
	"fmt"
)

// Default well dimensions.
const (
	DefaultRows = 20
	DefaultCols = 10
)

// State is the controller's position in the tick/spawn state machine.
// Landed and Spawning are transient and only visible while a Tick is in
// progress; between calls the controller is always Falling.
type State int

const (
	StateFalling State = iota
	StateLanded
	StateSpawning
)

func (s State) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateLanded:
		return "landed"
	case StateSpawning:
		return "spawning"
	default:
		return "unknown"
	}
}

// Command is a logical player input.
type Command int

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdSoftDrop
	CmdRotate
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdMoveLeft:
		return "move-left"
	case CmdMoveRight:
		return "move-right"
	case CmdSoftDrop:
		return "soft-drop"
	case CmdRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Rows     int       // Grid rows (default 20)
	Cols     int       // Grid columns (default 10)
	Variants []Variant // Piece table (default StandardVariants)
	Source   Source    // Spawn randomness (default NewSource(0))
}

// Controller owns the grid, the live piece and the score.
// It is not safe for concurrent use: the host must call Tick and
// HandleCommand from a single goroutine.
type Controller struct {
	grid     *Grid
	piece    Piece
	variants []Variant
	src      Source
	state    State

	score  int
	lines  int
	ticks  uint64
	resets int
}

// NewController validates the options, creates an empty grid and spawns
// the first piece.
func NewController(opts Options) (*Controller, error) {
	if opts.Rows == 0 {
		opts.Rows = DefaultRows
	}
	if opts.Cols == 0 {
		opts.Cols = DefaultCols
	}
	if opts.Rows < 1 || opts.Cols < 1 {
		return nil, fmt.Errorf("engine: invalid grid size %dx%d", opts.Rows, opts.Cols)
	}
	if opts.Variants == nil {
		opts.Variants = StandardVariants()
	}
	if err := ValidateVariants(opts.Variants, opts.Cols); err != nil {
		return nil, err
	}
	for _, v := range opts.Variants {
		if v.Shape.Height() > opts.Rows {
			return nil, fmt.Errorf("engine: variant %s is taller than the grid", v.Name)
		}
	}
	if opts.Source == nil {
		opts.Source = NewSource(0)
	}

	variants := make([]Variant, len(opts.Variants))
	for i, v := range opts.Variants {
		v.Shape = v.Shape.Clone()
		variants[i] = v
	}

	c := &Controller{
		grid:     NewGrid(opts.Rows, opts.Cols),
		variants: variants,
		src:      opts.Source,
	}
	if events := c.Spawn(); len(events) != 0 {
		return nil, errors.New("engine: first spawn collided on an empty grid")
	}
	return c, nil
}

// Spawn replaces the live piece with a randomly chosen variant at the top
// of the grid. If it collides immediately the grid is cleared and the score
// reset; the new piece stays live on the empty grid and a ResetEvent is
// returned.
func (c *Controller) Spawn() []Event {
	c.state = StateSpawning
	idx := c.src.Intn(len(c.variants))
	c.piece = spawnPiece(idx, c.variants[idx], c.grid.Cols())

	var events []Event
	if Collides(c.grid, c.piece) {
		events = append(events, ResetEvent{
			Reason:     ResetSpawnBlocked,
			FinalScore: c.score,
			FinalLines: c.lines,
		})
		hadScore := c.score != 0
		c.grid.Clear()
		c.score = 0
		c.lines = 0
		c.resets++
		if hadScore {
			events = append(events, ScoreChangedEvent{Score: 0})
		}
	}
	c.state = StateFalling
	return events
}

// Tick advances the live piece one row. If the move is blocked the piece
// lands: it is merged at its last valid position, full rows are swept,
// the score is updated and a new piece is spawned.
func (c *Controller) Tick() []Event {
	c.ticks++

	next := c.piece.Moved(1, 0)
	if !Collides(c.grid, next) {
		c.piece = next
		return nil
	}

	c.state = StateLanded
	landed := c.piece
	Merge(c.grid, landed)
	events := []Event{LandedEvent{Piece: landed.Clone()}}

	points, lines := Sweep(c.grid)
	if lines > 0 {
		c.score += points
		c.lines += lines
		events = append(events,
			LinesClearedEvent{Lines: lines, Points: points},
			ScoreChangedEvent{Score: c.score},
		)
	}

	return append(events, c.Spawn()...)
}

// HandleCommand applies a player command. Moves that would collide are
// silently discarded; a soft drop behaves exactly like Tick.
func (c *Controller) HandleCommand(cmd Command) []Event {
	switch cmd {
	case CmdMoveLeft:
		c.shift(-1)
	case CmdMoveRight:
		c.shift(1)
	case CmdSoftDrop:
		return c.Tick()
	case CmdRotate:
		if rotated, ok := Rotate(c.grid, c.piece); ok {
			c.piece = rotated
		}
	}
	return nil
}

// shift moves the piece dCol columns if the destination is free.
func (c *Controller) shift(dCol int) {
	next := c.piece.Moved(0, dCol)
	if !Collides(c.grid, next) {
		c.piece = next
	}
}

// Score returns the current score.
func (c *Controller) Score() int {
	return c.score
}

// Lines returns the number of rows cleared since the last reset.
func (c *Controller) Lines() int {
	return c.lines
}

// Ticks returns the number of fall steps performed, soft drops included.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

// Resets returns how many times the board has been wiped by a blocked spawn.
func (c *Controller) Resets() int {
	return c.resets
}

// State returns the current state machine state.
func (c *Controller) State() State {
	return c.state
}

// Piece returns a copy of the live piece.
func (c *Controller) Piece() Piece {
	return c.piece.Clone()
}

// Grid returns a copy of the grid.
func (c *Controller) Grid() *Grid {
	return c.grid.Clone()
}

// Variants returns a copy of the variant table.
func (c *Controller) Variants() []Variant {
	out := make([]Variant, len(c.variants))
	for i, v := range c.variants {
		v.Shape = v.Shape.Clone()
		out[i] = v
	}
	return out
}

// Ghost returns the row the live piece would land on.
func (c *Controller) Ghost() int {
	return Ghost(c.grid, c.piece)
}
