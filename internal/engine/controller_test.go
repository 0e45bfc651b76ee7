package engine

import (
	"math/rand"
	"reflect"
	"testing"
)

// newTestController creates a controller whose spawns follow the given
// variant indices.
func newTestController(t *testing.T, rows, cols int, spawns ...int) *Controller {
	t.Helper()
	c, err := NewController(Options{
		Rows:   rows,
		Cols:   cols,
		Source: NewSequence(spawns...),
	})
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return c
}

// dropUntilLanded soft-drops until the piece lands and returns the events
// of the landing step.
func dropUntilLanded(t *testing.T, c *Controller) []Event {
	t.Helper()
	for iterN := 0; iterN < 1000; iterN++ {
		events := c.HandleCommand(CmdSoftDrop)
		for _, e := range events {
			if _, ok := e.(LandedEvent); ok {
				return events
			}
		}
	}
	t.Fatal("piece never landed")
	return nil
}

func TestNewControllerDefaults(t *testing.T) {
	c, err := NewController(Options{})
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	g := c.Grid()
	if g.Rows() != DefaultRows || g.Cols() != DefaultCols {
		t.Errorf("default grid = %dx%d, expected %dx%d", g.Rows(), g.Cols(), DefaultRows, DefaultCols)
	}
	if c.Score() != 0 {
		t.Errorf("initial score = %d", c.Score())
	}
	if c.State() != StateFalling {
		t.Errorf("initial state = %v, expected falling", c.State())
	}
	if c.Piece().Row != 0 {
		t.Errorf("first piece row = %d, expected 0", c.Piece().Row)
	}
}

func TestNewControllerErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative rows", Options{Rows: -1}},
		{"negative cols", Options{Cols: -3}},
		{"empty variants", Options{Variants: []Variant{}}},
		{"variant too wide", Options{Cols: 3}},
		{"variant too tall", Options{Rows: 1, Variants: []Variant{{ID: 1, Name: "V", Shape: Shape{{1}, {1}}}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewController(tc.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSpawnPicksFromSource(t *testing.T) {
	c := newTestController(t, 20, 10, 2, 5)
	if got := c.Piece().Variant; got != 2 {
		t.Errorf("first spawn variant = %d, expected 2", got)
	}
	c.Spawn()
	p := c.Piece()
	if p.Variant != 5 || p.ID != 6 {
		t.Errorf("second spawn = variant %d id %d, expected variant 5 id 6", p.Variant, p.ID)
	}
	if p.Row != 0 || p.Col != 4 {
		t.Errorf("J spawned at (%d, %d), expected (0, 4)", p.Row, p.Col)
	}
}

func TestTickFalls(t *testing.T) {
	c := newTestController(t, 20, 10, 1)
	events := c.Tick()
	if len(events) != 0 {
		t.Errorf("free fall emitted events: %v", events)
	}
	if c.Piece().Row != 1 {
		t.Errorf("row after tick = %d, expected 1", c.Piece().Row)
	}
	if c.Ticks() != 1 {
		t.Errorf("Ticks = %d, expected 1", c.Ticks())
	}
}

func TestHorizontalPieceLandsOnFloor(t *testing.T) {
	// 10x20 grid, 4-wide I spawned at column 3, soft-dropped to the floor.
	c := newTestController(t, 20, 10, 0)
	if p := c.Piece(); p.Col != 3 || p.Shape.Width() != 4 {
		t.Fatalf("unexpected spawn: col %d width %d", p.Col, p.Shape.Width())
	}

	events := dropUntilLanded(t, c)
	landed := events[0].(LandedEvent)
	if landed.Piece.Row != 19 {
		t.Errorf("landed at row %d, expected 19", landed.Piece.Row)
	}
	if c.Ticks() != 20 {
		t.Errorf("landing took %d ticks, expected 20", c.Ticks())
	}

	g := c.Grid()
	for col := 0; col < 10; col++ {
		v := g.At(19, col)
		inPiece := col >= 3 && col <= 6
		if inPiece && v == Empty {
			t.Errorf("bottom row col %d empty, expected piece cell", col)
		}
		if !inPiece && v != Empty {
			t.Errorf("bottom row col %d = %d, expected empty", col, v)
		}
	}
	if g.RowCount(19) != 4 || g.Filled() != 4 {
		t.Errorf("bottom row has %d cells, grid has %d, expected 4 and 4", g.RowCount(19), g.Filled())
	}
	if c.Score() != 0 {
		t.Errorf("score = %d, expected 0", c.Score())
	}
	if c.Piece().Row != 0 {
		t.Error("no new piece spawned after landing")
	}
}

func TestLandingClearsLine(t *testing.T) {
	// On a 4-wide grid an I fills the bottom row by itself.
	c := newTestController(t, 20, 4, 0)
	events := dropUntilLanded(t, c)

	var cleared *LinesClearedEvent
	var score *ScoreChangedEvent
	for _, e := range events {
		switch ev := e.(type) {
		case LinesClearedEvent:
			cleared = &ev
		case ScoreChangedEvent:
			score = &ev
		}
	}
	if cleared == nil || cleared.Lines != 1 || cleared.Points != 10 {
		t.Errorf("LinesClearedEvent = %+v, expected 1 line for 10 points", cleared)
	}
	if score == nil || score.Score != 10 {
		t.Errorf("ScoreChangedEvent = %+v, expected score 10", score)
	}
	if c.Score() != 10 || c.Lines() != 1 {
		t.Errorf("score/lines = %d/%d, expected 10/1", c.Score(), c.Lines())
	}
	if c.Grid().Filled() != 0 {
		t.Error("grid should be empty after clearing the only row")
	}
}

func TestScoreAccumulatesAcrossLandings(t *testing.T) {
	c := newTestController(t, 20, 4, 0)
	dropUntilLanded(t, c)
	dropUntilLanded(t, c)
	if c.Score() != 20 {
		t.Errorf("score after two single clears = %d, expected 20", c.Score())
	}
}

func TestSpawnCollisionResets(t *testing.T) {
	c := newTestController(t, 20, 10, 0)
	for col := 0; col < 10; col++ {
		if col != 0 {
			c.grid.Set(0, col, 7)
		}
		c.grid.Set(5, col, 7)
	}
	c.score = 50
	c.lines = 3

	events := c.Spawn()

	if len(events) != 2 {
		t.Fatalf("Spawn events = %v, expected reset and score change", events)
	}
	reset, ok := events[0].(ResetEvent)
	if !ok {
		t.Fatalf("first event = %T, expected ResetEvent", events[0])
	}
	if reset.FinalScore != 50 || reset.FinalLines != 3 || reset.Reason != ResetSpawnBlocked {
		t.Errorf("ResetEvent = %+v", reset)
	}
	if sc, ok := events[1].(ScoreChangedEvent); !ok || sc.Score != 0 {
		t.Errorf("second event = %+v, expected ScoreChangedEvent{0}", events[1])
	}

	if c.Grid().Filled() != 0 {
		t.Errorf("grid has %d cells after reset, expected 0", c.Grid().Filled())
	}
	if c.Score() != 0 || c.Lines() != 0 {
		t.Errorf("score/lines = %d/%d after reset", c.Score(), c.Lines())
	}
	if c.Resets() != 1 {
		t.Errorf("Resets = %d, expected 1", c.Resets())
	}
	if Collides(c.grid, c.piece) {
		t.Error("live piece collides after reset")
	}
	if c.State() != StateFalling {
		t.Errorf("state = %v, expected falling", c.State())
	}
}

func TestSpawnCollisionWithZeroScoreSkipsScoreEvent(t *testing.T) {
	c := newTestController(t, 20, 10, 1)
	c.grid.Set(0, 4, 3)

	events := c.Spawn()
	if len(events) != 1 {
		t.Fatalf("Spawn events = %v, expected only a reset", events)
	}
	if _, ok := events[0].(ResetEvent); !ok {
		t.Errorf("event = %T, expected ResetEvent", events[0])
	}
}

func TestStackingToTopResets(t *testing.T) {
	// O pieces on a narrow well stack up until a spawn is blocked.
	c := newTestController(t, 6, 3, 1)
	var reset bool
	for iterN := 0; iterN < 10; iterN++ {
		for _, e := range dropUntilLanded(t, c) {
			if _, ok := e.(ResetEvent); ok {
				reset = true
			}
		}
		if reset {
			break
		}
	}
	if !reset {
		t.Fatal("stack never reached the top")
	}
	if c.Grid().Filled() != 0 {
		t.Error("grid not cleared after reset")
	}
}

func TestLateralMoves(t *testing.T) {
	c := newTestController(t, 20, 10, 0)

	for iterN := 0; iterN < 3; iterN++ {
		c.HandleCommand(CmdMoveLeft)
	}
	if got := c.Piece().Col; got != 0 {
		t.Fatalf("col after 3 lefts = %d, expected 0", got)
	}
	c.HandleCommand(CmdMoveLeft)
	if got := c.Piece().Col; got != 0 {
		t.Errorf("moved through the left wall to col %d", got)
	}

	for iterN := 0; iterN < 20; iterN++ {
		c.HandleCommand(CmdMoveRight)
	}
	if got := c.Piece().Col; got != 6 {
		t.Errorf("col after many rights = %d, expected 6", got)
	}
}

func TestLateralMoveBlockedByCells(t *testing.T) {
	c := newTestController(t, 20, 10, 1) // O at col 4
	c.grid.Set(1, 3, 5)

	before := c.Piece()
	events := c.HandleCommand(CmdMoveLeft)
	if events != nil {
		t.Errorf("blocked move emitted events: %v", events)
	}
	if !reflect.DeepEqual(c.Piece(), before) {
		t.Error("blocked move changed the piece")
	}
}

func TestRotateCommand(t *testing.T) {
	c := newTestController(t, 20, 10, 2) // T
	c.HandleCommand(CmdRotate)
	want := Shape{{3, 0}, {3, 3}, {3, 0}}
	if !c.Piece().Shape.Equal(want) {
		t.Errorf("rotated shape:\n%s\nexpected:\n%s", c.Piece().Shape, want)
	}
}

func TestSoftDropEqualsTick(t *testing.T) {
	a := newTestController(t, 20, 10, 3, 1, 4)
	b := newTestController(t, 20, 10, 3, 1, 4)
	for iterN := 0; iterN < 60; iterN++ {
		a.Tick()
		b.HandleCommand(CmdSoftDrop)
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("soft drop diverged from tick")
	}
}

func TestPieceAccessorReturnsCopy(t *testing.T) {
	c := newTestController(t, 20, 10, 0)
	p := c.Piece()
	p.Shape[0][0] = 9
	p.Col = -5
	if c.Piece().Shape[0][0] != 1 || c.Piece().Col != 3 {
		t.Error("modifying Piece() result changed the controller")
	}
}

func randomCommand(rng *rand.Rand) Command {
	return Command(1 + rng.Intn(4))
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		c, err := NewController(Options{Source: NewSource(12345)})
		if err != nil {
			t.Fatalf("NewController failed: %v", err)
		}
		rng := rand.New(rand.NewSource(99))
		for iterN := 0; iterN < 3000; iterN++ {
			if rng.Intn(3) == 0 {
				c.Tick()
			} else {
				c.HandleCommand(randomCommand(rng))
			}
		}
		return c.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	c, err := NewController(Options{Source: NewSource(7)})
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	rng := rand.New(rand.NewSource(3))
	k := Cell(len(c.Variants()))

	for step := 0; step < 20000; step++ {
		prevScore := c.Score()
		var events []Event
		if rng.Intn(2) == 0 {
			events = c.Tick()
		} else {
			events = c.HandleCommand(randomCommand(rng))
		}

		reset := false
		for _, e := range events {
			if _, ok := e.(ResetEvent); ok {
				reset = true
			}
		}
		if !reset && c.Score() < prevScore {
			t.Fatalf("step %d: score decreased from %d to %d without a reset", step, prevScore, c.Score())
		}
		if Collides(c.grid, c.piece) {
			t.Fatalf("step %d: live piece collides", step)
		}
		if c.State() != StateFalling {
			t.Fatalf("step %d: state %v between calls", step, c.State())
		}
		for r, rEnd := 0, c.grid.Rows(); r < rEnd; r++ {
			for col, colEnd := 0, c.grid.Cols(); col < colEnd; col++ {
				if v := c.grid.At(r, col); v > k {
					t.Fatalf("step %d: cell (%d, %d) = %d out of range", step, r, col, v)
				}
			}
			if c.grid.RowFull(r) {
				t.Fatalf("step %d: row %d left full after a sweep", step, r)
			}
		}
	}
}

func TestSnapshotComposite(t *testing.T) {
	c := newTestController(t, 4, 4, 1) // O at col 1
	snap := c.Snapshot()
	comp := snap.Composite()
	if comp[0][1] != 2 || comp[1][2] != 2 {
		t.Error("composite does not contain the live piece")
	}
	if snap.Grid[0][1] != Empty {
		t.Error("composite modified the snapshot grid")
	}
	if snap.GhostRow != 2 {
		t.Errorf("ghost row = %d, expected 2", snap.GhostRow)
	}
}
