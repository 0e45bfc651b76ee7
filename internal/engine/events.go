package engine

// Event is emitted by the Controller when something observable happens.
// Hosts receive events as return values of Tick, HandleCommand and Spawn.
type Event interface {
	engineEvent()
}

// LandedEvent is emitted when the live piece is merged into the grid.
type LandedEvent struct {
	Piece Piece // The piece at its final position
}

func (LandedEvent) engineEvent() {}

// LinesClearedEvent is emitted when a sweep removes at least one row.
type LinesClearedEvent struct {
	Lines  int
	Points int
}

func (LinesClearedEvent) engineEvent() {}

// ScoreChangedEvent carries the new score after every change.
type ScoreChangedEvent struct {
	Score int
}

func (ScoreChangedEvent) engineEvent() {}

// ResetReason describes why the board was wiped.
type ResetReason int

const (
	// ResetSpawnBlocked means a freshly spawned piece collided immediately.
	ResetSpawnBlocked ResetReason = iota
)

func (r ResetReason) String() string {
	switch r {
	case ResetSpawnBlocked:
		return "spawn blocked"
	default:
		return "unknown"
	}
}

// ResetEvent is emitted when the grid is cleared and the score zeroed
// because a new piece could not be placed. This is the engine's game-over
// condition; play continues on the empty grid.
type ResetEvent struct {
	Reason     ResetReason
	FinalScore int // Score before the reset
	FinalLines int // Lines cleared before the reset
}

func (ResetEvent) engineEvent() {}
