package blocks

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// simCommands is the pool the simulator draws player input from.
// CmdNone is listed twice so roughly a third of the ticks pass without input.
var simCommands = []engine.Command{
	engine.CmdNone,
	engine.CmdNone,
	engine.CmdMoveLeft,
	engine.CmdMoveRight,
	engine.CmdRotate,
	engine.CmdSoftDrop,
}

// SimResult summarizes a headless run.
type SimResult struct {
	Seed      int64
	Ticks     int
	Commands  int // Non-empty commands issued
	Landed    int
	Lines     int // Rows cleared over the whole run, across resets
	Score     int // Score at the end of the run
	BestScore int // Highest score reached before any reset
	Resets    int
	Board     string
}

// Simulate runs the engine headless for the given number of gravity ticks.
// Before every tick one command is drawn from a generator seeded with seed+1;
// spawns are seeded with seed. Equal arguments always give equal results.
func Simulate(cfg config.BlocksConfig, seed int64, ticks int, logger *log.Logger) (SimResult, error) {
	if ticks < 0 {
		return SimResult{}, fmt.Errorf("blocks: negative tick count %d", ticks)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	opts, err := cfg.Options(engine.NewSource(seed))
	if err != nil {
		return SimResult{}, err
	}
	ctrl, err := engine.NewController(opts)
	if err != nil {
		return SimResult{}, fmt.Errorf("blocks: %w", err)
	}

	res := SimResult{Seed: seed, Ticks: ticks}
	record := func(events []engine.Event) {
		for _, ev := range events {
			switch e := ev.(type) {
			case engine.LandedEvent:
				res.Landed++
			case engine.LinesClearedEvent:
				res.Lines += e.Lines
				logger.Debug("lines cleared", "lines", e.Lines, "points", e.Points)
			case engine.ScoreChangedEvent:
				res.BestScore = max(res.BestScore, e.Score)
			case engine.ResetEvent:
				logger.Info("board reset", "final_score", e.FinalScore, "final_lines", e.FinalLines)
			}
		}
	}

	input := rand.New(rand.NewSource(seed + 1))
	for i := 0; i < ticks; i++ {
		cmd := simCommands[input.Intn(len(simCommands))]
		if cmd != engine.CmdNone {
			res.Commands++
			record(ctrl.HandleCommand(cmd))
		}
		record(ctrl.Tick())
	}

	snap := ctrl.Snapshot()
	res.Score = snap.Score
	res.Resets = snap.Resets
	res.Board = BoardString(snap.Composite(), ctrl.Variants())
	logger.Debug("simulation finished", "ticks", ticks, "fall_steps", snap.Ticks, "score", res.Score)
	return res, nil
}
