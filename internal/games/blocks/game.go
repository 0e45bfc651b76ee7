// Package blocks adapts the falling-block engine to the arcade platform:
// it turns per-frame input into engine commands, drives gravity from the
// platform tick rate and draws the well into a core.Screen.
package blocks

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "blocks"

// How long the reset banner stays on screen.
const bannerDuration = 2 * time.Second

// Package-level settings applied by New, set by the CLI before the game is created.
var (
	settingsMu  sync.Mutex
	settingsCfg = config.DefaultBlocksConfig()
	settingsLog = log.New(io.Discard)
)

// SetConfig sets the configuration used by games created with New.
func SetConfig(cfg config.BlocksConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settingsCfg = cfg
}

// SetLogger sets the logger used by games created with New.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settingsLog = l
}

// Game implements registry.Game on top of engine.Controller.
type Game struct {
	cfg     config.BlocksConfig
	palette map[engine.Cell]core.Color
	logger  *log.Logger

	ctrl *engine.Controller
	rng  *rand.Rand // Seeds restarts
	err  error      // Set when the configuration cannot build a board

	tick       uint64
	tickRate   int
	fallEvery  int // Platform ticks per gravity step
	fallTicker int
	paused     bool

	screenW int
	screenH int

	bannerTicks int
	lastReset   engine.ResetEvent
}

// New creates a game using the package-level configuration and logger.
func New() *Game {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return NewWithConfig(settingsCfg, settingsLog)
}

// NewWithConfig creates a game with an explicit configuration.
// A nil logger discards output.
func NewWithConfig(cfg config.BlocksConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{cfg: cfg, logger: logger}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockfall"
}

// Reset builds a fresh board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.bannerTicks = 0
	g.lastReset = engine.ResetEvent{}

	g.fallEvery = fallTicks(g.cfg.FallInterval(), g.tickRate)
	g.newBoard(cfg.Seed)
}

// newBoard replaces the controller with one spawning from the given seed.
func (g *Game) newBoard(seed int64) {
	g.fallTicker = 0
	g.ctrl = nil

	palette, err := g.cfg.Palette()
	if err != nil {
		g.fail(err)
		return
	}
	opts, err := g.cfg.Options(engine.NewSource(seed))
	if err != nil {
		g.fail(err)
		return
	}
	ctrl, err := engine.NewController(opts)
	if err != nil {
		g.fail(err)
		return
	}

	g.err = nil
	g.palette = palette
	g.ctrl = ctrl
	g.logger.Debug("board ready",
		"rows", g.cfg.Grid.Rows,
		"cols", g.cfg.Grid.Cols,
		"pieces", len(opts.Variants),
		"fall_every", g.fallEvery,
		"seed", seed,
	)
}

func (g *Game) fail(err error) {
	g.err = err
	g.logger.Error("cannot build board", "err", err)
}

// fallTicks converts the gravity period into a whole number of platform ticks.
func fallTicks(interval time.Duration, tickRate int) int {
	n := int((interval*time.Duration(tickRate) + time.Second/2) / time.Second)
	return max(n, 1)
}

// Step advances the game by one platform tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) {
		g.logger.Info("board restarted", "score", g.Score())
		g.newBoard(g.rng.Int63())
		g.bannerTicks = 0
		g.paused = false
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.ctrl == nil {
		return core.StepResult{State: g.State()}
	}

	if g.bannerTicks > 0 {
		g.bannerTicks--
	}

	reset := false
	for _, a := range input.Actions {
		cmd := commandFor(a)
		if cmd == engine.CmdNone {
			continue
		}
		if cmd == engine.CmdSoftDrop {
			g.fallTicker = 0
		}
		reset = g.handle(g.ctrl.HandleCommand(cmd)) || reset
	}

	g.fallTicker++
	if g.fallTicker >= g.fallEvery {
		g.fallTicker = 0
		reset = g.handle(g.ctrl.Tick()) || reset
	}

	return core.StepResult{State: g.State(), Reset: reset}
}

// commandFor maps a platform action to an engine command.
func commandFor(a core.Action) engine.Command {
	switch a {
	case core.ActionLeft:
		return engine.CmdMoveLeft
	case core.ActionRight:
		return engine.CmdMoveRight
	case core.ActionDown:
		return engine.CmdSoftDrop
	case core.ActionRotate:
		return engine.CmdRotate
	default:
		return engine.CmdNone
	}
}

// handle logs engine events and reports whether the board was wiped.
func (g *Game) handle(events []engine.Event) bool {
	reset := false
	for _, ev := range events {
		switch e := ev.(type) {
		case engine.LandedEvent:
			g.logger.Debug("piece landed",
				"piece", g.variantName(e.Piece.Variant),
				"row", e.Piece.Row,
				"col", e.Piece.Col,
			)
		case engine.LinesClearedEvent:
			g.logger.Info("lines cleared", "lines", e.Lines, "points", e.Points)
		case engine.ScoreChangedEvent:
			g.logger.Debug("score changed", "score", e.Score)
		case engine.ResetEvent:
			g.logger.Warn("board reset",
				"reason", e.Reason,
				"final_score", e.FinalScore,
				"final_lines", e.FinalLines,
			)
			g.lastReset = e
			g.bannerTicks = int(bannerDuration.Seconds() * float64(g.tickRate))
			reset = true
		}
	}
	return reset
}

func (g *Game) variantName(idx int) string {
	variants := g.ctrl.Variants()
	if idx < 0 || idx >= len(variants) {
		return "?"
	}
	return variants[idx].Name
}

// Score returns the current score, or 0 when no board exists.
func (g *Game) Score() int {
	if g.ctrl == nil {
		return 0
	}
	return g.ctrl.Score()
}

// Err returns the configuration error that prevented building a board.
func (g *Game) Err() error {
	return g.err
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Paused: g.paused}
	if g.ctrl != nil {
		st.Score = g.ctrl.Score()
		st.Lines = g.ctrl.Lines()
		st.Resets = g.ctrl.Resets()
	}
	return st
}
