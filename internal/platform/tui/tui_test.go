package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"h", runeKey('h'), core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"l", runeKey('l'), core.ActionRight},
		{"d", runeKey('d'), core.ActionRight},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"j", runeKey('j'), core.ActionDown},
		{"s", runeKey('s'), core.ActionDown},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate},
		{"k", runeKey('k'), core.ActionRotate},
		{"w", runeKey('w'), core.ActionRotate},
		{"x", runeKey('x'), core.ActionRotate},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r", runeKey('r'), core.ActionRestart},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"help is not a game action", runeKey('?'), core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, km.Action(tc.msg))
		})
	}
}

func TestHelpListsBindings(t *testing.T) {
	km := DefaultKeyMap()
	assert.NotEmpty(t, km.ShortHelp())

	count := 0
	for _, col := range km.FullHelp() {
		count += len(col)
	}
	assert.Equal(t, 8, count, "full help should list every binding")
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, tickInterval(60))
	assert.Equal(t, time.Second/30, tickInterval(30))
	assert.Equal(t, time.Second/60, tickInterval(0))
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "SCORE")
	s.DrawTextColor(2, 1, "████", core.ColorCyan)
	s.SetCell(11, 2, '░', core.Color(200)) // unknown colors fall back to default

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "SCORE")
	assert.Contains(t, lines[1], "████")
	assert.Contains(t, lines[2], "░")
}

// recordingGame captures the frames it receives.
type recordingGame struct {
	frames   []core.InputFrame
	resets   []core.RuntimeConfig
	reset    bool
	rendered int
}

func (g *recordingGame) ID() string    { return "recording" }
func (g *recordingGame) Title() string { return "Recording" }

func (g *recordingGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
}

func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: core.GameState{Score: len(g.frames)}, Reset: g.reset}
}

func (g *recordingGame) Render(dst *core.Screen) {
	g.rendered++
	dst.DrawText(0, 0, "WELL")
}

func (g *recordingGame) State() core.GameState { return core.GameState{} }

func newTestModel(g *recordingGame) Model {
	return NewModel(g, core.RuntimeConfig{ScreenW: 100, ScreenH: 24, TickRate: 60, Seed: 7}, nil)
}

func TestModelInit(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g)

	cmd := m.Init()
	assert.NotNil(t, cmd, "Init should start the tick loop")
	require.Len(t, g.resets, 1)
	assert.Equal(t, int64(7), g.resets[0].Seed)
	assert.Equal(t, 23, g.resets[0].ScreenH, "one row is reserved for the help footer")
}

func TestModelQueuesKeysUntilTick(t *testing.T) {
	g := &recordingGame{}
	var m tea.Model = newTestModel(g)

	m, _ = m.Update(runeKey('h'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(runeKey('x'))
	assert.Empty(t, g.frames, "keys must not step the game")

	m, cmd := m.Update(TickMsg(time.Now()))
	assert.NotNil(t, cmd, "tick should schedule the next tick")
	require.Len(t, g.frames, 1)
	assert.Equal(t, []core.Action{core.ActionLeft, core.ActionLeft, core.ActionRotate}, g.frames[0].Actions)

	_, _ = m.Update(TickMsg(time.Now()))
	require.Len(t, g.frames, 2)
	assert.Empty(t, g.frames[1].Actions, "input should be cleared after each tick")
}

func TestModelQuit(t *testing.T) {
	g := &recordingGame{}
	m, cmd := newTestModel(g).Update(runeKey('q'))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelHelpToggle(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g)
	assert.Equal(t, 23, m.screen.Height())

	updated, _ := m.Update(runeKey('?'))
	m = updated.(Model)
	assert.True(t, m.help.ShowAll)
	assert.Equal(t, 20, m.screen.Height(), "full help takes four rows")
	assert.Contains(t, m.View(), "new board")

	updated, _ = m.Update(runeKey('?'))
	m = updated.(Model)
	assert.Equal(t, 23, m.screen.Height())
}

func TestModelResize(t *testing.T) {
	g := &recordingGame{}
	updated, _ := newTestModel(g).Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m := updated.(Model)

	assert.Equal(t, 120, m.screen.Width())
	assert.Equal(t, 29, m.screen.Height())
	assert.Empty(t, g.resets, "resizing must not restart the game")
}

func TestModelView(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g)

	view := m.View()
	assert.Equal(t, 1, g.rendered)
	assert.Contains(t, view, "WELL")
	assert.Contains(t, view, "quit")
	assert.Len(t, strings.Split(view, "\n"), 24)
}
