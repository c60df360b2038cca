package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/storage"
)

const fakeGameID = "tui-fake"

// fakeGame records what the model feeds it and reports a scripted state.
type fakeGame struct {
	state      core.GameState
	ticks      uint64
	resets     int
	startLevel int
	inputs     []core.InputFrame
}

func (g *fakeGame) ID() string { return fakeGameID }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(_ core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) SetStartLevel(n int) { g.startLevel = n }
func (g *fakeGame) RunInfo() (uint64, bool) { return g.ticks, false }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.ticks++
	frame := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			frame.Set(a)
		}
	}
	g.inputs = append(g.inputs, frame)
	return core.StepResult{State: g.state}
}

func init() {
	registry.Register(fakeGameID, func() registry.Game { return &fakeGame{} })
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestModelSteerHold(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig(), nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	hold := holdTicks(60)
	for range hold + 2 {
		m = update(t, m, TickMsg{})
	}

	if len(game.inputs) != hold+2 {
		t.Fatalf("game stepped %d times, want %d", len(game.inputs), hold+2)
	}
	for i, in := range game.inputs {
		want := i < hold
		if in.Has(core.ActionLeft) != want {
			t.Errorf("tick %d: left held = %v, want %v", i, in.Has(core.ActionLeft), want)
		}
	}
}

func TestModelForwardsCommands(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig(), nil)

	m = update(t, m, runeKey('n'))
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if !game.inputs[0].Has(core.ActionLevelSwitch) {
		t.Error("first tick should carry the level switch")
	}
	if game.inputs[1].Has(core.ActionLevelSwitch) {
		t.Error("commands should only be delivered once")
	}
}

func TestModelRecordsEndedRunOnce(t *testing.T) {
	store := openTestStore(t)
	game := &fakeGame{}
	m := NewModel(game, store, testConfig(), nil).WithStartLevel(2)
	if game.startLevel != 2 {
		t.Fatalf("start level = %d, want 2", game.startLevel)
	}

	m = update(t, m, TickMsg{})
	game.state = core.GameState{Score: 120, Level: 3, GameOver: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	runs, err := store.RecentRuns(fakeGameID, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.Outcome != storage.OutcomeGameOver || r.Score != 120 || r.StartLevel != 2 || r.Level != 3 {
		t.Errorf("run = %+v", r)
	}
	if best, _ := store.HighScore(fakeGameID); best != 120 {
		t.Errorf("high score = %d, want 120", best)
	}

	// Restarting re-arms recording for the next ending.
	game.state = core.GameState{Level: 2}
	m = update(t, m, TickMsg{})
	game.state = core.GameState{Score: 40, Level: 4, Finished: true}
	update(t, m, TickMsg{})

	runs, _ = store.RecentRuns(fakeGameID, 10)
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].Outcome != storage.OutcomeFinished {
		t.Errorf("latest outcome = %q, want %q", runs[0].Outcome, storage.OutcomeFinished)
	}
}

func TestModelQuitRecordsUnfinishedRun(t *testing.T) {
	store := openTestStore(t)
	game := &fakeGame{}
	m := NewModel(game, store, testConfig(), nil)

	game.state = core.GameState{Score: 80, Level: 1}
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('q'))

	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	runs, _ := store.RecentRuns(fakeGameID, 10)
	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeQuit {
		t.Fatalf("runs = %+v, want one quit run", runs)
	}
	if best, _ := store.HighScore(fakeGameID); best != 0 {
		t.Errorf("quit runs should not enter the high scores, got %d", best)
	}
}

func TestModelQuitBeforeFirstTickRecordsNothing(t *testing.T) {
	store := openTestStore(t)
	m := NewModel(&fakeGame{}, store, testConfig(), nil)

	update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	runs, _ := store.RecentRuns(fakeGameID, 10)
	if len(runs) != 0 {
		t.Errorf("runs = %d, want 0", len(runs))
	}
}

func TestModelBackToMenu(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, testConfig(), nil)
	m.embedded = true

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("back = %v quitting = %v, want back only", m.BackToMenu(), m.IsQuitting())
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig(), nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resets != 0 {
		t.Errorf("resize reset the game %d times", game.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 100x39", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "fake") {
		t.Error("view should contain the game render")
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	levels := []LevelInfo{{Number: 1, Bricks: 10}, {Number: 2, Bricks: 12}}
	s := NewSessionModel(nil, testConfig(), fakeGameID, levels, nil)

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T, want SessionModel", next)
		}
		s = sm
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame || s.game == nil {
		t.Fatalf("screen = %v, want game", s.screen)
	}
	fg, ok := s.game.game.(*fakeGame)
	if !ok {
		t.Fatalf("game is %T", s.game.game)
	}
	if fg.startLevel != 2 || fg.resets != 1 {
		t.Errorf("start level = %d resets = %d, want 2 and 1", fg.startLevel, fg.resets)
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu || s.quitting {
		t.Errorf("screen = %v quitting = %v, want menu", s.screen, s.quitting)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Errorf("screen = %v, want menu", s.screen)
	}

	step(runeKey('q'))
	if !s.quitting {
		t.Error("q in the menu should end the session")
	}
}
