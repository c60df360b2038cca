package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/storage"
)

// Terminals report key presses but not releases, so a steering key keeps
// the paddle moving for a short window after the last repeat.
const steerHold = 120 * time.Millisecond

// runReporter is implemented by games that expose run statistics.
type runReporter interface {
	RunInfo() (ticks uint64, cheat bool)
}

// levelStarter is implemented by games that can start on a chosen level.
type levelStarter interface {
	SetStartLevel(n int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model

	steer      core.Action // ActionLeft, ActionRight or ActionNone
	steerTicks int

	startLevel int
	embedded   bool // Running inside a session that owns the menu
	saved      bool // Whether the current ended run has been recorded
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenRows(cfg.ScreenH)),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
	}
}

// screenRows leaves the last terminal line for the help bar.
func screenRows(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// WithStartLevel makes the game start on level n when the game supports it.
func (m Model) WithStartLevel(n int) Model {
	m.startLevel = n
	if ls, ok := m.game.(levelStarter); ok {
		ls.SetStartLevel(n)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.recordQuit()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keyMapper.Keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case action == core.ActionBack:
		m.recordQuit()
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
		return m, nil
	case action == core.ActionLeft, action == core.ActionRight:
		m.steer = action
		m.steerTicks = holdTicks(m.config.TickRate)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func holdTicks(tickRate int) int {
	n := int(steerHold * time.Duration(tickRate) / time.Second)
	return max(n, 1)
}

// handleResize processes window resize events. The simulation does not
// depend on the screen size, so only the buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, screenRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.steerTicks > 0 {
		m.inputFrame.Set(m.steer)
		m.steerTicks--
	}

	result := m.game.Step(m.inputFrame)
	for _, ev := range result.Events {
		m.logger.Debug("event", "name", ev, "level", result.State.Level)
	}

	wasEnded := m.gameState.Ended()
	m.gameState = result.State
	switch {
	case m.gameState.Ended() && !m.saved:
		m.recordRun(outcomeOf(m.gameState))
	case wasEnded && !m.gameState.Ended():
		// Restarted or revived through cheat mode.
		m.saved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func outcomeOf(s core.GameState) storage.Outcome {
	if s.Finished {
		return storage.OutcomeFinished
	}
	return storage.OutcomeGameOver
}

// recordQuit stores an unfinished run that made progress.
func (m *Model) recordQuit() {
	if m.saved || m.gameState.Ended() {
		return
	}
	if ticks, _ := m.runInfo(); ticks == 0 {
		return
	}
	m.recordRun(storage.OutcomeQuit)
}

// recordRun saves the score and run once per ended run. Best effort: the
// game continues regardless.
func (m *Model) recordRun(outcome storage.Outcome) {
	m.saved = true
	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 && outcome != storage.OutcomeQuit {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Warn("save score", "err", err)
		}
	}
	ticks, cheat := m.runInfo()
	run := storage.Run{
		GameID:     m.game.ID(),
		Score:      m.gameState.Score,
		StartLevel: max(m.startLevel, 1),
		Level:      m.gameState.Level,
		Outcome:    outcome,
		Cheat:      cheat,
		Ticks:      int64(min(ticks, 1<<62)), //#nosec G115 -- clamped
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("save run", "err", err)
		return
	}
	m.logger.Info("run recorded", "outcome", outcome, "score", run.Score, "level", run.Level)
}

func (m *Model) runInfo() (uint64, bool) {
	if rr, ok := m.game.(runReporter); ok {
		return rr.RunInfo()
	}
	return 0, false
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".brickfall", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "path", path, "err", err)
	}
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model. It reports
// whether the player left through the back key rather than quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, startLevel int, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, logger).WithStartLevel(startLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
