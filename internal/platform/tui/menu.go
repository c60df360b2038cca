package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/storage"
)

// LevelInfo describes one selectable level.
type LevelInfo struct {
	Number  int
	Bricks  int    // bricks that must be destroyed to clear the level
	Gravity string // empty when the level keeps zero gravity
}

// MenuModel is the Bubble Tea model for the start level picker.
type MenuModel struct {
	levels         []LevelInfo
	cursor         int
	width          int
	height         int
	gameID         string
	best           int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *LevelInfo // Set when user picks a level
	openScoreboard bool       // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The high score is read once from
// store when one is available.
func NewMenuModel(store *storage.Store, gameID string, levels []LevelInfo, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		levels:    levels,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		gameID:    gameID,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if best, err := store.HighScore(gameID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.levels) > 0 {
			selected := m.levels[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, "B R I C K F A L L", m.width))
	b.WriteString("\n\n")
	if m.best > 0 {
		b.WriteString(centerStyled(menuDimStyle, fmt.Sprintf("Best: %d", m.best), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText("Select a starting level", m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerStyled(menuDimStyle, "No levels found.", m.width))
		b.WriteString("\n")
	}

	for i, lvl := range m.levels {
		line := fmt.Sprintf("Level %2d  %3d bricks", lvl.Number, lvl.Bricks)
		if lvl.Gravity != "" {
			line += "  g=" + lvl.Gravity
		}
		if i == m.cursor {
			b.WriteString(centerStyled(menuCurStyle, "> "+line, m.width))
		} else {
			b.WriteString(centerText("  "+line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(menuDimStyle, controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *LevelInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

func centerStyled(style lipgloss.Style, text string, width int) string {
	return centerText(style.Render(text), width)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, gameID string, levels []LevelInfo, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, gameID, levels, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Level = m.Selected().Number
	default:
		result.Quit = true
	}

	return result, nil
}
