// Package registry lets the terminal and SSH front ends create game sessions
// by ID. The brickfall game registers itself from the breakout package's
// init, so every menu selection or SSH connection gets its own instance with
// no state shared between players.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/brickfall/internal/core"
)

// Game is what the front ends drive once per tick. Implementations never
// import Bubble Tea; key mapping, timing and drawing to a terminal belong to
// the platform.
//
// A game may also expose SetStartLevel(n int) to honor the level menu and
// RunInfo() (ticks uint64, cheat bool) so finished runs can be recorded.
type Game interface {
	// ID identifies the game for the CLI and score storage ("brickfall").
	ID() string

	// Title is the display name shown on menus and the scoreboard.
	Title() string

	// Reset starts a fresh run: config is reloaded, levels are reopened and
	// the seed from cfg feeds the session RNG.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of actions (steer, pause, restart, level
	// switch, cheat) and advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the HUD and play field into a pre-cleared buffer.
	Render(dst *core.Screen)

	// State reports score, lives, level and the terminal flags.
	State() core.GameState
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a factory under id. Registering the same id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
