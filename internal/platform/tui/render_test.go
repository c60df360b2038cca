package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickfall/internal/core"
)

func TestRenderScreenKeepsLayout(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "Score: 40")
	s.SetColored(2, 1, '=', core.ColorBrightWhite)
	s.SetColored(3, 1, '=', core.ColorBrightWhite)
	s.SetColored(5, 1, '▓', core.ColorOrange)
	s.SetColored(11, 2, '!', core.ColorBrightRed)

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Errorf("line %d width = %d, want 12", i, w)
		}
	}
	if !strings.HasPrefix(lines[0], "Score: 40") {
		t.Errorf("default text should be written unstyled, got %q", lines[0])
	}
	for _, r := range []string{"==", "▓", "!"} {
		if !strings.Contains(RenderScreen(s), r) {
			t.Errorf("output missing %q", r)
		}
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	got := styleFor(core.Color(200)).Render("x")
	if got != cellStyles[core.ColorDefault].Render("x") {
		t.Errorf("unknown color should fall back to the default style, got %q", got)
	}
}
