package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickfall/internal/core"
)

// ansiPalette holds the terminal color for each core.Color, indexed by value.
var ansiPalette = [...]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// The ball, free paddle and hazards move every tick; bold keeps them
// readable against the brick wall.
var boldColors = map[core.Color]bool{
	core.ColorBrightWhite: true,
	core.ColorBrightRed:   true,
}

var cellStyles = buildCellStyles()

func buildCellStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(ansiPalette))
	for i, code := range ansiPalette {
		st := lipgloss.NewStyle()
		if code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		if boldColors[core.Color(i)] { //#nosec G115 -- palette index fits uint8
			st = st.Bold(true)
		}
		styles[i] = st
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen converts the frame buffer into styled terminal text. Each
// row is split into runs of one color so a run costs a single escape
// sequence; default-colored runs are written unstyled.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	row := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			row = row[:0]
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				row = append(row, cell.Rune)
			}
			if color == core.ColorDefault {
				sb.WriteString(string(row))
				continue
			}
			sb.WriteString(styleFor(color).Render(string(row)))
		}
	}
	return sb.String()
}
