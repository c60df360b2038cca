package core

// Color is the foreground of a screen cell. The palette is small on purpose:
// every entry below has a fixed job on the brickfall field, and the terminal
// front end maps each one to an ANSI code.
type Color uint8

const (
	ColorDefault Color = iota // HUD text, borders

	ColorRed     // toughest multi-hit brick (13)
	ColorGreen   // weakest multi-hit brick (10)
	ColorYellow  // multi-hit brick (11)
	ColorBlue    // paddle-only brick
	ColorMagenta // gravity bricks
	ColorCyan    // plain brick
	ColorWhite   // unknown tile code

	ColorBrightRed     // hazards and hazard bricks
	ColorBrightGreen   // extra life brick
	ColorBrightYellow  // question brick
	ColorBrightBlue    // paddle resize bricks
	ColorBrightMagenta // cheat marker in the HUD
	ColorBrightWhite   // ball and free paddle

	ColorOrange // multi-hit brick (12)
	ColorGray   // indestructible bricks, locked paddle, fade shading
)
