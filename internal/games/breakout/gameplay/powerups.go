package gameplay

import (
	"math"

	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

// PaddleSizer applies the widen and shrink bricks to the paddle width.
type PaddleSizer struct {
	s *Session
}

// NewPaddleSizer creates a sizer bound to a session.
func NewPaddleSizer(s *Session) *PaddleSizer {
	return &PaddleSizer{s: s}
}

// Apply consumes this tick's destruction signals.
func (p *PaddleSizer) Apply() {
	s := p.s
	width := s.PaddleWidth
	for _, d := range s.Bus.Destroyed.Items() {
		switch d.Code {
		case tiles.PaddleWiden:
			width += s.Settings.PaddleWidthStep
		case tiles.PaddleShrink:
			width -= s.Settings.PaddleWidthStep
		}
	}
	width = math.Min(math.Max(width, s.Settings.PaddleWidthMin), s.Settings.PaddleWidthMax)
	if width == s.PaddleWidth {
		return
	}
	p.Set(width)
	s.Bus.PaddleResized.Emit(PaddleResized{Width: width})
}

// Set changes the width factor and resizes live paddles, keeping them inside
// the field.
func (p *PaddleSizer) Set(width float64) {
	s := p.s
	s.PaddleWidth = width
	for _, b := range s.World.Each(physics.KindPaddle) {
		b.HalfZ = PaddleHalfZ * width
		_, hz := b.Extents()
		b.Pos.Z = math.Min(math.Max(b.Pos.Z, hz), FieldWidth-hz)
	}
}
