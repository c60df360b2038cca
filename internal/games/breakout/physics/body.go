package physics

// EntityID identifies a body in the world. IDs are never reused.
type EntityID uint64

// Kind tags what a body represents in the game.
type Kind int

const (
	KindBall Kind = iota
	KindPaddle
	KindBrick
	KindHazard
	KindWall
	KindGoal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	case KindBrick:
		return "brick"
	case KindHazard:
		return "hazard"
	case KindWall:
		return "wall"
	case KindGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Shape selects the collision primitive.
type Shape int

const (
	ShapeCircle Shape = iota // Radius in the XZ plane
	ShapeBox                 // Axis-aligned box with half extents
)

// Body is a positionally tracked entity.
type Body struct {
	ID    EntityID
	Kind  Kind
	Shape Shape

	Pos Vec3
	Vel Vec3

	Radius float64 // ShapeCircle
	HalfX  float64 // ShapeBox, before Scale
	HalfZ  float64 // ShapeBox, before Scale
	Scale  float64 // Uniform collision scale; 0 is treated as 1

	Static     bool // Never integrated or pushed
	Frozen     bool // Velocity forced to zero, not integrated
	Locked     bool // Ignores player steering (paddle)
	UseGravity bool // Receives the global gravity
	Sensor     bool // Reports contacts without bouncing
	MaxSpeed   float64

	Tag      int // Game data (brick tile code)
	Row, Col int // Level matrix cell for bricks
}

// EffectiveScale returns Scale, treating zero as full size.
func (b *Body) EffectiveScale() float64 {
	if b.Scale == 0 {
		return 1
	}
	return b.Scale
}

// Extents returns the scaled half extents of a box.
func (b *Body) Extents() (hx, hz float64) {
	s := b.EffectiveScale()
	return b.HalfX * s, b.HalfZ * s
}
