// Package tiles defines the brick type codes used in level matrices and
// classifies each code into the behavior it triggers on contact.
package tiles

// Code is the integer tag stored in a level matrix cell.
type Code int

// Canonical tile codes.
const (
	Empty        Code = 0
	PaddleSpawn  Code = 1
	BallSpawn    Code = 2
	LegacySimple Code = 3
	Simple       Code = 20 // Terminal code of the multi-hit group

	MultiHit1 Code = 10 // Weakest multi-hit brick, next hit turns it Simple
	MultiHit2 Code = 11
	MultiHit3 Code = 12
	MultiHit4 Code = 13

	GravityZero   Code = 21
	GravityLow    Code = 22
	GravityMedium Code = 23
	GravityHigh   Code = 24
	GravityRandom Code = 25

	PaddleWiden  Code = 30
	PaddleShrink Code = 32

	HazardTrigger  Code = 36
	ExtraLife      Code = 41
	Question       Code = 50
	PaddleOnly     Code = 57
	Indestructible Code = 90
)

// Kind enumerates every behavior a tile code can have.
type Kind int

const (
	KindUnknown Kind = iota // Code outside the canonical table
	KindEmpty
	KindPaddleSpawn
	KindBallSpawn
	KindSimple
	KindMultiHit
	KindGravity
	KindPaddleResize
	KindHazardTrigger
	KindExtraLife
	KindQuestion
	KindPaddleOnly
	KindIndestructible
)

// String returns the behavior name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPaddleSpawn:
		return "paddle-spawn"
	case KindBallSpawn:
		return "ball-spawn"
	case KindSimple:
		return "simple"
	case KindMultiHit:
		return "multi-hit"
	case KindGravity:
		return "gravity"
	case KindPaddleResize:
		return "paddle-resize"
	case KindHazardTrigger:
		return "hazard-trigger"
	case KindExtraLife:
		return "extra-life"
	case KindQuestion:
		return "question"
	case KindPaddleOnly:
		return "paddle-only"
	case KindIndestructible:
		return "indestructible"
	default:
		return "unknown"
	}
}

// Behavior is the classified view of a tile code.
type Behavior struct {
	Kind Kind
	Code Code
}

// Classify maps a tile code to its behavior.
func Classify(code Code) Behavior {
	b := Behavior{Code: code}
	switch code {
	case Empty:
		b.Kind = KindEmpty
	case PaddleSpawn:
		b.Kind = KindPaddleSpawn
	case BallSpawn:
		b.Kind = KindBallSpawn
	case LegacySimple, Simple:
		b.Kind = KindSimple
	case MultiHit1, MultiHit2, MultiHit3, MultiHit4:
		b.Kind = KindMultiHit
	case GravityZero, GravityLow, GravityMedium, GravityHigh, GravityRandom:
		b.Kind = KindGravity
	case PaddleWiden, PaddleShrink:
		b.Kind = KindPaddleResize
	case HazardTrigger:
		b.Kind = KindHazardTrigger
	case ExtraLife:
		b.Kind = KindExtraLife
	case Question:
		b.Kind = KindQuestion
	case PaddleOnly:
		b.Kind = KindPaddleOnly
	case Indestructible:
		b.Kind = KindIndestructible
	default:
		b.Kind = KindUnknown
	}
	return b
}

// Known reports whether the code belongs to the canonical table.
func Known(code Code) bool {
	return Classify(code).Kind != KindUnknown
}

// IsBrick reports whether the behavior spawns a brick entity.
// Spawn markers and empty cells do not.
func (b Behavior) IsBrick() bool {
	switch b.Kind {
	case KindEmpty, KindPaddleSpawn, KindBallSpawn, KindUnknown:
		return false
	default:
		return true
	}
}

// CountsTowardCompletion reports whether the level cannot be cleared while
// a brick with this behavior remains.
func (b Behavior) CountsTowardCompletion() bool {
	if !b.IsBrick() {
		return false
	}
	return b.Kind != KindIndestructible && b.Kind != KindPaddleOnly
}

// StepDown returns the code a multi-hit brick takes after one hit.
// The weakest multi-hit code turns into Simple. ok is false for any code
// outside the multi-hit group.
func StepDown(code Code) (next Code, ok bool) {
	switch code {
	case MultiHit1:
		return Simple, true
	case MultiHit2, MultiHit3, MultiHit4:
		return code - 1, true
	default:
		return code, false
	}
}

// HitsToDestroy returns how many ball hits remove a brick with this code.
// Indestructible and paddle-only bricks return 0.
func HitsToDestroy(code Code) int {
	b := Classify(code)
	switch b.Kind {
	case KindMultiHit:
		return int(code-MultiHit1) + 2
	case KindIndestructible, KindPaddleOnly:
		return 0
	default:
		if !b.IsBrick() {
			return 0
		}
		return 1
	}
}
