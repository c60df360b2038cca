package tiles

// Roller draws uniform integers; implemented by the session RNG.
type Roller interface {
	// IntRange returns a uniform integer in [lo, hi].
	IntRange(lo, hi int) int
}

// Question brick payout bounds (inclusive).
const (
	QuestionMinPoints = 25
	QuestionMaxPoints = 300
)

// GenericPoints is awarded for codes without a table entry.
const GenericPoints = 100

var pointTable = map[Code]uint64{
	LegacySimple:   100,
	Simple:         100,
	MultiHit1:      150,
	MultiHit2:      200,
	MultiHit3:      250,
	MultiHit4:      300,
	GravityZero:    150,
	GravityLow:     150,
	GravityMedium:  200,
	GravityHigh:    250,
	GravityRandom:  300,
	PaddleWiden:    100,
	PaddleShrink:   100,
	HazardTrigger:  50,
	ExtraLife:      0,
	PaddleOnly:     500,
	Indestructible: 0,
}

// Points returns the score awarded for destroying a brick with the given code.
// Question bricks roll their value at the moment of destruction.
func Points(code Code, roll Roller) uint64 {
	if code == Question {
		if roll == nil {
			return QuestionMinPoints
		}
		return uint64(roll.IntRange(QuestionMinPoints, QuestionMaxPoints)) //#nosec G115 -- range is positive
	}
	if p, ok := pointTable[code]; ok {
		return p
	}
	return GenericPoints
}
