package gameplay

// RNG is a deterministic linear congruential generator. Its whole state is a
// single word so sessions can be snapshotted and replayed.
type RNG struct {
	state uint64
}

// NewRNG creates a generator from a seed; zero is mapped to one.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// State returns the internal state.
func (r *RNG) State() uint64 {
	return r.state
}

// Next advances the generator.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 11) % uint64(n)) //#nosec G115 -- n is always positive
}

// IntRange returns a value in [lo, hi].
func (r *RNG) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// FloatRange returns a value in [lo, hi).
func (r *RNG) FloatRange(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
