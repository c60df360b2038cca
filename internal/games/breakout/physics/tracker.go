package physics

// PairKey identifies an unordered pair of bodies (A < B).
type PairKey struct {
	A, B EntityID
}

// MakePair orders two IDs into a PairKey.
func MakePair(a, b EntityID) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// ContactTracker remembers which pairs were touching on the previous step so
// that a contact is reported only when it starts.
type ContactTracker struct {
	active map[PairKey]bool
}

// NewContactTracker creates an empty tracker.
func NewContactTracker() *ContactTracker {
	return &ContactTracker{active: make(map[PairKey]bool)}
}

// Update replaces the active set with touching and returns the pairs that
// were not active before, in the order given.
func (ct *ContactTracker) Update(touching []PairKey) []PairKey {
	next := make(map[PairKey]bool, len(touching))
	var started []PairKey
	for _, k := range touching {
		if next[k] {
			continue
		}
		next[k] = true
		if !ct.active[k] {
			started = append(started, k)
		}
	}
	ct.active = next
	return started
}

// IsActive reports whether the pair was touching on the last step.
func (ct *ContactTracker) IsActive(k PairKey) bool {
	return ct.active[k]
}

// Forget drops every active pair involving id.
func (ct *ContactTracker) Forget(id EntityID) {
	for k := range ct.active {
		if k.A == id || k.B == id {
			delete(ct.active, k)
		}
	}
}

// Reset clears all tracked pairs.
func (ct *ContactTracker) Reset() {
	ct.active = make(map[PairKey]bool)
}
