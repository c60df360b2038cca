package physics

// Config is the engine-wide configuration record. The world may run without
// one installed, in which case global gravity is unavailable.
type Config struct {
	Gravity Vec3
}

// World is an arena of bodies with deferred eviction. Bodies marked for
// removal stay readable until FlushRemovals runs, so consumers later in the
// same tick can still inspect them.
type World struct {
	bodies  map[EntityID]*Body
	order   []EntityID
	nextID  EntityID
	marked  map[EntityID]struct{}
	pending []EntityID
	config  *Config
	tracker *ContactTracker

	// Substeps splits every Step into smaller integration steps.
	Substeps int
}

// NewWorld creates an empty world with no engine config installed.
func NewWorld() *World {
	return &World{
		bodies:   make(map[EntityID]*Body),
		marked:   make(map[EntityID]struct{}),
		tracker:  NewContactTracker(),
		Substeps: 2,
	}
}

// InstallConfig installs (or replaces) the engine config record.
func (w *World) InstallConfig(cfg Config) {
	c := cfg
	w.config = &c
}

// RemoveConfig drops the engine config record.
func (w *World) RemoveConfig() {
	w.config = nil
}

// Config returns the engine config record, or nil when none is installed.
func (w *World) Config() *Config {
	return w.config
}

// Spawn inserts a body and returns its new ID.
func (w *World) Spawn(b Body) EntityID {
	w.nextID++
	b.ID = w.nextID
	body := b
	w.bodies[b.ID] = &body
	w.order = append(w.order, b.ID)
	return b.ID
}

// Get returns the body with the given ID.
func (w *World) Get(id EntityID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Exists reports whether the body is present (marked bodies still exist).
func (w *World) Exists(id EntityID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Despawn removes a body immediately. Returns false if it was not present.
func (w *World) Despawn(id EntityID) bool {
	if _, ok := w.bodies[id]; !ok {
		return false
	}
	delete(w.bodies, id)
	if _, ok := w.marked[id]; ok {
		delete(w.marked, id)
		w.pending = removeID(w.pending, id)
	}
	w.order = removeID(w.order, id)
	w.tracker.Forget(id)
	return true
}

// MarkForRemoval schedules a body for removal at the next FlushRemovals.
// Returns false if the body is missing or already marked.
func (w *World) MarkForRemoval(id EntityID) bool {
	if _, ok := w.bodies[id]; !ok {
		return false
	}
	if _, ok := w.marked[id]; ok {
		return false
	}
	w.marked[id] = struct{}{}
	w.pending = append(w.pending, id)
	return true
}

// Marked reports whether the body is scheduled for removal.
func (w *World) Marked(id EntityID) bool {
	_, ok := w.marked[id]
	return ok
}

// FlushRemovals removes every marked body and returns copies of them in
// marking order.
func (w *World) FlushRemovals() []Body {
	if len(w.pending) == 0 {
		return nil
	}
	removed := make([]Body, 0, len(w.pending))
	pending := w.pending
	w.pending = nil
	for _, id := range pending {
		b, ok := w.bodies[id]
		if !ok {
			continue
		}
		removed = append(removed, *b)
		delete(w.marked, id)
		delete(w.bodies, id)
		w.order = removeID(w.order, id)
		w.tracker.Forget(id)
	}
	return removed
}

// Each returns the bodies of a kind in spawn order.
func (w *World) Each(kind Kind) []*Body {
	var out []*Body
	for _, id := range w.order {
		if b := w.bodies[id]; b != nil && b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

// Count returns how many bodies of a kind exist.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, id := range w.order {
		if b := w.bodies[id]; b != nil && b.Kind == kind {
			n++
		}
	}
	return n
}

// DespawnKind removes every body of the given kind and returns how many
// were removed.
func (w *World) DespawnKind(kind Kind) int {
	n := 0
	for _, b := range w.Each(kind) {
		if w.Despawn(b.ID) {
			n++
		}
	}
	return n
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

func removeID(ids []EntityID, id EntityID) []EntityID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
