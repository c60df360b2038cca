package physics

import "math"

// Contact reports that two bodies started touching during a Step.
type Contact struct {
	A, B         EntityID
	KindA, KindB Kind
}

// Match returns the IDs ordered as (first of kind k1, second of kind k2).
func (c Contact) Match(k1, k2 Kind) (EntityID, EntityID, bool) {
	if c.KindA == k1 && c.KindB == k2 {
		return c.A, c.B, true
	}
	if c.KindB == k1 && c.KindA == k2 {
		return c.B, c.A, true
	}
	return 0, 0, false
}

// Involves reports whether either side has the given kind.
func (c Contact) Involves(k Kind) bool {
	return c.KindA == k || c.KindB == k
}

// paddleDeflection controls how much the hit offset on a paddle steers the
// ball across the field.
const paddleDeflection = 0.75

// Step advances the simulation by dt seconds and returns the contacts that
// started during this step, in deterministic order.
func (w *World) Step(dt float64) []Contact {
	substeps := w.Substeps
	if substeps < 1 {
		substeps = 1
	}
	h := dt / float64(substeps)

	var touching []PairKey
	for range substeps {
		w.integrate(h)
		touching = append(touching, w.collide()...)
	}

	started := w.tracker.Update(touching)
	contacts := make([]Contact, 0, len(started))
	for _, k := range started {
		a, okA := w.bodies[k.A]
		b, okB := w.bodies[k.B]
		if !okA || !okB {
			continue
		}
		contacts = append(contacts, Contact{A: a.ID, B: b.ID, KindA: a.Kind, KindB: b.Kind})
	}
	return contacts
}

func (w *World) integrate(h float64) {
	var gravity Vec3
	if w.config != nil {
		gravity = w.config.Gravity
	}

	for _, id := range w.order {
		b := w.bodies[id]
		if b == nil || b.Static {
			continue
		}
		if b.Frozen {
			b.Vel = Zero
			continue
		}
		if b.UseGravity {
			b.Vel = b.Vel.Add(gravity.Scale(h))
		}
		b.Vel.Y = 0
		if b.MaxSpeed > 0 {
			if s := b.Vel.Len(); s > b.MaxSpeed {
				b.Vel = b.Vel.Scale(b.MaxSpeed / s)
			}
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(h))
		b.Pos.Y = 0
	}
}

// collide resolves circle-vs-box overlaps and detects paddle-vs-box
// overlaps, returning every touching pair.
func (w *World) collide() []PairKey {
	var touching []PairKey

	for _, cid := range w.order {
		c := w.bodies[cid]
		if c == nil || c.Shape != ShapeCircle {
			continue
		}
		for _, bid := range w.order {
			box := w.bodies[bid]
			if box == nil || box.Shape != ShapeBox {
				continue
			}
			if resolveCircleBox(c, box) {
				touching = append(touching, MakePair(c.ID, box.ID))
			}
		}
	}

	for _, pid := range w.order {
		p := w.bodies[pid]
		if p == nil || p.Kind != KindPaddle {
			continue
		}
		for _, bid := range w.order {
			box := w.bodies[bid]
			if box == nil || box.ID == p.ID || box.Shape != ShapeBox || box.Kind == KindPaddle {
				continue
			}
			if boxesOverlap(p, box) {
				touching = append(touching, MakePair(p.ID, box.ID))
			}
		}
	}

	return touching
}

func resolveCircleBox(c, box *Body) bool {
	hx, hz := box.Extents()
	if hx <= 0 || hz <= 0 {
		return false
	}
	r := c.Radius * c.EffectiveScale()

	cx := clamp(c.Pos.X, box.Pos.X-hx, box.Pos.X+hx)
	cz := clamp(c.Pos.Z, box.Pos.Z-hz, box.Pos.Z+hz)
	diff := Vec3{X: c.Pos.X - cx, Z: c.Pos.Z - cz}
	d := diff.Len()
	if d >= r {
		return false
	}
	if box.Sensor || c.Static || c.Frozen {
		return true
	}

	var n Vec3
	var push float64
	if d > 1e-9 {
		n = diff.Scale(1 / d)
		push = r - d
	} else {
		offX := c.Pos.X - box.Pos.X
		offZ := c.Pos.Z - box.Pos.Z
		penX := hx - math.Abs(offX)
		penZ := hz - math.Abs(offZ)
		if penX < penZ {
			n = Vec3{X: sign(offX)}
			push = penX + r
		} else {
			n = Vec3{Z: sign(offZ)}
			push = penZ + r
		}
	}

	c.Pos = c.Pos.Add(n.Scale(push))
	if vn := c.Vel.Dot(n); vn < 0 {
		c.Vel = c.Vel.Sub(n.Scale(2 * vn))
	}

	if box.Kind == KindPaddle && c.Kind == KindBall {
		deflect(c, box, hz)
	}
	return true
}

// deflect steers a ball leaving the paddle by where it hit, keeping its speed
// and sending it back up-field.
func deflect(ball, paddle *Body, hz float64) {
	speed := ball.Vel.Len()
	if speed == 0 || hz == 0 {
		return
	}
	offset := clamp((ball.Pos.Z-paddle.Pos.Z)/hz, -1, 1)
	vz := speed * paddleDeflection * offset
	vx := -math.Sqrt(math.Max(speed*speed-vz*vz, 0))
	ball.Vel = Vec3{X: vx, Z: vz}
}

func boxesOverlap(a, b *Body) bool {
	ax, az := a.Extents()
	bx, bz := b.Extents()
	return math.Abs(a.Pos.X-b.Pos.X) < ax+bx && math.Abs(a.Pos.Z-b.Pos.Z) < az+bz
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// SetVelocity overwrites a body's velocity. Returns false if it is missing.
func (w *World) SetVelocity(id EntityID, v Vec3) bool {
	b, ok := w.bodies[id]
	if !ok {
		return false
	}
	b.Vel = v
	return true
}

// ApplyImpulse adds an instantaneous velocity change (unit mass).
func (w *World) ApplyImpulse(id EntityID, impulse Vec3) bool {
	b, ok := w.bodies[id]
	if !ok {
		return false
	}
	b.Vel = b.Vel.Add(impulse)
	return true
}
