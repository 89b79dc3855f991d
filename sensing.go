package greenflag

import "math"

// TouchingEdge reports whether the sprite touches a stage edge.
func (c *ScriptContext) TouchingEdge() bool {
	a := c.sprite("touching edge")
	if a == nil {
		return false
	}
	touching, _ := c.rt.stage.IsTouchingStageEdge(a.Position(), a.ScaledSize())
	return touching
}

// TouchingActor reports whether the sprite's box overlaps any visible
// instance of the sprite named name, clones included.
func (c *ScriptContext) TouchingActor(name string) bool {
	a := c.sprite("touching " + name)
	if a == nil {
		return false
	}
	r := a.Rect()
	for _, other := range c.rt.instances(name) {
		if other == a || !other.visible {
			continue
		}
		if OverlapsAABB(r, other.Rect()) {
			return true
		}
	}
	return false
}

// TouchingMouse reports whether the pointer is over the sprite's box.
func (c *ScriptContext) TouchingMouse() bool {
	a := c.sprite("touching mouse-pointer")
	if a == nil {
		return false
	}
	p := c.rt.pointer
	return a.Rect().Contains(p.X, p.Y)
}

// KeyPressed reports whether key k is held down. KeyAny matches any key.
func (c *ScriptContext) KeyPressed(k Key) bool { return c.rt.scene.KeyHeld(k) }

// MouseX returns the pointer's logical x coordinate.
func (c *ScriptContext) MouseX() float64 { return c.rt.pointer.X }

// MouseY returns the pointer's logical y coordinate.
func (c *ScriptContext) MouseY() float64 { return c.rt.pointer.Y }

// DistanceTo returns the distance between the sprite's center and the
// sprite named name, or 10000 when either is missing.
func (c *ScriptContext) DistanceTo(name string) float64 {
	a := c.sprite("distance to " + name)
	if a == nil {
		return 10000
	}
	other, ok := c.rt.Sprite(name)
	if !ok {
		c.unresolved("distance to " + name)
		return 10000
	}
	return other.Position().Sub(a.Position()).Len()
}

// PickRandom returns a uniformly random integer in [lo, hi]. The bounds may
// come in either order.
func (c *ScriptContext) PickRandom(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	// The span is computed in uint64 so the full int range does not wrap.
	span := uint64(hi) - uint64(lo)
	if span == math.MaxUint64 {
		return int(c.rt.rng.Uint64())
	}
	return lo + int(c.rt.rng.Uint64N(span+1))
}
