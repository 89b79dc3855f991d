package greenflag

import (
	"math"

	"github.com/tanema/gween/ease"
)

// maxMoveBounces caps how many edges a single move steps can bounce off.
const maxMoveBounces = 4

// moveTolerance absorbs the rounding in direction vectors, so a sprite
// heading exactly along an axis never clips the perpendicular edges.
const moveTolerance = 1e-9

// --- View-level motion ---
//
// These work on any ActorView and clamp before writing back, so hosts with
// their own actor type can reuse them.

// moveTo places v at p, clamped by the stage fence.
func moveTo(v ActorView, st Stage, p Vec2) {
	v.SetPosition(st.ClampCenter(p, v.ScaledSize()))
}

// moveSteps moves v along its direction. A move that would carry the box
// off the stage travels to the edge, reflects, and spends what is left of
// the distance in the new direction. Negative steps move backwards and the
// facing direction reflects the same way.
func moveSteps(v ActorView, st Stage, steps float64) {
	if steps == 0 || math.IsNaN(steps) {
		return
	}
	sign := 1.0
	if steps < 0 {
		sign, steps = -1, -steps
	}
	size := v.ScaledSize()
	in := st.InnerExtents(size)
	pos := v.Position()
	heading := DirectionVector(v.Direction()).Scale(sign)

	bounced := false
	remaining := steps
	for i := 0; i < maxMoveBounces && remaining > moveTolerance; i++ {
		target := pos.Add(heading.Scale(remaining))
		if insideTolerant(in, target) {
			pos = target
			break
		}
		if travel := min(travelToEdge(in, pos, heading), remaining); travel > 0 {
			pos = pos.Add(heading.Scale(travel))
			remaining -= travel
		}
		touching, n := st.IsTouchingStageEdge(pos, size)
		if !touching || heading.Dot(n) <= moveTolerance {
			break
		}
		heading = heading.Reflect(n)
		pos = st.ClampInside(pos, size)
		bounced = true
	}

	v.SetPosition(st.ClampCenter(pos, size))
	if bounced {
		v.SetDirection(DirectionOf(heading.Scale(sign)))
	}
}

// travelToEdge returns the distance pos can travel along the unit vector
// heading before leaving in, or +Inf when no boundary lies ahead.
func travelToEdge(in Rect, pos, heading Vec2) float64 {
	best := math.Inf(1)
	axis := func(p, d, lo, hi float64) {
		var t float64
		switch {
		case d > moveTolerance:
			t = (hi - p) / d
		case d < -moveTolerance:
			t = (lo - p) / d
		default:
			return
		}
		// Already past the boundary ahead: no travel left on this axis.
		best = min(best, max(t, 0))
	}
	axis(pos.X, heading.X, in.X, in.X+in.Width)
	axis(pos.Y, heading.Y, in.Y, in.Y+in.Height)
	return best
}

func insideTolerant(in Rect, p Vec2) bool {
	return p.X >= in.X-moveTolerance && p.X <= in.X+in.Width+moveTolerance &&
		p.Y >= in.Y-moveTolerance && p.Y <= in.Y+in.Height+moveTolerance
}

// bounceIfOnEdge reflects v's direction off a touched stage edge and pulls
// it back inside. A direction that already points inward is kept; only the
// clamp applies.
func bounceIfOnEdge(v ActorView, st Stage) bool {
	pos, size := v.Position(), v.ScaledSize()
	touching, n := st.IsTouchingStageEdge(pos, size)
	if !touching {
		return false
	}
	dir := DirectionVector(v.Direction())
	reflected, clamped := st.BounceDirectionAndClamp(pos, dir, size)
	if dir.Dot(n) > 0 {
		v.SetDirection(DirectionOf(reflected))
	}
	v.SetPosition(clamped)
	return true
}

// --- Motion blocks ---

// MoveSteps moves the sprite steps units along its direction.
func (c *ScriptContext) MoveSteps(steps float64) {
	if a := c.sprite("move steps"); a != nil {
		moveSteps(a, c.rt.stage, steps)
	}
}

// TurnRight rotates the sprite clockwise by deg.
func (c *ScriptContext) TurnRight(deg float64) {
	if a := c.sprite("turn right"); a != nil {
		a.SetDirection(a.Direction() + deg)
	}
}

// TurnLeft rotates the sprite counter-clockwise by deg.
func (c *ScriptContext) TurnLeft(deg float64) {
	if a := c.sprite("turn left"); a != nil {
		a.SetDirection(a.Direction() - deg)
	}
}

// PointInDirection sets the sprite's Scratch direction.
func (c *ScriptContext) PointInDirection(deg float64) {
	if a := c.sprite("point in direction"); a != nil {
		a.SetDirection(deg)
	}
}

// PointTowards turns the sprite to face the sprite named name. Facing
// itself, or a sprite at the same position, leaves the direction alone.
func (c *ScriptContext) PointTowards(name string) {
	a := c.sprite("point towards")
	if a == nil {
		return
	}
	other, ok := c.rt.Sprite(name)
	if !ok || other == a {
		c.unresolved("point towards " + name)
		return
	}
	d := other.Position().Sub(a.Position())
	if d.IsZero() {
		return
	}
	a.SetDirection(DirectionOf(d))
}

// PointTowardsMouse turns the sprite to face the pointer.
func (c *ScriptContext) PointTowardsMouse() {
	a := c.sprite("point towards mouse-pointer")
	if a == nil {
		return
	}
	if d := c.rt.pointer.Sub(a.Position()); !d.IsZero() {
		a.SetDirection(DirectionOf(d))
	}
}

// GoToXY moves the sprite to (x, y).
func (c *ScriptContext) GoToXY(x, y float64) {
	if a := c.sprite("go to x y"); a != nil {
		moveTo(a, c.rt.stage, Vec2{x, y})
	}
}

// GoToRandomPosition moves the sprite to a random point on the stage.
func (c *ScriptContext) GoToRandomPosition() {
	if a := c.sprite("go to random position"); a != nil {
		moveTo(a, c.rt.stage, c.rt.stage.RandomPosition(c.rt.rng))
	}
}

// GoToMouse moves the sprite to the pointer.
func (c *ScriptContext) GoToMouse() {
	if a := c.sprite("go to mouse-pointer"); a != nil {
		moveTo(a, c.rt.stage, c.rt.pointer)
	}
}

// GoToActor moves the sprite to the sprite named name.
func (c *ScriptContext) GoToActor(name string) {
	a := c.sprite("go to " + name)
	if a == nil {
		return
	}
	other, ok := c.rt.Sprite(name)
	if !ok {
		c.unresolved("go to " + name)
		return
	}
	moveTo(a, c.rt.stage, other.Position())
}

// ChangeXBy moves the sprite horizontally.
func (c *ScriptContext) ChangeXBy(dx float64) {
	if a := c.sprite("change x by"); a != nil {
		moveTo(a, c.rt.stage, a.Position().Add(Vec2{dx, 0}))
	}
}

// ChangeYBy moves the sprite vertically.
func (c *ScriptContext) ChangeYBy(dy float64) {
	if a := c.sprite("change y by"); a != nil {
		moveTo(a, c.rt.stage, a.Position().Add(Vec2{0, dy}))
	}
}

// SetX sets the sprite's x coordinate.
func (c *ScriptContext) SetX(x float64) {
	if a := c.sprite("set x to"); a != nil {
		moveTo(a, c.rt.stage, Vec2{x, a.Position().Y})
	}
}

// SetY sets the sprite's y coordinate.
func (c *ScriptContext) SetY(y float64) {
	if a := c.sprite("set y to"); a != nil {
		moveTo(a, c.rt.stage, Vec2{a.Position().X, y})
	}
}

// GlideTo moves the sprite to (x, y) linearly over secs of simulated time,
// one step per frame. The sprite lands exactly on the target.
func (c *ScriptContext) GlideTo(secs, x, y float64) {
	if a := c.sprite("glide"); a != nil {
		c.glide(a, secs, Vec2{x, y})
	}
}

// GlideToRandomPosition glides the sprite to a random point on the stage.
func (c *ScriptContext) GlideToRandomPosition(secs float64) {
	if a := c.sprite("glide to random position"); a != nil {
		c.glide(a, secs, c.rt.stage.RandomPosition(c.rt.rng))
	}
}

// GlideToMouse glides the sprite to where the pointer was when the block
// started.
func (c *ScriptContext) GlideToMouse(secs float64) {
	if a := c.sprite("glide to mouse-pointer"); a != nil {
		c.glide(a, secs, c.rt.pointer)
	}
}

// GlideToActor glides the sprite to where the sprite named name was when
// the block started.
func (c *ScriptContext) GlideToActor(secs float64, name string) {
	a := c.sprite("glide to " + name)
	if a == nil {
		return
	}
	other, ok := c.rt.Sprite(name)
	if !ok {
		c.unresolved("glide to " + name)
		return
	}
	c.glide(a, secs, other.Position())
}

// GlideBy glides the sprite by (dx, dy) from its current position.
func (c *ScriptContext) GlideBy(secs, dx, dy float64) {
	if a := c.sprite("glide by"); a != nil {
		c.glide(a, secs, a.Position().Add(Vec2{dx, dy}))
	}
}

// glide tweens a to target and yields once per frame until it arrives.
// secs <= 0 jumps.
func (c *ScriptContext) glide(a *Actor, secs float64, target Vec2) {
	if !(secs > 0) {
		moveTo(a, c.rt.stage, target)
		return
	}
	tw := TweenPosition(a, target, float32(secs), ease.Linear)
	for !tw.Done {
		c.Yield()
		tw.Update(float32(c.rt.sched.Delta()))
	}
	if !a.deleted {
		moveTo(a, c.rt.stage, target)
	}
}

// BounceIfOnEdge bounces the sprite off any stage edge it touches.
func (c *ScriptContext) BounceIfOnEdge() {
	if a := c.sprite("if on edge, bounce"); a != nil {
		bounceIfOnEdge(a, c.rt.stage)
	}
}

// SetRotationStyle changes how the sprite shows its direction.
func (c *ScriptContext) SetRotationStyle(s RotationStyle) {
	if a := c.sprite("set rotation style"); a != nil {
		a.SetRotationStyle(s)
	}
}

// --- Reporters ---

// X returns the sprite's x coordinate, or 0 without a sprite.
func (c *ScriptContext) X() float64 {
	if a := c.sprite("x position"); a != nil {
		return a.Position().X
	}
	return 0
}

// Y returns the sprite's y coordinate, or 0 without a sprite.
func (c *ScriptContext) Y() float64 {
	if a := c.sprite("y position"); a != nil {
		return a.Position().Y
	}
	return 0
}

// Direction returns the sprite's direction, or 90 without a sprite.
func (c *ScriptContext) Direction() float64 {
	if a := c.sprite("direction"); a != nil {
		return a.Direction()
	}
	return 90
}
