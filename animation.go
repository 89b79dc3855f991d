package greenflag

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 values for one actor simultaneously.
// Create one with TweenPosition and call Update(dt) each frame. Each Update
// hands the current values to the group's apply function. If the actor is
// deleted, the group stops immediately.
//
// There is no global animation manager; the glide block drives its own
// group from the script's thread.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(values [4]float64)
	target *Actor
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values. If the
// target actor has been deleted, Done is set and nothing is applied.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.deleted {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.apply != nil {
		g.apply(g.values)
	}
}

// TweenPosition creates a TweenGroup that moves a to the logical point to
// over duration seconds. Every step goes through the stage fence.
func TweenPosition(a *Actor, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := a.Position()
	g := &TweenGroup{count: 2, target: a}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.apply = func(v [4]float64) {
		moveTo(a, a.rt.stage, Vec2{v[0], v[1]})
	}
	return g
}

// TweenSize creates a TweenGroup that changes a's size percentage to
// percent over duration seconds.
func TweenSize(a *Actor, percent float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: a}
	g.tweens[0] = gween.New(float32(a.SizePercent()), float32(percent), duration, fn)
	g.apply = func(v [4]float64) {
		a.SetSizePercent(v[0])
	}
	return g
}
