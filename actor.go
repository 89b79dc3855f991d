package greenflag

import "math"

// ActorView is the narrow contract motion blocks use to read and write an
// actor. Positions are logical; directions are Scratch degrees. Callers
// clamp before calling SetPosition.
type ActorView interface {
	OwnerID() string
	Position() Vec2
	ScaledSize() Vec2
	Direction() float64
	SetPosition(p Vec2)
	SetDirection(deg float64)
}

// Actor is a sprite, a clone of one, or the stage target. Sprites and
// clones render through a scene-graph node; the stage target has none.
type Actor struct {
	rt   *Runtime
	id   string
	name string
	node *Node

	costume Vec2    // unscaled size
	pos     Vec2    // logical center
	dir     float64 // Scratch degrees in (-180, 180]
	size    float64 // percent
	style   RotationStyle
	visible bool

	clone   bool
	deleted bool
	scripts *scriptSet
	subs    []Subscription
	vars    variableSet
}

var _ ActorView = (*Actor)(nil)

func spriteOwnerID(name string) string { return "sprite/" + name }

// NewSprite adds a sprite with a solid color costume of the given size,
// centered on the stage and facing right. Panics if name is already used.
func (rt *Runtime) NewSprite(name string, width, height float64, c Color) *Actor {
	id := spriteOwnerID(name)
	if _, dup := rt.byOwner[id]; dup {
		panic("greenflag: duplicate sprite name " + name)
	}
	a := rt.newActor(id, name, Vec2{width, height}, c, newScriptSet())
	rt.scene.Root().AddChild(a.node)
	a.sync()
	return a
}

// newActor builds an actor and its node and records it. The caller attaches
// the node to the scene.
func (rt *Runtime) newActor(id, name string, costume Vec2, c Color, scripts *scriptSet) *Actor {
	a := &Actor{
		rt:      rt,
		id:      id,
		name:    name,
		costume: Vec2{sanitizeSize(costume.X), sanitizeSize(costume.Y)},
		dir:     90,
		size:    100,
		visible: true,
		scripts: scripts,
	}
	n := NewSprite(name, a.costume.X, a.costume.Y)
	n.Color = c
	n.Interactable = true
	n.UserData = a
	n.SetPivot(a.costume.X/2, a.costume.Y/2)
	n.OnClick = func(ClickContext) { rt.ClickActor(a) }
	a.node = n

	rt.actors = append(rt.actors, a)
	rt.byOwner[id] = a
	return a
}

// OwnerID returns the stable owner ID of this actor instance.
func (a *Actor) OwnerID() string { return a.id }

// Name returns the sprite name. Clones share the name of their source.
func (a *Actor) Name() string { return a.name }

// Node returns the scene node, or nil for the stage target.
func (a *Actor) Node() *Node { return a.node }

// IsStage reports whether a is the stage target.
func (a *Actor) IsStage() bool { return a.node == nil }

// IsClone reports whether a was created by CreateClone.
func (a *Actor) IsClone() bool { return a.clone }

// IsDeleted reports whether a clone has been deleted.
func (a *Actor) IsDeleted() bool { return a.deleted }

// Position returns the logical center.
func (a *Actor) Position() Vec2 { return a.pos }

// ScaledSize returns the costume size multiplied by the size percentage.
func (a *Actor) ScaledSize() Vec2 {
	k := a.size / 100
	return Vec2{a.costume.X * k, a.costume.Y * k}
}

// Direction returns the direction in Scratch degrees, in (-180, 180].
func (a *Actor) Direction() float64 { return a.dir }

// SetPosition moves the actor. The position is stored as given; NaN
// components become 0.
func (a *Actor) SetPosition(p Vec2) {
	if math.IsNaN(p.X) {
		p.X = 0
	}
	if math.IsNaN(p.Y) {
		p.Y = 0
	}
	a.pos = p
	a.sync()
}

// SetDirection points the actor in a Scratch direction.
func (a *Actor) SetDirection(deg float64) {
	a.dir = NormalizeDirection(deg)
	a.sync()
}

// SizePercent returns the size as a percentage of the costume.
func (a *Actor) SizePercent() float64 { return a.size }

// SetSizePercent sets the size. Negative and NaN values become 0.
func (a *Actor) SetSizePercent(p float64) {
	a.size = sanitizeSize(p)
	a.sync()
}

// RotationStyle returns how the direction is shown.
func (a *Actor) RotationStyle() RotationStyle { return a.style }

// SetRotationStyle changes how the direction is shown.
func (a *Actor) SetRotationStyle(s RotationStyle) {
	a.style = s
	a.sync()
}

// Visible reports whether the actor is shown.
func (a *Actor) Visible() bool { return a.visible }

// SetVisible shows or hides the actor.
func (a *Actor) SetVisible(v bool) {
	a.visible = v
	a.sync()
}

// Rect returns the logical bounding box.
func (a *Actor) Rect() Rect {
	return ActorRect(a.pos, a.ScaledSize())
}

// sync writes the actor state to its node. Position goes through the
// configured origin; rotation follows the rotation style.
func (a *Actor) sync() {
	n := a.node
	if n == nil {
		return
	}
	ui := LogicalToUI(a.pos, a.rt.stage, a.rt.origin)
	k := a.size / 100
	sx, rot := k, 0.0
	switch a.style {
	case RotateAllAround:
		// The Y flip between logical and UI space is its own inverse.
		v := UIDeltaToLogical(DirectionVector(a.dir), a.rt.origin)
		rot = math.Atan2(v.Y, v.X)
	case RotateLeftRight:
		if a.dir < 0 {
			sx = -k
		}
	}
	n.SetPosition(ui.X, ui.Y)
	n.SetScale(sx, k)
	n.SetRotation(rot)
	n.Visible = a.visible
}
