package greenflag

import (
	"math"
	"testing"
)

func TestActorSyncPosition(t *testing.T) {
	tests := []struct {
		name   string
		origin OriginMode
		pos    Vec2
		wantUI Vec2
	}{
		{"center origin", OriginCenter, Vec2{10, 20}, Vec2{250, 160}},
		{"center origin corner", OriginCenter, Vec2{-240, -180}, Vec2{0, 360}},
		{"top-left origin", OriginTopLeft, Vec2{10, 20}, Vec2{10, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Origin = tt.origin
			rt := newTestRuntimeConfig(t, cfg)
			a := rt.NewSprite("Cat", 10, 10, ColorWhite)
			a.SetPosition(tt.pos)
			if n := a.Node(); n.X != tt.wantUI.X || n.Y != tt.wantUI.Y {
				t.Errorf("node = (%v, %v), want %v", n.X, n.Y, tt.wantUI)
			}
		})
	}
}

func TestActorSyncRotation(t *testing.T) {
	tests := []struct {
		name    string
		style   RotationStyle
		dir     float64
		wantRot float64
		wantSX  float64
	}{
		{"all around right", RotateAllAround, 90, 0, 1},
		{"all around down", RotateAllAround, 180, math.Pi / 2, 1},
		{"all around up", RotateAllAround, 0, -math.Pi / 2, 1},
		{"left-right facing left", RotateLeftRight, -90, 0, -1},
		{"left-right facing right", RotateLeftRight, 45, 0, 1},
		{"don't rotate", RotateDontRotate, 180, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRuntime(t)
			a := rt.NewSprite("Cat", 10, 10, ColorWhite)
			a.SetRotationStyle(tt.style)
			a.SetDirection(tt.dir)
			n := a.Node()
			if math.Abs(n.Rotation-tt.wantRot) > 1e-9 {
				t.Errorf("Rotation = %v, want %v", n.Rotation, tt.wantRot)
			}
			if n.ScaleX != tt.wantSX || n.ScaleY != 1 {
				t.Errorf("scale = (%v, %v), want (%v, 1)", n.ScaleX, n.ScaleY, tt.wantSX)
			}
		})
	}
}

func TestActorSyncSizeAndPivot(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 40, 20, ColorWhite)
	a.SetSizePercent(200)
	n := a.Node()
	if n.ScaleX != 2 || n.ScaleY != 2 {
		t.Errorf("scale = (%v, %v), want (2, 2)", n.ScaleX, n.ScaleY)
	}
	if n.PivotX != 20 || n.PivotY != 10 {
		t.Errorf("pivot = (%v, %v), want costume center", n.PivotX, n.PivotY)
	}

	rt.scene.Update(false)
	// The scaled box is 80x40 around UI (240, 180).
	x, y := transformPoint(n.worldTransform, 0, 0)
	if math.Abs(x-200) > 1e-9 || math.Abs(y-160) > 1e-9 {
		t.Errorf("top-left corner = (%v, %v), want (200, 160)", x, y)
	}
	if s := a.ScaledSize(); s != (Vec2{80, 40}) {
		t.Errorf("ScaledSize() = %v, want (80, 40)", s)
	}
	if r := a.Rect(); r != (Rect{X: -40, Y: -20, Width: 80, Height: 40}) {
		t.Errorf("Rect() = %v", r)
	}
}

func TestActorSanitizes(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", -10, 10, ColorWhite)
	if s := a.ScaledSize(); s.X != 0 {
		t.Errorf("negative costume width = %v, want 0", s.X)
	}
	a.SetPosition(Vec2{math.NaN(), 7})
	if a.Position() != (Vec2{0, 7}) {
		t.Errorf("position = %v, want (0, 7)", a.Position())
	}
	a.SetSizePercent(math.NaN())
	if a.SizePercent() != 0 {
		t.Errorf("size = %v, want 0", a.SizePercent())
	}
	a.SetDirection(450)
	if a.Direction() != 90 {
		t.Errorf("direction = %v, want 90", a.Direction())
	}
}

func TestActorLookup(t *testing.T) {
	rt := newTestRuntime(t)
	cat := rt.NewSprite("Cat", 10, 10, ColorWhite)
	clone := rt.CreateClone(cat)

	if got, ok := rt.Sprite("Cat"); !ok || got != cat {
		t.Error("Sprite should return the original")
	}
	if got, ok := rt.Actor(clone.OwnerID()); !ok || got != clone {
		t.Error("Actor should find the clone by owner ID")
	}
	if n := len(rt.Actors()); n != 2 {
		t.Errorf("Actors() = %d, want 2", n)
	}
	if clone.Node().UserData != clone {
		t.Error("node UserData should point back at the actor")
	}
}
