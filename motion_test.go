package greenflag

import (
	"math"
	"strings"
	"testing"
)

// runBlock runs body as a one-off script of a and gives it one frame.
func runBlock(rt *Runtime, a *Actor, body ScriptFunc) {
	rt.startScript(a, body, "test")
	rt.Tick(frameDT)
}

// --- View-level motion ---

func TestMoveSteps(t *testing.T) {
	tests := []struct {
		name    string
		pos     Vec2
		dir     float64
		steps   float64
		want    Vec2
		wantDir float64
	}{
		{"right", Vec2{}, 90, 10, Vec2{10, 0}, 90},
		{"up", Vec2{}, 0, 10, Vec2{0, 10}, 0},
		{"down", Vec2{}, 180, 10, Vec2{0, -10}, 180},
		{"left", Vec2{}, -90, 10, Vec2{-10, 0}, -90},
		{"backwards", Vec2{}, 90, -10, Vec2{-10, 0}, 90},
		{"zero", Vec2{5, 5}, 90, 0, Vec2{5, 5}, 90},
		{"stops at edge exactly", Vec2{}, 90, 220, Vec2{220, 0}, 90},
		{"bounces off right edge", Vec2{200, 0}, 90, 50, Vec2{190, 0}, -90},
		{"bounces twice", Vec2{}, 90, 1000, Vec2{120, 0}, 90},
		{"bounce limit", Vec2{}, 90, 5000, Vec2{-220, 0}, 90},
		{"backwards into edge", Vec2{}, 90, -300, Vec2{-140, 0}, -90},
		{"diagonal off bottom", Vec2{}, 135, 300, Vec2{212.13203435596427, -107.86796564403573}, 45},
		{"outside heading out", Vec2{250, 0}, 90, 10, Vec2{210, 0}, -90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRuntime(t)
			a := rt.NewSprite("Cat", 40, 40, ColorWhite)
			a.SetPosition(tt.pos)
			a.SetDirection(tt.dir)
			moveSteps(a, rt.stage, tt.steps)
			if p := a.Position(); math.Abs(p.X-tt.want.X) > 1e-9 || math.Abs(p.Y-tt.want.Y) > 1e-9 {
				t.Errorf("position = %v, want %v", p, tt.want)
			}
			if !sameAngle(a.Direction(), tt.wantDir) {
				t.Errorf("direction = %v, want %v", a.Direction(), tt.wantDir)
			}
		})
	}
}

func TestMoveStepsWiderThanStage(t *testing.T) {
	rt := newTestRuntime(t)
	bar := rt.NewSprite("Bar", 600, 10, ColorWhite)
	bar.SetDirection(0)
	moveSteps(bar, rt.stage, 50)
	if p := bar.Position(); !approxVec(p, Vec2{0, 50}) {
		t.Errorf("position = %v, want (0, 50)", p)
	}
}

func TestBounceIfOnEdge(t *testing.T) {
	tests := []struct {
		name     string
		pos      Vec2
		dir      float64
		touching bool
		wantPos  Vec2
		wantDir  float64
	}{
		{"not touching", Vec2{0, 0}, 90, false, Vec2{0, 0}, 90},
		{"right edge heading out", Vec2{230, 0}, 90, true, Vec2{220, 0}, -90},
		{"right edge heading in", Vec2{230, 0}, -90, true, Vec2{220, 0}, -90},
		{"top edge", Vec2{0, 175}, 0, true, Vec2{0, 160}, 180},
		{"left edge diagonal", Vec2{-235, 0}, -45, true, Vec2{-220, 0}, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRuntime(t)
			a := rt.NewSprite("Cat", 40, 40, ColorWhite)
			a.SetPosition(tt.pos)
			a.SetDirection(tt.dir)

			if got := bounceIfOnEdge(a, rt.stage); got != tt.touching {
				t.Errorf("touching = %v, want %v", got, tt.touching)
			}
			if !approxVec(a.Position(), tt.wantPos) {
				t.Errorf("position = %v, want %v", a.Position(), tt.wantPos)
			}
			if !sameAngle(a.Direction(), tt.wantDir) {
				t.Errorf("direction = %v, want %v", a.Direction(), tt.wantDir)
			}
		})
	}
}

// --- Motion blocks ---

func TestTurnAndPoint(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 10, 10, ColorWhite)
	var got []float64
	runBlock(rt, a, func(c *ScriptContext) {
		c.TurnRight(90)
		got = append(got, c.Direction())
		c.TurnLeft(270)
		got = append(got, c.Direction())
		c.PointInDirection(270)
		got = append(got, c.Direction())
		c.PointInDirection(-180)
		got = append(got, c.Direction())
	})
	want := []float64{180, -90, -90, 180}
	for i := range want {
		if i >= len(got) || !sameAngle(got[i], want[i]) {
			t.Fatalf("directions = %v, want %v", got, want)
		}
	}
}

func TestPointTowards(t *testing.T) {
	rt := newTestRuntime(t)
	cat := rt.NewSprite("Cat", 10, 10, ColorWhite)
	dog := rt.NewSprite("Dog", 10, 10, ColorWhite)
	tests := []struct {
		name   string
		target string
		dogAt  Vec2
		want   float64
	}{
		{"above", "Dog", Vec2{0, 100}, 0},
		{"left", "Dog", Vec2{-100, 0}, -90},
		{"below right", "Dog", Vec2{100, -100}, 135},
		{"same position keeps direction", "Dog", Vec2{0, 0}, 45},
		{"missing sprite", "Bird", Vec2{0, 100}, 45},
		{"itself", "Cat", Vec2{0, 100}, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat.SetDirection(45)
			dog.SetPosition(tt.dogAt)
			runBlock(rt, cat, func(c *ScriptContext) { c.PointTowards(tt.target) })
			if !sameAngle(cat.Direction(), tt.want) {
				t.Errorf("direction = %v, want %v", cat.Direction(), tt.want)
			}
		})
	}
}

func TestPointTowardsMouse(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 10, 10, ColorWhite)
	rt.pointer = Vec2{0, -50}
	runBlock(rt, a, func(c *ScriptContext) { c.PointTowardsMouse() })
	if !sameAngle(a.Direction(), 180) {
		t.Errorf("direction = %v, want 180", a.Direction())
	}
}

func TestPositionBlocks(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 40, 40, ColorWhite)
	var xs, ys []float64
	record := func(c *ScriptContext) {
		xs = append(xs, c.X())
		ys = append(ys, c.Y())
	}
	runBlock(rt, a, func(c *ScriptContext) {
		c.GoToXY(10, 20)
		record(c)
		c.ChangeXBy(5)
		c.ChangeYBy(-30)
		record(c)
		c.SetX(-1000)
		record(c)
		c.SetY(1000)
		record(c)
	})
	wantX := []float64{10, 15, -260, -260}
	wantY := []float64{20, -10, -10, 200}
	for i := range wantX {
		if xs[i] != wantX[i] || ys[i] != wantY[i] {
			t.Errorf("step %d = (%v, %v), want (%v, %v)", i, xs[i], ys[i], wantX[i], wantY[i])
		}
	}
}

func TestGoToRandomPosition(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 10, 10, ColorWhite)
	for i := 0; i < 50; i++ {
		runBlock(rt, a, func(c *ScriptContext) { c.GoToRandomPosition() })
		if p := a.Position(); math.Abs(p.X) > 240 || math.Abs(p.Y) > 180 {
			t.Fatalf("random position %v off stage", p)
		}
	}
}

func TestGoToMouse(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 10, 10, ColorWhite)
	rt.pointer = Vec2{50, 60}
	runBlock(rt, a, func(c *ScriptContext) { c.GoToMouse() })
	if a.Position() != (Vec2{50, 60}) {
		t.Errorf("position = %v, want (50, 60)", a.Position())
	}
}

func TestGlideTo(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 10, 10, ColorWhite)
	var done bool
	rt.startScript(a, func(c *ScriptContext) {
		c.GlideTo(1, 100, -40)
		done = true
	}, "test")

	rt.Tick(0.25) // starts the glide
	rt.Tick(0.25)
	rt.Tick(0.25)
	if p := a.Position(); math.Abs(p.X-50) > 0.01 || math.Abs(p.Y+20) > 0.01 {
		t.Errorf("halfway = %v, want ~(50, -20)", p)
	}
	if done {
		t.Fatal("glide finished early")
	}
	rt.Tick(0.25)
	rt.Tick(0.25)
	if !done {
		t.Fatal("glide should finish after its duration")
	}
	if a.Position() != (Vec2{100, -40}) {
		t.Errorf("end = %v, want exactly (100, -40)", a.Position())
	}
}

func TestGlideToZeroSeconds(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 10, 10, ColorWhite)
	var done bool
	runBlock(rt, a, func(c *ScriptContext) {
		c.GlideTo(0, 30, 30)
		done = true
	})
	if !done || a.Position() != (Vec2{30, 30}) {
		t.Errorf("done = %v position = %v, want an immediate jump", done, a.Position())
	}
}

func TestGlideDeletedClone(t *testing.T) {
	rt := newTestRuntime(t)
	cat := rt.NewSprite("Cat", 10, 10, ColorWhite)
	clone := rt.CreateClone(cat)
	rt.startScript(clone, func(c *ScriptContext) { c.GlideTo(1, 100, 100) }, "test")
	rt.Tick(0.25)
	rt.Tick(0.25)
	saved := clone.Position()

	rt.DeleteClone(clone)
	rt.Tick(0.25)
	if clone.Position() != saved {
		t.Error("deleted clone should stop gliding")
	}
	if rt.registry.CountOwner(clone.OwnerID()) != 0 {
		t.Error("glide thread should stop with the clone")
	}
}

func TestGoToActor(t *testing.T) {
	rt := newTestRuntime(t)
	cat := rt.NewSprite("Cat", 40, 40, ColorWhite)
	dog := rt.NewSprite("Dog", 10, 10, ColorWhite)
	dog.SetPosition(Vec2{-30, 70})

	runBlock(rt, cat, func(c *ScriptContext) { c.GoToActor("Dog") })
	if cat.Position() != (Vec2{-30, 70}) {
		t.Errorf("position = %v, want (-30, 70)", cat.Position())
	}

	buf := captureLog(rt)
	runBlock(rt, cat, func(c *ScriptContext) { c.GoToActor("Bird") })
	if cat.Position() != (Vec2{-30, 70}) {
		t.Error("an unknown target should leave the sprite in place")
	}
	if !strings.Contains(buf.String(), "go to Bird") {
		t.Errorf("log = %s, want an unresolved warning", buf.String())
	}
}

func TestGlideVariants(t *testing.T) {
	tests := []struct {
		name  string
		setup func(rt *Runtime)
		glide func(c *ScriptContext)
		want  Vec2
	}{
		{
			name:  "by delta",
			glide: func(c *ScriptContext) { c.GlideBy(0.5, 40, -20) },
			want:  Vec2{50, -10},
		},
		{
			name:  "to mouse",
			setup: func(rt *Runtime) { rt.pointer = Vec2{-100, 80} },
			glide: func(c *ScriptContext) { c.GlideToMouse(0.5) },
			want:  Vec2{-100, 80},
		},
		{
			name: "to actor",
			setup: func(rt *Runtime) {
				dog := rt.NewSprite("Dog", 10, 10, ColorWhite)
				dog.SetPosition(Vec2{60, 60})
			},
			glide: func(c *ScriptContext) { c.GlideToActor(0.5, "Dog") },
			want:  Vec2{60, 60},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRuntime(t)
			a := rt.NewSprite("Cat", 10, 10, ColorWhite)
			a.SetPosition(Vec2{10, 10})
			if tt.setup != nil {
				tt.setup(rt)
			}
			var done bool
			rt.startScript(a, func(c *ScriptContext) {
				tt.glide(c)
				done = true
			}, "test")

			rt.Tick(0.25)
			rt.Tick(0.25)
			if done {
				t.Fatal("glide finished early")
			}
			mid := a.Position()
			if mid == (Vec2{10, 10}) || mid == tt.want {
				t.Errorf("midway position = %v, want strictly between", mid)
			}
			rt.Tick(0.25)
			if !done || a.Position() != tt.want {
				t.Errorf("done = %v end = %v, want %v", done, a.Position(), tt.want)
			}
		})
	}
}

func TestGlideToRandomPosition(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 10, 10, ColorWhite)
	var done bool
	rt.startScript(a, func(c *ScriptContext) {
		c.GlideToRandomPosition(0.5)
		done = true
	}, "test")
	for i := 0; i < 3; i++ {
		rt.Tick(0.25)
	}
	if !done {
		t.Fatal("glide should finish after its duration")
	}
	if p := a.Position(); math.Abs(p.X) > 240 || math.Abs(p.Y) > 180 || p == (Vec2{}) {
		t.Errorf("random glide ended at %v", p)
	}
}

func TestBounceBlock(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 40, 40, ColorWhite)
	a.SetPosition(Vec2{0, 0})
	rt.startScript(a, func(c *ScriptContext) {
		c.Forever(func() {
			c.MoveSteps(50)
			c.BounceIfOnEdge()
		})
	}, "test")
	for i := 0; i < 6; i++ {
		rt.Tick(frameDT)
	}
	// 50, 100, 150, 200, 190 (bounced inside the move), 140
	if p := a.Position(); !approxVec(p, Vec2{140, 0}) {
		t.Errorf("position = %v, want (140, 0)", p)
	}
	if !sameAngle(a.Direction(), -90) {
		t.Errorf("direction = %v, want -90", a.Direction())
	}
}

func TestSetRotationStyleBlock(t *testing.T) {
	rt := newTestRuntime(t)
	a := rt.NewSprite("Cat", 10, 10, ColorWhite)
	runBlock(rt, a, func(c *ScriptContext) { c.SetRotationStyle(RotateLeftRight) })
	if a.RotationStyle() != RotateLeftRight {
		t.Errorf("style = %v, want left-right", a.RotationStyle())
	}
}

func TestMotionReportersOnStage(t *testing.T) {
	rt := newTestRuntime(t)
	var x, y, dir float64
	runBlock(rt, rt.Stage(), func(c *ScriptContext) {
		c.GoToXY(10, 10)
		x, y, dir = c.X(), c.Y(), c.Direction()
	})
	if x != 0 || y != 0 || dir != 90 {
		t.Errorf("stage reporters = %v %v %v, want 0 0 90", x, y, dir)
	}
}
