package greenflag

import (
	"errors"
	"math"
	"testing"
)

// --- UI <-> logical ---

func TestUIToLogicalCenter(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"top-left corner", Vec2{0, 0}, Vec2{-240, 180}},
		{"bottom-right corner", Vec2{480, 360}, Vec2{240, -180}},
		{"center", Vec2{240, 180}, Vec2{0, 0}},
		{"offstage", Vec2{-10, 400}, Vec2{-250, -220}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UIToLogical(tt.in, DefaultStage, OriginCenter)
			if !approxVec(got, tt.want) {
				t.Errorf("UIToLogical(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUIToLogicalTopLeftIsIdentity(t *testing.T) {
	p := Vec2{12.5, -3}
	if got := UIToLogical(p, DefaultStage, OriginTopLeft); got != p {
		t.Errorf("UIToLogical = %v, want %v", got, p)
	}
	if got := LogicalToUI(p, DefaultStage, OriginTopLeft); got != p {
		t.Errorf("LogicalToUI = %v, want %v", got, p)
	}
}

func TestUILogicalRoundTrip(t *testing.T) {
	stages := []Stage{DefaultStage, {Width: 1920, Height: 1080}, {Width: 33.3, Height: 0.7}}
	points := []Vec2{{0, 0}, {1, 1}, {-123.25, 456.5}, {1e6, -1e-6}, {0.1, 0.2}}
	for _, st := range stages {
		for _, origin := range []OriginMode{OriginCenter, OriginTopLeft} {
			for _, p := range points {
				got := LogicalToUI(UIToLogical(p, st, origin), st, origin)
				if math.Abs(got.X-p.X) > 1e-9*math.Max(1, math.Abs(p.X)) ||
					math.Abs(got.Y-p.Y) > 1e-9*math.Max(1, math.Abs(p.Y)) {
					t.Errorf("round trip %v stage %v origin %v = %v", p, st, origin, got)
				}
			}
		}
	}
}

func TestUIDeltaToLogical(t *testing.T) {
	if got := UIDeltaToLogical(Vec2{3, 4}, OriginCenter); got != (Vec2{3, -4}) {
		t.Errorf("center delta = %v", got)
	}
	if got := UIDeltaToLogical(Vec2{3, 4}, OriginTopLeft); got != (Vec2{3, 4}) {
		t.Errorf("top-left delta = %v", got)
	}
}

// --- Origin parsing ---

func TestParseOriginMode(t *testing.T) {
	tests := []struct {
		in      string
		want    OriginMode
		wantErr bool
	}{
		{"center", OriginCenter, false},
		{"", OriginCenter, false},
		{"Top-Left", OriginTopLeft, false},
		{"topleft", OriginTopLeft, false},
		{"middle", OriginCenter, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOriginMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownOrigin) {
					t.Errorf("err = %v, want ErrUnknownOrigin", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseOriginMode(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

// --- Angles ---

// sameAngle compares two angles modulo 360.
func sameAngle(a, b float64) bool {
	diff := wrapDegrees(a - b)
	return math.Min(diff, 360-diff) < 1e-9
}

func TestScratchToInternal(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 90},
		{90, 0},
		{180, 270},
		{-90, 180},
		{270, 180},
		{450, 0},
		{-630, 0},
	}
	for _, tt := range tests {
		if got := ScratchToInternal(tt.in); !approx(got, tt.want) {
			t.Errorf("ScratchToInternal(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngleSelfInverse(t *testing.T) {
	for d := -1080.0; d <= 1080; d += 7.5 {
		got := InternalToScratch(ScratchToInternal(d))
		if !approx(got, wrapDegrees(d)) {
			t.Errorf("InternalToScratch(ScratchToInternal(%v)) = %v, want %v", d, got, wrapDegrees(d))
		}
	}
}

func TestWrapDegreesRange(t *testing.T) {
	for _, d := range []float64{-1e-15, -360, 360, 719.999, math.NaN(), math.Inf(1)} {
		got := wrapDegrees(d)
		if got < 0 || got >= 360 {
			t.Errorf("wrapDegrees(%v) = %v, out of [0, 360)", d, got)
		}
	}
}

func TestNormalizeDirection(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{180, 180},
		{-180, 180},
		{270, -90},
		{-90, -90},
		{360, 0},
		{181, -179},
	}
	for _, tt := range tests {
		if got := NormalizeDirection(tt.in); !approx(got, tt.want) {
			t.Errorf("NormalizeDirection(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDirectionVector(t *testing.T) {
	tests := []struct {
		deg  float64
		want Vec2
	}{
		{90, Vec2{1, 0}},
		{0, Vec2{0, 1}},
		{180, Vec2{0, -1}},
		{-90, Vec2{-1, 0}},
	}
	for _, tt := range tests {
		if got := DirectionVector(tt.deg); !approxVec(got, tt.want) {
			t.Errorf("DirectionVector(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestDirectionOfInvertsDirectionVector(t *testing.T) {
	for _, d := range []float64{0, 45, 90, 135, 180, -45, -90, -135} {
		got := DirectionOf(DirectionVector(d))
		if !sameAngle(got, d) {
			t.Errorf("DirectionOf(DirectionVector(%v)) = %v", d, got)
		}
	}
	if got := DirectionOf(Vec2{}); got != 90 {
		t.Errorf("DirectionOf(zero) = %v, want 90", got)
	}
}
