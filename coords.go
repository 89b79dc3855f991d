package greenflag

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownOrigin is returned when an origin name cannot be parsed.
var ErrUnknownOrigin = errors.New("greenflag: unknown origin mode")

// OriginMode selects where UI coordinates are measured from when converting
// to logical stage coordinates.
type OriginMode uint8

const (
	OriginCenter  OriginMode = iota // logical origin at stage center, +Y up
	OriginTopLeft                   // logical space equals UI space
)

// String returns the config name of the origin mode.
func (o OriginMode) String() string {
	if o == OriginTopLeft {
		return "top-left"
	}
	return "center"
}

// ParseOriginMode parses "center" or "top-left" (case-insensitive).
func ParseOriginMode(s string) (OriginMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center":
		return OriginCenter, nil
	case "top-left", "topleft":
		return OriginTopLeft, nil
	}
	return OriginCenter, fmt.Errorf("%w: %q", ErrUnknownOrigin, s)
}

// Stage is the logical stage size. The stage rectangle is centered on the
// logical origin.
type Stage struct {
	Width, Height float64
}

// DefaultStage is the classic 480x360 Scratch stage.
var DefaultStage = Stage{Width: 480, Height: 360}

// HalfWidth returns half the stage width.
func (s Stage) HalfWidth() float64 { return s.Width / 2 }

// HalfHeight returns half the stage height.
func (s Stage) HalfHeight() float64 { return s.Height / 2 }

// UIToLogical converts a UI point (origin top-left, +Y down) to a logical
// stage point.
func UIToLogical(p Vec2, stage Stage, origin OriginMode) Vec2 {
	if origin == OriginTopLeft {
		return p
	}
	return Vec2{p.X - stage.Width/2, stage.Height/2 - p.Y}
}

// LogicalToUI is the inverse of UIToLogical for the same stage and origin.
func LogicalToUI(p Vec2, stage Stage, origin OriginMode) Vec2 {
	if origin == OriginTopLeft {
		return p
	}
	return Vec2{p.X + stage.Width/2, stage.Height/2 - p.Y}
}

// UIDeltaToLogical converts a UI-space displacement. Only the Y axis flips.
func UIDeltaToLogical(d Vec2, origin OriginMode) Vec2 {
	if origin == OriginTopLeft {
		return d
	}
	return Vec2{d.X, -d.Y}
}

// wrapDegrees maps deg into [0, 360).
func wrapDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	// -1e-14 mod 360 + 360 rounds to 360.
	if r >= 360 {
		r = 0
	}
	return r
}

// ScratchToInternal converts a Scratch angle (0 = up, clockwise) to an
// internal angle (0 = right, counter-clockwise), both in degrees.
func ScratchToInternal(deg float64) float64 {
	return wrapDegrees(90 - deg)
}

// InternalToScratch converts an internal angle back to a Scratch angle. The
// mapping is its own inverse.
func InternalToScratch(deg float64) float64 {
	return wrapDegrees(90 - deg)
}

// NormalizeDirection maps a Scratch angle into (-180, 180], the range the
// direction reporter uses.
func NormalizeDirection(deg float64) float64 {
	d := wrapDegrees(deg)
	if d > 180 {
		d -= 360
	}
	return d
}

// DirectionVector returns the logical unit vector for a Scratch direction.
func DirectionVector(scratchDeg float64) Vec2 {
	rad := ScratchToInternal(scratchDeg) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{cos, sin}
}

// DirectionOf returns the Scratch direction pointing along v. The zero
// vector yields 90 (right), the same as atan2(0, 0).
func DirectionOf(v Vec2) float64 {
	if v.hasNaN() {
		return 90
	}
	internal := math.Atan2(v.Y, v.X) * 180 / math.Pi
	return NormalizeDirection(InternalToScratch(internal))
}
