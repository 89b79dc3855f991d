package greenflag

import (
	"math"
	"math/rand/v2"
)

// sanitizeSize treats negative and NaN sizes as zero.
func sanitizeSize(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return v
}

// clampAxis clamps v to [lo, hi]. NaN collapses to 0, which is inside every
// range this package builds.
func clampAxis(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampCenter clamps an actor's logical center so that its bounding box may
// reach at most its own half size past each stage edge.
func (s Stage) ClampCenter(center, scaledSize Vec2) Vec2 {
	hw := sanitizeSize(scaledSize.X) / 2
	hh := sanitizeSize(scaledSize.Y) / 2
	return Vec2{
		X: clampAxis(center.X, -s.HalfWidth()-hw, s.HalfWidth()+hw),
		Y: clampAxis(center.Y, -s.HalfHeight()-hh, s.HalfHeight()+hh),
	}
}

// InnerExtents returns the logical rectangle the center can occupy without
// the bounding box crossing any stage edge. An axis where the box is wider
// than the stage collapses to the single value 0.
func (s Stage) InnerExtents(scaledSize Vec2) Rect {
	minX, maxX := innerAxis(s.HalfWidth(), sanitizeSize(scaledSize.X)/2)
	minY, maxY := innerAxis(s.HalfHeight(), sanitizeSize(scaledSize.Y)/2)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func innerAxis(stageHalf, half float64) (lo, hi float64) {
	lo, hi = -stageHalf+half, stageHalf-half
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// ClampInside clamps center to InnerExtents so the box stays fully on stage.
func (s Stage) ClampInside(center, scaledSize Vec2) Vec2 {
	in := s.InnerExtents(scaledSize)
	return Vec2{
		X: clampAxis(center.X, in.X, in.X+in.Width),
		Y: clampAxis(center.Y, in.Y, in.Y+in.Height),
	}
}

// RandomPosition returns a uniformly distributed logical point on the stage.
func (s Stage) RandomPosition(rng *rand.Rand) Vec2 {
	return Vec2{
		X: (rng.Float64()*2 - 1) * s.HalfWidth(),
		Y: (rng.Float64()*2 - 1) * s.HalfHeight(),
	}
}
