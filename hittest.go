package greenflag

// EdgeEpsilon widens the stage edge test so a box sitting within half a
// pixel of an edge counts as touching it.
const EdgeEpsilon = 0.5

// IsTouchingStageEdge reports whether an actor's bounding box touches or
// crosses a stage edge, and the outward unit normal of the violated sides.
// Corner contact sums both axis normals before normalizing. When opposite
// sides cancel out and leave no normal, the box is reported as not touching.
func (s Stage) IsTouchingStageEdge(center, scaledSize Vec2) (bool, Vec2) {
	if center.hasNaN() {
		return false, Vec2{}
	}
	in := s.InnerExtents(scaledSize)
	minX, maxX := in.X, in.X+in.Width
	minY, maxY := in.Y, in.Y+in.Height

	var n Vec2
	if center.X-maxX >= -EdgeEpsilon {
		n.X++
	}
	if minX-center.X >= -EdgeEpsilon {
		n.X--
	}
	if center.Y-maxY >= -EdgeEpsilon {
		n.Y++
	}
	if minY-center.Y >= -EdgeEpsilon {
		n.Y--
	}
	n = n.Normalize()
	if n.IsZero() {
		return false, Vec2{}
	}
	return true, n
}

// BounceDirectionAndClamp reflects dir across the edge normal and clamps the
// center back inside the stage. Without a usable contact both inputs are
// returned unchanged.
func (s Stage) BounceDirectionAndClamp(center, dir, scaledSize Vec2) (reflected, clamped Vec2) {
	touching, n := s.IsTouchingStageEdge(center, scaledSize)
	if !touching {
		return dir, center
	}
	return dir.Reflect(n), s.ClampInside(center, scaledSize)
}

// ActorRect returns the logical bounding box of an actor. The box is always
// centered on the actor and ignores rotation.
func ActorRect(center, scaledSize Vec2) Rect {
	w := sanitizeSize(scaledSize.X)
	h := sanitizeSize(scaledSize.Y)
	return Rect{X: center.X - w/2, Y: center.Y - h/2, Width: w, Height: h}
}

// OverlapsAABB reports whether two rectangles share interior area. Boxes that
// only share an edge do not overlap, and zero-size or NaN boxes never do.
func OverlapsAABB(a, b Rect) bool {
	if a.degenerate() || b.degenerate() {
		return false
	}
	return a.X < b.X+b.Width &&
		b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height &&
		b.Y < a.Y+a.Height
}
