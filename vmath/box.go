package vmath

import "math"

// AABB is an axis-aligned box
type AABB struct {
	Min, Max Vec2
}

// ContainsY reports whether y lies within the vertical span, inclusive
func (b AABB) ContainsY(y float64) bool {
	return b.Min.Y <= y && y <= b.Max.Y
}

// Overlaps reports whether two boxes intersect, touching edges excluded
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X && b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

// Union returns the smallest box covering both
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec2{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec2{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

// OBB is an oriented rectangle: Half extents rotated by Angle around Center
type OBB struct {
	Center Vec2
	Half   Vec2
	Angle  float64
}

// NewOBB builds a box from center, full size and rotation
func NewOBB(center, size Vec2, angle float64) OBB {
	return OBB{Center: center, Half: size.Scale(0.5), Angle: angle}
}

// ToLocal maps a world point into the box frame
func (b OBB) ToLocal(p Vec2) Vec2 {
	return p.Sub(b.Center).Rotate(-b.Angle)
}

// ToWorld maps a box-frame point into world space
func (b OBB) ToWorld(p Vec2) Vec2 {
	return p.Rotate(b.Angle).Add(b.Center)
}

// Corners returns the four world-space corners counter-clockwise from bottom-left
func (b OBB) Corners() [4]Vec2 {
	return [4]Vec2{
		b.ToWorld(Vec2{-b.Half.X, -b.Half.Y}),
		b.ToWorld(Vec2{b.Half.X, -b.Half.Y}),
		b.ToWorld(Vec2{b.Half.X, b.Half.Y}),
		b.ToWorld(Vec2{-b.Half.X, b.Half.Y}),
	}
}

// AABB returns the world-space bounds
func (b OBB) AABB() AABB {
	sin, cos := math.Sincos(b.Angle)
	ex := math.Abs(cos)*b.Half.X + math.Abs(sin)*b.Half.Y
	ey := math.Abs(sin)*b.Half.X + math.Abs(cos)*b.Half.Y
	return AABB{
		Min: Vec2{b.Center.X - ex, b.Center.Y - ey},
		Max: Vec2{b.Center.X + ex, b.Center.Y + ey},
	}
}

// Contains reports whether p is inside or on the boundary
func (b OBB) Contains(p Vec2) bool {
	l := b.ToLocal(p)
	return math.Abs(l.X) <= b.Half.X && math.Abs(l.Y) <= b.Half.Y
}

// ClosestPoint returns the point of the box nearest to p; p itself when inside
func (b OBB) ClosestPoint(p Vec2) Vec2 {
	l := b.ToLocal(p)
	l.X = Clamp(l.X, -b.Half.X, b.Half.X)
	l.Y = Clamp(l.Y, -b.Half.Y, b.Half.Y)
	return b.ToWorld(l)
}

// Distance returns the distance from p to the box surface, zero inside
func (b OBB) Distance(p Vec2) float64 {
	return b.ClosestPoint(p).Dist(p)
}

// OverlapsCircle reports whether a circle intersects the box
func (b OBB) OverlapsCircle(c Vec2, r float64) bool {
	return b.Distance(c) < r
}

// Overlaps runs a separating axis test against another box, touching edges excluded
func (b OBB) Overlaps(o OBB) bool {
	ca := b.Corners()
	cb := o.Corners()
	axes := [4]Vec2{
		Vec2{1, 0}.Rotate(b.Angle),
		Vec2{0, 1}.Rotate(b.Angle),
		Vec2{1, 0}.Rotate(o.Angle),
		Vec2{0, 1}.Rotate(o.Angle),
	}
	for _, axis := range axes {
		minA, maxA := project(ca, axis)
		minB, maxB := project(cb, axis)
		if maxA <= minB+epsilon || maxB <= minA+epsilon {
			return false
		}
	}
	return true
}

// epsilon absorbs rounding on shared edges of rotated boxes
const epsilon = 1e-9

func project(corners [4]Vec2, axis Vec2) (lo, hi float64) {
	lo = corners[0].Dot(axis)
	hi = lo
	for _, c := range corners[1:] {
		d := c.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
