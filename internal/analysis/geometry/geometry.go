package geometry

import "math"

// StraightAngleDeg is returned by AngleDeg when one of the rays has zero
// length and no angle can be defined.
const StraightAngleDeg = 180.0

// Point is a position in normalized image space. Image y grows downwards;
// helpers that care about "up" invert it internally.
type Point struct {
	X, Y, Z float64
}

// Add these two points coordinate-wise.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Scale the point by factor s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s, p.Z * s}
}

// Midpoint of a and b.
func Midpoint(a, b Point) Point {
	return a.Add(b).Scale(0.5)
}

// Distance is the 3D euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// AngleDeg returns the angle in degrees subtended at vertex b by the rays
// towards a and c, in the range [0, 180]. If either ray has zero length
// the angle is undefined and StraightAngleDeg is returned instead. NaN
// coordinates propagate to the result.
func AngleDeg(a, b, c Point) float64 {
	v1 := Point{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
	v2 := Point{c.X - b.X, c.Y - b.Y, c.Z - b.Z}

	n1 := math.Sqrt(v1.X*v1.X + v1.Y*v1.Y + v1.Z*v1.Z)
	n2 := math.Sqrt(v2.X*v2.X + v2.Y*v2.Y + v2.Z*v2.Z)
	if n1 == 0 || n2 == 0 {
		return StraightAngleDeg
	}

	cos := (v1.X*v2.X + v1.Y*v2.Y + v1.Z*v2.Z) / (n1 * n2)
	// rounding can push a collinear case just outside [-1, 1]
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// InclineDeg returns the angle in degrees between the segment from `from`
// towards `to` and the horizontal plane, in the range [-90, 90]. Positive
// means `to` is above `from` on the image (smaller y). A zero-length
// segment yields 0.
func InclineDeg(from, to Point) float64 {
	dx := to.X - from.X
	dy := from.Y - to.Y // invert: image y grows downwards
	dz := to.Z - from.Z

	horizontal := math.Sqrt(dx*dx + dz*dz)
	if horizontal == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, horizontal) * 180 / math.Pi
}
