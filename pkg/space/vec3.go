// Package space provides the 3D vector math used by the simulation core.
package space

import "math"

// Vec3 is a 3D coordinate or direction
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Zero is the origin / null vector
var Zero = Vec3{}

// Add returns a + b
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns a - b
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// LengthSq returns the squared magnitude of v
func (v Vec3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of v
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// Normalize returns v scaled to unit length.
// The zero vector normalizes to the zero vector.
func (v Vec3) Normalize() Vec3 {
	mag := v.Length()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Distance returns the distance between two points
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Length()
}

// ClampLength limits the magnitude of v to the range [min, max],
// preserving direction. The zero vector is returned unchanged since it
// has no direction to scale along.
func (v Vec3) ClampLength(min, max float64) Vec3 {
	mag := v.Length()
	if mag == 0 {
		return v
	}
	if mag < min {
		return v.Scale(min / mag)
	}
	if mag > max {
		return v.Scale(max / mag)
	}
	return v
}

// MoveToward returns a point advanced from v toward target by at most
// maxDelta. When the remaining distance is within maxDelta the target is
// returned exactly, so callers converge instead of approaching forever.
func (v Vec3) MoveToward(target Vec3, maxDelta float64) Vec3 {
	delta := target.Sub(v)
	dist := delta.Length()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return v.Add(delta.Scale(maxDelta / dist))
}
