package state

import (
	"image/color"
	"math"
)

// Vec3 is a position or displacement in meters.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience constructor.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Length returns the magnitude of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the distance between two positions.
func (v Vec3) Distance(w Vec3) float64 {
	return v.Sub(w).Length()
}

// Lerp interpolates between v and w; t=0 returns v, t=1 returns w.
func (v Vec3) Lerp(w Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
		Z: v.Z + (w.Z-v.Z)*t,
	}
}

// StrokePoint is one vertex of a stroke. It is a plain value with no
// identity; copies are free and equality is field equality.
type StrokePoint struct {
	Position  Vec3
	Color     color.NRGBA
	Thickness float64 // meters, always > 0
}

// Stroke is one continuous pen-down-to-pen-up polyline. Once committed
// to a Painting it is never mutated in place.
type Stroke []StrokePoint

// Clone returns an independent copy of the stroke.
func (s Stroke) Clone() Stroke {
	out := make(Stroke, len(s))
	copy(out, s)
	return out
}

// Brush is the pen configuration the caller supplies each tick.
type Brush struct {
	Color     color.NRGBA
	Thickness float64 // meters
}
