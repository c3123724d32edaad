package vmath

import "math"

// Vec2 is a 2D vector in logical (device-independent) units
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MagnitudeSq returns squared length without sqrt
func (v Vec2) MagnitudeSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Magnitude returns vector length
func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / mag, Y: v.Y / mag}
}

// DistanceSq returns squared euclidean distance between two points
func DistanceSq(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

// Distance returns euclidean distance between two points
func Distance(ax, ay, bx, by float64) float64 {
	return math.Sqrt(DistanceSq(ax, ay, bx, by))
}

// Approach moves current toward target by rate fraction of the remaining gap
// Exponential smoothing: rate in (0,1], never overshoots for rate <= 1
func Approach(current, target, rate float64) float64 {
	return current + (target-current)*rate
}
