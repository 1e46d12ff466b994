package glint

import (
	"math"
	"math/rand/v2"
)

// Vec2 is a 2D vector used for positions, velocities, and sizes throughout
// the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Lerp moves v toward w by t.
func (v Vec2) Lerp(w Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(v.X, w.X, t), Y: Lerp(v.Y, w.Y, t)}
}

// FromAngle returns the velocity vector for a heading in radians and a speed.
func FromAngle(angle, speed float64) Vec2 {
	return Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Damp converts a per-reference-frame smoothing factor into the factor for
// an arbitrary number of reference frames, so exponential smoothing behaves
// the same at any refresh rate. Damp(f, 1) == f.
func Damp(factor, frames float64) float64 {
	if frames <= 0 {
		return 0
	}
	if frames == 1 {
		return factor
	}
	return 1 - math.Pow(1-Clamp(factor, 0, 1), frames)
}

// Range is a general-purpose min/max range.
// Used by the particle pool (BurstConfig) and the perimeter sampler.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
// A nil rng uses the global source.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	var f float64
	if rng != nil {
		f = rng.Float64()
	} else {
		f = rand.Float64()
	}
	return r.Min + f*(r.Max-r.Min)
}

// finiteOr returns v when it is a finite number, otherwise fallback.
func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
