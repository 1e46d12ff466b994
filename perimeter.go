package glint

import (
	"math"
	"math/rand/v2"
)

// Edge identifies the side of a rectangle a boundary point lies on.
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// BoundaryPoint is one sample of a rectangle's perimeter. Phase is assigned
// once at sampling time and desynchronizes each point's oscillation.
type BoundaryPoint struct {
	Position Vec2
	Phase    float64
	Edge     Edge
}

// SamplePerimeter distributes count points evenly by arc length along the
// boundary of a width x height rectangle, walking clockwise from the top-left
// corner (top, right, bottom, left). Each point gets a random phase in
// [0, 2π) drawn from rng (nil uses the global source).
//
// Degenerate input (non-positive width, height, or count) yields nil.
func SamplePerimeter(width, height float64, count int, rng *rand.Rand) []BoundaryPoint {
	if !(width > 0) || !(height > 0) || count <= 0 ||
		math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil
	}
	phase := Range{0, 2 * math.Pi}
	perimeter := 2 * (width + height)
	points := make([]BoundaryPoint, count)
	for i := range points {
		d := float64(i) * perimeter / float64(count)
		pos, edge := perimeterAt(width, height, d)
		p := phase.Random(rng)
		if p >= 2*math.Pi {
			p = 0
		}
		points[i] = BoundaryPoint{Position: pos, Phase: p, Edge: edge}
	}
	return points
}

// perimeterAt maps an arc-length distance d in [0, 2(w+h)) to a point on the
// rectangle boundary and the edge it belongs to. Corners belong to the edge
// that starts there.
func perimeterAt(w, h, d float64) (Vec2, Edge) {
	switch {
	case d < w:
		return Vec2{d, 0}, EdgeTop
	case d < w+h:
		return Vec2{w, d - w}, EdgeRight
	case d < 2*w+h:
		return Vec2{w - (d - w - h), h}, EdgeBottom
	default:
		return Vec2{0, h - (d - 2*w - h)}, EdgeLeft
	}
}

// normal returns the unit displacement axis for the edge: vertical on the
// top and bottom edges, horizontal on the left and right edges.
func (e Edge) normal() Vec2 {
	switch e {
	case EdgeTop, EdgeBottom:
		return Vec2{0, 1}
	default:
		return Vec2{1, 0}
	}
}
