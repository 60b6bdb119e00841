package layout

import (
	"math"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
	"github.com/ha1tch/geom-toolkit/pkg/trig"
)

// DefaultExtension is the length of a side extension as a fraction of the
// side it extends.
const DefaultExtension = 0.6

// PlaceTriangle positions a solved triangle. With orientation base b the
// anchor vertex (b+1)%3 sits at the origin, vertex (b+2)%3 lies on the
// positive x axis and the apex b is reached by rotating the side from the
// anchor through the anchor's interior angle. The result runs
// counter-clockwise unless o.Flip puts the apex below the baseline.
//
// The same solution and orientation always produce the same points.
func PlaceTriangle(sol trig.Solution, o shape.Orientation) [3]geom.Point {
	base := ((o.Base % 3) + 3) % 3
	anchor, second, apex := (base+1)%3, (base+2)%3, base

	theta := sol.Rad(anchor)
	if o.Flip {
		theta = -theta
	}

	var pts [3]geom.Point
	pts[anchor] = geom.Point{}
	pts[second] = geom.Pt(sol.Sides[apex], 0)
	pts[apex] = geom.Polar(sol.Sides[second], theta)

	if o.Rotate != 0 {
		r := geom.Rad(o.Rotate)
		for i := range pts {
			pts[i] = pts[i].Rotate(r)
		}
	}
	return pts
}

// attach returns the position of the third vertex of a triangle whose
// vertices u and w are already placed at pu and pw. uxLen is |UX| and
// angleU the interior angle at U in radians. The point is put on the side
// of line UW given by sign (+1 left of U->W, -1 right).
func attach(pu, pw geom.Point, uxLen, angleU float64, sign float64) geom.Point {
	theta := pw.Sub(pu).Angle()
	if sign < 0 {
		return pu.Add(geom.Polar(uxLen, theta-angleU))
	}
	return pu.Add(geom.Polar(uxLen, theta+angleU))
}

// side reports which side of the directed line a->b the point p lies on:
// +1 left, -1 right, 0 on the line.
func side(a, b, p geom.Point) float64 {
	c := b.Sub(a).Cross(p.Sub(a))
	switch {
	case c > geom.Epsilon:
		return 1
	case c < -geom.Epsilon:
		return -1
	}
	return 0
}

// extend returns the point reached by continuing the segment from->through
// beyond through by frac times its length.
func extend(from, through geom.Point, frac float64) geom.Point {
	if frac <= 0 {
		frac = DefaultExtension
	}
	d := through.Sub(from)
	return through.Add(d.Mul(frac))
}

// sameLength compares a placed distance with a solved length.
func sameLength(placed, solved float64) bool {
	return geom.Near(placed, solved, trig.Tolerance*math.Max(1, solved))
}
