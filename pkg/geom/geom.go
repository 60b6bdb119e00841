// Package geom provides the 2D point and angle helpers shared by the solver,
// placement, viewport and annotation packages.
//
// Shape-space code works in radians with the y axis pointing up. Canvas space
// (y down) only appears after the viewport transform.
package geom

import "math"

// Epsilon is the tolerance used for "is this length zero" checks.
const Epsilon = 1e-9

// Point represents a 2D coordinate or vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Polar returns the point at distance r along direction theta (radians).
func Polar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }
func (p Point) Neg() Point { return Point{-p.X, -p.Y} }
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// Eq reports whether p and q agree within tol on both axes.
func (p Point) Eq(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Unit returns p scaled to length 1. The zero vector is returned unchanged.
func (p Point) Unit() Point {
	l := p.Len()
	if l < Epsilon {
		return p
	}
	return Point{p.X / l, p.Y / l}
}

// Rotate rotates p about the origin by theta radians (counter-clockwise in y-up space).
func (p Point) Rotate(theta float64) Point {
	s, c := math.Sincos(theta)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// Mid returns the midpoint of a and b.
func Mid(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Lerp returns a + t*(b-a).
func Lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Centroid returns the arithmetic mean of pts, or the origin for an empty slice.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return Point{sx / n, sy / n}
}

// Rad converts degrees to radians.
func Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Deg converts radians to degrees.
func Deg(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAngle maps a (radians) into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleBetween returns the unsigned angle at v formed by rays v->p1 and v->p2,
// in radians within [0, π].
func AngleBetween(v, p1, p2 Point) float64 {
	a := p1.Sub(v)
	b := p2.Sub(v)
	return math.Abs(math.Atan2(a.Cross(b), a.Dot(b)))
}

// Near reports whether |a-b| <= tol.
func Near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
