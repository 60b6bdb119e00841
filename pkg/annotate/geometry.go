// Package annotate derives annotation geometry from placed vertices: angle
// arcs, right-angle markers, label anchors and congruence tick marks.
//
// Every function here works in canvas coordinates (y down) and depends only
// on the positions it is given, never on fixed pixel locations.
//
// Arc direction follows one convention everywhere: the signed sweep from the
// first ray to the second is normalised into (-π, π], the SVG large-arc
// flag is |delta| > π and the sweep flag is delta > 0. In y-down canvas
// coordinates a positive delta turns clockwise on screen, which is what
// SVG's sweep-flag 1 draws.
package annotate

import (
	"fmt"
	"math"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
)

// Arc is a circular arc around Center from Start to End.
type Arc struct {
	Center     geom.Point
	Radius     float64
	Start, End geom.Point
	StartAngle float64 // radians, canvas coordinates
	Delta      float64 // signed sweep in radians, within (-π, π]
	LargeArc   bool
	Sweep      bool
}

// AngleArc returns the arc at v from the ray toward p1 to the ray toward
// p2, on the side of the angle smaller than 180°.
func AngleArc(v, p1, p2 geom.Point, radius float64) Arc {
	a1 := p1.Sub(v).Angle()
	a2 := p2.Sub(v).Angle()
	delta := geom.NormalizeAngle(a2 - a1)
	return Arc{
		Center:     v,
		Radius:     radius,
		Start:      v.Add(geom.Polar(radius, a1)),
		End:        v.Add(geom.Polar(radius, a2)),
		StartAngle: a1,
		Delta:      delta,
		LargeArc:   math.Abs(delta) > math.Pi,
		Sweep:      delta > 0,
	}
}

// Midpoint returns the point halfway along the arc.
func (a Arc) Midpoint() geom.Point {
	return a.Center.Add(geom.Polar(a.Radius, a.StartAngle+a.Delta/2))
}

// Path returns the arc as SVG path data.
func (a Arc) Path() string {
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d %d %.2f %.2f",
		a.Start.X, a.Start.Y, a.Radius, a.Radius, flag(a.LargeArc), flag(a.Sweep), a.End.X, a.End.Y)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IsRightAngle reports whether the angle at v between p1 and p2 is within
// tolDeg degrees of 90°.
func IsRightAngle(v, p1, p2 geom.Point, tolDeg float64) bool {
	return geom.Near(geom.Deg(geom.AngleBetween(v, p1, p2)), 90, tolDeg)
}

// RightAngleMarker returns the open polyline of the square drawn in a right
// angle at v: the point size along each ray and the corner between them.
func RightAngleMarker(v, p1, p2 geom.Point, size float64) []geom.Point {
	u1 := p1.Sub(v).Unit().Mul(size)
	u2 := p2.Sub(v).Unit().Mul(size)
	return []geom.Point{v.Add(u1), v.Add(u1).Add(u2), v.Add(u2)}
}

// AngleLabelAnchor returns the point dist from v along the bisector of the
// angle between the rays toward p1 and p2.
func AngleLabelAnchor(v, p1, p2 geom.Point, dist float64) geom.Point {
	a1 := p1.Sub(v).Angle()
	delta := geom.NormalizeAngle(p2.Sub(v).Angle() - a1)
	return v.Add(geom.Polar(dist, a1+delta/2))
}

// SideLabelAnchor returns the point offset from the midpoint of p1-p2,
// perpendicular to the side and away from the reference point, normally
// the centroid of the shape the side belongs to.
func SideLabelAnchor(p1, p2, away geom.Point, offset float64) geom.Point {
	mid := geom.Mid(p1, p2)
	return mid.Add(outwardNormal(p1, p2, away).Mul(offset))
}

// outwardNormal returns the unit normal of p1-p2 pointing away from ref.
// When ref lies on the line the left normal is used.
func outwardNormal(p1, p2, ref geom.Point) geom.Point {
	n := p2.Sub(p1).Perp().Unit()
	if n.Dot(ref.Sub(geom.Mid(p1, p2))) > geom.Epsilon {
		n = n.Neg()
	}
	return n
}

// VertexLabelAnchor returns the point offset from v directly away from the
// centroid. A vertex at the centroid is labelled above.
func VertexLabelAnchor(v, centroid geom.Point, offset float64) geom.Point {
	d := v.Sub(centroid)
	if d.Len() < geom.Epsilon {
		return v.Add(geom.Pt(0, -offset))
	}
	return v.Add(d.Unit().Mul(offset))
}

// TickMarks returns count short segments across the middle of p1-p2, each
// halfLen either side of the side and spacing apart along it.
func TickMarks(p1, p2 geom.Point, count int, halfLen, spacing float64) [][2]geom.Point {
	if count <= 0 {
		return nil
	}
	dir := p2.Sub(p1).Unit()
	perp := dir.Perp().Mul(halfLen)
	mid := geom.Mid(p1, p2)

	ticks := make([][2]geom.Point, count)
	for i := 0; i < count; i++ {
		offset := (float64(i) - float64(count-1)/2) * spacing
		c := mid.Add(dir.Mul(offset))
		ticks[i] = [2]geom.Point{c.Add(perp), c.Sub(perp)}
	}
	return ticks
}
