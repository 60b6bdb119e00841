package geom

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Bounds returns the bounding box of pts. An empty slice yields the zero Rect.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}

	r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r = r.Include(p)
	}
	return r
}

// RectAround returns the box of width w and height h centred on c.
func RectAround(c Point, w, h float64) Rect {
	return Rect{MinX: c.X - w/2, MinY: c.Y - h/2, MaxX: c.X + w/2, MaxY: c.Y + h/2}
}

// Include grows r to contain p.
func (r Rect) Include(p Point) Rect {
	r.MinX = math.Min(r.MinX, p.X)
	r.MinY = math.Min(r.MinY, p.Y)
	r.MaxX = math.Max(r.MaxX, p.X)
	r.MaxY = math.Max(r.MaxY, p.Y)
	return r
}

func (r Rect) Width() float64 { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the centre of the box.
func (r Rect) Center() Point {
	return Point{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Overlap returns the overlap area between two rectangles, 0 if disjoint.
func (r Rect) Overlap(o Rect) float64 {
	w := math.Min(r.MaxX, o.MaxX) - math.Max(r.MinX, o.MinX)
	h := math.Min(r.MaxY, o.MaxY) - math.Max(r.MinY, o.MinY)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}
