package annotate

import (
	"math"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
)

// Placer keeps labels from overlapping each other and other obstacles.
// Each placed label becomes an obstacle for the ones placed after it.
type Placer struct {
	obstacles []geom.Rect
}

// NewPlacer creates a Placer with initial obstacles.
func NewPlacer(obstacles []geom.Rect) *Placer {
	obs := make([]geom.Rect, len(obstacles))
	copy(obs, obstacles)
	return &Placer{obstacles: obs}
}

// Block adds an obstacle.
func (p *Placer) Block(r geom.Rect) {
	p.obstacles = append(p.obstacles, r)
}

// Obstacles returns the current obstacles, placed labels included.
func (p *Placer) Obstacles() []geom.Rect {
	return p.obstacles
}

func (p *Placer) overlap(r geom.Rect) float64 {
	total := 0.0
	for _, o := range p.obstacles {
		total += r.Overlap(o)
	}
	return total
}

// settle takes the first candidate that overlaps nothing, or else the one
// with the least overlap, and records it.
func (p *Placer) settle(candidates []geom.Point, w, h float64) geom.Point {
	best := candidates[0]
	bestOverlap := math.MaxFloat64
	for _, c := range candidates {
		ov := p.overlap(geom.RectAround(c, w, h))
		if ov == 0 {
			best = c
			break
		}
		if ov < bestOverlap {
			best, bestOverlap = c, ov
		}
	}
	p.Block(geom.RectAround(best, w, h))
	return best
}

// PlaceAlong places a w x h label centred at anchor, nudging it further
// along dir in steps of step when it would overlap.
func (p *Placer) PlaceAlong(anchor, dir geom.Point, w, h, step float64) geom.Point {
	u := dir.Unit()
	side := u.Perp()
	candidates := []geom.Point{anchor}
	for k := 1.0; k <= 4; k++ {
		candidates = append(candidates, anchor.Add(u.Mul(k*step)))
	}
	// Sideways as a last resort.
	candidates = append(candidates,
		anchor.Add(side.Mul(step)),
		anchor.Add(side.Mul(-step)),
	)
	return p.settle(candidates, w, h)
}

// PlaceLabel places a label beside anchor, trying above, below, right and
// left, then the diagonals.
func (p *Placer) PlaceLabel(anchor geom.Point, w, h, gap float64) geom.Point {
	dx, dy := w/2+gap, h/2+gap
	return p.settle([]geom.Point{
		{X: anchor.X, Y: anchor.Y - dy},
		{X: anchor.X, Y: anchor.Y + dy},
		{X: anchor.X + dx, Y: anchor.Y},
		{X: anchor.X - dx, Y: anchor.Y},
		{X: anchor.X + dx, Y: anchor.Y - dy},
		{X: anchor.X - dx, Y: anchor.Y - dy},
		{X: anchor.X + dx, Y: anchor.Y + dy},
		{X: anchor.X - dx, Y: anchor.Y + dy},
	}, w, h)
}

// PlaceOnEdge places a side label off the midpoint of p1-p2, preferring the
// side away from ref, then further out, then sliding along the edge.
func (p *Placer) PlaceOnEdge(p1, p2, ref geom.Point, w, h, offset float64) geom.Point {
	mid := geom.Mid(p1, p2)
	if p1.Dist(p2) < 1 {
		return p.PlaceLabel(mid, w, h, offset)
	}
	n := outwardNormal(p1, p2, ref)
	along := p2.Sub(p1).Unit()

	// Keep the whole box clear of the line: push by its half extent
	// along the normal.
	reach := offset + 0.5*(math.Abs(n.X)*w+math.Abs(n.Y)*h)
	return p.settle([]geom.Point{
		mid.Add(n.Mul(reach)),
		mid.Add(n.Mul(reach + offset)),
		mid.Add(n.Mul(reach)).Add(along.Mul(w)),
		mid.Add(n.Mul(reach)).Sub(along.Mul(w)),
		mid.Add(n.Mul(-reach)),
	}, w, h)
}
