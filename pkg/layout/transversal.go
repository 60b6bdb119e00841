package layout

import (
	"math"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
)

// Transversal layout constants, in figure units.
const (
	lineGap       = 100.0 // distance between the parallel lines
	lineOverhang  = 150.0 // parallel lines extend this far past the intersections
	transOverhang = 80.0  // the transversal extends this far past each line
)

var captions = map[string]string{
	"corresponding": "Corresponding angles are equal (F-pattern)",
	"alternate":     "Alternate interior and exterior angles are equal (Z-pattern)",
	"cointerior":    "Co-interior angles sum to 180° (C-pattern)",
}

// PlaceTransversal places two horizontal parallel lines cut by a transversal
// and marks the eight angles. The transversal rises to the right when the
// angle at position 0 is acute.
func PlaceTransversal(t *shape.Transversal) (*Figure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	angles := t.Angles()
	theta := geom.Rad(angles[0])
	u := geom.Polar(1, theta)

	top := geom.Pt(0, lineGap)
	bottom := top.Sub(u.Mul(lineGap / math.Sin(theta)))
	left := math.Min(top.X, bottom.X) - lineOverhang
	right := math.Max(top.X, bottom.X) + lineOverhang

	f := &Figure{Kind: shape.KindTransversal, Caption: captions[t.Highlight]}
	f.Vertices = []Vertex{
		{ID: "P", Pos: top, Dot: true},
		{ID: "Q", Pos: bottom, Dot: true},
		{ID: "L1", Text: t.LineLabels[0], Pos: geom.Pt(left, top.Y)},
		{ID: "R1", Text: t.LineLabels[1], Pos: geom.Pt(right, top.Y)},
		{ID: "L2", Text: t.LineLabels[2], Pos: geom.Pt(left, bottom.Y)},
		{ID: "R2", Text: t.LineLabels[3], Pos: geom.Pt(right, bottom.Y)},
		{ID: "T1", Pos: top.Add(u.Mul(transOverhang))},
		{ID: "T2", Pos: bottom.Sub(u.Mul(transOverhang))},
	}
	f.Edges = []Edge{
		{From: "L1", To: "R1", Kind: EdgeLine},
		{From: "L2", To: "R2", Kind: EdgeLine},
		{From: "T2", To: "T1", Kind: EdgeLine},
	}

	// Rays per local position: right/up, right/down, up/left, left/down.
	type rays struct{ at, from, to string }
	positions := [8]rays{
		{"P", "R1", "T1"}, {"P", "R1", "Q"}, {"P", "T1", "L1"}, {"P", "L1", "Q"},
		{"Q", "R2", "P"}, {"Q", "R2", "T2"}, {"Q", "P", "L2"}, {"Q", "L2", "T2"},
	}
	groups := t.HighlightGroups()
	for p, r := range positions {
		m := AngleMark{At: r.at, From: r.from, To: r.to, Degrees: angles[p], Label: t.Label(p)}
		if g, ok := groups[p]; ok {
			m.Highlight = true
			m.Group = g + 1
		}
		f.Angles = append(f.Angles, m)
	}

	if t.Rotate != 0 {
		r := geom.Rad(t.Rotate)
		f = f.Map(func(p geom.Point) geom.Point { return p.Rotate(r) })
	}
	return f, nil
}
