// Package layout turns solved shapes into a Figure: labelled vertices in
// an abstract math coordinate space (y up, arbitrary units), the edges
// between them and the angles to mark.
//
// Triangles are placed with the anchor vertex at the origin and the
// baseline along the positive x axis. Composite shapes are assembled by
// vertex-label equality: each later triangle is attached to a shared edge
// of the ones already placed and reuses those points exactly.
package layout

import (
	"fmt"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
	"github.com/ha1tch/geom-toolkit/pkg/trig"
)

// Vertex is a placed point. Text is the label drawn next to it; an empty
// Text draws nothing.
type Vertex struct {
	ID   string
	Text string
	Pos  geom.Point
	Dot  bool // draw a point marker
}

// EdgeKind classifies an edge for styling.
type EdgeKind int

const (
	EdgeSide EdgeKind = iota
	EdgeDiagonal
	EdgeExtension
	EdgeLine
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeDiagonal:
		return "diagonal"
	case EdgeExtension:
		return "extension"
	case EdgeLine:
		return "line"
	}
	return "side"
}

// Edge is a drawn segment between two vertices.
type Edge struct {
	From, To  string
	Kind      EdgeKind
	Label     string
	Ticks     int
	Highlight bool
	Dashed    bool

	// Opposite lists the third vertex of every triangle the edge belongs to.
	// Side labels are pushed away from these.
	Opposite []string
}

// AngleMark is an angle to annotate: at vertex At, between the rays
// toward From and To. The marked region is the one smaller than 180°.
type AngleMark struct {
	At, From, To string
	Degrees      float64
	Label        string
	Highlight    bool
	Group        int // 1-4 colour group, 0 for none
	Exterior     bool
}

// SolvedTriangle records the solution used for one triangle of a figure.
type SolvedTriangle struct {
	Vertices [3]string
	Solution trig.Solution
}

// Figure is a laid-out shape.
type Figure struct {
	Kind      shape.Kind
	Vertices  []Vertex
	Edges     []Edge
	Angles    []AngleMark
	Outline   []string // polygon boundary to fill, if any
	Triangles []SolvedTriangle
	Caption   string
}

// Index returns the position of vertex id in Vertices, or -1.
func (f *Figure) Index(id string) int {
	for i := range f.Vertices {
		if f.Vertices[i].ID == id {
			return i
		}
	}
	return -1
}

// Pos returns the position of vertex id.
func (f *Figure) Pos(id string) (geom.Point, bool) {
	if i := f.Index(id); i >= 0 {
		return f.Vertices[i].Pos, true
	}
	return geom.Point{}, false
}

// MustPos returns the position of a vertex known to exist. Figures that
// pass Validate only reference known vertices.
func (f *Figure) MustPos(id string) geom.Point {
	p, ok := f.Pos(id)
	if !ok {
		panic(fmt.Errorf("%w %q", ErrUnknownVertex, id))
	}
	return p
}

// Validate checks that every edge, angle mark and outline entry names a
// vertex of f.
func (f *Figure) Validate() error {
	check := func(what string, ids ...string) error {
		for _, id := range ids {
			if f.Index(id) < 0 {
				return fmt.Errorf("%w %q in %s", ErrUnknownVertex, id, what)
			}
		}
		return nil
	}
	for _, e := range f.Edges {
		if err := check("edge "+e.From+e.To, e.From, e.To); err != nil {
			return err
		}
	}
	for _, m := range f.Angles {
		if err := check("angle at "+m.At, m.At, m.From, m.To); err != nil {
			return err
		}
	}
	return check("outline", f.Outline...)
}

// Points returns every vertex position in order.
func (f *Figure) Points() []geom.Point {
	pts := make([]geom.Point, len(f.Vertices))
	for i, v := range f.Vertices {
		pts[i] = v.Pos
	}
	return pts
}

// Bounds returns the bounding box of all vertices.
func (f *Figure) Bounds() geom.Rect {
	return geom.Bounds(f.Points())
}

// Map returns a copy of f with every vertex moved by fn. Edges, angles and
// solutions are shared with f.
func (f *Figure) Map(fn func(geom.Point) geom.Point) *Figure {
	out := *f
	out.Vertices = make([]Vertex, len(f.Vertices))
	for i, v := range f.Vertices {
		v.Pos = fn(v.Pos)
		out.Vertices[i] = v
	}
	return &out
}

// Centroid returns the mean of the named vertices, or of all vertices when
// ids is empty.
func (f *Figure) Centroid(ids ...string) geom.Point {
	if len(ids) == 0 {
		return geom.Centroid(f.Points())
	}
	pts := make([]geom.Point, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.Pos(id); ok {
			pts = append(pts, p)
		}
	}
	return geom.Centroid(pts)
}
