package layout

import (
	"fmt"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
)

// Build lays out any Shape variant.
func Build(s shape.Shape) (*Figure, error) {
	switch sh := s.(type) {
	case *shape.Triangle:
		return Triangle(sh)
	case *shape.Composite:
		return Assemble(sh)
	case *shape.Quadrilateral:
		c, err := sh.Composite()
		if err != nil {
			return nil, err
		}
		f, err := Assemble(c)
		if err != nil {
			return nil, err
		}
		f.Kind = shape.KindQuadrilateral
		return f, nil
	case *shape.Transversal:
		return PlaceTransversal(sh)
	case nil:
		return nil, fmt.Errorf("%w: no shape", shape.ErrInvalidSpec)
	}
	return nil, fmt.Errorf("%w: %T", shape.ErrUnknownKind, s)
}

// Triangle solves and places a single triangle, with its side extension
// and exterior angle if it has one.
func Triangle(t *shape.Triangle) (*Figure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	plain := *t
	plain.Extension = nil

	f, err := Assemble(&shape.Composite{Triangles: []shape.Triangle{plain}})
	if err != nil {
		return nil, err
	}
	f.Kind = shape.KindTriangle
	f.Outline = t.Vertices[:]

	if e := t.Extension; e != nil {
		addExtension(f, t, e)
	}
	return f, nil
}

// addExtension continues side From-Through past Through to a new point and
// marks the exterior angle at Through, between the extension and the side
// to the remaining vertex.
func addExtension(f *Figure, t *shape.Triangle, e *shape.Extension) {
	from, through := f.MustPos(e.From), f.MustPos(e.Through)
	d := extend(from, through, e.Length)
	f.Vertices = append(f.Vertices, Vertex{ID: e.Point, Text: e.Point, Pos: d, Dot: true})
	f.Edges = append(f.Edges, Edge{From: e.Through, To: e.Point, Kind: EdgeExtension})

	other := t.Vertices[t.SideBetween(e.From, e.Through)]
	deg := geom.Deg(geom.AngleBetween(through, d, f.MustPos(other)))
	if e.Angle.Hidden {
		return
	}
	label := e.Angle.Label
	if label == "" {
		label = shape.FormatNumber(deg) + "°"
	}
	f.Angles = append(f.Angles, AngleMark{
		At:        e.Through,
		From:      other,
		To:        e.Point,
		Degrees:   deg,
		Label:     label,
		Highlight: e.Angle.Highlight,
		Exterior:  true,
	})
}
