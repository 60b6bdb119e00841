package annotate

import (
	"unicode/utf8"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/layout"
)

// Options controls annotation sizes, in canvas units.
type Options struct {
	ArcRadius           float64 // arc radius for angles up to 90°
	ObtuseArcRadius     float64 // arc radius for angles over 90°
	MaxArcFraction      float64 // arc radius limit as a fraction of the shorter ray
	AngleLabelGap       float64 // angle label distance beyond the arc
	NarrowAngle         float64 // degrees; narrower angles push their label out, negative disables
	NarrowLabelStep     float64 // extra label distance per degree below NarrowAngle
	SideLabelOffset     float64 // side label distance from the side
	VertexLabelOffset   float64 // vertex label distance from the vertex
	RightMarkerSize     float64 // side of the right-angle square
	RightAngleTolerance float64 // degrees
	TickHalfLength      float64
	TickSpacing         float64
	FontSize            float64 // used to size label boxes for collision checks
}

// DefaultOptions returns the default annotation sizes.
func DefaultOptions() Options {
	return Options{
		ArcRadius:           40,
		ObtuseArcRadius:     30,
		MaxArcFraction:      0.4,
		AngleLabelGap:       16,
		NarrowAngle:         40,
		NarrowLabelStep:     0.5,
		SideLabelOffset:     12,
		VertexLabelOffset:   18,
		RightMarkerSize:     14,
		RightAngleTolerance: 1e-4,
		TickHalfLength:      8,
		TickSpacing:         6,
		FontSize:            14,
	}
}

// WithDefaults fills zero fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&o.ArcRadius, d.ArcRadius)
	fill(&o.ObtuseArcRadius, d.ObtuseArcRadius)
	fill(&o.MaxArcFraction, d.MaxArcFraction)
	fill(&o.AngleLabelGap, d.AngleLabelGap)
	fill(&o.NarrowAngle, d.NarrowAngle)
	fill(&o.NarrowLabelStep, d.NarrowLabelStep)
	fill(&o.SideLabelOffset, d.SideLabelOffset)
	fill(&o.VertexLabelOffset, d.VertexLabelOffset)
	fill(&o.RightMarkerSize, d.RightMarkerSize)
	fill(&o.RightAngleTolerance, d.RightAngleTolerance)
	fill(&o.TickHalfLength, d.TickHalfLength)
	fill(&o.TickSpacing, d.TickSpacing)
	fill(&o.FontSize, d.FontSize)
	return o
}

// LabelRole says what a label annotates.
type LabelRole int

const (
	LabelVertex LabelRole = iota
	LabelSide
	LabelAngle
)

func (r LabelRole) String() string {
	switch r {
	case LabelSide:
		return "side"
	case LabelAngle:
		return "angle"
	}
	return "vertex"
}

// Label is a text anchor. Pos is the centre of the text.
type Label struct {
	Role      LabelRole
	Text      string
	Pos       geom.Point
	Highlight bool
	Group     int
	Exterior  bool
}

// AngleAnnotation is the drawn form of an angle mark: an arc, or a square
// marker when the angle is right.
type AngleAnnotation struct {
	Mark   layout.AngleMark
	Arc    Arc
	Right  bool
	Marker []geom.Point // right-angle polyline, when Right
}

// Ticks are the congruence marks on one edge.
type Ticks struct {
	Edge      layout.Edge
	Segments  [][2]geom.Point
	Highlight bool
}

// Annotations is everything Annotate derives for one figure.
type Annotations struct {
	Angles []AngleAnnotation
	Ticks  []Ticks
	Labels []Label
}

// Annotate derives the annotations of a figure already in canvas
// coordinates. Vertex labels are placed first, then side labels, then angle
// labels, each kept clear of the ones before it.
func Annotate(f *layout.Figure, opts Options) *Annotations {
	opts = opts.WithDefaults()
	a := &Annotations{}

	var obstacles []geom.Rect
	for _, v := range f.Vertices {
		obstacles = append(obstacles, geom.RectAround(v.Pos, 6, 6))
	}
	placer := NewPlacer(obstacles)
	centre := f.Centroid(f.Outline...)
	boxH := opts.FontSize * 1.2

	for _, v := range f.Vertices {
		if v.Text == "" {
			continue
		}
		w := textWidth(v.Text, opts.FontSize)
		anchor := VertexLabelAnchor(v.Pos, centre, opts.VertexLabelOffset)
		pos := placer.PlaceAlong(anchor, anchor.Sub(v.Pos), w, boxH, opts.FontSize/2)
		a.Labels = append(a.Labels, Label{Role: LabelVertex, Text: v.Text, Pos: pos})
	}

	for _, e := range f.Edges {
		p1, p2 := f.MustPos(e.From), f.MustPos(e.To)
		if e.Ticks > 0 {
			a.Ticks = append(a.Ticks, Ticks{
				Edge:      e,
				Segments:  TickMarks(p1, p2, e.Ticks, opts.TickHalfLength, opts.TickSpacing),
				Highlight: e.Highlight,
			})
		}
		if e.Label == "" {
			continue
		}
		ref := centre
		if len(e.Opposite) > 0 {
			ref = f.Centroid(e.Opposite...)
		}
		w := textWidth(e.Label, opts.FontSize)
		pos := placer.PlaceOnEdge(p1, p2, ref, w, boxH, opts.SideLabelOffset)
		a.Labels = append(a.Labels, Label{Role: LabelSide, Text: e.Label, Pos: pos, Highlight: e.Highlight})
	}

	for _, m := range f.Angles {
		v, p1, p2 := f.MustPos(m.At), f.MustPos(m.From), f.MustPos(m.To)
		r := arcRadius(v, p1, p2, m.Degrees, opts)
		ann := AngleAnnotation{Mark: m, Arc: AngleArc(v, p1, p2, r)}
		if IsRightAngle(v, p1, p2, opts.RightAngleTolerance) {
			size := min(opts.RightMarkerSize, r)
			ann.Right = true
			ann.Marker = RightAngleMarker(v, p1, p2, size)
		}
		a.Angles = append(a.Angles, ann)

		if m.Label == "" {
			continue
		}
		dist := r + opts.AngleLabelGap
		if m.Degrees < opts.NarrowAngle {
			dist += (opts.NarrowAngle - m.Degrees) * opts.NarrowLabelStep
		}
		anchor := AngleLabelAnchor(v, p1, p2, dist)
		w := textWidth(m.Label, opts.FontSize)
		pos := placer.PlaceAlong(anchor, anchor.Sub(v), w, boxH, opts.FontSize/2)
		a.Labels = append(a.Labels, Label{
			Role: LabelAngle, Text: m.Label, Pos: pos,
			Highlight: m.Highlight, Group: m.Group, Exterior: m.Exterior,
		})
	}
	return a
}

// arcRadius picks the arc radius for an angle, shrunk so the arc stays
// within both rays.
func arcRadius(v, p1, p2 geom.Point, deg float64, opts Options) float64 {
	r := opts.ArcRadius
	if deg > 90 {
		r = opts.ObtuseArcRadius
	}
	limit := opts.MaxArcFraction * min(v.Dist(p1), v.Dist(p2))
	if limit > 0 && r > limit {
		r = limit
	}
	return r
}

// textWidth estimates the rendered width of s.
func textWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s))*fontSize*0.6 + 4
}
