package scene

import (
	"github.com/ha1tch/geom-toolkit/pkg/annotate"
	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/layout"
	"github.com/ha1tch/geom-toolkit/pkg/viewport"
)

// Emitter turns a canvas-space figure and its annotations into a Scene.
type Emitter struct {
	Theme       Theme
	StrokeWidth float64
	FontSize    float64
	TitleSize   float64
	PointRadius float64
}

// NewEmitter returns an Emitter with default sizes.
func NewEmitter(t Theme) *Emitter {
	return &Emitter{Theme: t, StrokeWidth: 2.5, FontSize: 14, TitleSize: 16, PointRadius: 4}
}

// Emit builds the scene. Items are ordered back to front: outline fill,
// edges, tick marks, angle arcs and markers, point markers, labels, then
// title and caption.
func (e *Emitter) Emit(f *layout.Figure, ann *annotate.Annotations, c viewport.Canvas, title string) *Scene {
	t := e.Theme
	s := &Scene{
		Width:      c.Width,
		Height:     c.Height,
		Title:      title,
		Theme:      t.Name,
		Background: t.Background,
	}

	if len(f.Outline) >= 3 {
		poly := &Polygon{Closed: true, Role: RoleOutline, Style: Style{Fill: t.Fill, FillOpacity: t.FillOpacity}}
		for _, id := range f.Outline {
			poly.Points = append(poly.Points, f.MustPos(id))
		}
		s.Add(poly)
	}

	for _, ed := range f.Edges {
		s.Add(&Line{From: f.MustPos(ed.From), To: f.MustPos(ed.To), Role: edgeRole(ed.Kind), Style: e.edgeStyle(ed)})
	}

	for _, tk := range ann.Ticks {
		st := Style{Stroke: t.Line, Width: 2}
		if tk.Highlight {
			st.Stroke = t.Highlight
		}
		for _, seg := range tk.Segments {
			s.Add(&Line{From: seg[0], To: seg[1], Role: RoleTick, Style: st})
		}
	}

	for _, aa := range ann.Angles {
		st := Style{Stroke: e.angleColor(aa.Mark.Highlight, aa.Mark.Group, aa.Mark.Exterior), Width: 2}
		if aa.Right {
			s.Add(&Polygon{Points: aa.Marker, Role: RoleRightAngle, Style: st})
			continue
		}
		s.Add(&Arc{
			Center: aa.Arc.Center,
			Radius: aa.Arc.Radius,
			Start:  aa.Arc.StartAngle,
			Delta:  aa.Arc.Delta,
			Path:   aa.Arc.Path(),
			Role:   RoleArc,
			Style:  st,
		})
	}

	for _, v := range f.Vertices {
		if v.Dot {
			s.Add(&Circle{Center: v.Pos, Radius: e.PointRadius, Role: RolePoint, Style: Style{Fill: t.Text}})
		}
	}

	for _, l := range ann.Labels {
		s.Add(e.label(l))
	}

	if title != "" {
		y := min(c.Margin/2, 28)
		s.Add(&Text{
			Pos: geom.Pt(c.Width/2, y), Content: title, Role: RoleTitle,
			Style: Style{Fill: t.Text, FontSize: e.TitleSize, Bold: true},
		})
	}
	if f.Caption != "" {
		s.Add(&Text{
			Pos: geom.Pt(c.Width/2, c.Height-c.Margin/2), Content: f.Caption, Role: RoleCaption,
			Style: Style{Fill: t.Muted, FontSize: e.FontSize - 2},
		})
	}
	return s
}

func edgeRole(k layout.EdgeKind) Role {
	switch k {
	case layout.EdgeDiagonal:
		return RoleDiagonal
	case layout.EdgeExtension:
		return RoleExtension
	case layout.EdgeLine:
		return RoleLine
	}
	return RoleSide
}

func (e *Emitter) edgeStyle(ed layout.Edge) Style {
	t := e.Theme
	st := Style{Stroke: t.Line, Width: e.StrokeWidth, Dashed: ed.Dashed}
	switch ed.Kind {
	case layout.EdgeDiagonal:
		st.Stroke = t.Diagonal
		st.Width = e.StrokeWidth - 0.5
	case layout.EdgeExtension:
		st.Stroke = t.Muted
		st.Width = e.StrokeWidth - 0.5
	}
	if ed.Highlight {
		st.Stroke = t.Highlight
		st.Width = e.StrokeWidth + 0.5
	}
	return st
}

func (e *Emitter) angleColor(highlight bool, group int, exterior bool) string {
	t := e.Theme
	switch {
	case group > 0:
		return t.GroupColor(group)
	case highlight:
		return t.Highlight
	case exterior:
		return t.Exterior
	}
	return t.Angle
}

func (e *Emitter) label(l annotate.Label) *Text {
	t := e.Theme
	txt := &Text{Pos: l.Pos, Content: l.Text}
	switch l.Role {
	case annotate.LabelVertex:
		txt.Role = RoleVertexLabel
		txt.Style = Style{Fill: t.Text, FontSize: e.FontSize + 2, Bold: true}
	case annotate.LabelSide:
		txt.Role = RoleSideLabel
		txt.Style = Style{Fill: t.Text, FontSize: e.FontSize}
		if l.Highlight {
			txt.Style.Fill = t.Highlight
		}
	default:
		txt.Role = RoleAngleLabel
		txt.Style = Style{Fill: e.angleColor(l.Highlight, l.Group, l.Exterior), FontSize: e.FontSize - 1}
		if l.Group > 0 {
			txt.Style.Bold = true
		}
	}
	return txt
}
