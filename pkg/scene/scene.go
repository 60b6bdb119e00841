// Package scene holds the drawable output of the diagram pipeline: an
// ordered list of styled primitives in canvas coordinates (y down).
//
// A Scene knows nothing about geometry solving; it is what renderers
// consume. Colours come from a Theme, so light and dark output differ only
// here.
package scene

import (
	"encoding/json"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
)

// Role says what a primitive depicts.
type Role string

const (
	RoleOutline     Role = "outline"
	RoleSide        Role = "side"
	RoleDiagonal    Role = "diagonal"
	RoleExtension   Role = "extension"
	RoleLine        Role = "line"
	RoleTick        Role = "tick"
	RoleArc         Role = "arc"
	RoleRightAngle  Role = "right-angle"
	RolePoint       Role = "point"
	RoleVertexLabel Role = "vertex-label"
	RoleSideLabel   Role = "side-label"
	RoleAngleLabel  Role = "angle-label"
	RoleTitle       Role = "title"
	RoleCaption     Role = "caption"
)

// Style is the resolved appearance of a primitive.
type Style struct {
	Stroke      string  `json:"stroke,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Dashed      bool    `json:"dashed,omitempty"`
	FillOpacity float64 `json:"fill_opacity,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	Bold        bool    `json:"bold,omitempty"`
}

// Primitive is one of *Line, *Arc, *Polygon, *Circle or *Text.
type Primitive interface {
	Kind() string
	ItemRole() Role
}

// Line is a straight segment.
type Line struct {
	From  geom.Point `json:"from"`
	To    geom.Point `json:"to"`
	Role  Role       `json:"role"`
	Style Style      `json:"style"`
}

// Arc is a circular arc. Start and Delta are radians in canvas coordinates;
// Path is the same arc as SVG path data.
type Arc struct {
	Center geom.Point `json:"center"`
	Radius float64    `json:"radius"`
	Start  float64    `json:"start"`
	Delta  float64    `json:"delta"`
	Path   string     `json:"path"`
	Role   Role       `json:"role"`
	Style  Style      `json:"style"`
}

// Polygon is a polyline, closed when Closed is set.
type Polygon struct {
	Points []geom.Point `json:"points"`
	Closed bool         `json:"closed"`
	Role   Role         `json:"role"`
	Style  Style        `json:"style"`
}

// Circle is a filled point marker.
type Circle struct {
	Center geom.Point `json:"center"`
	Radius float64    `json:"radius"`
	Role   Role       `json:"role"`
	Style  Style      `json:"style"`
}

// Text is a label centred on Pos.
type Text struct {
	Pos     geom.Point `json:"pos"`
	Content string     `json:"content"`
	Role    Role       `json:"role"`
	Style   Style      `json:"style"`
}

func (*Line) Kind() string    { return "line" }
func (*Arc) Kind() string     { return "arc" }
func (*Polygon) Kind() string { return "polygon" }
func (*Circle) Kind() string  { return "circle" }
func (*Text) Kind() string    { return "textAnchor" }

func (l *Line) ItemRole() Role    { return l.Role }
func (a *Arc) ItemRole() Role     { return a.Role }
func (p *Polygon) ItemRole() Role { return p.Role }
func (c *Circle) ItemRole() Role  { return c.Role }
func (t *Text) ItemRole() Role    { return t.Role }

// Scene is an ordered list of primitives; later items draw on top.
type Scene struct {
	Width      float64
	Height     float64
	Title      string
	Theme      string
	Background string
	Items      []Primitive
}

// Add appends primitives.
func (s *Scene) Add(items ...Primitive) {
	s.Items = append(s.Items, items...)
}

// Filter returns the items with the given role, in order.
func (s *Scene) Filter(role Role) []Primitive {
	var out []Primitive
	for _, it := range s.Items {
		if it.ItemRole() == role {
			out = append(out, it)
		}
	}
	return out
}

// Texts returns the content of every text item with the given role.
func (s *Scene) Texts(role Role) []string {
	var out []string
	for _, it := range s.Filter(role) {
		if t, ok := it.(*Text); ok {
			out = append(out, t.Content)
		}
	}
	return out
}

type jsonScene struct {
	Width      float64                `json:"width"`
	Height     float64                `json:"height"`
	Title      string                 `json:"title,omitempty"`
	Theme      string                 `json:"theme,omitempty"`
	Background string                 `json:"background,omitempty"`
	Items      []map[string]Primitive `json:"items"`
}

// MarshalJSON encodes each item as an object keyed by its kind, for example
// {"line": {...}}.
func (s *Scene) MarshalJSON() ([]byte, error) {
	j := jsonScene{
		Width:      s.Width,
		Height:     s.Height,
		Title:      s.Title,
		Theme:      s.Theme,
		Background: s.Background,
		Items:      make([]map[string]Primitive, len(s.Items)),
	}
	for i, it := range s.Items {
		j.Items[i] = map[string]Primitive{it.Kind(): it}
	}
	return json.Marshal(j)
}
