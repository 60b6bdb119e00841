// Package shape defines the Shape Specification: the immutable description
// of a diagram that calling code hands to the layout pipeline.
//
// A Spec wraps exactly one Shape variant:
//
//   - *Triangle: three labelled vertices with optional side and angle measures.
//   - *Composite: a fan of triangles sharing edges by vertex label.
//   - *Quadrilateral: four vertices split by one diagonal into two triangles.
//   - *Transversal: two parallel lines cut by a transversal.
//
// Measures are numeric (Length, Degrees) and independent of display text
// (Label), so a side can be labelled "x" while carrying no value at all.
package shape

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ha1tch/geom-toolkit/pkg/trig"
)

// Kind tags the Shape variant.
type Kind string

const (
	KindTriangle      Kind = "triangle"
	KindComposite     Kind = "composite"
	KindQuadrilateral Kind = "quadrilateral"
	KindTransversal   Kind = "transversal"
)

// Shape is implemented by *Triangle, *Composite, *Quadrilateral and *Transversal.
type Shape interface {
	Kind() Kind
	Validate() error
}

// Spec is one diagram request.
type Spec struct {
	Title  string
	Theme  string      // "light" (default) or "dark"
	Canvas *CanvasHint // optional per-diagram canvas override
	Shape  Shape
}

// CanvasHint carries the recognised canvas options {width, height, margin}.
// Zero Width and Height fall back to the caller's defaults; a nil Margin
// does, while an explicit 0 means no margin.
type CanvasHint struct {
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
	Margin *float64 `json:"margin,omitempty"`
}

// Validate checks the wrapped shape.
func (s *Spec) Validate() error {
	if s == nil || s.Shape == nil {
		return fmt.Errorf("%w: no shape", ErrInvalidSpec)
	}
	return s.Shape.Validate()
}

// Side describes one edge of a triangle or polygon.
type Side struct {
	Length    float64 `json:"length,omitempty"` // 0 = unknown
	Label     string  `json:"label,omitempty"`  // display text, may be non-numeric
	Ticks     int     `json:"ticks,omitempty"`  // congruence tick marks
	Highlight bool    `json:"highlight,omitempty"`
	HideLabel bool    `json:"hide_label,omitempty"`
}

// Text returns the label to draw for the side, or "" for none.
func (s Side) Text() string {
	if s.HideLabel {
		return ""
	}
	if s.Label != "" {
		return s.Label
	}
	if s.Length > 0 {
		return FormatNumber(s.Length)
	}
	return ""
}

// Angle describes an interior (or polygon) angle.
type Angle struct {
	Degrees   float64 `json:"degrees,omitempty"` // 0 = unknown
	Label     string  `json:"label,omitempty"`   // overrides the numeric display
	Highlight bool    `json:"highlight,omitempty"`
	Hidden    bool    `json:"hidden,omitempty"` // measure only, no arc or label
}

// Text returns the label to draw for the angle, or "" for an arc without text.
func (a Angle) Text() string {
	if a.Label != "" {
		return a.Label
	}
	if a.Degrees > 0 {
		return FormatNumber(a.Degrees) + "°"
	}
	return ""
}

// Orientation pins the pedagogical orientation of a placed shape so that a
// mirror-image solution is never chosen silently.
type Orientation struct {
	Base   int     `json:"base,omitempty"`   // vertex whose opposite side lies on the baseline
	Flip   bool    `json:"flip,omitempty"`   // apex below the baseline instead of above
	Rotate float64 `json:"rotate,omitempty"` // counter-clockwise rotation in degrees
}

// Extension extends a triangle side beyond one of its endpoints, producing
// a new point and an exterior angle.
type Extension struct {
	From    string  `json:"from"`             // side endpoint the line starts at
	Through string  `json:"through"`          // vertex the side is extended beyond
	Point   string  `json:"point"`            // label of the new point
	Length  float64 `json:"length,omitempty"` // as a fraction of the side; 0 = 0.6
	Angle   Angle   `json:"angle"`            // exterior angle annotation
}

// Triangle is the minimal solvable shape.
type Triangle struct {
	Vertices    [3]string
	Sides       [3]Side  // Sides[i] is opposite Vertices[i]
	Angles      [3]Angle // Angles[i] is at Vertices[i]
	Orientation Orientation
	Ambiguity   trig.AmbiguityPolicy
	Extension   *Extension
}

func (t *Triangle) Kind() Kind { return KindTriangle }

// Measures returns the numeric knowns for the solver.
func (t *Triangle) Measures() trig.Triangle {
	var m trig.Triangle
	for i := 0; i < 3; i++ {
		m.Sides[i] = t.Sides[i].Length
		m.Angles[i] = t.Angles[i].Degrees
	}
	return m
}

// Index returns the position of label among the vertices, or -1.
func (t *Triangle) Index(label string) int {
	for i, v := range t.Vertices {
		if v == label {
			return i
		}
	}
	return -1
}

// SideBetween returns the index of the side joining vertices a and b
// (the index of the third vertex), or -1.
func (t *Triangle) SideBetween(a, b string) int {
	i, j := t.Index(a), t.Index(b)
	if i < 0 || j < 0 || i == j {
		return -1
	}
	return 3 - i - j
}

func (t *Triangle) Validate() error {
	if err := distinctLabels(t.Vertices[:]); err != nil {
		return err
	}
	if t.Orientation.Base < 0 || t.Orientation.Base > 2 {
		return fmt.Errorf("%w: orientation base %d out of range", ErrInvalidSpec, t.Orientation.Base)
	}
	for i := 0; i < 3; i++ {
		if t.Sides[i].Ticks < 0 {
			return fmt.Errorf("%w: negative tick count on side %d", ErrInvalidSpec, i)
		}
	}
	if e := t.Extension; e != nil {
		if t.SideBetween(e.From, e.Through) < 0 {
			return fmt.Errorf("%w: extension %s-%s is not a side of %s", ErrInvalidSpec,
				e.From, e.Through, strings.Join(t.Vertices[:], ""))
		}
		if e.Point == "" || t.Index(e.Point) >= 0 {
			return fmt.Errorf("%w: extension point %q must be a new label", ErrInvalidSpec, e.Point)
		}
		if e.Length < 0 {
			return fmt.Errorf("%w: negative extension length", ErrInvalidSpec)
		}
	}
	return nil
}

// Diagonal marks an edge shared by two triangles of a polygon.
type Diagonal struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Length    float64 `json:"length,omitempty"`
	Label     string  `json:"label,omitempty"`
	Dashed    bool    `json:"dashed,omitempty"`
	Highlight bool    `json:"highlight,omitempty"`
}

// Composite is a fan of triangles glued along shared edges.
type Composite struct {
	Triangles []Triangle
	Outline   []string         // optional polygon boundary, in order
	Angles    map[string]Angle // whole polygon angles at outline vertices
	Diagonals []Diagonal
}

func (c *Composite) Kind() Kind { return KindComposite }

func (c *Composite) Validate() error {
	if len(c.Triangles) == 0 {
		return fmt.Errorf("%w: composite has no triangles", ErrInvalidSpec)
	}
	labels := make(map[string]bool)
	for i := range c.Triangles {
		t := &c.Triangles[i]
		if err := t.Validate(); err != nil {
			return fmt.Errorf("triangle %d: %w", i, err)
		}
		if t.Extension != nil {
			return fmt.Errorf("%w: triangle %d: extensions are only supported on standalone triangles", ErrInvalidSpec, i)
		}
		for j := 0; j < i; j++ {
			if shared(t, &c.Triangles[j]) == 3 {
				return fmt.Errorf("%w: triangles %d and %d have the same vertices", ErrInvalidSpec, j, i)
			}
		}
		for _, v := range t.Vertices {
			labels[v] = true
		}
	}
	if len(c.Outline) > 0 {
		if len(c.Outline) < 3 {
			return fmt.Errorf("%w: outline needs at least 3 vertices", ErrInvalidSpec)
		}
		if err := distinctLabels(c.Outline); err != nil {
			return err
		}
		for _, v := range c.Outline {
			if !labels[v] {
				return fmt.Errorf("%w: outline vertex %q is not in any triangle", ErrInvalidSpec, v)
			}
		}
	}
	for v := range c.Angles {
		if !labels[v] {
			return fmt.Errorf("%w: angle at unknown vertex %q", ErrInvalidSpec, v)
		}
	}
	for _, d := range c.Diagonals {
		if !labels[d.From] || !labels[d.To] || d.From == d.To {
			return fmt.Errorf("%w: diagonal %s-%s", ErrInvalidSpec, d.From, d.To)
		}
	}
	return nil
}

func shared(a, b *Triangle) int {
	n := 0
	for _, v := range a.Vertices {
		if b.Index(v) >= 0 {
			n++
		}
	}
	return n
}

// Transversal is two parallel lines cut by a transversal.
//
// Positions 0-3 are at the top intersection and 4-7 at the bottom one:
//
//	   2 | 0
//	  ---+---
//	   3 | 1
//
// 0 is above the line and right of the transversal, 1 below-right,
// 2 above-left, 3 below-left.
type Transversal struct {
	KnownAngle      float64   // degrees, strictly between 0 and 180
	KnownPosition   int       // 0-7
	Labels          []string  // one per position; default a-h
	Highlight       string    // "corresponding", "alternate", "cointerior" or "" / "none"
	HighlightAngles []int     // explicit positions, each its own colour group
	LineLabels      [4]string // top-left, top-right, bottom-left, bottom-right line ends
	Rotate          float64   // counter-clockwise rotation in degrees
}

func (t *Transversal) Kind() Kind { return KindTransversal }

func (t *Transversal) Validate() error {
	if t.KnownAngle <= 0 || t.KnownAngle >= 180 {
		return fmt.Errorf("%w: known angle must be between 0° and 180°, got %v°", ErrInvalidSpec, t.KnownAngle)
	}
	if t.KnownPosition < 0 || t.KnownPosition > 7 {
		return fmt.Errorf("%w: known position must be 0-7, got %d", ErrInvalidSpec, t.KnownPosition)
	}
	if len(t.Labels) != 0 && len(t.Labels) != 8 {
		return fmt.Errorf("%w: need 8 angle labels, got %d", ErrInvalidSpec, len(t.Labels))
	}
	switch t.Highlight {
	case "", "none", "corresponding", "alternate", "cointerior":
	default:
		return fmt.Errorf("%w: unknown highlight pattern %q", ErrInvalidSpec, t.Highlight)
	}
	for _, p := range t.HighlightAngles {
		if p < 0 || p > 7 {
			return fmt.Errorf("%w: highlight position %d out of range", ErrInvalidSpec, p)
		}
	}
	return nil
}

// Angles returns all eight angle measures in degrees.
func (t *Transversal) Angles() [8]float64 {
	theta := t.KnownAngle
	if p := t.KnownPosition % 4; p == 1 || p == 2 {
		theta = 180 - t.KnownAngle
	}
	var out [8]float64
	for i := range out {
		if p := i % 4; p == 0 || p == 3 {
			out[i] = theta
		} else {
			out[i] = 180 - theta
		}
	}
	return out
}

// HighlightGroups maps angle positions to colour groups 0-3.
func (t *Transversal) HighlightGroups() map[int]int {
	groups := make(map[int]int)
	if len(t.HighlightAngles) > 0 {
		for i, p := range t.HighlightAngles {
			groups[p] = i % 4
		}
		return groups
	}

	var pairs [][2]int
	switch t.Highlight {
	case "corresponding":
		pairs = [][2]int{{0, 4}, {1, 5}, {2, 6}, {3, 7}}
	case "alternate":
		pairs = [][2]int{{1, 6}, {3, 4}, {0, 7}, {2, 5}}
	case "cointerior":
		pairs = [][2]int{{1, 4}, {3, 6}}
	}
	for g, pair := range pairs {
		groups[pair[0]] = g
		groups[pair[1]] = g
	}
	return groups
}

// Label returns the display label for position p.
func (t *Transversal) Label(p int) string {
	if len(t.Labels) == 8 {
		return t.Labels[p]
	}
	return string(rune('a' + p))
}

func distinctLabels(labels []string) error {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if l == "" {
			return fmt.Errorf("%w: empty vertex label", ErrInvalidSpec)
		}
		if seen[l] {
			return fmt.Errorf("%w: duplicate vertex label %q", ErrInvalidSpec, l)
		}
		seen[l] = true
	}
	return nil
}

// FormatNumber renders a measure with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
