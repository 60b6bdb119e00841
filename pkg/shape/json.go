package shape

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ha1tch/geom-toolkit/pkg/trig"
)

// jsonSpec is the JSON representation of a Spec. The "kind" field selects
// which of the remaining fields apply.
type jsonSpec struct {
	Kind   string      `json:"kind"`
	Title  string      `json:"title,omitempty"`
	Theme  string      `json:"theme,omitempty"`
	Canvas *CanvasHint `json:"canvas,omitempty"`

	// triangle, quadrilateral
	Vertices    []string     `json:"vertices,omitempty"`
	Sides       []Side       `json:"sides,omitempty"`
	Angles      []Angle      `json:"angles,omitempty"`
	Orientation *Orientation `json:"orientation,omitempty"`
	Ambiguity   string       `json:"ambiguity,omitempty"`
	Extension   *Extension   `json:"extension,omitempty"`

	// composite, quadrilateral
	Diagonals []Diagonal `json:"diagonals,omitempty"`

	// composite
	Triangles     []jsonTriangle   `json:"triangles,omitempty"`
	Outline       []string         `json:"outline,omitempty"`
	PolygonAngles map[string]Angle `json:"polygon_angles,omitempty"`

	// transversal
	KnownAngle      float64  `json:"known_angle,omitempty"`
	KnownPosition   int      `json:"known_position,omitempty"`
	Labels          []string `json:"labels,omitempty"`
	Highlight       string   `json:"highlight,omitempty"`
	HighlightAngles []int    `json:"highlight_angles,omitempty"`
	LineLabels      []string `json:"line_labels,omitempty"`
	Rotate          float64  `json:"rotate,omitempty"`
}

type jsonTriangle struct {
	Vertices    []string     `json:"vertices"`
	Sides       []Side       `json:"sides,omitempty"`
	Angles      []Angle      `json:"angles,omitempty"`
	Orientation *Orientation `json:"orientation,omitempty"`
	Ambiguity   string       `json:"ambiguity,omitempty"`
	Extension   *Extension   `json:"extension,omitempty"`
}

// ParseJSON parses and validates a Spec.
func ParseJSON(data []byte) (*Spec, error) {
	var j jsonSpec
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}

	spec := &Spec{Title: j.Title, Theme: j.Theme, Canvas: j.Canvas}
	switch Kind(j.Kind) {
	case KindTriangle:
		t, err := j.triangle().build()
		if err != nil {
			return nil, err
		}
		spec.Shape = t
	case KindComposite:
		c := &Composite{
			Outline:   j.Outline,
			Angles:    j.PolygonAngles,
			Diagonals: j.Diagonals,
		}
		for i, jt := range j.Triangles {
			t, err := jt.build()
			if err != nil {
				return nil, fmt.Errorf("triangle %d: %w", i, err)
			}
			c.Triangles = append(c.Triangles, *t)
		}
		spec.Shape = c
	case KindQuadrilateral:
		q := &Quadrilateral{Diagonals: j.Diagonals}
		if err := copyFixed(q.Vertices[:], j.Vertices, "vertices"); err != nil {
			return nil, err
		}
		if err := copyFixed(q.Sides[:], j.Sides, "sides"); err != nil {
			return nil, err
		}
		if err := copyFixed(q.Angles[:], j.Angles, "angles"); err != nil {
			return nil, err
		}
		if j.Orientation != nil {
			q.Orientation = *j.Orientation
		}
		spec.Shape = q
	case KindTransversal:
		t := &Transversal{
			KnownAngle:      j.KnownAngle,
			KnownPosition:   j.KnownPosition,
			Labels:          j.Labels,
			Highlight:       j.Highlight,
			HighlightAngles: j.HighlightAngles,
			Rotate:          j.Rotate,
		}
		if err := copyFixed(t.LineLabels[:], j.LineLabels, "line_labels"); err != nil {
			return nil, err
		}
		spec.Shape = t
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, j.Kind)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// ReadFile loads a Spec from a JSON file.
func ReadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSON(data)
}

func (j *jsonSpec) triangle() jsonTriangle {
	return jsonTriangle{
		Vertices:    j.Vertices,
		Sides:       j.Sides,
		Angles:      j.Angles,
		Orientation: j.Orientation,
		Ambiguity:   j.Ambiguity,
		Extension:   j.Extension,
	}
}

func (jt jsonTriangle) build() (*Triangle, error) {
	t := &Triangle{Extension: jt.Extension}
	if err := copyFixed(t.Vertices[:], jt.Vertices, "vertices"); err != nil {
		return nil, err
	}
	if err := copyFixed(t.Sides[:], jt.Sides, "sides"); err != nil {
		return nil, err
	}
	if err := copyFixed(t.Angles[:], jt.Angles, "angles"); err != nil {
		return nil, err
	}
	if jt.Orientation != nil {
		t.Orientation = *jt.Orientation
	}
	policy, err := trig.ParseAmbiguityPolicy(jt.Ambiguity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	t.Ambiguity = policy
	return t, nil
}

// copyFixed copies src into the fixed-size dst. An empty src leaves dst
// zero; any other length mismatch is an error.
func copyFixed[T any](dst, src []T, field string) error {
	if len(src) == 0 {
		return nil
	}
	if len(src) != len(dst) {
		return fmt.Errorf("%w: %s needs %d entries, got %d", ErrInvalidSpec, field, len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

// ToJSON converts a Spec to JSON.
func ToJSON(s *Spec, pretty bool) ([]byte, error) {
	j := jsonSpec{Title: s.Title, Theme: s.Theme, Canvas: s.Canvas}
	if s.Shape == nil {
		return nil, fmt.Errorf("%w: no shape", ErrInvalidSpec)
	}
	j.Kind = string(s.Shape.Kind())

	switch sh := s.Shape.(type) {
	case *Triangle:
		jt := triangleJSON(sh)
		j.Vertices, j.Sides, j.Angles = jt.Vertices, jt.Sides, jt.Angles
		j.Orientation, j.Ambiguity, j.Extension = jt.Orientation, jt.Ambiguity, jt.Extension
	case *Composite:
		for i := range sh.Triangles {
			j.Triangles = append(j.Triangles, triangleJSON(&sh.Triangles[i]))
		}
		j.Outline, j.PolygonAngles, j.Diagonals = sh.Outline, sh.Angles, sh.Diagonals
	case *Quadrilateral:
		j.Vertices = sh.Vertices[:]
		j.Sides = sh.Sides[:]
		j.Angles = sh.Angles[:]
		j.Diagonals = sh.Diagonals
		if sh.Orientation != (Orientation{}) {
			o := sh.Orientation
			j.Orientation = &o
		}
	case *Transversal:
		j.KnownAngle, j.KnownPosition = sh.KnownAngle, sh.KnownPosition
		j.Labels, j.Highlight, j.HighlightAngles = sh.Labels, sh.Highlight, sh.HighlightAngles
		j.Rotate = sh.Rotate
		if sh.LineLabels != ([4]string{}) {
			j.LineLabels = sh.LineLabels[:]
		}
	}

	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}

func triangleJSON(t *Triangle) jsonTriangle {
	jt := jsonTriangle{
		Vertices:  t.Vertices[:],
		Sides:     t.Sides[:],
		Angles:    t.Angles[:],
		Extension: t.Extension,
	}
	if t.Orientation != (Orientation{}) {
		o := t.Orientation
		jt.Orientation = &o
	}
	switch t.Ambiguity {
	case trig.PreferObtuse:
		jt.Ambiguity = "obtuse"
	case trig.Reject:
		jt.Ambiguity = "reject"
	}
	return jt
}
