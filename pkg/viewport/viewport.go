// Package viewport fits figures into a canvas.
//
// Figures are laid out in math coordinates (y up, arbitrary units); a
// canvas is y-down with its origin at the top-left corner. Fit is the single
// place where that convention changes: it scales uniformly, centres the
// bounding box in the canvas and flips the y axis. Refit does the same for
// points that are already in canvas space, without the flip.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/layout"
)

// MinExtent replaces the bounding extent of a point set that has none in
// either direction (a single point or an empty set).
const MinExtent = 1.0

// ErrInvalidCanvas indicates a canvas with no drawable area inside its margins.
var ErrInvalidCanvas = errors.New("viewport: invalid canvas")

// Canvas is the target drawing area.
type Canvas struct {
	Width  float64
	Height float64
	Margin float64
}

// DefaultCanvas returns the default 600x450 canvas with a 60 unit margin.
func DefaultCanvas() Canvas {
	return Canvas{Width: 600, Height: 450, Margin: 60}
}

// WithDefaults returns DefaultCanvas for the zero Canvas. Otherwise zero
// Width and Height fall back to the defaults and Margin is kept as given,
// so a margin of 0 survives.
func (c Canvas) WithDefaults() Canvas {
	d := DefaultCanvas()
	if c == (Canvas{}) {
		return d
	}
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	return c
}

// Validate checks that the canvas has room inside its margins.
func (c Canvas) Validate() error {
	if c.Margin < 0 || math.IsNaN(c.Width) || math.IsNaN(c.Height) {
		return fmt.Errorf("%w: %vx%v margin %v", ErrInvalidCanvas, c.Width, c.Height, c.Margin)
	}
	if c.Width-2*c.Margin <= 0 || c.Height-2*c.Margin <= 0 {
		return fmt.Errorf("%w: %vx%v leaves no room inside margin %v", ErrInvalidCanvas, c.Width, c.Height, c.Margin)
	}
	return nil
}

// Center returns the centre of the canvas.
func (c Canvas) Center() geom.Point {
	return geom.Pt(c.Width/2, c.Height/2)
}

// Transform maps points p to To + Scale*(p - From), negating the y offset
// when FlipY is set.
type Transform struct {
	Scale float64
	From  geom.Point // centre of the source bounding box
	To    geom.Point // canvas centre
	FlipY bool

	// Degenerate is set when the source had no extent along one or both
	// axes and a fallback extent was used.
	Degenerate bool
}

// Apply maps one point.
func (t Transform) Apply(p geom.Point) geom.Point {
	d := p.Sub(t.From).Mul(t.Scale)
	if t.FlipY {
		d.Y = -d.Y
	}
	return t.To.Add(d)
}

// ApplyAll maps every point into a new slice.
func (t Transform) ApplyAll(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = t.Apply(p)
	}
	return out
}

// Invert maps a canvas point back to the source space.
func (t Transform) Invert(p geom.Point) geom.Point {
	d := p.Sub(t.To)
	if t.FlipY {
		d.Y = -d.Y
	}
	return t.From.Add(d.Mul(1 / t.Scale))
}

// Fit computes the transform from math space into the canvas:
// s = min((W-2m)/bw, (H-2m)/bh), bounding box centre to canvas centre,
// y flipped.
func Fit(pts []geom.Point, c Canvas) (Transform, error) {
	t, err := fit(pts, c)
	if err != nil {
		return Transform{}, err
	}
	t.FlipY = true
	return t, nil
}

// Refit computes the transform for points already in canvas space. Refitting
// the output of Fit to the same canvas is the identity up to rounding.
func Refit(pts []geom.Point, c Canvas) (Transform, error) {
	return fit(pts, c)
}

func fit(pts []geom.Point, c Canvas) (Transform, error) {
	if err := c.Validate(); err != nil {
		return Transform{}, err
	}

	var t Transform
	b := geom.Bounds(pts)
	bw, bh := b.Width(), b.Height()
	switch {
	case bw <= geom.Epsilon && bh <= geom.Epsilon:
		bw, bh = MinExtent, MinExtent
		t.Degenerate = true
	case bw <= geom.Epsilon:
		bw = bh
		t.Degenerate = true
	case bh <= geom.Epsilon:
		bh = bw
		t.Degenerate = true
	}

	t.Scale = math.Min((c.Width-2*c.Margin)/bw, (c.Height-2*c.Margin)/bh)
	t.From = b.Center()
	t.To = c.Center()
	return t, nil
}

// Normalize fits a figure into the canvas and returns the canvas-space copy.
// The input figure is not modified.
func Normalize(f *layout.Figure, c Canvas) (*layout.Figure, Transform, error) {
	if err := f.Validate(); err != nil {
		return nil, Transform{}, err
	}
	t, err := Fit(f.Points(), c)
	if err != nil {
		return nil, Transform{}, err
	}
	return f.Map(t.Apply), t, nil
}
