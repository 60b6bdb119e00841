package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/layout"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
)

const tol = 1e-9

func TestFitWidthConstrained(t *testing.T) {
	// A 300x150 triangle into a 500x400 canvas with margin 80.
	pts := []geom.Point{{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 120, Y: 150}}
	c := Canvas{Width: 500, Height: 400, Margin: 80}

	tr, err := Fit(pts, c)
	require.NoError(t, err)
	assert.InDelta(t, 340.0/300.0, tr.Scale, tol)
	assert.False(t, tr.Degenerate)

	out := tr.ApplyAll(pts)
	box := geom.Bounds(out)
	assert.InDelta(t, 250, box.Center().X, tol)
	assert.InDelta(t, 200, box.Center().Y, tol)
	assert.InDelta(t, 80, box.MinX, tol)
	assert.InDelta(t, 420, box.MaxX, tol)

	// y is flipped: the apex is above the base on the canvas.
	assert.Less(t, out[2].Y, out[0].Y)
}

func TestFitHeightConstrained(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 40}}
	tr, err := Fit(pts, DefaultCanvas())
	require.NoError(t, err)
	assert.InDelta(t, (450.0-120)/40, tr.Scale, tol)
}

func TestInvert(t *testing.T) {
	pts := []geom.Point{{X: -3, Y: 2}, {X: 7, Y: -1}, {X: 1, Y: 9}}
	tr, err := Fit(pts, DefaultCanvas())
	require.NoError(t, err)
	for _, p := range pts {
		assert.True(t, p.Eq(tr.Invert(tr.Apply(p)), tol), "round trip of %v", p)
	}
}

func TestRefitIsIdempotent(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}, {X: -2, Y: 1}}
	c := Canvas{Width: 640, Height: 480, Margin: 40}

	tr, err := Fit(pts, c)
	require.NoError(t, err)
	once := tr.ApplyAll(pts)

	re, err := Refit(once, c)
	require.NoError(t, err)
	assert.InDelta(t, 1, re.Scale, tol)
	twice := re.ApplyAll(once)
	for i := range once {
		assert.True(t, once[i].Eq(twice[i], 1e-9), "point %d: %v vs %v", i, once[i], twice[i])
	}
}

func TestFitPreservesAngles(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 7, Y: 1}, {X: 2, Y: 5}}
	tr, err := Fit(pts, Canvas{Width: 800, Height: 200, Margin: 10})
	require.NoError(t, err)
	out := tr.ApplyAll(pts)

	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		assert.InDelta(t,
			geom.AngleBetween(pts[i], pts[j], pts[k]),
			geom.AngleBetween(out[i], out[j], out[k]), 1e-12)
	}
}

func TestFitDegenerate(t *testing.T) {
	c := Canvas{Width: 500, Height: 400, Margin: 50}

	tests := []struct {
		name  string
		pts   []geom.Point
		scale float64
	}{
		{"Empty", nil, 300},
		{"SinglePoint", []geom.Point{{X: 4, Y: 4}}, 300},
		{"Horizontal", []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, 3},
		{"Vertical", []geom.Point{{X: 1, Y: 0}, {X: 1, Y: 50}}, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := Fit(tc.pts, c)
			require.NoError(t, err)
			assert.True(t, tr.Degenerate)
			assert.InDelta(t, tc.scale, tr.Scale, tol)
			for _, p := range tr.ApplyAll(tc.pts) {
				assert.True(t, geom.Bounds([]geom.Point{{X: 50, Y: 50}, {X: 450, Y: 350}}).Contains(p))
			}
		})
	}
}

func TestCanvasValidate(t *testing.T) {
	assert.NoError(t, DefaultCanvas().Validate())
	assert.ErrorIs(t, Canvas{Width: 100, Height: 100, Margin: 50}.Validate(), ErrInvalidCanvas)
	assert.ErrorIs(t, Canvas{Width: 100, Height: 100, Margin: -1}.Validate(), ErrInvalidCanvas)

	_, err := Fit([]geom.Point{{X: 1, Y: 1}}, Canvas{})
	assert.ErrorIs(t, err, ErrInvalidCanvas)

	assert.Equal(t, DefaultCanvas(), Canvas{}.WithDefaults())
	assert.Equal(t, Canvas{Width: 300, Height: 450}, Canvas{Width: 300}.WithDefaults())
	assert.Equal(t, Canvas{Width: 500, Height: 400}, Canvas{Width: 500, Height: 400}.WithDefaults())
}

func TestNormalizeFigure(t *testing.T) {
	f, err := layout.Build(&shape.Triangle{
		Vertices: [3]string{"A", "B", "C"},
		Sides:    [3]shape.Side{{Length: 3}, {Length: 4}, {Length: 5}},
	})
	require.NoError(t, err)

	c := DefaultCanvas()
	out, tr, err := Normalize(f, c)
	require.NoError(t, err)

	// Side ratios survive; the source figure does not move.
	ab := out.MustPos("A").Dist(out.MustPos("B"))
	assert.InDelta(t, 5*tr.Scale, ab, 1e-9)
	assert.InDelta(t, 5, f.MustPos("A").Dist(f.MustPos("B")), 1e-9)

	box := out.Bounds()
	assert.InDelta(t, c.Width/2, box.Center().X, 1e-9)
	assert.InDelta(t, c.Height/2, box.Center().Y, 1e-9)
}

func TestNormalizeUnknownVertex(t *testing.T) {
	f := &layout.Figure{
		Vertices: []layout.Vertex{{ID: "A"}, {ID: "B", Pos: geom.Pt(1, 0)}},
		Edges:    []layout.Edge{{From: "A", To: "C"}},
	}
	_, _, err := Normalize(f, DefaultCanvas())
	assert.ErrorIs(t, err, layout.ErrUnknownVertex)
}
