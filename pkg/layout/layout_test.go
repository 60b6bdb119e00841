package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
	"github.com/ha1tch/geom-toolkit/pkg/trig"
)

const tol = 1e-6

func solve(t *testing.T, tri trig.Triangle) trig.Solution {
	t.Helper()
	sol, err := trig.Solve(tri)
	require.NoError(t, err)
	return sol
}

func TestPlaceTriangle(t *testing.T) {
	// A, B, C with AB = 5, AC = 4 and A = 60°.
	sol := solve(t, trig.Triangle{Sides: [3]float64{0, 4, 5}, Angles: [3]float64{60, 0, 0}})

	pts := PlaceTriangle(sol, shape.Orientation{Base: 2})
	a, b, c := pts[0], pts[1], pts[2]

	// Base 2 puts AB on the baseline with A at the origin.
	assert.Equal(t, geom.Point{}, a)
	assert.InDelta(t, 5, b.X, tol)
	assert.Equal(t, 0.0, b.Y)
	assert.Greater(t, c.Y, 0.0)

	assert.InDelta(t, 5, a.Dist(b), tol)
	assert.InDelta(t, 4, a.Dist(c), tol)
	assert.InDelta(t, math.Sqrt(21), b.Dist(c), tol)
	assert.InDelta(t, geom.Rad(60), geom.AngleBetween(a, b, c), tol)

	// Counter-clockwise in math coordinates.
	assert.Greater(t, b.Sub(a).Cross(c.Sub(a)), 0.0)
}

func TestPlaceTriangleIsIdempotent(t *testing.T) {
	sol := solve(t, trig.Triangle{Sides: [3]float64{3, 4, 5}})
	o := shape.Orientation{Base: 1, Rotate: 17}
	assert.Equal(t, PlaceTriangle(sol, o), PlaceTriangle(sol, o))
}

func TestPlaceTriangleOrientation(t *testing.T) {
	sol := solve(t, trig.Triangle{Sides: [3]float64{3, 4, 5}})

	up := PlaceTriangle(sol, shape.Orientation{})
	down := PlaceTriangle(sol, shape.Orientation{Flip: true})
	for i := 0; i < 3; i++ {
		assert.InDelta(t, up[i].X, down[i].X, tol)
		assert.InDelta(t, up[i].Y, -down[i].Y, tol)
	}

	rot := PlaceTriangle(sol, shape.Orientation{Rotate: 90})
	for i := 0; i < 3; i++ {
		want := up[i].Rotate(math.Pi / 2)
		assert.True(t, want.Eq(rot[i], tol), "vertex %d: want %v, got %v", i, want, rot[i])
	}

	// Every orientation keeps the side lengths.
	for base := 0; base < 3; base++ {
		pts := PlaceTriangle(sol, shape.Orientation{Base: base})
		for i := 0; i < 3; i++ {
			assert.InDelta(t, sol.Sides[i], pts[(i+1)%3].Dist(pts[(i+2)%3]), tol)
		}
	}
}

// bcdThenABD is the 3-4-5 composite: BCD has BC = 3, CD = 4 and C = 90°,
// so BD = 5; ABD has AB = 4, AD = 3 and borrows BD.
func bcdThenABD() *shape.Composite {
	return &shape.Composite{
		Triangles: []shape.Triangle{
			{
				Vertices: [3]string{"B", "C", "D"},
				Sides:    [3]shape.Side{{Length: 4}, {}, {Length: 3}},
				Angles:   [3]shape.Angle{{}, {Degrees: 90}, {}},
			},
			{
				Vertices: [3]string{"A", "B", "D"},
				Sides:    [3]shape.Side{{}, {Length: 3}, {Length: 4}},
			},
		},
		Outline: []string{"A", "B", "C", "D"},
	}
}

func TestAssembleSharedVertices(t *testing.T) {
	c := bcdThenABD()
	f, err := Assemble(c)
	require.NoError(t, err)
	require.Len(t, f.Triangles, 2)
	assert.InDelta(t, 5, f.Triangles[0].Solution.Sides[1], tol)

	// B and D are exactly where BCD alone puts them.
	alone := PlaceTriangle(f.Triangles[0].Solution, c.Triangles[0].Orientation)
	assert.Equal(t, alone[0], f.MustPos("B"))
	assert.Equal(t, alone[2], f.MustPos("D"))
	assert.Len(t, f.Vertices, 4)

	a, b, cc, d := f.MustPos("A"), f.MustPos("B"), f.MustPos("C"), f.MustPos("D")
	assert.InDelta(t, 4, a.Dist(b), tol)
	assert.InDelta(t, 3, a.Dist(d), tol)
	assert.InDelta(t, 5, b.Dist(d), tol)

	// A lands on the far side of BD from C: the figure is a rectangle.
	assert.Less(t, side(b, d, a)*side(b, d, cc), 0.0)
	assert.InDelta(t, 5, a.Dist(cc), tol)
}

func TestAssembleEdgesAreShared(t *testing.T) {
	f, err := Assemble(bcdThenABD())
	require.NoError(t, err)

	// Five distinct edges: four sides and BD once.
	assert.Len(t, f.Edges, 5)
	for _, e := range f.Edges {
		if keyOf(e.From, e.To) == keyOf("B", "D") {
			assert.ElementsMatch(t, []string{"C", "A"}, e.Opposite)
		}
	}
}

func TestAssembleInconsistentSharedEdge(t *testing.T) {
	c := bcdThenABD()
	c.Triangles[1].Sides[0] = shape.Side{Length: 6}
	_, err := Assemble(c)
	assert.ErrorIs(t, err, ErrInconsistentSharedEdge)

	c = bcdThenABD()
	c.Diagonals = []shape.Diagonal{{From: "B", To: "D", Length: 5.5}}
	_, err = Assemble(c)
	assert.ErrorIs(t, err, ErrInconsistentSharedEdge)
}

func TestAssembleNoSharedEdge(t *testing.T) {
	c := &shape.Composite{Triangles: []shape.Triangle{
		{Vertices: [3]string{"A", "B", "C"}, Sides: [3]shape.Side{{Length: 3}, {Length: 4}, {Length: 5}}},
		{Vertices: [3]string{"C", "D", "E"}, Sides: [3]shape.Side{{Length: 3}, {Length: 4}, {Length: 5}}},
	}}
	_, err := Assemble(c)
	assert.ErrorIs(t, err, ErrNoSharedEdge)
}

func TestAssembleUnderspecified(t *testing.T) {
	c := bcdThenABD()
	c.Triangles[1].Sides[1] = shape.Side{}
	_, err := Assemble(c)
	assert.ErrorIs(t, err, trig.ErrUnderspecified)
}

func TestAssembleFan(t *testing.T) {
	// Three equilateral triangles around O.
	eq := [3]shape.Side{{Length: 2}, {Length: 2}, {Length: 2}}
	c := &shape.Composite{Triangles: []shape.Triangle{
		{Vertices: [3]string{"O", "A", "B"}, Sides: eq},
		{Vertices: [3]string{"O", "B", "C"}, Sides: eq},
		{Vertices: [3]string{"O", "C", "D"}, Sides: eq},
	}}
	f, err := Assemble(c)
	require.NoError(t, err)

	o := f.MustPos("O")
	assert.InDelta(t, math.Pi, geom.AngleBetween(o, f.MustPos("A"), f.MustPos("D")), tol)
	for _, v := range []string{"A", "B", "C", "D"} {
		assert.InDelta(t, 2, o.Dist(f.MustPos(v)), tol)
	}
}

func TestQuadrilateralSplitAngle(t *testing.T) {
	// AB = 4, BC = 3, CD = 4, C = 90° and the whole angle at B is 90°.
	// DAB knows only AB and borrows BD and its share of B.
	q := &shape.Quadrilateral{
		Vertices:  [4]string{"A", "B", "C", "D"},
		Sides:     [4]shape.Side{{Length: 4}, {Length: 3}, {Length: 4}, {}},
		Angles:    [4]shape.Angle{{}, {Degrees: 90}, {Degrees: 90}, {}},
		Diagonals: []shape.Diagonal{{From: "B", To: "D"}},
	}
	f, err := Build(q)
	require.NoError(t, err)
	assert.Equal(t, shape.KindQuadrilateral, f.Kind)

	assert.InDelta(t, 3, f.MustPos("A").Dist(f.MustPos("D")), tol)
	assert.InDelta(t, geom.Rad(90), geom.AngleBetween(f.MustPos("A"), f.MustPos("B"), f.MustPos("D")), tol)

	// The whole angles are marked once, between outline neighbours.
	var atB []AngleMark
	for _, m := range f.Angles {
		if m.At == "B" {
			atB = append(atB, m)
		}
	}
	require.Len(t, atB, 1)
	assert.Equal(t, "A", atB[0].From)
	assert.Equal(t, "C", atB[0].To)
	assert.Equal(t, "90°", atB[0].Label)

	var diag *Edge
	for i := range f.Edges {
		if f.Edges[i].Kind == EdgeDiagonal {
			diag = &f.Edges[i]
		}
	}
	require.NotNil(t, diag)
	assert.Equal(t, keyOf("B", "D"), keyOf(diag.From, diag.To))
}

func TestTriangleExtension(t *testing.T) {
	tri := &shape.Triangle{
		Vertices:  [3]string{"A", "B", "C"},
		Sides:     [3]shape.Side{{Length: 3}, {Length: 4}, {Length: 5}},
		Extension: &shape.Extension{From: "B", Through: "C", Point: "D"},
	}
	f, err := Triangle(tri)
	require.NoError(t, err)

	b, c, d := f.MustPos("B"), f.MustPos("C"), f.MustPos("D")
	assert.InDelta(t, 0, b.Sub(c).Cross(d.Sub(c)), tol)
	assert.InDelta(t, DefaultExtension*3, c.Dist(d), tol)

	require.NotEmpty(t, f.Angles)
	ext := f.Angles[len(f.Angles)-1]
	assert.True(t, ext.Exterior)
	assert.Equal(t, "C", ext.At)

	// Exterior angle = 180° - C = A + B.
	sol := f.Triangles[0].Solution
	assert.InDelta(t, sol.Angles[0]+sol.Angles[1], ext.Degrees, tol)
	assert.Equal(t, "90°", ext.Label)
}

func TestPlaceTransversal(t *testing.T) {
	tr := &shape.Transversal{KnownAngle: 65, KnownPosition: 5, Highlight: "corresponding"}
	f, err := PlaceTransversal(tr)
	require.NoError(t, err)
	require.Len(t, f.Angles, 8)
	assert.Equal(t, captions["corresponding"], f.Caption)

	// Position 5 is 180° - θ, so θ = 115° and the transversal leans left.
	assert.InDelta(t, 115, f.Angles[0].Degrees, tol)
	assert.InDelta(t, 65, f.Angles[5].Degrees, tol)
	assert.Greater(t, f.MustPos("Q").X, f.MustPos("P").X)

	for p, m := range f.Angles {
		got := geom.AngleBetween(f.MustPos(m.At), f.MustPos(m.From), f.MustPos(m.To))
		assert.InDelta(t, geom.Rad(m.Degrees), got, tol, "position %d", p)
		assert.Equal(t, string(rune('a'+p)), m.Label)
		assert.True(t, m.Highlight)
	}
	assert.Equal(t, f.Angles[1].Group, f.Angles[5].Group)
	assert.NotEqual(t, f.Angles[0].Group, f.Angles[1].Group)
}

func TestBuildUnknownShape(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, shape.ErrInvalidSpec)
}

func TestFigureMap(t *testing.T) {
	f, err := Assemble(bcdThenABD())
	require.NoError(t, err)

	g := f.Map(func(p geom.Point) geom.Point { return p.Add(geom.Pt(10, 0)) })
	assert.InDelta(t, f.MustPos("A").X+10, g.MustPos("A").X, tol)
	// The original is untouched.
	assert.NotEqual(t, f.MustPos("A"), g.MustPos("A"))
	_, ok := g.Pos("Z")
	assert.False(t, ok)
}

func rectangle(diagonals ...shape.Diagonal) *shape.Quadrilateral {
	return &shape.Quadrilateral{
		Vertices:  [4]string{"A", "B", "C", "D"},
		Sides:     [4]shape.Side{{Length: 4}, {Length: 3}, {Length: 4}, {Length: 3}},
		Angles:    [4]shape.Angle{{}, {Degrees: 90}},
		Diagonals: diagonals,
	}
}

func TestQuadrilateralTwoDiagonals(t *testing.T) {
	f, err := Build(rectangle(
		shape.Diagonal{From: "A", To: "C", Label: "d"},
		shape.Diagonal{From: "B", To: "D", Length: 5, Dashed: true, Highlight: true},
	))
	require.NoError(t, err)

	diags := map[edgeKey]Edge{}
	for _, e := range f.Edges {
		if e.Kind == EdgeDiagonal {
			diags[keyOf(e.From, e.To)] = e
		}
	}
	require.Len(t, diags, 2)

	ac := diags[keyOf("A", "C")]
	assert.Equal(t, "d", ac.Label)
	assert.False(t, ac.Dashed)

	bd := diags[keyOf("B", "D")]
	assert.Equal(t, "5", bd.Label)
	assert.True(t, bd.Dashed)
	assert.True(t, bd.Highlight)
	assert.InDelta(t, 5, f.MustPos("B").Dist(f.MustPos("D")), tol)
	assert.Len(t, f.Edges, 6)
}

func TestQuadrilateralCrossingDiagonalLength(t *testing.T) {
	_, err := Build(rectangle(
		shape.Diagonal{From: "A", To: "C"},
		shape.Diagonal{From: "B", To: "D", Length: 7},
	))
	assert.ErrorIs(t, err, ErrInconsistentSharedEdge)
}

func TestFigureValidate(t *testing.T) {
	f, err := Build(rectangle())
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	f.Edges = append(f.Edges, Edge{From: "A", To: "Z"})
	assert.ErrorIs(t, f.Validate(), ErrUnknownVertex)

	f.Edges = f.Edges[:len(f.Edges)-1]
	f.Angles = append(f.Angles, AngleMark{At: "Y", From: "A", To: "B"})
	assert.ErrorIs(t, f.Validate(), ErrUnknownVertex)

	assert.PanicsWithError(t, `layout: unknown vertex "Q"`, func() { f.MustPos("Q") })
}
