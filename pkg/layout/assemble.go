package layout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
	"github.com/ha1tch/geom-toolkit/pkg/trig"
)

// Assemble solves and places every triangle of a composite shape.
//
// Triangles are solved first. A triangle that is underspecified on its own
// borrows lengths from solved neighbours that share an edge with it, and
// angles from a whole polygon angle split between triangles at a vertex.
// Placement then starts from the first triangle, placed with its own
// orientation, and attaches each remaining triangle to an edge shared with
// the triangles already placed, on the far side of that edge.
func Assemble(c *shape.Composite) (*Figure, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sols, err := solveComposite(c)
	if err != nil {
		return nil, err
	}
	pos, err := placeComposite(c, sols)
	if err != nil {
		return nil, err
	}

	f := &Figure{Kind: shape.KindComposite, Outline: c.Outline}
	for i := range c.Triangles {
		t := &c.Triangles[i]
		f.Triangles = append(f.Triangles, SolvedTriangle{Vertices: t.Vertices, Solution: sols[i]})
		for _, v := range t.Vertices {
			if f.Index(v) < 0 {
				f.Vertices = append(f.Vertices, Vertex{ID: v, Text: v, Pos: pos[v]})
			}
		}
	}
	f.Edges = compositeEdges(c, sols)
	for _, d := range c.Diagonals {
		if d.Length > 0 {
			if got := pos[d.From].Dist(pos[d.To]); !sameLength(got, d.Length) {
				return nil, fmt.Errorf("%w: diagonal %s%s is given as %v but measures %v",
					ErrInconsistentSharedEdge, d.From, d.To, d.Length, got)
			}
		}
		f.Edges = applyDiagonal(f.Edges, d)
	}
	f.Angles = triangleAngles(c, sols)
	f.Angles = append(f.Angles, polygonAngles(f, c)...)
	return f, nil
}

func name(t *shape.Triangle) string {
	return strings.Join(t.Vertices[:], "")
}

// solveComposite solves every triangle, propagating shared measurements
// until no more progress is made.
func solveComposite(c *shape.Composite) ([]trig.Solution, error) {
	n := len(c.Triangles)
	meas := make([]trig.Triangle, n)
	shared := make([]bool, n) // carries a length or angle from outside the triangle
	for i := range c.Triangles {
		meas[i] = c.Triangles[i].Measures()
	}
	for _, d := range c.Diagonals {
		if d.Length <= 0 {
			continue
		}
		for i := range c.Triangles {
			k := c.Triangles[i].SideBetween(d.From, d.To)
			if k < 0 {
				continue
			}
			if have := meas[i].Sides[k]; have > 0 && !sameLength(have, d.Length) {
				return nil, fmt.Errorf("%w: %s%s is %v in triangle %s but the diagonal is %v",
					ErrInconsistentSharedEdge, d.From, d.To, have, name(&c.Triangles[i]), d.Length)
			}
			meas[i].Sides[k] = d.Length
			shared[i] = true
		}
	}

	sols := make([]trig.Solution, n)
	solved := make([]bool, n)
	remaining := n
	for progress := true; progress && remaining > 0; {
		progress = false
		for i := range c.Triangles {
			if solved[i] {
				continue
			}
			t := &c.Triangles[i]
			solver := trig.Solver{Policy: t.Ambiguity}
			sol, err := solver.Solve(meas[i])
			if errors.Is(err, trig.ErrUnderspecified) {
				if err := borrow(c, meas, sols, solved, i); err != nil {
					return nil, err
				}
				shared[i] = true
				sol, err = solver.Solve(meas[i])
				if errors.Is(err, trig.ErrUnderspecified) {
					continue
				}
			}
			if shared[i] && errors.Is(err, trig.ErrOverdetermined) {
				return nil, fmt.Errorf("triangle %s: %w: %w", name(t), ErrInconsistentSharedEdge, err)
			}
			if err != nil {
				return nil, fmt.Errorf("triangle %s: %w", name(t), err)
			}
			sols[i], solved[i] = sol, true
			remaining--
			progress = true
		}
	}

	for i := range c.Triangles {
		if !solved[i] {
			_, err := trig.Solve(meas[i])
			return nil, fmt.Errorf("triangle %s: %w", name(&c.Triangles[i]), err)
		}
	}
	return sols, nil
}

// borrow fills unknown measurements of triangle i from solved triangles.
func borrow(c *shape.Composite, meas []trig.Triangle, sols []trig.Solution, solved []bool, i int) error {
	t := &c.Triangles[i]
	for j := range c.Triangles {
		if !solved[j] || j == i {
			continue
		}
		o := &c.Triangles[j]
		for k := 0; k < 3; k++ {
			u, w := t.Vertices[(k+1)%3], t.Vertices[(k+2)%3]
			if meas[i].Sides[k] > 0 {
				continue
			}
			if ok := o.SideBetween(u, w); ok >= 0 {
				meas[i].Sides[k] = sols[j].Sides[ok]
			}
		}
	}

	// A whole polygon angle split between triangles at a vertex.
	for k, v := range t.Vertices {
		whole, ok := c.Angles[v]
		if !ok || whole.Degrees <= 0 || meas[i].Angles[k] > 0 {
			continue
		}
		rest, missing := whole.Degrees, 0
		for j := range c.Triangles {
			if j == i {
				continue
			}
			kj := c.Triangles[j].Index(v)
			if kj < 0 {
				continue
			}
			if !solved[j] {
				missing++
				continue
			}
			rest -= sols[j].Angles[kj]
		}
		if missing > 0 {
			continue
		}
		if rest <= trig.Tolerance {
			return fmt.Errorf("triangle %s: %w: angle at %s is %v° but its parts already fill it",
				name(t), trig.ErrOverdetermined, v, whole.Degrees)
		}
		meas[i].Angles[k] = rest
	}
	return nil
}

// placeComposite places the triangles in list order, each attached to an
// edge it shares with the triangles already placed.
func placeComposite(c *shape.Composite, sols []trig.Solution) (map[string]geom.Point, error) {
	n := len(c.Triangles)
	pos := make(map[string]geom.Point)
	placed := make([]bool, n)

	first := PlaceTriangle(sols[0], c.Triangles[0].Orientation)
	for k, v := range c.Triangles[0].Vertices {
		pos[v] = first[k]
	}
	placed[0] = true

	for remaining, progress := n-1, true; remaining > 0; {
		if !progress {
			for i := range c.Triangles {
				if !placed[i] {
					return nil, fmt.Errorf("%w: %s", ErrNoSharedEdge, name(&c.Triangles[i]))
				}
			}
		}
		progress = false
		for i := range c.Triangles {
			if placed[i] {
				continue
			}
			ok, err := placeOne(c, sols, placed, pos, i)
			if err != nil {
				return nil, err
			}
			if ok {
				placed[i] = true
				remaining--
				progress = true
			}
		}
	}
	return pos, nil
}

// placeOne places triangle i if at least two of its vertices are known,
// and checks every shared edge against its solved lengths.
func placeOne(c *shape.Composite, sols []trig.Solution, placed []bool, pos map[string]geom.Point, i int) (bool, error) {
	t := &c.Triangles[i]
	sol := sols[i]

	var have []int
	for k, v := range t.Vertices {
		if _, ok := pos[v]; ok {
			have = append(have, k)
		}
	}
	if len(have) < 2 {
		return false, nil
	}

	// Every side between placed vertices must match the solution.
	for a := 0; a < len(have); a++ {
		for b := a + 1; b < len(have); b++ {
			u, w := t.Vertices[have[a]], t.Vertices[have[b]]
			k := 3 - have[a] - have[b]
			if d := pos[u].Dist(pos[w]); !sameLength(d, sol.Sides[k]) {
				return false, fmt.Errorf("%w: %s%s is %v where triangle %s needs %v",
					ErrInconsistentSharedEdge, u, w, d, name(t), sol.Sides[k])
			}
		}
	}
	if len(have) == 3 {
		return true, nil
	}

	iu, iw := have[0], have[1]
	ix := 3 - iu - iw
	u, w, x := t.Vertices[iu], t.Vertices[iw], t.Vertices[ix]
	pu, pw := pos[u], pos[w]

	// Go to the far side of UW from the neighbour that owns it.
	var sign float64
	if ref, ok := neighbourApex(c, placed, pos, i, u, w); ok {
		sign = -side(pu, pw, ref)
	} else {
		sign = -side(pu, pw, centroidOf(pos))
	}
	if sign == 0 {
		sign = 1
	}
	if t.Orientation.Flip {
		sign = -sign
	}

	pos[x] = attach(pu, pw, sol.Sides[iw], sol.Rad(iu), sign)
	return true, nil
}

// neighbourApex returns the third vertex of a placed triangle containing
// edge u-w.
func neighbourApex(c *shape.Composite, placed []bool, pos map[string]geom.Point, i int, u, w string) (geom.Point, bool) {
	for j := range c.Triangles {
		if !placed[j] || j == i {
			continue
		}
		o := &c.Triangles[j]
		if k := o.SideBetween(u, w); k >= 0 {
			return pos[o.Vertices[k]], true
		}
	}
	return geom.Point{}, false
}

func centroidOf(pos map[string]geom.Point) geom.Point {
	pts := make([]geom.Point, 0, len(pos))
	for _, p := range pos {
		pts = append(pts, p)
	}
	return geom.Centroid(pts)
}

type edgeKey struct{ a, b string }

func keyOf(a, b string) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// compositeEdges collects every triangle side once. A side shared by two
// triangles takes the first non-empty label and the larger tick count.
func compositeEdges(c *shape.Composite, sols []trig.Solution) []Edge {
	var edges []Edge
	index := make(map[edgeKey]int)
	for i := range c.Triangles {
		t := &c.Triangles[i]
		for k := 0; k < 3; k++ {
			s := t.Sides[k]
			u, w := t.Vertices[(k+1)%3], t.Vertices[(k+2)%3]
			key := keyOf(u, w)
			if j, ok := index[key]; ok {
				e := &edges[j]
				if e.Label == "" {
					e.Label = s.Text()
				}
				if s.Ticks > e.Ticks {
					e.Ticks = s.Ticks
				}
				e.Highlight = e.Highlight || s.Highlight
				e.Opposite = append(e.Opposite, t.Vertices[k])
				continue
			}
			index[key] = len(edges)
			edges = append(edges, Edge{
				From:      u,
				To:        w,
				Kind:      EdgeSide,
				Label:     s.Text(),
				Ticks:     s.Ticks,
				Highlight: s.Highlight,
				Opposite:  []string{t.Vertices[k]},
			})
		}
	}
	return edges
}

// applyDiagonal restyles the edge d names, or adds it when no triangle
// side joins its endpoints.
func applyDiagonal(edges []Edge, d shape.Diagonal) []Edge {
	text := shape.Side{Length: d.Length, Label: d.Label}.Text()
	for i := range edges {
		if keyOf(edges[i].From, edges[i].To) == keyOf(d.From, d.To) {
			e := &edges[i]
			e.Kind = EdgeDiagonal
			e.Dashed = d.Dashed
			e.Highlight = e.Highlight || d.Highlight
			if text != "" {
				e.Label = text
			}
			return edges
		}
	}
	return append(edges, Edge{
		From: d.From, To: d.To, Kind: EdgeDiagonal,
		Label: text, Dashed: d.Dashed, Highlight: d.Highlight,
	})
}

func marked(a shape.Angle) bool {
	return !a.Hidden && (a.Degrees > 0 || a.Label != "" || a.Highlight)
}

// triangleAngles marks the interior angles the triangles ask for.
func triangleAngles(c *shape.Composite, sols []trig.Solution) []AngleMark {
	var marks []AngleMark
	for i := range c.Triangles {
		t := &c.Triangles[i]
		for k, a := range t.Angles {
			if !marked(a) {
				continue
			}
			marks = append(marks, AngleMark{
				At:        t.Vertices[k],
				From:      t.Vertices[(k+1)%3],
				To:        t.Vertices[(k+2)%3],
				Degrees:   sols[i].Angles[k],
				Label:     a.Text(),
				Highlight: a.Highlight,
			})
		}
	}
	return marks
}

// polygonAngles marks whole angles at polygon vertices. The rays run to the
// vertex's outline neighbours, or without an outline, to the pair of
// neighbours spanning the widest angle.
func polygonAngles(f *Figure, c *shape.Composite) []AngleMark {
	var marks []AngleMark
	for _, v := range sortedKeys(c.Angles) {
		a := c.Angles[v]
		if !marked(a) {
			continue
		}
		from, to, ok := polygonRays(f, c, v)
		if !ok {
			continue
		}
		deg := a.Degrees
		if deg <= 0 {
			deg = geom.Deg(geom.AngleBetween(f.MustPos(v), f.MustPos(from), f.MustPos(to)))
		}
		marks = append(marks, AngleMark{
			At: v, From: from, To: to,
			Degrees: deg, Label: a.Text(), Highlight: a.Highlight,
		})
	}
	return marks
}

func polygonRays(f *Figure, c *shape.Composite, v string) (string, string, bool) {
	if n := len(c.Outline); n > 0 {
		for i, o := range c.Outline {
			if o == v {
				return c.Outline[(i+n-1)%n], c.Outline[(i+1)%n], true
			}
		}
		return "", "", false
	}

	var nbrs []string
	seen := make(map[string]bool)
	for i := range c.Triangles {
		t := &c.Triangles[i]
		if t.Index(v) < 0 {
			continue
		}
		for _, u := range t.Vertices {
			if u != v && !seen[u] {
				seen[u] = true
				nbrs = append(nbrs, u)
			}
		}
	}
	best, from, to := -1.0, "", ""
	pv := f.MustPos(v)
	for i := 0; i < len(nbrs); i++ {
		for j := i + 1; j < len(nbrs); j++ {
			if a := geom.AngleBetween(pv, f.MustPos(nbrs[i]), f.MustPos(nbrs[j])); a > best {
				best, from, to = a, nbrs[i], nbrs[j]
			}
		}
	}
	return from, to, best > 0
}

func sortedKeys(m map[string]shape.Angle) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
