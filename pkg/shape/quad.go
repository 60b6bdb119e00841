package shape

import "fmt"

// Quadrilateral is a four-sided polygon split by a diagonal into two
// triangles. Sides[i] joins Vertices[i] and Vertices[(i+1)%4] and
// Angles[i] is the interior angle at Vertices[i].
//
// Diagonals[0] sets the split; a second entry draws the crossing diagonal
// as well. With no diagonals the split is Vertices[0]-Vertices[2], dashed.
type Quadrilateral struct {
	Vertices  [4]string
	Sides     [4]Side
	Angles    [4]Angle
	Diagonals []Diagonal

	// Orientation.Base selects the quadrilateral side (0-3) that lies on
	// the baseline. Flip and Rotate apply as for a triangle.
	Orientation Orientation
}

func (q *Quadrilateral) Kind() Kind { return KindQuadrilateral }

func (q *Quadrilateral) Validate() error {
	if err := distinctLabels(q.Vertices[:]); err != nil {
		return err
	}
	if q.Orientation.Base < 0 || q.Orientation.Base > 3 {
		return fmt.Errorf("%w: orientation base %d out of range", ErrInvalidSpec, q.Orientation.Base)
	}
	if len(q.Diagonals) > 2 {
		return fmt.Errorf("%w: a quadrilateral has at most 2 diagonals, got %d", ErrInvalidSpec, len(q.Diagonals))
	}
	seen := make(map[int]bool)
	for _, d := range q.Diagonals {
		from, err := q.opposite(d)
		if err != nil {
			return err
		}
		if seen[from%2] {
			return fmt.Errorf("%w: diagonal %s-%s given twice", ErrInvalidSpec, d.From, d.To)
		}
		seen[from%2] = true
	}
	return nil
}

// opposite returns the index of d.From, checking that d joins opposite
// vertices.
func (q *Quadrilateral) opposite(d Diagonal) (int, error) {
	from, to := -1, -1
	for i, v := range q.Vertices {
		if v == d.From {
			from = i
		}
		if v == d.To {
			to = i
		}
	}
	if from < 0 || to < 0 || (from+2)%4 != to {
		return 0, fmt.Errorf("%w: diagonal %s-%s must join opposite vertices",
			ErrInvalidSpec, d.From, d.To)
	}
	return from, nil
}

// split returns the vertex index the splitting diagonal starts from; it
// ends at the opposite vertex.
func (q *Quadrilateral) split() int {
	if len(q.Diagonals) == 0 {
		return 0
	}
	p, _ := q.opposite(q.Diagonals[0])
	return p
}

// Composite splits q along its diagonal. The whole angles at every corner
// move to the composite's polygon angles; the triangle angle at each
// unsplit corner keeps the measure but is hidden so it is drawn once.
func (q *Quadrilateral) Composite() (*Composite, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	p := q.split()
	v := func(i int) int { return (p + i) % 4 }

	d := Diagonal{From: q.Vertices[v(0)], To: q.Vertices[v(2)], Dashed: true}
	if len(q.Diagonals) > 0 {
		d = q.Diagonals[0]
		d.From, d.To = q.Vertices[v(0)], q.Vertices[v(2)]
	}
	diag := Side{Length: d.Length, Label: d.Label, Highlight: d.Highlight}

	// Both triangles run in the same rotational sense as the quadrilateral.
	t1 := Triangle{
		Vertices: [3]string{q.Vertices[v(0)], q.Vertices[v(1)], q.Vertices[v(2)]},
		Sides:    [3]Side{q.Sides[v(1)], diag, q.Sides[v(0)]},
	}
	t1.Angles[1] = q.Angles[v(1)]
	t1.Angles[1].Hidden = true

	t2 := Triangle{
		Vertices: [3]string{q.Vertices[v(2)], q.Vertices[v(3)], q.Vertices[v(0)]},
		Sides:    [3]Side{q.Sides[v(3)], diag, q.Sides[v(2)]},
	}
	t2.Angles[1] = q.Angles[v(3)]
	t2.Angles[1].Hidden = true

	// Put the baseline side's triangle first, with the matching base vertex.
	tris := []Triangle{t1, t2}
	o := q.Orientation
	switch (o.Base - p + 4) % 4 {
	case 0:
		o.Base = 2
	case 1:
		o.Base = 0
	case 2:
		tris = []Triangle{t2, t1}
		o.Base = 2
	case 3:
		tris = []Triangle{t2, t1}
		o.Base = 0
	}
	tris[0].Orientation = o

	c := &Composite{
		Triangles: tris,
		Outline:   q.Vertices[:],
		Angles:    make(map[string]Angle),
		Diagonals: []Diagonal{d},
	}
	if len(q.Diagonals) > 1 {
		c.Diagonals = append(c.Diagonals, q.Diagonals[1:]...)
	}
	for i, a := range q.Angles {
		if a.Degrees > 0 || a.Label != "" || a.Highlight {
			c.Angles[q.Vertices[i]] = a
		}
	}
	return c, nil
}
