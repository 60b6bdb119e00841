package main

import (
	"math"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/scene"
	"github.com/ha1tch/geom-toolkit/pkg/viewport"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// cell is one character of the rasterized scene.
type cell struct {
	r     rune
	color string // hex colour, "" for default
	bold  bool
}

// grid is a scene rasterized into w by h terminal cells.
type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, cells: make([]cell, w*h)}
}

func (g *grid) at(x, y int) cell {
	return g.cells[y*g.w+x]
}

func (g *grid) set(x, y int, c cell) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = c
}

// rasterize draws sc into a w by h cell grid. The scene is refitted so it
// fills the grid while keeping its proportions on screen.
func rasterize(sc *scene.Scene, w, h int) *grid {
	g := newGrid(w, h)
	if w < 4 || h < 4 || sc.Width <= 0 || sc.Height <= 0 {
		return g
	}

	// Fit the scene's canvas rectangle, not its contents, so the layout
	// margins survive.
	frame := []geom.Point{geom.Pt(0, 0), geom.Pt(sc.Width, sc.Height)}
	tr, err := viewport.Refit(frame, viewport.Canvas{Width: float64(w), Height: float64(h) * cellAspect})
	if err != nil {
		return g
	}
	toCell := func(p geom.Point) geom.Point {
		q := tr.Apply(p)
		return geom.Pt(q.X, q.Y/cellAspect)
	}

	for _, it := range sc.Items {
		switch p := it.(type) {
		case *scene.Line:
			ch := lineRune(toCell(p.From), toCell(p.To))
			if p.Style.Dashed {
				g.dashed(toCell(p.From), toCell(p.To), ch, p.Style.Stroke)
			} else {
				g.line(toCell(p.From), toCell(p.To), ch, p.Style.Stroke)
			}
		case *scene.Polygon:
			if p.Role == scene.RoleOutline {
				continue
			}
			for i := 1; i < len(p.Points); i++ {
				a, b := toCell(p.Points[i-1]), toCell(p.Points[i])
				g.line(a, b, lineRune(a, b), p.Style.Stroke)
			}
		case *scene.Arc:
			steps := max(8, int(math.Abs(p.Delta)*p.Radius*tr.Scale/2))
			for i := 0; i <= steps; i++ {
				a := p.Start + p.Delta*float64(i)/float64(steps)
				g.plot(toCell(p.Center.Add(geom.Polar(p.Radius, a))), cell{r: '·', color: p.Style.Stroke})
			}
		case *scene.Circle:
			g.plot(toCell(p.Center), cell{r: '●', color: p.Style.Fill})
		case *scene.Text:
			g.text(toCell(p.Pos), p.Content, cell{color: p.Style.Fill, bold: p.Style.Bold})
		}
	}
	return g
}

func (g *grid) plot(p geom.Point, c cell) {
	g.set(int(math.Floor(p.X)), int(math.Floor(p.Y)), c)
}

// line steps along a-b one cell at a time.
func (g *grid) line(a, b geom.Point, r rune, color string) {
	n := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		g.plot(geom.Lerp(a, b, t), cell{r: r, color: color})
	}
}

func (g *grid) dashed(a, b geom.Point, r rune, color string) {
	n := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	for i := 0; i <= n; i++ {
		if i%3 == 2 {
			continue
		}
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		g.plot(geom.Lerp(a, b, t), cell{r: r, color: color})
	}
}

// text centres s on p.
func (g *grid) text(p geom.Point, s string, style cell) {
	runes := []rune(s)
	x := int(math.Round(p.X - float64(len(runes))/2))
	y := int(math.Floor(p.Y))
	for i, r := range runes {
		c := style
		c.r = r
		g.set(x+i, y, c)
	}
}

// lineRune picks a box-drawing character for the direction a-b in cell
// space, where y grows downwards.
func lineRune(a, b geom.Point) rune {
	if a.Eq(b, 1e-9) {
		return '•'
	}
	deg := math.Mod(geom.Deg(b.Sub(a).Angle())+180, 180)
	switch {
	case deg < 22.5 || deg >= 157.5:
		return '─'
	case deg < 67.5:
		return '╲'
	case deg < 112.5:
		return '│'
	}
	return '╱'
}
