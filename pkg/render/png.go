package render

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ha1tch/geom-toolkit/pkg/scene"
)

// ErrEmptyScene indicates a scene without a drawable size.
var ErrEmptyScene = errors.New("render: scene has no size")

// dashPattern is the dash/gap pattern for dashed strokes, in canvas units.
var dashPattern = [2]float64{8, 6}

// PNGOptions configures raster output.
type PNGOptions struct {
	Supersample int     // render at this multiple, then downsample
	Scale       float64 // output pixels per canvas unit
	Quality     int     // JPEG quality
}

// DefaultPNGOptions returns 3x supersampling at 1:1 scale.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Supersample: 3, Scale: 1, Quality: 90}
}

func (o PNGOptions) withDefaults() PNGOptions {
	d := DefaultPNGOptions()
	if o.Supersample <= 0 {
		o.Supersample = d.Supersample
	}
	if o.Scale <= 0 {
		o.Scale = d.Scale
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = d.Quality
	}
	return o
}

var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *text.FontSource
	bold      *text.FontSource
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regular, fontsErr = text.NewFontSource(goregular.TTF)
		if fontsErr != nil {
			return
		}
		bold, fontsErr = text.NewFontSource(gobold.TTF)
	})
	return fontsErr
}

// Rasterize draws sc into an image of Scale*Width by Scale*Height pixels.
func Rasterize(sc *scene.Scene, opts PNGOptions) (image.Image, error) {
	opts = opts.withDefaults()
	w := int(sc.Width*opts.Scale + 0.5)
	h := int(sc.Height*opts.Scale + 0.5)
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyScene
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("render: load fonts: %w", err)
	}

	k := opts.Scale * float64(opts.Supersample)
	dc := gg.NewContext(w*opts.Supersample, h*opts.Supersample)
	defer dc.Close()

	r := &rasterizer{dc: dc, k: k, faces: make(map[faceKey]text.Face)}
	if sc.Background != "" {
		dc.ClearWithColor(gg.Hex(sc.Background))
	}
	for _, it := range sc.Items {
		if err := r.draw(it); err != nil {
			return nil, fmt.Errorf("render: %s %s: %w", it.Kind(), it.ItemRole(), err)
		}
	}

	img := dc.Image()
	if opts.Supersample == 1 {
		return img, nil
	}
	return Thumbnail(img, w, h), nil
}

// WritePNG rasterizes sc and encodes it as PNG.
func WritePNG(w io.Writer, sc *scene.Scene, opts PNGOptions) error {
	img, err := Rasterize(sc, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteJPEG rasterizes sc and encodes it as JPEG.
func WriteJPEG(w io.Writer, sc *scene.Scene, opts PNGOptions) error {
	opts = opts.withDefaults()
	img, err := Rasterize(sc, opts)
	if err != nil {
		return err
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: opts.Quality})
}

// Thumbnail scales src to w by h with Catmull-Rom interpolation.
func Thumbnail(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

type faceKey struct {
	size float64
	bold bool
}

// rasterizer draws primitives scaled by k.
type rasterizer struct {
	dc    *gg.Context
	k     float64
	faces map[faceKey]text.Face
}

func (r *rasterizer) draw(it scene.Primitive) error {
	dc, k := r.dc, r.k
	dc.ClearPath()
	switch p := it.(type) {
	case *scene.Line:
		dc.MoveTo(p.From.X*k, p.From.Y*k)
		dc.LineTo(p.To.X*k, p.To.Y*k)
		return r.stroke(p.Style)
	case *scene.Arc:
		a1, a2 := p.Start, p.Start+p.Delta
		if a2 < a1 {
			a1, a2 = a2, a1
		}
		dc.DrawArc(p.Center.X*k, p.Center.Y*k, p.Radius*k, a1, a2)
		return r.stroke(p.Style)
	case *scene.Polygon:
		if len(p.Points) == 0 {
			return nil
		}
		dc.MoveTo(p.Points[0].X*k, p.Points[0].Y*k)
		for _, q := range p.Points[1:] {
			dc.LineTo(q.X*k, q.Y*k)
		}
		if p.Closed {
			dc.ClosePath()
		}
		if err := r.fill(p.Style); err != nil {
			return err
		}
		return r.stroke(p.Style)
	case *scene.Circle:
		dc.DrawCircle(p.Center.X*k, p.Center.Y*k, p.Radius*k)
		if err := r.fill(p.Style); err != nil {
			return err
		}
		return r.stroke(p.Style)
	case *scene.Text:
		if p.Content == "" {
			return nil
		}
		dc.SetFont(r.face(p.Style.FontSize, p.Style.Bold))
		dc.SetHexColor(p.Style.Fill)
		dc.DrawStringAnchored(p.Content, p.Pos.X*k, p.Pos.Y*k, 0.5, 0.35)
	}
	return nil
}

// fill fills the current path and keeps it for a following stroke.
func (r *rasterizer) fill(s scene.Style) error {
	if s.Fill == "" {
		return nil
	}
	c := gg.Hex(s.Fill)
	if s.FillOpacity > 0 && s.FillOpacity < 1 {
		c.A = s.FillOpacity
	}
	r.dc.SetColor(c.Color())
	return r.dc.FillPreserve()
}

func (r *rasterizer) stroke(s scene.Style) error {
	if s.Stroke == "" {
		r.dc.ClearPath()
		return nil
	}
	r.dc.SetHexColor(s.Stroke)
	r.dc.SetLineWidth(s.Width * r.k)
	if s.Dashed {
		r.dc.SetDash(dashPattern[0]*r.k, dashPattern[1]*r.k)
	} else {
		r.dc.SetDash()
	}
	return r.dc.Stroke()
}

func (r *rasterizer) face(size float64, isBold bool) text.Face {
	if size <= 0 {
		size = 14
	}
	key := faceKey{size, isBold}
	if f, ok := r.faces[key]; ok {
		return f
	}
	src := regular
	if isBold {
		src = bold
	}
	f := src.Face(size * r.k)
	r.faces[key] = f
	return f
}
