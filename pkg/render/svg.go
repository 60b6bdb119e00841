// Package render draws a scene.Scene as SVG, PNG or JPEG.
//
// SVG is written directly. Raster output goes through the gg software
// rasterizer with supersampling, or through headless Chrome when
// BrowserRasterizer is used.
package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
	"github.com/ha1tch/geom-toolkit/pkg/scene"
)

// SVGOptions controls SVG output.
type SVGOptions struct {
	FontFamily string
	Precision  int  // decimals in coordinates
	Roles      bool // tag elements with class="role"
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		FontFamily: "Arial, Helvetica, sans-serif",
		Precision:  2,
		Roles:      true,
	}
}

// WriteSVG writes sc to w as a standalone SVG document.
func WriteSVG(w io.Writer, sc *scene.Scene, opts SVGOptions) error {
	_, err := io.WriteString(w, SVG(sc, opts))
	return err
}

// SVG renders sc as a standalone SVG document.
func SVG(sc *scene.Scene, opts SVGOptions) string {
	if opts.FontFamily == "" {
		opts.FontFamily = DefaultSVGOptions().FontFamily
	}
	if opts.Precision <= 0 {
		opts.Precision = 2
	}
	num := func(v float64) string {
		return fmt.Sprintf("%.*f", opts.Precision, v)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">
`, num(sc.Width), num(sc.Height), num(sc.Width), num(sc.Height)))
	if sc.Title != "" {
		sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(sc.Title)))
	}
	sb.WriteString(fmt.Sprintf(`<style>
  text { font-family: %s; text-anchor: middle; dominant-baseline: central; }
  .outline, .side, .diagonal, .extension, .line { stroke-linecap: round; }
</style>
`, opts.FontFamily))
	if sc.Background != "" {
		sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, sc.Background))
	}

	for _, it := range sc.Items {
		class := ""
		if opts.Roles {
			class = fmt.Sprintf(` class="%s"`, it.ItemRole())
		}
		switch p := it.(type) {
		case *scene.Line:
			sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s"%s%s/>
`, num(p.From.X), num(p.From.Y), num(p.To.X), num(p.To.Y), class, strokeAttrs(p.Style, num)))
		case *scene.Arc:
			sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none"%s%s/>
`, p.Path, class, strokeAttrs(p.Style, num)))
		case *scene.Polygon:
			tag := "polyline"
			if p.Closed {
				tag = "polygon"
			}
			sb.WriteString(fmt.Sprintf(`<%s points="%s"%s%s%s/>
`, tag, points(p.Points, num), class, fillAttrs(p.Style, num), strokeAttrs(p.Style, num)))
		case *scene.Circle:
			sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s"%s%s%s/>
`, num(p.Center.X), num(p.Center.Y), num(p.Radius), class, fillAttrs(p.Style, num), strokeAttrs(p.Style, num)))
		case *scene.Text:
			weight := ""
			if p.Style.Bold {
				weight = ` font-weight="bold"`
			}
			sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s"%s fill="%s" font-size="%s"%s>%s</text>
`, num(p.Pos.X), num(p.Pos.Y), class, p.Style.Fill, num(p.Style.FontSize), weight, html.EscapeString(p.Content)))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func points(pts []geom.Point, num func(float64) string) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

func strokeAttrs(s scene.Style, num func(float64) string) string {
	if s.Stroke == "" {
		return ""
	}
	out := fmt.Sprintf(` stroke="%s" stroke-width="%s"`, s.Stroke, num(s.Width))
	if s.Dashed {
		out += ` stroke-dasharray="8,6"`
	}
	return out
}

func fillAttrs(s scene.Style, num func(float64) string) string {
	if s.Fill == "" {
		return ` fill="none"`
	}
	out := fmt.Sprintf(` fill="%s"`, s.Fill)
	if s.FillOpacity > 0 && s.FillOpacity < 1 {
		out += fmt.Sprintf(` fill-opacity="%s"`, num(s.FillOpacity))
	}
	return out
}
