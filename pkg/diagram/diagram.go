// Package diagram runs the full pipeline from a shape specification to a
// drawable scene:
//
//	spec -> solve -> place (assemble) -> normalize -> annotate -> emit
//
// Every stage is a pure function of its input. A failure at any stage
// aborts the whole build; there are no partial scenes.
package diagram

import (
	"fmt"
	"log/slog"

	"github.com/ha1tch/geom-toolkit/pkg/annotate"
	"github.com/ha1tch/geom-toolkit/pkg/layout"
	"github.com/ha1tch/geom-toolkit/pkg/scene"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
	"github.com/ha1tch/geom-toolkit/pkg/viewport"
)

// Options configures a build. Zero fields take defaults; a canvas block in
// the spec overrides Canvas field by field.
type Options struct {
	Canvas   viewport.Canvas
	Annotate annotate.Options
	Theme    string // overrides the spec's theme when set
}

// DefaultOptions returns the default canvas, annotation sizes and theme.
func DefaultOptions() Options {
	return Options{
		Canvas:   viewport.DefaultCanvas(),
		Annotate: annotate.DefaultOptions(),
	}
}

// Result holds the output of every stage.
type Result struct {
	Shape       *layout.Figure // shape space, y up
	Figure      *layout.Figure // canvas space, y down
	Transform   viewport.Transform
	Canvas      viewport.Canvas
	Annotations *annotate.Annotations
	Scene       *scene.Scene
}

// Build turns a spec into a scene.
func Build(spec *shape.Spec, opts Options) (*scene.Scene, error) {
	r, err := Layout(spec, opts)
	if err != nil {
		return nil, err
	}
	return r.Scene, nil
}

// Layout runs the pipeline and keeps the intermediate results.
func Layout(spec *shape.Spec, opts Options) (*Result, error) {
	log := Logger()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	canvas := resolveCanvas(spec.Canvas, opts.Canvas)
	if err := canvas.Validate(); err != nil {
		return nil, err
	}
	themeName := spec.Theme
	if opts.Theme != "" {
		themeName = opts.Theme
	}
	theme, err := scene.ThemeByName(themeName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shape.ErrInvalidSpec, err)
	}

	fig, err := layout.Build(spec.Shape)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", spec.Shape.Kind(), err)
	}
	for _, st := range fig.Triangles {
		log.Debug("diagram: solved triangle",
			slog.Any("vertices", st.Vertices),
			slog.String("case", string(st.Solution.Case)),
			slog.Any("sides", st.Solution.Sides),
			slog.Any("angles", st.Solution.Angles))
	}

	out, tr, err := viewport.Normalize(fig, canvas)
	if err != nil {
		return nil, err
	}
	if tr.Degenerate {
		log.Warn("diagram: degenerate figure, using fallback extent",
			slog.String("kind", string(fig.Kind)), slog.Float64("scale", tr.Scale))
	}
	log.Debug("diagram: normalized",
		slog.Float64("scale", tr.Scale),
		slog.Float64("width", canvas.Width),
		slog.Float64("height", canvas.Height))

	ann := annotate.Annotate(out, opts.Annotate)
	log.Debug("diagram: annotated",
		slog.Int("angles", len(ann.Angles)),
		slog.Int("labels", len(ann.Labels)))

	sc := scene.NewEmitter(theme).Emit(out, ann, canvas, spec.Title)
	log.Debug("diagram: emitted", slog.Int("items", len(sc.Items)))

	return &Result{
		Shape:       fig,
		Figure:      out,
		Transform:   tr,
		Canvas:      canvas,
		Annotations: ann,
		Scene:       sc,
	}, nil
}

func resolveCanvas(hint *shape.CanvasHint, c viewport.Canvas) viewport.Canvas {
	c = c.WithDefaults()
	if hint == nil {
		return c
	}
	if hint.Width > 0 {
		c.Width = hint.Width
	}
	if hint.Height > 0 {
		c.Height = hint.Height
	}
	if hint.Margin != nil {
		c.Margin = *hint.Margin
	}
	return c
}
