package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ha1tch/geom-toolkit/pkg/render"
	"github.com/ha1tch/geom-toolkit/pkg/scene"
)

// raster encodes sc as PNG or JPEG with the chosen engine.
func raster(engine string, sc *scene.Scene, format string) ([]byte, error) {
	switch engine {
	case "", "native":
		var buf bytes.Buffer
		var err error
		if format == "png" {
			err = render.WritePNG(&buf, sc, render.DefaultPNGOptions())
		} else {
			err = render.WriteJPEG(&buf, sc, render.DefaultPNGOptions())
		}
		return buf.Bytes(), err
	case "chrome":
		b := render.BrowserRasterizer{Timeout: time.Minute, SVG: render.DefaultSVGOptions()}
		return b.Rasterize(context.Background(), sc, format)
	}
	return nil, fmt.Errorf("unknown engine %q (want native or chrome)", engine)
}
