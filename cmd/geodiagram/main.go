// Command geodiagram renders and inspects geometry diagram specs.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ha1tch/geom-toolkit/pkg/diagram"
	"github.com/ha1tch/geom-toolkit/pkg/render"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
)

const usage = `geodiagram - geometry diagram toolkit

Usage:
  geodiagram <command> [options]

Commands:
  render     Render a spec to SVG, PNG, JPEG or scene JSON
  solve      Print the solved measures of every triangle
  info       Show spec and layout information
  validate   Validate a spec file
  convert    Rewrite a spec file in canonical JSON

Examples:
  geodiagram render triangle.json -o triangle.svg
  geodiagram render quad.json -o quad.png --width 800 --height 600 --dark
  geodiagram render quad.json -o quad.png --engine chrome
  geodiagram solve triangle.json
  geodiagram convert triangle.json -o clean.json --pretty

Use "geodiagram <command> -h" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "render":
		cmdRender(args)
	case "solve":
		cmdSolve(args)
	case "info":
		cmdInfo(args)
	case "validate":
		cmdValidate(args)
	case "convert":
		cmdConvert(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// options collects the flags shared by the commands that run the pipeline.
type options struct {
	input   string
	output  string
	format  string
	engine  string
	pretty  bool
	verbose bool
	diagram diagram.Options

	// canvas flags given on the command line; they beat the spec's canvas block
	canvasSet map[string]bool
}

func parseOptions(args []string) (options, error) {
	o := options{diagram: diagram.DefaultOptions(), engine: "native", canvasSet: map[string]bool{}}
	number := func(i int, name string) (float64, error) {
		if i+1 >= len(args) {
			return 0, fmt.Errorf("%s needs a value", name)
		}
		v, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %v", name, err)
		}
		return v, nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "-o", "--output":
			if i+1 < len(args) {
				o.output = args[i+1]
				i++
			}
		case "-f", "--format":
			if i+1 < len(args) {
				o.format = strings.ToLower(args[i+1])
				i++
			}
		case "--engine":
			if i+1 < len(args) {
				o.engine = args[i+1]
				i++
			}
		case "--width":
			o.diagram.Canvas.Width, err = number(i, "--width")
			o.canvasSet["width"] = true
			i++
		case "--height":
			o.diagram.Canvas.Height, err = number(i, "--height")
			o.canvasSet["height"] = true
			i++
		case "--margin":
			o.diagram.Canvas.Margin, err = number(i, "--margin")
			o.canvasSet["margin"] = true
			i++
		case "--dark":
			o.diagram.Theme = "dark"
		case "--light":
			o.diagram.Theme = "light"
		case "--pretty":
			o.pretty = true
		case "-v", "--verbose":
			o.verbose = true
		default:
			if strings.HasPrefix(args[i], "-") {
				return o, fmt.Errorf("unknown option %s", args[i])
			}
			if o.input == "" {
				o.input = args[i]
			}
		}
		if err != nil {
			return o, err
		}
	}
	if o.input == "" {
		return o, fmt.Errorf("no input file")
	}
	if o.verbose {
		diagram.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return o, nil
}

// mustOptions parses args or exits with the command's usage line.
func mustOptions(args []string, use string) options {
	if len(args) < 1 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, use)
		os.Exit(1)
	}
	o, err := parseOptions(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, use)
		os.Exit(1)
	}
	return o
}

// applyCanvas writes the canvas flags given on the command line into the
// spec's canvas block so they override it.
func (o *options) applyCanvas(spec *shape.Spec) {
	if len(o.canvasSet) == 0 {
		return
	}
	if spec.Canvas == nil {
		spec.Canvas = &shape.CanvasHint{}
	}
	c := o.diagram.Canvas
	if o.canvasSet["width"] {
		spec.Canvas.Width = c.Width
	}
	if o.canvasSet["height"] {
		spec.Canvas.Height = c.Height
	}
	if o.canvasSet["margin"] {
		m := c.Margin
		spec.Canvas.Margin = &m
	}
}

func loadSpec(path string) *shape.Spec {
	spec, err := shape.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		os.Exit(1)
	}
	return spec
}

// resolveOutput fills in the output path and returns the format: -f wins,
// then the output extension. Stdout ("-") and a missing path default to svg.
func (o *options) resolveOutput() string {
	if o.output == "" {
		ext := "." + o.format
		if o.format == "" {
			ext = ".svg"
		}
		o.output = strings.TrimSuffix(o.input, filepath.Ext(o.input)) + ext
	}
	switch {
	case o.format != "":
		return o.format
	case o.output == "-":
		return "svg"
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(o.output)), ".")
}

func cmdRender(args []string) {
	o := mustOptions(args, "Usage: geodiagram render <input> [-o output] [-f svg|png|jpeg|json] [--width N] [--height N] [--margin N] [--dark] [--engine native|chrome] [-v]")
	spec := loadSpec(o.input)
	o.applyCanvas(spec)

	format := o.resolveOutput()

	sc, err := diagram.Build(spec, o.diagram)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", o.input, err)
		os.Exit(1)
	}

	var data []byte
	switch format {
	case "svg":
		data = []byte(render.SVG(sc, render.DefaultSVGOptions()))
	case "json":
		if o.pretty {
			data, err = json.MarshalIndent(sc, "", "  ")
		} else {
			data, err = json.Marshal(sc)
		}
	case "png", "jpg", "jpeg":
		data, err = raster(o.engine, sc, format)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format: %s\n", format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", o.input, err)
		os.Exit(1)
	}

	if o.output == "-" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(o.output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", o.output, err)
		os.Exit(1)
	}
	fmt.Printf("Written: %s\n", o.output)
}

func cmdSolve(args []string) {
	o := mustOptions(args, "Usage: geodiagram solve <input> [-v]")
	spec := loadSpec(o.input)
	o.applyCanvas(spec)

	r, err := diagram.Layout(spec, o.diagram)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error solving %s: %v\n", o.input, err)
		os.Exit(1)
	}
	if len(r.Shape.Triangles) == 0 {
		fmt.Printf("%s: no triangles to solve (%s)\n", o.input, r.Shape.Kind)
		for _, m := range r.Shape.Angles {
			fmt.Printf("  angle %-6s %8s°\n", m.Label, shape.FormatNumber(m.Degrees))
		}
		return
	}

	for _, st := range r.Shape.Triangles {
		v, sol := st.Vertices, st.Solution
		fmt.Printf("Triangle %s%s%s (%s)\n", v[0], v[1], v[2], sol.Case)
		for i := 0; i < 3; i++ {
			fmt.Printf("  %s%s = %-10s  angle %s = %s°\n",
				v[(i+1)%3], v[(i+2)%3], strconv.FormatFloat(sol.Sides[i], 'f', 4, 64),
				v[i], strconv.FormatFloat(sol.Angles[i], 'f', 4, 64))
		}
		fmt.Printf("  angle sum = %s°, area = %s\n",
			strconv.FormatFloat(sol.AngleSum(), 'f', 4, 64),
			strconv.FormatFloat(sol.Area(), 'f', 4, 64))
	}
}

func cmdInfo(args []string) {
	o := mustOptions(args, "Usage: geodiagram info <input> [--width N] [--height N] [--margin N]")
	spec := loadSpec(o.input)
	o.applyCanvas(spec)

	r, err := diagram.Layout(spec, o.diagram)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error laying out %s: %v\n", o.input, err)
		os.Exit(1)
	}

	fmt.Printf("Kind:        %s\n", spec.Shape.Kind())
	if spec.Title != "" {
		fmt.Printf("Title:       %s\n", spec.Title)
	}
	fmt.Printf("Theme:       %s\n", r.Scene.Theme)
	fmt.Printf("Canvas:      %gx%g margin %g\n", r.Canvas.Width, r.Canvas.Height, r.Canvas.Margin)
	fmt.Printf("Scale:       %.4f\n", r.Transform.Scale)
	if r.Transform.Degenerate {
		fmt.Printf("Degenerate:  yes\n")
	}
	fmt.Printf("Vertices:    %d\n", len(r.Figure.Vertices))
	fmt.Printf("Edges:       %d\n", len(r.Figure.Edges))
	fmt.Printf("Angles:      %d\n", len(r.Figure.Angles))
	fmt.Printf("Triangles:   %d\n", len(r.Figure.Triangles))
	fmt.Printf("Labels:      %d\n", len(r.Annotations.Labels))
	fmt.Printf("Items:       %d\n", len(r.Scene.Items))
	if r.Figure.Caption != "" {
		fmt.Printf("Caption:     %s\n", r.Figure.Caption)
	}
	fmt.Println()
	for _, v := range r.Figure.Vertices {
		fmt.Printf("  %-4s (%7.2f, %7.2f)\n", v.ID, v.Pos.X, v.Pos.Y)
	}
}

func cmdValidate(args []string) {
	o := mustOptions(args, "Usage: geodiagram validate <input>")
	spec := loadSpec(o.input)

	r, err := diagram.Layout(spec, o.diagram)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: valid %s with %d vertices, %d edges\n",
		o.input, spec.Shape.Kind(), len(r.Figure.Vertices), len(r.Figure.Edges))
}

func cmdConvert(args []string) {
	o := mustOptions(args, "Usage: geodiagram convert <input> [-o output] [--pretty]")
	spec := loadSpec(o.input)

	data, err := shape.ToJSON(spec, o.pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", o.input, err)
		os.Exit(1)
	}
	if o.output == "" || o.output == "-" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(o.output, append(data, '\n'), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", o.output, err)
		os.Exit(1)
	}
	fmt.Printf("Written: %s\n", o.output)
}
