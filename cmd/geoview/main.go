// Command geoview previews geometry diagram specs in the terminal.
//
// Usage:
//
//	geoview spec.json [more.json ...]
//	geoview dir/
//
// Keys: n/→ next spec, p/← previous, d toggle dark theme, r reload, q quit.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/geom-toolkit/pkg/diagram"
	"github.com/ha1tch/geom-toolkit/pkg/scene"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
)

// Viewer holds the previewer state.
type Viewer struct {
	screen tcell.Screen
	files  []string
	index  int
	dark   bool

	spec  *shape.Spec
	scene *scene.Scene
	err   error
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: geoview <spec.json|dir> [...]")
		os.Exit(1)
	}
	files, err := specFiles(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no .json specs found")
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.Clear()

	v := &Viewer{screen: screen, files: files}
	v.load()
	v.run()

	screen.Fini()
}

// specFiles expands directories into their .json files.
func specFiles(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, a)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(a, "*.json"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

// load reads and builds the current spec.
func (v *Viewer) load() {
	v.spec, v.scene, v.err = nil, nil, nil
	spec, err := shape.ReadFile(v.files[v.index])
	if err != nil {
		v.err = err
		return
	}
	v.spec = spec
	v.rebuild()
}

func (v *Viewer) rebuild() {
	if v.spec == nil {
		return
	}
	opts := diagram.DefaultOptions()
	opts.Theme = "light"
	if v.dark {
		opts.Theme = "dark"
	}
	v.scene, v.err = diagram.Build(v.spec, opts)
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		}
	}
}

// handleKey reports whether the viewer should exit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRight:
		v.step(1)
		return false
	case tcell.KeyLeft:
		v.step(-1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'n', ' ':
		v.step(1)
	case 'p':
		v.step(-1)
	case 'd':
		v.dark = !v.dark
		v.rebuild()
	case 'r':
		v.load()
	}
	return false
}

func (v *Viewer) step(d int) {
	n := len(v.files)
	v.index = ((v.index+d)%n + n) % n
	v.load()
}
