package main

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

// Styles
var (
	styleDefault = tcell.StyleDefault
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if h < 3 {
		return
	}

	base := styleDefault
	if v.scene != nil && v.scene.Background != "" {
		base = base.Background(tcell.GetColor(v.scene.Background))
	}
	canvasH := h - 2
	for y := 0; y < canvasH; y++ {
		for x := 0; x < w; x++ {
			v.screen.SetContent(x, y, ' ', nil, base)
		}
	}

	switch {
	case v.err != nil:
		v.drawString(1, 1, fmt.Sprintf("Error: %v", v.err), styleError)
	case v.scene != nil:
		g := rasterize(v.scene, w, canvasH)
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				c := g.at(x, y)
				if c.r == 0 {
					continue
				}
				st := base
				if c.color != "" {
					st = st.Foreground(tcell.GetColor(c.color))
				}
				v.screen.SetContent(x, y, c.r, nil, st.Bold(c.bold))
			}
		}
	}

	v.drawStatusBar(w, h)
}

func (v *Viewer) drawStatusBar(w, h int) {
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, h-2, ' ', nil, styleStatus)
	}
	status := fmt.Sprintf(" [%d/%d] %s", v.index+1, len(v.files), filepath.Base(v.files[v.index]))
	if v.spec != nil {
		status += fmt.Sprintf("  %s", v.spec.Shape.Kind())
		if v.spec.Title != "" {
			status += fmt.Sprintf("  %q", v.spec.Title)
		}
	}
	if v.scene != nil {
		status += fmt.Sprintf("  theme:%s  items:%d", v.scene.Theme, len(v.scene.Items))
	}
	v.drawString(0, h-2, truncate(status, w), styleStatus)
	v.drawString(0, h-1, truncate(" n/→ next  p/← prev  d theme  r reload  q quit", w), styleHelp)
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
