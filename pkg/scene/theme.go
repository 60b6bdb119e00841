package scene

import "fmt"

// Theme is a colour palette. Groups colour the four highlight groups of an
// angle pattern.
type Theme struct {
	Name        string
	Background  string
	Fill        string
	FillOpacity float64
	Text        string
	Line        string
	Muted       string
	Angle       string
	Highlight   string
	Diagonal    string
	Exterior    string
	Groups      [4]string
}

// Light is the default palette.
func Light() Theme {
	return Theme{
		Name:        "light",
		Background:  "#FFFFFF",
		Fill:        "#3B82F6",
		FillOpacity: 0.08,
		Text:        "#1F2937",
		Line:        "#4B5563",
		Muted:       "#6B7280",
		Angle:       "#3498DB",
		Highlight:   "#FF6B6B",
		Diagonal:    "#8B5CF6",
		Exterior:    "#9B59B6",
		Groups:      [4]string{"#3B82F6", "#10B981", "#F59E0B", "#8B5CF6"},
	}
}

// Dark is the palette for dark backgrounds.
func Dark() Theme {
	return Theme{
		Name:        "dark",
		Background:  "#1F2937",
		Fill:        "#60A5FA",
		FillOpacity: 0.12,
		Text:        "#F3F4F6",
		Line:        "#9CA3AF",
		Muted:       "#9CA3AF",
		Angle:       "#5DADE2",
		Highlight:   "#FF6B6B",
		Diagonal:    "#A78BFA",
		Exterior:    "#BB8FCE",
		Groups:      [4]string{"#60A5FA", "#34D399", "#FBBF24", "#A78BFA"},
	}
}

// ThemeByName returns the named theme. The empty name selects Light.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "light":
		return Light(), nil
	case "dark":
		return Dark(), nil
	}
	return Theme{}, fmt.Errorf("scene: unknown theme %q", name)
}

// GroupColor returns the colour of highlight group g (1-4).
func (t Theme) GroupColor(g int) string {
	if g < 1 {
		return t.Angle
	}
	return t.Groups[(g-1)%len(t.Groups)]
}
