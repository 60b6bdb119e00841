package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/geom-toolkit/pkg/annotate"
	"github.com/ha1tch/geom-toolkit/pkg/layout"
	"github.com/ha1tch/geom-toolkit/pkg/shape"
	"github.com/ha1tch/geom-toolkit/pkg/viewport"
)

func emitTriangle(t *testing.T, theme Theme, title string) *Scene {
	t.Helper()
	tri := &shape.Triangle{
		Vertices: [3]string{"A", "B", "C"},
		Sides:    [3]shape.Side{{Length: 3, Ticks: 1}, {Length: 4, Highlight: true}, {Length: 5}},
		Angles:   [3]shape.Angle{{}, {}, {Degrees: 90}},
	}
	f, err := layout.Build(tri)
	require.NoError(t, err)
	c := viewport.DefaultCanvas()
	f, _, err = viewport.Normalize(f, c)
	require.NoError(t, err)
	ann := annotate.Annotate(f, annotate.DefaultOptions())
	return NewEmitter(theme).Emit(f, ann, c, title)
}

// rank orders roles the way the emitter draws them.
var rank = map[Role]int{
	RoleOutline:     0,
	RoleSide:        1,
	RoleDiagonal:    1,
	RoleExtension:   1,
	RoleLine:        1,
	RoleTick:        2,
	RoleArc:         3,
	RoleRightAngle:  3,
	RolePoint:       4,
	RoleVertexLabel: 5,
	RoleSideLabel:   5,
	RoleAngleLabel:  5,
	RoleTitle:       6,
	RoleCaption:     6,
}

func TestEmitOrder(t *testing.T) {
	s := emitTriangle(t, Light(), "Right triangle")
	require.NotEmpty(t, s.Items)

	last := -1
	for i, it := range s.Items {
		r, ok := rank[it.ItemRole()]
		require.True(t, ok, "item %d has unknown role %q", i, it.ItemRole())
		assert.GreaterOrEqual(t, r, last, "item %d (%s) drawn out of order", i, it.ItemRole())
		last = r
	}

	assert.Len(t, s.Filter(RoleOutline), 1)
	assert.Len(t, s.Filter(RoleSide), 3)
	assert.Len(t, s.Filter(RoleTick), 1)
	assert.Len(t, s.Filter(RoleRightAngle), 1)
	assert.Empty(t, s.Filter(RoleArc))
	assert.Equal(t, []string{"A", "B", "C"}, s.Texts(RoleVertexLabel))
	assert.Equal(t, []string{"Right triangle"}, s.Texts(RoleTitle))
	assert.Equal(t, 600.0, s.Width)
	assert.Equal(t, 450.0, s.Height)
}

func TestEmitStyles(t *testing.T) {
	th := Light()
	s := emitTriangle(t, th, "")
	assert.Empty(t, s.Filter(RoleTitle))

	var highlighted int
	for _, it := range s.Filter(RoleSide) {
		l := it.(*Line)
		if l.Style.Stroke == th.Highlight {
			highlighted++
		} else {
			assert.Equal(t, th.Line, l.Style.Stroke)
		}
	}
	assert.Equal(t, 1, highlighted)

	outline := s.Filter(RoleOutline)[0].(*Polygon)
	assert.True(t, outline.Closed)
	assert.Len(t, outline.Points, 3)
	assert.Equal(t, th.Fill, outline.Style.Fill)
}

func TestEmitTransversalGroups(t *testing.T) {
	tr := &shape.Transversal{KnownAngle: 65, KnownPosition: 1, Highlight: "corresponding"}
	f, err := layout.Build(tr)
	require.NoError(t, err)
	c := viewport.DefaultCanvas()
	f, _, err = viewport.Normalize(f, c)
	require.NoError(t, err)
	th := Dark()
	s := NewEmitter(th).Emit(f, annotate.Annotate(f, annotate.Options{}), c, "")

	assert.Empty(t, s.Filter(RoleOutline))
	assert.Len(t, s.Filter(RoleLine), 3)
	assert.Len(t, s.Filter(RolePoint), 2)
	require.Len(t, s.Texts(RoleCaption), 1)

	colours := map[string]int{}
	for _, it := range s.Filter(RoleArc) {
		colours[it.(*Arc).Style.Stroke]++
	}
	for _, g := range th.Groups {
		assert.Equal(t, 2, colours[g], "group colour %s", g)
	}
}

func TestSceneJSON(t *testing.T) {
	s := &Scene{Width: 100, Height: 50, Theme: "light"}
	s.Add(&Line{Role: RoleSide, Style: Style{Stroke: "#000000", Width: 2}})
	s.Add(&Text{Content: "A", Role: RoleVertexLabel})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var out struct {
		Width float64                      `json:"width"`
		Items []map[string]json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 100.0, out.Width)
	require.Len(t, out.Items, 2)
	assert.Contains(t, out.Items[0], "line")
	assert.Contains(t, out.Items[1], "textAnchor")
	assert.JSONEq(t, `{"from":{"x":0,"y":0},"to":{"x":0,"y":0},"role":"side","style":{"stroke":"#000000","width":2}}`, string(out.Items[0]["line"]))
}

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "light", false},
		{"light", "light", false},
		{"dark", "dark", false},
		{"sepia", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := ThemeByName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, th.Name)
		})
	}

	th := Light()
	assert.Equal(t, th.Groups[0], th.GroupColor(1))
	assert.Equal(t, th.Groups[3], th.GroupColor(4))
	assert.Equal(t, th.Angle, th.GroupColor(0))
}
