package trig

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
)

const tol = 1e-6

// lawOfSinesRatios returns side/sin(angle) for each vertex.
func lawOfSinesRatios(s Solution) [3]float64 {
	var r [3]float64
	for i := 0; i < 3; i++ {
		r[i] = s.Sides[i] / math.Sin(s.Rad(i))
	}
	return r
}

func TestSolveSAS(t *testing.T) {
	// A, B, C with AB = 5, AC = 4 and the included angle A = 60°.
	tri := Triangle{
		Sides:  [3]float64{0, 4, 5},
		Angles: [3]float64{60, 0, 0},
	}
	sol, err := Solve(tri)
	require.NoError(t, err)

	assert.Equal(t, CaseSAS, sol.Case)
	assert.InDelta(t, math.Sqrt(21), sol.Sides[0], tol)
	assert.InDelta(t, 4.583, sol.Sides[0], 1e-3)
	assert.InDelta(t, 49.1066, sol.Angles[1], 1e-4)
	assert.InDelta(t, 70.8934, sol.Angles[2], 1e-4)
	assert.InDelta(t, 180, sol.AngleSum(), tol)
}

func TestSolveSASObtuseIncluded(t *testing.T) {
	tri := Triangle{
		Sides:  [3]float64{7, 0, 3},
		Angles: [3]float64{0, 120, 0},
	}
	sol, err := Solve(tri)
	require.NoError(t, err)

	// b² = 49 + 9 + 21 = 79
	assert.InDelta(t, math.Sqrt(79), sol.Sides[1], tol)
	assert.InDelta(t, 180, sol.AngleSum(), tol)
	assert.Less(t, sol.Angles[2], sol.Angles[0])
}

func TestSolveSSS(t *testing.T) {
	sol, err := Solve(Triangle{Sides: [3]float64{3, 4, 5}})
	require.NoError(t, err)

	assert.Equal(t, CaseSSS, sol.Case)
	assert.InDelta(t, 36.8699, sol.Angles[0], 1e-4)
	assert.InDelta(t, 53.1301, sol.Angles[1], 1e-4)
	assert.InDelta(t, 90, sol.Angles[2], tol)
	assert.InDelta(t, 180, sol.AngleSum(), tol)
	assert.InDelta(t, 6, sol.Area(), tol)
}

func TestSolveAngleSide(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
		want Case
	}{
		{"ASA", Triangle{Sides: [3]float64{0, 0, 10}, Angles: [3]float64{30, 60, 0}}, CaseASA},
		{"AAS", Triangle{Sides: [3]float64{5, 0, 0}, Angles: [3]float64{30, 60, 0}}, CaseAAS},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := Solve(tc.tri)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sol.Case)
			assert.InDelta(t, 90, sol.Angles[2], tol)
			assert.InDelta(t, 5, sol.Sides[0], tol)
			assert.InDelta(t, 5*math.Sqrt(3), sol.Sides[1], tol)
			assert.InDelta(t, 10, sol.Sides[2], tol)
		})
	}
}

func TestSolveSSA(t *testing.T) {
	tri := Triangle{
		Sides:  [3]float64{5, 8, 0},
		Angles: [3]float64{30, 0, 0},
	}

	sols, err := SolveAll(tri)
	require.NoError(t, err)
	require.Len(t, sols, 2)
	assert.InDelta(t, 53.1301, sols[0].Angles[1], 1e-4)
	assert.InDelta(t, 126.8699, sols[1].Angles[1], 1e-4)
	for _, s := range sols {
		assert.InDelta(t, 180, s.AngleSum(), tol)
		assert.Equal(t, CaseSSA, s.Case)
	}

	acute, err := Solve(tri)
	require.NoError(t, err)
	assert.Equal(t, sols[0], acute)

	obtuse, err := Solver{Policy: PreferObtuse}.Solve(tri)
	require.NoError(t, err)
	assert.Equal(t, sols[1], obtuse)

	_, err = Solver{Policy: Reject}.Solve(tri)
	assert.ErrorIs(t, err, ErrAmbiguous)
}

func TestSolveSSAUnique(t *testing.T) {
	sols, err := SolveAll(Triangle{
		Sides:  [3]float64{10, 8, 0},
		Angles: [3]float64{30, 0, 0},
	})
	require.NoError(t, err)
	require.Len(t, sols, 1)
	assert.InDelta(t, 180, sols[0].AngleSum(), tol)
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
		want error
	}{
		{"NothingKnown", Triangle{}, ErrUnderspecified},
		{"AnglesOnly", Triangle{Angles: [3]float64{60, 60, 60}}, ErrUnderspecified},
		{"TwoSides", Triangle{Sides: [3]float64{3, 4, 0}}, ErrUnderspecified},
		{"OneSideOneAngle", Triangle{Sides: [3]float64{3, 0, 0}, Angles: [3]float64{0, 40, 0}}, ErrUnderspecified},
		{"TriangleInequality", Triangle{Sides: [3]float64{1, 2, 3}}, ErrDegenerate},
		{"TooMuchAngle", Triangle{Sides: [3]float64{1, 0, 0}, Angles: [3]float64{100, 80, 0}}, ErrDegenerate},
		{"SSANoTriangle", Triangle{Sides: [3]float64{3, 8, 0}, Angles: [3]float64{30, 0, 0}}, ErrDegenerate},
		{"ObtuseSSAShortOpposite", Triangle{Sides: [3]float64{3, 8, 0}, Angles: [3]float64{120, 0, 0}}, ErrDegenerate},
		{"AngleSum", Triangle{Sides: [3]float64{1, 0, 0}, Angles: [3]float64{60, 60, 70}}, ErrOverdetermined},
		{"SidesDisagree", Triangle{Sides: [3]float64{3, 4, 5}, Angles: [3]float64{0, 0, 80}}, ErrOverdetermined},
		{"NegativeSide", Triangle{Sides: [3]float64{-1, 4, 5}}, ErrInvalidMeasure},
		{"StraightAngle", Triangle{Sides: [3]float64{1, 1, 0}, Angles: [3]float64{180, 0, 0}}, ErrInvalidMeasure},
		{"NaN", Triangle{Sides: [3]float64{math.NaN(), 4, 5}}, ErrInvalidMeasure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Solve(tc.tri)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOverdeterminedConsistent(t *testing.T) {
	sol, err := Solve(Triangle{
		Sides:  [3]float64{3, 4, 5},
		Angles: [3]float64{0, 0, 90},
	})
	require.NoError(t, err)
	assert.Equal(t, CaseSSS, sol.Case)
}

// TestSolvedInvariants checks the angle sum and the Law of Sines round trip
// over a spread of SAS, ASA and SSS inputs.
func TestSolvedInvariants(t *testing.T) {
	var inputs []Triangle
	for a := 1.0; a <= 9; a += 2 {
		for b := 1.0; b <= 9; b += 2 {
			for ang := 10.0; ang < 180; ang += 25 {
				inputs = append(inputs,
					Triangle{Sides: [3]float64{a, b, 0}, Angles: [3]float64{0, 0, ang}},
					Triangle{Sides: [3]float64{0, 0, a}, Angles: [3]float64{ang / 2, (180 - ang) / 3, 0}},
				)
			}
			if c := (a + b) * 0.75; c < a+b && a < b+c && b < a+c {
				inputs = append(inputs, Triangle{Sides: [3]float64{a, b, c}})
			}
		}
	}

	for _, in := range inputs {
		sol, err := Solve(in)
		require.NoError(t, err, "input %+v", in)
		assert.InDelta(t, 180, sol.AngleSum(), tol, "input %+v", in)

		r := lawOfSinesRatios(sol)
		for i := 0; i < 3; i++ {
			if in.Sides[i] > 0 {
				// Re-derive every side from the known one and the solved angles.
				k := i
				for j := 0; j < 3; j++ {
					got := r[k] * math.Sin(sol.Rad(j))
					assert.InDelta(t, sol.Sides[j], got, tol*math.Max(1, sol.Sides[j]), "input %+v side %d", in, j)
				}
				assert.InDelta(t, in.Sides[i], sol.Sides[i], tol)
			}
		}
	}
}

func TestParseAmbiguityPolicy(t *testing.T) {
	for in, want := range map[string]AmbiguityPolicy{"": PreferAcute, "acute": PreferAcute, "obtuse": PreferObtuse, "reject": Reject} {
		got, err := ParseAmbiguityPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseAmbiguityPolicy("random")
	assert.Error(t, err)
}

func TestSolveIsDeterministic(t *testing.T) {
	tri := Triangle{Sides: [3]float64{0, 4, 5}, Angles: [3]float64{60, 0, 0}}
	a, _ := Solve(tri)
	b, _ := Solve(tri)
	assert.Equal(t, a, b)
	assert.InDelta(t, geom.Rad(60), a.Rad(0), 1e-15)
}
