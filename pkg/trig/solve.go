// Package trig solves partially specified triangles with the Law of Cosines
// and the Law of Sines.
//
// Measurements are indexed by vertex: Sides[i] is the side opposite vertex i
// and Angles[i] is the interior angle at vertex i, in degrees. A zero value
// marks an unknown. Internally every trig call runs in radians on float64.
//
// Supported inputs:
//
//   - SSS: three sides.
//   - SAS: two sides and the angle between them.
//   - ASA / AAS: two angles and any side.
//   - SSA: two sides and a non-included angle (the ambiguous case), resolved
//     by an AmbiguityPolicy.
//
// Errors: ErrUnderspecified, ErrDegenerate, ErrAmbiguous, ErrOverdetermined,
// ErrInvalidMeasure.
package trig

import (
	"fmt"
	"math"
	"sort"

	"github.com/ha1tch/geom-toolkit/pkg/geom"
)

// Tolerance is the relative tolerance used when comparing supplied and
// derived measurements.
const Tolerance = 1e-6

// Case names the rule set that produced a Solution.
type Case string

const (
	CaseSSS Case = "SSS"
	CaseSAS Case = "SAS"
	CaseASA Case = "ASA"
	CaseAAS Case = "AAS"
	CaseSSA Case = "SSA"
)

// AmbiguityPolicy decides which triangle Solve returns when SSA data admits two.
type AmbiguityPolicy int

const (
	PreferAcute  AmbiguityPolicy = iota // Default: the solution whose solved angle is acute
	PreferObtuse                        // The solution whose solved angle is obtuse
	Reject                              // Fail with ErrAmbiguous
)

// ParseAmbiguityPolicy maps "acute", "obtuse" and "reject" to a policy.
// The empty string selects PreferAcute.
func ParseAmbiguityPolicy(s string) (AmbiguityPolicy, error) {
	switch s {
	case "", "acute":
		return PreferAcute, nil
	case "obtuse":
		return PreferObtuse, nil
	case "reject":
		return Reject, nil
	}
	return PreferAcute, fmt.Errorf("trig: unknown ambiguity policy %q", s)
}

// Triangle is a partially specified triangle.
type Triangle struct {
	Sides  [3]float64 // Sides[i] is opposite vertex i; 0 = unknown
	Angles [3]float64 // Interior angle at vertex i in degrees; 0 = unknown
}

// Solution is a fully solved triangle.
type Solution struct {
	Sides  [3]float64
	Angles [3]float64 // degrees
	Case   Case
}

// Rad returns the interior angle at vertex i in radians.
func (s Solution) Rad(i int) float64 {
	return geom.Rad(s.Angles[i])
}

// AngleSum returns the sum of the interior angles in degrees.
func (s Solution) AngleSum() float64 {
	return s.Angles[0] + s.Angles[1] + s.Angles[2]
}

// Area returns the triangle's area (½·a·b·sin C).
func (s Solution) Area() float64 {
	return 0.5 * s.Sides[0] * s.Sides[1] * math.Sin(s.Rad(2))
}

// Solver solves triangles with a fixed ambiguous-case policy.
// The zero value uses PreferAcute.
type Solver struct {
	Policy AmbiguityPolicy
}

// Solve solves t with the default PreferAcute policy.
func Solve(t Triangle) (Solution, error) {
	return Solver{}.Solve(t)
}

// Solve returns the single triangle described by t, applying the solver's
// ambiguity policy when t is an SSA input with two valid triangles.
func (s Solver) Solve(t Triangle) (Solution, error) {
	sols, err := SolveAll(t)
	if err != nil {
		return Solution{}, err
	}
	if len(sols) == 1 {
		return sols[0], nil
	}

	switch s.Policy {
	case PreferObtuse:
		return sols[1], nil
	case Reject:
		return Solution{}, fmt.Errorf("%w: sides %v with angles %v admit two triangles",
			ErrAmbiguous, t.Sides, t.Angles)
	default:
		return sols[0], nil
	}
}

// SolveAll returns every triangle consistent with t: one for SSS, SAS, ASA
// and AAS inputs, one or two for SSA. When two are returned the acute
// solution comes first.
func SolveAll(t Triangle) ([]Solution, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	ks, ka := t.known()
	if len(ks) == 0 || len(ks)+len(ka) < 3 {
		return nil, fmt.Errorf("%w: %d side(s) and %d angle(s) known, need 3 including a side",
			ErrUnderspecified, len(ks), len(ka))
	}

	var sols []Solution
	var err error
	switch {
	case len(ka) >= 2:
		var sol Solution
		sol, err = solveAngleSide(t, ks, ka)
		sols = []Solution{sol}
	case len(ks) == 3:
		var sol Solution
		sol, err = solveSSS(t)
		sols = []Solution{sol}
	default:
		// Two sides and one angle.
		if t.Sides[ka[0]] == 0 {
			var sol Solution
			sol, err = solveSAS(t, ka[0])
			sols = []Solution{sol}
		} else {
			sols, err = solveSSA(t, ka[0])
		}
	}
	if err != nil {
		return nil, err
	}

	for _, sol := range sols {
		if err := sol.agrees(t); err != nil {
			return nil, err
		}
	}
	return sols, nil
}

func (t Triangle) validate() error {
	for i := 0; i < 3; i++ {
		if s := t.Sides[i]; s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: side %d = %v", ErrInvalidMeasure, i, s)
		}
		if a := t.Angles[i]; a < 0 || a >= 180 || math.IsNaN(a) {
			return fmt.Errorf("%w: angle %d = %v°", ErrInvalidMeasure, i, a)
		}
	}
	return nil
}

// known returns the indices of the known sides and angles.
func (t Triangle) known() (sides, angles []int) {
	for i := 0; i < 3; i++ {
		if t.Sides[i] > 0 {
			sides = append(sides, i)
		}
		if t.Angles[i] > 0 {
			angles = append(angles, i)
		}
	}
	return sides, angles
}

// solveAngleSide handles ASA and AAS: the 180° rule first, then every side
// from the Law of Sines against the first known side.
func solveAngleSide(t Triangle, ks, ka []int) (Solution, error) {
	sol := Solution{Angles: t.Angles, Case: CaseAAS}

	if len(ka) == 2 {
		missing := 3 - ka[0] - ka[1]
		sol.Angles[missing] = 180 - t.Angles[ka[0]] - t.Angles[ka[1]]
		if sol.Angles[missing] <= 0 {
			return Solution{}, fmt.Errorf("%w: angles %v° and %v° leave nothing for the third",
				ErrDegenerate, t.Angles[ka[0]], t.Angles[ka[1]])
		}
		// The side between the two known angles is the one opposite the unknown.
		if t.Sides[missing] > 0 {
			sol.Case = CaseASA
		}
	} else if sum := sol.AngleSum(); !geom.Near(sum, 180, Tolerance*180) {
		return Solution{}, fmt.Errorf("%w: angles sum to %v°", ErrOverdetermined, sum)
	}

	k := ks[0]
	ratio := t.Sides[k] / math.Sin(sol.Rad(k))
	for i := 0; i < 3; i++ {
		sol.Sides[i] = ratio * math.Sin(sol.Rad(i))
	}
	sol.Sides[k] = t.Sides[k]
	return sol, nil
}

// solveSSS derives the largest angle first, then the next largest, both from
// the Law of Cosines; the smallest comes from the 180° rule so the sum is exact.
func solveSSS(t Triangle) (Solution, error) {
	s := t.Sides
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		if s[i] >= s[j]+s[k] {
			return Solution{}, fmt.Errorf("%w: side %v is not shorter than %v + %v",
				ErrDegenerate, s[i], s[j], s[k])
		}
	}

	order := []int{0, 1, 2}
	sort.SliceStable(order, func(a, b int) bool { return s[order[a]] > s[order[b]] })
	l, m, n := order[0], order[1], order[2]

	sol := Solution{Sides: s, Case: CaseSSS}
	sol.Angles[l] = cosineAngle(s[l], s[m], s[n])
	sol.Angles[m] = cosineAngle(s[m], s[l], s[n])
	sol.Angles[n] = 180 - sol.Angles[l] - sol.Angles[m]
	return sol, nil
}

// solveSAS computes the side opposite the included angle at vertex k.
func solveSAS(t Triangle, k int) (Solution, error) {
	i, j := (k+1)%3, (k+2)%3
	a, b := t.Sides[i], t.Sides[j]
	c := math.Sqrt(a*a + b*b - 2*a*b*math.Cos(geom.Rad(t.Angles[k])))
	if c < geom.Epsilon {
		return Solution{}, fmt.Errorf("%w: third side has zero length", ErrDegenerate)
	}

	sol := Solution{Sides: t.Sides, Angles: t.Angles, Case: CaseSAS}
	sol.Sides[k] = c

	// The angle opposite the shorter given side is never obtuse, so its
	// inverse sine is unambiguous.
	small, other := i, j
	if b < a {
		small, other = j, i
	}
	sinSmall := sol.Sides[small] * math.Sin(geom.Rad(t.Angles[k])) / c
	sol.Angles[small] = geom.Deg(math.Asin(clamp(sinSmall)))
	sol.Angles[other] = 180 - t.Angles[k] - sol.Angles[small]
	return sol, nil
}

// solveSSA handles two sides and the angle at vertex a, which is opposite a
// known side. Zero, one or two triangles may exist.
func solveSSA(t Triangle, a int) ([]Solution, error) {
	var b int
	for i := 0; i < 3; i++ {
		if i != a && t.Sides[i] > 0 {
			b = i
		}
	}
	c := 3 - a - b

	A := t.Angles[a]
	sinB := t.Sides[b] * math.Sin(geom.Rad(A)) / t.Sides[a]
	if sinB > 1+Tolerance {
		return nil, fmt.Errorf("%w: side %v cannot reach across angle %v° to meet side %v",
			ErrDegenerate, t.Sides[a], A, t.Sides[b])
	}

	B1 := geom.Deg(math.Asin(clamp(sinB)))
	candidates := []float64{B1}
	if !geom.Near(B1, 90, Tolerance) && t.Sides[b] > t.Sides[a] {
		candidates = append(candidates, 180-B1)
	}

	var sols []Solution
	for _, B := range candidates {
		C := 180 - A - B
		if C <= Tolerance {
			continue
		}
		sol := Solution{Sides: t.Sides, Case: CaseSSA}
		sol.Angles[a], sol.Angles[b], sol.Angles[c] = A, B, C
		sol.Sides[c] = t.Sides[a] * math.Sin(geom.Rad(C)) / math.Sin(geom.Rad(A))
		sols = append(sols, sol)
	}
	if len(sols) == 0 {
		return nil, fmt.Errorf("%w: no triangle has sides %v, %v with %v° opposite the first",
			ErrDegenerate, t.Sides[a], t.Sides[b], A)
	}
	return sols, nil
}

// agrees checks the solution against every measurement the caller supplied.
func (s Solution) agrees(t Triangle) error {
	for i := 0; i < 3; i++ {
		if want := t.Sides[i]; want > 0 && !geom.Near(s.Sides[i], want, Tolerance*math.Max(1, want)) {
			return fmt.Errorf("%w: side %d given as %v but solves to %v", ErrOverdetermined, i, want, s.Sides[i])
		}
		if want := t.Angles[i]; want > 0 && !geom.Near(s.Angles[i], want, Tolerance*180) {
			return fmt.Errorf("%w: angle %d given as %v° but solves to %v°", ErrOverdetermined, i, want, s.Angles[i])
		}
	}
	return nil
}

// cosineAngle returns the angle (degrees) opposite side opp.
func cosineAngle(opp, adj1, adj2 float64) float64 {
	cos := (adj1*adj1 + adj2*adj2 - opp*opp) / (2 * adj1 * adj2)
	return geom.Deg(math.Acos(clamp(cos)))
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
