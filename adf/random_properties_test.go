// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dalzilio/adfobdd/obdd"
)

// randomExpr builds a random acceptance-condition AST over the given
// statement names, allowing self-reference and forward reference to any
// other statement (both legal).
func randomExpr(rng *rand.Rand, names []string, depth int) Expr {
	if depth <= 0 || rng.Intn(4) == 0 {
		switch rng.Intn(3) {
		case 0:
			return ExprConst{Value: rng.Intn(2) == 0}
		default:
			return ExprVar{Name: names[rng.Intn(len(names))]}
		}
	}
	l := randomExpr(rng, names, depth-1)
	r := randomExpr(rng, names, depth-1)
	switch rng.Intn(6) {
	case 0:
		return ExprNeg{E: l}
	case 1:
		return ExprAnd{L: l, R: r}
	case 2:
		return ExprOr{L: l, R: r}
	case 3:
		return ExprIff{L: l, R: r}
	case 4:
		return ExprXor{L: l, R: r}
	default:
		return ExprImp{L: l, R: r}
	}
}

func randomADF(t *testing.T, rng *rand.Rand, nstmt int) *ADF {
	t.Helper()
	names := make([]string, nstmt)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	decls := make([]Declaration, nstmt)
	for i, n := range names {
		decls[i] = Declaration{Name: n, AC: randomExpr(rng, names, 3)}
	}
	a, err := New(decls)
	require.NoError(t, err)
	return a
}

// moreDecided returns a copy of i with a random subset of its Undec
// positions replaced by a random decided value, so the result is always
// >=_i the input — the precondition TestRandomGammaMonotone needs.
func moreDecided(rng *rand.Rand, i Interp) Interp {
	out := make(Interp, len(i))
	copy(out, i)
	for idx, v := range out {
		if v == Undec && rng.Intn(2) == 0 {
			if rng.Intn(2) == 0 {
				out[idx] = True
			} else {
				out[idx] = False
			}
		}
	}
	return out
}

// TestRandomGammaMonotone checks Γ-monotonicity against randomly generated
// ADFs: for any Interp i and any j >=_i i obtained by deciding a subset of
// i's Undec positions, Γ(i) <=_i Γ(j).
func TestRandomGammaMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 40; trial++ {
		n := 2 + rng.Intn(4)
		a := randomADF(t, rng, n)
		base := make(Interp, n)
		for k := 0; k < 3; k++ {
			j := moreDecided(rng, base)
			gi, gj := a.Gamma(base), a.Gamma(j)
			po, ok := Compare(gi, gj)
			require.True(t, ok, "Gamma(i) and Gamma(j) must stay comparable for i<=j")
			require.True(t, po == Less || po == Equal, "Gamma must be monotone")
			base = j
		}
	}
}

// TestRandomGroundedIsLeastComplete checks that the grounded interpretation
// is <=_i every complete one, against randomly generated ADFs small enough
// to fully enumerate.
func TestRandomGroundedIsLeastComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 25; trial++ {
		n := 2 + rng.Intn(3)
		a := randomADF(t, rng, n)
		grounded := a.Grounded()
		require.NoError(t, a.Complete(func(i Interp) error {
			po, ok := Compare(grounded, i)
			require.True(t, ok)
			require.True(t, po == Less || po == Equal)
			return nil
		}))
	}
}

// TestRandomStableSubsetOfComplete checks that every stable model also
// appears among the complete interpretations, against randomly generated
// ADFs.
func TestRandomStableSubsetOfComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(1337))
	for trial := 0; trial < 25; trial++ {
		n := 2 + rng.Intn(3)
		a := randomADF(t, rng, n)
		var completes []Interp
		require.NoError(t, a.Complete(func(i Interp) error {
			cp := make(Interp, len(i))
			copy(cp, i)
			completes = append(completes, cp)
			return nil
		}))
		require.NoError(t, a.StableNaive(func(m TwoValued) error {
			want := interpFromTwoValued(m)
			found := false
			for _, c := range completes {
				if equalInterp(c, want) {
					found = true
					break
				}
			}
			require.True(t, found)
			return nil
		}))
	}
}

func allInterps(n int, f func(Interp)) {
	i := make(Interp, n)
	var rec func(pos int)
	rec = func(pos int) {
		if pos == n {
			f(i)
			return
		}
		for _, v := range [3]Value{Undec, True, False} {
			i[pos] = v
			rec(pos + 1)
		}
	}
	rec(0)
}

// TestRandomCompleteMatchesBruteForce cross-checks the Complete enumerator
// against the definition: a complete interpretation is exactly a fixed
// point of Γ. Brute force over all 3^n interpretations keeps n small.
func TestRandomCompleteMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		n := 2 + rng.Intn(3)
		a := randomADF(t, rng, n)

		var want []string
		allInterps(n, func(i Interp) {
			if equalInterp(a.Gamma(i), i) {
				want = append(want, describeInterp(a, i))
			}
		})

		var got []string
		require.NoError(t, a.Complete(func(i Interp) error {
			got = append(got, describeInterp(a, i))
			return nil
		}))
		require.ElementsMatch(t, want, got, "trial %d", trial)
	}
}

// TestCompleteSkipsUnconfirmedDecision pins the support-chain case down
// explicitly: with ac(a,b) and ac(b,b), deciding a=True alone leaves Γ(a)
// undecided, so a=t b=u is not a fixed point and must not be enumerated,
// while its extension a=t b=t must be.
func TestCompleteSkipsUnconfirmedDecision(t *testing.T) {
	a, err := New([]Declaration{
		{Name: "a", AC: ExprVar{Name: "b"}},
		{Name: "b", AC: ExprVar{Name: "b"}},
	})
	require.NoError(t, err)

	var got []string
	require.NoError(t, a.Complete(func(i Interp) error {
		got = append(got, describeInterp(a, i))
		return nil
	}))
	require.ElementsMatch(t, []string{"a=u b=u ", "a=t b=t ", "a=f b=f "}, got)
}

// TestRandomStableSolveAgreesWithNaive checks that the no-good search and
// the naive enumerator produce the same stable models on randomly generated
// ADFs, for every built-in heuristic.
func TestRandomStableSolveAgreesWithNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(2026))
	heuristics := []Heuristic{Simple{}, MinModMinPathsMaxVarImp{}, MinModMaxVarImpMinPaths{}}
	for trial := 0; trial < 12; trial++ {
		n := 2 + rng.Intn(3)
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		decls := make([]Declaration, n)
		for i, name := range names {
			decls[i] = Declaration{Name: name, AC: randomExpr(rng, names, 3)}
		}

		naive, err := New(decls)
		require.NoError(t, err)
		var want []string
		require.NoError(t, naive.StableNaive(func(m TwoValued) error {
			want = append(want, describeTwoValued(naive, m))
			return nil
		}))

		for _, h := range heuristics {
			a, err := New(decls,
				SolverHeuristic(h),
				TableOptions(obdd.AdHocCounting(true), obdd.AdHocModelCounting(true)))
			require.NoError(t, err)
			got := stableSet(t, a, func(f func(TwoValued) error) error {
				_, err := a.StableSolve(context.Background(), f)
				return err
			})
			require.ElementsMatch(t, want, got, "heuristic %T disagreed with StableNaive on trial %d", h, trial)
		}
	}
}
