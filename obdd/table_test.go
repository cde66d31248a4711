// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"bytes"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, n int, opts ...Option) *Table {
	t.Helper()
	tab, err := New(n, opts...)
	require.NoError(t, err)
	require.Nil(t, tab.Error())
	return tab
}

func TestNewRejectsBadVarnum(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}

func TestAdHocModelRequiresAdHocCounting(t *testing.T) {
	_, err := New(3, AdHocModelCounting(true))
	require.Error(t, err)
	var ce *ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestVarAndNVarAreComplementary(t *testing.T) {
	tab := newTestTable(t, 3)
	for i := Var(0); i < 3; i++ {
		v := tab.Var(i)
		nv := tab.NVar(i)
		assert.Equal(t, v, tab.Not(nv))
		assert.Equal(t, nv, tab.Not(v))
	}
}

func TestNotIsInvolutive(t *testing.T) {
	tab := newTestTable(t, 2)
	a := tab.Var(0)
	assert.Equal(t, a, tab.Not(tab.Not(a)))
}

func TestApplyTruthTables(t *testing.T) {
	tab := newTestTable(t, 1)
	x := tab.Var(0)
	nx := tab.NVar(0)

	assert.Equal(t, True, tab.Apply(OpOr, x, nx))
	assert.Equal(t, False, tab.Apply(OpAnd, x, nx))
	assert.Equal(t, x, tab.Apply(OpAnd, x, x))
	assert.Equal(t, x, tab.Apply(OpOr, x, x))
	assert.Equal(t, True, tab.Apply(OpBiimp, x, x))
	assert.Equal(t, False, tab.Apply(OpXor, x, x))
	assert.Equal(t, True, tab.Apply(OpImp, x, True))
	assert.Equal(t, True, tab.Apply(OpImp, False, x))
}

func TestApplyIsCommutativeNormalized(t *testing.T) {
	tab := newTestTable(t, 2)
	a, b := tab.Var(0), tab.Var(1)
	assert.Equal(t, tab.Apply(OpAnd, a, b), tab.Apply(OpAnd, b, a))
	assert.Equal(t, tab.Apply(OpXor, a, b), tab.Apply(OpXor, b, a))
}

func TestIteMatchesAndOrDefinitions(t *testing.T) {
	tab := newTestTable(t, 2)
	a, b := tab.Var(0), tab.Var(1)
	assert.Equal(t, tab.Apply(OpAnd, a, b), tab.Ite(a, b, False))
	assert.Equal(t, tab.Apply(OpOr, a, b), tab.Ite(a, True, b))
	assert.Equal(t, tab.Not(a), tab.Ite(a, False, True))
}

func TestRestrictFixesOneVariable(t *testing.T) {
	tab := newTestTable(t, 2)
	a, b := tab.Var(0), tab.Var(1)
	f := tab.Apply(OpAnd, a, b) // a /\ b
	assert.Equal(t, b, tab.Restrict(f, 0, true))
	assert.Equal(t, False, tab.Restrict(f, 0, false))
}

func TestRestrictIgnoresAbsentVariable(t *testing.T) {
	tab := newTestTable(t, 3)
	a := tab.Var(0)
	assert.Equal(t, a, tab.Restrict(a, 2, true))
	assert.Equal(t, a, tab.Restrict(a, 2, false))
}

func TestSubstituteReplacesVariableWithTerm(t *testing.T) {
	tab := newTestTable(t, 3)
	a, b, c := tab.Var(0), tab.Var(1), tab.Var(2)
	// substitute v0 by c inside (v0 /\ v1): should equal (c /\ v1)
	f := tab.Apply(OpAnd, a, b)
	expected := tab.Apply(OpAnd, c, b)
	assert.Equal(t, expected, tab.Substitute(f, 0, c))
}

func TestSubstituteByConstantMatchesRestrict(t *testing.T) {
	tab := newTestTable(t, 2)
	a, b := tab.Var(0), tab.Var(1)
	f := tab.Apply(OpOr, a, b)
	assert.Equal(t, tab.Restrict(f, 0, true), tab.Substitute(f, 0, True))
	assert.Equal(t, tab.Restrict(f, 0, false), tab.Substitute(f, 0, False))
}

func TestValuateResolvesFullAssignment(t *testing.T) {
	tab := newTestTable(t, 2)
	a, b := tab.Var(0), tab.Var(1)
	f := tab.Apply(OpAnd, a, b)
	assert.Equal(t, True, tab.Valuate(f, map[Var]bool{0: true, 1: true}))
	assert.Equal(t, False, tab.Valuate(f, map[Var]bool{0: false}))
}

func TestValuateLeavesUndeterminedVariable(t *testing.T) {
	tab := newTestTable(t, 2)
	a, b := tab.Var(0), tab.Var(1)
	f := tab.Apply(OpAnd, a, b)
	res := tab.Valuate(f, map[Var]bool{0: true})
	assert.Equal(t, b, res)
}

func TestCountModels(t *testing.T) {
	tab := newTestTable(t, 2)
	a, b := tab.Var(0), tab.Var(1)
	f := tab.Apply(OpOr, a, b)
	universe := []Var{0, 1}
	assert.Equal(t, big.NewInt(3), tab.CountModels(f, universe))
	assert.Equal(t, big.NewInt(0), tab.CountModels(False, universe))
	assert.Equal(t, big.NewInt(4), tab.CountModels(True, universe))
}

func TestAdHocCountingMatchesLazyCounting(t *testing.T) {
	tab := newTestTable(t, 3, AdHocCounting(true), AdHocModelCounting(true))
	a, b, c := tab.Var(0), tab.Var(1), tab.Var(2)
	f := tab.Apply(OpOr, tab.Apply(OpAnd, a, b), c)
	universe := []Var{0, 1, 2}
	lazy := tab.CountModels(f, universe)
	eager, err := tab.ModelCount(f)
	require.NoError(t, err)
	assert.Equal(t, lazy, eager)
}

func TestModelCountWithoutOptionIsProgrammingError(t *testing.T) {
	tab := newTestTable(t, 2)
	a := tab.Var(0)
	_, err := tab.ModelCount(a)
	require.Error(t, err)
	var pe *ProgrammingError
	assert.ErrorAs(t, err, &pe)
}

func TestReachableListsNonConstantNodes(t *testing.T) {
	tab := newTestTable(t, 2)
	a, b := tab.Var(0), tab.Var(1)
	f := tab.Apply(OpAnd, a, b)
	recs := tab.Reachable(f)
	assert.NotEmpty(t, recs)
	for _, r := range recs {
		assert.NotEqual(t, False, r.ID)
		assert.NotEqual(t, True, r.ID)
	}
}

func TestWriteDOTProducesGraphvizOutput(t *testing.T) {
	tab := newTestTable(t, 2)
	a, b := tab.Var(0), tab.Var(1)
	f := tab.Apply(OpAnd, a, b)
	var buf bytes.Buffer
	require.NoError(t, tab.WriteDOT(&buf, f))
	assert.Contains(t, buf.String(), "digraph obdd")
}

func TestExportImportRoundTrip(t *testing.T) {
	tab := newTestTable(t, 3)
	a, b, c := tab.Var(0), tab.Var(1), tab.Var(2)
	f := tab.Apply(OpOr, tab.Apply(OpAnd, a, b), c)

	var buf bytes.Buffer
	require.NoError(t, tab.Export(&buf, f))

	tab2, roots, err := Import(&buf)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	universe := []Var{0, 1, 2}
	assert.Equal(t, tab.CountModels(f, universe), tab2.CountModels(roots[0], universe))
}

func TestExportRejectsArrayEngine(t *testing.T) {
	tab := newTestTable(t, 2, Engine(ArrayEngine))
	a := tab.Var(0)
	var buf bytes.Buffer
	err := tab.Export(&buf, a)
	require.Error(t, err)
	var pe *ProgrammingError
	assert.ErrorAs(t, err, &pe)
}

func TestArrayEngineMatchesHashmapEngine(t *testing.T) {
	hm := newTestTable(t, 3)
	arr := newTestTable(t, 3, Engine(ArrayEngine))
	universe := []Var{0, 1, 2}

	build := func(tab *Table) Term {
		a, b, c := tab.Var(0), tab.Var(1), tab.Var(2)
		return tab.Apply(OpOr, tab.Apply(OpAnd, a, b), tab.Not(c))
	}
	fh := build(hm)
	fa := build(arr)
	assert.Equal(t, hm.CountModels(fh, universe), arr.CountModels(fa, universe))
}

// TestArrayEngineRandomFormulasMatchHashmapEngine replays the same random
// derivation on both engines, starting the array engine at its minimal size
// so the table fills, resizes and rehashes repeatedly, and checks that both
// agree with brute-force truth-table evaluation and on model counts.
func TestArrayEngineRandomFormulasMatchHashmapEngine(t *testing.T) {
	const n = 5
	universe := []Var{0, 1, 2, 3, 4}
	for trial := 0; trial < 20; trial++ {
		seed := int64(100 + trial)
		hm := newTestTable(t, n)
		arr := newTestTable(t, n, Engine(ArrayEngine), Nodesize(2*n+2))
		fh := randomFormula(t, hm, rand.New(rand.NewSource(seed)), n, 40)
		fa := randomFormula(t, arr, rand.New(rand.NewSource(seed)), n, 40)
		everyAssignment(n, func(assignment []bool) {
			partial := make(map[Var]bool, n)
			for i, b := range assignment {
				partial[Var(i)] = b
			}
			want := False
			if fa.eval(assignment) {
				want = True
			}
			require.Equal(t, want, hm.Valuate(fh.term, partial), "hashmap, assignment %v", assignment)
			require.Equal(t, want, arr.Valuate(fa.term, partial), "array, assignment %v", assignment)
		})
		require.Equal(t, hm.CountModels(fh.term, universe), arr.CountModels(fa.term, universe), "seed %d", seed)
	}
}

// TestArrayEngineCanonicalUnderCollisions grows one array-backed table
// across many random formulas, so its collision chains fill and survive
// several rehashes, then checks canonicity (equal truth table, equal Term)
// and the reduction/ordering invariants over everything reachable.
func TestArrayEngineCanonicalUnderCollisions(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	const n = 4
	tab := newTestTable(t, n, Engine(ArrayEngine), Nodesize(2*n+2))
	var roots []Term
	for trial := 0; trial < 25; trial++ {
		a := randomFormula(t, tab, rng, n, 12)
		b := randomFormula(t, tab, rng, n, 12)
		roots = append(roots, a.term, b.term)
		sameFunction := true
		everyAssignment(n, func(assignment []bool) {
			if a.eval(assignment) != b.eval(assignment) {
				sameFunction = false
			}
		})
		if sameFunction {
			require.Equal(t, a.term, b.term, "equal truth tables must yield the same canonical Term")
		} else {
			require.NotEqual(t, a.term, b.term, "different truth tables must yield different Terms")
		}
	}
	for _, rec := range tab.Reachable(roots...) {
		require.NotEqual(t, rec.Low, rec.High, "node %d violates the reduction invariant", rec.ID)
		if rec.Low != False && rec.Low != True {
			require.Less(t, rec.Level, tab.eng.level(rec.Low), "node %d not ordered before its low child", rec.ID)
		}
		if rec.High != False && rec.High != True {
			require.Less(t, rec.Level, tab.eng.level(rec.High), "node %d not ordered before its high child", rec.ID)
		}
	}
}
