// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import (
	"math/big"

	"github.com/dalzilio/adfobdd/obdd"
)

// SearchState is the read-only view of the no-good solver's current partial
// assignment exposed to a Heuristic. Positions are indexed like Interp:
// Undec means "not yet decided by the search".
type SearchState struct {
	adf        *ADF
	assigned   Interp
	importance []int
}

func newSearchState(a *ADF) *SearchState {
	n := a.reg.len()
	imp := make([]int, n)
	for _, root := range a.roots {
		for _, rec := range a.tab.Reachable(root) {
			imp[rec.Level]++
		}
	}
	return &SearchState{adf: a, assigned: make(Interp, n), importance: imp}
}

// Value reports the current value of variable v (Undec if unassigned).
func (s *SearchState) Value(v obdd.Var) Value { return s.assigned[v] }

// Unassigned lists every variable not yet decided, in index order.
func (s *SearchState) Unassigned() []obdd.Var {
	out := make([]obdd.Var, 0, len(s.assigned))
	for i, v := range s.assigned {
		if v == Undec {
			out = append(out, obdd.Var(i))
		}
	}
	return out
}

// Importance is the number of BDD nodes, across every acceptance condition,
// whose top variable is v — a static proxy for how often v is tested.
func (s *SearchState) Importance(v obdd.Var) int { return s.importance[v] }

// ModelCount returns the ad-hoc model count of statement v's acceptance
// condition, or zero if the Table was not built with AdHocModelCounting
// (New rejects a counting-dependent heuristic in that configuration, so
// this only happens for Simple, which never calls it).
func (s *SearchState) ModelCount(v obdd.Var) *big.Int {
	mc, err := s.adf.tab.ModelCount(s.adf.roots[v])
	if err != nil {
		return big.NewInt(0)
	}
	return mc
}

// PathCount returns the ad-hoc path count of statement v's acceptance
// condition.
func (s *SearchState) PathCount(v obdd.Var) *big.Int {
	pc, err := s.adf.tab.PathCount(s.adf.roots[v])
	if err != nil {
		return big.NewInt(0)
	}
	return pc
}

// Heuristic picks the next variable to branch on. Pick returns ok=false
// when every variable is already assigned.
type Heuristic interface {
	Pick(s *SearchState) (obdd.Var, bool)
}

// Simple picks the smallest-index unassigned variable; the solver always
// tries the True polarity first.
type Simple struct{}

func (Simple) Pick(s *SearchState) (obdd.Var, bool) {
	for i, v := range s.assigned {
		if v == Undec {
			return obdd.Var(i), true
		}
	}
	return 0, false
}

// MinModMinPathsMaxVarImp picks the unassigned variable minimizing the
// lexicographic key (model count, path count, -importance).
type MinModMinPathsMaxVarImp struct{}

func (MinModMinPathsMaxVarImp) Pick(s *SearchState) (obdd.Var, bool) {
	return pickByKey(s, func(v obdd.Var) [3]*big.Int {
		return [3]*big.Int{s.ModelCount(v), s.PathCount(v), big.NewInt(int64(-s.Importance(v)))}
	})
}

// MinModMaxVarImpMinPaths picks the unassigned variable minimizing the
// lexicographic key (model count, -importance, path count).
type MinModMaxVarImpMinPaths struct{}

func (MinModMaxVarImpMinPaths) Pick(s *SearchState) (obdd.Var, bool) {
	return pickByKey(s, func(v obdd.Var) [3]*big.Int {
		return [3]*big.Int{s.ModelCount(v), big.NewInt(int64(-s.Importance(v))), s.PathCount(v)}
	})
}

func pickByKey(s *SearchState, keyOf func(obdd.Var) [3]*big.Int) (obdd.Var, bool) {
	unassigned := s.Unassigned()
	if len(unassigned) == 0 {
		return 0, false
	}
	best := unassigned[0]
	bestKey := keyOf(best)
	for _, v := range unassigned[1:] {
		k := keyOf(v)
		if lessKey3(k, bestKey) {
			best, bestKey = v, k
		}
	}
	return best, true
}

func lessKey3(a, b [3]*big.Int) bool {
	for i := 0; i < 3; i++ {
		if c := a[i].Cmp(b[i]); c != 0 {
			return c < 0
		}
	}
	return false
}
