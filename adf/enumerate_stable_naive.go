// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

// StableNaive filters the complete enumeration down to the stable models:
// two-valued complete interpretations whose stability reduct (every
// statement false under the candidate pinned to ⊥, every other statement
// keeping its real acceptance condition) has a grounded model equal to the
// candidate itself.
func (a *ADF) StableNaive(f func(TwoValued) error) error {
	return a.Complete(func(i Interp) error {
		m, ok := totalOf(i)
		if !ok {
			return nil
		}
		if !a.isStable(m) {
			return nil
		}
		return f(m)
	})
}

func totalOf(i Interp) (TwoValued, bool) {
	m := make(TwoValued, len(i))
	for idx, v := range i {
		if v == Undec {
			return nil, false
		}
		m[idx] = v == True
	}
	return m, true
}

func (a *ADF) isStable(m TwoValued) bool {
	reduct := a.groundedReduct(m)
	return equalInterp(reduct, interpFromTwoValued(m))
}

// groundedReduct computes the grounded interpretation of the ADF in which
// every statement false under m keeps the constant ⊥ as its acceptance
// condition, and every other statement keeps its real root.
func (a *ADF) groundedReduct(m TwoValued) Interp {
	i := make(Interp, len(m))
	for {
		partial := decidedPositions(i)
		next := make(Interp, len(m))
		for idx := range m {
			if !m[idx] {
				next[idx] = False
				continue
			}
			next[idx] = termToValue(a.tab.Valuate(a.roots[idx], partial))
		}
		if equalInterp(i, next) {
			return next
		}
		i = next
	}
}
