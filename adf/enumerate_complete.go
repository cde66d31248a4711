// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

// Complete enumerates every complete interpretation — every three-valued
// fixed point of Γ that is ≥_i the grounded interpretation — calling f once
// per model in the order decisions are made (lowest statement index first,
// True, then False, then kept Undec). Enumeration stops early, returning f's
// error unchanged, the first time f returns a non-nil error.
//
// The search starts from the grounded interpretation (itself always
// complete) and, for every statement still Undec after propagating Γ to a
// local fixpoint, branches on deciding it True, deciding it False, or
// keeping it Undec, re-propagating after each decision. A branch that can
// never be consistent with Γ (propagation derives a value contradicting a
// decision, or a value for a statement kept Undec) is pruned silently: it
// contributes no model, exactly as if it had never been tried. A closed
// interpretation where some decided statement is not confirmed by Γ (its
// Γ-value is still Undec) is not itself a fixed point and is not emitted,
// but its extensions may be, so branching continues below it.
func (a *ADF) Complete(f func(Interp) error) error {
	return a.completeFrom(a.Grounded(), 0, f)
}

// completeFrom branches on the positions from start onwards; every position
// before start that is Undec in i was kept Undec by an earlier branch.
func (a *ADF) completeFrom(i Interp, start int, f func(Interp) error) error {
	closed, fixpoint, ok := a.close(i)
	if !ok {
		return nil
	}
	for pos := 0; pos < start; pos++ {
		if i[pos] == Undec && closed[pos] != Undec {
			return nil
		}
	}
	idx := -1
	for pos := start; pos < len(closed); pos++ {
		if closed[pos] == Undec {
			idx = pos
			break
		}
	}
	if idx == -1 {
		if fixpoint {
			return f(closed)
		}
		return nil
	}
	for _, choice := range [3]Value{True, False, Undec} {
		next := make(Interp, len(closed))
		copy(next, closed)
		next[idx] = choice
		if err := a.completeFrom(next, idx+1, f); err != nil {
			return err
		}
	}
	return nil
}

// close repeatedly applies Γ, adopting any value it derives for a still-
// Undec position, until no further position changes. It reports ok=false if
// Γ ever derives a value for an already-decided position that contradicts
// that decision — the assumption embodied by i can never extend to a
// complete interpretation. fixpoint reports whether the result is an actual
// fixed point of Γ: every decided position must be confirmed by Γ, not
// merely left unrefuted (a decided position whose Γ-value is still Undec
// rules the result out as a complete interpretation, without ruling out its
// extensions).
func (a *ADF) close(i Interp) (closed Interp, fixpoint, ok bool) {
	cur := make(Interp, len(i))
	copy(cur, i)
	for {
		next := a.Gamma(cur)
		changed := false
		for pos := range cur {
			switch {
			case cur[pos] == Undec:
				if next[pos] != Undec {
					cur[pos] = next[pos]
					changed = true
				}
			case next[pos] != Undec && next[pos] != cur[pos]:
				return nil, false, false
			}
		}
		if !changed {
			confirmed := true
			for pos := range cur {
				if cur[pos] != Undec && next[pos] == Undec {
					confirmed = false
					break
				}
			}
			return cur, confirmed, true
		}
	}
}
