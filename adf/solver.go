// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import (
	"context"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/dalzilio/adfobdd/obdd"
)

// solverState is the mutable search state of one StableSolve invocation: a
// trail of assigned variables (decisions and propagated facts interleaved),
// the decision levels at which branches were taken, and the no-goods
// learned so far.
//
// Conflict analysis here is deliberately simplified from a textbook
// first-UIP resolution over an implication graph: because propagation comes
// from two heterogeneous sources (unit no-goods and BDD valuation, not a
// uniform clause database), this package instead learns the conjunction of
// every current decision literal as the conflict clause and backjumps by
// exactly one decision level, asserting the flipped top decision as a
// propagated fact there. This is still sound (a conflict under a set of
// decisions means no stable model extends that exact combination) and still
// terminates (each conflict permanently excludes at least one
// decision-literal combination, of which there are finitely many), at the
// cost of pruning less aggressively than a minimal first-UIP clause would.
type solverState struct {
	adf        *ADF
	heuristic  Heuristic
	logger     hclog.Logger
	assigned   Interp
	level      []int
	trail      []obdd.Var
	decisionAt []int // trail index of the j-th decision; decision level is j+1
	nogoods    []NoGood
	importance []int
	stats      SolveStats
}

func newSolverState(a *ADF) *solverState {
	n := a.reg.len()
	return &solverState{
		adf:        a,
		heuristic:  a.cfg.heuristic,
		logger:     a.logger,
		assigned:   make(Interp, n),
		level:      make([]int, n),
		importance: newSearchState(a).importance,
	}
}

func (st *solverState) currentLevel() int { return len(st.decisionAt) }

func (st *solverState) assign(v obdd.Var, value Value, lvl int) {
	st.assigned[v] = value
	st.level[v] = lvl
	st.trail = append(st.trail, v)
}

func (st *solverState) decide(v obdd.Var, val bool) {
	st.decisionAt = append(st.decisionAt, len(st.trail))
	value := False
	if val {
		value = True
	}
	st.assign(v, value, st.currentLevel())
	st.stats.Decisions++
	st.logger.Trace("decide", "var", v, "value", val, "level", st.currentLevel())
}

func (st *solverState) partial() map[obdd.Var]bool {
	out := make(map[obdd.Var]bool, len(st.trail))
	for _, v := range st.trail {
		out[v] = st.assigned[v] == True
	}
	return out
}

func (st *solverState) searchState() *SearchState {
	s := &SearchState{adf: st.adf, assigned: make(Interp, len(st.assigned)), importance: st.importance}
	copy(s.assigned, st.assigned)
	return s
}

func (st *solverState) totalAssignment() TwoValued {
	m := make(TwoValued, len(st.assigned))
	for i, v := range st.assigned {
		m[i] = v == True
	}
	return m
}

// propagate applies the structural rule (forcing statement i from
// valuating roots[i] under the current partial assignment) and no-good
// unit propagation to a fixpoint, reporting whether a conflict was found.
func (st *solverState) propagate() bool {
	for {
		changed := false
		partial := st.partial()

		for i, root := range st.adf.roots {
			v := obdd.Var(i)
			res := termToValue(st.adf.tab.Valuate(root, partial))
			if res == Undec {
				continue
			}
			switch st.assigned[v] {
			case Undec:
				st.assign(v, res, st.currentLevel())
				partial[v] = res == True
				changed = true
			case res:
				// already consistent, nothing to do
			default:
				return true
			}
		}

		for _, ng := range st.nogoods {
			unassignedIdx := -1
			matchCount := 0
			vacuous := false
			for li, lit := range ng {
				val, known := partial[lit.V]
				if !known {
					if unassignedIdx != -1 {
						vacuous = true
						break
					}
					unassignedIdx = li
					continue
				}
				if val == lit.Pos {
					matchCount++
				} else {
					vacuous = true
					break
				}
			}
			if vacuous {
				continue
			}
			if unassignedIdx == -1 {
				return true
			}
			if matchCount == len(ng)-1 {
				lit := ng[unassignedIdx]
				value := False
				if !lit.Pos {
					value = True
				}
				st.assign(lit.V, value, st.currentLevel())
				partial[lit.V] = value == True
				changed = true
			}
		}

		if !changed {
			return false
		}
	}
}

// analyzeAndLearn learns the conflict clause described on solverState and
// backjumps one decision level, asserting the flipped top decision. It
// reports false when the conflict holds with no decisions pending at all,
// meaning the search is Exhausted.
func (st *solverState) analyzeAndLearn() bool {
	if len(st.decisionAt) == 0 {
		return false
	}
	lits := make(NoGood, len(st.decisionAt))
	for j, pos := range st.decisionAt {
		v := st.trail[pos]
		lits[j] = Literal{V: v, Pos: st.assigned[v] == True}
	}
	st.nogoods = append(st.nogoods, lits)
	st.stats.Learned++

	topVar := st.trail[st.decisionAt[len(st.decisionAt)-1]]
	topWasTrue := st.assigned[topVar] == True
	target := len(st.decisionAt) - 1
	st.backjump(target)
	forced := False
	if !topWasTrue {
		forced = True
	}
	st.assign(topVar, forced, st.currentLevel())
	st.stats.Backjumps++
	st.logger.Trace("backjump", "to_level", target, "flipped_var", topVar, "learned_size", len(lits))
	return true
}

func (st *solverState) backjump(targetLevel int) {
	cut := len(st.trail)
	for cut > 0 && st.level[st.trail[cut-1]] > targetLevel {
		cut--
	}
	for i := cut; i < len(st.trail); i++ {
		st.assigned[st.trail[i]] = Undec
		st.level[st.trail[i]] = 0
	}
	st.trail = st.trail[:cut]
	st.decisionAt = st.decisionAt[:targetLevel]
}

// blockCurrentTotal learns the no-good forbidding the exact current total
// assignment, so a subsequent propagate() detects it as an (already fully
// matched) conflict and analyzeAndLearn drives the search onward.
func (st *solverState) blockCurrentTotal() {
	ng := make(NoGood, len(st.assigned))
	for v, val := range st.assigned {
		ng[v] = Literal{V: obdd.Var(v), Pos: val == True}
	}
	st.nogoods = append(st.nogoods, ng)
	st.stats.Learned++
	st.logger.Trace("blocked total assignment", "nogoods", len(st.nogoods))
}

// StableSolve runs the no-good-learning stable-model search (C8), calling f
// once for every stable model found, in the order the search discovers
// them. It stops early, returning f's error unchanged, the first time f
// returns a non-nil error, or ErrCancelled if ctx is cancelled at a decision
// or emission boundary.
func (a *ADF) StableSolve(ctx context.Context, f func(TwoValued) error) (SolveStats, error) {
	st := newSolverState(a)
	for {
		if err := ctx.Err(); err != nil {
			return st.stats, ErrCancelled
		}
		if st.propagate() {
			st.stats.Conflicts++
			if !st.analyzeAndLearn() {
				return st.stats, nil
			}
			continue
		}
		v, ok := st.heuristic.Pick(st.searchState())
		if !ok {
			m := st.totalAssignment()
			if a.isStable(m) {
				if err := f(m); err != nil {
					return st.stats, err
				}
			}
			st.blockCurrentTotal()
			continue
		}
		if err := ctx.Err(); err != nil {
			return st.stats, ErrCancelled
		}
		st.decide(v, true)
	}
}

// StableSolveAsync runs StableSolve on a dedicated goroutine that owns the
// ADF's Table for the duration of the search, sending each stable model on
// an unbuffered channel. Both channels are closed when the search finishes,
// is cancelled, or is exhausted; a non-nil error (including ErrCancelled)
// is sent on the error channel before it closes.
func (a *ADF) StableSolveAsync(ctx context.Context) (<-chan TwoValued, <-chan error) {
	results := make(chan TwoValued)
	errs := make(chan error, 1)
	go func() {
		defer close(results)
		defer close(errs)
		_, err := a.StableSolve(ctx, func(m TwoValued) error {
			select {
			case results <- m:
				return nil
			case <-ctx.Done():
				return ErrCancelled
			}
		})
		if err != nil {
			errs <- err
		}
	}()
	return results, errs
}
