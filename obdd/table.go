// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"math/big"

	hclog "github.com/hashicorp/go-hclog"
)

// Table is a single shared OBDD: a canonical node table plus the memoized
// operations over it (not, apply, ite, restrict, substitute, valuate,
// counting). One Table is meant to be shared by every acceptance condition
// of one ADF; never one BDD per statement.
type Table struct {
	eng          engine
	memo         *memoTables
	cfg          *config
	logger       hclog.Logger
	err          error
	memoSizedFor int // node-table capacity the memo caches were last sized against
}

// New creates a Table with the given number of variables. Variables are
// numbered [0, varnum) and allocated immediately so that Var(i) is valid for
// every i in range right after construction.
func New(varnum int, opts ...Option) (*Table, error) {
	if varnum < 1 {
		return nil, newProgrammingError("New", "varnum must be positive, got %d", varnum)
	}
	c := defaultConfig(varnum)
	for _, o := range opts {
		o(c)
	}
	eb := newConfigError()
	if c.adHocModel && !c.adHocCounting {
		eb.add("AdHocModelCounting requires AdHocCounting to also be enabled")
	}
	if c.maxnodesize > 0 && c.maxnodesize < 2*varnum+2 {
		eb.add("Maxnodesize (%d) is too small to hold %d variables", c.maxnodesize, varnum)
	}
	if err := eb.build(); err != nil {
		return nil, err
	}
	eng := newEngine(c)
	if eng == nil {
		return nil, newProgrammingError("New", "unable to allocate the initial node table")
	}
	t := &Table{
		eng:    eng,
		memo:   newMemoTables(c.cachesize),
		cfg:    c,
		logger: c.logger,
	}
	t.logger.Trace("created table", "varnum", varnum, "engine", c.engine.String())
	return t, nil
}

// Error returns the last programming-class error recorded by this Table, or
// nil. Such errors are not recoverable; a Table that has
// recorded one should not be used further.
func (t *Table) Error() error { return t.err }

func (t *Table) fail(op string, format string, args ...interface{}) Term {
	t.err = newProgrammingError(op, format, args...)
	return -1
}

// Varnum returns the number of variables currently registered.
func (t *Table) Varnum() int { return t.eng.varnum() }

// SetVarnum extends the number of variables. It may only increase it.
func (t *Table) SetVarnum(n int) error {
	if err := t.eng.setVarnum(n); err != nil {
		t.err = newProgrammingError("SetVarnum", "%s", err)
		return t.err
	}
	return nil
}

// Constant returns the Term for the Boolean constant v.
func (t *Table) Constant(v bool) Term {
	if v {
		return True
	}
	return False
}

// Var returns the Term (i, False, True), the positive literal for variable i.
func (t *Table) Var(i Var) Term {
	if int(i) >= t.eng.varnum() {
		return t.fail("Var", "variable index %d out of range [0,%d)", i, t.eng.varnum())
	}
	return t.eng.ithvar(i)
}

// NVar returns the Term (i, True, False), the negative literal for variable i.
func (t *Table) NVar(i Var) Term {
	if int(i) >= t.eng.varnum() {
		return t.fail("NVar", "variable index %d out of range [0,%d)", i, t.eng.varnum())
	}
	return t.eng.nithvar(i)
}

func (t *Table) valid(a Term) bool {
	if a == False || a == True {
		return true
	}
	return a >= 2 && int(a) < t.eng.size()
}

func (t *Table) checked(op string, terms ...Term) bool {
	for _, a := range terms {
		if !t.valid(a) {
			t.fail(op, "Term %d does not belong to this table", a)
			return false
		}
	}
	return true
}

// mkNode applies the reduction rule (return low when low==high) before
// inserting into the unique table, as required for canonicity.
func (t *Table) mkNode(level int32, lo, hi Term) Term {
	id, err := t.eng.mk(level, lo, hi)
	if err != nil {
		t.err = newProgrammingError("mkNode", "%s", err)
		return -1
	}
	if s := t.eng.size(); s > t.memoSizedFor {
		if t.memoSizedFor > 0 {
			t.logger.Trace("node table resized", "before", t.memoSizedFor, "after", s)
		}
		if t.cfg.cacheratio > 0 {
			t.memo.resize(s * t.cfg.cacheratio / 100)
		}
		t.memoSizedFor = s
	}
	return id
}

// Not returns the negation of a.
func (t *Table) Not(a Term) Term {
	if !t.checked("Not", a) {
		return -1
	}
	return t.not(a)
}

func (t *Table) not(a Term) Term {
	if a == False {
		return True
	}
	if a == True {
		return False
	}
	if cached, ok := t.memo.not.Get(a); ok {
		return cached
	}
	lo := t.not(t.eng.low(a))
	hi := t.not(t.eng.high(a))
	res := t.mkNode(t.eng.level(a), lo, hi)
	t.memo.not.Add(a, res)
	return res
}

// Apply performs the binary operation op on a and b, using Bryant's
// recursion: descend on the smaller top variable of the two operands,
// memoized by (op, a, b), with commutative operators canonicalized so a<=b
// before the lookup.
func (t *Table) Apply(op Operator, a, b Term) Term {
	if op == opNot {
		return t.fail("Apply", "opNot is unary and must not be used in Apply")
	}
	if !t.checked("Apply", a, b) {
		return -1
	}
	return t.apply(op, a, b)
}

func (t *Table) apply(op Operator, a, b Term) Term {
	if a < 2 && b < 2 {
		return Term(opres[op][a][b])
	}
	k := applyKey{op: op, a: a, b: b}
	if commutative(op) && a > b {
		k.a, k.b = b, a
	}
	if cached, ok := t.memo.apply.Get(k); ok {
		return cached
	}
	la, lb := t.topLevel(a), t.topLevel(b)
	var res Term
	switch {
	case la == lb:
		lo := t.apply(op, t.eng.low(a), t.eng.low(b))
		hi := t.apply(op, t.eng.high(a), t.eng.high(b))
		res = t.mkNode(la, lo, hi)
	case la < lb:
		lo := t.apply(op, t.eng.low(a), b)
		hi := t.apply(op, t.eng.high(a), b)
		res = t.mkNode(la, lo, hi)
	default:
		lo := t.apply(op, a, t.eng.low(b))
		hi := t.apply(op, a, t.eng.high(b))
		res = t.mkNode(lb, lo, hi)
	}
	t.memo.apply.Add(k, res)
	return res
}

// topLevel returns the level of a Term, using the fixed varnum sentinel for
// the two constants so they always compare as "after" every real variable.
func (t *Table) topLevel(a Term) int32 {
	if a == False || a == True {
		return int32(t.eng.varnum())
	}
	return t.eng.level(a)
}

// Ite computes the if-then-else of (f,g,h): (f /\ g) \/ (!f /\ h), in one
// pass rather than composing three Apply calls.
func (t *Table) Ite(f, g, h Term) Term {
	if !t.checked("Ite", f, g, h) {
		return -1
	}
	return t.ite(f, g, h)
}

func (t *Table) ite(f, g, h Term) Term {
	switch {
	case f == True:
		return g
	case f == False:
		return h
	case g == h:
		return g
	case g == True && h == False:
		return f
	case g == False && h == True:
		return t.not(f)
	}
	k := iteKey{f, g, h}
	if cached, ok := t.memo.ite.Get(k); ok {
		return cached
	}
	top := min3(t.topLevel(f), t.topLevel(g), t.topLevel(h))
	cofactor := func(x Term) (lo, hi Term) {
		if t.topLevel(x) != top {
			return x, x
		}
		return t.eng.low(x), t.eng.high(x)
	}
	flo, fhi := cofactor(f)
	glo, ghi := cofactor(g)
	hlo, hhi := cofactor(h)
	lo := t.ite(flo, glo, hlo)
	hi := t.ite(fhi, ghi, hhi)
	res := t.mkNode(top, lo, hi)
	t.memo.ite.Add(k, res)
	return res
}

func min3(a, b, c int32) int32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Restrict substitutes the constant b for variable v in a.
func (t *Table) Restrict(a Term, v Var, b bool) Term {
	if !t.checked("Restrict", a) {
		return -1
	}
	if int(v) >= t.eng.varnum() {
		return t.fail("Restrict", "variable index %d out of range [0,%d)", v, t.eng.varnum())
	}
	return t.restrict(a, v, b)
}

func (t *Table) restrict(a Term, v Var, b bool) Term {
	if a == False || a == True {
		return a
	}
	lvl := t.eng.level(a)
	if lvl > int32(v) {
		return a
	}
	if lvl == int32(v) {
		if b {
			return t.eng.high(a)
		}
		return t.eng.low(a)
	}
	k := restrictKey{a: a, v: v, b: b}
	if cached, ok := t.memo.restrict.Get(k); ok {
		return cached
	}
	lo := t.restrict(t.eng.low(a), v, b)
	hi := t.restrict(t.eng.high(a), v, b)
	res := t.mkNode(lvl, lo, hi)
	t.memo.restrict.Add(k, res)
	return res
}

// Substitute replaces variable v in a with the result of Term s, i.e. it
// computes the function x -> a(x)[v := s(x)]. This equals
// Ite(s, Restrict(a,v,true), Restrict(a,v,false)), but we memoize the whole
// composite operation directly by (a,v,s) instead of relying only on the
// memoization of its three constituent calls.
func (t *Table) Substitute(a Term, v Var, s Term) Term {
	if !t.checked("Substitute", a, s) {
		return -1
	}
	if int(v) >= t.eng.varnum() {
		return t.fail("Substitute", "variable index %d out of range [0,%d)", v, t.eng.varnum())
	}
	k := substKey{a: a, v: v, s: s}
	if cached, ok := t.memo.substitute.Get(k); ok {
		return cached
	}
	r1 := t.restrict(a, v, true)
	r0 := t.restrict(a, v, false)
	res := t.ite(s, r1, r0)
	t.memo.substitute.Add(k, res)
	return res
}

// Valuate applies Restrict for every (variable, value) pair in partial and
// returns whatever Term remains: True, False, or a non-constant Term
// standing for "undetermined given this partial assignment". Mapping that
// result to a three-valued {True,False,Undec} is the adf package's job: an
// undecided statement is simply its variable left unsubstituted.
func (t *Table) Valuate(a Term, partial map[Var]bool) Term {
	if !t.checked("Valuate", a) {
		return -1
	}
	res := a
	for v, b := range partial {
		res = t.restrict(res, v, b)
		if res == False || res == True {
			return res
		}
	}
	return res
}

// CountModels returns the number of satisfying assignments of a over the
// variables in universe, using arbitrary-precision arithmetic. universe
// names the full set of variables under consideration (typically every
// registered variable); variables skipped on a path contribute a factor of
// 2 per skipped level, following github.com/dalzilio/rudd's Satcount. This
// is the lazy counting mode: it walks the BDD on demand rather than reading
// a counter maintained at node-insertion time (see PathCount / ModelCount
// for the ad-hoc mode).
func (t *Table) CountModels(a Term, universe []Var) *big.Int {
	if !t.checked("CountModels", a) {
		return big.NewInt(0)
	}
	n := int32(len(universe))
	if a == False {
		return big.NewInt(0)
	}
	if a == True {
		res := big.NewInt(1)
		return res.Lsh(res, uint(n))
	}
	memo := make(map[Term]*big.Int)
	var rec func(Term) *big.Int
	levelOrN := func(x Term) int32 {
		if x == False || x == True {
			return n
		}
		return t.eng.level(x)
	}
	rec = func(x Term) *big.Int {
		if x == False {
			return big.NewInt(0)
		}
		if x == True {
			return big.NewInt(1)
		}
		if v, ok := memo[x]; ok {
			return v
		}
		lvl := t.eng.level(x)
		lo, hi := t.eng.low(x), t.eng.high(x)
		scaledLo := new(big.Int).Lsh(rec(lo), uint(levelOrN(lo)-lvl-1))
		scaledHi := new(big.Int).Lsh(rec(hi), uint(levelOrN(hi)-lvl-1))
		sum := new(big.Int).Add(scaledLo, scaledHi)
		memo[x] = sum
		return sum
	}
	res := rec(a)
	res.Lsh(res, uint(t.eng.level(a)))
	return res
}

// PathCount returns the number of paths from a to True, as maintained
// per-node at insertion time. It requires the Table to have been built with
// AdHocCounting(true); otherwise it returns a ProgrammingError.
func (t *Table) PathCount(a Term) (*big.Int, error) {
	path, _ := t.eng.countingEnabled()
	if !path {
		return nil, newProgrammingError("PathCount", "table was not built with AdHocCounting")
	}
	if !t.valid(a) {
		return nil, newProgrammingError("PathCount", "Term %d does not belong to this table", a)
	}
	return t.eng.pathCount(a), nil
}

// ModelCount returns the number of satisfying assignments of a over the full
// variable set, as maintained per-node at insertion time. It requires the
// Table to have been built with AdHocModelCounting(true).
func (t *Table) ModelCount(a Term) (*big.Int, error) {
	_, model := t.eng.countingEnabled()
	if !model {
		return nil, newProgrammingError("ModelCount", "table was not built with AdHocModelCounting")
	}
	if !t.valid(a) {
		return nil, newProgrammingError("ModelCount", "Term %d does not belong to this table", a)
	}
	return t.eng.modelCount(a), nil
}

// Stats returns a human-readable summary of node table occupancy and memo
// cache sizes, mirroring github.com/dalzilio/rudd's Stats/String methods.
func (t *Table) Stats() string {
	s := t.eng.stats()
	s += fmt.Sprintf("memo sizes: not=%d apply=%d ite=%d restrict=%d substitute=%d\n",
		t.memo.not.Len(), t.memo.apply.Len(), t.memo.ite.Len(), t.memo.restrict.Len(), t.memo.substitute.Len())
	t.logger.Debug("table stats", "nodes", t.eng.size(), "apply_memo", t.memo.apply.Len(), "ite_memo", t.memo.ite.Len())
	return s
}

// EngineKind reports which engine backs this Table.
func (t *Table) EngineKind() EngineKind { return t.eng.kind() }

// CountingEnabled reports whether this Table was built with AdHocCounting
// and/or AdHocModelCounting, for callers (such as solver heuristics) that
// need the ad-hoc counters and must fail fast instead of silently reading
// zeros from PathCount/ModelCount.
func (t *Table) CountingEnabled() (path, model bool) { return t.eng.countingEnabled() }
