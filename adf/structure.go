// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import (
	"fmt"

	hclog "github.com/hashicorp/go-hclog"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/dalzilio/adfobdd/obdd"
)

// ADF holds the variable registry, one shared BDD Table, and the compiled
// root term for every statement's acceptance condition (C5). Once New
// returns, the registry and roots are immutable; the Table keeps growing as
// Gamma/enumeration/solving exercise it.
type ADF struct {
	reg    *registry
	tab    *obdd.Table
	roots  []obdd.Term
	acs    []Expr
	logger hclog.Logger
	cfg    *config
}

// New builds an ADF from an ordered declaration list. Every statement must
// have a unique, non-empty name and exactly one acceptance condition;
// violations are aggregated and returned together as a ConstructionError.
// All acceptance conditions compile into one shared obdd.Table (never one
// Table per statement), so sub-formulas are reused across statements.
func New(decls []Declaration, opts ...Option) (*ADF, error) {
	if len(decls) == 0 {
		return nil, newConstructionError(fmt.Errorf("no statements declared"))
	}
	c := defaultConfig()
	for _, o := range opts {
		o(c)
	}

	merr := &multierror.Error{}
	seen := make(map[string]int, len(decls))
	for i, d := range decls {
		if d.Name == "" {
			merr = multierror.Append(merr, fmt.Errorf("statement %d has an empty name", i))
			continue
		}
		if prev, ok := seen[d.Name]; ok {
			merr = multierror.Append(merr, fmt.Errorf("statement %q declared more than once (positions %d and %d)", d.Name, prev, i))
			continue
		}
		seen[d.Name] = i
		if d.AC == nil {
			merr = multierror.Append(merr, fmt.Errorf("statement %q has no acceptance condition", d.Name))
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, &ConstructionError{merr: merr}
	}

	reg := newRegistry(decls, c.order)
	tab, err := obdd.New(len(decls), c.tableOpts...)
	if err != nil {
		return nil, newProgrammingError("New", "%s", err)
	}

	if needsCounting(c.heuristic) {
		path, model := tab.CountingEnabled()
		if !path || !model {
			return nil, newConstructionError(fmt.Errorf(
				"heuristic %T requires adf.TableOptions(obdd.AdHocCounting(true), obdd.AdHocModelCounting(true))", c.heuristic))
		}
	}

	byName := make(map[string]Expr, len(decls))
	for _, d := range decls {
		byName[d.Name] = d.AC
	}

	cmp := &compiler{reg: reg, tab: tab, merr: &multierror.Error{}}
	acs := make([]Expr, reg.len())
	roots := make([]obdd.Term, reg.len())
	for i, name := range reg.names {
		ac := byName[name]
		acs[i] = ac
		roots[i] = cmp.compile(ac)
	}
	if err := cmp.merr.ErrorOrNil(); err != nil {
		return nil, &ConstructionError{merr: cmp.merr}
	}

	return &ADF{reg: reg, tab: tab, roots: roots, acs: acs, logger: c.logger, cfg: c}, nil
}

func needsCounting(h Heuristic) bool {
	switch h.(type) {
	case MinModMinPathsMaxVarImp, MinModMaxVarImpMinPaths:
		return true
	default:
		return false
	}
}

// Statements returns the statement labels in BDD variable-index order:
// Statements()[i] is the name of obdd.Var(i).
func (a *ADF) Statements() []string { return a.reg.statements() }

// Table returns the single BDD Table shared by every acceptance condition.
func (a *ADF) Table() *obdd.Table { return a.tab }

// Root returns the compiled acceptance-condition Term for statement s.
func (a *ADF) Root(s string) (obdd.Term, bool) {
	v, ok := a.reg.varOf(s)
	if !ok {
		return 0, false
	}
	return a.roots[v], true
}

// AcceptanceCondition returns the original acceptance-condition expression
// for statement s, as it was passed to New.
func (a *ADF) AcceptanceCondition(s string) (Expr, bool) {
	v, ok := a.reg.varOf(s)
	if !ok {
		return nil, false
	}
	return a.acs[v], true
}

// VarOf returns the BDD variable index assigned to statement s, the inverse
// of Statements()[v].
func (a *ADF) VarOf(s string) (obdd.Var, bool) { return a.reg.varOf(s) }

// RestrictAll restricts every root by the decided positions of i, returning
// one partially-evaluated Term per statement in variable-index order.
func (a *ADF) RestrictAll(i Interp) []obdd.Term {
	partial := decidedPositions(i)
	out := make([]obdd.Term, len(a.roots))
	for idx, root := range a.roots {
		out[idx] = a.tab.Valuate(root, partial)
	}
	return out
}

// Compare implements the package-level ≤_i ordering on Interps.
func (a *ADF) Compare(x, y Interp) (PartialOrder, bool) { return Compare(x, y) }

func decidedPositions(i Interp) map[obdd.Var]bool {
	partial := make(map[obdd.Var]bool, len(i))
	for idx, v := range i {
		if v != Undec {
			partial[obdd.Var(idx)] = v == True
		}
	}
	return partial
}

// Consequence returns the three-valued reading of a partially evaluated
// acceptance condition: True or False when restriction collapsed it to a
// constant, Undec while it still depends on undecided statements.
func Consequence(t obdd.Term) Value { return termToValue(t) }

func termToValue(t obdd.Term) Value {
	switch t {
	case obdd.True:
		return True
	case obdd.False:
		return False
	default:
		return Undec
	}
}
