// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import "math/big"

// engine is the operation set shared by both concrete node-table
// implementations. Every algorithm above this layer (apply, ite, restrict,
// substitute, valuate, counting) is written once against this interface, so
// the solver and enumerators above never depend on a specific backend.
type engine interface {
	varnum() int
	setVarnum(n int) error
	ithvar(i Var) Term
	nithvar(i Var) Term
	level(t Term) int32
	low(t Term) Term
	high(t Term) Term
	mk(level int32, lo, hi Term) (Term, error)
	size() int
	allnodes(f func(id int, level int32, lo, hi Term) bool)
	pathCount(t Term) *big.Int
	modelCount(t Term) *big.Int
	countingEnabled() (path, model bool)
	kind() EngineKind
	stats() string
}

func newEngine(c *config) engine {
	switch c.engine {
	case ArrayEngine:
		return newArrayEngine(c)
	default:
		return newHashmapEngine(c)
	}
}
