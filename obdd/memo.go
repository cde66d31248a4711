// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import lru "github.com/hashicorp/golang-lru/v2"

// memoTables groups the memo caches used by Table's recursive operations.
// Unlike the unique table, these may be lossy: dropping an entry only costs
// recomputation, never correctness. They are backed by
// github.com/hashicorp/golang-lru/v2 rather
// than the hand-rolled fixed-size arrays of github.com/dalzilio/rudd, which
// gives genuine LRU eviction instead of a wholesale reset on every resize.
type memoTables struct {
	not        *lru.Cache[Term, Term]
	apply      *lru.Cache[applyKey, Term]
	ite        *lru.Cache[iteKey, Term]
	restrict   *lru.Cache[restrictKey, Term]
	substitute *lru.Cache[substKey, Term]
}

type applyKey struct {
	op   Operator
	a, b Term
}

type iteKey struct {
	f, g, h Term
}

type restrictKey struct {
	a Term
	v Var
	b bool
}

type substKey struct {
	a Term
	v Var
	s Term
}

func newMemoTables(size int) *memoTables {
	if size <= 0 {
		size = defaultCacheSize
	}
	m := &memoTables{}
	m.not, _ = lru.New[Term, Term](size)
	m.apply, _ = lru.New[applyKey, Term](size)
	m.ite, _ = lru.New[iteKey, Term](size)
	m.restrict, _ = lru.New[restrictKey, Term](size)
	m.substitute, _ = lru.New[substKey, Term](size)
	return m
}

// resize grows (or shrinks) every cache. Safe to call at any time: memo
// entries are pure caches of already-canonical results, so whatever Resize
// evicts only costs recomputation.
func (m *memoTables) resize(size int) {
	if size <= 0 {
		return
	}
	m.not.Resize(size)
	m.apply.Resize(size)
	m.ite.Resize(size)
	m.restrict.Resize(size)
	m.substitute.Resize(size)
}
