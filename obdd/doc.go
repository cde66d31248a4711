// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package obdd implements a single, shared Ordered Reduced Binary Decision
Diagram (OBDD) used as the symbolic substrate of the adf package. It is a
direct generalization of the BDD data structures and algorithms found in
github.com/dalzilio/rudd: a canonical unique table of (variable, low, high)
triples, a Bryant-style memoized apply, and the if-then-else (ite) construction
primitive, together with restrict, substitute and valuate.

Basics

Each Table has a fixed number of variables, set when it is created with New
and extendable later, each identified by an (integer) index in [0..Varnum)
called a level. A Term is an opaque handle into the Table; Term 0 (False) and
Term 1 (True) are the two constants and are never reallocated.

Unlike rudd, a Table never reclaims nodes during its lifetime: an ADF's
acceptance conditions are compiled once and the resulting Terms, along with
every intermediate node built while compiling or reasoning about them, must
stay valid for the whole session. There is therefore no garbage collector, no
reference counting and no finalizer dance here; the table only ever grows.

Two engines

A Table is backed by one of two engines, chosen with the Engine option, that
implement the same internal operation set: a hashmap engine (the default),
using a Go map keyed by a byte-encoded triple as a unicity table, and an array
engine, using an array of nodes sized to a prime (reallocated larger when it
fills) and linked through hash/next collision chains, in the style of the
BuDDy C library. Every algorithm
in this package (not, apply, ite, restrict, substitute, counting) is written
once against the shared engine interface, so the two engines are
interchangeable and neither algorithm needs to know which one is in use.
*/
package obdd
