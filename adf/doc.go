// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package adf implements Abstract Dialectical Frameworks (ADFs) over the
shared Ordered Reduced Binary Decision Diagram substrate provided by
github.com/dalzilio/adfobdd/obdd.

An ADF is a set of statements, each given a propositional acceptance
condition over the other statements' truth values. New compiles every
acceptance condition into one shared obdd.Table, giving every statement a BDD
variable and every formula a Term, so that sub-formulas shared between
statements are only ever built once.

Three-valued reasoning

Reasoning about an ADF assigns every statement one of three Values: True,
False or Undec (undecided). An Interp is such an assignment, one Value per
statement, indexed the same way as obdd.Var.

Gamma is the characteristic operator: given an Interp, it restricts every
acceptance condition by the statements already decided and re-valuates it,
producing the next Interp. Grounded iterates Gamma from the all-Undec
interpretation to its least fixed point. Complete enumerates every
three-valued fixed point of Gamma reachable above the grounded
interpretation, by closing Gamma to a local fixpoint and then branching on
any statement still left Undec.

A complete interpretation that happens to be two-valued is a candidate
stable model; it is actually stable when the grounded interpretation of its
reduct (every statement it makes false pinned to the constant ⊥, every other
statement keeping its real acceptance condition) equals the candidate
itself. StableNaive filters Complete's output this way; it is a reference
implementation, not meant for anything beyond small instances or testing
StableSolve against.

No-good search

StableSolve instead searches directly over total assignments with a
simplified conflict-driven procedure: propagate forces a statement's value
whenever its acceptance condition is decided by the current partial
assignment (checked for every statement on every pass, since a previously
decided statement can later be contradicted once enough other statements
settle), and whenever a learned NoGood has exactly one unassigned literal
left. A conflict — a statement, or a NoGood, contradicted outright — learns
the current decision sequence as a new NoGood and backjumps one level, and
reaching a total assignment always learns a NoGood blocking that exact
assignment, whether or not it turned out stable, so every total assignment
is visited at most once and the search is guaranteed to terminate. A
Heuristic picks the next unassigned statement to branch on; StableSolve
always tries True before False.

StableSolveAsync runs the same search on its own goroutine and streams each
stable model found over a channel, honoring ctx cancellation both between
decisions and while a model is pending delivery, for callers that want to
consume results concurrently with the search instead of through a callback.
*/
package adf
