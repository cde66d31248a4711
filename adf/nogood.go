// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import "github.com/dalzilio/adfobdd/obdd"

// Literal is one (variable, polarity) pair inside a NoGood.
type Literal struct {
	V   obdd.Var
	Pos bool
}

// NoGood is a non-empty set of literals: no total assignment extending all
// of them participates in a stable model. Once added during a solve, a
// NoGood is immutable and lives only for that one invocation.
type NoGood []Literal

// SolveStats reports purely additive telemetry from one StableSolve
// invocation; it never changes which models are produced.
type SolveStats struct {
	Decisions int
	Conflicts int
	Learned   int
	Backjumps int
}
