// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import (
	hclog "github.com/hashicorp/go-hclog"

	"github.com/dalzilio/adfobdd/obdd"
)

// Order selects how statement labels are assigned BDD variable indices.
type Order uint8

const (
	// OrderDeclaration keeps the order statements first appear in the
	// declaration list (the default).
	OrderDeclaration Order = iota
	// OrderLexicographic sorts labels byte-wise.
	OrderLexicographic
	// OrderAlphanumeric sorts labels treating embedded digit runs as
	// numbers, so "a2" precedes "a10".
	OrderAlphanumeric
)

type config struct {
	order     Order
	heuristic Heuristic
	logger    hclog.Logger
	tableOpts []obdd.Option
}

func defaultConfig() *config {
	return &config{
		order:     OrderDeclaration,
		heuristic: Simple{},
		logger:    hclog.NewNullLogger(),
	}
}

// Option configures an ADF at construction time.
type Option func(*config)

// VariableOrder chooses how statement labels map to BDD variable indices.
func VariableOrder(o Order) Option {
	return func(c *config) { c.order = o }
}

// SolverHeuristic selects the branching heuristic used by StableSolve and
// StableSolveAsync. The default is Simple{}.
func SolverHeuristic(h Heuristic) Option {
	return func(c *config) {
		if h != nil {
			c.heuristic = h
		}
	}
}

// Logger sets the structured logger used for Trace-level solver tracing
// (decisions, learned no-goods, backjumps). The default is a null logger.
func Logger(l hclog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// TableOptions passes construction options straight through to the
// underlying obdd.Table, e.g. obdd.Engine or obdd.AdHocCounting. The
// counting-dependent heuristics (MinModMinPathsMaxVarImp,
// MinModMaxVarImpMinPaths) require both obdd.AdHocCounting(true) and
// obdd.AdHocModelCounting(true) to be passed here, or New returns a
// ConstructionError.
func TableOptions(opts ...obdd.Option) Option {
	return func(c *config) { c.tableOpts = append(c.tableOpts, opts...) }
}
