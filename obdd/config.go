// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import hclog "github.com/hashicorp/go-hclog"

// EngineKind selects which of the two concrete node-table engines backs a
// Table. Both implement the same internal operation set (see doc.go); the
// choice is a pure performance/footprint trade-off, never a semantic one.
type EngineKind uint8

const (
	// HashmapEngine stores nodes in a slice and uses a Go map keyed by a
	// byte-encoded (level,low,high) triple as the unicity table. This is the
	// default: simplest to reason about, and the only engine Export/Import
	// support.
	HashmapEngine EngineKind = iota
	// ArrayEngine stores nodes in a slice sized to a prime and resolves
	// collisions with hash/next chains threaded through the same slice, in
	// the style of the BuDDy C library. Typically more memory-efficient at
	// large scale.
	ArrayEngine
)

func (k EngineKind) String() string {
	switch k {
	case HashmapEngine:
		return "hashmap"
	case ArrayEngine:
		return "array"
	default:
		return "unknown"
	}
}

// config holds the resolved value of every construction-time option.
type config struct {
	varnum          int
	nodesize        int
	cachesize       int
	cacheratio      int
	maxnodesize     int
	maxnodeincrease int
	minfreenodes    int
	engine          EngineKind
	adHocCounting   bool
	adHocModel      bool
	logger          hclog.Logger
}

const (
	defaultMinFreeNodes    = 20
	defaultMaxNodeIncrease = 1 << 20
	defaultCacheSize       = 10000
)

func defaultConfig(varnum int) *config {
	return &config{
		varnum:          varnum,
		nodesize:        2*varnum + 2,
		cachesize:       defaultCacheSize,
		minfreenodes:    defaultMinFreeNodes,
		maxnodeincrease: defaultMaxNodeIncrease,
		engine:          HashmapEngine,
		logger:          hclog.NewNullLogger(),
	}
}

// Option configures a Table at construction time (functional-options
// pattern, generalized from github.com/dalzilio/rudd's config.go).
type Option func(*config)

// Nodesize sets a preferred initial size for the node table. By default the
// table is sized to hold the two constants and the registered variables.
func Nodesize(size int) Option {
	return func(c *config) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize bounds the total number of nodes the table may grow to. The
// zero value (default) means no limit.
func Maxnodesize(size int) Option {
	return func(c *config) { c.maxnodesize = size }
}

// Maxnodeincrease bounds how many nodes a single resize may add. The default
// is about one million; zero means no limit.
func Maxnodeincrease(size int) Option {
	return func(c *config) { c.maxnodeincrease = size }
}

// Minfreenodes sets the percentage of free nodes that must remain after
// insertion before a resize is triggered. The default is 20.
func Minfreenodes(ratio int) Option {
	return func(c *config) { c.minfreenodes = ratio }
}

// Cachesize sets the initial capacity of each memo cache (not, apply, ite,
// restrict, substitute).
func Cachesize(size int) Option {
	return func(c *config) { c.cachesize = size }
}

// Cacheratio, when non-zero, makes every memo cache grow to ratio percent of
// the node table's capacity whenever the node table resizes.
func Cacheratio(ratio int) Option {
	return func(c *config) { c.cacheratio = ratio }
}

// Engine selects which node-table engine backs the Table.
func Engine(kind EngineKind) Option {
	return func(c *config) { c.engine = kind }
}

// AdHocCounting enables maintaining a path-count (paths to True) on every
// node at the moment it is inserted into the unique table, rather than
// computing it lazily on demand. Required by the MinModMinPathsMaxVarImp and
// MinModMaxVarImpMinPaths solver heuristics.
func AdHocCounting(enabled bool) Option {
	return func(c *config) { c.adHocCounting = enabled }
}

// AdHocModelCounting additionally maintains a model-count on every node at
// insertion time. Requires AdHocCounting; New reports a ConfigError if this
// is set without it, since mixing ad-hoc and lazy counting for the same
// Table would violate the counters' at-insertion invariant.
func AdHocModelCounting(enabled bool) Option {
	return func(c *config) { c.adHocModel = enabled }
}

// Logger sets the structured logger used for Trace-level resize events and
// Debug-level cache statistics. The default is a null logger, so logging
// calls are always safe to make but free when no logger is configured.
func Logger(l hclog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
