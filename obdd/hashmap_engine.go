// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"math/big"
)

// hnode is a node as stored by the hashmap engine. pc/mc are non-nil only
// when the table has ad-hoc (path/model) counting enabled; when present they
// are computed once, before the node is added to the unique table, and never
// mutated afterwards.
type hnode struct {
	level int32
	low   Term
	high  Term
	pc    *big.Int
	mc    *big.Int
}

// hashmapEngine is the default engine: a slice of nodes plus a Go map keyed
// by a byte-encoded (level,low,high) triple acting as the unicity table.
// Adapted from github.com/dalzilio/rudd's "hudd" backend, minus reference
// counting and garbage collection: an ADF's Table never reclaims a node once
// allocated, so the engine is a pure bump allocator that grows by
// doubling (bounded by maxnodeincrease/maxnodesize) instead of a free-list.
type hashmapEngine struct {
	nodes       []hnode
	unique      map[[12]byte]Term
	used        int
	varn        int
	varnodes    [][2]Term // [lo=False,hi=True] and [lo=True,hi=False] per variable
	maxnodesize int
	maxnodeinc  int
	minfree     int
	adHoc       bool
	adHocModel  bool
}

func newHashmapEngine(c *config) *hashmapEngine {
	e := &hashmapEngine{
		nodes:       make([]hnode, 2, c.nodesize),
		unique:      make(map[[12]byte]Term, c.nodesize),
		used:        2,
		maxnodesize: c.maxnodesize,
		maxnodeinc:  c.maxnodeincrease,
		minfree:     c.minfreenodes,
		adHoc:       c.adHocCounting,
		adHocModel:  c.adHocModel,
	}
	// bddfalse and bddtrue are not stored in nodes (they are the implicit
	// constants 0 and 1), but we keep placeholder entries so level()/low()/
	// high() are total functions.
	e.nodes[False] = hnode{level: int32(c.varnum)}
	e.nodes[True] = hnode{level: int32(c.varnum)}
	// varn must hold its final value before any node is created: the model
	// counters computed in mk are relative to the full variable set.
	e.varn = c.varnum
	e.varnodes = make([][2]Term, 0, c.varnum)
	for i := 0; i < c.varnum; i++ {
		if err := e.addVariable(int32(i)); err != nil {
			return nil
		}
	}
	return e
}

func (e *hashmapEngine) addVariable(lvl int32) error {
	v0, err := e.mk(lvl, False, True)
	if err != nil {
		return err
	}
	v1, err := e.mk(lvl, True, False)
	if err != nil {
		return err
	}
	e.varnodes = append(e.varnodes, [2]Term{v0, v1})
	return nil
}

func (e *hashmapEngine) varnum() int { return e.varn }

func (e *hashmapEngine) setVarnum(n int) error {
	if n < e.varn {
		return fmt.Errorf("cannot decrease varnum from %d to %d", e.varn, n)
	}
	if n == e.varn {
		return nil
	}
	if e.adHocModel {
		// every stored model count is relative to the variable set it was
		// inserted under; growing the set would silently invalidate them.
		return fmt.Errorf("cannot extend the variable set of a table built with ad-hoc model counting")
	}
	e.varn = n
	for len(e.varnodes) < n {
		if err := e.addVariable(int32(len(e.varnodes))); err != nil {
			return err
		}
	}
	return nil
}

func (e *hashmapEngine) ithvar(i Var) Term  { return e.varnodes[i][0] }
func (e *hashmapEngine) nithvar(i Var) Term { return e.varnodes[i][1] }

func (e *hashmapEngine) level(t Term) int32 { return e.nodes[t].level }
func (e *hashmapEngine) low(t Term) Term    { return e.nodes[t].low }
func (e *hashmapEngine) high(t Term) Term   { return e.nodes[t].high }

func key(level int32, lo, hi Term) [12]byte {
	var b [12]byte
	b[0], b[1], b[2], b[3] = byte(level), byte(level>>8), byte(level>>16), byte(level>>24)
	b[4], b[5], b[6], b[7] = byte(lo), byte(lo>>8), byte(lo>>16), byte(lo>>24)
	b[8], b[9], b[10], b[11] = byte(hi), byte(hi>>8), byte(hi>>16), byte(hi>>24)
	return b
}

func pcOf(n *hnode, t Term) *big.Int {
	if t == False {
		return big.NewInt(0)
	}
	if t == True {
		return big.NewInt(1)
	}
	return n.pc
}

// mcOf is the level-relative model count of a child: the number of models
// over the variables at or below the child's own level.
func mcOf(n *hnode, t Term) *big.Int {
	if t == False {
		return big.NewInt(0)
	}
	if t == True {
		return big.NewInt(1)
	}
	return n.mc
}

func (e *hashmapEngine) mk(level int32, lo, hi Term) (Term, error) {
	if lo == hi {
		return lo, nil
	}
	k := key(level, lo, hi)
	if t, ok := e.unique[k]; ok {
		return t, nil
	}
	if e.used == len(e.nodes) {
		if err := e.resize(); err != nil {
			return -1, err
		}
	} else if e.minfree > 0 && (len(e.nodes)-e.used)*100 < e.minfree*len(e.nodes) {
		// grow early while the free fraction is below minfree; a refused
		// early grow is not fatal while slots remain.
		_ = e.resize()
	}
	id := Term(e.used)
	n := hnode{level: level, low: lo, high: hi}
	if e.adHoc {
		plo, phi := pcOf(&e.nodes[lo], lo), pcOf(&e.nodes[hi], hi)
		n.pc = new(big.Int).Add(plo, phi)
		if e.adHocModel {
			n.mc = e.modelCountAt(level, lo, hi)
		}
	}
	e.nodes[e.used] = n
	e.used++
	e.unique[k] = id
	return id, nil
}

// modelCountAt computes the level-relative model count of the node about to
// be created at level, given its already-computed children, scaled by one
// factor of 2 per variable skipped between level and each child's level.
// Mirrors github.com/dalzilio/rudd's satcount adjustment.
func (e *hashmapEngine) modelCountAt(level int32, lo, hi Term) *big.Int {
	res := new(big.Int)
	skip := func(child Term) *big.Int {
		var childLevel int32
		if child == False || child == True {
			childLevel = int32(e.varn)
		} else {
			childLevel = e.nodes[child].level
		}
		factor := new(big.Int).SetBit(new(big.Int), int(childLevel-level-1), 1)
		return factor.Mul(factor, mcOf(&e.nodes[child], child))
	}
	res.Add(skip(lo), skip(hi))
	return res
}

func (e *hashmapEngine) size() int { return len(e.nodes) }

func (e *hashmapEngine) resize() error {
	old := len(e.nodes)
	if e.maxnodesize > 0 && old >= e.maxnodesize {
		return errMemory
	}
	next := old * 2
	if e.maxnodeinc > 0 && next > old+e.maxnodeinc {
		next = old + e.maxnodeinc
	}
	if e.maxnodesize > 0 && next > e.maxnodesize {
		next = e.maxnodesize
	}
	if next <= old {
		return errMemory
	}
	grown := make([]hnode, next)
	copy(grown, e.nodes)
	e.nodes = grown
	return nil
}

func (e *hashmapEngine) allnodes(f func(id int, level int32, lo, hi Term) bool) {
	for id := 2; id < e.used; id++ {
		n := e.nodes[id]
		if !f(id, n.level, n.low, n.high) {
			return
		}
	}
}

func (e *hashmapEngine) pathCount(t Term) *big.Int {
	if t == False {
		return big.NewInt(0)
	}
	if t == True {
		return big.NewInt(1)
	}
	return e.nodes[t].pc
}

// modelCount scales the stored level-relative counter up to the full
// variable set: every variable above the node's own level is free, doubling
// the count once per skipped level.
func (e *hashmapEngine) modelCount(t Term) *big.Int {
	if t == False {
		return big.NewInt(0)
	}
	if t == True {
		return new(big.Int).Lsh(big.NewInt(1), uint(e.varn))
	}
	return new(big.Int).Lsh(e.nodes[t].mc, uint(e.nodes[t].level))
}

func (e *hashmapEngine) countingEnabled() (path, model bool) { return e.adHoc, e.adHocModel }

func (e *hashmapEngine) kind() EngineKind { return HashmapEngine }

func (e *hashmapEngine) stats() string {
	return fmt.Sprintf("engine: hashmap, allocated: %d, used: %d (%.1f%%)\n",
		len(e.nodes), e.used, 100*float64(e.used)/float64(len(e.nodes)))
}
