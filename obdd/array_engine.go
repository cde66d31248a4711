// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"math/big"
)

// anode is a node as stored by the array engine: the unicity table is folded
// into the same slice as the nodes themselves, via hash/next collision
// chains, in the style of the BuDDy C library.
type anode struct {
	level int32
	low   Term
	high  Term
	hash  Term // head of the collision chain hashing to this slot
	next  Term // next node in this slot's collision chain, 0 if none
	pc    *big.Int
	mc    *big.Int
}

// arrayEngine is the BuDDy-style engine: nodes are stored in an array sized
// to a prime, and the unique table is the hash/next chains threaded through
// that same array rather than a separate map. Adapted from
// github.com/dalzilio/rudd's "buddy"-tag backend, minus reference counting
// and garbage collection (see hashmap_engine.go for why).
type arrayEngine struct {
	nodes       []anode
	used        int
	varn        int
	varnodes    [][2]Term
	maxnodesize int
	maxnodeinc  int
	minfree     int
	adHoc       bool
	adHocModel  bool
}

func newArrayEngine(c *config) *arrayEngine {
	size := primeGte(c.nodesize)
	e := &arrayEngine{
		nodes:       make([]anode, size),
		used:        2,
		maxnodesize: c.maxnodesize,
		maxnodeinc:  c.maxnodeincrease,
		minfree:     c.minfreenodes,
		adHoc:       c.adHocCounting,
		adHocModel:  c.adHocModel,
	}
	e.nodes[False] = anode{level: int32(c.varnum)}
	e.nodes[True] = anode{level: int32(c.varnum)}
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

func (e *arrayEngine) addVariable(lvl int32) error {
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

func (e *arrayEngine) varnum() int { return e.varn }

func (e *arrayEngine) setVarnum(n int) error {
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

func (e *arrayEngine) ithvar(i Var) Term  { return e.varnodes[i][0] }
func (e *arrayEngine) nithvar(i Var) Term { return e.varnodes[i][1] }

func (e *arrayEngine) level(t Term) int32 { return e.nodes[t].level }
func (e *arrayEngine) low(t Term) Term    { return e.nodes[t].low }
func (e *arrayEngine) high(t Term) Term   { return e.nodes[t].high }

func (e *arrayEngine) nodehash(level int32, lo, hi Term) int {
	return _TRIPLE(int(level), int(lo), int(hi), len(e.nodes))
}

func apcOf(n *anode, t Term) *big.Int {
	if t == False {
		return big.NewInt(0)
	}
	if t == True {
		return big.NewInt(1)
	}
	return n.pc
}

// amcOf is the level-relative model count of a child: the number of models
// over the variables at or below the child's own level.
func amcOf(n *anode, t Term) *big.Int {
	if t == False {
		return big.NewInt(0)
	}
	if t == True {
		return big.NewInt(1)
	}
	return n.mc
}

func (e *arrayEngine) mk(level int32, lo, hi Term) (Term, error) {
	if lo == hi {
		return lo, nil
	}
	h := e.nodehash(level, lo, hi)
	for chain := e.nodes[h].hash; chain != 0; chain = e.nodes[chain].next {
		n := &e.nodes[chain]
		if n.level == level && n.low == lo && n.high == hi {
			return chain, nil
		}
	}
	if e.used == len(e.nodes) {
		if err := e.resize(); err != nil {
			return -1, err
		}
		h = e.nodehash(level, lo, hi)
	} else if e.minfree > 0 && (len(e.nodes)-e.used)*100 < e.minfree*len(e.nodes) {
		// grow early while the free fraction is below minfree; a refused
		// early grow is not fatal while slots remain.
		if e.resize() == nil {
			h = e.nodehash(level, lo, hi)
		}
	}
	id := Term(e.used)
	e.used++
	// Slot id does double duty: its hash field is the head of hash-class
	// id's collision chain, so the node data is written field by field and
	// hash is left alone (this also keeps h == id self-chaining correct).
	slot := &e.nodes[id]
	slot.level = level
	slot.low = lo
	slot.high = hi
	if e.adHoc {
		slot.pc = new(big.Int).Add(apcOf(&e.nodes[lo], lo), apcOf(&e.nodes[hi], hi))
		if e.adHocModel {
			slot.mc = e.modelCountAt(level, lo, hi)
		}
	}
	slot.next = e.nodes[h].hash
	e.nodes[h].hash = id
	return id, nil
}

func (e *arrayEngine) modelCountAt(level int32, lo, hi Term) *big.Int {
	res := new(big.Int)
	skip := func(child Term) *big.Int {
		var childLevel int32
		if child == False || child == True {
			childLevel = int32(e.varn)
		} else {
			childLevel = e.nodes[child].level
		}
		factor := new(big.Int).SetBit(new(big.Int), int(childLevel-level-1), 1)
		return factor.Mul(factor, amcOf(&e.nodes[child], child))
	}
	res.Add(skip(lo), skip(hi))
	return res
}

func (e *arrayEngine) size() int { return len(e.nodes) }

func (e *arrayEngine) resize() error {
	old := len(e.nodes)
	if e.maxnodesize > 0 && old >= e.maxnodesize {
		return errMemory
	}
	next := old * 2
	if e.maxnodeinc > 0 && next > old+e.maxnodeinc {
		next = old + e.maxnodeinc
	}
	if e.maxnodesize > 0 && next >= e.maxnodesize {
		// rounding up past the configured bound is not allowed, so round
		// the bound itself down to a prime instead.
		next = primeLte(e.maxnodesize)
	} else {
		next = primeGte(next)
	}
	if next <= old {
		return errMemory
	}
	grown := make([]anode, next)
	copy(grown, e.nodes)
	for i := range grown {
		grown[i].hash = 0
	}
	e.nodes = grown
	// rehash every live node into the freshly sized chains.
	for id := e.used - 1; id > 1; id-- {
		h := e.nodehash(e.nodes[id].level, e.nodes[id].low, e.nodes[id].high)
		e.nodes[id].next = e.nodes[h].hash
		e.nodes[h].hash = Term(id)
	}
	return nil
}

func (e *arrayEngine) allnodes(f func(id int, level int32, lo, hi Term) bool) {
	for id := 2; id < e.used; id++ {
		n := e.nodes[id]
		if !f(id, n.level, n.low, n.high) {
			return
		}
	}
}

func (e *arrayEngine) pathCount(t Term) *big.Int {
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
func (e *arrayEngine) modelCount(t Term) *big.Int {
	if t == False {
		return big.NewInt(0)
	}
	if t == True {
		return new(big.Int).Lsh(big.NewInt(1), uint(e.varn))
	}
	return new(big.Int).Lsh(e.nodes[t].mc, uint(e.nodes[t].level))
}

func (e *arrayEngine) countingEnabled() (path, model bool) { return e.adHoc, e.adHocModel }

func (e *arrayEngine) kind() EngineKind { return ArrayEngine }

func (e *arrayEngine) stats() string {
	return fmt.Sprintf("engine: array, allocated: %d, used: %d (%.1f%%)\n",
		len(e.nodes), e.used, 100*float64(e.used)/float64(len(e.nodes)))
}
