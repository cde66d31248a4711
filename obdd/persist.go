// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"bufio"
	"encoding/gob"
	"io"
)

// persistVersion guards the on-disk format of Export/Import. Bump it on any
// incompatible change to dump below.
const persistVersion = 1

type dump struct {
	Version int
	Varnum  int
	AdHoc   bool
	Model   bool
	Nodes   []dumpNode
	Roots   []Term
}

type dumpNode struct {
	ID    Term
	Level int32
	Low   Term
	High  Term
}

// Export serializes every node of the table, in insertion order, together
// with roots, so that Import can rebuild an equivalent Table without
// recomputing them. Only
// the hashmap engine supports this; the array engine's hash/next chains are
// not worth carrying across a dump, and calling Export on an array-backed
// Table is a ProgrammingError.
func (t *Table) Export(w io.Writer, roots ...Term) error {
	if t.eng.kind() != HashmapEngine {
		return newProgrammingError("Export", "Export/Import is only supported by the hashmap engine")
	}
	if !t.checked("Export", roots...) {
		return t.err
	}
	path, model := t.eng.countingEnabled()
	d := dump{Version: persistVersion, Varnum: t.eng.varnum(), AdHoc: path, Model: model, Roots: append([]Term(nil), roots...)}
	t.eng.allnodes(func(id int, level int32, lo, hi Term) bool {
		d.Nodes = append(d.Nodes, dumpNode{ID: Term(id), Level: level, Low: lo, High: hi})
		return true
	})
	bw := bufio.NewWriter(w)
	if err := gob.NewEncoder(bw).Encode(&d); err != nil {
		return newProgrammingError("Export", "%s", err)
	}
	return bw.Flush()
}

// Import rebuilds a Table from a stream written by Export, returning the
// Table and the Terms corresponding to the exported roots, in the same
// order. The rebuilt Table always uses the hashmap engine, regardless of any
// Engine option passed in opts.
func Import(r io.Reader, opts ...Option) (*Table, []Term, error) {
	var d dump
	if err := gob.NewDecoder(bufio.NewReader(r)).Decode(&d); err != nil {
		return nil, nil, newProgrammingError("Import", "%s", err)
	}
	if d.Version != persistVersion {
		return nil, nil, newProgrammingError("Import", "unsupported dump version %d", d.Version)
	}
	allOpts := append([]Option{AdHocCounting(d.AdHoc), AdHocModelCounting(d.Model)}, opts...)
	allOpts = append(allOpts, Engine(HashmapEngine))
	tab, err := New(d.Varnum, allOpts...)
	if err != nil {
		return nil, nil, err
	}
	remap := make(map[Term]Term, len(d.Nodes)+2)
	remap[False] = False
	remap[True] = True
	for _, n := range d.Nodes {
		lo, hi := remap[n.Low], remap[n.High]
		id := tab.mkNode(n.Level, lo, hi)
		if tab.err != nil {
			return nil, nil, tab.err
		}
		remap[n.ID] = id
	}
	roots := make([]Term, len(d.Roots))
	for i, r := range d.Roots {
		roots[i] = remap[r]
	}
	return tab, roots, nil
}
