// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"io"
	"sort"
)

// NodeRecord describes one node reached while walking a Table from a set of
// roots: its identifier, variable level, and the Terms of its low (false) and
// high (true) children. Constants are never reported.
type NodeRecord struct {
	ID    Term
	Level int32
	Low   Term
	High  Term
}

// Reachable returns every non-constant node reachable from roots, in
// ascending Term order, adapted from github.com/dalzilio/rudd's stdio.go
// printset traversal.
func (t *Table) Reachable(roots ...Term) []NodeRecord {
	seen := make(map[Term]bool)
	var walk func(Term)
	walk = func(a Term) {
		if a == False || a == True || seen[a] {
			return
		}
		seen[a] = true
		walk(t.eng.low(a))
		walk(t.eng.high(a))
	}
	for _, r := range roots {
		walk(r)
	}
	out := make([]NodeRecord, 0, len(seen))
	for id := range seen {
		out = append(out, NodeRecord{
			ID:    id,
			Level: t.eng.level(id),
			Low:   t.eng.low(id),
			High:  t.eng.high(id),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// WriteDOT writes a Graphviz dot rendering of every node reachable from
// roots, plus one labeled entry node per root with an edge to that root, in
// the style of
// github.com/dalzilio/rudd's Fprintdot.
func (t *Table) WriteDOT(w io.Writer, roots ...Term) error {
	if !t.checked("WriteDOT", roots...) {
		return t.err
	}
	fmt.Fprintln(w, "digraph obdd {")
	fmt.Fprintln(w, "  0 [shape=box, label=\"False\", style=filled, shape=box];")
	fmt.Fprintln(w, "  1 [shape=box, label=\"True\", style=filled, shape=box];")
	for _, rec := range t.Reachable(roots...) {
		fmt.Fprintf(w, "  %d [label=\"%d\"];\n", rec.ID, rec.Level)
		fmt.Fprintf(w, "  %d -> %d [style=dashed];\n", rec.ID, rec.Low)
		fmt.Fprintf(w, "  %d -> %d [style=solid];\n", rec.ID, rec.High)
	}
	for i, r := range roots {
		fmt.Fprintf(w, "  root%d [shape=plaintext, label=\"root %d\"];\n", i, i)
		fmt.Fprintf(w, "  root%d -> %d;\n", i, r)
	}
	fmt.Fprintln(w, "}")
	return nil
}
