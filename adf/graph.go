// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import "github.com/dalzilio/adfobdd/obdd"

// GraphNode is one BDD node reachable from a set of acceptance-condition
// roots, with its variable position resolved back to the statement label it
// tests. This is the shape a serialization collaborator consumes to render
// an acceptance condition's diagram; the constants True and False are
// implicit (Terms 1 and 0) and never listed.
type GraphNode struct {
	ID   obdd.Term
	Name string
	Low  obdd.Term
	High obdd.Term
}

// Graph returns every non-constant node reachable from the acceptance
// conditions of the named statements (every statement when none are named),
// in ascending Term order, together with the mapping from statement label to
// root Term. Unknown statement names are reported as a ProgrammingError.
func (a *ADF) Graph(statements ...string) ([]GraphNode, map[string]obdd.Term, error) {
	roots := make([]obdd.Term, 0, len(statements))
	byName := make(map[string]obdd.Term, len(statements))
	if len(statements) == 0 {
		statements = a.reg.names
	}
	for _, s := range statements {
		v, ok := a.reg.varOf(s)
		if !ok {
			return nil, nil, newProgrammingError("Graph", "unknown statement %q", s)
		}
		roots = append(roots, a.roots[v])
		byName[s] = a.roots[v]
	}
	recs := a.tab.Reachable(roots...)
	nodes := make([]GraphNode, len(recs))
	for i, rec := range recs {
		nodes[i] = GraphNode{
			ID:   rec.ID,
			Name: a.reg.nameOf(obdd.Var(rec.Level)),
			Low:  rec.Low,
			High: rec.High,
		}
	}
	return nodes, byName, nil
}
