// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import (
	"sort"
	"strings"

	"github.com/dalzilio/adfobdd/obdd"
)

// registry is the bidirectional mapping between statement labels and BDD
// variable indices (C2). Variable 0 is always the first statement under the
// chosen ordering; the mapping never changes once built.
type registry struct {
	names []string
	index map[string]obdd.Var
}

func newRegistry(decls []Declaration, order Order) *registry {
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Name
	}
	switch order {
	case OrderLexicographic:
		sort.Strings(names)
	case OrderAlphanumeric:
		sort.SliceStable(names, func(i, j int) bool { return alphanumericLess(names[i], names[j]) })
	}
	index := make(map[string]obdd.Var, len(names))
	for i, n := range names {
		index[n] = obdd.Var(i)
	}
	return &registry{names: names, index: index}
}

func (r *registry) varOf(name string) (obdd.Var, bool) {
	v, ok := r.index[name]
	return v, ok
}

func (r *registry) nameOf(v obdd.Var) string { return r.names[v] }

func (r *registry) len() int { return len(r.names) }

func (r *registry) statements() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// alphanumericLess orders strings the way a human browsing a sorted list of
// statement labels would expect: runs of digits compare by numeric value
// rather than lexicographically, so "a2" sorts before "a10". Ties (only
// possible between distinct labels that happen to collate identically) fall
// back to the caller's sort.SliceStable, which preserves declaration order.
func alphanumericLess(a, b string) bool {
	ar, br := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ar) && j < len(br) {
		ca, cb := ar[i], br[j]
		if isDigit(ca) && isDigit(cb) {
			si := i
			for i < len(ar) && isDigit(ar[i]) {
				i++
			}
			sj := j
			for j < len(br) && isDigit(br[j]) {
				j++
			}
			na := strings.TrimLeft(string(ar[si:i]), "0")
			nb := strings.TrimLeft(string(br[sj:j]), "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	return len(ar)-i < len(br)-j
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
