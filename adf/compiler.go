// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/dalzilio/adfobdd/obdd"
)

// compiler translates one acceptance-condition Expr into a root Term in the
// shared Table, by straightforward post-order recursion (C4). Every problem
// found (an undefined name, an unrecognized node) is appended to merr rather
// than aborting, so New can report every compilation problem across every
// statement in one ConstructionError.
type compiler struct {
	reg  *registry
	tab  *obdd.Table
	merr *multierror.Error
}

func (c *compiler) compile(e Expr) obdd.Term {
	switch n := e.(type) {
	case ExprVar:
		v, ok := c.reg.varOf(n.Name)
		if !ok {
			c.merr = multierror.Append(c.merr, fmt.Errorf("acceptance condition refers to undeclared statement %q", n.Name))
			return obdd.False
		}
		return c.tab.Var(v)
	case ExprConst:
		return c.tab.Constant(n.Value)
	case ExprNeg:
		return c.tab.Not(c.compile(n.E))
	case ExprAnd:
		return c.tab.Apply(obdd.OpAnd, c.compile(n.L), c.compile(n.R))
	case ExprOr:
		return c.tab.Apply(obdd.OpOr, c.compile(n.L), c.compile(n.R))
	case ExprIff:
		return c.tab.Apply(obdd.OpBiimp, c.compile(n.L), c.compile(n.R))
	case ExprXor:
		return c.tab.Apply(obdd.OpXor, c.compile(n.L), c.compile(n.R))
	case ExprImp:
		return c.tab.Apply(obdd.OpImp, c.compile(n.L), c.compile(n.R))
	default:
		c.merr = multierror.Append(c.merr, fmt.Errorf("unrecognized acceptance-condition expression %T", e))
		return obdd.False
	}
}
