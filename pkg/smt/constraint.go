// Package smt provides a small satisfiability solver over bounded integers.
// This file defines relational constraints between expressions.
package smt

import (
	"fmt"
	"math/big"
)

// Relation is the comparison a Constraint asserts between its two sides.
type Relation int

const (
	// RelEq asserts lhs == rhs.
	RelEq Relation = iota
	// RelNe asserts lhs != rhs.
	RelNe
	// RelLt asserts lhs < rhs.
	RelLt
	// RelLe asserts lhs <= rhs.
	RelLe
	// RelGt asserts lhs > rhs.
	RelGt
	// RelGe asserts lhs >= rhs.
	RelGe
)

// String returns the operator symbol.
func (r Relation) String() string {
	switch r {
	case RelEq:
		return "=="
	case RelNe:
		return "!="
	case RelLt:
		return "<"
	case RelLe:
		return "<="
	case RelGt:
		return ">"
	case RelGe:
		return ">="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// holds reports whether cmp (the sign of lhs - rhs) satisfies the relation.
func (r Relation) holds(cmp int) bool {
	switch r {
	case RelEq:
		return cmp == 0
	case RelNe:
		return cmp != 0
	case RelLt:
		return cmp < 0
	case RelLe:
		return cmp <= 0
	case RelGt:
		return cmp > 0
	case RelGe:
		return cmp >= 0
	default:
		return false
	}
}

// Constraint is a boolean assertion lhs <rel> rhs.
// Constraints are immutable after creation and safe for concurrent reads.
type Constraint struct {
	rel      Relation
	lhs, rhs Expr
}

// Eq returns the constraint a == b.
func Eq(a, b Expr) Constraint { return Constraint{rel: RelEq, lhs: a, rhs: b} }

// Ne returns the constraint a != b.
func Ne(a, b Expr) Constraint { return Constraint{rel: RelNe, lhs: a, rhs: b} }

// Lt returns the constraint a < b.
func Lt(a, b Expr) Constraint { return Constraint{rel: RelLt, lhs: a, rhs: b} }

// Le returns the constraint a <= b.
func Le(a, b Expr) Constraint { return Constraint{rel: RelLe, lhs: a, rhs: b} }

// Gt returns the constraint a > b.
func Gt(a, b Expr) Constraint { return Constraint{rel: RelGt, lhs: a, rhs: b} }

// Ge returns the constraint a >= b.
func Ge(a, b Expr) Constraint { return Constraint{rel: RelGe, lhs: a, rhs: b} }

// Relation returns the comparison operator.
func (c Constraint) Relation() Relation {
	return c.rel
}

// Sides returns the left and right expressions.
func (c Constraint) Sides() (lhs, rhs Expr) {
	return c.lhs, c.rhs
}

// Variables returns the variables referenced by either side, in order of
// first appearance and without duplicates.
func (c Constraint) Variables() []*IntVar {
	var all []*IntVar
	all = c.lhs.collectVars(all)
	all = c.rhs.collectVars(all)

	seen := make(map[*IntVar]bool, len(all))
	out := all[:0]
	for _, v := range all {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Type returns a short string identifying the constraint kind.
func (c Constraint) Type() string {
	if c.rel == RelEq {
		return "Equality"
	}
	return "Comparison"
}

// String returns a human-readable representation.
func (c Constraint) String() string {
	return fmt.Sprintf("%s %s %s", c.lhs, c.rel, c.rhs)
}

// satisfiedBy evaluates the constraint exactly under an assignment.
func (c Constraint) satisfiedBy(value func(*IntVar) *big.Int) bool {
	l := evalBig(c.lhs, value)
	r := evalBig(c.rhs, value)
	return c.rel.holds(l.Cmp(r))
}
