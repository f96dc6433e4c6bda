// Package smt provides a small satisfiability solver over bounded integers.
// This file defines the expression trees that constraints are built from.
//
// Expressions are immutable values built through constructor calls rather
// than operator overloading:
//
//	x := model.NewIntVar("x", 64)
//	t := model.NewIntVar("t", 64)
//	lhs := smt.Add(x, smt.Mul(v, t))
//	rhs := smt.Add(smt.Const(19), smt.Mul(smt.Const(-2), t))
//	model.Assert(smt.Eq(lhs, rhs))
//
// Arithmetic inside expressions is exact: intermediate values are never
// truncated to a variable's width. Only the variables themselves are
// restricted to the signed range of their declared width.
package smt

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Expr is an integer-valued expression over IntVar handles.
// The set of implementations is closed: IntVar and the values returned by
// Const, Add, Sub, Mul and Neg.
type Expr interface {
	// String returns a human-readable infix rendering.
	String() string

	// collectVars appends every variable referenced by the expression.
	collectVars(dst []*IntVar) []*IntVar
}

// IntVar is an opaque handle to an integer unknown declared on a Model.
// Its value is only observable through a Solution.
type IntVar struct {
	id    int
	name  string
	width int
	owner *Model
}

// ID returns the variable's index within its model.
func (v *IntVar) ID() int {
	return v.id
}

// Name returns the variable's name.
func (v *IntVar) Name() string {
	return v.name
}

// Width returns the declared bit width.
func (v *IntVar) Width() int {
	return v.width
}

// Bounds returns the inclusive signed range of the variable's width.
func (v *IntVar) Bounds() (lo, hi int64) {
	return signedBounds(v.width)
}

// String returns the variable's name.
func (v *IntVar) String() string {
	return v.name
}

func (v *IntVar) collectVars(dst []*IntVar) []*IntVar {
	return append(dst, v)
}

type constExpr struct {
	value int64
}

// Const returns a constant expression.
func Const(value int64) Expr {
	return constExpr{value: value}
}

func (c constExpr) String() string {
	return fmt.Sprintf("%d", c.value)
}

func (c constExpr) collectVars(dst []*IntVar) []*IntVar {
	return dst
}

type sumExpr struct {
	terms []Expr
}

// Add returns the sum of its operands. Add() is the constant zero.
func Add(terms ...Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	cp := make([]Expr, len(terms))
	copy(cp, terms)
	return sumExpr{terms: cp}
}

func (s sumExpr) String() string {
	if len(s.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(s.terms))
	for i, t := range s.terms {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

func (s sumExpr) collectVars(dst []*IntVar) []*IntVar {
	for _, t := range s.terms {
		dst = t.collectVars(dst)
	}
	return dst
}

type negExpr struct {
	arg Expr
}

// Neg returns the arithmetic negation of a.
func Neg(a Expr) Expr {
	return negExpr{arg: a}
}

func (n negExpr) String() string {
	return "-" + n.arg.String()
}

func (n negExpr) collectVars(dst []*IntVar) []*IntVar {
	return n.arg.collectVars(dst)
}

// Sub returns a - b.
func Sub(a, b Expr) Expr {
	return Add(a, Neg(b))
}

type mulExpr struct {
	left, right Expr
}

// Mul returns the product a * b.
func Mul(a, b Expr) Expr {
	return mulExpr{left: a, right: b}
}

func (m mulExpr) String() string {
	return "(" + m.left.String() + " * " + m.right.String() + ")"
}

func (m mulExpr) collectVars(dst []*IntVar) []*IntVar {
	dst = m.left.collectVars(dst)
	return m.right.collectVars(dst)
}

// evalBig evaluates e exactly under the given assignment.
func evalBig(e Expr, value func(*IntVar) *big.Int) *big.Int {
	switch e := e.(type) {
	case *IntVar:
		return new(big.Int).Set(value(e))
	case constExpr:
		return big.NewInt(e.value)
	case sumExpr:
		acc := new(big.Int)
		for _, t := range e.terms {
			acc.Add(acc, evalBig(t, value))
		}
		return acc
	case negExpr:
		return new(big.Int).Neg(evalBig(e.arg, value))
	case mulExpr:
		return new(big.Int).Mul(evalBig(e.left, value), evalBig(e.right, value))
	default:
		panic(fmt.Sprintf("smt: unknown expression type %T", e))
	}
}

// signedBounds returns the two's-complement range of a width in 1..64.
func signedBounds(width int) (lo, hi int64) {
	if width >= 64 {
		return math.MinInt64, math.MaxInt64
	}
	hi = int64(1)<<(width-1) - 1
	return -hi - 1, hi
}
