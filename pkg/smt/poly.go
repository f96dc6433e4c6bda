// Package smt provides a small satisfiability solver over bounded integers.
// This file implements sparse multivariate polynomials with exact rational
// coefficients, ordered by graded reverse lexicographic (grevlex) order.
//
// Polynomials are immutable: every operation returns a fresh term slice and
// never mutates a coefficient it did not allocate. Terms may share *big.Rat
// pointers across polynomials for that reason.
package smt

import (
	"fmt"
	"math/big"
	"strings"
)

// monomial holds one exponent per model variable.
type monomial []uint16

func unitMonomial(nvars int) monomial {
	return make(monomial, nvars)
}

func varMonomial(nvars, id int) monomial {
	m := make(monomial, nvars)
	m[id] = 1
	return m
}

func (m monomial) degree() int {
	d := 0
	for _, e := range m {
		d += int(e)
	}
	return d
}

func (m monomial) isUnit() bool {
	for _, e := range m {
		if e != 0 {
			return false
		}
	}
	return true
}

// singleVar reports the variable index when m is exactly x_i.
func (m monomial) singleVar() (int, bool) {
	id := -1
	for i, e := range m {
		switch {
		case e == 0:
		case e == 1 && id < 0:
			id = i
		default:
			return -1, false
		}
	}
	return id, id >= 0
}

func (m monomial) mul(o monomial) monomial {
	out := make(monomial, len(m))
	for i := range m {
		out[i] = m[i] + o[i]
	}
	return out
}

// divides reports whether m divides o.
func (m monomial) divides(o monomial) bool {
	for i := range m {
		if m[i] > o[i] {
			return false
		}
	}
	return true
}

// quo returns m / o; o must divide m.
func (m monomial) quo(o monomial) monomial {
	out := make(monomial, len(m))
	for i := range m {
		out[i] = m[i] - o[i]
	}
	return out
}

func (m monomial) lcm(o monomial) monomial {
	out := make(monomial, len(m))
	for i := range m {
		out[i] = max(m[i], o[i])
	}
	return out
}

// coprime reports whether m and o share no variable.
func (m monomial) coprime(o monomial) bool {
	for i := range m {
		if m[i] != 0 && o[i] != 0 {
			return false
		}
	}
	return true
}

func (m monomial) equal(o monomial) bool {
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}

// cmpGrevlex orders by total degree, breaking ties in favour of the
// monomial with the smaller exponent in the last differing variable.
func cmpGrevlex(a, b monomial) int {
	da, db := a.degree(), b.degree()
	if da != db {
		if da > db {
			return 1
		}
		return -1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

type term struct {
	mono monomial
	coef *big.Rat
}

// poly is a sum of terms sorted by descending monomial with no zero
// coefficients. The zero polynomial is the empty slice.
type poly []term

var ratOne = big.NewRat(1, 1)

func constPoly(nvars int, c *big.Rat) poly {
	if c.Sign() == 0 {
		return nil
	}
	return poly{{mono: unitMonomial(nvars), coef: c}}
}

func varPoly(nvars, id int) poly {
	return poly{{mono: varMonomial(nvars, id), coef: ratOne}}
}

func (p poly) isZero() bool {
	return len(p) == 0
}

// isConst reports whether p is a nonzero constant.
func (p poly) isConst() bool {
	return len(p) == 1 && p[0].mono.isUnit()
}

func (p poly) lead() term {
	return p[0]
}

func (p poly) degree() int {
	d := 0
	for _, t := range p {
		d = max(d, t.mono.degree())
	}
	return d
}

func (p poly) add(q poly) poly {
	out := make(poly, 0, len(p)+len(q))
	i, j := 0, 0
	for i < len(p) && j < len(q) {
		switch c := cmpGrevlex(p[i].mono, q[j].mono); {
		case c > 0:
			out = append(out, p[i])
			i++
		case c < 0:
			out = append(out, q[j])
			j++
		default:
			s := new(big.Rat).Add(p[i].coef, q[j].coef)
			if s.Sign() != 0 {
				out = append(out, term{mono: p[i].mono, coef: s})
			}
			i++
			j++
		}
	}
	out = append(out, p[i:]...)
	out = append(out, q[j:]...)
	return out
}

// mulTerm returns p * c * m. Multiplying by a monomial preserves the
// order of terms because grevlex is a monomial order.
func (p poly) mulTerm(c *big.Rat, m monomial) poly {
	if c.Sign() == 0 {
		return nil
	}
	out := make(poly, len(p))
	for i, t := range p {
		out[i] = term{mono: t.mono.mul(m), coef: new(big.Rat).Mul(t.coef, c)}
	}
	return out
}

func (p poly) scale(c *big.Rat) poly {
	if len(p) == 0 {
		return nil
	}
	return p.mulTerm(c, unitMonomial(len(p[0].mono)))
}

func (p poly) neg() poly {
	return p.scale(big.NewRat(-1, 1))
}

func (p poly) sub(q poly) poly {
	return p.add(q.neg())
}

// mul returns the full product p * q.
func (p poly) mul(q poly) poly {
	var out poly
	for _, t := range q {
		out = out.add(p.mulTerm(t.coef, t.mono))
	}
	return out
}

// monic scales p so its leading coefficient is one.
func (p poly) monic() poly {
	if len(p) == 0 || p[0].coef.Cmp(ratOne) == 0 {
		return p
	}
	return p.scale(new(big.Rat).Inv(p[0].coef))
}

func (p poly) String() string {
	if len(p) == 0 {
		return "0"
	}
	parts := make([]string, len(p))
	for i, t := range p {
		var vars []string
		for id, e := range t.mono {
			switch {
			case e == 1:
				vars = append(vars, fmt.Sprintf("x%d", id))
			case e > 1:
				vars = append(vars, fmt.Sprintf("x%d^%d", id, e))
			}
		}
		if len(vars) == 0 {
			parts[i] = t.coef.RatString()
			continue
		}
		parts[i] = t.coef.RatString() + "*" + strings.Join(vars, "*")
	}
	return strings.Join(parts, " + ")
}

// toPoly converts an expression into a polynomial over nvars variables.
func toPoly(e Expr, nvars int) poly {
	switch e := e.(type) {
	case *IntVar:
		return varPoly(nvars, e.id)
	case constExpr:
		return constPoly(nvars, new(big.Rat).SetInt64(e.value))
	case sumExpr:
		var acc poly
		for _, t := range e.terms {
			acc = acc.add(toPoly(t, nvars))
		}
		return acc
	case negExpr:
		return toPoly(e.arg, nvars).neg()
	case mulExpr:
		return toPoly(e.left, nvars).mul(toPoly(e.right, nvars))
	default:
		panic(fmt.Sprintf("smt: unknown expression type %T", e))
	}
}
