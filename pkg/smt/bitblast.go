// Package smt provides a small satisfiability solver over bounded integers.
// This file implements the bit-blasting engine.
//
// Every expression is translated into a two's-complement bit vector on an
// and-inverter graph (github.com/go-air/gini/logic). Operations widen their
// results so they never overflow:
//
//	a + b   width max(wa, wb) + 1
//	a - b   width max(wa, wb) + 1
//	-a      width wa + 1
//	a * b   width wa + wb
//
// which keeps the arithmetic exact, matching the algebraic engine. Each
// constraint becomes one root literal; the circuit is Tseitin-encoded into
// a gini SAT solver and the roots are added as unit clauses.
//
// Variables may be encoded narrower than declared. A model found at a
// narrower width is still within the declared range, so the engine tries
// its configured widths in ascending order and only treats unsat as final
// once every variable is encoded at its declared width.
package smt

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"go.uber.org/zap"
)

// bitvec is a two's-complement integer, least significant bit first.
type bitvec []z.Lit

type blaster struct {
	c    *logic.C
	vars map[*IntVar]bitvec

	// limit caps the input bits per variable; zero means declared width.
	limit int
}

func newBlaster(limit int) *blaster {
	return &blaster{c: logic.NewC(), vars: make(map[*IntVar]bitvec), limit: limit}
}

// variable returns the input bits for v, allocating them on first use.
func (b *blaster) variable(v *IntVar) bitvec {
	if bv, ok := b.vars[v]; ok {
		return bv
	}
	w := v.width
	if b.limit > 0 && b.limit < w {
		w = b.limit
	}
	bv := make(bitvec, w)
	for i := range bv {
		bv[i] = b.c.Lit()
	}
	b.vars[v] = bv
	return bv
}

// constant encodes v in the fewest bits that represent it.
func (b *blaster) constant(v int64) bitvec {
	w := signedWidth(v)
	bv := make(bitvec, w)
	for i := range bv {
		if (v>>uint(i))&1 == 1 {
			bv[i] = b.c.T
		} else {
			bv[i] = b.c.F
		}
	}
	return bv
}

// signedWidth returns the minimal two's-complement width holding v.
func signedWidth(v int64) int {
	if v < 0 {
		return bits.Len64(uint64(^v)) + 1
	}
	return bits.Len64(uint64(v)) + 1
}

// extend sign-extends x to width w, which must be at least len(x).
func (b *blaster) extend(x bitvec, w int) bitvec {
	out := make(bitvec, w)
	copy(out, x)
	sign := x[len(x)-1]
	for i := len(x); i < w; i++ {
		out[i] = sign
	}
	return out
}

func (b *blaster) not(x bitvec) bitvec {
	out := make(bitvec, len(x))
	for i, m := range x {
		out[i] = m.Not()
	}
	return out
}

func (b *blaster) zeros(w int) bitvec {
	out := make(bitvec, w)
	for i := range out {
		out[i] = b.c.F
	}
	return out
}

// ripple adds two equal-width vectors plus a carry-in, discarding the
// carry-out.
func (b *blaster) ripple(x, y bitvec, carry z.Lit) bitvec {
	c := b.c
	out := make(bitvec, len(x))
	for i := range x {
		t := c.Xor(x[i], y[i])
		out[i] = c.Xor(t, carry)
		carry = c.Or(c.And(x[i], y[i]), c.And(carry, t))
	}
	return out
}

func (b *blaster) add(x, y bitvec) bitvec {
	w := max(len(x), len(y)) + 1
	return b.ripple(b.extend(x, w), b.extend(y, w), b.c.F)
}

func (b *blaster) sub(x, y bitvec) bitvec {
	w := max(len(x), len(y)) + 1
	return b.ripple(b.extend(x, w), b.not(b.extend(y, w)), b.c.T)
}

func (b *blaster) neg(x bitvec) bitvec {
	w := len(x) + 1
	return b.ripple(b.not(b.extend(x, w)), b.zeros(w), b.c.T)
}

// mul is a shift-and-add multiplier over operands sign-extended to the
// product width; the low len(x)+len(y) bits of that product are exact.
func (b *blaster) mul(x, y bitvec) bitvec {
	c := b.c
	w := len(x) + len(y)
	xe, ye := b.extend(x, w), b.extend(y, w)
	acc := b.zeros(w)
	for i := 0; i < w; i++ {
		if ye[i] == c.F {
			continue
		}
		partial := make(bitvec, w)
		for k := range partial {
			if k < i {
				partial[k] = c.F
			} else {
				partial[k] = c.And(xe[k-i], ye[i])
			}
		}
		acc = b.ripple(acc, partial, c.F)
	}
	return acc
}

func (b *blaster) expr(e Expr) bitvec {
	switch e := e.(type) {
	case *IntVar:
		return b.variable(e)
	case constExpr:
		return b.constant(e.value)
	case sumExpr:
		acc := b.constant(0)
		for _, t := range e.terms {
			acc = b.add(acc, b.expr(t))
		}
		return acc
	case negExpr:
		return b.neg(b.expr(e.arg))
	case mulExpr:
		return b.mul(b.expr(e.left), b.expr(e.right))
	default:
		panic(fmt.Sprintf("smt: unknown expression type %T", e))
	}
}

func (b *blaster) eq(x, y bitvec) z.Lit {
	w := max(len(x), len(y))
	xe, ye := b.extend(x, w), b.extend(y, w)
	acc := b.c.T
	for i := range xe {
		acc = b.c.And(acc, b.c.Xor(xe[i], ye[i]).Not())
	}
	return acc
}

// lt is the sign bit of the exact difference x - y.
func (b *blaster) lt(x, y bitvec) z.Lit {
	d := b.sub(x, y)
	return d[len(d)-1]
}

func (b *blaster) constraint(c Constraint) z.Lit {
	x, y := b.expr(c.lhs), b.expr(c.rhs)
	switch c.rel {
	case RelEq:
		return b.eq(x, y)
	case RelNe:
		return b.eq(x, y).Not()
	case RelLt:
		return b.lt(x, y)
	case RelLe:
		return b.lt(y, x).Not()
	case RelGt:
		return b.lt(y, x)
	case RelGe:
		return b.lt(x, y).Not()
	default:
		panic(fmt.Sprintf("smt: unknown relation %v", c.rel))
	}
}

type bitBlastEngine struct {
	widths []int
	poll   time.Duration
	log    *zap.Logger
}

func (e *bitBlastEngine) name() string {
	return string(StrategyBitBlast)
}

// schedule returns the variable width caps to try: each configured width
// that exceeds the previous one and stays below the widest variable, then
// that widest declared width.
func (e *bitBlastEngine) schedule(vars []*IntVar) []int {
	full := 0
	for _, v := range vars {
		full = max(full, v.width)
	}
	var out []int
	for _, w := range e.widths {
		if w > 0 && w < full && (len(out) == 0 || w > out[len(out)-1]) {
			out = append(out, w)
		}
	}
	return append(out, full)
}

func (e *bitBlastEngine) solve(ctx context.Context, m *Model, mon *SolverMonitor) (Status, []*big.Int, error) {
	vars := m.Variables()
	widths := e.schedule(vars)
	last := len(widths) - 1
	for _, w := range widths[:last] {
		status, values, err := e.solveAt(ctx, m, vars, w, mon)
		if err != nil || status != Unsat {
			return status, values, err
		}
		e.log.Debug("unsat at reduced width, widening", zap.Int("width", w))
	}
	return e.solveAt(ctx, m, vars, widths[last], mon)
}

// solveAt encodes every variable in at most limit bits and runs the SAT
// search once.
func (e *bitBlastEngine) solveAt(ctx context.Context, m *Model, vars []*IntVar, limit int, mon *SolverMonitor) (Status, []*big.Int, error) {
	b := newBlaster(limit)
	for _, v := range vars {
		b.variable(v)
	}

	roots := make([]z.Lit, 0, m.ConstraintCount())
	for _, c := range m.Constraints() {
		roots = append(roots, b.constraint(c))
	}

	g := gini.NewV(b.c.Len())
	b.c.ToCnf(g)
	for _, r := range roots {
		g.Add(r)
		g.Add(0)
	}
	if mon != nil {
		mon.recordCircuit(b.c.Len(), len(roots), limit)
	}
	e.log.Debug("circuit encoded",
		zap.Int("width", limit),
		zap.Int("nodes", b.c.Len()),
		zap.Int("roots", len(roots)))

	res, err := e.run(ctx, g)
	if err != nil {
		return Unknown, nil, err
	}
	switch res {
	case 1:
	case -1:
		return Unsat, nil, nil
	default:
		return Unknown, nil, nil
	}

	values := make([]*big.Int, len(vars))
	for _, v := range vars {
		values[v.id] = big.NewInt(readBits(g, b.vars[v]))
	}
	return Sat, values, nil
}

// run drives gini's background solve, stopping it if ctx ends first.
func (e *bitBlastEngine) run(ctx context.Context, g *gini.Gini) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	ctl := g.GoSolve()
	ticker := time.NewTicker(e.poll)
	defer ticker.Stop()
	for {
		if res, done := ctl.Test(); done {
			return res, nil
		}
		select {
		case <-ctx.Done():
			ctl.Stop()
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}

// readBits decodes a sign-extended value from the last model.
func readBits(g *gini.Gini, bv bitvec) int64 {
	var u uint64
	for i, m := range bv {
		if g.Value(m) {
			u |= 1 << uint(i)
		}
	}
	if w := len(bv); w < 64 && u&(1<<uint(w-1)) != 0 {
		u |= ^uint64(0) << uint(w)
	}
	return int64(u)
}
