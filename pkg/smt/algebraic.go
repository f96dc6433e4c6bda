// Package smt provides a small satisfiability solver over bounded integers.
// This file implements the algebraic engine.
//
// The engine decides a model when its equalities pin every constrained
// variable to a single point:
//
//	equalities ──> polynomials ──> reduced Gröbner basis
//	  basis == {1}                 -> Unsat (no complex solution at all)
//	  basis == {x_i - c_i, ...}    -> the only candidate point; Sat if it is
//	                                  integral, in range, and satisfies every
//	                                  comparison, Unsat otherwise
//	  anything else                -> Unknown
//
// Because the reduced basis of a single-point ideal is exactly the set of
// linear polynomials x_i - c_i, the Unsat answers are sound for bounded
// integers as well as for the rationals.
package smt

import (
	"context"
	"errors"
	"math/big"

	"go.uber.org/zap"
)

type algebraicEngine struct {
	maxPairs int
	log      *zap.Logger
}

func (e *algebraicEngine) name() string {
	return string(StrategyAlgebraic)
}

func (e *algebraicEngine) solve(ctx context.Context, m *Model, mon *SolverMonitor) (Status, []*big.Int, error) {
	vars := m.Variables()
	constraints := m.Constraints()
	nvars := len(vars)

	var eqs []poly
	constrained := make([]bool, nvars)
	for _, c := range constraints {
		for _, v := range c.Variables() {
			constrained[v.id] = true
		}
		if c.rel == RelEq {
			eqs = append(eqs, toPoly(c.lhs, nvars).sub(toPoly(c.rhs, nvars)))
		}
	}

	basis, stats, err := groebner(ctx, eqs, e.maxPairs)
	if mon != nil {
		mon.recordGroebner(len(basis), stats)
	}
	if errors.Is(err, errPairLimit) {
		e.log.Debug("groebner pair limit reached", zap.Int("pairs", stats.pairs))
		return Unknown, nil, nil
	}
	if err != nil {
		return Unknown, nil, err
	}
	e.log.Debug("groebner basis computed",
		zap.Int("equations", len(eqs)),
		zap.Int("basis", len(basis)),
		zap.Int("pairs", stats.pairs),
		zap.Int("reductions", stats.reductions))

	if len(basis) == 1 && basis[0].isConst() {
		return Unsat, nil, nil
	}

	point, ok := linearPoint(basis, nvars)
	if !ok {
		return Unknown, nil, nil
	}

	values := make([]*big.Int, nvars)
	for id := range values {
		r := point[id]
		switch {
		case r == nil && constrained[id]:
			// A constrained variable the equalities leave free.
			return Unknown, nil, nil
		case r == nil:
			values[id] = new(big.Int)
		case !r.IsInt():
			e.log.Debug("unique point is not integral", zap.String("var", vars[id].name), zap.String("value", r.RatString()))
			return Unsat, nil, nil
		default:
			values[id] = new(big.Int).Set(r.Num())
		}
	}

	for _, v := range vars {
		if !inRange(values[v.id], v.width) {
			e.log.Debug("unique point out of range", zap.String("var", v.name), zap.String("value", values[v.id].String()))
			return Unsat, nil, nil
		}
	}

	lookup := func(v *IntVar) *big.Int { return values[v.id] }
	for _, c := range constraints {
		if !c.satisfiedBy(lookup) {
			e.log.Debug("unique point violates constraint", zap.Stringer("constraint", c))
			return Unsat, nil, nil
		}
	}

	return Sat, values, nil
}

// linearPoint reads a reduced basis of the form {x_i - c_i}. It reports
// false if any element has another shape.
func linearPoint(basis []poly, nvars int) ([]*big.Rat, bool) {
	point := make([]*big.Rat, nvars)
	for _, g := range basis {
		id, ok := g.lead().mono.singleVar()
		if !ok || g.lead().coef.Cmp(ratOne) != 0 {
			return nil, false
		}
		switch {
		case len(g) == 1:
			point[id] = new(big.Rat)
		case len(g) == 2 && g[1].mono.isUnit():
			point[id] = new(big.Rat).Neg(g[1].coef)
		default:
			return nil, false
		}
	}
	return point, true
}

func inRange(v *big.Int, width int) bool {
	lo, hi := signedBounds(width)
	return v.Cmp(big.NewInt(lo)) >= 0 && v.Cmp(big.NewInt(hi)) <= 0
}
