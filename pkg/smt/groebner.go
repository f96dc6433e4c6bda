// Package smt provides a small satisfiability solver over bounded integers.
// This file implements Buchberger's algorithm for reduced Gröbner bases.
//
// # Algorithm
//
// Starting from the input polynomials, S-polynomials of every pair of basis
// elements are reduced against the current basis; nonzero remainders join
// the basis and create new pairs. The loop ends when every pair reduces to
// zero. Two standard refinements keep this tractable:
//
//   - Normal selection: the pair whose leading-monomial lcm has the lowest
//     degree is processed first.
//   - Buchberger's first criterion: pairs with coprime leading monomials
//     always reduce to zero and are skipped.
//
// A nonzero constant remainder proves the system has no complex solution,
// so the loop stops early with the basis {1}.
package smt

import (
	"context"
	"errors"
	"math/big"
	"sort"
)

// errPairLimit reports that Buchberger's loop exceeded SolverConfig.MaxPairs.
var errPairLimit = errors.New("groebner: S-pair limit reached")

type spair struct {
	i, j int
	lcm  monomial
}

// groebnerStats reports the work a basis computation performed.
type groebnerStats struct {
	pairs      int
	reductions int
}

// reduce returns the normal form of f modulo basis: no term of the result
// is divisible by a leading monomial of the basis.
func reduce(f poly, basis []poly) poly {
	var rem poly
	for len(f) > 0 {
		lt := f.lead()
		divided := false
		for _, g := range basis {
			glt := g.lead()
			if glt.mono.divides(lt.mono) {
				c := new(big.Rat).Quo(lt.coef, glt.coef)
				f = f.sub(g.mulTerm(c, lt.mono.quo(glt.mono)))
				divided = true
				break
			}
		}
		if !divided {
			rem = append(rem, lt)
			f = f[1:]
		}
	}
	return rem
}

// spoly returns the S-polynomial of two monic polynomials.
func spoly(f, g poly, lcm monomial) poly {
	a := f.mulTerm(ratOne, lcm.quo(f.lead().mono))
	b := g.mulTerm(ratOne, lcm.quo(g.lead().mono))
	return a.sub(b)
}

// groebner computes the reduced Gröbner basis of the ideal generated by
// polys. The result is sorted by descending leading monomial. A basis of
// exactly one constant polynomial means the ideal is the whole ring.
func groebner(ctx context.Context, polys []poly, maxPairs int) ([]poly, groebnerStats, error) {
	var stats groebnerStats

	basis := make([]poly, 0, len(polys))
	for _, p := range polys {
		if p.isZero() {
			continue
		}
		p = p.monic()
		if p.isConst() {
			return []poly{p}, stats, nil
		}
		basis = append(basis, p)
	}

	var pairs []spair
	for j := range basis {
		for i := 0; i < j; i++ {
			pairs = append(pairs, newPair(basis, i, j))
		}
	}

	for len(pairs) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		if maxPairs > 0 && stats.pairs >= maxPairs {
			return nil, stats, errPairLimit
		}

		k := selectPair(pairs)
		pr := pairs[k]
		pairs = append(pairs[:k], pairs[k+1:]...)

		f, g := basis[pr.i], basis[pr.j]
		if f.lead().mono.coprime(g.lead().mono) {
			continue
		}

		stats.pairs++
		r := reduce(spoly(f, g, pr.lcm), basis)
		if r.isZero() {
			continue
		}
		stats.reductions++

		r = r.monic()
		if r.isConst() {
			return []poly{r}, stats, nil
		}
		n := len(basis)
		basis = append(basis, r)
		for i := 0; i < n; i++ {
			pairs = append(pairs, newPair(basis, i, n))
		}
	}

	return interreduce(minimalBasis(basis)), stats, nil
}

func newPair(basis []poly, i, j int) spair {
	return spair{i: i, j: j, lcm: basis[i].lead().mono.lcm(basis[j].lead().mono)}
}

// selectPair implements the normal selection strategy.
func selectPair(pairs []spair) int {
	best, bestDeg := 0, pairs[0].lcm.degree()
	for k := 1; k < len(pairs); k++ {
		if d := pairs[k].lcm.degree(); d < bestDeg {
			best, bestDeg = k, d
		}
	}
	return best
}

// minimalBasis drops every element whose leading monomial is divisible by
// another element's. Among equal leading monomials the earliest survives.
func minimalBasis(basis []poly) []poly {
	out := make([]poly, 0, len(basis))
	for i, g := range basis {
		gm := g.lead().mono
		redundant := false
		for j, h := range basis {
			if i == j {
				continue
			}
			hm := h.lead().mono
			if hm.divides(gm) && (!hm.equal(gm) || j < i) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, g)
		}
	}
	return out
}

// interreduce fully reduces every element of a minimal basis against the
// others, producing the unique reduced basis, sorted for determinism.
func interreduce(basis []poly) []poly {
	out := make([]poly, len(basis))
	copy(out, basis)
	for i := range out {
		others := make([]poly, 0, len(out)-1)
		others = append(others, out[:i]...)
		others = append(others, out[i+1:]...)
		out[i] = reduce(out[i], others)
	}
	sort.Slice(out, func(a, b int) bool {
		return cmpGrevlex(out[a].lead().mono, out[b].lead().mono) > 0
	})
	return out
}
