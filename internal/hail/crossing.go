package hail

import "math/big"

// CountCrossings counts the unordered pairs of hailstones whose paths,
// projected onto the XY plane, cross at a point inside the square
// lo <= x, y <= hi. A crossing counts only if neither stone has already
// passed it; parallel paths never cross.
func CountCrossings(stones []Hailstone, lo, hi int64) int {
	blo, bhi := new(big.Rat).SetInt64(lo), new(big.Rat).SetInt64(hi)
	inside := func(r *big.Rat) bool {
		return r.Cmp(blo) >= 0 && r.Cmp(bhi) <= 0
	}

	count := 0
	for i := range stones {
		for j := i + 1; j < len(stones); j++ {
			x, y, ok := crossXY(stones[i], stones[j])
			if ok && inside(x) && inside(y) {
				count++
			}
		}
	}
	return count
}

// crossXY returns where the XY paths of a and b cross, provided both
// stones reach that point at a time >= 0.
//
// Solving a + va*s == b + vb*u in x and y by Cramer's rule:
//
//	det = vax*vby - vay*vbx
//	s   = ((bx-ax)*vby - (by-ay)*vbx) / det
//	u   = ((bx-ax)*vay - (by-ay)*vax) / det
func crossXY(a, b Hailstone) (x, y *big.Rat, ok bool) {
	ax, ay := big.NewInt(a.X), big.NewInt(a.Y)
	vax, vay := big.NewInt(a.VX), big.NewInt(a.VY)
	vbx, vby := big.NewInt(b.VX), big.NewInt(b.VY)

	det := new(big.Int).Sub(mul(vax, vby), mul(vay, vbx))
	if det.Sign() == 0 {
		return nil, nil, false
	}

	dx := new(big.Int).Sub(big.NewInt(b.X), ax)
	dy := new(big.Int).Sub(big.NewInt(b.Y), ay)
	sNum := new(big.Int).Sub(mul(dx, vby), mul(dy, vbx))
	uNum := new(big.Int).Sub(mul(dx, vay), mul(dy, vax))

	// s, u >= 0 iff the numerators share det's sign or are zero.
	if sNum.Sign()*det.Sign() < 0 || uNum.Sign()*det.Sign() < 0 {
		return nil, nil, false
	}

	s := new(big.Rat).SetFrac(sNum, det)
	x = new(big.Rat).Mul(s, new(big.Rat).SetInt(vax))
	x.Add(x, new(big.Rat).SetInt(ax))
	y = new(big.Rat).Mul(s, new(big.Rat).SetInt(vay))
	y.Add(y, new(big.Rat).SetInt(ay))
	return x, y, true
}

func mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}
