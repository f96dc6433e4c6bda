package smt

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrOverflow is returned by Solution.Eval when the exact value of an
// expression does not fit in an int64.
var ErrOverflow = errors.New("value overflows int64")

// Solution is a satisfying assignment: one integer per model variable.
// Solutions are immutable.
type Solution struct {
	model  *Model
	values []*big.Int
}

func newSolution(m *Model, values []*big.Int) *Solution {
	return &Solution{model: m, values: values}
}

// Value returns the value assigned to v. Every value fits the variable's
// width, so it always fits an int64.
func (s *Solution) Value(v *IntVar) int64 {
	return s.values[v.id].Int64()
}

// Eval evaluates an expression exactly under the assignment.
func (s *Solution) Eval(e Expr) (int64, error) {
	for _, v := range e.collectVars(nil) {
		if v.owner != s.model || v.id >= len(s.values) {
			return 0, fmt.Errorf("variable %s is not part of the solution", v.name)
		}
	}
	r := evalBig(e, func(v *IntVar) *big.Int { return s.values[v.id] })
	if !r.IsInt64() {
		return 0, fmt.Errorf("%s = %s: %w", e, r, ErrOverflow)
	}
	return r.Int64(), nil
}

// Values returns every assignment keyed by variable name.
func (s *Solution) Values() map[string]int64 {
	out := make(map[string]int64, len(s.values))
	for _, v := range s.variables() {
		out[v.name] = s.Value(v)
	}
	return out
}

// String returns the assignment in declaration order.
func (s *Solution) String() string {
	vars := s.variables()
	out := "{"
	for i, v := range vars {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%d", v.name, s.Value(v))
	}
	return out + "}"
}

// variables returns the variables that existed when the solution was found.
func (s *Solution) variables() []*IntVar {
	return s.model.Variables()[:len(s.values)]
}
