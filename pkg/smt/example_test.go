package smt_test

import (
	"context"
	"fmt"

	"github.com/gitrdm/hailstone/pkg/smt"
)

// ExampleSolver_Check solves a single linear equation.
func ExampleSolver_Check() {
	model := smt.NewModel()
	x := model.NewIntVar("x", 64)
	model.Assert(smt.Eq(smt.Mul(smt.Const(3), x), smt.Const(12)))

	solver := smt.NewSolver(model)
	status, err := solver.Check(context.Background())
	if err != nil {
		panic(err)
	}
	fmt.Println(status)

	sol, _ := solver.Solution()
	fmt.Println("x =", sol.Value(x))

	// Output:
	// sat
	// x = 4
}

// Example_rockIntercept finds the rock trajectory that meets three
// hailstones at positive integer times.
func Example_rockIntercept() {
	stones := [][6]int64{
		{19, 13, 30, -2, 1, -2},
		{18, 19, 22, -1, -1, -2},
		{20, 25, 34, -2, -2, -4},
	}

	model := smt.NewModel()
	rock := model.NewIntVars([]string{"x", "y", "z", "vx", "vy", "vz"}, 64)
	for i, s := range stones {
		t := model.NewIntVar(fmt.Sprintf("t%d", i), 64)
		model.Assert(smt.Gt(t, smt.Const(0)))
		for axis := 0; axis < 3; axis++ {
			model.Assert(smt.Eq(
				smt.Add(rock[axis], smt.Mul(rock[axis+3], t)),
				smt.Add(smt.Const(s[axis]), smt.Mul(smt.Const(s[axis+3]), t)),
			))
		}
	}

	solver := smt.NewSolver(model)
	if status, err := solver.Check(context.Background()); err != nil || status != smt.Sat {
		fmt.Println("no intercept:", status, err)
		return
	}
	sol, _ := solver.Solution()
	fmt.Println(sol)

	sum, _ := sol.Eval(smt.Add(rock[0], rock[1], rock[2]))
	fmt.Println("sum:", sum)

	// Output:
	// {x=24, y=13, z=10, vx=-3, vy=1, vz=2, t0=5, t1=3, t2=4}
	// sum: 47
}

// ExampleConstraint_String shows how constraints render.
func ExampleConstraint_String() {
	model := smt.NewModel()
	x := model.NewIntVar("x", 8)
	y := model.NewIntVar("y", 8)

	fmt.Println(smt.Eq(smt.Mul(smt.Const(3), x), smt.Const(12)))
	fmt.Println(smt.Le(smt.Sub(x, y), smt.Const(0)))

	// Output:
	// (3 * x) == 12
	// (x + -y) <= 0
}
