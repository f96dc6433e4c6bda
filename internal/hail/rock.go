package hail

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gitrdm/hailstone/pkg/smt"
)

// RockSample is how many hailstones the rock is required to hit. Three
// stones already pin down a unique trajectory; the rest of the input is
// not consulted.
const RockSample = 3

// DefaultWidth is the bit width of every unknown unless overridden.
const DefaultWidth = 64

// ErrTooFewHailstones is returned when the input holds fewer than
// RockSample hailstones.
var ErrTooFewHailstones = errors.New("too few hailstones")

// RockModel is the constraint system for one rock throw together with the
// handles of its unknowns.
type RockModel struct {
	Model    *smt.Model
	Position [3]*smt.IntVar
	Velocity [3]*smt.IntVar
	Times    [RockSample]*smt.IntVar
}

// BuildRockModel declares the rock's position and velocity plus one
// collision time per sampled hailstone, all of the given width (zero
// means DefaultWidth). For hailstone i it asserts t_i > 0 and, on each
// axis, p + v*t_i == a_i + va_i*t_i.
func BuildRockModel(stones []Hailstone, width int) (*RockModel, error) {
	if len(stones) < RockSample {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrTooFewHailstones, RockSample, len(stones))
	}
	if width == 0 {
		width = DefaultWidth
	}

	m := smt.NewModel()
	rm := &RockModel{Model: m}
	for axis, name := range []string{"x", "y", "z"} {
		rm.Position[axis] = m.NewIntVar(name, width)
	}
	for axis, name := range []string{"vx", "vy", "vz"} {
		rm.Velocity[axis] = m.NewIntVar(name, width)
	}

	for i, h := range stones[:RockSample] {
		t := m.NewIntVar(fmt.Sprintf("t%d", i), width)
		rm.Times[i] = t
		m.Assert(smt.Gt(t, smt.Const(0)))

		pos, vel := h.Position(), h.Velocity()
		for axis := 0; axis < 3; axis++ {
			rock := smt.Add(rm.Position[axis], smt.Mul(rm.Velocity[axis], t))
			stone := smt.Add(smt.Const(pos[axis]), smt.Mul(smt.Const(vel[axis]), t))
			m.Assert(smt.Eq(rock, stone))
		}
	}

	return rm, nil
}

// RockOptions configures ThrowRock. The zero value solves with 64-bit
// unknowns and the solver's default configuration.
type RockOptions struct {
	// Width is the bit width of every unknown; zero means DefaultWidth.
	Width int

	// Solver overrides the solver configuration; nil means
	// smt.DefaultSolverConfig.
	Solver *smt.SolverConfig

	// Monitor, if set, collects solver statistics.
	Monitor *smt.SolverMonitor

	// Logger receives debug output; nil disables it.
	Logger *zap.Logger
}

// RockResult is the outcome of ThrowRock. Rock and Times are only
// meaningful when Status is smt.Sat.
type RockResult struct {
	Status smt.Status
	Rock   Hailstone
	Times  [RockSample]int64

	// sum is X+Y+Z as evaluated by the solver with overflow checking.
	sum int64
}

// Sum returns the sum of the rock's position components.
func (r RockResult) Sum() int64 {
	return r.sum
}

// ThrowRock finds a rock trajectory that hits the first RockSample
// hailstones at positive times. An unsatisfiable or undecided system is
// reported through RockResult.Status with a nil error.
func ThrowRock(ctx context.Context, stones []Hailstone, opts RockOptions) (RockResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	rm, err := BuildRockModel(stones, opts.Width)
	if err != nil {
		return RockResult{}, err
	}
	log.Debug("rock model built",
		zap.Int("hailstones", len(stones)),
		zap.Int("variables", rm.Model.VariableCount()),
		zap.Int("constraints", rm.Model.ConstraintCount()))

	cfg := opts.Solver
	if cfg == nil {
		cfg = smt.DefaultSolverConfig()
	}
	if cfg.Logger == nil {
		withLog := *cfg
		withLog.Logger = log
		cfg = &withLog
	}

	solver := smt.NewSolverWithConfig(rm.Model, cfg)
	if opts.Monitor != nil {
		solver.SetMonitor(opts.Monitor)
	}

	status, err := solver.Check(ctx)
	if err != nil {
		return RockResult{Status: status}, fmt.Errorf("solve rock model: %w", err)
	}
	result := RockResult{Status: status}
	if status != smt.Sat {
		log.Debug("rock model not satisfiable", zap.Stringer("status", status))
		return result, nil
	}

	sol, err := solver.Solution()
	if err != nil {
		return RockResult{Status: status}, err
	}
	sum, err := sol.Eval(smt.Add(rm.Position[0], rm.Position[1], rm.Position[2]))
	if err != nil {
		return RockResult{Status: status}, fmt.Errorf("rock position sum: %w", err)
	}
	result.sum = sum

	result.Rock = Hailstone{
		X: sol.Value(rm.Position[0]), Y: sol.Value(rm.Position[1]), Z: sol.Value(rm.Position[2]),
		VX: sol.Value(rm.Velocity[0]), VY: sol.Value(rm.Velocity[1]), VZ: sol.Value(rm.Velocity[2]),
	}
	for i, t := range rm.Times {
		result.Times[i] = sol.Value(t)
	}
	log.Debug("rock found",
		zap.Stringer("rock", result.Rock),
		zap.Int64("sum", result.sum),
		zap.Int64s("times", result.Times[:]))
	return result, nil
}
