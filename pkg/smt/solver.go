// Package smt provides a small satisfiability solver over bounded integers.
// This file implements the Solver, which runs the configured engines over a
// Model and holds the resulting Solution.
//
// # Usage
//
//	model := smt.NewModel()
//	x := model.NewIntVar("x", 64)
//	model.Assert(smt.Eq(smt.Mul(smt.Const(3), x), smt.Const(12)))
//
//	solver := smt.NewSolver(model)
//	status, err := solver.Check(ctx)
//	if err != nil { ... }
//	if status == smt.Sat {
//	    sol, _ := solver.Solution()
//	    fmt.Println(sol.Value(x)) // 4
//	}
//
// The Solution is only available after a Check that returned Sat; asking
// for it at any other time returns ErrNoSolution.
package smt

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// ErrNoSolution is returned by Solver.Solution when the last Check did not
// report Sat.
var ErrNoSolution = errors.New("no solution available: last check was not sat")

// Status is the outcome of a satisfiability check.
type Status int

const (
	// Unknown means no engine could decide the model.
	Unknown Status = iota
	// Sat means an assignment satisfying every constraint was found.
	Sat
	// Unsat means no assignment satisfies every constraint.
	Unsat
)

// String returns the conventional lowercase name.
func (s Status) String() string {
	switch s {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// engine is one decision procedure. Sat results carry one value per model
// variable, indexed by IntVar.ID.
type engine interface {
	name() string
	solve(ctx context.Context, m *Model, mon *SolverMonitor) (Status, []*big.Int, error)
}

// Solver checks a Model for satisfiability.
//
// Thread safety: Solver instances are NOT thread-safe. Several solvers may
// share one fully constructed Model.
type Solver struct {
	// model is the constraint system being checked (read-only)
	model *Model

	// config holds engine selection and limits
	config *SolverConfig

	// monitor tracks solving statistics (optional)
	monitor *SolverMonitor

	// solution is the result of the last Sat check
	solution *Solution
}

// NewSolver creates a solver for the given model.
// The model should be fully constructed before creating the solver.
func NewSolver(model *Model) *Solver {
	return &Solver{
		model:  model,
		config: model.Config(),
	}
}

// NewSolverWithConfig creates a solver with custom configuration that
// overrides the model's.
func NewSolverWithConfig(model *Model, config *SolverConfig) *Solver {
	if config == nil {
		config = model.Config()
	}
	return &Solver{
		model:  model,
		config: config,
	}
}

// SetMonitor enables statistics collection during solving.
func (s *Solver) SetMonitor(monitor *SolverMonitor) {
	s.monitor = monitor
}

// Model returns the model being solved.
func (s *Solver) Model() *Model {
	return s.model
}

// Check decides whether the model's constraints can all hold at once.
// Cancelling ctx stops the running engine; Check then returns Unknown
// together with ctx.Err().
func (s *Solver) Check(ctx context.Context) (Status, error) {
	s.solution = nil

	if err := s.model.Validate(); err != nil {
		return Unknown, err
	}

	engines, err := s.engines()
	if err != nil {
		return Unknown, err
	}

	log := s.config.logger()
	if s.monitor != nil {
		s.monitor.startCheck()
		defer s.monitor.finishCheck()
	}

	status := Unknown
	for _, eng := range engines {
		if s.monitor != nil {
			s.monitor.recordEngine(eng.name())
		}
		var values []*big.Int
		status, values, err = eng.solve(ctx, s.model, s.monitor)
		if err != nil {
			return Unknown, fmt.Errorf("%s engine: %w", eng.name(), err)
		}
		log.Debug("engine finished",
			zap.String("engine", eng.name()),
			zap.Stringer("status", status))
		if status == Sat {
			s.solution = newSolution(s.model, values)
		}
		if status != Unknown {
			break
		}
	}

	if s.monitor != nil {
		s.monitor.recordStatus(status)
	}
	return status, nil
}

// Solution returns the assignment found by the last Check.
func (s *Solver) Solution() (*Solution, error) {
	if s.solution == nil {
		return nil, ErrNoSolution
	}
	return s.solution, nil
}

func (s *Solver) engines() ([]engine, error) {
	cfg := s.config
	if cfg == nil {
		cfg = DefaultSolverConfig()
	}
	algebraic := &algebraicEngine{maxPairs: cfg.MaxPairs, log: cfg.logger()}
	bitblast := &bitBlastEngine{
		widths: cfg.BitBlastWidths,
		poll:   cfg.pollInterval(),
		log:    cfg.logger(),
	}

	switch cfg.Strategy {
	case StrategyAuto, "":
		if cfg.BitBlastFallback {
			return []engine{algebraic, bitblast}, nil
		}
		return []engine{algebraic}, nil
	case StrategyAlgebraic:
		return []engine{algebraic}, nil
	case StrategyBitBlast:
		return []engine{bitblast}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidModel, cfg.Strategy)
	}
}
