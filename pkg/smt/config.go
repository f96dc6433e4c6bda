package smt

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Strategy selects the decision procedure used by Solver.Check.
type Strategy string

const (
	// StrategyAuto runs the algebraic engine first and, when it cannot
	// decide and BitBlastFallback is set, the bit-blasting engine.
	StrategyAuto Strategy = "auto"

	// StrategyAlgebraic uses only the Gröbner basis engine.
	StrategyAlgebraic Strategy = "algebraic"

	// StrategyBitBlast uses only the SAT-based bit-blasting engine.
	StrategyBitBlast Strategy = "bitblast"
)

// ParseStrategy converts a configuration string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAuto, StrategyAlgebraic, StrategyBitBlast:
		return Strategy(s), nil
	case "":
		return StrategyAuto, nil
	default:
		return "", fmt.Errorf("unknown solver strategy %q", s)
	}
}

// SolverConfig configures the solver's behavior.
type SolverConfig struct {
	// Strategy selects the engine(s) Check runs.
	Strategy Strategy

	// BitBlastFallback lets StrategyAuto hand undecided problems to the
	// bit-blasting engine.
	BitBlastFallback bool

	// BitBlastWidths are variable width caps the bit-blasting engine tries,
	// in ascending order, before encoding variables at their declared
	// widths. Narrow encodings answer small-valued models quickly; unsat at
	// a narrow width is not final. Nil means declared widths only.
	BitBlastWidths []int

	// MaxPairs bounds the number of S-pairs the Gröbner engine reduces
	// before giving up with Unknown. Zero means no limit.
	MaxPairs int

	// PollInterval is how often a running SAT search checks for
	// context cancellation.
	PollInterval time.Duration

	// Logger receives debug-level progress. Nil means no logging.
	Logger *zap.Logger
}

// DefaultSolverConfig returns sensible default configuration.
func DefaultSolverConfig() *SolverConfig {
	return &SolverConfig{
		Strategy:         StrategyAuto,
		BitBlastFallback: true,
		BitBlastWidths:   []int{8, 16, 32},
		MaxPairs:         100000,
		PollInterval:     10 * time.Millisecond,
	}
}

func (c *SolverConfig) logger() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *SolverConfig) pollInterval() time.Duration {
	if c == nil || c.PollInterval <= 0 {
		return 10 * time.Millisecond
	}
	return c.PollInterval
}
