package smt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// stone is a position and velocity at time zero.
type stone [6]int64

// interceptModel builds the rock-throwing system over the given stones:
// p + v*t_i == a_i + va_i*t_i on each axis, with t_i > 0.
func interceptModel(stones []stone, width int, config *SolverConfig) (*Model, []*IntVar, []*IntVar) {
	m := NewModelWithConfig(config)
	rock := m.NewIntVars([]string{"x", "y", "z", "vx", "vy", "vz"}, width)
	times := make([]*IntVar, len(stones))
	for i, s := range stones {
		t := m.NewIntVar("", width)
		times[i] = t
		m.Assert(Gt(t, Const(0)))
		for axis := 0; axis < 3; axis++ {
			m.Assert(Eq(
				Add(rock[axis], Mul(rock[axis+3], t)),
				Add(Const(s[axis]), Mul(Const(s[axis+3]), t)),
			))
		}
	}
	return m, rock, times
}

var canonicalStones = []stone{
	{19, 13, 30, -2, 1, -2},
	{18, 19, 22, -1, -1, -2},
	{20, 25, 34, -2, -2, -4},
}

// synthesize places stones on a known rock trajectory.
func synthesize(p, v [3]int64, times []int64, velocities [][3]int64) []stone {
	out := make([]stone, len(times))
	for i, t := range times {
		va := velocities[i]
		for k := 0; k < 3; k++ {
			out[i][k] = p[k] + v[k]*t - va[k]*t
			out[i][k+3] = va[k]
		}
	}
	return out
}

func configWith(strategy Strategy) *SolverConfig {
	c := DefaultSolverConfig()
	c.Strategy = strategy
	return c
}

func TestSolver_CanonicalIntercept(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		width    int
	}{
		{"algebraic 64-bit", StrategyAlgebraic, 64},
		{"auto 64-bit", StrategyAuto, 64},
		{"bitblast 8-bit", StrategyBitBlast, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rock, times := interceptModel(canonicalStones, tt.width, configWith(tt.strategy))
			s := NewSolver(m)

			status, err := s.Check(context.Background())
			require.NoError(t, err)
			require.Equal(t, Sat, status)

			sol, err := s.Solution()
			require.NoError(t, err)
			assert.Equal(t, int64(24), sol.Value(rock[0]))
			assert.Equal(t, int64(13), sol.Value(rock[1]))
			assert.Equal(t, int64(10), sol.Value(rock[2]))
			assert.Equal(t, int64(-3), sol.Value(rock[3]))
			assert.Equal(t, int64(1), sol.Value(rock[4]))
			assert.Equal(t, int64(2), sol.Value(rock[5]))
			assert.Equal(t, int64(5), sol.Value(times[0]))
			assert.Equal(t, int64(3), sol.Value(times[1]))
			assert.Equal(t, int64(4), sol.Value(times[2]))

			sum, err := sol.Eval(Add(rock[0], rock[1], rock[2]))
			require.NoError(t, err)
			assert.Equal(t, int64(47), sum)
		})
	}
}

func TestSolver_SyntheticLargeMagnitudes(t *testing.T) {
	p := [3]int64{191146615936494, 342596108503183, 131079628110881}
	v := [3]int64{139, -93, 245}
	stones := synthesize(p, v,
		[]int64{943360929451, 520946848364, 1093125019283},
		[][3]int64{{-193, -76, -135}, {-54, -157, 43}, {67, -45, -9}})

	m, rock, _ := interceptModel(stones, 64, configWith(StrategyAlgebraic))
	s := NewSolver(m)
	status, err := s.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, Sat, status)

	sol, err := s.Solution()
	require.NoError(t, err)
	sum, err := sol.Eval(Add(rock[0], rock[1], rock[2]))
	require.NoError(t, err)
	assert.Equal(t, p[0]+p[1]+p[2], sum)
}

func TestSolver_ParallelTracksUnsat(t *testing.T) {
	stones := []stone{
		{0, 0, 0, 1, 1, 1},
		{1, 0, 0, 1, 1, 1},
		{0, 1, 0, 1, 1, 1},
	}
	for _, strategy := range []Strategy{StrategyAlgebraic, StrategyBitBlast} {
		t.Run(string(strategy), func(t *testing.T) {
			m, _, _ := interceptModel(stones, 8, configWith(strategy))
			s := NewSolver(m)
			status, err := s.Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Unsat, status)

			_, err = s.Solution()
			assert.ErrorIs(t, err, ErrNoSolution)
		})
	}
}

func TestSolver_NonPositiveTimeUnsat(t *testing.T) {
	// The only algebraic solution has t0 = -2.
	stones := synthesize([3]int64{5, 2, -4}, [3]int64{1, -2, 3},
		[]int64{-2, 3, 6},
		[][3]int64{{2, 1, -1}, {-3, 0, 4}, {0, -1, 1}})

	for _, strategy := range []Strategy{StrategyAlgebraic, StrategyBitBlast} {
		t.Run(string(strategy), func(t *testing.T) {
			m, _, _ := interceptModel(stones, 8, configWith(strategy))
			status, err := NewSolver(m).Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Unsat, status)
		})
	}
}

func TestSolver_AlgebraicEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		build func(m *Model)
		want  Status
	}{
		{
			name: "non-integral point",
			build: func(m *Model) {
				x := m.NewIntVar("x", 16)
				m.Assert(Eq(Mul(Const(2), x), Const(3)))
			},
			want: Unsat,
		},
		{
			name: "point outside width",
			build: func(m *Model) {
				x := m.NewIntVar("x", 8)
				m.Assert(Eq(x, Const(200)))
			},
			want: Unsat,
		},
		{
			name: "point violates disequality",
			build: func(m *Model) {
				x := m.NewIntVar("x", 8)
				m.Assert(Eq(x, Const(5)), Ne(x, Const(5)))
			},
			want: Unsat,
		},
		{
			name: "two roots",
			build: func(m *Model) {
				x := m.NewIntVar("x", 8)
				m.Assert(Eq(Mul(x, x), Const(4)))
			},
			want: Unknown,
		},
		{
			name: "comparisons only",
			build: func(m *Model) {
				x := m.NewIntVar("x", 8)
				m.Assert(Gt(x, Const(3)), Lt(x, Const(5)))
			},
			want: Unknown,
		},
		{
			name:  "empty model",
			build: func(m *Model) { m.NewIntVar("free", 8) },
			want:  Sat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModelWithConfig(configWith(StrategyAlgebraic))
			tt.build(m)
			status, err := NewSolver(m).Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestSolver_AutoFallsBackToBitBlast(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 8)
	y := m.NewIntVar("y", 8)
	m.Assert(
		Eq(Mul(x, x), Const(4)),
		Gt(x, Const(0)),
		Gt(y, x),
		Lt(y, Const(4)),
	)

	s := NewSolver(m)
	mon := NewSolverMonitor()
	s.SetMonitor(mon)

	status, err := s.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, Sat, status)

	sol, err := s.Solution()
	require.NoError(t, err)
	assert.Equal(t, int64(2), sol.Value(x))
	assert.Equal(t, int64(3), sol.Value(y))
	assert.Equal(t, map[string]int64{"x": 2, "y": 3}, sol.Values())

	stats := mon.GetStats()
	assert.Equal(t, []string{"algebraic", "bitblast"}, stats.Engines)
	assert.Equal(t, Sat, stats.LastStatus)
	assert.Equal(t, 1, stats.Checks)
	assert.Positive(t, stats.CircuitNodes)
	assert.Equal(t, 4, stats.Roots)
}

// Stationary stones on one line leave a family of rocks; the algebraic
// engine cannot pick one, so the narrow bit-blast pass must.
func TestSolver_AutoUnderdeterminedIntercept(t *testing.T) {
	defer goleak.VerifyNone(t)

	stones := []stone{{1, 0, 0, 0, 0, 0}, {2, 0, 0, 0, 0, 0}, {3, 0, 0, 0, 0, 0}}
	m, rock, times := interceptModel(stones, 64, nil)
	s := NewSolver(m)
	mon := NewSolverMonitor()
	s.SetMonitor(mon)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	status, err := s.Check(ctx)
	require.NoError(t, err)
	require.Equal(t, Sat, status)

	sol, err := s.Solution()
	require.NoError(t, err)
	for i, st := range stones {
		ti := sol.Value(times[i])
		assert.Positive(t, ti)
		for axis := 0; axis < 3; axis++ {
			at := sol.Value(rock[axis]) + sol.Value(rock[axis+3])*ti
			assert.Equal(t, st[axis]+st[axis+3]*ti, at, "stone %d axis %d", i, axis)
		}
	}

	stats := mon.GetStats()
	assert.Equal(t, []string{"algebraic", "bitblast"}, stats.Engines)
	assert.Equal(t, 8, stats.BlastWidth)
}

func TestSolver_AutoWithoutFallback(t *testing.T) {
	cfg := DefaultSolverConfig()
	cfg.BitBlastFallback = false
	m := NewModelWithConfig(cfg)
	x := m.NewIntVar("x", 8)
	m.Assert(Eq(Mul(x, x), Const(4)))

	status, err := NewSolver(m).Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Unknown, status)
}

func TestSolver_InvalidModel(t *testing.T) {
	m := NewModel()
	m.NewIntVar("wide", 65)

	status, err := NewSolver(m).Check(context.Background())
	assert.Equal(t, Unknown, status)
	assert.ErrorIs(t, err, ErrInvalidModel)

	other := NewModel()
	foreign := other.NewIntVar("foreign", 8)
	m2 := NewModel()
	m2.Assert(Eq(foreign, Const(1)))
	assert.ErrorIs(t, m2.Validate(), ErrInvalidModel)

	m3 := NewModelWithConfig(configWith("portfolio"))
	_, err = NewSolver(m3).Check(context.Background())
	assert.ErrorIs(t, err, ErrInvalidModel)
}

func TestSolver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, strategy := range []Strategy{StrategyAlgebraic, StrategyBitBlast} {
		t.Run(string(strategy), func(t *testing.T) {
			m, _, _ := interceptModel(canonicalStones, 8, configWith(strategy))
			status, err := NewSolver(m).Check(ctx)
			assert.Equal(t, Unknown, status)
			assert.True(t, errors.Is(err, context.Canceled), "err = %v", err)
		})
	}
}

func TestSolver_SolutionBeforeCheck(t *testing.T) {
	m, _, _ := interceptModel(canonicalStones, 64, nil)
	_, err := NewSolver(m).Solution()
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolution_EvalOverflow(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 64)
	m.Assert(Eq(x, Const(1<<62)))

	s := NewSolver(m)
	status, err := s.Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, Sat, status)

	sol, err := s.Solution()
	require.NoError(t, err)
	_, err = sol.Eval(Mul(x, Const(4)))
	assert.ErrorIs(t, err, ErrOverflow)

	other := NewModel().NewIntVar("other", 8)
	_, err = sol.Eval(other)
	assert.Error(t, err)
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []string{"auto", "algebraic", "bitblast"} {
		got, err := ParseStrategy(s)
		require.NoError(t, err)
		assert.Equal(t, Strategy(s), got)
	}
	got, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyAuto, got)

	_, err = ParseStrategy("z3")
	assert.Error(t, err)
}
