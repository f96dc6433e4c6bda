package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/hailstone/internal/hail"
	"github.com/gitrdm/hailstone/pkg/smt"
)

// throwCmd solves for the rock
var throwCmd = &cobra.Command{
	Use:   "throw",
	Short: "Print x+y+z of the rock that hits the first three hailstones",
	Args:  cobra.NoArgs,
	RunE:  runThrow,
}

func runThrow(cmd *cobra.Command, args []string) error {
	stones, err := hail.LoadHailstones(cfg.Input)
	if err != nil {
		return err
	}
	logger.Debug("hailstones loaded", zap.String("input", cfg.Input), zap.Int("count", len(stones)))

	ctx, cancel := solveContext()
	defer cancel()

	mon := smt.NewSolverMonitor()
	res, err := hail.ThrowRock(ctx, stones, hail.RockOptions{
		Width:   cfg.Solver.Width,
		Solver:  cfg.SolverConfig(),
		Monitor: mon,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	stats := mon.GetStats()
	logger.Debug("solver finished",
		zap.Stringer("status", res.Status),
		zap.Strings("engines", stats.Engines),
		zap.Int("basis", stats.BasisSize),
		zap.Int("s_pairs", stats.SPairs),
		zap.Int("blast_width", stats.BlastWidth),
		zap.Duration("elapsed", stats.CheckTime))

	if res.Status != smt.Sat {
		logger.Warn("no rock trajectory hits the hailstones", zap.Stringer("status", res.Status))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Sum())
	return nil
}

// solveContext is cancelled on SIGINT/SIGTERM and after the configured
// solver timeout, if any.
func solveContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	d := cfg.GetSolveTimeout()
	if d <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	return ctx, func() {
		cancel()
		stop()
	}
}
