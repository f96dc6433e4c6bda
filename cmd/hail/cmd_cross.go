package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/hailstone/internal/hail"
)

var (
	crossMin int64
	crossMax int64
)

// crossCmd counts future path crossings in the XY plane
var crossCmd = &cobra.Command{
	Use:   "cross",
	Short: "Count pairs of hailstone paths that cross inside the test area",
	Long: `Ignoring the Z axis, counts the pairs of hailstones whose paths cross
at a point with min <= x <= max and min <= y <= max, where neither
hailstone has passed that point yet.`,
	Args: cobra.NoArgs,
	RunE: runCross,
}

func runCross(cmd *cobra.Command, args []string) error {
	lo, hi := cfg.Crossing.Min, cfg.Crossing.Max
	if cmd.Flags().Changed("min") {
		lo = crossMin
	}
	if cmd.Flags().Changed("max") {
		hi = crossMax
	}
	if lo > hi {
		return fmt.Errorf("invalid test area: min %d > max %d", lo, hi)
	}

	stones, err := hail.LoadHailstones(cfg.Input)
	if err != nil {
		return err
	}

	n := hail.CountCrossings(stones, lo, hi)
	logger.Debug("crossings counted",
		zap.Int("hailstones", len(stones)),
		zap.Int64("min", lo),
		zap.Int64("max", hi),
		zap.Int("crossings", n))
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}
