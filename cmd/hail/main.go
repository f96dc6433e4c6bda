// Command hail answers questions about hailstone trajectories.
//
//	hail [throw]   print x+y+z of the rock that hits the first three hailstones
//	hail cross     print how many pairs of XY paths cross inside the test area
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/hailstone/internal/config"
	"github.com/gitrdm/hailstone/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	inputPath  string
	timeout    time.Duration

	// Loaded settings
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hail",
	Short: "Find the rock throw that shatters the hailstones",
	Long: `hail reads one hailstone per line, "px, py, pz @ vx, vy, vz",
and finds the integer position and velocity of a rock that collides with
the first three hailstones at positive times. It prints the sum of the
rock's starting coordinates.

Nothing is printed when no such rock exists.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("input") {
			loaded.Input = inputPath
		}
		if cmd.Flags().Changed("timeout") {
			loaded.Solver.Timeout = timeout.String()
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		base, err := logging.New(cfg.Logging.Level, verbose)
		if err != nil {
			return err
		}
		logger, _ = logging.WithRun(base)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runThrow,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "Hailstone file (default from config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Solver timeout (0 = none)")

	crossCmd.Flags().Int64Var(&crossMin, "min", 0, "Lower bound of the test area (default from config)")
	crossCmd.Flags().Int64Var(&crossMax, "max", 0, "Upper bound of the test area (default from config)")

	rootCmd.AddCommand(throwCmd)
	rootCmd.AddCommand(crossCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
