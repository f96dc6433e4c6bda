// Package config loads the hail command's settings from a YAML file,
// with environment variable and command-line overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/hailstone/pkg/smt"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "hail.yaml"

// Config holds all settings.
type Config struct {
	// Input is the hailstone file.
	Input string `yaml:"input"`

	Solver   SolverConfig   `yaml:"solver"`
	Crossing CrossingConfig `yaml:"crossing"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SolverConfig configures the rock solver.
type SolverConfig struct {
	Strategy         string `yaml:"strategy"` // auto, algebraic, bitblast
	Width            int    `yaml:"width"`    // bit width of every unknown
	BitBlastFallback bool   `yaml:"bitblast_fallback"`
	BitBlastWidths   []int  `yaml:"bitblast_widths"` // narrow encodings tried first
	MaxPairs         int    `yaml:"max_pairs"`       // 0 = unlimited
	Timeout          string `yaml:"timeout"`         // empty = no timeout
}

// CrossingConfig bounds the test area of the cross command.
type CrossingConfig struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Input: "../puzzle/day24/input",

		Solver: SolverConfig{
			Strategy:         string(smt.StrategyAuto),
			Width:            64,
			BitBlastFallback: true,
			BitBlastWidths:   []int{8, 16, 32},
			MaxPairs:         100000,
		},

		Crossing: CrossingConfig{
			Min: 200000000000000,
			Max: 400000000000000,
		},

		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if path := os.Getenv("HAIL_INPUT"); path != "" {
		c.Input = path
	}
	if strategy := os.Getenv("HAIL_STRATEGY"); strategy != "" {
		c.Solver.Strategy = strategy
	}
	if level := os.Getenv("HAIL_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if width := os.Getenv("HAIL_WIDTH"); width != "" {
		n, err := strconv.Atoi(width)
		if err != nil {
			return fmt.Errorf("invalid HAIL_WIDTH %q: %w", width, err)
		}
		c.Solver.Width = n
	}
	return nil
}

// GetSolveTimeout returns the solver timeout, or zero for none.
func (c *Config) GetSolveTimeout() time.Duration {
	if c.Solver.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Solver.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path not configured (set input, HAIL_INPUT, or --input)")
	}
	if _, err := smt.ParseStrategy(c.Solver.Strategy); err != nil {
		return fmt.Errorf("invalid solver strategy: %w", err)
	}
	if c.Solver.Width < 1 || c.Solver.Width > 64 {
		return fmt.Errorf("invalid solver width: %d (valid: 1..64)", c.Solver.Width)
	}
	for _, w := range c.Solver.BitBlastWidths {
		if w < 1 || w > 64 {
			return fmt.Errorf("invalid solver bitblast_widths entry: %d (valid: 1..64)", w)
		}
	}
	if c.Solver.MaxPairs < 0 {
		return fmt.Errorf("invalid solver max_pairs: %d", c.Solver.MaxPairs)
	}
	if c.Solver.Timeout != "" {
		if d, err := time.ParseDuration(c.Solver.Timeout); err != nil || d < 0 {
			return fmt.Errorf("invalid solver timeout: %q", c.Solver.Timeout)
		}
	}
	if c.Crossing.Min > c.Crossing.Max {
		return fmt.Errorf("invalid crossing area: min %d > max %d", c.Crossing.Min, c.Crossing.Max)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}

// SolverConfig converts the solver settings for pkg/smt. Call Validate
// first; an unknown strategy is passed through and rejected by the solver.
func (c *Config) SolverConfig() *smt.SolverConfig {
	sc := smt.DefaultSolverConfig()
	if s, err := smt.ParseStrategy(c.Solver.Strategy); err == nil {
		sc.Strategy = s
	} else {
		sc.Strategy = smt.Strategy(c.Solver.Strategy)
	}
	sc.BitBlastFallback = c.Solver.BitBlastFallback
	sc.BitBlastWidths = append([]int(nil), c.Solver.BitBlastWidths...)
	sc.MaxPairs = c.Solver.MaxPairs
	return sc
}
