// Package smt provides a small satisfiability solver over bounded integers.
// This file defines the Model abstraction for declaratively building
// constraint systems.
package smt

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidModel is returned by Validate, and by Check, for models that
// cannot be solved as stated.
var ErrInvalidModel = errors.New("invalid model")

// Model represents a constraint system declaratively.
// A model consists of:
//   - Variables: integer unknowns, each bounded by a bit width
//   - Constraints: equalities and comparisons over expressions
//   - Configuration: engine selection and limits
//
// Models are constructed incrementally by adding variables and constraints.
// Once constructed, models are read-only during solving.
//
// Thread safety: Models are safe for concurrent reads during solving,
// but must be constructed sequentially.
type Model struct {
	// variables holds all unknowns in order of creation
	variables []*IntVar

	// constraints holds all asserted constraints
	constraints []Constraint

	// config holds solver configuration
	config *SolverConfig

	// mu protects model during construction
	mu sync.RWMutex
}

// NewModel creates a new empty model with default configuration.
func NewModel() *Model {
	return NewModelWithConfig(nil)
}

// NewModelWithConfig creates a model with custom solver configuration.
func NewModelWithConfig(config *SolverConfig) *Model {
	if config == nil {
		config = DefaultSolverConfig()
	}
	return &Model{
		variables:   make([]*IntVar, 0),
		constraints: make([]Constraint, 0),
		config:      config,
	}
}

// NewIntVar declares an integer unknown ranging over the signed values of
// the given bit width. Widths outside 1..64 are reported by Validate.
func (m *Model) NewIntVar(name string, width int) *IntVar {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := len(m.variables)
	if name == "" {
		name = fmt.Sprintf("v%d", id)
	}
	v := &IntVar{id: id, name: name, width: width, owner: m}
	m.variables = append(m.variables, v)
	return v
}

// NewIntVars declares one unknown per name, all with the same width.
func (m *Model) NewIntVars(names []string, width int) []*IntVar {
	vars := make([]*IntVar, len(names))
	for i, name := range names {
		vars[i] = m.NewIntVar(name, width)
	}
	return vars
}

// Variables returns all variables in the model.
// The returned slice should not be modified.
func (m *Model) Variables() []*IntVar {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.variables
}

// VariableCount returns the number of variables in the model.
func (m *Model) VariableCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.variables)
}

// Assert adds constraints to the model.
func (m *Model) Assert(cs ...Constraint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.constraints = append(m.constraints, cs...)
}

// Constraints returns all constraints in the model.
// The returned slice should not be modified.
func (m *Model) Constraints() []Constraint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.constraints
}

// ConstraintCount returns the number of constraints in the model.
func (m *Model) ConstraintCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.constraints)
}

// Config returns the solver configuration for this model.
func (m *Model) Config() *SolverConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// SetConfig updates the solver configuration.
// Should be called before solving begins.
func (m *Model) SetConfig(config *SolverConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if config != nil {
		m.config = config
	}
}

// String returns a human-readable representation of the model.
func (m *Model) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("Model{variables: %d, constraints: %d}", len(m.variables), len(m.constraints))
}

// Validate checks if the model is well-formed and ready for solving.
// Returns an error wrapping ErrInvalidModel if:
//   - Any variable has a width outside 1..64
//   - Any constraint has a missing side
//   - Any constraint references a variable of another model
func (m *Model) Validate() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, v := range m.variables {
		if v.width < 1 || v.width > 64 {
			return fmt.Errorf("%w: variable %s has width %d, want 1..64", ErrInvalidModel, v.name, v.width)
		}
	}

	for i, c := range m.constraints {
		if c.lhs == nil || c.rhs == nil {
			return fmt.Errorf("%w: constraint %d has a nil side", ErrInvalidModel, i)
		}
		for _, v := range c.Variables() {
			if v.owner != m {
				return fmt.Errorf("%w: constraint %s references foreign variable %s", ErrInvalidModel, c, v.name)
			}
		}
	}

	return nil
}
