package smt

// monitor.go: monitoring and statistics for satisfiability checks

import (
	"fmt"
	"sync"
	"time"
)

// SolverStats holds statistics about the checks a Solver performed
type SolverStats struct {
	// Check statistics
	Checks     int           // Number of Check calls
	LastStatus Status        // Outcome of the most recent check
	Engines    []string      // Engines run by the most recent check, in order
	CheckTime  time.Duration // Total time spent in Check

	// Algebraic engine statistics
	BasisSize  int // Size of the last reduced Gröbner basis
	SPairs     int // S-polynomials reduced
	Reductions int // S-polynomials with a nonzero remainder

	// Bit-blasting engine statistics
	CircuitNodes int // And-inverter graph size of the last encoding
	Roots        int // Constraint literals asserted
	BlastWidth   int // Variable width cap of the last encoding
	Encodings    int // Circuits encoded, one per width tried
}

// SolverMonitor provides monitoring capabilities for the Solver
type SolverMonitor struct {
	mu         sync.Mutex
	stats      *SolverStats
	checkStart time.Time
}

// NewSolverMonitor creates a new solver monitor
func NewSolverMonitor() *SolverMonitor {
	return &SolverMonitor{
		stats: &SolverStats{},
	}
}

// GetStats returns a copy of the current statistics
func (m *SolverMonitor) GetStats() *SolverStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := *m.stats
	stats.Engines = append([]string(nil), m.stats.Engines...)
	return &stats
}

func (m *SolverMonitor) startCheck() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Checks++
	m.stats.Engines = m.stats.Engines[:0]
	m.checkStart = time.Now()
}

func (m *SolverMonitor) finishCheck() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.checkStart.IsZero() {
		m.stats.CheckTime += time.Since(m.checkStart)
		m.checkStart = time.Time{}
	}
}

func (m *SolverMonitor) recordEngine(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Engines = append(m.stats.Engines, name)
}

func (m *SolverMonitor) recordStatus(s Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.LastStatus = s
}

func (m *SolverMonitor) recordGroebner(basisSize int, gs groebnerStats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.BasisSize = basisSize
	m.stats.SPairs += gs.pairs
	m.stats.Reductions += gs.reductions
}

func (m *SolverMonitor) recordCircuit(nodes, roots, width int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.CircuitNodes = nodes
	m.stats.Roots = roots
	m.stats.BlastWidth = width
	m.stats.Encodings++
}

// String returns a formatted summary of the statistics
func (s *SolverStats) String() string {
	return fmt.Sprintf(`Solver Statistics:
  Checks: %d (last: %s, engines: %v)
  Check Time: %v
  Groebner: basis=%d s-pairs=%d reductions=%d
  Circuit: nodes=%d roots=%d width=%d encodings=%d`,
		s.Checks, s.LastStatus, s.Engines,
		s.CheckTime,
		s.BasisSize, s.SPairs, s.Reductions,
		s.CircuitNodes, s.Roots, s.BlastWidth, s.Encodings)
}
