// Package hail reads hailstone observations and answers questions about
// their straight-line trajectories: which rock throw passes through the
// first three of them, and how many pairs of paths cross inside a test
// area.
package hail

import "fmt"

// Hailstone is a position and a velocity observed at time zero.
type Hailstone struct {
	X, Y, Z    int64
	VX, VY, VZ int64
}

// Position returns the position as an (x, y, z) triple.
func (h Hailstone) Position() [3]int64 {
	return [3]int64{h.X, h.Y, h.Z}
}

// Velocity returns the velocity as an (x, y, z) triple.
func (h Hailstone) Velocity() [3]int64 {
	return [3]int64{h.VX, h.VY, h.VZ}
}

// String renders the hailstone in the input format, so that
// ParseHailstone(h.String()) == h.
func (h Hailstone) String() string {
	return fmt.Sprintf("%d, %d, %d @ %d, %d, %d", h.X, h.Y, h.Z, h.VX, h.VY, h.VZ)
}
