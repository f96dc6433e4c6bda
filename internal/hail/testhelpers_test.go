package hail

import "os"

// shouldRunHeavy returns true when heavy/long-running tests should run even
// if the Go test suite is invoked in short mode. Set HAIL_FORCE_HEAVY=1
// (or "true") to override short-mode skips.
func shouldRunHeavy() bool {
	v := os.Getenv("HAIL_FORCE_HEAVY")
	return v == "1" || v == "true" || v == "TRUE" || v == "True"
}

// onTrack places hailstones so that a rock thrown from p with velocity v
// meets stone i at times[i].
func onTrack(p, v [3]int64, times []int64, velocities [][3]int64) []Hailstone {
	out := make([]Hailstone, len(times))
	for i, t := range times {
		va := velocities[i]
		out[i] = Hailstone{
			X: p[0] + (v[0]-va[0])*t, Y: p[1] + (v[1]-va[1])*t, Z: p[2] + (v[2]-va[2])*t,
			VX: va[0], VY: va[1], VZ: va[2],
		}
	}
	return out
}
