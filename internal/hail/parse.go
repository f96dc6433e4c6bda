package hail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrArity is returned for a line that does not hold exactly six integers.
	ErrArity = errors.New("hailstone needs exactly six integers")

	// ErrRange is returned for an integer literal outside the int64 range.
	ErrRange = errors.New("integer out of range")
)

var intPattern = regexp.MustCompile(`-?\d+`)

// ParseInts extracts every integer in line, left to right. Any text
// between the numbers is ignored.
func ParseInts(line string) ([]int64, error) {
	matches := intPattern.FindAllString(line, -1)
	out := make([]int64, 0, len(matches))
	for _, s := range matches {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrRange, s)
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseHailstone parses one "px, py, pz @ vx, vy, vz" line.
func ParseHailstone(line string) (Hailstone, error) {
	nums, err := ParseInts(line)
	if err != nil {
		return Hailstone{}, err
	}
	if len(nums) != 6 {
		return Hailstone{}, fmt.Errorf("%w: got %d in %q", ErrArity, len(nums), line)
	}
	return Hailstone{
		X: nums[0], Y: nums[1], Z: nums[2],
		VX: nums[3], VY: nums[4], VZ: nums[5],
	}, nil
}

// ParseHailstones reads one hailstone per non-blank line, in order.
func ParseHailstones(r io.Reader) ([]Hailstone, error) {
	var stones []Hailstone
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h, err := ParseHailstone(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		stones = append(stones, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read hailstones: %w", err)
	}
	return stones, nil
}

// LoadHailstones parses the file at path.
func LoadHailstones(path string) ([]Hailstone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hailstones: %w", err)
	}
	defer f.Close()

	stones, err := ParseHailstones(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stones, nil
}
