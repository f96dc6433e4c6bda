package hail

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleStones = []Hailstone{
	{X: 19, Y: 13, Z: 30, VX: -2, VY: 1, VZ: -2},
	{X: 18, Y: 19, Z: 22, VX: -1, VY: -1, VZ: -2},
	{X: 20, Y: 25, Z: 34, VX: -2, VY: -2, VZ: -4},
	{X: 12, Y: 31, Z: 28, VX: -1, VY: -2, VZ: -1},
	{X: 20, Y: 19, Z: 15, VX: 1, VY: -5, VZ: -3},
}

func TestParseInts(t *testing.T) {
	tests := []struct {
		line string
		want []int64
	}{
		{"19, 13, 30 @ -2,  1, -2", []int64{19, 13, 30, -2, 1, -2}},
		{"", []int64{}},
		{"no numbers here", []int64{}},
		{"x=-7;y=42", []int64{-7, 42}},
		{"9223372036854775807 @ -9223372036854775808", []int64{9223372036854775807, -9223372036854775808}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseInts(tt.line)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseInts(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseInts_Overflow(t *testing.T) {
	_, err := ParseInts("1, 2, 99999999999999999999")
	assert.ErrorIs(t, err, ErrRange)
}

func TestParseHailstone(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Hailstone
	}{
		{"puzzle layout", "19, 13, 30 @ -2,  1, -2", exampleStones[0]},
		{"letters between fields", "a19bb-13c0dd-2e1f-2", Hailstone{X: 19, Y: -13, Z: 0, VX: -2, VY: 1, VZ: -2}},
		{"words and padding", "  pos 7 then 8 then 9 vel 0 then -1 then 42 end", Hailstone{X: 7, Y: 8, Z: 9, VY: -1, VZ: 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHailstone(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h)
			assert.Equal(t, [3]int64{tt.want.X, tt.want.Y, tt.want.Z}, h.Position())
			assert.Equal(t, [3]int64{tt.want.VX, tt.want.VY, tt.want.VZ}, h.Velocity())
		})
	}
}

func TestParseHailstone_Arity(t *testing.T) {
	for _, line := range []string{
		"1, 2, 3 @ 4, 5",
		"1, 2, 3 @ 4, 5, 6, 7",
		"",
	} {
		_, err := ParseHailstone(line)
		assert.ErrorIs(t, err, ErrArity, "line %q", line)
	}
}

func TestHailstone_StringRoundTrip(t *testing.T) {
	stones := append(append([]Hailstone(nil), exampleStones...), Hailstone{X: -1 << 63, Y: 1<<63 - 1, VZ: -5})
	layouts := []struct {
		name   string
		render func(h Hailstone) string
	}{
		{"String", Hailstone.String},
		{"alphabetic separators", func(h Hailstone) string {
			return fmt.Sprintf("a%dbb%dc%ddd%de%df%d", h.X, h.Y, h.Z, h.VX, h.VY, h.VZ)
		}},
		{"words", func(h Hailstone) string {
			return fmt.Sprintf("at %d and %d and %d moving %d and %d and %d", h.X, h.Y, h.Z, h.VX, h.VY, h.VZ)
		}},
	}
	for _, layout := range layouts {
		t.Run(layout.name, func(t *testing.T) {
			for _, h := range stones {
				line := layout.render(h)
				got, err := ParseHailstone(line)
				require.NoError(t, err, line)
				assert.Equal(t, h, got, line)
			}
		})
	}
}

func TestParseHailstones(t *testing.T) {
	var sb strings.Builder
	for _, h := range exampleStones {
		sb.WriteString(h.String())
		sb.WriteString("\n\n")
	}

	got, err := ParseHailstones(strings.NewReader(sb.String()))
	require.NoError(t, err)
	if diff := cmp.Diff(exampleStones, got); diff != "" {
		t.Errorf("ParseHailstones mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHailstones_ReportsLine(t *testing.T) {
	input := "19, 13, 30 @ -2, 1, -2\n\n18, 19, 22 @ -1, -1\n"
	_, err := ParseHailstones(strings.NewReader(input))
	require.ErrorIs(t, err, ErrArity)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadHailstones(t *testing.T) {
	got, err := LoadHailstones(filepath.Join("testdata", "example.txt"))
	require.NoError(t, err)
	if diff := cmp.Diff(exampleStones, got); diff != "" {
		t.Errorf("LoadHailstones mismatch (-want +got):\n%s", diff)
	}

	_, err = LoadHailstones(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
