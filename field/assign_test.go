package field

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/particle-hero/shape"
)

func builtField(t *testing.T, spacing float64, w, h int) *Field {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Spacing = spacing
	f := New(cfg, nil)
	f.Build(w, h)
	return f
}

func TestMatchGrid_EquivalentToLinear(t *testing.T) {
	tests := []struct {
		spacing float64
		w, h    int
		n       int
	}{
		{40, 400, 200, 30},
		{40, 400, 200, 50},
		{40, 400, 200, 80},
		{24, 1000, 600, 400},
		{17, 333, 211, 150},
		{8, 640, 320, 2000},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d_%gpx_%dx%d_n%d", i, tt.spacing, tt.w, tt.h, tt.n), func(t *testing.T) {
			f := builtField(t, tt.spacing, tt.w, tt.h)
			coords := randomPoints(tt.n, tt.w, tt.h, int64(i+1))
			n := min(len(coords), f.Len())

			want := matchLinear(f.particles, f.lat, coords, n)
			got := matchGrid(f.particles, f.lat, coords, n)
			assert.Equal(t, want, got)
		})
	}
}

func TestMatchGrid_CoordsOutsideLattice(t *testing.T) {
	f := builtField(t, 40, 400, 200)
	// Corners and margins outside the anchor box
	coords := []shape.Point{{X: 0, Y: 0}, {X: 399, Y: 199}, {X: 0, Y: 199}, {X: 399, Y: 0}, {X: 200, Y: 0}, {X: 5, Y: 100}}

	want := matchLinear(f.particles, f.lat, coords, len(coords))
	got := matchGrid(f.particles, f.lat, coords, len(coords))
	assert.Equal(t, want, got)
}

func TestMatch_TieGoesToLowerIndex(t *testing.T) {
	f := builtField(t, 40, 400, 200)
	// Equidistant between anchors 0 (20,20) and 1 (60,20)
	coords := []shape.Point{{X: 40, Y: 20}, {X: 40, Y: 20}}

	for name, match := range map[string]matchFunc{"linear": matchLinear, "grid": matchGrid} {
		t.Run(name, func(t *testing.T) {
			got := match(f.particles, f.lat, coords, 2)
			assert.Equal(t, []int{0, 1}, got)
		})
	}
}

func TestMatch_DistinctParticles(t *testing.T) {
	f := builtField(t, 40, 400, 200)
	// Every coordinate piles on one spot
	coords := make([]shape.Point, 50)
	for i := range coords {
		coords[i] = shape.Point{X: 200, Y: 100}
	}

	for name, match := range map[string]matchFunc{"linear": matchLinear, "grid": matchGrid} {
		t.Run(name, func(t *testing.T) {
			got := match(f.particles, f.lat, coords, 50)
			seen := make(map[int]bool)
			for _, j := range got {
				require.GreaterOrEqual(t, j, 0)
				require.False(t, seen[j], "particle %d assigned twice", j)
				seen[j] = true
			}
			assert.Len(t, seen, 50)
		})
	}
}

func TestMatchGrid_EmptyLattice(t *testing.T) {
	f := builtField(t, 40, 10, 10)
	got := matchGrid(f.particles, f.lat, []shape.Point{{X: 1, Y: 1}}, 1)
	assert.Equal(t, []int{-1}, got)
}

func TestSelectMatcher(t *testing.T) {
	same := func(a, b matchFunc) bool {
		return fmt.Sprintf("%p", a) == fmt.Sprintf("%p", b)
	}

	assert.True(t, same(matchLinear, selectMatcher(MatcherLinear, 10_000, 10_000)))
	assert.True(t, same(matchGrid, selectMatcher(MatcherGrid, 1, 1)))
	assert.True(t, same(matchLinear, selectMatcher(MatcherAuto, 100, 100)))
	assert.True(t, same(matchGrid, selectMatcher(MatcherAuto, 1000, 1000)))
	assert.True(t, same(matchLinear, selectMatcher("", 500, 500)))
}
