package field

import (
	"math"

	"github.com/lixenwraith/particle-hero/shape"
	"github.com/lixenwraith/particle-hero/vmath"
)

// lattice describes the row-major particle layout: index = row*cols + col
type lattice struct {
	cols, rows       int
	offsetX, offsetY float64
	spacing          float64
}

// matchFunc assigns each of the first n coords to a distinct particle
// Result[i] is the particle index for coords[i], or -1 when none is left
type matchFunc func(particles []Particle, lat lattice, coords []shape.Point, n int) []int

// matchLinear is the greedy O(n x particles) scan
// Ties go to the first particle in lattice order
func matchLinear(particles []Particle, _ lattice, coords []shape.Point, n int) []int {
	out := make([]int, n)
	used := make([]bool, len(particles))

	for i := 0; i < n; i++ {
		tx, ty := float64(coords[i].X), float64(coords[i].Y)
		best := -1
		bestDist := math.Inf(1)

		for j := range particles {
			if used[j] {
				continue
			}
			d := vmath.DistanceSq(particles[j].GridX, particles[j].GridY, tx, ty)
			if d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best >= 0 {
			used[best] = true
		}
		out[i] = best
	}
	return out
}

// matchGrid produces the same assignment as matchLinear using the lattice as a
// bucket index: one particle per cell, searched in Chebyshev rings around the
// cell nearest the coordinate until no closer ring can exist
func matchGrid(particles []Particle, lat lattice, coords []shape.Point, n int) []int {
	out := make([]int, n)
	if lat.cols == 0 || lat.rows == 0 {
		for i := range out {
			out[i] = -1
		}
		return out
	}

	used := make([]bool, len(particles))
	maxRing := max(lat.cols, lat.rows)

	for i := 0; i < n; i++ {
		tx, ty := float64(coords[i].X), float64(coords[i].Y)

		c0 := clampIndex(math.Round((tx-lat.offsetX)/lat.spacing), lat.cols)
		r0 := clampIndex(math.Round((ty-lat.offsetY)/lat.spacing), lat.rows)
		off := math.Max(
			math.Abs(tx-(lat.offsetX+float64(c0)*lat.spacing)),
			math.Abs(ty-(lat.offsetY+float64(r0)*lat.spacing)),
		)

		best := -1
		bestDist := math.Inf(1)

		visit := func(c, r int) {
			if c < 0 || c >= lat.cols {
				return
			}
			j := r*lat.cols + c
			if used[j] {
				return
			}
			d := vmath.DistanceSq(particles[j].GridX, particles[j].GridY, tx, ty)
			if d < bestDist || (d == bestDist && j < best) {
				bestDist = d
				best = j
			}
		}

		for k := 0; k <= maxRing; k++ {
			// Every cell in ring k is at least k*spacing-off away on one axis
			lb := float64(k)*lat.spacing - off
			if lb > 0 && lb*lb > bestDist {
				break
			}

			for r := r0 - k; r <= r0+k; r++ {
				if r < 0 || r >= lat.rows {
					continue
				}
				if r == r0-k || r == r0+k {
					for c := c0 - k; c <= c0+k; c++ {
						visit(c, r)
					}
					continue
				}
				visit(c0-k, r)
				visit(c0+k, r)
			}
		}

		if best >= 0 {
			used[best] = true
		}
		out[i] = best
	}
	return out
}

func clampIndex(v float64, n int) int {
	i := int(v)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// selectMatcher resolves the configured matcher for a workload size
func selectMatcher(name string, coords, particles int) matchFunc {
	switch name {
	case MatcherLinear:
		return matchLinear
	case MatcherGrid:
		return matchGrid
	}
	if coords*particles > autoGridThreshold {
		return matchGrid
	}
	return matchLinear
}
