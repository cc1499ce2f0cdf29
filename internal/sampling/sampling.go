// Package sampling provides the weighted-draw primitives behind the
// lineage generator. Every function takes an explicit Source, so a run
// is fully determined by the source it was given.
package sampling

import (
	"errors"
	"math"
)

// Source is the random stream threaded through every draw.
// *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// ErrEmptyDistribution indicates a weighted draw over no valid candidates.
var ErrEmptyDistribution = errors.New("sampling: empty distribution")

// Weighted pairs a candidate with its relative weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// PickWeighted draws one item with probability proportional to its weight.
// Zero and negative weights are skipped; if no positive weight remains the
// draw fails with ErrEmptyDistribution.
func PickWeighted[T any](items []Weighted[T], src Source) (T, error) {
	var zero T
	total := 0.0
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	if total <= 0 {
		return zero, ErrEmptyDistribution
	}

	target := src.Float64() * total
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		target -= it.Weight
		if target < 0 {
			return it.Item, nil
		}
	}
	// Round-off can leave target at exactly zero; settle on the last
	// positive-weight item.
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Weight > 0 {
			return items[i].Item, nil
		}
	}
	return zero, ErrEmptyDistribution
}

// Bernoulli draws true with probability p. Values outside [0,1] are
// clamped rather than rejected; rate tables carry rounding noise.
// p <= 0 and p >= 1 short-circuit without consuming a draw.
func Bernoulli(p float64, src Source) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// ChildCount draws an integer count around mean with uniform jitter in
// ±variance, rounded to nearest and floored at zero.
func ChildCount(mean, variance float64, src Source) int {
	jitter := (src.Float64()*2 - 1) * variance
	n := int(math.Round(mean + jitter))
	if n < 0 {
		n = 0
	}
	return n
}

// Lifespan draws a lifespan in whole years around expectancy with uniform
// jitter in ±jitterYears, floored at zero.
func Lifespan(expectancy, jitterYears float64, src Source) int {
	jitter := (src.Float64()*2 - 1) * jitterYears
	y := int(math.Round(expectancy + jitter))
	if y < 0 {
		y = 0
	}
	return y
}
