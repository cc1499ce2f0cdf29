package sampling_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/lineage/internal/sampling"
)

// script replays a fixed sequence of Float64 values.
type script struct {
	vals []float64
	at   int
}

func (s *script) Float64() float64 {
	v := s.vals[s.at%len(s.vals)]
	s.at++
	return v
}

func (s *script) Intn(n int) int { return 0 }

func TestPickWeightedEmpty(t *testing.T) {
	src := &script{vals: []float64{0.5}}

	_, err := sampling.PickWeighted[string](nil, src)
	require.ErrorIs(t, err, sampling.ErrEmptyDistribution)

	_, err = sampling.PickWeighted([]sampling.Weighted[string]{
		{Item: "a", Weight: 0},
		{Item: "b", Weight: -2},
	}, src)
	require.ErrorIs(t, err, sampling.ErrEmptyDistribution)
}

func TestPickWeightedDeterministic(t *testing.T) {
	items := []sampling.Weighted[string]{
		{Item: "a", Weight: 1},
		{Item: "b", Weight: 2},
		{Item: "c", Weight: 1},
	}
	cases := []struct {
		name string
		draw float64
		want string
	}{
		{"LowPicksFirst", 0.0, "a"},
		{"MidPicksSecond", 0.3, "b"},
		{"HighPicksLast", 0.99, "c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sampling.PickWeighted(items, &script{vals: []float64{tc.draw}})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPickWeightedSkipsNonPositive(t *testing.T) {
	items := []sampling.Weighted[string]{
		{Item: "never", Weight: -5},
		{Item: "always", Weight: 1},
	}
	for _, draw := range []float64{0.0, 0.5, 0.99} {
		got, err := sampling.PickWeighted(items, &script{vals: []float64{draw}})
		require.NoError(t, err)
		assert.Equal(t, "always", got)
	}
}

func TestPickWeightedProportional(t *testing.T) {
	items := []sampling.Weighted[string]{
		{Item: "a", Weight: 1},
		{Item: "b", Weight: 3},
	}
	src := rand.New(rand.NewSource(1))
	const draws = 20000
	hits := 0
	for i := 0; i < draws; i++ {
		got, err := sampling.PickWeighted(items, src)
		require.NoError(t, err)
		if got == "b" {
			hits++
		}
	}
	assert.InDelta(t, 0.75, float64(hits)/draws, 0.02)
}

func TestBernoulliClamps(t *testing.T) {
	// Out-of-range probabilities clamp without consuming a draw.
	assert.False(t, sampling.Bernoulli(-0.5, &script{vals: []float64{0.0}}))
	assert.True(t, sampling.Bernoulli(1.5, &script{vals: []float64{0.99}}))

	assert.True(t, sampling.Bernoulli(0.5, &script{vals: []float64{0.4}}))
	assert.False(t, sampling.Bernoulli(0.5, &script{vals: []float64{0.6}}))
}

func TestChildCount(t *testing.T) {
	cases := []struct {
		name     string
		mean     float64
		variance float64
		draw     float64
		want     int
	}{
		{"NoJitter", 2, 1.5, 0.5, 2},
		{"LowJitter", 2, 1.5, 0.0, 1},   // round(2 - 1.5)
		{"HighJitter", 2, 1.5, 0.999, 3}, // round(2 + ~1.5)
		{"FlooredAtZero", 0, 1.5, 0.0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sampling.ChildCount(tc.mean, tc.variance, &script{vals: []float64{tc.draw}})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLifespan(t *testing.T) {
	assert.Equal(t, 80, sampling.Lifespan(80, 10, &script{vals: []float64{0.5}}))
	assert.Equal(t, 70, sampling.Lifespan(80, 10, &script{vals: []float64{0.0}}))
	// Expectancy shorter than the downward jitter floors at zero.
	assert.Equal(t, 0, sampling.Lifespan(3, 10, &script{vals: []float64{0.0}}))
}
