// Package demographics loads and serves the six demographic tables the
// generator draws from: life expectancy by year, first-name frequency by
// decade and gender, gender probability by decade, surname ranking by
// decade, rank-to-probability weights, and birth/marriage rates by decade.
// Tables are loaded once and read-only afterward, so they are safe to
// share across concurrent generation runs.
package demographics

import (
	"errors"
	"fmt"
	"slices"

	"github.com/talgya/lineage/internal/sampling"
	"github.com/talgya/lineage/internal/tree"
)

// ErrMissingTable indicates a required table had no usable rows.
var ErrMissingTable = errors.New("demographics: table has no rows")

// NameAxis keys the first-name table.
type NameAxis struct {
	Decade int
	Gender tree.Gender
}

// Data is the raw content of the demographic tables. Loaders fill one and
// hand it to New; surname ranks are already composed with the
// rank-to-probability weights by then.
type Data struct {
	LifeExpectancy    map[int]float64 // year → expected years at birth
	FirstNames        map[NameAxis][]sampling.Weighted[string]
	FemaleProbability map[int]float64 // decade → p(female)
	LastNames         map[int][]sampling.Weighted[string]
	BirthRates        map[int]float64 // decade → mean children per unit
	MarriageRates     map[int]float64 // decade → partnering probability
}

// Tables serves typed lookups over validated demographic data. Lookups
// fall back to the nearest populated year or decade, matching the source
// dataset's sparse coverage.
type Tables struct {
	data Data

	lifeYears    []int
	nameDecades  map[tree.Gender][]int
	genderKeys   []int
	surnameKeys  []int
	birthKeys    []int
	marriageKeys []int
}

// New validates raw table data and builds the lookup indexes. Every table
// must have at least one row.
func New(data Data) (*Tables, error) {
	t := &Tables{data: data, nameDecades: make(map[tree.Gender][]int)}

	t.lifeYears = sortedKeys(data.LifeExpectancy)
	if len(t.lifeYears) == 0 {
		return nil, fmt.Errorf("%w: life expectancy", ErrMissingTable)
	}
	if len(data.FirstNames) == 0 {
		return nil, fmt.Errorf("%w: first names", ErrMissingTable)
	}
	for axis := range data.FirstNames {
		t.nameDecades[axis.Gender] = append(t.nameDecades[axis.Gender], axis.Decade)
	}
	for g := range t.nameDecades {
		slices.Sort(t.nameDecades[g])
	}
	t.genderKeys = sortedKeys(data.FemaleProbability)
	if len(t.genderKeys) == 0 {
		return nil, fmt.Errorf("%w: gender probability", ErrMissingTable)
	}
	t.surnameKeys = sortedKeys(data.LastNames)
	if len(t.surnameKeys) == 0 {
		return nil, fmt.Errorf("%w: last names", ErrMissingTable)
	}
	t.birthKeys = sortedKeys(data.BirthRates)
	if len(t.birthKeys) == 0 {
		return nil, fmt.Errorf("%w: birth rates", ErrMissingTable)
	}
	t.marriageKeys = sortedKeys(data.MarriageRates)
	if len(t.marriageKeys) == 0 {
		return nil, fmt.Errorf("%w: marriage rates", ErrMissingTable)
	}
	return t, nil
}

// LifeExpectancy returns the expected years at birth for the given year,
// from the nearest recorded year.
func (t *Tables) LifeExpectancy(year int) float64 {
	return t.data.LifeExpectancy[nearest(t.lifeYears, year)]
}

// NameWeights returns the weighted first-name candidates for a decade and
// gender, from the nearest recorded decade for that gender. It fails with
// sampling.ErrEmptyDistribution when the gender has no rows at all.
func (t *Tables) NameWeights(decade int, g tree.Gender) ([]sampling.Weighted[string], error) {
	decades := t.nameDecades[g]
	if len(decades) == 0 {
		return nil, fmt.Errorf("first names for %s: %w", g, sampling.ErrEmptyDistribution)
	}
	return t.data.FirstNames[NameAxis{Decade: nearest(decades, decade), Gender: g}], nil
}

// GenderProbability returns p(female) for a decade, from the nearest
// recorded decade.
func (t *Tables) GenderProbability(decade int) float64 {
	return t.data.FemaleProbability[nearest(t.genderKeys, decade)]
}

// LastNameWeights returns the weighted surname candidates for a decade,
// from the nearest recorded decade.
func (t *Tables) LastNameWeights(decade int) []sampling.Weighted[string] {
	return t.data.LastNames[nearest(t.surnameKeys, decade)]
}

// BirthRate returns the mean children count for a decade, from the
// nearest recorded decade.
func (t *Tables) BirthRate(decade int) float64 {
	return t.data.BirthRates[nearest(t.birthKeys, decade)]
}

// MarriageRate returns the partnering probability for a decade, from the
// nearest recorded decade.
func (t *Tables) MarriageRate(decade int) float64 {
	return t.data.MarriageRates[nearest(t.marriageKeys, decade)]
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// nearest returns the key from the sorted non-empty list closest to want,
// preferring the smaller key on ties.
func nearest(keys []int, want int) int {
	best := keys[0]
	for _, k := range keys[1:] {
		if abs(k-want) < abs(best-want) {
			best = k
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
