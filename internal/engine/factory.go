// Package engine drives the breadth-first population of a family tree
// from two founders, resolving every attribute and decision through the
// demographic tables and one explicit random source.
package engine

import (
	"fmt"

	"github.com/talgya/lineage/internal/demographics"
	"github.com/talgya/lineage/internal/sampling"
	"github.com/talgya/lineage/internal/tree"
)

// Factory creates persons with attributes resolved from the demographic
// tables: gender and first name by birth decade, surname inherited or
// sampled, death year from jittered life expectancy.
type Factory struct {
	tables *demographics.Tables
	src    sampling.Source
}

// NewFactory creates a factory over the given tables and random source.
func NewFactory(tables *demographics.Tables, src sampling.Source) *Factory {
	return &Factory{tables: tables, src: src}
}

// Founder creates one of the two seed persons, born in FounderYear with a
// sampled surname.
func (f *Factory) Founder() (*tree.Person, error) {
	return f.person(FounderYear, tree.OriginFounder, 0, "")
}

// Child creates a person born in the given year. The surname is inherited
// from the primary parent: the member of the parenting unit that was
// popped from the work queue.
func (f *Factory) Child(year int, primary *tree.Person) (*tree.Person, error) {
	return f.person(year, tree.OriginBorn, primary.Generation+1, primary.LastName)
}

// Partner creates an exogenous spouse for p: born within ±10 years of p
// (never past the horizon), with its own sampled surname and the same
// generation.
func (f *Factory) Partner(p *tree.Person) (*tree.Person, error) {
	year := p.BirthYear + f.src.Intn(21) - 10
	if year > Horizon {
		year = Horizon
	}
	return f.person(year, tree.OriginMarriedIn, p.Generation, "")
}

// person resolves attributes in a fixed order (gender, first name,
// surname, lifespan) so that a run's draw sequence is stable.
func (f *Factory) person(year int, origin tree.Origin, generation int, surname string) (*tree.Person, error) {
	decade := year - year%10

	gender := tree.Male
	if sampling.Bernoulli(f.tables.GenderProbability(decade), f.src) {
		gender = tree.Female
	}

	names, err := f.tables.NameWeights(decade, gender)
	if err != nil {
		return nil, fmt.Errorf("engine: first name for %d: %w", year, err)
	}
	first, err := sampling.PickWeighted(names, f.src)
	if err != nil {
		return nil, fmt.Errorf("engine: first name for %d: %w", year, err)
	}

	last := surname
	if last == "" {
		last, err = sampling.PickWeighted(f.tables.LastNameWeights(decade), f.src)
		if err != nil {
			return nil, fmt.Errorf("engine: last name for %d: %w", year, err)
		}
	}

	death := year + sampling.Lifespan(f.tables.LifeExpectancy(year), LifespanJitter, f.src)

	return &tree.Person{
		FirstName:  first,
		LastName:   last,
		Gender:     gender,
		BirthYear:  year,
		DeathYear:  death,
		Origin:     origin,
		Generation: generation,
	}, nil
}
