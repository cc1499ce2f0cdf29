// Package tree holds the family graph: every generated person and the
// parent, child, and partner edges between them. A tree is populated by a
// single generation run and read-only afterward.
package tree

// PersonID identifies a person within a FamilyTree. Zero is never issued
// and means "none".
type PersonID uint64

// Gender of a person, drawn from the decade gender table.
type Gender uint8

const (
	Female Gender = iota
	Male
)

// String returns the lowercase table key for the gender.
func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// Origin records how a person entered the tree.
type Origin uint8

const (
	// OriginFounder marks one of the two seed persons born 1950.
	OriginFounder Origin = iota
	// OriginBorn marks a person created as a child of one or two parents.
	OriginBorn
	// OriginMarriedIn marks an exogenous partner: generated fresh for a
	// tree-born spouse rather than matched from the population, carrying
	// no parent edges and never expanded for children of their own.
	OriginMarriedIn
)

// Person is one member of the family tree. Relationship fields are owned
// by the FamilyTree and written only during generation.
type Person struct {
	ID         PersonID
	FirstName  string
	LastName   string
	Gender     Gender
	BirthYear  int
	DeathYear  int // always >= BirthYear
	Origin     Origin
	Generation int // founders are generation 0

	Parents  []PersonID // 1 or 2 for born persons, empty otherwise
	Partner  PersonID   // 0 when unpartnered; mutual when set
	Children []PersonID // ordered by birth year
}

// FullName returns "First Last".
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Decade returns the decade bucket of the birth year.
func (p *Person) Decade() int {
	return p.BirthYear - p.BirthYear%10
}

// IsFounder reports whether p is one of the two seed persons.
func (p *Person) IsFounder() bool {
	return p.Origin == OriginFounder
}
