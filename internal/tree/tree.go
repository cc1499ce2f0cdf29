package tree

import (
	"fmt"
	"slices"
)

// FamilyTree owns every person created by a generation run and all edges
// between them. It is the sole authority for identity: persons receive
// their ID when added and keep it for the life of the tree.
type FamilyTree struct {
	persons  []*Person // arena; ID n lives at index n-1
	founders []PersonID
}

// New creates an empty family tree.
func New() *FamilyTree {
	return &FamilyTree{}
}

func (t *FamilyTree) add(p *Person) PersonID {
	id := PersonID(len(t.persons) + 1)
	p.ID = id
	t.persons = append(t.persons, p)
	return id
}

// AddFounder registers one of the two seed persons. Founders carry no
// parent edges.
func (t *FamilyTree) AddFounder(p *Person) PersonID {
	id := t.add(p)
	t.founders = append(t.founders, id)
	return id
}

// AddPartner registers a married-in person. Partners enter the tree with
// no parents and are linked to their spouse via SetPartner.
func (t *FamilyTree) AddPartner(p *Person) PersonID {
	return t.add(p)
}

// AddChild registers a newly born person under its parents. The parent
// list must name one or two existing persons; the child is inserted into
// each parent's child list keeping birth-year order.
func (t *FamilyTree) AddChild(p *Person, parents []PersonID) (PersonID, error) {
	if len(parents) < 1 || len(parents) > 2 {
		return 0, fmt.Errorf("%w: got %d", ErrParentCount, len(parents))
	}
	for _, pid := range parents {
		if _, ok := t.Get(pid); !ok {
			return 0, fmt.Errorf("%w: parent %d", ErrUnknownPerson, pid)
		}
	}

	id := t.add(p)
	p.Parents = append(p.Parents, parents...)
	for _, pid := range parents {
		parent, _ := t.Get(pid)
		parent.Children = t.insertByBirthYear(parent.Children, id)
	}
	return id, nil
}

func (t *FamilyTree) insertByBirthYear(children []PersonID, id PersonID) []PersonID {
	child, _ := t.Get(id)
	at := len(children)
	for i, cid := range children {
		sibling, _ := t.Get(cid)
		if sibling.BirthYear > child.BirthYear {
			at = i
			break
		}
	}
	return slices.Insert(children, at, id)
}

// SetPartner links a and b as mutual partners. It fails with
// ErrAlreadyPartnered if either already has a different partner.
func (t *FamilyTree) SetPartner(a, b PersonID) error {
	pa, ok := t.Get(a)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPerson, a)
	}
	pb, ok := t.Get(b)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPerson, b)
	}
	if a == b {
		return fmt.Errorf("tree: person %d cannot partner itself", a)
	}
	if pa.Partner != 0 && pa.Partner != b {
		return fmt.Errorf("%w: %d partnered with %d", ErrAlreadyPartnered, a, pa.Partner)
	}
	if pb.Partner != 0 && pb.Partner != a {
		return fmt.Errorf("%w: %d partnered with %d", ErrAlreadyPartnered, b, pb.Partner)
	}
	pa.Partner = b
	pb.Partner = a
	return nil
}

// Len returns the total number of persons in the tree.
func (t *FamilyTree) Len() int {
	return len(t.persons)
}

// Get returns the person for a handle, or false for a handle this tree
// never issued.
func (t *FamilyTree) Get(id PersonID) (*Person, bool) {
	if id < 1 || int(id) > len(t.persons) {
		return nil, false
	}
	return t.persons[id-1], true
}

// AllPersons returns every person in creation order.
func (t *FamilyTree) AllPersons() []*Person {
	return slices.Clone(t.persons)
}

// Founders returns the seed persons in creation order.
func (t *FamilyTree) Founders() []*Person {
	out := make([]*Person, 0, len(t.founders))
	for _, id := range t.founders {
		p, _ := t.Get(id)
		out = append(out, p)
	}
	return out
}

// CountByDecade returns the number of persons born in each decade bucket.
func (t *FamilyTree) CountByDecade() map[int]int {
	counts := make(map[int]int)
	for _, p := range t.persons {
		counts[p.Decade()]++
	}
	return counts
}

// DuplicateNames returns each full name carried by more than one person,
// sorted, reported once regardless of how many persons share it.
func (t *FamilyTree) DuplicateNames() []string {
	seen := make(map[string]int, len(t.persons))
	for _, p := range t.persons {
		seen[p.FullName()]++
	}
	var dups []string
	for name, n := range seen {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	slices.Sort(dups)
	return dups
}
