package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/lineage/internal/tree"
)

func person(first, last string, birth int) *tree.Person {
	return &tree.Person{
		FirstName: first,
		LastName:  last,
		BirthYear: birth,
		DeathYear: birth + 80,
		Origin:    tree.OriginBorn,
	}
}

func TestAddChildParentCount(t *testing.T) {
	ft := tree.New()
	f := person("Ada", "Hart", 1950)
	f.Origin = tree.OriginFounder
	ft.AddFounder(f)

	_, err := ft.AddChild(person("Kim", "Hart", 1980), nil)
	require.ErrorIs(t, err, tree.ErrParentCount)

	_, err = ft.AddChild(person("Kim", "Hart", 1980), []tree.PersonID{f.ID, f.ID, f.ID})
	require.ErrorIs(t, err, tree.ErrParentCount)

	_, err = ft.AddChild(person("Kim", "Hart", 1980), []tree.PersonID{99})
	require.ErrorIs(t, err, tree.ErrUnknownPerson)
}

func TestAddChildOrdersByBirthYear(t *testing.T) {
	ft := tree.New()
	f := person("Ada", "Hart", 1950)
	id := ft.AddFounder(f)

	years := []int{1990, 1975, 1980}
	for _, y := range years {
		_, err := ft.AddChild(person("Kid", "Hart", y), []tree.PersonID{id})
		require.NoError(t, err)
	}

	var got []int
	for _, cid := range f.Children {
		c, ok := ft.Get(cid)
		require.True(t, ok)
		got = append(got, c.BirthYear)
	}
	assert.Equal(t, []int{1975, 1980, 1990}, got)
}

func TestAddChildTwoParents(t *testing.T) {
	ft := tree.New()
	a := ft.AddFounder(person("Ada", "Hart", 1950))
	b := ft.AddFounder(person("Ben", "Cole", 1950))

	child := person("Kim", "Hart", 1980)
	cid, err := ft.AddChild(child, []tree.PersonID{a, b})
	require.NoError(t, err)

	assert.Equal(t, []tree.PersonID{a, b}, child.Parents)
	pa, _ := ft.Get(a)
	pb, _ := ft.Get(b)
	assert.Equal(t, []tree.PersonID{cid}, pa.Children)
	assert.Equal(t, []tree.PersonID{cid}, pb.Children)
}

func TestSetPartner(t *testing.T) {
	ft := tree.New()
	a := ft.AddFounder(person("Ada", "Hart", 1950))
	b := ft.AddFounder(person("Ben", "Cole", 1950))
	c := ft.AddPartner(person("Cal", "Ryde", 1952))

	require.NoError(t, ft.SetPartner(a, b))
	pa, _ := ft.Get(a)
	pb, _ := ft.Get(b)
	assert.Equal(t, b, pa.Partner)
	assert.Equal(t, a, pb.Partner)

	// Re-linking the same pair is harmless; a different partner is not.
	require.NoError(t, ft.SetPartner(a, b))
	require.ErrorIs(t, ft.SetPartner(a, c), tree.ErrAlreadyPartnered)
	require.ErrorIs(t, ft.SetPartner(c, b), tree.ErrAlreadyPartnered)

	require.Error(t, ft.SetPartner(c, c))
	require.ErrorIs(t, ft.SetPartner(a, 99), tree.ErrUnknownPerson)
}

func TestGetUnknownHandle(t *testing.T) {
	ft := tree.New()
	_, ok := ft.Get(0)
	assert.False(t, ok)
	_, ok = ft.Get(1)
	assert.False(t, ok)
}

func TestCountByDecade(t *testing.T) {
	ft := tree.New()
	ft.AddFounder(person("Ada", "Hart", 1950))
	ft.AddFounder(person("Ben", "Cole", 1959))
	ft.AddPartner(person("Cal", "Ryde", 1983))

	assert.Equal(t, map[int]int{1950: 2, 1980: 1}, ft.CountByDecade())
}

func TestDuplicateNamesReportedOnce(t *testing.T) {
	ft := tree.New()
	ft.AddFounder(person("Ada", "Hart", 1950))
	ft.AddPartner(person("Ada", "Hart", 1978))
	ft.AddPartner(person("Ada", "Hart", 2003))
	ft.AddPartner(person("Ben", "Cole", 1950))
	ft.AddPartner(person("Ben", "Cole", 1981))
	ft.AddPartner(person("Una", "Voss", 1990))

	assert.Equal(t, []string{"Ada Hart", "Ben Cole"}, ft.DuplicateNames())
}

func TestDecadeBucket(t *testing.T) {
	p := person("Ada", "Hart", 1957)
	assert.Equal(t, 1950, p.Decade())
	assert.Equal(t, "Ada Hart", p.FullName())
}
