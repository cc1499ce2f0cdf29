package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/lineage/internal/report"
	"github.com/talgya/lineage/internal/tree"
)

func buildTree(t *testing.T) *tree.FamilyTree {
	t.Helper()
	ft := tree.New()
	a := ft.AddFounder(&tree.Person{FirstName: "James", LastName: "Cole", BirthYear: 1950, DeathYear: 2028, Origin: tree.OriginFounder})
	b := ft.AddFounder(&tree.Person{FirstName: "Mary", LastName: "Cole", BirthYear: 1950, DeathYear: 2031, Origin: tree.OriginFounder})
	require.NoError(t, ft.SetPartner(a, b))

	_, err := ft.AddChild(&tree.Person{FirstName: "Kevin", LastName: "Cole", BirthYear: 1975, DeathYear: 2051, Origin: tree.OriginBorn, Generation: 1}, []tree.PersonID{a, b})
	require.NoError(t, err)
	c2, err := ft.AddChild(&tree.Person{FirstName: "Kevin", LastName: "Cole", BirthYear: 1995, DeathYear: 2077, Origin: tree.OriginBorn, Generation: 1}, []tree.PersonID{a, b})
	require.NoError(t, err)

	spouse := ft.AddPartner(&tree.Person{FirstName: "Una", LastName: "Voss", BirthYear: 1993, DeathYear: 2070, Origin: tree.OriginMarriedIn, Generation: 1})
	require.NoError(t, ft.SetPartner(c2, spouse))
	return ft
}

func TestBuild(t *testing.T) {
	r := report.Build(buildTree(t))

	assert.Equal(t, 5, r.Total)
	assert.Equal(t, 2, r.Generations)
	assert.Equal(t, []string{"James Cole", "Mary Cole"}, r.Founders)
	assert.Equal(t, []report.DecadeCount{
		{Decade: 1950, Count: 2},
		{Decade: 1970, Count: 1},
		{Decade: 1990, Count: 2},
	}, r.Decades)
	assert.Equal(t, []string{"Kevin Cole"}, r.DuplicateNames)
}

func TestBuildEmptyTree(t *testing.T) {
	r := report.Build(tree.New())
	assert.Zero(t, r.Total)
	assert.Zero(t, r.Generations)
	assert.Empty(t, r.Decades)
	assert.Empty(t, r.DuplicateNames)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	report.Build(buildTree(t)).Render(&buf)

	out := buf.String()
	assert.Contains(t, out, "The tree contains 5 people across 2 generations")
	assert.Contains(t, out, "Founders: James Cole and Mary Cole")
	assert.Contains(t, out, "1950s: 2")
	assert.Contains(t, out, "1990s: 2")
	assert.Contains(t, out, "There are 1 duplicate names:")
	assert.Contains(t, out, "* Kevin Cole")
}

func TestRenderNoDuplicates(t *testing.T) {
	ft := tree.New()
	ft.AddFounder(&tree.Person{FirstName: "James", LastName: "Cole", BirthYear: 1950, DeathYear: 2028})

	var buf bytes.Buffer
	report.Build(ft).Render(&buf)
	assert.Contains(t, buf.String(), "There are no duplicate names")
}