// Package report builds the read-only summary over a finished tree:
// population totals, counts by decade, and duplicate full names.
package report

import (
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/talgya/lineage/internal/tree"
)

// DecadeCount is the number of persons born in one decade bucket.
type DecadeCount struct {
	Decade int
	Count  int
}

// Report is an aggregation snapshot of a generated tree.
type Report struct {
	Total          int
	Generations    int
	Founders       []string
	Decades        []DecadeCount // ascending by decade
	DuplicateNames []string      // sorted, each name once
}

// Build aggregates the tree. It reads only; the tree is not mutated.
func Build(t *tree.FamilyTree) Report {
	r := Report{Total: t.Len()}

	for _, f := range t.Founders() {
		r.Founders = append(r.Founders, f.FullName())
	}

	maxGen := -1
	for _, p := range t.AllPersons() {
		if p.Generation > maxGen {
			maxGen = p.Generation
		}
	}
	r.Generations = maxGen + 1

	counts := t.CountByDecade()
	decades := make([]int, 0, len(counts))
	for d := range counts {
		decades = append(decades, d)
	}
	slices.Sort(decades)
	for _, d := range decades {
		r.Decades = append(r.Decades, DecadeCount{Decade: d, Count: counts[d]})
	}

	r.DuplicateNames = t.DuplicateNames()
	return r
}

// Render writes the report as plain text.
func (r Report) Render(w io.Writer) {
	fmt.Fprintf(w, "The tree contains %s people across %d generations\n",
		humanize.Comma(int64(r.Total)), r.Generations)
	if len(r.Founders) > 0 {
		fmt.Fprintf(w, "Founders: %s and %s\n", r.Founders[0], r.Founders[len(r.Founders)-1])
	}

	fmt.Fprintln(w, "\nPeople by decade:")
	for _, dc := range r.Decades {
		fmt.Fprintf(w, "  %ds: %s\n", dc.Decade, humanize.Comma(int64(dc.Count)))
	}

	if len(r.DuplicateNames) == 0 {
		fmt.Fprintln(w, "\nThere are no duplicate names")
		return
	}
	fmt.Fprintf(w, "\nThere are %d duplicate names:\n", len(r.DuplicateNames))
	for _, name := range r.DuplicateNames {
		fmt.Fprintf(w, "  * %s\n", name)
	}
}
