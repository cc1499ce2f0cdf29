package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/lineage/internal/demographics"
	"github.com/talgya/lineage/internal/sampling"
	"github.com/talgya/lineage/internal/tree"
)

const (
	// FounderYear is the birth year of both seed persons.
	FounderYear = 1950
	// Horizon is the terminal simulation year; no births occur past it.
	Horizon = 2120
	// FertileStart and FertileEnd bound the age window in which a person
	// may produce children.
	FertileStart = 25
	FertileEnd   = 45
	// ChildCountVariance is the uniform jitter around the decade birth rate.
	ChildCountVariance = 1.5
	// LifespanJitter is the uniform jitter in years around life expectancy.
	LifespanJitter = 10
	// DefaultMaxPersons caps a run's population as a safety valve against
	// pathological table combinations.
	DefaultMaxPersons = 10000
)

// Config controls a generation run.
type Config struct {
	Seed       int64
	MaxPersons int // 0 means DefaultMaxPersons
}

// Engine populates one family tree. Each run needs its own Engine; the
// tables may be shared between concurrent runs.
type Engine struct {
	tables  *demographics.Tables
	cfg     Config
	src     sampling.Source
	factory *Factory
}

// New creates an engine whose random source is seeded from cfg.Seed. Runs
// with the same seed and tables produce identical trees.
func New(tables *demographics.Tables, cfg Config) *Engine {
	return NewWithSource(tables, cfg, rand.New(rand.NewSource(cfg.Seed)))
}

// NewWithSource creates an engine over an explicit random source. Tests
// script exact draws through this; Generate wires a seeded math/rand.
func NewWithSource(tables *demographics.Tables, cfg Config, src sampling.Source) *Engine {
	if cfg.MaxPersons <= 0 {
		cfg.MaxPersons = DefaultMaxPersons
	}
	return &Engine{
		tables:  tables,
		cfg:     cfg,
		src:     src,
		factory: NewFactory(tables, src),
	}
}

// Generate builds a complete family tree from the given seed.
func Generate(tables *demographics.Tables, seed int64) (*tree.FamilyTree, error) {
	return New(tables, Config{Seed: seed}).Run()
}

// Run seeds two founders and expands the tree breadth-first until the
// work queue drains or the person cap is reached. A failed run returns no
// tree; callers wanting resilience retry with a new seed.
func (e *Engine) Run() (*tree.FamilyTree, error) {
	runID := uuid.NewString()
	start := time.Now()
	t := tree.New()

	f1, err := e.factory.Founder()
	if err != nil {
		return nil, err
	}
	f2, err := e.factory.Founder()
	if err != nil {
		return nil, err
	}
	id1 := t.AddFounder(f1)
	id2 := t.AddFounder(f2)

	if sampling.Bernoulli(e.tables.MarriageRate(FounderYear), e.src) {
		if err := t.SetPartner(id1, id2); err != nil {
			return nil, err
		}
	}

	slog.Info("generation started",
		"run", runID,
		"seed", e.cfg.Seed,
		"founders", fmt.Sprintf("%s, %s", f1.FullName(), f2.FullName()),
		"partnered", f1.Partner != 0,
	)

	queue := []tree.PersonID{id1, id2}
	capped := false

	for len(queue) > 0 && !capped {
		id := queue[0]
		queue = queue[1:]
		p, _ := t.Get(id)

		// A partnered pair is one parenting unit: the second member pops
		// with children already attached and is skipped.
		if len(p.Children) > 0 {
			continue
		}

		var partner *tree.Person
		if p.Partner != 0 {
			partner, _ = t.Get(p.Partner)
		}

		n := e.childCount(p, partner)
		if n == 0 {
			continue
		}

		for _, year := range e.birthYears(p, partner, n) {
			if t.Len() >= e.cfg.MaxPersons {
				capped = true
				break
			}

			child, err := e.factory.Child(year, p)
			if err != nil {
				return nil, err
			}
			parents := []tree.PersonID{p.ID}
			if partner != nil {
				parents = append(parents, partner.ID)
			}
			cid, err := t.AddChild(child, parents)
			if err != nil {
				return nil, err
			}

			// The child's own partnering: exogenous spouse, never drawn
			// from the existing population, and not enqueued — married-in
			// partners parent only the children they share with the
			// tree-born spouse.
			if sampling.Bernoulli(e.tables.MarriageRate(child.Decade()), e.src) {
				spouse, err := e.factory.Partner(child)
				if err != nil {
					return nil, err
				}
				sid := t.AddPartner(spouse)
				if err := t.SetPartner(cid, sid); err != nil {
					return nil, err
				}
			}

			queue = append(queue, cid)
		}
	}

	if capped {
		slog.Warn("person cap reached", "run", runID, "cap", e.cfg.MaxPersons)
	}
	slog.Info("generation finished",
		"run", runID,
		"persons", t.Len(),
		"elapsed", time.Since(start),
	)
	return t, nil
}

// childCount draws the unit's child count from the decade birth rate and
// applies the single-parent penalty: an unpartnered parent raises one
// child fewer than a partnered pair under the same rate.
func (e *Engine) childCount(p, partner *tree.Person) int {
	n := sampling.ChildCount(e.tables.BirthRate(p.Decade()), ChildCountVariance, e.src)
	if partner == nil && n > 0 {
		n--
	}
	return n
}

// birthYears spaces n births evenly across the unit's shared fertile
// window: the intersection of each parent's [birth+25, birth+45], cut at
// the year before either parent's death and at the horizon. An empty
// window yields no births, which is how units past the fertile window or
// too close to the horizon retire.
func (e *Engine) birthYears(p, partner *tree.Person, n int) []int {
	startY := p.BirthYear + FertileStart
	endY := p.BirthYear + FertileEnd
	if partner != nil {
		startY = max(startY, partner.BirthYear+FertileStart)
		endY = min(endY, partner.BirthYear+FertileEnd)
		endY = min(endY, partner.DeathYear-1)
	}
	endY = min(endY, p.DeathYear-1)
	endY = min(endY, Horizon)
	if startY > endY {
		return nil
	}

	if n == 1 {
		return []int{(startY + endY) / 2}
	}
	years := make([]int, 0, n)
	interval := float64(endY-startY) / float64(n-1)
	for i := 0; i < n; i++ {
		y := startY + int(float64(i)*interval)
		if y > endY {
			y = endY
		}
		years = append(years, y)
	}
	return years
}
