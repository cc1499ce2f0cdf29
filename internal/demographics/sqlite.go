package demographics

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/lineage/internal/sampling"
)

// A packed dataset stores the tables with surname ranks already composed
// into weights, so the sqlite form has five tables rather than six files.
const datasetSchema = `
CREATE TABLE IF NOT EXISTS life_expectancy (
	year INTEGER PRIMARY KEY,
	expectancy REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS first_names (
	decade INTEGER NOT NULL,
	gender TEXT NOT NULL,
	name TEXT NOT NULL,
	weight REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS gender_probability (
	decade INTEGER PRIMARY KEY,
	p_female REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS last_names (
	decade INTEGER NOT NULL,
	name TEXT NOT NULL,
	weight REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS rates (
	decade INTEGER PRIMARY KEY,
	birth_rate REAL NOT NULL,
	marriage_rate REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_first_names_axis ON first_names(decade, gender);
CREATE INDEX IF NOT EXISTS idx_last_names_decade ON last_names(decade);
`

type lifeRow struct {
	Year       int     `db:"year"`
	Expectancy float64 `db:"expectancy"`
}

type firstNameRow struct {
	Decade int     `db:"decade"`
	Gender string  `db:"gender"`
	Name   string  `db:"name"`
	Weight float64 `db:"weight"`
}

type genderRow struct {
	Decade  int     `db:"decade"`
	PFemale float64 `db:"p_female"`
}

type lastNameRow struct {
	Decade int     `db:"decade"`
	Name   string  `db:"name"`
	Weight float64 `db:"weight"`
}

type rateRow struct {
	Decade       int     `db:"decade"`
	BirthRate    float64 `db:"birth_rate"`
	MarriageRate float64 `db:"marriage_rate"`
}

func openDataset(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("demographics: open dataset: %w", err)
	}
	return db, nil
}

// LoadSQLite reads the demographic tables from a packed sqlite dataset.
func LoadSQLite(path string) (*Tables, error) {
	db, err := openDataset(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	data := Data{
		LifeExpectancy:    make(map[int]float64),
		FirstNames:        make(map[NameAxis][]sampling.Weighted[string]),
		FemaleProbability: make(map[int]float64),
		LastNames:         make(map[int][]sampling.Weighted[string]),
		BirthRates:        make(map[int]float64),
		MarriageRates:     make(map[int]float64),
	}

	var lives []lifeRow
	if err := db.Select(&lives, "SELECT year, expectancy FROM life_expectancy"); err != nil {
		return nil, fmt.Errorf("demographics: load life expectancy: %w", err)
	}
	for _, r := range lives {
		data.LifeExpectancy[r.Year] = r.Expectancy
	}

	var firsts []firstNameRow
	if err := db.Select(&firsts, "SELECT decade, gender, name, weight FROM first_names"); err != nil {
		return nil, fmt.Errorf("demographics: load first names: %w", err)
	}
	for _, r := range firsts {
		gender, err := parseGender(r.Gender)
		if err != nil {
			return nil, fmt.Errorf("demographics: first_names decade %d: %w", r.Decade, err)
		}
		axis := NameAxis{Decade: r.Decade, Gender: gender}
		data.FirstNames[axis] = append(data.FirstNames[axis], sampling.Weighted[string]{Item: r.Name, Weight: r.Weight})
	}

	var genders []genderRow
	if err := db.Select(&genders, "SELECT decade, p_female FROM gender_probability"); err != nil {
		return nil, fmt.Errorf("demographics: load gender probability: %w", err)
	}
	for _, r := range genders {
		data.FemaleProbability[r.Decade] = r.PFemale
	}

	var lasts []lastNameRow
	if err := db.Select(&lasts, "SELECT decade, name, weight FROM last_names"); err != nil {
		return nil, fmt.Errorf("demographics: load last names: %w", err)
	}
	for _, r := range lasts {
		data.LastNames[r.Decade] = append(data.LastNames[r.Decade], sampling.Weighted[string]{Item: r.Name, Weight: r.Weight})
	}

	var rates []rateRow
	if err := db.Select(&rates, "SELECT decade, birth_rate, marriage_rate FROM rates"); err != nil {
		return nil, fmt.Errorf("demographics: load rates: %w", err)
	}
	for _, r := range rates {
		data.BirthRates[r.Decade] = r.BirthRate
		data.MarriageRates[r.Decade] = r.MarriageRate
	}

	return New(data)
}

// WriteSQLite packs loaded tables into a sqlite dataset at path (full
// replace).
func WriteSQLite(t *Tables, path string) error {
	db, err := openDataset(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(datasetSchema); err != nil {
		return fmt.Errorf("demographics: migrate dataset: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("demographics: begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"life_expectancy", "first_names", "gender_probability", "last_names", "rates"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("demographics: clear %s: %w", table, err)
		}
	}

	for year, expect := range t.data.LifeExpectancy {
		if _, err := tx.Exec("INSERT INTO life_expectancy (year, expectancy) VALUES (?, ?)", year, expect); err != nil {
			return fmt.Errorf("demographics: insert life expectancy %d: %w", year, err)
		}
	}
	for axis, names := range t.data.FirstNames {
		for _, n := range names {
			if _, err := tx.Exec(
				"INSERT INTO first_names (decade, gender, name, weight) VALUES (?, ?, ?, ?)",
				axis.Decade, axis.Gender.String(), n.Item, n.Weight,
			); err != nil {
				return fmt.Errorf("demographics: insert first name %q: %w", n.Item, err)
			}
		}
	}
	for decade, p := range t.data.FemaleProbability {
		if _, err := tx.Exec("INSERT INTO gender_probability (decade, p_female) VALUES (?, ?)", decade, p); err != nil {
			return fmt.Errorf("demographics: insert gender probability %d: %w", decade, err)
		}
	}
	for decade, names := range t.data.LastNames {
		for _, n := range names {
			if _, err := tx.Exec(
				"INSERT INTO last_names (decade, name, weight) VALUES (?, ?, ?)",
				decade, n.Item, n.Weight,
			); err != nil {
				return fmt.Errorf("demographics: insert last name %q: %w", n.Item, err)
			}
		}
	}
	for decade, birth := range t.data.BirthRates {
		if _, err := tx.Exec(
			"INSERT INTO rates (decade, birth_rate, marriage_rate) VALUES (?, ?, ?)",
			decade, birth, t.data.MarriageRates[decade],
		); err != nil {
			return fmt.Errorf("demographics: insert rates %d: %w", decade, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("demographics: commit: %w", err)
	}
	return nil
}
