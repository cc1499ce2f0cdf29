package demographics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/talgya/lineage/internal/sampling"
	"github.com/talgya/lineage/internal/tree"
)

// File names of the six tables inside a dataset directory.
const (
	lifeExpectancyFile = "life_expectancy.csv"
	firstNamesFile     = "first_names.csv"
	genderFile         = "gender_name_probability.csv"
	lastNamesFile      = "last_names.csv"
	rankFile           = "rank_to_probability.csv"
	ratesFile          = "birth_and_marriage_rates.csv"
)

// LoadDir reads the six demographic CSV files from dir. Malformed or
// missing entries are fatal here; the generator performs no per-lookup
// re-validation.
func LoadDir(dir string) (*Tables, error) {
	data := Data{
		LifeExpectancy:    make(map[int]float64),
		FirstNames:        make(map[NameAxis][]sampling.Weighted[string]),
		FemaleProbability: make(map[int]float64),
		LastNames:         make(map[int][]sampling.Weighted[string]),
		BirthRates:        make(map[int]float64),
		MarriageRates:     make(map[int]float64),
	}

	if err := loadLifeExpectancy(filepath.Join(dir, lifeExpectancyFile), &data); err != nil {
		return nil, err
	}
	if err := loadFirstNames(filepath.Join(dir, firstNamesFile), &data); err != nil {
		return nil, err
	}
	if err := loadGenderProbabilities(filepath.Join(dir, genderFile), &data); err != nil {
		return nil, err
	}
	rankProbs, err := loadRankProbabilities(filepath.Join(dir, rankFile))
	if err != nil {
		return nil, err
	}
	if err := loadLastNames(filepath.Join(dir, lastNamesFile), rankProbs, &data); err != nil {
		return nil, err
	}
	if err := loadRates(filepath.Join(dir, ratesFile), &data); err != nil {
		return nil, err
	}

	return New(data)
}

func loadLifeExpectancy(path string, data *Data) error {
	return eachRow(path, []string{"Year", "Period life expectancy at birth"}, func(row []string) error {
		year, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("year %q: %w", row[0], err)
		}
		expect, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return fmt.Errorf("expectancy %q: %w", row[1], err)
		}
		data.LifeExpectancy[year] = expect
		return nil
	})
}

func loadFirstNames(path string, data *Data) error {
	return eachRow(path, []string{"name", "decade", "gender", "frequency"}, func(row []string) error {
		decade, err := parseDecade(row[1])
		if err != nil {
			return err
		}
		gender, err := parseGender(row[2])
		if err != nil {
			return err
		}
		freq, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return fmt.Errorf("frequency %q: %w", row[3], err)
		}
		axis := NameAxis{Decade: decade, Gender: gender}
		data.FirstNames[axis] = append(data.FirstNames[axis], sampling.Weighted[string]{Item: row[0], Weight: freq})
		return nil
	})
}

func loadGenderProbabilities(path string, data *Data) error {
	// The source table carries one row per decade and gender; fold the
	// pair into p(female).
	male := make(map[int]float64)
	female := make(map[int]float64)
	err := eachRow(path, []string{"decade", "gender", "probability"}, func(row []string) error {
		decade, err := parseDecade(row[0])
		if err != nil {
			return err
		}
		gender, err := parseGender(row[1])
		if err != nil {
			return err
		}
		prob, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return fmt.Errorf("probability %q: %w", row[2], err)
		}
		if gender == tree.Female {
			female[decade] = prob
		} else {
			male[decade] = prob
		}
		return nil
	})
	if err != nil {
		return err
	}
	for decade, f := range female {
		total := f + male[decade]
		if total <= 0 {
			return fmt.Errorf("demographics: %s: decade %d has no probability mass", genderFile, decade)
		}
		data.FemaleProbability[decade] = f / total
	}
	return nil
}

// loadRankProbabilities reads the headerless rank-to-probability vector:
// one line of comma-separated weights, index = rank - 1.
func loadRankProbabilities(path string) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("demographics: %w", err)
	}
	fields := strings.Split(strings.TrimSpace(string(raw)), ",")
	probs := make([]float64, 0, len(fields))
	for i, field := range fields {
		p, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("demographics: %s: entry %d: %w", rankFile, i+1, err)
		}
		probs = append(probs, p)
	}
	if len(probs) == 0 {
		return nil, fmt.Errorf("%w: rank probabilities", ErrMissingTable)
	}
	return probs, nil
}

func loadLastNames(path string, rankProbs []float64, data *Data) error {
	return eachRow(path, []string{"Decade", "LastName", "Rank"}, func(row []string) error {
		decade, err := parseDecade(row[0])
		if err != nil {
			return err
		}
		rank, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("rank %q: %w", row[2], err)
		}
		// Ranks beyond the probability vector carry no weight and are
		// dropped, as in the source dataset.
		if rank < 1 || rank > len(rankProbs) {
			return nil
		}
		data.LastNames[decade] = append(data.LastNames[decade], sampling.Weighted[string]{
			Item:   row[1],
			Weight: rankProbs[rank-1],
		})
		return nil
	})
}

func loadRates(path string, data *Data) error {
	return eachRow(path, []string{"decade", "birth_rate", "marriage_rate"}, func(row []string) error {
		decade, err := parseDecade(row[0])
		if err != nil {
			return err
		}
		birth, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return fmt.Errorf("birth rate %q: %w", row[1], err)
		}
		marriage, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return fmt.Errorf("marriage rate %q: %w", row[2], err)
		}
		data.BirthRates[decade] = birth
		data.MarriageRates[decade] = marriage
		return nil
	})
}

// eachRow opens a headered CSV, resolves the wanted columns, and calls fn
// with them for every data row. Errors are reported with file and line.
func eachRow(path string, columns []string, fn func(row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("demographics: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("demographics: %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingTable, filepath.Base(path))
	}

	header := records[0]
	indexes := make([]int, len(columns))
	for i, col := range columns {
		at := -1
		for j, name := range header {
			if strings.TrimSpace(name) == col {
				at = j
				break
			}
		}
		if at < 0 {
			return fmt.Errorf("demographics: %s: missing column %q", filepath.Base(path), col)
		}
		indexes[i] = at
	}

	row := make([]string, len(columns))
	for line, record := range records[1:] {
		for i, at := range indexes {
			if at >= len(record) {
				return fmt.Errorf("demographics: %s line %d: short row", filepath.Base(path), line+2)
			}
			row[i] = strings.TrimSpace(record[at])
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("demographics: %s line %d: %w", filepath.Base(path), line+2, err)
		}
	}
	return nil
}

// parseDecade turns a dataset decade label like "1950s" (or "1950") into
// its starting year.
func parseDecade(label string) (int, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(label), "s")
	decade, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("decade %q: %w", label, err)
	}
	return decade - decade%10, nil
}

func parseGender(label string) (tree.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "female", "f":
		return tree.Female, nil
	case "male", "m":
		return tree.Male, nil
	}
	return 0, fmt.Errorf("unknown gender %q", label)
}
