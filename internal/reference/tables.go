// Package reference supplies the year-indexed ceiling, floor and price-index
// values every calculation depends on. Tables are loaded once at startup and
// never mutated afterwards.
package reference

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrEmptyTable reports a reference table with no entries. No calculation is
// possible without one, so callers treat this as fatal configuration.
var ErrEmptyTable = errors.New("reference table has no entries")

// YearValues holds the regulatory values for one calendar year.
type YearValues struct {
	Year        int             `yaml:"year" json:"year"`
	Ceiling     decimal.Decimal `yaml:"ceiling" json:"ceiling"`
	Floor       decimal.Decimal `yaml:"floor" json:"floor"`
	IndexFactor decimal.Decimal `yaml:"index_factor" json:"index_factor"`
}

// Tables is an immutable year -> values lookup with deterministic
// nearest-year fallback.
type Tables struct {
	byYear map[int]YearValues
	years  []int // ascending
}

// NewTables builds a lookup from the given entries. Later duplicates of a
// year replace earlier ones. An empty set is a configuration error.
func NewTables(entries []YearValues) (*Tables, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}
	byYear := make(map[int]YearValues, len(entries))
	for _, e := range entries {
		if e.Year <= 0 {
			return nil, fmt.Errorf("reference entry has invalid year %d", e.Year)
		}
		if e.IndexFactor.IsNegative() {
			return nil, fmt.Errorf("reference entry %d has negative index factor %s", e.Year, e.IndexFactor)
		}
		byYear[e.Year] = e
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return &Tables{byYear: byYear, years: years}, nil
}

// NearestYear returns the registered year with minimum absolute distance to
// the requested one. Ties break toward the smaller year.
func (t *Tables) NearestYear(year int) int {
	if _, ok := t.byYear[year]; ok {
		return year
	}
	best := t.years[0]
	bestDist := abs(year - best)
	for _, y := range t.years[1:] {
		d := abs(year - y)
		if d < bestDist {
			best, bestDist = y, d
		}
	}
	return best
}

// Values returns the entry serving a year after nearest-year fallback.
func (t *Tables) Values(year int) YearValues {
	return t.byYear[t.NearestYear(year)]
}

// Ceiling returns the contribution/benefit ceiling for a year, falling back
// to the nearest registered year.
func (t *Tables) Ceiling(year int) decimal.Decimal {
	return t.byYear[t.NearestYear(year)].Ceiling
}

// Floor returns the benefit floor for a year, falling back to the nearest
// registered year.
func (t *Tables) Floor(year int) decimal.Decimal {
	return t.byYear[t.NearestYear(year)].Floor
}

// IndexFactor returns the price-index factor registered for exactly the given
// year. Unlike floor and ceiling there is no fallback: monetary correction
// skips years without a registered factor.
func (t *Tables) IndexFactor(year int) (decimal.Decimal, bool) {
	v, ok := t.byYear[year]
	if !ok {
		return decimal.Decimal{}, false
	}
	return v.IndexFactor, true
}

// FirstYear returns the earliest registered year.
func (t *Tables) FirstYear() int { return t.years[0] }

// LastYear returns the latest registered year.
func (t *Tables) LastYear() int { return t.years[len(t.years)-1] }

// Len returns the number of registered years.
func (t *Tables) Len() int { return len(t.years) }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
