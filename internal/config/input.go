// Package config loads and validates the YAML case file the CLI and server
// consume: the insured profile, the contribution and special-period records
// and an optional reference-table override.
package config

import (
	"fmt"
	"os"

	"github.com/previdcalc/previdcalc/internal/calculation"
	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/previdcalc/previdcalc/internal/reference"
	"gopkg.in/yaml.v3"
)

// CaseFile is the full engine input for one session.
type CaseFile struct {
	Insured         domain.InsuredProfile  `yaml:"insured" json:"insured"`
	Contributions   []domain.Contribution  `yaml:"contributions" json:"contributions"`
	SpecialPeriods  []domain.SpecialPeriod `yaml:"special_periods,omitempty" json:"special_periods,omitempty"`
	ReferenceTables []reference.YearValues `yaml:"reference_tables,omitempty" json:"reference_tables,omitempty"`
}

// Tables returns the case file's reference-table override, or the built-in
// defaults when none is given.
func (cf *CaseFile) Tables() (*reference.Tables, error) {
	if len(cf.ReferenceTables) == 0 {
		return reference.Default(), nil
	}
	tables, err := reference.NewTables(cf.ReferenceTables)
	if err != nil {
		return nil, fmt.Errorf("reference_tables: %w", err)
	}
	return tables, nil
}

// InputParser handles parsing of case files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a case file.
func (ip *InputParser) LoadFromFile(filename string) (*CaseFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse parses and validates raw YAML.
func (ip *InputParser) Parse(data []byte) (*CaseFile, error) {
	var cf CaseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.Validate(&cf); err != nil {
		return nil, fmt.Errorf("case file validation failed: %w", err)
	}
	return &cf, nil
}

// Validate checks the case file before any record reaches the engine.
// Per-record validation (negative values, reversed dates) is repeated by the
// engine; this pass exists so a broken file fails as a whole, up front.
func (ip *InputParser) Validate(cf *CaseFile) error {
	if err := cf.Insured.Validate(); err != nil {
		return fmt.Errorf("insured: %w", err)
	}
	for i := range cf.Contributions {
		c := &cf.Contributions[i]
		if err := ip.validateContribution(c); err != nil {
			return fmt.Errorf("contribution %d (%s): %w", i, c.Competency, err)
		}
	}
	for i, p := range cf.SpecialPeriods {
		if _, err := calculation.ConvertSpecialPeriod(p); err != nil {
			return fmt.Errorf("special period %d: %w", i, err)
		}
	}
	return nil
}

func (ip *InputParser) validateContribution(c *domain.Contribution) error {
	if !c.Competency.Valid() {
		return fmt.Errorf("competency is not a calendar month")
	}
	if c.DeclaredValue.IsNegative() {
		return fmt.Errorf("declared value must not be negative, got %s", c.DeclaredValue)
	}
	if c.Kind == "" {
		c.Kind = domain.KindNormal
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	return nil
}
