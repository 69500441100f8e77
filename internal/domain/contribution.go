package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ContributionKind classifies how a contribution entered the record.
type ContributionKind string

const (
	KindNormal        ContributionKind = "normal"
	KindVoluntary     ContributionKind = "voluntary"
	KindSupplementary ContributionKind = "supplementary"
)

// Valid reports whether the kind is one of the enumerated values.
func (k ContributionKind) Valid() bool {
	switch k {
	case KindNormal, KindVoluntary, KindSupplementary:
		return true
	}
	return false
}

// ProofType records which document backs a contribution.
type ProofType string

const (
	ProofPayroll     ProofType = "payroll"
	ProofCNIS        ProofType = "cnis"
	ProofCarnet      ProofType = "carnet"
	ProofDeclaration ProofType = "declaration"
)

// Competency is the calendar month a contribution refers to. It marshals as
// "YYYY-MM" in both YAML and JSON.
type Competency struct {
	Year  int
	Month time.Month
}

// ParseCompetency parses the "YYYY-MM" wire format.
func ParseCompetency(s string) (Competency, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Competency{}, fmt.Errorf("competency must be YYYY-MM, got %q: %w", s, err)
	}
	return Competency{Year: t.Year(), Month: t.Month()}, nil
}

func (c Competency) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, int(c.Month))
}

// Valid reports whether the competency names a real calendar month.
func (c Competency) Valid() bool {
	return c.Year > 0 && c.Month >= time.January && c.Month <= time.December
}

func (c Competency) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *Competency) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCompetency(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Competency) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Competency) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("competency must be a JSON string, got %s", data)
	}
	parsed, err := ParseCompetency(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Contribution is a single monthly contribution record. CorrectedValue is
// derived by the ledger (declared value clamped to the competency year's
// ceiling, then monetarily corrected); it is never supplied by the caller.
type Contribution struct {
	Competency     Competency       `yaml:"competency" json:"competency"`
	DeclaredValue  decimal.Decimal  `yaml:"declared_value" json:"declared_value"`
	Kind           ContributionKind `yaml:"kind" json:"kind"`
	Proof          ProofType        `yaml:"proof,omitempty" json:"proof,omitempty"`
	CorrectedValue decimal.Decimal  `yaml:"corrected_value,omitempty" json:"corrected_value"`
}
