package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Regime selects which legal formula values the benefit.
type Regime string

const (
	// RegimeCurrent is the post-reform rule: mean of all corrected
	// contributions, 60% plus 2% per year beyond the minimum.
	RegimeCurrent Regime = "current"
	// RegimeLegacy is the pre-reform rule: mean of the top 80% of corrected
	// contributions multiplied by the actuarial factor.
	RegimeLegacy Regime = "legacy"
)

// ContributionTime is total contribution time normalized to whole years plus
// a month remainder in 0..11.
type ContributionTime struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// ContributionTimeFromMonths normalizes a non-negative month total.
func ContributionTimeFromMonths(totalMonths int) ContributionTime {
	if totalMonths < 0 {
		totalMonths = 0
	}
	return ContributionTime{Years: totalMonths / 12, Months: totalMonths % 12}
}

// TotalMonths returns the time as a flat month count.
func (t ContributionTime) TotalMonths() int {
	return t.Years*12 + t.Months
}

// DecimalYears returns years plus the month fraction, e.g. 30y6m -> 30.5.
func (t ContributionTime) DecimalYears() decimal.Decimal {
	return decimal.NewFromInt(int64(t.Years)).
		Add(decimal.NewFromInt(int64(t.Months)).Div(decimal.NewFromInt(12)))
}

func (t ContributionTime) String() string {
	return fmt.Sprintf("%dy%dm", t.Years, t.Months)
}

// EligibilityVerdict is the outcome of one eligibility rule: a pure verdict
// with the rationale carrying actual vs. required values.
type EligibilityVerdict struct {
	RuleName  string                     `json:"rule_name"`
	Eligible  bool                       `json:"eligible"`
	Rationale string                     `json:"rationale"`
	Metrics   map[string]decimal.Decimal `json:"metrics"`
}

// BenefitResult is the valued benefit under one regime. RMI is always within
// the reference year's floor and ceiling.
type BenefitResult struct {
	Regime        Regime          `json:"regime"`
	AverageSalary decimal.Decimal `json:"average_salary"`
	RMI           decimal.Decimal `json:"rmi"`
}

// Warning codes surfaced by the engine.
const (
	WarnBelowFloor         = "BELOW_FLOOR"
	WarnMissingHazardProof = "MISSING_HAZARD_PROOF"
	WarnLegacySampleEmpty  = "LEGACY_SAMPLE_EMPTY"
)

// Warning is a non-fatal data-quality finding. The operation that produced it
// still took effect.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// CalculationSummary is the complete engine output for one session: derived
// contribution time, every rule verdict, both regime valuations and the
// warnings accumulated along the way.
type CalculationSummary struct {
	Insured          InsuredProfile       `json:"insured"`
	AsOfYear         int                  `json:"as_of_year"`
	AgeAtReference   int                  `json:"age_at_reference"`
	ContributionTime ContributionTime     `json:"contribution_time"`
	Contributions    []Contribution       `json:"contributions"`
	Verdicts         []EligibilityVerdict `json:"verdicts"`
	Benefits         []BenefitResult      `json:"benefits"`
	Warnings         []Warning            `json:"warnings,omitempty"`
}

// Benefit returns the result for one regime, if present.
func (s *CalculationSummary) Benefit(regime Regime) (BenefitResult, bool) {
	for _, b := range s.Benefits {
		if b.Regime == regime {
			return b, true
		}
	}
	return BenefitResult{}, false
}
