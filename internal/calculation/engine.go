// Package calculation implements the retirement benefit engine: monetary
// correction, special-time conversion, the contribution ledger, salary
// averages, eligibility rules and RMI valuation. Everything is synchronous
// and pure over explicit inputs; the only mutable state is the per-session
// ledger and special-period list owned by an Engine.
package calculation

import (
	"fmt"
	"time"

	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/previdcalc/previdcalc/internal/reference"
)

// Engine holds one session's owned collections and the reference tables it
// computes against. It is not safe for concurrent use; give each session its
// own Engine.
type Engine struct {
	tables  *reference.Tables
	asOf    time.Time
	ledger  *Ledger
	periods []domain.SpecialPeriod
	results []domain.SpecialTimeResult
	// warnings raised outside the ledger (missing hazard proof, degenerate
	// legacy sample).
	warnings []domain.Warning
}

// NewEngine creates a session engine. asOf is the calculation date: it fixes
// the correction target year and the floor/ceiling reference year, and the
// insured's age is taken at this date. The engine never reads the clock.
func NewEngine(tables *reference.Tables, asOf time.Time) (*Engine, error) {
	if tables == nil || tables.Len() == 0 {
		return nil, reference.ErrEmptyTable
	}
	if asOf.IsZero() {
		return nil, fmt.Errorf("as-of date is required")
	}
	return &Engine{
		tables: tables,
		asOf:   asOf,
		ledger: NewLedger(tables, asOf.Year()),
	}, nil
}

// AsOf returns the calculation date.
func (e *Engine) AsOf() time.Time { return e.asOf }

// Ledger exposes the session's contribution ledger.
func (e *Engine) Ledger() *Ledger { return e.ledger }

// AddContribution validates and records one contribution.
func (e *Engine) AddContribution(c domain.Contribution) error {
	return e.ledger.Add(c)
}

// AddSpecialPeriod validates, converts and records one hazardous-exposure
// period. A period without proof is recorded with a warning.
func (e *Engine) AddSpecialPeriod(p domain.SpecialPeriod) error {
	result, err := ConvertSpecialPeriod(p)
	if err != nil {
		return err
	}
	if !p.HasProof {
		e.warnings = append(e.warnings, domain.Warning{
			Code: domain.WarnMissingHazardProof,
			Message: fmt.Sprintf("special period %s to %s has no hazard proof",
				p.Start.Format("2006-01-02"), p.End.Format("2006-01-02")),
		})
	}
	e.periods = append(e.periods, p)
	e.results = append(e.results, result)
	return nil
}

// ClearContributions empties the ledger.
func (e *Engine) ClearContributions() { e.ledger.Clear() }

// ClearSpecialPeriods drops every recorded period and its warnings.
func (e *Engine) ClearSpecialPeriods() {
	e.periods = nil
	e.results = nil
	e.warnings = nil
}

// SpecialPeriods returns the recorded periods in insertion order.
func (e *Engine) SpecialPeriods() []domain.SpecialPeriod {
	out := make([]domain.SpecialPeriod, len(e.periods))
	copy(out, e.periods)
	return out
}

// SpecialCreditMonths sums the credit increments over every recorded period.
func (e *Engine) SpecialCreditMonths() int {
	credit := 0
	for _, r := range e.results {
		credit += r.CreditMonths
	}
	return credit
}

// Evaluate derives the full summary for the insured: contribution time,
// the three eligibility verdicts and both regime valuations. Derived values
// are recomputed from the owned collections on every call.
func (e *Engine) Evaluate(profile domain.InsuredProfile) (*domain.CalculationSummary, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("insured profile: %w", err)
	}

	age := profile.Age(e.asOf)
	tc := e.ledger.ContributionTime(e.SpecialCreditMonths())
	contributions := e.ledger.Contributions()
	referenceYear := e.asOf.Year()

	warnings := append(e.ledger.Warnings(), e.warnings...)
	if LegacySampleSize(len(contributions)) == 0 {
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnLegacySampleEmpty,
			Message: fmt.Sprintf("legacy average drawn from an empty 80%% sample (%d contribution(s)); average is zero",
				len(contributions)),
		})
	}

	benefits := make([]domain.BenefitResult, 0, 2)
	for _, regime := range []domain.Regime{domain.RegimeCurrent, domain.RegimeLegacy} {
		avg := AverageSalary(contributions, regime)
		result, err := ComputeRMI(avg, tc, regime, profile.Sex, age, referenceYear, e.tables)
		if err != nil {
			return nil, fmt.Errorf("%s regime: %w", regime, err)
		}
		benefits = append(benefits, result)
	}

	return &domain.CalculationSummary{
		Insured:          profile,
		AsOfYear:         referenceYear,
		AgeAtReference:   age,
		ContributionTime: tc,
		Contributions:    contributions,
		Verdicts:         EvaluateAll(age, tc, profile.Sex),
		Benefits:         benefits,
		Warnings:         warnings,
	}, nil
}
