package calculation

import (
	"fmt"
	"sort"

	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/previdcalc/previdcalc/internal/reference"
	"github.com/shopspring/decimal"
)

// Ledger owns the contribution records of one session. Records enter through
// Add, which clamps the declared value to the competency year's ceiling and
// corrects it to as-of money; after that the record is immutable. The ledger
// never rejects a below-floor contribution, it only flags it.
type Ledger struct {
	tables        *reference.Tables
	asOfYear      int
	contributions []domain.Contribution
	warnings      []domain.Warning
}

// NewLedger creates an empty ledger correcting every record to asOfYear.
func NewLedger(tables *reference.Tables, asOfYear int) *Ledger {
	return &Ledger{tables: tables, asOfYear: asOfYear}
}

// Add validates, corrects and appends one contribution. Insertion order is
// preserved and duplicates are allowed. A negative declared value is rejected
// with no side effect.
func (l *Ledger) Add(c domain.Contribution) error {
	if c.DeclaredValue.IsNegative() {
		return validationf("declared_value", "must not be negative, got %s", c.DeclaredValue)
	}
	if !c.Competency.Valid() {
		return validationf("competency", "%s is not a calendar month", c.Competency)
	}
	if !c.Kind.Valid() {
		return validationf("kind", "unknown contribution kind %q", c.Kind)
	}

	base := c.DeclaredValue
	ceiling := l.tables.Ceiling(c.Competency.Year)
	if base.GreaterThan(ceiling) {
		base = ceiling
	}
	if base.LessThan(l.tables.Floor(c.Competency.Year)) && c.Kind != domain.KindSupplementary {
		l.warnings = append(l.warnings, domain.Warning{
			Code: domain.WarnBelowFloor,
			Message: fmt.Sprintf("contribution %s of %s is below the %d floor of %s",
				c.Competency, base.StringFixed(2), c.Competency.Year,
				l.tables.Floor(c.Competency.Year).StringFixed(2)),
		})
	}

	c.CorrectedValue = Correct(base, c.Competency.Year, l.asOfYear, l.tables)
	l.contributions = append(l.contributions, c)
	return nil
}

// Clear drops every record and warning.
func (l *Ledger) Clear() {
	l.contributions = nil
	l.warnings = nil
}

// Count returns the number of records.
func (l *Ledger) Count() int { return len(l.contributions) }

// Contributions returns the records in insertion order.
func (l *Ledger) Contributions() []domain.Contribution {
	out := make([]domain.Contribution, len(l.contributions))
	copy(out, l.contributions)
	return out
}

// SumDeclared totals the declared values.
func (l *Ledger) SumDeclared() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range l.contributions {
		sum = sum.Add(c.DeclaredValue)
	}
	return sum
}

// SumCorrected totals the corrected values.
func (l *Ledger) SumCorrected() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range l.contributions {
		sum = sum.Add(c.CorrectedValue)
	}
	return sum
}

// OrderedByCorrectedDesc returns the records sorted by corrected value,
// highest first. The ledger's own order is untouched.
func (l *Ledger) OrderedByCorrectedDesc() []domain.Contribution {
	out := l.Contributions()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CorrectedValue.GreaterThan(out[j].CorrectedValue)
	})
	return out
}

// ContributionTime derives total time: one month per record plus the special
// time credit. The total never goes negative.
func (l *Ledger) ContributionTime(specialCreditMonths int) domain.ContributionTime {
	return domain.ContributionTimeFromMonths(len(l.contributions) + specialCreditMonths)
}

// Warnings returns the data-quality warnings accumulated by Add.
func (l *Ledger) Warnings() []domain.Warning {
	out := make([]domain.Warning, len(l.warnings))
	copy(out, l.warnings)
	return out
}
