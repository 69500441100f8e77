package calculation

import (
	"sort"

	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// AverageSalary computes the salary average over corrected values under one
// regime. Current takes the arithmetic mean of every record. Legacy sorts by
// corrected value descending and averages the top floor(0.8*n) records; with
// fewer than two records that sample is empty and the average is zero, which
// the engine surfaces as a warning rather than silently accepting.
func AverageSalary(contributions []domain.Contribution, regime domain.Regime) decimal.Decimal {
	if len(contributions) == 0 {
		return decimal.Zero
	}

	sample := contributions
	if regime == domain.RegimeLegacy {
		sample = legacySample(contributions)
		if len(sample) == 0 {
			return decimal.Zero
		}
	}

	sum := decimal.Zero
	for _, c := range sample {
		sum = sum.Add(c.CorrectedValue)
	}
	return sum.Div(decimal.NewFromInt(int64(len(sample))))
}

// LegacySampleSize returns floor(0.8*n), the number of records the legacy
// average draws on.
func LegacySampleSize(n int) int {
	return n * 8 / 10
}

func legacySample(contributions []domain.Contribution) []domain.Contribution {
	sorted := make([]domain.Contribution, len(contributions))
	copy(sorted, contributions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CorrectedValue.GreaterThan(sorted[j].CorrectedValue)
	})
	return sorted[:LegacySampleSize(len(sorted))]
}
