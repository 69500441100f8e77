package calculation

import (
	"github.com/previdcalc/previdcalc/internal/reference"
	"github.com/shopspring/decimal"
)

// Correct restates a historical value to asOfYear money by chaining the
// yearly index factors for every year in [competencyYear, asOfYear]. Years
// without a registered factor contribute 1.0, i.e. are skipped; that is a
// deliberate simplification of gaps in the index series, not an error.
func Correct(value decimal.Decimal, competencyYear, asOfYear int, tables *reference.Tables) decimal.Decimal {
	corrected := value
	for y := competencyYear; y <= asOfYear; y++ {
		if factor, ok := tables.IndexFactor(y); ok {
			corrected = corrected.Mul(factor)
		}
	}
	return corrected
}
