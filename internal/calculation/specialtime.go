package calculation

import (
	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// allowedConversionFactors are the legally defined special-time multipliers.
var allowedConversionFactors = []decimal.Decimal{
	decimal.RequireFromString("1.4"),
	decimal.RequireFromString("1.75"),
	decimal.RequireFromString("2.0"),
}

// AllowedConversionFactor reports whether f is one of the legal multipliers.
func AllowedConversionFactor(f decimal.Decimal) bool {
	for _, allowed := range allowedConversionFactors {
		if f.Equal(allowed) {
			return true
		}
	}
	return false
}

// ConvertSpecialPeriod derives the month counts for one hazardous-exposure
// period. Months use the 30-day simplification and truncate toward zero;
// this is an intentional approximation, not calendar-accurate counting.
func ConvertSpecialPeriod(p domain.SpecialPeriod) (domain.SpecialTimeResult, error) {
	if p.End.Before(p.Start) {
		return domain.SpecialTimeResult{}, validationf("special_period",
			"end (%s) is before start (%s)", p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
	}
	if !AllowedConversionFactor(p.ConversionFactor) {
		return domain.SpecialTimeResult{}, validationf("conversion_factor",
			"%s is not one of 1.4, 1.75, 2.0", p.ConversionFactor)
	}

	days := int(p.End.Sub(p.Start).Hours()/24) + 1
	worked := days / 30
	converted := int(decimal.NewFromInt(int64(worked)).Mul(p.ConversionFactor).IntPart())

	return domain.SpecialTimeResult{
		WorkedMonths:    worked,
		ConvertedMonths: converted,
		CreditMonths:    converted - worked,
	}, nil
}
