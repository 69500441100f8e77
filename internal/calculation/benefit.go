package calculation

import (
	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/previdcalc/previdcalc/internal/reference"
	"github.com/shopspring/decimal"
)

var (
	pointThirtyOne = decimal.RequireFromString("0.31")
	oneHundred     = decimal.NewFromInt(100)
)

// ActuarialFactor computes the legacy actuarial factor. Survival expectancy
// is approximated as 85 minus age, floored at 5 from age 85 on; this stands
// in for a full life-expectancy table. The factor never drops below 1.
func ActuarialFactor(age int, tc domain.ContributionTime) decimal.Decimal {
	survival := 85 - age
	if age >= 85 {
		survival = 5
	}

	tcYears := tc.DecimalYears()
	contribShare := tcYears.Mul(pointThirtyOne)
	factor := contribShare.Div(decimal.NewFromInt(int64(survival))).
		Mul(decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(age)).Add(contribShare).Div(oneHundred)))

	if factor.LessThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return factor
}

// minimumQualifyingYears is the current-regime minimum used by the 60%+2%
// percentage ramp.
func minimumQualifyingYears(sex domain.Sex) int {
	if sex == domain.SexFemale {
		return 15
	}
	return 20
}

// CurrentRegimePercentage returns the benefit percentage: 60% plus 2% per
// contribution year beyond the sex's minimum, capped at 100%.
func CurrentRegimePercentage(contributionYears int, sex domain.Sex) decimal.Decimal {
	excess := contributionYears - minimumQualifyingYears(sex)
	if excess < 0 {
		excess = 0
	}
	pct := 60 + 2*excess
	if pct > 100 {
		pct = 100
	}
	return decimal.NewFromInt(int64(pct))
}

// ComputeRMI values the benefit under one regime and clamps it into the
// reference year's floor/ceiling band. The legacy regime requires the
// insured's age as an explicit input; there is no ambient default.
func ComputeRMI(averageSalary decimal.Decimal, tc domain.ContributionTime, regime domain.Regime,
	sex domain.Sex, age int, referenceYear int, tables *reference.Tables) (domain.BenefitResult, error) {

	var rmi decimal.Decimal
	switch regime {
	case domain.RegimeCurrent:
		rmi = averageSalary.Mul(CurrentRegimePercentage(tc.Years, sex)).Div(oneHundred)
	case domain.RegimeLegacy:
		if age <= 0 {
			return domain.BenefitResult{}, validationf("age",
				"legacy regime requires the insured's age, got %d", age)
		}
		rmi = averageSalary.Mul(ActuarialFactor(age, tc))
	default:
		return domain.BenefitResult{}, validationf("regime", "unknown regime %q", regime)
	}

	floor := tables.Floor(referenceYear)
	ceiling := tables.Ceiling(referenceYear)
	if rmi.LessThan(floor) {
		rmi = floor
	}
	if rmi.GreaterThan(ceiling) {
		rmi = ceiling
	}

	return domain.BenefitResult{Regime: regime, AverageSalary: averageSalary, RMI: rmi}, nil
}
