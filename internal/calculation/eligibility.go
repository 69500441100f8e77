package calculation

import (
	"fmt"

	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Rule names reported in verdicts.
const (
	RuleAge            = "age"
	RulePoints         = "points"
	RuleProgressiveAge = "progressive_age"
)

// ruleThresholds are the per-sex requirements of one rule.
type ruleThresholds struct {
	minAge   int
	minYears int
	// points rule only
	requiredPoints int
}

func ageThresholds(sex domain.Sex) ruleThresholds {
	if sex == domain.SexFemale {
		return ruleThresholds{minAge: 62, minYears: 15}
	}
	return ruleThresholds{minAge: 65, minYears: 20}
}

func pointsThresholds(sex domain.Sex) ruleThresholds {
	if sex == domain.SexFemale {
		return ruleThresholds{minYears: 30, requiredPoints: 89}
	}
	return ruleThresholds{minYears: 35, requiredPoints: 99}
}

func progressiveAgeThresholds(sex domain.Sex) ruleThresholds {
	if sex == domain.SexFemale {
		return ruleThresholds{minAge: 58, minYears: 30}
	}
	return ruleThresholds{minAge: 63, minYears: 35}
}

// EvaluateAgeRule checks the permanent age rule: minimum age and minimum
// contribution years, both required.
func EvaluateAgeRule(age int, tc domain.ContributionTime, sex domain.Sex) domain.EligibilityVerdict {
	th := ageThresholds(sex)
	ageOK := age >= th.minAge
	timeOK := tc.Years >= th.minYears

	return domain.EligibilityVerdict{
		RuleName: RuleAge,
		Eligible: ageOK && timeOK,
		Rationale: fmt.Sprintf("age %d vs minimum %d (%s); contribution time %s vs minimum %d years (%s)",
			age, th.minAge, metOrNot(ageOK), tc, th.minYears, metOrNot(timeOK)),
		Metrics: map[string]decimal.Decimal{
			"age":                decimal.NewFromInt(int64(age)),
			"minimum_age":        decimal.NewFromInt(int64(th.minAge)),
			"contribution_years": decimal.NewFromInt(int64(tc.Years)),
			"minimum_years":      decimal.NewFromInt(int64(th.minYears)),
		},
	}
}

// EvaluatePoints computes the points score: age plus contribution time in
// decimal years.
func EvaluatePoints(age int, tc domain.ContributionTime) decimal.Decimal {
	return decimal.NewFromInt(int64(age)).Add(tc.DecimalYears())
}

// EvaluatePointsRule checks the points transition rule: a minimum of
// contribution years and an age-plus-time score against the required points.
func EvaluatePointsRule(age int, tc domain.ContributionTime, sex domain.Sex) domain.EligibilityVerdict {
	th := pointsThresholds(sex)
	points := EvaluatePoints(age, tc)
	required := decimal.NewFromInt(int64(th.requiredPoints))
	pointsOK := points.GreaterThanOrEqual(required)
	timeOK := tc.Years >= th.minYears

	return domain.EligibilityVerdict{
		RuleName: RulePoints,
		Eligible: pointsOK && timeOK,
		Rationale: fmt.Sprintf("points %s vs required %d (%s); contribution time %s vs minimum %d years (%s)",
			points.StringFixed(1), th.requiredPoints, metOrNot(pointsOK), tc, th.minYears, metOrNot(timeOK)),
		Metrics: map[string]decimal.Decimal{
			"age":                decimal.NewFromInt(int64(age)),
			"points":             points,
			"required_points":    required,
			"contribution_years": decimal.NewFromInt(int64(tc.Years)),
			"minimum_years":      decimal.NewFromInt(int64(th.minYears)),
		},
	}
}

// EvaluateProgressiveAgeRule checks the progressive-age transition rule:
// a reduced minimum age combined with the full contribution-time minimum.
func EvaluateProgressiveAgeRule(age int, tc domain.ContributionTime, sex domain.Sex) domain.EligibilityVerdict {
	th := progressiveAgeThresholds(sex)
	ageOK := age >= th.minAge
	timeOK := tc.Years >= th.minYears

	return domain.EligibilityVerdict{
		RuleName: RuleProgressiveAge,
		Eligible: ageOK && timeOK,
		Rationale: fmt.Sprintf("age %d vs minimum %d (%s); contribution time %s vs minimum %d years (%s)",
			age, th.minAge, metOrNot(ageOK), tc, th.minYears, metOrNot(timeOK)),
		Metrics: map[string]decimal.Decimal{
			"age":                decimal.NewFromInt(int64(age)),
			"minimum_age":        decimal.NewFromInt(int64(th.minAge)),
			"contribution_years": decimal.NewFromInt(int64(tc.Years)),
			"minimum_years":      decimal.NewFromInt(int64(th.minYears)),
		},
	}
}

// EvaluateAll runs the three rules. They are independent; a profile may
// satisfy zero, one or several of them.
func EvaluateAll(age int, tc domain.ContributionTime, sex domain.Sex) []domain.EligibilityVerdict {
	return []domain.EligibilityVerdict{
		EvaluateAgeRule(age, tc, sex),
		EvaluatePointsRule(age, tc, sex),
		EvaluateProgressiveAgeRule(age, tc, sex),
	}
}

func metOrNot(ok bool) string {
	if ok {
		return "met"
	}
	return "not met"
}
