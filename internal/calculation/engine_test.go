package calculation

import (
	"testing"
	"time"

	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/previdcalc/previdcalc/internal/reference"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	tables, err := reference.NewTables([]reference.YearValues{
		{Year: 2024, Ceiling: decimal.NewFromInt(7800), Floor: decimal.NewFromInt(1412), IndexFactor: decimal.NewFromInt(1)},
		{Year: 2025, Ceiling: decimal.NewFromInt(8100), Floor: decimal.NewFromInt(1518), IndexFactor: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)
	engine, err := NewEngine(tables, date(2025, time.June, 1))
	require.NoError(t, err)
	return engine
}

func testProfile(birthYear int, sex domain.Sex) domain.InsuredProfile {
	return domain.InsuredProfile{
		Name:       "Maria da Silva",
		BirthDate:  date(birthYear, time.March, 10),
		Sex:        sex,
		FilingDate: date(2025, time.June, 1),
		Category:   domain.CategoryEmployee,
	}
}

func TestNewEngineRequiresTablesAndDate(t *testing.T) {
	_, err := NewEngine(nil, date(2025, time.January, 1))
	assert.ErrorIs(t, err, reference.ErrEmptyTable)

	tables := reference.Default()
	_, err = NewEngine(tables, time.Time{})
	assert.Error(t, err)
}

func TestEngineEvaluateEmptyLedger(t *testing.T) {
	engine := testEngine(t)

	summary, err := engine.Evaluate(testProfile(1960, domain.SexFemale))
	require.NoError(t, err)

	// No contributions: both averages are zero and both RMIs clamp up to the
	// 2025 floor.
	require.Len(t, summary.Benefits, 2)
	for _, b := range summary.Benefits {
		assert.True(t, b.AverageSalary.IsZero(), "%s average: %s", b.Regime, b.AverageSalary)
		assert.True(t, b.RMI.Equal(decimal.NewFromInt(1518)), "%s rmi: %s", b.Regime, b.RMI)
	}
	assert.Equal(t, 0, summary.ContributionTime.TotalMonths())

	// The degenerate legacy sample is flagged.
	found := false
	for _, w := range summary.Warnings {
		if w.Code == domain.WarnLegacySampleEmpty {
			found = true
		}
	}
	assert.True(t, found, "expected %s warning", domain.WarnLegacySampleEmpty)
}

func TestEngineEvaluateFullSession(t *testing.T) {
	engine := testEngine(t)

	// 420 months (35 years) of identical contributions.
	for i := 0; i < 420; i++ {
		require.NoError(t, engine.AddContribution(contribution("2024-01", 3000)))
	}
	// Ten hazardous years at 1.4: 3653 days -> 121 worked months,
	// floor(121*1.4) = 169 converted, 48 credit months.
	require.NoError(t, engine.AddSpecialPeriod(domain.SpecialPeriod{
		Start:            date(2000, time.January, 1),
		End:              date(2009, time.December, 31),
		ConversionFactor: decimal.RequireFromString("1.4"),
		HazardAgent:      domain.HazardNoise,
		HasProof:         true,
	}))

	summary, err := engine.Evaluate(testProfile(1960, domain.SexMale))
	require.NoError(t, err)

	assert.Equal(t, 65, summary.AgeAtReference)
	assert.Equal(t, 2025, summary.AsOfYear)

	// 420 + 48 = 468 months = 39y0m.
	assert.Equal(t, 39, summary.ContributionTime.Years)
	assert.Equal(t, 0, summary.ContributionTime.Months)

	// Age 65 + 39 years: every rule passes for a man.
	require.Len(t, summary.Verdicts, 3)
	for _, v := range summary.Verdicts {
		assert.True(t, v.Eligible, v.RuleName+": "+v.Rationale)
	}

	// 39 years male: 60 + 2*19 = 98% of 3000 = 2940.
	current, ok := summary.Benefit(domain.RegimeCurrent)
	require.True(t, ok)
	assert.True(t, current.AverageSalary.Equal(decimal.NewFromInt(3000)))
	assert.True(t, current.RMI.Equal(decimal.NewFromInt(2940)), "got %s", current.RMI)

	legacy, ok := summary.Benefit(domain.RegimeLegacy)
	require.True(t, ok)
	assert.True(t, legacy.AverageSalary.Equal(decimal.NewFromInt(3000)))
	assert.True(t, legacy.RMI.GreaterThanOrEqual(decimal.NewFromInt(1518)))
	assert.True(t, legacy.RMI.LessThanOrEqual(decimal.NewFromInt(8100)))

	assert.Empty(t, summary.Warnings)
}

func TestEngineSpecialPeriodWithoutProofWarns(t *testing.T) {
	engine := testEngine(t)

	require.NoError(t, engine.AddSpecialPeriod(domain.SpecialPeriod{
		Start:            date(2010, time.January, 1),
		End:              date(2012, time.December, 31),
		ConversionFactor: decimal.RequireFromString("2.0"),
		HazardAgent:      domain.HazardMining,
	}))

	summary, err := engine.Evaluate(testProfile(1958, domain.SexFemale))
	require.NoError(t, err)

	found := false
	for _, w := range summary.Warnings {
		if w.Code == domain.WarnMissingHazardProof {
			found = true
		}
	}
	assert.True(t, found)
	// The period still counts: 1096 days -> 36 months -> 36 credit months.
	assert.Equal(t, 36, engine.SpecialCreditMonths())
}

func TestEngineRejectsInvalidSpecialPeriod(t *testing.T) {
	engine := testEngine(t)

	err := engine.AddSpecialPeriod(domain.SpecialPeriod{
		Start:            date(2012, time.January, 1),
		End:              date(2010, time.January, 1),
		ConversionFactor: decimal.RequireFromString("1.4"),
	})
	assert.True(t, IsValidation(err))
	assert.Empty(t, engine.SpecialPeriods())
}

func TestEngineClear(t *testing.T) {
	engine := testEngine(t)
	require.NoError(t, engine.AddContribution(contribution("2024-01", 3000)))
	require.NoError(t, engine.AddSpecialPeriod(domain.SpecialPeriod{
		Start:            date(2010, time.January, 1),
		End:              date(2010, time.December, 31),
		ConversionFactor: decimal.RequireFromString("1.4"),
		HasProof:         true,
	}))

	engine.ClearContributions()
	engine.ClearSpecialPeriods()

	assert.Equal(t, 0, engine.Ledger().Count())
	assert.Equal(t, 0, engine.SpecialCreditMonths())
}

func TestEngineEvaluateRejectsBadProfile(t *testing.T) {
	engine := testEngine(t)

	_, err := engine.Evaluate(domain.InsuredProfile{Sex: "X"})
	assert.Error(t, err)
}

func TestEngineSessionsAreIsolated(t *testing.T) {
	a := testEngine(t)
	b := testEngine(t)

	require.NoError(t, a.AddContribution(contribution("2024-01", 3000)))

	assert.Equal(t, 1, a.Ledger().Count())
	assert.Equal(t, 0, b.Ledger().Count())
}
