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

func ledgerTables(t *testing.T) *reference.Tables {
	t.Helper()
	tables, err := reference.NewTables([]reference.YearValues{
		{Year: 2023, Ceiling: decimal.NewFromInt(7500), Floor: decimal.NewFromInt(1300), IndexFactor: decimal.NewFromFloat(1.04)},
		{Year: 2024, Ceiling: decimal.NewFromInt(7800), Floor: decimal.NewFromInt(1412), IndexFactor: decimal.NewFromFloat(1.05)},
		{Year: 2025, Ceiling: decimal.NewFromInt(8100), Floor: decimal.NewFromInt(1518), IndexFactor: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)
	return tables
}

func contribution(competency string, value int64) domain.Contribution {
	c, err := domain.ParseCompetency(competency)
	if err != nil {
		panic(err)
	}
	return domain.Contribution{
		Competency:    c,
		DeclaredValue: decimal.NewFromInt(value),
		Kind:          domain.KindNormal,
		Proof:         domain.ProofPayroll,
	}
}

func TestLedgerAddCorrects(t *testing.T) {
	ledger := NewLedger(ledgerTables(t), 2025)

	require.NoError(t, ledger.Add(contribution("2023-06", 2000)))

	records := ledger.Contributions()
	require.Len(t, records, 1)
	// 2000 * 1.04 * 1.05 * 1
	expected := decimal.RequireFromString("2184")
	assert.True(t, records[0].CorrectedValue.Equal(expected),
		"expected %s, got %s", expected, records[0].CorrectedValue)
	assert.Empty(t, ledger.Warnings())
}

func TestLedgerClampsToCeilingBeforeCorrection(t *testing.T) {
	ledger := NewLedger(ledgerTables(t), 2025)

	require.NoError(t, ledger.Add(contribution("2023-01", 20000)))

	records := ledger.Contributions()
	// 7500 (2023 ceiling) * 1.04 * 1.05
	expected := decimal.RequireFromString("8190")
	assert.True(t, records[0].CorrectedValue.Equal(expected),
		"expected %s, got %s", expected, records[0].CorrectedValue)
}

func TestLedgerFlagsBelowFloor(t *testing.T) {
	ledger := NewLedger(ledgerTables(t), 2025)

	require.NoError(t, ledger.Add(contribution("2024-03", 500)))

	require.Len(t, ledger.Warnings(), 1)
	assert.Equal(t, domain.WarnBelowFloor, ledger.Warnings()[0].Code)
	// The record is still kept.
	assert.Equal(t, 1, ledger.Count())
}

func TestLedgerSupplementaryBelowFloorNotFlagged(t *testing.T) {
	ledger := NewLedger(ledgerTables(t), 2025)

	c := contribution("2024-03", 500)
	c.Kind = domain.KindSupplementary
	require.NoError(t, ledger.Add(c))

	assert.Empty(t, ledger.Warnings())
}

func TestLedgerRejectsNegativeValue(t *testing.T) {
	ledger := NewLedger(ledgerTables(t), 2025)

	c := contribution("2024-03", 0)
	c.DeclaredValue = decimal.NewFromInt(-10)
	err := ledger.Add(c)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, ledger.Count())
}

func TestLedgerRejectsBadKindAndCompetency(t *testing.T) {
	ledger := NewLedger(ledgerTables(t), 2025)

	c := contribution("2024-03", 1500)
	c.Kind = "weekly"
	assert.True(t, IsValidation(ledger.Add(c)))

	c = contribution("2024-03", 1500)
	c.Competency = domain.Competency{Year: 2024, Month: time.Month(13)}
	assert.True(t, IsValidation(ledger.Add(c)))
}

func TestLedgerOrderingAndSums(t *testing.T) {
	ledger := NewLedger(ledgerTables(t), 2025)

	require.NoError(t, ledger.Add(contribution("2025-01", 2000)))
	require.NoError(t, ledger.Add(contribution("2025-02", 5000)))
	require.NoError(t, ledger.Add(contribution("2025-03", 3000)))

	// Insertion order preserved.
	records := ledger.Contributions()
	assert.Equal(t, "2025-01", records[0].Competency.String())

	ordered := ledger.OrderedByCorrectedDesc()
	assert.True(t, ordered[0].CorrectedValue.Equal(decimal.NewFromInt(5000)))
	assert.True(t, ordered[2].CorrectedValue.Equal(decimal.NewFromInt(2000)))

	assert.True(t, ledger.SumDeclared().Equal(decimal.NewFromInt(10000)))
	assert.True(t, ledger.SumCorrected().Equal(decimal.NewFromInt(10000)))
}

func TestLedgerContributionTime(t *testing.T) {
	ledger := NewLedger(ledgerTables(t), 2025)
	for i := 0; i < 14; i++ {
		require.NoError(t, ledger.Add(contribution("2025-01", 2000)))
	}

	tc := ledger.ContributionTime(24)
	assert.Equal(t, 3, tc.Years)
	assert.Equal(t, 2, tc.Months)

	// Never negative.
	tc = ledger.ContributionTime(-100)
	assert.Equal(t, 0, tc.TotalMonths())
}

func TestLedgerClear(t *testing.T) {
	ledger := NewLedger(ledgerTables(t), 2025)
	require.NoError(t, ledger.Add(contribution("2024-03", 500)))

	ledger.Clear()
	assert.Equal(t, 0, ledger.Count())
	assert.Empty(t, ledger.Warnings())
}
