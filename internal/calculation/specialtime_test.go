package calculation

import (
	"testing"
	"time"

	"github.com/previdcalc/previdcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestConvertSpecialPeriod(t *testing.T) {
	tests := []struct {
		name              string
		start, end        time.Time
		factor            string
		expectedWorked    int
		expectedConverted int
		expectedCredit    int
	}{
		{
			name:  "five years at 1.4",
			start: date(2000, time.January, 1), end: date(2004, time.December, 31),
			factor:         "1.4",
			expectedWorked: 60, expectedConverted: 84, expectedCredit: 24,
		},
		{
			name:  "one year at 2.0",
			start: date(2010, time.January, 1), end: date(2010, time.December, 31),
			factor:         "2.0",
			expectedWorked: 12, expectedConverted: 24, expectedCredit: 12,
		},
		{
			name:  "truncation at 1.75",
			start: date(2015, time.January, 1), end: date(2015, time.March, 31),
			factor: "1.75",
			// 90 days -> 3 months, 3*1.75 = 5.25 -> 5
			expectedWorked: 3, expectedConverted: 5, expectedCredit: 2,
		},
		{
			name:  "single day",
			start: date(2020, time.June, 1), end: date(2020, time.June, 1),
			factor:         "1.4",
			expectedWorked: 0, expectedConverted: 0, expectedCredit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ConvertSpecialPeriod(domain.SpecialPeriod{
				Start:            tt.start,
				End:              tt.end,
				ConversionFactor: decimal.RequireFromString(tt.factor),
				HasProof:         true,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedWorked, result.WorkedMonths)
			assert.Equal(t, tt.expectedConverted, result.ConvertedMonths)
			assert.Equal(t, tt.expectedCredit, result.CreditMonths)
		})
	}
}

func TestConvertSpecialPeriodRejectsReversedDates(t *testing.T) {
	_, err := ConvertSpecialPeriod(domain.SpecialPeriod{
		Start:            date(2010, time.May, 1),
		End:              date(2009, time.May, 1),
		ConversionFactor: decimal.RequireFromString("1.4"),
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestConvertSpecialPeriodRejectsUnknownFactor(t *testing.T) {
	for _, f := range []string{"1.5", "0.5", "3.0", "0"} {
		_, err := ConvertSpecialPeriod(domain.SpecialPeriod{
			Start:            date(2010, time.January, 1),
			End:              date(2010, time.December, 31),
			ConversionFactor: decimal.RequireFromString(f),
		})
		require.Error(t, err, "factor %s", f)
		assert.True(t, IsValidation(err))
	}
}

func TestAllowedConversionFactor(t *testing.T) {
	assert.True(t, AllowedConversionFactor(decimal.RequireFromString("1.4")))
	assert.True(t, AllowedConversionFactor(decimal.RequireFromString("1.75")))
	assert.True(t, AllowedConversionFactor(decimal.RequireFromString("2")))
	assert.False(t, AllowedConversionFactor(decimal.RequireFromString("1.41")))
}
