package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment_KnownValue(t *testing.T) {
	var engine Engine

	pmt, err := engine.Payment(50_000, 0.05, 36)
	require.NoError(t, err)
	assert.InDelta(t, 1498.54, pmt, 0.01)
}

func TestPayment_ZeroRateIsEvenSplit(t *testing.T) {
	var engine Engine

	pmt, err := engine.Payment(12_000, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, pmt)
}

func TestPayment_InvalidInput(t *testing.T) {
	var engine Engine

	cases := []struct {
		name      string
		principal float64
		rate      float64
		periods   int
		wantErr   error
	}{
		{"zero principal", 0, 0.05, 36, ErrInvalidPrincipal},
		{"negative principal", -100, 0.05, 36, ErrInvalidPrincipal},
		{"negative rate", 10_000, -0.01, 36, ErrNegativeRate},
		{"zero periods", 10_000, 0.05, 0, ErrInvalidPeriods},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Payment(tc.principal, tc.rate, tc.periods)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestMaxPrincipal_InvertsPayment(t *testing.T) {
	var engine Engine

	cases := []struct {
		principal float64
		rate      float64
		periods   int
	}{
		{50_000, 0.05, 36},
		{200_000, 0.0449, 360},
		{15_000, 0.0549, 60},
		{12_000, 0, 12},
	}

	for _, tc := range cases {
		pmt, err := engine.Payment(tc.principal, tc.rate, tc.periods)
		require.NoError(t, err)

		back, err := engine.MaxPrincipal(pmt, tc.rate, tc.periods)
		require.NoError(t, err)
		assert.InDelta(t, tc.principal, back, 0.01)
	}
}

func TestMaxPrincipal_InvalidPayment(t *testing.T) {
	var engine Engine

	_, err := engine.MaxPrincipal(0, 0.05, 36)
	require.ErrorIs(t, err, ErrInvalidPayment)
}

func TestRemainingBalance_Endpoints(t *testing.T) {
	var engine Engine

	start, err := engine.RemainingBalance(100_000, 0.05, 0, 120)
	require.NoError(t, err)
	assert.InDelta(t, 100_000, start, 0.01)

	end, err := engine.RemainingBalance(100_000, 0.05, 120, 120)
	require.NoError(t, err)
	assert.Zero(t, end)
}

func TestRemainingBalance_StrictlyDecreasing(t *testing.T) {
	var engine Engine

	prev := 100_000.0
	for period := 1; period <= 120; period++ {
		balance, err := engine.RemainingBalance(100_000, 0.05, period, 120)
		require.NoError(t, err)
		assert.Less(t, balance, prev, "period %d", period)
		prev = balance
	}
}

func TestRemainingBalance_PeriodOutOfRange(t *testing.T) {
	var engine Engine

	_, err := engine.RemainingBalance(100_000, 0.05, 121, 120)
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPaymentSplit_SumsToInstallment(t *testing.T) {
	var engine Engine

	pmt, err := engine.Payment(80_000, 0.06, 48)
	require.NoError(t, err)

	for _, period := range []int{1, 24, 48} {
		interest, err := engine.InterestPayment(80_000, 0.06, period, 48)
		require.NoError(t, err)

		principal, err := engine.PrincipalPayment(80_000, 0.06, period, 48)
		require.NoError(t, err)

		assert.InDelta(t, pmt, interest+principal, 1e-9, "period %d", period)
	}
}

func TestAmortizationTable_Closure(t *testing.T) {
	var engine Engine

	rows, err := engine.AmortizationTable(200_000, 0.0449, 360)
	require.NoError(t, err)
	require.Len(t, rows, 360)

	assert.Zero(t, rows[len(rows)-1].RemainingBalance)

	var principalSum float64
	for _, row := range rows {
		principalSum += row.PrincipalComponent
	}
	assert.InDelta(t, 200_000, principalSum, 0.01)
}

func TestAmortizationTable_ZeroRate(t *testing.T) {
	var engine Engine

	rows, err := engine.AmortizationTable(1200, 0, 12)
	require.NoError(t, err)
	require.Len(t, rows, 12)

	for _, row := range rows {
		assert.Zero(t, row.InterestComponent)
		assert.Equal(t, 100.0, row.Payment)
	}
	assert.Zero(t, rows[11].RemainingBalance)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2349))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, -1.23, Round2(-1.234))
}
