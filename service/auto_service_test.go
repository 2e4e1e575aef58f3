package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"loan-advisor/config"
	"loan-advisor/domain"
)

func newTestAutoService(t *testing.T) *AutoLoanService {
	t.Helper()
	return NewAutoLoanService(config.LoanConfig{
		MaxDTIRatio:    0.45,
		RecommendedDTI: 0.36,
		BaseRate:       0.0549,
		MinTermMonths:  36,
		MaxTermMonths:  84,
		DefaultTerm:    60,
	}, zap.NewNop())
}

func TestCarLoan_NewVehicleDefaults(t *testing.T) {
	svc := newTestAutoService(t)

	quote, err := svc.CarLoan(domain.CarLoanInput{CarPrice: 100_000})
	require.NoError(t, err)

	assert.True(t, quote.Valid)
	assert.Equal(t, "new", quote.VehicleType)
	assert.Equal(t, 10_000.0, quote.DownPayment)
	assert.Equal(t, 90_000.0, quote.LoanAmount)
	assert.InDelta(t, 0.90, quote.LTVRatio, 0.001)
	assert.Equal(t, 60, quote.LoanTermMonths)
	assert.Equal(t, 0.0549, quote.AnnualInterestRate)
	assert.InDelta(t, quote.TotalPayment-quote.LoanAmount, quote.TotalInterest, 0.01)
}

func TestCarLoan_UsedVehicleLTVBreach(t *testing.T) {
	svc := newTestAutoService(t)

	quote, err := svc.CarLoan(domain.CarLoanInput{
		CarPrice:    100_000,
		DownPayment: floatPtr(10_000),
		VehicleType: "used",
	})
	require.NoError(t, err)

	assert.False(t, quote.Valid)
	assert.Contains(t, quote.Message, "exceeds maximum 80%")
	assert.Contains(t, quote.Message, "used vehicle")
}

func TestCarLoan_InvalidPrice(t *testing.T) {
	svc := newTestAutoService(t)

	_, err := svc.CarLoan(domain.CarLoanInput{CarPrice: -5})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCompareCarLoanTerms_DefaultSet(t *testing.T) {
	svc := newTestAutoService(t)

	options, err := svc.CompareCarLoanTerms(domain.CarLoanInput{CarPrice: 100_000}, nil)
	require.NoError(t, err)
	require.Len(t, options, 4)

	assert.Equal(t, []int{36, 48, 60, 72}, []int{
		options[0].TermMonths, options[1].TermMonths,
		options[2].TermMonths, options[3].TermMonths,
	})

	assert.Greater(t, options[0].MonthlyPayment, options[3].MonthlyPayment)
	assert.Zero(t, options[3].InterestSavings)
	assert.Greater(t, options[0].InterestSavings, 0.0)
}

func TestCompareCarLoanTerms_LowDownPaymentIsStillCompared(t *testing.T) {
	svc := newTestAutoService(t)

	// A down payment below the LTV rule's minimum would make CarLoan
	// answer Valid=false, but the comparison still prices the structure.
	options, err := svc.CompareCarLoanTerms(domain.CarLoanInput{
		CarPrice:    100_000,
		DownPayment: floatPtr(1_000),
	}, []int{36, 60})
	require.NoError(t, err)
	require.Len(t, options, 2)

	assert.Equal(t, 36, options[0].TermMonths)
	assert.Equal(t, 60, options[1].TermMonths)
	assert.InDelta(t, 2988.95, options[0].MonthlyPayment, 0.01)
	assert.InDelta(t, 1890.56, options[1].MonthlyPayment, 0.01)
	assert.InDelta(t, 8602.12, options[0].TotalInterest, 0.01)
	assert.InDelta(t, 14433.49, options[1].TotalInterest, 0.01)
	assert.InDelta(t, 5831.37, options[0].InterestSavings, 0.01)
	assert.Zero(t, options[1].InterestSavings)
}

func TestCompareCarLoanTerms_TermOutsideProductRange(t *testing.T) {
	svc := newTestAutoService(t)

	_, err := svc.CompareCarLoanTerms(domain.CarLoanInput{CarPrice: 100_000}, []int{120})
	require.ErrorIs(t, err, ErrTermOutOfRange)
}

func TestCarLoan_TermOutsideProductRange(t *testing.T) {
	svc := newTestAutoService(t)

	_, err := svc.CarLoan(domain.CarLoanInput{
		CarPrice:       100_000,
		LoanTermMonths: 120,
	})
	require.ErrorIs(t, err, ErrTermOutOfRange)
}

func TestEarlyPayoff(t *testing.T) {
	svc := newTestAutoService(t)

	result, err := svc.EarlyPayoff(domain.EarlyPayoffInput{
		LoanAmount:          200_000,
		AnnualInterestRate:  0.05,
		LoanTermMonths:      360,
		ExtraMonthlyPayment: 200,
	})
	require.NoError(t, err)

	assert.Equal(t, 360, result.OriginalTermMonths)
	assert.Equal(t, 256, result.NewTermMonths)
	assert.Equal(t, 104, result.MonthsSaved)
	assert.InDelta(t, 1073.64, result.OriginalMonthlyPayment, 0.01)
	assert.InDelta(t, 1273.64, result.NewMonthlyPayment, 0.01)
	assert.InDelta(t, 61_160.51, result.InterestSaved, 1)
	assert.Less(t, result.NewTotalInterest, result.OriginalTotalInterest)
	assert.Contains(t, result.Message, "pay off 104 months earlier")
}

func TestEarlyPayoff_ZeroRate(t *testing.T) {
	svc := newTestAutoService(t)

	result, err := svc.EarlyPayoff(domain.EarlyPayoffInput{
		LoanAmount:          12_000,
		AnnualInterestRate:  0,
		LoanTermMonths:      12,
		ExtraMonthlyPayment: 500,
	})
	require.NoError(t, err)

	// 1000/month scheduled plus 500 extra clears 12000 in 8 months.
	assert.Equal(t, 8, result.NewTermMonths)
	assert.Zero(t, result.InterestSaved)
}

func TestEarlyPayoff_InvalidExtraPayment(t *testing.T) {
	svc := newTestAutoService(t)

	_, err := svc.EarlyPayoff(domain.EarlyPayoffInput{
		LoanAmount:         50_000,
		AnnualInterestRate: 0.05,
		LoanTermMonths:     60,
	})
	require.ErrorIs(t, err, ErrInvalidExtraPayment)
}
