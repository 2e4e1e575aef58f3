// Package finance implements the closed-form annuity math every other
// calculation in this module is built on. All operations are pure
// functions of their arguments; Engine carries no state and a zero value
// is ready to use.
package finance

import (
	"errors"
	"fmt"
	"math"

	"loan-advisor/domain"
)

var (
	ErrInvalidPrincipal = errors.New("principal must be greater than zero")
	ErrInvalidPeriods   = errors.New("number of periods must be greater than zero")
	ErrInvalidPeriod    = errors.New("period must be between 1 and the number of periods")
	ErrInvalidPayment   = errors.New("payment must be greater than zero")
	ErrNegativeRate     = errors.New("annual rate cannot be negative")
)

// Round2 rounds a value to two decimal places (cents).
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Engine provides annuity-loan calculations. Zero-rate loans are a
// first-class case throughout: payment degenerates to an even split of
// the principal with no interest.
type Engine struct{}

func validateLoan(principal, annualRate float64, periods int) error {
	if principal <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidPrincipal, principal)
	}
	if annualRate < 0 {
		return fmt.Errorf("%w: got %v", ErrNegativeRate, annualRate)
	}
	if periods <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPeriods, periods)
	}
	return nil
}

// Payment returns the fixed monthly installment for an annuity loan:
//
//	PMT = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate (annualRate / 12).
func (Engine) Payment(principal, annualRate float64, periods int) (float64, error) {
	if err := validateLoan(principal, annualRate, periods); err != nil {
		return 0, err
	}

	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return principal / float64(periods), nil
	}

	factor := math.Pow(1+monthlyRate, float64(periods))
	return principal * monthlyRate * factor / (factor - 1), nil
}

// MaxPrincipal is the algebraic inverse of Payment: the largest principal
// a given monthly payment can service over the term.
func (Engine) MaxPrincipal(payment, annualRate float64, periods int) (float64, error) {
	if payment <= 0 {
		return 0, fmt.Errorf("%w: got %.2f", ErrInvalidPayment, payment)
	}
	if annualRate < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNegativeRate, annualRate)
	}
	if periods <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPeriods, periods)
	}

	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return payment * float64(periods), nil
	}

	factor := math.Pow(1+monthlyRate, float64(periods))
	return payment * (factor - 1) / (monthlyRate * factor), nil
}

// RemainingBalance returns the outstanding principal after `period`
// payments have been made. It is strictly decreasing in period and is
// exactly zero at the end of the term.
func (e Engine) RemainingBalance(principal, annualRate float64, period, periods int) (float64, error) {
	if err := validateLoan(principal, annualRate, periods); err != nil {
		return 0, err
	}
	if period < 0 || period > periods {
		return 0, fmt.Errorf("%w: got %d of %d", ErrInvalidPeriod, period, periods)
	}
	if period == periods {
		return 0, nil
	}

	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		pmt := principal / float64(periods)
		return math.Max(0, principal-pmt*float64(period)), nil
	}

	pmt, err := e.Payment(principal, annualRate, periods)
	if err != nil {
		return 0, err
	}

	// B_k = P*(1+r)^k - PMT*((1+r)^k - 1)/r
	grown := math.Pow(1+monthlyRate, float64(period))
	balance := principal*grown - pmt*(grown-1)/monthlyRate
	return math.Max(0, balance), nil
}

// InterestPayment returns the interest portion of the installment due in
// the given period (1-indexed).
func (e Engine) InterestPayment(principal, annualRate float64, period, periods int) (float64, error) {
	if err := validateLoan(principal, annualRate, periods); err != nil {
		return 0, err
	}
	if period < 1 || period > periods {
		return 0, fmt.Errorf("%w: got %d of %d", ErrInvalidPeriod, period, periods)
	}
	if annualRate == 0 {
		return 0, nil
	}

	balance, err := e.RemainingBalance(principal, annualRate, period-1, periods)
	if err != nil {
		return 0, err
	}
	return balance * annualRate / 12, nil
}

// PrincipalPayment returns the principal portion of the installment due
// in the given period. InterestPayment + PrincipalPayment equals the
// fixed monthly payment for every period.
func (e Engine) PrincipalPayment(principal, annualRate float64, period, periods int) (float64, error) {
	pmt, err := e.Payment(principal, annualRate, periods)
	if err != nil {
		return 0, err
	}
	interest, err := e.InterestPayment(principal, annualRate, period, periods)
	if err != nil {
		return 0, err
	}
	return pmt - interest, nil
}

// AmortizationTable generates the full schedule in a single forward
// accumulation pass. Rows are rounded to cents; the final row absorbs
// the accumulated rounding so the balance lands on exactly zero and the
// principal components sum to the original principal.
func (e Engine) AmortizationTable(principal, annualRate float64, periods int) ([]domain.AmortizationEntry, error) {
	if err := validateLoan(principal, annualRate, periods); err != nil {
		return nil, err
	}

	monthlyRate := annualRate / 12
	pmt, err := e.Payment(principal, annualRate, periods)
	if err != nil {
		return nil, err
	}

	schedule := make([]domain.AmortizationEntry, 0, periods)
	remaining := Round2(principal)

	for month := 1; month <= periods; month++ {
		interest := Round2(remaining * monthlyRate)
		principalPart := Round2(pmt - interest)
		payment := Round2(pmt)

		if month == periods {
			// Final row clears whatever is left, rounding included.
			principalPart = remaining
			payment = Round2(principalPart + interest)
		}

		remaining = Round2(remaining - principalPart)
		if remaining < 0 {
			remaining = 0
		}

		schedule = append(schedule, domain.AmortizationEntry{
			Month:              month,
			Payment:            payment,
			PrincipalComponent: principalPart,
			InterestComponent:  interest,
			RemainingBalance:   remaining,
		})
	}

	return schedule, nil
}
