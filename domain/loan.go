package domain

import (
	"errors"
	"fmt"
)

// MaxTermMonths is the longest supported term for any loan product.
const MaxTermMonths = 360

var (
	ErrInvalidAmount = errors.New("loan amount must be greater than zero")
	ErrInvalidRate   = errors.New("annual interest rate must be between 0 and 1 (decimal form, not percent)")
	ErrInvalidTerm   = errors.New("loan term must be between 1 and 360 months")
	ErrInvalidIncome = errors.New("monthly income must be greater than zero")
)

// LoanType identifies the loan product a calculation applies to.
type LoanType string

const (
	LoanTypePersonal LoanType = "personal"
	LoanTypeMortgage LoanType = "mortgage"
	LoanTypeAuto     LoanType = "auto"
)

// DisplayName returns a human-readable product name.
func (t LoanType) DisplayName() string {
	switch t {
	case LoanTypePersonal:
		return "Personal Loan"
	case LoanTypeMortgage:
		return "Mortgage / Home Loan"
	case LoanTypeAuto:
		return "Auto / Car Loan"
	}
	return string(t)
}

// RequiresCollateral reports whether the product is secured.
func (t LoanType) RequiresCollateral() bool {
	return t == LoanTypeMortgage || t == LoanTypeAuto
}

// LoanRequest carries the parameters for a single loan calculation.
// The rate is a decimal fraction (0.0499 for 4.99%), never a percentage.
type LoanRequest struct {
	LoanAmount         float64  `json:"loan_amount"`
	AnnualInterestRate float64  `json:"annual_interest_rate"`
	LoanTermMonths     int      `json:"loan_term_months"`
	MonthlyIncome      *float64 `json:"monthly_income,omitempty"`
}

// Validate rejects malformed requests before any computation runs.
func (r LoanRequest) Validate() error {
	if r.LoanAmount <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidAmount, r.LoanAmount)
	}
	if r.AnnualInterestRate < 0 || r.AnnualInterestRate > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidRate, r.AnnualInterestRate)
	}
	if r.LoanTermMonths <= 0 || r.LoanTermMonths > MaxTermMonths {
		return fmt.Errorf("%w: got %d", ErrInvalidTerm, r.LoanTermMonths)
	}
	if r.MonthlyIncome != nil && *r.MonthlyIncome <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidIncome, *r.MonthlyIncome)
	}
	return nil
}

// LoanCalculation summarizes payment and totals for a loan.
type LoanCalculation struct {
	MonthlyPayment     float64 `json:"monthly_payment"`
	TotalPayment       float64 `json:"total_payment"`
	TotalInterest      float64 `json:"total_interest"`
	Principal          float64 `json:"principal"`
	LoanTermMonths     int     `json:"loan_term_months"`
	AnnualInterestRate float64 `json:"annual_interest_rate"`
	MonthlyRate        float64 `json:"monthly_rate"`
}

// AmortizationEntry is one row of an amortization schedule.
type AmortizationEntry struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	PrincipalComponent float64 `json:"principal_component"`
	InterestComponent  float64 `json:"interest_component"`
	RemainingBalance   float64 `json:"remaining_balance"`
}

// AmortizationSchedule pairs the full schedule with its summary.
type AmortizationSchedule struct {
	Summary  LoanCalculation     `json:"summary"`
	Schedule []AmortizationEntry `json:"schedule"`
}

// AffordabilityResult reports whether a loan fits within the DTI ceiling.
// Affordable is nil when no income was supplied, so callers can tell
// "cannot assess" apart from "assessed and the answer is no".
type AffordabilityResult struct {
	Affordable        *bool   `json:"affordable"`
	MonthlyPayment    float64 `json:"monthly_payment,omitempty"`
	MonthlyIncome     float64 `json:"monthly_income,omitempty"`
	ExistingDebt      float64 `json:"existing_debt"`
	TotalMonthlyDebt  float64 `json:"total_monthly_debt,omitempty"`
	DTIRatio          float64 `json:"dti_ratio,omitempty"`
	MaxRecommendedDTI float64 `json:"max_recommended_dti"`
	Message           string  `json:"message"`
}

// TermOption is one entry in a term comparison, sorted ascending by term.
// InterestSavings is measured against the longest term in the comparison.
type TermOption struct {
	TermMonths         int     `json:"term_months"`
	TermYears          float64 `json:"term_years"`
	MonthlyPayment     float64 `json:"monthly_payment"`
	TotalPayment       float64 `json:"total_payment"`
	TotalInterest      float64 `json:"total_interest"`
	InterestPercentage float64 `json:"interest_percentage"`
	InterestSavings    float64 `json:"interest_savings"`
}

// MaxLoanResult reports the largest principal a borrower can carry.
// MaxLoanAmount of zero with a message is a valid business outcome, not
// an error: existing debt alone can exhaust the DTI ceiling.
type MaxLoanResult struct {
	MaxLoanAmount      float64 `json:"max_loan_amount"`
	MaxMonthlyPayment  float64 `json:"max_monthly_payment"`
	MonthlyIncome      float64 `json:"monthly_income"`
	ExistingDebt       float64 `json:"existing_debt"`
	DTIRatio           float64 `json:"dti_ratio"`
	TermMonths         int     `json:"term_months"`
	AnnualInterestRate float64 `json:"annual_interest_rate"`
	Message            string  `json:"message"`
}
