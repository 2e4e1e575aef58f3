package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAge              = errors.New("age must be between 18 and 100")
	ErrInvalidCreditScore      = errors.New("credit score must be between 300 and 850")
	ErrInvalidEmploymentStatus = errors.New("invalid employment status")
	ErrInvalidEmploymentYears  = errors.New("employment length cannot be negative")
	ErrInvalidDebt             = errors.New("monthly debt obligations cannot be negative")
)

// EmploymentStatus categorizes an applicant's work situation.
type EmploymentStatus string

const (
	EmploymentFullTime     EmploymentStatus = "full_time"
	EmploymentPartTime     EmploymentStatus = "part_time"
	EmploymentSelfEmployed EmploymentStatus = "self_employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentRetired      EmploymentStatus = "retired"
)

// Valid reports whether the status is one of the known categories.
func (s EmploymentStatus) Valid() bool {
	switch s {
	case EmploymentFullTime, EmploymentPartTime, EmploymentSelfEmployed,
		EmploymentUnemployed, EmploymentRetired:
		return true
	}
	return false
}

// EligibilityStatus is the overall outcome of an eligibility check.
type EligibilityStatus string

const (
	StatusEligible    EligibilityStatus = "eligible"
	StatusNotEligible EligibilityStatus = "not_eligible"
	StatusConditional EligibilityStatus = "conditional"
)

// ApplicantProfile holds everything the eligibility check evaluates.
// Construct it through NewApplicantProfile so out-of-range values are
// rejected before any rule runs.
type ApplicantProfile struct {
	Age                    int              `json:"age"`
	MonthlyIncome          float64          `json:"monthly_income"`
	CreditScore            int              `json:"credit_score"`
	EmploymentStatus       EmploymentStatus `json:"employment_status"`
	EmploymentLengthYears  float64          `json:"employment_length_years"`
	MonthlyDebtObligations float64          `json:"monthly_debt_obligations"`
	RequestedLoanAmount    float64          `json:"requested_loan_amount"`
	LoanTermMonths         int              `json:"loan_term_months"`
	HasExistingLoans       bool             `json:"has_existing_loans"`
	PreviousDefaults       bool             `json:"previous_defaults"`
}

// NewApplicantProfile validates every field and returns the profile, or
// the first range violation found. Values are never clamped.
func NewApplicantProfile(p ApplicantProfile) (ApplicantProfile, error) {
	if p.Age < 18 || p.Age > 100 {
		return ApplicantProfile{}, fmt.Errorf("%w: got %d", ErrInvalidAge, p.Age)
	}
	if p.MonthlyIncome <= 0 {
		return ApplicantProfile{}, fmt.Errorf("%w: got %.2f", ErrInvalidIncome, p.MonthlyIncome)
	}
	if p.CreditScore < 300 || p.CreditScore > 850 {
		return ApplicantProfile{}, fmt.Errorf("%w: got %d", ErrInvalidCreditScore, p.CreditScore)
	}
	if !p.EmploymentStatus.Valid() {
		return ApplicantProfile{}, fmt.Errorf("%w: %q", ErrInvalidEmploymentStatus, p.EmploymentStatus)
	}
	if p.EmploymentLengthYears < 0 {
		return ApplicantProfile{}, fmt.Errorf("%w: got %.1f", ErrInvalidEmploymentYears, p.EmploymentLengthYears)
	}
	if p.MonthlyDebtObligations < 0 {
		return ApplicantProfile{}, fmt.Errorf("%w: got %.2f", ErrInvalidDebt, p.MonthlyDebtObligations)
	}
	if p.RequestedLoanAmount <= 0 {
		return ApplicantProfile{}, fmt.Errorf("%w: got %.2f", ErrInvalidAmount, p.RequestedLoanAmount)
	}
	if p.LoanTermMonths <= 0 || p.LoanTermMonths > MaxTermMonths {
		return ApplicantProfile{}, fmt.Errorf("%w: got %d", ErrInvalidTerm, p.LoanTermMonths)
	}
	return p, nil
}

// EligibilityResult is the outcome of a full eligibility evaluation.
type EligibilityResult struct {
	Status          EligibilityStatus `json:"status"`
	Eligible        bool              `json:"eligible"`
	Score           float64           `json:"score"`
	Reasons         []string          `json:"reasons"`
	Recommendations []string          `json:"recommendations"`
}
