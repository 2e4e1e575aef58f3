package domain

// Inputs for the mortgage and auto-loan operations. Optional fields are
// pointers: a nil rate falls back to the configured base rate for the
// product, a nil down payment falls back to the rule's minimum.

type HomeAffordabilityInput struct {
	MonthlyIncome       float64  `json:"monthly_income"`
	ExistingDebtPayment float64  `json:"existing_debt_payment"`
	AnnualInterestRate  *float64 `json:"annual_interest_rate,omitempty"`
	LoanTermMonths      int      `json:"loan_term_months,omitempty"`
	Residency           string   `json:"residency,omitempty"`
	PropertyType        string   `json:"property_type,omitempty"`
	EstimatedPrice      float64  `json:"estimated_price,omitempty"`
}

type MortgagePaymentInput struct {
	HomePrice          float64  `json:"home_price"`
	DownPayment        *float64 `json:"down_payment,omitempty"`
	AnnualInterestRate *float64 `json:"annual_interest_rate,omitempty"`
	LoanTermMonths     int      `json:"loan_term_months,omitempty"`
	Residency          string   `json:"residency,omitempty"`
	PropertyType       string   `json:"property_type,omitempty"`
}

type CarLoanInput struct {
	CarPrice           float64  `json:"car_price"`
	DownPayment        *float64 `json:"down_payment,omitempty"`
	AnnualInterestRate *float64 `json:"annual_interest_rate,omitempty"`
	LoanTermMonths     int      `json:"loan_term_months,omitempty"`
	Residency          string   `json:"residency,omitempty"`
	VehicleType        string   `json:"vehicle_type,omitempty"`
}

type EarlyPayoffInput struct {
	LoanAmount          float64 `json:"loan_amount"`
	AnnualInterestRate  float64 `json:"annual_interest_rate"`
	LoanTermMonths      int     `json:"loan_term_months"`
	ExtraMonthlyPayment float64 `json:"extra_monthly_payment"`
}
