package domain

// HomeAffordabilityResult reports the most expensive home a buyer can
// finance given income, existing debt, and the applicable LTV rule.
type HomeAffordabilityResult struct {
	Affordable            bool    `json:"affordable"`
	MaxHomePrice          float64 `json:"max_home_price"`
	MaxLoanAmount         float64 `json:"max_loan_amount"`
	RequiredDownPayment   float64 `json:"required_down_payment"`
	DownPaymentPercentage float64 `json:"down_payment_percentage"`
	MonthlyPayment        float64 `json:"monthly_payment"`
	DTIRatio              float64 `json:"dti_ratio"`
	LTVRatio              float64 `json:"ltv_ratio"`
	Residency             string  `json:"residency"`
	PropertyType          string  `json:"property_type"`
	AnnualInterestRate    float64 `json:"annual_interest_rate"`
	LoanTermMonths        int     `json:"loan_term_months"`
	Message               string  `json:"message"`
}

// MortgageQuote is the outcome of pricing a specific home purchase.
// Valid=false with a message means the down payment violated the LTV rule;
// that is a business outcome, not an error.
type MortgageQuote struct {
	Valid                 bool    `json:"valid"`
	HomePrice             float64 `json:"home_price,omitempty"`
	DownPayment           float64 `json:"down_payment,omitempty"`
	DownPaymentPercentage float64 `json:"down_payment_percentage,omitempty"`
	LoanAmount            float64 `json:"loan_amount,omitempty"`
	LTVRatio              float64 `json:"ltv_ratio,omitempty"`
	MaxLTVAllowed         float64 `json:"max_ltv_allowed,omitempty"`
	Residency             string  `json:"residency,omitempty"`
	PropertyType          string  `json:"property_type,omitempty"`
	MonthlyPayment        float64 `json:"monthly_payment,omitempty"`
	TotalPayment          float64 `json:"total_payment,omitempty"`
	TotalInterest         float64 `json:"total_interest,omitempty"`
	AnnualInterestRate    float64 `json:"annual_interest_rate,omitempty"`
	LoanTermMonths        int     `json:"loan_term_months,omitempty"`
	Message               string  `json:"message,omitempty"`
}

// CarLoanQuote is the outcome of pricing a vehicle purchase.
type CarLoanQuote struct {
	Valid                 bool    `json:"valid"`
	CarPrice              float64 `json:"car_price,omitempty"`
	DownPayment           float64 `json:"down_payment,omitempty"`
	DownPaymentPercentage float64 `json:"down_payment_percentage,omitempty"`
	LoanAmount            float64 `json:"loan_amount,omitempty"`
	LTVRatio              float64 `json:"ltv_ratio,omitempty"`
	MaxLTVAllowed         float64 `json:"max_ltv_allowed,omitempty"`
	VehicleType           string  `json:"vehicle_type,omitempty"`
	MonthlyPayment        float64 `json:"monthly_payment,omitempty"`
	TotalPayment          float64 `json:"total_payment,omitempty"`
	TotalInterest         float64 `json:"total_interest,omitempty"`
	AnnualInterestRate    float64 `json:"annual_interest_rate,omitempty"`
	LoanTermMonths        int     `json:"loan_term_months,omitempty"`
	Message               string  `json:"message,omitempty"`
}

// EarlyPayoffResult compares a loan paid as scheduled against the same
// loan with a fixed extra amount added to every payment.
type EarlyPayoffResult struct {
	OriginalTermMonths      int     `json:"original_term_months"`
	NewTermMonths           int     `json:"new_term_months"`
	MonthsSaved             int     `json:"months_saved"`
	YearsSaved              float64 `json:"years_saved"`
	OriginalMonthlyPayment  float64 `json:"original_monthly_payment"`
	NewMonthlyPayment       float64 `json:"new_monthly_payment"`
	ExtraMonthlyPayment     float64 `json:"extra_monthly_payment"`
	OriginalTotalInterest   float64 `json:"original_total_interest"`
	NewTotalInterest        float64 `json:"new_total_interest"`
	InterestSaved           float64 `json:"interest_saved"`
	Message                 string  `json:"message"`
}
