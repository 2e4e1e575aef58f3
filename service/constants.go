package service

// Thresholds shared across services.
const (
	// DTI below this reads as excellent in affordability messaging.
	excellentDTI = 0.30

	// A simulated balance below this is considered paid off.
	balanceTolerance = 0.01
)

// defaultCarLoanTerms are the terms compared when a car-loan comparison
// request does not specify its own.
var defaultCarLoanTerms = []int{36, 48, 60, 72}
