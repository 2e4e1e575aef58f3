package repository

import "loan-advisor/domain"

// LoanRepository records completed loan calculations. Persistence is
// best-effort: a failed Save never fails the calculation itself.
type LoanRepository interface {
	Save(request domain.LoanRequest, result domain.LoanCalculation) error
}
