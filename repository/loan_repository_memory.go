package repository

import (
	"sync"

	"loan-advisor/domain"
)

type calculationRecord struct {
	Request domain.LoanRequest
	Result  domain.LoanCalculation
}

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu   sync.Mutex
	data []calculationRecord
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{}
}

// Save stores the calculation in memory.
func (r *LoanRepositoryMemory) Save(
	request domain.LoanRequest,
	result domain.LoanCalculation,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, calculationRecord{Request: request, Result: result})
	return nil
}

// Count returns the number of stored calculations.
func (r *LoanRepositoryMemory) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
