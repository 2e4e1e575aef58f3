package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"loan-advisor/config"
	"loan-advisor/domain"
	"loan-advisor/finance"
	"loan-advisor/repository"
)

var (
	ErrNoTerms          = errors.New("at least one term is required for comparison")
	ErrNegativeDebt     = errors.New("existing monthly debt cannot be negative")
	ErrAmountOverLimit  = errors.New("loan amount exceeds the configured maximum")
	ErrAmountUnderLimit = errors.New("loan amount is below the configured minimum")
	ErrTermOutOfRange   = errors.New("loan term is outside the product's offered range")
)

// LoanService orchestrates the financial engine for a single loan
// product: payment summaries, schedules, affordability checks, term
// comparisons and reverse (max principal) calculations.
type LoanService struct {
	engine finance.Engine
	cfg    config.LoanConfig
	repo   repository.LoanRepository
	cache  repository.CacheRepository
	logger *zap.Logger
}

// NewLoanService creates a LoanService for the given regulation block.
func NewLoanService(
	cfg config.LoanConfig,
	repo repository.LoanRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		cfg:    cfg,
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// MaxDTIRatio exposes the product's DTI ceiling.
func (s *LoanService) MaxDTIRatio() float64 {
	return s.cfg.MaxDTIRatio
}

func (s *LoanService) validate(request domain.LoanRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}
	if s.cfg.MaxAmount > 0 && request.LoanAmount > s.cfg.MaxAmount {
		return fmt.Errorf("%w: %.2f > %.2f", ErrAmountOverLimit, request.LoanAmount, s.cfg.MaxAmount)
	}
	if s.cfg.MinAmount > 0 && request.LoanAmount < s.cfg.MinAmount {
		return fmt.Errorf("%w: %.2f < %.2f", ErrAmountUnderLimit, request.LoanAmount, s.cfg.MinAmount)
	}
	return s.validateTerm(request.LoanTermMonths)
}

func (s *LoanService) validateTerm(term int) error {
	if s.cfg.MaxTermMonths > 0 && (term < s.cfg.MinTermMonths || term > s.cfg.MaxTermMonths) {
		return fmt.Errorf("%w: got %d, product offers %d to %d months",
			ErrTermOutOfRange, term, s.cfg.MinTermMonths, s.cfg.MaxTermMonths)
	}
	return nil
}

// Calculate computes the fixed monthly payment and totals for a loan.
func (s *LoanService) Calculate(request domain.LoanRequest) (domain.LoanCalculation, error) {
	if err := s.validate(request); err != nil {
		return domain.LoanCalculation{}, err
	}

	payment, err := s.engine.Payment(request.LoanAmount, request.AnnualInterestRate, request.LoanTermMonths)
	if err != nil {
		return domain.LoanCalculation{}, err
	}

	total := payment * float64(request.LoanTermMonths)
	result := domain.LoanCalculation{
		MonthlyPayment:     finance.Round2(payment),
		TotalPayment:       finance.Round2(total),
		TotalInterest:      finance.Round2(total - request.LoanAmount),
		Principal:          request.LoanAmount,
		LoanTermMonths:     request.LoanTermMonths,
		AnnualInterestRate: request.AnnualInterestRate,
		MonthlyRate:        request.AnnualInterestRate / 12,
	}

	if err := s.repo.Save(request, result); err != nil {
		s.logger.Warn("failed to save loan calculation", zap.Error(err))
	}

	return result, nil
}

func scheduleCacheKey(request domain.LoanRequest) string {
	return fmt.Sprintf("schedule:%.2f:%.6f:%d",
		request.LoanAmount, request.AnnualInterestRate, request.LoanTermMonths)
}

// Schedule returns the full amortization schedule with its summary.
// Schedules are deterministic in their inputs, so results are cached.
func (s *LoanService) Schedule(request domain.LoanRequest) (domain.AmortizationSchedule, error) {
	if err := s.validate(request); err != nil {
		return domain.AmortizationSchedule{}, err
	}

	key := scheduleCacheKey(request)
	if cached, ok := s.cache.Get(key); ok {
		var schedule domain.AmortizationSchedule
		if err := json.Unmarshal([]byte(cached), &schedule); err == nil {
			return schedule, nil
		}
		s.logger.Warn("discarding unreadable cached schedule", zap.String("key", key))
	}

	summary, err := s.Calculate(request)
	if err != nil {
		return domain.AmortizationSchedule{}, err
	}

	rows, err := s.engine.AmortizationTable(request.LoanAmount, request.AnnualInterestRate, request.LoanTermMonths)
	if err != nil {
		return domain.AmortizationSchedule{}, err
	}

	schedule := domain.AmortizationSchedule{Summary: summary, Schedule: rows}

	if encoded, err := json.Marshal(schedule); err == nil {
		if err := s.cache.Set(key, string(encoded)); err != nil {
			s.logger.Warn("failed to cache schedule", zap.String("key", key), zap.Error(err))
		}
	}

	return schedule, nil
}

// CheckAffordability tests the requested loan against the product's DTI
// ceiling. When the request carries no income the result is
// indeterminate (Affordable == nil), never a false "not affordable".
func (s *LoanService) CheckAffordability(
	request domain.LoanRequest,
	existingMonthlyDebt float64,
) (domain.AffordabilityResult, error) {
	if err := s.validate(request); err != nil {
		return domain.AffordabilityResult{}, err
	}
	if existingMonthlyDebt < 0 {
		return domain.AffordabilityResult{}, fmt.Errorf("%w: got %.2f", ErrNegativeDebt, existingMonthlyDebt)
	}

	if request.MonthlyIncome == nil {
		return domain.AffordabilityResult{
			Affordable:        nil,
			ExistingDebt:      existingMonthlyDebt,
			MaxRecommendedDTI: s.cfg.MaxDTIRatio,
			Message:           "Monthly income required for affordability check",
		}, nil
	}

	calc, err := s.Calculate(request)
	if err != nil {
		return domain.AffordabilityResult{}, err
	}

	income := *request.MonthlyIncome
	totalDebt := calc.MonthlyPayment + existingMonthlyDebt
	dti := totalDebt / income
	affordable := dti <= s.cfg.MaxDTIRatio

	return domain.AffordabilityResult{
		Affordable:        &affordable,
		MonthlyPayment:    calc.MonthlyPayment,
		MonthlyIncome:     income,
		ExistingDebt:      existingMonthlyDebt,
		TotalMonthlyDebt:  finance.Round2(totalDebt),
		DTIRatio:          dti,
		MaxRecommendedDTI: s.cfg.MaxDTIRatio,
		Message:           s.affordabilityMessage(dti, affordable),
	}, nil
}

func (s *LoanService) affordabilityMessage(dti float64, affordable bool) string {
	if affordable {
		switch {
		case dti <= excellentDTI:
			return fmt.Sprintf("Excellent affordability! DTI ratio of %.1f%% is very healthy.", dti*100)
		case s.cfg.RecommendedDTI > 0 && dti <= s.cfg.RecommendedDTI:
			return fmt.Sprintf("Good affordability. DTI ratio of %.1f%% is within comfort zone.", dti*100)
		default:
			return fmt.Sprintf("Acceptable affordability. DTI ratio of %.1f%% is manageable but getting high.", dti*100)
		}
	}
	return fmt.Sprintf(
		"Warning: DTI ratio of %.1f%% exceeds recommended maximum of %.1f%%. Consider reducing loan amount or term.",
		dti*100, s.cfg.MaxDTIRatio*100)
}

// CompareTerms computes a summary per candidate term, sorted ascending.
// Each entry reports interest savings relative to the longest term in
// the set.
func (s *LoanService) CompareTerms(
	loanAmount, annualRate float64,
	terms []int,
) ([]domain.TermOption, error) {
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}
	for _, term := range terms {
		request := domain.LoanRequest{
			LoanAmount:         loanAmount,
			AnnualInterestRate: annualRate,
			LoanTermMonths:     term,
		}
		if err := s.validate(request); err != nil {
			return nil, err
		}
	}

	sorted := make([]int, len(terms))
	copy(sorted, terms)
	sort.Ints(sorted)

	options := make([]domain.TermOption, 0, len(sorted))
	for _, term := range sorted {
		calc, err := s.Calculate(domain.LoanRequest{
			LoanAmount:         loanAmount,
			AnnualInterestRate: annualRate,
			LoanTermMonths:     term,
		})
		if err != nil {
			return nil, err
		}
		options = append(options, domain.TermOption{
			TermMonths:         term,
			TermYears:          finance.Round2(float64(term) / 12),
			MonthlyPayment:     calc.MonthlyPayment,
			TotalPayment:       calc.TotalPayment,
			TotalInterest:      calc.TotalInterest,
			InterestPercentage: finance.Round2(calc.TotalInterest / loanAmount * 100),
		})
	}

	longestInterest := options[len(options)-1].TotalInterest
	for i := range options {
		options[i].InterestSavings = finance.Round2(longestInterest - options[i].TotalInterest)
	}

	return options, nil
}

// MaxLoanAmount computes the largest principal the borrower's income can
// carry under the DTI ceiling. A zero result with a message is a normal
// outcome: existing debt can already exhaust the ceiling.
func (s *LoanService) MaxLoanAmount(
	monthlyIncome, annualRate float64,
	termMonths int,
	existingMonthlyDebt float64,
) (domain.MaxLoanResult, error) {
	if monthlyIncome <= 0 {
		return domain.MaxLoanResult{}, fmt.Errorf("%w: got %.2f", domain.ErrInvalidIncome, monthlyIncome)
	}
	if existingMonthlyDebt < 0 {
		return domain.MaxLoanResult{}, fmt.Errorf("%w: got %.2f", ErrNegativeDebt, existingMonthlyDebt)
	}
	if annualRate < 0 || annualRate > 1 {
		return domain.MaxLoanResult{}, fmt.Errorf("%w: got %v", domain.ErrInvalidRate, annualRate)
	}
	if termMonths <= 0 || termMonths > domain.MaxTermMonths {
		return domain.MaxLoanResult{}, fmt.Errorf("%w: got %d", domain.ErrInvalidTerm, termMonths)
	}
	if err := s.validateTerm(termMonths); err != nil {
		return domain.MaxLoanResult{}, err
	}

	maxPayment := monthlyIncome*s.cfg.MaxDTIRatio - existingMonthlyDebt
	result := domain.MaxLoanResult{
		MaxMonthlyPayment:  finance.Round2(maxPayment),
		MonthlyIncome:      monthlyIncome,
		ExistingDebt:       existingMonthlyDebt,
		DTIRatio:           s.cfg.MaxDTIRatio,
		TermMonths:         termMonths,
		AnnualInterestRate: annualRate,
	}

	if maxPayment <= 0 {
		result.MaxLoanAmount = 0
		result.Message = "Existing debt already exceeds recommended DTI ratio"
		return result, nil
	}

	maxPrincipal, err := s.engine.MaxPrincipal(maxPayment, annualRate, termMonths)
	if err != nil {
		return domain.MaxLoanResult{}, err
	}

	result.MaxLoanAmount = finance.Round2(maxPrincipal)
	result.Message = fmt.Sprintf(
		"Based on %.0f%% DTI ratio, you can afford up to $%.2f",
		s.cfg.MaxDTIRatio*100, result.MaxLoanAmount)
	return result, nil
}
