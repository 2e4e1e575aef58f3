package service

import (
	"fmt"

	"go.uber.org/zap"

	"loan-advisor/config"
	"loan-advisor/domain"
	"loan-advisor/finance"
	"loan-advisor/rules"
)

// MortgageService prices home purchases against the mortgage regulation
// block and the residency/property LTV rule table.
type MortgageService struct {
	engine finance.Engine
	cfg    config.LoanConfig
	logger *zap.Logger
}

func NewMortgageService(cfg config.LoanConfig, logger *zap.Logger) *MortgageService {
	return &MortgageService{cfg: cfg, logger: logger}
}

func (s *MortgageService) defaults(rate *float64, term int, residency, propertyType string) (float64, int, string, string) {
	r := s.cfg.BaseRate
	if rate != nil {
		r = *rate
	}
	if term <= 0 {
		term = s.cfg.DefaultTerm
	}
	if residency == "" {
		residency = "expat"
	}
	if propertyType == "" {
		propertyType = "first"
	}
	return r, term, residency, propertyType
}

func (s *MortgageService) validateTerm(term int) error {
	if term <= 0 || term > domain.MaxTermMonths {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidTerm, term)
	}
	if s.cfg.MaxTermMonths > 0 && (term < s.cfg.MinTermMonths || term > s.cfg.MaxTermMonths) {
		return fmt.Errorf("%w: got %d, product offers %d to %d months",
			ErrTermOutOfRange, term, s.cfg.MinTermMonths, s.cfg.MaxTermMonths)
	}
	return nil
}

// HomeAffordability computes the most expensive home the borrower can
// finance: max payment from the mortgage DTI ceiling, converted to a max
// loan via the reverse annuity formula, then grossed up by the rule's
// maximum LTV.
func (s *MortgageService) HomeAffordability(input domain.HomeAffordabilityInput) (domain.HomeAffordabilityResult, error) {
	if input.MonthlyIncome <= 0 {
		return domain.HomeAffordabilityResult{}, fmt.Errorf("%w: got %.2f", domain.ErrInvalidIncome, input.MonthlyIncome)
	}
	if input.ExistingDebtPayment < 0 {
		return domain.HomeAffordabilityResult{}, fmt.Errorf("%w: got %.2f", ErrNegativeDebt, input.ExistingDebtPayment)
	}

	rate, term, residency, propertyType := s.defaults(
		input.AnnualInterestRate, input.LoanTermMonths, input.Residency, input.PropertyType)
	if rate < 0 || rate > 1 {
		return domain.HomeAffordabilityResult{}, fmt.Errorf("%w: got %v", domain.ErrInvalidRate, rate)
	}
	if err := s.validateTerm(term); err != nil {
		return domain.HomeAffordabilityResult{}, err
	}

	rule := rules.GetMortgageRule(residency, propertyType, input.EstimatedPrice)

	maxPayment := input.MonthlyIncome*s.cfg.MaxDTIRatio - input.ExistingDebtPayment
	if maxPayment <= 0 {
		return domain.HomeAffordabilityResult{
			Affordable:   false,
			Residency:    residency,
			PropertyType: propertyType,
			DTIRatio:     s.cfg.MaxDTIRatio,
			LTVRatio:     rule.MaxLTV,
			Message:      "Existing debt exceeds DTI limit for mortgage",
		}, nil
	}

	maxLoan, err := s.engine.MaxPrincipal(maxPayment, rate, term)
	if err != nil {
		return domain.HomeAffordabilityResult{}, err
	}

	maxHomePrice := maxLoan / rule.MaxLTV
	requiredDown := maxHomePrice * rule.MinDownPayment

	return domain.HomeAffordabilityResult{
		Affordable:            true,
		MaxHomePrice:          finance.Round2(maxHomePrice),
		MaxLoanAmount:         finance.Round2(maxLoan),
		RequiredDownPayment:   finance.Round2(requiredDown),
		DownPaymentPercentage: rule.MinDownPayment,
		MonthlyPayment:        finance.Round2(maxPayment),
		DTIRatio:              s.cfg.MaxDTIRatio,
		LTVRatio:              rule.MaxLTV,
		Residency:             residency,
		PropertyType:          propertyType,
		AnnualInterestRate:    rate,
		LoanTermMonths:        term,
		Message: fmt.Sprintf(
			"As %s buying %s home with $%.0f/month income, you can afford up to $%.0f (LTV: %.0f%%, down payment: $%.0f)",
			residency, propertyType, input.MonthlyIncome, maxHomePrice, rule.MaxLTV*100, requiredDown),
	}, nil
}

// MortgagePayment prices a specific purchase. Breaching the rule's
// maximum LTV returns Valid=false with the minimum required down
// payment in the message; only malformed input is an error.
func (s *MortgageService) MortgagePayment(input domain.MortgagePaymentInput) (domain.MortgageQuote, error) {
	if input.HomePrice <= 0 {
		return domain.MortgageQuote{}, fmt.Errorf("%w: home price %.2f", domain.ErrInvalidAmount, input.HomePrice)
	}
	if input.DownPayment != nil && (*input.DownPayment < 0 || *input.DownPayment >= input.HomePrice) {
		return domain.MortgageQuote{}, fmt.Errorf("%w: down payment %.2f", domain.ErrInvalidAmount, *input.DownPayment)
	}

	rate, term, residency, propertyType := s.defaults(
		input.AnnualInterestRate, input.LoanTermMonths, input.Residency, input.PropertyType)
	if rate < 0 || rate > 1 {
		return domain.MortgageQuote{}, fmt.Errorf("%w: got %v", domain.ErrInvalidRate, rate)
	}
	if err := s.validateTerm(term); err != nil {
		return domain.MortgageQuote{}, err
	}

	rule := rules.GetMortgageRule(residency, propertyType, input.HomePrice)

	downPayment := input.HomePrice * rule.MinDownPayment
	if input.DownPayment != nil {
		downPayment = *input.DownPayment
	}

	loanAmount := input.HomePrice - downPayment
	ltv := loanAmount / input.HomePrice

	if ltv > rule.MaxLTV {
		minRequired := input.HomePrice * rule.MinDownPayment
		return domain.MortgageQuote{
			Valid: false,
			Message: fmt.Sprintf(
				"LTV %.1f%% exceeds maximum %.0f%% for %s buying %s home. Need at least $%.0f (%.0f%%) down payment.",
				ltv*100, rule.MaxLTV*100, residency, propertyType, minRequired, rule.MinDownPayment*100),
		}, nil
	}

	payment, err := s.engine.Payment(loanAmount, rate, term)
	if err != nil {
		return domain.MortgageQuote{}, err
	}

	total := payment * float64(term)
	return domain.MortgageQuote{
		Valid:                 true,
		HomePrice:             input.HomePrice,
		DownPayment:           finance.Round2(downPayment),
		DownPaymentPercentage: downPayment / input.HomePrice,
		LoanAmount:            finance.Round2(loanAmount),
		LTVRatio:              ltv,
		MaxLTVAllowed:         rule.MaxLTV,
		Residency:             residency,
		PropertyType:          propertyType,
		MonthlyPayment:        finance.Round2(payment),
		TotalPayment:          finance.Round2(total),
		TotalInterest:         finance.Round2(total - loanAmount),
		AnnualInterestRate:    rate,
		LoanTermMonths:        term,
	}, nil
}
