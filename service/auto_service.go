package service

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"loan-advisor/config"
	"loan-advisor/domain"
	"loan-advisor/finance"
	"loan-advisor/rules"
)

var ErrInvalidExtraPayment = errors.New("extra monthly payment must be greater than zero")

// AutoLoanService prices vehicle purchases against the auto regulation
// block and the vehicle-type LTV rule table, and simulates early-payoff
// scenarios.
type AutoLoanService struct {
	engine finance.Engine
	cfg    config.LoanConfig
	logger *zap.Logger
}

func NewAutoLoanService(cfg config.LoanConfig, logger *zap.Logger) *AutoLoanService {
	return &AutoLoanService{cfg: cfg, logger: logger}
}

func (s *AutoLoanService) defaults(rate *float64, term int, residency, vehicleType string) (float64, int, string, string) {
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
	if vehicleType == "" {
		vehicleType = "new"
	}
	return r, term, residency, vehicleType
}

func (s *AutoLoanService) validateTerm(term int) error {
	if term <= 0 || term > domain.MaxTermMonths {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidTerm, term)
	}
	if s.cfg.MaxTermMonths > 0 && (term < s.cfg.MinTermMonths || term > s.cfg.MaxTermMonths) {
		return fmt.Errorf("%w: got %d, product offers %d to %d months",
			ErrTermOutOfRange, term, s.cfg.MinTermMonths, s.cfg.MaxTermMonths)
	}
	return nil
}

// CarLoan prices a vehicle purchase. An LTV breach returns Valid=false
// with the minimum down payment in the message.
func (s *AutoLoanService) CarLoan(input domain.CarLoanInput) (domain.CarLoanQuote, error) {
	if input.CarPrice <= 0 {
		return domain.CarLoanQuote{}, fmt.Errorf("%w: car price %.2f", domain.ErrInvalidAmount, input.CarPrice)
	}
	if input.DownPayment != nil && (*input.DownPayment < 0 || *input.DownPayment >= input.CarPrice) {
		return domain.CarLoanQuote{}, fmt.Errorf("%w: down payment %.2f", domain.ErrInvalidAmount, *input.DownPayment)
	}

	rate, term, residency, vehicleType := s.defaults(
		input.AnnualInterestRate, input.LoanTermMonths, input.Residency, input.VehicleType)
	if rate < 0 || rate > 1 {
		return domain.CarLoanQuote{}, fmt.Errorf("%w: got %v", domain.ErrInvalidRate, rate)
	}
	if err := s.validateTerm(term); err != nil {
		return domain.CarLoanQuote{}, err
	}

	rule := rules.GetAutoLoanRule(residency, vehicleType)

	downPayment := input.CarPrice * rule.MinDownPayment
	if input.DownPayment != nil {
		downPayment = *input.DownPayment
	}

	loanAmount := input.CarPrice - downPayment
	ltv := loanAmount / input.CarPrice

	if ltv > rule.MaxLTV {
		return domain.CarLoanQuote{
			Valid: false,
			Message: fmt.Sprintf(
				"LTV %.1f%% exceeds maximum %.0f%% for a %s vehicle. Need at least $%.0f down payment.",
				ltv*100, rule.MaxLTV*100, vehicleType, input.CarPrice*rule.MinDownPayment),
		}, nil
	}

	payment, err := s.engine.Payment(loanAmount, rate, term)
	if err != nil {
		return domain.CarLoanQuote{}, err
	}

	total := payment * float64(term)
	return domain.CarLoanQuote{
		Valid:                 true,
		CarPrice:              input.CarPrice,
		DownPayment:           finance.Round2(downPayment),
		DownPaymentPercentage: downPayment / input.CarPrice,
		LoanAmount:            finance.Round2(loanAmount),
		LTVRatio:              ltv,
		MaxLTVAllowed:         rule.MaxLTV,
		VehicleType:           vehicleType,
		MonthlyPayment:        finance.Round2(payment),
		TotalPayment:          finance.Round2(total),
		TotalInterest:         finance.Round2(total - loanAmount),
		AnnualInterestRate:    rate,
		LoanTermMonths:        term,
	}, nil
}

// CompareCarLoanTerms prices the same financing structure across
// several terms, sorted ascending, with savings measured against the
// longest term. A nil or empty terms slice compares the standard
// 36/48/60/72 set. The LTV ceiling is CarLoan's concern and is not
// applied here; the comparison answers "what does each term cost",
// not "is this structure approvable".
func (s *AutoLoanService) CompareCarLoanTerms(
	input domain.CarLoanInput,
	terms []int,
) ([]domain.TermOption, error) {
	if input.CarPrice <= 0 {
		return nil, fmt.Errorf("%w: car price %.2f", domain.ErrInvalidAmount, input.CarPrice)
	}
	if input.DownPayment != nil && (*input.DownPayment < 0 || *input.DownPayment >= input.CarPrice) {
		return nil, fmt.Errorf("%w: down payment %.2f", domain.ErrInvalidAmount, *input.DownPayment)
	}

	rate, _, residency, vehicleType := s.defaults(
		input.AnnualInterestRate, input.LoanTermMonths, input.Residency, input.VehicleType)
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidRate, rate)
	}

	rule := rules.GetAutoLoanRule(residency, vehicleType)
	downPayment := input.CarPrice * rule.MinDownPayment
	if input.DownPayment != nil {
		downPayment = *input.DownPayment
	}
	loanAmount := input.CarPrice - downPayment

	if len(terms) == 0 {
		terms = defaultCarLoanTerms
	}

	options := make([]domain.TermOption, 0, len(terms))
	for _, term := range terms {
		if err := s.validateTerm(term); err != nil {
			return nil, err
		}
		payment, err := s.engine.Payment(loanAmount, rate, term)
		if err != nil {
			return nil, err
		}
		total := payment * float64(term)
		options = append(options, domain.TermOption{
			TermMonths:         term,
			TermYears:          finance.Round2(float64(term) / 12),
			MonthlyPayment:     finance.Round2(payment),
			TotalPayment:       finance.Round2(total),
			TotalInterest:      finance.Round2(total - loanAmount),
			InterestPercentage: finance.Round2((total - loanAmount) / loanAmount * 100),
		})
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].TermMonths < options[j].TermMonths
	})

	longestInterest := options[len(options)-1].TotalInterest
	for i := range options {
		options[i].InterestSavings = finance.Round2(longestInterest - options[i].TotalInterest)
	}

	return options, nil
}

// EarlyPayoff simulates paying a fixed extra amount on top of every
// scheduled installment, month by month, stopping the moment the
// balance reaches zero. The simulation is deliberately not a closed
// form: the stopping point depends on the running balance.
func (s *AutoLoanService) EarlyPayoff(input domain.EarlyPayoffInput) (domain.EarlyPayoffResult, error) {
	request := domain.LoanRequest{
		LoanAmount:         input.LoanAmount,
		AnnualInterestRate: input.AnnualInterestRate,
		LoanTermMonths:     input.LoanTermMonths,
	}
	if err := request.Validate(); err != nil {
		return domain.EarlyPayoffResult{}, err
	}
	if input.ExtraMonthlyPayment <= 0 {
		return domain.EarlyPayoffResult{}, fmt.Errorf("%w: got %.2f", ErrInvalidExtraPayment, input.ExtraMonthlyPayment)
	}

	originalPayment, err := s.engine.Payment(input.LoanAmount, input.AnnualInterestRate, input.LoanTermMonths)
	if err != nil {
		return domain.EarlyPayoffResult{}, err
	}
	originalInterest := originalPayment*float64(input.LoanTermMonths) - input.LoanAmount

	monthlyRate := input.AnnualInterestRate / 12
	totalPayment := originalPayment + input.ExtraMonthlyPayment

	balance := input.LoanAmount
	monthsPaid := 0
	interestPaid := 0.0

	for balance > balanceTolerance && monthsPaid < input.LoanTermMonths {
		monthsPaid++
		interest := balance * monthlyRate
		interestPaid += interest

		principalPaid := totalPayment - interest
		if principalPaid > balance {
			principalPaid = balance
		}
		balance -= principalPaid
		if balance < 0 {
			balance = 0
		}
	}

	monthsSaved := input.LoanTermMonths - monthsPaid
	interestSaved := originalInterest - interestPaid

	return domain.EarlyPayoffResult{
		OriginalTermMonths:     input.LoanTermMonths,
		NewTermMonths:          monthsPaid,
		MonthsSaved:            monthsSaved,
		YearsSaved:             finance.Round2(float64(monthsSaved) / 12),
		OriginalMonthlyPayment: finance.Round2(originalPayment),
		NewMonthlyPayment:      finance.Round2(totalPayment),
		ExtraMonthlyPayment:    input.ExtraMonthlyPayment,
		OriginalTotalInterest:  finance.Round2(originalInterest),
		NewTotalInterest:       finance.Round2(interestPaid),
		InterestSaved:          finance.Round2(interestSaved),
		Message: fmt.Sprintf(
			"By paying $%.0f extra per month, you'll save $%.0f in interest and pay off %d months earlier.",
			input.ExtraMonthlyPayment, interestSaved, monthsSaved),
	}, nil
}
