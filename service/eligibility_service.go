package service

import (
	"fmt"

	"go.uber.org/zap"

	"loan-advisor/config"
	"loan-advisor/domain"
	"loan-advisor/finance"
)

// EligibilityService evaluates a personal-loan applicant against the
// configured banking criteria: age, income, credit score, employment,
// DTI, loan size relative to income, and prior defaults. Every check
// contributes a 0-100 sub-score; the final score is their mean.
//
// The DTI check estimates the prospective installment at a fixed
// reference rate (5% by default) rather than any quoted rate: it is a
// screening heuristic, intentionally independent of pricing. The
// LoanService affordability check is the one that uses the real rate.
type EligibilityService struct {
	engine finance.Engine
	cfg    config.EligibilityConfig
	logger *zap.Logger
}

func NewEligibilityService(cfg config.EligibilityConfig, logger *zap.Logger) *EligibilityService {
	return &EligibilityService{cfg: cfg, logger: logger}
}

// evaluation accumulates sub-scores and narrative while checks run.
type evaluation struct {
	scores          []float64
	reasons         []string
	recommendations []string
}

func (e *evaluation) add(score float64) { e.scores = append(e.scores, score) }
func (e *evaluation) reason(s string) { e.reasons = append(e.reasons, s) }
func (e *evaluation) recommend(s string) { e.recommendations = append(e.recommendations, s) }

func (e *evaluation) mean() float64 {
	if len(e.scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range e.scores {
		sum += s
	}
	return finance.Round2(sum / float64(len(e.scores)))
}

// CheckEligibility validates the profile and runs every check. An error
// means the profile itself was malformed; an unfavorable decision is a
// normal result.
func (s *EligibilityService) CheckEligibility(profile domain.ApplicantProfile) (domain.EligibilityResult, error) {
	applicant, err := domain.NewApplicantProfile(profile)
	if err != nil {
		return domain.EligibilityResult{}, err
	}

	ev := &evaluation{}

	agePass := s.checkAge(applicant, ev)
	incomePass := s.checkIncome(applicant, ev)
	creditPass := s.checkCreditScore(applicant, ev)
	employedPass, tenurePass := s.checkEmployment(applicant, ev)
	dtiPass := s.checkDTI(applicant, ev)
	amountPass := s.checkLoanAmount(applicant, ev)
	defaultsPass := s.checkDefaults(applicant, ev)

	criticalPass := agePass && incomePass && creditPass && employedPass &&
		dtiPass && amountPass && defaultsPass

	var status domain.EligibilityStatus
	var eligible bool

	switch {
	case criticalPass && tenurePass:
		status = domain.StatusEligible
		eligible = true
		if len(ev.reasons) == 0 {
			ev.reason("All eligibility criteria met successfully")
		}
	case criticalPass:
		status = domain.StatusConditional
		eligible = false
		ev.recommend("Consider improving employment stability or reducing requested loan amount")
	default:
		status = domain.StatusNotEligible
		eligible = false
	}

	result := domain.EligibilityResult{
		Status:          status,
		Eligible:        eligible,
		Score:           ev.mean(),
		Reasons:         ev.reasons,
		Recommendations: ev.recommendations,
	}

	s.logger.Info("eligibility check completed",
		zap.String("status", string(status)),
		zap.Float64("score", result.Score))

	return result, nil
}

func (s *EligibilityService) checkAge(a domain.ApplicantProfile, ev *evaluation) bool {
	maturityAge := float64(a.Age) + float64(a.LoanTermMonths)/12

	if a.Age < s.cfg.MinAge {
		ev.reason(fmt.Sprintf("Age %d is below minimum requirement of %d", a.Age, s.cfg.MinAge))
		ev.recommend(fmt.Sprintf("Must be at least %d years old to apply", s.cfg.MinAge))
		ev.add(0)
		return false
	}
	if maturityAge > float64(s.cfg.MaxAgeAtMaturity) {
		ev.reason(fmt.Sprintf("Loan maturity age %.0f exceeds maximum of %d", maturityAge, s.cfg.MaxAgeAtMaturity))
		ev.recommend("Consider shorter loan term or apply at younger age")
		ev.add(30)
		return false
	}
	ev.add(100)
	return true
}

func (s *EligibilityService) checkIncome(a domain.ApplicantProfile, ev *evaluation) bool {
	if a.MonthlyIncome < s.cfg.MinMonthlyIncome {
		ev.reason(fmt.Sprintf("Monthly income %.2f below minimum requirement of %.2f",
			a.MonthlyIncome, s.cfg.MinMonthlyIncome))
		ev.recommend(fmt.Sprintf("Minimum monthly income required: %.2f", s.cfg.MinMonthlyIncome))
		ev.add(0)
		return false
	}

	ratio := a.MonthlyIncome / s.cfg.MinMonthlyIncome
	switch {
	case ratio >= 3:
		ev.add(100)
	case ratio >= 2:
		ev.add(85)
	case ratio >= 1.5:
		ev.add(70)
	default:
		ev.add(55)
	}
	return true
}

func (s *EligibilityService) checkCreditScore(a domain.ApplicantProfile, ev *evaluation) bool {
	if a.CreditScore < s.cfg.MinCreditScore {
		ev.reason(fmt.Sprintf("Credit score %d below minimum of %d", a.CreditScore, s.cfg.MinCreditScore))
		ev.recommend("Improve credit score by paying bills on time and reducing credit utilization")
		ev.add(0)
		return false
	}

	switch {
	case a.CreditScore >= 750:
		ev.add(100)
	case a.CreditScore >= 700:
		ev.add(85)
	case a.CreditScore >= 650:
		ev.add(70)
	default:
		ev.add(55)
	}
	return true
}

// checkEmployment returns two flags: whether the applicant is employable
// at all (unemployment is disqualifying), and whether tenure meets the
// minimum. A tenure shortfall alone makes the decision conditional, not
// a rejection.
func (s *EligibilityService) checkEmployment(a domain.ApplicantProfile, ev *evaluation) (bool, bool) {
	if a.EmploymentStatus == domain.EmploymentUnemployed {
		ev.reason("Unemployed applicants are not eligible")
		ev.recommend("Secure employment before applying for a loan")
		ev.add(0)
		return false, true
	}

	if a.EmploymentStatus == domain.EmploymentRetired {
		if a.Age < 60 {
			ev.reason("Early retirement requires additional verification")
			ev.add(60)
		} else {
			ev.add(80)
		}
		return true, true
	}

	if a.EmploymentLengthYears < s.cfg.MinEmploymentYears {
		ev.reason(fmt.Sprintf("Employment length %.1f years below minimum of %.1f years",
			a.EmploymentLengthYears, s.cfg.MinEmploymentYears))
		ev.recommend("Build employment history for better loan terms")
		ev.add(40)
		return true, false
	}

	switch {
	case a.EmploymentLengthYears >= 5:
		ev.add(100)
	case a.EmploymentLengthYears >= 3:
		ev.add(85)
	case a.EmploymentLengthYears >= 2:
		ev.add(70)
	default:
		ev.add(55)
	}
	return true, true
}

func (s *EligibilityService) checkDTI(a domain.ApplicantProfile, ev *evaluation) bool {
	// Reference-rate estimate, not the applicant's quoted rate.
	estimatedPayment, err := s.engine.Payment(
		a.RequestedLoanAmount, s.cfg.ReferenceAnnualRate, a.LoanTermMonths)
	if err != nil {
		// Profile validation makes this unreachable; fail closed anyway.
		ev.reason("Unable to estimate prospective loan payment")
		ev.add(0)
		return false
	}

	totalDebt := a.MonthlyDebtObligations + estimatedPayment
	dti := totalDebt / a.MonthlyIncome

	if dti > s.cfg.MaxDTIRatio {
		ev.reason(fmt.Sprintf("Debt-to-Income ratio %.1f%% exceeds maximum of %.1f%%",
			dti*100, s.cfg.MaxDTIRatio*100))
		ev.recommend("Reduce existing debt or request smaller loan amount to improve DTI ratio")
		ev.add(0)
		return false
	}

	switch {
	case dti <= 0.30:
		ev.add(100)
	case dti <= 0.36:
		ev.add(85)
	case dti <= 0.43:
		ev.add(70)
	default:
		ev.add(55)
	}
	return true
}

func (s *EligibilityService) checkLoanAmount(a domain.ApplicantProfile, ev *evaluation) bool {
	if a.RequestedLoanAmount > s.cfg.MaxLoanAmount {
		ev.reason(fmt.Sprintf("Requested amount %.2f exceeds maximum of %.2f",
			a.RequestedLoanAmount, s.cfg.MaxLoanAmount))
		ev.recommend(fmt.Sprintf("Maximum loan amount allowed: %.2f", s.cfg.MaxLoanAmount))
		ev.add(0)
		return false
	}

	annualIncome := a.MonthlyIncome * 12
	loanToIncome := a.RequestedLoanAmount / annualIncome

	if loanToIncome > s.cfg.MaxLoanToIncome {
		ev.reason(fmt.Sprintf("Loan amount is %.1fx annual income (very high risk)", loanToIncome))
		ev.recommend("Consider requesting smaller loan amount relative to income")
		ev.add(30)
		return false
	}

	switch {
	case loanToIncome <= 1:
		ev.add(100)
	case loanToIncome <= 1.5:
		ev.add(85)
	case loanToIncome <= 2:
		ev.add(70)
	default:
		ev.add(55)
	}
	return true
}

func (s *EligibilityService) checkDefaults(a domain.ApplicantProfile, ev *evaluation) bool {
	if a.PreviousDefaults {
		ev.reason("Previous loan defaults on record - high risk")
		ev.recommend("Resolve previous defaults and rebuild credit history before reapplying")
		ev.add(0)
		return false
	}
	ev.add(100)
	return true
}
