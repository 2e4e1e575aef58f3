package http

import (
	"net/http"
	"time"

	"loan-advisor/domain"
	"loan-advisor/service"
)

// LoanHandler exposes the generic loan calculator for one loan product.
// The same handler type serves personal, mortgage, and auto calculators;
// each instance wraps a LoanService configured for its product.
type LoanHandler struct {
	service *service.LoanService
	tool    string
}

func NewLoanHandler(svc *service.LoanService, tool string) *LoanHandler {
	return &LoanHandler{service: svc, tool: tool}
}

type affordabilityRequest struct {
	domain.LoanRequest
	ExistingMonthlyDebt float64 `json:"existing_monthly_debt"`
}

type compareTermsRequest struct {
	LoanAmount         float64 `json:"loan_amount"`
	AnnualInterestRate float64 `json:"annual_interest_rate"`
	Terms              []int   `json:"terms"`
}

type maxLoanRequest struct {
	MonthlyIncome       float64 `json:"monthly_income"`
	AnnualInterestRate  float64 `json:"annual_interest_rate"`
	LoanTermMonths      int     `json:"loan_term_months"`
	ExistingMonthlyDebt float64 `json:"existing_monthly_debt"`
}

// Types lists the supported loan products. Read-only, so GET.
func (h *LoanHandler) Types(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	types := []domain.LoanType{domain.LoanTypePersonal, domain.LoanTypeMortgage, domain.LoanTypeAuto}
	out := make([]map[string]any, 0, len(types))
	for _, t := range types {
		out = append(out, map[string]any{
			"type":                t,
			"display_name":        t.DisplayName(),
			"requires_collateral": t.RequiresCollateral(),
		})
	}
	writeJSON(w, out)
}

func (h *LoanHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var request domain.LoanRequest
	if !decodePost(w, r, &request) {
		return
	}

	start := time.Now()
	result, err := h.service.Calculate(request)
	observe(h.tool+"_calculate", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var request domain.LoanRequest
	if !decodePost(w, r, &request) {
		return
	}

	start := time.Now()
	result, err := h.service.Schedule(request)
	observe(h.tool+"_schedule", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

func (h *LoanHandler) Affordability(w http.ResponseWriter, r *http.Request) {
	var request affordabilityRequest
	if !decodePost(w, r, &request) {
		return
	}

	start := time.Now()
	result, err := h.service.CheckAffordability(request.LoanRequest, request.ExistingMonthlyDebt)
	observe(h.tool+"_affordability", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

func (h *LoanHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	var request compareTermsRequest
	if !decodePost(w, r, &request) {
		return
	}

	start := time.Now()
	result, err := h.service.CompareTerms(request.LoanAmount, request.AnnualInterestRate, request.Terms)
	observe(h.tool+"_compare_terms", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

func (h *LoanHandler) MaxLoanAmount(w http.ResponseWriter, r *http.Request) {
	var request maxLoanRequest
	if !decodePost(w, r, &request) {
		return
	}

	start := time.Now()
	result, err := h.service.MaxLoanAmount(
		request.MonthlyIncome, request.AnnualInterestRate,
		request.LoanTermMonths, request.ExistingMonthlyDebt)
	observe(h.tool+"_max_amount", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}
