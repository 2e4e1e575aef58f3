package http

import (
	"net/http"
	"time"

	"loan-advisor/domain"
	"loan-advisor/service"
)

type AutoLoanHandler struct {
	service *service.AutoLoanService
	advisor *service.AdvisorService
}

func NewAutoLoanHandler(svc *service.AutoLoanService, advisor *service.AdvisorService) *AutoLoanHandler {
	return &AutoLoanHandler{service: svc, advisor: advisor}
}

type carLoanCompareRequest struct {
	domain.CarLoanInput
	Terms []int `json:"terms"`
}

type earlyPayoffResponse struct {
	domain.EarlyPayoffResult
	Explanation string `json:"explanation,omitempty"`
}

func (h *AutoLoanHandler) CarLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.CarLoanInput
	if !decodePost(w, r, &input) {
		return
	}

	start := time.Now()
	result, err := h.service.CarLoan(input)
	observe("car_loan", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

func (h *AutoLoanHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	var request carLoanCompareRequest
	if !decodePost(w, r, &request) {
		return
	}

	start := time.Now()
	result, err := h.service.CompareCarLoanTerms(request.CarLoanInput, request.Terms)
	observe("car_loan_compare_terms", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

func (h *AutoLoanHandler) EarlyPayoff(w http.ResponseWriter, r *http.Request) {
	var input domain.EarlyPayoffInput
	if !decodePost(w, r, &input) {
		return
	}

	start := time.Now()
	result, err := h.service.EarlyPayoff(input)
	observe("early_payoff", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := earlyPayoffResponse{EarlyPayoffResult: result}
	if h.advisor != nil && h.advisor.Enabled() {
		response.Explanation = h.advisor.ExplainEarlyPayoff(r.Context(), result)
	}

	writeJSON(w, response)
}
