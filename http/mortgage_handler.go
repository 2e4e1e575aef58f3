package http

import (
	"net/http"
	"time"

	"loan-advisor/domain"
	"loan-advisor/rules"
	"loan-advisor/service"
)

type MortgageHandler struct {
	service *service.MortgageService
}

func NewMortgageHandler(svc *service.MortgageService) *MortgageHandler {
	return &MortgageHandler{service: svc}
}

func (h *MortgageHandler) HomeAffordability(w http.ResponseWriter, r *http.Request) {
	var input domain.HomeAffordabilityInput
	if !decodePost(w, r, &input) {
		return
	}

	start := time.Now()
	result, err := h.service.HomeAffordability(input)
	observe("home_affordability", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

func (h *MortgageHandler) Payment(w http.ResponseWriter, r *http.Request) {
	var input domain.MortgagePaymentInput
	if !decodePost(w, r, &input) {
		return
	}

	start := time.Now()
	result, err := h.service.MortgagePayment(input)
	observe("mortgage_payment", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

// Rules returns the LTV rule tables in a readable form. Read-only, so
// GET rather than POST.
func (h *MortgageHandler) Rules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{
		"description":    rules.DescribeMortgageRules(),
		"mortgage_rules": rules.MortgageRules(),
		"auto_rules":     rules.AutoLoanRules(),
		"residencies":    rules.ResidencyTypes(),
		"property_types": rules.PropertyTypes(),
	})
}
