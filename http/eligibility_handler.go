package http

import (
	"net/http"
	"time"

	"loan-advisor/domain"
	"loan-advisor/service"
)

type EligibilityHandler struct {
	service *service.EligibilityService
	advisor *service.AdvisorService
}

func NewEligibilityHandler(svc *service.EligibilityService, advisor *service.AdvisorService) *EligibilityHandler {
	return &EligibilityHandler{service: svc, advisor: advisor}
}

type eligibilityResponse struct {
	domain.EligibilityResult
	Explanation string `json:"explanation,omitempty"`
}

func (h *EligibilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	var profile domain.ApplicantProfile
	if !decodePost(w, r, &profile) {
		return
	}

	start := time.Now()
	result, err := h.service.CheckEligibility(profile)
	observe("eligibility", start, err)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := eligibilityResponse{EligibilityResult: result}
	if h.advisor != nil && h.advisor.Enabled() {
		response.Explanation = h.advisor.ExplainEligibility(r.Context(), profile, result)
	}

	writeJSON(w, response)
}
