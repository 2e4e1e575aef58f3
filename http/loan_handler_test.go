package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"loan-advisor/config"
	"loan-advisor/domain"
	"loan-advisor/repository"
	"loan-advisor/service"
)

func newTestLoanHandler() *LoanHandler {
	cfg := config.LoanConfig{
		MaxDTIRatio:   0.50,
		BaseRate:      0.0699,
		MinTermMonths: 12,
		MaxTermMonths: 60,
		DefaultTerm:   36,
		MaxAmount:     500_000,
	}
	repo := repository.NewLoanRepositoryMemory()
	cache := repository.NewMockCache()
	svc := service.NewLoanService(cfg, repo, cache, zap.NewNop())
	return NewLoanHandler(svc, "personal")
}

func TestCalculateHandler_OK(t *testing.T) {
	handler := newTestLoanHandler()

	body := []byte(`{
		"loan_amount": 50000,
		"annual_interest_rate": 0.05,
		"loan_term_months": 36
	}`)

	req := httptest.NewRequest(http.MethodPost, "/loan/calculate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result domain.LoanCalculation
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.MonthlyPayment < 1498 || result.MonthlyPayment > 1499 {
		t.Errorf("unexpected monthly payment: %v", result.MonthlyPayment)
	}
}

func TestCalculateHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodGet, "/loan/calculate", nil)
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculateHandler_BadRequest(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(
		http.MethodPost,
		"/loan/calculate",
		bytes.NewBuffer([]byte(`{invalid-json}`)),
	)
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculateHandler_InvalidLoan(t *testing.T) {
	handler := newTestLoanHandler()

	body := []byte(`{"loan_amount": -1, "annual_interest_rate": 0.05, "loan_term_months": 36}`)
	req := httptest.NewRequest(http.MethodPost, "/loan/calculate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_OK(t *testing.T) {
	handler := newTestLoanHandler()

	body := []byte(`{"loan_amount": 12000, "annual_interest_rate": 0, "loan_term_months": 12}`)
	req := httptest.NewRequest(http.MethodPost, "/loan/schedule", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Schedule(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var schedule domain.AmortizationSchedule
	if err := json.NewDecoder(w.Body).Decode(&schedule); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(schedule.Schedule) != 12 {
		t.Errorf("expected 12 rows, got %d", len(schedule.Schedule))
	}
}

func TestAffordabilityHandler_OK(t *testing.T) {
	handler := newTestLoanHandler()

	body := []byte(`{
		"loan_amount": 50000,
		"annual_interest_rate": 0.05,
		"loan_term_months": 36,
		"monthly_income": 10000,
		"existing_monthly_debt": 500
	}`)
	req := httptest.NewRequest(http.MethodPost, "/loan/affordability", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Affordability(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.AffordabilityResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Affordable == nil || !*result.Affordable {
		t.Errorf("expected affordable result, got %+v", result)
	}
}

func TestMaxLoanAmountHandler_OK(t *testing.T) {
	handler := newTestLoanHandler()

	body := []byte(`{
		"monthly_income": 10000,
		"annual_interest_rate": 0.05,
		"loan_term_months": 36,
		"existing_monthly_debt": 0
	}`)
	req := httptest.NewRequest(http.MethodPost, "/loan/max-amount", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.MaxLoanAmount(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestTypesHandler(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodGet, "/loan/types", nil)
	w := httptest.NewRecorder()

	handler.Types(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var types []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&types); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(types) != 3 {
		t.Errorf("expected 3 loan types, got %d", len(types))
	}
}

func TestCompareTermsHandler_EmptyTerms(t *testing.T) {
	handler := newTestLoanHandler()

	body := []byte(`{"loan_amount": 50000, "annual_interest_rate": 0.05, "terms": []}`)
	req := httptest.NewRequest(http.MethodPost, "/loan/compare-terms", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CompareTerms(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
