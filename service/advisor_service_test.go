package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"loan-advisor/config"
	"loan-advisor/domain"
)

func TestAdvisorService_DisabledUsesFallback(t *testing.T) {
	advisor := NewAdvisorService(config.AdvisorConfig{}, zap.NewNop())
	assert.False(t, advisor.Enabled())

	result := domain.EligibilityResult{
		Status:   domain.StatusEligible,
		Eligible: true,
		Score:    95.7,
	}
	text := advisor.ExplainEligibility(context.Background(), domain.ApplicantProfile{}, result)
	assert.Contains(t, text, "95.7")
	assert.Contains(t, text, "proceed")

	payoff := domain.EarlyPayoffResult{
		OriginalTermMonths:  360,
		NewTermMonths:       256,
		ExtraMonthlyPayment: 200,
		InterestSaved:       61_160.51,
	}
	text = advisor.ExplainEarlyPayoff(context.Background(), payoff)
	assert.Contains(t, text, "256 months")
}

func TestAdvisorService_NotEligibleFallbackListsReasons(t *testing.T) {
	advisor := NewAdvisorService(config.AdvisorConfig{}, zap.NewNop())

	result := domain.EligibilityResult{
		Status:  domain.StatusNotEligible,
		Score:   40,
		Reasons: []string{"Credit score 500 below minimum of 600"},
	}
	text := advisor.ExplainEligibility(context.Background(), domain.ApplicantProfile{}, result)
	assert.Contains(t, text, "Credit score 500 below minimum of 600")
}

func TestAdvisorService_CallsConfiguredEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"model explanation"}}]}`))
	}))
	defer server.Close()

	advisor := NewAdvisorService(config.AdvisorConfig{
		APIKey:    "test-key",
		APIURL:    server.URL,
		Model:     "gpt-4o-mini",
		MaxTokens: 100,
		Timeout:   5 * time.Second,
	}, zap.NewNop())
	assert.True(t, advisor.Enabled())

	text := advisor.ExplainEarlyPayoff(context.Background(), domain.EarlyPayoffResult{})
	assert.Equal(t, "model explanation", text)
}

func TestAdvisorService_FallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	advisor := NewAdvisorService(config.AdvisorConfig{
		APIKey:  "test-key",
		APIURL:  server.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	text := advisor.ExplainEarlyPayoff(context.Background(), domain.EarlyPayoffResult{
		OriginalTermMonths: 60,
		NewTermMonths:      50,
	})
	assert.Contains(t, text, "clears the loan in 50 months")
}
