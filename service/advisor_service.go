package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"loan-advisor/config"
	"loan-advisor/domain"
)

// AdvisorService turns numeric results into plain-language explanations.
// With an API key configured it asks an OpenAI-compatible chat endpoint;
// without one it falls back to deterministic text, so every result always
// carries an explanation.
type AdvisorService struct {
	cfg        config.AdvisorConfig
	enabled    bool
	httpClient *http.Client
	logger     *zap.Logger
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

const advisorSystemPrompt = "You are an expert retail-lending advisor for the UAE market. " +
	"You explain loan calculations, eligibility decisions, and payoff strategies in clear, " +
	"practical language. You are precise with numbers, realistic about risk, and you never " +
	"give guarantees. Keep explanations short and easy to understand."

func NewAdvisorService(cfg config.AdvisorConfig, logger *zap.Logger) *AdvisorService {
	return &AdvisorService{
		cfg:     cfg,
		enabled: cfg.APIKey != "",
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Enabled reports whether the LLM backend is configured.
func (s *AdvisorService) Enabled() bool { return s.enabled }

// ExplainEligibility produces a narrative for an eligibility decision.
func (s *AdvisorService) ExplainEligibility(ctx context.Context, profile domain.ApplicantProfile, result domain.EligibilityResult) string {
	if !s.enabled {
		return s.fallbackEligibilityExplanation(result)
	}

	prompt := fmt.Sprintf(`Explain this loan eligibility decision to the applicant.

APPLICANT:
- Age: %d
- Monthly income: %.2f
- Credit score: %d
- Employment: %s (%.1f years)
- Existing monthly debt: %.2f
- Requested: %.2f over %d months

DECISION:
- Status: %s
- Score: %.1f out of 100
- Findings: %s
- Recommendations: %s

Write 3-4 sentences. Explain the main factors behind the decision and what the
applicant can do next. Do not invent numbers not listed above.`,
		profile.Age, profile.MonthlyIncome, profile.CreditScore,
		profile.EmploymentStatus, profile.EmploymentLengthYears,
		profile.MonthlyDebtObligations, profile.RequestedLoanAmount, profile.LoanTermMonths,
		result.Status, result.Score,
		joinOrNone(result.Reasons), joinOrNone(result.Recommendations))

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.Warn("advisor call failed, using fallback explanation", zap.Error(err))
		return s.fallbackEligibilityExplanation(result)
	}
	return explanation
}

// ExplainEarlyPayoff produces a narrative for an early-payoff simulation.
func (s *AdvisorService) ExplainEarlyPayoff(ctx context.Context, result domain.EarlyPayoffResult) string {
	if !s.enabled {
		return s.fallbackPayoffExplanation(result)
	}

	prompt := fmt.Sprintf(`Explain this early loan payoff plan to the borrower.

PLAN:
- Extra monthly payment: %.2f
- Original term: %d months, new payoff time: %d months (%d months earlier)
- Interest without extra payments: %.2f
- Interest with extra payments: %.2f
- Interest saved: %.2f

Write 2-3 sentences. Explain the trade-off between the higher monthly outlay and
the total savings, and when this strategy makes sense. Do not invent numbers not
listed above.`,
		result.ExtraMonthlyPayment,
		result.OriginalTermMonths, result.NewTermMonths, result.MonthsSaved,
		result.OriginalTotalInterest, result.NewTotalInterest, result.InterestSaved)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.Warn("advisor call failed, using fallback explanation", zap.Error(err))
		return s.fallbackPayoffExplanation(result)
	}
	return explanation
}

func (s *AdvisorService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: advisorSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: s.cfg.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.cfg.APIKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("advisor API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("advisor API returned no choices")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func (s *AdvisorService) fallbackEligibilityExplanation(result domain.EligibilityResult) string {
	switch result.Status {
	case domain.StatusEligible:
		return fmt.Sprintf("You meet all eligibility criteria with an overall score of %.1f out of 100. "+
			"You can proceed with the loan application.", result.Score)
	case domain.StatusConditional:
		return fmt.Sprintf("You meet the core eligibility criteria (score %.1f out of 100), but some "+
			"factors need attention before approval: %s", result.Score, joinOrNone(result.Reasons))
	default:
		return fmt.Sprintf("The application does not meet eligibility requirements (score %.1f out of 100). "+
			"Key issues: %s", result.Score, joinOrNone(result.Reasons))
	}
}

func (s *AdvisorService) fallbackPayoffExplanation(result domain.EarlyPayoffResult) string {
	return fmt.Sprintf("Paying an extra %.2f per month clears the loan in %d months instead of %d, "+
		"saving %.2f in interest. This works best when the extra payment does not strain your monthly budget.",
		result.ExtraMonthlyPayment, result.NewTermMonths, result.OriginalTermMonths, result.InterestSaved)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, "; ")
}
