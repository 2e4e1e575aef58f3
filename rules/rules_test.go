package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMortgageRule_LookupIsTotal(t *testing.T) {
	residencies := append(ResidencyTypes(), "tourist", "")
	properties := append(PropertyTypes(), "vacation", "")
	prices := []float64{0, 100_000, 5_000_000, 20_000_000}

	for _, residency := range residencies {
		for _, property := range properties {
			for _, price := range prices {
				rule := GetMortgageRule(residency, property, price)
				assert.Greater(t, rule.MaxLTV, 0.0,
					"residency=%q property=%q price=%v", residency, property, price)
			}
		}
	}
}

func TestMortgageRules_LTVAndDownPaymentComplement(t *testing.T) {
	for i, rule := range MortgageRules() {
		assert.InDelta(t, 1.0, rule.MaxLTV+rule.MinDownPayment, 0.001, "rule %d", i)
	}
	for i, rule := range AutoLoanRules() {
		assert.InDelta(t, 1.0, rule.MaxLTV+rule.MinDownPayment, 0.001, "auto rule %d", i)
	}
}

func TestGetMortgageRule_CitizenFirstHomePriceBoundary(t *testing.T) {
	atBoundary := GetMortgageRule("citizen", "first", 5_000_000)
	assert.Equal(t, 0.85, atBoundary.MaxLTV)

	aboveBoundary := GetMortgageRule("citizen", "first", 5_000_001)
	assert.Equal(t, 0.80, aboveBoundary.MaxLTV)
}

func TestGetMortgageRule_Tiers(t *testing.T) {
	cases := []struct {
		residency string
		property  string
		price     float64
		wantLTV   float64
	}{
		{"citizen", "second", 2_000_000, 0.75},
		{"expat", "first", 2_000_000, 0.80},
		{"expat", "second", 2_000_000, 0.65},
		{"non_resident", "first", 2_000_000, 0.50},
		{"non_resident", "second", 9_000_000, 0.50},
	}

	for _, tc := range cases {
		rule := GetMortgageRule(tc.residency, tc.property, tc.price)
		assert.Equal(t, tc.wantLTV, rule.MaxLTV, "%s/%s", tc.residency, tc.property)
	}
}

func TestGetMortgageRule_UnknownResidencyFallsBackToDefault(t *testing.T) {
	rule := GetMortgageRule("tourist", "first", 500_000)
	assert.Equal(t, 0.75, rule.MaxLTV)
	assert.Equal(t, 0.25, rule.MinDownPayment)
}

func TestGetAutoLoanRule(t *testing.T) {
	assert.Equal(t, 0.90, GetAutoLoanRule("expat", "new").MaxLTV)
	assert.Equal(t, 0.80, GetAutoLoanRule("citizen", "used").MaxLTV)
	assert.Equal(t, 0.85, GetAutoLoanRule("expat", "lease").MaxLTV)
}

func TestMortgageRules_ReturnsCopy(t *testing.T) {
	rules := MortgageRules()
	rules[0].MaxLTV = 0.01

	assert.Equal(t, 0.85, GetMortgageRule("citizen", "first", 1_000_000).MaxLTV)
}

func TestDescribeMortgageRules(t *testing.T) {
	text := DescribeMortgageRules()
	assert.Contains(t, text, "first match wins")
	assert.Contains(t, text, "residency=citizen")
	assert.Contains(t, text, "default")
}
