// Package rules holds the LTV / down-payment regulation tables for
// mortgages and auto loans. Rules live in ordered slices evaluated top to
// bottom with first-match-wins semantics: more specific rules (price
// bounds) come before general ones, and every table ends with a
// condition-free default so a lookup can never fail. Changing a
// regulation is a data edit here, not a code change.
package rules

import (
	"fmt"
	"strings"
)

// MortgageRule maps residency, property type and price to a maximum
// loan-to-value ratio and minimum down payment. Nil condition fields
// match any input. MaxLTV + MinDownPayment is always 1.0.
type MortgageRule struct {
	MaxLTV         float64  `json:"max_ltv"`
	MinDownPayment float64  `json:"min_down_payment"`
	Residency      *string  `json:"residency,omitempty"`
	PropertyType   *string  `json:"property_type,omitempty"`
	PriceMax       *float64 `json:"price_max,omitempty"`
	PriceMin       *float64 `json:"price_min,omitempty"`
}

// Matches reports whether every declared condition equals the input.
func (r MortgageRule) Matches(residency, propertyType string, price float64) bool {
	if r.Residency != nil && *r.Residency != residency {
		return false
	}
	if r.PropertyType != nil && *r.PropertyType != propertyType {
		return false
	}
	if r.PriceMax != nil && price > *r.PriceMax {
		return false
	}
	if r.PriceMin != nil && price < *r.PriceMin {
		return false
	}
	return true
}

func strPtr(s string) *string { return &s }
func numPtr(f float64) *float64 { return &f }

// mortgageRules follows the UAE Central Bank tiers: citizens get the
// highest LTV on a first home up to 5M, tapering through expats down to
// non-residents. Ordering is load-bearing; the 5M boundary is inclusive
// on the higher-LTV rule.
var mortgageRules = []MortgageRule{
	{MaxLTV: 0.85, MinDownPayment: 0.15, Residency: strPtr("citizen"), PropertyType: strPtr("first"), PriceMax: numPtr(5_000_000)},
	{MaxLTV: 0.80, MinDownPayment: 0.20, Residency: strPtr("citizen"), PropertyType: strPtr("first"), PriceMin: numPtr(5_000_000)},
	{MaxLTV: 0.75, MinDownPayment: 0.25, Residency: strPtr("citizen"), PropertyType: strPtr("second")},
	{MaxLTV: 0.80, MinDownPayment: 0.20, Residency: strPtr("expat"), PropertyType: strPtr("first")},
	{MaxLTV: 0.65, MinDownPayment: 0.35, Residency: strPtr("expat"), PropertyType: strPtr("second")},
	{MaxLTV: 0.50, MinDownPayment: 0.50, Residency: strPtr("non_resident")},
	{MaxLTV: 0.75, MinDownPayment: 0.25},
}

// GetMortgageRule returns the first matching rule. The trailing default
// matches everything, including unrecognized residency strings, so this
// lookup is total.
func GetMortgageRule(residency, propertyType string, price float64) MortgageRule {
	for _, rule := range mortgageRules {
		if rule.Matches(residency, propertyType, price) {
			return rule
		}
	}
	return mortgageRules[len(mortgageRules)-1]
}

// MortgageRules returns a copy of the table, for auditing and tests.
func MortgageRules() []MortgageRule {
	out := make([]MortgageRule, len(mortgageRules))
	copy(out, mortgageRules)
	return out
}

// AutoLoanRule maps residency and vehicle condition to LTV limits.
type AutoLoanRule struct {
	MaxLTV         float64 `json:"max_ltv"`
	MinDownPayment float64 `json:"min_down_payment"`
	Residency      *string `json:"residency,omitempty"`
	VehicleType    *string `json:"vehicle_type,omitempty"`
}

// Matches reports whether every declared condition equals the input.
func (r AutoLoanRule) Matches(residency, vehicleType string) bool {
	if r.Residency != nil && *r.Residency != residency {
		return false
	}
	if r.VehicleType != nil && *r.VehicleType != vehicleType {
		return false
	}
	return true
}

var autoLoanRules = []AutoLoanRule{
	{MaxLTV: 0.90, MinDownPayment: 0.10, VehicleType: strPtr("new")},
	{MaxLTV: 0.80, MinDownPayment: 0.20, VehicleType: strPtr("used")},
	{MaxLTV: 0.85, MinDownPayment: 0.15},
}

// GetAutoLoanRule returns the first matching auto-loan rule; the
// trailing default guarantees a match.
func GetAutoLoanRule(residency, vehicleType string) AutoLoanRule {
	for _, rule := range autoLoanRules {
		if rule.Matches(residency, vehicleType) {
			return rule
		}
	}
	return autoLoanRules[len(autoLoanRules)-1]
}

// AutoLoanRules returns a copy of the table, for auditing and tests.
func AutoLoanRules() []AutoLoanRule {
	out := make([]AutoLoanRule, len(autoLoanRules))
	copy(out, autoLoanRules)
	return out
}

// ResidencyTypes lists the supported residency inputs.
func ResidencyTypes() []string {
	return []string{"citizen", "expat", "non_resident"}
}

// PropertyTypes lists the supported property inputs.
func PropertyTypes() []string {
	return []string{"first", "second", "investment"}
}

// DescribeMortgageRules renders the mortgage table as readable text,
// suitable for surfacing to a borrower or an advisory agent.
func DescribeMortgageRules() string {
	var b strings.Builder
	b.WriteString("Mortgage LTV rules (first match wins):\n")
	for _, rule := range mortgageRules {
		var conds []string
		if rule.Residency != nil {
			conds = append(conds, fmt.Sprintf("residency=%s", *rule.Residency))
		}
		if rule.PropertyType != nil {
			conds = append(conds, fmt.Sprintf("property=%s", *rule.PropertyType))
		}
		if rule.PriceMax != nil {
			conds = append(conds, fmt.Sprintf("price<=%.0f", *rule.PriceMax))
		}
		if rule.PriceMin != nil {
			conds = append(conds, fmt.Sprintf("price>=%.0f", *rule.PriceMin))
		}
		cond := "default"
		if len(conds) > 0 {
			cond = strings.Join(conds, ", ")
		}
		fmt.Fprintf(&b, "  %s: LTV %.0f%%, down payment %.0f%%\n",
			cond, rule.MaxLTV*100, rule.MinDownPayment*100)
	}
	return b.String()
}
