package simulation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTerms(t *testing.T) {
	coefficients := map[string]float64{
		"intercept":                       30,
		"Compression Force":               3.5,
		"Tablet Weight^2":                 0.01,
		"Compression Force*Tablet Weight": 0.05,
	}

	got, err := ParseTerms(coefficients)
	if err != nil {
		t.Fatalf("ParseTerms: %v", err)
	}

	// Ascending key order: evaluation must be deterministic.
	want := []Term{
		{Kind: TermLinear, Factor: "Compression Force", Coefficient: 3.5},
		{Kind: TermInteraction, Factor: "Compression Force", FactorB: "Tablet Weight", Coefficient: 0.05},
		{Kind: TermPower, Factor: "Tablet Weight", Exponent: 2, Coefficient: 0.01},
		{Kind: TermIntercept, Coefficient: 30},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTermsErrors(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"empty key", ""},
		{"non-integer exponent", "Force^two"},
		{"missing power factor", "^2"},
		{"one-sided interaction", "Force*"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseTerms(map[string]float64{tc.key: 1}); err == nil {
				t.Errorf("ParseTerms(%q) succeeded, want error", tc.key)
			}
		})
	}
}

func TestTermFactors(t *testing.T) {
	cases := []struct {
		name string
		term Term
		want []string
	}{
		{"intercept", Term{Kind: TermIntercept}, nil},
		{"linear", Term{Kind: TermLinear, Factor: "A"}, []string{"A"}},
		{"power", Term{Kind: TermPower, Factor: "A", Exponent: 3}, []string{"A"}},
		{"interaction", Term{Kind: TermInteraction, Factor: "A", FactorB: "B"}, []string{"A", "B"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.term.Factors()); diff != "" {
				t.Errorf("Factors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
