package simulation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TermKind discriminates the four kinds of response-model term.
type TermKind int

const (
	TermIntercept TermKind = iota
	TermLinear
	TermPower
	TermInteraction
)

// Term is one parsed response-model term. Factor is set for linear and
// power terms and names the first factor of an interaction; FactorB names
// the second. Exponent is set for power terms only.
type Term struct {
	Kind        TermKind
	Factor      string
	FactorB     string
	Exponent    int
	Coefficient float64
}

// Factors returns the parameter names the term references, if any.
func (t Term) Factors() []string {
	switch t.Kind {
	case TermLinear, TermPower:
		return []string{t.Factor}
	case TermInteraction:
		return []string{t.Factor, t.FactorB}
	}
	return nil
}

// ParseTerms parses a coefficient map into explicit terms, once, so that
// evaluation never re-parses term keys. Term keys follow the response-model
// grammar:
//
//	"intercept"        constant
//	"<name>"           linear
//	"<name>^<power>"   power, integer power
//	"<nameA>*<nameB>"  two-way interaction
//
// Terms are returned in ascending key order so that evaluation order, and
// therefore floating-point summation, is deterministic for a given model.
func ParseTerms(coefficients map[string]float64) ([]Term, error) {
	keys := make([]string, 0, len(coefficients))
	for key := range coefficients {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	terms := make([]Term, 0, len(keys))
	for _, key := range keys {
		term, err := parseTerm(key, coefficients[key])
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func parseTerm(key string, coefficient float64) (Term, error) {
	if key == "" {
		return Term{}, fmt.Errorf("empty term key")
	}
	if key == "intercept" {
		return Term{Kind: TermIntercept, Coefficient: coefficient}, nil
	}
	if strings.Contains(key, "*") {
		parts := strings.SplitN(key, "*", 2)
		if parts[0] == "" || parts[1] == "" {
			return Term{}, fmt.Errorf("interaction term %q must name two factors", key)
		}
		return Term{Kind: TermInteraction, Factor: parts[0], FactorB: parts[1], Coefficient: coefficient}, nil
	}
	if strings.Contains(key, "^") {
		parts := strings.SplitN(key, "^", 2)
		exponent, err := strconv.Atoi(parts[1])
		if err != nil {
			return Term{}, fmt.Errorf("power term %q has non-integer exponent: %w", key, err)
		}
		if parts[0] == "" {
			return Term{}, fmt.Errorf("power term %q has no factor name", key)
		}
		return Term{Kind: TermPower, Factor: parts[0], Exponent: exponent, Coefficient: coefficient}, nil
	}
	return Term{Kind: TermLinear, Factor: key, Coefficient: coefficient}, nil
}
