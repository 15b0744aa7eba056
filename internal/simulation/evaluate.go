package simulation

import "math"

// Evaluate computes the response-surface value at one parameter vector.
// A factor name missing from values contributes 0, so a partially specified
// vector lowers the result rather than failing the run. Pure function:
// identical inputs produce bit-identical output.
func Evaluate(terms []Term, values map[string]float64) float64 {
	result := 0.0
	for _, t := range terms {
		switch t.Kind {
		case TermIntercept:
			result += t.Coefficient
		case TermLinear:
			result += t.Coefficient * values[t.Factor]
		case TermPower:
			result += t.Coefficient * math.Pow(values[t.Factor], float64(t.Exponent))
		case TermInteraction:
			result += t.Coefficient * values[t.Factor] * values[t.FactorB]
		}
	}
	return result
}
