// Package engine orchestrates one Monte Carlo simulation run: validate,
// sample every parameter, evaluate the response model per sampled row,
// analyze the response sample and bin it for visualization.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/user/qbd_simulator_go/internal/analysis"
	"github.com/user/qbd_simulator_go/internal/sampler"
	"github.com/user/qbd_simulator_go/internal/simulation"
)

// ErrInvalidRun marks malformed simulation input, rejected up front and
// never retried. Use errors.Is to detect it; the wrapped message names the
// violated precondition.
var ErrInvalidRun = errors.New("invalid simulation run")

// Run executes a single simulation. The engine is stateless: every run
// builds its own sampler (seeded from Settings.Seed when set, otherwise
// time-seeded) and nothing is shared between runs, so concurrent calls
// are safe.
func Run(run simulation.SimulationRun) (*simulation.SimulationResult, error) {
	settings := run.Settings.WithDefaults()
	if err := validate(run, settings); err != nil {
		return nil, err
	}
	terms, err := simulation.ParseTerms(run.Response.Coefficients)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRun, err)
	}

	var s *sampler.Sampler
	if settings.Seed != nil {
		s = sampler.New(*settings.Seed)
	} else {
		s = sampler.NewTimeSeeded()
	}

	n := settings.NumIterations
	samples := make(map[string][]float64, len(run.Parameters))
	for _, p := range run.Parameters {
		samples[p.Name] = s.Sample(p, n)
	}

	responses := make([]float64, n)
	row := make(map[string]float64, len(run.Parameters))
	for i := 0; i < n; i++ {
		for _, p := range run.Parameters {
			row[p.Name] = samples[p.Name][i]
		}
		responses[i] = simulation.Evaluate(terms, row)
	}

	stats, capability, err := analysis.Analyze(responses, run.Response.Specification, settings.ConfidenceInterval)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRun, err)
	}

	sampled := make([]simulation.SampledParameterStats, 0, len(run.Parameters))
	for _, p := range run.Parameters {
		sampled = append(sampled, analysis.SampleStats(p.Name, samples[p.Name]))
	}

	return &simulation.SimulationResult{
		ID:                uuid.NewString(),
		ResponseName:      run.Response.Name,
		Unit:              run.Response.Unit,
		Iterations:        n,
		CompletedAt:       time.Now().UTC().Format(time.RFC3339),
		Statistics:        stats,
		Capability:        capability,
		Histogram:         analysis.BuildHistogram(responses, analysis.DefaultNumBins),
		SampledParameters: sampled,
	}, nil
}

// validate rejects malformed input before any sampling happens. Model term
// keys referencing undeclared parameter names are deliberately not rejected
// here; the evaluator substitutes zero for them.
func validate(run simulation.SimulationRun, settings simulation.Settings) error {
	if len(run.Parameters) == 0 {
		return fmt.Errorf("%w: at least one parameter is required", ErrInvalidRun)
	}
	if settings.NumIterations <= 0 {
		return fmt.Errorf("%w: numIterations must be > 0", ErrInvalidRun)
	}
	if settings.ConfidenceInterval <= 0 || settings.ConfidenceInterval >= 1 {
		return fmt.Errorf("%w: confidenceInterval must be between 0 and 1", ErrInvalidRun)
	}
	spec := run.Response.Specification
	if spec.Lower > spec.Upper {
		return fmt.Errorf("%w: specification.lower must be <= specification.upper", ErrInvalidRun)
	}

	seen := make(map[string]bool, len(run.Parameters))
	for _, p := range run.Parameters {
		if p.Name == "" {
			return fmt.Errorf("%w: parameter name must not be empty", ErrInvalidRun)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate parameter name %q", ErrInvalidRun, p.Name)
		}
		seen[p.Name] = true
		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			return fmt.Errorf("%w: parameter %q min must be <= max", ErrInvalidRun, p.Name)
		}
		switch p.Distribution {
		case simulation.DistLognormal:
			if p.Mean <= 0 {
				return fmt.Errorf("%w: parameter %q requires mean > 0 for lognormal", ErrInvalidRun, p.Name)
			}
			if p.StdDev < 0 {
				return fmt.Errorf("%w: parameter %q stdDev must be >= 0", ErrInvalidRun, p.Name)
			}
		case simulation.DistUniform:
			// mean/stdDev ignored; support comes from min/max
		default:
			if p.StdDev < 0 {
				return fmt.Errorf("%w: parameter %q stdDev must be >= 0", ErrInvalidRun, p.Name)
			}
		}
	}
	return nil
}
