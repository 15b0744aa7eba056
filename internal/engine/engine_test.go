package engine

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/user/qbd_simulator_go/internal/simulation"
)

func float64Ptr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64       { return &v }

// tabletRun is the compression scenario: hardness modeled from compression
// force and tablet weight with an interaction term.
func tabletRun(seed int64) simulation.SimulationRun {
	return simulation.SimulationRun{
		Parameters: []simulation.Parameter{
			{Name: "Compression Force", Distribution: simulation.DistNormal,
				Mean: 15, StdDev: 0.5, Min: float64Ptr(12), Max: float64Ptr(18)},
			{Name: "Tablet Weight", Distribution: simulation.DistNormal,
				Mean: 100, StdDev: 2, Min: float64Ptr(95), Max: float64Ptr(105)},
		},
		Response: simulation.ResponseModel{
			Name: "Hardness",
			Unit: "N",
			Coefficients: map[string]float64{
				"intercept":                       30,
				"Compression Force":               3.5,
				"Tablet Weight":                   0.15,
				"Compression Force*Tablet Weight": 0.05,
			},
			Specification: simulation.Specification{Lower: 70, Upper: 85, Target: 75},
		},
		Settings: simulation.Settings{NumIterations: 10000, ConfidenceInterval: 0.95, Seed: int64Ptr(seed)},
	}
}

func TestRunEndToEnd(t *testing.T) {
	result, err := Run(tabletRun(42))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.ID == "" || result.CompletedAt == "" {
		t.Errorf("missing run metadata: ID=%q CompletedAt=%q", result.ID, result.CompletedAt)
	}
	if result.Iterations != 10000 {
		t.Errorf("Iterations = %d, want 10000", result.Iterations)
	}
	if result.ResponseName != "Hardness" || result.Unit != "N" {
		t.Errorf("response echo = %q/%q, want Hardness/N", result.ResponseName, result.Unit)
	}

	// At the nominal point the model evaluates to 172.5; the sampled mean
	// sits near it (response stdDev is ~4.6, so the mean's standard error
	// over 10000 draws is ~0.05).
	if math.Abs(result.Statistics.Mean-172.5) > 1 {
		t.Errorf("Statistics.Mean = %v, want 172.5 +/- 1", result.Statistics.Mean)
	}
	if result.Statistics.CILower >= result.Statistics.CIUpper {
		t.Errorf("CI bounds inverted: [%v, %v]", result.Statistics.CILower, result.Statistics.CIUpper)
	}

	capability := result.Capability
	sum := capability.BelowLower + capability.AboveUpper + capability.WithinSpec
	if sum != 1 {
		t.Errorf("conformance probabilities sum to %v, want exactly 1", sum)
	}
	// Every response value is far above the 70..85 window.
	if capability.AboveUpper != 1 {
		t.Errorf("AboveUpper = %v, want 1 for this window", capability.AboveUpper)
	}

	total := 0
	for _, bin := range result.Histogram {
		total += bin.Count
	}
	if total != result.Iterations {
		t.Errorf("histogram counts sum to %d, want %d", total, result.Iterations)
	}

	if len(result.SampledParameters) != 2 {
		t.Fatalf("got %d sampled parameter reports, want 2", len(result.SampledParameters))
	}
	cf := result.SampledParameters[0]
	if cf.Name != "Compression Force" {
		t.Errorf("sampled parameters out of declaration order: first is %q", cf.Name)
	}
	if cf.Min < 12 || cf.Max > 18 {
		t.Errorf("Compression Force realized range [%v, %v] escapes [12, 18]", cf.Min, cf.Max)
	}
	if math.Abs(cf.Mean-15) > 0.1 {
		t.Errorf("Compression Force realized mean = %v, want 15 +/- 0.1", cf.Mean)
	}
	tw := result.SampledParameters[1]
	if tw.Min < 95 || tw.Max > 105 {
		t.Errorf("Tablet Weight realized range [%v, %v] escapes [95, 105]", tw.Min, tw.Max)
	}
}

func TestRunSeededDeterminism(t *testing.T) {
	first, err := Run(tabletRun(7))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(tabletRun(7))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	ignoreMeta := cmpopts.IgnoreFields(simulation.SimulationResult{}, "ID", "CompletedAt")
	if diff := cmp.Diff(first, second, ignoreMeta); diff != "" {
		t.Errorf("same seed produced different results (-first +second):\n%s", diff)
	}
	if first.ID == second.ID {
		t.Errorf("runs share ID %q, want unique IDs", first.ID)
	}
}

func TestRunAppliesDefaults(t *testing.T) {
	run := tabletRun(1)
	run.Settings = simulation.Settings{Seed: int64Ptr(1)}

	result, err := Run(run)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Iterations != simulation.DefaultNumIterations {
		t.Errorf("Iterations = %d, want default %d", result.Iterations, simulation.DefaultNumIterations)
	}
}

func TestRunResultIsValidJSON(t *testing.T) {
	// Zero-variance response: the Cpk degenerate case must serialize as a
	// plain number, never NaN or Infinity.
	run := tabletRun(3)
	run.Parameters = []simulation.Parameter{
		{Name: "Compression Force", Distribution: simulation.DistUniform,
			Min: float64Ptr(15), Max: float64Ptr(15)},
		{Name: "Tablet Weight", Distribution: simulation.DistUniform,
			Min: float64Ptr(100), Max: float64Ptr(100)},
	}

	result, err := Run(run)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("result does not serialize: %v", err)
	}
	for _, bad := range []string{"NaN", "Inf"} {
		if strings.Contains(string(encoded), bad) {
			t.Errorf("serialized result contains %s: %s", bad, encoded)
		}
	}
	if result.Capability.Cpk != -math.MaxFloat64 {
		t.Errorf("Cpk = %v, want -math.MaxFloat64 (mean 172.5 outside 70..85)", result.Capability.Cpk)
	}
}

func TestRunValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*simulation.SimulationRun)
		wantMsg string
	}{
		{"no parameters", func(r *simulation.SimulationRun) {
			r.Parameters = nil
		}, "at least one parameter"},
		{"negative iterations", func(r *simulation.SimulationRun) {
			r.Settings.NumIterations = -1
		}, "numIterations"},
		{"confidence out of range", func(r *simulation.SimulationRun) {
			r.Settings.ConfidenceInterval = 1.5
		}, "confidenceInterval"},
		{"inverted specification", func(r *simulation.SimulationRun) {
			r.Response.Specification = simulation.Specification{Lower: 85, Upper: 70}
		}, "specification.lower"},
		{"duplicate parameter names", func(r *simulation.SimulationRun) {
			r.Parameters = append(r.Parameters, r.Parameters[0])
		}, "duplicate parameter name"},
		{"empty parameter name", func(r *simulation.SimulationRun) {
			r.Parameters[0].Name = ""
		}, "name must not be empty"},
		{"inverted truncation bounds", func(r *simulation.SimulationRun) {
			r.Parameters[0].Min = float64Ptr(18)
			r.Parameters[0].Max = float64Ptr(12)
		}, "min must be <= max"},
		{"negative stdDev", func(r *simulation.SimulationRun) {
			r.Parameters[0].StdDev = -0.5
		}, "stdDev must be >= 0"},
		{"lognormal non-positive mean", func(r *simulation.SimulationRun) {
			r.Parameters[0].Distribution = simulation.DistLognormal
			r.Parameters[0].Mean = 0
		}, "mean > 0"},
		{"malformed term key", func(r *simulation.SimulationRun) {
			r.Response.Coefficients = map[string]float64{"Compression Force^x": 1}
		}, "exponent"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			run := tabletRun(1)
			tc.mutate(&run)
			_, err := Run(run)
			if err == nil {
				t.Fatal("Run succeeded, want validation error")
			}
			if !errors.Is(err, ErrInvalidRun) {
				t.Errorf("error %v is not ErrInvalidRun", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}
