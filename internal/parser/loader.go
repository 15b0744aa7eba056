// Package parser loads simulation run definitions from YAML or JSON files.
// Hard validation of the run itself (iteration counts, specification
// bounds, parameter shapes) belongs to the engine; the loader rejects
// files it cannot decode and accumulates non-fatal warnings for the things
// the engine will silently tolerate.
package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/qbd_simulator_go/internal/simulation"
)

// LoadRunDefinition reads a simulation definition file. The format is
// chosen by extension: .json decodes as JSON, anything else as YAML
// (which accepts JSON input too). The returned warnings flag suspicious
// but legal content: unrecognized distribution names (the sampler falls
// back to normal) and model terms referencing undeclared parameters (the
// evaluator substitutes zero).
func LoadRunDefinition(path string) (*simulation.SimulationRun, []string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read definition file: %w", err)
	}

	var run simulation.SimulationRun
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(raw, &run); err != nil {
			return nil, nil, fmt.Errorf("failed to parse JSON definition %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &run); err != nil {
			return nil, nil, fmt.Errorf("failed to parse YAML definition %s: %w", path, err)
		}
	}

	return &run, lintRun(&run), nil
}

func lintRun(run *simulation.SimulationRun) []string {
	var warnings []string

	declared := make(map[string]bool, len(run.Parameters))
	for _, p := range run.Parameters {
		declared[p.Name] = true
		switch p.Distribution {
		case simulation.DistNormal, simulation.DistLognormal, simulation.DistUniform:
		default:
			warnings = append(warnings, fmt.Sprintf(
				"parameter %q has unrecognized distribution %q, sampling will fall back to normal", p.Name, p.Distribution))
		}
		if p.Distribution == simulation.DistUniform && (p.Min == nil || p.Max == nil) {
			warnings = append(warnings, fmt.Sprintf(
				"parameter %q is uniform but min/max are not both set, missing bounds default to 0", p.Name))
		}
	}

	terms, err := simulation.ParseTerms(run.Response.Coefficients)
	if err != nil {
		// The engine rejects this run anyway; surface it early as a warning
		// so the definition file line is easy to find.
		warnings = append(warnings, fmt.Sprintf("response model: %v", err))
		return warnings
	}
	for _, t := range terms {
		for _, name := range t.Factors() {
			if !declared[name] {
				warnings = append(warnings, fmt.Sprintf(
					"response model references undeclared parameter %q, its value evaluates as 0", name))
			}
		}
	}
	return warnings
}
