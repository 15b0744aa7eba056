package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/qbd_simulator_go/internal/engine"
	"github.com/user/qbd_simulator_go/internal/simulation"
)

func float64Ptr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64       { return &v }

func testRun() simulation.SimulationRun {
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
			Specification: simulation.Specification{Lower: 160, Upper: 185, Target: 172},
		},
		Settings: simulation.Settings{NumIterations: 2000, ConfidenceInterval: 0.95, Seed: int64Ptr(42)},
	}
}

func TestCreateHistogramPlot(t *testing.T) {
	result, err := engine.Run(testRun())
	if err != nil {
		t.Fatalf("engine.Run: %v", err)
	}

	png, err := CreateHistogramPlot(result, testRun().Response.Specification)
	if err != nil {
		t.Fatalf("CreateHistogramPlot: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("plot output is not a PNG (first bytes %q)", png[:min(8, len(png))])
	}
}

func TestCreateHistogramPlotNoBins(t *testing.T) {
	result := &simulation.SimulationResult{ResponseName: "Hardness"}
	if _, err := CreateHistogramPlot(result, simulation.Specification{}); err == nil {
		t.Error("plotting an empty histogram succeeded, want error")
	}
}

func TestBuildPDFReport(t *testing.T) {
	run := testRun()
	result, err := engine.Run(run)
	if err != nil {
		t.Fatalf("engine.Run: %v", err)
	}
	png, err := CreateHistogramPlot(result, run.Response.Specification)
	if err != nil {
		t.Fatalf("CreateHistogramPlot: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := BuildPDFReport(path, run, result, png); err != nil {
		t.Fatalf("BuildPDFReport: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Errorf("report output is not a PDF (first bytes %q)", raw[:min(8, len(raw))])
	}
}

func TestBuildPDFReportWithoutPlot(t *testing.T) {
	run := testRun()
	result, err := engine.Run(run)
	if err != nil {
		t.Fatalf("engine.Run: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := BuildPDFReport(path, run, result, nil); err != nil {
		t.Fatalf("BuildPDFReport without plot: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}
