// Package analysis computes descriptive statistics, capability indices and
// histograms from a Monte Carlo response sample. Every statistic is derived
// from the empirical sample itself, not from a fitted distribution, and for
// well-formed numeric input no function here returns NaN or Inf.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/user/qbd_simulator_go/internal/simulation"
)

// Analyze computes descriptive statistics and capability figures for a
// response sample against its specification window. The sample must be
// non-empty; mean and variance are undefined otherwise and the empty case
// is rejected rather than leaked as NaN.
//
// Conventions preserved for numeric parity with existing consumers:
// population (not sample) variance, median taken as sorted[n/2], and
// floor-index (not interpolated) empirical percentile CI bounds.
func Analyze(values []float64, spec simulation.Specification, confidenceLevel float64) (simulation.Statistics, simulation.Capability, error) {
	n := len(values)
	if n == 0 {
		return simulation.Statistics{}, simulation.Capability{}, fmt.Errorf("response sample is empty, cannot analyze")
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := calculateMean(sorted)
	stdDev := calculateStdDev(sorted, mean)

	alpha := 1 - confidenceLevel
	lowerIdx := int(float64(n) * alpha / 2)
	upperIdx := int(float64(n) * (1 - alpha/2))
	if upperIdx > n-1 {
		upperIdx = n - 1
	}

	stats := simulation.Statistics{
		Mean:    mean,
		Median:  sorted[n/2],
		StdDev:  stdDev,
		Min:     sorted[0],
		Max:     sorted[n-1],
		CILower: sorted[lowerIdx],
		CIUpper: sorted[upperIdx],
	}

	belowCount, aboveCount := 0, 0
	for _, v := range sorted {
		if v < spec.Lower {
			belowCount++
		} else if v > spec.Upper {
			aboveCount++
		}
	}
	belowLower := float64(belowCount) / float64(n)
	aboveUpper := float64(aboveCount) / float64(n)

	capability := simulation.Capability{
		Cpk:        cpk(mean, stdDev, spec),
		BelowLower: belowLower,
		AboveUpper: aboveUpper,
		WithinSpec: 1 - (belowLower + aboveUpper),
	}
	return stats, capability, nil
}

// cpk is min((mean-lower)/3s, (upper-mean)/3s). A zero-variance sample has
// no defined Cpk; the convention here is the largest finite float64,
// positive when the degenerate mean sits inside the window and negative
// when it does not, so the value survives JSON encoding unlike an Inf.
func cpk(mean, stdDev float64, spec simulation.Specification) float64 {
	if stdDev == 0 {
		if mean >= spec.Lower && mean <= spec.Upper {
			return math.MaxFloat64
		}
		return -math.MaxFloat64
	}
	lowerCpk := (mean - spec.Lower) / (3 * stdDev)
	upperCpk := (spec.Upper - mean) / (3 * stdDev)
	return math.Min(lowerCpk, upperCpk)
}

// SampleStats reports the empirical mean, population standard deviation,
// minimum and maximum a sampled sequence actually realized. An empty
// sequence yields all zeros.
func SampleStats(name string, values []float64) simulation.SampledParameterStats {
	stats := simulation.SampledParameterStats{Name: name}
	if len(values) == 0 {
		return stats
	}
	stats.Mean = calculateMean(values)
	stats.StdDev = calculateStdDev(values, stats.Mean)
	stats.Min, stats.Max = values[0], values[0]
	for _, v := range values[1:] {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	return stats
}

func calculateMean(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func calculateStdDev(data []float64, mean float64) float64 {
	sumSqDiff := 0.0
	for _, v := range data {
		sumSqDiff += (v - mean) * (v - mean)
	}
	return math.Sqrt(sumSqDiff / float64(len(data)))
}
