package analysis

import "github.com/user/qbd_simulator_go/internal/simulation"

// DefaultNumBins is the histogram bin count used when the caller does not
// choose one.
const DefaultNumBins = 20

// BuildHistogram bins the response sample into numBins equal-width bins
// ordered by ascending BinStart. Every sample lands in exactly one bin:
// the maximum value is clamped into the last bin rather than overflowing
// past it. A zero-variance sample collapses to a single bin holding all
// points. numBins < 1 falls back to DefaultNumBins; an empty sample yields
// no bins.
func BuildHistogram(values []float64, numBins int) []simulation.HistogramBin {
	n := len(values)
	if n == 0 {
		return nil
	}
	if numBins < 1 {
		numBins = DefaultNumBins
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		return []simulation.HistogramBin{{BinStart: min, Count: n, Frequency: 1}}
	}

	binWidth := (max - min) / float64(numBins)
	counts := make([]int, numBins)
	for _, v := range values {
		idx := int((v - min) / binWidth)
		if idx > numBins-1 {
			idx = numBins - 1
		}
		counts[idx]++
	}

	bins := make([]simulation.HistogramBin, numBins)
	for i, count := range counts {
		bins[i] = simulation.HistogramBin{
			BinStart:  min + float64(i)*binWidth,
			Count:     count,
			Frequency: float64(count) / float64(n),
		}
	}
	return bins
}
