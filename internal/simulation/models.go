// Package simulation holds the contract types for a Monte Carlo
// quality-by-design run, the response-surface term representation and the
// term evaluator. Everything here is JSON-serializable and immutable after
// construction.
package simulation

// Supported distribution names for Parameter.Distribution. An unrecognized
// name is not an error; the sampler treats it as DistNormal.
const (
	DistNormal    = "normal"
	DistLognormal = "lognormal"
	DistUniform   = "uniform"
)

// Engine defaults applied by Settings.WithDefaults.
const (
	DefaultNumIterations      = 10000
	DefaultConfidenceInterval = 0.95
)

// Parameter is one controllable process input, described by the probability
// distribution its run-to-run variability is drawn from.
//
// Mean and StdDev shape normal and lognormal draws and are ignored for
// uniform. Min and Max are optional truncation bounds; for uniform they
// define the support directly. Every sampled value is clamped into
// [Min, Max] after generation, whatever the distribution.
type Parameter struct {
	Name         string   `json:"name" yaml:"name"`
	Distribution string   `json:"distribution" yaml:"distribution"`
	Mean         float64  `json:"mean" yaml:"mean"`
	StdDev       float64  `json:"stdDev" yaml:"stdDev"`
	Min          *float64 `json:"min,omitempty" yaml:"min"`
	Max          *float64 `json:"max,omitempty" yaml:"max"`
}

// Specification is the acceptance window for the response.
type Specification struct {
	Lower  float64 `json:"lower" yaml:"lower"`
	Upper  float64 `json:"upper" yaml:"upper"`
	Target float64 `json:"target" yaml:"target"`
}

// ResponseModel is an empirical response-surface model: a polynomial
// mapping parameter values to one scalar quality response. Coefficients is
// keyed by term key ("intercept", "<name>", "<name>^<power>" or
// "<nameA>*<nameB>"); see ParseTerms.
type ResponseModel struct {
	Name          string             `json:"name" yaml:"name"`
	Unit          string             `json:"unit" yaml:"unit"`
	Coefficients  map[string]float64 `json:"coefficients" yaml:"coefficients"`
	Specification Specification      `json:"specification" yaml:"specification"`
}

// Settings controls a simulation run. A zero NumIterations or
// ConfidenceInterval means "use the default". Seed, when set, makes the
// run reproducible; when nil the random stream is time-seeded.
type Settings struct {
	NumIterations      int     `json:"numIterations" yaml:"numIterations"`
	ConfidenceInterval float64 `json:"confidenceInterval" yaml:"confidenceInterval"`
	Seed               *int64  `json:"seed,omitempty" yaml:"seed"`
}

// WithDefaults returns a copy with zero-valued fields replaced by the
// engine defaults.
func (s Settings) WithDefaults() Settings {
	if s.NumIterations == 0 {
		s.NumIterations = DefaultNumIterations
	}
	if s.ConfidenceInterval == 0 {
		s.ConfidenceInterval = DefaultConfidenceInterval
	}
	return s
}

// SimulationRun is one request to the engine. It is created fresh per
// invocation and never mutated after construction.
type SimulationRun struct {
	Parameters []Parameter   `json:"parameters" yaml:"parameters"`
	Response   ResponseModel `json:"response" yaml:"response"`
	Settings   Settings      `json:"settings" yaml:"settings"`
}

// Statistics are descriptive statistics of the response sample. StdDev is
// the population (not sample) standard deviation. CILower/CIUpper are the
// empirical percentile confidence-interval bounds.
type Statistics struct {
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"stdDev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	CILower float64 `json:"ciLower"`
	CIUpper float64 `json:"ciUpper"`
}

// Capability reports how the response sample sits against the
// specification window. WithinSpec, BelowLower and AboveUpper are
// probabilities in [0, 1] and sum to exactly 1.
type Capability struct {
	Cpk        float64 `json:"cpk"`
	WithinSpec float64 `json:"withinSpec"`
	BelowLower float64 `json:"belowLower"`
	AboveUpper float64 `json:"aboveUpper"`
}

// HistogramBin is one equal-width bin of the response sample. Frequency is
// Count divided by the sample size.
type HistogramBin struct {
	BinStart  float64 `json:"binStart"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// SampledParameterStats are the empirical statistics a parameter's sampled
// sequence actually realized, for sanity-checking the sampler against the
// requested distribution.
type SampledParameterStats struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SimulationResult is the transient output of one engine run. All
// floating-point fields are plain finite numbers; degenerate cases are
// resolved to sentinels before this struct is built, so the JSON form
// never carries NaN or Infinity.
type SimulationResult struct {
	ID                string                  `json:"id"`
	ResponseName      string                  `json:"responseName"`
	Unit              string                  `json:"unit"`
	Iterations        int                     `json:"iterations"`
	CompletedAt       string                  `json:"completedAt"`
	Statistics        Statistics              `json:"statistics"`
	Capability        Capability              `json:"capability"`
	Histogram         []HistogramBin          `json:"histogram"`
	SampledParameters []SampledParameterStats `json:"sampledParameters"`
}
