// Package sampler draws independent random values for process parameters
// from their configured distributions.
package sampler

import (
	"math"
	"math/rand"
	"time"

	"github.com/user/qbd_simulator_go/internal/simulation"
)

// Sampler generates parameter samples from a single random stream. It is
// not safe for concurrent use; give each simulation run its own Sampler.
type Sampler struct {
	rng *rand.Rand
}

// New returns a Sampler with a deterministic stream for the given seed.
func New(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded returns a Sampler seeded from the wall clock, for runs
// where reproducibility is not requested.
func NewTimeSeeded() *Sampler {
	return New(time.Now().UnixNano())
}

// Sample draws n independent values for the parameter. Normal values come
// from the Box-Muller transform; lognormal is exp(ln(mean) + z*stdDev/mean),
// which assumes mean > 0 and is not the conventional log-space
// parameterization (kept for numeric parity with existing response models);
// uniform spans [min, max].
// Any other distribution name behaves as normal. Every value is clamped
// into [min, max] afterwards when those bounds are set. n <= 0 yields an
// empty sequence.
func (s *Sampler) Sample(p simulation.Parameter, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		var v float64
		switch p.Distribution {
		case simulation.DistLognormal:
			z := s.boxMuller()
			v = math.Exp(math.Log(p.Mean) + z*p.StdDev/p.Mean)
		case simulation.DistUniform:
			lo, hi := bound(p.Min), bound(p.Max)
			v = lo + s.rng.Float64()*(hi-lo)
		default:
			// normal, and the fallback for unrecognized names
			v = p.Mean + s.boxMuller()*p.StdDev
		}
		values[i] = clamp(v, p.Min, p.Max)
	}
	return values
}

// boxMuller returns one standard normal variate from two uniform(0,1)
// draws. u1 is resampled while zero so ln(u1) stays finite.
func (s *Sampler) boxMuller() float64 {
	u1 := s.rng.Float64()
	for u1 == 0 {
		u1 = s.rng.Float64()
	}
	u2 := s.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func clamp(v float64, min, max *float64) float64 {
	if min != nil && v < *min {
		v = *min
	}
	if max != nil && v > *max {
		v = *max
	}
	return v
}

func bound(b *float64) float64 {
	if b == nil {
		return 0
	}
	return *b
}
