// Package stochastic holds the per-transition duration distributions fitted
// upstream (log replay) and the weighted random transition choice the
// playout engine delegates to.
package stochastic

import (
	"fmt"
	"math"
	"math/rand"
)

// Sampler draws one duration value. Values are in the same virtual-time
// unit as the rest of the simulation; negative draws are possible (e.g.
// normal distributions) and are resampled by the engine.
type Sampler interface {
	Sample(rng *rand.Rand) float64
}

// NormalSampler draws from N(mean, stdDev²). Unclamped: the engine owns the
// negative-value policy.
type NormalSampler struct {
	mean, stdDev float64
}

func (s *NormalSampler) Sample(rng *rand.Rand) float64 {
	return rng.NormFloat64()*s.stdDev + s.mean
}

// ExponentialSampler draws from Exp(1/mean).
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}

// UniformSampler draws uniformly from [low, high).
type UniformSampler struct {
	low, high float64
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	return s.low + rng.Float64()*(s.high-s.low)
}

// ConstantSampler always returns the same value. Used for deterministic
// service times and in tests.
type ConstantSampler struct {
	value float64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) float64 {
	return s.value
}

// TriangularSampler draws from Triangular(low, mode, high) via inverse CDF.
type TriangularSampler struct {
	low, mode, high float64
}

func (s *TriangularSampler) Sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	fc := (s.mode - s.low) / (s.high - s.low)
	if u < fc {
		return s.low + math.Sqrt(u*(s.high-s.low)*(s.mode-s.low))
	}
	return s.high - math.Sqrt((1-u)*(s.high-s.low)*(s.high-s.mode))
}

// LogNormalSampler draws exp(N(mu, sigma²)).
type LogNormalSampler struct {
	mu, sigma float64
}

func (s *LogNormalSampler) Sample(rng *rand.Rand) float64 {
	return math.Exp(s.mu + s.sigma*rng.NormFloat64())
}

// DistSpec parameterizes a duration distribution, typically deserialized
// from a scenario file.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewSampler creates a Sampler from a DistSpec.
func NewSampler(spec DistSpec) (Sampler, error) {
	switch spec.Type {
	case "normal":
		if err := requireParam(spec.Params, "mean", "std_dev"); err != nil {
			return nil, err
		}
		return &NormalSampler{mean: spec.Params["mean"], stdDev: spec.Params["std_dev"]}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil

	case "uniform":
		if err := requireParam(spec.Params, "low", "high"); err != nil {
			return nil, err
		}
		low, high := spec.Params["low"], spec.Params["high"]
		if high < low {
			return nil, fmt.Errorf("uniform distribution requires low <= high, got [%v, %v]", low, high)
		}
		return &UniformSampler{low: low, high: high}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: spec.Params["value"]}, nil

	case "triangular":
		if err := requireParam(spec.Params, "low", "mode", "high"); err != nil {
			return nil, err
		}
		low, mode, high := spec.Params["low"], spec.Params["mode"], spec.Params["high"]
		if !(low <= mode && mode <= high && low < high) {
			return nil, fmt.Errorf("triangular distribution requires low <= mode <= high, got [%v, %v, %v]", low, mode, high)
		}
		return &TriangularSampler{low: low, mode: mode, high: high}, nil

	case "lognormal":
		if err := requireParam(spec.Params, "mu", "sigma"); err != nil {
			return nil, err
		}
		return &LogNormalSampler{mu: spec.Params["mu"], sigma: spec.Params["sigma"]}, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
