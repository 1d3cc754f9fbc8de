package stochastic

import (
	"math/rand"

	"github.com/playout-sim/playout-sim/sim/petri"
)

// Entry pairs a transition's duration sampler with its firing weight.
type Entry struct {
	Sampler Sampler
	Weight  float64
}

// Map is the fitted stochastic map: transition ID -> duration distribution
// and weight. Transitions absent from the map fall back to weight 1.0 and a
// zero duration.
type Map map[string]Entry

// defaultWeight is used for transitions the fitting step never saw.
const defaultWeight = 1.0

func (m Map) weight(id string) float64 {
	if e, ok := m[id]; ok && e.Weight > 0 {
		return e.Weight
	}
	return defaultWeight
}

// SampleDuration draws a raw duration for the given transition. Transitions
// without a fitted distribution take zero time.
func (m Map) SampleDuration(id string, rng *rand.Rand) float64 {
	e, ok := m[id]
	if !ok || e.Sampler == nil {
		return 0
	}
	return e.Sampler.Sample(rng)
}

// PickTransition draws one of the enabled transitions at random,
// proportionally to their weights. enabled must be non-empty; callers pass
// the deterministically ordered slice from Net.Enabled so a fixed seed
// yields a fixed choice sequence.
func (m Map) PickTransition(enabled []*petri.Transition, rng *rand.Rand) *petri.Transition {
	if len(enabled) == 1 {
		return enabled[0]
	}
	total := 0.0
	for _, t := range enabled {
		total += m.weight(t.ID)
	}
	x := rng.Float64() * total
	for _, t := range enabled {
		x -= m.weight(t.ID)
		if x < 0 {
			return t
		}
	}
	return enabled[len(enabled)-1]
}
