package stochastic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/playout-sim/playout-sim/sim/petri"
)

func twoTransitions() []*petri.Transition {
	return []*petri.Transition{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
	}
}

func TestPickTransition_SingleCandidate(t *testing.T) {
	m := Map{}
	enabled := []*petri.Transition{{ID: "only"}}
	if got := m.PickTransition(enabled, nil); got != enabled[0] {
		t.Errorf("single enabled transition must be picked without drawing")
	}
}

func TestPickTransition_RespectsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := Map{
		"a": {Weight: 3.0},
		"b": {Weight: 1.0},
	}
	enabled := twoTransitions()
	counts := map[string]int{}
	n := 40000
	for i := 0; i < n; i++ {
		counts[m.PickTransition(enabled, rng).ID]++
	}
	frac := float64(counts["a"]) / float64(n)
	if math.Abs(frac-0.75) > 0.02 {
		t.Errorf("weight-3 transition picked %.3f of the time, want ≈ 0.75", frac)
	}
}

func TestPickTransition_MissingEntriesDefaultToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := Map{} // nothing fitted
	enabled := twoTransitions()
	counts := map[string]int{}
	n := 40000
	for i := 0; i < n; i++ {
		counts[m.PickTransition(enabled, rng).ID]++
	}
	frac := float64(counts["a"]) / float64(n)
	if math.Abs(frac-0.5) > 0.02 {
		t.Errorf("unweighted pick chose a %.3f of the time, want ≈ 0.5", frac)
	}
}

func TestPickTransition_DeterministicForFixedSeed(t *testing.T) {
	m := Map{"a": {Weight: 2}, "b": {Weight: 1}}
	enabled := twoTransitions()

	run := func() []string {
		rng := rand.New(rand.NewSource(99))
		out := make([]string, 50)
		for i := range out {
			out[i] = m.PickTransition(enabled, rng).ID
		}
		return out
	}
	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pick %d differs across identically seeded runs: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestSampleDuration_UnfittedTransitionIsZero(t *testing.T) {
	m := Map{}
	if v := m.SampleDuration("ghost", nil); v != 0 {
		t.Errorf("unfitted transition duration = %v, want 0", v)
	}
}
