package sim

import (
	"testing"

	"github.com/playout-sim/playout-sim/sim/petri"
	"github.com/playout-sim/playout-sim/sim/stochastic"
)

// lineNet builds the sequential net p0 -> a -> p1 -> b -> p2 with constant
// transition durations. durA/durB are the raw durations of a and b.
func lineNet(t *testing.T, durA, durB float64) (*petri.Net, petri.Marking, petri.Marking, stochastic.Map) {
	t.Helper()
	net := petri.NewNet()
	net.AddPlace("p0")
	net.AddPlace("p1")
	net.AddPlace("p2")
	net.AddTransition("a", "A")
	net.AddTransition("b", "B")
	for _, arc := range [][2]string{{"p0", "a"}, {"a", "p1"}, {"p1", "b"}, {"b", "p2"}} {
		if _, err := net.AddArc(arc[0], arc[1], 1); err != nil {
			t.Fatal(err)
		}
	}
	smap := stochastic.Map{
		"a": {Sampler: constSampler(t, durA), Weight: 1},
		"b": {Sampler: constSampler(t, durB), Weight: 1},
	}
	initial := petri.NewMarking(map[string]int{"p0": 1})
	final := petri.NewMarking(map[string]int{"p2": 1})
	return net, initial, final, smap
}

func constSampler(t *testing.T, value float64) stochastic.Sampler {
	t.Helper()
	s, err := stochastic.NewSampler(stochastic.DistSpec{
		Type:   "constant",
		Params: map[string]float64{"value": value},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// mustRun builds a simulator and runs it, failing the test on any error.
func mustRun(t *testing.T, net *petri.Net, initial, final petri.Marking,
	smap stochastic.Map, config Config) *SimulationResult {
	t.Helper()
	s, err := NewSimulator(net, initial, final, smap, config)
	if err != nil {
		t.Fatal(err)
	}
	result, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	return result
}
