package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/playout-sim/playout-sim/sim"
	"github.com/playout-sim/playout-sim/sim/petri"
	"github.com/playout-sim/playout-sim/sim/stochastic"
)

// Scenario is the YAML description of one playout run: the net, the fitted
// per-transition distributions, and the run parameters.
type Scenario struct {
	Name             string  `yaml:"name"`
	Seed             int64   `yaml:"seed"`
	Cases            int     `yaml:"cases"`
	CaseArrivalRatio float64 `yaml:"case_arrival_ratio"`
	StartTime        float64 `yaml:"start_time"`
	SmallScaleFactor float64 `yaml:"small_scale_factor,omitempty"`

	Places      []PlaceSpec      `yaml:"places"`
	Transitions []TransitionSpec `yaml:"transitions"`
	Arcs        []ArcSpec        `yaml:"arcs"`

	InitialMarking map[string]int `yaml:"initial_marking"`
	FinalMarking   map[string]int `yaml:"final_marking"`
}

// PlaceSpec declares one place. Capacity 0 means the default of 1.
type PlaceSpec struct {
	ID       string `yaml:"id"`
	Capacity int    `yaml:"capacity,omitempty"`
}

// TransitionSpec declares one transition. An empty label makes it silent.
type TransitionSpec struct {
	ID       string               `yaml:"id"`
	Label    string               `yaml:"label,omitempty"`
	Weight   float64              `yaml:"weight,omitempty"`
	Duration *stochastic.DistSpec `yaml:"duration,omitempty"`
}

// ArcSpec declares one arc. Weight 0 means 1.
type ArcSpec struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Weight int    `yaml:"weight,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &sc, nil
}

// Build validates the scenario and assembles the simulation inputs.
func (sc *Scenario) Build() (*petri.Net, petri.Marking, petri.Marking, stochastic.Map, sim.Config, error) {
	var zero sim.Config
	net := petri.NewNet()
	capacities := make(map[string]int)

	for _, p := range sc.Places {
		if p.ID == "" {
			return nil, nil, nil, nil, zero, fmt.Errorf("place with empty id")
		}
		net.AddPlace(p.ID)
		if p.Capacity > 0 {
			capacities[p.ID] = p.Capacity
		}
	}
	smap := make(stochastic.Map, len(sc.Transitions))
	for _, t := range sc.Transitions {
		if t.ID == "" {
			return nil, nil, nil, nil, zero, fmt.Errorf("transition with empty id")
		}
		net.AddTransition(t.ID, t.Label)
		entry := stochastic.Entry{Weight: t.Weight}
		if t.Duration != nil {
			sampler, err := stochastic.NewSampler(*t.Duration)
			if err != nil {
				return nil, nil, nil, nil, zero, fmt.Errorf("transition %s: %w", t.ID, err)
			}
			entry.Sampler = sampler
		}
		smap[t.ID] = entry
	}
	for _, a := range sc.Arcs {
		if _, err := net.AddArc(a.From, a.To, a.Weight); err != nil {
			return nil, nil, nil, nil, zero, err
		}
	}
	for id := range sc.InitialMarking {
		if _, ok := net.Places[id]; !ok {
			return nil, nil, nil, nil, zero, fmt.Errorf("initial marking references unknown place %q", id)
		}
	}
	for id := range sc.FinalMarking {
		if _, ok := net.Places[id]; !ok {
			return nil, nil, nil, nil, zero, fmt.Errorf("final marking references unknown place %q", id)
		}
	}

	config := sim.Config{
		NumCases:         sc.Cases,
		CaseArrivalRatio: sc.CaseArrivalRatio,
		StartTime:        sc.StartTime,
		Seed:             sc.Seed,
		Capacities:       capacities,
		SmallScaleFactor: sc.SmallScaleFactor,
	}
	return net, petri.NewMarking(sc.InitialMarking), petri.NewMarking(sc.FinalMarking), smap, config, nil
}
