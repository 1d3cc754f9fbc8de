// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/playout-sim/playout-sim/sim/petri"
	"github.com/playout-sim/playout-sim/sim/stochastic"
)

// Simulator owns one playout run: it wires the net, markings, and fitted
// stochastic map to the resource pool, bookkeepers, case processes, and
// scheduler, and returns the aggregated result.
type Simulator struct {
	net     *petri.Net
	initial petri.Marking
	final   petri.Marking
	smap    stochastic.Map
	config  Config
}

// NewSimulator creates a simulator for the given net and run parameters.
func NewSimulator(net *petri.Net, initial, final petri.Marking, smap stochastic.Map, config Config) (*Simulator, error) {
	if net == nil {
		return nil, fmt.Errorf("net must not be nil")
	}
	if config.NumCases <= 0 {
		return nil, fmt.Errorf("number of cases must be positive, got %d", config.NumCases)
	}
	if config.CaseArrivalRatio < 0 {
		return nil, fmt.Errorf("case arrival ratio must be non-negative, got %v", config.CaseArrivalRatio)
	}
	for id := range config.Capacities {
		if _, ok := net.Places[id]; !ok {
			return nil, fmt.Errorf("capacity map references unknown place %q", id)
		}
	}
	if config.SmallScaleFactor != 0 {
		logrus.Debugf("small scale factor %v accepted but unused", config.SmallScaleFactor)
	}
	return &Simulator{net: net, initial: initial, final: final, smap: smap, config: config}, nil
}

// Run executes the playout and returns the simulated log plus diagnostics.
// DistributionError, InvariantViolation, and EmptyResultError abort the run;
// on abort the partial result collected so far accompanies the error for
// diagnostics (may be nil when nothing aggregated yet).
func (s *Simulator) Run() (*SimulationResult, error) {
	pool := NewResourcePool(s.net, s.config.Capacities)
	placeBusy := NewIntervalBookkeeper()
	transitionBusy := NewIntervalBookkeeper()
	rng := NewPartitionedRNG(s.config.Seed)
	aggregator := NewResultAggregator()

	processes := make([]*CaseProcess, 0, s.config.NumCases)
	for i := 0; i < s.config.NumCases; i++ {
		start := s.config.StartTime + float64(i)*s.config.CaseArrivalRatio
		processes = append(processes, NewCaseProcess(i, start, s.net, s.initial, s.final,
			s.smap, pool, placeBusy, transitionBusy, rng, s.config.maxRetries()))
	}

	logrus.Infof("starting playout: %d cases, seed %d, arrival ratio %.3f",
		s.config.NumCases, s.config.Seed, s.config.CaseArrivalRatio)

	if err := NewScheduler().Run(processes, aggregator); err != nil {
		// Surface whatever finished before the failure alongside the error.
		partial, resErr := aggregator.Result(s.config.CaseArrivalRatio, placeBusy, transitionBusy)
		if resErr != nil {
			partial = nil
		}
		return partial, err
	}

	result, err := aggregator.Result(s.config.CaseArrivalRatio, placeBusy, transitionBusy)
	if err != nil {
		return nil, err
	}
	logrus.Infof("playout finished: %d cases, span %.3f, median duration %.3f",
		len(result.Log), result.TotalSpan, result.MedianCaseDuration)
	return result, nil
}
