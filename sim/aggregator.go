package sim

import (
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// SimulationResult is the full output of one playout run.
type SimulationResult struct {
	RunID uuid.UUID

	// Log holds the synthetic event log: finished cases in ascending
	// case-id order, each an ordered (activity, timestamp) sequence.
	Log []CaseResult

	// PlaceBusy and TransitionBusy are the occupancy interval stores,
	// keyed by place ID and transition name respectively.
	PlaceBusy      *IntervalBookkeeper
	TransitionBusy *IntervalBookkeeper

	CaseDurations      []float64
	MedianCaseDuration float64
	CaseArrivalRatio   float64

	// TotalSpan is max event timestamp - min event timestamp over every
	// event of every case.
	TotalSpan float64
}

// ResultAggregator folds finished case outputs into a SimulationResult.
type ResultAggregator struct {
	finished []CaseResult
}

// NewResultAggregator creates an empty aggregator.
func NewResultAggregator() *ResultAggregator {
	return &ResultAggregator{}
}

// Add records one finished case.
func (ra *ResultAggregator) Add(res *CaseResult) {
	ra.finished = append(ra.finished, *res)
}

// Len returns the number of finished cases collected so far.
func (ra *ResultAggregator) Len() int {
	return len(ra.finished)
}

// Result assembles the SimulationResult. It fails with EmptyResultError
// when no case produced any event, since span and median are undefined.
func (ra *ResultAggregator) Result(arrivalRatio float64, placeBusy, transitionBusy *IntervalBookkeeper) (*SimulationResult, error) {
	log := make([]CaseResult, len(ra.finished))
	copy(log, ra.finished)
	sort.Slice(log, func(i, j int) bool { return log[i].CaseID < log[j].CaseID })

	durations := make([]float64, 0, len(log))
	var minTS, maxTS float64
	events := 0
	for _, c := range log {
		durations = append(durations, c.Duration)
		for _, ev := range c.Trace {
			if events == 0 {
				minTS, maxTS = ev.Timestamp, ev.Timestamp
			} else {
				if ev.Timestamp < minTS {
					minTS = ev.Timestamp
				}
				if ev.Timestamp > maxTS {
					maxTS = ev.Timestamp
				}
			}
			events++
		}
	}
	if events == 0 {
		return nil, &EmptyResultError{}
	}

	sorted := make([]float64, len(durations))
	copy(sorted, durations)
	sort.Float64s(sorted)

	return &SimulationResult{
		RunID:              uuid.New(),
		Log:                log,
		PlaceBusy:          placeBusy,
		TransitionBusy:     transitionBusy,
		CaseDurations:      durations,
		MedianCaseDuration: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		CaseArrivalRatio:   arrivalRatio,
		TotalSpan:          maxTS - minTS,
	}, nil
}
