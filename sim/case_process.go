package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/playout-sim/playout-sim/sim/petri"
	"github.com/playout-sim/playout-sim/sim/stochastic"
)

// Event is one activity occurrence in a simulated case.
type Event struct {
	Activity  string
	Timestamp float64
}

// CaseResult is the finished output of one case: its trace and its total
// duration (last event timestamp minus first, 0 if fewer than two events).
type CaseResult struct {
	CaseID   int
	Trace    []Event
	Duration float64
}

// Yield is what a CaseProcess hands back to the scheduler on each resume:
// either its next pending virtual time, or its final result.
type Yield struct {
	Time   float64
	Done   bool
	Result *CaseResult
}

// CaseProcess advances one simulated case by exactly one transition firing
// per resume. It is an explicit resumable state machine, not a goroutine:
// the scheduler resumes it, it runs one step synchronously, and it yields
// its updated local clock.
type CaseProcess struct {
	id        int
	startTime float64
	clock     float64

	net     *petri.Net
	marking petri.Marking
	final   petri.Marking
	smap    stochastic.Map

	pool           *ResourcePool
	placeBusy      *IntervalBookkeeper
	transitionBusy *IntervalBookkeeper

	durationRNG *rand.Rand
	choiceRNG   *rand.Rand
	maxRetries  int

	trace []Event
	holds map[string]int // place ID -> capacity units acquired and not yet released

	started bool
	pending *petri.Transition // fired transition whose input places settle on the next resume
}

// NewCaseProcess creates a case scheduled to start at startTime with a copy
// of the initial marking.
func NewCaseProcess(id int, startTime float64, net *petri.Net, initial, final petri.Marking,
	smap stochastic.Map, pool *ResourcePool, placeBusy, transitionBusy *IntervalBookkeeper,
	rng *PartitionedRNG, maxRetries int) *CaseProcess {
	return &CaseProcess{
		id:             id,
		startTime:      startTime,
		clock:          startTime,
		net:            net,
		marking:        initial.Copy(),
		final:          final,
		smap:           smap,
		pool:           pool,
		placeBusy:      placeBusy,
		transitionBusy: transitionBusy,
		durationRNG:    rng.ForSubsystem(SubsystemDurations),
		choiceRNG:      rng.ForSubsystem(SubsystemChoice),
		maxRetries:     maxRetries,
		holds:          make(map[string]int),
	}
}

// ID returns the case id, the deterministic tie-break key in the scheduler.
func (cp *CaseProcess) ID() int {
	return cp.id
}

// StartTime returns the case's scheduled start time.
func (cp *CaseProcess) StartTime() float64 {
	return cp.startTime
}

// Resume runs one step of the case and returns either the next pending
// virtual time or the final CaseResult. The whole step executes
// synchronously; the only suspension point is the return.
func (cp *CaseProcess) Resume() (Yield, error) {
	if !cp.started {
		cp.claimInitialPlaces()
		cp.started = true
	}
	if cp.pending != nil {
		if err := cp.settleInputPlaces(cp.pending); err != nil {
			return Yield{}, err
		}
		cp.pending = nil
	}

	if cp.marking.Geq(cp.final) || len(cp.net.Enabled(cp.marking)) == 0 {
		return cp.finalize()
	}
	return cp.fireOnce()
}

// claimInitialPlaces takes the capacity units backing the initial marking
// and seeds their reservation queues with the case start time, so the first
// firing's input-place accounting finds a matching reservation.
func (cp *CaseProcess) claimInitialPlaces() {
	for placeID, tokens := range cp.marking {
		for i := 0; i < tokens; i++ {
			if cp.pool.Acquire(placeID) {
				cp.holds[placeID]++
			}
			cp.pool.Reserve(placeID, cp.startTime)
		}
	}
}

// fireOnce performs one transition firing: pick, sample, wait on output
// capacity, advance the clock, fire, record.
func (cp *CaseProcess) fireOnce() (Yield, error) {
	enabled := cp.net.Enabled(cp.marking)
	t := cp.smap.PickTransition(enabled, cp.choiceRNG)

	raw, err := cp.sampleDuration(t)
	if err != nil {
		return Yield{}, err
	}

	// Occupancy wait: for every output place we fail to acquire, the case
	// can proceed no earlier than that place's earliest pending reservation.
	waiting := 0.0
	for _, arc := range cp.net.OutputArcs(t.ID) {
		if cp.pool.Acquire(arc.Target) {
			cp.holds[arc.Target]++
			continue
		}
		if ts, ok := cp.pool.EarliestReservation(arc.Target); ok {
			if cand := ts - cp.clock; cand > waiting {
				waiting = cand
			}
		}
	}

	execution := raw - waiting
	if execution < 0 {
		execution = 0
	}
	cp.clock += waiting + execution

	for _, arc := range cp.net.OutputArcs(t.ID) {
		cp.pool.Reserve(arc.Target, cp.clock)
	}

	if err := cp.net.Fire(t, cp.marking); err != nil {
		return Yield{}, err
	}

	cp.transitionBusy.Record(t.ID, cp.clock-execution, cp.clock)
	if !t.Silent() {
		cp.trace = append(cp.trace, Event{Activity: t.Label, Timestamp: cp.clock})
	}
	logrus.Debugf("case %d fired %s at %.3f (waited %.3f)", cp.id, t.ID, cp.clock, waiting)

	// Input places settle after the yield, on the next resume.
	cp.pending = t
	return Yield{Time: cp.clock}, nil
}

// sampleDuration draws a non-negative raw duration for t, resampling
// negative draws up to the bounded retry budget.
func (cp *CaseProcess) sampleDuration(t *petri.Transition) (float64, error) {
	for i := 0; i <= cp.maxRetries; i++ {
		v := cp.smap.SampleDuration(t.ID, cp.durationRNG)
		if v >= 0 {
			return v, nil
		}
	}
	return 0, &DistributionError{TransitionID: t.ID, Retries: cp.maxRetries + 1}
}

// settleInputPlaces performs the post-firing accounting for the input
// places of t: pop the earliest reservation, record the occupancy window,
// re-reserve at the current clock, and give the capacity unit back.
func (cp *CaseProcess) settleInputPlaces(t *petri.Transition) error {
	for _, arc := range cp.net.InputArcs(t.ID) {
		t0, err := cp.pool.PopEarliest(arc.Source)
		if err != nil {
			return err
		}
		if cp.clock-t0 > 0 {
			cp.placeBusy.Record(arc.Source, t0, cp.clock)
		}
		cp.pool.Reserve(arc.Source, cp.clock)
		// Only a unit this case actually holds goes back. A case that
		// proceeded after waiting out a full place never acquired one,
		// so it has nothing to give back.
		if cp.holds[arc.Source] > 0 {
			if err := cp.pool.Release(arc.Source); err != nil {
				return err
			}
			cp.holds[arc.Source]--
		}
	}
	return nil
}

// finalize computes the case duration, gives back any capacity units still
// held, and reports the finished case. A dead case (nothing enabled, final
// marking unreached) ends here with duration 0 rather than hanging.
func (cp *CaseProcess) finalize() (Yield, error) {
	for placeID, n := range cp.holds {
		for i := 0; i < n; i++ {
			if err := cp.pool.Release(placeID); err != nil {
				return Yield{}, err
			}
		}
		delete(cp.holds, placeID)
	}

	duration := 0.0
	if len(cp.trace) >= 2 {
		duration = cp.trace[len(cp.trace)-1].Timestamp - cp.trace[0].Timestamp
	}
	logrus.Debugf("case %d finished at %.3f with %d events", cp.id, cp.clock, len(cp.trace))
	return Yield{
		Done: true,
		Result: &CaseResult{
			CaseID:   cp.id,
			Trace:    cp.trace,
			Duration: duration,
		},
	}, nil
}
