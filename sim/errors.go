package sim

import "fmt"

// DistributionError reports a duration distribution that kept producing
// negative samples past the bounded retry budget. The run is aborted rather
// than spinning on the resample loop.
type DistributionError struct {
	TransitionID string
	Retries      int
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("distribution for transition %s produced negative durations for %d consecutive samples", e.TransitionID, e.Retries)
}

// InvariantViolation reports resource-pool accounting gone wrong: a release
// past a place's capacity, or reservation-queue access on an empty queue.
// It always indicates a bug in the net or the engine, never bad luck.
type InvariantViolation struct {
	PlaceID string
	Reason  string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation at place %s: %s", e.PlaceID, e.Reason)
}

// EmptyResultError is returned when a finished run recorded no events at
// all, leaving span and median undefined.
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string {
	return "simulation produced no events; span and median are undefined"
}
