package sim

import "sort"

// Interval is one occupancy window recorded for a place or transition.
type Interval struct {
	Start float64
	End   float64
}

// Length returns End - Start.
func (iv Interval) Length() float64 {
	return iv.End - iv.Start
}

// IntervalBookkeeper accumulates (start, end) occupancy windows per key.
// It is append-only during a run; analysis happens after the run returns.
// One bookkeeper is kept per key family (place IDs, transition names).
type IntervalBookkeeper struct {
	store map[string][]Interval
}

// NewIntervalBookkeeper creates an empty bookkeeper.
func NewIntervalBookkeeper() *IntervalBookkeeper {
	return &IntervalBookkeeper{store: make(map[string][]Interval)}
}

// Record appends the interval (start, end) under key. Zero-length intervals
// are never recorded.
func (b *IntervalBookkeeper) Record(key string, start, end float64) {
	if start == end {
		return
	}
	b.store[key] = append(b.store[key], Interval{Start: start, End: end})
}

// Intervals returns the recorded intervals for key in recording order.
func (b *IntervalBookkeeper) Intervals(key string) []Interval {
	return b.store[key]
}

// Keys returns all keys with at least one recorded interval, sorted.
func (b *IntervalBookkeeper) Keys() []string {
	keys := make([]string, 0, len(b.store))
	for k := range b.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BusyTime returns the summed length of all intervals recorded for key.
// Overlaps are counted multiply; with place capacities > 1 that is the
// intended occupancy integral.
func (b *IntervalBookkeeper) BusyTime(key string) float64 {
	total := 0.0
	for _, iv := range b.store[key] {
		total += iv.Length()
	}
	return total
}
