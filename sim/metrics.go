// End-of-run reporting over a SimulationResult: duration statistics and
// per-place/transition occupancy derived from the interval stores.
package sim

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates statistics about a finished playout for final
// reporting. Useful for spotting bottleneck places without parsing the
// full interval stores.
type Summary struct {
	Cases          int
	Events         int
	MeanDuration   float64
	MedianDuration float64
	P90Duration    float64
	TotalSpan      float64

	// PlaceUtilization is busy time / total span per place, in recording
	// key order. Values above 1 are possible for places with capacity > 1.
	PlaceUtilization map[string]float64

	// TransitionBusyTime is the summed execution time per transition name.
	TransitionBusyTime map[string]float64
}

// Summarize computes a Summary from a SimulationResult.
func Summarize(result *SimulationResult) *Summary {
	s := &Summary{
		Cases:              len(result.Log),
		MedianDuration:     result.MedianCaseDuration,
		TotalSpan:          result.TotalSpan,
		PlaceUtilization:   make(map[string]float64),
		TransitionBusyTime: make(map[string]float64),
	}
	for _, c := range result.Log {
		s.Events += len(c.Trace)
	}

	sorted := make([]float64, len(result.CaseDurations))
	copy(sorted, result.CaseDurations)
	sort.Float64s(sorted)
	if len(sorted) > 0 {
		s.MeanDuration = stat.Mean(sorted, nil)
		s.P90Duration = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	}

	for _, key := range result.PlaceBusy.Keys() {
		if result.TotalSpan > 0 {
			s.PlaceUtilization[key] = result.PlaceBusy.BusyTime(key) / result.TotalSpan
		}
	}
	for _, key := range result.TransitionBusy.Keys() {
		s.TransitionBusyTime[key] = result.TransitionBusy.BusyTime(key)
	}
	return s
}

// Print writes the summary in a human-readable table.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Playout Summary ===")
	fmt.Fprintf(w, "Cases               : %d\n", s.Cases)
	fmt.Fprintf(w, "Events              : %d\n", s.Events)
	fmt.Fprintf(w, "Mean case duration  : %.3f\n", s.MeanDuration)
	fmt.Fprintf(w, "Median case duration: %.3f\n", s.MedianDuration)
	fmt.Fprintf(w, "P90 case duration   : %.3f\n", s.P90Duration)
	fmt.Fprintf(w, "Total span          : %.3f\n", s.TotalSpan)

	if len(s.PlaceUtilization) > 0 {
		fmt.Fprintln(w, "--- Place utilization ---")
		keys := make([]string, 0, len(s.PlaceUtilization))
		for k := range s.PlaceUtilization {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %-20s %.3f\n", k, s.PlaceUtilization[k])
		}
	}
	if len(s.TransitionBusyTime) > 0 {
		fmt.Fprintln(w, "--- Transition busy time ---")
		keys := make([]string, 0, len(s.TransitionBusyTime))
		for k := range s.TransitionBusyTime {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %-20s %.3f\n", k, s.TransitionBusyTime[k])
		}
	}
}
