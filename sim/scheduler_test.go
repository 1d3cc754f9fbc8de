package sim

import (
	"container/heap"
	"testing"
)

func entryFor(time float64, id int) schedulerEntry {
	return schedulerEntry{time: time, proc: &CaseProcess{id: id}}
}

func TestRunQueue_OrdersByTime(t *testing.T) {
	q := make(runQueue, 0)
	heap.Push(&q, entryFor(9, 0))
	heap.Push(&q, entryFor(1, 1))
	heap.Push(&q, entryFor(4, 2))

	want := []float64{1, 4, 9}
	for i, wt := range want {
		e := heap.Pop(&q).(schedulerEntry)
		if e.time != wt {
			t.Fatalf("pop %d: time = %v, want %v", i, e.time, wt)
		}
	}
}

func TestRunQueue_TiesBreakByCaseID(t *testing.T) {
	q := make(runQueue, 0)
	heap.Push(&q, entryFor(5, 3))
	heap.Push(&q, entryFor(5, 1))
	heap.Push(&q, entryFor(5, 2))

	want := []int{1, 2, 3}
	for i, wid := range want {
		e := heap.Pop(&q).(schedulerEntry)
		if e.proc.ID() != wid {
			t.Fatalf("pop %d: case id = %d, want %d", i, e.proc.ID(), wid)
		}
	}
}

// The scheduler must always resume the globally smallest pending entry:
// with staggered starts and long durations, early cases yield far-future
// times and later cases get resumed in between.
func TestScheduler_GlobalVirtualTimeOrder(t *testing.T) {
	net, initial, final, smap := lineNet(t, 10, 0)
	result := mustRun(t, net, initial, final, smap, Config{
		NumCases:         3,
		CaseArrivalRatio: 1,
	})

	if len(result.Log) != 3 {
		t.Fatalf("finished cases = %d, want 3", len(result.Log))
	}
	// The contended capacity-1 place serializes the cases, so their first
	// activities must complete in strictly increasing virtual time.
	prev := -1.0
	for _, c := range result.Log {
		if len(c.Trace) == 0 {
			t.Fatalf("case %d recorded no events", c.CaseID)
		}
		if c.Trace[0].Timestamp <= prev {
			t.Fatalf("case %d first event at %v, not after %v", c.CaseID, c.Trace[0].Timestamp, prev)
		}
		prev = c.Trace[0].Timestamp
	}
}

func TestScheduler_EmptyProcessListTerminates(t *testing.T) {
	s := NewScheduler()
	if err := s.Run(nil, NewResultAggregator()); err != nil {
		t.Fatalf("running an empty scheduler: %v", err)
	}
}
