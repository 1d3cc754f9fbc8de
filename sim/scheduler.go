package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

// schedulerEntry is one pending case in the run queue.
type schedulerEntry struct {
	time float64
	proc *CaseProcess
}

// runQueue implements heap.Interface ordered by pending time, with
// ascending case id as the deterministic tie-break.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type runQueue []schedulerEntry

func (q runQueue) Len() int { return len(q) }

func (q runQueue) Less(i, j int) bool {
	if q[i].time != q[j].time {
		return q[i].time < q[j].time
	}
	return q[i].proc.ID() < q[j].proc.ID()
}

func (q runQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *runQueue) Push(x any) {
	*q = append(*q, x.(schedulerEntry))
}

func (q *runQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Scheduler drives all case processes to completion in strict
// non-decreasing virtual-time order on a single logical thread. Because
// exactly one process is active at any instant, the resource pool and the
// interval bookkeepers need no locks: mutation is serialized by scheduling
// order.
type Scheduler struct {
	queue runQueue
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{queue: make(runQueue, 0)}
}

// Run seeds the queue with each process's start time and resumes the
// globally smallest (time, case id) entry until every case completes.
// Finished cases are folded into sink. Any process error aborts the run.
func (s *Scheduler) Run(processes []*CaseProcess, sink *ResultAggregator) error {
	for _, p := range processes {
		heap.Push(&s.queue, schedulerEntry{time: p.StartTime(), proc: p})
	}
	for s.queue.Len() > 0 {
		entry := heap.Pop(&s.queue).(schedulerEntry)
		logrus.Debugf("[t=%.3f] resuming case %d", entry.time, entry.proc.ID())
		y, err := entry.proc.Resume()
		if err != nil {
			return err
		}
		if y.Done {
			sink.Add(y.Result)
			continue
		}
		heap.Push(&s.queue, schedulerEntry{time: y.Time, proc: entry.proc})
	}
	return nil
}
