package sim

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/playout-sim/playout-sim/sim/petri"
)

// placeState is the simulation-side state of one place: a bounded counting
// semaphore plus the FIFO-by-timestamp reservation queue. It lives in the
// pool's own map, never on the net's structural objects, so the same net
// can back many runs.
type placeState struct {
	capacity     int
	available    int
	reservations []float64 // ascending
}

// ResourcePool models every place as a bounded counting semaphore with a
// FIFO reservation queue. All mutation happens from the single scheduler
// thread, so no locking is needed.
type ResourcePool struct {
	places map[string]*placeState
}

// DefaultCapacity is assumed for any place absent from the capacity map.
const DefaultCapacity = 1

// NewResourcePool builds the pool for all places of the net. capacities may
// be nil; entries <= 0 are ignored.
func NewResourcePool(net *petri.Net, capacities map[string]int) *ResourcePool {
	pool := &ResourcePool{places: make(map[string]*placeState, len(net.Places))}
	for id := range net.Places {
		cap := DefaultCapacity
		if c, ok := capacities[id]; ok && c > 0 {
			cap = c
		}
		pool.places[id] = &placeState{capacity: cap, available: cap}
	}
	return pool
}

func (rp *ResourcePool) state(placeID string) *placeState {
	ps, ok := rp.places[placeID]
	if !ok {
		// Unknown places should have been rejected at net construction.
		logrus.Warnf("resource pool: unknown place %q, registering with default capacity", placeID)
		ps = &placeState{capacity: DefaultCapacity, available: DefaultCapacity}
		rp.places[placeID] = ps
	}
	return ps
}

// Acquire takes one capacity unit of the place if any is available.
func (rp *ResourcePool) Acquire(placeID string) bool {
	ps := rp.state(placeID)
	if ps.available > 0 {
		ps.available--
		return true
	}
	return false
}

// Release returns one capacity unit. Releasing past the configured capacity
// means the accounting went wrong somewhere and aborts the run.
func (rp *ResourcePool) Release(placeID string) error {
	ps := rp.state(placeID)
	if ps.available >= ps.capacity {
		return &InvariantViolation{PlaceID: placeID, Reason: "release would exceed capacity"}
	}
	ps.available++
	return nil
}

// Reserve inserts ts into the place's reservation queue, keeping it sorted
// ascending.
func (rp *ResourcePool) Reserve(placeID string, ts float64) {
	ps := rp.state(placeID)
	i := sort.SearchFloat64s(ps.reservations, ts)
	ps.reservations = append(ps.reservations, 0)
	copy(ps.reservations[i+1:], ps.reservations[i:])
	ps.reservations[i] = ts
}

// PopEarliest removes and returns the smallest queued reservation timestamp.
func (rp *ResourcePool) PopEarliest(placeID string) (float64, error) {
	ps := rp.state(placeID)
	if len(ps.reservations) == 0 {
		return 0, &InvariantViolation{PlaceID: placeID, Reason: "pop on empty reservation queue"}
	}
	ts := ps.reservations[0]
	ps.reservations = ps.reservations[1:]
	return ts, nil
}

// EarliestReservation peeks at the smallest queued timestamp without
// removing it. Returns false if the queue is empty.
func (rp *ResourcePool) EarliestReservation(placeID string) (float64, bool) {
	ps := rp.state(placeID)
	if len(ps.reservations) == 0 {
		return 0, false
	}
	return ps.reservations[0], true
}

// Available returns the place's currently free capacity units.
func (rp *ResourcePool) Available(placeID string) int {
	return rp.state(placeID).available
}

// Capacity returns the place's configured capacity.
func (rp *ResourcePool) Capacity(placeID string) int {
	return rp.state(placeID).capacity
}
