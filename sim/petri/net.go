// Package petri implements the Petri net structures the playout engine
// simulates over: places, transitions, weighted arcs, and markings.
// Net construction (import from PNML, discovery, etc.) happens upstream;
// this package only has to make the token game cheap and deterministic.
package petri

import (
	"fmt"
	"sort"
)

// Place is a state holder in the net. Tokens in a place are counted by the
// Marking, not stored on the Place itself.
type Place struct {
	ID    string
	Label string // optional display label; ID is the identity
}

// Transition is an event that can fire when its input places hold enough
// tokens. An empty Label marks a silent (internal) transition: firing it
// produces no event in the simulated trace.
type Transition struct {
	ID    string
	Label string
}

// Silent reports whether the transition carries no activity label.
func (t *Transition) Silent() bool {
	return t.Label == ""
}

// Arc connects a place to a transition or a transition to a place.
// Weight is the number of tokens consumed or produced (>= 1).
type Arc struct {
	Source string
	Target string
	Weight int
}

// Net is a complete Petri net. Input/output arcs per transition are indexed
// at construction time so the simulation loop never scans the arc list.
type Net struct {
	Places      map[string]*Place
	Transitions map[string]*Transition
	Arcs        []*Arc

	inArcs  map[string][]*Arc // transition ID -> arcs whose Target is the transition
	outArcs map[string][]*Arc // transition ID -> arcs whose Source is the transition

	sortedTransitions []*Transition // ascending ID, rebuilt lazily
}

// NewNet creates an empty net.
func NewNet() *Net {
	return &Net{
		Places:      make(map[string]*Place),
		Transitions: make(map[string]*Transition),
		inArcs:      make(map[string][]*Arc),
		outArcs:     make(map[string][]*Arc),
	}
}

// AddPlace adds a place with the given ID. The label defaults to the ID.
func (n *Net) AddPlace(id string) *Place {
	p := &Place{ID: id, Label: id}
	n.Places[id] = p
	return p
}

// AddTransition adds a transition. label may be empty for a silent transition.
func (n *Net) AddTransition(id, label string) *Transition {
	t := &Transition{ID: id, Label: label}
	n.Transitions[id] = t
	n.sortedTransitions = nil
	return t
}

// AddArc connects source to target with the given weight (0 defaults to 1).
// Exactly one endpoint must be a place and the other a transition.
func (n *Net) AddArc(source, target string, weight int) (*Arc, error) {
	if weight <= 0 {
		weight = 1
	}
	_, srcPlace := n.Places[source]
	_, srcTrans := n.Transitions[source]
	_, tgtPlace := n.Places[target]
	_, tgtTrans := n.Transitions[target]
	switch {
	case srcPlace && tgtTrans:
		a := &Arc{Source: source, Target: target, Weight: weight}
		n.Arcs = append(n.Arcs, a)
		n.inArcs[target] = append(n.inArcs[target], a)
		return a, nil
	case srcTrans && tgtPlace:
		a := &Arc{Source: source, Target: target, Weight: weight}
		n.Arcs = append(n.Arcs, a)
		n.outArcs[source] = append(n.outArcs[source], a)
		return a, nil
	default:
		return nil, fmt.Errorf("arc %s -> %s: endpoints must be one known place and one known transition", source, target)
	}
}

// InputArcs returns the arcs feeding the given transition.
func (n *Net) InputArcs(transitionID string) []*Arc {
	return n.inArcs[transitionID]
}

// OutputArcs returns the arcs leaving the given transition.
func (n *Net) OutputArcs(transitionID string) []*Arc {
	return n.outArcs[transitionID]
}

// IsEnabled reports whether t can fire under m.
func (n *Net) IsEnabled(t *Transition, m Marking) bool {
	for _, a := range n.inArcs[t.ID] {
		if m[a.Source] < a.Weight {
			return false
		}
	}
	return true
}

// Enabled returns all transitions enabled under m, in ascending ID order so
// that the weighted pick downstream stays reproducible for a fixed seed.
func (n *Net) Enabled(m Marking) []*Transition {
	if n.sortedTransitions == nil {
		n.sortedTransitions = make([]*Transition, 0, len(n.Transitions))
		for _, t := range n.Transitions {
			n.sortedTransitions = append(n.sortedTransitions, t)
		}
		sort.Slice(n.sortedTransitions, func(i, j int) bool {
			return n.sortedTransitions[i].ID < n.sortedTransitions[j].ID
		})
	}
	var enabled []*Transition
	for _, t := range n.sortedTransitions {
		if n.IsEnabled(t, m) {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// Fire mutates m by firing t: input-arc weights are removed from input
// places, output-arc weights added to output places.
func (n *Net) Fire(t *Transition, m Marking) error {
	if !n.IsEnabled(t, m) {
		return fmt.Errorf("transition %s is not enabled", t.ID)
	}
	for _, a := range n.inArcs[t.ID] {
		m[a.Source] -= a.Weight
		if m[a.Source] == 0 {
			delete(m, a.Source)
		}
	}
	for _, a := range n.outArcs[t.ID] {
		m[a.Target] += a.Weight
	}
	return nil
}
