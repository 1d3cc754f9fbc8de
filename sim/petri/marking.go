package petri

// Marking assigns token counts to places by place ID. Places with zero
// tokens are absent from the map.
type Marking map[string]int

// NewMarking builds a marking from place ID -> token count pairs,
// dropping non-positive counts.
func NewMarking(tokens map[string]int) Marking {
	m := make(Marking, len(tokens))
	for id, n := range tokens {
		if n > 0 {
			m[id] = n
		}
	}
	return m
}

// Copy returns an independent copy of the marking.
func (m Marking) Copy() Marking {
	c := make(Marking, len(m))
	for id, n := range m {
		c[id] = n
	}
	return c
}

// Geq reports whether m covers other: every place in other holds at least
// as many tokens in m. Final-marking detection uses this rather than strict
// equality, so surplus tokens elsewhere do not keep a case alive forever.
func (m Marking) Geq(other Marking) bool {
	if len(other) == 0 {
		return false
	}
	for id, n := range other {
		if m[id] < n {
			return false
		}
	}
	return true
}

// Total returns the total token count across all places.
func (m Marking) Total() int {
	sum := 0
	for _, n := range m {
		sum += n
	}
	return sum
}
