package petri

import (
	"testing"
)

// seqNet builds p0 -> a -> p1 -> b -> p2.
func seqNet(t *testing.T) *Net {
	t.Helper()
	n := NewNet()
	n.AddPlace("p0")
	n.AddPlace("p1")
	n.AddPlace("p2")
	n.AddTransition("a", "A")
	n.AddTransition("b", "B")
	for _, arc := range [][2]string{{"p0", "a"}, {"a", "p1"}, {"p1", "b"}, {"b", "p2"}} {
		if _, err := n.AddArc(arc[0], arc[1], 1); err != nil {
			t.Fatal(err)
		}
	}
	return n
}

func TestEnabled_SequentialNet(t *testing.T) {
	n := seqNet(t)
	m := NewMarking(map[string]int{"p0": 1})

	enabled := n.Enabled(m)
	if len(enabled) != 1 || enabled[0].ID != "a" {
		t.Fatalf("enabled = %v, want [a]", enabled)
	}
}

func TestFire_MovesToken(t *testing.T) {
	n := seqNet(t)
	m := NewMarking(map[string]int{"p0": 1})

	if err := n.Fire(n.Transitions["a"], m); err != nil {
		t.Fatal(err)
	}
	if m["p0"] != 0 || m["p1"] != 1 {
		t.Errorf("marking after firing a = %v, want {p1: 1}", m)
	}
	if _, present := m["p0"]; present {
		t.Errorf("empty place p0 should be absent from the marking")
	}
}

func TestFire_NotEnabled(t *testing.T) {
	n := seqNet(t)
	m := NewMarking(map[string]int{"p0": 1})

	if err := n.Fire(n.Transitions["b"], m); err == nil {
		t.Fatal("firing a disabled transition should fail")
	}
}

func TestFire_ArcWeights(t *testing.T) {
	n := NewNet()
	n.AddPlace("in")
	n.AddPlace("out")
	n.AddTransition("t", "T")
	if _, err := n.AddArc("in", "t", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := n.AddArc("t", "out", 3); err != nil {
		t.Fatal(err)
	}

	m := NewMarking(map[string]int{"in": 1})
	if n.IsEnabled(n.Transitions["t"], m) {
		t.Fatal("one token should not enable a weight-2 input arc")
	}

	m = NewMarking(map[string]int{"in": 2})
	if err := n.Fire(n.Transitions["t"], m); err != nil {
		t.Fatal(err)
	}
	if m["out"] != 3 {
		t.Errorf("out tokens = %d, want 3", m["out"])
	}
}

func TestEnabled_DeterministicOrder(t *testing.T) {
	n := NewNet()
	n.AddPlace("p")
	// Insert out of order; Enabled must come back sorted by ID.
	n.AddTransition("c", "")
	n.AddTransition("a", "")
	n.AddTransition("b", "")
	for _, id := range []string{"a", "b", "c"} {
		if _, err := n.AddArc("p", id, 1); err != nil {
			t.Fatal(err)
		}
	}

	m := NewMarking(map[string]int{"p": 1})
	enabled := n.Enabled(m)
	if len(enabled) != 3 {
		t.Fatalf("enabled count = %d, want 3", len(enabled))
	}
	for i, want := range []string{"a", "b", "c"} {
		if enabled[i].ID != want {
			t.Errorf("enabled[%d] = %s, want %s", i, enabled[i].ID, want)
		}
	}
}

func TestAddArc_RejectsBadEndpoints(t *testing.T) {
	n := NewNet()
	n.AddPlace("p")
	n.AddPlace("q")
	n.AddTransition("t", "")

	if _, err := n.AddArc("p", "q", 1); err == nil {
		t.Error("place-to-place arc should be rejected")
	}
	if _, err := n.AddArc("t", "missing", 1); err == nil {
		t.Error("arc to unknown node should be rejected")
	}
}

func TestMarking_Geq(t *testing.T) {
	m := NewMarking(map[string]int{"p": 2, "q": 1})

	if !m.Geq(NewMarking(map[string]int{"p": 1})) {
		t.Error("m should cover {p:1}")
	}
	if !m.Geq(NewMarking(map[string]int{"p": 2, "q": 1})) {
		t.Error("m should cover itself")
	}
	if m.Geq(NewMarking(map[string]int{"p": 3})) {
		t.Error("m should not cover {p:3}")
	}
	if m.Geq(Marking{}) {
		t.Error("empty final marking should never be considered reached")
	}
}

func TestMarking_CopyIsIndependent(t *testing.T) {
	m := NewMarking(map[string]int{"p": 1})
	c := m.Copy()
	c["p"] = 5
	if m["p"] != 1 {
		t.Errorf("mutating the copy changed the original: %v", m)
	}
}
