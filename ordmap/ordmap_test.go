package ordmap

import "testing"

func rangeMap(n int) *Map {
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i] = Pair{Key: i, Value: i * i}
	}
	return Of(pairs...)
}

func TestSetGetContains(t *testing.T) {
	m := Of(Pair{"a", 1}, Pair{"b", 2})
	v, err := m.Get("a")
	if err != nil || v.(int) != 1 {
		t.Fatalf("Get(a) = %v, %v; want 1", v, err)
	}
	if !m.Contains("b") {
		t.Fatalf("Contains(b) = false, want true")
	}
	if _, err := m.Get("z"); err == nil {
		t.Fatalf("Get(z) on absent key should fail")
	}
}

func TestRebindPreservesPosition(t *testing.T) {
	m := Of(Pair{"a", 1}, Pair{"b", 2}, Pair{"c", 3})
	m2 := m.Set("a", 99)
	var keys []any
	for p := range m2.Items() {
		keys = append(keys, p.Key)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("rebinding an existing key should not move it: %v", keys)
	}
	v, _ := m2.Get("a")
	if v.(int) != 99 {
		t.Fatalf("Get(a) after rebind = %v, want 99", v)
	}
}

func TestDropDeleteDefault(t *testing.T) {
	m := Of(Pair{"a", 1}, Pair{"b", 2})
	m2 := m.Drop("z")
	if m2 != m {
		t.Fatalf("Drop of an absent key should return the same pointer")
	}
	if _, err := m.Delete("z"); err == nil {
		t.Fatalf("Delete of an absent key should fail")
	}
	m3, err := m.Delete("a")
	if err != nil || m3.Contains("a") {
		t.Fatalf("Delete(a) failed to remove: %v, %v", m3, err)
	}
}

func TestPopItemLIFO(t *testing.T) {
	m := Of(Pair{"a", 1}, Pair{"b", 2}, Pair{"c", 3})
	m2, p, err := m.PopItem()
	if err != nil {
		t.Fatalf("PopItem: %v", err)
	}
	if p.Key != "c" {
		t.Fatalf("PopItem should return the most recently inserted entry, got %v", p.Key)
	}
	if m2.Contains("c") {
		t.Fatalf("PopItem left c bound")
	}
	if _, _, err := Empty().PopItem(); err == nil {
		t.Fatalf("PopItem on empty mapping should fail")
	}
}

func TestSetDefaultPointerIdentityShortcut(t *testing.T) {
	m := Of(Pair{"a", 1})
	if got := m.SetDefault("a", 999); got != m {
		t.Fatalf("SetDefault on a present key should return the same pointer")
	}
	m2 := m.SetDefault("b", 2)
	v, _ := m2.Get("b")
	if v.(int) != 2 {
		t.Fatalf("SetDefault should bind the default for an absent key")
	}
}

func TestUpdate(t *testing.T) {
	a := Of(Pair{"x", 1}, Pair{"y", 2})
	b := Of(Pair{"y", 20}, Pair{"z", 3})
	merged := a.Update(b)
	if merged.Len() != 3 {
		t.Fatalf("Update len = %d, want 3", merged.Len())
	}
	v, _ := merged.Get("y")
	if v.(int) != 20 {
		t.Fatalf("Update should let later values win: got %v", v)
	}
}

func TestEqIgnoresInsertionOrder(t *testing.T) {
	a := Of(Pair{"x", 1}, Pair{"y", 2})
	b := Of(Pair{"y", 2}, Pair{"x", 1})
	if !a.Eq(b) {
		t.Fatalf("maps with the same bindings in different insertion order should be equal")
	}
}

func TestTransientOverwriteDuringIterationDoesNotFail(t *testing.T) {
	// Overwriting an existing key's value mid-iteration is not a
	// structural mutation and must not trip the version trap, unlike
	// adding or removing a key.
	tr := Of(Pair{"a", 1}, Pair{"b", 2}, Pair{"c", 3}).Transient()
	err := tr.ForEach(func(p Pair) bool {
		if p.Key == "a" {
			tr.Set("a", 100)
		}
		return true
	})
	if err != nil {
		t.Fatalf("overwriting an existing key during ForEach should not fail: %v", err)
	}
	v, _ := tr.Get("a")
	if v.(int) != 100 {
		t.Fatalf("overwrite during iteration did not take effect: %v", v)
	}
}

func TestTransientAddDuringIterationFails(t *testing.T) {
	tr := Of(Pair{"a", 1}, Pair{"b", 2}).Transient()
	err := tr.ForEach(func(p Pair) bool {
		tr.Set("new", 0)
		return true
	})
	if err == nil {
		t.Fatalf("adding a new key during ForEach should fail")
	}
}

func TestTransientPersistentIdentityWhenUnmutated(t *testing.T) {
	p := rangeMap(5)
	q := p.Transient().Persistent()
	if q != p {
		t.Fatalf("round-tripping through Transient without mutation should return the same pointer")
	}
}

func TestPersistentSharingAfterNoopSet(t *testing.T) {
	// Rebinding a key to the value it already holds is a no-op edit and
	// returns the original map pointer.
	p := Of(Pair{"a", 1}, Pair{"b", 2})
	v, _ := p.Get("a")
	q := p.Set("a", v)
	if q != p {
		t.Fatalf("a no-op Set must return the original map")
	}
}
