package set

import "testing"

func TestAddDiscardContains(t *testing.T) {
	s := Of(1, 2, 3)
	if !s.Contains(2) {
		t.Fatalf("Contains(2) = false, want true")
	}
	s2 := s.Discard(2)
	if s2.Contains(2) {
		t.Fatalf("Discard(2) left 2 in the set")
	}
	if s2.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s2.Len())
	}
}

func TestAddNoopIsIdentity(t *testing.T) {
	s := Of(1, 2, 3)
	if got := s.Add(2); got != s {
		t.Fatalf("Add of an existing element should return the same pointer")
	}
}

// collider has no String method, so pcore's scalar hash fallback gives
// every instance the same signature; distinctness still comes from the
// guarded == in pcore.Equal. This forces every collider into the same
// chain regardless of its field, exercising the collision-chain path.
type collider struct{ n int }

func TestCollisionChainPreservesInsertionOrder(t *testing.T) {
	// A forced hash collision chain: insertion order should survive a
	// discard-and-reinsert of the middle element.
	a, b, c := collider{1}, collider{2}, collider{3}
	s := Of(a, b, c)
	vals := collect(s)
	if len(vals) != 3 || vals[0] != a || vals[1] != b || vals[2] != c {
		t.Fatalf("insertion order not preserved: %v", vals)
	}

	s2 := s.Discard(b).Add(b)
	vals2 := collect(s2)
	if len(vals2) != 3 || vals2[0] != a || vals2[1] != c || vals2[2] != b {
		t.Fatalf("discard+reinsert should move b to the tail: %v", vals2)
	}
}

func collect(s *Set) []any {
	var out []any
	for v := range s.Iter() {
		out = append(out, v)
	}
	return out
}

func TestUnionIntersectionDifference(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(2, 3, 4)
	if u := a.Union(b); u.Len() != 4 {
		t.Fatalf("Union len = %d, want 4", u.Len())
	}
	if i := a.Intersection(b); i.Len() != 2 || !i.Contains(2) || !i.Contains(3) {
		t.Fatalf("Intersection wrong: %v", collect(i))
	}
	if d := a.Difference(b); d.Len() != 1 || !d.Contains(1) {
		t.Fatalf("Difference wrong: %v", collect(d))
	}
	if sd := a.SymmetricDifference(b); sd.Len() != 2 || !sd.Contains(1) || !sd.Contains(4) {
		t.Fatalf("SymmetricDifference wrong: %v", collect(sd))
	}
}

func TestSubsetSupersetDisjoint(t *testing.T) {
	a := Of(1, 2)
	b := Of(1, 2, 3)
	if !a.IsSubset(b) {
		t.Fatalf("a should be a subset of b")
	}
	if !b.IsSuperset(a) {
		t.Fatalf("b should be a superset of a")
	}
	if a.IsDisjoint(b) {
		t.Fatalf("a and b share elements, should not be disjoint")
	}
	if !Of(5, 6).IsDisjoint(Of(7, 8)) {
		t.Fatalf("disjoint sets reported as overlapping")
	}
}

func TestEqIgnoresInsertionOrder(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(3, 2, 1)
	if !a.Eq(b) {
		t.Fatalf("sets with the same elements in different insertion order should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("equal sets should hash equal regardless of insertion order")
	}
}

func TestTransientVersionTrap(t *testing.T) {
	tr := Of(1, 2, 3).Transient()
	err := tr.ForEach(func(v any) bool {
		tr.Add(99)
		return true
	})
	if err == nil {
		t.Fatalf("mutating a set transient during ForEach should fail")
	}
}

func TestPopEmptyFails(t *testing.T) {
	if _, _, err := Empty().Pop(); err == nil {
		t.Fatalf("Pop on empty set should fail")
	}
}

func TestTransientPersistentIdentityWhenUnmutated(t *testing.T) {
	p := Of(1, 2, 3)
	q := p.Transient().Persistent()
	if q != p {
		t.Fatalf("round-tripping through Transient without mutation should return the same pointer")
	}
}
