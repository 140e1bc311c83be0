package list

import "testing"

func rangeList(n int) *List {
	items := make([]any, n)
	for i := range items {
		items[i] = i
	}
	return Of(items...)
}

func TestSetNoopIsIdentity(t *testing.T) {
	p := rangeList(10)
	v, err := p.Get(5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	q, err := p.Set(5, v)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if q != p {
		t.Fatalf("Set with identical value should return the same pointer")
	}
}

func TestDeleteReindexChoice(t *testing.T) {
	// Deleting near the front shifts the right side (start unchanged);
	// deleting near the back shifts the left side (start bumped by one).
	p := rangeList(10)

	q, err := p.Delete(2)
	if err != nil {
		t.Fatalf("Delete(2): %v", err)
	}
	want := []int{0, 1, 3, 4, 5, 6, 7, 8, 9}
	for i, w := range want {
		v, err := q.Get(i)
		if err != nil || v.(int) != w {
			t.Fatalf("q.Get(%d) = %v, %v; want %d", i, v, err, w)
		}
	}
	if q.start != p.start {
		t.Fatalf("deleting near the front should leave start unchanged: got %d want %d", q.start, p.start)
	}

	r, err := p.Delete(7)
	if err != nil {
		t.Fatalf("Delete(7): %v", err)
	}
	if r.start != p.start+1 {
		t.Fatalf("deleting near the back should bump start by one: got %d want %d", r.start, p.start+1)
	}
}

func TestAppendPrependGetLen(t *testing.T) {
	l := Empty()
	l = l.Append(1).Append(2).Prepend(0)
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	for i, want := range []int{0, 1, 2} {
		v, err := l.Get(i)
		if err != nil || v.(int) != want {
			t.Fatalf("Get(%d) = %v, %v; want %d", i, v, err, want)
		}
	}
}

func TestNegativeIndexWraps(t *testing.T) {
	l := rangeList(5)
	v, err := l.Get(-1)
	if err != nil || v.(int) != 4 {
		t.Fatalf("Get(-1) = %v, %v; want 4", v, err)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	l := rangeList(3)
	if _, err := l.Get(3); err == nil {
		t.Fatalf("Get(3) on length-3 list should fail")
	}
	if _, err := l.Get(-4); err == nil {
		t.Fatalf("Get(-4) on length-3 list should fail")
	}
}

func TestInsertAndDeleteRoundTrip(t *testing.T) {
	l := rangeList(5)
	l2, err := l.Insert(2, 99)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if l2.Len() != 6 {
		t.Fatalf("Len() after insert = %d, want 6", l2.Len())
	}
	v, _ := l2.Get(2)
	if v.(int) != 99 {
		t.Fatalf("Get(2) after insert = %v, want 99", v)
	}
	l3, err := l2.Delete(2)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !l3.Eq(l) {
		t.Fatalf("insert then delete at the same index should round-trip: %v vs %v", l3, l)
	}
}

func TestConcatEmptyShortCircuit(t *testing.T) {
	l := rangeList(3)
	if got := l.Concat(Empty()); got != l {
		t.Fatalf("Concat(Empty()) should return self")
	}
	if got := Empty().Concat(l); got != l {
		t.Fatalf("Empty().Concat(l) should return l")
	}
}

func TestMultiply(t *testing.T) {
	l := Of(1, 2)
	m, err := l.Multiply(3)
	if err != nil {
		t.Fatalf("Multiply: %v", err)
	}
	if m.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", m.Len())
	}
	if _, err := l.Multiply("three"); err == nil {
		t.Fatalf("Multiply with a non-integer should fail with type mismatch")
	}
	if z, err := l.Multiply(0); err != nil || z.Len() != 0 {
		t.Fatalf("Multiply(0) should return an empty list, got %v, %v", z, err)
	}
}

func TestTransientPersistentIdentityWhenUnmutated(t *testing.T) {
	p := rangeList(5)
	q := p.Transient().Persistent()
	if q != p {
		t.Fatalf("round-tripping through Transient without mutation should return the same pointer")
	}
}

func TestMutatedTransientFreezesToNewList(t *testing.T) {
	p := rangeList(5)
	tr := p.Transient()
	tr.Append(5)
	q := tr.Persistent()
	if q == p {
		t.Fatalf("mutated transient must not alias the original persistent value")
	}
	if q.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", q.Len())
	}
}

func TestEqualityAcrossPeers(t *testing.T) {
	p := Of(1, 2, 3)
	tr := p.Transient()
	native := []any{1, 2, 3}
	if !p.Eq(tr) {
		t.Fatalf("persistent list should equal its transient snapshot")
	}
	if !p.Eq(native) {
		t.Fatalf("persistent list should equal an equal native slice")
	}
}

func TestSortAndReverse(t *testing.T) {
	l := Of(3, 1, 2)
	sorted := l.Sort(func(a, b any) bool { return a.(int) < b.(int) }, false)
	want := []int{1, 2, 3}
	for i, w := range want {
		v, _ := sorted.Get(i)
		if v.(int) != w {
			t.Fatalf("Sort()[%d] = %v, want %d", i, v, w)
		}
	}
	rev := l.Reverse()
	wantRev := []int{2, 1, 3}
	for i, w := range wantRev {
		v, _ := rev.Get(i)
		if v.(int) != w {
			t.Fatalf("Reverse()[%d] = %v, want %d", i, v, w)
		}
	}
}
