package list

import (
	"github.com/funvibe/persist/errs"
	"github.com/funvibe/persist/internal/hamt"
	"github.com/funvibe/persist/internal/pcore"
)

// Transient is a mutable twin of List. It is built from a persistent
// List in O(1) (sharing its root), mutated destructively, and finalized
// back to a List in O(log n). A Transient must be used from a single
// goroutine.
type Transient struct {
	els     *hamt.Transient
	start   int64
	orig    *List
	version uint64
}

// Transient returns a mutable view of l.
func (l *List) Transient() *Transient {
	return &Transient{els: l.els.Transient(), start: l.start, orig: l}
}

// Len returns the current element count.
func (t *Transient) Len() int { return t.els.Len() }

func (t *Transient) key(i int64) uint64 { return uint64(t.start + i) }

func (t *Transient) rawGet(key uint64) any {
	v, _ := t.els.Get(key)
	return v
}

func (t *Transient) rawSet(key uint64, v any) { t.els.Assoc(key, v) }

// Get returns the element at i, applying the same index rules as List.Get.
func (t *Transient) Get(i int) (any, error) {
	idx, ok := normIndex(i, t.Len())
	if !ok {
		return nil, errs.IndexOutOfRange("index %d out of range for list of length %d", i, t.Len())
	}
	return t.rawGet(t.key(int64(idx))), nil
}

func (t *Transient) touch() { t.orig = nil; t.version++ }

// Set! mutates index i in place.
func (t *Transient) Set(i int, v any) error {
	idx, ok := normIndex(i, t.Len())
	if !ok {
		return errs.IndexOutOfRange("index %d out of range for list of length %d", i, t.Len())
	}
	t.rawSet(t.key(int64(idx)), v)
	t.touch()
	return nil
}

// Append! mutates v onto the end in place.
func (t *Transient) Append(v any) {
	t.rawSet(t.key(int64(t.Len())), v)
	t.touch()
}

// Prepend! mutates v onto the front in place.
func (t *Transient) Prepend(v any) {
	t.start--
	t.rawSet(t.start, v)
	t.touch()
}

// Extend! appends every element of other in order.
func (t *Transient) Extend(other *List) {
	for i := 0; i < other.Len(); i++ {
		v, _ := other.Get(i)
		t.Append(v)
	}
}

// Insert! mutates v into position i, shifting the shorter side. When the
// elements from i onward are no more than those before i (n-i <= i), they
// shift rightward and start is untouched; otherwise the elements before i
// shift leftward and start is decremented instead.
func (t *Transient) Insert(i int, v any) error {
	n := t.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i > n {
		return errs.IndexOutOfRange("insert index %d out of range for list of length %d", i, n)
	}
	if n-i <= i {
		for j := n - 1; j >= i; j-- {
			t.rawSet(t.key(int64(j+1)), t.rawGet(t.key(int64(j))))
		}
		t.rawSet(t.key(int64(i)), v)
	} else {
		t.start--
		for j := 0; j < i; j++ {
			t.rawSet(t.key(int64(j)), t.rawGet(t.key(int64(j+1))))
		}
		t.rawSet(t.key(int64(i)), v)
	}
	t.touch()
	return nil
}

// Delete! removes the element at i in place. Deleting in the front half
// shifts the elements after i leftward and leaves start untouched;
// deleting in the back half shifts the elements before i rightward and
// bumps start instead.
func (t *Transient) Delete(i int) error {
	n := t.Len()
	idx, ok := normIndex(i, n)
	if !ok {
		return errs.IndexOutOfRange("index %d out of range for list of length %d", i, n)
	}
	rightLen := n - idx - 1
	if idx <= rightLen {
		for j := idx; j < n-1; j++ {
			t.rawSet(t.key(int64(j)), t.rawGet(t.key(int64(j+1))))
		}
		t.els.Dissoc(t.key(int64(n - 1)))
	} else {
		for j := idx; j > 0; j-- {
			t.rawSet(t.key(int64(j)), t.rawGet(t.key(int64(j-1))))
		}
		t.els.Dissoc(t.key(0))
		t.start++
	}
	t.touch()
	return nil
}

// Clear! empties the transient in place.
func (t *Transient) Clear() {
	t.els = hamt.Empty().Transient()
	t.start = 0
	t.touch()
}

// SeqLen and SeqAt implement pcore.Sequence.
func (t *Transient) SeqLen() int { return t.Len() }
func (t *Transient) SeqAt(i int) any {
	v, _ := t.Get(i)
	return v
}

// Persistent finalizes the transient. If no structural mutation happened
// since it was created, the original List is returned unchanged.
func (t *Transient) Persistent() *List {
	if t.orig != nil {
		return t.orig
	}
	return &List{els: t.els.Persistent(), start: t.start}
}

// Freeze is an alias for Persistent, matching the external interface
// table's naming for the transient-to-persistent operation.
func (t *Transient) Freeze() *List { return t.Persistent() }

// Sort! sorts in place by the ordering less imposes; reverse flips it.
func (t *Transient) Sort(less func(a, b any) bool, reverse bool) {
	buf := make([]any, t.Len())
	for i := range buf {
		buf[i], _ = t.Get(i)
	}
	sortSlice(buf, less, reverse)
	for i, v := range buf {
		t.rawSet(t.key(int64(i)), v)
	}
	t.touch()
}

// Reverse! reverses the elements in place.
func (t *Transient) Reverse() {
	n := t.Len()
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		a, b := t.rawGet(t.key(int64(i))), t.rawGet(t.key(int64(j)))
		t.rawSet(t.key(int64(i)), b)
		t.rawSet(t.key(int64(j)), a)
	}
	if n > 1 {
		t.touch()
	}
}

// Eq reports whether other is a *List, *Transient, or []any with the
// same elements in the same order.
func (t *Transient) Eq(other any) bool {
	return pcore.Equal(t, other)
}

// ForEach walks the transient's current elements, stopping early if fn
// returns false. It captures the version counter on entry and fails with
// ErrMutatedDuringIteration the moment a structural mutation (any of the
// "!" methods above) is observed mid-walk.
func (t *Transient) ForEach(fn func(i int, v any) bool) error {
	version := t.version
	for i := 0; i < t.Len(); i++ {
		if t.version != version {
			return errs.MutatedDuringIteration("list transient mutated during iteration")
		}
		if !fn(i, t.rawGet(t.key(int64(i)))) {
			return nil
		}
	}
	return nil
}
