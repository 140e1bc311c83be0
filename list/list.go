// Package list implements a persistent (immutable, structurally shared)
// ordered list and its transient (mutable) twin, both backed by
// internal/hamt.
package list

import (
	"iter"
	"sync/atomic"

	"github.com/funvibe/persist/errs"
	"github.com/funvibe/persist/internal/hamt"
	"github.com/funvibe/persist/internal/pcore"
)

// List is an immutable, structurally shared ordered sequence. The zero
// value is not valid; use Empty or Of.
type List struct {
	els       *hamt.Tree
	start     int64
	hashCache atomic.Pointer[uint64]
}

var empty = &List{els: hamt.Empty()}

// Empty returns the canonical empty list.
func Empty() *List { return empty }

// Of builds a list from items, in order, via a transient append.
func Of(items ...any) *List {
	if len(items) == 0 {
		return empty
	}
	t := empty.Transient()
	for _, v := range items {
		t.Append(v)
	}
	return t.Persistent()
}

// Len returns the number of elements.
func (l *List) Len() int { return l.els.Len() }

func (l *List) key(i int64) uint64 { return uint64(l.start + i) }

func normIndex(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// Get returns the element at i. A negative i wraps once, Python-slice
// style; an index outside [-len, len) fails with ErrIndexOutOfRange.
func (l *List) Get(i int) (any, error) {
	idx, ok := normIndex(i, l.Len())
	if !ok {
		return nil, errs.IndexOutOfRange("index %d out of range for list of length %d", i, l.Len())
	}
	v, _ := l.els.Get(l.key(int64(idx)))
	return v, nil
}

// Set returns a list with index i bound to v. If v is identical to the
// current value at i, l itself is returned unchanged.
func (l *List) Set(i int, v any) (*List, error) {
	idx, ok := normIndex(i, l.Len())
	if !ok {
		return nil, errs.IndexOutOfRange("index %d out of range for list of length %d", i, l.Len())
	}
	if cur, _ := l.els.Get(l.key(int64(idx))); identical(cur, v) {
		return l, nil
	}
	return &List{els: l.els.Assoc(l.key(int64(idx)), v), start: l.start}, nil
}

// Append returns a list with v appended.
func (l *List) Append(v any) *List {
	return &List{els: l.els.Assoc(l.key(int64(l.Len())), v), start: l.start}
}

// Prepend returns a list with v prepended.
func (l *List) Prepend(v any) *List {
	newStart := l.start - 1
	return &List{els: l.els.Assoc(uint64(newStart), v), start: newStart}
}

// Insert returns a list with v inserted before index i (0..Len() valid).
// The shorter side is shifted to minimize how many elements move.
func (l *List) Insert(i int, v any) (*List, error) {
	t := l.Transient()
	if err := t.Insert(i, v); err != nil {
		return nil, err
	}
	return t.Persistent(), nil
}

// Delete returns a list with the element at i removed. If the left side
// (i elements) is no longer than the right side (n-i-1 elements), the
// right side shifts left and start is unchanged; otherwise the left side
// shifts right and start is bumped. The side that moves is therefore the
// longer one, not the shorter one.
func (l *List) Delete(i int) (*List, error) {
	t := l.Transient()
	if err := t.Delete(i); err != nil {
		return nil, err
	}
	return t.Persistent(), nil
}

// Pop removes and returns the element at i (default: the last element).
// More than one index is an arity error.
func (l *List) Pop(i ...int) (*List, any, error) {
	idx := l.Len() - 1
	if len(i) == 1 {
		idx = i[0]
	} else if len(i) > 1 {
		return nil, nil, errs.Arity("pop takes at most one index, got %d", len(i))
	}
	v, err := l.Get(idx)
	if err != nil {
		return nil, nil, err
	}
	newList, err := l.Delete(idx)
	if err != nil {
		return nil, nil, err
	}
	return newList, v, nil
}

// Drop removes the element at i (default: the last element) without
// returning it.
func (l *List) Drop(i ...int) (*List, error) {
	newList, _, err := l.Pop(i...)
	return newList, err
}

// Clear returns the canonical empty list.
func (l *List) Clear() *List { return empty }

// Slice returns a new list built from the Python-style slice
// [start:stop:step]; step may be negative. Endpoints outside the valid
// range are clamped.
func (l *List) Slice(start, stop, step int) (*List, error) {
	if step == 0 {
		return nil, errs.TypeMismatch("slice step cannot be zero")
	}
	n := l.Len()
	start, stop = clampSlice(start, stop, step, n)
	out := empty.Transient()
	if step > 0 {
		for i := start; i < stop; i += step {
			v, _ := l.Get(i)
			out.Append(v)
		}
	} else {
		for i := start; i > stop; i += step {
			v, _ := l.Get(i)
			out.Append(v)
		}
	}
	return out.Persistent(), nil
}

func clampSlice(start, stop, step, n int) (int, int) {
	if step > 0 {
		if start < 0 {
			start += n
		}
		if start < 0 {
			start = 0
		}
		if start > n {
			start = n
		}
		if stop < 0 {
			stop += n
		}
		if stop < 0 {
			stop = 0
		}
		if stop > n {
			stop = n
		}
		return start, stop
	}
	if start < 0 {
		start += n
	}
	if start >= n {
		start = n - 1
	}
	if start < -1 {
		start = -1
	}
	if stop < 0 {
		stop += n
	}
	if stop >= n {
		stop = n - 1
	}
	if stop < -1 {
		stop = -1
	}
	return start, stop
}

// Concat returns self++other. Either side's emptiness short-circuits to
// the other, avoiding an allocation.
func (l *List) Concat(other *List) *List {
	if other.Len() == 0 {
		return l
	}
	if l.Len() == 0 {
		return other
	}
	t := l.Transient()
	t.Extend(other)
	return t.Persistent()
}

// Multiply returns l repeated n times. n must be an int or int64;
// anything else fails with ErrTypeMismatch.
func (l *List) Multiply(n any) (*List, error) {
	count, ok := asInt(n)
	if !ok {
		return nil, errs.TypeMismatch("multiply expects an integer repeat count, got %T", n)
	}
	if count <= 0 {
		return empty, nil
	}
	if count == 1 {
		return l, nil
	}
	t := l.Transient()
	for i := 1; i < count; i++ {
		t.Extend(l)
	}
	return t.Persistent(), nil
}

func asInt(n any) (int, bool) {
	switch v := n.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// Index returns the first index of v within [start, stop), using
// cross-kind equality. start defaults to 0, stop to Len().
func (l *List) Index(v any, bounds ...int) (int, bool) {
	start, stop := 0, l.Len()
	if len(bounds) > 0 {
		start = bounds[0]
	}
	if len(bounds) > 1 {
		stop = bounds[1]
	}
	if start < 0 {
		start += l.Len()
	}
	if stop < 0 {
		stop += l.Len()
	}
	if start < 0 {
		start = 0
	}
	if stop > l.Len() {
		stop = l.Len()
	}
	for i := start; i < stop; i++ {
		cur, _ := l.Get(i)
		if pcore.Equal(cur, v) {
			return i, true
		}
	}
	return 0, false
}

// Count returns how many elements equal v, using cross-kind equality.
func (l *List) Count(v any) int {
	n := 0
	for i := 0; i < l.Len(); i++ {
		cur, _ := l.Get(i)
		if pcore.Equal(cur, v) {
			n++
		}
	}
	return n
}

// Contains reports whether v is present, using cross-kind equality.
func (l *List) Contains(v any) bool {
	_, ok := l.Index(v)
	return ok
}

// Iter yields (index, value) pairs in order.
func (l *List) Iter() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i := 0; i < l.Len(); i++ {
			v, _ := l.Get(i)
			if !yield(i, v) {
				return
			}
		}
	}
}

// SeqLen and SeqAt implement pcore.Sequence so List participates in the
// cross-kind equality/ordering dispatch shared with Transient and []any.
func (l *List) SeqLen() int { return l.Len() }
func (l *List) SeqAt(i int) any {
	v, _ := l.Get(i)
	return v
}

// Hash returns a hash derived from the ordered element hashes, cached
// after first computation. Concurrent callers racing the first
// computation observe a benign race: both compute the same value and the
// store is a single atomic pointer swap.
func (l *List) Hash() uint64 {
	if p := l.hashCache.Load(); p != nil {
		return *p
	}
	h := pcore.Hash(l)
	l.hashCache.Store(&h)
	return h
}

// Eq reports whether other is a *List, *Transient, or []any with the
// same elements in the same order.
func (l *List) Eq(other any) bool {
	return pcore.Equal(l, other)
}

// Cmp lexicographically compares l against another *List, *Transient, or
// []any, with length as the final tiebreak. ok is false if other is none
// of those kinds.
func (l *List) Cmp(other any) (pcore.Ordering, bool) {
	return pcore.Compare(l, other)
}

func identical(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
