package lazy

import (
	"iter"

	"github.com/funvibe/persist/internal/pcore"
	"github.com/funvibe/persist/list"
)

// List is a persistent list whose exposed Get/Iter reify any lazy cell
// encountered at read time; GetRaw returns the cell unreified. Structural
// edits (Set, Append, ...) operate on the underlying slots without
// forcing them, so an unread cell survives an edit untouched.
type List struct {
	under *list.List
}

// EmptyList returns the canonical empty lazy list.
func EmptyList() *List { return &List{under: list.Empty()} }

// Of builds a lazy list from items (values or *Cell) in order.
func Of(items ...any) *List { return &List{under: list.Of(items...)} }

// FromList wraps an existing list without reifying its elements.
func FromList(l *list.List) *List { return &List{under: l} }

// Len returns the number of elements.
func (l *List) Len() int { return l.under.Len() }

// Get returns the element at i, reifying it if it is a lazy cell.
func (l *List) Get(i int) (any, error) {
	raw, err := l.under.Get(i)
	if err != nil {
		return nil, err
	}
	return Reify(raw)
}

// GetRaw returns the element at i without reifying a lazy cell.
func (l *List) GetRaw(i int) (any, error) {
	return l.under.Get(i)
}

// Set returns a lazy list with index i bound to v (which may itself be a
// *Cell, deferring its evaluation).
func (l *List) Set(i int, v any) (*List, error) {
	u, err := l.under.Set(i, v)
	if err != nil {
		return nil, err
	}
	return &List{under: u}, nil
}

// Append returns a lazy list with v appended.
func (l *List) Append(v any) *List { return &List{under: l.under.Append(v)} }

// Prepend returns a lazy list with v prepended.
func (l *List) Prepend(v any) *List { return &List{under: l.under.Prepend(v)} }

// Insert returns a lazy list with v inserted before index i.
func (l *List) Insert(i int, v any) (*List, error) {
	u, err := l.under.Insert(i, v)
	if err != nil {
		return nil, err
	}
	return &List{under: u}, nil
}

// Delete returns a lazy list with the element at i removed, unreified.
func (l *List) Delete(i int) (*List, error) {
	u, err := l.under.Delete(i)
	if err != nil {
		return nil, err
	}
	return &List{under: u}, nil
}

// Iter yields (index, reified value) pairs in order. A failure reifying
// any element stops iteration and is not otherwise surfaced; callers who
// need the error should walk with GetRaw/Reify directly.
func (l *List) Iter() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, raw := range l.under.Iter() {
			v, err := Reify(raw)
			if err != nil {
				return
			}
			if !yield(i, v) {
				return
			}
		}
	}
}

// ReifyAll forces every cell in the list exactly once, sequentially, and
// returns the fully reified list (or the first evaluation error).
func (l *List) ReifyAll() (*List, error) {
	t := l.under.Transient()
	for i := 0; i < t.Len(); i++ {
		raw, _ := t.Get(i)
		v, err := Reify(raw)
		if err != nil {
			return nil, err
		}
		if err := t.Set(i, v); err != nil {
			return nil, err
		}
	}
	return &List{under: t.Persistent()}, nil
}

// ToNonLazyView returns the underlying list with cells left unreified.
func (l *List) ToNonLazyView() *list.List { return l.under }

// Hash forces every element and hashes the reified list. Hashing a
// lazy-bearing container evaluates every cell it holds; this is a
// conscious cost documented at the call site rather than hidden.
func (l *List) Hash() (uint64, error) {
	r, err := l.ReifyAll()
	if err != nil {
		return 0, err
	}
	return r.under.Hash(), nil
}

// Eq reifies both sides and compares them elementwise.
func (l *List) Eq(other *List) (bool, error) {
	a, err := l.ReifyAll()
	if err != nil {
		return false, err
	}
	b, err := other.ReifyAll()
	if err != nil {
		return false, err
	}
	return pcore.Equal(a.under, b.under), nil
}

// Transient returns a mutable view preserving cells through edits.
func (l *List) Transient() *TransientList {
	return &TransientList{under: l.under.Transient()}
}

// TransientList is lazy.List's mutable twin; edits preserve cells and
// reads can opt into the raw, non-reifying form.
type TransientList struct {
	under *list.Transient
}

// Len returns the current element count.
func (t *TransientList) Len() int { return t.under.Len() }

// Get returns the element at i, reifying it if it is a lazy cell.
func (t *TransientList) Get(i int) (any, error) {
	raw, err := t.under.Get(i)
	if err != nil {
		return nil, err
	}
	return Reify(raw)
}

// GetRaw returns the element at i without reifying a lazy cell.
func (t *TransientList) GetRaw(i int) (any, error) { return t.under.Get(i) }

// Set mutates index i in place, possibly to a *Cell.
func (t *TransientList) Set(i int, v any) error { return t.under.Set(i, v) }

// Append mutates v onto the end in place.
func (t *TransientList) Append(v any) { t.under.Append(v) }

// Prepend mutates v onto the front in place.
func (t *TransientList) Prepend(v any) { t.under.Prepend(v) }

// Persistent finalizes the transient back to a lazy List.
func (t *TransientList) Persistent() *List { return &List{under: t.under.Persistent()} }

// Freeze is an alias for Persistent.
func (t *TransientList) Freeze() *List { return t.Persistent() }
