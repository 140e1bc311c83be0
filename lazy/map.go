package lazy

import (
	"iter"

	"github.com/funvibe/persist/ordmap"
)

// Map is an insertion-ordered mapping whose exposed Get/Items/Values
// reify any lazy cell encountered at read time; GetRaw returns the cell
// unreified. Keys are never lazy; only values may be.
type Map struct {
	under *ordmap.Map
}

// EmptyMap returns the canonical empty lazy mapping.
func EmptyMap() *Map { return &Map{under: ordmap.Empty()} }

// OfPairs builds a lazy mapping from pairs, in order.
func OfPairs(pairs ...ordmap.Pair) *Map { return &Map{under: ordmap.Of(pairs...)} }

// FromMap wraps an existing mapping without reifying its values.
func FromMap(m *ordmap.Map) *Map { return &Map{under: m} }

// Len returns the number of entries.
func (m *Map) Len() int { return m.under.Len() }

// Contains reports whether key is bound, without forcing its value.
func (m *Map) Contains(key any) bool { return m.under.Contains(key) }

// Get returns the value bound to key, reifying it if it is a lazy cell.
func (m *Map) Get(key any) (any, error) {
	raw, err := m.under.Get(key)
	if err != nil {
		return nil, err
	}
	return Reify(raw)
}

// GetRaw returns the value bound to key without reifying a lazy cell.
func (m *Map) GetRaw(key any) (any, error) { return m.under.Get(key) }

// Set returns a lazy mapping with key bound to value (which may itself
// be a *Cell, deferring its evaluation).
func (m *Map) Set(key, value any) *Map { return &Map{under: m.under.Set(key, value)} }

// Drop returns a lazy mapping with key unbound.
func (m *Map) Drop(key any) *Map { return &Map{under: m.under.Drop(key)} }

// Delete returns a lazy mapping with key unbound, failing if absent.
func (m *Map) Delete(key any) (*Map, error) {
	u, err := m.under.Delete(key)
	if err != nil {
		return nil, err
	}
	return &Map{under: u}, nil
}

// Items yields (key, reified value) pairs in insertion order.
func (m *Map) Items() iter.Seq[ordmap.Pair] {
	return func(yield func(ordmap.Pair) bool) {
		for p := range m.under.Items() {
			v, err := Reify(p.Value)
			if err != nil {
				return
			}
			if !yield(ordmap.Pair{Key: p.Key, Value: v}) {
				return
			}
		}
	}
}

// Values yields reified values in insertion order.
func (m *Map) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for p := range m.Items() {
			if !yield(p.Value) {
				return
			}
		}
	}
}

// Keys yields keys in insertion order.
func (m *Map) Keys() iter.Seq[any] { return m.under.Keys() }

// ReifyAll forces every value exactly once, sequentially, and returns
// the fully reified mapping (or the first evaluation error).
func (m *Map) ReifyAll() (*Map, error) {
	t := m.under.Transient()
	for p := range t.Items() {
		v, err := Reify(p.Value)
		if err != nil {
			return nil, err
		}
		t.Set(p.Key, v)
	}
	return &Map{under: t.Persistent()}, nil
}

// ToNonLazyView returns the underlying mapping with values left
// unreified.
func (m *Map) ToNonLazyView() *ordmap.Map { return m.under }

// Hash forces every value and hashes the reified mapping.
func (m *Map) Hash() (uint64, error) {
	r, err := m.ReifyAll()
	if err != nil {
		return 0, err
	}
	return r.under.Hash(), nil
}

// Eq reifies both sides and compares bindings.
func (m *Map) Eq(other *Map) (bool, error) {
	a, err := m.ReifyAll()
	if err != nil {
		return false, err
	}
	b, err := other.ReifyAll()
	if err != nil {
		return false, err
	}
	return a.under.Eq(b.under), nil
}

// Transient returns a mutable view preserving cells through edits.
func (m *Map) Transient() *TransientMap {
	return &TransientMap{under: m.under.Transient()}
}

// TransientMap is lazy.Map's mutable twin; edits preserve cells and
// reads can opt into the raw, non-reifying form.
type TransientMap struct {
	under *ordmap.Transient
}

// Len returns the current entry count.
func (t *TransientMap) Len() int { return t.under.Len() }

// Contains reports whether key is bound, without forcing its value.
func (t *TransientMap) Contains(key any) bool { return t.under.Contains(key) }

// Get returns the value bound to key, reifying it if it is a lazy cell.
func (t *TransientMap) Get(key any) (any, error) {
	raw, err := t.under.Get(key)
	if err != nil {
		return nil, err
	}
	return Reify(raw)
}

// GetRaw returns the value bound to key without reifying a lazy cell.
func (t *TransientMap) GetRaw(key any) (any, error) { return t.under.Get(key) }

// Set binds key to value in place, possibly to a *Cell.
func (t *TransientMap) Set(key, value any) { t.under.Set(key, value) }

// Drop unbinds key in place and reports whether it was present.
func (t *TransientMap) Drop(key any) bool { return t.under.Drop(key) }

// Pop removes key in place, returning its reified value. Fails with
// ErrKeyMissing if key is absent.
func (t *TransientMap) Pop(key any) (any, error) {
	raw, err := t.under.Get(key)
	if err != nil {
		return nil, err
	}
	t.under.Drop(key)
	return Reify(raw)
}

// Persistent finalizes the transient back to a lazy Map.
func (t *TransientMap) Persistent() *Map { return &Map{under: t.under.Persistent()} }

// Freeze is an alias for Persistent.
func (t *TransientMap) Freeze() *Map { return t.Persistent() }
