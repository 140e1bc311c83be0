// Package ordmap implements the persistent (immutable) insertion-ordered
// mapping and its transient twin. It reuses set's els/idx/chain trie
// layout, pairing each chain entry with a value and threading deletion
// through the same collapse rules.
package ordmap

import (
	"encoding/json"
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/funvibe/persist/errs"
	"github.com/funvibe/persist/internal/config"
	"github.com/funvibe/persist/internal/hamt"
	"github.com/funvibe/persist/internal/pcore"
)

// Pair is a key/value entry, the element type Items yields.
type Pair struct {
	Key   any
	Value any
}

type chainEntry struct {
	key   any
	value any
	next  int64
}

// Map is an immutable, structurally shared, insertion-ordered key/value
// mapping. The zero value is not valid; use Empty or Of.
type Map struct {
	els       *hamt.Tree // slot(int64) -> chainEntry
	idx       *hamt.Tree // hash(uint64) -> head slot(int64)
	top       int64
	hashCache atomic.Pointer[uint64]
}

var empty = &Map{els: hamt.Empty(), idx: hamt.Empty()}

// Empty returns the canonical empty map.
func Empty() *Map { return empty }

// Of builds a map from key/value pairs, in order, via repeated Set.
func Of(pairs ...Pair) *Map {
	t := empty.Transient()
	for _, p := range pairs {
		t.Set(p.Key, p.Value)
	}
	return t.Persistent()
}

// Len returns the number of entries.
func (m *Map) Len() int { return m.els.Len() }

// Contains reports whether key is bound.
func (m *Map) Contains(key any) bool {
	_, found := m.findSlot(key)
	return found
}

func (m *Map) findSlot(key any) (int64, bool) {
	h := pcore.Hash(key)
	head, ok := m.idx.Get(h)
	if !ok {
		return 0, false
	}
	slot := head.(int64)
	for {
		e, ok := m.els.Get(uint64(slot))
		if !ok {
			return 0, false
		}
		ce := e.(chainEntry)
		if pcore.Equal(ce.key, key) {
			return slot, true
		}
		if ce.next < 0 {
			return 0, false
		}
		slot = ce.next
	}
}

// Get returns the value bound to key, failing with ErrKeyMissing if
// unbound.
func (m *Map) Get(key any) (any, error) {
	slot, found := m.findSlot(key)
	if !found {
		return nil, errs.KeyMissing("key %v not in mapping", key)
	}
	e, _ := m.els.Get(uint64(slot))
	return e.(chainEntry).value, nil
}

// GetDefault returns the value bound to key, or def if unbound.
func (m *Map) GetDefault(key, def any) any {
	v, err := m.Get(key)
	if err != nil {
		return def
	}
	return v
}

// Set returns a map with key bound to value. First-time keys are
// appended at the tail of their hash chain, preserving insertion order;
// rebinding an existing key updates its value in place without moving
// its position. Rebinding a key to the identical value it already holds
// returns m itself.
func (m *Map) Set(key, value any) *Map {
	if slot, found := m.findSlot(key); found {
		e, _ := m.els.Get(uint64(slot))
		cur := e.(chainEntry).value
		same := func() (same bool) {
			defer func() { recover() }()
			return cur == value
		}()
		if same {
			return m
		}
	}
	t := m.Transient()
	t.Set(key, value)
	return t.Persistent()
}

// Drop returns a map with key unbound, or m unchanged if key was absent.
func (m *Map) Drop(key any) *Map {
	t := m.Transient()
	if !t.Drop(key) {
		return m
	}
	return t.Persistent()
}

// Delete returns a map with key unbound, failing with ErrKeyMissing if
// key was absent.
func (m *Map) Delete(key any) (*Map, error) {
	if !m.Contains(key) {
		return nil, errs.KeyMissing("delete: key %v not in mapping", key)
	}
	return m.Drop(key), nil
}

// Pop returns a map with key unbound along with the value it held,
// failing with ErrKeyMissing if key was absent.
func (m *Map) Pop(key any) (*Map, any, error) {
	v, err := m.Get(key)
	if err != nil {
		return nil, nil, err
	}
	return m.Drop(key), v, nil
}

// PopItem removes and returns the most-recently-inserted entry (LIFO),
// failing with ErrKeyMissing on an empty map.
func (m *Map) PopItem() (*Map, Pair, error) {
	if m.Len() == 0 {
		return nil, Pair{}, errs.KeyMissing("popitem from empty mapping")
	}
	var last Pair
	for p := range m.Items() {
		last = p
	}
	return m.Drop(last.Key), last, nil
}

// Clear returns the canonical empty map.
func (m *Map) Clear() *Map { return empty }

// Update returns a map with every pair of other set, in other's
// iteration order; later keys win on conflict like repeated Set calls.
func (m *Map) Update(other *Map) *Map {
	t := m.Transient()
	for p := range other.Items() {
		t.Set(p.Key, p.Value)
	}
	return t.Persistent()
}

// SetDefault returns a map with key bound to def only if key is
// currently absent. If key is already present, m is returned unchanged
// (a pointer-identity shortcut, since nothing needs to move).
func (m *Map) SetDefault(key, def any) *Map {
	if m.Contains(key) {
		return m
	}
	return m.Set(key, def)
}

// SetAll returns a map with every pair set, in order.
func (m *Map) SetAll(pairs ...Pair) *Map {
	t := m.Transient()
	for _, p := range pairs {
		t.Set(p.Key, p.Value)
	}
	return t.Persistent()
}

// DropAll returns a map with every key dropped, absent keys silently
// ignored.
func (m *Map) DropAll(keys ...any) *Map {
	t := m.Transient()
	for _, k := range keys {
		t.Drop(k)
	}
	return t.Persistent()
}

// DeleteAll returns a map with every key deleted, failing with
// ErrKeyMissing on the first absent key.
func (m *Map) DeleteAll(keys ...any) (*Map, error) {
	t := m.Transient()
	for _, k := range keys {
		if !t.Drop(k) {
			return nil, errs.KeyMissing("deleteall: key %v not in mapping", k)
		}
	}
	return t.Persistent(), nil
}

// Items yields (key, value) pairs in insertion order.
func (m *Map) Items() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for slot := int64(0); slot < m.top; slot++ {
			e, ok := m.els.Get(uint64(slot))
			if !ok {
				continue
			}
			ce := e.(chainEntry)
			if !yield(Pair{Key: ce.key, Value: ce.value}) {
				return
			}
		}
	}
}

// Keys yields keys in insertion order.
func (m *Map) Keys() iter.Seq[any] {
	return func(yield func(any) bool) {
		for p := range m.Items() {
			if !yield(p.Key) {
				return
			}
		}
	}
}

// Values yields values in insertion order.
func (m *Map) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for p := range m.Items() {
			if !yield(p.Value) {
				return
			}
		}
	}
}

// Hash returns a hash of the unordered key/value pairs, cached after
// first computation.
func (m *Map) Hash() uint64 {
	if p := m.hashCache.Load(); p != nil {
		return *p
	}
	var h uint64
	for p := range m.Items() {
		h ^= pcore.Hash(p.Key) ^ (pcore.Hash(p.Value) * 1099511628211)
	}
	m.hashCache.Store(&h)
	return h
}

// Eq reports whether m and other bind exactly the same keys to exactly
// the same values, irrespective of insertion order.
func (m *Map) Eq(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for p := range m.Items() {
		v, err := other.Get(p.Key)
		if err != nil || !pcore.Equal(v, p.Value) {
			return false
		}
	}
	return true
}

// String renders m using the persistent-map delimiters. Mappings past
// RenderCountThreshold render as a bare count instead of a preview.
func (m *Map) String() string {
	n := m.Len()
	if n > config.RenderCountThreshold {
		return config.MapOpenP + pcore.CountSuffix(n, "pairs") + config.MapCloseP
	}
	pairs := make([]Pair, 0, n)
	for p := range m.Items() {
		pairs = append(pairs, p)
	}
	return pcore.Render(config.MapOpenP, config.MapCloseP, len(pairs), func(i int) string {
		return fmt.Sprintf("%v: %v", pairs[i].Key, pairs[i].Value)
	}, ", ", config.RenderWidth)
}

// MarshalJSON serializes the map as an array of [key, value] pairs,
// since keys need not be strings.
func (m *Map) MarshalJSON() ([]byte, error) {
	out := make([][2]any, 0, m.Len())
	for p := range m.Items() {
		out = append(out, [2]any{p.Key, p.Value})
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a map from an array of [key, value] pairs.
func (m *Map) UnmarshalJSON(data []byte) error {
	var raw [][2]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pairs := make([]Pair, len(raw))
	for i, kv := range raw {
		pairs[i] = Pair{Key: kv[0], Value: kv[1]}
	}
	*m = *Of(pairs...)
	return nil
}
