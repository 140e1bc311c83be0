package ordmap

import (
	"github.com/funvibe/persist/errs"
	"github.com/funvibe/persist/internal/hamt"
	"github.com/funvibe/persist/internal/pcore"
)

// Transient is a mutable twin of Map, built in O(1) from a persistent
// origin and finalized back in O(log n). A Transient must be used from a
// single goroutine.
type Transient struct {
	els     *hamt.Transient
	idx     *hamt.Transient
	top     int64
	orig    *Map
	version uint64
}

// Transient returns a mutable view of m.
func (m *Map) Transient() *Transient {
	return &Transient{els: m.els.Transient(), idx: m.idx.Transient(), top: m.top, orig: m}
}

// Len returns the current entry count.
func (t *Transient) Len() int { return t.els.Len() }

func (t *Transient) touch() { t.orig = nil; t.version++ }

func (t *Transient) findSlot(key any) (slot int64, prev int64, found bool) {
	h := pcore.Hash(key)
	head, ok := t.idx.Get(h)
	if !ok {
		return 0, -1, false
	}
	prev = -1
	slot = head.(int64)
	for {
		e, ok := t.els.Get(uint64(slot))
		if !ok {
			return 0, -1, false
		}
		ce := e.(chainEntry)
		if pcore.Equal(ce.key, key) {
			return slot, prev, true
		}
		if ce.next < 0 {
			return 0, -1, false
		}
		prev, slot = slot, ce.next
	}
}

// Contains reports whether key is bound.
func (t *Transient) Contains(key any) bool {
	_, _, found := t.findSlot(key)
	return found
}

// Get returns the value bound to key, failing with ErrKeyMissing if
// unbound.
func (t *Transient) Get(key any) (any, error) {
	slot, _, found := t.findSlot(key)
	if !found {
		return nil, errs.KeyMissing("key %v not in mapping", key)
	}
	e, _ := t.els.Get(uint64(slot))
	return e.(chainEntry).value, nil
}

// Set binds key to value in place. An existing key keeps its chain
// position and only has its value overwritten; a new key is appended at
// the tail of its hash chain.
func (t *Transient) Set(key, value any) {
	if slot, _, found := t.findSlot(key); found {
		e, _ := t.els.Get(uint64(slot))
		ce := e.(chainEntry)
		t.els.Assoc(uint64(slot), chainEntry{key: ce.key, value: value, next: ce.next})
		t.orig = nil
		return
	}
	h := pcore.Hash(key)
	slot := t.top
	t.top++
	head, hasHead := t.idx.Get(h)
	if !hasHead {
		t.els.Assoc(uint64(slot), chainEntry{key: key, value: value, next: -1})
		t.idx.Assoc(h, slot)
	} else {
		tailSlot := head.(int64)
		for {
			e, _ := t.els.Get(uint64(tailSlot))
			ce := e.(chainEntry)
			if ce.next < 0 {
				t.els.Assoc(uint64(tailSlot), chainEntry{key: ce.key, value: ce.value, next: slot})
				break
			}
			tailSlot = ce.next
		}
		t.els.Assoc(uint64(slot), chainEntry{key: key, value: value, next: -1})
	}
	t.touch()
}

// Drop unbinds key in place and reports whether it was present.
func (t *Transient) Drop(key any) bool {
	slot, prev, found := t.findSlot(key)
	if !found {
		return false
	}
	e, _ := t.els.Get(uint64(slot))
	ce := e.(chainEntry)
	if prev < 0 {
		h := pcore.Hash(key)
		if ce.next < 0 {
			t.idx.Dissoc(h)
		} else {
			t.idx.Assoc(h, ce.next)
		}
	} else {
		pe, _ := t.els.Get(uint64(prev))
		pce := pe.(chainEntry)
		t.els.Assoc(uint64(prev), chainEntry{key: pce.key, value: pce.value, next: ce.next})
	}
	t.els.Dissoc(uint64(slot))
	t.touch()
	return true
}

// Delete unbinds key in place, failing with ErrKeyMissing if absent.
func (t *Transient) Delete(key any) error {
	if !t.Drop(key) {
		return errs.KeyMissing("delete: key %v not in mapping", key)
	}
	return nil
}

// Pop removes and returns the value bound to key.
func (t *Transient) Pop(key any) (any, error) {
	v, err := t.Get(key)
	if err != nil {
		return nil, err
	}
	t.Drop(key)
	return v, nil
}

// PopItem removes and returns the most-recently-inserted entry (LIFO).
func (t *Transient) PopItem() (Pair, error) {
	if t.Len() == 0 {
		return Pair{}, errs.KeyMissing("popitem from empty mapping")
	}
	var last Pair
	var found bool
	for slot := int64(0); slot < t.top; slot++ {
		e, ok := t.els.Get(uint64(slot))
		if !ok {
			continue
		}
		ce := e.(chainEntry)
		last = Pair{Key: ce.key, Value: ce.value}
		found = true
	}
	if !found {
		return Pair{}, errs.KeyMissing("popitem from empty mapping")
	}
	t.Drop(last.Key)
	return last, nil
}

// Clear empties the transient in place.
func (t *Transient) Clear() {
	t.els = hamt.Empty().Transient()
	t.idx = hamt.Empty().Transient()
	t.top = 0
	t.touch()
}

// Update merges other's entries into t in place, in other's iteration
// order.
func (t *Transient) Update(other *Map) {
	for p := range other.Items() {
		t.Set(p.Key, p.Value)
	}
}

// SetDefault binds key to def in place only if key is currently absent,
// and returns the value now bound to key either way.
func (t *Transient) SetDefault(key, def any) any {
	if v, err := t.Get(key); err == nil {
		return v
	}
	t.Set(key, def)
	return def
}

// Items yields (key, value) pairs in insertion order.
func (t *Transient) Items() func(yield func(Pair) bool) {
	return func(yield func(Pair) bool) {
		for slot := int64(0); slot < t.top; slot++ {
			e, ok := t.els.Get(uint64(slot))
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

// ForEach walks the transient's current entries, failing with
// ErrMutatedDuringIteration the moment a structural mutation is observed
// mid-walk. Overwriting an existing key's value does not bump the
// version counter used here — in-place rebind of a live key during
// iteration is safe; only growing or shrinking the chain structure
// counts as a mutation.
func (t *Transient) ForEach(fn func(p Pair) bool) error {
	version := t.version
	for slot := int64(0); slot < t.top; slot++ {
		if t.version != version {
			return errs.MutatedDuringIteration("mapping transient mutated during iteration")
		}
		e, ok := t.els.Get(uint64(slot))
		if !ok {
			continue
		}
		ce := e.(chainEntry)
		if !fn(Pair{Key: ce.key, Value: ce.value}) {
			return nil
		}
	}
	return nil
}

// Persistent finalizes the transient. If it has not been changed since it
// was created (neither structurally nor by a value overwrite), the
// original Map is returned unchanged.
func (t *Transient) Persistent() *Map {
	if t.orig != nil {
		return t.orig
	}
	return &Map{els: t.els.Persistent(), idx: t.idx.Persistent(), top: t.top}
}

// Freeze is an alias for Persistent.
func (t *Transient) Freeze() *Map { return t.Persistent() }
