package set

import (
	"github.com/funvibe/persist/errs"
	"github.com/funvibe/persist/internal/hamt"
	"github.com/funvibe/persist/internal/pcore"
)

// Transient is a mutable twin of Set, built in O(1) from a persistent
// origin and finalized back in O(log n). A Transient must be used from a
// single goroutine.
type Transient struct {
	els     *hamt.Transient // slot -> chainEntry
	idx     *hamt.Transient // hash -> head slot
	top     int64
	orig    *Set
	version uint64
}

// Transient returns a mutable view of s.
func (s *Set) Transient() *Transient {
	return &Transient{els: s.els.Transient(), idx: s.idx.Transient(), top: s.top, orig: s}
}

// Len returns the current element count.
func (t *Transient) Len() int { return t.els.Len() }

func (t *Transient) touch() { t.orig = nil; t.version++ }

// findSlot walks v's hash chain, returning the slot holding v and the
// slot of the chain entry that points to it (-1 if v is the chain head).
func (t *Transient) findSlot(v any) (slot int64, prev int64, found bool) {
	h := pcore.Hash(v)
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
		if pcore.Equal(ce.value, v) {
			return slot, prev, true
		}
		if ce.next < 0 {
			return 0, -1, false
		}
		prev, slot = slot, ce.next
	}
}

// Contains reports whether v is a member.
func (t *Transient) Contains(v any) bool {
	_, _, found := t.findSlot(v)
	return found
}

// Add inserts v at the tail of its hash chain and reports whether a new
// element was actually added.
func (t *Transient) Add(v any) bool {
	if t.Contains(v) {
		return false
	}
	h := pcore.Hash(v)
	slot := t.top
	t.top++
	head, hasHead := t.idx.Get(h)
	if !hasHead {
		t.els.Assoc(uint64(slot), chainEntry{value: v, next: -1})
		t.idx.Assoc(h, slot)
	} else {
		// Walk to the tail of the existing chain and link the new slot on.
		tailSlot := head.(int64)
		for {
			e, _ := t.els.Get(uint64(tailSlot))
			ce := e.(chainEntry)
			if ce.next < 0 {
				t.els.Assoc(uint64(tailSlot), chainEntry{value: ce.value, next: slot})
				break
			}
			tailSlot = ce.next
		}
		t.els.Assoc(uint64(slot), chainEntry{value: v, next: -1})
	}
	t.touch()
	return true
}

// Discard removes v in place and reports whether it was present. Removal
// relinks the collision chain around the discarded slot, mirroring how a
// bucketed hash map removes a collision-chain link.
func (t *Transient) Discard(v any) bool {
	slot, prev, found := t.findSlot(v)
	if !found {
		return false
	}
	e, _ := t.els.Get(uint64(slot))
	ce := e.(chainEntry)
	if prev < 0 {
		h := pcore.Hash(v)
		if ce.next < 0 {
			t.idx.Dissoc(h)
		} else {
			t.idx.Assoc(h, ce.next)
		}
	} else {
		pe, _ := t.els.Get(uint64(prev))
		pce := pe.(chainEntry)
		t.els.Assoc(uint64(prev), chainEntry{value: pce.value, next: ce.next})
	}
	t.els.Dissoc(uint64(slot))
	t.touch()
	return true
}

// Remove removes v in place, failing with ErrKeyMissing if absent.
func (t *Transient) Remove(v any) error {
	if !t.Discard(v) {
		return errs.KeyMissing("remove: %v not in set", v)
	}
	return nil
}

// Pop removes and returns the element Iter would yield first.
func (t *Transient) Pop() (any, error) {
	for slot := int64(0); slot < t.top; slot++ {
		e, ok := t.els.Get(uint64(slot))
		if !ok {
			continue
		}
		v := e.(chainEntry).value
		t.Discard(v)
		return v, nil
	}
	return nil, errs.KeyMissing("pop from empty set")
}

// Clear empties the transient in place.
func (t *Transient) Clear() {
	t.els = hamt.Empty().Transient()
	t.idx = hamt.Empty().Transient()
	t.top = 0
	t.touch()
}

// AddAll adds every item, returning the count actually added.
func (t *Transient) AddAll(items ...any) int {
	n := 0
	for _, v := range items {
		if t.Add(v) {
			n++
		}
	}
	return n
}

// RemoveAll removes every item in place, failing with ErrKeyMissing on
// the first absent one.
func (t *Transient) RemoveAll(items ...any) error {
	for _, v := range items {
		if err := t.Remove(v); err != nil {
			return err
		}
	}
	return nil
}

// DiscardAll discards every item, absent ones silently ignored.
func (t *Transient) DiscardAll(items ...any) {
	for _, v := range items {
		t.Discard(v)
	}
}

// UnionUpdate merges other's elements into t in place ("|=").
func (t *Transient) UnionUpdate(other *Set) {
	for v := range other.Iter() {
		t.Add(v)
	}
}

// IntersectionUpdate keeps only elements also present in other ("&=").
func (t *Transient) IntersectionUpdate(other *Set) {
	var toRemove []any
	for slot := int64(0); slot < t.top; slot++ {
		e, ok := t.els.Get(uint64(slot))
		if !ok {
			continue
		}
		v := e.(chainEntry).value
		if !other.Contains(v) {
			toRemove = append(toRemove, v)
		}
	}
	for _, v := range toRemove {
		t.Discard(v)
	}
}

// DifferenceUpdate removes other's elements from t in place ("-=").
func (t *Transient) DifferenceUpdate(other *Set) {
	for v := range other.Iter() {
		t.Discard(v)
	}
}

// SymmetricDifferenceUpdate toggles membership of each of other's
// elements in place ("^=").
func (t *Transient) SymmetricDifferenceUpdate(other *Set) {
	for v := range other.Iter() {
		if t.Contains(v) {
			t.Discard(v)
		} else {
			t.Add(v)
		}
	}
}

// Persistent finalizes the transient. If no structural mutation happened
// since it was created, the original Set is returned unchanged.
func (t *Transient) Persistent() *Set {
	if t.orig != nil {
		return t.orig
	}
	return &Set{els: t.els.Persistent(), idx: t.idx.Persistent(), top: t.top}
}

// Freeze is an alias for Persistent.
func (t *Transient) Freeze() *Set { return t.Persistent() }

// Iter yields elements in insertion order.
func (t *Transient) Iter() func(yield func(any) bool) {
	return func(yield func(any) bool) {
		for slot := int64(0); slot < t.top; slot++ {
			e, ok := t.els.Get(uint64(slot))
			if !ok {
				continue
			}
			if !yield(e.(chainEntry).value) {
				return
			}
		}
	}
}

// ForEach walks the transient's current elements, failing with
// ErrMutatedDuringIteration the moment a structural mutation is observed
// mid-walk.
func (t *Transient) ForEach(fn func(v any) bool) error {
	version := t.version
	for slot := int64(0); slot < t.top; slot++ {
		if t.version != version {
			return errs.MutatedDuringIteration("set transient mutated during iteration")
		}
		e, ok := t.els.Get(uint64(slot))
		if !ok {
			continue
		}
		if !fn(e.(chainEntry).value) {
			return nil
		}
	}
	return nil
}
