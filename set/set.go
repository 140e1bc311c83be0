// Package set implements the persistent (immutable) insertion-ordered
// set and its transient twin, layered on internal/hamt: an elements
// trie keyed by insertion slot (chained on hash collision) and an index
// trie from hash to the head of that hash's collision chain.
package set

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

// chainEntry is the payload stored in els at a given slot: the element
// and the next slot in its hash's collision chain, or -1 if it is the
// tail.
type chainEntry struct {
	value any
	next  int64 // -1 means no next
}

// Set is an immutable, structurally shared, insertion-ordered collection
// of distinct elements. The zero value is not valid; use Empty or Of.
type Set struct {
	els       *hamt.Tree // slot(int64) -> chainEntry
	idx       *hamt.Tree // hash(uint64) -> head slot(int64)
	top       int64
	hashCache atomic.Pointer[uint64]
}

var empty = &Set{els: hamt.Empty(), idx: hamt.Empty()}

// Empty returns the canonical empty set.
func Empty() *Set { return empty }

// Of builds a set from items via repeated Add, preserving first-insertion
// order for duplicates.
func Of(items ...any) *Set {
	s := empty
	for _, v := range items {
		s = s.Add(v)
	}
	return s
}

// Len returns the number of elements.
func (s *Set) Len() int { return s.els.Len() }

// Contains reports whether v is a member.
func (s *Set) Contains(v any) bool {
	_, found := s.findSlot(v)
	return found
}

// findSlot walks v's hash chain looking for an equal element, returning
// its slot.
func (s *Set) findSlot(v any) (int64, bool) {
	h := pcore.Hash(v)
	head, ok := s.idx.Get(h)
	if !ok {
		return 0, false
	}
	slot := head.(int64)
	for {
		e, ok := s.els.Get(uint64(slot))
		if !ok {
			return 0, false
		}
		ce := e.(chainEntry)
		if pcore.Equal(ce.value, v) {
			return slot, true
		}
		if ce.next < 0 {
			return 0, false
		}
		slot = ce.next
	}
}

// Add returns a set with v inserted at the tail of its hash chain. If v
// is already present, s is returned unchanged.
func (s *Set) Add(v any) *Set {
	t := s.Transient()
	if !t.Add(v) {
		return s
	}
	return t.Persistent()
}

// Discard returns a set with v removed, or s unchanged if v was absent.
func (s *Set) Discard(v any) *Set {
	t := s.Transient()
	if !t.Discard(v) {
		return s
	}
	return t.Persistent()
}

// Remove returns a set with v removed, failing with ErrKeyMissing if v
// was absent.
func (s *Set) Remove(v any) (*Set, error) {
	if !s.Contains(v) {
		return nil, errs.KeyMissing("remove: %v not in set", v)
	}
	return s.Discard(v), nil
}

// Pop removes and returns the element Iter would yield first, failing
// with ErrKeyMissing on an empty set.
func (s *Set) Pop() (*Set, any, error) {
	if s.Len() == 0 {
		return nil, nil, errs.KeyMissing("pop from empty set")
	}
	for v := range s.Iter() {
		return s.Discard(v), v, nil
	}
	panic("unreachable: non-empty set with no elements")
}

// Clear returns the canonical empty set.
func (s *Set) Clear() *Set { return empty }

// AddAll returns a set with every item added, in order.
func (s *Set) AddAll(items ...any) *Set {
	t := s.Transient()
	for _, v := range items {
		t.Add(v)
	}
	return t.Persistent()
}

// RemoveAll returns a set with every item removed, failing with
// ErrKeyMissing on the first absent item.
func (s *Set) RemoveAll(items ...any) (*Set, error) {
	t := s.Transient()
	for _, v := range items {
		if !t.Discard(v) {
			return nil, errs.KeyMissing("removeall: %v not in set", v)
		}
	}
	return t.Persistent(), nil
}

// DiscardAll returns a set with every item discarded, absent items
// silently ignored.
func (s *Set) DiscardAll(items ...any) *Set {
	t := s.Transient()
	for _, v := range items {
		t.Discard(v)
	}
	return t.Persistent()
}

// Iter yields elements in insertion order (ascending live slot order).
func (s *Set) Iter() iter.Seq[any] {
	return func(yield func(any) bool) {
		for slot := int64(0); slot < s.top; slot++ {
			e, ok := s.els.Get(uint64(slot))
			if !ok {
				continue
			}
			if !yield(e.(chainEntry).value) {
				return
			}
		}
	}
}

func (s *Set) rangeFunc(yield func(any) bool) {
	for v := range s.Iter() {
		if !yield(v) {
			return
		}
	}
}

// Union returns the set of elements in s or other.
func (s *Set) Union(other *Set) *Set {
	t := s.Transient()
	for v := range other.Iter() {
		t.Add(v)
	}
	return t.Persistent()
}

// Intersection returns the set of elements in both s and other.
func (s *Set) Intersection(other *Set) *Set {
	small, large := s, other
	if other.Len() < s.Len() {
		small, large = other, s
	}
	t := empty.Transient()
	for v := range small.Iter() {
		if large.Contains(v) {
			t.Add(v)
		}
	}
	return t.Persistent()
}

// Difference returns the elements of s not in other.
func (s *Set) Difference(other *Set) *Set {
	t := empty.Transient()
	for v := range s.Iter() {
		if !other.Contains(v) {
			t.Add(v)
		}
	}
	return t.Persistent()
}

// SymmetricDifference returns the elements in exactly one of s, other.
func (s *Set) SymmetricDifference(other *Set) *Set {
	t := empty.Transient()
	for v := range s.Iter() {
		if !other.Contains(v) {
			t.Add(v)
		}
	}
	for v := range other.Iter() {
		if !s.Contains(v) {
			t.Add(v)
		}
	}
	return t.Persistent()
}

// IsDisjoint reports whether s and other share no elements.
func (s *Set) IsDisjoint(other *Set) bool {
	return s.compare(other).Disjoint
}

// IsSubset reports whether every element of s is in other.
func (s *Set) IsSubset(other *Set) bool {
	return s.compare(other).Subset
}

// IsSuperset reports whether every element of other is in s.
func (s *Set) IsSuperset(other *Set) bool {
	return s.compare(other).Superset
}

func (s *Set) compare(other *Set) pcore.SetComparison {
	return pcore.CompareSets(s.Len(), s.rangeFunc, other.Len(), other.Contains, other.rangeFunc, s.Contains)
}

// Eq reports whether s and other contain exactly the same elements,
// irrespective of insertion order.
func (s *Set) Eq(other *Set) bool {
	return s.compare(other).Equal
}

// Cmp reports s's relation to other using set containment: Less if s is
// a proper subset, Greater if a proper superset, Equal_ if equal, and ok
// is false if neither side contains the other (incomparable).
func (s *Set) Cmp(other *Set) (pcore.Ordering, bool) {
	c := s.compare(other)
	switch {
	case c.Equal:
		return pcore.Equal_, true
	case c.Subset:
		return pcore.Less, true
	case c.Superset:
		return pcore.Greater, true
	default:
		return 0, false
	}
}

// Hash returns a hash of the unordered element set, cached after first
// computation.
func (s *Set) Hash() uint64 {
	if p := s.hashCache.Load(); p != nil {
		return *p
	}
	var h uint64
	for v := range s.Iter() {
		h ^= pcore.Hash(v)
	}
	s.hashCache.Store(&h)
	return h
}

// String renders s using the persistent-set delimiters. Sets past
// RenderCountThreshold render as a bare count instead of a preview.
func (s *Set) String() string {
	n := s.Len()
	if n > config.RenderCountThreshold {
		return config.SetOpenP + pcore.CountSuffix(n, "items") + config.SetCloseP
	}
	vals := make([]any, 0, n)
	for v := range s.Iter() {
		vals = append(vals, v)
	}
	return pcore.Render(config.SetOpenP, config.SetCloseP, len(vals), func(i int) string {
		return fmt.Sprintf("%v", vals[i])
	}, ", ", config.RenderWidth)
}

// MarshalJSON serializes the set as an array of (already deduplicated)
// elements.
func (s *Set) MarshalJSON() ([]byte, error) {
	vals := make([]any, 0, s.Len())
	for v := range s.Iter() {
		vals = append(vals, v)
	}
	return json.Marshal(vals)
}

// UnmarshalJSON rebuilds a set from a JSON array.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = *Of(raw...)
	return nil
}
