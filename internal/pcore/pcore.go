// Package pcore holds the glue shared by every container in persist:
// cross-kind equality and ordering (a tagged-variant dispatch that
// avoids an open inheritance hierarchy), the set and sequence
// comparators, and truncated rendering.
//
// pcore never imports list/set/ordmap/lazy — those packages depend on
// pcore, not the other way around. Containers that want to participate in
// cross-kind equality implement the small Sequence interface below
// instead of pcore knowing their concrete type.
package pcore

import (
	"hash/fnv"
	"math"
)

// Sequence is implemented by ordered peers that want to compare equal or
// ordered against each other and against a plain []any: persist's list
// and transient list, and (via a local adapter) native slices.
type Sequence interface {
	SeqLen() int
	SeqAt(i int) any
}

type sliceSeq []any

func (s sliceSeq) SeqLen() int      { return len(s) }
func (s sliceSeq) SeqAt(i int) any  { return s[i] }

// AsSequence adapts x to Sequence if it already implements the interface
// or is a []any, reporting whether the adaptation succeeded.
func AsSequence(x any) (Sequence, bool) {
	if s, ok := x.(Sequence); ok {
		return s, true
	}
	if s, ok := x.([]any); ok {
		return sliceSeq(s), true
	}
	return nil, false
}

// Equal implements the cross-kind equality dispatch used by list: two
// Sequence peers (in either combination of concrete kinds) compare
// elementwise in order; anything else falls back to a guarded ==.
func Equal(a, b any) bool {
	if as, ok := AsSequence(a); ok {
		bs, ok := AsSequence(b)
		if !ok {
			return false
		}
		return seqEqual(as, bs)
	}
	if _, ok := AsSequence(b); ok {
		return false
	}
	return scalarEqual(a, b)
}

func seqEqual(a, b Sequence) bool {
	if a.SeqLen() != b.SeqLen() {
		return false
	}
	for i := 0; i < a.SeqLen(); i++ {
		if !Equal(a.SeqAt(i), b.SeqAt(i)) {
			return false
		}
	}
	return true
}

func scalarEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// Ordering is the result of Compare: -1, 0, or 1, matching sort.Interface
// conventions.
type Ordering int

const (
	Less    Ordering = -1
	Equal_  Ordering = 0
	Greater Ordering = 1
)

// Compare implements lexicographic sequence ordering with a length
// tiebreak plus ordering for the
// scalar kinds persist's containers actually store keys/values as.
// ok is false for operand kinds with no defined order (type-mismatch).
func Compare(a, b any) (Ordering, bool) {
	if as, ok := AsSequence(a); ok {
		bs, ok := AsSequence(b)
		if !ok {
			return 0, false
		}
		return seqCompare(as, bs)
	}
	if _, ok := AsSequence(b); ok {
		return 0, false
	}
	return scalarCompare(a, b)
}

func seqCompare(a, b Sequence) (Ordering, bool) {
	n := a.SeqLen()
	if b.SeqLen() < n {
		n = b.SeqLen()
	}
	for i := 0; i < n; i++ {
		ord, ok := Compare(a.SeqAt(i), b.SeqAt(i))
		if !ok {
			return 0, false
		}
		if ord != Equal_ {
			return ord, true
		}
	}
	switch {
	case a.SeqLen() < b.SeqLen():
		return Less, true
	case a.SeqLen() > b.SeqLen():
		return Greater, true
	default:
		return Equal_, true
	}
}

func scalarCompare(a, b any) (Ordering, bool) {
	switch av := a.(type) {
	case int64:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return cmpFloat(float64(av), bv), true
	case int:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return cmpFloat(float64(av), bv), true
	case float64:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return cmpFloat(av, bv), true
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return Less, true
		case av > bv:
			return Greater, true
		default:
			return Equal_, true
		}
	}
	return 0, false
}

func toFloat(x any) (float64, bool) {
	switch v := x.(type) {
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func cmpFloat(a, b float64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal_
	}
}

// Hash computes a hash for a scalar or Sequence value. Sequence hashes
// combine element hashes in order, so two sequences that compare equal
// per Equal also hash equal.
func Hash(x any) uint64 {
	if s, ok := AsSequence(x); ok {
		h := fnv.New64a()
		var buf [8]byte
		for i := 0; i < s.SeqLen(); i++ {
			putUint64(buf[:], Hash(s.SeqAt(i)))
			h.Write(buf[:])
		}
		return h.Sum64()
	}
	return hashScalar(x)
}

func hashScalar(x any) uint64 {
	h := fnv.New64a()
	switch v := x.(type) {
	case int64:
		var buf [8]byte
		putUint64(buf[:], uint64(v))
		h.Write(buf[:])
	case int:
		var buf [8]byte
		putUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	case float64:
		var buf [8]byte
		putUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	case string:
		h.Write([]byte(v))
	case bool:
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case nil:
		h.Write([]byte("<nil>"))
	default:
		h.Write([]byte(anySig(x)))
	}
	return h.Sum64()
}

func putUint64(buf []byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}

// anySig is a last-resort, identity-free signature for values this
// package has no dedicated hashing rule for (e.g. caller-defined structs
// used as map values but never as keys). It is stable for equal string
// representations, not for pointer identity.
func anySig(x any) string {
	type stringer interface{ String() string }
	if s, ok := x.(stringer); ok {
		return s.String()
	}
	return ""
}
