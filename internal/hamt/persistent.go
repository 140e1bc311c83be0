package hamt

import "iter"

// Tree is a persistent, immutable HAMT. The zero value is not valid; use
// Empty.
type Tree struct {
	root  *node
	count int
}

// Empty returns the canonical empty tree.
func Empty() *Tree { return &Tree{root: emptyNode} }

// Len returns the number of entries, in O(1).
func (t *Tree) Len() int { return t.count }

// Get returns the value stored at key, if any.
func (t *Tree) Get(key uint64) (any, bool) {
	return t.root.get(key, 0)
}

// Assoc returns a new tree with key bound to value, sharing every subtree
// untouched by the write. Depth exhaustion (Levels reached) cannot happen
// for distinct keys; see the package doc.
func (t *Tree) Assoc(key uint64, value any) *Tree {
	newRoot, added := assoc(t.root, key, value, 0)
	count := t.count
	if added {
		count++
	}
	return &Tree{root: newRoot, count: count}
}

func assoc(n *node, key uint64, value any, depth int) (*node, bool) {
	_, bit := slotBit(key, depth)
	out := n.clone()

	if n.bitmap&bit == 0 {
		out.bitmap |= bit
		pos := out.slotIndex(bit)
		out.entries = append(out.entries, nil)
		copy(out.entries[pos+1:], out.entries[pos:])
		out.entries[pos] = leaf{key: key, value: value}
		return out, true
	}

	pos := out.slotIndex(bit)
	switch v := out.entries[pos].(type) {
	case leaf:
		if v.key == key {
			out.entries[pos] = leaf{key: key, value: value}
			return out, false
		}
		child, _ := assoc(emptyNode, v.key, v.value, depth+1)
		child, _ = assoc(child, key, value, depth+1)
		out.entries[pos] = child
		return out, true
	case *node:
		child, added := assoc(v, key, value, depth+1)
		out.entries[pos] = child
		return out, added
	}
	panic("hamt: unreachable entry kind")
}

// Dissoc returns a new tree with key removed, and whether it was present.
// When a node is left with exactly one child and that child is a leaf,
// the node collapses into the leaf so equal contents always produce equal
// shapes, keeping a single canonical representation per logical tree.
func (t *Tree) Dissoc(key uint64) (*Tree, bool) {
	newRoot, removed := dissoc(t.root, key, 0)
	if !removed {
		return t, false
	}
	return &Tree{root: newRoot, count: t.count - 1}, true
}

func dissoc(n *node, key uint64, depth int) (*node, bool) {
	_, bit := slotBit(key, depth)
	if n.bitmap&bit == 0 {
		return n, false
	}
	pos := n.slotIndex(bit)

	switch v := n.entries[pos].(type) {
	case leaf:
		if v.key != key {
			return n, false
		}
		return removeSlot(n, pos, bit), true
	case *node:
		child, removed := dissoc(v, key, depth+1)
		if !removed {
			return n, false
		}
		if len(child.entries) == 0 {
			return removeSlot(n, pos, bit), true
		}
		if len(child.entries) == 1 {
			if lf, ok := child.entries[0].(leaf); ok {
				out := n.clone()
				out.entries[pos] = lf
				return out, true
			}
		}
		out := n.clone()
		out.entries[pos] = child
		return out, true
	}
	panic("hamt: unreachable entry kind")
}

func removeSlot(n *node, pos int, bit uint32) *node {
	out := &node{
		bitmap:  n.bitmap &^ bit,
		entries: make([]any, len(n.entries)-1),
	}
	copy(out.entries[:pos], n.entries[:pos])
	copy(out.entries[pos:], n.entries[pos+1:])
	return out
}

// Iter yields every (key, value) pair in the tree in bitmap-walk order,
// which is not insertion order — callers that need insertion order (the
// set and mapping layers) track it themselves via a slot range.
func (t *Tree) Iter() iter.Seq2[uint64, any] {
	return func(yield func(uint64, any) bool) {
		var walk func(n *node) bool
		walk = func(n *node) bool {
			for _, e := range n.entries {
				switch v := e.(type) {
				case leaf:
					if !yield(v.key, v.value) {
						return false
					}
				case *node:
					if !walk(v) {
						return false
					}
				}
			}
			return true
		}
		walk(t.root)
	}
}
