package list

import "sort"

// sortSlice sorts buf by less (a stable sort, so equal-keyed elements
// keep their relative order), then reverses it in place if reverse is
// set, which also reverses the relative order of equal-keyed elements —
// materializing into a buffer, sorting, and rebuilding
// rather than trying to sort a trie in place.
func sortSlice(buf []any, less func(a, b any) bool, reverse bool) {
	sort.SliceStable(buf, func(i, j int) bool { return less(buf[i], buf[j]) })
	if reverse {
		for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
}

// Sort returns a new list with elements ordered by less; reverse flips
// the final order. The trie is rebuilt from scratch rather than sorted
// in place.
func (l *List) Sort(less func(a, b any) bool, reverse bool) *List {
	buf := make([]any, l.Len())
	for i := range buf {
		buf[i], _ = l.Get(i)
	}
	sortSlice(buf, less, reverse)
	return Of(buf...)
}

// Reverse returns a new list with elements in reverse order.
func (l *List) Reverse() *List {
	n := l.Len()
	buf := make([]any, n)
	for i := 0; i < n; i++ {
		v, _ := l.Get(i)
		buf[n-1-i] = v
	}
	return Of(buf...)
}
