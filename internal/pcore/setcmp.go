package pcore

// SetComparison is the relation between two sets/mappings under the
// shared-value comparator. The fields are not mutually
// exclusive: two equal sets report Subset, Superset, and Equal all true.
type SetComparison struct {
	Subset, Superset, Equal, Disjoint bool
}

// CountIn counts how many values yielded by elems also satisfy contains.
// Callers should pass the smaller side's elems for the iteration, per
// (iterate the smaller side counting intersections).
func CountIn(elems func(yield func(any) bool), contains func(any) bool) int {
	count := 0
	elems(func(v any) bool {
		if contains(v) {
			count++
		}
		return true
	})
	return count
}

// CompareSets computes the full relation between a set of size aLen and a
// set of size bLen, given an iterator and membership test for each side.
// It always drives the intersection count off the smaller side.
func CompareSets(aLen int, aElems func(yield func(any) bool), bLen int, bContains func(any) bool,
	bElems func(yield func(any) bool), aContains func(any) bool) SetComparison {
	var count int
	if aLen <= bLen {
		count = CountIn(aElems, bContains)
	} else {
		count = CountIn(bElems, aContains)
	}
	return SetComparison{
		Subset:   count == aLen && aLen <= bLen,
		Superset: count == bLen && bLen <= aLen,
		Equal:    aLen == bLen && count == aLen,
		Disjoint: count == 0,
	}
}
