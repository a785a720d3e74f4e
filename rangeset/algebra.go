package rangeset

import (
	"iter"

	"golang.org/x/exp/constraints"

	"github.com/rogpeppe/primset/interval"
	"github.com/rogpeppe/primset/merge"
	"github.com/rogpeppe/primset/set"
)

// FromSorted returns a set holding the values of seq, which must
// be strictly ascending and non-negative. Intervals are built as
// the values arrive, so no normalization pass is needed.
// It panics with set.ErrIllegalArgument if seq is out of order
// or holds a negative value.
func FromSorted[V constraints.Integer](seq iter.Seq[V]) *Set[V] {
	var s Set[V]
	for v := range seq {
		n := len(s.ranges)
		switch {
		case n == 0:
			checkDomain(v)
			s.ranges = append(s.ranges, interval.Single(v))
		case v <= s.ranges[n-1].Last:
			set.Panicf(set.ErrIllegalArgument, "out of order value %v after %v", v, s.ranges[n-1].Last)
		case v-s.ranges[n-1].Last == 1:
			s.ranges[n-1].Last = v
		default:
			s.ranges = append(s.ranges, interval.Single(v))
		}
		s.size++
	}
	s.checkInvariants()
	return &s
}

// Union returns a new set holding the members of either a or b.
func Union[V constraints.Integer](a, b set.Sorted[V]) *Set[V] {
	return FromSorted(merge.Union(a.All(), b.All()))
}

// Intersection returns a new set holding the members of both a and b.
func Intersection[V constraints.Integer](a, b set.Sorted[V]) *Set[V] {
	return FromSorted(merge.Intersection(a.All(), b.All()))
}

// Difference returns a new set holding the members of a
// that are not in b.
func Difference[V constraints.Integer](a, b set.Sorted[V]) *Set[V] {
	return FromSorted(merge.Difference(a.All(), b.All()))
}
