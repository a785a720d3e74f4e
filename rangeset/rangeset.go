// Package rangeset provides a sorted set of non-negative integers
// held as a list of disjoint intervals.
//
// Runs of consecutive members cost one interval however long they
// are, so the set suits data such as character classes or allocated
// ID ranges. Membership tests take time logarithmic in the number
// of intervals.
package rangeset

import (
	"cmp"
	"iter"
	"math"
	"slices"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/rogpeppe/primset/internal/setdebug"
	"github.com/rogpeppe/primset/interval"
	"github.com/rogpeppe/primset/set"
)

// Set is a set of non-negative integers.
//
// The intervals in ranges are kept normalized: sorted, with
// no two intervals overlapping or adjacent.
//
// The zero value is an empty set ready to use.
type Set[V constraints.Integer] struct {
	ranges []interval.Interval[V]

	// size caches the total length of ranges.
	size int
}

var _ set.Sorted[int] = (*Set[int])(nil)

// New returns an empty set.
func New[V constraints.Integer]() *Set[V] {
	return &Set[V]{}
}

// Of returns a set holding the given values. It panics with
// set.ErrIllegalArgument if any value is negative.
func Of[V constraints.Integer](vals ...V) *Set[V] {
	s := New[V]()
	s.AddAll(vals)
	return s
}

func checkDomain[V constraints.Integer](v V) {
	if v < 0 {
		set.Panicf(set.ErrIllegalArgument, "range set cannot hold negative value %v", v)
	}
}

// search returns the index of the first interval
// ending at or after v.
func (s *Set[V]) search(v V) int {
	return sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].Last >= v
	})
}

// Add implements [set.Set.Add]. It panics with set.ErrIllegalArgument
// if v is negative.
func (s *Set[V]) Add(v V) bool {
	checkDomain(v)
	i := s.search(v)
	if i < len(s.ranges) && s.ranges[i].First <= v {
		return false
	}
	checkRoom(s.size, 1)
	s.ranges = slices.Insert(s.ranges, i, interval.Single(v))
	s.size++
	s.normalizeAt(i)
	s.checkInvariants()
	return true
}

// AddInterval adds all the values in r and reports whether
// the set changed. It panics with set.ErrIllegalArgument if r
// is empty, holds a negative value, or would take the set's
// size beyond math.MaxInt. The set is unchanged after a panic.
func (s *Set[V]) AddInterval(r interval.Interval[V]) bool {
	r = interval.New(r.First, r.Last)
	checkDomain(r.First)
	n := s.newValues(r)
	if n == 0 {
		return false
	}
	checkRoom(s.size, n)
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].First > r.First
	})
	s.ranges = slices.Insert(s.ranges, i, r)
	s.size += n
	s.normalizeAt(i)
	s.checkInvariants()
	return true
}

// newValues returns the number of values in r
// that are not already members of s.
func (s *Set[V]) newValues(r interval.Interval[V]) int {
	n := r.Len()
	for i := s.search(r.First); i < len(s.ranges) && s.ranges[i].First <= r.Last; i++ {
		if overlap, ok := s.ranges[i].Intersection(r); ok {
			n -= overlap.Len()
		}
	}
	return n
}

// checkRoom panics with set.ErrIllegalArgument if adding
// n values to a set of the given size would overflow an int.
func checkRoom(size, n int) {
	if n > math.MaxInt-size {
		set.Panicf(set.ErrIllegalArgument, "cannot add %d values to set of size %d", n, size)
	}
}

// normalizeAt merges the interval at index i with its neighbours
// until none of them overlaps or touches it. All other intervals
// must already be normalized.
func (s *Set[V]) normalizeAt(i int) {
	if i > 0 && s.ranges[i-1].CanMergeWith(s.ranges[i]) {
		s.mergeNext(i - 1)
		i--
	}
	for i+1 < len(s.ranges) && s.ranges[i].CanMergeWith(s.ranges[i+1]) {
		s.mergeNext(i)
	}
}

// mergeNext replaces the intervals at i and i+1 with their union.
// The caller accounts for the size.
func (s *Set[V]) mergeNext(i int) {
	s.ranges[i] = s.ranges[i].Merge(s.ranges[i+1])
	s.ranges = slices.Delete(s.ranges, i+1, i+2)
}

// AddAll adds all the given values and reports whether the set
// changed. Runs of consecutive values are gathered into intervals
// first, so the set is normalized once rather than once per value.
// The vals slice is not modified. Like AddInterval, it panics
// with set.ErrIllegalArgument before changing the set if the
// size would overflow.
func (s *Set[V]) AddAll(vals []V) bool {
	if len(vals) == 0 {
		return false
	}
	if !slices.IsSorted(vals) {
		vals = slices.Clone(vals)
		slices.Sort(vals)
	}
	checkDomain(vals[0])
	var runs []interval.Interval[V]
	start, prev := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v == prev || v-prev == 1 {
			prev = v
			continue
		}
		runs = append(runs, interval.Interval[V]{First: start, Last: prev})
		start, prev = v, v
	}
	runs = append(runs, interval.Interval[V]{First: start, Last: prev})
	added := 0
	for _, r := range runs {
		n := s.newValues(r)
		checkRoom(s.size+added, n)
		added += n
	}
	if added == 0 {
		return false
	}
	s.ranges = append(s.ranges, runs...)
	s.normalize()
	return true
}

// normalize sorts the intervals and merges any that overlap or
// touch, then recomputes the size.
func (s *Set[V]) normalize() {
	slices.SortFunc(s.ranges, func(a, b interval.Interval[V]) int {
		return cmp.Compare(a.First, b.First)
	})
	out := s.ranges[:0]
	for _, r := range s.ranges {
		if n := len(out); n > 0 && out[n-1].CanMergeWith(r) {
			out[n-1] = out[n-1].Merge(r)
			continue
		}
		out = append(out, r)
	}
	s.ranges = out
	s.size = totalLen(out)
	s.checkInvariants()
}

// Remove implements [set.Set.Remove].
func (s *Set[V]) Remove(v V) bool {
	if v < 0 {
		return false
	}
	i := s.search(v)
	if i >= len(s.ranges) || s.ranges[i].First > v {
		return false
	}
	r := &s.ranges[i]
	switch {
	case r.First == r.Last:
		s.ranges = slices.Delete(s.ranges, i, i+1)
	case v == r.First:
		r.First++
	case v == r.Last:
		r.Last--
	default:
		upper := interval.Interval[V]{First: v + 1, Last: r.Last}
		r.Last = v - 1
		s.ranges = slices.Insert(s.ranges, i+1, upper)
	}
	s.size--
	s.checkInvariants()
	return true
}

// RemoveInterval removes all the values in r and reports
// whether the set changed. It panics with set.ErrIllegalArgument
// if r is empty.
func (s *Set[V]) RemoveInterval(r interval.Interval[V]) bool {
	r = interval.New(r.First, r.Last)
	if r.Last < 0 {
		return false
	}
	r.First = max(r.First, 0)
	i := s.search(r.First)
	j := sort.Search(len(s.ranges), func(j int) bool {
		return s.ranges[j].First > r.Last
	})
	if i >= j {
		return false
	}
	var keep []interval.Interval[V]
	if lo := s.ranges[i]; lo.First < r.First {
		keep = append(keep, interval.Interval[V]{First: lo.First, Last: r.First - 1})
	}
	if hi := s.ranges[j-1]; hi.Last > r.Last {
		keep = append(keep, interval.Interval[V]{First: r.Last + 1, Last: hi.Last})
	}
	s.size += totalLen(keep) - totalLen(s.ranges[i:j])
	s.ranges = slices.Replace(s.ranges, i, j, keep...)
	s.checkInvariants()
	return true
}

// Contains implements [set.Reader.Contains].
func (s *Set[V]) Contains(v V) bool {
	i := s.search(v)
	return i < len(s.ranges) && s.ranges[i].First <= v
}

// Len implements [set.Reader.Len].
func (s *Set[V]) Len() int {
	return s.size
}

// Clear implements [set.Set.Clear].
func (s *Set[V]) Clear() {
	s.ranges = s.ranges[:0]
	s.size = 0
}

// First implements [set.Sorted.First].
func (s *Set[V]) First() V {
	if len(s.ranges) == 0 {
		set.Panicf(set.ErrNoSuchElement, "First called on empty set")
	}
	return s.ranges[0].First
}

// Last implements [set.Sorted.Last].
func (s *Set[V]) Last() V {
	if len(s.ranges) == 0 {
		set.Panicf(set.ErrNoSuchElement, "Last called on empty set")
	}
	return s.ranges[len(s.ranges)-1].Last
}

// HeadSet implements [set.Sorted.HeadSet]. It panics with
// set.ErrIllegalArgument if to is negative.
func (s *Set[V]) HeadSet(to V) set.Sorted[V] {
	checkDomain(to)
	return &View[V]{s: s, b: set.Bounds[V]{}.Head(to)}
}

// TailSet implements [set.Sorted.TailSet]. It panics with
// set.ErrIllegalArgument if from is negative.
func (s *Set[V]) TailSet(from V) set.Sorted[V] {
	checkDomain(from)
	return &View[V]{s: s, b: set.Bounds[V]{}.Tail(from)}
}

// SubSet implements [set.Sorted.SubSet]. It panics with
// set.ErrIllegalArgument if from is negative or greater than to.
func (s *Set[V]) SubSet(from, to V) set.Sorted[V] {
	checkDomain(from)
	return &View[V]{s: s, b: set.Bounds[V]{}.Sub(from, to)}
}

// Ranges returns a copy of the set's intervals in ascending order.
// No two of them overlap or are adjacent.
func (s *Set[V]) Ranges() []interval.Interval[V] {
	return slices.Clone(s.ranges)
}

// Intervals returns an iterator over the set's intervals
// in ascending order.
func (s *Set[V]) Intervals() iter.Seq[interval.Interval[V]] {
	return s.clipped(set.Bounds[V]{})
}

// All implements [set.Reader.All], producing members in ascending order.
func (s *Set[V]) All() iter.Seq[V] {
	return values(s.Intervals())
}

// Iterator implements [set.Set.Iterator]. Members are visited
// in ascending order.
func (s *Set[V]) Iterator() set.Iterator[V] {
	return newIterator(s, set.Bounds[V]{})
}

// Clone returns a copy of s that can be modified independently.
func (s *Set[V]) Clone() *Set[V] {
	return &Set[V]{
		ranges: slices.Clone(s.ranges),
		size:   s.size,
	}
}

// Equal reports whether s and t have the same members.
func (s *Set[V]) Equal(t *Set[V]) bool {
	return s.size == t.size && slices.Equal(s.ranges, t.ranges)
}

// MarshalBinary implements [encoding.BinaryMarshaler]
// using the format of [set.MarshalBinary].
func (s *Set[V]) MarshalBinary() ([]byte, error) {
	return set.MarshalBinary[V](s)
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler].
func (s *Set[V]) UnmarshalBinary(data []byte) error {
	return set.UnmarshalBinary[V](data, s)
}

func (s *Set[V]) String() string {
	return set.Format[V](s)
}

// clipped returns an iterator over the intervals of s
// restricted to b.
func (s *Set[V]) clipped(b set.Bounds[V]) iter.Seq[interval.Interval[V]] {
	return func(yield func(interval.Interval[V]) bool) {
		i := 0
		if lo, ok := b.Lower(); ok {
			i = s.search(lo)
		}
		for ; i < len(s.ranges); i++ {
			r, ok := s.ranges[i].Clip(b)
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// values returns an iterator over every value in each interval.
func values[V constraints.Integer](rs iter.Seq[interval.Interval[V]]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for r := range rs {
			for v := r.First; ; v++ {
				if !yield(v) {
					return
				}
				if v == r.Last {
					break
				}
			}
		}
	}
}

func totalLen[V constraints.Integer](rs []interval.Interval[V]) int {
	n := 0
	for _, r := range rs {
		n += r.Len()
	}
	return n
}

func (s *Set[V]) checkInvariants() {
	if !setdebug.Flags().CheckInvariants {
		return
	}
	for i, r := range s.ranges {
		if r.First > r.Last {
			set.Panicf(set.ErrIllegalState, "rangeset.Set: empty interval %v at %d", r, i)
		}
		if i > 0 && (s.ranges[i-1].Last >= r.First || s.ranges[i-1].CanMergeWith(r)) {
			set.Panicf(set.ErrIllegalState, "rangeset.Set: intervals %v and %v not normalized", s.ranges[i-1], r)
		}
	}
	if len(s.ranges) > 0 && s.ranges[0].First < 0 {
		set.Panicf(set.ErrIllegalState, "rangeset.Set: negative member %v", s.ranges[0].First)
	}
	if n := totalLen(s.ranges); n != s.size {
		set.Panicf(set.ErrIllegalState, "rangeset.Set: size %d but intervals hold %d", s.size, n)
	}
}
