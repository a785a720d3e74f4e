package rangeset

import (
	"iter"
	"slices"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/rogpeppe/primset/interval"
	"github.com/rogpeppe/primset/set"
)

// View is a live view of the members of a Set within a range.
// The intervals at either end of the range are clipped as they
// are read; the underlying set is never changed except by Add,
// Remove and Clear. The set must outlive the view.
type View[V constraints.Integer] struct {
	s *Set[V]
	b set.Bounds[V]
}

var _ set.Sorted[int] = (*View[int])(nil)

// Bounds returns the range of the view.
func (v *View[V]) Bounds() set.Bounds[V] {
	return v.b
}

// Add adds x to the underlying set. It panics with set.ErrOutOfRange
// if x is outside the view's range.
func (v *View[V]) Add(x V) bool {
	v.b.Check(x)
	return v.s.Add(x)
}

// Remove removes x from the underlying set. It panics with
// set.ErrOutOfRange if x is outside the view's range.
func (v *View[V]) Remove(x V) bool {
	v.b.Check(x)
	return v.s.Remove(x)
}

// Contains implements [set.Reader.Contains].
func (v *View[V]) Contains(x V) bool {
	return v.b.Contains(x) && v.s.Contains(x)
}

// Len returns the number of members within the view's range.
func (v *View[V]) Len() int {
	n := 0
	for r := range v.Intervals() {
		n += r.Len()
	}
	return n
}

// Clear removes all members within the view's range
// from the underlying set.
func (v *View[V]) Clear() {
	lo, hi, hasHi := v.b.Clamp(0)
	switch {
	case hasHi && hi <= lo:
		return
	case hasHi:
		v.s.RemoveInterval(interval.Interval[V]{First: lo, Last: hi - 1})
	case v.s.Len() > 0 && v.s.Last() >= lo:
		v.s.RemoveInterval(interval.Interval[V]{First: lo, Last: v.s.Last()})
	}
}

// First implements [set.Sorted.First].
func (v *View[V]) First() V {
	for r := range v.Intervals() {
		return r.First
	}
	set.Panicf(set.ErrNoSuchElement, "First called on empty view %v", v.b)
	panic("unreachable")
}

// Last implements [set.Sorted.Last].
func (v *View[V]) Last() V {
	rs := v.s.ranges
	j := len(rs)
	if hi, ok := v.b.Upper(); ok {
		j = sort.Search(len(rs), func(i int) bool {
			return rs[i].First >= hi
		})
	}
	if j > 0 {
		if r, ok := rs[j-1].Clip(v.b); ok {
			return r.Last
		}
	}
	set.Panicf(set.ErrNoSuchElement, "Last called on empty view %v", v.b)
	panic("unreachable")
}

// HeadSet implements [set.Sorted.HeadSet]. It panics with
// set.ErrOutOfRange if to lies outside the view's range.
func (v *View[V]) HeadSet(to V) set.Sorted[V] {
	checkDomain(to)
	return &View[V]{s: v.s, b: v.b.Head(to)}
}

// TailSet implements [set.Sorted.TailSet]. It panics with
// set.ErrOutOfRange if from lies outside the view's range.
func (v *View[V]) TailSet(from V) set.Sorted[V] {
	checkDomain(from)
	return &View[V]{s: v.s, b: v.b.Tail(from)}
}

// SubSet implements [set.Sorted.SubSet].
func (v *View[V]) SubSet(from, to V) set.Sorted[V] {
	checkDomain(from)
	return &View[V]{s: v.s, b: v.b.Sub(from, to)}
}

// Ranges returns the intervals of the underlying set that lie
// within the view, with the first and last clipped to its range.
func (v *View[V]) Ranges() []interval.Interval[V] {
	return slices.Collect(v.Intervals())
}

// Intervals returns an iterator over the clipped intervals
// in ascending order.
func (v *View[V]) Intervals() iter.Seq[interval.Interval[V]] {
	return v.s.clipped(v.b)
}

// All implements [set.Reader.All].
func (v *View[V]) All() iter.Seq[V] {
	return values(v.Intervals())
}

// Iterator implements [set.Set.Iterator].
func (v *View[V]) Iterator() set.Iterator[V] {
	return newIterator(v.s, v.b)
}

func (v *View[V]) String() string {
	return set.Format[V](v)
}

// iterator walks the intervals of a set, one value at a time,
// within bounds b.
type iterator[V constraints.Integer] struct {
	set.Cursor[V]
	s *Set[V]
	b set.Bounds[V]

	// next holds the smallest value not yet visited.
	next V
	// ri holds the index of the interval holding or following next.
	ri int
	// done is set when no values remain.
	done bool
}

func newIterator[V constraints.Integer](s *Set[V], b set.Bounds[V]) *iterator[V] {
	lo, _, _ := b.Clamp(0)
	it := &iterator[V]{s: s, b: b, next: lo}
	it.recalc()
	return it
}

// recalc finds the interval position of next afresh, which
// is needed whenever the intervals may have changed under
// the iterator.
func (it *iterator[V]) recalc() {
	it.ri = it.s.search(it.next)
}

func (it *iterator[V]) Next() bool {
	rs := it.s.ranges
	if it.done || it.ri >= len(rs) {
		return it.finish()
	}
	v := max(it.next, rs[it.ri].First)
	if !it.b.Contains(v) {
		return it.finish()
	}
	it.Set(v)
	if v == rs[it.ri].Last {
		it.ri++
	}
	it.next = v + 1
	if it.next < v {
		// v was the largest value representable.
		it.done = true
	}
	return true
}

func (it *iterator[V]) finish() bool {
	it.done = true
	it.Done()
	return false
}

func (it *iterator[V]) Remove() {
	it.s.Remove(it.Take())
	it.recalc()
}
