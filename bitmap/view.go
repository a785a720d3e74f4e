package bitmap

import (
	"iter"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/rogpeppe/primset/set"
)

// View is a live view of the members of a Set within a range.
// It holds no members of its own: every operation goes to the
// underlying set, so changes to either are visible through the
// other. The set must outlive the view.
type View[V constraints.Integer] struct {
	s *Set[V]
	b set.Bounds[V]
}

var _ set.Sorted[int] = (*View[int])(nil)

// span returns the view's range as bit indexes [lo, hi).
func (v *View[V]) span() (lo, hi int) {
	hi = math.MaxInt
	if x, ok := v.b.Lower(); ok {
		lo = toIndex(x)
	}
	if x, ok := v.b.Upper(); ok {
		hi = toIndex(x)
	}
	return lo, hi
}

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
// Only the words at either end of the range are masked;
// the words between are counted whole.
func (v *View[V]) Len() int {
	return v.s.countRange(v.span())
}

// Clear removes all members within the view's range
// from the underlying set.
func (v *View[V]) Clear() {
	v.s.clearRange(v.span())
}

// First implements [set.Sorted.First].
func (v *View[V]) First() V {
	lo, hi := v.span()
	i := v.s.nextSet(lo)
	if i < 0 || i >= hi {
		set.Panicf(set.ErrNoSuchElement, "First called on empty view %v", v.b)
	}
	return V(i)
}

// Last implements [set.Sorted.Last].
func (v *View[V]) Last() V {
	lo, hi := v.span()
	i := v.s.prevSet(hi - 1)
	if i < lo {
		set.Panicf(set.ErrNoSuchElement, "Last called on empty view %v", v.b)
	}
	return V(i)
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

// All implements [set.Reader.All].
func (v *View[V]) All() iter.Seq[V] {
	return v.s.scan(v.span())
}

// Iterator implements [set.Set.Iterator].
func (v *View[V]) Iterator() set.Iterator[V] {
	lo, hi := v.span()
	return &iterator[V]{s: v.s, next: lo, hi: hi}
}

func (v *View[V]) String() string {
	return set.Format[V](v)
}
