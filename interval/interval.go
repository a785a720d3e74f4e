// Package interval provides closed ranges of integers.
package interval

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/rogpeppe/primset/set"
)

// Interval represents the closed range [First, Last]. An interval is
// never empty: First ≤ Last always holds for intervals made by New
// and by the methods in this package.
//
// Intervals are values; sets holding intervals replace them rather
// than modify them.
type Interval[V constraints.Integer] struct {
	First, Last V
}

// New returns the interval [first, last]. It panics with
// set.ErrIllegalArgument if first > last.
func New[V constraints.Integer](first, last V) Interval[V] {
	if first > last {
		set.Panicf(set.ErrIllegalArgument, "interval [%v, %v] is empty", first, last)
	}
	return Interval[V]{First: first, Last: last}
}

// Single returns the interval [v, v].
func Single[V constraints.Integer](v V) Interval[V] {
	return Interval[V]{First: v, Last: v}
}

// Len returns the number of values in the interval. It panics with
// set.ErrIllegalArgument if that number does not fit in an int,
// which can happen only for 64-bit element types.
func (r Interval[V]) Len() int {
	n := uint64(r.Last) - uint64(r.First)
	if n >= math.MaxInt {
		set.Panicf(set.ErrIllegalArgument, "interval %v holds more than %d values", r, math.MaxInt)
	}
	return int(n) + 1
}

// Contains reports whether v lies within r.
func (r Interval[V]) Contains(v V) bool {
	return r.First <= v && v <= r.Last
}

// ContainsInterval reports whether every value of o lies within r.
func (r Interval[V]) ContainsInterval(o Interval[V]) bool {
	return r.First <= o.First && o.Last <= r.Last
}

// Intersects reports whether r and o have any value in common.
func (r Interval[V]) Intersects(o Interval[V]) bool {
	return r.First <= o.Last && o.First <= r.Last
}

// Adjacent reports whether r and o do not intersect but
// together form a contiguous range.
func (r Interval[V]) Adjacent(o Interval[V]) bool {
	// The subtractions cannot produce a false 1 even when they
	// wrap, because the operands are known to be ordered.
	return (r.Last < o.First && o.First-r.Last == 1) ||
		(o.Last < r.First && r.First-o.Last == 1)
}

// CanMergeWith reports whether r and o intersect or are adjacent,
// so that their union is itself an interval.
func (r Interval[V]) CanMergeWith(o Interval[V]) bool {
	return r.Intersects(o) || r.Adjacent(o)
}

// Merge returns the union of r and o. It panics with
// set.ErrIllegalArgument if the union is not an interval.
func (r Interval[V]) Merge(o Interval[V]) Interval[V] {
	if !r.CanMergeWith(o) {
		set.Panicf(set.ErrIllegalArgument, "cannot merge %v with %v", r, o)
	}
	return Interval[V]{First: min(r.First, o.First), Last: max(r.Last, o.Last)}
}

// Intersection returns the values common to r and o, and reports
// whether there are any.
func (r Interval[V]) Intersection(o Interval[V]) (Interval[V], bool) {
	if !r.Intersects(o) {
		return Interval[V]{}, false
	}
	return Interval[V]{First: max(r.First, o.First), Last: min(r.Last, o.Last)}, true
}

// Clip returns r restricted to the bounds b, and reports whether
// any value remains.
func (r Interval[V]) Clip(b set.Bounds[V]) (Interval[V], bool) {
	if lo, ok := b.Lower(); ok {
		if r.Last < lo {
			return Interval[V]{}, false
		}
		r.First = max(r.First, lo)
	}
	if hi, ok := b.Upper(); ok {
		if r.First >= hi {
			return Interval[V]{}, false
		}
		r.Last = min(r.Last, hi-1)
	}
	return r, true
}

func (r Interval[V]) String() string {
	return fmt.Sprintf("[%v,%v]", r.First, r.Last)
}
