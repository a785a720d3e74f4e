package set

import (
	"cmp"
	"fmt"
)

// BoundKind describes which bounds a Bounds value has.
type BoundKind uint8

const (
	Unbounded BoundKind = iota
	LowerOnly
	UpperOnly
	BothBounds
)

// Bounds holds the range of a sorted view: an optional inclusive lower
// bound and an optional exclusive upper bound. The zero value is
// unbounded. When both bounds are present, lower ≤ upper.
type Bounds[V cmp.Ordered] struct {
	lo, hi       V
	hasLo, hasHi bool
}

// Kind returns which bounds are present.
func (b Bounds[V]) Kind() BoundKind {
	switch {
	case b.hasLo && b.hasHi:
		return BothBounds
	case b.hasLo:
		return LowerOnly
	case b.hasHi:
		return UpperOnly
	}
	return Unbounded
}

// Lower returns the inclusive lower bound, if any.
func (b Bounds[V]) Lower() (V, bool) {
	return b.lo, b.hasLo
}

// Upper returns the exclusive upper bound, if any.
func (b Bounds[V]) Upper() (V, bool) {
	return b.hi, b.hasHi
}

// Contains reports whether v lies within the bounds.
func (b Bounds[V]) Contains(v V) bool {
	return (!b.hasLo || v >= b.lo) && (!b.hasHi || v < b.hi)
}

// Check panics with ErrOutOfRange if v does not lie within the bounds.
func (b Bounds[V]) Check(v V) {
	if !b.Contains(v) {
		Panicf(ErrOutOfRange, "%v not in %v", v, b)
	}
}

// Head returns the bounds narrowed to values less than to.
// It panics with ErrOutOfRange if to lies outside b.
func (b Bounds[V]) Head(to V) Bounds[V] {
	b.checkBound("upper", to)
	b.hi, b.hasHi = to, true
	return b
}

// Tail returns the bounds narrowed to values greater than
// or equal to from. It panics with ErrOutOfRange if from
// lies outside b.
func (b Bounds[V]) Tail(from V) Bounds[V] {
	b.checkBound("lower", from)
	b.lo, b.hasLo = from, true
	return b
}

// Sub returns the bounds narrowed to [from, to). It panics with
// ErrIllegalArgument if from > to, and with ErrOutOfRange if
// either bound lies outside b.
func (b Bounds[V]) Sub(from, to V) Bounds[V] {
	if from > to {
		Panicf(ErrIllegalArgument, "lower bound %v greater than upper bound %v", from, to)
	}
	return b.Tail(from).Head(to)
}

// checkBound checks that a new bound x lies within [lo, hi].
// The upper end is inclusive because an exclusive upper bound
// equal to the current one denotes the same range.
func (b Bounds[V]) checkBound(which string, x V) {
	if (b.hasLo && x < b.lo) || (b.hasHi && x > b.hi) {
		Panicf(ErrOutOfRange, "%s bound %v not in %v", which, x, b)
	}
}

// Clamp returns the effective lower bound, which is at least min,
// and the upper bound if there is one.
func (b Bounds[V]) Clamp(min V) (lo V, hi V, hasHi bool) {
	lo = min
	if b.hasLo && b.lo > lo {
		lo = b.lo
	}
	return lo, b.hi, b.hasHi
}

func (b Bounds[V]) String() string {
	switch b.Kind() {
	case BothBounds:
		return fmt.Sprintf("[%v, %v)", b.lo, b.hi)
	case LowerOnly:
		return fmt.Sprintf("[%v, ...)", b.lo)
	case UpperOnly:
		return fmt.Sprintf("[..., %v)", b.hi)
	}
	return "[..., ...)"
}
