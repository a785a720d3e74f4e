// Package merge combines strictly ascending sequences of values
// in a single pass, without materializing either input.
package merge

import (
	"cmp"
	"iter"

	"github.com/rogpeppe/primset/set"
)

// Join decides what to produce for a value x found in the first
// sequence (in0), the second (in1) or both. It returns false
// to produce nothing for x.
type Join[T, R any] func(x T, in0, in1 bool) (R, bool)

// Union returns the values present in either sequence.
func Union[T cmp.Ordered](it0, it1 iter.Seq[T]) iter.Seq[T] {
	return General(it0, it1, cmp.Compare[T], keepIf[T](func(in0, in1 bool) bool { return true }))
}

// Intersection returns the values present in both sequences.
func Intersection[T cmp.Ordered](it0, it1 iter.Seq[T]) iter.Seq[T] {
	return General(it0, it1, cmp.Compare[T], keepIf[T](func(in0, in1 bool) bool { return in0 && in1 }))
}

// Difference returns the values present in it0 but not it1.
func Difference[T cmp.Ordered](it0, it1 iter.Seq[T]) iter.Seq[T] {
	return General(it0, it1, cmp.Compare[T], keepIf[T](func(in0, in1 bool) bool { return in0 && !in1 }))
}

// UnionMulti returns the values present in any of the sequences.
func UnionMulti[T cmp.Ordered](its ...iter.Seq[T]) iter.Seq[T] {
	if len(its) == 0 {
		return func(yield func(T) bool) {}
	}
	r := its[0]
	for _, it := range its[1:] {
		r = Union(r, it)
	}
	return r
}

func keepIf[T any](f func(in0, in1 bool) bool) Join[T, T] {
	return func(x T, in0, in1 bool) (T, bool) {
		return x, f(in0, in1)
	}
}

// General merges two sequences ordered by cmp, calling join once for
// each distinct value. It panics with set.ErrIllegalArgument if either
// sequence is not strictly ascending.
func General[T, R any](it0, it1 iter.Seq[T], cmp func(T, T) int, join Join[T, R]) iter.Seq[R] {
	return func(yield func(R) bool) {
		next0, stop0 := iter.Pull(it0)
		defer stop0()
		next1, stop1 := iter.Pull(it1)
		defer stop1()
		in0 := input[T]{next: next0, cmp: cmp, name: "first"}
		in1 := input[T]{next: next1, cmp: cmp, name: "second"}
		emit := func(x T, has0, has1 bool) bool {
			r, ok := join(x, has0, has1)
			return !ok || yield(r)
		}
		for {
			in0.fill()
			in1.fill()
			switch {
			case in0.has && in1.has:
				c := cmp(in0.x, in1.x)
				switch {
				case c < 0:
					if !emit(in0.x, true, false) {
						return
					}
					in0.has = false
				case c > 0:
					if !emit(in1.x, false, true) {
						return
					}
					in1.has = false
				default:
					if !emit(in0.x, true, true) {
						return
					}
					in0.has, in1.has = false, false
				}
			case in0.has:
				if !emit(in0.x, true, false) {
					return
				}
				in0.has = false
			case in1.has:
				if !emit(in1.x, false, true) {
					return
				}
				in1.has = false
			default:
				return
			}
		}
	}
}

// input holds the lookahead value for one side of a merge.
type input[T any] struct {
	next    func() (T, bool)
	cmp     func(T, T) int
	name    string
	x       T
	has     bool
	started bool
}

func (in *input[T]) fill() {
	if in.has || in.next == nil {
		return
	}
	x, ok := in.next()
	if !ok {
		in.next = nil
		return
	}
	if in.started && in.cmp(in.x, x) >= 0 {
		set.Panicf(set.ErrIllegalArgument, "out of order value in %s sequence (%v after %v)", in.name, x, in.x)
	}
	in.x, in.has, in.started = x, true, true
}
