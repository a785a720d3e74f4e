// Package set defines the contracts shared by every set implementation
// in this module, together with the algorithms that can be written once
// in terms of those contracts: bulk operations, equality, hashing and
// conversion to slices.
//
// A minimal implementation needs only Add, Remove, Contains, Len,
// Clear, All and Iterator; everything else here is derived from them.
//
// None of the implementations are safe for concurrent use. Callers must
// serialize access to a set and every view derived from it.
package set

import (
	"bytes"
	"fmt"
	"iter"

	"golang.org/x/exp/constraints"
)

// Reader is the read-only part of a set. A read-only set
// is simply a set handed out as a Reader.
type Reader[V comparable] interface {
	// Contains reports whether v is a member of the set.
	Contains(v V) bool

	// Len returns the number of members.
	Len() int

	// All returns an iterator over all the members.
	All() iter.Seq[V]
}

// Set defines a mutable set of values.
type Set[V comparable] interface {
	Reader[V]

	// Add adds v to the set and reports whether
	// it was not already present.
	Add(v V) bool

	// Remove removes v from the set and reports
	// whether it was present.
	Remove(v V) bool

	// Clear removes all members.
	Clear()

	// Iterator returns an iterator that can remove
	// members as it goes.
	Iterator() Iterator[V]
}

// Iterator visits each member of a set in turn.
//
// Iterators do not detect structural changes made other than through
// their own Remove method; the results of iterating a set that is
// modified in any other way are unspecified.
type Iterator[V any] interface {
	// Next advances to the next member and reports
	// whether there is one.
	Next() bool

	// Value returns the member most recently reached by Next.
	Value() V

	// Remove removes the member most recently returned by Next
	// from the underlying set. It panics with ErrIllegalState
	// if Next has not been called since the last Remove
	// or if Next returned false.
	Remove()
}

// Sorted is a set of integers that can be traversed in order
// and viewed over a bounded range.
//
// The views returned by HeadSet, TailSet and SubSet share storage
// with the set they were derived from: changes to either are
// visible through the other.
type Sorted[V constraints.Integer] interface {
	Set[V]

	// First returns the smallest member. It panics with
	// ErrNoSuchElement if the set is empty.
	First() V

	// Last returns the largest member. It panics with
	// ErrNoSuchElement if the set is empty.
	Last() V

	// HeadSet returns a view of the members less than to.
	HeadSet(to V) Sorted[V]

	// TailSet returns a view of the members greater than or equal to from.
	TailSet(from V) Sorted[V]

	// SubSet returns a view of the members in [from, to).
	SubSet(from, to V) Sorted[V]
}

// IsEmpty reports whether s has no members.
func IsEmpty[V comparable](s Reader[V]) bool {
	return s.Len() == 0
}

// ContainsAll reports whether s contains every value in seq.
func ContainsAll[V comparable](s Reader[V], seq iter.Seq[V]) bool {
	for v := range seq {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// AddAll adds every value in seq to s and reports whether s changed.
func AddAll[V comparable](s Set[V], seq iter.Seq[V]) bool {
	changed := false
	for v := range seq {
		if s.Add(v) {
			changed = true
		}
	}
	return changed
}

// RemoveAll removes from s every member contained in other and
// reports whether s changed. Only members of s are visited, so
// values of other that s cannot hold are ignored.
func RemoveAll[V comparable](s Set[V], other Reader[V]) bool {
	changed := false
	for it := s.Iterator(); it.Next(); {
		if other.Contains(it.Value()) {
			it.Remove()
			changed = true
		}
	}
	return changed
}

// RetainAll removes from s every member not contained in keep and
// reports whether s changed.
func RetainAll[V comparable](s Set[V], keep Reader[V]) bool {
	changed := false
	for it := s.Iterator(); it.Next(); {
		if !keep.Contains(it.Value()) {
			it.Remove()
			changed = true
		}
	}
	return changed
}

// Equal reports whether a and b have the same members,
// regardless of how either is implemented.
func Equal[V comparable](a, b Reader[V]) bool {
	if a.Len() != b.Len() {
		return false
	}
	return ContainsAll[V](a, b.All())
}

// HashCode returns the sum of the hashes of the members of s.
// The sum is independent of iteration order, so sets that
// are Equal have the same hash code.
func HashCode[V comparable](s Reader[V]) uint64 {
	var h uint64
	for v := range s.All() {
		h += Hash(v)
	}
	return h
}

// ToSlice returns the members of s in iteration order.
func ToSlice[V comparable](s Reader[V]) []V {
	vs := make([]V, 0, s.Len())
	for v := range s.All() {
		vs = append(vs, v)
	}
	return vs
}

// Collect adds all the values from seq to s and returns s.
func Collect[V comparable, S Set[V]](s S, seq iter.Seq[V]) S {
	AddAll[V](s, seq)
	return s
}

// Format returns the members of s in iteration order
// as a string of the form "{1 2 3}".
func Format[V comparable](s Reader[V]) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for v := range s.All() {
		if buf.Len() > len("{") {
			buf.WriteByte(' ')
		}
		fmt.Fprint(&buf, v)
	}
	buf.WriteByte('}')
	return buf.String()
}
