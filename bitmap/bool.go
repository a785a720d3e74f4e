package bitmap

import (
	"iter"

	"github.com/rogpeppe/primset/set"
)

// BoolSet is a set of booleans, held as a two-bit bitmap
// with false as 0 and true as 1. Iteration visits false first.
//
// The zero value is an empty set ready to use.
type BoolSet struct {
	bits Set[uint8]
}

var _ set.Set[bool] = (*BoolSet)(nil)

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Add implements [set.Set.Add].
func (s *BoolSet) Add(b bool) bool {
	return s.bits.Add(boolBit(b))
}

// Remove implements [set.Set.Remove].
func (s *BoolSet) Remove(b bool) bool {
	return s.bits.Remove(boolBit(b))
}

// Contains implements [set.Reader.Contains].
func (s *BoolSet) Contains(b bool) bool {
	return s.bits.Contains(boolBit(b))
}

// Len implements [set.Reader.Len].
func (s *BoolSet) Len() int {
	return s.bits.Len()
}

// Clear implements [set.Set.Clear].
func (s *BoolSet) Clear() {
	s.bits.Clear()
}

// All implements [set.Reader.All].
func (s *BoolSet) All() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for x := range s.bits.All() {
			if !yield(x == 1) {
				return
			}
		}
	}
}

// Iterator implements [set.Set.Iterator].
func (s *BoolSet) Iterator() set.Iterator[bool] {
	return boolIter{s.bits.Iterator()}
}

func (s *BoolSet) String() string {
	return set.Format[bool](s)
}

type boolIter struct {
	it set.Iterator[uint8]
}

func (it boolIter) Next() bool  { return it.it.Next() }
func (it boolIter) Value() bool { return it.it.Value() == 1 }
func (it boolIter) Remove()     { it.it.Remove() }
