// Package bitmap provides a sorted set of small non-negative integers
// held as a vector of bits, one per possible member.
//
// The memory used is proportional to the largest member, not to the
// number of members.
package bitmap

import (
	"iter"
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"

	"github.com/rogpeppe/primset/internal/setdebug"
	"github.com/rogpeppe/primset/set"
)

const (
	logWordBits = 6
	wordBits    = 1 << logWordBits
	wordMask    = wordBits - 1
	allBits     = ^uint64(0)
)

// Set is a set of non-negative integers. Value v is a member when
// bit v%64 of words[v/64] is set.
//
// The zero value is an empty set ready to use.
type Set[V constraints.Integer] struct {
	words []uint64

	// size holds the number of set bits.
	size int
}

var _ set.Sorted[int] = (*Set[int])(nil)

// New returns an empty set with room for values less than capacity
// before it needs to grow.
func New[V constraints.Integer](capacity int) *Set[V] {
	return &Set[V]{
		words: make([]uint64, 0, (max(capacity, 0)+wordMask)>>logWordBits),
	}
}

// Of returns a set holding the given values. It panics with
// set.ErrIllegalArgument if any value is negative.
func Of[V constraints.Integer](vals ...V) *Set[V] {
	var s Set[V]
	for _, v := range vals {
		s.Add(v)
	}
	return &s
}

func checkDomain[V constraints.Integer](v V) {
	if v < 0 {
		set.Panicf(set.ErrIllegalArgument, "bitmap cannot hold negative value %v", v)
	}
}

// toIndex converts a non-negative value to a bit index,
// saturating at math.MaxInt.
func toIndex[V constraints.Integer](v V) int {
	if u := uint64(v); u <= math.MaxInt {
		return int(u)
	}
	return math.MaxInt
}

// Add implements [set.Set.Add]. It panics with set.ErrIllegalArgument
// if v is negative. The word vector grows just enough to hold v.
func (s *Set[V]) Add(v V) bool {
	checkDomain(v)
	i := toIndex(v)
	w := i >> logWordBits
	if w >= len(s.words) {
		s.grow(w + 1)
	}
	bit := uint64(1) << (i & wordMask)
	if s.words[w]&bit != 0 {
		return false
	}
	s.words[w] |= bit
	s.size++
	s.checkInvariants()
	return true
}

func (s *Set[V]) grow(n int) {
	if lg := setdebug.Logger(); setdebug.Flags().LogResize {
		lg.Info("grow", "type", "bitmap", "old", len(s.words), "new", n)
	}
	s.words = append(s.words, make([]uint64, n-len(s.words))...)
}

// Remove implements [set.Set.Remove].
func (s *Set[V]) Remove(v V) bool {
	if v < 0 {
		return false
	}
	i := toIndex(v)
	w := i >> logWordBits
	if w >= len(s.words) {
		return false
	}
	bit := uint64(1) << (i & wordMask)
	if s.words[w]&bit == 0 {
		return false
	}
	s.words[w] &^= bit
	s.size--
	s.checkInvariants()
	return true
}

// Contains implements [set.Reader.Contains].
func (s *Set[V]) Contains(v V) bool {
	if v < 0 {
		return false
	}
	i := toIndex(v)
	w := i >> logWordBits
	return w < len(s.words) && s.words[w]&(uint64(1)<<(i&wordMask)) != 0
}

// Len implements [set.Reader.Len].
func (s *Set[V]) Len() int {
	return s.size
}

// Clear implements [set.Set.Clear]. The word vector
// keeps its length.
func (s *Set[V]) Clear() {
	clear(s.words)
	s.size = 0
}

// TrimToSize drops trailing empty words and recounts the members.
func (s *Set[V]) TrimToSize() {
	n := len(s.words)
	for n > 0 && s.words[n-1] == 0 {
		n--
	}
	s.words = append([]uint64(nil), s.words[:n]...)
	s.size = popCount(s.words)
}

// First implements [set.Sorted.First].
func (s *Set[V]) First() V {
	i := s.nextSet(0)
	if i < 0 {
		set.Panicf(set.ErrNoSuchElement, "First called on empty set")
	}
	return V(i)
}

// Last implements [set.Sorted.Last].
func (s *Set[V]) Last() V {
	i := s.prevSet(math.MaxInt)
	if i < 0 {
		set.Panicf(set.ErrNoSuchElement, "Last called on empty set")
	}
	return V(i)
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

// All implements [set.Reader.All], producing members in ascending order.
func (s *Set[V]) All() iter.Seq[V] {
	return s.scan(0, math.MaxInt)
}

// Iterator implements [set.Set.Iterator]. Members are visited
// in ascending order.
func (s *Set[V]) Iterator() set.Iterator[V] {
	return &iterator[V]{s: s, next: 0, hi: math.MaxInt}
}

// Clone returns a copy of s that can be modified independently.
func (s *Set[V]) Clone() *Set[V] {
	return &Set[V]{
		words: append([]uint64(nil), s.words...),
		size:  s.size,
	}
}

// Equal reports whether s and t have the same members.
func (s *Set[V]) Equal(t *Set[V]) bool {
	if s.size != t.size {
		return false
	}
	n := min(len(s.words), len(t.words))
	for i := range n {
		if s.words[i] != t.words[i] {
			return false
		}
	}
	// Equal sizes and equal common prefixes imply the
	// remaining words are all zero.
	return true
}

// UnionWith adds all the members of t to s
// and reports whether s changed.
func (s *Set[V]) UnionWith(t *Set[V]) bool {
	if len(t.words) > len(s.words) {
		s.grow(len(t.words))
	}
	for i, w := range t.words {
		s.words[i] |= w
	}
	return s.recount()
}

// IntersectWith removes from s all members not in t
// and reports whether s changed.
func (s *Set[V]) IntersectWith(t *Set[V]) bool {
	for i := range s.words {
		if i < len(t.words) {
			s.words[i] &= t.words[i]
		} else {
			s.words[i] = 0
		}
	}
	return s.recount()
}

// DifferenceWith removes from s all members of t
// and reports whether s changed.
func (s *Set[V]) DifferenceWith(t *Set[V]) bool {
	for i := range min(len(s.words), len(t.words)) {
		s.words[i] &^= t.words[i]
	}
	return s.recount()
}

// recount recomputes the size after a bulk operation
// and reports whether it changed.
func (s *Set[V]) recount() bool {
	old := s.size
	s.size = popCount(s.words)
	s.checkInvariants()
	return s.size != old
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

// nextSet returns the smallest member ≥ from, or -1 if there is none.
func (s *Set[V]) nextSet(from int) int {
	w := from >> logWordBits
	if w >= len(s.words) {
		return -1
	}
	word := s.words[w] & (allBits << (from & wordMask))
	for word == 0 {
		w++
		if w >= len(s.words) {
			return -1
		}
		word = s.words[w]
	}
	return w<<logWordBits + bits.TrailingZeros64(word)
}

// prevSet returns the largest member ≤ from, or -1 if there is none.
func (s *Set[V]) prevSet(from int) int {
	if from < 0 || len(s.words) == 0 {
		return -1
	}
	w := from >> logWordBits
	mask := allBits >> (wordMask - from&wordMask)
	if w >= len(s.words) {
		w, mask = len(s.words)-1, allBits
	}
	word := s.words[w] & mask
	for word == 0 {
		w--
		if w < 0 {
			return -1
		}
		word = s.words[w]
	}
	return w<<logWordBits + wordMask - bits.LeadingZeros64(word)
}

// rangeWords calls f for each word overlapping [lo, hi), passing
// the word index and a mask selecting the bits in range.
func (s *Set[V]) rangeWords(lo, hi int, f func(w int, mask uint64)) {
	hi = min(hi, len(s.words)<<logWordBits)
	if lo >= hi {
		return
	}
	wlo, whi := lo>>logWordBits, (hi-1)>>logWordBits
	lowMask := allBits << (lo & wordMask)
	highMask := allBits >> (wordMask - (hi-1)&wordMask)
	if wlo == whi {
		f(wlo, lowMask&highMask)
		return
	}
	f(wlo, lowMask)
	for w := wlo + 1; w < whi; w++ {
		f(w, allBits)
	}
	f(whi, highMask)
}

// countRange returns the number of members in [lo, hi).
func (s *Set[V]) countRange(lo, hi int) int {
	n := 0
	s.rangeWords(lo, hi, func(w int, mask uint64) {
		n += bits.OnesCount64(s.words[w] & mask)
	})
	return n
}

// clearRange removes all members in [lo, hi).
func (s *Set[V]) clearRange(lo, hi int) {
	s.rangeWords(lo, hi, func(w int, mask uint64) {
		s.size -= bits.OnesCount64(s.words[w] & mask)
		s.words[w] &^= mask
	})
	s.checkInvariants()
}

// scan returns an iterator over the members in [lo, hi).
func (s *Set[V]) scan(lo, hi int) iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := s.nextSet(lo); i >= 0 && i < hi; i = s.nextSet(i + 1) {
			if !yield(V(i)) {
				return
			}
		}
	}
}

func popCount(words []uint64) int {
	n := 0
	for _, w := range words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s *Set[V]) checkInvariants() {
	if !setdebug.Flags().CheckInvariants {
		return
	}
	if n := popCount(s.words); n != s.size {
		set.Panicf(set.ErrIllegalState, "bitmap.Set: size %d but %d bits set", s.size, n)
	}
}

// iterator visits the members in [next, hi) in ascending order.
type iterator[V constraints.Integer] struct {
	set.Cursor[V]
	s    *Set[V]
	next int
	hi   int
}

func (it *iterator[V]) Next() bool {
	i := it.s.nextSet(it.next)
	if i < 0 || i >= it.hi {
		it.next = it.hi
		it.Done()
		return false
	}
	it.next = i + 1
	it.Set(V(i))
	return true
}

func (it *iterator[V]) Remove() {
	it.s.Remove(it.Take())
}
