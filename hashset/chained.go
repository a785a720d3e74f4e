package hashset

import (
	"iter"
	"slices"

	"github.com/rogpeppe/primset/internal/setdebug"
	"github.com/rogpeppe/primset/set"
)

// Chained is a hash set using separate chaining: a prime-sized array
// of buckets, each holding the values that hash to it.
//
// Buckets are plain slices; most hold zero to three values, so a slice
// costs less than a linked node per value.
type Chained[V comparable] struct {
	cfg     Config[V]
	buckets [][]V
	size    int

	// expandAt holds the size that triggers a rehash.
	expandAt int
}

var _ set.Set[int] = (*Chained[int])(nil)

// NewChained returns an empty set using the given configuration,
// which may be nil.
func NewChained[V comparable](cfg *Config[V]) (*Chained[V], error) {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	s := &Chained[V]{cfg: cfg.resolved()}
	s.alloc(s.cfg.initialCapacity())
	return s, nil
}

// ChainedOf returns a set with the default configuration
// holding the given values.
func ChainedOf[V comparable](vals ...V) *Chained[V] {
	var s Chained[V]
	for _, v := range vals {
		s.Add(v)
	}
	return &s
}

func (s *Chained[V]) init() {
	if s.buckets == nil {
		s.cfg = s.cfg.resolved()
		s.alloc(s.cfg.initialCapacity())
	}
}

func (s *Chained[V]) alloc(capacity int) {
	s.buckets = make([][]V, capacity)
	s.size = 0
	s.expandAt = s.cfg.expandAt(capacity)
}

func (s *Chained[V]) bucket(v V) int {
	return int(s.cfg.Hash(v) % uint64(len(s.buckets)))
}

// Add implements [set.Set.Add].
func (s *Chained[V]) Add(v V) bool {
	s.init()
	b := s.bucket(v)
	if slices.Contains(s.buckets[b], v) {
		return false
	}
	s.buckets[b] = append(s.buckets[b], v)
	s.size++
	if s.size >= s.expandAt {
		s.rehash(s.cfg.grow(len(s.buckets), s.size))
	}
	s.checkInvariants()
	return true
}

// Remove implements [set.Set.Remove].
func (s *Chained[V]) Remove(v V) bool {
	if s.size == 0 {
		return false
	}
	b := s.bucket(v)
	i := slices.Index(s.buckets[b], v)
	if i < 0 {
		return false
	}
	s.removeAt(b, i)
	s.checkInvariants()
	return true
}

func (s *Chained[V]) removeAt(b, i int) {
	if len(s.buckets[b]) == 1 {
		s.buckets[b] = nil
	} else {
		s.buckets[b] = slices.Delete(s.buckets[b], i, i+1)
	}
	s.size--
}

// Contains implements [set.Reader.Contains].
func (s *Chained[V]) Contains(v V) bool {
	if s.size == 0 {
		return false
	}
	return slices.Contains(s.buckets[s.bucket(v)], v)
}

// Len implements [set.Reader.Len].
func (s *Chained[V]) Len() int {
	return s.size
}

// Capacity returns the number of buckets.
func (s *Chained[V]) Capacity() int {
	return len(s.buckets)
}

// Clear implements [set.Set.Clear]. The bucket array keeps its size.
func (s *Chained[V]) Clear() {
	clear(s.buckets)
	s.size = 0
}

// TrimToSize shrinks the bucket array to the smallest prime
// size that holds the current members.
func (s *Chained[V]) TrimToSize() {
	if s.buckets == nil {
		return
	}
	s.rehash(s.cfg.fit(minCapacity, s.size))
}

// rehash redistributes every member into a fresh bucket array.
func (s *Chained[V]) rehash(capacity int) {
	if lg := setdebug.Logger(); setdebug.Flags().LogResize {
		lg.Info("rehash", "type", "chained", "old", len(s.buckets), "new", capacity, "size", s.size)
	}
	old := s.buckets
	s.alloc(capacity)
	for _, bucket := range old {
		for _, v := range bucket {
			b := s.bucket(v)
			s.buckets[b] = append(s.buckets[b], v)
			s.size++
		}
	}
}

// Clone returns a copy of s that can be modified independently.
func (s *Chained[V]) Clone() *Chained[V] {
	c := *s
	if s.buckets != nil {
		c.buckets = make([][]V, len(s.buckets))
		for i, b := range s.buckets {
			c.buckets[i] = slices.Clone(b)
		}
	}
	return &c
}

// All implements [set.Reader.All]. Members are produced
// bucket by bucket.
func (s *Chained[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, bucket := range s.buckets {
			for _, v := range bucket {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Iterator implements [set.Set.Iterator].
func (s *Chained[V]) Iterator() set.Iterator[V] {
	return &chainedIter[V]{s: s}
}

func (s *Chained[V]) String() string {
	return set.Format[V](s)
}

// chainedIter walks the buckets in index order and the
// entries of each bucket in turn. (b, i) is the position of
// the next entry to consider.
type chainedIter[V comparable] struct {
	set.Cursor[V]
	s    *Chained[V]
	b, i int
}

func (it *chainedIter[V]) Next() bool {
	for ; it.b < len(it.s.buckets); it.b, it.i = it.b+1, 0 {
		if bucket := it.s.buckets[it.b]; it.i < len(bucket) {
			it.Set(bucket[it.i])
			it.i++
			return true
		}
	}
	it.Done()
	return false
}

// Remove deletes the current value from its bucket. Later entries
// in the bucket shift down, so the position steps back to match.
func (it *chainedIter[V]) Remove() {
	it.Take()
	it.i--
	it.s.removeAt(it.b, it.i)
	it.s.checkInvariants()
}

func (s *Chained[V]) checkInvariants() {
	if !setdebug.Flags().CheckInvariants {
		return
	}
	n := 0
	for b, bucket := range s.buckets {
		for _, v := range bucket {
			if s.bucket(v) != b {
				set.Panicf(set.ErrIllegalState, "hashset.Chained: %v stored in bucket %d, not %d", v, b, s.bucket(v))
			}
		}
		n += len(bucket)
	}
	if n != s.size {
		set.Panicf(set.ErrIllegalState, "hashset.Chained: size %d but %d entries", s.size, n)
	}
}
