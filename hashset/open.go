package hashset

import (
	"iter"

	"github.com/rogpeppe/primset/internal/setdebug"
	"github.com/rogpeppe/primset/set"
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotRemoved
)

// Open is a hash set using open addressing. Collisions are resolved by
// double hashing over a prime-sized table; removed entries leave a
// tombstone so that probe sequences passing through them stay intact.
type Open[V comparable] struct {
	cfg    Config[V]
	keys   []V
	states []slotState

	// size holds the number of occupied slots.
	size int

	// used holds the number of occupied and removed slots.
	// It decides when the table grows.
	used int

	// expandAt holds the value of used that triggers a rehash.
	expandAt int
}

var _ set.Set[int] = (*Open[int])(nil)

// NewOpen returns an empty set using the given configuration,
// which may be nil.
func NewOpen[V comparable](cfg *Config[V]) (*Open[V], error) {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	s := &Open[V]{cfg: cfg.resolved()}
	s.alloc(s.cfg.initialCapacity())
	return s, nil
}

// OpenOf returns a set with the default configuration
// holding the given values.
func OpenOf[V comparable](vals ...V) *Open[V] {
	var s Open[V]
	for _, v := range vals {
		s.Add(v)
	}
	return &s
}

func (s *Open[V]) init() {
	if s.keys == nil {
		s.cfg = s.cfg.resolved()
		s.alloc(s.cfg.initialCapacity())
	}
}

func (s *Open[V]) alloc(capacity int) {
	s.keys = make([]V, capacity)
	s.states = make([]slotState, capacity)
	s.size, s.used = 0, 0
	s.expandAt = s.cfg.expandAt(capacity)
}

// probe looks for v. If it is present, it returns its slot and true.
// Otherwise it returns the slot where v should be stored: the first
// tombstone passed on the way, or else the empty slot that ended
// the search.
func (s *Open[V]) probe(v V) (int, bool) {
	n := uint64(len(s.keys))
	h := s.cfg.Hash(v)
	i := h % n
	stride := 1 + h%(n-2)
	free := -1
	for {
		switch s.states[i] {
		case slotEmpty:
			if free < 0 {
				free = int(i)
			}
			return free, false
		case slotRemoved:
			if free < 0 {
				free = int(i)
			}
		case slotOccupied:
			if s.keys[i] == v {
				return int(i), true
			}
		}
		i += stride
		if i >= n {
			i -= n
		}
	}
}

// Add implements [set.Set.Add].
func (s *Open[V]) Add(v V) bool {
	s.init()
	i, found := s.probe(v)
	if found {
		return false
	}
	if s.states[i] == slotEmpty {
		s.used++
	}
	s.keys[i] = v
	s.states[i] = slotOccupied
	s.size++
	if s.used >= s.expandAt {
		s.rehash(s.cfg.grow(len(s.keys), s.size))
	}
	s.checkInvariants()
	return true
}

// Remove implements [set.Set.Remove].
func (s *Open[V]) Remove(v V) bool {
	if s.size == 0 {
		return false
	}
	i, found := s.probe(v)
	if !found {
		return false
	}
	s.removeSlot(i)
	s.checkInvariants()
	return true
}

func (s *Open[V]) removeSlot(i int) {
	s.keys[i] = *new(V)
	s.states[i] = slotRemoved
	s.size--
}

// Contains implements [set.Reader.Contains].
func (s *Open[V]) Contains(v V) bool {
	if s.size == 0 {
		return false
	}
	_, found := s.probe(v)
	return found
}

// Len implements [set.Reader.Len].
func (s *Open[V]) Len() int {
	return s.size
}

// Capacity returns the number of slots in the table.
func (s *Open[V]) Capacity() int {
	return len(s.keys)
}

// Clear implements [set.Set.Clear]. The table keeps its capacity.
func (s *Open[V]) Clear() {
	clear(s.keys)
	clear(s.states)
	s.size, s.used = 0, 0
}

// TrimToSize shrinks the table to the smallest prime capacity that
// holds the current members, discarding all tombstones.
func (s *Open[V]) TrimToSize() {
	if s.keys == nil {
		return
	}
	s.rehash(s.cfg.fit(minCapacity, s.size))
}

// rehash moves every member into a fresh table of the given capacity.
// Tombstones are not carried over, so afterwards used == size.
func (s *Open[V]) rehash(capacity int) {
	if lg := setdebug.Logger(); setdebug.Flags().LogResize {
		lg.Info("rehash", "type", "open", "old", len(s.keys), "new", capacity, "size", s.size, "used", s.used)
	}
	keys, states := s.keys, s.states
	s.alloc(capacity)
	for i, st := range states {
		if st != slotOccupied {
			continue
		}
		j, _ := s.probe(keys[i])
		s.keys[j] = keys[i]
		s.states[j] = slotOccupied
		s.size++
		s.used++
	}
}

// Clone returns a copy of s that can be modified independently.
func (s *Open[V]) Clone() *Open[V] {
	c := *s
	c.keys = append([]V(nil), s.keys...)
	c.states = append([]slotState(nil), s.states...)
	return &c
}

// All implements [set.Reader.All]. Members are produced in table order.
func (s *Open[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i, st := range s.states {
			if st == slotOccupied && !yield(s.keys[i]) {
				return
			}
		}
	}
}

// Iterator implements [set.Set.Iterator].
func (s *Open[V]) Iterator() set.Iterator[V] {
	return &openIter[V]{s: s, slot: -1}
}

func (s *Open[V]) String() string {
	return set.Format[V](s)
}

type openIter[V comparable] struct {
	set.Cursor[V]
	s    *Open[V]
	next int
	slot int
}

func (it *openIter[V]) Next() bool {
	for i := it.next; i < len(it.s.states); i++ {
		if it.s.states[i] == slotOccupied {
			it.slot, it.next = i, i+1
			it.Set(it.s.keys[i])
			return true
		}
	}
	it.next, it.slot = len(it.s.states), -1
	it.Done()
	return false
}

// Remove marks the slot of the current value as a tombstone.
func (it *openIter[V]) Remove() {
	it.Take()
	it.s.removeSlot(it.slot)
	it.s.checkInvariants()
}

func (s *Open[V]) checkInvariants() {
	if !setdebug.Flags().CheckInvariants {
		return
	}
	occupied, removed := 0, 0
	for i, st := range s.states {
		switch st {
		case slotOccupied:
			occupied++
			if j, ok := s.probe(s.keys[i]); !ok || j != i {
				set.Panicf(set.ErrIllegalState, "hashset.Open: %v in slot %d not reachable by probing", s.keys[i], i)
			}
		case slotRemoved:
			removed++
		}
	}
	if occupied != s.size || occupied+removed != s.used || s.used >= len(s.keys) {
		set.Panicf(set.ErrIllegalState, "hashset.Open: size %d used %d; counted occupied %d removed %d in %d slots", s.size, s.used, occupied, removed, len(s.keys))
	}
}
