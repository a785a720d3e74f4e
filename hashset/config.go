// Package hashset provides hash-table backed implementations of
// [set.Set]: Open, which uses open addressing with double hashing,
// and Chained, which uses separate chaining.
//
// The zero value of either type is an empty set using the default
// configuration. Neither type is safe for concurrent use.
package hashset

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/rogpeppe/primset/set"
)

const (
	DefaultCapacity     = 11
	DefaultLoadFactor   = 0.75
	DefaultGrowthFactor = 1.0

	// minCapacity is the smallest table size. Double hashing
	// needs len-2 ≥ 1.
	minCapacity = 3
)

// Config holds the tuning parameters of a hash set.
// Zero fields select the defaults.
type Config[V comparable] struct {
	// InitialCapacity is the initial number of table slots or
	// buckets. It is rounded up to a prime.
	InitialCapacity int

	// LoadFactor is the fraction of the table that may be in use
	// before the table grows. It must be in (0, 1).
	LoadFactor float64

	// GrowthFactor selects relative growth: the table grows by
	// this fraction of its current size.
	GrowthFactor float64

	// GrowthChunk, when positive, selects absolute growth: the table
	// grows by this many slots and GrowthFactor is ignored.
	GrowthChunk int

	// Hash is the hash function. If nil, set.Hash is used.
	Hash set.HashFunc[V]
}

// Validate checks that the configuration is usable.
// Errors wrap set.ErrIllegalArgument.
func (c *Config[V]) Validate() error {
	switch {
	case c.InitialCapacity < 0:
		return errors.Wrapf(set.ErrIllegalArgument, "negative initial capacity %d", c.InitialCapacity)
	case c.LoadFactor < 0 || c.LoadFactor >= 1 || math.IsNaN(c.LoadFactor):
		return errors.Wrapf(set.ErrIllegalArgument, "load factor %v not in (0, 1)", c.LoadFactor)
	case c.GrowthFactor < 0 || math.IsNaN(c.GrowthFactor) || math.IsInf(c.GrowthFactor, 0):
		return errors.Wrapf(set.ErrIllegalArgument, "invalid growth factor %v", c.GrowthFactor)
	case c.GrowthChunk < 0:
		return errors.Wrapf(set.ErrIllegalArgument, "negative growth chunk %d", c.GrowthChunk)
	}
	return nil
}

// resolved returns the configuration with defaults filled in.
// It assumes c is valid.
func (c *Config[V]) resolved() Config[V] {
	var r Config[V]
	if c != nil {
		r = *c
	}
	if r.InitialCapacity == 0 {
		r.InitialCapacity = DefaultCapacity
	}
	if r.LoadFactor == 0 {
		r.LoadFactor = DefaultLoadFactor
	}
	if r.GrowthFactor == 0 && r.GrowthChunk == 0 {
		r.GrowthFactor = DefaultGrowthFactor
	}
	if r.Hash == nil {
		r.Hash = set.Hash[V]
	}
	return r
}

// initialCapacity returns the prime table size to start with.
func (c *Config[V]) initialCapacity() int {
	return nextPrime(max(c.InitialCapacity, minCapacity))
}

// expandAt returns the usage at which a table of the given
// capacity must grow. At least one slot always remains unused.
func (c *Config[V]) expandAt(capacity int) int {
	return min(int(math.Round(c.LoadFactor*float64(capacity))), capacity-1)
}

// grow returns the capacity to rehash into when a table of the
// given capacity holding n entries has reached its limit.
func (c *Config[V]) grow(capacity, n int) int {
	var want int
	if c.GrowthChunk > 0 {
		want = capacity + c.GrowthChunk
	} else {
		want = int(float64(capacity) * (1 + c.GrowthFactor))
	}
	return c.fit(max(want, capacity+1), n)
}

// fit returns the smallest prime capacity of at least want
// whose expansion point lies above n.
func (c *Config[V]) fit(want, n int) int {
	want = max(want, int(math.Ceil(float64(n+1)/c.LoadFactor)), minCapacity)
	p := nextPrime(want)
	for c.expandAt(p) <= n {
		p = nextPrime(p + 1)
	}
	return p
}
