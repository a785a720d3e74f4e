package set

import "hash/maphash"

// seed is shared by every set in the process so that
// equal values hash equally whichever set holds them.
var seed = maphash.MakeSeed()

// HashFunc computes the hash of a value. Values that are equal
// must have equal hashes.
type HashFunc[V comparable] func(V) uint64

// Hash is the default HashFunc. Its results are stable for the
// lifetime of the process but differ between processes.
func Hash[V comparable](v V) uint64 {
	return maphash.Comparable(seed, v)
}
