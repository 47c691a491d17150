package cache

import (
	"encoding/binary"
	"hash/fnv"
)

// Hasher computes a 64-bit hash for a key.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// IntHasher computes the FNV-1a hash of an int key.
func IntHasher(i int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i)) // #nosec G115 -- bit pattern only
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Uint64Hasher returns the key itself as the hash.
func Uint64Hasher(u uint64) uint64 {
	return u
}
