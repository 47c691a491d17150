// Package cache provides the content-addressed record stores used during
// an export pass.
//
// A Store never evicts. Entries accumulate until Clear, which the export
// context calls at the start and end of every pass. Stores are not safe
// for concurrent use; each pass owns its own set.
package cache

// Store maps keys to records created on first use.
type Store[K comparable, V any] struct {
	name    string
	entries map[K]V
	order   []K

	hits   uint64
	misses uint64
}

// New creates an empty store. The name appears in Stats.
func New[K comparable, V any](name string) *Store[K, V] {
	return &Store[K, V]{
		name:    name,
		entries: make(map[K]V),
	}
}

// Name returns the store name.
func (s *Store[K, V]) Name() string {
	return s.name
}

// Get returns the record for key.
// Returns (value, true) if found, (zero, false) otherwise.
func (s *Store[K, V]) Get(key K) (V, bool) {
	v, ok := s.entries[key]
	if ok {
		s.hits++
	} else {
		s.misses++
	}
	return v, ok
}

// GetOrCreate returns the record for key, calling create on the first
// request. The created value is stored even when it is a zero value, so a
// failing conversion runs once per pass.
func (s *Store[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := s.entries[key]; ok {
		s.hits++
		return v
	}
	s.misses++
	v := create()
	s.entries[key] = v
	s.order = append(s.order, key)
	return v
}

// Keys returns the keys in insertion order.
func (s *Store[K, V]) Keys() []K {
	out := make([]K, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of records.
func (s *Store[K, V]) Len() int {
	return len(s.entries)
}

// Clear removes all records. Statistics are kept; use ResetStats to
// zero them.
func (s *Store[K, V]) Clear() {
	clear(s.entries)
	s.order = s.order[:0]
}

// Stats returns current store statistics.
func (s *Store[K, V]) Stats() Stats {
	var hitRate float64
	total := s.hits + s.misses
	if total > 0 {
		hitRate = float64(s.hits) / float64(total)
	}
	return Stats{
		Name:    s.name,
		Len:     len(s.entries),
		Hits:    s.hits,
		Misses:  s.misses,
		HitRate: hitRate,
	}
}

// ResetStats sets the hit and miss counters to zero.
func (s *Store[K, V]) ResetStats() {
	s.hits = 0
	s.misses = 0
}
