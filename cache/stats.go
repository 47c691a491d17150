package cache

import "fmt"

// Stats holds store statistics.
type Stats struct {
	Name    string
	Len     int
	Hits    uint64
	Misses  uint64
	HitRate float64
}

// String formats the statistics on one line.
func (s Stats) String() string {
	return fmt.Sprintf("%s: %d entries, %d hits, %d misses (%.0f%% hit rate)",
		s.Name, s.Len, s.Hits, s.Misses, s.HitRate*100)
}

// Collector is implemented by stores that report statistics.
type Collector interface {
	Stats() Stats
	Clear()
}
