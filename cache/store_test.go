package cache

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	s := New[string, int]("meshes")
	if s == nil {
		t.Fatal("New returned nil")
	}
	if s.Name() != "meshes" {
		t.Errorf("Name() = %q, want %q", s.Name(), "meshes")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
}

func TestStoreGetOrCreate(t *testing.T) {
	s := New[string, int]("test")
	createCalled := 0

	val := s.GetOrCreate("key1", func() int {
		createCalled++
		return 100
	})
	if val != 100 {
		t.Errorf("expected 100, got %d", val)
	}

	val = s.GetOrCreate("key1", func() int {
		createCalled++
		return 200
	})
	if val != 100 {
		t.Errorf("expected 100 (cached), got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create called once, got %d", createCalled)
	}
}

func TestStoreCachesZeroValue(t *testing.T) {
	s := New[int, *int]("test")
	calls := 0
	for range 3 {
		if v := s.GetOrCreate(7, func() *int { calls++; return nil }); v != nil {
			t.Errorf("expected nil, got %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected create called once, got %d", calls)
	}
}

func TestStoreGet(t *testing.T) {
	s := New[string, int]("test")
	s.GetOrCreate("a", func() int { return 1 })

	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("expected missing key to not exist")
	}
}

func TestStoreKeysOrder(t *testing.T) {
	s := New[string, int]("test")
	for i, k := range []string{"c", "a", "b", "a"} {
		s.GetOrCreate(k, func() int { return i })
	}
	got := strings.Join(s.Keys(), ",")
	if got != "c,a,b" {
		t.Errorf("Keys() = %q, want %q", got, "c,a,b")
	}
}

func TestStoreClear(t *testing.T) {
	s := New[int, int]("test")
	for i := range 10 {
		s.GetOrCreate(i, func() int { return i })
	}
	if s.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", s.Len())
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
	if len(s.Keys()) != 0 {
		t.Errorf("Keys() after Clear = %v", s.Keys())
	}

	// Entries are recreated after Clear.
	calls := 0
	s.GetOrCreate(1, func() int { calls++; return 1 })
	if calls != 1 {
		t.Errorf("expected create after Clear, got %d calls", calls)
	}
}

func TestStoreStats(t *testing.T) {
	s := New[string, int]("test")
	s.GetOrCreate("a", func() int { return 1 }) // miss
	s.GetOrCreate("a", func() int { return 1 }) // hit
	s.Get("a")                                  // hit
	s.Get("b")                                  // miss

	stats := s.Stats()
	if stats.Hits != 2 || stats.Misses != 2 {
		t.Errorf("hits/misses = %d/%d, want 2/2", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", stats.HitRate)
	}
	if stats.Len != 1 {
		t.Errorf("Len = %d, want 1", stats.Len)
	}
	if !strings.Contains(stats.String(), "test: 1 entries") {
		t.Errorf("String() = %q", stats.String())
	}

	s.ResetStats()
	stats = s.Stats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.HitRate != 0 {
		t.Errorf("stats after reset = %+v", stats)
	}
}

func TestStoreIsCollector(t *testing.T) {
	var _ Collector = New[int, string]("c")
}

func TestHashers(t *testing.T) {
	if StringHasher("a") == StringHasher("b") {
		t.Error("StringHasher collision on distinct keys")
	}
	if StringHasher("abc") != StringHasher("abc") {
		t.Error("StringHasher not deterministic")
	}
	if IntHasher(1) == IntHasher(2) {
		t.Error("IntHasher collision on distinct keys")
	}
	if Uint64Hasher(42) != 42 {
		t.Error("Uint64Hasher should return the key")
	}
}

func BenchmarkStoreGetOrCreateHit(b *testing.B) {
	s := New[int, int]("bench")
	s.GetOrCreate(1, func() int { return 1 })
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.GetOrCreate(1, func() int { return 1 })
	}
}
