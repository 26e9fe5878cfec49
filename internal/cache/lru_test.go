package cache

import "testing"

func TestLRU_AddGet(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Add("a", 1)
	c.Add("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("Get(b) = %d, %v; want 2, true", v, ok)
	}
}

func TestLRU_EvictsOldest(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Add("a", 1)
	c.Add("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Add("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("expected c to be present")
	}
	if got := c.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Add("a", 1)
	c.Add("a", 10)

	if v, _ := c.Get("a"); v != 10 {
		t.Fatalf("Get(a) = %d, want 10", v)
	}
	if got := c.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[string, int](4)

	c.Add("a", 1)
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("Stats() = %+v; want 1 hit, 1 miss", stats)
	}
	if stats.Size != 1 || stats.Max != 4 {
		t.Fatalf("Stats() = %+v; want size 1, max 4", stats)
	}
}

func TestLRU_Purge(t *testing.T) {
	c := NewLRU[string, int](4)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Purge()

	if got := c.Len(); got != 0 {
		t.Fatalf("Len() after Purge = %d, want 0", got)
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a to be gone after Purge")
	}
}
