package cache

import (
	"errors"
	"testing"
	"time"
)

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := NewLRUCache[int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // a becomes most recent
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("a = %d, %v", v, ok)
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("c = %d, %v", v, ok)
	}
	if c.Size() != 2 {
		t.Errorf("size = %d", c.Size())
	}
}

func TestLRUCacheOverwriteAndDelete(t *testing.T) {
	c := NewLRUCache[string](0)
	c.Set("k", "v1")
	c.Set("k", "v2")
	if v, _ := c.Get("k"); v != "v2" {
		t.Errorf("got %q", v)
	}
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("deleted key still present")
	}
	c.Set("x", "y")
	c.Purge()
	if c.Size() != 0 {
		t.Errorf("size after purge = %d", c.Size())
	}
}

func TestGetOrCompute(t *testing.T) {
	c := NewLRUCache[int](4)
	calls := 0
	fn := func() (int, error) { calls++; return 42, nil }

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("answer", fn)
		if err != nil || v != 42 {
			t.Fatalf("got %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times", calls)
	}
	hits, misses := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("stats = %d/%d", hits, misses)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCompute("bad", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed computation should not be cached")
	}
}

func TestViewKeyDistinguishesRevisionAndDay(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	a := ViewKey{Revision: 1, View: ViewTotals, Day: day}.String()
	b := ViewKey{Revision: 2, View: ViewTotals, Day: day}.String()
	c := ViewKey{Revision: 1, View: ViewTotals, Day: day.AddDate(0, 0, 1)}.String()
	d := ViewKey{Revision: 1, View: ViewHistory, Day: day, Extra: "coffee"}.String()
	seen := map[string]bool{a: true, b: true, c: true, d: true}
	if len(seen) != 4 {
		t.Errorf("keys collide: %q %q %q %q", a, b, c, d)
	}
}
