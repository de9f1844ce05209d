package cache

import (
	"errors"
	"sync"
	"testing"
)

func TestGetSet(t *testing.T) {
	c := NewSharded[string](4)
	c.Set(1, "one")

	if v, ok := c.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = %q, %v", v, ok)
	}
	if _, ok := c.Get(2); ok {
		t.Error("Get(2) found a value")
	}
	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.HitRate() != 0.5 {
		t.Errorf("stats = %+v", st)
	}
}

func TestEvictionPerShard(t *testing.T) {
	c := NewSharded[int](2)
	// Keys 0, 16 and 32 share shard 0.
	c.Set(0, 0)
	c.Set(16, 16)
	c.Get(0)
	c.Set(32, 32)

	if _, ok := c.Get(16); ok {
		t.Error("least recently used key 16 was kept")
	}
	if _, ok := c.Get(0); !ok {
		t.Error("recently used key 0 was evicted")
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := NewSharded[int](0)
	calls := 0
	create := func() (int, error) {
		calls++
		return 7, nil
	}
	for range 3 {
		v, err := c.GetOrCreate(5, create)
		if err != nil || v != 7 {
			t.Fatalf("GetOrCreate = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCreate(6, func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if _, ok := c.Get(6); ok {
		t.Error("failed create was cached")
	}
}

func TestConcurrentGetOrCreate(t *testing.T) {
	c := NewSharded[uint64](0)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				k := uint64(i)
				v, _ := c.GetOrCreate(k, func() (uint64, error) { return k * 2, nil })
				if v != k*2 {
					t.Errorf("goroutine %d: key %d = %d", g, k, v)
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() != 100 {
		t.Errorf("Len = %d, want 100", c.Len())
	}
}

func TestKey(t *testing.T) {
	if Key("spv", "a") == Key("glsl", "a") {
		t.Error("targets share a key")
	}
	if Key("spv", "a") != Key("spv", "a") {
		t.Error("Key is not deterministic")
	}
	c := NewSharded[int](1)
	c.Set(1, 1)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
}
