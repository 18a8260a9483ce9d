package cache

import (
	"context"
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[string](testContext(t), time.Second)

	key := Key([]byte(`{"nodes":4}`))
	c.Set(key, "value1")

	val, found := c.Get(key)
	if !found {
		t.Error("Expected to find key")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New[string](testContext(t), time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(1, "value1")

	if _, found := c.Get(1); !found {
		t.Error("Expected to find key immediately")
	}

	now = now.Add(2 * time.Minute)

	if _, found := c.Get(1); found {
		t.Error("Expected key to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be dropped, got %d entries", c.Len())
	}
}

func TestCache_RemoveExpired(t *testing.T) {
	c := New[int](testContext(t), time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(1, 1)
	c.Set(2, 2)
	now = now.Add(2 * time.Minute)
	c.Set(3, 3)

	if removed := c.removeExpired(); removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}
	if _, found := c.Get(3); !found {
		t.Error("Expected fresh entry to survive the sweep")
	}
}

func TestCache_ExpiredGetKeepsRefreshedEntry(t *testing.T) {
	c := New[string](testContext(t), time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(1, "stale")
	now = now.Add(2 * time.Minute)

	// Refresh the key between the expiry check and the delete
	refreshed := false
	c.now = func() time.Time {
		if !refreshed {
			refreshed = true
			c.Set(1, "fresh")
		}
		return now
	}

	if _, found := c.Get(1); found {
		t.Error("Expected the expired read to miss")
	}

	val, found := c.Get(1)
	if !found {
		t.Fatal("Expected refreshed entry to survive the expired read")
	}
	if val != "fresh" {
		t.Errorf("Expected fresh, got %v", val)
	}
}

func TestCache_ZeroTTLDisablesStorage(t *testing.T) {
	c := New[string](context.Background(), 0)

	c.Set(1, "value1")

	if _, found := c.Get(1); found {
		t.Error("Expected no storage with zero TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d entries", c.Len())
	}
}

func TestKey_StableForSameInput(t *testing.T) {
	a := Key([]byte(`{"capacity":{"value":"1","unit":"TiB"}}`))
	b := Key([]byte(`{"capacity":{"value":"1","unit":"TiB"}}`))
	c := Key([]byte(`{"capacity":{"value":"2","unit":"TiB"}}`))

	if a != b {
		t.Error("Expected identical input to hash identically")
	}
	if a == c {
		t.Error("Expected different input to hash differently")
	}
}

// testContext mirrors testing.T.Context (Go 1.24+): it is cancelled
// when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
