package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/costlens/backend/internal/domain"
)

// fakeClock lets tests move time forward without sleeping
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T) (*MemoryCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewMemoryCache()
	cache.now = clock.Now
	t.Cleanup(cache.Close)
	return cache, clock
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value string
		ttl   time.Duration
	}{
		{
			name:  "store and retrieve page",
			key:   "page:https://example.test/Pune",
			value: "<html>Pune</html>",
			ttl:   time.Minute,
		},
		{
			name:  "store empty page",
			key:   "page:https://example.test/Empty",
			value: "",
			ttl:   time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, tt.ttl); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != tt.value {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache, clock := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "key", "value", time.Minute)

	clock.Advance(59 * time.Second)
	if _, err := cache.Get(ctx, "key"); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	clock.Advance(2 * time.Second)
	if _, err := cache.Get(ctx, "key"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after expiry error = %v, want ErrCacheMiss", err)
	}
	if exists, _ := cache.Exists(ctx, "key"); exists {
		t.Error("Exists() = true after expiry")
	}

	cache.removeExpired()
	if cache.Size() != 0 {
		t.Errorf("Size() = %d after sweep, want 0", cache.Size())
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "non-existent-key")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "key", "value", time.Minute)
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := cache.Get(ctx, "key"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after Delete error = %v, want ErrCacheMiss", err)
	}

	// Deleting a missing key is not an error
	if err := cache.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "key", "value", time.Minute)

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"existing key", "key", true},
		{"missing key", "other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cache.Exists(ctx, tt.key)
			if err != nil {
				t.Fatalf("Exists() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cache.Set(ctx, fmt.Sprintf("key-%d", i), "value", time.Minute)
	}
	if cache.Size() != 3 {
		t.Errorf("Size() = %d, want 3", cache.Size())
	}

	cache.Clear()
	if cache.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", cache.Size())
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache()
	cache.Close()
	cache.Close()
}

func TestMemoryCache_SweeperRuns(t *testing.T) {
	cache := newMemoryCache(5 * time.Millisecond)
	defer cache.Close()

	cache.Set(context.Background(), "key", "value", time.Nanosecond)

	deadline := time.Now().Add(time.Second)
	for cache.Size() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("expired entry was not swept")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%5)
			cache.Set(ctx, key, "value", time.Minute)
			cache.Get(ctx, key)
			cache.Exists(ctx, key)
		}(i)
	}
	wg.Wait()

	if cache.Size() != 5 {
		t.Errorf("Size() = %d, want 5", cache.Size())
	}
}
