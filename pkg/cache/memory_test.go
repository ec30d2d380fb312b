package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func newTestCache(opts ...MemoryOption) *MemoryCache {
	opts = append([]MemoryOption{WithMemoryCleanup(0)}, opts...)
	return NewMemoryCache(opts...)
}

func TestMemoryCacheSetGet(t *testing.T) {
	mc := newTestCache()
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	if err := mc.Set(ctx, "k", payload{Name: "inflation", Value: 3.2}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got payload
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "inflation" || got.Value != 3.2 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := newTestCache()
	defer mc.Close()

	var out string
	if err := mc.Get(context.Background(), "absent", &out); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := newTestCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	var out string
	if err := mc.Get(ctx, "k", &out); err != ErrCacheMiss {
		t.Fatalf("expired entry should read as a miss, got %v", err)
	}
	if mc.Len() != 0 {
		t.Fatalf("expired entry should be deleted on read, len=%d", mc.Len())
	}
}

func TestMemoryCacheByteIdenticalReads(t *testing.T) {
	mc := newTestCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", map[string]int{"a": 1, "b": 2}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var first, second []byte
	if err := mc.Get(ctx, "k", &first); err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	if err := mc.Get(ctx, "k", &second); err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("repeated reads differ: %s vs %s", first, second)
	}
}

func TestMemoryCacheFIFOEviction(t *testing.T) {
	mc := newTestCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "first", 1, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(time.Millisecond)
	if err := mc.Set(ctx, "second", 2, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(time.Millisecond)
	if err := mc.Set(ctx, "third", 3, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if mc.Len() != 2 {
		t.Fatalf("expected 2 entries after eviction, got %d", mc.Len())
	}
	var out int
	if err := mc.Get(ctx, "first", &out); err != ErrCacheMiss {
		t.Fatalf("oldest entry should be evicted, got %v", err)
	}
	if err := mc.Get(ctx, "third", &out); err != nil {
		t.Fatalf("newest entry missing: %v", err)
	}
}

func TestMemoryCacheOverwriteDoesNotEvict(t *testing.T) {
	mc := newTestCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	mc.Set(ctx, "a", 1, time.Minute)
	mc.Set(ctx, "b", 2, time.Minute)
	// rewriting an existing key at capacity must not evict
	if err := mc.Set(ctx, "a", 3, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var out int
	if err := mc.Get(ctx, "b", &out); err != nil {
		t.Fatalf("sibling entry evicted on overwrite: %v", err)
	}
}

func TestGenerateKey(t *testing.T) {
	if got := GenerateKey("trend", "AAPL"); got != "trend:AAPL" {
		t.Fatalf("unexpected key %q", got)
	}
}
