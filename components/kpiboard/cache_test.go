package kpiboard

import "testing"

func TestCacheKeysMatchStorageConvention(t *testing.T) {
	if got := LayoutCacheKey("sales"); got != "sales-dashboard-layouts" {
		t.Fatalf("unexpected layout key %q", got)
	}
	if got := ChartConfigCacheKey("sales"); got != "sales-dashboard-chart-config" {
		t.Fatalf("unexpected chart config key %q", got)
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	if _, ok := cache.Get("missing"); ok {
		t.Fatalf("expected miss")
	}
	cache.Set("k", []byte("v"))
	value, ok := cache.Get("k")
	if !ok || string(value) != "v" {
		t.Fatalf("expected hit with v, got %q %v", value, ok)
	}
	cache.Delete("k")
	if _, ok := cache.Get("k"); ok {
		t.Fatalf("expected delete to remove entry")
	}
}

func TestCachedLayoutRoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	layout := ExpandBreakpoints([]Placement{{ID: "mrr", X: 0, Y: 0, W: 6, H: 4}})
	cacheLayout(cache, "sales", layout)

	got, ok := cachedLayout(cache, "sales")
	if !ok {
		t.Fatalf("expected cached layout")
	}
	if got[BreakpointLG][0] != layout[BreakpointLG][0] {
		t.Fatalf("layout changed across the cache: %+v", got[BreakpointLG][0])
	}
	if _, ok := cachedLayout(cache, "finance"); ok {
		t.Fatalf("departments must not share cache entries")
	}
}

func TestCachedLayoutIgnoresCorruptEntries(t *testing.T) {
	cache := NewMemoryCache()
	cache.Set(LayoutCacheKey("sales"), []byte("{not json"))
	if _, ok := cachedLayout(cache, "sales"); ok {
		t.Fatalf("corrupt entry should read as a miss")
	}

	cache.Set(ChartConfigCacheKey("sales"), []byte("[]"))
	if _, ok := cachedChartConfig(cache, "sales"); ok {
		t.Fatalf("corrupt chart config should read as a miss")
	}
}

func TestWipeDepartments(t *testing.T) {
	cache := NewMemoryCache()
	cacheLayout(cache, "sales", GridLayout{})
	cacheChartConfig(cache, "sales", ChartConfiguration{})
	cacheLayout(cache, "finance", GridLayout{})

	WipeDepartments(cache, "sales")
	if _, ok := cache.Get(LayoutCacheKey("sales")); ok {
		t.Fatalf("sales layout should be wiped")
	}
	if _, ok := cache.Get(ChartConfigCacheKey("sales")); ok {
		t.Fatalf("sales chart config should be wiped")
	}
	if _, ok := cache.Get(LayoutCacheKey("finance")); !ok {
		t.Fatalf("finance should be untouched")
	}
}
